package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "12.50", want: "12.5"},
		{in: "$1,234.56", want: "1234.56"},
		{in: "1.234,56 €", want: "1234.56"},
		{in: " 7,25 ", want: "7.25"},
		{in: "1,234", want: "1234"},
		{in: "(4.00)", want: "-4"},
		{in: "-3.10", want: "-3.1"},
		{in: "CHF 1'000.00", want: "1000"},
		{in: "USD 15", want: "15"},
		{in: "", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "ParseAmount(%q) = %s", tt.in, got)
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	got, err := ParseAmount("n/a")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse amount 'n/a'")
	assert.True(t, got.IsZero())
}

func TestStandardizeAmount(t *testing.T) {
	assert.Equal(t, "1234.56", StandardizeAmount("$ 1,234.56"))
	assert.Equal(t, "1234.56", StandardizeAmount("1.234,56"))
	assert.Equal(t, "12.5", StandardizeAmount("12,5"))
	assert.Equal(t, "1000.00", StandardizeAmount("1'000.00"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "15.50", FormatAmount(decimal.RequireFromString("15.5")))
	assert.Equal(t, "-4.00", FormatAmount(decimal.NewFromInt(-4)))
}

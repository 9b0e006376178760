// Package currencyutils parses and formats the cost column of statements.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	symbols    = regexp.MustCompile(`[€$£¥₣₹\s']`)
	isoCodes   = strings.NewReplacer("USD", "", "EUR", "", "CHF", "", "GBP", "")
	accounting = regexp.MustCompile(`^\((.*)\)$`)
)

// ParseAmount parses a cost such as "12.50", "$1,234.56", "7,25",
// "CHF 1'000.00" or the accounting negative "(4.00)". Empty input is zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(amountStr)
	if trimmed == "" {
		return decimal.Zero, nil
	}

	negative := false
	if m := accounting.FindStringSubmatch(trimmed); m != nil {
		negative = true
		trimmed = m[1]
	}

	amount, err := decimal.NewFromString(StandardizeAmount(trimmed))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

// StandardizeAmount strips currency markers and normalizes the decimal
// separator so that decimal.NewFromString accepts the result.
func StandardizeAmount(amountStr string) string {
	amountStr = symbols.ReplaceAllString(isoCodes.Replace(amountStr), "")

	switch {
	case strings.Contains(amountStr, ",") && strings.Contains(amountStr, "."):
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case strings.Contains(amountStr, ","):
		parts := strings.Split(amountStr, ",")
		if len(parts[len(parts)-1]) <= 2 {
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}
	return amountStr
}

// FormatAmount renders amount with two decimals and no grouping.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

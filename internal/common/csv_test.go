package common

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/spending-nb/internal/logging"
	"fjacquet/spending-nb/internal/models"
	"fjacquet/spending-nb/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestPurchaseReader_ReadFile(t *testing.T) {
	path := writeCSV(t, "2018-08-01,12.50,3,Food,pizza place downtown\n"+
		"2018-08-02,30.00,1,Transport,taxi fare\n")

	logger := logging.NewMockLogger()
	purchases, err := NewPurchaseReader(',', logger).ReadFile(path)
	require.NoError(t, err)
	require.Len(t, purchases, 2)

	assert.Equal(t, models.Purchase{
		Date:        "2018-08-01",
		Cost:        "12.50",
		Rating:      "3",
		Category:    "Food",
		Description: "pizza place downtown",
	}, purchases[0])
	assert.Equal(t, "Transport", purchases[1].Category)
	assert.Equal(t, "taxi fare", purchases[1].Description)
	assert.True(t, logger.HasEntry("INFO", "Read statement file"))
}

func TestPurchaseReader_FirstRowIsData(t *testing.T) {
	purchases, err := NewPurchaseReader(',', logging.NewMockLogger()).
		Read(strings.NewReader("date,cost,rating,category,description\n"))
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "category", purchases[0].Category)
}

func TestPurchaseReader_Delimiter(t *testing.T) {
	purchases, err := NewPurchaseReader(';', logging.NewMockLogger()).
		Read(strings.NewReader("2018-08-01;4,50;2;Food;coffee, croissant\n"))
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "4,50", purchases[0].Cost)
	assert.Equal(t, "coffee, croissant", purchases[0].Description)
}

func TestPurchaseReader_QuotedDescription(t *testing.T) {
	purchases, err := NewPurchaseReader(',', logging.NewMockLogger()).
		Read(strings.NewReader("2018-08-01,9.99,2,Shopping,\"books, music\"\n"))
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "books, music", purchases[0].Description)
}

func TestPurchaseReader_EmptyFile(t *testing.T) {
	path := writeCSV(t, "")
	purchases, err := NewPurchaseReader(',', logging.NewMockLogger()).ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, purchases)
}

func TestPurchaseReader_WrongFieldCount(t *testing.T) {
	path := writeCSV(t, "2018-08-01,12.50,3,Food,pizza\n2018-08-02,30.00,Transport\n")

	_, err := NewPurchaseReader(',', logging.NewMockLogger()).ReadFile(path)
	require.Error(t, err)

	var parseErr *parsererror.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, path, parseErr.File)
	assert.Equal(t, 2, parseErr.Line)
	assert.True(t, errors.Is(err, csv.ErrFieldCount))
	assert.True(t, strings.HasPrefix(err.Error(), path+":2: "))
}

func TestPurchaseReader_MissingFile(t *testing.T) {
	_, err := NewPurchaseReader(',', logging.NewMockLogger()).
		ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

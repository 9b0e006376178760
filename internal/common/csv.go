// Package common provides statement file reading shared by the training and
// evaluation paths.
package common

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"fjacquet/spending-nb/internal/logging"
	"fjacquet/spending-nb/internal/models"
	"fjacquet/spending-nb/internal/parsererror"

	"github.com/gocarina/gocsv"
)

// PurchaseReader reads headerless five-column statement files.
type PurchaseReader struct {
	delimiter rune
	logger    logging.Logger
}

// NewPurchaseReader returns a reader splitting fields on delimiter.
func NewPurchaseReader(delimiter rune, logger logging.Logger) *PurchaseReader {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &PurchaseReader{delimiter: delimiter, logger: logger}
}

// ReadFile reads all purchases from filePath in file order. A row with the
// wrong number of fields fails the whole file.
func (r *PurchaseReader) ReadFile(filePath string) ([]models.Purchase, error) {
	r.logger.Debug("Reading statement file",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldDelimiter, string(r.delimiter)))

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			r.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	purchases, err := r.Read(file)
	if err != nil {
		var parseErr *parsererror.ParseError
		if errors.As(err, &parseErr) {
			parseErr.File = filePath
		}
		return nil, err
	}

	r.logger.Info("Read statement file",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(purchases)))
	return purchases, nil
}

// Read parses purchases from in.
func (r *PurchaseReader) Read(in io.Reader) ([]models.Purchase, error) {
	csvReader := csv.NewReader(in)
	csvReader.Comma = r.delimiter
	csvReader.FieldsPerRecord = models.PurchaseFieldCount
	csvReader.LazyQuotes = true

	rows, err := csvReader.ReadAll()
	if err != nil {
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			return nil, &parsererror.ParseError{Line: csvErr.Line, Err: csvErr.Err}
		}
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	if len(rows) == 0 {
		return []models.Purchase{}, nil
	}

	var purchases []models.Purchase
	if err := gocsv.UnmarshalCSVWithoutHeaders(&rowReader{rows: rows}, &purchases); err != nil {
		return nil, fmt.Errorf("error mapping CSV rows: %w", err)
	}
	return purchases, nil
}

// rowReader replays already split rows to gocsv.
type rowReader struct {
	rows [][]string
	next int
}

func (r *rowReader) Read() ([]string, error) {
	if r.next >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.next]
	r.next++
	return row, nil
}

func (r *rowReader) ReadAll() ([][]string, error) {
	rest := r.rows[r.next:]
	r.next = len(r.rows)
	return rest, nil
}

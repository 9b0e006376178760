// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"fjacquet/spending-nb/internal/currencyutils"
	"fjacquet/spending-nb/internal/dateutils"

	"github.com/shopspring/decimal"
)

// Purchase is one row of a credit-card statement export. Files carry no
// header; columns are mapped by position in field order.
type Purchase struct {
	Date        string `csv:"date"`        // Statement date as exported
	Cost        string `csv:"cost"`        // Raw amount text, see Amount
	Rating      string `csv:"rating"`      // Personal star rating, unused by the model
	Category    string `csv:"category"`    // Ground-truth spending category
	Description string `csv:"description"` // Free-text merchant description
}

// Amount parses Cost into a decimal. Currency symbols, spaces and thousand
// separators are ignored; unparseable values yield zero.
func (p Purchase) Amount() decimal.Decimal {
	amount, err := currencyutils.ParseAmount(p.Cost)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// Time parses Date. ok is false when the date is in no known layout.
func (p Purchase) Time() (time.Time, bool) {
	t, err := dateutils.ParseDate(p.Date)
	return t, err == nil
}

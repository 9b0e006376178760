package models

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Accuracy tallies predictions that matched the ground-truth label.
type Accuracy struct {
	Correct int
	Total   int
}

// Wrong returns the number of mismatched predictions.
func (a Accuracy) Wrong() int {
	return a.Total - a.Correct
}

// Ratio returns Correct/Total in [0,1]. Zero examples give zero.
func (a Accuracy) Ratio() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Total)
}

// Percent formats the ratio as a percentage with at least one decimal,
// e.g. "75.0" or "66.66666666666666".
func (a Accuracy) Percent() string {
	p := a.Ratio() * 100
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if p == float64(int64(p)) {
		s = strconv.FormatFloat(p, 'f', 1, 64)
	}
	return s
}

// String renders the report line, e.g. "75.0% (3/4)".
func (a Accuracy) String() string {
	return fmt.Sprintf("%s%% (%d/%d)", a.Percent(), a.Correct, a.Total)
}

// Prediction records the outcome of classifying one purchase.
type Prediction struct {
	Purchase  Purchase
	Predicted string
}

// Correct reports whether the prediction matched the row's label.
func (p Prediction) Correct() bool {
	return p.Predicted == p.Purchase.Category
}

// CategorySummary aggregates evaluation results for one category.
type CategorySummary struct {
	Category  string          `yaml:"category"`
	Actual    int             `yaml:"actual"`
	Predicted int             `yaml:"predicted"`
	Correct   int             `yaml:"correct"`
	Spend     decimal.Decimal `yaml:"-"`
}

// Recall returns the share of this category's rows predicted correctly.
func (s CategorySummary) Recall() float64 {
	if s.Actual == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Actual)
}

// Summarize groups predictions by category, in first-seen order of the
// actual labels followed by any predicted-only categories.
func Summarize(predictions []Prediction) []CategorySummary {
	index := make(map[string]int)
	var out []CategorySummary
	get := func(name string) *CategorySummary {
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, CategorySummary{Category: name, Spend: decimal.Zero})
		}
		return &out[i]
	}

	for _, p := range predictions {
		s := get(p.Purchase.Category)
		s.Actual++
		s.Spend = s.Spend.Add(p.Purchase.Amount())
		if p.Correct() {
			s.Correct++
		}
	}
	for _, p := range predictions {
		get(p.Predicted).Predicted++
	}
	return out
}

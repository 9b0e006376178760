// Package report renders evaluation results and model summaries for the
// terminal.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"fjacquet/spending-nb/internal/bayes"
	"fjacquet/spending-nb/internal/currencyutils"
	"fjacquet/spending-nb/internal/dateutils"
	"fjacquet/spending-nb/internal/models"

	"github.com/fatih/color"
)

// Printer writes human-readable reports to out.
type Printer struct {
	out      io.Writer
	useColor bool
}

// NewPrinter creates a Printer. Colors are also suppressed whenever out is
// not a terminal.
func NewPrinter(out io.Writer, useColor bool) *Printer {
	return &Printer{out: out, useColor: useColor}
}

func (p *Printer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if !p.useColor {
		c.DisableColor()
	}
	return c
}

func accuracyColor(acc models.Accuracy) []color.Attribute {
	switch r := acc.Ratio(); {
	case r >= 0.8:
		return []color.Attribute{color.FgGreen, color.Bold}
	case r >= 0.5:
		return []color.Attribute{color.FgYellow, color.Bold}
	default:
		return []color.Attribute{color.FgRed, color.Bold}
	}
}

// PrintAccuracy writes "Accuracy: 75.0% (3/4)". An empty evaluation is
// reported as "Accuracy: 0 examples evaluated".
func (p *Printer) PrintAccuracy(acc models.Accuracy) error {
	if acc.Total == 0 {
		_, err := fmt.Fprintln(p.out, "Accuracy: 0 examples evaluated")
		return err
	}
	_, err := fmt.Fprintf(p.out, "Accuracy: %s\n", p.paint(accuracyColor(acc)...).Sprint(acc.String()))
	return err
}

// PrintPeriod writes the date range covered by a statement.
func (p *Printer) PrintPeriod(from, to time.Time) error {
	_, err := fmt.Fprintf(p.out, "Period: %s to %s\n", dateutils.ToISODate(from), dateutils.ToISODate(to))
	return err
}

// PrintBreakdown writes one row per category with counts, recall and spend.
func (p *Printer) PrintBreakdown(summaries []models.CategorySummary) error {
	if len(summaries) == 0 {
		return nil
	}

	header := p.paint(color.Bold)
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, header.Sprint("CATEGORY\tACTUAL\tPREDICTED\tCORRECT\tRECALL\tSPEND")); err != nil {
		return err
	}
	for _, s := range summaries {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.1f%%\t%s\n",
			s.Category, s.Actual, s.Predicted, s.Correct, s.Recall()*100, currencyutils.FormatAmount(s.Spend)); err != nil {
			return err
		}
	}
	return w.Flush()
}

// PrintPrediction writes the winning category for description followed by
// the given scores, best first.
func (p *Printer) PrintPrediction(description string, scores []bayes.CategoryScore) error {
	if len(scores) == 0 {
		_, err := fmt.Fprintf(p.out, "%q -> (no categories)\n", description)
		return err
	}

	winner := p.paint(color.FgGreen, color.Bold)
	if _, err := fmt.Fprintf(p.out, "%q -> %s\n", description, winner.Sprint(scores[0].Category)); err != nil {
		return err
	}
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	for _, s := range scores {
		if _, err := fmt.Fprintf(w, "  %s\t%.4f\n", s.Category, s.Score); err != nil {
			return err
		}
	}
	return w.Flush()
}

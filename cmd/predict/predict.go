// Package predict classifies free-text purchase descriptions from the
// command line.
package predict

import (
	"fmt"
	"strings"

	"fjacquet/spending-nb/cmd/root"
	"fjacquet/spending-nb/internal/report"

	"github.com/spf13/cobra"
)

var (
	useCache bool
	top      int
)

// Cmd represents the predict command
var Cmd = &cobra.Command{
	Use:   "predict <description>...",
	Short: "Predict the spending category of purchase descriptions",
	Long: `Predict the spending category of one or more purchase descriptions.

Each argument is classified separately and printed with its best scoring
categories. The model is not updated and the cache is not written.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         predictFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&useCache, "cached", "c", false, "Use the cached classifier if one exists")
	Cmd.Flags().IntVarP(&top, "top", "n", 0, "Number of scores to show per description (default from report.top)")
}

func predictFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer()
	if err != nil {
		return err
	}
	defer func() {
		_ = c.Close()
	}()

	if _, err := c.NewRunner(cmd.OutOrStdout()).Train(cmd.Context(), useCache); err != nil {
		return err
	}

	n := top
	if n <= 0 {
		n = c.GetConfig().Report.Top
	}

	printer := report.NewPrinter(cmd.OutOrStdout(), c.GetConfig().Report.Color)
	for _, description := range args {
		description = strings.TrimSpace(description)
		scores, err := c.GetClassifier().Top(description, n)
		if err != nil {
			return fmt.Errorf("failed to classify %q: %w", description, err)
		}
		if err := printer.PrintPrediction(description, scores); err != nil {
			return err
		}
	}
	return nil
}

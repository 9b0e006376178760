// Package inspect prints a summary of the cached classifier.
package inspect

import (
	"fmt"

	"fjacquet/spending-nb/cmd/root"
	"fjacquet/spending-nb/internal/report"

	"github.com/spf13/cobra"
)

var tokens int

// Cmd represents the inspect command
var Cmd = &cobra.Command{
	Use:          "inspect",
	Short:        "Show a YAML summary of the cached classifier",
	Long:         `Load the cached classifier and print its categories, priors and most frequent tokens as YAML.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         inspectFunc,
}

func init() {
	Cmd.Flags().IntVarP(&tokens, "tokens", "t", 5, "Most frequent tokens to list per category")
}

func inspectFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer()
	if err != nil {
		return err
	}
	defer func() {
		_ = c.Close()
	}()

	cache := c.GetCache()
	snap, ok := cache.Load()
	if !ok {
		return fmt.Errorf("no usable cached classifier at %s", cache.Path())
	}
	if err := c.GetStore().Restore(snap); err != nil {
		return fmt.Errorf("failed to restore cached classifier: %w", err)
	}

	summary := report.NewModelSummary(c.GetStore(), c.GetClassifier().Mode(), tokens)
	summary.Source = cache.Path()

	data, err := report.MarshalModelSummary(summary)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

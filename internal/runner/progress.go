package runner

import (
	"fmt"
	"io"

	"fjacquet/spending-nb/internal/bayes"

	"github.com/schollz/progressbar/v3"
)

// TerminalProgress draws a progress bar on w while the history is folded
// into the model.
func TerminalProgress(w io.Writer) bayes.ProgressFactory {
	return func(total int) bayes.Progress {
		return progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionThrottle(0),
			progressbar.OptionSetDescription("[cyan]Training classifier...[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				_, _ = fmt.Fprintln(w)
			}),
		)
	}
}

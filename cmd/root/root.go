// Package root contains the root command for the application
package root

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"fjacquet/spending-nb/internal/config"
	"fjacquet/spending-nb/internal/container"
	"fjacquet/spending-nb/internal/runner"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// UsageMessage is printed when no statement file is given.
const UsageMessage = "Usage: spending-nb -c (optional) <file.csv>"

// NoFileMessage is printed when the statement file does not exist.
const NoFileMessage = "No file found."

// GlobalFlags are the persistent flags shared by every command.
type GlobalFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

var (
	// Flags holds the parsed persistent flags.
	Flags = GlobalFlags{}

	// UseCache is set by -c/--cached on the root command.
	UseCache bool

	// Rebuild is set by --rebuild. It discards the cached classifier first.
	Rebuild bool

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "spending-nb [-c] <file.csv>",
		Short: "Classify credit-card purchases into spending categories",
		Long: `spending-nb trains a Naive Bayes classifier on your labeled purchase
history, predicts the category of every row in a new statement, reports the
accuracy against the labels in that statement and archives it.

With -c the model cached by the previous run is reused instead of being
rebuilt from the history file. --rebuild deletes the cached model before
training, so the history file is always used.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE:         runEvaluate,
	}

	initOnce sync.Once
)

// Init registers the root command flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringVar(&Flags.ConfigFile, "config", "", "Config file (default searches $HOME/.spending-nb, ./.spending-nb and .)")
		Cmd.PersistentFlags().StringVar(&Flags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
		Cmd.PersistentFlags().StringVar(&Flags.LogFormat, "log-format", "", "Log format (text or json)")
		Cmd.Flags().BoolVarP(&UseCache, "cached", "c", false, "Use the cached classifier if one exists")
		Cmd.Flags().BoolVar(&Rebuild, "rebuild", false, "Delete the cached classifier and retrain from history")
	})
}

// LoadConfig reads the configuration and applies flag and LOG_LEVEL
// overrides. Flags win over SPENDING_LOG_LEVEL, which wins over LOG_LEVEL.
func LoadConfig() (*config.Config, error) {
	config.LoadEnv()

	cfg, err := config.InitializeConfig(Flags.ConfigFile)
	if err != nil {
		return nil, err
	}

	switch {
	case Flags.LogLevel != "":
		if _, err := logrus.ParseLevel(Flags.LogLevel); err != nil {
			return nil, fmt.Errorf("invalid --log-level %q: %w", Flags.LogLevel, err)
		}
		cfg.Log.Level = Flags.LogLevel
	case os.Getenv(config.EnvPrefix+"_LOG_LEVEL") == "" && os.Getenv("LOG_LEVEL") != "":
		cfg.Log.Level = config.LevelFromEnv().String()
	}

	if Flags.LogFormat != "" {
		if Flags.LogFormat != "text" && Flags.LogFormat != "json" {
			return nil, fmt.Errorf("invalid --log-format %q (must be 'text' or 'json')", Flags.LogFormat)
		}
		cfg.Log.Format = Flags.LogFormat
	}
	return cfg, nil
}

// NewContainer loads the configuration and wires the application.
func NewContainer() (*container.Container, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return container.NewContainer(cfg)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) < 1 {
		_, err := fmt.Fprintln(out, UsageMessage)
		return err
	}

	c, err := NewContainer()
	if err != nil {
		return err
	}
	defer func() {
		_ = c.Close()
	}()

	_, err = c.NewRunner(out).Run(cmd.Context(), runner.Options{
		InputFile: args[0],
		UseCache:  UseCache,
		Rebuild:   Rebuild,
	})
	if errors.Is(err, runner.ErrInputNotFound) {
		_, err = fmt.Fprintln(out, NoFileMessage)
		return err
	}
	return err
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/spending-nb/cmd/inspect"
	"fjacquet/spending-nb/cmd/predict"
	"fjacquet/spending-nb/cmd/root"
	"fjacquet/spending-nb/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// Load .env before anything reads the environment.
	config.LoadEnv()

	// Early messages from the standard logger honor LOG_LEVEL.
	logrus.SetLevel(config.LevelFromEnv())
	logrus.SetOutput(os.Stderr)

	root.Init()
	root.Cmd.AddCommand(predict.Cmd)
	root.Cmd.AddCommand(inspect.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		// cobra has already printed the error
		logrus.WithError(err).Debug("Command failed")
		stop()
		os.Exit(1)
	}
}

// Package container provides dependency injection for the spending-nb
// application. It centralizes the creation and wiring of the model, its
// cache and the run pipeline.
package container

import (
	"fmt"
	"io"
	"os"

	"fjacquet/spending-nb/internal/bayes"
	"fjacquet/spending-nb/internal/config"
	"fjacquet/spending-nb/internal/logging"
	"fjacquet/spending-nb/internal/modelcache"
	"fjacquet/spending-nb/internal/runner"
	"fjacquet/spending-nb/internal/tokenizer"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation. The store it holds is the single
// model shared by the classifier, the cache and the runner.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      *bayes.Store
	classifier *bayes.Classifier
	cache      *modelcache.Cache
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	mode := cfg.TokenizerMode()
	tokenize, err := tokenizer.ForMode(mode)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokenizer: %w", err)
	}
	if mode == "" {
		mode = tokenizer.ModeWhitespace
	}

	store := bayes.NewStoreWithMode(mode, tokenize)
	classifier := bayes.NewClassifier(store, cfg.ScoringMode())
	cache := modelcache.New(cfg.Data.CacheFile, mode, logger)

	logger.Debug("Container initialized",
		logging.F(logging.FieldTokenizer, mode),
		logging.F(logging.FieldScoring, classifier.Mode()),
		logging.F(logging.FieldCacheFile, cfg.Data.CacheFile))

	return &Container{
		logger:     logger,
		config:     cfg,
		store:      store,
		classifier: classifier,
		cache:      cache,
	}, nil
}

// NewRunner returns a pipeline runner that prints its report to out.
func (c *Container) NewRunner(out io.Writer) *runner.Runner {
	var progress bayes.ProgressFactory
	if c.config.Report.Progress {
		progress = runner.TerminalProgress(os.Stderr)
	}
	return runner.New(runner.Dependencies{
		Config:     c.config,
		Store:      c.store,
		Classifier: c.classifier,
		Cache:      c.cache,
		Logger:     c.logger,
		Out:        out,
		Progress:   progress,
	})
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the shared frequency store.
func (c *Container) GetStore() *bayes.Store {
	return c.store
}

// GetClassifier returns the classifier bound to the shared store.
func (c *Container) GetClassifier() *bayes.Classifier {
	return c.classifier
}

// GetCache returns the model cache.
func (c *Container) GetCache() *modelcache.Cache {
	return c.cache
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}

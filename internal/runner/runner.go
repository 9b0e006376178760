// Package runner drives one evaluation run: train or load the model, score a
// labeled statement, report accuracy, archive the statement and persist the
// updated model.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"fjacquet/spending-nb/internal/bayes"
	"fjacquet/spending-nb/internal/common"
	"fjacquet/spending-nb/internal/config"
	"fjacquet/spending-nb/internal/dateutils"
	"fjacquet/spending-nb/internal/fileutils"
	"fjacquet/spending-nb/internal/logging"
	"fjacquet/spending-nb/internal/models"
	"fjacquet/spending-nb/internal/report"
	"fjacquet/spending-nb/internal/validation"
)

// ErrInputNotFound is returned when the statement to evaluate does not exist.
var ErrInputNotFound = errors.New("input file not found")

// Cache loads and persists the model between runs.
type Cache interface {
	bayes.SnapshotLoader
	Save(snap bayes.Snapshot) error
	Clear() error
}

// Dependencies are the collaborators of a Runner.
type Dependencies struct {
	Config     *config.Config
	Store      *bayes.Store
	Classifier *bayes.Classifier
	Cache      Cache // optional
	Logger     logging.Logger
	Out        io.Writer
	Progress   bayes.ProgressFactory // optional
}

// Options select the statement and whether the cached model may be used.
// Rebuild clears the cache before training and overrides UseCache.
type Options struct {
	InputFile string
	UseCache  bool
	Rebuild   bool
}

// Result summarizes a completed run.
type Result struct {
	Train        bayes.TrainResult
	Evaluation   bayes.Evaluation
	ArchivedPath string
	CacheSaved   bool
}

// Runner executes the pipeline strictly in sequence.
type Runner struct {
	cfg        *config.Config
	store      *bayes.Store
	classifier *bayes.Classifier
	cache      Cache
	reader     *common.PurchaseReader
	printer    *report.Printer
	logger     logging.Logger
	progress   bayes.ProgressFactory
}

// New creates a Runner. Missing optional dependencies fall back to defaults.
func New(deps Dependencies) *Runner {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}
	store := deps.Store
	if store == nil {
		store = bayes.NewStore()
	}
	classifier := deps.Classifier
	if classifier == nil {
		classifier = bayes.NewClassifier(store, cfg.ScoringMode())
	}
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}

	return &Runner{
		cfg:        cfg,
		store:      store,
		classifier: classifier,
		cache:      deps.Cache,
		reader:     common.NewPurchaseReader(cfg.Delimiter(), logger),
		printer:    report.NewPrinter(out, cfg.Report.Color),
		logger:     logger,
		progress:   deps.Progress,
	}
}

// Run evaluates opts.InputFile. A failure to save the model is logged and
// does not fail the run.
func (r *Runner) Run(ctx context.Context, opts Options) (Result, error) {
	var result Result

	if !fileutils.FileExists(opts.InputFile) {
		return result, fmt.Errorf("%w: %s", ErrInputNotFound, opts.InputFile)
	}
	if err := validation.ValidateArchiveDir(r.cfg.Data.ArchiveDir); err != nil {
		return result, err
	}

	useCache := opts.UseCache
	if opts.Rebuild {
		if err := r.clearModel(); err != nil {
			return result, err
		}
		useCache = false
	}

	trained, err := r.Train(ctx, useCache)
	if err != nil {
		return result, err
	}
	result.Train = trained

	if err := ctx.Err(); err != nil {
		return result, err
	}

	purchases, err := r.reader.ReadFile(opts.InputFile)
	if err != nil {
		return result, fmt.Errorf("failed to read %s: %w", opts.InputFile, err)
	}

	evaluation, err := bayes.NewEvaluator(r.classifier, r.logger).Evaluate(purchases)
	if err != nil && !errors.Is(err, bayes.ErrNoExamples) {
		return result, err
	}
	result.Evaluation = evaluation

	if err := r.printReport(evaluation); err != nil {
		return result, fmt.Errorf("failed to write report: %w", err)
	}

	archived, err := fileutils.ArchiveFile(opts.InputFile, r.cfg.Data.ArchiveDir)
	if err != nil {
		return result, fmt.Errorf("failed to archive %s: %w", opts.InputFile, err)
	}
	result.ArchivedPath = archived
	r.logger.Info("Archived statement",
		logging.F(logging.FieldInputFile, opts.InputFile),
		logging.F(logging.FieldArchiveDir, r.cfg.Data.ArchiveDir))

	result.CacheSaved = r.saveModel()
	return result, nil
}

// Train populates the store from the cache when allowed, otherwise from the
// configured history file.
func (r *Runner) Train(ctx context.Context, useCache bool) (bayes.TrainResult, error) {
	if err := ctx.Err(); err != nil {
		return bayes.TrainResult{}, err
	}

	var loader bayes.SnapshotLoader
	if r.cache != nil {
		loader = r.cache
	}
	trainer := bayes.NewTrainer(r.store, loader, r.logger)
	trainer.SetProgress(r.progress)

	historyFile := r.cfg.Data.HistoryFile
	result, err := trainer.Train(useCache, func() ([]models.Purchase, error) {
		r.logger.Debug("Reading training history", logging.F(logging.FieldHistoryFile, historyFile))
		return r.reader.ReadFile(historyFile)
	})
	if err != nil {
		return result, fmt.Errorf("failed to train from %s: %w", historyFile, err)
	}
	return result, nil
}

func (r *Runner) printReport(evaluation bayes.Evaluation) error {
	if err := r.printer.PrintAccuracy(evaluation.Accuracy); err != nil {
		return err
	}
	if !r.cfg.Report.Breakdown || len(evaluation.Predictions) == 0 {
		return nil
	}

	dates := make([]time.Time, 0, len(evaluation.Predictions))
	for _, p := range evaluation.Predictions {
		if t, ok := p.Purchase.Time(); ok {
			dates = append(dates, t)
		}
	}
	if from, to, ok := dateutils.Period(dates); ok {
		if err := r.printer.PrintPeriod(from, to); err != nil {
			return err
		}
	}
	return r.printer.PrintBreakdown(models.Summarize(evaluation.Predictions))
}

func (r *Runner) clearModel() error {
	if r.cache == nil {
		return nil
	}
	if err := r.cache.Clear(); err != nil {
		return fmt.Errorf("failed to clear classifier cache: %w", err)
	}
	r.logger.Info("Cleared classifier cache")
	return nil
}

func (r *Runner) saveModel() bool {
	if r.cache == nil {
		return false
	}
	if err := r.cache.Save(r.store.Snapshot()); err != nil {
		r.logger.WithError(err).Warn("Failed to save classifier cache")
		return false
	}
	return true
}

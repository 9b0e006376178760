package bayes

import (
	"fjacquet/spending-nb/internal/logging"
	"fjacquet/spending-nb/internal/models"
)

// SnapshotLoader yields a previously saved model. ok is false whenever the
// cached model is missing or unusable, in which case the trainer rebuilds.
type SnapshotLoader interface {
	Load() (snap Snapshot, ok bool)
}

// HistorySource supplies the labeled historical purchases. It is only
// consulted when no usable cached model exists.
type HistorySource func() ([]models.Purchase, error)

// Progress is advanced once per purchase folded into the store.
type Progress interface {
	Add(n int) error
	Finish() error
}

// ProgressFactory creates a Progress for total purchases.
type ProgressFactory func(total int) Progress

// TrainResult describes how the store was populated.
type TrainResult struct {
	FromCache bool
	Examples  int
}

// Trainer populates a Store from the model cache or from history.
type Trainer struct {
	store    *Store
	cache    SnapshotLoader
	logger   logging.Logger
	progress ProgressFactory
}

// NewTrainer creates a Trainer. cache may be nil when caching is unavailable.
func NewTrainer(store *Store, cache SnapshotLoader, logger logging.Logger) *Trainer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Trainer{store: store, cache: cache, logger: logger}
}

// SetProgress reports history folding through f. A nil f disables reporting.
func (t *Trainer) SetProgress(f ProgressFactory) {
	t.progress = f
}

// Train adopts the cached model when useCache is set and the cache holds a
// complete snapshot. Otherwise it folds every historical purchase into the
// store in order, ignoring date, cost and rating.
func (t *Trainer) Train(useCache bool, history HistorySource) (TrainResult, error) {
	if useCache && t.cache != nil {
		if snap, ok := t.cache.Load(); ok {
			err := t.store.Restore(snap)
			if err == nil {
				t.logger.Info("Found existing cached classifier",
					logging.F(logging.FieldCategories, len(snap.Categories)),
					logging.F(logging.FieldVocabulary, len(snap.Vocabulary)))
				return TrainResult{FromCache: true, Examples: t.store.TotalExamples()}, nil
			}
			t.logger.WithError(err).Warn("Cached classifier rejected, rebuilding")
		}
	}

	t.logger.Info("Creating new classifier")
	purchases, err := history()
	if err != nil {
		return TrainResult{}, err
	}
	t.Fit(purchases)

	t.logger.Info("Classifier trained",
		logging.F(logging.FieldExamples, len(purchases)),
		logging.F(logging.FieldCategories, len(t.store.order)),
		logging.F(logging.FieldVocabulary, t.store.VocabularySize()))
	return TrainResult{Examples: len(purchases)}, nil
}

// Fit adds every purchase to the store in order.
func (t *Trainer) Fit(purchases []models.Purchase) {
	var progress Progress
	if t.progress != nil && len(purchases) > 0 {
		progress = t.progress(len(purchases))
	}

	for _, p := range purchases {
		t.store.AddExample(p.Description, p.Category)
		if progress != nil {
			if err := progress.Add(1); err != nil {
				t.logger.WithError(err).Debug("Failed to update progress")
				progress = nil
			}
		}
	}

	if progress != nil {
		if err := progress.Finish(); err != nil {
			t.logger.WithError(err).Debug("Failed to finish progress")
		}
	}
}

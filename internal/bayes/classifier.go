package bayes

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUntrained is returned when scoring against a store with no examples.
var ErrUntrained = errors.New("classifier has no training examples")

// ScoringMode selects how the category prior enters the score.
type ScoringMode string

const (
	// ScoringReference starts each score from the raw prior probability and
	// adds log likelihoods to it. This matches the historical tool's output.
	ScoringReference ScoringMode = "reference"
	// ScoringLogPrior starts each score from ln(prior), which is the
	// textbook multinomial Naive Bayes decision rule.
	ScoringLogPrior ScoringMode = "log-prior"
)

// ParseScoringMode validates a configured scoring mode. Empty means reference.
func ParseScoringMode(s string) (ScoringMode, error) {
	switch ScoringMode(s) {
	case ScoringReference, "":
		return ScoringReference, nil
	case ScoringLogPrior:
		return ScoringLogPrior, nil
	default:
		return "", fmt.Errorf("unknown scoring mode %q (must be %q or %q)", s, ScoringReference, ScoringLogPrior)
	}
}

// CategoryScore is the score assigned to one category.
type CategoryScore struct {
	Category string
	Score    float64
}

// Classifier scores descriptions against a Store using Laplace-smoothed
// multinomial Naive Bayes.
type Classifier struct {
	store *Store
	mode  ScoringMode
}

// NewClassifier returns a classifier reading from store.
func NewClassifier(store *Store, mode ScoringMode) *Classifier {
	if mode == "" {
		mode = ScoringReference
	}
	return &Classifier{store: store, mode: mode}
}

// Mode returns the scoring mode.
func (c *Classifier) Mode() ScoringMode {
	return c.mode
}

// Scores returns one score per category in first-seen order.
//
// With V distinct vocabulary tokens, N examples, and for category c an
// example count n(c) and token total W(c):
//
//	score(c) = prior(c) + Σ ln((count(w,c)+1) / (W(c)+V))
//
// where the sum runs over description tokens present in the vocabulary
// (repeats included) and prior(c) is n(c)/N, or ln(n(c)/N) in log-prior
// mode. Tokens never seen in any category are skipped.
func (c *Classifier) Scores(description string) ([]CategoryScore, error) {
	s := c.store
	total := s.TotalExamples()
	if total == 0 {
		return nil, ErrUntrained
	}
	vocabSize := float64(s.VocabularySize())

	scores := make([]CategoryScore, len(s.order))
	denominators := make([]float64, len(s.order))
	for i, cat := range s.order {
		prior := float64(cat.examples) / float64(total)
		if c.mode == ScoringLogPrior {
			prior = math.Log(prior)
		}
		scores[i] = CategoryScore{Category: cat.name, Score: prior}
		denominators[i] = float64(cat.tally) + vocabSize
	}

	for _, tok := range s.Tokenize(description) {
		if !s.InVocabulary(tok) {
			continue
		}
		for i, cat := range s.order {
			scores[i].Score += math.Log(float64(cat.tokens[tok] + 1))
			scores[i].Score -= math.Log(denominators[i])
		}
	}
	return scores, nil
}

// Classify returns the highest-scoring category. Ties go to the category
// seen first.
func (c *Classifier) Classify(description string) (string, error) {
	scores, err := c.Scores(description)
	if err != nil {
		return "", err
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].Score > scores[best].Score {
			best = i
		}
	}
	return scores[best].Category, nil
}

// Top returns up to n scores ordered best first. Equal scores keep
// first-seen order.
func (c *Classifier) Top(description string, n int) ([]CategoryScore, error) {
	scores, err := c.Scores(description)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	if n > 0 && n < len(scores) {
		scores = scores[:n]
	}
	return scores, nil
}

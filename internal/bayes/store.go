// Package bayes implements the multinomial Naive Bayes engine that assigns
// spending categories to purchase descriptions.
//
// A Store accumulates three views of the same stream of (description,
// category) examples: per-category token counts, a global vocabulary and
// per-category example counts. The Trainer fills it from historical data,
// the Classifier scores against it and the Evaluator keeps feeding it while
// scoring a labeled file.
package bayes

import (
	"errors"
	"fmt"

	"fjacquet/spending-nb/internal/tokenizer"
)

var (
	errIncompleteSnapshot   = errors.New("snapshot is incomplete")
	errInconsistentSnapshot = errors.New("snapshot vocabulary does not match category counts")
	errDuplicateCategory    = errors.New("duplicate category in snapshot")

	// ErrTokenizerMismatch is returned when a snapshot was built under a
	// different tokenizer mode than the store uses.
	ErrTokenizerMismatch = errors.New("snapshot tokenizer mode does not match")
)

// category holds the counts observed for one label.
type category struct {
	name     string
	tokens   map[string]int
	tally    int // sum of tokens
	examples int
}

func newCategory(name string) *category {
	return &category{
		name:   name,
		tokens: make(map[string]int),
	}
}

// Store is the frequency store. Categories are kept in first-seen order,
// which is the iteration order used for tie-breaking.
type Store struct {
	tokenize   tokenizer.Func
	mode       tokenizer.Mode
	order      []*category
	byName     map[string]*category
	vocabulary map[string]int
}

// NewStore returns an empty store using the whitespace tokenizer.
func NewStore() *Store {
	return NewStoreWithMode(tokenizer.ModeWhitespace, tokenizer.Whitespace)
}

// NewStoreWithMode returns an empty store that tokenizes with fn. mode is
// recorded in snapshots so that a model is never reused under another
// tokenizer.
func NewStoreWithMode(mode tokenizer.Mode, fn tokenizer.Func) *Store {
	if fn == nil {
		fn = tokenizer.Whitespace
	}
	if mode == "" {
		mode = tokenizer.ModeWhitespace
	}
	return &Store{
		tokenize:   fn,
		mode:       mode,
		byName:     make(map[string]*category),
		vocabulary: make(map[string]int),
	}
}

// Mode returns the tokenizer mode this store counts under.
func (s *Store) Mode() tokenizer.Mode {
	return s.mode
}

// Tokenize splits a description the same way AddExample does.
func (s *Store) Tokenize(description string) []string {
	return s.tokenize(description)
}

func (s *Store) getOrCreate(name string) *category {
	if cat, ok := s.byName[name]; ok {
		return cat
	}
	cat := newCategory(name)
	s.byName[name] = cat
	s.order = append(s.order, cat)
	return cat
}

// AddExample folds one labeled description into the store. Every token
// occurrence increments both the category count and the vocabulary count;
// the category's example count grows by exactly one per call.
func (s *Store) AddExample(description, categoryName string) {
	cat := s.getOrCreate(categoryName)
	for _, tok := range s.tokenize(description) {
		cat.tokens[tok]++
		cat.tally++
		s.vocabulary[tok]++
	}
	cat.examples++
}

// IsComplete reports whether all three views hold data.
func (s *Store) IsComplete() bool {
	return len(s.order) > 0 && len(s.vocabulary) > 0 && s.TotalExamples() > 0
}

// Categories returns category names in first-seen order.
func (s *Store) Categories() []string {
	names := make([]string, len(s.order))
	for i, cat := range s.order {
		names[i] = cat.name
	}
	return names
}

// VocabularySize is the number of distinct tokens seen across all categories.
func (s *Store) VocabularySize() int {
	return len(s.vocabulary)
}

// VocabularyCount returns the total occurrences of token across categories.
func (s *Store) VocabularyCount(token string) int {
	return s.vocabulary[token]
}

// InVocabulary reports whether token has been seen in any category.
func (s *Store) InVocabulary(token string) bool {
	_, ok := s.vocabulary[token]
	return ok
}

// TotalExamples is the number of examples across all categories.
func (s *Store) TotalExamples() int {
	total := 0
	for _, cat := range s.order {
		total += cat.examples
	}
	return total
}

// ExampleCount returns how many examples were labeled with name.
func (s *Store) ExampleCount(name string) int {
	if cat, ok := s.byName[name]; ok {
		return cat.examples
	}
	return 0
}

// WordCount returns the total token occurrences recorded under name.
func (s *Store) WordCount(name string) int {
	if cat, ok := s.byName[name]; ok {
		return cat.tally
	}
	return 0
}

// TokenCount returns how often token occurred under name.
func (s *Store) TokenCount(name, token string) int {
	if cat, ok := s.byName[name]; ok {
		return cat.tokens[token]
	}
	return 0
}

// CategorySnapshot is the persisted form of one category.
type CategorySnapshot struct {
	Name     string
	Tokens   map[string]int
	Examples int
}

// Snapshot is the all-or-nothing persisted form of a Store.
type Snapshot struct {
	Tokenizer  tokenizer.Mode
	Categories []CategorySnapshot // first-seen order
	Vocabulary map[string]int
}

// IsComplete mirrors Store.IsComplete for a persisted snapshot.
func (snap Snapshot) IsComplete() bool {
	if len(snap.Categories) == 0 || len(snap.Vocabulary) == 0 {
		return false
	}
	for _, cat := range snap.Categories {
		if cat.Examples > 0 {
			return true
		}
	}
	return false
}

// Snapshot copies the store's state.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Tokenizer:  s.mode,
		Categories: make([]CategorySnapshot, 0, len(s.order)),
		Vocabulary: make(map[string]int, len(s.vocabulary)),
	}
	for _, cat := range s.order {
		tokens := make(map[string]int, len(cat.tokens))
		for tok, n := range cat.tokens {
			tokens[tok] = n
		}
		snap.Categories = append(snap.Categories, CategorySnapshot{
			Name:     cat.name,
			Tokens:   tokens,
			Examples: cat.examples,
		})
	}
	for tok, n := range s.vocabulary {
		snap.Vocabulary[tok] = n
	}
	return snap
}

// Restore replaces the store's state with snap. The snapshot must be
// complete and the vocabulary must equal the per-category sums; otherwise
// the store is left untouched and an error is returned.
func (s *Store) Restore(snap Snapshot) error {
	if snap.Tokenizer != "" && snap.Tokenizer != s.mode {
		return fmt.Errorf("%w: snapshot=%s store=%s", ErrTokenizerMismatch, snap.Tokenizer, s.mode)
	}
	if err := ValidateSnapshot(snap); err != nil {
		return err
	}

	order := make([]*category, 0, len(snap.Categories))
	byName := make(map[string]*category, len(snap.Categories))
	for _, cs := range snap.Categories {
		cat := newCategory(cs.Name)
		for tok, n := range cs.Tokens {
			cat.tokens[tok] = n
			cat.tally += n
		}
		cat.examples = cs.Examples
		order = append(order, cat)
		byName[cs.Name] = cat
	}
	vocabulary := make(map[string]int, len(snap.Vocabulary))
	for tok, n := range snap.Vocabulary {
		vocabulary[tok] = n
	}

	s.order = order
	s.byName = byName
	s.vocabulary = vocabulary
	return nil
}

// ValidateSnapshot checks completeness and the vocabulary invariant.
func ValidateSnapshot(snap Snapshot) error {
	if !snap.IsComplete() {
		return errIncompleteSnapshot
	}

	sums := make(map[string]int, len(snap.Vocabulary))
	seen := make(map[string]struct{}, len(snap.Categories))
	for _, cat := range snap.Categories {
		if _, dup := seen[cat.Name]; dup {
			return fmt.Errorf("%w: %q", errDuplicateCategory, cat.Name)
		}
		seen[cat.Name] = struct{}{}
		if cat.Examples < 0 {
			return fmt.Errorf("%w: negative example count for %q", errInconsistentSnapshot, cat.Name)
		}
		for tok, n := range cat.Tokens {
			if n <= 0 {
				return fmt.Errorf("%w: count %d for token %q in %q", errInconsistentSnapshot, n, tok, cat.Name)
			}
			sums[tok] += n
		}
	}

	if len(sums) != len(snap.Vocabulary) {
		return fmt.Errorf("%w: %d tokens counted, %d in vocabulary", errInconsistentSnapshot, len(sums), len(snap.Vocabulary))
	}
	for tok, n := range snap.Vocabulary {
		if sums[tok] != n {
			return fmt.Errorf("%w: token %q vocabulary=%d sum=%d", errInconsistentSnapshot, tok, n, sums[tok])
		}
	}
	return nil
}

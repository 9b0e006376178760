package report

import (
	"bytes"
	"fmt"
	"sort"

	"fjacquet/spending-nb/internal/bayes"

	"gopkg.in/yaml.v3"
)

// ModelSummary describes a trained model for the inspect command.
type ModelSummary struct {
	Source     string            `yaml:"source,omitempty"`
	Tokenizer  string            `yaml:"tokenizer"`
	Scoring    string            `yaml:"scoring"`
	Examples   int               `yaml:"examples"`
	Vocabulary int               `yaml:"vocabulary_size"`
	Categories []CategoryProfile `yaml:"categories"`
}

// CategoryProfile summarizes one category of the model.
type CategoryProfile struct {
	Name      string   `yaml:"name"`
	Examples  int      `yaml:"examples"`
	Words     int      `yaml:"words"`
	Prior     float64  `yaml:"prior"`
	TopTokens []string `yaml:"top_tokens,omitempty"`
}

// NewModelSummary profiles store. topTokens limits the most frequent tokens
// listed per category; zero lists none.
func NewModelSummary(store *bayes.Store, scoring bayes.ScoringMode, topTokens int) ModelSummary {
	snap := store.Snapshot()
	total := store.TotalExamples()

	summary := ModelSummary{
		Tokenizer:  string(store.Mode()),
		Scoring:    string(scoring),
		Examples:   total,
		Vocabulary: store.VocabularySize(),
		Categories: make([]CategoryProfile, 0, len(snap.Categories)),
	}
	for _, cat := range snap.Categories {
		profile := CategoryProfile{
			Name:      cat.Name,
			Examples:  cat.Examples,
			Words:     store.WordCount(cat.Name),
			TopTokens: mostFrequent(cat.Tokens, topTokens),
		}
		if total > 0 {
			profile.Prior = float64(cat.Examples) / float64(total)
		}
		summary.Categories = append(summary.Categories, profile)
	}
	return summary
}

// mostFrequent returns up to n tokens by descending count, ties by name.
func mostFrequent(tokens map[string]int, n int) []string {
	if n <= 0 || len(tokens) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tokens))
	for tok := range tokens {
		keys = append(keys, tok)
	}
	sort.Slice(keys, func(i, j int) bool {
		if tokens[keys[i]] != tokens[keys[j]] {
			return tokens[keys[i]] > tokens[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// MarshalModelSummary renders summary as YAML.
func MarshalModelSummary(summary ModelSummary) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		return nil, fmt.Errorf("failed to marshal model summary: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal model summary: %w", err)
	}
	return buf.Bytes(), nil
}

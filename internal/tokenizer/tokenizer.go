// Package tokenizer turns purchase descriptions into tokens for the
// Naive Bayes frequency store.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Mode names a tokenization strategy. The mode used to build a model is
// persisted with it, since counts are only comparable under one mode.
type Mode string

const (
	// ModeWhitespace splits on whitespace and keeps tokens verbatim.
	ModeWhitespace Mode = "whitespace"
	// ModeStemmed normalizes, lower-cases and stems each whitespace token.
	ModeStemmed Mode = "stemmed"
)

// Func tokenizes a description.
type Func func(text string) []string

// Whitespace splits text on runs of whitespace. Case and punctuation are
// preserved. Empty or whitespace-only input yields an empty slice.
func Whitespace(text string) []string {
	fields := strings.Fields(text)
	if fields == nil {
		return []string{}
	}
	return fields
}

// Stemmed applies NFKC normalization, lower-casing and English Snowball
// stemming to every whitespace token. Tokens that stem to nothing are dropped.
func Stemmed(text string) []string {
	fields := Whitespace(text)
	lower := cases.Lower(language.Und)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := lower.String(norm.NFKC.String(f))
		if stem := english.Stem(tok, true); stem != "" {
			tok = stem
		}
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// ForMode resolves a Mode to its tokenizer. An empty mode means whitespace.
func ForMode(mode Mode) (Func, error) {
	switch mode {
	case ModeWhitespace, "":
		return Whitespace, nil
	case ModeStemmed:
		return Stemmed, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer mode %q (must be %q or %q)", mode, ModeWhitespace, ModeStemmed)
	}
}

// Package parsererror defines the typed errors raised while reading
// statement files.
package parsererror

import "fmt"

// ParseError represents a row that could not be parsed. Line is 1-based;
// zero means the position is unknown.
type ParseError struct {
	File  string
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	location := e.File
	if e.Line > 0 {
		location = fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: failed to parse row: %v", location, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse %s='%s': %v", location, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

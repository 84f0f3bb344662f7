package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn reports that a required header column is absent.
	ErrMissingColumn = errors.New("missing column")
	// ErrParse reports a quantity, price or date that could not be parsed.
	ErrParse = errors.New("parse error")
	// ErrEmptySource reports that no rows matched the target product.
	// It is never returned by Normalize; callers use it to flag an empty result.
	ErrEmptySource = errors.New("no rows match target product")
)

// ColumnError names the source and the required column it lacks.
type ColumnError struct {
	Source string
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: missing required column %q", e.Source, e.Column)
}

func (e *ColumnError) Unwrap() error { return ErrMissingColumn }

// ParseError locates a field that failed to parse.
type ParseError struct {
	Source string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d: parsing %s %q: %v", e.Source, e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

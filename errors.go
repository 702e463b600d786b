package scen2html

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	ErrEmptySource     = errors.New("source text cannot be empty")
	ErrEncoding        = errors.New("source text cannot be decoded")
	ErrUnknownEncoding = errors.New("unknown encoding name")
	ErrCancelled       = errors.New("conversion cancelled")
	ErrStrict          = errors.New("strict mode failure")

	// Keyword table validation errors.
	ErrEmptyKeyword = errors.New("keyword name cannot be empty")
	ErrUnknownTag   = errors.New("keyword maps to a tag outside the nesting table")
)

// StrictError is returned by Convert in strict mode when an
// ERROR-severity diagnostic is recorded. It carries the first such
// diagnostic in document order; no partial document is produced.
type StrictError struct {
	Diagnostic Diagnostic
}

// Error implements the error interface.
func (e *StrictError) Error() string {
	return fmt.Sprintf("strict mode failure: %s", e.Diagnostic)
}

// Unwrap lets errors.Is(err, ErrStrict) match a StrictError.
func (e *StrictError) Unwrap() error {
	return ErrStrict
}

package main

import (
	"errors"
	"os"

	scen2html "github.com/ayatori/go-scen2html"
	"github.com/ayatori/go-scen2html/internal/config"
)

// Exit codes for the scen2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitConvert = 4 // Encoding failure or strict-mode failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must wrap with
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Conversion failures (exit 4)
	if errors.Is(err, scen2html.ErrEncoding) ||
		errors.Is(err, scen2html.ErrStrict) ||
		errors.Is(err, scen2html.ErrCancelled) {
		return ExitConvert
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidKeyword) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, scen2html.ErrEmptySource) ||
		errors.Is(err, scen2html.ErrUnknownEncoding) ||
		errors.Is(err, scen2html.ErrEmptyKeyword) ||
		errors.Is(err, scen2html.ErrUnknownTag) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}

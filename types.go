package scen2html

import "time"

// Pipeline tuning defaults.
const (
	// DefaultParallelThreshold is the line count above which a document
	// is parsed in parallel chunks.
	DefaultParallelThreshold = 1000

	// DefaultChunkSize is the target chunk length in lines.
	DefaultChunkSize = 256

	// defaultTimeout is the per-document wall-clock budget for the
	// parallel parse before it degrades to a sequential pass.
	defaultTimeout = 30 * time.Second
)

// Input contains conversion parameters.
type Input struct {
	Source   []byte // raw document bytes (required)
	Encoding string // declared encoding, "" means UTF-8 (BOM-tolerant)
}

// Result is a completed conversion: the rendered document plus every
// diagnostic collected along the way, sorted by (line, column). In
// graceful mode the document is always complete and best-effort.
type Result struct {
	HTML        string
	Diagnostics []Diagnostic
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	parallelThreshold int
	chunkSize         int
	workers           int
	strict            bool
	timeout           time.Duration
}

// WithParallelThreshold sets the line count above which documents are
// parsed in parallel. Zero or negative keeps the default.
func WithParallelThreshold(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.cfg.parallelThreshold = n
		}
	}
}

// WithChunkSize sets the target chunk length in lines. Values below
// the internal minimum are raised to it at plan time.
func WithChunkSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.cfg.chunkSize = n
		}
	}
}

// WithWorkers pins the worker pool size. Zero means auto-size from
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.cfg.workers = n
		}
	}
}

// WithStrictMode makes the first error-class diagnostic fail the whole
// conversion instead of degrading gracefully.
func WithStrictMode() Option {
	return func(s *Service) {
		s.cfg.strict = true
	}
}

// WithTimeout sets the parallel-parse wall-clock budget.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("scen2html: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithKeywords extends or overrides the builtin keyword table. This is
// the hook the configuration layer uses; the core table itself stays
// compiled in.
func WithKeywords(overrides map[string]KeywordSpec) Option {
	return func(s *Service) {
		s.overrides = overrides
	}
}

package scen2html

import (
	"context"
	"fmt"
	"slices"
)

// Service orchestrates the text-to-HTML pipeline. A Service is
// immutable after New and safe for concurrent use; every conversion is
// stateless.
type Service struct {
	cfg       serviceConfig
	overrides map[string]KeywordSpec
	reg       *registry
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithStrictMode).
func New(opts ...Option) (*Service, error) {
	s := &Service{
		cfg: serviceConfig{
			parallelThreshold: DefaultParallelThreshold,
			chunkSize:         DefaultChunkSize,
			timeout:           defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	reg, err := newRegistry(s.overrides)
	if err != nil {
		return nil, fmt.Errorf("compiling keyword table: %w", err)
	}
	s.reg = reg
	return s, nil
}

// Convert runs the full pipeline and returns the rendered document with
// its diagnostics. The context is used for cooperative cancellation,
// checked at stage boundaries and between chunk dispatches; a cancelled
// run returns ErrCancelled and no partial HTML.
//
// Graceful mode (the default) always returns a complete best-effort
// document. Strict mode returns a StrictError carrying the first
// error-severity diagnostic instead.
func (s *Service) Convert(ctx context.Context, input Input) (*Result, error) {
	if len(input.Source) == 0 {
		return nil, ErrEmptySource
	}

	text, err := decodeSource(input.Source, input.Encoding)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	lines := slices.Collect(scanLines(text))
	diags := newCollector(s.cfg.strict)

	var nodes []Node
	if len(lines) > s.cfg.parallelThreshold {
		nodes, err = parseParallel(ctx, lines, s.reg, s.cfg, diags)
		if err != nil {
			return nil, err
		}
	} else {
		nodes, _ = parsePortion(lines, s.reg, diags, true)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	// Only strict mode records ERROR severity on recoverable kinds, so
	// this aborts nothing in graceful mode.
	if d := diags.firstError(); d != nil {
		return nil, &StrictError{Diagnostic: *d}
	}

	return &Result{
		HTML:        renderDocument(nodes),
		Diagnostics: diags.all(),
	}, nil
}

// ConvertString converts UTF-8 source text.
func (s *Service) ConvertString(ctx context.Context, source string) (*Result, error) {
	return s.Convert(ctx, Input{Source: []byte(source)})
}

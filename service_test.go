package scen2html

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func mustService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	svc, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return svc
}

func TestConvert_EmptySource(t *testing.T) {
	t.Parallel()

	svc := mustService(t)
	_, err := svc.Convert(context.Background(), Input{})
	if !errors.Is(err, ErrEmptySource) {
		t.Errorf("err = %v, want ErrEmptySource", err)
	}
}

func TestConvert_UnknownEncoding(t *testing.T) {
	t.Parallel()

	svc := mustService(t)
	_, err := svc.Convert(context.Background(), Input{Source: []byte("x"), Encoding: "klingon"})
	if !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("err = %v, want ErrUnknownEncoding", err)
	}
}

func TestConvert_GracefulKeepsGoing(t *testing.T) {
	t.Parallel()

	svc := mustService(t)
	res, err := svc.ConvertString(context.Background(), "#謎#\ncontent\n##\n")
	if err != nil {
		t.Fatalf("ConvertString: %v", err)
	}

	if !strings.Contains(res.HTML, "content") {
		t.Errorf("best-effort HTML lost the block content:\n%s", res.HTML)
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(res.Diagnostics), res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.Kind != DiagUnknownKeyword || d.Severity != SeverityWarning {
		t.Errorf("diagnostic = %+v, want unknown-keyword WARNING", d)
	}
}

func TestConvert_StrictFailsOnUnknownKeyword(t *testing.T) {
	t.Parallel()

	svc := mustService(t, WithStrictMode())
	_, err := svc.ConvertString(context.Background(), "#謎#\ncontent\n##\n")
	if !errors.Is(err, ErrStrict) {
		t.Fatalf("err = %v, want ErrStrict", err)
	}

	var se *StrictError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StrictError", err)
	}
	if se.Diagnostic.Kind != DiagUnknownKeyword {
		t.Errorf("kind = %v, want DiagUnknownKeyword", se.Diagnostic.Kind)
	}
	if se.Diagnostic.Line != 1 {
		t.Errorf("line = %d, want 1", se.Diagnostic.Line)
	}
}

func TestConvert_StrictPassesCleanDocument(t *testing.T) {
	t.Parallel()

	svc := mustService(t, WithStrictMode())
	res, err := svc.ConvertString(context.Background(), "#太字#\n重要\n##\n")
	if err != nil {
		t.Fatalf("ConvertString: %v", err)
	}
	if !strings.Contains(res.HTML, "<strong>重要</strong>") {
		t.Errorf("HTML missing bold content:\n%s", res.HTML)
	}
}

// Indent clamping stays a WARNING even in strict mode; only
// error-capable kinds abort.
func TestConvert_StrictToleratesMalformedIndent(t *testing.T) {
	t.Parallel()

	svc := mustService(t, WithStrictMode())
	res, err := svc.ConvertString(context.Background(), "- a\n      - deep\n")
	if err != nil {
		t.Fatalf("ConvertString: %v", err)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind != DiagMalformedIndent {
		t.Errorf("diagnostics = %v, want one malformed-indent warning", res.Diagnostics)
	}
}

func TestConvert_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := mustService(t)
	_, err := svc.ConvertString(ctx, "text\n")
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("err = %v, want ErrCancelled", err)
	}
}

func TestConvert_ParallelMatchesSequentialOutput(t *testing.T) {
	t.Parallel()

	src := generateDoc(400)

	seq := mustService(t, WithParallelThreshold(1 << 30))
	par := mustService(t, WithParallelThreshold(10), WithChunkSize(64), WithWorkers(4))

	seqRes, err := seq.ConvertString(context.Background(), src)
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	parRes, err := par.ConvertString(context.Background(), src)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}

	if seqRes.HTML != parRes.HTML {
		t.Error("parallel HTML differs from sequential HTML")
	}
}

func TestConvert_KeywordOverrides(t *testing.T) {
	t.Parallel()

	svc := mustService(t, WithKeywords(map[string]KeywordSpec{
		"警告": {Tag: "div", Class: "warning"},
	}))
	res, err := svc.ConvertString(context.Background(), "#警告#\ndanger\n##\n")
	if err != nil {
		t.Fatalf("ConvertString: %v", err)
	}
	if !strings.Contains(res.HTML, `<div class="warning">danger</div>`) {
		t.Errorf("override not applied:\n%s", res.HTML)
	}
}

func TestNew_RejectsBadOverrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		overrides map[string]KeywordSpec
		wantErr   error
	}{
		{
			name:      "empty keyword name",
			overrides: map[string]KeywordSpec{"  ": {Tag: "div"}},
			wantErr:   ErrEmptyKeyword,
		},
		{
			name:      "tag outside the nesting order",
			overrides: map[string]KeywordSpec{"警告": {Tag: "marquee"}},
			wantErr:   ErrUnknownTag,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(WithKeywords(tt.overrides))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) did not panic")
		}
	}()
	mustService(t, WithTimeout(0))
}

func TestService_ConcurrentUse(t *testing.T) {
	t.Parallel()

	svc := mustService(t)
	src := "#太字#\n重要\n##\n"

	done := make(chan error, 8)
	for range 8 {
		go func() {
			_, err := svc.ConvertString(context.Background(), src)
			done <- err
		}()
	}
	for range 8 {
		if err := <-done; err != nil {
			t.Errorf("concurrent Convert: %v", err)
		}
	}
}

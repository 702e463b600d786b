package scen2html

import (
	"fmt"
	"slices"
)

// Severity classifies a diagnostic. Warnings never abort a conversion;
// an error severity fails the run at the next stage boundary.
type Severity string

const (
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// DiagKind identifies what a diagnostic is about.
type DiagKind string

const (
	DiagUnknownKeyword    DiagKind = "unknown-keyword"
	DiagUnknownAttribute  DiagKind = "unknown-attribute"
	DiagUnterminatedBlock DiagKind = "unterminated-block"
	DiagMalformedIndent   DiagKind = "malformed-indent"
	DiagManualTOC         DiagKind = "manual-toc"
	DiagWorkerFailure     DiagKind = "worker-failure"
)

// Diagnostic is one problem found during conversion. Line and Column
// are 1-based positions in the source text; Fix, when non-empty, is a
// human-readable suggestion.
type Diagnostic struct {
	Kind     DiagKind
	Severity Severity
	Line     int
	Column   int
	Message  string
	Fix      string
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Severity, d.Message)
	if d.Fix != "" {
		s += " (" + d.Fix + ")"
	}
	return s
}

// collector accumulates diagnostics for one conversion. It is not safe
// for concurrent use; parallel chunk workers each buffer into their own
// collector and the coordinator merges them in chunk order.
type collector struct {
	strict bool
	diags  []Diagnostic
}

func newCollector(strict bool) *collector {
	return &collector{strict: strict}
}

// report records a recoverable problem. In strict mode these kinds
// carry error severity and fail the conversion; in graceful mode they
// are warnings and processing continues.
func (c *collector) report(kind DiagKind, line, col int, message, fix string) {
	sev := SeverityWarning
	if c.strict {
		sev = SeverityError
	}
	c.add(Diagnostic{Kind: kind, Severity: sev, Line: line, Column: col, Message: message, Fix: fix})
}

// warn records a problem that stays a warning in every mode.
func (c *collector) warn(kind DiagKind, line, col int, message, fix string) {
	c.add(Diagnostic{Kind: kind, Severity: SeverityWarning, Line: line, Column: col, Message: message, Fix: fix})
}

func (c *collector) add(d Diagnostic) {
	c.diags = append(c.diags, d)
}

// merge appends another collector's buffered diagnostics.
func (c *collector) merge(diags []Diagnostic) {
	c.diags = append(c.diags, diags...)
}

// firstError returns the earliest error-severity diagnostic in source
// order, or nil when the conversion may proceed.
func (c *collector) firstError() *Diagnostic {
	var first *Diagnostic
	for i := range c.diags {
		d := &c.diags[i]
		if d.Severity != SeverityError {
			continue
		}
		if first == nil || d.Line < first.Line || (d.Line == first.Line && d.Column < first.Column) {
			first = d
		}
	}
	return first
}

// all returns the diagnostics sorted by source position. Insertion
// order breaks ties, which keeps chunk-merged output identical to a
// sequential pass.
func (c *collector) all() []Diagnostic {
	out := slices.Clone(c.diags)
	slices.SortStableFunc(out, func(a, b Diagnostic) int {
		if a.Line != b.Line {
			return a.Line - b.Line
		}
		return a.Column - b.Column
	})
	return out
}

package scen2html

import (
	"slices"
	"testing"
)

func parseAll(t *testing.T, src string, strict bool) ([]Node, *collector) {
	t.Helper()
	reg := mustRegistry(t, nil)
	diags := newCollector(strict)
	nodes, open := parsePortion(slices.Collect(scanLines(src)), reg, diags, true)
	if open != nil {
		t.Fatalf("parsePortion with atEOF returned open block %+v", open)
	}
	return nodes, diags
}

func TestParsePortion_SimpleBlock(t *testing.T) {
	t.Parallel()

	nodes, diags := parseAll(t, "#太字#\n重要\n##\n", false)
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	blk, ok := nodes[0].(*Block)
	if !ok {
		t.Fatalf("node is %T, want *Block", nodes[0])
	}
	if blk.Span() != (Span{Start: 1, End: 3}) {
		t.Errorf("span = %+v", blk.Span())
	}
	if len(blk.Tags) != 1 || blk.Tags[0].Keyword != "太字" {
		t.Errorf("tags = %v", blk.Tags)
	}
	if len(diags.diags) != 0 {
		t.Errorf("diags = %v", diags.diags)
	}
}

func TestParsePortion_TextAroundBlocks(t *testing.T) {
	t.Parallel()

	src := "before\n\n#枠線#\ninside\n##\nafter\n"
	nodes, _ := parseAll(t, src, false)

	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	if _, ok := nodes[0].(*Paragraph); !ok {
		t.Errorf("nodes[0] is %T, want *Paragraph", nodes[0])
	}
	if _, ok := nodes[1].(*Block); !ok {
		t.Errorf("nodes[1] is %T, want *Block", nodes[1])
	}
	p, ok := nodes[2].(*Paragraph)
	if !ok || p.Lines[0] != "after" {
		t.Errorf("nodes[2] = %#v", nodes[2])
	}
}

// One open marker consumes everything up to the next close marker; a
// second open marker inside is plain content.
func TestParsePortion_NoNestedMarkers(t *testing.T) {
	t.Parallel()

	src := "#枠線#\n#太字#\ncontent\n##\n"
	nodes, diags := parseAll(t, src, false)

	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	blk := nodes[0].(*Block)
	if blk.Tags[0].Keyword != "枠線" {
		t.Errorf("keyword = %q", blk.Tags[0].Keyword)
	}
	txt, ok := blk.Children[0].(*Text)
	if !ok || txt.Lines[0] != "#太字#" {
		t.Errorf("inner marker should be content, got %#v", blk.Children[0])
	}
	if len(diags.diags) != 0 {
		t.Errorf("diags = %v", diags.diags)
	}
}

func TestParsePortion_StrayCloseIsText(t *testing.T) {
	t.Parallel()

	nodes, diags := parseAll(t, "hello\n##\nworld\n", false)
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	p := nodes[0].(*Paragraph)
	if !slices.Equal(p.Lines, []string{"hello", "##", "world"}) {
		t.Errorf("Lines = %v", p.Lines)
	}
	if len(diags.diags) != 0 {
		t.Errorf("diags = %v", diags.diags)
	}
}

// An unclosed block at EOF yields exactly one unterminated-block
// diagnostic referencing the opening line and one Block node spanning
// from that line to EOF.
func TestParsePortion_UnterminatedBlock(t *testing.T) {
	t.Parallel()

	src := "intro\n\n#太字#\none\ntwo\n"
	nodes, diags := parseAll(t, src, false)

	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	blk, ok := nodes[1].(*Block)
	if !ok {
		t.Fatalf("nodes[1] is %T, want *Block", nodes[1])
	}
	if blk.Span() != (Span{Start: 3, End: 5}) {
		t.Errorf("span = %+v, want 3..5", blk.Span())
	}

	var unterminated []Diagnostic
	for _, d := range diags.diags {
		if d.Kind == DiagUnterminatedBlock {
			unterminated = append(unterminated, d)
		}
	}
	if len(unterminated) != 1 {
		t.Fatalf("got %d unterminated-block diagnostics, want 1", len(unterminated))
	}
	if unterminated[0].Line != 3 {
		t.Errorf("diagnostic at line %d, want 3 (the opening line)", unterminated[0].Line)
	}
	if unterminated[0].Severity != SeverityWarning {
		t.Errorf("severity = %v, want warning in graceful mode", unterminated[0].Severity)
	}
}

func TestParsePortion_OpenAtWindowEnd(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t, nil)
	diags := newCollector(false)
	lines := slices.Collect(scanLines("before\n#太字#\npartial\n"))

	nodes, open := parsePortion(lines, reg, diags, false)
	if open == nil {
		t.Fatal("expected an open block report")
	}
	if open.line != 2 {
		t.Errorf("open.line = %d, want 2", open.line)
	}
	if len(nodes) != 1 {
		t.Errorf("partial block must be withheld, got %d nodes", len(nodes))
	}
	for _, d := range diags.diags {
		if d.Kind == DiagUnterminatedBlock {
			t.Error("open window must not report unterminated-block")
		}
	}
}

func TestParsePortion_HeadingBlock(t *testing.T) {
	t.Parallel()

	nodes, _ := parseAll(t, "#見出し2#\nIntro\n##\n", false)
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	h, ok := nodes[0].(*Heading)
	if !ok {
		t.Fatalf("node is %T, want *Heading", nodes[0])
	}
	if h.Level != 2 || h.Text != "Intro" {
		t.Errorf("heading = %+v", h)
	}
}

func TestParsePortion_ManualTOCDropped(t *testing.T) {
	t.Parallel()

	nodes, diags := parseAll(t, "#目次#\n- 手書きの目次\n##\nafter\n", false)
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1 (the paragraph after)", len(nodes))
	}
	if len(diags.diags) != 1 || diags.diags[0].Kind != DiagManualTOC {
		t.Errorf("diags = %v", diags.diags)
	}
	if diags.diags[0].Severity != SeverityWarning {
		t.Errorf("manual TOC must stay a warning, got %v", diags.diags[0].Severity)
	}
}

func TestParsePortion_RawAndCodeBlocks(t *testing.T) {
	t.Parallel()

	t.Run("raw keeps content verbatim", func(t *testing.T) {
		t.Parallel()
		nodes, _ := parseAll(t, "#生#\n<hr>\n##\n", false)
		blk := nodes[0].(*Block)
		if !blk.Raw {
			t.Fatal("block should be raw")
		}
		txt := blk.Children[0].(*Text)
		if txt.Lines[0] != "<hr>" {
			t.Errorf("Lines = %v", txt.Lines)
		}
	})

	t.Run("code records language", func(t *testing.T) {
		t.Parallel()
		nodes, _ := parseAll(t, "#コード lang=go#\npackage main\n##\n", false)
		blk := nodes[0].(*Block)
		if !blk.Code || blk.CodeLang != "go" {
			t.Errorf("Code = %v, CodeLang = %q", blk.Code, blk.CodeLang)
		}
	})
}

func TestParsePortion_AllKeywordsUnknown(t *testing.T) {
	t.Parallel()

	nodes, diags := parseAll(t, "#謎#\ncontent\n##\n", false)
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	blk := nodes[0].(*Block)
	if len(blk.Tags) != 0 {
		t.Errorf("tags = %v, want none", blk.Tags)
	}
	if len(diags.diags) != 1 || diags.diags[0].Kind != DiagUnknownKeyword {
		t.Errorf("diags = %v", diags.diags)
	}
}

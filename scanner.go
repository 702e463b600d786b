package scen2html

import (
	"iter"
	"strings"
)

// lineKind classifies a raw source line.
type lineKind uint8

const (
	lineBlank lineKind = iota
	lineText
	lineMarkerOpen
	lineMarkerClose
	lineListItem
)

// listKind distinguishes ordered from unordered list items.
type listKind uint8

const (
	listNone listKind = iota
	listUnordered
	listOrdered
)

// indentUnit is the fixed indentation width (in spaces) that nests a
// list item one level deeper.
const indentUnit = 2

// Line is one classified source line. Lines are produced once by the
// scanner and never mutated afterward.
type Line struct {
	Text string   // raw text without the line terminator
	Num  int      // 1-based line number
	Kind lineKind

	// Marker expression between the '#' delimiters, set on marker-open
	// lines only.
	Expr string

	// List fields, set on list-item lines only.
	List  listKind
	Depth int    // indentation depth in indentUnit steps
	Item  string // item text after the bullet or number
}

// scanLines classifies src line by line. The returned sequence is lazy,
// finite, and restartable: ranging over it again rescans from the
// first line. Classification looks at each line in isolation except
// for indentation depth, which is computed on list lines.
func scanLines(src string) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		num := 0
		for raw := range strings.Lines(src) {
			num++
			text := strings.TrimRight(raw, "\r\n")
			if !yield(classifyLine(text, num)) {
				return
			}
		}
	}
}

// classifyLine builds the Line record for one raw line.
func classifyLine(text string, num int) Line {
	ln := Line{Text: text, Num: num}

	trimmed := strings.TrimRight(text, " \t")
	if strings.TrimSpace(trimmed) == "" {
		ln.Kind = lineBlank
		return ln
	}

	// Close marker: exactly "##". Open marker: "#...#" starting at
	// column one with non-blank content between the delimiters.
	if trimmed == closeMarker {
		ln.Kind = lineMarkerClose
		return ln
	}
	if len(trimmed) >= 3 && strings.HasPrefix(trimmed, "#") && strings.HasSuffix(trimmed, "#") {
		inner := trimmed[1 : len(trimmed)-1]
		if strings.TrimSpace(inner) != "" {
			ln.Kind = lineMarkerOpen
			ln.Expr = inner
			return ln
		}
	}

	if kind, depth, item, ok := parseListItem(text); ok {
		ln.Kind = lineListItem
		ln.List = kind
		ln.Depth = depth
		ln.Item = item
		return ln
	}

	ln.Kind = lineText
	return ln
}

// closeMarker terminates a keyword block.
const closeMarker = "##"

// parseListItem recognizes "- text" and "1. text" items, optionally
// indented by whole indentUnit steps. Partial indentation rounds down.
func parseListItem(text string) (listKind, int, string, bool) {
	spaces := 0
	for spaces < len(text) && text[spaces] == ' ' {
		spaces++
	}
	rest := text[spaces:]
	depth := spaces / indentUnit

	if item, ok := strings.CutPrefix(rest, "- "); ok {
		return listUnordered, depth, strings.TrimSpace(item), true
	}

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits > 0 && strings.HasPrefix(rest[digits:], ". ") {
		return listOrdered, depth, strings.TrimSpace(rest[digits+2:]), true
	}

	return listNone, 0, "", false
}

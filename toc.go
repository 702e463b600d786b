package scen2html

import (
	"fmt"
	"html"
	"strings"
	"unicode"
)

// buildTOC renders the collected headings as a nested <ul> fragment.
// Pure function over the ordered entry list: rebuilding from the same
// entries yields identical HTML. Level jumps nest directly with no
// placeholder entries for skipped levels; the fragment is empty when
// the document has no headings.
func buildTOC(entries []TocEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("<nav class=\"toc\">\n<ul>\n")

	// stack holds the heading level owning each open <ul>.
	stack := []int{entries[0].Level}

	for i, e := range entries {
		if i > 0 {
			top := stack[len(stack)-1]
			switch {
			case e.Level > top:
				// Deeper: nest one list inside the open item, however
				// large the jump.
				sb.WriteString("\n<ul>\n")
				stack = append(stack, e.Level)
			default:
				sb.WriteString("</li>\n")
				for len(stack) > 1 && stack[len(stack)-1] > e.Level {
					stack = stack[:len(stack)-1]
					sb.WriteString("</ul>\n</li>\n")
				}
			}
		}
		fmt.Fprintf(&sb, "<li><a href=\"#%s\">%s</a>", e.Anchor, html.EscapeString(e.Text))
	}

	sb.WriteString("</li>\n")
	for len(stack) > 1 {
		stack = stack[:len(stack)-1]
		sb.WriteString("</ul>\n</li>\n")
	}
	sb.WriteString("</ul>\n</nav>\n")
	return sb.String()
}

// slug derives an anchor id from a heading title. Letters and digits
// (any script) are kept lowercased; every other run collapses to one
// hyphen. An empty result falls back to "section".
func slug(text string) string {
	var sb strings.Builder
	hyphen := false
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if hyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			hyphen = false
			sb.WriteRune(unicode.ToLower(r))
		} else {
			hyphen = true
		}
	}
	if sb.Len() == 0 {
		return "section"
	}
	return sb.String()
}

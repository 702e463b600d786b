package scen2html

import (
	"fmt"
	"strings"
)

// KeywordSpec describes one keyword for table overrides. The zero
// Class means the tag renders without a class attribute.
type KeywordSpec struct {
	Tag   string `yaml:"tag"`
	Class string `yaml:"class"`
}

// keywordDef is one compiled entry of the keyword table.
type keywordDef struct {
	Tag     string   // html element, empty for pseudo keywords
	Class   string   // fixed class attribute, empty for none
	Attrs   []string // allowed attribute keys
	Heading int      // 1..6 for heading keywords, 0 otherwise
	Raw     bool     // verbatim passthrough block
	TOC     bool     // manual TOC marker, always dropped
	Code    bool     // syntax-highlighted code block
}

// builtinKeywords is the static keyword table. It is compiled in and
// validated for completeness at package init; an external configuration
// layer may extend it through WithKeywords.
var builtinKeywords = map[string]keywordDef{
	"太字":   {Tag: "strong"},
	"斜体":   {Tag: "em"},
	"下線":   {Tag: "u"},
	"取消":   {Tag: "del"},
	"色":    {Tag: "span", Attrs: []string{"color"}},
	"枠線":   {Tag: "div", Class: "box"},
	"中央":   {Tag: "div", Class: "center"},
	"右寄せ":  {Tag: "div", Class: "right"},
	"引用":   {Tag: "blockquote"},
	"注釈":   {Tag: "div", Class: "note"},
	"台詞":   {Tag: "div", Class: "dialogue"},
	"コード":  {Tag: "pre", Code: true, Attrs: []string{"lang"}},
	"生":    {Raw: true},
	"目次":   {TOC: true},
	"見出し1": {Tag: "h1", Heading: 1},
	"見出し2": {Tag: "h2", Heading: 2},
	"見出し3": {Tag: "h3", Heading: 3},
	"見出し4": {Tag: "h4", Heading: 4},
	"見出し5": {Tag: "h5", Heading: 5},
	"見出し6": {Tag: "h6", Heading: 6},
}

func init() {
	if err := validateTable(builtinKeywords); err != nil {
		panic("scen2html: invalid builtin keyword table: " + err.Error())
	}
}

// validateTable checks that every entry maps to a tag the nesting
// resolver knows how to order. Pseudo keywords carry no tag.
func validateTable(defs map[string]keywordDef) error {
	for name, def := range defs {
		if strings.TrimSpace(name) == "" {
			return ErrEmptyKeyword
		}
		if def.Raw || def.TOC {
			continue
		}
		if _, ok := tagPriority[def.Tag]; !ok {
			return fmt.Errorf("%w: %q -> %q", ErrUnknownTag, name, def.Tag)
		}
	}
	return nil
}

// registry resolves marker expressions against the keyword table.
// A registry is immutable after construction and safe for concurrent
// readers; chunk workers share one instance.
type registry struct {
	defs map[string]keywordDef
}

// newRegistry compiles the builtin table plus optional overrides.
func newRegistry(overrides map[string]KeywordSpec) (*registry, error) {
	defs := make(map[string]keywordDef, len(builtinKeywords)+len(overrides))
	for name, def := range builtinKeywords {
		defs[name] = def
	}
	for name, spec := range overrides {
		if strings.TrimSpace(name) == "" {
			return nil, ErrEmptyKeyword
		}
		if _, ok := tagPriority[spec.Tag]; !ok {
			return nil, fmt.Errorf("%w: %q -> %q", ErrUnknownTag, name, spec.Tag)
		}
		defs[name] = keywordDef{Tag: spec.Tag, Class: spec.Class}
	}
	return &registry{defs: defs}, nil
}

// Attr is one key=value pair from a marker expression.
type Attr struct {
	Key   string
	Value string
}

// resolvedTag is one atomic keyword resolved to its HTML emission rule,
// with the attributes bound to it.
type resolvedTag struct {
	Keyword string
	Def     keywordDef
	Attrs   []Attr
}

// exprToken is one whitespace-separated token with its rune column in
// the source line.
type exprToken struct {
	text string
	col  int
}

// resolve parses a marker expression into an ordered resolved tag list.
// Keywords split on '+' (half or full width); key=value tokens bind to
// the nearest preceding keyword. Unknown keywords and rejected
// attributes are dropped with a diagnostic; line is the marker line.
func (r *registry) resolve(expr string, line int, diags *collector) []resolvedTag {
	var tags []resolvedTag
	seen := make(map[string]bool)

	for _, tok := range tokenizeExpr(expr) {
		if key, value, ok := splitAttr(tok.text); ok {
			r.bindAttr(tags, key, value, line, tok.col, diags)
			continue
		}
		for _, kw := range splitCompound(tok) {
			if seen[kw.text] {
				continue
			}
			def, ok := r.defs[kw.text]
			if !ok {
				diags.report(DiagUnknownKeyword, line, kw.col,
					fmt.Sprintf("unknown keyword %q", kw.text),
					r.suggestKeyword(kw.text))
				continue
			}
			seen[kw.text] = true
			tags = append(tags, resolvedTag{Keyword: kw.text, Def: def})
		}
	}
	return tags
}

// bindAttr attaches an attribute to the last resolved keyword, the
// nearest preceding one in expression order.
func (r *registry) bindAttr(tags []resolvedTag, key, value string, line, col int, diags *collector) {
	if len(tags) == 0 {
		diags.warn(DiagUnknownAttribute, line, col,
			fmt.Sprintf("attribute %q has no preceding keyword to bind to", key), "")
		return
	}
	t := &tags[len(tags)-1]
	for _, allowed := range t.Def.Attrs {
		if key == allowed {
			t.Attrs = append(t.Attrs, Attr{Key: key, Value: value})
			return
		}
	}
	diags.warn(DiagUnknownAttribute, line, col,
		fmt.Sprintf("keyword %q does not accept attribute %q", t.Keyword, key), "")
}

// tokenizeExpr splits an expression on spaces, tabs, and ideographic
// spaces, tracking the rune column of each token within the marker
// line. Column 1 is the opening '#', so the expression starts at 2.
func tokenizeExpr(expr string) []exprToken {
	var toks []exprToken
	col := 2 // after the opening '#'
	start := -1
	startCol := 0
	flush := func(end int) {
		if start >= 0 {
			toks = append(toks, exprToken{text: expr[start:end], col: startCol})
			start = -1
		}
	}
	for i, r := range expr {
		if r == ' ' || r == '\t' || r == '　' {
			flush(i)
		} else if start < 0 {
			start = i
			startCol = col
		}
		col++
	}
	flush(len(expr))
	return toks
}

// splitAttr recognizes key=value tokens, accepting the full-width '＝'.
func splitAttr(tok string) (key, value string, ok bool) {
	for _, sep := range []string{"=", "＝"} {
		if k, v, found := strings.Cut(tok, sep); found && k != "" {
			return k, v, true
		}
	}
	return "", "", false
}

// splitCompound splits a keyword token on '+' and the full-width '＋',
// keeping per-keyword columns for diagnostics.
func splitCompound(tok exprToken) []exprToken {
	var kws []exprToken
	col := tok.col
	start := 0
	startCol := col
	text := tok.text
	flush := func(end int) {
		if end > start {
			kws = append(kws, exprToken{text: text[start:end], col: startCol})
		}
	}
	for i, r := range text {
		if r == '+' || r == '＋' {
			flush(i)
			start = i + len(string(r))
			startCol = col + 1
		}
		col++
	}
	flush(len(text))
	return kws
}

// suggestKeyword returns a "did you mean" fix for a near-miss keyword,
// or an empty string when nothing in the table is close enough.
func (r *registry) suggestKeyword(name string) string {
	const maxDistance = 2
	best := ""
	bestDist := maxDistance + 1
	// Ties break lexicographically so the suggestion is deterministic
	// regardless of map iteration order.
	for candidate := range r.defs {
		d := runeDistance(name, candidate)
		if d < bestDist || (d == bestDist && best != "" && candidate < best) {
			best, bestDist = candidate, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf("did you mean %q", best)
}

// runeDistance is the Levenshtein distance over runes.
func runeDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

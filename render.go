package scen2html

import (
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// TocEntry is one heading collected during rendering, in document
// order. Entries live for a single render pass.
type TocEntry struct {
	Level  int
	Text   string
	Anchor string
}

// htmlTemplate wraps the TOC fragment and rendered body in a complete
// HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Document</title>
</head>
<body>
%s%s</body>
</html>
`

// codeStyle is the chroma style used for highlighted code blocks.
const codeStyle = "github"

// renderer walks a node tree depth-first and emits HTML. Closing tags
// are driven by subtree completion, never by source markers, so the
// output is well-formed even for blocks recovered from malformed input.
type renderer struct {
	sb      strings.Builder
	toc     []TocEntry
	anchors map[string]int
}

// renderBody renders the node tree and returns the body fragment plus
// the TOC entries encountered, in document order.
func renderBody(nodes []Node) (string, []TocEntry) {
	r := &renderer{anchors: make(map[string]int)}
	for _, n := range nodes {
		r.renderNode(n)
	}
	return r.sb.String(), r.toc
}

// renderDocument assembles the final document: the generated TOC
// fragment first, then the body.
func renderDocument(nodes []Node) string {
	body, toc := renderBody(nodes)
	return fmt.Sprintf(htmlTemplate, buildTOC(toc), body)
}

// renderNode dispatches on the closed node union. A new node kind that
// is not handled here fails to compile the renderer tests, not silently
// at run time.
func (r *renderer) renderNode(n Node) {
	switch n := n.(type) {
	case *Heading:
		r.renderHeading(n)
	case *Paragraph:
		r.renderParagraph(n)
	case *Block:
		r.renderBlock(n)
	case *List:
		r.renderList(n)
	case *Text:
		r.renderText(n)
	default:
		panic(fmt.Sprintf("scen2html: unhandled node type %T", n))
	}
}

func (r *renderer) renderHeading(h *Heading) {
	anchor := r.anchorFor(h.Text)
	r.toc = append(r.toc, TocEntry{Level: h.Level, Text: h.Text, Anchor: anchor})
	fmt.Fprintf(&r.sb, "<h%d id=%q>%s</h%d>\n", h.Level, anchor, html.EscapeString(h.Text), h.Level)
}

func (r *renderer) renderParagraph(p *Paragraph) {
	r.sb.WriteString("<p>")
	r.sb.WriteString(escapeLines(p.Lines))
	r.sb.WriteString("</p>\n")
}

func (r *renderer) renderBlock(b *Block) {
	if b.Raw {
		for _, child := range b.Children {
			if t, ok := child.(*Text); ok {
				r.sb.WriteString(strings.Join(t.Lines, "\n"))
			}
		}
		r.sb.WriteString("\n")
		return
	}
	if b.Code {
		source := ""
		for _, child := range b.Children {
			if t, ok := child.(*Text); ok {
				source = strings.Join(t.Lines, "\n")
			}
		}
		r.sb.WriteString(highlightCode(b.CodeLang, source))
		return
	}

	ordered := orderTags(b.Tags)
	for _, t := range ordered {
		r.sb.WriteString(openTag(t))
	}
	for i, child := range b.Children {
		if i > 0 {
			r.sb.WriteString("\n")
		}
		r.renderNode(child)
	}
	for i := len(ordered) - 1; i >= 0; i-- {
		fmt.Fprintf(&r.sb, "</%s>", ordered[i].Def.Tag)
	}
	r.sb.WriteString("\n")
}

func (r *renderer) renderList(l *List) {
	tag := "ul"
	if l.Ordered {
		tag = "ol"
	}
	fmt.Fprintf(&r.sb, "<%s>\n", tag)
	for _, item := range l.Items {
		r.sb.WriteString("<li>")
		r.sb.WriteString(html.EscapeString(item.Text))
		for _, sub := range item.Subs {
			r.sb.WriteString("\n")
			r.renderList(sub)
		}
		r.sb.WriteString("</li>\n")
	}
	fmt.Fprintf(&r.sb, "</%s>\n", tag)
}

func (r *renderer) renderText(t *Text) {
	r.sb.WriteString(escapeLines(t.Lines))
}

// anchorFor computes the slug for a heading, suffixing "-2", "-3"… on
// repeated titles.
func (r *renderer) anchorFor(text string) string {
	s := slug(text)
	r.anchors[s]++
	if n := r.anchors[s]; n > 1 {
		return fmt.Sprintf("%s-%d", s, n)
	}
	return s
}

// escapeLines escapes literal lines and joins them with <br>.
func escapeLines(lines []string) string {
	escaped := make([]string, len(lines))
	for i, l := range lines {
		escaped[i] = html.EscapeString(l)
	}
	return strings.Join(escaped, "<br>\n")
}

// openTag emits one opening tag with its class and bound attributes.
func openTag(t resolvedTag) string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(t.Def.Tag)
	if t.Def.Class != "" {
		fmt.Fprintf(&sb, " class=%q", t.Def.Class)
	}
	for _, a := range t.Attrs {
		if a.Key == "color" {
			if v := safeCSSValue(a.Value); v != "" {
				fmt.Fprintf(&sb, " style=%q", "color:"+v)
			}
		}
	}
	sb.WriteString(">")
	return sb.String()
}

// safeCSSValue keeps only characters safe inside an inline style
// declaration. Anything else empties the value.
func safeCSSValue(v string) string {
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '#':
		default:
			return ""
		}
	}
	return v
}

// highlightCode renders source through chroma with inline styles. The
// lang attribute picks the lexer; unknown names fall back to plain
// text. Formatting failures degrade to an escaped <pre> block.
func highlightCode(lang, source string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "<pre><code>" + html.EscapeString(source) + "</code></pre>\n"
	}
	formatter := chromahtml.New(chromahtml.WithClasses(false))
	var sb strings.Builder
	if err := formatter.Format(&sb, styles.Get(codeStyle), iterator); err != nil {
		return "<pre><code>" + html.EscapeString(source) + "</code></pre>\n"
	}
	out := sb.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

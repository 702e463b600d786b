package scen2html

// Span is a 1-based inclusive source line range.
type Span struct {
	Start int
	End   int
}

// Node is one element of the document tree. The union is closed:
// Heading, Paragraph, Block, List, and Text are the only
// implementations, and the renderer switches over them exhaustively.
type Node interface {
	Span() Span
	node()
}

// Heading is a block that resolved to a single heading keyword. Its
// anchor is assigned during rendering, in document order, so identical
// titles get "-2", "-3"… suffixes.
type Heading struct {
	Level int
	Text  string
	span  Span
}

// Paragraph is a run of contiguous top-level text lines.
type Paragraph struct {
	Lines []string
	span  Span
}

// Block is a marker-delimited span with its resolved keyword set.
// The tags keep expression order; the nesting resolver fixes the
// render order.
type Block struct {
	Tags     []resolvedTag
	Raw      bool   // verbatim passthrough content
	Code     bool   // chroma-highlighted content
	CodeLang string // lexer name from the lang attribute
	Children []Node
	span     Span
}

// List is a run of same-kind, same-depth list items.
type List struct {
	Ordered bool
	Items   []*ListItem
	span    Span
}

// ListItem is one item with its nested sublists. Items belong to their
// List and are not part of the Node union.
type ListItem struct {
	Text string
	Subs []*List
	span Span
}

// Text is a run of contiguous lines inside a block. Unlike Paragraph
// it renders without a wrapping element.
type Text struct {
	Lines []string
	span  Span
}

func (h *Heading) Span() Span   { return h.span }
func (p *Paragraph) Span() Span { return p.span }
func (b *Block) Span() Span     { return b.span }
func (l *List) Span() Span      { return l.span }
func (t *Text) Span() Span      { return t.span }

func (*Heading) node()   {}
func (*Paragraph) node() {}
func (*Block) node()     {}
func (*List) node()      {}
func (*Text) node()      {}

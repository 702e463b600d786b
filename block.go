package scen2html

import "strings"

// openBlock records that a line window ended while the block parser was
// INSIDE a marker block. The chunk coordinator stitches such windows
// back together before accepting their results.
type openBlock struct {
	expr string
	line int // line number of the open marker
}

// parsePortion runs the block state machine over a window of scanned
// lines and assembles the resulting nodes. It is the unit of work for
// both the sequential pass (the whole document, atEOF true) and one
// chunk of the parallel pass.
//
// When the window ends INSIDE a block and atEOF is true, the block is
// emitted anyway with an unterminated-block diagnostic at its opening
// line. When atEOF is false the partial block is withheld and reported
// through the returned openBlock instead, so the coordinator can
// re-parse the stitched span.
func parsePortion(lines []Line, reg *registry, diags *collector, atEOF bool) ([]Node, *openBlock) {
	var nodes []Node
	var run []Line // pending non-block lines outside any marker

	flushRun := func() {
		nodes = append(nodes, buildRun(run, diags)...)
		run = run[:0]
	}

	i := 0
	for i < len(lines) {
		ln := lines[i]
		switch ln.Kind {
		case lineMarkerOpen:
			flushRun()
			open := ln
			var content []Line
			closed := false
			j := i + 1
			// One open marker consumes everything up to the next close
			// marker regardless of keyword; markers do not nest.
			for ; j < len(lines); j++ {
				if lines[j].Kind == lineMarkerClose {
					closed = true
					break
				}
				content = append(content, lines[j])
			}
			if closed {
				nodes = append(nodes, buildBlock(open, content, lines[j].Num, reg, diags)...)
				i = j + 1
				continue
			}
			if !atEOF {
				return nodes, &openBlock{expr: open.Expr, line: open.Num}
			}
			diags.report(DiagUnterminatedBlock, open.Num, 1,
				"block opened here is never closed",
				"append a closing \"##\" line")
			end := open.Num
			if len(content) > 0 {
				end = content[len(content)-1].Num
			}
			nodes = append(nodes, buildBlock(open, content, end, reg, diags)...)
			i = j
		case lineMarkerClose:
			// A close marker with no open block is plain text.
			demoted := ln
			demoted.Kind = lineText
			run = append(run, demoted)
			i++
		default:
			run = append(run, ln)
			i++
		}
	}
	flushRun()
	return nodes, nil
}

// buildRun groups a run of ordinary lines into paragraphs and lists,
// preserving source order. Blank lines separate groups.
func buildRun(lines []Line, diags *collector) []Node {
	var nodes []Node
	i := 0
	for i < len(lines) {
		switch lines[i].Kind {
		case lineBlank:
			i++
		case lineListItem:
			j := i
			for j < len(lines) && lines[j].Kind == lineListItem {
				j++
			}
			for _, l := range buildListRun(lines[i:j], diags) {
				nodes = append(nodes, l)
			}
			i = j
		default:
			j := i
			var texts []string
			for j < len(lines) && (lines[j].Kind == lineText || lines[j].Kind == lineMarkerOpen) {
				texts = append(texts, lines[j].Text)
				j++
			}
			nodes = append(nodes, &Paragraph{
				Lines: texts,
				span:  Span{Start: lines[i].Num, End: lines[j-1].Num},
			})
			i = j
		}
	}
	return nodes
}

// buildBlock turns one marker-delimited span into AST nodes. A block
// that resolved to a single heading keyword becomes a Heading; a manual
// TOC marker is dropped with a WARNING; everything else becomes a Block
// with its content parsed into child nodes.
func buildBlock(open Line, content []Line, endLine int, reg *registry, diags *collector) []Node {
	tags := reg.resolve(open.Expr, open.Num, diags)
	span := Span{Start: open.Num, End: endLine}

	for _, t := range tags {
		if t.Def.TOC {
			diags.warn(DiagManualTOC, open.Num, 1,
				"manually authored TOC is ignored; the TOC is always generated", "")
			return nil
		}
	}

	if len(tags) == 1 && tags[0].Def.Heading > 0 {
		return []Node{&Heading{
			Level: tags[0].Def.Heading,
			Text:  joinContent(content),
			span:  span,
		}}
	}

	blk := &Block{Tags: tags, span: span}
	for _, t := range tags {
		if t.Def.Raw {
			blk.Raw = true
		}
		if t.Def.Code {
			blk.Code = true
			for _, a := range t.Attrs {
				if a.Key == "lang" {
					blk.CodeLang = a.Value
				}
			}
		}
	}

	if blk.Raw || blk.Code {
		// Raw and code blocks keep their content verbatim, one Text
		// node covering the whole span.
		var texts []string
		for _, ln := range content {
			texts = append(texts, ln.Text)
		}
		blk.Children = []Node{&Text{Lines: texts, span: contentSpan(content, span)}}
		return []Node{blk}
	}

	blk.Children = buildBlockChildren(content, diags)
	return []Node{blk}
}

// buildBlockChildren parses block content into Text and List children.
// Open markers inside a block are content, not structure.
func buildBlockChildren(lines []Line, diags *collector) []Node {
	var nodes []Node
	i := 0
	for i < len(lines) {
		switch lines[i].Kind {
		case lineBlank:
			i++
		case lineListItem:
			j := i
			for j < len(lines) && lines[j].Kind == lineListItem {
				j++
			}
			for _, l := range buildListRun(lines[i:j], diags) {
				nodes = append(nodes, l)
			}
			i = j
		default:
			j := i
			var texts []string
			for j < len(lines) && lines[j].Kind != lineBlank && lines[j].Kind != lineListItem {
				texts = append(texts, lines[j].Text)
				j++
			}
			nodes = append(nodes, &Text{
				Lines: texts,
				span:  Span{Start: lines[i].Num, End: lines[j-1].Num},
			})
			i = j
		}
	}
	return nodes
}

// joinContent flattens block content to a single heading title.
func joinContent(content []Line) string {
	var parts []string
	for _, ln := range content {
		if t := strings.TrimSpace(ln.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// contentSpan is the line range of a block's content, falling back to
// the block span when the content is empty.
func contentSpan(content []Line, fallback Span) Span {
	if len(content) == 0 {
		return fallback
	}
	return Span{Start: content[0].Num, End: content[len(content)-1].Num}
}

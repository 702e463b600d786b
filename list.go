package scen2html

import "fmt"

// buildListRun turns one contiguous run of list-item lines into sibling
// list trees. Indentation depth discriminates parent from child; a
// same-depth run of the other kind starts a new sibling list instead of
// merging. Depth jumps of more than one level clamp to parent+1 with a
// WARNING, never an error.
func buildListRun(lines []Line, diags *collector) []*List {
	b := &listBuilder{lines: lines, diags: diags}
	return b.parseLevel(0)
}

type listBuilder struct {
	lines []Line
	pos   int
	diags *collector
}

// parseLevel consumes items at the given depth, recursing for deeper
// runs and returning when a shallower item or the end of the run is
// reached.
func (b *listBuilder) parseLevel(depth int) []*List {
	var lists []*List
	var cur *List

	for b.pos < len(b.lines) {
		ln := b.lines[b.pos]
		eff := ln.Depth

		if eff > depth {
			if cur == nil {
				// Deeper than any open item can parent: clamp here.
				b.diags.warn(DiagMalformedIndent, ln.Num, 1,
					fmt.Sprintf("list item indented %d levels deep with no parent item", eff),
					fmt.Sprintf("indent by %d spaces per level", indentUnit))
				eff = depth
			} else {
				subs := b.parseLevel(depth + 1)
				last := cur.Items[len(cur.Items)-1]
				last.Subs = append(last.Subs, subs...)
				last.span.End = b.lines[b.pos-1].Num
				cur.span.End = last.span.End
				continue
			}
		}
		if eff < depth {
			return lists
		}

		ordered := ln.List == listOrdered
		if cur == nil || cur.Ordered != ordered {
			cur = &List{Ordered: ordered, span: Span{Start: ln.Num, End: ln.Num}}
			lists = append(lists, cur)
		}
		cur.Items = append(cur.Items, &ListItem{Text: ln.Item, span: Span{Start: ln.Num, End: ln.Num}})
		cur.span.End = ln.Num
		b.pos++
	}
	return lists
}

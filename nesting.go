package scen2html

import "slices"

// tagPriority is the fixed nesting priority table. A higher priority
// wraps outside a lower one: containers outrank headings, headings
// outrank strong emphasis, strong outranks italic emphasis.
var tagPriority = map[string]int{
	"div":        100,
	"blockquote": 95,
	"pre":        90,
	"h1":         80,
	"h2":         79,
	"h3":         78,
	"h4":         77,
	"h5":         76,
	"h6":         75,
	"strong":     50,
	"em":         40,
	"u":          30,
	"del":        25,
	"span":       20,
}

// orderTags returns the render order for a compound tag set, outermost
// first. The function is pure and deterministic: the same set yields
// the same order no matter how the input is enumerated. Ties on
// priority break on the keyword name so the order is total.
func orderTags(tags []resolvedTag) []resolvedTag {
	out := slices.Clone(tags)
	slices.SortStableFunc(out, func(a, b resolvedTag) int {
		pa, pb := tagPriority[a.Def.Tag], tagPriority[b.Def.Tag]
		if pa != pb {
			return pb - pa
		}
		return compareKeywords(a.Keyword, b.Keyword)
	})
	return out
}

func compareKeywords(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

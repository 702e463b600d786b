// Package scen2html converts plain-text scenario documents written in a
// small marker notation into HTML.
//
// # Notation
//
// A block is a span of lines delimited by a marker pair:
//
//	#太字+枠線 color=red#
//	content line(s)
//	##
//
// Keywords joined by "+" nest deterministically (containers outside
// headings, headings outside strong emphasis, strong outside italic);
// key=value pairs bind to the nearest preceding keyword. List items use
// "1. text" and "- text", nested two spaces per level. Headings feed an
// automatically generated table of contents.
//
// # Quick Start
//
//	svc, err := scen2html.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := svc.ConvertString(ctx, source)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(res.HTML)
//	for _, d := range res.Diagnostics {
//		fmt.Fprintln(os.Stderr, d)
//	}
//
// Conversions are stateless and best-effort by default: recoverable
// problems become diagnostics, not failures. WithStrictMode makes the
// first error-class diagnostic fail the conversion instead. Documents
// above a configurable line threshold are parsed in parallel chunks
// with output guaranteed byte-identical to a sequential parse.
package scen2html

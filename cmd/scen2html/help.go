package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: scen2html [flags] [input]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert scenario markup to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Source file, or \"-\" for stdin (default stdin)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --out <path>              Output HTML file (default stdout)")
	fmt.Fprintln(w, "  -e, --encoding <name>         Input encoding: utf-8, shift_jis, euc-jp, iso-2022-jp")
	fmt.Fprintln(w, "  -c, --config <name>           Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pipeline:")
	fmt.Fprintln(w, "      --strict                  Fail on the first recoverable error")
	fmt.Fprintln(w, "  -w, --workers <n>             Parallel parse workers (0 = auto)")
	fmt.Fprintln(w, "      --chunk-size <n>          Target chunk length in lines")
	fmt.Fprintln(w, "      --parallel-threshold <n>  Line count that enables parallel parsing")
	fmt.Fprintln(w, "      --timeout <d>             Parallel-parse budget, e.g. 30s")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -v, --verbose                 Print progress to stderr")
	fmt.Fprintln(w, "      --version                 Print version and exit")
	fmt.Fprintln(w, "  -h, --help                    Show this help")
}

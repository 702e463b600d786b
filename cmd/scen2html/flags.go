package main

import (
	flag "github.com/spf13/pflag"
)

// convertFlags holds all CLI flags.
type convertFlags struct {
	config            string
	output            string
	encoding          string
	strict            bool
	workers           int
	chunkSize         int
	parallelThreshold int
	timeout           string
	verbose           bool
	version           bool
	help              bool
}

// parseFlags parses os.Args-style arguments. It returns the flags, the
// positional arguments (input files, "-" for stdin), and any parse
// error.
func parseFlags(args []string) (*convertFlags, []string, error) {
	flags := &convertFlags{}

	fs := flag.NewFlagSet("scen2html", flag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {} // usage is printed by the caller

	fs.StringVarP(&flags.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&flags.output, "out", "o", "", "output HTML file (default stdout)")
	fs.StringVarP(&flags.encoding, "encoding", "e", "", "input encoding: utf-8, shift_jis, euc-jp, iso-2022-jp")
	fs.BoolVar(&flags.strict, "strict", false, "fail on the first recoverable error instead of degrading")
	fs.IntVarP(&flags.workers, "workers", "w", 0, "parallel parse workers (0 = auto)")
	fs.IntVar(&flags.chunkSize, "chunk-size", 0, "target chunk length in lines (0 = default)")
	fs.IntVar(&flags.parallelThreshold, "parallel-threshold", 0, "line count above which parsing is parallel (0 = default)")
	fs.StringVar(&flags.timeout, "timeout", "", "parallel-parse budget, e.g. 30s")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "print progress to stderr")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")
	fs.BoolVarP(&flags.help, "help", "h", false, "show help")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}
	return flags, fs.Args(), nil
}

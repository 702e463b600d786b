package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	flags, args, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage(os.Stderr)
		return ExitUsage
	}
	if flags.help {
		printUsage(os.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Println("scen2html " + Version)
		return ExitSuccess
	}

	// Configure GOMAXPROCS for containers. Error ignored: maxprocs.Set
	// only fails when the GOMAXPROCS env var is invalid, in which case
	// runtime defaults apply and the program continues safely.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, a ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", a...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := &Environment{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	if err := runConvert(ctx, args, flags, env); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

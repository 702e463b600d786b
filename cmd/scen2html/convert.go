package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	scen2html "github.com/ayatori/go-scen2html"
	"github.com/ayatori/go-scen2html/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrReadInput      = errors.New("failed to read input")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrInvalidTimeout = errors.New("invalid timeout value")
)

// filePermissions for written HTML output: rw-r--r--.
const filePermissions = 0o644

// Environment bundles the process streams so tests can capture them.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// runConvert reads the input, converts it, and writes the document.
// Diagnostics always go to stderr, one per line.
func runConvert(ctx context.Context, args []string, flags *convertFlags, env *Environment) error {
	cfg := config.DefaultConfig()
	if flags.config != "" {
		loaded, err := config.LoadConfig(flags.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	mergeFlags(flags, cfg)

	opts, err := serviceOptions(flags, cfg)
	if err != nil {
		return err
	}
	svc, err := scen2html.New(opts...)
	if err != nil {
		return err
	}

	source, name, err := readInput(args, env.Stdin)
	if err != nil {
		return err
	}
	if flags.verbose {
		fmt.Fprintf(env.Stderr, "converting %s (%d bytes)\n", name, len(source))
	}

	start := time.Now()
	res, err := svc.Convert(ctx, scen2html.Input{Source: source, Encoding: cfg.Input.Encoding})
	if err != nil {
		return err
	}
	if flags.verbose {
		fmt.Fprintf(env.Stderr, "converted in %s\n", time.Since(start).Round(time.Millisecond))
	}

	for _, d := range res.Diagnostics {
		fmt.Fprintln(env.Stderr, d)
	}

	return writeOutput(cfg.Output.Path, res.HTML, env.Stdout)
}

// mergeFlags overlays CLI flags onto the loaded config. CLI wins.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.encoding != "" {
		cfg.Input.Encoding = flags.encoding
	}
	if flags.output != "" {
		cfg.Output.Path = flags.output
	}
	if flags.strict {
		cfg.Pipeline.Strict = true
	}
	if flags.workers > 0 {
		cfg.Pipeline.Workers = flags.workers
	}
	if flags.chunkSize > 0 {
		cfg.Pipeline.ChunkSize = flags.chunkSize
	}
	if flags.parallelThreshold > 0 {
		cfg.Pipeline.ParallelThreshold = flags.parallelThreshold
	}
}

// serviceOptions translates the merged config into library options.
func serviceOptions(flags *convertFlags, cfg *config.Config) ([]scen2html.Option, error) {
	var opts []scen2html.Option
	if cfg.Pipeline.Strict {
		opts = append(opts, scen2html.WithStrictMode())
	}
	if cfg.Pipeline.Workers > 0 {
		opts = append(opts, scen2html.WithWorkers(cfg.Pipeline.Workers))
	}
	if cfg.Pipeline.ChunkSize > 0 {
		opts = append(opts, scen2html.WithChunkSize(cfg.Pipeline.ChunkSize))
	}
	if cfg.Pipeline.ParallelThreshold > 0 {
		opts = append(opts, scen2html.WithParallelThreshold(cfg.Pipeline.ParallelThreshold))
	}
	if len(cfg.Keywords) > 0 {
		opts = append(opts, scen2html.WithKeywords(cfg.Keywords))
	}
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimeout, flags.timeout)
		}
		opts = append(opts, scen2html.WithTimeout(d))
	}
	return opts, nil
}

// readInput loads the single input document: a file path argument, or
// stdin when the argument is "-" or absent.
func readInput(args []string, stdin io.Reader) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		if len(data) == 0 {
			return nil, "", ErrNoInput
		}
		return data, "stdin", nil
	}

	path := args[0]
	data, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", ErrReadInput, path, err)
	}
	return data, path, nil
}

// writeOutput writes the document to the configured path, or stdout
// when no path is set.
func writeOutput(path, html string, stdout io.Writer) error {
	if path == "" {
		if _, err := io.WriteString(stdout, html); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(html), filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	return nil
}

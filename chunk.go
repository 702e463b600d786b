package scen2html

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"
)

// Worker pool bounds.
const (
	// minWorkers ensures at least one worker is available.
	minWorkers = 1

	// maxWorkers caps the pool; chunk parsing is CPU-bound and gains
	// nothing from oversubscription.
	maxWorkers = 8

	// minChunkLines prevents oversplitting small documents.
	minChunkLines = 64
)

// resolveWorkers determines the worker pool size.
// Priority: explicit value > GOMAXPROCS-based calculation.
func resolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}
	n := runtime.GOMAXPROCS(0)
	if n < minWorkers {
		return minWorkers
	}
	if n > maxWorkers {
		return maxWorkers
	}
	return n
}

// chunkRange is a half-open index range into the scanned line slice.
type chunkRange struct {
	start int
	end   int
}

// chunkResult is the immutable value a worker hands back: its partial
// nodes, its locally buffered diagnostics, and whether the chunk ended
// inside a block. Workers share no mutable state; the coordinator
// merges results single-threaded, strictly by chunk index.
type chunkResult struct {
	nodes []Node
	diags []Diagnostic
	open  *openBlock
	err   error
}

// planChunks partitions n lines into contiguous ranges of roughly
// chunkSize lines, bounded by the worker count. Each boundary snaps
// forward past the next blank line so paragraph and list runs never
// straddle a boundary; blocks still can, and the merge step stitches
// those.
func planChunks(lines []Line, chunkSize, workers int) []chunkRange {
	n := len(lines)
	size := chunkSize
	if size < minChunkLines {
		size = minChunkLines
	}
	if perWorker := (n + workers - 1) / workers; size < perWorker {
		size = perWorker
	}

	var chunks []chunkRange
	start := 0
	for start < n {
		end := start + size
		for end < n && lines[end-1].Kind != lineBlank {
			end++
		}
		if end > n {
			end = n
		}
		chunks = append(chunks, chunkRange{start: start, end: end})
		start = end
	}
	return chunks
}

// parseParallel parses the document in parallel chunks and merges the
// results into one sequential-equivalent node list.
//
// Any worker failure, or exhaustion of the wall-clock budget, degrades
// the whole document to a single sequential pass recorded as a
// worker-failure diagnostic. Cancellation is cooperative: it is checked
// between chunk dispatches and at the join point, and a cancelled run
// returns ErrCancelled with no partial results.
func parseParallel(ctx context.Context, lines []Line, reg *registry, cfg serviceConfig, diags *collector) ([]Node, error) {
	workers := resolveWorkers(cfg.workers)
	chunks := planChunks(lines, cfg.chunkSize, workers)
	if len(chunks) == 1 {
		nodes, _ := parsePortion(lines, reg, diags, true)
		return nodes, nil
	}

	results := make([]chunkResult, len(chunks))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, c := range chunks {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, c chunkRange) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if p := recover(); p != nil {
					results[i].err = fmt.Errorf("chunk %d: %v", i, p)
				}
			}()
			local := newCollector(cfg.strict)
			atEOF := c.end == len(lines)
			nodes, open := parsePortion(lines[c.start:c.end], reg, local, atEOF)
			results[i] = chunkResult{nodes: nodes, diags: local.diags, open: open}
		}(i, c)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	budget := time.NewTimer(cfg.timeout)
	defer budget.Stop()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
	case <-budget.C:
		return fallbackSequential(lines, reg, diags, fmt.Sprintf("parallel parse exceeded %s budget", cfg.timeout))
	case <-done:
	}

	for i := range results {
		if results[i].err != nil {
			return fallbackSequential(lines, reg, diags, fmt.Sprintf("worker failed: %v", results[i].err))
		}
	}

	return mergeChunks(ctx, lines, chunks, results, reg, diags)
}

// fallbackSequential reparses the whole document in one pass after a
// worker failure. The failure itself is only a diagnostic; in strict
// mode its ERROR severity fails the conversion at the next stage
// boundary.
func fallbackSequential(lines []Line, reg *registry, diags *collector, reason string) ([]Node, error) {
	diags.report(DiagWorkerFailure, 1, 1,
		"parallel parsing degraded to sequential: "+reason, "")
	nodes, _ := parsePortion(lines, reg, diags, true)
	return nodes, nil
}

// mergeChunks joins chunk results strictly by index, never by
// completion order. A chunk that ended inside a block invalidates the
// following results up to the block's close: that stitched raw-line
// span is re-parsed as one unit, which makes chunked output identical
// to a sequential parse for every input.
func mergeChunks(ctx context.Context, lines []Line, chunks []chunkRange, results []chunkResult, reg *registry, diags *collector) ([]Node, error) {
	var out []Node
	pending := -1 // index of an unclosed open-marker line, -1 when none

	for i := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
		}
		if pending >= 0 {
			sub := newCollector(diags.strict)
			atEOF := chunks[i].end == len(lines)
			nodes, open := parsePortion(lines[pending:chunks[i].end], reg, sub, atEOF)
			out = append(out, nodes...)
			diags.merge(sub.diags)
			pending = openIndex(open)
			continue
		}
		out = append(out, results[i].nodes...)
		diags.merge(results[i].diags)
		pending = openIndex(results[i].open)
	}
	return out, nil
}

// openIndex converts an open-block report to a line index.
func openIndex(open *openBlock) int {
	if open == nil {
		return -1
	}
	return open.line - 1
}

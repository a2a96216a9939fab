// Package batch runs the extraction pipeline over a list of documents and
// stores one output file per document. It does not discover links.
package batch

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/triplify"
	"github.com/fwojciec/triplify/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of documents processed at once.
const DefaultConcurrency = 3

// Dedupe filter sizing.
const (
	expectedInputs    = 10000
	falsePositiveRate = 0.001
)

// Runner extracts a batch of documents.
type Runner struct {
	Pipeline    triplify.Pipeline
	Fetcher     triplify.Fetcher
	Store       triplify.OutputStore
	Options     triplify.RunOptions
	Concurrency int

	// Logger receives debug records for skipped inputs. Nil discards them.
	Logger *slog.Logger
}

// Result holds the outcome of a batch run.
type Result struct {
	Saved   int
	Empty   int
	Failed  int
	Skipped int
	Triples int
	Bytes   int
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URI       string
	Triples   int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// jobResult holds the outcome of processing a single document.
type jobResult struct {
	uri     string
	output  []byte
	triples int
	err     error
}

// ReadInputs parses a list of inputs, one per line. Blank lines and lines
// starting with # are ignored.
func ReadInputs(r io.Reader) ([]string, error) {
	var inputs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading inputs: %w", err)
	}
	return inputs, nil
}

// Run resolves and deduplicates inputs, then extracts each document. Output
// is committed to the store when every document has been attempted; a
// canceled context aborts the store and returns the context error.
// Individual document failures are counted, not returned.
func (r *Runner) Run(ctx context.Context, inputs []string, progress ProgressFunc) (*Result, error) {
	var result Result
	uris := r.dedupe(inputs, &result)

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(uris)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan jobResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, uri := range uris {
			g.Go(func() error {
				resultCh <- r.process(gctx, uri)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	for jr := range resultCh {
		completed.Add(1)
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			URI:       jr.uri,
			Triples:   jr.triples,
		}

		switch {
		case jr.err != nil:
			result.Failed++
			event.Type, event.Error = ProgressFailed, jr.err
		case jr.triples == 0:
			result.Empty++
		default:
			if err := r.Store.Save(ctx, jr.uri, jr.output); err != nil {
				result.Failed++
				event.Type, event.Error = ProgressFailed, err
				break
			}
			result.Saved++
			result.Triples += jr.triples
			result.Bytes += len(jr.output)
		}
		if progress != nil {
			progress(event)
		}
	}

	if err := ctx.Err(); err != nil {
		_ = r.Store.Abort()
		return &result, err
	}
	if err := r.Store.Commit(); err != nil {
		return &result, fmt.Errorf("committing output: %w", err)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return &result, nil
}

// dedupe resolves inputs to document URIs and drops repeats. Unresolvable
// inputs are counted as failures.
func (r *Runner) dedupe(inputs []string, result *Result) []string {
	seen := bloom.NewFilter(max(uint(len(inputs)), expectedInputs), falsePositiveRate)
	uris := make([]string, 0, len(inputs))
	for _, in := range inputs {
		uri, err := triplify.ResolveDocumentURI(in)
		if err != nil {
			result.Failed++
			continue
		}
		if seen.Seen(uri) {
			// Bloom filter hits include rare false positives, so every
			// skip is logged.
			r.logger().Debug("skipped duplicate input", "input", in, "url", uri)
			result.Skipped++
			continue
		}
		uris = append(uris, uri)
	}
	return uris
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// process runs the pipeline for one document into memory.
func (r *Runner) process(ctx context.Context, uri string) jobResult {
	jr := jobResult{uri: uri}
	src := triplify.NewRemoteSource(r.Fetcher, triplify.FetchRequest{URI: uri})

	var buf bytes.Buffer
	res, err := r.Pipeline.Run(ctx, src, r.Options, &buf)
	if err != nil {
		jr.err = err
		return jr
	}
	if res.HasResult() {
		jr.output = buf.Bytes()
		jr.triples = res.Len()
	}
	return jr
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/triplify"
	"github.com/fwojciec/triplify/batch"
	"github.com/fwojciec/triplify/fs"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	wf, err := deps.Writers.Lookup(c.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", triplify.ErrorMessage(err))
		return err
	}

	f, err := os.Open(c.ListFile)
	if err != nil {
		return err
	}
	defer f.Close()
	inputs, err := batch.ReadInputs(f)
	if err != nil {
		return err
	}

	outDir := filepath.Clean(c.OutDir)
	runner := &batch.Runner{
		Pipeline: deps.Pipeline,
		Fetcher:  deps.Fetcher,
		Store:    fs.NewFileStore(filepath.Dir(outDir), filepath.Base(outDir), wf.Description().Extension),
		Options: triplify.RunOptions{
			Format:     c.Format,
			Extractors: c.Extractors,
		},
		Concurrency: c.Concurrency,
		Logger:      deps.Logger,
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Processing %d documents\n", event.Total)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", batch.TruncateURI(event.URI, 60), errorText(event.Error))
		}
	}

	result, err := runner.Run(deps.Ctx, inputs, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d documents (%d triples, %s); %d empty, %d failed, %d duplicates\n",
		result.Saved, result.Triples, batch.FormatBytes(result.Bytes), result.Empty, result.Failed, result.Skipped)
	return nil
}

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/triplify"
	"github.com/fwojciec/triplify/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	src, err := c.source(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", triplify.ErrorMessage(err))
		return err
	}

	opts := triplify.RunOptions{
		Format:     c.Format,
		Extractors: c.Extractors,
		AutoDetect: c.AutoDetect,
	}

	var out io.Writer = deps.Stdout
	var buf bytes.Buffer
	if c.Output != "" {
		out = &buf
	}

	result, err := deps.Pipeline.Run(deps.Ctx, src, opts, out)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	for _, f := range result.Failures() {
		fmt.Fprintf(deps.Stderr, "warning: extractor %s failed: %v\n", f.Extractor, f.Err)
	}
	if !result.HasResult() {
		fmt.Fprintln(deps.Stderr, "no triples extracted")
		return nil
	}

	if c.Output != "" {
		if err := os.WriteFile(c.Output, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}

// source treats an existing path as a local file and anything else as a
// remote target. A declared --type replaces the detected content type.
func (c *ExtractCmd) source(deps *Dependencies) (triplify.DocumentSource, error) {
	var src triplify.DocumentSource
	if info, err := os.Stat(c.Input); err == nil && !info.IsDir() {
		fsrc, err := fs.NewFileSource(c.Input)
		if err != nil {
			return nil, err
		}
		src = fsrc
	} else {
		uri, err := triplify.ResolveDocumentURI(c.Input)
		if err != nil {
			return nil, err
		}
		src = triplify.NewRemoteSource(deps.Fetcher, triplify.FetchRequest{URI: uri})
	}

	if c.Type != "" {
		return declaredSource{DocumentSource: src, contentType: c.Type}, nil
	}
	return src, nil
}

// declaredSource reports a caller-declared content type in place of the
// one the underlying source detects.
type declaredSource struct {
	triplify.DocumentSource
	contentType string
}

func (s declaredSource) ContentType() string { return s.contentType }

// errorText prefers the application message of the underlying cause.
func errorText(err error) string {
	if msg := triplify.ErrorMessage(err); msg != "Internal error." {
		return msg
	}
	return err.Error()
}

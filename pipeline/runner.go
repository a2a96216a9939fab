// Package pipeline implements triplify.Pipeline: it acquires a document,
// parses it, negotiates extractors, runs them and serializes the result.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/triplify"
	"golang.org/x/sync/errgroup"
)

// Ensure Runner implements triplify.Pipeline at compile time.
var _ triplify.Pipeline = (*Runner)(nil)

// Runner runs documents through the extraction pipeline. A Runner holds no
// per-request state and is safe for concurrent use once configured.
type Runner struct {
	Parser     triplify.DocumentParser
	Extractors *triplify.ExtractorRegistry
	Writers    *triplify.WriterRegistry

	// Concurrent runs matched extractors in parallel. Output is identical
	// to sequential mode because scopes are committed in negotiation order.
	Concurrent bool
}

// Run implements triplify.Pipeline. The output format and any named
// extractors are resolved before the document is acquired, so an invalid
// request never triggers a fetch.
func (r *Runner) Run(ctx context.Context, src triplify.DocumentSource, opts triplify.RunOptions, w io.Writer) (*triplify.ExtractionResult, error) {
	fail := func(state triplify.State, contentType, code string, err error) error {
		return &triplify.PipelineError{
			State:       state,
			DocumentURI: src.DocumentURI(),
			ContentType: contentType,
			Code:        code,
			Err:         err,
		}
	}

	wf, err := r.Writers.Lookup(opts.Format)
	if err != nil {
		return nil, fail(triplify.StateFormatUnsupported, src.ContentType(), triplify.EUNSUPPORTED, err)
	}

	var named []triplify.ExtractorFactory
	for _, name := range opts.Extractors {
		f, err := r.Extractors.Lookup(name)
		if err != nil {
			return nil, fail(triplify.StateFormatUnsupported, src.ContentType(), triplify.EUNSUPPORTED, err)
		}
		named = append(named, f)
	}

	// ACQUIRE
	content, err := src.Content(ctx)
	if err != nil {
		return nil, fail(triplify.StateAcquireFailed, "", triplify.EACQUISITION, err)
	}

	// PARSE
	contentType := r.effectiveType(src.ContentType(), content, opts.AutoDetect, named)
	doc := &triplify.Document{Content: content, ContentType: triplify.BaseMediaType(contentType)}
	if triplify.IsMarkup(contentType) && r.needsMarkup(doc.ContentType, named) {
		root, err := r.Parser.Parse(content, contentType)
		if err != nil {
			return nil, fail(triplify.StateParseFailed, contentType, triplify.EPARSE, err)
		}
		doc.Root = root
	}

	// MATCH
	factories := named
	if len(factories) == 0 {
		factories = r.Extractors.MatchByMIMEType(doc.ContentType)
	}
	if len(factories) == 0 {
		return nil, fail(triplify.StateFormatUnsupported, contentType, triplify.EMEDIATYPE,
			triplify.Errorf(triplify.EMEDIATYPE, "no extractor for media type %q", contentType))
	}

	// EXTRACT
	tw := wf.NewWriter(w)
	documentURI := triplify.IRI(src.DocumentURI())
	if gw, ok := tw.(triplify.GraphWriter); ok {
		gw.SetGraph(documentURI)
	}
	result := triplify.NewExtractionResult(tw, documentURI)
	if err := r.extract(ctx, doc, result, factories); err != nil {
		return nil, fail(triplify.StateExtract, contentType, triplify.ErrorCode(err), err)
	}

	// SERIALIZE
	if err := result.Close(); err != nil {
		return result, fail(triplify.StateSerialize, contentType, triplify.ErrorCode(err), err)
	}
	return result, nil
}

// effectiveType returns the declared content type unless auto-detection is
// enabled and the declared type is missing or matches no extractor.
func (r *Runner) effectiveType(declared string, content []byte, autoDetect bool, named []triplify.ExtractorFactory) string {
	if !autoDetect {
		return declared
	}
	if declared != "" && (len(named) > 0 || len(r.Extractors.MatchByMIMEType(declared)) > 0) {
		return declared
	}
	if detected := triplify.DetectContentType(content); detected != "" {
		return detected
	}
	return declared
}

// needsMarkup reports whether any extractor that will run reads the parsed
// tree, so raw-only runs skip parsing.
func (r *Runner) needsMarkup(contentType string, named []triplify.ExtractorFactory) bool {
	factories := named
	if len(factories) == 0 {
		factories = r.Extractors.MatchByMIMEType(contentType)
	}
	for _, f := range factories {
		if f.Description().Input == triplify.InputMarkup {
			return true
		}
	}
	return false
}

// extract runs every factory's extractor in its own scope. Failed
// extractors are recorded on the result and their output discarded.
func (r *Runner) extract(ctx context.Context, doc *triplify.Document, result *triplify.ExtractionResult, factories []triplify.ExtractorFactory) error {
	scopes := make([]*triplify.Scope, len(factories))
	errs := make([]error, len(factories))
	for i := range factories {
		scopes[i] = result.Scope()
	}

	if r.Concurrent {
		var g errgroup.Group
		for i, f := range factories {
			g.Go(func() error {
				errs[i] = runExtractor(f, doc, result.DocumentURI(), scopes[i])
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, f := range factories {
			if err := ctx.Err(); err != nil {
				return err
			}
			errs[i] = runExtractor(f, doc, result.DocumentURI(), scopes[i])
		}
	}

	for i, f := range factories {
		if errs[i] != nil {
			scopes[i].Discard()
			result.RecordFailure(f.Description().Name, errs[i])
			continue
		}
		if err := scopes[i].Commit(); err != nil {
			return err
		}
	}
	return nil
}

// runExtractor runs one extractor, converting a panic into an extraction
// error.
func runExtractor(f triplify.ExtractorFactory, doc *triplify.Document, documentURI triplify.IRI, out triplify.Sink) (err error) {
	name := f.Description().Name
	defer func() {
		if p := recover(); p != nil {
			err = triplify.Errorf(triplify.EEXTRACTION, "extractor %s panicked: %v", name, p)
		}
	}()

	if _, err := f.NewExtractor().Run(doc, documentURI, out); err != nil {
		return fmt.Errorf("extractor %s: %w", name, err)
	}
	return nil
}

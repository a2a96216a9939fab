package mock

import (
	"context"
	"io"

	"github.com/fwojciec/triplify"
)

var _ triplify.Pipeline = (*Pipeline)(nil)

// Pipeline is a mock implementation of triplify.Pipeline.
type Pipeline struct {
	RunFn func(ctx context.Context, src triplify.DocumentSource, opts triplify.RunOptions, w io.Writer) (*triplify.ExtractionResult, error)
}

func (p *Pipeline) Run(ctx context.Context, src triplify.DocumentSource, opts triplify.RunOptions, w io.Writer) (*triplify.ExtractionResult, error) {
	return p.RunFn(ctx, src, opts, w)
}

var _ triplify.DocumentParser = (*DocumentParser)(nil)

// DocumentParser is a mock implementation of triplify.DocumentParser.
type DocumentParser struct {
	ParseFn func(content []byte, contentType string) (triplify.Node, error)
}

func (p *DocumentParser) Parse(content []byte, contentType string) (triplify.Node, error) {
	return p.ParseFn(content, contentType)
}

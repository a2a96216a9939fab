package slog_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/fwojciec/triplify"
	"github.com/fwojciec/triplify/mock"
	tslog "github.com/fwojciec/triplify/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardWriter() *mock.TripleWriter {
	return &mock.TripleWriter{
		WriteNamespaceFn: func(prefix, uri string) error { return nil },
		WriteTripleFn:    func(t triplify.Triple) error { return nil },
		CloseFn:          func() error { return nil },
	}
}

func TestLoggingPipeline_Run(t *testing.T) {
	t.Parallel()

	t.Run("logs triples and failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Pipeline{
			RunFn: func(ctx context.Context, src triplify.DocumentSource, opts triplify.RunOptions, w io.Writer) (*triplify.ExtractionResult, error) {
				result := triplify.NewExtractionResult(discardWriter(), triplify.IRI(src.DocumentURI()))
				require.NoError(t, result.WriteTriple(triplify.IRI(src.DocumentURI()), triplify.IRI("http://purl.org/dc/terms/title"), triplify.NewLiteral("Hi")))
				result.RecordFailure("html-mf-geo", errors.New("boom"))
				return result, result.Close()
			},
		}

		pipeline := tslog.NewLoggingPipeline(inner, logger)
		src := triplify.NewStringSource("<html/>", "http://example.com/", "text/html")
		result, err := pipeline.Run(context.Background(), src, triplify.RunOptions{Format: "nt"}, io.Discard)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Len())
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "url=http://example.com/")
		assert.Contains(t, output, "format=nt")
		assert.Contains(t, output, "triples=1")
		assert.Contains(t, output, "failures=1")
		assert.Contains(t, output, "extractor=html-mf-geo")
		assert.Contains(t, output, "level=WARN")
	})

	t.Run("logs pipeline state on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Pipeline{
			RunFn: func(ctx context.Context, src triplify.DocumentSource, opts triplify.RunOptions, w io.Writer) (*triplify.ExtractionResult, error) {
				return nil, &triplify.PipelineError{
					State:       triplify.StateMatch,
					DocumentURI: src.DocumentURI(),
					ContentType: "image/png",
					Code:        triplify.EMEDIATYPE,
					Err:         errors.New("no extractor"),
				}
			},
		}

		pipeline := tslog.NewLoggingPipeline(inner, logger)
		src := triplify.NewStringSource("x", "http://example.com/a.png", "image/png")
		_, err := pipeline.Run(context.Background(), src, triplify.RunOptions{Format: "nt"}, io.Discard)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "state=MATCH")
		assert.Contains(t, output, "content_type=image/png")
		assert.Contains(t, output, "no extractor")
		assert.NotContains(t, output, "triples=")
	})
}

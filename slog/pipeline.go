package slog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/triplify"
)

// Ensure LoggingPipeline implements triplify.Pipeline.
var _ triplify.Pipeline = (*LoggingPipeline)(nil)

// LoggingPipeline wraps a Pipeline and logs one line per run.
type LoggingPipeline struct {
	next   triplify.Pipeline
	logger *slog.Logger
}

// NewLoggingPipeline creates a new LoggingPipeline.
func NewLoggingPipeline(next triplify.Pipeline, logger *slog.Logger) *LoggingPipeline {
	return &LoggingPipeline{next: next, logger: logger}
}

// Run delegates to the wrapped pipeline. Failed runs log the state the
// pipeline stopped in; extractor failures are logged individually.
func (p *LoggingPipeline) Run(ctx context.Context, src triplify.DocumentSource, opts triplify.RunOptions, w io.Writer) (result *triplify.ExtractionResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", src.DocumentURI(),
			"format", opts.Format,
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs, "triples", result.Len(), "failures", len(result.Failures()))
			for _, f := range result.Failures() {
				p.logger.Warn("extractor failed", "url", src.DocumentURI(), "extractor", f.Extractor, "err", f.Err)
			}
		}
		var pe *triplify.PipelineError
		if errors.As(err, &pe) {
			attrs = append(attrs, "state", pe.State.String(), "content_type", pe.ContentType)
		}
		attrs = append(attrs, "err", err)
		p.logger.Info("extract", attrs...)
	}(time.Now())
	return p.next.Run(ctx, src, opts, w)
}

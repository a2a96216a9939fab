// Package slog provides log/slog decorators for triplify interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/triplify"
)

// Ensure LoggingFetcher implements triplify.Fetcher.
var _ triplify.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   triplify.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next triplify.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, req *triplify.FetchRequest) (resp *triplify.FetchResponse, err error) {
	defer func(begin time.Time) {
		var size int
		var contentType string
		if resp != nil {
			size, contentType = len(resp.Content), resp.ContentType
		}
		f.logger.Info("fetch",
			"method", req.Method,
			"url", req.URI,
			"bytes", size,
			"content_type", contentType,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, req)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/triplify"
)

// Ensure LoggingExtractorFactory implements triplify.ExtractorFactory.
var _ triplify.ExtractorFactory = (*LoggingExtractorFactory)(nil)

// LoggingExtractorFactory wraps an ExtractorFactory so every extractor it
// creates logs its runs at debug level.
type LoggingExtractorFactory struct {
	next   triplify.ExtractorFactory
	logger *slog.Logger
}

// NewLoggingExtractorFactory creates a new LoggingExtractorFactory.
func NewLoggingExtractorFactory(next triplify.ExtractorFactory, logger *slog.Logger) *LoggingExtractorFactory {
	return &LoggingExtractorFactory{next: next, logger: logger}
}

// WrapExtractorFactories wraps each factory, keeping order.
func WrapExtractorFactories(factories []triplify.ExtractorFactory, logger *slog.Logger) []triplify.ExtractorFactory {
	wrapped := make([]triplify.ExtractorFactory, len(factories))
	for i, f := range factories {
		wrapped[i] = NewLoggingExtractorFactory(f, logger)
	}
	return wrapped
}

// Description delegates to the wrapped factory.
func (f *LoggingExtractorFactory) Description() *triplify.ExtractorDescription {
	return f.next.Description()
}

// NewExtractor returns a logging extractor around a new wrapped extractor.
func (f *LoggingExtractorFactory) NewExtractor() triplify.Extractor {
	return &loggingExtractor{
		name:   f.next.Description().Name,
		next:   f.next.NewExtractor(),
		logger: f.logger,
	}
}

type loggingExtractor struct {
	name   string
	next   triplify.Extractor
	logger *slog.Logger
}

func (e *loggingExtractor) Run(doc *triplify.Document, documentURI triplify.IRI, out triplify.Sink) (wrote bool, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extractor run",
			"extractor", e.name,
			"url", string(documentURI),
			"wrote", wrote,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Run(doc, documentURI, out)
}

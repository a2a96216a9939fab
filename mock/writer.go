package mock

import (
	"io"

	"github.com/fwojciec/triplify"
)

var _ triplify.TripleWriter = (*TripleWriter)(nil)

// TripleWriter is a mock implementation of triplify.TripleWriter.
type TripleWriter struct {
	WriteNamespaceFn func(prefix, uri string) error
	WriteTripleFn    func(t triplify.Triple) error
	CloseFn          func() error
}

func (w *TripleWriter) WriteNamespace(prefix, uri string) error {
	return w.WriteNamespaceFn(prefix, uri)
}

func (w *TripleWriter) WriteTriple(t triplify.Triple) error {
	return w.WriteTripleFn(t)
}

func (w *TripleWriter) Close() error {
	return w.CloseFn()
}

var _ triplify.WriterFactory = (*WriterFactory)(nil)

// WriterFactory is a mock implementation of triplify.WriterFactory.
type WriterFactory struct {
	DescriptionFn func() *triplify.WriterDescription
	NewWriterFn   func(w io.Writer) triplify.TripleWriter
}

func (f *WriterFactory) Description() *triplify.WriterDescription {
	return f.DescriptionFn()
}

func (f *WriterFactory) NewWriter(w io.Writer) triplify.TripleWriter {
	return f.NewWriterFn(w)
}

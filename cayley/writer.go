// Package cayley implements N-Triples and N-Quads support on top of the
// cayleygraph quad library: TripleWriter factories for output and the
// rdf-nt and rdf-nq extractors for input.
package cayley

import (
	"io"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
	"github.com/fwojciec/triplify"
)

// NTriplesWriterFactory writes N-Triples.
var NTriplesWriterFactory triplify.WriterFactory = &writerFactory{
	desc: &triplify.WriterDescription{
		Name:      "ntriples",
		Aliases:   []string{"nt"},
		MIMEType:  "application/n-triples",
		Extension: "nt",
	},
}

// NQuadsWriterFactory writes N-Quads labelled with the document URI.
var NQuadsWriterFactory triplify.WriterFactory = &writerFactory{
	desc: &triplify.WriterDescription{
		Name:      "nquads",
		Aliases:   []string{"nq"},
		MIMEType:  "application/n-quads",
		Extension: "nq",
	},
	quads: true,
}

type writerFactory struct {
	desc  *triplify.WriterDescription
	quads bool
}

func (f *writerFactory) Description() *triplify.WriterDescription { return f.desc }

func (f *writerFactory) NewWriter(w io.Writer) triplify.TripleWriter {
	return &Writer{enc: nquads.NewWriter(w), quads: f.quads}
}

// Ensure Writer implements triplify.GraphWriter at compile time.
var _ triplify.GraphWriter = (*Writer)(nil)

// Writer streams triples as N-Triples lines, or as N-Quads lines when it
// was created for quads and a graph has been set.
type Writer struct {
	enc   *nquads.Writer
	quads bool
	graph quad.Value
}

// SetGraph sets the graph label. It is ignored for N-Triples output.
func (w *Writer) SetGraph(graph triplify.IRI) {
	if w.quads {
		w.graph = quad.IRI(graph)
	}
}

// WriteNamespace is a no-op: neither syntax declares prefixes.
func (w *Writer) WriteNamespace(prefix, uri string) error {
	return nil
}

func (w *Writer) WriteTriple(t triplify.Triple) error {
	return w.enc.WriteQuad(quad.Quad{
		Subject:   ToValue(t.Subject),
		Predicate: quad.IRI(t.Predicate),
		Object:    ToValue(t.Object),
		Label:     w.graph,
	})
}

func (w *Writer) Close() error {
	return w.enc.Close()
}

// ToValue converts a term to its quad representation.
func ToValue(t triplify.Term) quad.Value {
	switch v := t.(type) {
	case triplify.IRI:
		return quad.IRI(v)
	case triplify.BlankNode:
		return quad.BNode(v)
	case triplify.Literal:
		switch {
		case v.Lang != "":
			return quad.LangString{Value: quad.String(v.Value), Lang: v.Lang}
		case v.Datatype != "":
			return quad.TypedString{Value: quad.String(v.Value), Type: quad.IRI(v.Datatype)}
		default:
			return quad.String(v.Value)
		}
	}
	return nil
}

// Package writer provides the Turtle and JSON triple writers.
package writer

import (
	"bufio"
	"io"

	"github.com/fwojciec/triplify"
)

const rdfType = triplify.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")

// TurtleWriterFactory writes Turtle.
var TurtleWriterFactory triplify.WriterFactory = turtleFactory{}

type turtleFactory struct{}

var turtleDescription = &triplify.WriterDescription{
	Name:      "turtle",
	Aliases:   []string{"ttl", "n3"},
	MIMEType:  "text/turtle",
	Extension: "ttl",
}

func (turtleFactory) Description() *triplify.WriterDescription { return turtleDescription }

func (turtleFactory) NewWriter(w io.Writer) triplify.TripleWriter {
	return NewTurtleWriter(w)
}

// Ensure TurtleWriter implements triplify.TripleWriter at compile time.
var _ triplify.TripleWriter = (*TurtleWriter)(nil)

// TurtleWriter buffers triples and writes them on Close as @prefix
// directives followed by one statement block per subject.
type TurtleWriter struct {
	w        io.Writer
	ns       map[string]string
	uris     map[string]bool
	subjects []triplify.Resource
	bySubj   map[triplify.Resource][]triplify.Triple
}

// NewTurtleWriter returns a TurtleWriter that writes to w.
func NewTurtleWriter(w io.Writer) *TurtleWriter {
	return &TurtleWriter{
		w:      w,
		ns:     make(map[string]string),
		uris:   make(map[string]bool),
		bySubj: make(map[triplify.Resource][]triplify.Triple),
	}
}

// WriteNamespace binds prefix. The first binding of a prefix or namespace
// wins.
func (t *TurtleWriter) WriteNamespace(prefix, uri string) error {
	if _, ok := t.ns[prefix]; ok || t.uris[uri] {
		return nil
	}
	t.ns[prefix] = uri
	t.uris[uri] = true
	return nil
}

func (t *TurtleWriter) WriteTriple(tr triplify.Triple) error {
	if _, ok := t.bySubj[tr.Subject]; !ok {
		t.subjects = append(t.subjects, tr.Subject)
	}
	t.bySubj[tr.Subject] = append(t.bySubj[tr.Subject], tr)
	return nil
}

func (t *TurtleWriter) Close() error {
	prefixes := triplify.NewPrefixes(t.ns)
	bw := bufio.NewWriter(t.w)

	for _, ns := range prefixes.Namespaces() {
		bw.WriteString("@prefix " + ns.Prefix + ": <" + ns.URI + "> .\n")
	}
	if prefixes.Len() > 0 && len(t.subjects) > 0 {
		bw.WriteString("\n")
	}

	for _, s := range t.subjects {
		bw.WriteString(term(prefixes, s))
		for i, tr := range t.bySubj[s] {
			if i > 0 {
				bw.WriteString(" ;\n   ")
			}
			bw.WriteString(" ")
			if tr.Predicate == rdfType {
				bw.WriteString("a")
			} else {
				bw.WriteString(term(prefixes, tr.Predicate))
			}
			bw.WriteString(" " + term(prefixes, tr.Object))
		}
		bw.WriteString(" .\n")
	}
	return bw.Flush()
}

// term renders t, abbreviating IRIs within a declared namespace.
func term(prefixes *triplify.Prefixes, t triplify.Term) string {
	if iri, ok := t.(triplify.IRI); ok {
		if curie, ok := prefixes.Abbreviate(iri); ok {
			return curie
		}
	}
	return t.String()
}

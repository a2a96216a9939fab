package cayley

import (
	"bytes"
	"errors"
	"io"
	"net/url"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
	"github.com/fwojciec/triplify"
)

// NTriplesFactory creates extractors that read N-Triples input.
var NTriplesFactory = triplify.NewExtractorFactory(&triplify.ExtractorDescription{
	Name: "rdf-nt",
	ContentTypes: triplify.MustParseMediaRanges(
		"application/n-triples",
		"text/plain;q=0.1",
	),
	Example:  "example-ntriples.nt",
	Prefixes: triplify.MustCreateSubset(),
	Input:    triplify.InputRaw,
}, func() triplify.Extractor { return &Extractor{} })

// NQuadsFactory creates extractors that read N-Quads input. Graph labels are
// dropped: every statement is attributed to the document being extracted.
var NQuadsFactory = triplify.NewExtractorFactory(&triplify.ExtractorDescription{
	Name:         "rdf-nq",
	ContentTypes: triplify.MustParseMediaRanges("application/n-quads"),
	Example:      "example-nquads.nq",
	Prefixes:     triplify.MustCreateSubset(),
	Input:        triplify.InputRaw,
}, func() triplify.Extractor { return &Extractor{} })

// Extractor copies statements from line-based RDF into the sink. Relative
// IRIs are resolved against the document URI and blank node labels are
// replaced with nodes allocated from the sink.
type Extractor struct {
	nodes map[quad.BNode]triplify.BlankNode
}

func (e *Extractor) Run(doc *triplify.Document, documentURI triplify.IRI, out triplify.Sink) (bool, error) {
	base, err := url.Parse(string(documentURI))
	if err != nil {
		return false, triplify.Errorf(triplify.EEXTRACTION, "invalid document URI %q: %v", documentURI, err)
	}

	e.nodes = make(map[quad.BNode]triplify.BlankNode)
	// Raw mode keeps typed literals in their lexical form.
	r := nquads.NewReader(bytes.NewReader(doc.Content), true)
	defer r.Close()

	wrote := false
	for {
		q, err := r.ReadQuad()
		if errors.Is(err, io.EOF) {
			return wrote, nil
		}
		if err != nil {
			return wrote, triplify.Errorf(triplify.EEXTRACTION, "malformed statement: %v", err)
		}

		s, ok := e.term(base, q.Subject, out).(triplify.Resource)
		if !ok {
			return wrote, triplify.Errorf(triplify.EEXTRACTION, "invalid subject %v", q.Subject)
		}
		p, ok := e.term(base, q.Predicate, out).(triplify.IRI)
		if !ok {
			return wrote, triplify.Errorf(triplify.EEXTRACTION, "invalid predicate %v", q.Predicate)
		}
		o := e.term(base, q.Object, out)
		if o == nil {
			return wrote, triplify.Errorf(triplify.EEXTRACTION, "invalid object %v", q.Object)
		}

		if err := out.WriteTriple(s, p, o); err != nil {
			return wrote, err
		}
		wrote = true
	}
}

// term converts a parsed value. It returns nil for values with no term form.
func (e *Extractor) term(base *url.URL, v quad.Value, out triplify.Sink) triplify.Term {
	switch v := v.(type) {
	case quad.IRI:
		ref, err := url.Parse(string(v))
		if err != nil {
			return nil
		}
		return triplify.IRI(base.ResolveReference(ref).String())
	case quad.BNode:
		b, ok := e.nodes[v]
		if !ok {
			b = out.NewBlankNode()
			e.nodes[v] = b
		}
		return b
	case quad.String:
		return triplify.NewLiteral(string(v))
	case quad.LangString:
		return triplify.Literal{Value: string(v.Value), Lang: v.Lang}
	case quad.TypedString:
		return triplify.Literal{Value: string(v.Value), Datatype: triplify.IRI(v.Type)}
	}
	return nil
}

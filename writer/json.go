package writer

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/triplify"
)

// JSONWriterFactory writes triples as a JSON document.
var JSONWriterFactory triplify.WriterFactory = jsonFactory{}

type jsonFactory struct{}

var jsonDescription = &triplify.WriterDescription{
	Name:      "json",
	MIMEType:  "application/json",
	Extension: "json",
}

func (jsonFactory) Description() *triplify.WriterDescription { return jsonDescription }

func (jsonFactory) NewWriter(w io.Writer) triplify.TripleWriter {
	return NewJSONWriter(w)
}

// JSONTerm is the JSON form of a term. Type is "uri", "bnode" or "literal".
type JSONTerm struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

// JSONTriple is the JSON form of a triple.
type JSONTriple struct {
	Subject   JSONTerm `json:"subject"`
	Predicate string   `json:"predicate"`
	Object    JSONTerm `json:"object"`
}

// JSONDocument is the top-level object written by JSONWriter.
type JSONDocument struct {
	Namespaces map[string]string `json:"namespaces,omitempty"`
	Triples    []JSONTriple      `json:"triples"`
}

// Ensure JSONWriter implements triplify.TripleWriter at compile time.
var _ triplify.TripleWriter = (*JSONWriter)(nil)

// JSONWriter buffers triples and encodes one JSONDocument on Close.
type JSONWriter struct {
	w   io.Writer
	doc JSONDocument
}

// NewJSONWriter returns a JSONWriter that writes to w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, doc: JSONDocument{Triples: []JSONTriple{}}}
}

func (j *JSONWriter) WriteNamespace(prefix, uri string) error {
	if j.doc.Namespaces == nil {
		j.doc.Namespaces = make(map[string]string)
	}
	if _, ok := j.doc.Namespaces[prefix]; !ok {
		j.doc.Namespaces[prefix] = uri
	}
	return nil
}

func (j *JSONWriter) WriteTriple(t triplify.Triple) error {
	j.doc.Triples = append(j.doc.Triples, JSONTriple{
		Subject:   toJSONTerm(t.Subject),
		Predicate: string(t.Predicate),
		Object:    toJSONTerm(t.Object),
	})
	return nil
}

func (j *JSONWriter) Close() error {
	return json.NewEncoder(j.w).Encode(j.doc)
}

func toJSONTerm(t triplify.Term) JSONTerm {
	switch v := t.(type) {
	case triplify.IRI:
		return JSONTerm{Type: "uri", Value: string(v)}
	case triplify.BlankNode:
		return JSONTerm{Type: "bnode", Value: string(v)}
	case triplify.Literal:
		return JSONTerm{Type: "literal", Value: v.Value, Lang: v.Lang, Datatype: string(v.Datatype)}
	}
	return JSONTerm{}
}

package writer_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fwojciec/triplify"
	"github.com/fwojciec/triplify/writer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []triplify.Triple{
	{Subject: triplify.IRI("http://foo.com"), Predicate: "http://purl.org/dc/terms/title", Object: triplify.Literal{Value: `Say "hi"`, Lang: "en"}},
	{Subject: triplify.IRI("http://foo.com"), Predicate: "http://purl.org/dc/terms/related", Object: triplify.BlankNode("n1")},
	{Subject: triplify.BlankNode("n1"), Predicate: "http://www.w3.org/1999/02/22-rdf-syntax-ns#type", Object: triplify.IRI("http://www.w3.org/2003/01/geo/wgs84_pos#Point")},
}

func write(t *testing.T, f triplify.WriterFactory, namespaces ...triplify.Namespace) string {
	t.Helper()

	var buf bytes.Buffer
	w := f.NewWriter(&buf)
	for _, ns := range namespaces {
		require.NoError(t, w.WriteNamespace(ns.Prefix, ns.URI))
	}
	for _, tr := range sample {
		require.NoError(t, w.WriteTriple(tr))
	}
	require.NoError(t, w.Close())
	return buf.String()
}

func TestTurtleWriter(t *testing.T) {
	t.Parallel()

	t.Run("abbreviates declared namespaces", func(t *testing.T) {
		t.Parallel()

		got := write(t, writer.TurtleWriterFactory,
			triplify.Namespace{Prefix: "dcterms", URI: "http://purl.org/dc/terms/"},
			triplify.Namespace{Prefix: "geo", URI: "http://www.w3.org/2003/01/geo/wgs84_pos#"},
		)

		want := `@prefix dcterms: <http://purl.org/dc/terms/> .
@prefix geo: <http://www.w3.org/2003/01/geo/wgs84_pos#> .

<http://foo.com> dcterms:title "Say \"hi\""@en ;
    dcterms:related _:n1 .
_:n1 a geo:Point .
`
		assert.Equal(t, want, got)
	})

	t.Run("writes full IRIs without namespaces", func(t *testing.T) {
		t.Parallel()

		got := write(t, writer.TurtleWriterFactory)
		assert.Contains(t, got, "<http://foo.com> <http://purl.org/dc/terms/title>")
		assert.NotContains(t, got, "@prefix")
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	got := write(t, writer.JSONWriterFactory, triplify.Namespace{Prefix: "dcterms", URI: "http://purl.org/dc/terms/"})

	var doc writer.JSONDocument
	require.NoError(t, json.Unmarshal([]byte(got), &doc))

	require.Len(t, doc.Triples, 3)
	assert.Equal(t, "http://purl.org/dc/terms/", doc.Namespaces["dcterms"])
	assert.Equal(t, writer.JSONTerm{Type: "literal", Value: `Say "hi"`, Lang: "en"}, doc.Triples[0].Object)
	assert.Equal(t, writer.JSONTerm{Type: "bnode", Value: "n1"}, doc.Triples[2].Subject)
	assert.Equal(t, "http://www.w3.org/1999/02/22-rdf-syntax-ns#type", doc.Triples[2].Predicate)
}

func TestJSONWriter_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := writer.JSONWriterFactory.NewWriter(&buf)
	require.NoError(t, w.Close())
	assert.JSONEq(t, `{"triples":[]}`, buf.String())
}

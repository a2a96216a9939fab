package triplify_test

import (
	"testing"

	"github.com/fwojciec/triplify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixes_Expand(t *testing.T) {
	t.Parallel()

	t.Run("expands bound prefix", func(t *testing.T) {
		t.Parallel()

		p := triplify.MustCreateSubset("geo", "rdf")
		iri, err := p.Expand("geo:lat")

		require.NoError(t, err)
		assert.Equal(t, triplify.IRI("http://www.w3.org/2003/01/geo/wgs84_pos#lat"), iri)
	})

	t.Run("fails for prefix outside subset", func(t *testing.T) {
		t.Parallel()

		p := triplify.MustCreateSubset("geo")
		_, err := p.Expand("vcard:fn")

		require.Error(t, err)
		assert.Equal(t, triplify.EINVALID, triplify.ErrorCode(err))
	})

	t.Run("fails for input without colon", func(t *testing.T) {
		t.Parallel()

		_, err := triplify.PopularPrefixes().Expand("lat")
		assert.Equal(t, triplify.EINVALID, triplify.ErrorCode(err))
	})

	t.Run("nil set resolves nothing", func(t *testing.T) {
		t.Parallel()

		var p *triplify.Prefixes
		_, err := p.Expand("geo:lat")
		assert.Equal(t, triplify.EINVALID, triplify.ErrorCode(err))
		assert.False(t, p.Has("geo"))
	})

	t.Run("must expand panics on unresolved prefix", func(t *testing.T) {
		t.Parallel()

		p := triplify.MustCreateSubset("geo")
		assert.Panics(t, func() { p.MustExpand("foaf:name") })
	})
}

func TestCreateSubset(t *testing.T) {
	t.Parallel()

	t.Run("subset holds only requested prefixes", func(t *testing.T) {
		t.Parallel()

		p, err := triplify.CreateSubset("vcard", "rdf")
		require.NoError(t, err)

		assert.Equal(t, 2, p.Len())
		assert.True(t, p.Has("vcard"))
		assert.False(t, p.Has("geo"))
		assert.Equal(t, []triplify.Namespace{
			{Prefix: "rdf", URI: "http://www.w3.org/1999/02/22-rdf-syntax-ns#"},
			{Prefix: "vcard", URI: "http://www.w3.org/2006/vcard/ns#"},
		}, p.Namespaces())
	})

	t.Run("unknown prefix fails", func(t *testing.T) {
		t.Parallel()

		_, err := triplify.CreateSubset("nope")
		assert.Equal(t, triplify.ENOTFOUND, triplify.ErrorCode(err))
	})

	t.Run("subset does not alter the catalog", func(t *testing.T) {
		t.Parallel()

		before := triplify.PopularPrefixes().Len()
		_, _ = triplify.CreateSubset("geo")
		assert.Equal(t, before, triplify.PopularPrefixes().Len())
	})
}

func TestPrefixes_Abbreviate(t *testing.T) {
	t.Parallel()

	p := triplify.MustCreateSubset("rdf", "vcard")

	curie, ok := p.Abbreviate("http://www.w3.org/2006/vcard/ns#VCard")
	assert.True(t, ok)
	assert.Equal(t, "vcard:VCard", curie)

	_, ok = p.Abbreviate("http://example.com/x")
	assert.False(t, ok)

	_, ok = p.Abbreviate("http://www.w3.org/2006/vcard/ns#")
	assert.False(t, ok)
}

package triplify_test

import (
	"testing"

	"github.com/fwojciec/triplify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerm_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		term triplify.Term
		want string
	}{
		{"iri", triplify.IRI("http://foo.com/"), "<http://foo.com/>"},
		{"blank node", triplify.BlankNode("node1"), "_:node1"},
		{"plain literal", triplify.NewLiteral("Joe"), `"Joe"`},
		{"language literal", triplify.Literal{Value: "chat", Lang: "fr"}, `"chat"@fr`},
		{"typed literal", triplify.Literal{Value: "1", Datatype: "http://www.w3.org/2001/XMLSchema#int"}, `"1"^^<http://www.w3.org/2001/XMLSchema#int>`},
		{"escaped literal", triplify.NewLiteral("a \"b\"\nc"), `"a \"b\"\nc"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.term.String())
		})
	}
}

func TestTriple_Validate(t *testing.T) {
	t.Parallel()

	t.Run("complete triple is valid", func(t *testing.T) {
		t.Parallel()
		tr := triplify.Triple{Subject: triplify.IRI("http://s"), Predicate: "http://p", Object: triplify.NewLiteral("o")}
		require.NoError(t, tr.Validate())
		assert.Equal(t, `<http://s> <http://p> "o" .`, tr.String())
	})

	t.Run("missing object is invalid", func(t *testing.T) {
		t.Parallel()
		tr := triplify.Triple{Subject: triplify.IRI("http://s"), Predicate: "http://p"}
		err := tr.Validate()
		assert.Equal(t, triplify.EINVALID, triplify.ErrorCode(err))
	})
}

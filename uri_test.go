package triplify_test

import (
	"testing"

	"github.com/fwojciec/triplify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDocumentURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"host only gets http scheme", "foo.com", "http://foo.com"},
		{"host and path", "foo.com/bar.html", "http://foo.com/bar.html"},
		{"query string preserved verbatim", "http://foo.com?id=1", "http://foo.com?id=1"},
		{"encoded query preserved", "foo.com/x?q=a%20b&r=1", "http://foo.com/x?q=a%20b&r=1"},
		{"https kept", "https://foo.com/a", "https://foo.com/a"},
		{"collapsed scheme slashes repaired", "http:/foo.com/a", "http://foo.com/a"},
		{"host with port", "localhost:8080/x", "http://localhost:8080/x"},
		{"empty falls back to default", "", triplify.DefaultBaseURI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := triplify.ResolveDocumentURI(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDocumentURI_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"mailto:richard@example.com", "ftp://foo.com/x", "javascript:alert(1)", "http://"} {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			_, err := triplify.ResolveDocumentURI(in)
			require.Error(t, err)
			assert.Equal(t, triplify.EINVALID, triplify.ErrorCode(err))
		})
	}
}

func TestResolveReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ref  string
		want triplify.IRI
		ok   bool
	}{
		{name: "relative path", ref: "license.html", want: "http://foo.com/docs/license.html", ok: true},
		{name: "absolute path", ref: "/about", want: "http://foo.com/about", ok: true},
		{name: "absolute URI", ref: "http://creativecommons.org/licenses/by/3.0/", want: "http://creativecommons.org/licenses/by/3.0/", ok: true},
		{name: "fragment", ref: "#me", want: "http://foo.com/docs/index.html#me", ok: true},
		{name: "mailto kept", ref: "mailto:joe@example.com", want: "mailto:joe@example.com", ok: true},
		{name: "empty", ref: "  ", ok: false},
		{name: "javascript", ref: "javascript:void(0)", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := triplify.ResolveReference("http://foo.com/docs/index.html", tt.ref)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

package triplify_test

import (
	"testing"

	"github.com/fwojciec/triplify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMediaRange(t *testing.T) {
	t.Parallel()

	t.Run("parses quality suffix", func(t *testing.T) {
		t.Parallel()

		mr, err := triplify.ParseMediaRange("text/html;q=0.01")
		require.NoError(t, err)
		assert.Equal(t, "text/html", mr.Type)
		assert.InDelta(t, 0.01, mr.Quality, 1e-9)
	})

	t.Run("defaults quality to one", func(t *testing.T) {
		t.Parallel()

		mr, err := triplify.ParseMediaRange("Application/XHTML+XML")
		require.NoError(t, err)
		assert.Equal(t, "application/xhtml+xml", mr.Type)
		assert.InDelta(t, 1.0, mr.Quality, 1e-9)
	})

	t.Run("rejects out of range quality", func(t *testing.T) {
		t.Parallel()

		_, err := triplify.ParseMediaRange("text/html;q=2")
		assert.Equal(t, triplify.EINVALID, triplify.ErrorCode(err))
	})
}

func TestMediaRange_Matches(t *testing.T) {
	t.Parallel()

	html := triplify.MustParseMediaRanges("text/html;q=0.1")[0]
	assert.True(t, html.Matches("text/html"))
	assert.True(t, html.Matches("text/html; charset=utf-8"))
	assert.True(t, html.Matches("TEXT/HTML"))
	assert.False(t, html.Matches("application/xhtml+xml"))
	assert.False(t, html.Matches(""))

	wildcard := triplify.MustParseMediaRanges("text/*")[0]
	assert.True(t, wildcard.Matches("text/plain"))
	assert.False(t, wildcard.Matches("application/json"))
}

func TestDetectContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"html", "<html><body>x</body></html>", "text/html"},
		{"ntriples", "<http://a> <http://b> <http://c> .\n", "application/n-triples"},
		{"ntriples with blank subject", `_:b1 <http://b> "c" .`, "application/n-triples"},
		{"xhtml", `<?xml version="1.0"?><html xmlns="http://www.w3.org/1999/xhtml"></html>`, "application/xhtml+xml"},
		{"plain text", "asdf", "text/plain"},
		{"empty", "  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, triplify.DetectContentType([]byte(tt.content)))
		})
	}
}

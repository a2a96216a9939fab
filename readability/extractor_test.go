package readability_test

import (
	"testing"

	"github.com/fwojciec/triplify"
	"github.com/fwojciec/triplify/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Release Notes</title>
<meta name="author" content="Jane Doe">
<meta name="description" content="What changed in the latest release.">
<meta property="og:site_name" content="Example Blog">
</head>
<body>
<nav><ul><li><a href="/">Home</a></li><li><a href="/archive">Archive</a></li></ul></nav>
<article>
<h2>What changed</h2>
<p>This release adds a new parser for structured data and fixes several long standing bugs in the serializer, which makes output stable across runs.</p>
<p>Read the <a href="/docs/upgrade">upgrade guide</a> before installing the new version on production systems, since some defaults changed.</p>
<table><tr><th>Flag</th><th>Default</th></tr><tr><td>format</td><td>nt</td></tr></table>
</article>
<footer><p>Copyright 2024 Example Blog</p></footer>
</body>
</html>`

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.ExtractArticle("", "http://example.com/")

	require.Error(t, err)
	assert.Equal(t, triplify.EINVALID, triplify.ErrorCode(err))
}

func TestExtractor_ExtractsMetadata(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	a, err := ext.ExtractArticle(articleHTML, "http://example.com/blog/release")

	require.NoError(t, err)
	assert.Equal(t, "Release Notes", a.Title)
	assert.Equal(t, "Jane Doe", a.Author)
	assert.Equal(t, "What changed in the latest release.", a.Description)
	assert.Equal(t, "Example Blog", a.SiteName)
}

func TestExtractor_RemovesBoilerplate(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	a, err := ext.ExtractArticle(articleHTML, "http://example.com/blog/release")

	require.NoError(t, err)
	assert.Contains(t, a.ContentHTML, "new parser for structured data")
	assert.NotContains(t, a.ContentHTML, "Archive")
	assert.NotContains(t, a.ContentHTML, "Copyright 2024")
}

func TestExtractor_PreservesTables(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	a, err := ext.ExtractArticle(articleHTML, "http://example.com/blog/release")

	require.NoError(t, err)
	assert.Contains(t, a.ContentHTML, "<table")
	assert.Contains(t, a.ContentHTML, "Default")
}

func TestExtractor_ResolvesRelativeLinks(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	a, err := ext.ExtractArticle(articleHTML, "http://example.com/blog/release")

	require.NoError(t, err)
	assert.Contains(t, a.ContentHTML, `href="http://example.com/docs/upgrade"`)
}

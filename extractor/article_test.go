package extractor_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/triplify"
	"github.com/fwojciec/triplify/extractor"
	"github.com/fwojciec/triplify/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticle(t *testing.T) {
	t.Parallel()

	const page = `<html><body><article><p>Body</p></article></body></html>`
	published := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	articles := func(a *triplify.Article, err error) *mock.ArticleExtractor {
		return &mock.ArticleExtractor{
			ExtractArticleFn: func(html, documentURI string) (*triplify.Article, error) {
				return a, err
			},
		}
	}
	markdown := &mock.Converter{
		ConvertFn: func(html string) (string, error) { return "Body\n", nil },
	}

	t.Run("describes the document", func(t *testing.T) {
		t.Parallel()

		var gotURI string
		engine := &mock.ArticleExtractor{
			ExtractArticleFn: func(html, documentURI string) (*triplify.Article, error) {
				gotURI = documentURI
				return &triplify.Article{
					Title:       "Release  Notes",
					Author:      "Jane Doe",
					Description: "What changed.",
					SiteName:    "Example Blog",
					Language:    "en",
					Published:   published,
					ContentHTML: "<p>Body</p>",
				}, nil
			},
		}

		ok, result := run(t, extractor.NewArticleFactory(engine, markdown), page)

		assert.True(t, ok)
		assert.Equal(t, string(docURI), gotURI)
		triples := result.Triples()
		assert.Equal(t, []triplify.Term{triplify.Literal{Value: "Release Notes", Lang: "en"}}, objectsOf(triples, dctermsNS+"title"))
		assert.Equal(t, []triplify.Term{triplify.Literal{Value: "Jane Doe", Lang: "en"}}, objectsOf(triples, dctermsNS+"creator"))
		assert.Equal(t, []triplify.Term{triplify.Literal{Value: "Example Blog", Lang: "en"}}, objectsOf(triples, dctermsNS+"publisher"))
		assert.Equal(t, []triplify.Term{triplify.Literal{
			Value:    "2024-03-05T10:00:00Z",
			Datatype: "http://www.w3.org/2001/XMLSchema#dateTime",
		}}, objectsOf(triples, dctermsNS+"date"))
		assert.Equal(t, []triplify.Term{triplify.Literal{Value: "Body", Lang: "en"}}, objectsOf(triples, "http://rdfs.org/sioc/ns#content"))
		for _, tr := range triples {
			assert.Equal(t, triplify.Resource(docURI), tr.Subject)
		}
	})

	t.Run("drops malformed language tags", func(t *testing.T) {
		t.Parallel()

		a := &triplify.Article{Title: "T", Language: "en_US!"}
		_, result := run(t, extractor.NewArticleFactory(articles(a, nil), nil), page)

		assert.Equal(t, []triplify.Term{triplify.NewLiteral("T")}, objectsOf(result.Triples(), dctermsNS+"title"))
	})

	t.Run("skips content without converter", func(t *testing.T) {
		t.Parallel()

		a := &triplify.Article{Title: "T", ContentHTML: "<p>Body</p>"}
		_, result := run(t, extractor.NewArticleFactory(articles(a, nil), nil), page)

		assert.Len(t, result.Triples(), 1)
	})

	t.Run("no article is not a failure", func(t *testing.T) {
		t.Parallel()

		err := triplify.Errorf(triplify.ENOTFOUND, "no article")
		ok, result := run(t, extractor.NewArticleFactory(articles(nil, err), markdown), page)

		assert.False(t, ok)
		assert.False(t, result.HasResult())
	})

	t.Run("empty article writes nothing", func(t *testing.T) {
		t.Parallel()

		ok, result := run(t, extractor.NewArticleFactory(articles(&triplify.Article{}, nil), markdown), page)

		assert.False(t, ok)
		assert.False(t, result.HasResult())
	})

	t.Run("engine errors are extraction failures", func(t *testing.T) {
		t.Parallel()

		f := extractor.NewArticleFactory(articles(nil, errors.New("boom")), markdown)
		result := triplify.NewExtractionResult(&mock.TripleWriter{}, docURI)

		_, err := f.NewExtractor().Run(&triplify.Document{Content: []byte(page)}, docURI, result.Scope())

		require.Error(t, err)
		assert.Equal(t, triplify.EEXTRACTION, triplify.ErrorCode(err))
	})

	t.Run("raw input at low weight", func(t *testing.T) {
		t.Parallel()

		desc := extractor.NewArticleFactory(articles(nil, nil), nil).Description()

		assert.Equal(t, "html-article", desc.Name)
		assert.Equal(t, triplify.InputRaw, desc.Input)
		q, ok := desc.Quality("text/html")
		assert.True(t, ok)
		assert.InDelta(t, 0.005, q, 1e-9)
	})
}

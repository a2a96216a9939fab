package mock

import "github.com/fwojciec/triplify"

var _ triplify.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of triplify.Extractor.
type Extractor struct {
	RunFn func(doc *triplify.Document, documentURI triplify.IRI, out triplify.Sink) (bool, error)
}

func (e *Extractor) Run(doc *triplify.Document, documentURI triplify.IRI, out triplify.Sink) (bool, error) {
	return e.RunFn(doc, documentURI, out)
}

var _ triplify.ExtractorFactory = (*ExtractorFactory)(nil)

// ExtractorFactory is a mock implementation of triplify.ExtractorFactory.
type ExtractorFactory struct {
	DescriptionFn  func() *triplify.ExtractorDescription
	NewExtractorFn func() triplify.Extractor
}

func (f *ExtractorFactory) Description() *triplify.ExtractorDescription {
	return f.DescriptionFn()
}

func (f *ExtractorFactory) NewExtractor() triplify.Extractor {
	return f.NewExtractorFn()
}

var _ triplify.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of triplify.ArticleExtractor.
type ArticleExtractor struct {
	ExtractArticleFn func(html string, documentURI string) (*triplify.Article, error)
}

func (e *ArticleExtractor) ExtractArticle(html string, documentURI string) (*triplify.Article, error) {
	return e.ExtractArticleFn(html, documentURI)
}

// Package readability implements triplify.ArticleExtractor with
// go-readability, a port of Mozilla's Readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/triplify"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements triplify.ArticleExtractor at compile time.
var _ triplify.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractArticle processes raw HTML. Relative links in the content are
// resolved against documentURI when it is absolute.
func (e *Extractor) ExtractArticle(rawHTML string, documentURI string) (*triplify.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, triplify.Errorf(triplify.EINVALID, "empty HTML input")
	}

	var pageURL *url.URL
	if u, err := url.Parse(documentURI); err == nil && u.IsAbs() {
		pageURL = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		return nil, triplify.Errorf(triplify.ENOTFOUND, "no article: %v", err)
	}

	a := &triplify.Article{
		Title:       article.Title,
		Author:      article.Byline,
		Description: article.Excerpt,
		SiteName:    article.SiteName,
		Language:    article.Language,
		ContentHTML: article.Content,
	}
	if article.PublishedTime != nil {
		a.Published = *article.PublishedTime
	}
	return a, nil
}

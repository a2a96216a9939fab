// Package trafilatura implements triplify.ArticleExtractor with go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/triplify"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements triplify.ArticleExtractor at compile time.
var _ triplify.ArticleExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to find the main content and metadata of
// a page.
type Extractor struct {
	fallback bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFallback toggles the readability and dom-distiller fallback
// extractors. It is enabled by default.
func WithFallback(enabled bool) Option {
	return func(e *Extractor) {
		e.fallback = enabled
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{fallback: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractArticle processes raw HTML. Pages without enough main content are
// reported as ENOTFOUND.
func (e *Extractor) ExtractArticle(rawHTML string, documentURI string) (*triplify.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, triplify.Errorf(triplify.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: e.fallback,
		IncludeLinks:   true,
	}
	if u, err := url.Parse(documentURI); err == nil && u.IsAbs() {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, triplify.Errorf(triplify.ENOTFOUND, "no article: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	meta := result.Metadata
	return &triplify.Article{
		Title:       meta.Title,
		Author:      meta.Author,
		Description: meta.Description,
		SiteName:    meta.Sitename,
		Language:    meta.Language,
		Published:   meta.Date,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

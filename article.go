package triplify

import "time"

// Article holds the metadata and main content found in an HTML page.
type Article struct {
	Title       string
	Author      string
	Description string
	SiteName    string
	Language    string
	Published   time.Time

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// ArticleExtractor finds the main content and metadata of an HTML page.
type ArticleExtractor interface {
	// ExtractArticle processes raw HTML. The documentURI is used to resolve
	// relative links in the content.
	ExtractArticle(html string, documentURI string) (*Article, error)
}

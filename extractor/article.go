package extractor

import (
	"regexp"
	"strings"
	"time"

	"github.com/fwojciec/triplify"
)

var articlePrefixes = triplify.MustCreateSubset("dcterms", "sioc", "xsd")

var (
	dctermsCreator     = articlePrefixes.MustExpand("dcterms:creator")
	dctermsDate        = articlePrefixes.MustExpand("dcterms:date")
	dctermsDescription = articlePrefixes.MustExpand("dcterms:description")
	dctermsPublisher   = articlePrefixes.MustExpand("dcterms:publisher")
	siocContent        = articlePrefixes.MustExpand("sioc:content")
	xsdDateTime        = articlePrefixes.MustExpand("xsd:dateTime")
)

var langTag = regexp.MustCompile(`^[A-Za-z]{1,8}(-[A-Za-z0-9]{1,8})*$`)

// NewArticleFactory returns the "html-article" extractor factory. It runs a
// main-content engine over the raw page and describes the document with
// Dublin Core metadata. When conv is not nil the article body is converted
// to Markdown and emitted as sioc:content.
//
// The engine reports pages without an article as ENOTFOUND; the extractor
// treats them as empty rather than failed.
func NewArticleFactory(articles triplify.ArticleExtractor, conv triplify.Converter) triplify.ExtractorFactory {
	return triplify.NewExtractorFactory(&triplify.ExtractorDescription{
		Name:         "html-article",
		ContentTypes: markupTypes("0.005"),
		Example:      "example-article.html",
		Prefixes:     articlePrefixes,
		Input:        triplify.InputRaw,
	}, func() triplify.Extractor {
		return &articleExtractor{articles: articles, conv: conv}
	})
}

// statement is a predicate-object pair about the document.
type statement struct {
	p triplify.IRI
	o triplify.Term
}

type articleExtractor struct {
	articles triplify.ArticleExtractor
	conv     triplify.Converter
}

func (e *articleExtractor) Run(doc *triplify.Document, documentURI triplify.IRI, out triplify.Sink) (bool, error) {
	if len(doc.Content) == 0 {
		return false, nil
	}

	a, err := e.articles.ExtractArticle(string(doc.Content), string(documentURI))
	if triplify.ErrorCode(err) == triplify.ENOTFOUND {
		return false, nil
	} else if err != nil {
		return false, triplify.Errorf(triplify.EEXTRACTION, "article: %v", err)
	}

	var body string
	if e.conv != nil && strings.TrimSpace(a.ContentHTML) != "" {
		body, err = e.conv.Convert(a.ContentHTML)
		if err != nil {
			return false, triplify.Errorf(triplify.EEXTRACTION, "article body: %v", err)
		}
	}

	lang := ""
	if langTag.MatchString(a.Language) {
		lang = a.Language
	}

	var triples []statement
	add := func(p triplify.IRI, value string) {
		if value = strings.Join(strings.Fields(value), " "); value != "" {
			triples = append(triples, statement{p, triplify.Literal{Value: value, Lang: lang}})
		}
	}
	add(dctermsTitle, a.Title)
	add(dctermsCreator, a.Author)
	add(dctermsDescription, a.Description)
	add(dctermsPublisher, a.SiteName)
	if !a.Published.IsZero() {
		date := triplify.Literal{Value: a.Published.UTC().Format(time.RFC3339), Datatype: xsdDateTime}
		triples = append(triples, statement{dctermsDate, date})
	}
	if body = strings.TrimSpace(body); body != "" {
		triples = append(triples, statement{siocContent, triplify.Literal{Value: body, Lang: lang}})
	}

	if len(triples) == 0 {
		return false, nil
	}
	for _, t := range triples {
		if err := out.WriteTriple(documentURI, t.p, t.o); err != nil {
			return false, err
		}
	}
	writeNamespaces(out, articlePrefixes)
	return true, nil
}

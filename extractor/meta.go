package extractor

import (
	"net/url"
	"strings"

	"github.com/fwojciec/triplify"
)

var metaPrefixes = triplify.MustCreateSubset("sindice")

var sindiceNamespace = string(metaPrefixes.MustExpand("sindice:"))

// MetaFactory creates extractors that turn named META headers into triples.
var MetaFactory = triplify.NewExtractorFactory(&triplify.ExtractorDescription{
	Name:         "html-head-meta",
	ContentTypes: markupTypes("0.02"),
	Example:      "example-meta.html",
	Prefixes:     metaPrefixes,
	Input:        triplify.InputMarkup,
}, func() triplify.Extractor { return triplify.ExtractorFunc(runMeta) })

// runMeta writes one triple per <meta name content> pair. The predicate is
// the lower-cased name in the sindice namespace; the language comes from
// the element or, failing that, the document.
func runMeta(doc *triplify.Document, documentURI triplify.IRI, out triplify.Sink) (bool, error) {
	if doc.Root == nil {
		return false, nil
	}

	docLang := documentLanguage(doc.Root)
	wrote := false
	for _, meta := range doc.Root.Find("head meta[name]") {
		name, _ := meta.Attr("name")
		content, ok := meta.Attr("content")
		name = strings.ToLower(strings.TrimSpace(name))
		content = strings.TrimSpace(content)
		if name == "" || !ok || content == "" {
			continue
		}

		lang := docLang
		if l, ok := meta.Attr("lang"); ok && strings.TrimSpace(l) != "" {
			lang = strings.TrimSpace(l)
		}

		predicate := triplify.IRI(sindiceNamespace + url.PathEscape(name))
		if err := out.WriteTriple(documentURI, predicate, triplify.Literal{Value: content, Lang: lang}); err != nil {
			return wrote, err
		}
		wrote = true
	}
	if wrote {
		writeNamespaces(out, metaPrefixes)
	}
	return wrote, nil
}

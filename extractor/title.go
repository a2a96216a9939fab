package extractor

import (
	"strings"

	"github.com/fwojciec/triplify"
)

var titlePrefixes = triplify.MustCreateSubset("dcterms")

var dctermsTitle = titlePrefixes.MustExpand("dcterms:title")

// TitleFactory creates extractors for the document <title>.
var TitleFactory = triplify.NewExtractorFactory(&triplify.ExtractorDescription{
	Name:         "html-head-title",
	ContentTypes: markupTypes("0.02"),
	Example:      "example-title.html",
	Prefixes:     titlePrefixes,
	Input:        triplify.InputMarkup,
}, func() triplify.Extractor { return triplify.ExtractorFunc(runTitle) })

func runTitle(doc *triplify.Document, documentURI triplify.IRI, out triplify.Sink) (bool, error) {
	if doc.Root == nil {
		return false, nil
	}

	for _, title := range doc.Root.Find("title") {
		text := strings.Join(strings.Fields(title.Text()), " ")
		if text == "" {
			continue
		}
		lit := triplify.Literal{Value: text, Lang: documentLanguage(doc.Root)}
		if err := out.WriteTriple(documentURI, dctermsTitle, lit); err != nil {
			return false, err
		}
		writeNamespaces(out, titlePrefixes)
		return true, nil
	}
	return false, nil
}

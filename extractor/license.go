package extractor

import (
	"strings"

	"github.com/fwojciec/triplify"
)

var licensePrefixes = triplify.MustCreateSubset("xhtml")

var xhtmlLicense = licensePrefixes.MustExpand("xhtml:license")

// LicenseFactory creates extractors for rel="license" links.
var LicenseFactory = triplify.NewExtractorFactory(&triplify.ExtractorDescription{
	Name:         "html-rel-license",
	ContentTypes: markupTypes("0.02"),
	Example:      "example-license.html",
	Prefixes:     licensePrefixes,
	Input:        triplify.InputMarkup,
}, func() triplify.Extractor { return triplify.ExtractorFunc(runLicense) })

// runLicense resolves every a or link element whose rel list contains
// "license". Duplicate targets are written once.
func runLicense(doc *triplify.Document, documentURI triplify.IRI, out triplify.Sink) (bool, error) {
	if doc.Root == nil {
		return false, nil
	}

	seen := make(map[triplify.IRI]bool)
	for _, link := range doc.Root.Find("a[rel][href], link[rel][href]") {
		rel, _ := link.Attr("rel")
		if !hasToken(rel, "license") {
			continue
		}
		href, _ := link.Attr("href")
		target, ok := triplify.ResolveReference(documentURI, href)
		if !ok || seen[target] {
			continue
		}
		seen[target] = true

		if err := out.WriteTriple(documentURI, xhtmlLicense, target); err != nil {
			return true, err
		}
	}
	if len(seen) > 0 {
		writeNamespaces(out, licensePrefixes)
	}
	return len(seen) > 0, nil
}

func hasToken(list, token string) bool {
	for _, f := range strings.Fields(list) {
		if strings.EqualFold(f, token) {
			return true
		}
	}
	return false
}

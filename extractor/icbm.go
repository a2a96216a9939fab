package extractor

import (
	"regexp"
	"strings"

	"github.com/fwojciec/triplify"
)

var coordinateSeparator = regexp.MustCompile(`[;,]`)

// ICBMFactory creates extractors for ICBM coordinates given as META headers.
var ICBMFactory = triplify.NewExtractorFactory(&triplify.ExtractorDescription{
	Name:         "html-head-icbm",
	ContentTypes: markupTypes("0.01"),
	Prefixes:     geoPrefixes,
	Input:        triplify.InputMarkup,
}, func() triplify.Extractor { return triplify.ExtractorFunc(runICBM) })

// runICBM reads the first ICBM or geo.position META header. Both carry the
// same point, so only one is used.
func runICBM(doc *triplify.Document, documentURI triplify.IRI, out triplify.Sink) (bool, error) {
	if doc.Root == nil {
		return false, nil
	}

	var content string
	for _, meta := range doc.Root.Find("meta[name]") {
		name, _ := meta.Attr("name")
		if !strings.EqualFold(name, "ICBM") && !strings.EqualFold(name, "geo.position") {
			continue
		}
		if v, ok := meta.Attr("content"); ok && v != "" {
			content = v
			break
		}
	}
	if content == "" {
		return false, nil
	}

	coords := coordinateSeparator.Split(content, -1)
	if len(coords) < 2 {
		return false, nil
	}

	wrote, err := writePoint(out, documentURI, coords[0], coords[1])
	if wrote {
		writeNamespaces(out, geoPrefixes)
	}
	return wrote, err
}

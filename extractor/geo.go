package extractor

import (
	"strconv"
	"strings"

	"github.com/fwojciec/triplify"
)

var geoPrefixes = triplify.MustCreateSubset("rdf", "geo", "dcterms")

var (
	geoPoint       = geoPrefixes.MustExpand("geo:Point")
	geoLat         = geoPrefixes.MustExpand("geo:lat")
	geoLong        = geoPrefixes.MustExpand("geo:long")
	dctermsRelated = geoPrefixes.MustExpand("dcterms:related")
)

// GeoFactory creates extractors for the geo microformat.
var GeoFactory = triplify.NewExtractorFactory(&triplify.ExtractorDescription{
	Name:         "html-mf-geo",
	ContentTypes: markupTypes("0.1"),
	Example:      "example-mf-geo.html",
	Prefixes:     geoPrefixes,
	Input:        triplify.InputMarkup,
}, func() triplify.Extractor { return triplify.ExtractorFunc(runGeo) })

// runGeo reads .geo elements that carry .latitude and .longitude parts or a
// "lat;long" text value.
func runGeo(doc *triplify.Document, documentURI triplify.IRI, out triplify.Sink) (bool, error) {
	if doc.Root == nil {
		return false, nil
	}

	wrote := false
	for _, g := range doc.Root.Find(".geo") {
		lat, long := classValue(g, "latitude"), classValue(g, "longitude")
		if lat == "" && long == "" {
			lat, long, _ = strings.Cut(nodeValue(g), ";")
		}

		ok, err := writePoint(out, documentURI, lat, long)
		if err != nil {
			return wrote, err
		}
		wrote = wrote || ok
	}
	if wrote {
		writeNamespaces(out, geoPrefixes)
	}
	return wrote, nil
}

// writePoint links a geo:Point to the document. Coordinates that are not
// numbers produce nothing.
func writePoint(out triplify.Sink, documentURI triplify.IRI, lat, long string) (bool, error) {
	latV, err := parseCoordinate(lat)
	if err != nil {
		return false, nil
	}
	longV, err := parseCoordinate(long)
	if err != nil {
		return false, nil
	}

	point := out.NewBlankNode()
	for _, t := range []triplify.Triple{
		{Subject: documentURI, Predicate: dctermsRelated, Object: point},
		{Subject: point, Predicate: rdfType, Object: geoPoint},
		{Subject: point, Predicate: geoLat, Object: triplify.NewLiteral(latV)},
		{Subject: point, Predicate: geoLong, Object: triplify.NewLiteral(longV)},
	} {
		if err := out.WriteTriple(t.Subject, t.Predicate, t.Object); err != nil {
			return true, err
		}
	}
	return true, nil
}

// parseCoordinate normalizes a decimal coordinate to its shortest
// single-precision form, so "45.50" becomes "45.5".
func parseCoordinate(s string) (string, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(v, 'f', -1, 32), nil
}

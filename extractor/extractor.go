// Package extractor provides the built-in HTML extractors: hCard and geo
// microformats plus the head-level ICBM, meta, title and rel-license
// extractors. Extractors only see documents through triplify.Node.
package extractor

import (
	"strings"

	"github.com/fwojciec/triplify"
)

// Factories returns the built-in extractor factories in registration order.
func Factories() []triplify.ExtractorFactory {
	return []triplify.ExtractorFactory{
		HCardFactory,
		GeoFactory,
		ICBMFactory,
		MetaFactory,
		TitleFactory,
		LicenseFactory,
	}
}

// markupTypes declares the HTML and XHTML media types at weight q.
func markupTypes(q string) []triplify.MediaRange {
	return triplify.MustParseMediaRanges(
		"text/html;q="+q,
		"application/xhtml+xml;q="+q,
	)
}

func writeNamespaces(out triplify.Sink, p *triplify.Prefixes) {
	for _, ns := range p.Namespaces() {
		out.WriteNamespace(ns.Prefix, ns.URI)
	}
}

// documentLanguage returns the language declared on the root element.
func documentLanguage(root triplify.Node) string {
	for _, html := range root.Find("html") {
		if lang, ok := html.Attr("lang"); ok && strings.TrimSpace(lang) != "" {
			return strings.TrimSpace(lang)
		}
		if lang, ok := html.Attr("xml:lang"); ok && strings.TrimSpace(lang) != "" {
			return strings.TrimSpace(lang)
		}
	}
	return ""
}

// selfOrDescendants returns n itself when it carries class, followed by its
// descendants that do.
func selfOrDescendants(n triplify.Node, class string) []triplify.Node {
	var nodes []triplify.Node
	if n.HasClass(class) {
		nodes = append(nodes, n)
	}
	return append(nodes, n.Find("."+class)...)
}

// classValue returns the value of the first self-or-descendant node with
// class. The abbr design pattern's title attribute takes precedence over
// the text content.
func classValue(n triplify.Node, class string) string {
	for _, node := range selfOrDescendants(n, class) {
		if v := nodeValue(node); v != "" {
			return v
		}
	}
	return ""
}

func nodeValue(n triplify.Node) string {
	if n.Name() == "abbr" {
		if title, ok := n.Attr("title"); ok && strings.TrimSpace(title) != "" {
			return strings.TrimSpace(title)
		}
	}
	return strings.Join(strings.Fields(n.Text()), " ")
}

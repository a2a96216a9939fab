package extractor

import (
	"strings"

	"github.com/fwojciec/triplify"
)

var hcardPrefixes = triplify.MustCreateSubset("rdf", "vcard")

var (
	rdfType          = hcardPrefixes.MustExpand("rdf:type")
	vcardVCard       = hcardPrefixes.MustExpand("vcard:VCard")
	vcardName        = hcardPrefixes.MustExpand("vcard:Name")
	vcardFn          = hcardPrefixes.MustExpand("vcard:fn")
	vcardN           = hcardPrefixes.MustExpand("vcard:n")
	vcardNickname    = hcardPrefixes.MustExpand("vcard:nickname")
	vcardURL         = hcardPrefixes.MustExpand("vcard:url")
	vcardEmail       = hcardPrefixes.MustExpand("vcard:email")
	vcardTel         = hcardPrefixes.MustExpand("vcard:tel")
	vcardOrg         = hcardPrefixes.MustExpand("vcard:org")
	vcardNote        = hcardPrefixes.MustExpand("vcard:note")
	vcardPhoto       = hcardPrefixes.MustExpand("vcard:photo")
	vcardTitle       = hcardPrefixes.MustExpand("vcard:title")
	vcardGivenName   = hcardPrefixes.MustExpand("vcard:given-name")
	vcardFamilyName  = hcardPrefixes.MustExpand("vcard:family-name")
	vcardAddlName    = hcardPrefixes.MustExpand("vcard:additional-name")
	vcardHonPrefix   = hcardPrefixes.MustExpand("vcard:honorific-prefix")
	vcardHonSuffix   = hcardPrefixes.MustExpand("vcard:honorific-suffix")
	hcardLiteralProp = []struct {
		class     string
		predicate triplify.IRI
	}{
		{"fn", vcardFn},
		{"nickname", vcardNickname},
		{"tel", vcardTel},
		{"org", vcardOrg},
		{"title", vcardTitle},
		{"note", vcardNote},
	}
	hcardNameProp = []struct {
		class     string
		predicate triplify.IRI
	}{
		{"given-name", vcardGivenName},
		{"family-name", vcardFamilyName},
		{"additional-name", vcardAddlName},
		{"honorific-prefix", vcardHonPrefix},
		{"honorific-suffix", vcardHonSuffix},
	}
)

// HCardFactory creates extractors for the hCard microformat.
var HCardFactory = triplify.NewExtractorFactory(&triplify.ExtractorDescription{
	Name:         "html-mf-hcard",
	ContentTypes: markupTypes("0.1"),
	Example:      "example-mf-hcard.html",
	Prefixes:     hcardPrefixes,
	Input:        triplify.InputMarkup,
}, func() triplify.Extractor { return &hcardExtractor{} })

type hcardExtractor struct{}

func (e *hcardExtractor) Run(doc *triplify.Document, documentURI triplify.IRI, out triplify.Sink) (bool, error) {
	if doc.Root == nil {
		return false, nil
	}

	cards := doc.Root.Find(".vcard")
	if len(cards) == 0 {
		return false, nil
	}

	writeNamespaces(out, hcardPrefixes)
	lang := documentLanguage(doc.Root)
	for _, card := range cards {
		if err := e.writeCard(card, documentURI, lang, out); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (e *hcardExtractor) writeCard(card triplify.Node, documentURI triplify.IRI, lang string, out triplify.Sink) error {
	node := out.NewBlankNode()
	if err := out.WriteTriple(node, rdfType, vcardVCard); err != nil {
		return err
	}

	for _, p := range hcardLiteralProp {
		if v := classValue(card, p.class); v != "" {
			if err := out.WriteTriple(node, p.predicate, triplify.Literal{Value: v, Lang: lang}); err != nil {
				return err
			}
		}
	}

	if err := e.writeName(card, node, out); err != nil {
		return err
	}

	for _, n := range selfOrDescendants(card, "url") {
		if iri, ok := linkTarget(n, documentURI, "href"); ok {
			if err := out.WriteTriple(node, vcardURL, iri); err != nil {
				return err
			}
		}
	}
	for _, n := range selfOrDescendants(card, "email") {
		if iri, ok := emailTarget(n); ok {
			if err := out.WriteTriple(node, vcardEmail, iri); err != nil {
				return err
			}
		}
	}
	for _, n := range selfOrDescendants(card, "photo") {
		if iri, ok := linkTarget(n, documentURI, "src", "href"); ok {
			if err := out.WriteTriple(node, vcardPhoto, iri); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeName emits a structured vcard:n node when any name part is present.
func (e *hcardExtractor) writeName(card triplify.Node, node triplify.BlankNode, out triplify.Sink) error {
	for _, n := range selfOrDescendants(card, "n") {
		var parts []triplify.Triple
		for _, p := range hcardNameProp {
			if v := classValue(n, p.class); v != "" {
				parts = append(parts, triplify.Triple{Predicate: p.predicate, Object: triplify.NewLiteral(v)})
			}
		}
		if len(parts) == 0 {
			continue
		}

		name := out.NewBlankNode()
		if err := out.WriteTriple(node, vcardN, name); err != nil {
			return err
		}
		if err := out.WriteTriple(name, rdfType, vcardName); err != nil {
			return err
		}
		for _, t := range parts {
			if err := out.WriteTriple(name, t.Predicate, t.Object); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// linkTarget resolves the first present attribute of n, falling back to the
// text content.
func linkTarget(n triplify.Node, base triplify.IRI, attrs ...string) (triplify.IRI, bool) {
	for _, attr := range attrs {
		if v, ok := n.Attr(attr); ok {
			return triplify.ResolveReference(base, v)
		}
	}
	return triplify.ResolveReference(base, n.Text())
}

func emailTarget(n triplify.Node) (triplify.IRI, bool) {
	v, ok := n.Attr("href")
	if !ok {
		v = n.Text()
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	if !strings.HasPrefix(strings.ToLower(v), "mailto:") {
		v = "mailto:" + v
	}
	return triplify.IRI(v), true
}

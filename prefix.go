package triplify

import (
	"sort"
	"strings"
)

// Namespace is a prefix bound to a namespace IRI.
type Namespace struct {
	Prefix string
	URI    string
}

// Prefixes is a frozen set of prefix mappings used to expand CURIEs.
// A Prefixes value is never modified after construction and is safe for
// concurrent use.
type Prefixes struct {
	m map[string]string
}

// NewPrefixes returns a frozen Prefixes holding a copy of m.
func NewPrefixes(m map[string]string) *Prefixes {
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return &Prefixes{m: cp}
}

// popularPrefixes is the process-wide catalog. It is populated at package
// initialization and read-only afterwards.
var popularPrefixes = NewPrefixes(map[string]string{
	"rdf":     "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
	"rdfs":    "http://www.w3.org/2000/01/rdf-schema#",
	"xsd":     "http://www.w3.org/2001/XMLSchema#",
	"owl":     "http://www.w3.org/2002/07/owl#",
	"dc":      "http://purl.org/dc/elements/1.1/",
	"dcterms": "http://purl.org/dc/terms/",
	"foaf":    "http://xmlns.com/foaf/0.1/",
	"geo":     "http://www.w3.org/2003/01/geo/wgs84_pos#",
	"vcard":   "http://www.w3.org/2006/vcard/ns#",
	"sindice": "http://vocab.sindice.net/",
	"xhtml":   "http://www.w3.org/1999/xhtml/vocab#",
	"sioc":    "http://rdfs.org/sioc/ns#",
	"og":      "http://ogp.me/ns#",
	"cc":      "http://creativecommons.org/ns#",
	"schema":  "http://schema.org/",
	"doac":    "http://ramonantonio.net/doac/0.1/#",
	"ical":    "http://www.w3.org/2002/12/cal/icaltzd#",
})

// PopularPrefixes returns the global prefix catalog.
func PopularPrefixes() *Prefixes {
	return popularPrefixes
}

// CreateSubset returns a frozen subset of the global catalog holding only the
// named prefixes. It fails if any name is not in the catalog.
func CreateSubset(names ...string) (*Prefixes, error) {
	m := make(map[string]string, len(names))
	for _, name := range names {
		uri, ok := popularPrefixes.m[name]
		if !ok {
			return nil, Errorf(ENOTFOUND, "prefix %q not in catalog", name)
		}
		m[name] = uri
	}
	return &Prefixes{m: m}, nil
}

// MustCreateSubset is like CreateSubset but panics on unknown names.
// It is meant for package-level extractor descriptions.
func MustCreateSubset(names ...string) *Prefixes {
	p, err := CreateSubset(names...)
	if err != nil {
		panic(err)
	}
	return p
}

// Expand resolves a CURIE such as "geo:lat" to a full IRI.
// Returns EINVALID if the prefix is not bound in this set.
func (p *Prefixes) Expand(curie string) (IRI, error) {
	prefix, local, ok := strings.Cut(curie, ":")
	if !ok {
		return "", Errorf(EINVALID, "not a CURIE: %q", curie)
	}
	if p == nil {
		return "", Errorf(EINVALID, "unresolved prefix %q in %q", prefix, curie)
	}
	uri, ok := p.m[prefix]
	if !ok {
		return "", Errorf(EINVALID, "unresolved prefix %q in %q", prefix, curie)
	}
	return IRI(uri + local), nil
}

// MustExpand is like Expand but panics if the CURIE cannot be resolved.
func (p *Prefixes) MustExpand(curie string) IRI {
	iri, err := p.Expand(curie)
	if err != nil {
		panic(err)
	}
	return iri
}

// Has reports whether prefix is bound.
func (p *Prefixes) Has(prefix string) bool {
	if p == nil {
		return false
	}
	_, ok := p.m[prefix]
	return ok
}

// Len returns the number of bound prefixes.
func (p *Prefixes) Len() int {
	if p == nil {
		return 0
	}
	return len(p.m)
}

// Namespaces returns the bindings sorted by prefix.
func (p *Prefixes) Namespaces() []Namespace {
	if p == nil {
		return nil
	}
	ns := make([]Namespace, 0, len(p.m))
	for prefix, uri := range p.m {
		ns = append(ns, Namespace{Prefix: prefix, URI: uri})
	}
	sort.Slice(ns, func(i, j int) bool { return ns[i].Prefix < ns[j].Prefix })
	return ns
}

// Abbreviate returns the CURIE form of iri if it falls within a bound
// namespace and the remaining local part is non-empty.
// The longest matching namespace wins.
func (p *Prefixes) Abbreviate(iri IRI) (string, bool) {
	if p == nil {
		return "", false
	}
	var bestPrefix, bestURI string
	for prefix, uri := range p.m {
		if strings.HasPrefix(string(iri), uri) && len(uri) > len(bestURI) {
			bestPrefix, bestURI = prefix, uri
		}
	}
	if bestURI == "" {
		return "", false
	}
	local := strings.TrimPrefix(string(iri), bestURI)
	if local == "" || !isLocalName(local) {
		return "", false
	}
	return bestPrefix + ":" + local, true
}

// isLocalName reports whether s is safe to emit unescaped as the local part
// of a prefixed name.
func isLocalName(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case (r >= '0' && r <= '9') || r == '-':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Package etree implements an RDF/XML triplify.TripleWriter using
// github.com/beevik/etree.
package etree

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/triplify"
)

const rdfNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

// ncName approximates the XML NCName production for ASCII names.
var ncName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._-]*$`)

// WriterFactory writes RDF/XML.
var WriterFactory triplify.WriterFactory = writerFactory{}

type writerFactory struct{}

var writerDescription = &triplify.WriterDescription{
	Name:      "rdfxml",
	Aliases:   []string{"xml", "rdf"},
	MIMEType:  "application/rdf+xml",
	Extension: "rdf",
}

func (writerFactory) Description() *triplify.WriterDescription { return writerDescription }

func (writerFactory) NewWriter(w io.Writer) triplify.TripleWriter {
	return NewWriter(w)
}

// Ensure Writer implements triplify.TripleWriter at compile time.
var _ triplify.TripleWriter = (*Writer)(nil)

// Writer buffers triples and writes one RDF/XML document on Close.
// Triples are grouped into one rdf:Description per subject, in the order
// subjects were first seen.
type Writer struct {
	w io.Writer

	// prefix -> namespace and namespace -> prefix
	prefixes   map[string]string
	namespaces map[string]string
	order      []string

	subjects []triplify.Resource
	bySubj   map[triplify.Resource][]triplify.Triple
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	wr := &Writer{
		w:          w,
		prefixes:   make(map[string]string),
		namespaces: make(map[string]string),
		bySubj:     make(map[triplify.Resource][]triplify.Triple),
	}
	wr.bind("rdf", rdfNS)
	return wr
}

func (w *Writer) WriteNamespace(prefix, uri string) error {
	if !ncName.MatchString(prefix) || strings.HasPrefix(strings.ToLower(prefix), "xml") {
		return nil
	}
	w.bind(prefix, uri)
	return nil
}

func (w *Writer) bind(prefix, uri string) {
	if _, ok := w.prefixes[prefix]; ok {
		return
	}
	if _, ok := w.namespaces[uri]; ok {
		return
	}
	w.prefixes[prefix] = uri
	w.namespaces[uri] = prefix
	w.order = append(w.order, prefix)
}

func (w *Writer) WriteTriple(t triplify.Triple) error {
	if _, ok := w.bySubj[t.Subject]; !ok {
		w.subjects = append(w.subjects, t.Subject)
	}
	w.bySubj[t.Subject] = append(w.bySubj[t.Subject], t)
	return nil
}

// Close serializes the buffered triples. It fails with EINVALID if a
// predicate has no NCName suffix, such as one ending in a slash.
func (w *Writer) Close() error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("rdf:RDF")

	for _, s := range w.subjects {
		desc := root.CreateElement("rdf:Description")
		setResource(desc, "about", s)

		for _, t := range w.bySubj[s] {
			qname, err := w.qualify(t.Predicate)
			if err != nil {
				return err
			}
			prop := desc.CreateElement(qname)
			switch o := t.Object.(type) {
			case triplify.IRI, triplify.BlankNode:
				setResource(prop, "resource", o.(triplify.Resource))
			case triplify.Literal:
				if o.Lang != "" {
					prop.CreateAttr("xml:lang", o.Lang)
				} else if o.Datatype != "" {
					prop.CreateAttr("rdf:datatype", string(o.Datatype))
				}
				prop.SetText(o.Value)
			}
		}
	}

	// Namespace declarations go last so generated prefixes are included.
	for _, prefix := range w.order {
		root.CreateAttr("xmlns:"+prefix, w.prefixes[prefix])
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w.w)
	return err
}

func setResource(el *etree.Element, attr string, r triplify.Resource) {
	switch v := r.(type) {
	case triplify.IRI:
		el.CreateAttr("rdf:"+attr, string(v))
	case triplify.BlankNode:
		el.CreateAttr("rdf:nodeID", string(v))
	}
}

// qualify splits a predicate into a bound prefix and an NCName local part,
// generating a prefix for namespaces not yet declared. The local part is the
// longest NCName suffix of the IRI, so a predicate such as
// http://vocab.sindice.net/twitter:card is written in the namespace
// http://vocab.sindice.net/twitter: as local name card.
func (w *Writer) qualify(p triplify.IRI) (string, error) {
	s := string(p)
	ns, local, ok := splitIRI(s)
	if !ok {
		return "", triplify.Errorf(triplify.EINVALID, "predicate %s cannot be written as RDF/XML", s)
	}

	prefix, ok := w.namespaces[ns]
	if !ok {
		for n := len(w.order); ; n++ {
			prefix = "ns" + strconv.Itoa(n)
			if _, taken := w.prefixes[prefix]; !taken {
				break
			}
		}
		w.bind(prefix, ns)
	}
	return prefix + ":" + local, nil
}

// splitIRI returns the IRI up to its longest NCName suffix and that suffix.
func splitIRI(s string) (ns, local string, ok bool) {
	i := len(s)
	for i > 0 && isNameChar(s[i-1]) {
		i--
	}
	for i < len(s) && !isNameStart(s[i]) {
		i++
	}
	if i == 0 || i == len(s) {
		return "", "", false
	}
	return s[:i], s[i:], true
}

func isNameStart(c byte) bool {
	return c == '_' || ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c == '-' || c == '.' || ('0' <= c && c <= '9')
}

package triplify

// Document is the parsed view of a DocumentSource handed to extractors.
type Document struct {
	// Content holds the raw document bytes.
	Content []byte

	// ContentType is the media type the document was parsed as.
	ContentType string

	// Root is the parsed markup tree. It is nil for documents whose type
	// needs no structural model, e.g. N-Triples.
	Root Node
}

// Node is the minimal query capability extractors use to inspect markup.
// It hides the underlying parser so it can be replaced without touching
// extractor logic.
type Node interface {
	// Find returns the descendants matching a CSS selector, in document order.
	// An invalid selector matches nothing.
	Find(selector string) []Node

	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)

	// Text returns the combined text content with surrounding whitespace trimmed.
	Text() string

	// HasClass reports whether the class attribute contains name.
	HasClass(name string) bool

	// Name returns the lower-cased element name.
	Name() string
}

// DocumentParser builds the structural model of markup content.
type DocumentParser interface {
	// Parse decodes content using the charset declared in contentType or in
	// the markup itself and returns the root node.
	// Returns EPARSE if the content cannot be decoded or parsed.
	Parse(content []byte, contentType string) (Node, error)
}

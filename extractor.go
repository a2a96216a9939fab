package triplify

// Sink receives the output of one extractor.
type Sink interface {
	// WriteTriple appends a triple.
	WriteTriple(s Resource, p IRI, o Term) error

	// WriteNamespace records a prefix binding as a serialization hint.
	WriteNamespace(prefix, uri string)

	// NewBlankNode allocates a blank node that is distinct from every other
	// blank node allocated for the same document.
	NewBlankNode() BlankNode
}

// Extractor converts one document into triples. A new Extractor is created
// for every run, so implementations may keep per-run state.
type Extractor interface {
	// Run writes the triples found in doc to out and reports whether it
	// wrote anything. Finding nothing is not an error: Run returns
	// (false, nil). An error is returned only for malformed input the
	// extractor cannot recover from and does not affect other extractors.
	Run(doc *Document, documentURI IRI, out Sink) (bool, error)
}

// InputKind tells the pipeline which view of the document an extractor needs.
type InputKind int

const (
	// InputMarkup extractors need Document.Root.
	InputMarkup InputKind = iota

	// InputRaw extractors only read Document.Content.
	InputRaw
)

// ExtractorDescription identifies an extractor implementation. One immutable
// value exists per implementation and is shared by pointer.
type ExtractorDescription struct {
	// Name is unique across the registry, e.g. "html-head-icbm".
	Name string

	// ContentTypes lists the supported media types with quality weights.
	// They filter irrelevant extractors and rank candidates.
	ContentTypes []MediaRange

	// Example names a sample input document for documentation.
	Example string

	// Prefixes is the frozen prefix subset the extractor emits IRIs from.
	Prefixes *Prefixes

	Input InputKind
}

// Quality returns the weight declared for contentType and whether any
// declared range matches it. The highest matching weight wins.
func (d *ExtractorDescription) Quality(contentType string) (float64, bool) {
	best, found := 0.0, false
	for _, mr := range d.ContentTypes {
		if mr.Matches(contentType) && (!found || mr.Quality > best) {
			best, found = mr.Quality, true
		}
	}
	return best, found
}

// ExtractorFactory creates extractors and describes them without
// instantiating one.
type ExtractorFactory interface {
	Description() *ExtractorDescription
	NewExtractor() Extractor
}

// NewExtractorFactory returns a factory that describes itself with desc and
// calls fn for every new extractor.
func NewExtractorFactory(desc *ExtractorDescription, fn func() Extractor) ExtractorFactory {
	return &extractorFactory{desc: desc, fn: fn}
}

type extractorFactory struct {
	desc *ExtractorDescription
	fn   func() Extractor
}

func (f *extractorFactory) Description() *ExtractorDescription { return f.desc }
func (f *extractorFactory) NewExtractor() Extractor            { return f.fn() }

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(doc *Document, documentURI IRI, out Sink) (bool, error)

func (fn ExtractorFunc) Run(doc *Document, documentURI IRI, out Sink) (bool, error) {
	return fn(doc, documentURI, out)
}

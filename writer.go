package triplify

import (
	"io"
	"sort"
	"strings"
	"sync"
)

// TripleWriter serializes triples in one concrete syntax.
type TripleWriter interface {
	// WriteNamespace declares a prefix. Writers without prefix support ignore it.
	WriteNamespace(prefix, uri string) error

	// WriteTriple serializes a triple. Writers may buffer until Close.
	WriteTriple(t Triple) error

	// Close flushes buffered output. It does not close the underlying io.Writer.
	Close() error
}

// GraphWriter is implemented by writers that label output with the
// document it came from, such as N-Quads.
type GraphWriter interface {
	TripleWriter

	// SetGraph sets the graph label for subsequent triples.
	SetGraph(graph IRI)
}

// WriterDescription identifies an output format.
type WriterDescription struct {
	// Name is the primary format identifier, e.g. "ntriples".
	Name string

	// Aliases are additional identifiers, e.g. "nt".
	Aliases []string

	// MIMEType is sent as the Content-Type of serialized output.
	MIMEType string

	// Extension is the file name extension for saved output, without the dot.
	Extension string
}

// WriterFactory creates writers for one output format.
type WriterFactory interface {
	Description() *WriterDescription
	NewWriter(w io.Writer) TripleWriter
}

// WriterRegistry resolves format identifiers to writer factories.
type WriterRegistry struct {
	mu        sync.RWMutex
	factories []WriterFactory
	byID      map[string]WriterFactory
}

// NewWriterRegistry returns a registry holding factories. It fails if two
// factories claim the same identifier.
func NewWriterRegistry(factories ...WriterFactory) (*WriterRegistry, error) {
	r := &WriterRegistry{byID: make(map[string]WriterFactory)}
	for _, f := range factories {
		if err := r.Register(f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a factory under its name and aliases.
func (r *WriterRegistry) Register(f WriterFactory) error {
	desc := f.Description()
	if desc == nil || desc.Name == "" {
		return Errorf(EINVALID, "writer name required")
	}

	ids := append([]string{desc.Name}, desc.Aliases...)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if _, ok := r.byID[strings.ToLower(id)]; ok {
			return Errorf(EINVALID, "writer format %q already registered", id)
		}
	}
	for _, id := range ids {
		r.byID[strings.ToLower(id)] = f
	}
	r.factories = append(r.factories, f)
	return nil
}

// Lookup returns the factory for a format identifier, case-insensitively.
// Returns EUNSUPPORTED if the format is unknown.
func (r *WriterRegistry) Lookup(format string) (WriterFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byID[strings.ToLower(format)]
	if !ok {
		return nil, Errorf(EUNSUPPORTED, "unsupported output format %q", format)
	}
	return f, nil
}

// Formats returns every registered identifier, sorted.
func (r *WriterRegistry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

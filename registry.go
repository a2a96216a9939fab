package triplify

import (
	"sort"
	"sync"
)

// ExtractorRegistry is an append-only catalog of extractor factories.
// Registration happens at startup; afterwards the registry is only read
// and is safe for concurrent use.
type ExtractorRegistry struct {
	mu        sync.RWMutex
	factories []ExtractorFactory
	byName    map[string]ExtractorFactory
}

// NewExtractorRegistry returns a registry holding factories in the given
// order. It fails if two factories share a name.
func NewExtractorRegistry(factories ...ExtractorFactory) (*ExtractorRegistry, error) {
	r := &ExtractorRegistry{byName: make(map[string]ExtractorFactory)}
	for _, f := range factories {
		if err := r.Register(f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends a factory. Returns EINVALID if the description is
// incomplete or its name is already registered.
func (r *ExtractorRegistry) Register(f ExtractorFactory) error {
	desc := f.Description()
	if desc == nil || desc.Name == "" {
		return Errorf(EINVALID, "extractor name required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[desc.Name]; ok {
		return Errorf(EINVALID, "extractor %q already registered", desc.Name)
	}
	r.byName[desc.Name] = f
	r.factories = append(r.factories, f)
	return nil
}

// Lookup returns the factory registered under name.
// Returns ENOTFOUND if there is none.
func (r *ExtractorRegistry) Lookup(name string) (ExtractorFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byName[name]
	if !ok {
		return nil, Errorf(ENOTFOUND, "extractor %q not found", name)
	}
	return f, nil
}

// MatchByMIMEType returns the factories declaring a media range that matches
// contentType, ordered by declared weight descending. Factories with equal
// weight keep registration order.
func (r *ExtractorRegistry) MatchByMIMEType(contentType string) []ExtractorFactory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type candidate struct {
		factory ExtractorFactory
		quality float64
	}
	var candidates []candidate
	for _, f := range r.factories {
		if q, ok := f.Description().Quality(contentType); ok {
			candidates = append(candidates, candidate{factory: f, quality: q})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].quality > candidates[j].quality
	})

	matched := make([]ExtractorFactory, len(candidates))
	for i, c := range candidates {
		matched[i] = c.factory
	}
	return matched
}

// Factories returns all factories in registration order.
func (r *ExtractorRegistry) Factories() []ExtractorFactory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]ExtractorFactory(nil), r.factories...)
}

// Names returns the registered names in registration order.
func (r *ExtractorRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.factories))
	for i, f := range r.factories {
		names[i] = f.Description().Name
	}
	return names
}

package triplify

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ExtractorFailure records an extractor that failed on an otherwise valid
// document.
type ExtractorFailure struct {
	Extractor string
	Err       error
}

// Ensure ExtractionResult implements Sink at compile time.
var _ Sink = (*ExtractionResult)(nil)

// ExtractionResult accumulates the triples extracted from one document and
// serializes them through exactly one TripleWriter when closed. It owns blank
// node allocation: ids are drawn from a monotonic counter and are unique
// within the result, but carry no identity outside it.
//
// One ExtractionResult is shared by all extractors run on a document.
// Extractors normally write through a Scope so a failing extractor leaves
// no partial output.
type ExtractionResult struct {
	mu          sync.Mutex
	w           TripleWriter
	documentURI IRI
	nodePrefix  string
	next        int
	triples     []Triple
	namespaces  []Namespace
	nsSeen      map[string]bool
	failures    []ExtractorFailure
	closed      bool
	closeErr    error
}

// NewExtractionResult returns an empty result bound to w.
func NewExtractionResult(w TripleWriter, documentURI IRI) *ExtractionResult {
	return &ExtractionResult{
		w:           w,
		documentURI: documentURI,
		nodePrefix:  fmt.Sprintf("node%08x", uint32(xxhash.Sum64String(string(documentURI)))),
		nsSeen:      make(map[string]bool),
	}
}

// DocumentURI returns the URI of the document being extracted.
func (r *ExtractionResult) DocumentURI() IRI {
	return r.documentURI
}

// WriteTriple appends a triple directly to the result.
func (r *ExtractionResult) WriteTriple(s Resource, p IRI, o Term) error {
	t := Triple{Subject: s, Predicate: p, Object: o}
	if err := t.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return Errorf(EINTERNAL, "extraction result closed")
	}
	r.triples = append(r.triples, t)
	return nil
}

// WriteNamespace records a prefix binding. The first binding of a prefix wins.
func (r *ExtractionResult) WriteNamespace(prefix, uri string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addNamespaceLocked(prefix, uri)
}

func (r *ExtractionResult) addNamespaceLocked(prefix, uri string) {
	if r.closed || r.nsSeen[prefix] {
		return
	}
	r.nsSeen[prefix] = true
	r.namespaces = append(r.namespaces, Namespace{Prefix: prefix, URI: uri})
}

// NewBlankNode allocates the next blank node.
func (r *ExtractionResult) NewBlankNode() BlankNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.allocLocked()
}

func (r *ExtractionResult) allocLocked() BlankNode {
	r.next++
	return BlankNode(r.nodePrefix + "x" + strconv.Itoa(r.next))
}

// Scope returns a staging sink for one extractor run.
func (r *ExtractionResult) Scope() *Scope {
	return &Scope{result: r, provisional: make(map[BlankNode]int)}
}

// RecordFailure notes that the named extractor failed.
func (r *ExtractionResult) RecordFailure(extractor string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, ExtractorFailure{Extractor: extractor, Err: err})
}

// Failures returns the recorded extractor failures in the order they occurred.
func (r *ExtractionResult) Failures() []ExtractorFailure {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ExtractorFailure(nil), r.failures...)
}

// HasResult reports whether any triple was written.
func (r *ExtractionResult) HasResult() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.triples) > 0
}

// Len returns the number of triples written.
func (r *ExtractionResult) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.triples)
}

// Triples returns a copy of the accumulated triples in write order.
func (r *ExtractionResult) Triples() []Triple {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Triple(nil), r.triples...)
}

// Close serializes namespaces and triples through the writer. Calling Close
// again returns the result of the first call without writing anything.
func (r *ExtractionResult) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return r.closeErr
	}
	r.closed = true
	r.closeErr = r.flushLocked()
	return r.closeErr
}

func (r *ExtractionResult) flushLocked() error {
	for _, ns := range r.namespaces {
		if err := r.w.WriteNamespace(ns.Prefix, ns.URI); err != nil {
			return fmt.Errorf("write namespace %s: %w", ns.Prefix, err)
		}
	}
	for _, t := range r.triples {
		if err := r.w.WriteTriple(t); err != nil {
			return fmt.Errorf("write triple: %w", err)
		}
	}
	return r.w.Close()
}

// Ensure Scope implements Sink at compile time.
var _ Sink = (*Scope)(nil)

// Scope stages the output of one extractor run. Blank nodes allocated from a
// Scope are provisional until Commit, which renumbers them from the shared
// counter in allocation order and appends the staged triples. Discard drops
// everything. A Scope is used by a single goroutine.
type Scope struct {
	result      *ExtractionResult
	triples     []Triple
	namespaces  []Namespace
	nodes       []BlankNode
	provisional map[BlankNode]int
	done        bool
}

func (s *Scope) WriteTriple(sub Resource, p IRI, o Term) error {
	t := Triple{Subject: sub, Predicate: p, Object: o}
	if err := t.Validate(); err != nil {
		return err
	}
	if s.done {
		return Errorf(EINTERNAL, "scope already finished")
	}
	s.triples = append(s.triples, t)
	return nil
}

func (s *Scope) WriteNamespace(prefix, uri string) {
	s.namespaces = append(s.namespaces, Namespace{Prefix: prefix, URI: uri})
}

func (s *Scope) NewBlankNode() BlankNode {
	b := BlankNode("scope" + strconv.Itoa(len(s.nodes)+1))
	s.provisional[b] = len(s.nodes)
	s.nodes = append(s.nodes, b)
	return b
}

// Len returns the number of staged triples.
func (s *Scope) Len() int {
	return len(s.triples)
}

// Commit moves the staged output into the result.
func (s *Scope) Commit() error {
	if s.done {
		return Errorf(EINTERNAL, "scope already finished")
	}
	s.done = true

	r := s.result
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return Errorf(EINTERNAL, "extraction result closed")
	}

	final := make([]BlankNode, len(s.nodes))
	for i := range s.nodes {
		final[i] = r.allocLocked()
	}
	for _, t := range s.triples {
		t.Subject = s.remap(t.Subject, final).(Resource)
		t.Object = s.remap(t.Object, final)
		r.triples = append(r.triples, t)
	}
	for _, ns := range s.namespaces {
		r.addNamespaceLocked(ns.Prefix, ns.URI)
	}
	return nil
}

// Discard drops the staged output.
func (s *Scope) Discard() {
	s.done = true
	s.triples = nil
	s.namespaces = nil
}

func (s *Scope) remap(t Term, final []BlankNode) Term {
	if b, ok := t.(BlankNode); ok {
		if i, ok := s.provisional[b]; ok {
			return final[i]
		}
	}
	return t
}

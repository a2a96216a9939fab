// Package triplify extracts RDF triples from semi-structured web documents.
// It acquires a document, parses it, runs every extractor whose declared
// media types match the document, and serializes the accumulated triples
// in a requested output format.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, cayley/, etree/).
package triplify

// DefaultBaseURI is the document URI used when no target URI can be
// determined, for example for a POSTed body with no uri parameter.
const DefaultBaseURI = "http://any23.org/tmp/"

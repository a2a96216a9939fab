package triplify

import (
	"strings"
)

// Term is a node of an RDF graph: an IRI, a blank node or a literal.
// String returns the term in N-Triples syntax.
type Term interface {
	String() string
	isTerm()
}

// Resource is a term that may appear in subject position.
type Resource interface {
	Term
	isResource()
}

// IRI is an absolute or document-relative IRI reference.
type IRI string

func (i IRI) String() string { return "<" + escapeIRI(string(i)) + ">" }
func (IRI) isTerm()          {}
func (IRI) isResource()      {}

// BlankNode is an anonymous node. Its identity is only meaningful within the
// ExtractionResult that allocated it.
type BlankNode string

func (b BlankNode) String() string { return "_:" + string(b) }
func (BlankNode) isTerm()          {}
func (BlankNode) isResource()      {}

// Literal is a literal value with an optional language tag or datatype.
// Lang and Datatype are mutually exclusive; Lang wins when both are set.
type Literal struct {
	Value    string
	Lang     string
	Datatype IRI
}

// NewLiteral returns a plain literal.
func NewLiteral(value string) Literal {
	return Literal{Value: value}
}

func (l Literal) String() string {
	s := `"` + escapeLiteral(l.Value) + `"`
	switch {
	case l.Lang != "":
		return s + "@" + l.Lang
	case l.Datatype != "":
		return s + "^^" + l.Datatype.String()
	}
	return s
}

func (Literal) isTerm() {}

// Triple is a single subject-predicate-object statement.
type Triple struct {
	Subject   Resource
	Predicate IRI
	Object    Term
}

// String returns the triple as one N-Triples statement without a newline.
func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String() + " ."
}

// Validate returns an error if any position of the triple is missing.
func (t Triple) Validate() error {
	if t.Subject == nil {
		return Errorf(EINVALID, "triple subject required")
	}
	if t.Predicate == "" {
		return Errorf(EINVALID, "triple predicate required")
	}
	if t.Object == nil {
		return Errorf(EINVALID, "triple object required")
	}
	return nil
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}

var iriEscaper = strings.NewReplacer(
	">", `\u003E`,
	"<", `\u003C`,
	" ", `\u0020`,
	`"`, `\u0022`,
)

func escapeIRI(s string) string {
	return iriEscaper.Replace(s)
}

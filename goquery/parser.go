// Package goquery implements triplify.DocumentParser and triplify.Node on
// top of goquery and golang.org/x/net/html.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/triplify"
	"golang.org/x/net/html/charset"
)

// Ensure Parser implements triplify.DocumentParser at compile time.
var _ triplify.DocumentParser = (*Parser)(nil)

// Parser builds goquery documents from HTML and XHTML content.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes content to UTF-8 and parses it. The charset comes from the
// contentType parameter, a byte order mark or a <meta> declaration, in that
// order, falling back to windows-1252 as browsers do.
func (p *Parser) Parse(content []byte, contentType string) (triplify.Node, error) {
	r, err := charset.NewReader(bytes.NewReader(content), contentType)
	if err != nil {
		return nil, triplify.Errorf(triplify.EPARSE, "failed to decode content: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, triplify.Errorf(triplify.EPARSE, "failed to parse HTML: %v", err)
	}
	return &Node{sel: doc.Selection}, nil
}

// Ensure Node implements triplify.Node at compile time.
var _ triplify.Node = (*Node)(nil)

// Node wraps a single-element goquery selection.
type Node struct {
	sel *goquery.Selection
}

// Find returns matching descendants in document order. goquery compiles an
// invalid selector to a matcher that matches nothing.
func (n *Node) Find(selector string) []triplify.Node {
	found := n.sel.Find(selector)
	nodes := make([]triplify.Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &Node{sel: s})
	})
	return nodes
}

func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

func (n *Node) Text() string {
	return strings.TrimSpace(n.sel.Text())
}

func (n *Node) HasClass(name string) bool {
	return n.sel.HasClass(name)
}

func (n *Node) Name() string {
	return strings.ToLower(goquery.NodeName(n.sel))
}

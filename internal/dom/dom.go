// Package dom provides a deterministic in-memory document model for the
// autofill engine. It wraps an x/net/html node tree with goquery CSS
// selection and adds the mutable state a live page would carry: input
// values, checked flags, dispatched events and highlight markers. The
// engine operates on this model directly; live-browser runs mirror writes
// through a chromedp-backed field writer.
package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a parsed page with mutable per-node state.
type Document struct {
	gq    *goquery.Document
	url   string
	state map[*html.Node]*nodeState
}

// nodeState holds the mutable runtime state of a single node.
type nodeState struct {
	value      string
	valueSet   bool
	checked    bool
	checkedSet bool
	events     []string
	highlight  string
	uploaded   string
}

// ParseError represents a failure to parse page HTML.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("dom parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("dom parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Parse builds a Document from raw HTML.
func Parse(htmlContent string) (*Document, error) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &ParseError{Message: "failed to parse HTML", Cause: err}
	}
	return &Document{
		gq:    gq,
		state: make(map[*html.Node]*nodeState),
	}, nil
}

// SetURL records the page URL the document was loaded from.
func (d *Document) SetURL(url string) { d.url = url }

// URL returns the page URL, if known.
func (d *Document) URL() string { return d.url }

// Find returns all elements matching the CSS selector, in document order.
func (d *Document) Find(selector string) []*Element {
	sel := d.gq.Find(selector)
	elements := make([]*Element, 0, len(sel.Nodes))
	for _, node := range sel.Nodes {
		elements = append(elements, d.element(node))
	}
	return elements
}

// First returns the first element matching the selector, or nil.
func (d *Document) First(selector string) *Element {
	sel := d.gq.Find(selector).First()
	if len(sel.Nodes) == 0 {
		return nil
	}
	return d.element(sel.Nodes[0])
}

// Root returns the document's root element.
func (d *Document) Root() *Element {
	sel := d.gq.Find("html").First()
	if len(sel.Nodes) == 0 {
		return nil
	}
	return d.element(sel.Nodes[0])
}

// Has reports whether any element matches the selector.
func (d *Document) Has(selector string) bool {
	return len(d.gq.Find(selector).Nodes) > 0
}

func (d *Document) element(node *html.Node) *Element {
	return &Element{doc: d, node: node}
}

func (d *Document) nodeState(node *html.Node) *nodeState {
	st, ok := d.state[node]
	if !ok {
		st = &nodeState{}
		d.state[node] = st
	}
	return st
}

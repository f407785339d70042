package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Element is a handle on a single node in the document. The reference is
// weak: the engine reads and writes state through it but never creates or
// destroys nodes.
type Element struct {
	doc  *Document
	node *html.Node
}

// Option is one choice of a select element or radio group.
type Option struct {
	Value string
	Text  string
}

// Node exposes the underlying html node for callers that need identity
// comparison.
func (e *Element) Node() *html.Node { return e.node }

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// Tag returns the lowercase tag name.
func (e *Element) Tag() string {
	return strings.ToLower(e.node.Data)
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(name string) string {
	for _, attr := range e.node.Attr {
		if strings.EqualFold(attr.Key, name) {
			return attr.Val
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present, regardless of
// value.
func (e *Element) HasAttr(name string) bool {
	for _, attr := range e.node.Attr {
		if strings.EqualFold(attr.Key, name) {
			return true
		}
	}
	return false
}

// ID returns the element's id attribute.
func (e *Element) ID() string { return e.Attr("id") }

// Name returns the element's name attribute.
func (e *Element) Name() string { return e.Attr("name") }

// InputType returns the lowercase declared input type. Inputs without a
// type attribute default to "text" per the HTML spec.
func (e *Element) InputType() string {
	t := strings.ToLower(strings.TrimSpace(e.Attr("type")))
	if t == "" && e.Tag() == "input" {
		return "text"
	}
	return t
}

// Is reports whether the element matches the CSS selector.
func (e *Element) Is(selector string) bool {
	return e.sel().Is(selector)
}

// Find returns descendant elements matching the selector, in document
// order.
func (e *Element) Find(selector string) []*Element {
	sel := e.sel().Find(selector)
	elements := make([]*Element, 0, len(sel.Nodes))
	for _, node := range sel.Nodes {
		elements = append(elements, e.doc.element(node))
	}
	return elements
}

// Parent returns the parent element, or nil at the tree root.
func (e *Element) Parent() *Element {
	for p := e.node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return e.doc.element(p)
		}
	}
	return nil
}

// Closest walks ancestors (including the element itself) and returns the
// first one matching the selector, or nil.
func (e *Element) Closest(selector string) *Element {
	for cur := e; cur != nil; cur = cur.Parent() {
		if cur.Is(selector) {
			return cur
		}
	}
	return nil
}

// Text returns the full subtree text content.
func (e *Element) Text() string {
	return e.sel().Text()
}

// OwnText returns only the element's direct text nodes, so nested input
// values never leak into resolved labels.
func (e *Element) OwnText() string {
	var sb strings.Builder
	for child := e.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			sb.WriteString(child.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}

// TextExcluding returns the subtree text with the given descendant's
// subtree omitted.
func (e *Element) TextExcluding(skip *Element) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if skip != nil && n == skip.node {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(e.node)
	return strings.TrimSpace(sb.String())
}

// PrevSiblingText returns the text of the nearest preceding sibling that
// carries any, whether a bare text node or an element.
func (e *Element) PrevSiblingText() string {
	for sib := e.node.PrevSibling; sib != nil; sib = sib.PrevSibling {
		switch sib.Type {
		case html.TextNode:
			if text := strings.TrimSpace(sib.Data); text != "" {
				return text
			}
		case html.ElementNode:
			if text := strings.TrimSpace(e.doc.element(sib).Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// ParentStrayText returns the parent's direct text nodes, the last-resort
// label source for inputs wrapped in bare divs.
func (e *Element) ParentStrayText() string {
	parent := e.Parent()
	if parent == nil {
		return ""
	}
	return parent.OwnText()
}

// Value returns the element's current value: runtime state when written,
// otherwise the markup's initial value.
func (e *Element) Value() string {
	if st, ok := e.doc.state[e.node]; ok && st.valueSet {
		return st.value
	}
	switch e.Tag() {
	case "textarea":
		return e.Text()
	case "select":
		options := e.SelectOptions()
		for _, opt := range e.Find("option") {
			if opt.HasAttr("selected") {
				return opt.OptionValue()
			}
		}
		if len(options) > 0 {
			return options[0].Value
		}
		return ""
	default:
		return e.Attr("value")
	}
}

// SetValue writes the element's runtime value. It does not dispatch any
// events; that is the field writer's responsibility.
func (e *Element) SetValue(value string) {
	st := e.doc.nodeState(e.node)
	st.value = value
	st.valueSet = true
}

// Checked returns the element's current checked state.
func (e *Element) Checked() bool {
	if st, ok := e.doc.state[e.node]; ok && st.checkedSet {
		return st.checked
	}
	return e.HasAttr("checked")
}

// SetChecked writes the element's runtime checked state.
func (e *Element) SetChecked(checked bool) {
	st := e.doc.nodeState(e.node)
	st.checked = checked
	st.checkedSet = true
}

// Dispatch records a synthetic event on the element.
func (e *Element) Dispatch(event string) {
	st := e.doc.nodeState(e.node)
	st.events = append(st.events, event)
}

// Events returns the events dispatched on the element so far, in order.
func (e *Element) Events() []string {
	if st, ok := e.doc.state[e.node]; ok {
		return st.events
	}
	return nil
}

// SetHighlight records a visual highlight marker (success/warning/error).
func (e *Element) SetHighlight(state string) {
	e.doc.nodeState(e.node).highlight = state
}

// Highlight returns the current highlight marker, if any.
func (e *Element) Highlight() string {
	if st, ok := e.doc.state[e.node]; ok {
		return st.highlight
	}
	return ""
}

// SetUploadedFile records a file attached to a file input.
func (e *Element) SetUploadedFile(name string) {
	e.doc.nodeState(e.node).uploaded = name
}

// UploadedFile returns the name of the attached file, if any.
func (e *Element) UploadedFile() string {
	if st, ok := e.doc.state[e.node]; ok {
		return st.uploaded
	}
	return ""
}

// OptionValue returns an option element's submit value: the value
// attribute when present, otherwise its text.
func (e *Element) OptionValue() string {
	if e.HasAttr("value") {
		return e.Attr("value")
	}
	return strings.TrimSpace(e.Text())
}

// SelectOptions returns the options of a select element.
func (e *Element) SelectOptions() []Option {
	opts := e.Find("option")
	options := make([]Option, 0, len(opts))
	for _, opt := range opts {
		options = append(options, Option{
			Value: opt.OptionValue(),
			Text:  strings.TrimSpace(opt.Text()),
		})
	}
	return options
}

// Selector builds a stable CSS selector for addressing this element in a
// live browser: id when present, then tag+name, then a positional path.
func (e *Element) Selector() string {
	if id := e.ID(); id != "" {
		return "#" + id
	}
	if name := e.Name(); name != "" {
		return fmt.Sprintf(`%s[name=%q]`, e.Tag(), name)
	}
	var parts []string
	for cur := e.node; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		if cur.Data == "html" {
			break
		}
		index := 1
		for sib := cur.PrevSibling; sib != nil; sib = sib.PrevSibling {
			if sib.Type == html.ElementNode && sib.Data == cur.Data {
				index++
			}
		}
		parts = append([]string{fmt.Sprintf("%s:nth-of-type(%d)", cur.Data, index)}, parts...)
	}
	return strings.Join(parts, " > ")
}

func (e *Element) sel() *goquery.Selection {
	return e.doc.gq.FindNodes(e.node)
}

package dom

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrNilNode is returned when an operation receives a nil node.
	ErrNilNode = errors.New("dom: node is nil")
	// ErrAttached is returned when appending a node that already has a parent.
	ErrAttached = errors.New("dom: node already attached to a parent")
)

// Attr builds an attribute pair for Element.
func Attr(key, value string) html.Attribute {
	return html.Attribute{Key: key, Val: value}
}

// Element constructs an element node with the given attributes and children.
// Nil children are skipped.
func Element(tag string, attrs []html.Attribute, children ...*html.Node) *html.Node {
	tag = strings.ToLower(strings.TrimSpace(tag))
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if len(attrs) > 0 {
		node.Attr = append([]html.Attribute(nil), attrs...)
	}
	for _, child := range children {
		if child == nil {
			continue
		}
		node.AppendChild(child)
	}
	return node
}

// Text constructs a text node. Rendering escapes the content.
func Text(value string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: value}
}

// Fragment wraps children in a document node so a template can hold more than
// one top-level element. FirstElement returns the first real element inside.
func Fragment(children ...*html.Node) *html.Node {
	frag := &html.Node{Type: html.DocumentNode}
	for _, child := range children {
		if child == nil {
			continue
		}
		frag.AppendChild(child)
	}
	return frag
}

// Clone deep-copies a node and its descendants. The copy is detached.
func Clone(node *html.Node) *html.Node {
	if node == nil {
		return nil
	}
	out := &html.Node{
		Type:      node.Type,
		DataAtom:  node.DataAtom,
		Data:      node.Data,
		Namespace: node.Namespace,
	}
	if len(node.Attr) > 0 {
		out.Attr = append([]html.Attribute(nil), node.Attr...)
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		out.AppendChild(Clone(child))
	}
	return out
}

// Append attaches child as the last child of parent. Unlike
// html.Node.AppendChild it reports misuse instead of panicking.
func Append(parent, child *html.Node) error {
	if parent == nil || child == nil {
		return ErrNilNode
	}
	if child.Parent != nil || child.PrevSibling != nil || child.NextSibling != nil {
		return ErrAttached
	}
	parent.AppendChild(child)
	return nil
}

// Prepend attaches child as the first child of parent.
func Prepend(parent, child *html.Node) error {
	if parent == nil || child == nil {
		return ErrNilNode
	}
	if child.Parent != nil || child.PrevSibling != nil || child.NextSibling != nil {
		return ErrAttached
	}
	parent.InsertBefore(child, parent.FirstChild)
	return nil
}

// Detach removes node from its parent when it has one.
func Detach(node *html.Node) {
	if node == nil || node.Parent == nil {
		return
	}
	node.Parent.RemoveChild(node)
}

// FirstElement returns the first element child of node.
func FirstElement(node *html.Node) *html.Node {
	if node == nil {
		return nil
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			return child
		}
	}
	return nil
}

// ByID walks the subtree rooted at node (inclusive) and returns the first
// element whose id matches.
func ByID(node *html.Node, id string) *html.Node {
	if id == "" {
		return nil
	}
	return find(node, func(n *html.Node) bool {
		return n.Type == html.ElementNode && GetAttr(n, "id") == id
	})
}

// ByTag returns the first element with the given tag name in document order.
func ByTag(node *html.Node, tag string) *html.Node {
	tag = strings.ToLower(tag)
	return find(node, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	})
}

// AllByTag returns every element with the given tag name in document order.
func AllByTag(node *html.Node, tag string) []*html.Node {
	tag = strings.ToLower(tag)
	var out []*html.Node
	walk(node, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		return false
	})
	return out
}

func find(node *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(node, func(n *html.Node) bool {
		if match(n) {
			found = n
			return true
		}
		return false
	})
	return found
}

// walk visits nodes depth-first; visit returns true to stop.
func walk(node *html.Node, visit func(*html.Node) bool) bool {
	if node == nil {
		return false
	}
	if visit(node) {
		return true
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if walk(child, visit) {
			return true
		}
	}
	return false
}

// GetAttr returns the attribute value or "" when missing.
func GetAttr(node *html.Node, key string) string {
	if node == nil {
		return ""
	}
	for _, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// HasAttr reports whether the attribute is present.
func HasAttr(node *html.Node, key string) bool {
	if node == nil {
		return false
	}
	for _, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return true
		}
	}
	return false
}

// SetAttr creates or replaces an attribute.
func SetAttr(node *html.Node, key, value string) {
	if node == nil {
		return
	}
	for i, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			node.Attr[i].Val = value
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr deletes an attribute when present.
func RemoveAttr(node *html.Node, key string) {
	if node == nil {
		return
	}
	out := node.Attr[:0]
	for _, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			continue
		}
		out = append(out, attr)
	}
	node.Attr = out
}

// SetText replaces all children with a single text node.
func SetText(node *html.Node, value string) {
	if node == nil {
		return
	}
	for node.FirstChild != nil {
		node.RemoveChild(node.FirstChild)
	}
	if value != "" {
		node.AppendChild(Text(value))
	}
}

// TextContent concatenates the text of all descendants.
func TextContent(node *html.Node) string {
	var b strings.Builder
	walk(node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return false
	})
	return b.String()
}

// Value reads a form control's current value. Textareas keep it as text
// content; other controls use the value attribute.
func Value(node *html.Node) string {
	if node == nil {
		return ""
	}
	if node.Data == "textarea" {
		return TextContent(node)
	}
	return GetAttr(node, "value")
}

// SetValue writes a form control's value using the same rules as Value.
func SetValue(node *html.Node, value string) {
	if node == nil {
		return
	}
	if node.Data == "textarea" {
		SetText(node, value)
		return
	}
	SetAttr(node, "value", value)
}

// Render writes node as HTML. Document and fragment nodes render their
// children only.
func Render(w io.Writer, node *html.Node) error {
	if node == nil {
		return ErrNilNode
	}
	if node.Type == html.DocumentNode {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if err := html.Render(w, child); err != nil {
				return err
			}
		}
		return nil
	}
	return html.Render(w, node)
}

// RenderString is Render into a string.
func RenderString(node *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Package dom is a small in-memory HTML DOM built on golang.org/x/net/html.
//
// It provides the host environment the binder needs: element trees with
// mutable attributes, inert template content, deep import, attribute queries
// and synchronous event dispatch with listener objects.
package dom

import "strings"

// NodeType discriminates the kinds of node in a tree.
type NodeType uint8

const (
	DocumentNode NodeType = iota
	FragmentNode
	ElementNode
	TextNode
	CommentNode
	DoctypeNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "Document"
	case FragmentNode:
		return "Fragment"
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case DoctypeNode:
		return "Doctype"
	default:
		return "Unknown"
	}
}

// Attribute is a single element attribute.
type Attribute struct {
	Namespace string
	Key       string
	Val       string
}

// Node is a node in a DOM tree. Elements, text, comments, fragments and
// documents all share this type; Type tells them apart.
type Node struct {
	Type      NodeType
	Tag       string // element name, lower-case for HTML elements
	Namespace string // "" for HTML, "svg" or "math" for foreign content
	Data      string // text, comment or doctype content

	attrs []Attribute

	parent      *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	content   *Node // inert content of a <template>
	listeners []registration
}

// NewElement creates a detached element.
func NewElement(tag string, attrs ...Attribute) *Node {
	n := &Node{Type: ElementNode, Tag: strings.ToLower(tag)}
	n.attrs = append(n.attrs, attrs...)
	if n.Tag == "template" {
		n.content = NewFragment()
	}
	return n
}

// NewText creates a detached text node.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// NewFragment creates an empty document fragment.
func NewFragment() *Node {
	return &Node{Type: FragmentNode}
}

// IsElement reports whether n is an element.
func (n *Node) IsElement() bool {
	return n != nil && n.Type == ElementNode
}

// Parent returns the parent node, or nil for a detached or root node.
func (n *Node) Parent() *Node { return n.parent }

// FirstChild returns the first child node.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the last child node.
func (n *Node) LastChild() *Node { return n.lastChild }

// NextSibling returns the next sibling node.
func (n *Node) NextSibling() *Node { return n.nextSibling }

// PrevSibling returns the previous sibling node.
func (n *Node) PrevSibling() *Node { return n.prevSibling }

// ChildNodes returns a snapshot of all child nodes.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		out = append(out, c)
	}
	return out
}

// Children returns a snapshot of the element children.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.Type == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Content returns the inert content fragment of a <template> element, or nil
// for any other node.
func (n *Node) Content() *Node {
	return n.content
}

// AppendChild adds c as the last child of n, detaching it from its current
// parent first. Appending a fragment moves the fragment's children instead,
// leaving the fragment empty.
func (n *Node) AppendChild(c *Node) {
	if c.Type == FragmentNode {
		for _, fc := range c.ChildNodes() {
			n.AppendChild(fc)
		}
		return
	}
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = n
	c.prevSibling = n.lastChild
	if n.lastChild != nil {
		n.lastChild.nextSibling = c
	} else {
		n.firstChild = c
	}
	n.lastChild = c
}

// RemoveChild detaches c from n. It reports false if c is not a child of n.
func (n *Node) RemoveChild(c *Node) bool {
	if c == nil || c.parent != n {
		return false
	}
	if c.prevSibling != nil {
		c.prevSibling.nextSibling = c.nextSibling
	} else {
		n.firstChild = c.nextSibling
	}
	if c.nextSibling != nil {
		c.nextSibling.prevSibling = c.prevSibling
	} else {
		n.lastChild = c.prevSibling
	}
	c.parent, c.prevSibling, c.nextSibling = nil, nil, nil
	return true
}

// attrKey normalises an attribute name the way HTML getAttribute does:
// names on HTML elements are matched case-insensitively.
func (n *Node) attrKey(key string) string {
	if n.Namespace == "" {
		return strings.ToLower(key)
	}
	return key
}

func (n *Node) attrIndex(key string) int {
	key = n.attrKey(key)
	for i, a := range n.attrs {
		if a.Namespace == "" && a.Key == key {
			return i
		}
	}
	return -1
}

// GetAttribute returns the value of the named attribute and whether it is
// present.
func (n *Node) GetAttribute(key string) (string, bool) {
	if i := n.attrIndex(key); i >= 0 {
		return n.attrs[i].Val, true
	}
	return "", false
}

// Attr returns the value of the named attribute, or "" if absent.
func (n *Node) Attr(key string) string {
	v, _ := n.GetAttribute(key)
	return v
}

// HasAttribute reports whether the named attribute is present.
func (n *Node) HasAttribute(key string) bool {
	return n.attrIndex(key) >= 0
}

// SetAttribute sets the named attribute, adding it if absent.
func (n *Node) SetAttribute(key, val string) {
	if i := n.attrIndex(key); i >= 0 {
		n.attrs[i].Val = val
		return
	}
	n.attrs = append(n.attrs, Attribute{Key: n.attrKey(key), Val: val})
}

// RemoveAttribute removes the named attribute. It reports whether the
// attribute was present.
func (n *Node) RemoveAttribute(key string) bool {
	i := n.attrIndex(key)
	if i < 0 {
		return false
	}
	n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
	return true
}

// Attributes returns a copy of the element's attributes in source order.
func (n *Node) Attributes() []Attribute {
	out := make([]Attribute, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// ID returns the element's id attribute.
func (n *Node) ID() string {
	return n.Attr("id")
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the children of the visited node. Template content is not
// visited, matching how selector queries treat inert content.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		c.Walk(fn)
	}
}

// QueryAttr returns every element in the subtree rooted at n, n included,
// that carries the named attribute. The result is a snapshot in document
// order, so callers may mutate attributes while iterating it.
func (n *Node) QueryAttr(key string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Type == ElementNode && c.HasAttribute(key) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Find returns the first node in the subtree rooted at n, n included, for
// which match returns true.
func (n *Node) Find(match func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if match(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// Clone copies n. With deep set, the copy includes all descendants.
// Template content is always copied. Event listeners are never copied.
func (n *Node) Clone(deep bool) *Node {
	c := &Node{
		Type:      n.Type,
		Tag:       n.Tag,
		Namespace: n.Namespace,
		Data:      n.Data,
	}
	if len(n.attrs) > 0 {
		c.attrs = make([]Attribute, len(n.attrs))
		copy(c.attrs, n.attrs)
	}
	if n.content != nil {
		c.content = n.content.Clone(true)
	}
	if deep {
		for ch := n.firstChild; ch != nil; ch = ch.nextSibling {
			c.AppendChild(ch.Clone(true))
		}
	}
	return c
}

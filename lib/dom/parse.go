package dom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses markup as the content of a <template> element and
// returns a fresh fragment holding the resulting nodes. The template context
// lets table parts and other context-sensitive content parse as written.
func ParseFragment(r io.Reader) (*Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "template",
		DataAtom: atom.Template,
	}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, err
	}

	frag := NewFragment()
	for _, h := range nodes {
		if c := fromHTML(h); c != nil {
			frag.AppendChild(c)
		}
	}
	return frag, nil
}

// ParseFragmentString is ParseFragment over a string.
func ParseFragmentString(markup string) (*Node, error) {
	return ParseFragment(strings.NewReader(markup))
}

// fromHTML converts an x/net/html tree into a dom tree. The children of a
// <template> element become its inert content.
func fromHTML(h *html.Node) *Node {
	n := &Node{}
	switch h.Type {
	case html.DocumentNode:
		n.Type = DocumentNode
	case html.ElementNode:
		n.Type = ElementNode
		n.Tag = h.Data
		n.Namespace = h.Namespace
		if len(h.Attr) > 0 {
			n.attrs = make([]Attribute, len(h.Attr))
			for i, a := range h.Attr {
				n.attrs[i] = Attribute{Namespace: a.Namespace, Key: a.Key, Val: a.Val}
			}
		}
	case html.TextNode:
		n.Type = TextNode
		n.Data = h.Data
	case html.CommentNode:
		n.Type = CommentNode
		n.Data = h.Data
	case html.DoctypeNode:
		n.Type = DoctypeNode
		n.Data = h.Data
	default:
		return nil
	}

	parent := n
	if n.Type == ElementNode && n.Namespace == "" && n.Tag == "template" {
		n.content = NewFragment()
		parent = n.content
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if child := fromHTML(c); child != nil {
			parent.AppendChild(child)
		}
	}
	return n
}

// toHTML converts a dom tree back into an x/net/html tree for rendering.
// Documents and fragments both become html.DocumentNode, which renders as
// the concatenation of its children.
func toHTML(n *Node) *html.Node {
	h := &html.Node{}
	switch n.Type {
	case DocumentNode, FragmentNode:
		h.Type = html.DocumentNode
	case ElementNode:
		h.Type = html.ElementNode
		h.Data = n.Tag
		h.Namespace = n.Namespace
		if n.Namespace == "" {
			h.DataAtom = atom.Lookup([]byte(n.Tag))
		}
		for _, a := range n.attrs {
			h.Attr = append(h.Attr, html.Attribute{Namespace: a.Namespace, Key: a.Key, Val: a.Val})
		}
	case TextNode:
		h.Type = html.TextNode
		h.Data = n.Data
	case CommentNode:
		h.Type = html.CommentNode
		h.Data = n.Data
	case DoctypeNode:
		h.Type = html.DoctypeNode
		h.Data = n.Data
	}

	children := n
	if n.content != nil {
		children = n.content
	}
	for c := children.firstChild; c != nil; c = c.nextSibling {
		h.AppendChild(toHTML(c))
	}
	return h
}

// OuterHTML renders n and its subtree. Documents and fragments render as
// their children.
func (n *Node) OuterHTML() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, toHTML(n)); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML renders the children of n (the content, for a template).
func (n *Node) InnerHTML() string {
	children := n
	if n.content != nil {
		children = n.content
	}
	var buf bytes.Buffer
	for c := children.firstChild; c != nil; c = c.nextSibling {
		if err := html.Render(&buf, toHTML(c)); err != nil {
			return ""
		}
	}
	return buf.String()
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Type == TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

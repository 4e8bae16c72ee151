package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML document.
type Document struct {
	root *Node
}

// Parse parses a complete HTML document.
func Parse(r io.Reader) (*Document, error) {
	h, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: fromHTML(h)}, nil
}

// ParseString is Parse over a string.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Root returns the document node.
func (d *Document) Root() *Node {
	return d.root
}

// Body returns the <body> element, or nil if the document has none.
func (d *Document) Body() *Node {
	return d.root.Find(func(n *Node) bool {
		return n.Type == ElementNode && n.Namespace == "" && n.Tag == "body"
	})
}

// GetElementByID returns the first element in document order whose id
// attribute equals id, or nil. Template content is not searched.
func (d *Document) GetElementByID(id string) *Node {
	return d.root.Find(func(n *Node) bool {
		if n.Type != ElementNode {
			return false
		}
		v, ok := n.GetAttribute("id")
		return ok && v == id
	})
}

// ImportNode returns a copy of n suitable for insertion into this document.
// The original is left untouched.
func (d *Document) ImportNode(n *Node, deep bool) *Node {
	return n.Clone(deep)
}

// String renders the whole document.
func (d *Document) String() string {
	return d.root.OuterHTML()
}

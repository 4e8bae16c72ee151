package domref

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/domref/lib/dom"
)

// IDPrefix marks a source string as an element id rather than markup.
const IDPrefix = "#"

// Source produces the root node a binding runs over.
//
// Sources come in two acquisition strategies. Copying sources (Markup,
// Component, and ID on a live element) hand the binder a fresh tree it owns.
// In-place sources (Element, and ID on a <template>) hand it an existing
// tree, which the binding mutates.
type Source interface {
	materialize(doc *dom.Document, cfg *Config) (*dom.Node, error)
	strategy() string
}

// Parse picks a source for s: a string starting with IDPrefix looks up the
// element with that id, anything else is parsed as markup.
//
//	domref.Parse("#todo-item")          // ID("todo-item")
//	domref.Parse(`<li ref="item"></li>`) // Markup(...)
func Parse(s string) Source {
	if id, ok := strings.CutPrefix(s, IDPrefix); ok {
		return ID(id)
	}
	return Markup(s)
}

// Markup parses s into a fresh fragment.
func Markup(s string) Source {
	return markupSource(s)
}

type markupSource string

func (s markupSource) materialize(_ *dom.Document, cfg *Config) (*dom.Node, error) {
	markup := string(s)
	if cfg.Sanitizer != nil {
		markup = cfg.Sanitizer.Sanitize(markup)
	}
	return dom.ParseFragmentString(markup)
}

func (markupSource) strategy() string { return "markup" }

// ID resolves the element with the given id in the binder's document.
//
// A <template> element contributes its inert content directly, without a
// copy, so binding it twice finds the attributes already consumed. Any
// other element is deep-imported and the original is left untouched.
// Resolution fails with ErrNotFound when no element has the id or the
// binder has no document.
func ID(id string) Source {
	return idSource(id)
}

type idSource string

func (s idSource) materialize(doc *dom.Document, _ *Config) (*dom.Node, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: #%s (binder has no document)", ErrNotFound, string(s))
	}
	n := doc.GetElementByID(string(s))
	if n == nil {
		return nil, fmt.Errorf("%w: #%s", ErrNotFound, string(s))
	}
	if content := n.Content(); content != nil {
		return content, nil
	}
	return doc.ImportNode(n, true), nil
}

func (idSource) strategy() string { return "id" }

// Element binds an existing node in place. The node itself is included in
// the scan, and its attributes are consumed.
func Element(n *dom.Node) Source {
	return elementSource{node: n}
}

type elementSource struct {
	node *dom.Node
}

func (s elementSource) materialize(*dom.Document, *Config) (*dom.Node, error) {
	if s.node == nil {
		return nil, fmt.Errorf("%w: nil element", ErrNotFound)
	}
	return s.node, nil
}

func (elementSource) strategy() string { return "element" }

// Component renders c and parses the output as markup.
func Component(ctx context.Context, c templ.Component) Source {
	return componentSource{ctx: ctx, component: c}
}

type componentSource struct {
	ctx       context.Context
	component templ.Component
}

func (s componentSource) materialize(doc *dom.Document, cfg *Config) (*dom.Node, error) {
	if s.component == nil {
		return nil, fmt.Errorf("%w: nil component", ErrNotFound)
	}
	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	var buf bytes.Buffer
	if err := s.component.Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("domref: render component: %w", err)
	}
	return markupSource(buf.String()).materialize(doc, cfg)
}

func (componentSource) strategy() string { return "component" }

package domref

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pthm/domref/lib/dom"
)

// Manifest describes the references and event bindings declared in a tree.
//
// Scan builds it without mutating the tree or registering listeners, so
// build tooling can inspect templates ahead of time and tests can check a
// handler against its markup eagerly. Binding itself never validates.
type Manifest struct {
	RefAttr   string      `msgpack:"ra" yaml:"ref_attribute"`
	EventAttr string      `msgpack:"ea" yaml:"event_attribute"`
	Refs      []RefDecl   `msgpack:"r" yaml:"refs"`
	Events    []EventDecl `msgpack:"e" yaml:"events"`
}

// RefDecl is one reference name.
type RefDecl struct {
	Name  string `msgpack:"n" yaml:"name"`
	Array bool   `msgpack:"a,omitempty" yaml:"array,omitempty"`
	Count int    `msgpack:"c" yaml:"count"`
	Tag   string `msgpack:"t" yaml:"tag"`
}

// EventDecl is one event binding token. Bare marks a token without ':',
// which binds the handler itself.
type EventDecl struct {
	Tag    string `msgpack:"t" yaml:"tag"`
	Type   string `msgpack:"y" yaml:"type"`
	Method string `msgpack:"m,omitempty" yaml:"method,omitempty"`
	Bare   bool   `msgpack:"b,omitempty" yaml:"bare,omitempty"`
}

// Scan reads the declarations under root, root included, using the
// attribute names from opts. It follows the same parsing and mode rules as
// Bind: Count is the number of elements the name ends up holding, and Tag
// is the tag of the first element seen.
func Scan(root *dom.Node, opts ...Option) Manifest {
	cfg := resolve(DefaultConfig(), opts)
	m := Manifest{RefAttr: cfg.RefAttr, EventAttr: cfg.EventAttr}

	for _, el := range root.QueryAttr(cfg.EventAttr) {
		for _, token := range strings.Fields(el.Attr(cfg.EventAttr)) {
			typ, method, bound := parseBinding(token)
			m.Events = append(m.Events, EventDecl{Tag: el.Tag, Type: typ, Method: method, Bare: !bound})
		}
	}

	refs := NewRefs()
	tags := make(map[string]string)
	for _, el := range root.QueryAttr(cfg.RefAttr) {
		name, array := parseRef(el.Attr(cfg.RefAttr))
		refs.put(name, array, el)
		if _, ok := tags[name]; !ok {
			tags[name] = el.Tag
		}
	}
	refs.Range(func(name string, nodes []*dom.Node) bool {
		m.Refs = append(m.Refs, RefDecl{
			Name:  name,
			Array: refs.IsArray(name),
			Count: len(nodes),
			Tag:   tags[name],
		})
		return true
	})
	return m
}

// Methods returns the distinct method names bound in m, sorted.
func (m Manifest) Methods() []string {
	seen := make(map[string]bool)
	var out []string
	for _, ev := range m.Events {
		if ev.Method == "" || seen[ev.Method] {
			continue
		}
		seen[ev.Method] = true
		out = append(out, ev.Method)
	}
	sort.Strings(out)
	return out
}

// Verify checks eagerly that handler can serve every binding in m: each
// bound method must resolve, and a bare binding requires a dom.Listener.
// The returned error joins one ErrMethodNotFound per missing method and at
// most one ErrNotListener.
func (m Manifest) Verify(handler any) error {
	var errs []error
	checked := make(map[string]bool)
	needListener := false
	for _, ev := range m.Events {
		if ev.Bare {
			needListener = true
			continue
		}
		if checked[ev.Method] {
			continue
		}
		checked[ev.Method] = true
		if _, ok := lookupMethod(handler, ev.Method); !ok {
			errs = append(errs, fmt.Errorf("%w: %T has no event method %q", ErrMethodNotFound, handler, ev.Method))
		}
	}
	if needListener {
		if _, ok := handler.(dom.Listener); !ok {
			errs = append(errs, fmt.Errorf("%w: %T has no HandleEvent method", ErrNotListener, handler))
		}
	}
	return errors.Join(errs...)
}

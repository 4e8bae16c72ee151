package domref

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pthm/domref/lib/dom"
)

// Registry holds named templates for repeated instantiation.
//
// Each template is materialized once, at registration. Instantiate binds a
// fresh deep copy every time, so unlike binding a <template> by ID, the
// stored markup never loses its attributes:
//
//	reg := domref.NewRegistry(doc)
//	reg.MustRegister("row", domref.Markup(`<tr ref="row"><td ref="cells[]"></td></tr>`))
//
//	for _, item := range items {
//	    root, _ := reg.Clone("row")
//	    refs, _ := reg.Bind(domref.Element(root), item)
//	    table.AppendChild(root)
//	}
//
// Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	binder    *Binder
	templates map[string]*dom.Node
}

// NewRegistry creates a registry. doc resolves ID sources and may be nil;
// opts become the defaults for every instantiation.
func NewRegistry(doc *dom.Document, opts ...Option) *Registry {
	return &Registry{
		binder:    New(doc, opts...),
		templates: make(map[string]*dom.Node),
	}
}

// Register materializes src and stores a private copy under name. It fails
// with ErrDuplicate if name is already registered.
func (reg *Registry) Register(name string, src Source) error {
	cfg := reg.binder.cfg
	root, err := src.materialize(reg.binder.doc, &cfg)
	if err != nil {
		return fmt.Errorf("domref: template %q: %w", name, err)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, exists := reg.templates[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	reg.templates[name] = root.Clone(true)
	return nil
}

// MustRegister is Register that panics on error, including a duplicate
// name.
func (reg *Registry) MustRegister(name string, src Source) {
	if err := reg.Register(name, src); err != nil {
		panic(err)
	}
}

// Has reports whether name is registered.
func (reg *Registry) Has(name string) bool {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	_, ok := reg.templates[name]
	return ok
}

// Names returns the registered names, sorted.
func (reg *Registry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	names := make([]string, 0, len(reg.templates))
	for name := range reg.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a fresh deep copy of the named template's root.
func (reg *Registry) Clone(name string) (*dom.Node, error) {
	reg.mu.RLock()
	tmpl, ok := reg.templates[name]
	reg.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: template %q", ErrNotFound, name)
	}
	return tmpl.Clone(true), nil
}

// Instantiate binds a fresh copy of the named template to handler.
// Use Clone followed by Bind when the caller also needs the root.
func (reg *Registry) Instantiate(name string, handler any, opts ...Option) (*Refs, error) {
	root, err := reg.Clone(name)
	if err != nil {
		return nil, err
	}
	return reg.binder.Bind(Element(root), handler, opts...)
}

// Bind binds src with the registry's configuration.
func (reg *Registry) Bind(src Source, handler any, opts ...Option) (*Refs, error) {
	return reg.binder.Bind(src, handler, opts...)
}

package domref

import (
	"log/slog"

	"github.com/pthm/domref/lib/dom"
)

// Binder binds sources against an optional document.
//
// The document is only needed to resolve ID sources. A Binder holds no
// state between calls beyond its configuration; every Bind works on its
// own root and its own mapping.
type Binder struct {
	doc *dom.Document
	cfg Config
}

// New creates a binder over doc, which may be nil. The options become the
// binder's defaults; per-call options passed to Bind are applied on top.
func New(doc *dom.Document, opts ...Option) *Binder {
	return &Binder{
		doc: doc,
		cfg: resolve(DefaultConfig(), opts),
	}
}

// Document returns the binder's document, or nil.
func (b *Binder) Document() *dom.Document {
	return b.doc
}

// Config returns the binder's default configuration.
func (b *Binder) Config() Config {
	return b.cfg
}

// Bind materializes src, wires its event bindings to handler and returns
// its references.
//
// Processing follows a fixed order:
//  1. Every element carrying the event attribute gets one listener per
//     whitespace-separated token. "type:method" registers the handler's
//     method; a bare "type" registers the handler itself.
//  2. Every element carrying the reference attribute is stored under its
//     name; a trailing "[]" collects elements into a sequence.
//  3. The mapping is returned. Depending on the Assign policy it is a fresh
//     mapping, the handler's own mapping, or a keyed sub-mapping of it.
//
// Attributes are stripped after they are read unless KeepRefAttr or
// KeepEventAttr is set. Stripping makes binding non-idempotent: binding the
// same root again finds nothing.
//
// handler may be nil when the markup has no event bindings and no Assign
// policy is set. Method names are not checked at registration; a missing
// method surfaces as ErrMethodNotFound when the event is dispatched.
func (b *Binder) Bind(src Source, handler any, opts ...Option) (*Refs, error) {
	cfg := resolve(b.cfg, opts)

	dest, err := destination(handler, cfg.Assign)
	if err != nil {
		return nil, err
	}

	root, err := src.materialize(b.doc, &cfg)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug("domref: materialized source",
		slog.String("strategy", src.strategy()),
		slog.String("assign", cfg.Assign.String()))

	return extract(root, handler, dest, &cfg), nil
}

// Bind binds src with a binder that has no document. ID sources therefore
// fail with ErrNotFound; use New with a document to resolve them.
func Bind(src Source, handler any, opts ...Option) (*Refs, error) {
	return New(nil).Bind(src, handler, opts...)
}

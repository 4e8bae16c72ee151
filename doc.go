// Package domref extracts named element references from HTML fragments and
// wires declarative event bindings to handler methods.
//
// Component code that instantiates the same markup many times usually
// repeats two chores: looking up the elements it needs and attaching event
// listeners to them. domref moves both into the markup:
//
//	<form ref="form" on="submit:save">
//	    <input ref="title" on="input:validate focus:highlight">
//	    <li ref="items[]">one</li>
//	    <li ref="items[]">two</li>
//	</form>
//
// Binding the fragment returns the references and registers the listeners:
//
//	refs, err := domref.Bind(domref.Markup(markup), editor)
//	refs.Get("title")        // *dom.Node for the input
//	refs.All("items")        // both <li> elements, in document order
//
// # Sources
//
// A Source decides which tree a binding runs over:
//   - Markup: raw markup parsed into a fresh fragment
//   - ID: an element of the binder's document; a <template> contributes
//     its inert content, any other element is deep-imported
//   - Element: an existing node, bound in place
//   - Component: a templ.Component rendered to markup
//
// Parse picks between ID and Markup with the "#id" convention.
//
// # Event bindings
//
// The event attribute holds whitespace-separated tokens. "type:method"
// registers the handler's method for the event type; a bare "type"
// registers the handler itself, which must then implement dom.Listener.
// Methods are resolved when the event fires, never at registration, so a
// missing method surfaces as ErrMethodNotFound from DispatchEvent.
//
// Method names resolve through MethodTable when the handler implements it
// (see `domref generate`), otherwise through reflection over exported
// methods. Supported shapes are func(), func() error, func(*dom.Event) and
// func(*dom.Event) error.
//
// # References
//
// The reference attribute names the element. A trailing "[]" collects all
// elements with that name into a sequence. The first occurrence of a name
// fixes its mode: later elements append to a sequence or replace a single
// element regardless of their own suffix.
//
// # Assignment
//
// By default every binding returns a fresh *Refs. AssignSelf stores the
// references in the handler's own mapping (embed Refs to get one), and
// AssignTo(key) stores them in a keyed sub-mapping, created if absent.
//
// # Attribute cleanup
//
// Both attributes are stripped after they are read, unless KeepRefAttr or
// KeepEventAttr is set. Binding the same tree twice therefore finds nothing
// the second time. Registry keeps pristine copies for repeated
// instantiation.
//
// # Tooling
//
// Scan produces a Manifest of the declarations in a tree without touching
// it; Manifest.Verify checks a handler against it eagerly. The domref
// command generates MethodTable implementations and inspects templates.
package domref

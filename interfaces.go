package domref

import "github.com/pthm/domref/lib/dom"

// Target is implemented by handlers that receive references directly under
// AssignSelf. Embedding Refs satisfies it:
//
//	type Dialog struct {
//	    domref.Refs
//	}
//
// After binding with AssignSelf, the returned *Refs is the handler's own
// mapping, so d.Get("title") reads the extracted element.
type Target interface {
	Mapping() *Refs
}

// KeyedTarget is implemented by handlers that hold named sub-mappings,
// used with AssignTo(key). RefsFor must return the mapping for key,
// creating it if absent.
//
// Handlers that do not implement KeyedTarget can still be used with
// AssignTo: a map[string]*Refs receives a new entry, and a pointer to a
// struct receives the exported field of type *Refs (or Refs) whose ref tag
// or name matches key.
//
//	type Form struct {
//	    Fields *domref.Refs `ref:"fields"`
//	}
type KeyedTarget interface {
	RefsFor(key string) *Refs
}

// MethodTable is implemented by handlers to resolve event binding method
// names without reflection.
//
// User handlers should not implement this directly - `domref generate`
// produces the implementation for types marked with a //domref:handler
// comment, including unexported methods such as handleClick that
// reflection cannot reach.
//
//	//domref:handler
//	type Counter struct{ n int }
//
//	func (c *Counter) increment(ev *dom.Event) { c.n++ }
type MethodTable interface {
	EventMethod(name string) (func(*dom.Event) error, bool)
}

// Methods is a ready-made MethodTable for handlers assembled from plain
// functions:
//
//	h := domref.Methods{
//	    "save": func(ev *dom.Event) error { return store.Save() },
//	}
//
// Maps are not comparable, so bindings to a Methods handler cannot be
// removed through RemoveEventListener.
type Methods map[string]func(*dom.Event) error

// EventMethod implements MethodTable.
func (m Methods) EventMethod(name string) (func(*dom.Event) error, bool) {
	fn, ok := m[name]
	return fn, ok && fn != nil
}

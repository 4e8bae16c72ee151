package domref

import (
	"fmt"
	"reflect"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/pthm/domref/lib/dom"
)

// MethodListener is the listener registered for a "type:method" binding.
//
// The method is resolved each time the event fires, never at registration,
// so a handler missing the method fails only when the event is dispatched.
// MethodListener values are comparable when the handler is, which makes
// bindings removable:
//
//	el.RemoveEventListener("click", domref.Method(h, "handleClick"))
type MethodListener struct {
	Handler any
	Name    string
}

// Method returns the listener identity used for a "type:name" binding on
// handler.
func Method(handler any, name string) dom.Listener {
	return MethodListener{Handler: handler, Name: name}
}

// HandleEvent resolves the method and calls it with handler as receiver.
func (m MethodListener) HandleEvent(ev *dom.Event) error {
	fn, ok := lookupMethod(m.Handler, m.Name)
	if !ok {
		return fmt.Errorf("%w: %T has no event method %q", ErrMethodNotFound, m.Handler, m.Name)
	}
	return fn(ev)
}

// bareListener is registered for a bare "type" binding when the handler is
// not itself a dom.Listener.
type bareListener struct {
	handler any
}

func (b bareListener) HandleEvent(*dom.Event) error {
	return fmt.Errorf("%w: %T has no HandleEvent method", ErrNotListener, b.handler)
}

// handlerListener returns the listener for a bare binding: the handler
// itself when it can handle events.
func handlerListener(handler any) dom.Listener {
	if l, ok := handler.(dom.Listener); ok {
		return l
	}
	return bareListener{handler: handler}
}

// lookupMethod resolves name on handler. Generated MethodTables win;
// otherwise exported methods with a supported shape are found through
// reflection, trying name as written and then with its first letter
// upper-cased so "handleClick" reaches HandleClick.
func lookupMethod(handler any, name string) (func(*dom.Event) error, bool) {
	if handler == nil {
		return nil, false
	}
	if mt, ok := handler.(MethodTable); ok {
		if fn, ok := mt.EventMethod(name); ok {
			return fn, true
		}
	}

	v := reflect.ValueOf(handler)
	table := methodsOf(v.Type())
	idx, ok := table[name]
	if !ok {
		idx, ok = table[exportedName(name)]
	}
	if !ok {
		return nil, false
	}
	return eventFunc(v.Method(idx).Interface())
}

// methodTables caches, per handler type, the index of every method with a
// supported event shape.
var methodTables sync.Map // map[reflect.Type]map[string]int

var (
	eventPtrType = reflect.TypeOf((*dom.Event)(nil))
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
)

func methodsOf(t reflect.Type) map[string]int {
	if cached, ok := methodTables.Load(t); ok {
		return cached.(map[string]int)
	}
	table := make(map[string]int)
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if supportedShape(m.Type) {
			table[m.Name] = i
		}
	}
	actual, _ := methodTables.LoadOrStore(t, table)
	return actual.(map[string]int)
}

// supportedShape reports whether a method type (receiver first) is one of
// func(), func() error, func(*dom.Event) or func(*dom.Event) error.
func supportedShape(ft reflect.Type) bool {
	if ft.IsVariadic() {
		return false
	}
	switch ft.NumIn() {
	case 1:
	case 2:
		if ft.In(1) != eventPtrType {
			return false
		}
	default:
		return false
	}
	switch ft.NumOut() {
	case 0:
		return true
	case 1:
		return ft.Out(0) == errorType
	default:
		return false
	}
}

// eventFunc adapts a bound method value of a supported shape.
func eventFunc(fn any) (func(*dom.Event) error, bool) {
	switch f := fn.(type) {
	case func(*dom.Event) error:
		return f, true
	case func(*dom.Event):
		return func(ev *dom.Event) error { f(ev); return nil }, true
	case func() error:
		return func(*dom.Event) error { return f() }, true
	case func():
		return func(*dom.Event) error { f(); return nil }, true
	}
	return nil, false
}

func exportedName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

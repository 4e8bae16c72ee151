package dom

import (
	"errors"
	"reflect"
)

// Event is dispatched to listeners registered on a node.
//
// Events are created by the caller and passed to DispatchEvent. With
// Bubbles set, the event travels from the target up through its ancestors
// after the target's own listeners have run.
type Event struct {
	Type    string
	Bubbles bool
	Detail  any

	target        *Node
	currentTarget *Node
	stopped       bool
	stopNow       bool
	canceled      bool
}

// NewEvent creates a non-bubbling event of the given type.
func NewEvent(typ string) *Event {
	return &Event{Type: typ}
}

// Target returns the node the event was dispatched to.
func (e *Event) Target() *Node { return e.target }

// CurrentTarget returns the node whose listeners are currently running.
func (e *Event) CurrentTarget() *Node { return e.currentTarget }

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// StopImmediatePropagation also skips the remaining listeners on the
// current node.
func (e *Event) StopImmediatePropagation() {
	e.stopped = true
	e.stopNow = true
}

// PreventDefault marks the event as canceled.
func (e *Event) PreventDefault() { e.canceled = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.canceled }

// Listener receives dispatched events. An object implementing Listener is
// itself a valid listener, in addition to plain functions wrapped in
// ListenerFunc.
type Listener interface {
	HandleEvent(ev *Event) error
}

// ListenerFunc adapts a function to Listener.
//
// Function values are not comparable, so a ListenerFunc cannot be removed
// with RemoveEventListener; register a pointer-typed Listener when removal
// is needed.
type ListenerFunc func(ev *Event) error

// HandleEvent calls f(ev).
func (f ListenerFunc) HandleEvent(ev *Event) error {
	return f(ev)
}

type registration struct {
	typ      string
	listener Listener
}

// AddEventListener registers l for events of type typ. Registering the same
// listener identity twice for the same type has no effect.
func (n *Node) AddEventListener(typ string, l Listener) {
	if l == nil {
		return
	}
	for _, r := range n.listeners {
		if r.typ == typ && sameListener(r.listener, l) {
			return
		}
	}
	n.listeners = append(n.listeners, registration{typ: typ, listener: l})
}

// RemoveEventListener removes the registration of l for typ. It reports
// whether a registration was removed.
func (n *Node) RemoveEventListener(typ string, l Listener) bool {
	for i, r := range n.listeners {
		if r.typ == typ && sameListener(r.listener, l) {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Listeners returns a snapshot of the listeners registered for typ, in
// registration order.
func (n *Node) Listeners(typ string) []Listener {
	var out []Listener
	for _, r := range n.listeners {
		if r.typ == typ {
			out = append(out, r.listener)
		}
	}
	return out
}

// DispatchEvent delivers ev to the listeners of n and, for bubbling events,
// to the listeners of each ancestor. Listeners run synchronously in
// registration order. Every listener error is collected; the returned error
// joins them, or is nil when all listeners succeeded.
func (n *Node) DispatchEvent(ev *Event) error {
	ev.target = n
	ev.stopped, ev.stopNow = false, false

	var errs []error
	for cur := n; cur != nil; cur = cur.parent {
		ev.currentTarget = cur
		for _, l := range cur.Listeners(ev.Type) {
			if err := l.HandleEvent(ev); err != nil {
				errs = append(errs, err)
			}
			if ev.stopNow {
				break
			}
		}
		if ev.stopped || !ev.Bubbles {
			break
		}
	}
	ev.currentTarget = nil
	return errors.Join(errs...)
}

// sameListener compares listener identities. Listeners whose dynamic type
// is not comparable never match.
func sameListener(a, b Listener) (same bool) {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	// A comparable struct can still hold an incomparable value in an
	// interface field; == panics in that case.
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

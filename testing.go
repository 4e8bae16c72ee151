package domref

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/a-h/templ"

	"github.com/pthm/domref/lib/dom"
)

// Call is one recorded handler invocation.
type Call struct {
	Method string    // bound method name, "" for a bare binding
	Type   string    // event type
	Target *dom.Node // element the event was dispatched to
}

// Recorder is a handler that records every invocation.
//
// It resolves any method name, so it can stand in for a real handler when
// testing markup, and it is a dom.Listener, so bare bindings record too:
//
//	rec := domref.NewRecorder()
//	refs, _ := domref.Bind(domref.Markup(`<button ref="ok" on="click:save"></button>`), rec)
//	domref.Fire(refs.Get("ok"), "click")
//	if rec.Count("save") != 1 { ... }
//
// Use Fail to make a method return an error.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
	fail  map[string]error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{fail: make(map[string]error)}
}

// Fail makes the named method return err after recording the call. Use ""
// for bare bindings.
func (r *Recorder) Fail(method string, err error) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[method] = err
	return r
}

// EventMethod implements MethodTable for every name.
func (r *Recorder) EventMethod(name string) (func(*dom.Event) error, bool) {
	return func(ev *dom.Event) error {
		return r.record(name, ev)
	}, true
}

// HandleEvent implements dom.Listener for bare bindings.
func (r *Recorder) HandleEvent(ev *dom.Event) error {
	return r.record("", ev)
}

func (r *Recorder) record(method string, ev *dom.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Method: method, Type: ev.Type, Target: ev.Target()})
	return r.fail[method]
}

// Calls returns a snapshot of the recorded calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Count returns how many times method was invoked.
func (r *Recorder) Count(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Called reports whether method was invoked at least once.
func (r *Recorder) Called(method string) bool {
	return r.Count(method) > 0
}

// Reset clears the recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// Fire dispatches a non-bubbling event of type typ to n.
func Fire(n *dom.Node, typ string) error {
	if n == nil {
		return fmt.Errorf("%w: cannot fire %q on nil node", ErrNotFound, typ)
	}
	return n.DispatchEvent(dom.NewEvent(typ))
}

// MustBind is Bind that panics on error. Intended for tests and examples.
func MustBind(src Source, handler any, opts ...Option) *Refs {
	refs, err := Bind(src, handler, opts...)
	if err != nil {
		panic(err)
	}
	return refs
}

// TestResult holds the outcome of a test binding.
//
// Provides convenience methods for asserting on the rendered markup after
// attributes were stripped, and on the extracted references.
type TestResult struct {
	Root *dom.Node
	Refs *Refs
	HTML string
}

// TestBind parses markup, binds it to handler and returns the root along
// with its rendered HTML after binding.
//
//	result, err := domref.TestBind(`<p ref="msg" on="click:dismiss">Hi</p>`, rec)
//	if result.HTMLContains(`ref=`) {
//	    t.Fatal("ref attribute should be stripped")
//	}
func TestBind(markup string, handler any, opts ...Option) (*TestResult, error) {
	root, err := dom.ParseFragmentString(markup)
	if err != nil {
		return nil, err
	}
	refs, err := Bind(Element(root), handler, opts...)
	if err != nil {
		return nil, err
	}
	return &TestResult{
		Root: root,
		Refs: refs,
		HTML: root.OuterHTML(),
	}, nil
}

// TestBindComponent renders c and binds the output like TestBind.
func TestBindComponent(ctx context.Context, c templ.Component, handler any, opts ...Option) (*TestResult, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return nil, err
	}
	return TestBind(sb.String(), handler, opts...)
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HasRef checks if a reference name was extracted.
func (r *TestResult) HasRef(name string) bool {
	return r.Refs.Has(name)
}

// Fire dispatches a non-bubbling event to the element stored under the
// single-element name ref.
func (r *TestResult) Fire(ref, typ string) error {
	return Fire(r.Refs.Get(ref), typ)
}

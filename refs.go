package domref

import "github.com/pthm/domref/lib/dom"

// ArrayMarker is the suffix that turns a reference name into a sequence.
const ArrayMarker = "[]"

// Refs maps reference names to elements.
//
// Each name holds either a single element or an ordered sequence of
// elements. The first occurrence of a name fixes its mode: once a name is a
// sequence, later elements append to it; once it is a single element, later
// elements replace it. Names keep the order in which they were first seen.
//
// The zero value is ready to use, which lets handlers embed Refs directly
// and receive references with AssignSelf:
//
//	type TodoList struct {
//	    domref.Refs
//	}
//
//	refs, err := domref.Bind(domref.Markup(markup), list, domref.AssignSelf)
//	// refs == list.Mapping(), list.Get("input") works
type Refs struct {
	names []string
	slots map[string]*slot
}

type slot struct {
	array bool
	nodes []*dom.Node
}

// NewRefs creates an empty mapping.
func NewRefs() *Refs {
	return &Refs{}
}

// Mapping returns r. It lets any type embedding Refs satisfy Target.
func (r *Refs) Mapping() *Refs {
	return r
}

// put stores n under name following the first-occurrence mode rule.
func (r *Refs) put(name string, array bool, n *dom.Node) {
	if r.slots == nil {
		r.slots = make(map[string]*slot)
	}
	s, ok := r.slots[name]
	if !ok {
		s = &slot{array: array}
		r.slots[name] = s
		r.names = append(r.names, name)
	}
	if s.array {
		s.nodes = append(s.nodes, n)
		return
	}
	s.nodes = []*dom.Node{n}
}

// Get returns the element stored under a single-element name. It returns
// nil if the name is absent or holds a sequence; use All for sequences.
func (r *Refs) Get(name string) *dom.Node {
	if r == nil {
		return nil
	}
	s, ok := r.slots[name]
	if !ok || s.array {
		return nil
	}
	return s.nodes[0]
}

// All returns the elements stored under name in document order. A
// single-element name yields a one-element slice.
func (r *Refs) All(name string) []*dom.Node {
	if r == nil {
		return nil
	}
	s, ok := r.slots[name]
	if !ok {
		return nil
	}
	out := make([]*dom.Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Has reports whether name is present.
func (r *Refs) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.slots[name]
	return ok
}

// IsArray reports whether name holds a sequence.
func (r *Refs) IsArray(name string) bool {
	if r == nil {
		return false
	}
	s, ok := r.slots[name]
	return ok && s.array
}

// Names returns the names in first-seen order.
func (r *Refs) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of names.
func (r *Refs) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Range calls fn for each name in first-seen order until fn returns false.
func (r *Refs) Range(fn func(name string, nodes []*dom.Node) bool) {
	if r == nil {
		return
	}
	for _, name := range r.names {
		if !fn(name, r.All(name)) {
			return
		}
	}
}

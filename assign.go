package domref

import (
	"fmt"
	"reflect"
	"strings"
)

var (
	refsType    = reflect.TypeOf(Refs{})
	refsPtrType = reflect.TypeOf((*Refs)(nil))
)

// destination resolves the mapping that receives references under policy a.
// It runs before the root is touched, so an unassignable handler fails the
// binding without consuming any attribute.
func destination(handler any, a Assign) (*Refs, error) {
	switch a.mode {
	case assignSelf:
		if t, ok := handler.(Target); ok {
			if r := t.Mapping(); r != nil {
				return r, nil
			}
		}
		return nil, fmt.Errorf("%w: %T does not implement Target", ErrUnassignable, handler)
	case assignKey:
		return keyedDestination(handler, a.key)
	default:
		return NewRefs(), nil
	}
}

func keyedDestination(handler any, key string) (*Refs, error) {
	if kt, ok := handler.(KeyedTarget); ok {
		if r := kt.RefsFor(key); r != nil {
			return r, nil
		}
		return nil, fmt.Errorf("%w: %T returned no mapping for %q", ErrUnassignable, handler, key)
	}

	if m, ok := handler.(map[string]*Refs); ok && m != nil {
		r := m[key]
		if r == nil {
			r = NewRefs()
			m[key] = r
		}
		return r, nil
	}

	v := reflect.ValueOf(handler)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T cannot hold %q", ErrUnassignable, handler, key)
	}
	s := v.Elem()
	t := s.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || !fieldMatches(f, key) {
			continue
		}
		fv := s.Field(i)
		switch f.Type {
		case refsPtrType:
			if fv.IsNil() {
				fv.Set(reflect.ValueOf(NewRefs()))
			}
			return fv.Interface().(*Refs), nil
		case refsType:
			return fv.Addr().Interface().(*Refs), nil
		}
	}
	return nil, fmt.Errorf("%w: %T has no Refs field for %q", ErrUnassignable, handler, key)
}

// fieldMatches matches a struct field against key by its ref tag, or by
// name ignoring case when untagged.
func fieldMatches(f reflect.StructField, key string) bool {
	if tag, ok := f.Tag.Lookup("ref"); ok {
		return tag == key
	}
	return strings.EqualFold(f.Name, key)
}

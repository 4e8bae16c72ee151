package domref

import (
	"errors"
	"testing"
)

type dialog struct {
	Refs
}

type form struct {
	Fields  *Refs `ref:"fields"`
	Buttons Refs
	hidden  *Refs
}

type keyed struct {
	parts map[string]*Refs
}

func (k *keyed) RefsFor(key string) *Refs {
	if k.parts == nil {
		k.parts = make(map[string]*Refs)
	}
	if k.parts[key] == nil {
		k.parts[key] = NewRefs()
	}
	return k.parts[key]
}

func TestBind_AssignSelf(t *testing.T) {
	d := &dialog{}
	refs, err := Bind(Markup(`<h1 ref="title"></h1>`), d, AssignSelf)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if refs != d.Mapping() {
		t.Error("returned mapping is not the handler's own")
	}
	if d.Get("title") == nil {
		t.Error("handler mapping missing title")
	}
}

func TestBind_AssignSelfAccumulates(t *testing.T) {
	d := &dialog{}
	MustBind(Markup(`<h1 ref="title"></h1>`), d, AssignSelf)
	MustBind(Markup(`<p ref="body"></p>`), d, AssignSelf)
	if !d.Has("title") || !d.Has("body") {
		t.Errorf("Names() = %v, want title and body", d.Names())
	}
}

func TestBind_AssignTo(t *testing.T) {
	t.Run("struct field by tag", func(t *testing.T) {
		f := &form{}
		refs, err := Bind(Markup(`<input ref="name">`), f, AssignTo("fields"))
		if err != nil {
			t.Fatalf("Bind() error = %v", err)
		}
		if f.Fields == nil || refs != f.Fields {
			t.Fatal("Fields was not created and returned")
		}
		if f.Fields.Get("name") == nil {
			t.Error("Fields missing name")
		}
	})

	t.Run("struct field by name", func(t *testing.T) {
		f := &form{}
		refs, err := Bind(Markup(`<button ref="ok"></button>`), f, AssignTo("buttons"))
		if err != nil {
			t.Fatalf("Bind() error = %v", err)
		}
		if refs != &f.Buttons || f.Buttons.Get("ok") == nil {
			t.Error("Buttons did not receive ok")
		}
	})

	t.Run("existing sub-mapping is reused", func(t *testing.T) {
		existing := NewRefs()
		f := &form{Fields: existing}
		MustBind(Markup(`<input ref="a">`), f, AssignTo("fields"))
		MustBind(Markup(`<input ref="b">`), f, AssignTo("fields"))
		if f.Fields != existing || existing.Len() != 2 {
			t.Errorf("Fields = %v, want existing mapping with 2 names", f.Fields.Names())
		}
	})

	t.Run("map handler", func(t *testing.T) {
		m := map[string]*Refs{}
		refs, err := Bind(Markup(`<i ref="x"></i>`), m, AssignTo("icons"))
		if err != nil {
			t.Fatalf("Bind() error = %v", err)
		}
		if m["icons"] != refs || refs.Get("x") == nil {
			t.Error("map entry not created")
		}
	})

	t.Run("keyed target", func(t *testing.T) {
		k := &keyed{}
		refs, err := Bind(Markup(`<i ref="x"></i>`), k, AssignTo("icons"))
		if err != nil {
			t.Fatalf("Bind() error = %v", err)
		}
		if k.parts["icons"] != refs {
			t.Error("RefsFor mapping not used")
		}
	})
}

func TestBind_DefaultAssignLeavesHandlerUntouched(t *testing.T) {
	d := &dialog{}
	refs, err := Bind(Markup(`<h1 ref="title"></h1>`), d)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if refs == d.Mapping() {
		t.Error("default assignment returned the handler's mapping")
	}
	if d.Len() != 0 {
		t.Errorf("handler mapping has %d names, want 0", d.Len())
	}
}

func TestBind_Unassignable(t *testing.T) {
	tests := []struct {
		name    string
		handler any
		assign  Assign
	}{
		{"self without Target", &form{}, AssignSelf},
		{"self nil handler", nil, AssignSelf},
		{"key on non-struct", 42, AssignTo("x")},
		{"key without field", &form{}, AssignTo("missing")},
		{"key on unexported field", &form{}, AssignTo("hidden")},
		{"key on struct value", form{}, AssignTo("fields")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Markup(`<p ref="x" on="click:go"></p>`).materialize(nil, &Config{})
			if err != nil {
				t.Fatal(err)
			}
			_, err = Bind(Element(root), tt.handler, tt.assign)
			if !errors.Is(err, ErrUnassignable) {
				t.Fatalf("Bind() error = %v, want ErrUnassignable", err)
			}
			p := root.FirstChild()
			if !p.HasAttribute("ref") || !p.HasAttribute("on") {
				t.Error("failed binding consumed attributes")
			}
			if len(p.Listeners("click")) != 0 {
				t.Error("failed binding registered listeners")
			}
		})
	}
}

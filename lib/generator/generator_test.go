package generator

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const counterSource = `package counter

import (
	"errors"

	ev "github.com/pthm/domref/lib/dom"
)

//domref:handler
type Counter struct{ n int }

func (c *Counter) increment(*ev.Event)        { c.n++ }
func (c *Counter) reset() error               { c.n = 0; return nil }
func (c Counter) Log()                        {}
func (c *Counter) validate(e *ev.Event) error { return errors.New(e.Type) }
func (c *Counter) helper(n int)               {}
func (c *Counter) value() int                 { return c.n }

// Plain is not annotated.
type Plain struct{}

func (Plain) Click() {}
`

func parseFiles(t *testing.T, sources map[string]string) map[string]*ast.File {
	t.Helper()
	fset := token.NewFileSet()
	files := make(map[string]*ast.File)
	for name, src := range sources {
		file, err := parser.ParseFile(fset, name, src, parser.ParseComments)
		if err != nil {
			t.Fatalf("Failed to parse %s: %v", name, err)
		}
		files[name] = file
	}
	return files
}

func TestFindHandlers(t *testing.T) {
	g := New(Options{})
	handlers, err := g.FindHandlers(parseFiles(t, map[string]string{"counter.go": counterSource}))
	if err != nil {
		t.Fatalf("FindHandlers() error = %v", err)
	}

	if len(handlers) != 1 {
		t.Fatalf("len(handlers) = %d, want 1", len(handlers))
	}
	h := handlers[0]
	if h.TypeName != "Counter" || !h.Pointer || h.SourceFile != "counter.go" {
		t.Errorf("handler = %+v", h)
	}

	want := []MethodInfo{
		{"Log", ShapePlain},
		{"increment", ShapeEvent},
		{"reset", ShapeError},
		{"validate", ShapeEventError},
	}
	if len(h.Methods) != len(want) {
		t.Fatalf("Methods = %+v, want %+v", h.Methods, want)
	}
	for i := range want {
		if h.Methods[i] != want[i] {
			t.Errorf("Methods[%d] = %+v, want %+v", i, h.Methods[i], want[i])
		}
	}
}

func TestFindHandlers_MethodsAcrossFiles(t *testing.T) {
	g := New(Options{})
	handlers, err := g.FindHandlers(parseFiles(t, map[string]string{
		"a.go": "package p\n\n//domref:handler\ntype A struct{}\n",
		"b.go": "package p\n\nimport \"github.com/pthm/domref/lib/dom\"\n\nfunc (A) Save(*dom.Event) {}\n",
	}))
	if err != nil {
		t.Fatalf("FindHandlers() error = %v", err)
	}
	if len(handlers) != 1 || len(handlers[0].Methods) != 1 {
		t.Fatalf("handlers = %+v, want A with Save", handlers)
	}
	if handlers[0].Pointer {
		t.Error("value receivers only, Pointer should be false")
	}
	if handlers[0].Methods[0].Shape != ShapeEvent {
		t.Errorf("Shape = %v, want %v", handlers[0].Methods[0].Shape, ShapeEvent)
	}
}

func TestFindHandlers_WithoutDomImport(t *testing.T) {
	g := New(Options{})
	handlers, err := g.FindHandlers(parseFiles(t, map[string]string{
		"a.go": "package p\n\ntype Event struct{}\n\n//domref:handler\ntype A struct{}\n\nfunc (A) On(*Event) {}\nfunc (A) Go() {}\n",
	}))
	if err != nil {
		t.Fatalf("FindHandlers() error = %v", err)
	}
	if got := handlers[0].Methods; len(got) != 1 || got[0].Name != "Go" {
		t.Errorf("Methods = %+v, want only Go", got)
	}
}

func TestFindHandlers_ExistingEventMethod(t *testing.T) {
	g := New(Options{})
	_, err := g.FindHandlers(parseFiles(t, map[string]string{
		"a.go": "package p\n\n//domref:handler\ntype A struct{}\n\nfunc (A) EventMethod(string) {}\n",
	}))
	if err == nil {
		t.Error("FindHandlers() should reject a hand-written EventMethod")
	}
}

func TestRender(t *testing.T) {
	code, err := Render("counter", []*HandlerInfo{{
		TypeName: "Counter",
		Pointer:  true,
		Methods: []MethodInfo{
			{"increment", ShapeEvent},
			{"reset", ShapeError},
			{"validate", ShapeEventError},
			{"Log", ShapePlain},
		},
	}})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := string(code)
	for _, want := range []string{
		"// Code generated by domref generate. DO NOT EDIT.",
		`import "github.com/pthm/domref/lib/dom"`,
		"func (h *Counter) EventMethod(name string) (func(*dom.Event) error, bool) {",
		`case "increment":`,
		"return func(ev *dom.Event) error { h.increment(ev); return nil }, true",
		"return func(*dom.Event) error { return h.reset() }, true",
		"return h.validate, true",
		"return func(*dom.Event) error { h.Log(); return nil }, true",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateAndClean(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "counter.go"), []byte(counterSource), 0644); err != nil {
		t.Fatal(err)
	}
	generated := filepath.Join(dir, "counter_ref.go")

	var log bytes.Buffer
	if err := New(Options{DryRun: true, Out: &log}).Generate(dir); err != nil {
		t.Fatalf("dry-run Generate() error = %v", err)
	}
	if _, err := os.Stat(generated); !os.IsNotExist(err) {
		t.Error("dry run wrote a file")
	}
	if !strings.Contains(log.String(), "generating "+generated) {
		t.Errorf("log = %q", log.String())
	}

	g := New(Options{Out: &log})
	if err := g.Generate(dir + "/..."); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	code, err := os.ReadFile(generated)
	if err != nil {
		t.Fatalf("generated file missing: %v", err)
	}
	if !strings.Contains(string(code), "package counter") {
		t.Errorf("generated file has wrong package:\n%s", code)
	}

	// Regenerating ignores the generated file itself.
	if err := g.Generate(dir); err != nil {
		t.Fatalf("second Generate() error = %v", err)
	}

	if err := g.Clean(dir); err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if _, err := os.Stat(generated); !os.IsNotExist(err) {
		t.Error("Clean() left the generated file")
	}
}

func TestShapeString(t *testing.T) {
	if got := ShapeEventError.String(); got != "func(*dom.Event) error" {
		t.Errorf("String() = %q", got)
	}
	if got := Shape(9).String(); got != "Shape(9)" {
		t.Errorf("String() = %q", got)
	}
}

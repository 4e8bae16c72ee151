package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// generateFile writes the *_ref.go file for the handlers of one source file.
func (g *Generator) generateFile(pkgPath, pkgName string, out outputFile) error {
	baseName := strings.TrimSuffix(filepath.Base(out.SourceFile), ".go")
	outputFile := filepath.Join(pkgPath, baseName+generatedSuffix)

	fmt.Fprintf(g.opts.Out, "generating %s\n", outputFile)

	if g.opts.DryRun {
		return nil
	}

	code, err := Render(pkgName, out.Handlers)
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, code, 0644)
}

// Render produces the formatted source of a generated file.
func Render(pkgName string, handlers []*HandlerInfo) ([]byte, error) {
	tmpl, err := template.New("ref").Funcs(template.FuncMap{
		"adapter": adapterCode,
	}).Parse(refTemplate)
	if err != nil {
		return nil, err
	}

	data := struct {
		Package   string
		DomImport string
		Handlers  []*HandlerInfo
	}{
		Package:   pkgName,
		DomImport: DomImportPath,
		Handlers:  handlers,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format source: %w\n%s", err, buf.Bytes())
	}
	return formatted, nil
}

// adapterCode returns the expression that turns method m on receiver h
// into a func(*dom.Event) error.
func adapterCode(m MethodInfo) string {
	switch m.Shape {
	case ShapeEventError:
		return "h." + m.Name
	case ShapeEvent:
		return fmt.Sprintf("func(ev *dom.Event) error { h.%s(ev); return nil }", m.Name)
	case ShapeError:
		return fmt.Sprintf("func(*dom.Event) error { return h.%s() }", m.Name)
	default:
		return fmt.Sprintf("func(*dom.Event) error { h.%s(); return nil }", m.Name)
	}
}

const refTemplate = `// Code generated by domref generate. DO NOT EDIT.

package {{.Package}}

import "{{.DomImport}}"
{{range .Handlers}}
// EventMethod implements domref.MethodTable for {{.TypeName}}.
func (h {{if .Pointer}}*{{end}}{{.TypeName}}) EventMethod(name string) (func(*dom.Event) error, bool) {
	switch name {
{{- range .Methods}}
	case {{printf "%q" .Name}}:
		return {{adapter .}}, true
{{- end}}
	}
	return nil, false
}
{{end}}`

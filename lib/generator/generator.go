package generator

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Directive marks a type whose event methods get a generated MethodTable.
const Directive = "//domref:handler"

// DomImportPath is the import path of the DOM package event methods take.
const DomImportPath = "github.com/pthm/domref/lib/dom"

// generatedSuffix names the files written next to annotated types.
const generatedSuffix = "_ref.go"

// Options configures the generator.
type Options struct {
	DryRun bool

	// Out receives progress lines. Defaults to os.Stdout.
	Out io.Writer
}

// Generator generates domref method tables.
type Generator struct {
	opts Options
	fset *token.FileSet
}

// New creates a new generator.
func New(opts Options) *Generator {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Generator{
		opts: opts,
		fset: token.NewFileSet(),
	}
}

// Generate generates code for the given package patterns.
func (g *Generator) Generate(patterns ...string) error {
	packages, err := g.findPackages(patterns)
	if err != nil {
		return err
	}

	for _, pkg := range packages {
		if err := g.generatePackage(pkg); err != nil {
			return fmt.Errorf("package %s: %w", pkg, err)
		}
	}

	return nil
}

// Clean removes generated files for the given package patterns.
func (g *Generator) Clean(patterns ...string) error {
	packages, err := g.findPackages(patterns)
	if err != nil {
		return err
	}

	for _, pkg := range packages {
		if err := g.cleanPackage(pkg); err != nil {
			return fmt.Errorf("package %s: %w", pkg, err)
		}
	}

	return nil
}

// findPackages resolves package patterns to directory paths.
func (g *Generator) findPackages(patterns []string) ([]string, error) {
	var packages []string

	for _, pattern := range patterns {
		if !strings.HasSuffix(pattern, "/...") {
			packages = append(packages, pattern)
			continue
		}

		root := strings.TrimSuffix(pattern, "/...")
		if root == "" {
			root = "."
		}
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			// Skip hidden directories, vendor and testdata
			base := filepath.Base(path)
			if path != root && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || base == "vendor" || base == "testdata") {
				return filepath.SkipDir
			}

			entries, err := os.ReadDir(path)
			if err != nil {
				return nil
			}
			for _, entry := range entries {
				if !entry.IsDir() && isSourceFile(entry.Name()) {
					packages = append(packages, path)
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return packages, nil
}

// isSourceFile reports whether name is a hand-written, non-test Go file.
func isSourceFile(name string) bool {
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") &&
		!strings.HasSuffix(name, generatedSuffix)
}

// generatePackage generates code for a single package.
func (g *Generator) generatePackage(pkgPath string) error {
	pkgs, err := parser.ParseDir(g.fset, pkgPath, func(info os.FileInfo) bool {
		return isSourceFile(info.Name())
	}, parser.ParseComments)
	if err != nil {
		return err
	}

	for pkgName, pkg := range pkgs {
		handlers, err := g.FindHandlers(pkg.Files)
		if err != nil {
			return err
		}
		for _, out := range groupBySource(handlers) {
			if err := g.generateFile(pkgPath, pkgName, out); err != nil {
				return err
			}
		}
	}

	return nil
}

// cleanPackage removes generated files from a package.
func (g *Generator) cleanPackage(pkgPath string) error {
	entries, err := os.ReadDir(pkgPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), generatedSuffix) {
			continue
		}
		path := filepath.Join(pkgPath, entry.Name())
		fmt.Fprintf(g.opts.Out, "removing %s\n", path)
		if !g.opts.DryRun {
			if err := os.Remove(path); err != nil {
				return err
			}
		}
	}

	return nil
}

// Shape is the signature class of an event method.
type Shape int

const (
	ShapePlain      Shape = iota // func()
	ShapeError                   // func() error
	ShapeEvent                   // func(*dom.Event)
	ShapeEventError              // func(*dom.Event) error
)

func (s Shape) String() string {
	switch s {
	case ShapePlain:
		return "func()"
	case ShapeError:
		return "func() error"
	case ShapeEvent:
		return "func(*dom.Event)"
	case ShapeEventError:
		return "func(*dom.Event) error"
	default:
		return "Shape(" + strconv.Itoa(int(s)) + ")"
	}
}

// HandlerInfo describes an annotated handler type.
type HandlerInfo struct {
	SourceFile string
	TypeName   string
	Pointer    bool // any method has a pointer receiver
	Methods    []MethodInfo
}

// MethodInfo is one event method of a handler.
type MethodInfo struct {
	Name  string
	Shape Shape
}

// FindHandlers finds the annotated types among files, keyed by filename,
// and collects their event methods from every file. Handlers are returned
// sorted by file and type name; methods by name.
func (g *Generator) FindHandlers(files map[string]*ast.File) ([]*HandlerInfo, error) {
	byType := make(map[string]*HandlerInfo)

	for filename, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok || typeSpec.TypeParams != nil {
					continue
				}
				// A lone type declaration carries its doc on the GenDecl.
				doc := typeSpec.Doc
				if doc == nil && len(genDecl.Specs) == 1 {
					doc = genDecl.Doc
				}
				if !hasDirective(doc) {
					continue
				}
				byType[typeSpec.Name.Name] = &HandlerInfo{
					SourceFile: filename,
					TypeName:   typeSpec.Name.Name,
				}
			}
		}
	}

	if len(byType) == 0 {
		return nil, nil
	}

	for _, file := range files {
		domName := importName(file, DomImportPath)
		for _, decl := range file.Decls {
			funcDecl, ok := decl.(*ast.FuncDecl)
			if !ok || funcDecl.Recv == nil || len(funcDecl.Recv.List) != 1 {
				continue
			}
			typeName, pointer := receiverType(funcDecl.Recv.List[0].Type)
			h, ok := byType[typeName]
			if !ok {
				continue
			}
			if funcDecl.Name.Name == "EventMethod" {
				return nil, fmt.Errorf("%s already implements EventMethod", typeName)
			}
			shape, ok := detectShape(funcDecl.Type, domName)
			if !ok {
				continue
			}
			h.Pointer = h.Pointer || pointer
			h.Methods = append(h.Methods, MethodInfo{Name: funcDecl.Name.Name, Shape: shape})
		}
	}

	handlers := make([]*HandlerInfo, 0, len(byType))
	for _, h := range byType {
		sort.Slice(h.Methods, func(i, j int) bool { return h.Methods[i].Name < h.Methods[j].Name })
		handlers = append(handlers, h)
	}
	sort.Slice(handlers, func(i, j int) bool {
		if handlers[i].SourceFile != handlers[j].SourceFile {
			return handlers[i].SourceFile < handlers[j].SourceFile
		}
		return handlers[i].TypeName < handlers[j].TypeName
	})
	return handlers, nil
}

func hasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == Directive {
			return true
		}
	}
	return false
}

// importName returns the name file uses for path, or "" if it does not
// import it.
func importName(file *ast.File, path string) string {
	for _, imp := range file.Imports {
		if p, err := strconv.Unquote(imp.Path.Value); err != nil || p != path {
			continue
		}
		if imp.Name != nil {
			return imp.Name.Name
		}
		return path[strings.LastIndex(path, "/")+1:]
	}
	return ""
}

func receiverType(expr ast.Expr) (name string, pointer bool) {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr, pointer = star.X, true
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name, pointer
	}
	return "", false
}

// detectShape classifies a method signature. domName is the file's name for
// the dom package; without an import no method can take an event.
func detectShape(ft *ast.FuncType, domName string) (Shape, bool) {
	var params []ast.Expr
	for _, field := range ft.Params.List {
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			params = append(params, field.Type)
		}
	}

	var returnsError bool
	if ft.Results != nil {
		if ft.Results.NumFields() != 1 {
			return 0, false
		}
		ident, ok := ft.Results.List[0].Type.(*ast.Ident)
		if !ok || ident.Name != "error" {
			return 0, false
		}
		returnsError = true
	}

	switch {
	case len(params) == 0 && returnsError:
		return ShapeError, true
	case len(params) == 0:
		return ShapePlain, true
	case len(params) == 1 && isEventPointer(params[0], domName) && returnsError:
		return ShapeEventError, true
	case len(params) == 1 && isEventPointer(params[0], domName):
		return ShapeEvent, true
	}
	return 0, false
}

func isEventPointer(expr ast.Expr, domName string) bool {
	star, ok := expr.(*ast.StarExpr)
	if !ok || domName == "" {
		return false
	}
	sel, ok := star.X.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Event" {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == domName
}

// outputFile is the set of handlers declared in one source file.
type outputFile struct {
	SourceFile string
	Handlers   []*HandlerInfo
}

func groupBySource(handlers []*HandlerInfo) []outputFile {
	var out []outputFile
	for _, h := range handlers {
		if n := len(out); n > 0 && out[n-1].SourceFile == h.SourceFile {
			out[n-1].Handlers = append(out[n-1].Handlers, h)
			continue
		}
		out = append(out, outputFile{SourceFile: h.SourceFile, Handlers: []*HandlerInfo{h}})
	}
	return out
}

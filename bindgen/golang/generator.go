// Package golang renders binding modules as Go source calling into the
// shared library through purego.
package golang

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/imports"

	"github.com/teranos/bindgen/bindgen"
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/model"
)

// Options configures the generated package.
type Options struct {
	// Package is the generated package name (default "bindings")
	Package string
	// LoaderFunc is a function in the generated package returning the loaded
	// library handle as a uintptr (default "libHandle")
	LoaderFunc string
	// FileName is reported in formatting errors (default "bindings.go")
	FileName string
	// Exported capitalizes every declared name so the bindings can be used
	// from other packages. Symbol lookups keep the C names.
	Exported bool
}

// SymbolPackage is imported by generated modules that declare functions.
const SymbolPackage = "github.com/teranos/bindgen/bindgen/golang/symbol"

// Generator implements bindgen.Target for Go.
type Generator struct {
	opts Options
}

// NewGenerator creates a new Go generator
func NewGenerator(opts Options) *Generator {
	if opts.Package == "" {
		opts.Package = "bindings"
	}
	if opts.LoaderFunc == "" {
		opts.LoaderFunc = "libHandle"
	}
	if opts.FileName == "" {
		opts.FileName = "bindings.go"
	}
	return &Generator{opts: opts}
}

func (g *Generator) Name() string          { return "go" }
func (g *Generator) FileExtension() string { return "go" }

var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

func toGoIdent(s string) string {
	if goKeywords[s] {
		return s + "_"
	}
	return s
}

// toExportedIdent upper-cases the first letter. Names that do not start
// with a letter get an X prefix.
func toExportedIdent(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if !unicode.IsLetter(r) {
		return "X" + s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func (g *Generator) ident(s string) string {
	if g.opts.Exported {
		return toExportedIdent(s)
	}
	return toGoIdent(s)
}

// Preamble imports everything a module may need; Finalize prunes the unused
// ones.
func (g *Generator) Preamble() string {
	return fmt.Sprintf(`// Code generated by bindgen. DO NOT EDIT.

package %s

import (
	"unsafe"

	"github.com/ebitengine/purego"
	%q
)`, g.opts.Package, SymbolPackage)
}

func (g *Generator) Render(expr bindgen.TypeExpr) string {
	switch expr.Kind {
	case bindgen.ExprNamed:
		return g.ident(expr.Name)
	case bindgen.ExprUnit:
		return "struct{}"
	case bindgen.ExprOpaque:
		return "unsafe.Pointer"
	case bindgen.ExprBytes:
		return "*byte"
	case bindgen.ExprBool:
		return scalar(expr.CType, "bool")
	case bindgen.ExprInt:
		return scalar(expr.CType, "int")
	case bindgen.ExprFloat:
		return scalar(expr.CType, "float64")
	case bindgen.ExprPointer:
		return "*" + g.Render(*expr.Elem)
	case bindgen.ExprCallable:
		return "func" + g.signature(nil, expr.Params, *expr.Result)
	default:
		return "unsafe.Pointer"
	}
}

// signature renders "(T0, T1) R". Named parameters are used when names is
// non-nil. A unit result is omitted.
func (g *Generator) signature(names []string, params []bindgen.TypeExpr, result bindgen.TypeExpr) string {
	list := make([]string, len(params))
	for i, p := range params {
		if names != nil {
			list[i] = names[i] + " " + g.Render(p)
		} else {
			list[i] = g.Render(p)
		}
	}
	sig := "(" + strings.Join(list, ", ") + ")"
	if result.Kind != bindgen.ExprUnit {
		sig += " " + g.Render(result)
	}
	return sig
}

func (g *Generator) Record(name string, fields []bindgen.Field) string {
	if len(fields) == 0 {
		return fmt.Sprintf("type %s struct{}", g.ident(name))
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("type %s struct {\n", g.ident(name)))
	for _, f := range fields {
		sb.WriteString(fmt.Sprintf("\t%s %s\n", g.ident(f.Name), g.Render(f.Type)))
	}
	sb.WriteString("}")
	return sb.String()
}

func (g *Generator) OpaqueRecord(name string) string {
	return fmt.Sprintf("type %s struct{}", g.ident(name))
}

func (g *Generator) ConstantMarker(qualified string) string {
	return "// constant: " + qualified
}

// Function declares a symbol.Func holding the registered function and a
// wrapper that fetches it through the loader on every call, so a library
// loaded after the first failed call, or reloaded under a new handle, is
// picked up.
func (g *Generator) Function(name string, params []bindgen.TypeExpr, result bindgen.TypeExpr) string {
	fnType := "func" + g.signature(nil, params, result)

	names := make([]string, len(params))
	for i := range params {
		names[i] = "arg" + strconv.Itoa(i)
	}
	call := fmt.Sprintf("_%s.Get(%s, purego.RegisterLibFunc, %q)(%s)", name, g.opts.LoaderFunc, name, strings.Join(names, ", "))
	if result.Kind != bindgen.ExprUnit {
		call = "return " + call
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("var _%s symbol.Func[%s]\n\n", name, fnType))
	sb.WriteString(fmt.Sprintf("func %s%s {\n", g.ident(name), g.signature(names, params, result)))
	sb.WriteString("\t" + call + "\n")
	sb.WriteString("}")
	return sb.String()
}

func (g *Generator) CallableAlias(name string, callable bindgen.TypeExpr) string {
	return fmt.Sprintf("type %s = %s", g.ident(name), g.Render(callable))
}

func (g *Generator) PointerAlias(name string, pointer bindgen.TypeExpr) string {
	return fmt.Sprintf("type %s = %s", g.ident(name), g.Render(pointer))
}

// Enum declares a named integer type with its members as typed
// package-level constants. Go constants are already flat, so the members
// double as the module-level aliases.
func (g *Generator) Enum(name string, members []model.EnumMember) string {
	typeName := g.ident(name)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("type %s %s\n\nconst (\n", typeName, enumBase(members)))
	for _, m := range members {
		sb.WriteString(fmt.Sprintf("\t%s %s = %d\n", g.ident(m.Name), typeName, m.Value))
	}
	sb.WriteString(")")
	return sb.String()
}

// enumBase picks the underlying type a C compiler would: int while every
// value fits, unsigned int when they are non-negative and fit that, and a
// 64-bit type otherwise.
func enumBase(members []model.EnumMember) string {
	signed, unsigned := true, true
	for _, m := range members {
		if m.Value < math.MinInt32 || m.Value > math.MaxInt32 {
			signed = false
		}
		if m.Value < 0 || m.Value > math.MaxUint32 {
			unsigned = false
		}
	}
	switch {
	case signed:
		return "int32"
	case unsigned:
		return "uint32"
	default:
		return "int64"
	}
}

// Finalize prunes unused imports and gofmts the module.
func (g *Generator) Finalize(src []byte) ([]byte, error) {
	out, err := imports.Process(g.opts.FileName, src, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, errors.Wrap(err, "generated Go module does not parse")
	}
	return out, nil
}

var _ bindgen.Target = (*Generator)(nil)

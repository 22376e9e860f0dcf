package python

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teranos/bindgen/bindgen"
	"github.com/teranos/bindgen/model"
)

// Options configures the names the generated module imports from its
// runtime package.
type Options struct {
	// RuntimeModule is the sibling module providing get_lib() (default "_base")
	RuntimeModule string
	// PointerType is the generic pointer class exported by RuntimeModule
	// (default "Pointer")
	PointerType string
}

// Generator implements bindgen.Target for Python type stubs backed by a cffi
// library handle.
type Generator struct {
	opts Options
}

// NewGenerator creates a new Python generator
func NewGenerator(opts Options) *Generator {
	if opts.RuntimeModule == "" {
		opts.RuntimeModule = "_base"
	}
	if opts.PointerType == "" {
		opts.PointerType = "Pointer"
	}
	return &Generator{opts: opts}
}

// Name returns "python"
func (g *Generator) Name() string {
	return "python"
}

// FileExtension returns "py"
func (g *Generator) FileExtension() string {
	return "py"
}

// pythonKeywords are reserved words in Python that need special handling
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
	// Soft keywords (Python 3.10+)
	"match": true, "case": true, "type": true,
}

// toPythonIdent converts an identifier to a valid Python identifier
// Adds underscore suffix for Python keywords
func toPythonIdent(s string) string {
	if pythonKeywords[s] {
		return s + "_"
	}
	return s
}

// Preamble returns the module docstring and imports
func (g *Generator) Preamble() string {
	var sb strings.Builder
	sb.WriteString(`"""
WARNING: This file is generated automatically by bindgen.
Do not edit this file by hand!
"""

import enum
from collections.abc import Callable
from typing import Any
from typing import TypeAlias
`)
	sb.WriteString(fmt.Sprintf("from .%s import %s\n", g.opts.RuntimeModule, g.opts.PointerType))
	sb.WriteString(fmt.Sprintf("from . import %s\n", g.opts.RuntimeModule))
	return sb.String()
}

// Render converts a type expression to a Python annotation
func (g *Generator) Render(expr bindgen.TypeExpr) string {
	switch expr.Kind {
	case bindgen.ExprNamed:
		return toPythonIdent(expr.Name)
	case bindgen.ExprUnit:
		return "None"
	case bindgen.ExprOpaque:
		return "Any"
	case bindgen.ExprBytes:
		return "bytes"
	case bindgen.ExprBool:
		return "bool"
	case bindgen.ExprInt:
		return "int"
	case bindgen.ExprFloat:
		return "float"
	case bindgen.ExprPointer:
		return fmt.Sprintf("%s[%s]", g.opts.PointerType, g.Render(*expr.Elem))
	case bindgen.ExprCallable:
		params := make([]string, len(expr.Params))
		for i, p := range expr.Params {
			params[i] = g.Render(p)
		}
		return fmt.Sprintf("Callable[[%s], %s]", strings.Join(params, ", "), g.Render(*expr.Result))
	default:
		return "Any"
	}
}

// Record creates a plain annotated class; empty structs get an ellipsis body
func (g *Generator) Record(name string, fields []bindgen.Field) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("class %s:\n", toPythonIdent(name)))
	if len(fields) == 0 {
		sb.WriteString("    ...\n")
	}
	for _, f := range fields {
		sb.WriteString(fmt.Sprintf("    %s: %s\n", toPythonIdent(f.Name), g.Render(f.Type)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// OpaqueRecord creates an empty class so pointers to it can be annotated
func (g *Generator) OpaqueRecord(name string) string {
	return fmt.Sprintf("class %s: ...", toPythonIdent(name))
}

// ConstantMarker returns a comment; constants are not generated
func (g *Generator) ConstantMarker(qualified string) string {
	return "# constant: " + qualified
}

// Function creates a wrapper forwarding positional arguments to the loaded
// library
func (g *Generator) Function(name string, params []bindgen.TypeExpr, result bindgen.TypeExpr) string {
	args := make([]string, len(params))
	annotated := make([]string, len(params), len(params)+1)
	for i, p := range params {
		args[i] = "arg" + strconv.Itoa(i)
		annotated[i] = fmt.Sprintf("%s: %s", args[i], g.Render(p))
	}
	// Positional-only marker needs at least one parameter
	if len(annotated) > 0 {
		annotated = append(annotated, "/")
	}

	returnType := g.Render(result)
	ignores := "attr-defined"
	if returnType != "Any" {
		ignores += ",no-any-return"
	}

	symbol := fmt.Sprintf("%s.get_lib().%s", g.opts.RuntimeModule, name)
	if pythonKeywords[name] {
		symbol = fmt.Sprintf("getattr(%s.get_lib(), %q)", g.opts.RuntimeModule, name)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("def %s(%s) -> %s:\n", toPythonIdent(name), strings.Join(annotated, ", "), returnType))
	sb.WriteString(fmt.Sprintf("    return %s(%s)  # type: ignore[%s]", symbol, strings.Join(args, ", "), ignores))
	return sb.String()
}

// CallableAlias binds a name to a Callable annotation
func (g *Generator) CallableAlias(name string, callable bindgen.TypeExpr) string {
	return fmt.Sprintf("%s: TypeAlias = %s", toPythonIdent(name), g.Render(callable))
}

// PointerAlias binds a name to a pointer annotation
func (g *Generator) PointerAlias(name string, pointer bindgen.TypeExpr) string {
	return fmt.Sprintf("%s: TypeAlias = %s", toPythonIdent(name), g.Render(pointer))
}

// Enum creates an IntEnum followed by module-level aliases of its members,
// so callers can use both ULWindowFlags.kWindowFlags_Titled and
// kWindowFlags_Titled
func (g *Generator) Enum(name string, members []model.EnumMember) string {
	className := toPythonIdent(name)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("class %s(enum.IntEnum):\n", className))
	for _, m := range members {
		sb.WriteString(fmt.Sprintf("    %s = %d\n", toPythonIdent(m.Name), m.Value))
	}
	sb.WriteString("\n\n")
	for _, m := range members {
		member := toPythonIdent(m.Name)
		sb.WriteString(fmt.Sprintf("%s = %s.%s\n", member, className, member))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Finalize returns the module unchanged; Python formatting is left to the
// configured format command
func (g *Generator) Finalize(src []byte) ([]byte, error) {
	return src, nil
}

var _ bindgen.Target = (*Generator)(nil)

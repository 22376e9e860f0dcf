package bindgen

import "strings"

// ExprKind is the shape of a resolved type expression.
type ExprKind int

const (
	// ExprNamed refers to a declared name: a typedef alias or a struct name
	ExprNamed ExprKind = iota
	// ExprUnit is the absence of a value (C void in result position)
	ExprUnit
	// ExprOpaque is an untyped handle (void*)
	ExprOpaque
	// ExprBytes is a byte string (char*, char)
	ExprBytes
	ExprBool
	ExprInt
	ExprFloat
	// ExprPointer is a pointer to Elem
	ExprPointer
	// ExprCallable is a function type over Params returning Result
	ExprCallable
)

var exprKindNames = map[ExprKind]string{
	ExprNamed:    "named",
	ExprUnit:     "unit",
	ExprOpaque:   "opaque",
	ExprBytes:    "bytes",
	ExprBool:     "bool",
	ExprInt:      "int",
	ExprFloat:    "float",
	ExprPointer:  "pointer",
	ExprCallable: "callable",
}

func (k ExprKind) String() string {
	if name, ok := exprKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// TypeExpr is a target-neutral type expression produced by the resolver.
// Targets render it into source text. Two expressions are equal when they
// render identically on every target.
type TypeExpr struct {
	Kind ExprKind
	// Name is set for ExprNamed
	Name string
	// Elem is set for ExprPointer
	Elem *TypeExpr
	// Params and Result are set for ExprCallable
	Params []TypeExpr
	Result *TypeExpr
	// CType is the C primitive name behind ExprBool, ExprInt and ExprFloat,
	// empty when unknown. Targets with sized scalars read widths from it.
	CType string
}

func Named(name string) TypeExpr { return TypeExpr{Kind: ExprNamed, Name: name} }
func Unit() TypeExpr             { return TypeExpr{Kind: ExprUnit} }
func Opaque() TypeExpr           { return TypeExpr{Kind: ExprOpaque} }
func Bytes() TypeExpr            { return TypeExpr{Kind: ExprBytes} }
func Bool() TypeExpr             { return TypeExpr{Kind: ExprBool} }
func Int() TypeExpr              { return TypeExpr{Kind: ExprInt} }
func Float() TypeExpr            { return TypeExpr{Kind: ExprFloat} }

func BoolOf(ctype string) TypeExpr  { return TypeExpr{Kind: ExprBool, CType: ctype} }
func IntOf(ctype string) TypeExpr   { return TypeExpr{Kind: ExprInt, CType: ctype} }
func FloatOf(ctype string) TypeExpr { return TypeExpr{Kind: ExprFloat, CType: ctype} }

// PointerTo wraps elem in a pointer expression.
func PointerTo(elem TypeExpr) TypeExpr {
	return TypeExpr{Kind: ExprPointer, Elem: &elem}
}

// Callable builds a function type expression.
func Callable(params []TypeExpr, result TypeExpr) TypeExpr {
	return TypeExpr{Kind: ExprCallable, Params: params, Result: &result}
}

// String renders the expression in a neutral notation for logs and test
// failures, e.g. "func(bytes, int) ULString" or "*float".
func (e TypeExpr) String() string {
	switch e.Kind {
	case ExprNamed:
		return e.Name
	case ExprPointer:
		if e.Elem == nil {
			return "*?"
		}
		return "*" + e.Elem.String()
	case ExprCallable:
		params := make([]string, len(e.Params))
		for i, p := range e.Params {
			params[i] = p.String()
		}
		result := "?"
		if e.Result != nil {
			result = e.Result.String()
		}
		return "func(" + strings.Join(params, ", ") + ") " + result
	default:
		return e.Kind.String()
	}
}

// Field is a struct member with its resolved type.
type Field struct {
	Name string
	Type TypeExpr
}

// Package model is the parsed C declaration model the generator consumes.
//
// A model is an arena of type nodes plus an ordered declaration table. Nodes
// are allocated once and referenced by pointer, so two structurally identical
// nodes built separately stay distinct: the typedef index relies on that
// identity to tell which typedef produced which node.
package model

// Kind names the shape of a type node.
type Kind string

const (
	KindVoid            Kind = "void"
	KindPrimitive       Kind = "primitive"
	KindPointer         Kind = "pointer"
	KindArray           Kind = "array"
	KindStruct          Kind = "struct"
	KindEnum            Kind = "enum"
	KindFunctionPointer Kind = "function_pointer"
)

// Type is one node of the type tree. The set of implementations is closed;
// shapes the decoder does not recognize become *Unknown.
type Type interface {
	Kind() Kind
	typeNode()
}

// Void is the C void type. The padding byte gives every allocation its own
// address; pointers to zero-size values may compare equal.
type Void struct {
	_ byte
}

// Primitive is a scalar C type such as int, double or char.
type Primitive struct {
	Name    string
	Integer bool
	Float   bool
	Char    bool
}

// IsBool reports whether the primitive is the C boolean type.
func (p *Primitive) IsBool() bool {
	return p.Name == "_Bool" || p.Name == "bool"
}

// IsPlainChar reports whether the primitive is plain char, the element type
// of C strings.
func (p *Primitive) IsPlainChar() bool {
	return p.Name == "char"
}

// Pointer is a pointer to Pointee.
type Pointer struct {
	Pointee Type
}

// Array is a fixed or unsized array of Element. Length is -1 when unknown.
type Array struct {
	Element Type
	Length  int
}

// Field is one struct member.
type Field struct {
	Name string
	Type Type
}

// Struct is a named or anonymous C struct. Anonymous structs carry the
// parser's synthetic name (e.g. "$ULvec4").
type Struct struct {
	Name   string
	Fields []Field
}

// EnumMember is one enumerator with its value as written in the header.
type EnumMember struct {
	Name  string
	Value int64
}

// Enum is a C enum.
type Enum struct {
	Name    string
	Members []EnumMember
}

// FunctionPointer is a function type: the type of a plain function
// declaration or of a function-pointer typedef. Parameter names are not
// part of the model.
type FunctionPointer struct {
	Params []Type
	Result Type
}

// Unknown is a node whose kind the decoder did not recognize (union,
// bitfield, complex types, ...). It exists so the generator can reject it
// with the kind name instead of the decoder guessing.
type Unknown struct {
	KindName string
}

func (*Void) Kind() Kind            { return KindVoid }
func (*Primitive) Kind() Kind       { return KindPrimitive }
func (*Pointer) Kind() Kind         { return KindPointer }
func (*Array) Kind() Kind           { return KindArray }
func (*Struct) Kind() Kind          { return KindStruct }
func (*Enum) Kind() Kind            { return KindEnum }
func (*FunctionPointer) Kind() Kind { return KindFunctionPointer }
func (u *Unknown) Kind() Kind       { return Kind(u.KindName) }

func (*Void) typeNode()            {}
func (*Primitive) typeNode()       {}
func (*Pointer) typeNode()         {}
func (*Array) typeNode()           {}
func (*Struct) typeNode()          {}
func (*Enum) typeNode()            {}
func (*FunctionPointer) typeNode() {}
func (*Unknown) typeNode()         {}

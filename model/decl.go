package model

import (
	"strings"

	"github.com/teranos/bindgen/errors"
)

// DeclKind is the kind prefix of a qualified declaration name.
type DeclKind string

const (
	DeclTypedef   DeclKind = "typedef"
	DeclStruct    DeclKind = "struct"
	DeclAnonymous DeclKind = "anonymous"
	DeclFunction  DeclKind = "function"
	DeclConstant  DeclKind = "constant"
)

// Declaration is one entry of the header's declaration table.
type Declaration struct {
	// Qualified is the name as the parser reports it, e.g. "typedef ULString"
	Qualified string
	// Prefix is the kind prefix; prefixes other than the DeclKind constants
	// are kept verbatim (e.g. "union", "macro")
	Prefix DeclKind
	// Name is Qualified without its prefix
	Name string
	Type Type
}

// ParseQualifiedName splits "typedef ULString" into its prefix and name.
// A name without a space has an empty prefix.
func ParseQualifiedName(qualified string) (DeclKind, string) {
	prefix, name, ok := strings.Cut(qualified, " ")
	if !ok {
		return "", qualified
	}
	return DeclKind(prefix), name
}

// NewDeclaration builds a declaration from its qualified name.
func NewDeclaration(qualified string, t Type) Declaration {
	prefix, name := ParseQualifiedName(qualified)
	return Declaration{
		Qualified: qualified,
		Prefix:    prefix,
		Name:      name,
		Type:      t,
	}
}

// Model is a decoded declaration model: the type arena and the declaration
// table in header order.
type Model struct {
	SchemaVersion string
	Types         []Type
	Declarations  []Declaration

	seen map[string]bool
}

// New returns an empty model.
func New() *Model {
	return &Model{seen: make(map[string]bool)}
}

// Add allocates t in the arena and returns it, so nodes can be built inline:
//
//	str := m.Add(&model.Struct{Name: "C_String"})
//	m.Declare("typedef ULString", m.Add(&model.Pointer{Pointee: str}))
func (m *Model) Add(t Type) Type {
	m.Types = append(m.Types, t)
	return t
}

// Declare appends a declaration. Qualified names are unique within a model.
func (m *Model) Declare(qualified string, t Type) error {
	if m.seen == nil {
		m.seen = make(map[string]bool)
	}
	if m.seen[qualified] {
		return errors.NewInvalidModelf("duplicate declaration %q", qualified)
	}
	if t == nil {
		return errors.NewInvalidModelf("declaration %q has no type", qualified)
	}
	m.seen[qualified] = true
	m.Declarations = append(m.Declarations, NewDeclaration(qualified, t))
	return nil
}

// MustDeclare is Declare for hand-built models in tests and examples.
func (m *Model) MustDeclare(qualified string, t Type) {
	if err := m.Declare(qualified, t); err != nil {
		panic(err)
	}
}

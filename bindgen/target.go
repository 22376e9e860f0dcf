package bindgen

import "github.com/teranos/bindgen/model"

// Target renders resolved declarations as source text in one output
// language. Each method returns one declaration's text without a trailing
// blank line; the assembler takes care of separation.
type Target interface {
	// Name returns the target name (e.g. "python", "go")
	Name() string

	// FileExtension returns the extension of the generated module (e.g. "py")
	FileExtension() string

	// Preamble returns the generated-file marker and imports
	Preamble() string

	// Render returns the source text of a type expression
	Render(expr TypeExpr) string

	// Record declares a named record type with its fields. No fields means
	// an empty record.
	Record(name string, fields []Field) string

	// OpaqueRecord declares a named placeholder type without fields
	OpaqueRecord(name string) string

	// ConstantMarker returns an inert marker for a constant declaration
	ConstantMarker(qualified string) string

	// Function declares a wrapper forwarding to the loaded library's symbol
	// of the same name
	Function(name string, params []TypeExpr, result TypeExpr) string

	// CallableAlias names a callable type expression
	CallableAlias(name string, callable TypeExpr) string

	// PointerAlias names a pointer type expression
	PointerAlias(name string, pointer TypeExpr) string

	// Enum declares an enumerated type with flat access to its members
	Enum(name string, members []model.EnumMember) string

	// Finalize post-processes the assembled module
	Finalize(src []byte) ([]byte, error)
}

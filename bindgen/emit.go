package bindgen

import (
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/model"
)

// DefaultSkip lists platform typedefs that several system headers define
// in incompatible ways.
var DefaultSkip = []string{
	"typedef max_align_t",
	"typedef __caddr_t",
	"typedef __fsid_t",
	"typedef __timer_t",
}

// Emitter turns one declaration into target source text.
type Emitter struct {
	target   Target
	resolver *Resolver
	skip     map[string]bool
}

// NewEmitter returns an emitter that skips the given qualified names.
func NewEmitter(target Target, resolver *Resolver, skip []string) *Emitter {
	set := make(map[string]bool, len(skip))
	for _, name := range skip {
		set[name] = true
	}
	return &Emitter{target: target, resolver: resolver, skip: set}
}

// Emit returns the text for decl, or "" when the declaration produces no
// output of its own.
func (e *Emitter) Emit(decl model.Declaration) (string, error) {
	if e.skip[decl.Qualified] {
		logger.Debugw("Skipping declaration", logger.FieldDecl, decl.Qualified)
		return "", nil
	}

	kind := model.Kind("")
	if decl.Type != nil {
		kind = decl.Type.Kind()
	}
	logger.Debugw("Emitting declaration",
		logger.FieldDecl, decl.Qualified,
		logger.FieldKind, kind,
		logger.FieldPrefix, decl.Prefix)

	out, err := e.emit(decl)
	if err != nil {
		err = errors.Wrapf(err, "declaration %q (%s)", decl.Qualified, kind)
		if errors.IsUnsupportedType(err) {
			err = errors.WithHintf(err, "add %q to skip to leave it out of the generated module", decl.Qualified)
		}
		return "", err
	}
	return out, nil
}

func (e *Emitter) emit(decl model.Declaration) (string, error) {
	switch t := decl.Type.(type) {
	case *model.Struct:
		return e.emitStruct(decl, t)
	case *model.FunctionPointer:
		return e.emitFunction(decl, t)
	case *model.Primitive:
		// Primitives are inlined wherever they are referenced
		return "", nil
	case *model.Pointer:
		if decl.Prefix != model.DeclTypedef {
			return "", errUnsupportedShape()
		}
		expr, err := e.resolver.ResolveStructural(t)
		if err != nil {
			return "", err
		}
		traceExpr(decl.Qualified, expr)
		return e.target.PointerAlias(decl.Name, expr), nil
	case *model.Enum:
		return e.emitEnum(decl, t)
	default:
		return "", errUnsupportedShape()
	}
}

func (e *Emitter) emitStruct(decl model.Declaration, t *model.Struct) (string, error) {
	switch decl.Prefix {
	case model.DeclTypedef:
		fields := make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			expr, err := e.resolver.Resolve(f.Type)
			if err != nil {
				return "", errors.Wrapf(err, "field %s", f.Name)
			}
			traceExpr(decl.Qualified+"."+f.Name, expr)
			fields[i] = Field{Name: f.Name, Type: expr}
		}
		return e.target.Record(decl.Name, fields), nil
	case model.DeclAnonymous:
		// The enclosing typedef carries the fields
		return "", nil
	case model.DeclStruct:
		return e.target.OpaqueRecord(decl.Name), nil
	case model.DeclConstant:
		return e.target.ConstantMarker(decl.Qualified), nil
	default:
		return "", errUnsupportedShape()
	}
}

func (e *Emitter) emitFunction(decl model.Declaration, t *model.FunctionPointer) (string, error) {
	switch decl.Prefix {
	case model.DeclFunction:
		expr, err := e.resolver.ResolveStructural(t)
		if err != nil {
			return "", err
		}
		traceExpr(decl.Qualified, expr)
		return e.target.Function(decl.Name, expr.Params, *expr.Result), nil
	case model.DeclTypedef:
		expr, err := e.resolver.ResolveStructural(t)
		if err != nil {
			return "", err
		}
		traceExpr(decl.Qualified, expr)
		return e.target.CallableAlias(decl.Name, expr), nil
	default:
		return "", errUnsupportedShape()
	}
}

func (e *Emitter) emitEnum(decl model.Declaration, t *model.Enum) (string, error) {
	switch decl.Prefix {
	case model.DeclTypedef:
		if len(t.Members) == 0 {
			return "", errors.NewInvalidModelf("enum %s has no members", decl.Name)
		}
		return e.target.Enum(decl.Name, t.Members), nil
	case model.DeclAnonymous:
		return "", nil
	default:
		return "", errUnsupportedShape()
	}
}

func traceExpr(name string, expr TypeExpr) {
	if logger.TraceEnabled() {
		logger.Debugw("Resolved", logger.FieldDecl, name, logger.FieldExpr, expr.String())
	}
}

// errUnsupportedShape carries no text of its own; Emit adds the
// declaration name and kind.
func errUnsupportedShape() error {
	return errors.WithStack(errors.ErrUnsupportedType)
}

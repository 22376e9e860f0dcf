package bindgen

import (
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/model"
)

// Resolver converts type nodes into type expressions, preferring typedef
// aliases over structural expansion.
type Resolver struct {
	index *TypedefIndex
}

// NewResolver returns a resolver reading aliases from index.
func NewResolver(index *TypedefIndex) *Resolver {
	return &Resolver{index: index}
}

// Resolve converts t. A node named by exactly one typedef resolves to that
// name; every other node expands structurally.
func (r *Resolver) Resolve(t model.Type) (TypeExpr, error) {
	alias, ok, err := r.index.Lookup(t)
	if err != nil {
		return TypeExpr{}, err
	}
	if ok {
		return Named(alias), nil
	}
	return r.ResolveStructural(t)
}

// ResolveStructural expands t itself without consulting the index for t.
// Nodes below t still resolve through their aliases. Typedef emission uses
// this so an alias is never defined in terms of itself.
func (r *Resolver) ResolveStructural(t model.Type) (TypeExpr, error) {
	switch t := t.(type) {
	case *model.Void:
		return Unit(), nil

	case *model.Pointer:
		return r.pointerTo(t.Pointee)

	case *model.Array:
		// Arrays decay to pointers to their element, as in C parameter passing
		return r.pointerTo(t.Element)

	case *model.Struct:
		return Named(t.Name), nil

	case *model.Primitive:
		switch {
		case t.IsBool():
			return BoolOf(t.Name), nil
		case t.Integer:
			return IntOf(t.Name), nil
		case t.Float:
			return FloatOf(t.Name), nil
		case t.Char:
			return Bytes(), nil
		default:
			return TypeExpr{}, errors.NewUnsupportedTypef("primitive %q", t.Name)
		}

	case *model.FunctionPointer:
		params := make([]TypeExpr, len(t.Params))
		for i, p := range t.Params {
			expr, err := r.Resolve(p)
			if err != nil {
				return TypeExpr{}, errors.Wrapf(err, "parameter %d", i)
			}
			params[i] = expr
		}
		result, err := r.Resolve(t.Result)
		if err != nil {
			return TypeExpr{}, errors.Wrap(err, "result")
		}
		return Callable(params, result), nil

	case nil:
		return TypeExpr{}, errors.NewUnsupportedTypef("missing type node")

	default:
		// Enums and unrecognized shapes are only reachable through an alias
		return TypeExpr{}, errors.NewUnsupportedTypef("%s type", t.Kind())
	}
}

func (r *Resolver) pointerTo(pointee model.Type) (TypeExpr, error) {
	switch p := pointee.(type) {
	case *model.Void:
		return Opaque(), nil
	case *model.Primitive:
		if p.IsPlainChar() {
			return Bytes(), nil
		}
	}
	elem, err := r.Resolve(pointee)
	if err != nil {
		return TypeExpr{}, err
	}
	return PointerTo(elem), nil
}

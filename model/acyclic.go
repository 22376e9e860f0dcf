package model

import "github.com/teranos/bindgen/errors"

// CheckAcyclic rejects reference cycles that do not pass through a struct.
// Structs resolve by name, so a struct holding a pointer to itself is fine;
// a pointer whose pointee is itself would recurse forever.
//
// Every arena node and every declared type is a root, so models built in
// code get the same guarantee as decoded ones. Struct fields are walked as
// fresh roots once the current path is finished.
func (m *Model) CheckAcyclic() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[Type]int, len(m.Types))
	var structs []*Struct

	var visit func(t Type) error
	visit = func(t Type) error {
		if t == nil {
			return nil
		}
		switch state[t] {
		case visiting:
			return errors.NewInvalidModelf("reference cycle through %s type", t.Kind())
		case done:
			return nil
		}
		if s, ok := t.(*Struct); ok {
			state[t] = done
			structs = append(structs, s)
			return nil
		}
		state[t] = visiting
		for _, next := range children(t) {
			if err := visit(next); err != nil {
				return err
			}
		}
		state[t] = done
		return nil
	}

	for _, t := range m.Types {
		if err := visit(t); err != nil {
			return err
		}
	}
	for _, d := range m.Declarations {
		if err := visit(d.Type); err != nil {
			return err
		}
	}
	for i := 0; i < len(structs); i++ {
		for _, f := range structs[i].Fields {
			if err := visit(f.Type); err != nil {
				return err
			}
		}
	}
	return nil
}

func children(t Type) []Type {
	switch t := t.(type) {
	case *Pointer:
		return []Type{t.Pointee}
	case *Array:
		return []Type{t.Element}
	case *FunctionPointer:
		return append(append([]Type(nil), t.Params...), t.Result)
	default:
		return nil
	}
}

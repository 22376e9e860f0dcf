package model

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/teranos/bindgen/errors"
)

// modelFile is the on-disk shape of a declaration model. JSON models decode
// through the same YAML decoder.
type modelFile struct {
	SchemaVersion string    `yaml:"schema_version"`
	Types         []rawType `yaml:"types"`
	// Declarations stays a node so the mapping keeps header order
	Declarations yaml.Node `yaml:"declarations"`
}

type rawType struct {
	Kind    string      `yaml:"kind"`
	Name    string      `yaml:"name"`
	Integer *bool       `yaml:"integer"`
	Float   *bool       `yaml:"float"`
	Char    *bool       `yaml:"char"`
	Pointee *int        `yaml:"pointee"`
	Element *int        `yaml:"element"`
	Length  *int        `yaml:"length"`
	Fields  []rawField  `yaml:"fields"`
	Members []rawMember `yaml:"members"`
	Params  []int       `yaml:"params"`
	Result  *int        `yaml:"result"`
}

type rawField struct {
	Name string `yaml:"name"`
	Type *int   `yaml:"type"`
}

type rawMember struct {
	Name  string `yaml:"name"`
	Value *int64 `yaml:"value"`
}

// DecodeFile reads a model file from disk.
func DecodeFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open model %s", path)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode model %s", path)
	}
	return m, nil
}

// Decode reads a YAML or JSON model.
func Decode(r io.Reader) (*Model, error) {
	var file modelFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if err == io.EOF {
			return nil, errors.NewInvalidModelf("empty model")
		}
		return nil, errors.Mark(errors.Wrap(err, "malformed model"), errors.ErrInvalidModel)
	}

	if err := CheckSchemaVersion(file.SchemaVersion); err != nil {
		return nil, err
	}

	m := New()
	m.SchemaVersion = file.SchemaVersion

	// First pass allocates one node per arena slot so references can point
	// at any slot, including later ones and the referring struct itself.
	for _, raw := range file.Types {
		m.Add(allocate(raw))
	}
	for i, raw := range file.Types {
		if err := link(m.Types, i, raw); err != nil {
			return nil, err
		}
	}
	if err := m.CheckAcyclic(); err != nil {
		return nil, err
	}

	if err := decodeDeclarations(m, &file.Declarations); err != nil {
		return nil, err
	}
	return m, nil
}

func allocate(raw rawType) Type {
	switch Kind(raw.Kind) {
	case KindVoid:
		return &Void{}
	case KindPrimitive:
		p := NewPrimitive(raw.Name)
		if raw.Integer != nil || raw.Float != nil || raw.Char != nil {
			p.Integer = raw.Integer != nil && *raw.Integer
			p.Float = raw.Float != nil && *raw.Float
			p.Char = raw.Char != nil && *raw.Char
		}
		return p
	case KindPointer:
		return &Pointer{}
	case KindArray:
		length := -1
		if raw.Length != nil {
			length = *raw.Length
		}
		return &Array{Length: length}
	case KindStruct:
		return &Struct{Name: raw.Name}
	case KindEnum:
		return &Enum{Name: raw.Name}
	case KindFunctionPointer:
		return &FunctionPointer{}
	default:
		return &Unknown{KindName: raw.Kind}
	}
}

func link(arena []Type, slot int, raw rawType) error {
	ref := func(what string, idx *int) (Type, error) {
		if idx == nil {
			return nil, errors.NewInvalidModelf("type %d (%s): missing %s", slot, raw.Kind, what)
		}
		if *idx < 0 || *idx >= len(arena) {
			return nil, errors.NewInvalidModelf("type %d (%s): %s index %d out of range", slot, raw.Kind, what, *idx)
		}
		return arena[*idx], nil
	}

	var err error
	switch t := arena[slot].(type) {
	case *Pointer:
		t.Pointee, err = ref("pointee", raw.Pointee)
	case *Array:
		t.Element, err = ref("element", raw.Element)
	case *Struct:
		for i, f := range raw.Fields {
			if f.Name == "" {
				return errors.NewInvalidModelf("type %d (%s): field %d has no name", slot, raw.Kind, i)
			}
			ft, ferr := ref("type of field "+f.Name, f.Type)
			if ferr != nil {
				return ferr
			}
			t.Fields = append(t.Fields, Field{Name: f.Name, Type: ft})
		}
	case *Enum:
		for i, mem := range raw.Members {
			if mem.Name == "" {
				return errors.NewInvalidModelf("type %d (%s): member %d has no name", slot, raw.Kind, i)
			}
			if mem.Value == nil {
				return errors.NewInvalidModelf("type %d (%s): missing value of member %s", slot, raw.Kind, mem.Name)
			}
			t.Members = append(t.Members, EnumMember{Name: mem.Name, Value: *mem.Value})
		}
	case *FunctionPointer:
		for i := range raw.Params {
			pt, perr := ref("param", &raw.Params[i])
			if perr != nil {
				return perr
			}
			t.Params = append(t.Params, pt)
		}
		t.Result, err = ref("result", raw.Result)
	}
	return err
}

func decodeDeclarations(m *Model, node *yaml.Node) error {
	if node.Kind == 0 {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return errors.NewInvalidModelf("declarations must be a mapping of qualified name to type index (line %d)", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var idx int
		if err := value.Decode(&idx); err != nil {
			return errors.NewInvalidModelf("declaration %q: type reference must be an index (line %d)", key.Value, value.Line)
		}
		if idx < 0 || idx >= len(m.Types) {
			return errors.NewInvalidModelf("declaration %q: type index %d out of range", key.Value, idx)
		}
		if err := m.Declare(key.Value, m.Types[idx]); err != nil {
			return err
		}
	}
	return nil
}

package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/bindgen/errors"
)

func TestCheckAcyclic(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *Model
		wantErr string
	}{
		{
			name: "self pointer declared only",
			build: func() *Model {
				p := &Pointer{}
				p.Pointee = p
				m := New()
				m.MustDeclare("typedef Loop", p)
				return m
			},
			wantErr: "reference cycle through pointer type",
		},
		{
			name: "function returning itself",
			build: func() *Model {
				fn := &FunctionPointer{}
				fn.Result = &Pointer{Pointee: fn}
				m := New()
				m.MustDeclare("function loop", fn)
				return m
			},
			wantErr: "reference cycle through function_pointer type",
		},
		{
			name: "cycle behind a struct field",
			build: func() *Model {
				arr := &Array{Length: 2}
				arr.Element = arr
				m := New()
				m.MustDeclare("struct S", &Struct{Name: "S", Fields: []Field{{Name: "x", Type: arr}}})
				return m
			},
			wantErr: "reference cycle through array type",
		},
		{
			name: "linked list node",
			build: func() *Model {
				node := &Struct{Name: "Node"}
				next := &Pointer{Pointee: node}
				node.Fields = []Field{{Name: "next", Type: next}}
				m := New()
				m.MustDeclare("struct Node", node)
				m.MustDeclare("typedef NodeRef", next)
				return m
			},
		},
		{
			name: "nil references",
			build: func() *Model {
				m := New()
				m.MustDeclare("typedef P", &Pointer{})
				return m
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().CheckAcyclic()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsInvalidModel(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecode_ZeroEnumValue(t *testing.T) {
	m, err := Decode(strings.NewReader("types:\n  - kind: enum\n    name: E\n    members: [{name: A, value: 0}]\n"))
	require.NoError(t, err)
	e := m.Types[0].(*Enum)
	assert.Equal(t, []EnumMember{{Name: "A", Value: 0}}, e.Members)
}

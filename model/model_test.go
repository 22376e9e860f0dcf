package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/bindgen/errors"
)

func TestParseQualifiedName(t *testing.T) {
	tests := []struct {
		qualified  string
		wantPrefix DeclKind
		wantName   string
	}{
		{"typedef ULString", DeclTypedef, "ULString"},
		{"struct C_String", DeclStruct, "C_String"},
		{"anonymous $ULvec4", DeclAnonymous, "$ULvec4"},
		{"function ulCreateStringUTF8", DeclFunction, "ulCreateStringUTF8"},
		{"constant ULTRALIGHT_VERSION", DeclConstant, "ULTRALIGHT_VERSION"},
		{"union ULValue", DeclKind("union"), "ULValue"},
		{"bare", "", "bare"},
	}

	for _, tt := range tests {
		t.Run(tt.qualified, func(t *testing.T) {
			prefix, name := ParseQualifiedName(tt.qualified)
			assert.Equal(t, tt.wantPrefix, prefix)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestModel_Declare(t *testing.T) {
	m := New()
	str := m.Add(&Struct{Name: "C_String"})

	require.NoError(t, m.Declare("struct C_String", str))

	err := m.Declare("struct C_String", str)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidModel(err))
	assert.Contains(t, err.Error(), `duplicate declaration "struct C_String"`)

	err = m.Declare("typedef Nothing", nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidModel(err))

	assert.Len(t, m.Declarations, 1)
}

func TestModel_MustDeclarePanics(t *testing.T) {
	m := New()
	v := m.Add(&Void{})
	m.MustDeclare("typedef V", v)

	assert.Panics(t, func() { m.MustDeclare("typedef V", v) })
}

func TestModel_ZeroValueDeclare(t *testing.T) {
	var m Model
	require.NoError(t, m.Declare("typedef V", &Void{}))
	assert.Len(t, m.Declarations, 1)
}

func TestIdentity(t *testing.T) {
	a := &Struct{Name: "C_String"}
	b := &Struct{Name: "C_String"}

	index := map[Type]string{a: "first"}
	_, found := index[b]
	assert.False(t, found, "structurally equal nodes must stay distinct")

	v1, v2 := &Void{}, &Void{}
	assert.NotSame(t, v1, v2)
}

func TestNewPrimitive(t *testing.T) {
	tests := []struct {
		name                  string
		integer, float, isChr bool
	}{
		{"int", true, false, false},
		{"unsigned long long", true, false, false},
		{"size_t", true, false, false},
		{"_Bool", true, false, false},
		{"double", false, true, false},
		{"char", false, false, true},
		{"char16_t", false, false, true},
		{"__int128", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPrimitive(tt.name)
			assert.Equal(t, tt.integer, p.Integer)
			assert.Equal(t, tt.float, p.Float)
			assert.Equal(t, tt.isChr, p.Char)
		})
	}

	assert.True(t, NewPrimitive("_Bool").IsBool())
	assert.True(t, NewPrimitive("char").IsPlainChar())
	assert.False(t, NewPrimitive("char16_t").IsPlainChar())
}

func TestCheckSchemaVersion(t *testing.T) {
	assert.NoError(t, CheckSchemaVersion(""))
	assert.NoError(t, CheckSchemaVersion("1.0.0"))
	assert.NoError(t, CheckSchemaVersion("1.4.2"))

	err := CheckSchemaVersion("2.0.0")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidModel(err))
	assert.Contains(t, errors.FlattenHints(err), SupportedSchema)

	err = CheckSchemaVersion("not-a-version")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidModel(err))
}

package bindgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/bindgen/bindgen"
	"github.com/teranos/bindgen/bindgen/python"
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/model"
)

func newEmitter(m *model.Model) *bindgen.Emitter {
	resolver := bindgen.NewResolver(bindgen.BuildIndex(m.Declarations))
	return bindgen.NewEmitter(python.NewGenerator(python.Options{}), resolver, bindgen.DefaultSkip)
}

func TestEmit_DispatchTable(t *testing.T) {
	m := model.New()
	str := m.Add(&model.Struct{Name: "C_Surface"})
	fn := m.Add(&model.FunctionPointer{Result: m.Add(&model.Void{})})
	flags := m.Add(&model.Enum{Name: "$ULFlags", Members: []model.EnumMember{{Name: "kFlag", Value: 2}}})
	ptr := m.Add(&model.Pointer{Pointee: str})

	tests := []struct {
		qualified string
		node      model.Type
		want      string
	}{
		{"typedef ULSurfaceData", str, "class ULSurfaceData:\n    ..."},
		{"anonymous $C_Surface", str, ""},
		{"struct C_Surface", str, "class C_Surface: ..."},
		{"constant kVersion", str, "# constant: constant kVersion"},
		{"function ulUpdate", fn, "def ulUpdate() -> None:\n    return _base.get_lib().ulUpdate()  # type: ignore[attr-defined,no-any-return]"},
		{"typedef ULUpdateCallback", fn, "ULUpdateCallback: TypeAlias = Callable[[], None]"},
		{"typedef ULInt", m.Add(model.NewPrimitive("int")), ""},
		{"variable ulCounter", m.Add(model.NewPrimitive("int")), ""},
		{"typedef ULSurface", ptr, "ULSurface: TypeAlias = Pointer[C_Surface]"},
		{"typedef ULFlags", flags, "class ULFlags(enum.IntEnum):\n    kFlag = 2\n\n\nkFlag = ULFlags.kFlag"},
		{"anonymous $ULFlags", flags, ""},
	}

	e := newEmitter(m)
	for _, tt := range tests {
		t.Run(tt.qualified, func(t *testing.T) {
			out, err := e.Emit(model.NewDeclaration(tt.qualified, tt.node))
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEmit_HardFailures(t *testing.T) {
	m := model.New()
	str := m.Add(&model.Struct{Name: "C_Surface"})
	fn := m.Add(&model.FunctionPointer{Result: m.Add(&model.Void{})})
	flags := m.Add(&model.Enum{Name: "$ULFlags", Members: []model.EnumMember{{Name: "kFlag", Value: 2}}})

	tests := []struct {
		qualified string
		node      model.Type
		wantMsg   string
	}{
		{"union C_Surface", str, `declaration "union C_Surface" (struct): unsupported type`},
		{"struct ulUpdate", fn, `declaration "struct ulUpdate" (function_pointer): unsupported type`},
		{"function ULSurface", m.Add(&model.Pointer{Pointee: str}), `declaration "function ULSurface" (pointer): unsupported type`},
		{"struct ULFlags", flags, `declaration "struct ULFlags" (enum): unsupported type`},
		{"typedef ULNothing", m.Add(&model.Void{}), `declaration "typedef ULNothing" (void): unsupported type`},
		{"typedef ULMatrix", m.Add(&model.Array{Element: m.Add(model.NewPrimitive("float")), Length: 16}), `declaration "typedef ULMatrix" (array): unsupported type`},
		{"typedef ULValue", m.Add(&model.Unknown{KindName: "union"}), `declaration "typedef ULValue" (union): unsupported type`},
		{
			"typedef ULWide",
			m.Add(&model.Struct{Name: "$ULWide", Fields: []model.Field{{Name: "v", Type: m.Add(model.NewPrimitive("__int128"))}}}),
			`declaration "typedef ULWide" (struct): field v: primitive "__int128": unsupported type`,
		},
	}

	e := newEmitter(m)
	for _, tt := range tests {
		t.Run(tt.qualified, func(t *testing.T) {
			out, err := e.Emit(model.NewDeclaration(tt.qualified, tt.node))
			require.Error(t, err)
			assert.Empty(t, out)
			assert.True(t, errors.IsUnsupportedType(err))
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Contains(t, errors.FlattenHints(err), tt.qualified)
		})
	}
}

func TestEmit_EmptyEnumIsInvalid(t *testing.T) {
	m := model.New()
	e := newEmitter(m)

	_, err := e.Emit(model.NewDeclaration("typedef ULEmpty", m.Add(&model.Enum{Name: "$ULEmpty"})))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidModel(err))
	assert.False(t, errors.IsUnsupportedType(err))
}

func TestEmit_KeywordNames(t *testing.T) {
	m := model.New()
	st := m.Add(&model.Struct{
		Name: "$ULKeyEvent",
		Fields: []model.Field{
			{Name: "type", Type: m.Add(model.NewPrimitive("int"))},
			{Name: "from", Type: m.Add(model.NewPrimitive("float"))},
		},
	})

	out, err := newEmitter(m).Emit(model.NewDeclaration("typedef ULKeyEvent", st))
	require.NoError(t, err)
	assert.Equal(t, "class ULKeyEvent:\n    type_: int\n    from_: float", out)
}

func TestEmit_TypedefNotDefinedInTermsOfItself(t *testing.T) {
	m := model.New()
	cb := m.Add(&model.FunctionPointer{
		Params: []model.Type{m.Add(&model.Pointer{Pointee: m.Add(&model.Void{})})},
		Result: m.Add(&model.Void{}),
	})
	m.MustDeclare("typedef ULDestroyCallback", cb)

	out, err := newEmitter(m).Emit(m.Declarations[0])
	require.NoError(t, err)
	assert.Equal(t, "ULDestroyCallback: TypeAlias = Callable[[Any], None]", out)
}

func TestEmit_TracesResolvedExpressions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prevLogger, prevVerbosity := logger.Logger, logger.Verbosity
	logger.Logger = zap.New(core).Sugar()
	logger.Verbosity = logger.VerbosityTrace
	t.Cleanup(func() {
		logger.Logger, logger.Verbosity = prevLogger, prevVerbosity
	})

	m := ultralightStrings()
	e := newEmitter(m)
	for _, decl := range m.Declarations {
		_, err := e.Emit(decl)
		require.NoError(t, err)
	}

	var exprs []string
	for _, entry := range logs.FilterMessage("Resolved").All() {
		exprs = append(exprs, entry.ContextMap()[logger.FieldDecl].(string)+" "+entry.ContextMap()[logger.FieldExpr].(string))
	}
	assert.Contains(t, exprs, "function ulCreateStringUTF8 func(bytes, int) ULString")
}

package bindgen_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/bindgen/bindgen"
	"github.com/teranos/bindgen/bindgen/python"
	"github.com/teranos/bindgen/errors"
)

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "_stubs.py")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\n"), 0644))

	tests := []struct {
		name      string
		generated string
		upToDate  bool
		line      int
		want, got string
	}{
		{"identical", "a\nb\nc\n", true, 0, "", ""},
		{"changed line", "a\nB\nc\n", false, 2, "B", "b"},
		{"appended line", "a\nb\nc\nd\n", false, 4, "d", ""},
		{"missing trailing newline", "a\nb\nc", false, 4, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := bindgen.Compare(path, []byte(tt.generated))
			require.NoError(t, err)
			assert.Equal(t, tt.upToDate, result.UpToDate)
			assert.Equal(t, tt.line, result.Line)
			if !tt.upToDate {
				assert.Equal(t, tt.want, result.Want)
				assert.Equal(t, tt.got, result.Got)
			}
		})
	}
}

func TestCompare_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "_stubs.py")
	result, err := bindgen.Compare(path, []byte("a\n"))
	require.NoError(t, err)
	assert.True(t, result.Missing)
	assert.False(t, result.UpToDate)

	err = result.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrOutOfDate)
	assert.Contains(t, errors.FlattenDetails(err), "does not exist")
}

func TestCheckResult_Err(t *testing.T) {
	assert.NoError(t, (&bindgen.CheckResult{UpToDate: true}).Err())

	err := (&bindgen.CheckResult{Path: "bindings/_stubs.py", Line: 3, Want: "x", Got: "y"}).Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOutOfDate))
	assert.Equal(t, "bindings/_stubs.py: generated module is out of date", err.Error())
	assert.Contains(t, errors.FlattenDetails(err), `line 3: want "x", got "y"`)
}

func TestCheckModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "_stubs.py")
	gen := bindgen.New(python.NewGenerator(python.Options{}), bindgen.Options{})
	w := &bindgen.Writer{}
	m := ultralightStrings()

	require.NoError(t, gen.WriteModule(context.Background(), m, path, w))

	result, err := gen.CheckModule(context.Background(), m, path, w)
	require.NoError(t, err)
	assert.True(t, result.UpToDate)

	// Hand edits make the module stale
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(content, []byte("# local change\n")...), 0644))

	result, err = gen.CheckModule(context.Background(), m, path, w)
	require.NoError(t, err)
	assert.False(t, result.UpToDate)
	assert.Equal(t, "# local change", result.Got)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/bindgen/bindgen"
)

// isolate points HOME and the working directory at empty temp dirs
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDefaults(t *testing.T) {
	cfg, err := Defaults()
	require.NoError(t, err)

	assert.Equal(t, "python", cfg.Target)
	assert.Equal(t, "_stubs.py", cfg.Output)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, bindgen.DefaultSkip, cfg.Skip)
	assert.Equal(t, "_base", cfg.Python.RuntimeModule)
	assert.Equal(t, "Pointer", cfg.Python.PointerType)
	assert.Equal(t, "bindings", cfg.Go.Package)
	assert.Equal(t, "libHandle", cfg.Go.LoaderFunc)
	assert.False(t, cfg.Log.JSON)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFiles(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "python", cfg.Target)
}

func TestLoad_Precedence(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(home, ".config", "bindgen", ConfigFileName), `
target = "go"
workers = 4

[go]
package = "user"
loader_func = "userLib"
`)
	writeFile(t, filepath.Join(work, ConfigFileName), `
model = "ultralight.yaml"

[go]
package = "project"
`)

	nested := filepath.Join(work, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	t.Setenv("BINDGEN_WORKERS", "8")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "go", cfg.Target, "user file")
	assert.Equal(t, "ultralight.yaml", cfg.Model, "project file found walking up")
	assert.Equal(t, "project", cfg.Go.Package, "project overrides user")
	assert.Equal(t, "userLib", cfg.Go.LoaderFunc, "nested keys merge")
	assert.Equal(t, 8, cfg.Workers, "env overrides files")
}

func TestLoad_EnvNestedKey(t *testing.T) {
	isolate(t)
	t.Setenv("BINDGEN_PYTHON_RUNTIME_MODULE", "_runtime")
	t.Setenv("BINDGEN_FORMAT_COMMAND", "black -q {file}")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "_runtime", cfg.Python.RuntimeModule)
	assert.Equal(t, "black -q {file}", cfg.Format.Command)
}

func TestLoad_ExplicitFile(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, ConfigFileName), `target = "go"`)

	explicit := filepath.Join(t.TempDir(), "other.toml")
	writeFile(t, explicit, `output = "bindings.go"`)

	cfg, err := Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, "bindings.go", cfg.Output)
	assert.Equal(t, "python", cfg.Target, "explicit file replaces the project file")

	_, err = Load(filepath.Join(work, "missing.toml"))
	assert.Error(t, err)
}

func TestLoad_OutputFollowsTarget(t *testing.T) {
	tests := []struct {
		name    string
		project string
		env     map[string]string
		want    string
	}{
		{name: "default target", want: "_stubs.py"},
		{name: "go target", project: `target = "go"`, want: "bindings.go"},
		{name: "golang alias", project: `target = "golang"`, want: "bindings.go"},
		{name: "py alias", project: `target = "py"`, want: "_stubs.py"},
		{name: "env target", env: map[string]string{"BINDGEN_TARGET": "go"}, want: "bindings.go"},
		{name: "explicit output wins", project: "target = \"go\"\noutput = \"ul/ul.go\"\n", want: "ul/ul.go"},
		{name: "unknown target left empty", project: `target = "rust"`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, work := isolate(t)
			if tt.project != "" {
				writeFile(t, filepath.Join(work, ConfigFileName), tt.project)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load("")
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Output)
		})
	}
}

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, "_stubs.py", DefaultOutput("python"))
	assert.Equal(t, "bindings.go", DefaultOutput(" Go "))
	assert.Equal(t, "", DefaultOutput("rust"))
}

func TestLoad_MalformedFile(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, ConfigFileName), "target = \n")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_EmptySkipList(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, ConfigFileName), "skip = []\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Skip)
}

func TestFindProjectConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileName), "")
	nested := filepath.Join(root, "x", "y")
	require.NoError(t, os.MkdirAll(nested, 0755))

	assert.Equal(t, filepath.Join(root, ConfigFileName), FindProjectConfig(nested))
	assert.Equal(t, filepath.Join(root, ConfigFileName), FindProjectConfig(root))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Defaults()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"go alias", func(c *Config) { c.Target = "golang" }, ""},
		{"py alias", func(c *Config) { c.Target = "py" }, ""},
		{"unknown target", func(c *Config) { c.Target = "rust" }, `unknown target "rust"`},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers must be >= 1, got 0"},
		{"negative workers", func(c *Config) { c.Workers = -2 }, "workers must be >= 1, got -2"},
		{"empty output", func(c *Config) { c.Output = "  " }, "output cannot be empty"},
		{"stdout output", func(c *Config) { c.Output = "-" }, ""},
		{"blank skip entry", func(c *Config) { c.Skip = []string{"typedef a", ""} }, "skip[1] cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCanonicalTarget(t *testing.T) {
	name, ok := CanonicalTarget(" Golang ")
	assert.True(t, ok)
	assert.Equal(t, "go", name)

	_, ok = CanonicalTarget("typescript")
	assert.False(t, ok)

	assert.Equal(t, []string{"go", "golang", "py", "python"}, TargetNames())
}

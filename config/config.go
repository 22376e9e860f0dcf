// Package config loads bindgen settings from defaults, TOML files, the
// environment and command-line flags.
package config

// Config represents the bindgen configuration. An empty Output means the
// target's conventional file name (see DefaultOutput).
type Config struct {
	Model   string   `mapstructure:"model" toml:"model" json:"model" yaml:"model"`
	Output  string   `mapstructure:"output" toml:"output,omitempty" json:"output" yaml:"output"`
	Target  string   `mapstructure:"target" toml:"target" json:"target" yaml:"target"`
	Skip    []string `mapstructure:"skip" toml:"skip" json:"skip" yaml:"skip"`
	Workers int      `mapstructure:"workers" toml:"workers" json:"workers" yaml:"workers"`

	Format FormatConfig `mapstructure:"format" toml:"format" json:"format" yaml:"format"`
	Python PythonConfig `mapstructure:"python" toml:"python" json:"python" yaml:"python"`
	Go     GoConfig     `mapstructure:"go" toml:"go" json:"go" yaml:"go"`
	Log    LogConfig    `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// FormatConfig configures the formatter run on the written module
type FormatConfig struct {
	// Command is split with shell quoting rules; {file} is replaced by the
	// path being formatted, otherwise the path is appended
	Command string `mapstructure:"command" toml:"command" json:"command" yaml:"command"`
}

// PythonConfig configures the python target
type PythonConfig struct {
	RuntimeModule string `mapstructure:"runtime_module" toml:"runtime_module" json:"runtime_module" yaml:"runtime_module"`
	PointerType   string `mapstructure:"pointer_type" toml:"pointer_type" json:"pointer_type" yaml:"pointer_type"`
}

// GoConfig configures the go target
type GoConfig struct {
	Package    string `mapstructure:"package" toml:"package" json:"package" yaml:"package"`
	LoaderFunc string `mapstructure:"loader_func" toml:"loader_func" json:"loader_func" yaml:"loader_func"`
	// Exported capitalizes generated names; symbol lookups keep the C names
	Exported bool `mapstructure:"exported" toml:"exported" json:"exported" yaml:"exported"`
}

// LogConfig configures logging output
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
}

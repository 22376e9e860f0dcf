package config

import (
	"github.com/spf13/viper"

	"github.com/teranos/bindgen/bindgen"
)

// File and directory permissions
const (
	DefaultDirPermissions  = 0750
	DefaultFilePermissions = 0644
)

// ConfigFileName is the project and user configuration file name
const ConfigFileName = "bindgen.toml"

// EnvPrefix prefixes every environment override (BINDGEN_TARGET, BINDGEN_GO_PACKAGE, ...)
const EnvPrefix = "BINDGEN"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("model", "")
	v.SetDefault("output", "")
	v.SetDefault("target", "python")
	v.SetDefault("skip", append([]string(nil), bindgen.DefaultSkip...))
	v.SetDefault("workers", 1)

	v.SetDefault("format.command", "")

	v.SetDefault("python.runtime_module", "_base")
	v.SetDefault("python.pointer_type", "Pointer")

	v.SetDefault("go.package", "bindings")
	v.SetDefault("go.loader_func", "libHandle")
	v.SetDefault("go.exported", false)

	v.SetDefault("log.json", false)
}

// defaultOutputs is the output path per canonical target when none is set
var defaultOutputs = map[string]string{
	"python": "_stubs.py",
	"go":     "bindings.go",
}

// DefaultOutput returns the output path used for target when none is
// configured, or "" for an unknown target
func DefaultOutput(target string) string {
	name, _ := CanonicalTarget(target)
	return defaultOutputs[name]
}

// Defaults returns the configuration with nothing but default values applied
func Defaults() (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	return LoadWithViper(v)
}

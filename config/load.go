package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
)

// UserConfigPath returns ~/.config/bindgen/bindgen.toml, or "" when the home
// directory cannot be determined
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bindgen", ConfigFileName)
}

// FindProjectConfig searches for bindgen.toml by walking up the directory tree
// from dir. Returns the path to the first file found, or "" if none found.
func FindProjectConfig(dir string) string {
	for {
		path := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

// Files returns the configuration files that exist, lowest precedence first.
// An explicit path replaces the project file search and must exist.
func Files(explicit string) ([]string, error) {
	var files []string

	if user := UserConfigPath(); user != "" {
		if _, err := os.Stat(user); err == nil {
			files = append(files, user)
		}
	}

	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, errors.Wrapf(err, "config file %s", explicit)
		}
		return append(files, explicit), nil
	}

	if wd, err := os.Getwd(); err == nil {
		if project := FindProjectConfig(wd); project != "" {
			files = append(files, project)
		}
	}

	return files, nil
}

// NewViper builds a Viper instance with defaults, merged configuration files
// and BINDGEN_* environment overrides. Flags are bound by the caller.
func NewViper(explicit string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	files, err := Files(explicit)
	if err != nil {
		return nil, err
	}
	if err := mergeConfigFiles(v, files); err != nil {
		return nil, err
	}

	return v, nil
}

// mergeConfigFiles merges configuration files in order; later files override
// earlier ones, environment variables override all of them
func mergeConfigFiles(v *viper.Viper, files []string) error {
	for _, path := range files {
		fileViper := viper.New()
		fileViper.SetConfigFile(path)
		fileViper.SetConfigType("toml")

		if err := fileViper.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config file %s", path)
		}
		if err := v.MergeConfigMap(fileViper.AllSettings()); err != nil {
			return errors.Wrapf(err, "failed to merge config file %s", path)
		}
		logger.Infow("Loaded config file", logger.FieldConfig, path)
	}
	return nil
}

// LoadWithViper loads configuration using a provided Viper instance. An
// unset output is derived from the target.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	cfg, err := unmarshal(v)
	if err != nil {
		return nil, err
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput(cfg.Target)
	}
	return cfg, nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// Load reads the configuration from every source except flags
func Load(explicit string) (*Config, error) {
	v, err := NewViper(explicit)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// LoadFromFile loads configuration from a specific file path, with defaults
// but without environment overrides
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}
	return LoadWithViper(v)
}

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teranos/bindgen/config"
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
)

var (
	configFile string
	verbosity  int
	jsonLogs   bool
)

// flagKeys maps config keys to the flags that override them
var flagKeys = map[string]string{
	"model":   "model",
	"output":  "output",
	"target":  "target",
	"workers": "workers",
	"skip":    "skip",

	"go.exported": "exported",
}

// RootCmd is the bindgen command
var RootCmd = &cobra.Command{
	Use:   "bindgen",
	Short: "Generate typed bindings for C libraries",
	Long: `bindgen turns a parsed model of C declarations into a typed binding module.

Configuration sources (in order of precedence):
  1. Command line flags
  2. Environment variables (BINDGEN_* prefix, e.g. BINDGEN_GO_PACKAGE)
  3. Project config (./bindgen.toml, searched up the directory tree)
  4. User config (~/.config/bindgen/bindgen.toml)
  5. Default values

Examples:
  bindgen generate --model ultralight.yaml --output ultralight/_stubs.py
  bindgen generate --target go --output ultralight/bindings.go
  bindgen check                   # Fail when the generated module is stale
  bindgen watch                   # Regenerate on model or config changes
  bindgen config show --format yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			// Log setup still happens so the failure is reported consistently
			_ = logger.Initialize(jsonLogs, verbosity)
			return err
		}
		if err := logger.Initialize(jsonLogs || cfg.Log.JSON, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		logger.Debugw("Logger initialized", "verbosity", logger.LevelName(verbosity))
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: bindgen.toml searched up from the working directory)")
	RootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v, -vv, -vvv)")
	RootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Write logs as JSON")

	RootCmd.AddCommand(GenerateCmd)
	RootCmd.AddCommand(CheckCmd)
	RootCmd.AddCommand(WatchCmd)
	RootCmd.AddCommand(ConfigCmd)
	RootCmd.AddCommand(VersionCmd)
}

// addGenerationFlags registers the flags shared by generate, check and watch
func addGenerationFlags(flags *pflag.FlagSet) {
	flags.StringP("model", "m", "", "Declaration model: local path or go-getter source")
	flags.StringP("output", "o", "", "Generated module path, - for stdout (default _stubs.py for python, bindings.go for go)")
	flags.StringP("target", "t", "", "Target language: python, go (default python)")
	flags.IntP("workers", "w", 0, "Declarations emitted concurrently (default 1)")
	flags.StringSlice("skip", nil, "Qualified declaration names to leave out (replaces the configured list)")
	flags.Bool("exported", false, "Go target: capitalize declared names so other packages can use them")
}

// newViper loads the configuration sources and binds the command's flags
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v, err := config.NewViper(configFile)
	if err != nil {
		return nil, err
	}
	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "failed to bind flag --%s", name)
			}
		}
	}
	return v, nil
}

// loadConfig returns the effective configuration for cmd, without validating it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := newViper(cmd)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}

// loadValidConfig is loadConfig plus validation, for commands that generate
func loadValidConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	if cfg.Model == "" {
		return nil, errors.WithHint(
			errors.New("no declaration model given"),
			"pass --model or set model in bindgen.toml",
		)
	}
	return cfg, nil
}

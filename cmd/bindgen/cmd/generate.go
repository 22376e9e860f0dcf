package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/bindgen/bindgen"
)

// GenerateCmd writes the binding module
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the binding module",
	Long: `Generate the binding module from a declaration model.

The model is a YAML or JSON file describing parsed C declarations. It may be
a local path or any go-getter source (https://, s3::, git::...).

The module is written atomically: readers see the previous file or the new
one, never a partial write. Nothing is written when generation fails.

Examples:
  bindgen generate --model ultralight.yaml
  bindgen generate -m ultralight.yaml -t go -o ultralight/bindings.go
  bindgen generate -m https://example.com/ultralight.yaml -o -`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	addGenerationFlags(GenerateCmd.Flags())
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadValidConfig(cmd)
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	count, err := p.generate(cmd.Context())
	if err != nil {
		return err
	}

	// stdout carries the module itself
	if cfg.Output != bindgen.StdoutPath {
		pterm.Success.Printfln("Generated %s (%s, %d declarations)", cfg.Output, p.generator.Target().Name(), count)
	}
	return nil
}

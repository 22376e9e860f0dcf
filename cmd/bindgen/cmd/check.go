package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/bindgen/bindgen"
	"github.com/teranos/bindgen/errors"
)

// CheckCmd checks that the generated module is up to date
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check if the generated module is up to date",
	Long: `Regenerate the module in memory and compare it with the file at --output.

Exit codes:
  0 - Module is up to date
  1 - Module is out of date (first differing line shown)
  2 - Error during check

Examples:
  bindgen check
  bindgen check -m ultralight.yaml -o ultralight/_stubs.py`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	addGenerationFlags(CheckCmd.Flags())
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadValidConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Output == bindgen.StdoutPath {
		return errors.New("check needs an output file, not stdout")
	}

	p, err := newPipeline(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	m, err := p.loadModel(cmd.Context())
	if err != nil {
		return err
	}

	result, err := p.generator.CheckModule(cmd.Context(), m, cfg.Output, p.writer)
	if err != nil {
		return err
	}

	if result.UpToDate {
		pterm.Success.Printfln("%s is up to date", cfg.Output)
		return nil
	}

	if result.Missing {
		pterm.Error.Printfln("%s does not exist", cfg.Output)
	} else {
		pterm.Error.Printfln("%s is out of date at line %d", cfg.Output, result.Line)
		pterm.Printf("  %s %q\n", pterm.Green("want:"), result.Want)
		pterm.Printf("  %s %q\n", pterm.Red("got: "), result.Got)
	}
	return errors.WithHint(result.Err(), "run 'bindgen generate' to update it")
}

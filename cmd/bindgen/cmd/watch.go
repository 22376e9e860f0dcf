package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/bindgen/config"
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/model"
	"github.com/teranos/bindgen/watch"
)

// WatchCmd regenerates on model or config changes
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the model or configuration changes",
	Long: `Generate once, then regenerate each time the model file or a loaded
configuration file is written. Changes are debounced and regenerations never
overlap. A failed regeneration is reported and leaves the last good module in
place. Stop with Ctrl-C.

Only local model files can be watched.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	addGenerationFlags(WatchCmd.Flags())
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadValidConfig(cmd)
	if err != nil {
		return err
	}

	src, err := model.Resolve(ctx, cfg.Model)
	if err != nil {
		return err
	}
	src.Cleanup()
	if src.Fetched {
		return errors.WithHint(
			errors.Newf("cannot watch remote model %s", cfg.Model),
			"download the model and pass its local path",
		)
	}

	configFiles, err := config.Files(configFile)
	if err != nil {
		return err
	}
	paths := append([]string{src.Path}, configFiles...)

	regenerate := func(ctx context.Context) error {
		// Configuration files may have changed too
		current, err := loadValidConfig(cmd)
		if err != nil {
			return err
		}
		p, err := newPipeline(current, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		count, err := p.generate(ctx)
		if err != nil {
			pterm.Error.Printfln("Regeneration failed: %v", err)
			return err
		}
		pterm.Success.Printfln("Generated %s (%s, %d declarations)", current.Output, p.generator.Target().Name(), count)
		return nil
	}

	// A broken model at startup is reported like any later failure
	_ = regenerate(ctx)

	w, err := watch.New(paths, regenerate, watch.Options{})
	if err != nil {
		return err
	}

	for _, p := range paths {
		logger.Infow("Watching", logger.FieldPath, p)
	}
	pterm.Info.Printfln("Watching %d files, press Ctrl-C to stop", len(paths))

	return w.Run(ctx)
}

package cmd

import (
	"context"
	"io"
	"path/filepath"

	"github.com/teranos/bindgen/bindgen"
	"github.com/teranos/bindgen/bindgen/golang"
	"github.com/teranos/bindgen/bindgen/python"
	"github.com/teranos/bindgen/config"
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/model"
)

// newTarget creates the output target named by cfg.Target
func newTarget(cfg *config.Config) (bindgen.Target, error) {
	name, _ := config.CanonicalTarget(cfg.Target)

	switch name {
	case "python":
		return python.NewGenerator(python.Options{
			RuntimeModule: cfg.Python.RuntimeModule,
			PointerType:   cfg.Python.PointerType,
		}), nil
	case "go":
		fileName := "bindings.go"
		if cfg.Output != bindgen.StdoutPath {
			fileName = filepath.Base(cfg.Output)
		}
		return golang.NewGenerator(golang.Options{
			Package:    cfg.Go.Package,
			LoaderFunc: cfg.Go.LoaderFunc,
			FileName:   fileName,
			Exported:   cfg.Go.Exported,
		}), nil
	default:
		return nil, errors.Newf("unknown target %q", cfg.Target)
	}
}

// pipeline bundles what one generation run needs
type pipeline struct {
	cfg       *config.Config
	generator *bindgen.Generator
	writer    *bindgen.Writer
}

func newPipeline(cfg *config.Config, stdout io.Writer) (*pipeline, error) {
	target, err := newTarget(cfg)
	if err != nil {
		return nil, err
	}

	return &pipeline{
		cfg: cfg,
		generator: bindgen.New(target, bindgen.Options{
			Skip:    cfg.Skip,
			Workers: cfg.Workers,
		}),
		writer: &bindgen.Writer{
			FormatCommand: cfg.Format.Command,
			Ext:           "." + target.FileExtension(),
			Stdout:        stdout,
		},
	}, nil
}

// loadModel fetches and decodes the configured model
func (p *pipeline) loadModel(ctx context.Context) (*model.Model, error) {
	m, err := model.Load(ctx, p.cfg.Model)
	if err != nil {
		return nil, err
	}
	logger.Infow("Loaded model",
		logger.FieldSource, p.cfg.Model,
		logger.FieldCount, len(m.Declarations))
	return m, nil
}

// generate writes the module and returns the number of declarations read
func (p *pipeline) generate(ctx context.Context) (int, error) {
	m, err := p.loadModel(ctx)
	if err != nil {
		return 0, err
	}
	if err := p.generator.WriteModule(ctx, m, p.cfg.Output, p.writer); err != nil {
		return 0, err
	}
	logger.Infow("Wrote module",
		logger.FieldPath, p.cfg.Output,
		logger.FieldTarget, p.generator.Target().Name())
	return len(m.Declarations), nil
}

// Package bindgen turns a C declaration model into a binding module for a
// target language.
//
// Generation is a single pass: the typedef index is built once from the
// declaration table, every declaration is emitted through the resolver in
// input order, and the non-empty results are assembled under the target's
// preamble. The same model always produces byte-identical output.
package bindgen

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/model"
)

// Options configures a generator.
type Options struct {
	// Skip lists qualified declaration names left out before dispatch
	Skip []string
	// Workers > 1 emits declarations concurrently; output order is unchanged
	Workers int
}

// Generator produces binding modules for one target.
type Generator struct {
	target Target
	opts   Options
}

// New returns a generator for target. A nil Skip uses DefaultSkip; pass an
// empty non-nil slice to skip nothing.
func New(target Target, opts Options) *Generator {
	if opts.Skip == nil {
		opts.Skip = DefaultSkip
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Generator{target: target, opts: opts}
}

// Target returns the generator's target.
func (g *Generator) Target() Target {
	return g.target
}

// Generate returns the complete module for m.
func (g *Generator) Generate(ctx context.Context, m *model.Model) ([]byte, error) {
	start := time.Now()

	if err := m.CheckAcyclic(); err != nil {
		return nil, err
	}

	index := BuildIndex(m.Declarations)
	for _, aliases := range index.Ambiguous() {
		logger.Debugw("Ambiguous typedef aliases, expanding structurally", logger.FieldAliases, aliases)
	}

	emitter := NewEmitter(g.target, NewResolver(index), g.opts.Skip)
	parts, err := g.emitAll(ctx, emitter, m.Declarations)
	if err != nil {
		return nil, err
	}

	src, err := g.target.Finalize(Assemble(g.target.Preamble(), parts))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to finalize %s module", g.target.Name())
	}

	logger.Debugw("Generated module",
		logger.FieldTarget, g.target.Name(),
		logger.FieldCount, len(m.Declarations),
		logger.FieldSize, len(src),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return src, nil
}

// emitAll emits every declaration into its own slot so the result keeps
// input order regardless of how emission is scheduled.
func (g *Generator) emitAll(ctx context.Context, emitter *Emitter, decls []model.Declaration) ([]string, error) {
	parts := make([]string, len(decls))

	if g.opts.Workers == 1 {
		for i, decl := range decls {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out, err := emitter.Emit(decl)
			if err != nil {
				return nil, err
			}
			parts[i] = out
		}
		return parts, nil
	}

	logger.Debugw("Emitting declarations concurrently", logger.FieldWorkers, g.opts.Workers)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Workers)
	for i, decl := range decls {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			out, err := emitter.Emit(decl)
			if err != nil {
				return err
			}
			parts[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}

// WriteModule generates the module for m and publishes it at path through
// w. Nothing is written when generation fails.
func (g *Generator) WriteModule(ctx context.Context, m *model.Model, path string, w *Writer) error {
	src, err := g.Generate(ctx, m)
	if err != nil {
		return err
	}
	return w.Write(ctx, path, src)
}

// CheckModule generates the module for m and compares it with the one
// published at path, after the same formatting WriteModule applies.
func (g *Generator) CheckModule(ctx context.Context, m *model.Model, path string, w *Writer) (*CheckResult, error) {
	src, err := g.Generate(ctx, m)
	if err != nil {
		return nil, err
	}
	rendered, err := w.Render(ctx, src)
	if err != nil {
		return nil, err
	}
	return Compare(path, rendered)
}

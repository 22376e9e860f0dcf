// Package watch re-runs generation when the model or configuration changes.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
)

// DefaultDebounce collapses the burst of events editors emit for one save
const DefaultDebounce = 500 * time.Millisecond

// Callback regenerates after a change. Calls never overlap.
type Callback func(ctx context.Context) error

// Options configures a Watcher
type Options struct {
	// Debounce is the quiet period before Callback runs (default DefaultDebounce)
	Debounce time.Duration
}

// Watcher watches a fixed set of files and runs a callback after they change
type Watcher struct {
	files    map[string]bool
	watcher  *fsnotify.Watcher
	callback Callback
	debounce time.Duration
	logger   *zap.SugaredLogger

	mu    sync.Mutex
	timer *time.Timer
	runMu sync.Mutex
	wg    sync.WaitGroup
}

// New creates a watcher for paths. The parent directories are watched so
// files replaced by rename (atomic writes, most editors) keep being seen.
func New(paths []string, callback Callback, opts Options) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("nothing to watch")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		files:    make(map[string]bool, len(paths)),
		watcher:  fsw,
		callback: callback,
		debounce: opts.Debounce,
		logger:   logger.ComponentLogger("watch"),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		w.files[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
		dirs[dir] = true
	}

	return w, nil
}

// Run blocks until ctx is done, scheduling the callback after every burst of
// changes to a watched file. A running callback is waited for before Run
// returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	defer w.wg.Wait()
	defer w.cancelPending()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}

			w.logger.Infow("Detected change",
				logger.FieldPath, event.Name,
				"op", event.Op.String())
			w.schedule(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

// schedule debounces rapid changes into one callback run
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil && w.timer.Stop() {
		w.wg.Done()
	}

	w.wg.Add(1)
	w.timer = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()
		w.run(ctx)
	})
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil && w.timer.Stop() {
		w.wg.Done()
	}
	w.timer = nil
}

func (w *Watcher) run(ctx context.Context) {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	if err := w.callback(ctx); err != nil {
		w.logger.Errorw("Regeneration failed", logger.FieldError, err)
		return
	}
	w.logger.Infow("Regenerated", logger.FieldDurationMS, time.Since(start).Milliseconds())
}

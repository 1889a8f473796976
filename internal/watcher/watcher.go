// Package watcher rebuilds the checklist pages when their sources change.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-checklist/internal/logging"
	"github.com/goliatone/go-checklist/pkg/interfaces"
)

// DefaultDebounce groups the write bursts editors produce on save.
const DefaultDebounce = 200 * time.Millisecond

var ErrRunnerRequired = errors.New("watcher: runner is required")

// Config selects what is watched.
type Config struct {
	// Paths are watched recursively. Empty watches the working directory.
	Paths []string
	// Exclude lists directories whose events are ignored, usually the
	// build output directory.
	Exclude  []string
	Debounce time.Duration
}

// Option customises a Watcher.
type Option func(*Watcher)

// WithLogger sets the watcher logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(w *Watcher) { w.logger = logging.Ensure(logger) }
}

// WithEventSource replaces the fsnotify backed event source.
func WithEventSource(factory func() (EventSource, error)) Option {
	return func(w *Watcher) {
		if factory != nil {
			w.newSource = factory
		}
	}
}

// Watcher serializes rebuilds: runs never overlap and any events seen while
// a run is in progress collapse into a single follow-up run.
type Watcher struct {
	cfg       Config
	runner    Runner
	logger    interfaces.Logger
	newSource func() (EventSource, error)
	exclude   []string
}

// New constructs a watcher that triggers runner on change.
func New(cfg Config, runner Runner, opts ...Option) (*Watcher, error) {
	if runner == nil {
		return nil, ErrRunnerRequired
	}
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}
	if cfg.Debounce < 0 {
		cfg.Debounce = 0
	}

	w := &Watcher{
		cfg:       cfg,
		runner:    runner,
		logger:    logging.NoOp(),
		newSource: NewFSNotifySource,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	for _, dir := range cfg.Exclude {
		if abs, err := filepath.Abs(dir); err == nil {
			w.exclude = append(w.exclude, abs)
		}
	}
	return w, nil
}

// Run watches until ctx is cancelled. A failing run is logged and watching
// continues. Cancellation waits for an in-flight run to return.
func (w *Watcher) Run(ctx context.Context) error {
	source, err := w.newSource()
	if err != nil {
		return fmt.Errorf("watcher: create event source: %w", err)
	}
	defer source.Close()

	watched := 0
	for _, root := range w.cfg.Paths {
		count, err := w.addRecursive(source, root)
		if err != nil {
			return err
		}
		watched += count
	}
	w.logger.Info("checklist.watch.started", "paths", strings.Join(w.cfg.Paths, ","), "watched", watched, "debounce", w.cfg.Debounce.String())

	var (
		running bool
		pending bool
		runs    int
		done    = make(chan error, 1)
		timer   *time.Timer
		fire    <-chan time.Time
	)

	start := func() {
		running = true
		runs++
		w.logger.Info("checklist.watch.run.start", "run", runs)
		go func() { done <- w.runner.Run(ctx) }()
	}
	trigger := func() {
		if running {
			pending = true
			return
		}
		start()
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			if running {
				<-done
			}
			w.logger.Info("checklist.watch.stopped", "runs", runs)
			return nil

		case event, ok := <-source.Events():
			if !ok {
				return errors.New("watcher: event source closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("checklist.watch.event", "path", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if _, err := w.addRecursive(source, event.Name); err != nil {
						w.logger.Warn("checklist.watch.add_failed", "path", event.Name, "error", err)
					}
				}
			}
			if w.cfg.Debounce == 0 {
				trigger()
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.cfg.Debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.cfg.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			trigger()

		case err := <-done:
			running = false
			if err != nil {
				w.logger.Error("checklist.watch.run.failed", "run", runs, "error", err)
			} else {
				w.logger.Info("checklist.watch.run.completed", "run", runs)
			}
			if pending && ctx.Err() == nil {
				pending = false
				start()
			}

		case err, ok := <-source.Errors():
			if !ok {
				return errors.New("watcher: error channel closed")
			}
			w.logger.Warn("checklist.watch.source_error", "error", err)
		}
	}
}

func (w *Watcher) addRecursive(source EventSource, root string) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if path != root || w.excluded(path) {
				return nil
			}
			// A file root is watched directly.
			if err := source.Add(path); err != nil {
				return fmt.Errorf("watcher: watch %s: %w", path, err)
			}
			count++
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if w.excluded(path) {
			return filepath.SkipDir
		}
		if err := source.Add(path); err != nil {
			return fmt.Errorf("watcher: watch %s: %w", path, err)
		}
		count++
		return nil
	})
	if err != nil {
		return count, err
	}
	return count, nil
}

// relevant drops permission-only changes, hidden files such as editor swap
// files and anything under an excluded directory.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return !w.excluded(event.Name)
}

func (w *Watcher) excluded(path string) bool {
	if len(w.exclude) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range w.exclude {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

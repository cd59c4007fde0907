// Package watch regenerates spec files when they or the Go sources next to
// them change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"slicegen/internal/spec"
)

// DefaultIgnore skips hidden, vendor and node_modules trees.
var DefaultIgnore = []string{
	"**/.[!.]*", "**/.[!.]*/**",
	"**/vendor", "**/vendor/**",
	"**/node_modules", "**/node_modules/**",
}

// Config configures a Watcher.
type Config struct {
	// Roots are the directories to watch recursively.
	Roots []string
	// Pattern is the spec file discovery glob.
	Pattern string
	// Suffix is the generated file suffix; generated files never trigger.
	Suffix string
	// Debounce is how long events must settle before a run.
	Debounce time.Duration
	// Ignore lists doublestar patterns of paths to skip.
	Ignore []string
}

// RunFunc regenerates the given spec files.
type RunFunc func(ctx context.Context, specs []string) error

// Watcher runs a RunFunc on changes below its roots.
type Watcher struct {
	cfg Config
	run RunFunc
	log *slog.Logger
	fs  *fsnotify.Watcher
}

// New creates a Watcher and registers every directory below cfg.Roots.
func New(cfg Config, run RunFunc, logger *slog.Logger) (*Watcher, error) {
	if cfg.Suffix == "" {
		cfg.Suffix = spec.DefaultSuffix
	}

	if cfg.Ignore == nil {
		cfg.Ignore = DefaultIgnore
	}

	if len(cfg.Roots) == 0 {
		cfg.Roots = []string{"."}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{cfg: cfg, run: run, log: logger, fs: fsw}

	for _, root := range cfg.Roots {
		if err := w.addTree(root); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if path != root && w.ignored(path) {
			return filepath.SkipDir
		}

		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}

		w.log.Debug("watching directory", "path", path)

		return nil
	})
}

// ignored matches path, relative to its root, against the ignore patterns.
func (w *Watcher) ignored(path string) bool {
	rel := filepath.Clean(path)

	for _, root := range w.cfg.Roots {
		if r, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
			break
		}
	}

	slashed := filepath.ToSlash(rel)

	for _, pattern := range w.cfg.Ignore {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}

	return false
}

// relevant reports whether a change to path may change generated output.
func (w *Watcher) relevant(path string) bool {
	if w.ignored(path) {
		return false
	}

	if spec.IsSpecFile(w.cfg.Pattern, path) {
		return true
	}

	return strings.HasSuffix(path, ".go") && !w.generated(path)
}

func (w *Watcher) generated(path string) bool {
	base := filepath.Base(path)
	stem, _ := strings.CutSuffix(w.cfg.Suffix, ".go")

	return strings.HasSuffix(base, w.cfg.Suffix) ||
		strings.HasSuffix(base, stem+"_test.go") ||
		strings.HasSuffix(base, ".unformatted.go")
}

// Run performs an initial run over every spec file, then reruns affected
// spec files on change until ctx is done. Run errors are logged, not
// returned.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	w.runSpecs(ctx, nil)

	timer := time.NewTimer(w.cfg.Debounce)
	timer.Stop()

	pending := map[string]struct{}{}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}

			w.log.Debug("file event", "path", event.Name, "op", event.Op.String())

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.ignored(event.Name) {
					if err := w.addTree(event.Name); err != nil {
						w.log.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}

			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			if !w.relevant(event.Name) {
				continue
			}

			pending[filepath.Dir(event.Name)] = struct{}{}

			timer.Reset(w.cfg.Debounce)

		case <-timer.C:
			dirs := pending
			pending = map[string]struct{}{}

			w.runSpecs(ctx, dirs)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}

			w.log.Warn("watch error", "error", err)
		}
	}
}

// runSpecs runs every spec file in dirs, or every spec file when dirs is nil.
func (w *Watcher) runSpecs(ctx context.Context, dirs map[string]struct{}) {
	all, err := spec.Discover(w.cfg.Pattern, w.cfg.Roots...)
	if err != nil {
		w.log.Error("failed to discover spec files", "error", err)
		return
	}

	specs := slices.DeleteFunc(all, func(path string) bool {
		if dirs == nil {
			return false
		}

		_, ok := dirs[filepath.Dir(path)]

		return !ok
	})

	if len(specs) == 0 {
		return
	}

	w.log.Info("regenerating", "specs", len(specs))

	if err := w.run(ctx, specs); err != nil && !errors.Is(err, context.Canceled) {
		w.log.Error("regeneration failed", "error", err)
	}
}

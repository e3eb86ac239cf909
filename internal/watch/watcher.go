// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultDebounce is the quiet period used when Config.Debounce is not set.
const DefaultDebounce = 200 * time.Millisecond

var (
	// ErrNoFiles is returned by New when there is nothing to watch.
	ErrNoFiles = errors.New("watch: no files to watch")

	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("watch: Run called more than once")

	// defaultIgnores matches editor swap and backup files by base name.
	defaultIgnores = []string{
		"*.swp",
		"*.swo",
		"*~",
		".#*",
		"#*#",
		".DS_Store",
	}
)

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Files are the paths whose changes trigger the callback.
		Files []string

		// Patterns are additional doublestar globs, relative to the directory
		// of each watched file, that also trigger the callback, e.g.
		// "*.cue" to follow schemas split over several files.
		Patterns []string

		// Debounce is the quiet period after the last event before the
		// callback fires. Zero or negative values use DefaultDebounce.
		Debounce time.Duration

		// OnChange receives the changed paths, sorted and deduplicated. A
		// callback error is logged and watching continues.
		OnChange func(ctx context.Context, changed []string) error

		// Logger receives diagnostics. nil discards them.
		Logger *log.Logger
	}

	// Watcher monitors schema files and fires a debounced callback when they
	// change. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		files    map[string]struct{}
		dirs     []string
		logger   *log.Logger
		debounce time.Duration
		started  atomic.Bool
	}
)

// New resolves the watched files and registers their directories.
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Files) == 0 {
		return nil, ErrNoFiles
	}
	if err := validatePatterns(cfg.Patterns); err != nil {
		return nil, err
	}

	files := make(map[string]struct{}, len(cfg.Files))
	dirSet := make(map[string]struct{}, len(cfg.Files))
	for _, f := range cfg.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("watch: resolve %q: %w", f, err)
		}
		files[abs] = struct{}{}
		dirSet[filepath.Dir(abs)] = struct{}{}
	}
	dirs := maps.Keys(dirSet)
	slices.Sort(dirs)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close() //nolint:errcheck // best-effort cleanup
			return nil, fmt.Errorf("watch: add directory %q: %w", dir, err)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		files:    files,
		dirs:     dirs,
		logger:   logger,
		debounce: debounce,
	}, nil
}

// Dirs returns the watched directories.
func (w *Watcher) Dirs() []string {
	return slices.Clone(w.dirs)
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It
// returns nil on cancellation and an error when the watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool

		// inflight is only added to under mu while stopped is false, so the
		// Wait in the cleanup never races with an Add.
		inflight sync.WaitGroup
		stopped  bool
	)

	fire := func() {
		mu.Lock()
		if stopped || ctx.Err() != nil {
			mu.Unlock()
			return
		}
		inflight.Add(1)
		mu.Unlock()
		defer inflight.Done()

		// A slow callback must not overlap with the next one; retry later
		// so the pending paths are not lost.
		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("previous run still in progress, retrying")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := maps.Keys(pending)
		clear(pending)
		mu.Unlock()
		slices.Sort(changed)

		w.logger.Debug("files changed", "paths", changed)
		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("callback failed", "err", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		stopped = true
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		inflight.Wait()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("close fsnotify", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			if !w.relevant(evt) {
				continue
			}
			mu.Lock()
			pending[filepath.Clean(evt.Name)] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

// relevant reports whether evt touches a watched file or a file matching
// one of the patterns. Chmod-only events are ignored.
func (w *Watcher) relevant(evt fsnotify.Event) bool {
	if evt.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(evt.Name)
	if isIgnored(filepath.Base(name)) {
		return false
	}
	if _, ok := w.files[name]; ok {
		return true
	}
	for _, dir := range w.dirs {
		rel, err := filepath.Rel(dir, name)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		if matches(w.cfg.Patterns, filepath.ToSlash(rel)) {
			return true
		}
	}
	return false
}

func isIgnored(base string) bool {
	return matches(defaultIgnores, base)
}

func matches(patterns []string, name string) bool {
	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, name); err == nil && ok {
			return true
		}
	}
	return false
}

// validatePatterns rejects malformed globs up front so they do not silently
// fail to match later.
func validatePatterns(patterns []string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("watch: invalid pattern %q: %w", pat, doublestar.ErrBadPattern)
		}
	}
	return nil
}

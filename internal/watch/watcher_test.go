// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{}); !errors.Is(err, ErrNoFiles) {
		t.Errorf("New() error = %v, want ErrNoFiles", err)
	}

	dir := t.TempDir()
	if _, err := New(Config{Files: []string{filepath.Join(dir, "a.cue")}, Patterns: []string{"[bad"}}); err == nil {
		t.Error("New() with a malformed pattern succeeded")
	}
	if _, err := New(Config{Files: []string{filepath.Join(dir, "missing", "a.cue")}}); err == nil {
		t.Error("New() with a missing directory succeeded")
	}
}

func TestWatcher_Relevant(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	schema := filepath.Join(dir, "cli.cue")
	writeFile(t, schema, "")

	w, err := New(Config{Files: []string{schema}, Patterns: []string{"*.yaml"}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { w.fsw.Close() })

	if got := w.Dirs(); len(got) != 1 || got[0] != filepath.Dir(schema) {
		t.Errorf("Dirs() = %v, want [%s]", got, dir)
	}

	tests := []struct {
		name string
		evt  fsnotify.Event
		want bool
	}{
		{"write to the schema", fsnotify.Event{Name: schema, Op: fsnotify.Write}, true},
		{"rename over the schema", fsnotify.Event{Name: schema, Op: fsnotify.Create}, true},
		{"chmod only", fsnotify.Event{Name: schema, Op: fsnotify.Chmod}, false},
		{"pattern match", fsnotify.Event{Name: filepath.Join(dir, "styles.yaml"), Op: fsnotify.Write}, true},
		{"unrelated file", fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Write}, false},
		{"swap file", fsnotify.Event{Name: filepath.Join(dir, ".cli.cue.swp"), Op: fsnotify.Write}, false},
		{"backup file", fsnotify.Event{Name: filepath.Join(dir, "cli.cue~"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		if got := w.relevant(tt.evt); got != tt.want {
			t.Errorf("%s: relevant() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWatcher_Debounce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	schema := filepath.Join(dir, "cli.json")
	writeFile(t, schema, "{}")

	var (
		mu    sync.Mutex
		calls int
		got   []string
	)
	done := make(chan struct{}, 1)

	w, err := New(Config{
		Files:    []string{schema},
		Debounce: 100 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			got = append(got, changed...)
			select {
			case done <- struct{}{}:
			default:
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	// Let the event loop start before writing.
	time.Sleep(50 * time.Millisecond)
	for i := range 3 {
		writeFile(t, schema, `{"name": "v`+string(rune('0'+i))+`"}`)
		writeFile(t, filepath.Join(dir, "ignored.txt"), "x")
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
	time.Sleep(250 * time.Millisecond)

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("callbacks = %d, want 1", calls)
	}
	abs, _ := filepath.Abs(schema)
	if !slices.Equal(got, []string{abs}) {
		t.Errorf("changed = %v, want [%s]", got, abs)
	}
}

func TestWatcher_RunTwice(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := New(Config{Files: []string{filepath.Join(dir, "cli.cue")}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := w.Run(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestWatcher_RunWaitsForCallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	schema := filepath.Join(dir, "cli.yaml")
	writeFile(t, schema, "name: a")

	started := make(chan struct{})
	release := make(chan struct{})
	var (
		once     sync.Once
		finished atomic.Bool
	)

	w, err := New(Config{
		Files:    []string{schema},
		Debounce: 20 * time.Millisecond,
		OnChange: func(context.Context, []string) error {
			once.Do(func() { close(started) })
			<-release
			finished.Store(true)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	writeFile(t, schema, "name: b")

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for callback")
	}

	cancel()
	select {
	case err := <-errCh:
		t.Fatalf("Run() returned %v while the callback was still running", err)
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !finished.Load() {
		t.Error("Run() returned before the callback finished")
	}
}

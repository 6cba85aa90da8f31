package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
	ch    chan string
}

func newRecorder() *recorder { return &recorder{ch: make(chan string, 16)} }

func (r *recorder) callback(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
	r.ch <- path
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

func isLabel(path string) bool { return strings.HasSuffix(path, ".txt") }

func startWatcher(t *testing.T, dir string, debounce time.Duration, r *recorder) *FileWatcher {
	t.Helper()
	fw, err := NewFileWatcher(debounce, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	t.Cleanup(func() { fw.Close() })
	if err := fw.WatchDir(dir, isLabel, r.callback); err != nil {
		t.Fatalf("WatchDir: %v", err)
	}
	fw.Start()
	return fw
}

func TestWatchDirReportsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	r := newRecorder()
	startWatcher(t, dir, 20*time.Millisecond, r)

	if err := os.WriteFile(filepath.Join(dir, "image.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	label := filepath.Join(dir, "image.txt")
	if err := os.WriteFile(label, []byte("0 0.5 0.5 0.1 0.1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-r.ch:
		if got != label {
			t.Errorf("expected %s, got %s", label, got)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}

	time.Sleep(100 * time.Millisecond)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.paths {
		if !isLabel(p) {
			t.Errorf("filtered file reported: %s", p)
		}
	}
}

func TestWatchDirDebounces(t *testing.T) {
	dir := t.TempDir()
	r := newRecorder()
	startWatcher(t, dir, 300*time.Millisecond, r)

	label := filepath.Join(dir, "a.txt")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(label, []byte(strings.Repeat("0 0.5 0.5 0.1 0.1\n", i+1)), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-r.ch:
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
	time.Sleep(500 * time.Millisecond)
	if n := r.count(); n != 1 {
		t.Errorf("expected a single debounced callback, got %d", n)
	}
}

func TestCloseDropsPending(t *testing.T) {
	dir := t.TempDir()
	r := newRecorder()
	fw := startWatcher(t, dir, 200*time.Millisecond, r)

	if err := os.WriteFile(filepath.Join(dir, "b.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	time.Sleep(400 * time.Millisecond)
	if n := r.count(); n != 0 {
		t.Errorf("expected no callbacks after close, got %d", n)
	}
}

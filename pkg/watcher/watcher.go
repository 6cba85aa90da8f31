package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches directories for changes to selected files and
// triggers debounced callbacks
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	dirs     map[string]watch
	debounce time.Duration
	timers   map[string]*time.Timer
	logger   *slog.Logger
	closed   bool
}

type watch struct {
	filter   func(string) bool
	callback func(string)
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounce time.Duration, logger *slog.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &FileWatcher{
		watcher:  w,
		dirs:     make(map[string]watch),
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
		logger:   logger,
	}, nil
}

// WatchDir starts watching a directory. callback receives the absolute path
// of every changed file for which filter returns true; a nil filter accepts
// every file. Watching the same directory again replaces its callback.
func (fw *FileWatcher) WatchDir(dir string, filter func(string) bool, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", dir, err)
	}
	if _, exists := fw.dirs[absDir]; !exists {
		if err := fw.watcher.Add(absDir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", absDir, err)
		}
	}
	if filter == nil {
		filter = func(string) bool { return true }
	}
	fw.dirs[absDir] = watch{filter: filter, callback: callback}
	fw.logger.Debug("watching directory", "dir", absDir)
	return nil
}

// Start begins watching for file changes
func (fw *FileWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) ||
					event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
					fw.handleFileChange(event.Name)
				}

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fw.logger.Warn("watcher error", "error", err)
			}
		}
	}()
}

// handleFileChange handles a file change event with debouncing
func (fw *FileWatcher) handleFileChange(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closed {
		return
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return
	}
	w, exists := fw.dirs[filepath.Dir(absPath)]
	if !exists || !w.filter(absPath) {
		return
	}

	if timer, exists := fw.timers[absPath]; exists {
		timer.Stop()
	}
	fw.timers[absPath] = time.AfterFunc(fw.debounce, func() {
		fw.mu.Lock()
		delete(fw.timers, absPath)
		closed := fw.closed
		fw.mu.Unlock()
		if !closed {
			fw.logger.Debug("file changed", "path", absPath)
			w.callback(absPath)
		}
	})
}

// Close stops the watcher and drops pending notifications
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	fw.closed = true
	for _, timer := range fw.timers {
		timer.Stop()
	}
	fw.timers = make(map[string]*time.Timer)
	fw.mu.Unlock()
	return fw.watcher.Close()
}

// RemoveAll stops watching every directory
func (fw *FileWatcher) RemoveAll() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for dir := range fw.dirs {
		if err := fw.watcher.Remove(dir); err != nil {
			return err
		}
	}
	for _, timer := range fw.timers {
		timer.Stop()
	}

	fw.dirs = make(map[string]watch)
	fw.timers = make(map[string]*time.Timer)
	return nil
}

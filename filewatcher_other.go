// Completion: 100% - Platform-specific module complete
//go:build !linux && !darwin
// +build !linux,!darwin

package main

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// filewatcher_other.go - polling fallback for platforms without inotify or
// kqueue support. Checks modification times twice a second.

type FileWatcher struct {
	watched  map[string]time.Time // path -> last seen modification time
	mu       sync.Mutex
	debounce map[string]*time.Timer
	onChange func(string)
	stopChan chan struct{}
}

func NewFileWatcher(onChange func(string)) (*FileWatcher, error) {
	return &FileWatcher{
		watched:  make(map[string]time.Time),
		debounce: make(map[string]*time.Timer),
		onChange: onChange,
		stopChan: make(chan struct{}),
	}, nil
}

func (fw *FileWatcher) AddFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fw.mu.Lock()
	fw.watched[absPath] = time.Time{}
	fw.mu.Unlock()

	return nil
}

func (fw *FileWatcher) Watch() {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fw.checkFiles()
		case <-fw.stopChan:
			return
		}
	}
}

func (fw *FileWatcher) checkFiles() {
	fw.mu.Lock()
	paths := make([]string, 0, len(fw.watched))
	for path := range fw.watched {
		paths = append(paths, path)
	}
	fw.mu.Unlock()

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		fw.mu.Lock()
		lastMod := fw.watched[path]
		fw.watched[path] = info.ModTime()
		fw.mu.Unlock()

		if !lastMod.IsZero() && info.ModTime().After(lastMod) {
			fw.debouncedCallback(path)
		}
	}
}

func (fw *FileWatcher) debouncedCallback(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if timer, exists := fw.debounce[path]; exists {
		timer.Stop()
	}

	fw.debounce[path] = time.AfterFunc(500*time.Millisecond, func() {
		fw.onChange(path)
		fw.mu.Lock()
		delete(fw.debounce, path)
		fw.mu.Unlock()
	})
}

func (fw *FileWatcher) Close() error {
	close(fw.stopChan)
	return nil
}

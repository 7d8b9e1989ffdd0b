// Completion: 100% - Platform-specific module complete
//go:build linux
// +build linux

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// filewatcher_linux.go - inotify-based file watcher (Linux)
//
// The watch is placed on the parent directory rather than the file itself, so
// editors that save by rename (write a temp file, rename it over the target)
// do not silently orphan the watch.

type FileWatcher struct {
	fd       int
	watched  map[int]map[string]string // watch descriptor -> entry name -> full path
	mu       sync.Mutex
	debounce map[string]*time.Timer
	onChange func(string)
}

func NewFileWatcher(onChange func(string)) (*FileWatcher, error) {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("inotify_init failed: %v", err)
	}

	return &FileWatcher{
		fd:       fd,
		watched:  make(map[int]map[string]string),
		debounce: make(map[string]*time.Timer),
		onChange: onChange,
	}, nil
}

func (fw *FileWatcher) AddFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	wd, err := unix.InotifyAddWatch(fw.fd, dir,
		unix.IN_MODIFY|unix.IN_CLOSE_WRITE|unix.IN_MOVED_TO|unix.IN_CREATE)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %v", dir, err)
	}

	fw.mu.Lock()
	if fw.watched[wd] == nil {
		fw.watched[wd] = make(map[string]string)
	}
	fw.watched[wd][filepath.Base(absPath)] = absPath
	fw.mu.Unlock()

	return nil
}

func (fw *FileWatcher) Watch() {
	// Directory events carry the entry name after the fixed-size header
	buf := make([]byte, 64*(unix.SizeofInotifyEvent+unix.NAME_MAX+1))

	for {
		n, err := unix.Read(fw.fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				time.Sleep(100 * time.Millisecond)
				continue
			}
			if VerboseMode {
				fmt.Fprintf(os.Stderr, "Error reading inotify events: %v\n", err)
			}
			continue
		}

		offset := 0
		for offset+unix.SizeofInotifyEvent <= n {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			nameBytes := buf[offset+unix.SizeofInotifyEvent : offset+unix.SizeofInotifyEvent+int(event.Len)]
			offset += unix.SizeofInotifyEvent + int(event.Len)

			if event.Mask&(unix.IN_MODIFY|unix.IN_CLOSE_WRITE|unix.IN_MOVED_TO|unix.IN_CREATE) == 0 {
				continue
			}

			name := strings.TrimRight(string(nameBytes), "\x00")
			if name == "" {
				continue
			}

			fw.mu.Lock()
			path := ""
			if entries, ok := fw.watched[int(event.Wd)]; ok {
				path = entries[name]
			}
			fw.mu.Unlock()

			if path != "" {
				fw.debouncedCallback(path)
			}
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
	return unix.Close(fw.fd)
}

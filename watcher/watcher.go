// Package watcher reports changes to a fixed set of files.
package watcher

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports writes to a set of files. Editors often replace a file
// rather than write it, so the containing directories are watched and events
// are filtered by path.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	changed chan string
	done    chan struct{}
}

// New starts watching paths.
func New(paths []string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	sw := &Watcher{
		watcher: w,
		files:   make(map[string]bool),
		changed: make(chan string, 16),
		done:    make(chan struct{}),
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, err
		}
		sw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, err
		}
	}
	go sw.loop()
	return sw, nil
}

// loop only forwards paths; consumers poll Pending from their own goroutine.
func (sw *Watcher) loop() {
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !sw.files[abs] {
				continue
			}
			select {
			case sw.changed <- abs:
			default:
				// consumer is behind; drop
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Warning: file watcher: %v", err)
		case <-sw.done:
			return
		}
	}
}

// Pending returns the absolute paths changed since the last call, without
// blocking.
func (sw *Watcher) Pending() []string {
	seen := make(map[string]bool)
	var paths []string
	for {
		select {
		case p := <-sw.changed:
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		default:
			return paths
		}
	}
}

func (sw *Watcher) Close() {
	close(sw.done)
	sw.watcher.Close()
}


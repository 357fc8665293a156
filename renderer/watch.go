package renderer

import (
	"log"

	"github.com/richinsley/glbasics/watcher"
)

func (r *Renderer) watchPrograms() error {
	if len(r.programs) == 0 {
		return nil
	}
	var paths []string
	for _, fp := range r.programs {
		paths = append(paths, fp.files.Vertex, fp.files.Fragment)
	}
	w, err := watcher.New(paths)
	if err != nil {
		return err
	}
	r.watcher = w
	log.Printf("Watching %d shader files", len(paths))
	return nil
}

func (r *Renderer) stopWatching() {
	if r.watcher != nil {
		r.watcher.Close()
		r.watcher = nil
	}
}

// reloadChanged rebuilds every program whose files changed since the last
// frame. It runs on the render thread.
func (r *Renderer) reloadChanged() {
	if r.watcher == nil {
		return
	}
	for _, path := range r.watcher.Pending() {
		for _, fp := range r.programs {
			if fp.matches(path) {
				r.rebuild(fp)
			}
		}
	}
}

// In renderer/scene.go
package renderer

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/richinsley/glbasics/graphics"
	"github.com/richinsley/glbasics/options"
	"github.com/richinsley/glbasics/shader"
)

// Frame is what a scene gets to see of the current iteration of the loop.
type Frame struct {
	Time   float64 // seconds since the loop started
	Delta  float64 // seconds since the previous frame
	Width  int
	Height int
	ctx    graphics.Context
}

// KeyDown reports whether key is held this frame.
func (f Frame) KeyDown(key graphics.Key) bool {
	return f.ctx.KeyDown(key)
}

// Scene is one demo: it owns its geometry, textures and programs.
type Scene interface {
	// Update consumes input for the frame. It must not issue draw calls.
	Update(f Frame)
	Draw(f Frame)
	Destroy()
}

// Titles of the windows opened for each demo.
var sceneTitles = map[string]string{
	options.DemoTriangle: "LearnOpenGL",
	options.DemoTexture:  "Single Texture",
	options.DemoMix:      "Two Textures (Z:Filter, X:Wrap, Up/Down:Mix)",
}

// Title returns the window title for a demo.
func Title(demo string) string {
	if t, ok := sceneTitles[demo]; ok {
		return t
	}
	return demo
}

// LoadScene builds the named demo and makes it the scene drawn by Run.
// Any scene already loaded is destroyed first.
func (r *Renderer) LoadScene(demo string) error {
	if r.scene != nil {
		r.destroyScene()
	}

	var (
		scene Scene
		err   error
	)
	switch demo {
	case options.DemoTriangle:
		scene, err = newTriangleScene(r)
	case options.DemoTexture:
		scene, err = newTextureScene(r)
	case options.DemoMix:
		scene, err = newMixScene(r)
	default:
		return fmt.Errorf("unknown demo %q", demo)
	}
	if err != nil {
		r.releasePrograms()
		return fmt.Errorf("failed to load scene %s: %w", demo, err)
	}
	r.scene = scene
	r.sceneName = demo

	if r.opts.Watch {
		if err := r.watchPrograms(); err != nil {
			log.Printf("Warning: shader watching disabled: %v", err)
		}
	}
	log.Printf("Successfully loaded scene: %s", demo)
	return nil
}

func (r *Renderer) destroyScene() {
	log.Printf("Destroying scene: %s", r.sceneName)
	r.stopWatching()
	r.scene.Destroy()
	r.releasePrograms()
	r.scene = nil
}

// fileProgram is a program built from files on disk that can be rebuilt in
// place when the files change.
type fileProgram struct {
	files shader.Files
	prog  *shader.Program
	// bind refreshes whatever the scene derives from the program, such as
	// uniform locations and sampler units. It runs after every build.
	bind func(p *shader.Program)
}

func (fp *fileProgram) matches(path string) bool {
	return samePath(fp.files.Vertex, path) || samePath(fp.files.Fragment, path)
}

func samePath(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	if err1 != nil || err2 != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return aa == bb
}

// build compiles an inline program.
func (r *Renderer) build(src shader.Source) (*shader.Program, error) {
	return shader.Build(r.device, src, r.buildOpts...)
}

// buildFiles compiles a program from the shaders directory and keeps track
// of it for reloading and teardown.
func (r *Renderer) buildFiles(vertex, fragment string, bind func(p *shader.Program)) (*fileProgram, error) {
	files := shader.Files{
		Vertex:   filepath.Join(r.opts.ShadersDir, vertex),
		Fragment: filepath.Join(r.opts.ShadersDir, fragment),
	}
	prog, err := shader.BuildFiles(r.device, files, r.buildOpts...)
	if err != nil {
		return nil, err
	}
	fp := &fileProgram{files: files, prog: prog, bind: bind}
	bind(prog)
	r.programs = append(r.programs, fp)
	return fp, nil
}

// rebuild replaces fp's program with a fresh build of its files. A failed
// build leaves the running program untouched.
func (r *Renderer) rebuild(fp *fileProgram) {
	prog, err := shader.BuildFiles(r.device, fp.files, r.buildOpts...)
	var be *shader.BuildError
	if errors.As(err, &be) && be.Has(shader.TagSource) {
		// an editor may still be writing the file; the next write retries
		log.Printf("Shader reload deferred: %v", err)
		return
	}
	if err != nil {
		log.Printf("Shader reload failed, keeping previous program: %v", err)
		return
	}
	fp.prog.Delete(r.device)
	fp.prog = prog
	fp.bind(prog)
	log.Printf("Reloaded shaders %s, %s", fp.files.Vertex, fp.files.Fragment)
}

func (r *Renderer) releasePrograms() {
	for _, fp := range r.programs {
		fp.prog.Delete(r.device)
	}
	r.programs = nil
}

package renderer

import (
	"fmt"
	"log"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glbasics/graphics"
	"github.com/richinsley/glbasics/options"
	"github.com/richinsley/glbasics/shader"
	"github.com/richinsley/glbasics/translator"
	"github.com/richinsley/glbasics/watcher"
)

// Ensures gl.Init() is called only once.
var glInitOnce sync.Once

type resizeNotifier interface {
	SetResizeCallback(func(width, height int))
}

// Renderer drives one scene on one context: it polls input, updates and
// draws the scene and presents the frame until the context asks to close.
type Renderer struct {
	context   graphics.Context
	device    Device
	buildOpts []shader.Option
	opts      *options.Options

	scene     Scene
	sceneName string
	programs  []*fileProgram
	watcher   *watcher.Watcher
}

func NewRenderer(ctx graphics.Context, opts *options.Options) (*Renderer, error) {
	r := &Renderer{
		context: ctx,
		opts:    opts,
	}

	// Make the context current BEFORE initializing OpenGL.
	r.context.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	if opts.Translate {
		t, err := translator.New(ctx.IsGLES())
		if err != nil {
			return nil, err
		}
		r.buildOpts = append(r.buildOpts, shader.WithTranslator(t))
	}

	width, height := ctx.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))
	if rn, ok := ctx.(resizeNotifier); ok {
		rn.SetResizeCallback(func(width, height int) {
			gl.Viewport(0, 0, int32(width), int32(height))
		})
	}
	return r, nil
}

// Run is the frame loop. Escape or a close request ends it.
func (r *Renderer) Run() error {
	if r.scene == nil {
		return fmt.Errorf("no scene loaded")
	}

	captureFrame := -1
	if r.opts.Headless && r.opts.Screenshot != "" {
		captureFrame = r.opts.Frames - 1
	}

	start := r.context.Time()
	last := start
	for frame := 0; !r.context.ShouldClose(); frame++ {
		now := r.context.Time()
		if r.context.KeyDown(graphics.KeyEscape) {
			r.context.SetShouldClose(true)
		}
		r.reloadChanged()

		width, height := r.context.GetFramebufferSize()
		f := Frame{
			Time:   now - start,
			Delta:  now - last,
			Width:  width,
			Height: height,
			ctx:    r.context,
		}
		last = now

		r.scene.Update(f)
		r.scene.Draw(f)

		if frame == captureFrame {
			if err := Screenshot(width, height, r.opts.Screenshot); err != nil {
				return err
			}
			log.Printf("Wrote %s", r.opts.Screenshot)
		}
		r.context.EndFrame()
	}
	return nil
}

func (r *Renderer) Shutdown() {
	// The context itself will be shut down by the caller
	if r.scene != nil {
		r.destroyScene()
	}
}

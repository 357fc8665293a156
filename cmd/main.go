package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/richinsley/glbasics/glfwcontext"
	"github.com/richinsley/glbasics/graphics"
	"github.com/richinsley/glbasics/headless"
	"github.com/richinsley/glbasics/options"
	"github.com/richinsley/glbasics/renderer"
	"github.com/richinsley/glbasics/shader"
)

func init() {
	runtime.LockOSThread()
}

func newContext(opts *options.Options) (graphics.Context, func(), error) {
	if opts.Headless {
		ctx, err := headless.NewHeadless(opts.Width, opts.Height, opts.Frames)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create headless context: %w", err)
		}
		return ctx, func() {}, nil
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	ctx, err := glfwcontext.New(opts.Width, opts.Height, renderer.Title(opts.Demo))
	if err != nil {
		glfwcontext.TerminateGraphics()
		return nil, nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	return ctx, glfwcontext.TerminateGraphics, nil
}

func run(opts *options.Options) error {
	ctx, terminate, err := newContext(opts)
	if err != nil {
		return err
	}
	defer terminate()
	defer ctx.Shutdown()

	r, err := renderer.NewRenderer(ctx, opts)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	if err := r.LoadScene(opts.Demo); err != nil {
		return err
	}

	log.Printf("Starting %s render loop...", opts.Demo)
	return r.Run()
}

func main() {
	opts, fs, err := options.Parse(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}
	if opts.Help {
		fmt.Println("OpenGL basics: triangle, single texture and two-texture mixing demos")
		fs.PrintDefaults()
		return
	}

	if err := run(opts); err != nil {
		if shader.IsBuildError(err) {
			log.Fatalf("Shaders for %s did not build, see the diagnostics above: %v", opts.Demo, err)
		}
		log.Fatalf("%v", err)
	}
}

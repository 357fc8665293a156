package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glbasics/graphics"
)

var keyMap = map[graphics.Key]glfw.Key{
	graphics.KeyEscape: glfw.KeyEscape,
	graphics.KeyUp:     glfw.KeyUp,
	graphics.KeyDown:   glfw.KeyDown,
	graphics.KeyZ:      glfw.KeyZ,
	graphics.KeyX:      glfw.KeyX,
}

// Context is a visible GLFW window with a desktop GL 4.1 core context.
type Context struct {
	window   *glfw.Window
	onResize func(width, height int)
}

// New creates and initializes a new GLFW window and returns a Context object.
func New(width, height int, title string) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{window: win}
	win.SetFramebufferSizeCallback(c.glfwFramebufferSizeCallback)
	win.SetKeyCallback(c.glfwKeyCallback)
	return c, nil
}

// SetResizeCallback registers f to be called with the new framebuffer size
// whenever the window is resized.
func (c *Context) SetResizeCallback(f func(width, height int)) {
	c.onResize = f
}

func (c *Context) glfwFramebufferSizeCallback(w *glfw.Window, width, height int) {
	if c.onResize != nil {
		c.onResize(width, height)
	}
}

// glfwKeyCallback handles the default Escape key behavior.
func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
}

// KeyDown polls the last reported state of key.
func (c *Context) KeyDown(key graphics.Key) bool {
	k, ok := keyMap[key]
	if !ok {
		return false
	}
	return c.window.GetKey(k) == glfw.Press
}

func (c *Context) IsGLES() bool {
	// GLFW does not provide a direct way to check if the context is GLES.
	return false
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown only destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) SetShouldClose(v bool) {
	c.window.SetShouldClose(v)
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}

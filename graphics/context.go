package graphics

// Key names the keys the demos react to.
type Key int

const (
	KeyEscape Key = iota
	KeyUp
	KeyDown
	KeyZ
	KeyX
)

// Context defines the interface for an OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	SetShouldClose(bool)
	// EndFrame presents the frame and polls pending input events.
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// KeyDown reports whether key is held as of the last EndFrame.
	KeyDown(key Key) bool
	IsGLES() bool
}

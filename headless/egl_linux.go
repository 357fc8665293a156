//go:build linux

package headless

import (
	"errors"
	"fmt"
	"log"
	"time"
	"unsafe"

	"github.com/richinsley/glbasics/graphics"
)

/*
#cgo LDFLAGS: -lEGL -lGLESv2
#include <EGL/egl.h>
#include <EGL/eglext.h>

// Extension entry points are looked up at runtime; cgo cannot call them
// through the pointers directly.
static PFNEGLQUERYDEVICESEXTPROC eglQueryDevicesEXT_ptr = NULL;
static PFNEGLGETPLATFORMDISPLAYEXTPROC eglGetPlatformDisplayEXT_ptr = NULL;

static void initialize_egl_extension_pointers() {
    eglQueryDevicesEXT_ptr = (PFNEGLQUERYDEVICESEXTPROC) eglGetProcAddress("eglQueryDevicesEXT");
    eglGetPlatformDisplayEXT_ptr = (PFNEGLGETPLATFORMDISPLAYEXTPROC) eglGetProcAddress("eglGetPlatformDisplayEXT");
}

static EGLDisplay get_platform_display(EGLenum platform, void *native_display, const EGLint *attrib_list) {
    if (eglGetPlatformDisplayEXT_ptr) {
        return eglGetPlatformDisplayEXT_ptr(platform, native_display, attrib_list);
    }
    return EGL_NO_DISPLAY;
}

static EGLBoolean query_devices(EGLint max_devices, EGLDeviceEXT *devices, EGLint *num_devices) {
    if (eglQueryDevicesEXT_ptr) {
        return eglQueryDevicesEXT_ptr(max_devices, devices, num_devices);
    }
    return EGL_FALSE;
}
*/
import "C"

var (
	noDisplay = C.EGLDisplay(C.EGL_NO_DISPLAY)
	noSurface = C.EGLSurface(C.EGL_NO_SURFACE)
	noContext = C.EGLContext(C.EGL_NO_CONTEXT)
)

// Headless is an EGL pbuffer context. It has no window and no keyboard; it
// asks to close once it has presented a fixed number of frames.
type Headless struct {
	display C.EGLDisplay
	context C.EGLContext
	surface C.EGLSurface

	width, height int
	frames        int
	presented     int
	closing       bool
	start         time.Time
}

// candidateDisplays lists the displays of every EGL device, then the
// default display.
func candidateDisplays() []C.EGLDisplay {
	C.initialize_egl_extension_pointers()

	var displays []C.EGLDisplay
	var n C.EGLint
	if C.query_devices(0, nil, &n) == C.EGL_TRUE && n > 0 {
		devices := make([]C.EGLDeviceEXT, n)
		if C.query_devices(n, &devices[0], &n) == C.EGL_TRUE {
			for _, dev := range devices[:n] {
				d := C.get_platform_display(C.EGL_PLATFORM_DEVICE_EXT, unsafe.Pointer(dev), nil)
				if d != noDisplay {
					displays = append(displays, d)
				}
			}
		}
	}
	if d := C.eglGetDisplay(C.EGLNativeDisplayType(C.EGL_DEFAULT_DISPLAY)); d != noDisplay {
		displays = append(displays, d)
	}
	return displays
}

// openDisplay returns the first candidate display that initializes.
func openDisplay() (C.EGLDisplay, error) {
	for _, d := range candidateDisplays() {
		var major, minor C.EGLint
		if C.eglInitialize(d, &major, &minor) == C.EGL_TRUE {
			log.Printf("EGL %d.%d initialized", major, minor)
			return d, nil
		}
	}
	return noDisplay, errors.New("no EGL display could be initialized")
}

// NewHeadless creates a width x height pbuffer and makes its GLES 3 context
// current. frames is the number of EndFrame calls after which ShouldClose
// reports true.
func NewHeadless(width, height, frames int) (graphics.Context, error) {
	display, err := openDisplay()
	if err != nil {
		return nil, err
	}
	h := &Headless{
		display: display,
		surface: noSurface,
		context: noContext,
		width:   width,
		height:  height,
		frames:  frames,
	}
	if err := h.createSurface(); err != nil {
		h.Shutdown()
		return nil, err
	}
	h.start = time.Now()
	return h, nil
}

func (h *Headless) createSurface() error {
	configAttribs := []C.EGLint{
		C.EGL_SURFACE_TYPE, C.EGL_PBUFFER_BIT,
		C.EGL_RED_SIZE, 8,
		C.EGL_GREEN_SIZE, 8,
		C.EGL_BLUE_SIZE, 8,
		C.EGL_ALPHA_SIZE, 8,
		C.EGL_RENDERABLE_TYPE, C.EGL_OPENGL_ES3_BIT,
		C.EGL_NONE,
	}
	var config C.EGLConfig
	var numConfig C.EGLint
	if C.eglChooseConfig(h.display, &configAttribs[0], &config, 1, &numConfig) == C.EGL_FALSE || numConfig == 0 {
		return errors.New("no EGL config with an RGBA8 pbuffer and GLES 3")
	}

	pbufferAttribs := []C.EGLint{
		C.EGL_WIDTH, C.EGLint(h.width),
		C.EGL_HEIGHT, C.EGLint(h.height),
		C.EGL_NONE,
	}
	h.surface = C.eglCreatePbufferSurface(h.display, config, &pbufferAttribs[0])
	if h.surface == noSurface {
		return fmt.Errorf("failed to create %dx%d pbuffer surface", h.width, h.height)
	}

	contextAttribs := []C.EGLint{C.EGL_CONTEXT_CLIENT_VERSION, 3, C.EGL_NONE}
	h.context = C.eglCreateContext(h.display, config, noContext, &contextAttribs[0])
	if h.context == noContext {
		return errors.New("failed to create GLES 3 context")
	}
	if C.eglMakeCurrent(h.display, h.surface, h.surface, h.context) == C.EGL_FALSE {
		return errors.New("failed to make EGL context current")
	}
	return nil
}

func (h *Headless) Shutdown() {
	if h.display == noDisplay {
		return
	}
	C.eglMakeCurrent(h.display, noSurface, noSurface, noContext)
	if h.context != noContext {
		C.eglDestroyContext(h.display, h.context)
	}
	if h.surface != noSurface {
		C.eglDestroySurface(h.display, h.surface)
	}
	C.eglTerminate(h.display)
	h.display = noDisplay
}

func (h *Headless) MakeCurrent() {
	C.eglMakeCurrent(h.display, h.surface, h.surface, h.context)
}

func (h *Headless) ShouldClose() bool {
	return h.closing || h.presented >= h.frames
}

func (h *Headless) SetShouldClose(v bool) {
	h.closing = v
}

func (h *Headless) EndFrame() {
	C.eglSwapBuffers(h.display, h.surface)
	h.presented++
}

func (h *Headless) GetFramebufferSize() (int, int) {
	return h.width, h.height
}

// Time advances in real time so animated demos still move between frames.
func (h *Headless) Time() float64 {
	return time.Since(h.start).Seconds()
}

func (h *Headless) KeyDown(graphics.Key) bool {
	return false
}

func (h *Headless) IsGLES() bool {
	return true
}

package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glbasics/inputs"
)

// Screenshot reads the current framebuffer and writes it to path as a PNG.
func Screenshot(width, height int, path string) error {
	// drop errors raised by earlier frames so only the readback is checked
	for i := 0; i < 16 && gl.GetError() != gl.NO_ERROR; i++ {
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("glReadPixels failed: 0x%x", e)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create screenshot: %w", err)
	}

	// rows come back bottom first
	if err := png.Encode(f, inputs.FlipVertical(img)); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode screenshot: %w", err)
	}
	return f.Close()
}

package renderer

import (
	"image/color"
	"log"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glbasics/controls"
	"github.com/richinsley/glbasics/inputs"
)

// Texture is a mipmapped 2D texture.
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// NewTexture uploads img and applies the sampling parameters in s.
func NewTexture(img *inputs.Image, s controls.State) *Texture {
	t := &Texture{Width: img.Width, Height: img.Height}

	gl.GenTextures(1, &t.ID)
	t.ApplySampling(s)

	// Pixels are always expanded to RGBA, and GLES only accepts RGBA8
	// storage for RGBA/UNSIGNED_BYTE uploads.
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(img.Width),
		int32(img.Height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// LoadTexture reads an image file, flipped for GL, and uploads it. A file
// that cannot be loaded is replaced by a checkerboard so the demo still runs.
func LoadTexture(path string, s controls.State) *Texture {
	img, err := inputs.Load(path, true)
	if err != nil {
		log.Printf("%v; substituting a checkerboard", err)
		img = inputs.Checkerboard(256, 8,
			color.RGBA{R: 255, G: 0, B: 255, A: 255},
			color.RGBA{R: 32, G: 32, B: 32, A: 255})
	}
	t := NewTexture(img, s)
	log.Printf("Loaded texture %s (%dx%d)", filepath.Base(path), t.Width, t.Height)
	return t
}

// ApplySampling sets the wrap and filter parameters of the texture.
func (t *Texture) ApplySampling(s controls.State) {
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	wrap := getWrapMode(s.Wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, getFilterMode(s.MinFilter()))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, getFilterMode(s.MagFilter()))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

func (t *Texture) Destroy() {
	gl.DeleteTextures(1, &t.ID)
}

// Helper to convert a wrap mode to its OpenGL constant.
func getWrapMode(wrap controls.WrapMode) int32 {
	switch wrap {
	case controls.MirroredRepeat:
		return gl.MIRRORED_REPEAT
	case controls.ClampToEdge:
		return gl.CLAMP_TO_EDGE
	default:
		return gl.REPEAT
	}
}

// Helper to convert a filter name to its OpenGL constant.
func getFilterMode(filter string) int32 {
	switch filter {
	case controls.FilterLinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	case controls.FilterNearestMipmapNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case controls.FilterNearest:
		return gl.NEAREST
	default:
		return gl.LINEAR
	}
}

// inputs/image.go
package inputs

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register decoders for image.Decode
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Image is decoded pixel data ready for upload as a 2D texture. Pixels are
// always tightly packed RGBA with straight alpha, bottom row first when
// flipped.
type Image struct {
	Width  int
	Height int
	// Channels is the number of channels in the source file: 3 for opaque
	// formats, 4 when the file carries alpha.
	Channels int
	Pix      []byte
}

// Load decodes the image at path. When flip is set the rows are reversed so
// that the first row is the bottom of the picture, which is what GL expects.
func Load(path string, flip bool) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load fail: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load fail: %s: %w", path, err)
	}
	return FromImage(img, format, flip), nil
}

// FromImage converts any decoded image into an Image. Alpha stays straight
// (not premultiplied), as the image file stores it.
func FromImage(img image.Image, format string, flip bool) *Image {
	nrgba := image.NewNRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, img.Bounds().Min, draw.Src)
	pix := nrgba.Pix
	if flip {
		pix = vflip(pix, nrgba.Stride, nrgba.Rect.Dy())
	}
	return &Image{
		Width:    nrgba.Rect.Dx(),
		Height:   nrgba.Rect.Dy(),
		Channels: channelCount(img, format),
		Pix:      pix,
	}
}

// FlipVertical returns a copy of src with its rows in reverse order. GL
// stores images bottom row first, image files top row first.
func FlipVertical(src *image.RGBA) *image.RGBA {
	flipped := image.NewRGBA(src.Bounds())
	flipped.Pix = vflip(src.Pix, src.Stride, src.Bounds().Dy())
	flipped.Stride = src.Stride
	return flipped
}

// vflip returns a copy of pix with its height rows of stride bytes reversed.
func vflip(pix []byte, stride, height int) []byte {
	flipped := make([]byte, len(pix))

	// This is faster than calling At/Set for each pixel
	for y := 0; y < height; y++ {
		srcRow := pix[((height-1)-y)*stride:]
		copy(flipped[y*stride:(y+1)*stride], srcRow[:stride])
	}
	return flipped
}

// channelCount reports 3 for formats without alpha and 4 otherwise.
func channelCount(img image.Image, format string) int {
	if format == "jpeg" {
		return 3
	}
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model, color.YCbCrModel, color.CMYKModel:
		return 3
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

// Checkerboard generates a size x size RGBA image of cells x cells squares,
// alternating between a and b. It stands in for images that fail to load.
func Checkerboard(size, cells int, a, b color.RGBA) *Image {
	if cells < 1 {
		cells = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := size / cells
	if cell < 1 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return &Image{Width: size, Height: size, Channels: 4, Pix: img.Pix}
}

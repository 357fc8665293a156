//go:build !linux

package headless

import (
	"fmt"

	"github.com/richinsley/glbasics/graphics"
)

func NewHeadless(width, height, frames int) (graphics.Context, error) {
	return nil, fmt.Errorf("egl headless rendering is not supported on this platform")
}

// Package controls holds the keyboard-driven sampling state of the texture
// mixing demo.
package controls

import "fmt"

// WrapMode is how a texture is sampled outside [0,1].
type WrapMode int

const (
	Repeat WrapMode = iota
	MirroredRepeat
	ClampToEdge

	numWrapModes = 3
)

func (w WrapMode) String() string {
	switch w {
	case Repeat:
		return "REPEAT"
	case MirroredRepeat:
		return "MIRRORED_REPEAT"
	case ClampToEdge:
		return "CLAMP_TO_EDGE"
	default:
		return fmt.Sprintf("WrapMode(%d)", int(w))
	}
}

// Next returns the wrap mode after w, cycling back to Repeat.
func (w WrapMode) Next() WrapMode {
	return WrapMode((int(w) + 1) % numWrapModes)
}

// Filter names, matching the GL enumerants they select.
const (
	FilterLinear               = "LINEAR"
	FilterNearest              = "NEAREST"
	FilterLinearMipmapLinear   = "LINEAR_MIPMAP_LINEAR"
	FilterNearestMipmapNearest = "NEAREST_MIPMAP_NEAREST"
)

// State is the sampling configuration read by the draw step every frame.
type State struct {
	Wrap         WrapMode
	LinearFilter bool
	// Mix is the blend weight of the second texture, always in [0,1].
	Mix float32
}

// DefaultState is the state the mixing demo starts in.
func DefaultState() State {
	return State{Wrap: Repeat, LinearFilter: true, Mix: 0.2}
}

// FilterName is the short name of the current filter, LINEAR or NEAREST.
func (s State) FilterName() string {
	if s.LinearFilter {
		return FilterLinear
	}
	return FilterNearest
}

// MinFilter is the minification filter for mipmapped textures.
func (s State) MinFilter() string {
	if s.LinearFilter {
		return FilterLinearMipmapLinear
	}
	return FilterNearestMipmapNearest
}

// MagFilter is the magnification filter.
func (s State) MagFilter() string {
	return s.FilterName()
}

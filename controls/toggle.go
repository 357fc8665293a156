package controls

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MixRate is how fast the mix weight moves per second while Up or Down is held.
const MixRate = 0.7

// Keys is the level of every control key in one frame.
type Keys struct {
	Filter bool
	Wrap   bool
	Up     bool
	Down   bool
}

// Effects describes what an update changed beyond the returned state.
type Effects struct {
	// Resample is set when the wrap or filter mode changed and the sampling
	// parameters of every bound texture must be applied again.
	Resample bool
	// Changes are printable descriptions of the toggles that fired.
	Changes []string
}

// Toggle turns per-frame key levels into state transitions. Filter and Wrap
// are edge triggered; Up and Down are level triggered.
//
// The zero value is ready to use and treats every key as released in the
// previous frame.
type Toggle struct {
	prevFilter bool
	prevWrap   bool
}

// Update advances s by one frame of dt seconds.
func (t *Toggle) Update(s State, k Keys, dt float64) (State, Effects) {
	var fx Effects

	if k.Filter && !t.prevFilter {
		s.LinearFilter = !s.LinearFilter
		fx.Resample = true
		fx.Changes = append(fx.Changes, "Filter: "+s.FilterName())
	}
	if k.Wrap && !t.prevWrap {
		s.Wrap = s.Wrap.Next()
		fx.Resample = true
		fx.Changes = append(fx.Changes, "Wrap: "+s.Wrap.String())
	}
	t.prevFilter = k.Filter
	t.prevWrap = k.Wrap

	step := float32(MixRate * dt)
	if k.Up {
		s.Mix += step
	}
	if k.Down {
		s.Mix -= step
	}
	s.Mix = mgl32.Clamp(s.Mix, 0, 1)
	if s.Wrap < 0 || s.Wrap >= numWrapModes {
		s.Wrap = Repeat
	}

	return s, fx
}

package scroll

import (
	"github.com/charmbracelet/harmonica"

	"github.com/ivlev/storyscroll/internal/vmath"
)

// Scrub makes a displayed progress value chase the scroll position with a
// critically damped spring, the way a scrubbed timeline lags the scrollbar.
// The zero value passes progress through unchanged.
type Scrub struct {
	spring  harmonica.Spring
	enabled bool
}

// NewScrub builds a Scrub stepping at fps frames per second that settles in
// roughly lag seconds. lag <= 0 disables smoothing.
func NewScrub(fps int, lag float64) Scrub {
	if lag <= 0 || fps <= 0 {
		return Scrub{}
	}
	return Scrub{
		spring:  harmonica.NewSpring(harmonica.FPS(fps), 4.0/lag, 1.0),
		enabled: true,
	}
}

// Enabled reports whether the scrub smooths at all
func (s Scrub) Enabled() bool {
	return s.enabled
}

// Step advances one frame toward target and returns the new position and
// velocity. The position stays within [0, 1].
func (s Scrub) Step(pos, vel, target float64) (float64, float64) {
	if !s.enabled {
		return target, 0
	}
	pos, vel = s.spring.Update(pos, vel, target)
	if pos < 0 || pos > 1 {
		pos, vel = vmath.Clamp01(pos), 0
	}
	return pos, vel
}

package renderer

import (
	"math"

	"github.com/ivlev/storyscroll/internal/director"
	"github.com/ivlev/storyscroll/internal/vmath"
)

// Ambient sums oscillators into a per-axis offset at elapsed seconds.
// It depends on time only, so idle motion continues while the page is still.
func Ambient(oscillators []director.Oscillator, elapsed float64) vmath.Vec3 {
	var out vmath.Vec3
	for _, o := range oscillators {
		v := Oscillate(o, elapsed)
		switch o.Axis {
		case "x":
			out.X += v
		case "y":
			out.Y += v
		case "z":
			out.Z += v
		}
	}
	return out
}

// Oscillate evaluates one wave, amplitude*sin(elapsed*frequency+phase).
// A cos wave is the same wave shifted by pi/2.
func Oscillate(o director.Oscillator, elapsed float64) float64 {
	phase := o.Phase
	if o.Wave == "cos" {
		phase += math.Pi / 2
	}
	return vmath.Wave(elapsed, o.Amplitude, o.Frequency, phase)
}

package scene

import (
	"math"

	"github.com/ivlev/storyscroll/internal/director"
	"github.com/ivlev/storyscroll/internal/renderer"
)

// AnimateLight evaluates a light's orbit, pulse and bob at elapsed seconds
func AnimateLight(l director.Light, elapsed float64) LightState {
	pos := l.Position
	if o := l.Orbit; o != nil {
		a := elapsed*o.Speed + o.Phase
		pos.X = math.Sin(a) * o.Radius
		pos.Z = math.Cos(a) * o.Radius
		if o.Reverse {
			pos.Z = -pos.Z
		}
	}
	if l.Bob != nil {
		pos.Y = l.Position.Y + renderer.Oscillate(*l.Bob, elapsed)
	}
	intensity := l.Intensity
	if l.Pulse != nil {
		intensity += renderer.Oscillate(*l.Pulse, elapsed)
	}

	c := ParseColor(l.Color)
	return LightState{
		Kind:       l.Kind,
		Position:   pos,
		Color:      c,
		Hex:        c.Hex(),
		Intensity:  math.Max(0, intensity),
		Angle:      l.Angle,
		Penumbra:   l.Penumbra,
		Distance:   l.Distance,
		Decay:      l.Decay,
		CastShadow: l.CastShadow,
	}
}

package scene

import (
	"github.com/ivlev/storyscroll/internal/director"
	"github.com/ivlev/storyscroll/internal/effects"
	"github.com/ivlev/storyscroll/internal/renderer"
	"github.com/ivlev/storyscroll/internal/source"
)

// Composer builds frames for one section. It holds the section and its
// generated particle field and nothing that changes between frames.
type Composer struct {
	sec       director.Section
	particles *ParticleField
	fog       *FogState
}

// NewComposer prepares a composer for sec
func NewComposer(sec director.Section) *Composer {
	c := &Composer{sec: sec}
	if sec.Particles != nil && sec.Particles.Count > 0 {
		c.particles = NewParticleField(*sec.Particles)
	}
	if sec.Fog != nil {
		col := ParseColor(sec.Fog.Color)
		c.fog = &FogState{Color: col, Hex: col.Hex(), Near: sec.Fog.Near, Far: sec.Fog.Far}
	}
	return c
}

// Compose returns the frame for state and block styles at elapsed seconds.
// model may be nil while the asset is loading.
func (c *Composer) Compose(state renderer.State, blocks []effects.BlockStyle, elapsed float64, model *source.Model) Frame {
	f := Frame{
		Section:     c.sec.ID,
		Index:       state.Frame,
		Elapsed:     elapsed,
		Progress:    state.Progress,
		Phase:       state.Phase,
		Environment: c.sec.Environment,
		Background:  c.sec.Background,
		Camera:      Camera{Position: state.Camera, LookAt: state.LookAt, FOV: state.FOV},
		Object: ObjectState{
			Path:     c.sec.Model.Path,
			Model:    model,
			Loaded:   model != nil,
			Position: state.Object.Position,
			Rotation: state.Object.Rotation,
			Scale:    state.Object.Scale,
		},
		Fog: c.fog,
	}

	f.Lights = make([]LightState, len(c.sec.Lights))
	for i, l := range c.sec.Lights {
		f.Lights[i] = AnimateLight(l, elapsed)
	}
	if c.particles != nil {
		f.Particles = c.particles.At(elapsed)
	}

	f.Blocks = make([]Block, len(c.sec.Stories))
	for i, story := range c.sec.Stories {
		f.Blocks[i].Story = story
		if i < len(blocks) {
			f.Blocks[i].Style = blocks[i]
		}
	}
	return f
}

// Package scene assembles the data-only frame descriptor a renderer draws.
package scene

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ivlev/storyscroll/internal/director"
	"github.com/ivlev/storyscroll/internal/effects"
	"github.com/ivlev/storyscroll/internal/source"
	"github.com/ivlev/storyscroll/internal/vmath"
)

// Frame is everything a renderer needs to draw one section at one instant
type Frame struct {
	Section     string         `yaml:"section"`
	Index       int            `yaml:"frame"`
	Elapsed     float64        `yaml:"elapsed"`
	Progress    float64        `yaml:"progress"`
	Phase       int            `yaml:"phase"`
	Environment string         `yaml:"environment,omitempty"`
	Background  string         `yaml:"background,omitempty"`
	Camera      Camera         `yaml:"camera"`
	Lights      []LightState   `yaml:"lights"`
	Object      ObjectState    `yaml:"object"`
	Particles   *ParticleField `yaml:"particles,omitempty"`
	Fog         *FogState      `yaml:"fog,omitempty"`
	Blocks      []Block        `yaml:"blocks"`
}

// LightState is a light after animation
type LightState struct {
	Kind       string         `yaml:"kind"`
	Position   vmath.Vec3     `yaml:"position"`
	Color      colorful.Color `yaml:"-"`
	Hex        string         `yaml:"color"`
	Intensity  float64        `yaml:"intensity"`
	Angle      float64        `yaml:"angle,omitempty"`
	Penumbra   float64        `yaml:"penumbra,omitempty"`
	Distance   float64        `yaml:"distance,omitempty"`
	Decay      float64        `yaml:"decay,omitempty"`
	CastShadow bool           `yaml:"cast_shadow,omitempty"`
}

// ObjectState is the model and its transform. Model is nil until loaded.
type ObjectState struct {
	Path     string        `yaml:"path"`
	Model    *source.Model `yaml:"-"`
	Loaded   bool          `yaml:"loaded"`
	Position vmath.Vec3    `yaml:"position"`
	Rotation vmath.Vec3    `yaml:"rotation"`
	Scale    float64       `yaml:"scale"`
}

// FogState fades distant geometry into Color
type FogState struct {
	Color colorful.Color `yaml:"-"`
	Hex   string         `yaml:"color"`
	Near  float64        `yaml:"near"`
	Far   float64        `yaml:"far"`
}

// Factor returns how much of the fog colour covers a point at distance d
func (f *FogState) Factor(d float64) float64 {
	if f == nil || f.Far <= f.Near {
		return 0
	}
	return vmath.Clamp01((d - f.Near) / (f.Far - f.Near))
}

// Block is one overlay story with its computed style
type Block struct {
	Story director.Story     `yaml:"story"`
	Style effects.BlockStyle `yaml:"style"`
}

// Visible returns the blocks with non-zero opacity
func (f *Frame) Visible() []Block {
	var out []Block
	for _, b := range f.Blocks {
		if b.Style.Opacity > 0 {
			out = append(out, b)
		}
	}
	return out
}

// ParseColor reads a #rrggbb colour. Empty or invalid input is white.
func ParseColor(hex string) colorful.Color {
	if hex == "" {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return c
}

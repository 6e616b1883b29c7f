package scene

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ivlev/storyscroll/internal/director"
	"github.com/ivlev/storyscroll/internal/vmath"
)

// ParticleField is a point cloud. Points and colours are fixed at
// generation; only the field rotation changes over time.
type ParticleField struct {
	Count    int              `yaml:"count"`
	Size     float64          `yaml:"size"`
	Opacity  float64          `yaml:"opacity"`
	Rotation vmath.Vec3       `yaml:"rotation"`
	Points   []vmath.Vec3     `yaml:"-"`
	Colors   []colorful.Color `yaml:"-"`

	spinRate      float64
	tilt          float64
	tiltFrequency float64
}

// NewParticleField generates a seeded field: positions uniform in a cube
// of side Spread, hues in [Hue, Hue+HueRange)
func NewParticleField(p director.Particles) *ParticleField {
	r := rand.New(rand.NewSource(p.Seed))
	f := &ParticleField{
		Count:         p.Count,
		Size:          p.Size,
		Opacity:       p.Opacity,
		Points:        make([]vmath.Vec3, p.Count),
		Colors:        make([]colorful.Color, p.Count),
		spinRate:      p.SpinRate,
		tilt:          p.Tilt,
		tiltFrequency: p.TiltFrequency,
	}
	for i := 0; i < p.Count; i++ {
		f.Points[i] = vmath.V3(
			(r.Float64()-0.5)*p.Spread,
			(r.Float64()-0.5)*p.Spread,
			(r.Float64()-0.5)*p.Spread,
		)
		hue := math.Mod(p.Hue+r.Float64()*p.HueRange, 1)
		f.Colors[i] = colorful.Hsl(hue*360, p.Saturation, p.Lightness).Clamped()
	}
	return f
}

// At returns a copy of the field rotated for elapsed seconds. Points and
// colours are shared with the receiver.
func (f *ParticleField) At(elapsed float64) *ParticleField {
	out := *f
	out.Rotation = vmath.V3(math.Sin(elapsed*f.tiltFrequency)*f.tilt, elapsed*f.spinRate, 0)
	return &out
}

// WorldPoint returns point i with the field rotation applied
func (f *ParticleField) WorldPoint(i int) vmath.Vec3 {
	return f.Points[i].Euler(f.Rotation)
}

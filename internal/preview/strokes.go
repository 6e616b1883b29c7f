package preview

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// strokes accumulates filled polygons into one coverage mask
type strokes struct {
	z     *vector.Rasterizer
	empty bool
}

func newStrokes(w, h int) *strokes {
	return &strokes{z: vector.NewRasterizer(w, h), empty: true}
}

// line adds a segment of the given width as a quad
func (s *strokes) line(a, b [2]float64, width float64) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	s.z.MoveTo(float32(a[0]+nx), float32(a[1]+ny))
	s.z.LineTo(float32(b[0]+nx), float32(b[1]+ny))
	s.z.LineTo(float32(b[0]-nx), float32(b[1]-ny))
	s.z.LineTo(float32(a[0]-nx), float32(a[1]-ny))
	s.z.ClosePath()
	s.empty = false
}

// disc adds a circle approximated by 32 segments
func (s *strokes) disc(cx, cy, r float64) {
	const n = 32
	for i := 0; i <= n; i++ {
		a := float64(i) / n * 2 * math.Pi
		x, y := float32(cx+math.Cos(a)*r), float32(cy+math.Sin(a)*r)
		if i == 0 {
			s.z.MoveTo(x, y)
		} else {
			s.z.LineTo(x, y)
		}
	}
	s.z.ClosePath()
	s.empty = false
}

// rect adds an axis-aligned rectangle
func (s *strokes) rect(r image.Rectangle) {
	s.z.MoveTo(float32(r.Min.X), float32(r.Min.Y))
	s.z.LineTo(float32(r.Max.X), float32(r.Min.Y))
	s.z.LineTo(float32(r.Max.X), float32(r.Max.Y))
	s.z.LineTo(float32(r.Min.X), float32(r.Max.Y))
	s.z.ClosePath()
	s.empty = false
}

func (s *strokes) draw(dst draw.Image, c color.Color) {
	if s.empty {
		return
	}
	s.z.DrawOp = draw.Over
	s.z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

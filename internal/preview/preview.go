// Package preview rasterizes frame descriptors into flat images: projected
// model bounds, lights, particles and the story overlay. It stands in for a
// real 3D renderer in exports and the desktop viewer.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/transform"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"

	"github.com/ivlev/storyscroll/internal/director"
	"github.com/ivlev/storyscroll/internal/scene"
	"github.com/ivlev/storyscroll/internal/source"
	"github.com/ivlev/storyscroll/internal/system"
	"github.com/ivlev/storyscroll/internal/vmath"
)

const defaultBackground = "#0a0e27"

// Options tune a Rasterizer
type Options struct {
	Glow         float64                // Gaussian radius of the light glow, 0 disables it
	Backdrops    *source.Backdrops      // Environment images; nil uses gradients
	CallToAction *director.CallToAction // Drawn as a QR badge when set
	Pool         *system.ImagePool      // Canvas pool; nil uses the shared pool
}

// Rasterizer draws frames of one size. It is not safe for concurrent use;
// give each goroutine its own.
type Rasterizer struct {
	width, height int
	opts          Options

	title, body font.Face
	badge       image.Image
	backdrops   map[string]*image.RGBA
}

// NewRasterizer prepares fonts and the badge for width x height frames
func NewRasterizer(width, height int, opts Options) (*Rasterizer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	title, body, err := loadFaces(height)
	if err != nil {
		return nil, err
	}
	r := &Rasterizer{
		width:     width,
		height:    height,
		opts:      opts,
		title:     title,
		body:      body,
		backdrops: make(map[string]*image.RGBA),
	}
	if cta := opts.CallToAction; cta != nil && cta.URL != "" {
		if r.badge, err = qrBadge(cta.URL, height/5); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Size returns the frame size
func (r *Rasterizer) Size() (int, int) {
	return r.width, r.height
}

func (r *Rasterizer) canvas() *image.RGBA {
	rect := image.Rect(0, 0, r.width, r.height)
	if r.opts.Pool != nil {
		return r.opts.Pool.Get(rect)
	}
	return system.GetImage(rect)
}

// Release returns a rendered image to the pool
func (r *Rasterizer) Release(img *image.RGBA) {
	if r.opts.Pool != nil {
		r.opts.Pool.Put(img)
		return
	}
	system.PutImage(img)
}

// Render draws f. withBadge adds the call-to-action badge, faded in over
// the last fifth of the section. The result belongs to the caller until it
// is handed back with Release.
func (r *Rasterizer) Render(f scene.Frame, withBadge bool) *image.RGBA {
	dst := r.canvas()
	aspect := float64(r.width) / float64(r.height)

	r.drawBackground(dst, f)
	r.drawParticles(dst, f, aspect)
	r.drawObject(dst, f, aspect)
	r.drawGlow(dst, f, aspect)
	r.drawBlocks(dst, f)
	if withBadge && r.badge != nil {
		r.drawBadge(dst, vmath.Clamp01((f.Progress-0.8)/0.2))
	}
	return dst
}

func (r *Rasterizer) drawBackground(dst *image.RGBA, f scene.Frame) {
	if img := r.backdrop(f.Environment); img != nil {
		draw.Draw(dst, dst.Rect, img, image.Point{}, draw.Src)
		return
	}
	hex := f.Background
	if hex == "" && f.Fog != nil {
		hex = f.Fog.Hex
	}
	if hex == "" {
		hex = defaultBackground
	}
	top := scene.ParseColor(hex)
	bottom := top.BlendLab(colorful.Color{}, 0.6).Clamped()
	for y := 0; y < r.height; y++ {
		c := top.BlendLab(bottom, float64(y)/float64(r.height)).Clamped()
		draw.Draw(dst, image.Rect(0, y, r.width, y+1), image.NewUniform(toRGBA(c, 1)), image.Point{}, draw.Src)
	}
}

func (r *Rasterizer) backdrop(name string) *image.RGBA {
	if name == "" || r.opts.Backdrops == nil {
		return nil
	}
	if img, ok := r.backdrops[name]; ok {
		return img
	}
	src, err := r.opts.Backdrops.Lookup(name)
	var img *image.RGBA
	if err == nil && src != nil {
		img = transform.Resize(src, r.width, r.height, transform.Linear)
	}
	r.backdrops[name] = img
	return img
}

func (r *Rasterizer) drawParticles(dst *image.RGBA, f scene.Frame, aspect float64) {
	pf := f.Particles
	if pf == nil {
		return
	}
	size := int(math.Max(1, pf.Size*float64(r.height)/20))
	for i := range pf.Points {
		x, y, depth, ok := f.Camera.Project(pf.WorldPoint(i), aspect)
		if !ok {
			continue
		}
		px, py := r.toScreen(x, y)
		s := int(math.Max(1, float64(size)*4/depth))
		c := pf.Colors[i]
		alpha := pf.Opacity
		if f.Fog != nil {
			c = c.BlendRgb(f.Fog.Color, f.Fog.Factor(depth))
		}
		draw.Draw(dst, image.Rect(px, py, px+s, py+s), image.NewUniform(toRGBA(c, alpha)), image.Point{}, draw.Over)
	}
}

var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func (r *Rasterizer) drawObject(dst *image.RGBA, f scene.Frame, aspect float64) {
	box := source.Box{Min: vmath.V3(-0.5, -0.5, -0.5), Max: vmath.V3(0.5, 0.5, 0.5)}
	if m := f.Object.Model; m != nil && !m.Bounds.Empty() {
		box = m.Bounds
	}
	center := box.Center()

	var pts [8][2]float64
	var visible [8]bool
	depthSum, n := 0.0, 0
	for i, c := range box.Corners() {
		world := c.Sub(center).Scale(f.Object.Scale).Euler(f.Object.Rotation).Add(f.Object.Position)
		x, y, depth, ok := f.Camera.Project(world, aspect)
		if !ok {
			continue
		}
		px, py := r.toScreenF(x, y)
		pts[i], visible[i] = [2]float64{px, py}, true
		depthSum += depth
		n++
	}
	if n == 0 {
		return
	}

	strokes := newStrokes(r.width, r.height)
	width := math.Max(1.5, float64(r.height)/360)
	for _, e := range boxEdges {
		if visible[e[0]] && visible[e[1]] {
			strokes.line(pts[e[0]], pts[e[1]], width)
		}
	}

	c := r.objectColor(f)
	if f.Fog != nil {
		c = c.BlendRgb(f.Fog.Color, f.Fog.Factor(depthSum/float64(n)))
	}
	alpha := 0.9
	if !f.Object.Loaded {
		alpha = 0.35
	}
	strokes.draw(dst, toRGBA(c, alpha))
}

// objectColor tints white by the intensity-weighted light colours
func (r *Rasterizer) objectColor(f scene.Frame) colorful.Color {
	var sum colorful.Color
	total := 0.0
	for _, l := range f.Lights {
		sum.R += l.Color.R * l.Intensity
		sum.G += l.Color.G * l.Intensity
		sum.B += l.Color.B * l.Intensity
		total += l.Intensity
	}
	if total == 0 {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	tint := colorful.Color{R: sum.R / total, G: sum.G / total, B: sum.B / total}
	return colorful.Color{R: 1, G: 1, B: 1}.BlendRgb(tint, 0.5).Clamped()
}

// drawGlow paints positioned lights into a separate layer, blurs it and
// adds it onto dst
func (r *Rasterizer) drawGlow(dst *image.RGBA, f scene.Frame, aspect float64) {
	layer := r.canvas()
	defer r.Release(layer)
	draw.Draw(layer, layer.Rect, image.Transparent, image.Point{}, draw.Src)

	lit := false
	for _, l := range f.Lights {
		if l.Kind == director.LightAmbient || l.Kind == director.LightDirectional || l.Intensity <= 0 {
			continue
		}
		x, y, depth, ok := f.Camera.Project(l.Position, aspect)
		if !ok {
			continue
		}
		px, py := r.toScreenF(x, y)
		radius := math.Min(float64(r.height)/6, float64(r.height)/30*l.Intensity*6/depth)
		s := newStrokes(r.width, r.height)
		s.disc(px, py, math.Max(2, radius))
		s.draw(layer, toRGBA(l.Color, vmath.Clamp01(l.Intensity)))
		lit = true
	}
	if !lit {
		return
	}

	var glow image.Image = layer
	if r.opts.Glow > 0 {
		glow = blur.Gaussian(layer, r.opts.Glow)
	}
	draw.Draw(dst, dst.Rect, blend.Add(dst, glow), image.Point{}, draw.Src)
}

func (r *Rasterizer) toScreenF(x, y float64) (float64, float64) {
	return (x + 1) / 2 * float64(r.width), (1 - y) / 2 * float64(r.height)
}

func (r *Rasterizer) toScreen(x, y float64) (int, int) {
	px, py := r.toScreenF(x, y)
	return int(px), int(py)
}

func toRGBA(c colorful.Color, alpha float64) color.NRGBA {
	cr, cg, cb := c.Clamped().RGB255()
	return color.NRGBA{R: cr, G: cg, B: cb, A: uint8(math.Round(vmath.Clamp01(alpha) * 255))}
}

package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/storyscroll/internal/scene"
)

func loadFaces(height int) (title, body font.Face, err error) {
	title, err = newFace(lmroman10bold.TTF, math.Max(12, float64(height)/18))
	if err != nil {
		return nil, nil, fmt.Errorf("title font: %w", err)
	}
	body, err = newFace(lmroman10regular.TTF, math.Max(9, float64(height)/40))
	if err != nil {
		return nil, nil, fmt.Errorf("body font: %w", err)
	}
	return title, body, nil
}

func newFace(ttf []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}

// wrap breaks text into lines no wider than width pixels. A single word
// wider than width gets a line of its own.
func wrap(face font.Face, text string, width int) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		next := word
		if line != "" {
			next = line + " " + word
		}
		if line != "" && font.MeasureString(face, next).Ceil() > width {
			lines = append(lines, line)
			next = word
		}
		line = next
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// drawBlocks draws every visible story as a panel on the left third of the
// frame, moved by the block offsets
func (r *Rasterizer) drawBlocks(dst *image.RGBA, f scene.Frame) {
	margin := r.width / 16
	panelW := r.width * 2 / 5
	pad := r.height / 40
	for _, b := range f.Visible() {
		st := b.Style
		textW := int(float64(panelW-2*pad) * math.Max(st.Scale, 0.1))
		titleLines := wrap(r.title, b.Story.Title, textW)
		bodyLines := wrap(r.body, b.Story.Text, textW)

		th := r.title.Metrics().Height.Ceil()
		bh := r.body.Metrics().Height.Ceil()
		panelH := 2*pad + len(titleLines)*th + len(bodyLines)*bh
		if len(titleLines) > 0 && len(bodyLines) > 0 {
			panelH += pad / 2
		}

		x := margin + int(st.OffsetX)
		y := (r.height-panelH)/2 + int(st.OffsetY)
		panel := image.Rect(x, y, x+textW+2*pad, y+panelH)

		bg := newStrokes(r.width, r.height)
		bg.rect(panel)
		bg.draw(dst, color.NRGBA{A: uint8(160 * st.Opacity)})

		ink := image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: uint8(math.Round(255 * st.Opacity))})
		d := &font.Drawer{Dst: dst, Src: ink, Face: r.title}
		cy := y + pad
		for _, l := range titleLines {
			cy += th
			d.Dot = fixed.P(x+pad, cy-th/4)
			d.DrawString(l)
		}
		if len(titleLines) > 0 {
			cy += pad / 2
		}
		d.Face = r.body
		for _, l := range bodyLines {
			cy += bh
			d.Dot = fixed.P(x+pad, cy-bh/4)
			d.DrawString(l)
		}
	}
}

func qrBadge(url string, size int) (image.Image, error) {
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("call to action badge: %w", err)
	}
	q.DisableBorder = true
	if size < 64 {
		size = 64
	}
	return q.Image(size), nil
}

// drawBadge puts the QR badge in the bottom right corner at opacity
func (r *Rasterizer) drawBadge(dst *image.RGBA, opacity float64) {
	if opacity <= 0 {
		return
	}
	b := r.badge.Bounds()
	margin := r.height / 20
	at := image.Pt(r.width-b.Dx()-margin, r.height-b.Dy()-margin)
	mask := image.NewUniform(color.Alpha{A: uint8(math.Round(255 * opacity))})
	draw.DrawMask(dst, image.Rectangle{Min: at, Max: at.Add(b.Size())}, r.badge, b.Min, mask, image.Point{}, draw.Over)

	if cta := r.opts.CallToAction; cta != nil && cta.Text != "" {
		ink := image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: uint8(math.Round(255 * opacity))})
		w := font.MeasureString(r.body, cta.Text).Ceil()
		d := &font.Drawer{Dst: dst, Src: ink, Face: r.body, Dot: fixed.P(at.X+b.Dx()-w, at.Y-margin/2)}
		d.DrawString(cta.Text)
	}
}

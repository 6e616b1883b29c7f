// Package effects computes the style of each story overlay block from
// section progress.
package effects

import (
	"github.com/ivlev/storyscroll/internal/director"
	"github.com/ivlev/storyscroll/internal/vmath"
)

// BlockStyle is the presentation of one overlay block. Offsets are in
// pixels, rotations in degrees.
type BlockStyle struct {
	Opacity float64 `yaml:"opacity"`
	OffsetX float64 `yaml:"offset_x,omitempty"`
	OffsetY float64 `yaml:"offset_y,omitempty"`
	RotateX float64 `yaml:"rotate_x,omitempty"`
	RotateY float64 `yaml:"rotate_y,omitempty"`
	RotateZ float64 `yaml:"rotate_z,omitempty"`
	Scale   float64 `yaml:"scale"`
	Active  bool    `yaml:"active,omitempty"` // Block belongs to the current phase
}

// Effect styles block index of count at progress
type Effect interface {
	Style(index, count int, progress float64) BlockStyle
}

// NewEffect returns the effect a section's fade settings describe
func NewEffect(fade director.Fade) Effect {
	if fade.Mode == director.FadeReveal {
		return &Reveal{Lead: fade.Lead, Span: fade.Span, From: fade.From, Alternate: fade.Alternate}
	}
	return &WindowFade{Range: fade.Range, HoldFirst: fade.HoldFirst, HoldLast: fade.HoldLast}
}

// WindowFade shows block i only while progress is inside [i/N, (i+1)/N),
// ramping opacity over Range at both edges of the window
type WindowFade struct {
	Range     float64 // Fade width in progress; zero or negative is a hard cut
	HoldFirst bool    // First block is fully visible from progress 0
	HoldLast  bool    // Last block stays visible once faded in
}

func (e *WindowFade) Style(index, count int, progress float64) BlockStyle {
	return BlockStyle{Opacity: e.Opacity(index, count, progress), Scale: 1}
}

// Opacity is clamp(min((p-start)/f, (end-p)/f, 1), 0, 1) inside the block
// window and 0 outside it
func (e *WindowFade) Opacity(index, count int, progress float64) float64 {
	if count < 1 || index < 0 || index >= count {
		return 0
	}
	p := vmath.Clamp01(progress)
	start, end := director.Window(index, count)
	first, last := index == 0, index == count-1

	if p < start {
		return 0
	}
	if p >= end && !(last && e.HoldLast) {
		return 0
	}

	if e.Range <= 0 {
		return 1
	}
	in := (p - start) / e.Range
	out := (end - p) / e.Range
	if first && e.HoldFirst {
		in = 1
	}
	if last && e.HoldLast {
		out = 1
	}
	return vmath.Clamp01(min(in, out, 1))
}

// Reveal brings each card in from a starting pose as its window approaches.
// Cards stay revealed once progress has passed them.
type Reveal struct {
	Lead      float64 // Reveal starts this far before the block window
	Span      float64 // Progress over which the reveal completes
	From      director.CardPose
	Alternate bool // Mirror horizontal motion on odd blocks
}

func (e *Reveal) Style(index, count int, progress float64) BlockStyle {
	if count < 1 || index < 0 || index >= count {
		return BlockStyle{Scale: 1}
	}
	start, _ := director.Window(index, count)
	begin := start - e.Lead

	t := 1.0
	if e.Span > 0 {
		t = vmath.Clamp01((vmath.Clamp01(progress) - begin) / e.Span)
	} else if progress < begin {
		t = 0
	}
	if t >= 1 {
		return BlockStyle{Opacity: 1, Scale: 1}
	}

	from := e.From
	if from.Scale == 0 {
		from.Scale = 1
	}
	if e.Alternate && index%2 == 1 {
		from.OffsetX, from.RotateY = -from.OffsetX, -from.RotateY
	}
	return BlockStyle{
		Opacity: vmath.Clamp01(vmath.Lerp(from.Opacity, 1, t)),
		OffsetX: vmath.Lerp(from.OffsetX, 0, t),
		OffsetY: vmath.Lerp(from.OffsetY, 0, t),
		RotateX: vmath.Lerp(from.RotateX, 0, t),
		RotateY: vmath.Lerp(from.RotateY, 0, t),
		RotateZ: vmath.Lerp(from.RotateZ, 0, t),
		Scale:   vmath.Lerp(from.Scale, 1, t),
	}
}

// Synchronizer styles every block of a section on each progress update
type Synchronizer struct {
	effect Effect
	count  int
}

// NewSynchronizer creates a synchronizer for count blocks
func NewSynchronizer(effect Effect, count int) *Synchronizer {
	return &Synchronizer{effect: effect, count: count}
}

// Styles returns a fresh style for every block. The block of phase is
// marked active.
func (s *Synchronizer) Styles(progress float64, phase int) []BlockStyle {
	styles := make([]BlockStyle, s.count)
	for i := range styles {
		styles[i] = s.effect.Style(i, s.count, progress)
		styles[i].Active = i == phase
	}
	return styles
}

// Count returns the number of blocks
func (s *Synchronizer) Count() int {
	return s.count
}

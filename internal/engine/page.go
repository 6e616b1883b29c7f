package engine

import (
	"context"

	"github.com/ivlev/storyscroll/internal/director"
	"github.com/ivlev/storyscroll/internal/host"
	"github.com/ivlev/storyscroll/internal/scene"
	"github.com/ivlev/storyscroll/internal/scroll"
	"github.com/ivlev/storyscroll/internal/source"
	"github.com/ivlev/storyscroll/internal/vmath"
)

// Page stacks a scenario's sections vertically, each Height viewports tall
type Page struct {
	Sections []*Section
	bounds   []scroll.Bounds
	height   float64
	laidOut  bool
}

// NewPage builds a section controller for every section of scenario
func NewPage(scenario *director.Scenario, fps int) *Page {
	p := &Page{}
	for _, sec := range scenario.Sections {
		p.Sections = append(p.Sections, NewSection(sec, fps))
	}
	return p
}

// Layout computes section bounds for a viewport height
func (p *Page) Layout(viewportHeight float64) {
	p.bounds = make([]scroll.Bounds, len(p.Sections))
	top := 0.0
	for i, s := range p.Sections {
		h := s.def.Height * viewportHeight
		p.bounds[i] = scroll.Bounds{Top: top, Height: h}
		top += h
	}
	p.height = top
	p.laidOut = true
}

// Height returns the total document height after Layout
func (p *Page) Height() float64 {
	return p.height
}

// Bounds returns the bounds of section i after Layout
func (p *Page) Bounds(i int) (scroll.Bounds, bool) {
	if !p.laidOut || i < 0 || i >= len(p.bounds) {
		return scroll.Bounds{}, false
	}
	return p.bounds[i], true
}

// Element returns the scroll element for section i
func (p *Page) Element(i int) scroll.Element {
	return pageElement{page: p, index: i}
}

type pageElement struct {
	page  *Page
	index int
}

func (e pageElement) Bounds() (scroll.Bounds, bool) {
	return e.page.Bounds(e.index)
}

// Mount lays the page out for h's viewport when h reports one, then mounts
// every section. Frames from all sections go to sink.
func (p *Page) Mount(h host.Host, sink func(scene.Frame)) {
	if vs, ok := h.(host.ViewportSource); ok {
		p.Layout(vs.Viewport().Height)
	}
	for i, s := range p.Sections {
		s.Mount(h, p.Element(i), sink)
	}
}

// Unmount unmounts every section
func (p *Page) Unmount() {
	for _, s := range p.Sections {
		s.Unmount()
	}
}

// Active returns the index of the section under the top of the viewport,
// or -1 above the first and below the last section
func (p *Page) Active(scrollY float64) int {
	for i, b := range p.bounds {
		if scrollY >= b.Top && scrollY < b.Top+b.Height {
			return i
		}
	}
	return -1
}

// SetPointer forwards the pointer to every section
func (p *Page) SetPointer(ptr vmath.Vec2) {
	for _, s := range p.Sections {
		s.SetPointer(ptr)
	}
}

// LoadModels loads every section's model and attaches it. tracker may be
// nil. A load failure is returned after the models that did load are
// attached.
func (p *Page) LoadModels(ctx context.Context, loader source.Loader, tracker *source.Tracker, workers int) error {
	paths := make([]string, 0, len(p.Sections))
	for _, s := range p.Sections {
		paths = append(paths, s.def.Model.Path)
	}
	models, err := source.LoadAll(ctx, loader, paths, tracker, workers)
	for _, s := range p.Sections {
		if m, ok := models[s.def.Model.Path]; ok {
			s.SetModel(m)
		}
	}
	return err
}

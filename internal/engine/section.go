package engine

import (
	"github.com/ivlev/storyscroll/internal/director"
	"github.com/ivlev/storyscroll/internal/effects"
	"github.com/ivlev/storyscroll/internal/host"
	"github.com/ivlev/storyscroll/internal/renderer"
	"github.com/ivlev/storyscroll/internal/scene"
	"github.com/ivlev/storyscroll/internal/scroll"
	"github.com/ivlev/storyscroll/internal/source"
	"github.com/ivlev/storyscroll/internal/vmath"
)

// Section drives one scroll section: scroll events update progress, phase
// and block styles; frame ticks advance the smoothed transform and emit a
// frame descriptor. All callbacks run on the host's goroutine.
type Section struct {
	def      director.Section
	interp   *renderer.Interpolator
	sync     *effects.Synchronizer
	composer *scene.Composer
	scrub    scroll.Scrub
	observer *scroll.Observer

	state    renderer.State
	styles   []effects.BlockStyle
	progress float64
	scrubPos float64
	scrubVel float64
	pointer  vmath.Vec2
	model    *source.Model

	sink        func(scene.Frame)
	removeFrame func()
	started     bool
	start       float64
	elapsed     float64
	last        scene.Frame
	hasFrame    bool
}

// NewSection builds a controller for a validated section rendered at fps
func NewSection(def director.Section, fps int) *Section {
	span, _ := scroll.ParseSpan(def.Span)
	s := &Section{
		def:      def,
		interp:   renderer.NewInterpolator(def),
		sync:     effects.NewSynchronizer(effects.NewEffect(def.Fade), len(def.Stories)),
		composer: scene.NewComposer(def),
		scrub:    scroll.NewScrub(fps, def.Scrub),
		observer: scroll.NewObserver(nil, span),
	}
	s.reset()
	return s
}

func (s *Section) reset() {
	s.state = s.interp.Initial()
	s.styles = s.sync.Styles(0, 0)
	s.progress, s.scrubPos, s.scrubVel = 0, 0, 0
	s.started, s.start, s.elapsed = false, 0, 0
	s.last, s.hasFrame = scene.Frame{}, false
}

// Definition returns the section definition
func (s *Section) Definition() director.Section {
	return s.def
}

// Mount registers the section's callbacks on h. el locates the section on
// the page; while el reports no bounds nothing is emitted. sink receives a
// frame on every tick and may be nil.
func (s *Section) Mount(h host.Host, el scroll.Element, sink func(scene.Frame)) {
	if s.Mounted() {
		s.Unmount()
	}
	s.reset()
	s.state = s.interp.OnPhase(s.state, 0, 0)
	s.sink = sink

	s.observer.Element = el
	s.observer.Attach(h, s.onProgress)
	s.removeFrame = h.OnFrame(s.onFrame)

	if vs, ok := h.(host.ViewportSource); ok {
		s.observer.Notify(vs.Viewport())
	}
}

// Unmount deregisters every callback before returning and resets the
// smoothed state. Later host events do not reach the section.
func (s *Section) Unmount() {
	if !s.Mounted() {
		return
	}
	s.observer.Detach()
	s.observer.Element = nil
	if s.removeFrame != nil {
		s.removeFrame()
		s.removeFrame = nil
	}
	s.sink = nil
	s.reset()
}

// Mounted reports whether callbacks are registered
func (s *Section) Mounted() bool {
	return s.observer.Attached()
}

// SetModel attaches the loaded model handle
func (s *Section) SetModel(m *source.Model) {
	s.model = m
}

// SetPointer records the normalized pointer position
func (s *Section) SetPointer(p vmath.Vec2) {
	s.pointer = vmath.Vec2{X: vmath.Clamp(p.X, -1, 1), Y: vmath.Clamp(p.Y, -1, 1)}
}

func (s *Section) onProgress(p float64) {
	s.progress = p
	phase := director.PhaseAt(p, s.sync.Count())
	s.state = s.interp.OnPhase(s.state, phase, s.elapsed)
	s.styles = s.sync.Styles(p, phase)
}

func (s *Section) onFrame(t host.Tick) {
	if !s.started {
		s.start, s.started = t.Elapsed, true
	}
	s.elapsed = t.Elapsed - s.start

	s.scrubPos, s.scrubVel = s.scrub.Step(s.scrubPos, s.scrubVel, s.progress)
	s.state = s.interp.Step(s.state, renderer.Input{
		Progress: s.scrubPos,
		Phase:    s.state.Phase,
		Elapsed:  s.elapsed,
		Pointer:  s.pointer,
	})

	s.last = s.composer.Compose(s.state, s.styles, s.elapsed, s.model)
	s.hasFrame = true
	if s.sink != nil {
		s.sink(s.last)
	}
}

// Progress returns the last emitted progress
func (s *Section) Progress() float64 {
	return s.progress
}

// Phase returns the current story phase
func (s *Section) Phase() int {
	return s.state.Phase
}

// State returns the smoothed transform
func (s *Section) State() renderer.State {
	return s.state
}

// Styles returns a copy of the current block styles
func (s *Section) Styles() []effects.BlockStyle {
	return append([]effects.BlockStyle(nil), s.styles...)
}

// Scrubbed returns the smoothed progress that drives the camera and whether
// scrub smoothing is on. Without it the value equals Progress.
func (s *Section) Scrubbed() (float64, bool) {
	return s.scrubPos, s.scrub.Enabled()
}

// LastFrame returns the most recent frame, if any tick has run since mount
func (s *Section) LastFrame() (scene.Frame, bool) {
	return s.last, s.hasFrame
}

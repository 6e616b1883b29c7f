package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/storyscroll/internal/host"
)

type fakeElement struct {
	b       Bounds
	mounted bool
}

func (e *fakeElement) Bounds() (Bounds, bool) {
	return e.b, e.mounted
}

func TestProgress(t *testing.T) {
	b := Bounds{Top: 1000, Height: 2000}
	tests := []struct {
		scrollY float64
		want    float64
	}{
		{0, 0},
		{1000, 0},
		{2000, 0.5},
		{3000, 1},
		{9000, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Progress(tt.scrollY, b), "scrollY=%v", tt.scrollY)
	}

	assert.Equal(t, 0.0, Progress(5, Bounds{Top: 10}))
	assert.Equal(t, 1.0, Progress(10, Bounds{Top: 10}))
}

func TestSpanPinned(t *testing.T) {
	vp := host.Viewport{ScrollY: 1500, Height: 1000}
	b := Bounds{Top: 1000, Height: 2000}
	assert.Equal(t, 0.25, SpanFull.Progress(vp, b))
	assert.Equal(t, 0.5, SpanPinned.Progress(vp, b))

	span, err := ParseSpan("pinned")
	require.NoError(t, err)
	assert.Equal(t, SpanPinned, span)
	_, err = ParseSpan("sideways")
	assert.Error(t, err)
}

func TestObserverEmitsOncePerFrame(t *testing.T) {
	d := host.NewDispatcher(800, 1000)
	el := &fakeElement{b: Bounds{Top: 0, Height: 1000}, mounted: true}
	o := NewObserver(el, SpanFull)

	var got []float64
	o.Attach(d, func(p float64) { got = append(got, p) })

	d.Scroll(100)
	d.Scroll(200)
	d.Scroll(300)
	assert.Empty(t, got)

	d.Frame(0)
	assert.Equal(t, []float64{0.3}, got)

	d.Frame(0.016)
	assert.Len(t, got, 1, "no scroll, no emission")
}

func TestObserverUnmountedElementIsNoop(t *testing.T) {
	d := host.NewDispatcher(800, 1000)
	el := &fakeElement{b: Bounds{Top: 0, Height: 1000}}
	o := NewObserver(el, SpanFull)

	var got []float64
	o.Attach(d, func(p float64) { got = append(got, p) })

	d.Scroll(500)
	d.Frame(0)
	assert.Empty(t, got)

	el.mounted = true
	d.Frame(0.016)
	assert.Equal(t, []float64{0.5}, got)
}

func TestObserverDetach(t *testing.T) {
	d := host.NewDispatcher(800, 1000)
	el := &fakeElement{b: Bounds{Top: 0, Height: 1000}, mounted: true}
	o := NewObserver(el, SpanFull)

	calls := 0
	o.Attach(d, func(float64) { calls++ })
	assert.True(t, o.Attached())
	d.Scroll(100)
	d.Frame(0)
	assert.Equal(t, 1, calls)

	o.Detach()
	assert.False(t, o.Attached())
	d.Scroll(200)
	d.Frame(0)
	assert.Equal(t, 1, calls)

	s, f := d.Listeners()
	assert.Zero(t, s)
	assert.Zero(t, f)
}

func TestScrubSettlesWithinBounds(t *testing.T) {
	s := NewScrub(60, 1)
	require.True(t, s.Enabled())

	pos, vel := 0.0, 0.0
	for i := 0; i < 240; i++ {
		pos, vel = s.Step(pos, vel, 1)
		assert.GreaterOrEqual(t, pos, 0.0)
		assert.LessOrEqual(t, pos, 1.0)
	}
	assert.InDelta(t, 1, pos, 1e-3)

	pass := NewScrub(60, 0)
	pos, vel = pass.Step(0.2, 3, 0.7)
	assert.Equal(t, 0.7, pos)
	assert.Zero(t, vel)
}

package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/storyscroll/internal/director"
)

func TestWindowOpacityCases(t *testing.T) {
	fade := &WindowFade{Range: 0.1}

	// Block 1 of 4 owns [0.25, 0.5)
	tests := []struct {
		name     string
		progress float64
		want     float64
	}{
		{"before start", 0.2, 0},
		{"at start", 0.25, 0},
		{"fading in", 0.3, 0.5},
		{"plateau start", 0.35, 1},
		{"plateau", 0.375, 1},
		{"plateau end", 0.4, 1},
		{"fading out", 0.45, 0.5},
		{"at end", 0.5, 0},
		{"after end", 0.8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, fade.Opacity(1, 4, tt.progress), 1e-9)
		})
	}
}

func TestWindowOpacityAlwaysClamped(t *testing.T) {
	ranges := []float64{-1, 0, 0.01, 0.1, 0.2, 0.5, 1, 5}
	for _, f := range ranges {
		for _, hold := range []bool{false, true} {
			fade := &WindowFade{Range: f, HoldFirst: hold, HoldLast: hold}
			for n := 1; n <= 6; n++ {
				for i := -1; i <= n; i++ {
					for step := -10; step <= 1010; step++ {
						p := float64(step) / 1000
						o := fade.Opacity(i, n, p)
						require.GreaterOrEqual(t, o, 0.0, "f=%v n=%d i=%d p=%v", f, n, i, p)
						require.LessOrEqual(t, o, 1.0, "f=%v n=%d i=%d p=%v", f, n, i, p)
					}
				}
			}
		}
	}
}

func TestWindowOpacityWideRange(t *testing.T) {
	// Range wider than half the window: the plateau vanishes
	fade := &WindowFade{Range: 0.5}
	peak := fade.Opacity(0, 4, 0.125)
	assert.InDelta(t, 0.25, peak, 1e-9)
}

func TestWindowOpacityHardCut(t *testing.T) {
	fade := &WindowFade{Range: -1}
	assert.Equal(t, 0.0, fade.Opacity(1, 4, 0.2499))
	assert.Equal(t, 1.0, fade.Opacity(1, 4, 0.25))
	assert.Equal(t, 1.0, fade.Opacity(1, 4, 0.4999))
	assert.Equal(t, 0.0, fade.Opacity(1, 4, 0.5))
}

func TestWindowOpacityHolds(t *testing.T) {
	fade := &WindowFade{Range: 0.1, HoldFirst: true, HoldLast: true}
	assert.Equal(t, 1.0, fade.Opacity(0, 4, 0))
	assert.Equal(t, 1.0, fade.Opacity(3, 4, 1))
	assert.Equal(t, 1.0, fade.Opacity(3, 4, 0.95))
	assert.InDelta(t, 0.5, fade.Opacity(3, 4, 0.8), 1e-9)

	plain := &WindowFade{Range: 0.1}
	assert.Equal(t, 0.0, plain.Opacity(0, 4, 0))
	assert.Equal(t, 0.0, plain.Opacity(3, 4, 1))
}

func TestRevealStyle(t *testing.T) {
	reveal := &Reveal{
		Lead:      0.2,
		Span:      0.2,
		From:      director.CardPose{OffsetX: -60, RotateY: -10, Scale: 0.8},
		Alternate: true,
	}

	// Block 2 of 4 starts at 0.5, reveal runs over [0.3, 0.5]
	hidden := reveal.Style(2, 4, 0.1)
	assert.Equal(t, 0.0, hidden.Opacity)
	assert.Equal(t, -60.0, hidden.OffsetX)
	assert.Equal(t, 0.8, hidden.Scale)

	half := reveal.Style(2, 4, 0.4)
	assert.InDelta(t, 0.5, half.Opacity, 1e-9)
	assert.InDelta(t, -30, half.OffsetX, 1e-9)
	assert.InDelta(t, 0.9, half.Scale, 1e-9)

	shown := reveal.Style(2, 4, 1)
	assert.Equal(t, BlockStyle{Opacity: 1, Scale: 1}, shown)

	mirrored := reveal.Style(1, 4, 0)
	assert.Equal(t, 60.0, mirrored.OffsetX)
	assert.Equal(t, 10.0, mirrored.RotateY)
}

func TestNewEffect(t *testing.T) {
	assert.IsType(t, &WindowFade{}, NewEffect(director.Fade{Mode: director.FadeWindow, Range: 0.1}))
	assert.IsType(t, &Reveal{}, NewEffect(director.Fade{Mode: director.FadeReveal, Span: 0.15}))
}

func TestSynchronizerFourStories(t *testing.T) {
	sync := NewSynchronizer(&WindowFade{Range: 0.1, HoldFirst: true}, 4)
	require.Equal(t, 4, sync.Count())

	start := sync.Styles(0, director.PhaseAt(0, 4))
	assert.Equal(t, 1.0, start[0].Opacity)
	assert.True(t, start[0].Active)
	for _, s := range start[1:] {
		assert.Equal(t, 0.0, s.Opacity)
		assert.False(t, s.Active)
	}

	mid := sync.Styles(0.5, director.PhaseAt(0.5, 4))
	assert.Equal(t, 0.0, mid[0].Opacity)
	assert.Equal(t, 0.0, mid[2].Opacity, "block 2 starts its ramp at its window start")
	assert.True(t, mid[2].Active)

	ramp := sync.Styles(0.55, director.PhaseAt(0.55, 4))
	assert.InDelta(t, 0.5, ramp[2].Opacity, 1e-9)
}

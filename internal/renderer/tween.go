package renderer

import "github.com/ivlev/storyscroll/internal/vmath"

// Tween is a time-based transition started on a phase change
type Tween struct {
	Start    float64 // Elapsed seconds when the tween began
	Duration float64
	Ease     string
}

// Fraction returns the eased completion at elapsed. Before the start it is 0;
// at or past Start+Duration it is exactly 1.
func (tw Tween) Fraction(elapsed float64, ease vmath.Easing) float64 {
	if tw.Done(elapsed) {
		return 1
	}
	t := vmath.Clamp01((elapsed - tw.Start) / tw.Duration)
	if ease == nil {
		return t
	}
	return ease(t)
}

// Done reports whether the tween has finished at elapsed
func (tw Tween) Done(elapsed float64) bool {
	return tw.Duration <= 0 || elapsed >= tw.Start+tw.Duration
}

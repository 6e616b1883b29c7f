package vmath

import "math"

// Lerp performs linear interpolation between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return Clamp(v, 0, 1)
}

// Damp is exponential smoothing: current moves fraction k of the remaining
// distance toward target. For k in (0,1) it never overshoots.
func Damp(current, target, k float64) float64 {
	return current + (target-current)*Clamp01(k)
}

// Wave is amplitude*sin(t*frequency+phase)
func Wave(t, amplitude, frequency, phase float64) float64 {
	return amplitude * math.Sin(t*frequency+phase)
}

// InvLerp maps v from [a, b] to [0, 1] without clamping. Zero width maps to 0.
func InvLerp(a, b, v float64) float64 {
	if b == a {
		return 0
	}
	return (v - a) / (b - a)
}

// Package host models the environment a section lives in: a scroll event
// source and a per-frame callback, both delivered on one goroutine.
package host

// Viewport is the page scroll state at the time of a scroll or resize event
type Viewport struct {
	ScrollY float64 // Document offset of the top edge of the viewport
	Width   float64
	Height  float64
}

// Tick is delivered once per rendered frame
type Tick struct {
	Elapsed float64 // Seconds since the host clock started
	Delta   float64 // Seconds since the previous tick
	Frame   int
}

// Host registers callbacks. The returned remove functions deregister
// synchronously: once remove returns, the callback is never invoked again.
type Host interface {
	OnScroll(fn func(Viewport)) (remove func())
	OnFrame(fn func(Tick)) (remove func())
}

// ViewportSource is implemented by hosts that can report the current
// viewport without waiting for the next scroll event
type ViewportSource interface {
	Viewport() Viewport
}

package scroll

import "github.com/ivlev/storyscroll/internal/host"

// Observer watches one element and emits its progress. Scroll events only
// record the latest viewport; the value is computed and emitted on the next
// frame, so listeners run at most once per frame.
type Observer struct {
	Element Element
	Span    Span

	emit    func(float64)
	vp      host.Viewport
	pending bool
	last    float64
	seen    bool
	remove  []func()
}

// NewObserver creates an Observer for el
func NewObserver(el Element, span Span) *Observer {
	return &Observer{Element: el, Span: span}
}

// Attach registers the observer's scroll and frame callbacks on h.
// Attaching twice detaches the first registration.
func (o *Observer) Attach(h host.Host, emit func(progress float64)) {
	o.Detach()
	o.emit = emit
	o.remove = append(o.remove,
		h.OnScroll(o.Notify),
		h.OnFrame(func(host.Tick) { o.Flush() }),
	)
}

// Detach deregisters all callbacks and forgets the last emitted value
func (o *Observer) Detach() {
	for _, rm := range o.remove {
		rm()
	}
	o.remove = nil
	o.emit = nil
	o.pending = false
	o.seen = false
}

// Attached reports whether callbacks are registered
func (o *Observer) Attached() bool {
	return len(o.remove) > 0
}

// Notify records a viewport as if a scroll event had arrived
func (o *Observer) Notify(vp host.Viewport) {
	o.vp = vp
	o.pending = true
}

// Flush emits the progress for the latest viewport if a scroll happened
// since the last emission and the element is mounted.
func (o *Observer) Flush() {
	if !o.pending || o.emit == nil || o.Element == nil {
		return
	}
	b, ok := o.Element.Bounds()
	if !ok {
		return
	}
	o.pending = false

	p := o.Span.Progress(o.vp, b)
	if o.seen && p == o.last {
		return
	}
	o.last, o.seen = p, true
	o.emit(p)
}

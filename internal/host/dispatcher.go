package host

import "sort"

// Dispatcher is a single-threaded Host driven by explicit Scroll and Frame
// calls. It is what the exporter, the viewer and the tests run sections on.
type Dispatcher struct {
	scroll map[int]func(Viewport)
	frame  map[int]func(Tick)
	nextID int

	viewport Viewport
	last     Tick
	started  bool
}

// NewDispatcher creates a Dispatcher with the given initial viewport size
func NewDispatcher(width, height float64) *Dispatcher {
	return &Dispatcher{
		scroll:   make(map[int]func(Viewport)),
		frame:    make(map[int]func(Tick)),
		viewport: Viewport{Width: width, Height: height},
	}
}

func (d *Dispatcher) OnScroll(fn func(Viewport)) func() {
	id := d.nextID
	d.nextID++
	d.scroll[id] = fn
	return func() { delete(d.scroll, id) }
}

func (d *Dispatcher) OnFrame(fn func(Tick)) func() {
	id := d.nextID
	d.nextID++
	d.frame[id] = fn
	return func() { delete(d.frame, id) }
}

// Viewport returns the last dispatched viewport
func (d *Dispatcher) Viewport() Viewport {
	return d.viewport
}

// Scroll sets the scroll offset and notifies scroll listeners
func (d *Dispatcher) Scroll(scrollY float64) {
	d.viewport.ScrollY = scrollY
	d.emitScroll()
}

// Resize changes the viewport size and notifies scroll listeners
func (d *Dispatcher) Resize(width, height float64) {
	d.viewport.Width = width
	d.viewport.Height = height
	d.emitScroll()
}

// Frame advances the clock to elapsed seconds and notifies frame listeners
func (d *Dispatcher) Frame(elapsed float64) Tick {
	tick := Tick{Elapsed: elapsed}
	if d.started {
		tick.Delta = elapsed - d.last.Elapsed
		tick.Frame = d.last.Frame + 1
	}
	d.started = true
	d.last = tick
	for _, id := range sortedIDs(d.frame) {
		if fn, ok := d.frame[id]; ok {
			fn(tick)
		}
	}
	return tick
}

// Listeners reports how many scroll and frame callbacks are registered
func (d *Dispatcher) Listeners() (scroll, frame int) {
	return len(d.scroll), len(d.frame)
}

func (d *Dispatcher) emitScroll() {
	vp := d.viewport
	for _, id := range sortedIDs(d.scroll) {
		// A callback may remove a later one.
		if fn, ok := d.scroll[id]; ok {
			fn(vp)
		}
	}
}

func sortedIDs[T any](m map[int]T) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

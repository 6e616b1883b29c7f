package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherDeliversInRegistrationOrder(t *testing.T) {
	d := NewDispatcher(800, 600)
	var order []string
	d.OnScroll(func(Viewport) { order = append(order, "a") })
	d.OnScroll(func(Viewport) { order = append(order, "b") })

	d.Scroll(120)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 120.0, d.Viewport().ScrollY)
}

func TestDispatcherRemoveIsSynchronous(t *testing.T) {
	d := NewDispatcher(800, 600)
	calls := 0
	var removeSecond func()
	d.OnScroll(func(Viewport) { removeSecond() })
	removeSecond = d.OnScroll(func(Viewport) { calls++ })

	d.Scroll(10)
	d.Scroll(20)
	assert.Equal(t, 0, calls)

	s, f := d.Listeners()
	assert.Equal(t, 1, s)
	assert.Equal(t, 0, f)
}

func TestDispatcherFrameDelta(t *testing.T) {
	d := NewDispatcher(800, 600)
	var ticks []Tick
	remove := d.OnFrame(func(tk Tick) { ticks = append(ticks, tk) })

	d.Frame(0)
	d.Frame(0.5)
	remove()
	d.Frame(1)

	assert.Len(t, ticks, 2)
	assert.Equal(t, 0.5, ticks[1].Delta)
	assert.Equal(t, 1, ticks[1].Frame)
}

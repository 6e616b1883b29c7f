// Package scroll turns viewport scroll positions into normalized section
// progress.
package scroll

import (
	"fmt"

	"github.com/ivlev/storyscroll/internal/host"
	"github.com/ivlev/storyscroll/internal/vmath"
)

// Bounds is an element's vertical extent in document coordinates
type Bounds struct {
	Top    float64
	Height float64
}

// Element reports its bounds, or false while it is not mounted
type Element interface {
	Bounds() (Bounds, bool)
}

// Span selects where progress reaches 1
type Span int

const (
	// SpanFull runs from the element top meeting the viewport top to the
	// element bottom meeting the viewport top.
	SpanFull Span = iota
	// SpanPinned ends when the element bottom meets the viewport bottom,
	// the range a pinned canvas is visible for.
	SpanPinned
)

// ParseSpan maps "full" / "pinned" to a Span. Empty is SpanFull.
func ParseSpan(s string) (Span, error) {
	switch s {
	case "", "full":
		return SpanFull, nil
	case "pinned":
		return SpanPinned, nil
	}
	return SpanFull, fmt.Errorf("unknown scroll span %q", s)
}

func (s Span) String() string {
	if s == SpanPinned {
		return "pinned"
	}
	return "full"
}

// Progress is clamp((scrollY-top)/height, 0, 1). A non-positive height
// yields 0 above the element and 1 at or below it.
func Progress(scrollY float64, b Bounds) float64 {
	if b.Height <= 0 {
		if scrollY < b.Top {
			return 0
		}
		return 1
	}
	return vmath.Clamp01((scrollY - b.Top) / b.Height)
}

// Progress computes section progress for the viewport under this span
func (s Span) Progress(vp host.Viewport, b Bounds) float64 {
	if s == SpanPinned {
		b.Height -= vp.Height
	}
	return Progress(vp.ScrollY, b)
}

package director

import (
	"math"

	"github.com/ivlev/storyscroll/internal/vmath"
)

// PhaseAt maps progress to a story index: min(floor(progress*count), count-1).
// Exactly on a boundary the later phase wins. Progress is clamped to [0, 1]
// and a count below 1 is treated as 1.
func PhaseAt(progress float64, count int) int {
	if count < 1 {
		count = 1
	}
	phase := int(math.Floor(vmath.Clamp01(progress) * float64(count)))
	if phase > count-1 {
		phase = count - 1
	}
	return phase
}

// Window returns the progress range [start, end) owned by block index of count
func Window(index, count int) (start, end float64) {
	if count < 1 {
		count = 1
	}
	return float64(index) / float64(count), float64(index+1) / float64(count)
}

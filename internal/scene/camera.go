package scene

import (
	"math"

	"github.com/ivlev/storyscroll/internal/vmath"
)

// Camera is a perspective camera looking at a point
type Camera struct {
	Position vmath.Vec3 `yaml:"position"`
	LookAt   vmath.Vec3 `yaml:"look_at"`
	FOV      float64    `yaml:"fov"` // Vertical, degrees
}

// basis returns the camera frame: w points from the target back to the
// camera, u to the right, v up
func (c Camera) basis() (u, v, w vmath.Vec3) {
	up := vmath.V3(0, 1, 0)
	w = c.Position.Sub(c.LookAt).Unit()
	if w == (vmath.Vec3{}) {
		w = vmath.V3(0, 0, 1)
	}
	u = up.Cross(w).Unit()
	if u == (vmath.Vec3{}) {
		u = vmath.V3(1, 0, 0)
	}
	v = w.Cross(u)
	return u, v, w
}

// Project maps a world point to normalized device coordinates, x and y in
// [-1, 1] when on screen, y up. depth is the distance along the view
// direction. ok is false for points behind the camera.
func (c Camera) Project(p vmath.Vec3, aspect float64) (x, y, depth float64, ok bool) {
	u, v, w := c.basis()
	rel := p.Sub(c.Position)
	depth = -rel.Dot(w)
	if depth <= 1e-6 {
		return 0, 0, depth, false
	}
	fov := c.FOV
	if fov <= 0 {
		fov = 50
	}
	half := math.Tan(fov * math.Pi / 360)
	if aspect <= 0 {
		aspect = 1
	}
	x = rel.Dot(u) / (depth * half * aspect)
	y = rel.Dot(v) / (depth * half)
	return x, y, depth, true
}

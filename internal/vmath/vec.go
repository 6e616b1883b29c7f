package vmath

import "math"

// Vec3 is a point or direction in scene space
type Vec3 struct {
	X, Y, Z float64
}

// V3 builds a Vec3
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Len() float64 {
	return math.Sqrt(a.Dot(a))
}

// Unit returns a normalized copy, or the zero vector for zero length input
func (a Vec3) Unit() Vec3 {
	l := a.Len()
	if l == 0 {
		return Vec3{}
	}
	return a.Scale(1 / l)
}

// Lerp interpolates componentwise from a to b
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t), Lerp(a.Z, b.Z, t)}
}

// Damp moves a by fraction k toward target on every axis
func (a Vec3) Damp(target Vec3, k float64) Vec3 {
	return Vec3{Damp(a.X, target.X, k), Damp(a.Y, target.Y, k), Damp(a.Z, target.Z, k)}
}

// RotateY rotates a around the Y axis by angle radians
func (a Vec3) RotateY(angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{a.X*c + a.Z*s, a.Y, -a.X*s + a.Z*c}
}

// RotateX rotates a around the X axis by angle radians
func (a Vec3) RotateX(angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{a.X, a.Y*c - a.Z*s, a.Y*s + a.Z*c}
}

// RotateZ rotates a around the Z axis by angle radians
func (a Vec3) RotateZ(angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{a.X*c - a.Y*s, a.X*s + a.Y*c, a.Z}
}

// Euler applies rotation r as X, then Y, then Z
func (a Vec3) Euler(r Vec3) Vec3 {
	return a.RotateX(r.X).RotateY(r.Y).RotateZ(r.Z)
}

// Vec2 is a normalized pointer position, both axes in [-1, 1]
type Vec2 struct {
	X, Y float64
}

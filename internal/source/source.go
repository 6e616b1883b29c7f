// Package source loads the assets a scenario references: 3D models and
// environment backdrops.
package source

import (
	"errors"

	"github.com/ivlev/storyscroll/internal/vmath"
)

var (
	// ErrNotFound is returned when an asset path does not exist
	ErrNotFound = errors.New("asset not found")
	// ErrUnsupported is returned for files that are not a known model format
	ErrUnsupported = errors.New("unsupported asset format")
	// ErrMalformed is returned when a model file is truncated or corrupt
	ErrMalformed = errors.New("malformed model")
)

// Model is the handle a section holds for a loaded 3D asset. Geometry is not
// decoded; the handle carries what a frame descriptor and the preview need.
type Model struct {
	Path       string
	Format     string // glb | gltf
	Generator  string
	Version    string
	Scenes     int
	Nodes      int
	Meshes     int
	Materials  int
	Textures   int
	Animations int
	Size       int64
	Bounds     Box
}

// Box is an axis aligned bounding box
type Box struct {
	Min vmath.Vec3
	Max vmath.Vec3
}

// Empty reports whether the box holds no points
func (b Box) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Center returns the midpoint of the box
func (b Box) Center() vmath.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the box on each axis
func (b Box) Size() vmath.Vec3 {
	return b.Max.Sub(b.Min)
}

// Corners returns the eight corners of the box
func (b Box) Corners() [8]vmath.Vec3 {
	var out [8]vmath.Vec3
	for i := range out {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		out[i] = c
	}
	return out
}

// Loader resolves a model path to a handle. Failures are returned as is;
// callers do not retry.
type Loader interface {
	Load(path string) (*Model, error)
}

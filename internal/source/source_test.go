package source

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/storyscroll/internal/vmath"
)

const carJSON = `{
  "asset": {"version": "2.0", "generator": "Khronos glTF Blender I/O"},
  "scenes": [{"nodes": [0]}],
  "nodes": [{"mesh": 0}, {"mesh": 1}],
  "meshes": [
    {"primitives": [{"attributes": {"POSITION": 0, "NORMAL": 1}}]},
    {"primitives": [{"attributes": {"POSITION": 2}}]}
  ],
  "materials": [{}, {}, {}],
  "accessors": [
    {"min": [-1, 0, -2], "max": [1, 1.5, 2]},
    {},
    {"min": [-0.5, -0.25, 0], "max": [0.5, 2, 3]}
  ]
}`

func buildGLB(js string) []byte {
	for len(js)%4 != 0 {
		js += " "
	}
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, []uint32{glbMagic, 2, uint32(glbHeaderLen + 8 + len(js))})
	binary.Write(&buf, binary.LittleEndian, []uint32{uint32(len(js)), glbChunkJSON})
	buf.WriteString(js)
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestParseGLB(t *testing.T) {
	m, err := ParseGLB(buildGLB(carJSON))
	require.NoError(t, err)

	assert.Equal(t, "glb", m.Format)
	assert.Equal(t, "2.0", m.Version)
	assert.Equal(t, "Khronos glTF Blender I/O", m.Generator)
	assert.Equal(t, 1, m.Scenes)
	assert.Equal(t, 2, m.Nodes)
	assert.Equal(t, 2, m.Meshes)
	assert.Equal(t, 3, m.Materials)
	assert.Equal(t, vmath.V3(-1, -0.25, -2), m.Bounds.Min)
	assert.Equal(t, vmath.V3(1, 2, 3), m.Bounds.Max)
	assert.Equal(t, vmath.V3(0, 0.875, 0.5), m.Bounds.Center())
}

func TestParseGLBMalformed(t *testing.T) {
	good := buildGLB(carJSON)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short", good[:10], ErrMalformed},
		{"bad magic", append([]byte("gLTF"), good[4:]...), ErrMalformed},
		{"truncated chunk", good[:40], ErrMalformed},
		{"version 1", func() []byte {
			b := append([]byte(nil), good...)
			binary.LittleEndian.PutUint32(b[4:], 1)
			return b
		}(), ErrUnsupported},
		{"bad json", buildGLB(`{"asset": `), ErrMalformed},
		{"no asset version", buildGLB(`{"asset": {}}`), ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGLB(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseGLTFDefaultBounds(t *testing.T) {
	m, err := ParseGLTF([]byte(`{"asset": {"version": "2.0"}}`))
	require.NoError(t, err)
	assert.False(t, m.Bounds.Empty())
	assert.Equal(t, vmath.V3(1, 1, 1), m.Bounds.Size())
}

func TestGLBLoader(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "3d-assets/car.glb", buildGLB(carJSON))
	writeFile(t, root, "3d-assets/car.gltf", []byte(carJSON))
	writeFile(t, root, "3d-assets/poster.png", pngBytes(t))
	writeFile(t, root, "3d-assets/notes.bin", []byte("plain bytes"))

	l := NewGLBLoader(root)

	m, err := l.Load("/3d-assets/car.glb")
	require.NoError(t, err)
	assert.Equal(t, "/3d-assets/car.glb", m.Path)
	assert.Equal(t, "glb", m.Format)
	assert.Positive(t, m.Size)

	again, err := l.Load("/3d-assets/car.glb")
	require.NoError(t, err)
	assert.Same(t, m, again)

	js, err := l.Load("3d-assets/car.gltf")
	require.NoError(t, err)
	assert.Equal(t, "gltf", js.Format)
	assert.Equal(t, m.Bounds, js.Bounds)

	_, err = l.Load("3d-assets/poster.png")
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.ErrorContains(t, err, "image/png")

	_, err = l.Load("3d-assets/notes.bin")
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = l.Load("3d-assets/missing.glb")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadAllTracksProgress(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.glb", buildGLB(carJSON))
	writeFile(t, root, "b.glb", buildGLB(carJSON))

	tracker := NewTracker()
	models, err := LoadAll(context.Background(), NewGLBLoader(root), []string{"a.glb", "b.glb", "a.glb", ""}, tracker, 2)
	require.NoError(t, err)
	assert.Len(t, models, 2)

	assert.Equal(t, 100.0, tracker.Progress())
	assert.False(t, tracker.Active())
	assert.Equal(t, 0, tracker.Failed())
	select {
	case <-tracker.Done():
	default:
		t.Fatal("tracker not done after all loads finished")
	}
}

func TestLoadAllPropagatesFailure(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.glb", buildGLB(carJSON))

	tracker := NewTracker()
	_, err := LoadAll(context.Background(), NewGLBLoader(root), []string{"a.glb", "gone.glb"}, tracker, 1)
	assert.True(t, errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled), "got %v", err)
	assert.False(t, tracker.Active())
	assert.GreaterOrEqual(t, tracker.Failed(), 1)
}

func TestLoadAllWithoutModels(t *testing.T) {
	tracker := NewTracker()
	models, err := LoadAll(context.Background(), NewGLBLoader(t.TempDir()), []string{"", ""}, tracker, 2)
	require.NoError(t, err)
	assert.Empty(t, models)

	assert.Equal(t, 100.0, tracker.Progress())
	assert.False(t, tracker.Active())
	select {
	case <-tracker.Done():
	default:
		t.Fatal("tracker not done when nothing was announced")
	}
}

func TestTrackerProgress(t *testing.T) {
	tracker := NewTracker()
	assert.Equal(t, 100.0, tracker.Progress())

	tracker.Add(4)
	assert.True(t, tracker.Active())
	tracker.Finish(nil)
	assert.Equal(t, 25.0, tracker.Progress())
	tracker.Finish(errors.New("boom"))
	tracker.Finish(nil)
	tracker.Finish(nil)
	assert.Equal(t, 100.0, tracker.Progress())
	assert.Equal(t, 1, tracker.Failed())
	<-tracker.Done()
}

func TestBackdrops(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sunset.png", pngBytes(t))
	writeFile(t, dir, "night.png", []byte("not a picture"))

	b := NewBackdrops(dir)
	img, err := b.Lookup("sunset")
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, 4, img.Bounds().Dx())

	img, err = b.Lookup("city")
	assert.NoError(t, err)
	assert.Nil(t, img)

	_, err = b.Lookup("night")
	assert.ErrorIs(t, err, ErrUnsupported)

	var none *Backdrops
	img, err = none.Lookup("sunset")
	assert.NoError(t, err)
	assert.Nil(t, img)
}

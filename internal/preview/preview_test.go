package preview

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/storyscroll/internal/director"
	"github.com/ivlev/storyscroll/internal/effects"
	"github.com/ivlev/storyscroll/internal/scene"
	"github.com/ivlev/storyscroll/internal/source"
	"github.com/ivlev/storyscroll/internal/system"
	"github.com/ivlev/storyscroll/internal/vmath"
)

func testFrame() scene.Frame {
	return scene.Frame{
		Section:  "test",
		Progress: 1,
		Camera:   scene.Camera{Position: vmath.V3(0, 0, 5), FOV: 50},
		Lights: []scene.LightState{
			{Kind: director.LightAmbient, Color: scene.ParseColor(""), Intensity: 0.5},
			{Kind: director.LightPoint, Position: vmath.V3(1, 1, 0), Color: scene.ParseColor("#fbbf24"), Intensity: 1},
		},
		Object: scene.ObjectState{Scale: 2, Loaded: true},
		Blocks: []scene.Block{
			{Story: director.Story{Title: "Meet the Future", Text: "In the robot playground, innovation comes alive."}, Style: effects.BlockStyle{Opacity: 1, Scale: 1}},
			{Story: director.Story{Title: "Hidden"}, Style: effects.BlockStyle{Opacity: 0, Scale: 1}},
		},
	}
}

func TestRenderProducesFrame(t *testing.T) {
	r, err := NewRasterizer(320, 180, Options{Glow: 2, Pool: system.NewImagePool()})
	require.NoError(t, err)

	img := r.Render(testFrame(), false)
	defer r.Release(img)
	assert.Equal(t, image.Rect(0, 0, 320, 180), img.Rect)

	// The wireframe box sits in the middle of the frame, brighter than the
	// dark background around it.
	bg := img.RGBAAt(319, 0)
	assert.Less(t, int(bg.R)+int(bg.G)+int(bg.B), 200)

	bright := 0
	for y := 60; y < 120; y++ {
		for x := 110; x < 210; x++ {
			c := img.RGBAAt(x, y)
			if int(c.R)+int(c.G)+int(c.B) > 300 {
				bright++
			}
		}
	}
	assert.Greater(t, bright, 0)
	t.Logf("bright pixels around the object: %d", bright)
}

func TestRenderUsesBackdrop(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+3] = 255, 255
	}
	f, err := os.Create(filepath.Join(dir, "sunset.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	r, err := NewRasterizer(64, 36, Options{Backdrops: source.NewBackdrops(dir)})
	require.NoError(t, err)

	frame := scene.Frame{Environment: "sunset", Camera: scene.Camera{Position: vmath.V3(0, 0, 5), FOV: 50}}
	img := r.Render(frame, false)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, 0))
}

func TestRenderBadge(t *testing.T) {
	cta := &director.CallToAction{Text: "Continue", URL: "https://example.com"}
	r, err := NewRasterizer(400, 400, Options{CallToAction: cta})
	require.NoError(t, err)
	require.NotNil(t, r.badge)

	frame := scene.Frame{Progress: 1, Camera: scene.Camera{Position: vmath.V3(0, 0, 5), FOV: 50}, Object: scene.ObjectState{Position: vmath.V3(0, 0, 100)}}
	with := r.Render(frame, true)
	withPix := append([]byte(nil), with.Pix...)
	r.Release(with)
	without := r.Render(frame, false)
	assert.NotEqual(t, withPix, without.Pix)
}

func TestNewRasterizerRejectsEmptySize(t *testing.T) {
	_, err := NewRasterizer(0, 100, Options{})
	assert.Error(t, err)
}

func TestWrap(t *testing.T) {
	title, _, err := loadFaces(720)
	require.NoError(t, err)

	lines := wrap(title, "Where imagination meets execution", 200)
	assert.Greater(t, len(lines), 1)
	for _, l := range lines {
		t.Logf("%q", l)
	}
	assert.Equal(t, []string{"Supercalifragilistic"}, wrap(title, "Supercalifragilistic", 10))
	assert.Empty(t, wrap(title, "   ", 100))
}

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/storyscroll/internal/director"
	"github.com/ivlev/storyscroll/internal/host"
	"github.com/ivlev/storyscroll/internal/scene"
	"github.com/ivlev/storyscroll/internal/source"
)

type mapLoader map[string]*source.Model

func (l mapLoader) Load(path string) (*source.Model, error) {
	if m, ok := l[path]; ok {
		return m, nil
	}
	return nil, source.ErrNotFound
}

func TestPageLayoutStacksSections(t *testing.T) {
	scenario, err := director.NewDirector().GenerateScenario()
	require.NoError(t, err)

	p := NewPage(scenario, 60)
	p.Layout(800)

	top := 0.0
	for i, sec := range scenario.Sections {
		b, ok := p.Bounds(i)
		require.True(t, ok)
		assert.Equal(t, top, b.Top, "section %s", sec.ID)
		assert.Equal(t, sec.Height*800, b.Height)
		top += b.Height
	}
	assert.Equal(t, top, p.Height())

	_, ok := p.Bounds(len(scenario.Sections))
	assert.False(t, ok)
	assert.Equal(t, 0, p.Active(0))
	assert.Equal(t, 1, p.Active(scenario.Sections[0].Height*800))
	assert.Equal(t, -1, p.Active(top))
}

func TestPageMountDrivesSectionsIndependently(t *testing.T) {
	scenario, err := director.NewDirector().GenerateScenario("hero", "story")
	require.NoError(t, err)

	d := host.NewDispatcher(1280, 800)
	p := NewPage(scenario, 60)
	seen := make(map[string]int)
	p.Mount(d, func(f scene.Frame) { seen[f.Section]++ })

	scrollN, frameN := d.Listeners()
	assert.Equal(t, 2, scrollN)
	assert.Equal(t, 4, frameN)

	// Scroll to the middle of the hero section: the story section is still
	// ahead and stays at progress 0.
	d.Scroll(scenario.Sections[0].Height * 800 / 2)
	d.Frame(0)
	assert.InDelta(t, 0.5, p.Sections[0].Progress(), 1e-9)
	assert.Equal(t, 0.0, p.Sections[1].Progress())
	assert.Equal(t, 1, seen["hero"])
	assert.Equal(t, 1, seen["story"])

	p.Unmount()
	scrollN, frameN = d.Listeners()
	assert.Equal(t, 0, scrollN)
	assert.Equal(t, 0, frameN)
}

func TestPageLoadModels(t *testing.T) {
	scenario, err := director.NewDirector().GenerateScenario("hero", "story")
	require.NoError(t, err)

	car := &source.Model{Path: scenario.Sections[0].Model.Path}
	p := NewPage(scenario, 60)
	tracker := source.NewTracker()
	err = p.LoadModels(context.Background(), mapLoader{car.Path: car}, tracker, 1)
	assert.ErrorIs(t, err, source.ErrNotFound)
	assert.Same(t, car, p.Sections[0].model)
	assert.Nil(t, p.Sections[1].model)
}

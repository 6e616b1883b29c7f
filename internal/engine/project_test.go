package engine

import (
	"bytes"
	"context"
	"errors"
	"image"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/storyscroll/internal/config"
	"github.com/ivlev/storyscroll/internal/director"
	"github.com/ivlev/storyscroll/internal/scene"
	"github.com/ivlev/storyscroll/internal/source"
	"github.com/ivlev/storyscroll/internal/video"
)

type recordingEncoder struct {
	mu       sync.Mutex
	frames   map[string]int
	joined   []string
	failOpen bool
}

func (e *recordingEncoder) OpenSegment(_ context.Context, path string, params config.SegmentParams, _ string, _ int) (video.SegmentWriter, error) {
	if e.failOpen {
		return nil, errors.New("no encoder")
	}
	return &recordingSegment{enc: e, path: path, size: image.Pt(params.Width, params.Height)}, nil
}

func (e *recordingEncoder) Concatenate(_ context.Context, paths []string, _ string, _ string, _ config.Config) error {
	e.joined = append([]string(nil), paths...)
	return nil
}

type recordingSegment struct {
	enc  *recordingEncoder
	path string
	size image.Point
}

func (s *recordingSegment) WriteFrame(img image.Image) error {
	if img.Bounds().Size() != s.size {
		return errors.New("wrong frame size")
	}
	s.enc.mu.Lock()
	defer s.enc.mu.Unlock()
	s.enc.frames[s.path]++
	return nil
}

func (s *recordingSegment) Close() error { return nil }

type missingLoader struct{}

func (missingLoader) Load(path string) (*source.Model, error) {
	return nil, source.ErrNotFound
}

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Width, cfg.Height = 64, 36
	cfg.FPS = 10
	cfg.TotalDuration = 2
	cfg.Workers = 2
	return &cfg
}

func TestProjectRunEncodesEverySection(t *testing.T) {
	scenario, err := director.NewDirector().GenerateScenario("hero", "story")
	require.NoError(t, err)

	enc := &recordingEncoder{frames: make(map[string]int)}
	p := NewProject(smallConfig(), scenario, enc, missingLoader{})
	require.NoError(t, p.Run(context.Background()))

	require.Len(t, enc.joined, 2)
	total := 0
	for i, path := range enc.joined {
		want := scrollFrames(p.Config.SectionDurations[i], p.Config.FPS)
		assert.Equal(t, want, enc.frames[path], "segment %d", i)
		total += enc.frames[path]
	}
	t.Logf("frames per segment: %v", enc.frames)
	assert.Greater(t, total, 20)
}

func TestProjectRunReportsEncoderFailure(t *testing.T) {
	scenario, err := director.NewDirector().GenerateScenario("hero")
	require.NoError(t, err)

	p := NewProject(smallConfig(), scenario, &recordingEncoder{failOpen: true}, nil)
	err = p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hero")
}

func TestProjectDumpScrollsToTheEnd(t *testing.T) {
	scenario, err := director.NewDirector().GenerateScenario("story")
	require.NoError(t, err)

	var buf bytes.Buffer
	p := NewProject(smallConfig(), scenario, nil, nil)
	require.NoError(t, p.Dump(context.Background(), &buf))

	dec := yaml.NewDecoder(strings.NewReader(buf.String()))
	var frames []scene.Frame
	for {
		var f scene.Frame
		if err := dec.Decode(&f); err != nil {
			break
		}
		frames = append(frames, f)
	}
	require.Len(t, frames, 20)
	assert.Equal(t, 0, frames[0].Phase)
	assert.Equal(t, 3, frames[len(frames)-1].Phase)
}

func TestProjectRejectsEmptyScenario(t *testing.T) {
	p := NewProject(smallConfig(), &director.Scenario{Version: "1.0"}, nil, nil)
	assert.Error(t, p.Run(context.Background()))
	assert.Error(t, p.Dump(context.Background(), &bytes.Buffer{}))
}

package system

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLatestAudio(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.mp3")
	newer := filepath.Join(dir, "voice.WAV")
	require.NoError(t, os.WriteFile(old, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(newer, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	got, err := FindLatestAudio(dir)
	require.NoError(t, err)
	assert.Equal(t, newer, got)
}

func TestFindLatestAudioEmpty(t *testing.T) {
	_, err := FindLatestAudio(t.TempDir())
	assert.Error(t, err)
}

func TestDecodedDurationRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wave file"), 0644))
	_, err := decodedDuration(path)
	assert.Error(t, err)
}

func TestImagePoolReusesBySize(t *testing.T) {
	p := NewImagePool()
	rect := image.Rect(0, 0, 8, 4)

	img := p.Get(rect)
	require.NotNil(t, img)
	assert.Equal(t, rect, img.Rect)
	p.Put(img)

	other := p.Get(image.Rect(0, 0, 2, 2))
	assert.Equal(t, image.Rect(0, 0, 2, 2), other.Rect)

	// Unknown sizes are ignored.
	p.Put(image.NewRGBA(image.Rect(0, 0, 5, 5)))
	p.Put(nil)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KiB", FormatBytes(1024))
	assert.Equal(t, "1.5 MiB", FormatBytes(1536*1024))
}

func TestCollectStats(t *testing.T) {
	s := CollectStats(0)
	assert.Greater(t, s.Cores, 0)
	assert.Greater(t, s.Goroutines, 0)
	t.Logf("\n%s", s.Report())
}

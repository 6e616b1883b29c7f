package video

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/storyscroll/internal/config"
)

func TestBuildFFmpegArgs(t *testing.T) {
	params := config.SegmentParams{
		Width: 640, Height: 360, FPS: 30, Duration: 4.5,
		ExtraArgs: []string{"-tune", "animation"},
	}
	args := buildFFmpegArgs("out.mp4", params, "libx264", 23)
	joined := strings.Join(args, " ")
	t.Logf("args: %s", joined)

	assert.Contains(t, joined, "-video_size 640x360")
	assert.Contains(t, joined, "-framerate 30")
	assert.Contains(t, joined, "-crf 23 -preset medium")
	assert.Contains(t, joined, "-tune animation out.mp4")
	assert.Equal(t, "out.mp4", args[len(args)-1])
}

func TestQualityArgs(t *testing.T) {
	assert.Equal(t, []string{"-b:v", "7500k"}, qualityArgs("h264_videotoolbox", 75))
	assert.Equal(t, []string{"-cq", "28"}, qualityArgs("h264_nvenc", 28))
	assert.Equal(t, []string{"-crf", "18", "-preset", "medium"}, qualityArgs("libx264", 18))
}

func TestWriteRawRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(2, 3, 4, 4))
	img.Set(2, 3, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, writeRawRGBA(&buf, img))
	assert.Equal(t, 2*1*4, buf.Len())
	assert.Equal(t, []byte{255, 0, 0, 255}, buf.Bytes()[:4])
}

func TestConcatArgsXfadeOffsets(t *testing.T) {
	cfg := config.Config{
		TransitionType:   "fade",
		FadeDuration:     0.5,
		SectionDurations: []float64{4, 6, 5},
		VideoEncoder:     "libx264",
		Quality:          23,
	}
	segs := []string{"s0.mp4", "s1.mp4", "s2.mp4"}
	require.True(t, needsFilterGraph(segs, cfg))

	args := concatArgs(segs, "final.mp4", cfg)
	joined := strings.Join(args, " ")
	t.Logf("args: %s", joined)

	assert.Contains(t, joined, "[0:v][1:v]xfade=transition=fade:duration=0.500000:offset=3.500000[v1]")
	assert.Contains(t, joined, "[v1][2:v]xfade=transition=fade:duration=0.500000:offset=9.000000[v2]")
	assert.Contains(t, joined, "-map [v2]")
	assert.NotContains(t, joined, "-shortest")
}

func TestConcatArgsWithAudio(t *testing.T) {
	cfg := config.Config{
		TransitionType:   "none",
		AudioPath:        "voice.mp3",
		BackgroundAudio:  "music.mp3",
		BackgroundVolume: 0.3,
		TotalDuration:    20,
		VideoEncoder:     "libx264",
	}
	args := concatArgs([]string{"a.mp4", "b.mp4"}, "final.mp4", cfg)
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "concat=n=2:v=1:a=0[vconcat]")
	assert.Contains(t, joined, "-i voice.mp3")
	assert.Contains(t, joined, "-stream_loop -1 -i music.mp3")
	assert.Contains(t, joined, "-map [aout] -shortest")
}

func TestNeedsFilterGraph(t *testing.T) {
	assert.False(t, needsFilterGraph([]string{"a"}, config.Config{TransitionType: "fade"}))
	assert.False(t, needsFilterGraph([]string{"a", "b"}, config.Config{TransitionType: "none"}))
	assert.True(t, needsFilterGraph([]string{"a"}, config.Config{AudioPath: "x.mp3"}))
}

// Package video encodes rasterized frames with ffmpeg and joins section
// segments into the final clip.
package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ivlev/storyscroll/internal/config"
)

type VideoEncoder interface {
	OpenSegment(ctx context.Context, videoPath string, params config.SegmentParams, encoderName string, quality int) (SegmentWriter, error)
	Concatenate(ctx context.Context, segmentPaths []string, finalPath string, tmpDir string, params config.Config) error
}

// SegmentWriter receives the frames of one segment in order
type SegmentWriter interface {
	WriteFrame(img image.Image) error
	Close() error
}

type FFmpegEncoder struct {
	Binary string // Defaults to "ffmpeg"
}

func (e *FFmpegEncoder) binary() string {
	if e.Binary == "" {
		return "ffmpeg"
	}
	return e.Binary
}

// OpenSegment starts an ffmpeg process reading raw RGBA frames of the
// segment size from stdin
func (e *FFmpegEncoder) OpenSegment(
	ctx context.Context,
	videoPath string,
	params config.SegmentParams,
	encoderName string,
	quality int,
) (SegmentWriter, error) {
	args := buildFFmpegArgs(videoPath, params, encoderName, quality)
	cmd := exec.CommandContext(ctx, e.binary(), args...)

	seg := &ffmpegSegment{cmd: cmd, width: params.Width, height: params.Height}
	cmd.Stdout = &seg.log
	cmd.Stderr = &seg.log

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	seg.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return seg, nil
}

type ffmpegSegment struct {
	cmd           *exec.Cmd
	stdin         io.WriteCloser
	log           bytes.Buffer
	width, height int
	frames        int
	closed        bool
}

func (s *ffmpegSegment) WriteFrame(img image.Image) error {
	b := img.Bounds()
	if b.Dx() != s.width || b.Dy() != s.height {
		return fmt.Errorf("frame %d is %dx%d, segment is %dx%d", s.frames, b.Dx(), b.Dy(), s.width, s.height)
	}
	if err := writeRawRGBA(s.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w", err)
	}
	s.frames++
	return nil
}

func (s *ffmpegSegment) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\nLog: %s", err, s.log.String())
	}
	return nil
}

func buildFFmpegArgs(
	videoPath string,
	params config.SegmentParams,
	encoderName string,
	quality int,
) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
		"-t", fmt.Sprintf("%f", params.Duration),
		"-r", fmt.Sprintf("%d", params.FPS),
		"-pix_fmt", "yuv420p",
		"-c:v", encoderName,
	}
	args = append(args, qualityArgs(encoderName, quality)...)
	args = append(args, params.ExtraArgs...)
	args = append(args, videoPath)
	return args
}

func qualityArgs(encoderName string, quality int) []string {
	switch encoderName {
	case "h264_videotoolbox":
		// VideoToolbox ignores -q:v on some versions, so use a bitrate.
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Rect, img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}

func (e *FFmpegEncoder) Concatenate(ctx context.Context, segmentPaths []string, finalPath string, tmpDir string, params config.Config) error {
	if len(segmentPaths) == 0 {
		return fmt.Errorf("no segments to join")
	}
	if !needsFilterGraph(segmentPaths, params) {
		concatFilePath := filepath.Join(tmpDir, "inputs.txt")
		f, err := os.Create(concatFilePath)
		if err != nil {
			return err
		}
		for _, p := range segmentPaths {
			absPath, _ := filepath.Abs(p)
			fmt.Fprintf(f, "file '%s'\n", absPath)
		}
		f.Close()

		cmd := exec.CommandContext(ctx, e.binary(), "-y",
			"-f", "concat", "-safe", "0", "-i", concatFilePath,
			"-c", "copy", finalPath,
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("ffmpeg concat error: %v, output: %s", err, string(out))
		}
		return nil
	}

	args := concatArgs(segmentPaths, finalPath, params)
	cmd := exec.CommandContext(ctx, e.binary(), args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg xfade error: %v, output: %s", err, string(out))
	}
	return nil
}

// needsFilterGraph reports whether segments are joined with a filter graph:
// a transition between them or audio to mix in
func needsFilterGraph(segmentPaths []string, params config.Config) bool {
	return (hasTransition(params) && len(segmentPaths) > 1) ||
		params.BackgroundAudio != "" ||
		params.AudioPath != ""
}

func hasTransition(params config.Config) bool {
	return params.TransitionType != "" && params.TransitionType != "none"
}

func concatArgs(segmentPaths []string, finalPath string, params config.Config) []string {
	fadeDuration := params.FadeDuration

	args := []string{"-y"}
	for _, p := range segmentPaths {
		args = append(args, "-i", p)
	}

	audioIndex := -1
	if params.AudioPath != "" {
		audioIndex = len(segmentPaths)
		args = append(args, "-i", params.AudioPath)
	}

	filterGraph := ""
	lastOut := "[0:v]"
	currentOffset := 0.0

	if hasTransition(params) && len(segmentPaths) > 1 {
		for i := 1; i < len(segmentPaths); i++ {
			duration := params.TotalDuration / float64(len(segmentPaths))
			if i-1 < len(params.SectionDurations) {
				duration = params.SectionDurations[i-1]
			}
			currentOffset += duration - fadeDuration

			nextIn := fmt.Sprintf("[%d:v]", i)
			outName := fmt.Sprintf("[v%d]", i)
			filterGraph += fmt.Sprintf("%s%sxfade=transition=%s:duration=%f:offset=%f%s;",
				lastOut, nextIn, params.TransitionType, fadeDuration, currentOffset, outName)
			lastOut = outName
		}
	} else if len(segmentPaths) > 1 {
		concatInputs := ""
		for i := 0; i < len(segmentPaths); i++ {
			concatInputs += fmt.Sprintf("[%d:v]", i)
		}
		filterGraph += fmt.Sprintf("%sconcat=n=%d:v=1:a=0[vconcat];", concatInputs, len(segmentPaths))
		lastOut = "[vconcat]"
	}

	audioOut := ""
	if audioIndex != -1 {
		if params.BackgroundAudio != "" {
			bgIndex := audioIndex + 1
			args = append(args, "-stream_loop", "-1", "-i", params.BackgroundAudio)

			bgVol := params.BackgroundVolume
			fadeInDur := 5.0
			fadeOutDur := 5.0
			totalDur := params.TotalDuration
			if totalDur < fadeInDur+fadeOutDur {
				fadeInDur = totalDur * 0.1
				fadeOutDur = totalDur * 0.1
			}

			bgVolExpr := fmt.Sprintf("volume='%f*(if(lte(t,%f), 0.1 + 0.9*(t/%f), if(gte(t, %f), (%f-t)/%f, 1.0)))':eval=frame",
				bgVol, fadeInDur, fadeInDur, totalDur-fadeOutDur, totalDur, fadeOutDur)

			filterGraph += fmt.Sprintf("[%d:a]%s[bg_a];[%d:a]volume=1.0[main_a];[main_a][bg_a]amix=inputs=2:duration=first:dropout_transition=3[aout];",
				bgIndex, bgVolExpr, audioIndex)
			audioOut = "[aout]"
		} else {
			audioOut = fmt.Sprintf("%d:a", audioIndex)
		}
	}

	filterGraph = strings.TrimSuffix(filterGraph, ";")
	if filterGraph != "" {
		args = append(args, "-filter_complex", filterGraph)
	}

	args = append(args, "-map", lastOut)
	if audioOut != "" {
		args = append(args, "-map", audioOut, "-shortest")
	}

	args = append(args, "-c:v", params.VideoEncoder, "-pix_fmt", "yuv420p")
	args = append(args, qualityArgs(params.VideoEncoder, params.Quality)...)
	args = append(args, finalPath)
	return args
}

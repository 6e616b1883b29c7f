package engine

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/storyscroll/internal/config"
	"github.com/ivlev/storyscroll/internal/director"
	"github.com/ivlev/storyscroll/internal/host"
	"github.com/ivlev/storyscroll/internal/preview"
	"github.com/ivlev/storyscroll/internal/scene"
	"github.com/ivlev/storyscroll/internal/scroll"
	"github.com/ivlev/storyscroll/internal/source"
	"github.com/ivlev/storyscroll/internal/system"
	"github.com/ivlev/storyscroll/internal/video"
	"github.com/ivlev/storyscroll/internal/vmath"
)

// Project exports a scenario offline: every section is scrolled from top to
// bottom on its own simulated host, rasterized and encoded as a segment,
// and the segments are joined into one video.
type Project struct {
	Config    *config.Config
	Scenario  *director.Scenario
	Encoder   video.VideoEncoder
	Loader    source.Loader
	Backdrops *source.Backdrops
	tempDir   string
	models    map[string]*source.Model
}

func NewProject(cfg *config.Config, scenario *director.Scenario, ve video.VideoEncoder, loader source.Loader) *Project {
	return &Project{
		Config:   cfg,
		Scenario: scenario,
		Encoder:  ve,
		Loader:   loader,
	}
}

// Run renders and encodes every section and writes Config.OutputVideo
func (p *Project) Run(ctx context.Context) error {
	startTime := time.Now()

	var err error
	p.tempDir, err = os.MkdirTemp("", "storyscroll_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(p.tempDir)

	sections := p.Scenario.Sections
	if len(sections) == 0 {
		return fmt.Errorf("scenario has no sections")
	}

	p.calculateDurations()
	minDur := p.Config.SectionDurations[0]
	for _, d := range p.Config.SectionDurations {
		minDur = math.Min(minDur, d)
	}
	if len(sections) > 1 && p.Config.FadeDuration >= minDur {
		p.Config.FadeDuration = minDur / 2.0
		fmt.Printf("[!] Transition shortened to %.2fs for a short section\n", p.Config.FadeDuration)
		p.calculateDurations()
	}

	fmt.Println("--- [PROJECT: SCROLL STORY] ---")
	fmt.Printf("[*] Scenario: %s | Sections: %d\n", p.Scenario.Title, len(sections))
	fmt.Printf("[*] Resolution: %dx%d @ %d FPS | Workers: %d\n", p.Config.Width, p.Config.Height, p.Config.FPS, p.Config.Workers)
	fmt.Println("-----------------------------")

	loadStart := time.Now()
	p.loadModels(ctx)
	loadTime := time.Since(loadStart)

	renderStart := time.Now()
	results := make([]string, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, p.Config.Workers))
	for i := range sections {
		g.Go(func() error {
			segPath := filepath.Join(p.tempDir, fmt.Sprintf("s%d.mp4", i))
			if err := p.renderSection(gctx, i, segPath); err != nil {
				return fmt.Errorf("section %d (%s): %w", i, sections[i].ID, err)
			}
			results[i] = segPath
			fmt.Printf("[>] Ready: %d/%d (%s)\n", i+1, len(sections), sections[i].ID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	renderTime := time.Since(renderStart)

	fmt.Println("[*] Joining sections with transitions...")
	concatStart := time.Now()
	if err := p.Encoder.Concatenate(ctx, results, p.Config.OutputVideo, p.tempDir, *p.Config); err != nil {
		return fmt.Errorf("joining final video: %w", err)
	}
	concatTime := time.Since(concatStart)

	if p.Config.ShowStats {
		p.report(time.Since(startTime), loadTime, renderTime, concatTime)
	}
	return nil
}

func (p *Project) loadModels(ctx context.Context) {
	p.models = make(map[string]*source.Model)
	if p.Loader == nil {
		return
	}
	paths := make([]string, 0, len(p.Scenario.Sections))
	for _, sec := range p.Scenario.Sections {
		paths = append(paths, sec.Model.Path)
	}
	tracker := source.NewTracker()
	models, err := source.LoadAll(ctx, p.Loader, paths, tracker, p.Config.Workers)
	if err != nil {
		log.Printf("[!] Some models did not load, their sections render without them: %v", err)
	}
	for path, m := range models {
		p.models[path] = m
	}
	log.Printf("[*] Models loaded: %d (%d failed)", len(models), tracker.Failed())
}

func (p *Project) renderSection(ctx context.Context, i int, segPath string) error {
	cfg := p.Config
	sec := p.Scenario.Sections[i]
	last := i == len(p.Scenario.Sections)-1

	opts := preview.Options{Glow: cfg.Glow, Backdrops: p.Backdrops}
	if last {
		opts.CallToAction = p.Scenario.CallToAction
	}
	rast, err := preview.NewRasterizer(cfg.Width, cfg.Height, opts)
	if err != nil {
		return err
	}

	duration := cfg.SectionDurations[i]
	params := config.SegmentParams{
		Width:        cfg.Width,
		Height:       cfg.Height,
		FPS:          cfg.FPS,
		Duration:     duration,
		SectionIndex: i,
		ExtraArgs:    cfg.ExtraArgs,
	}
	seg, err := p.Encoder.OpenSegment(ctx, segPath, params, cfg.VideoEncoder, cfg.Quality)
	if err != nil {
		return err
	}

	err = p.simulate(ctx, sec, p.models[sec.Model.Path], duration, func(f scene.Frame) error {
		img := rast.Render(f, last)
		defer rast.Release(img)
		return seg.WriteFrame(img)
	})
	if cerr := seg.Close(); err == nil {
		err = cerr
	}
	return err
}

// Dump runs every section like Run but writes the frame descriptors to w
// as YAML documents instead of encoding video
func (p *Project) Dump(ctx context.Context, w io.Writer) error {
	if len(p.Scenario.Sections) == 0 {
		return fmt.Errorf("scenario has no sections")
	}
	p.calculateDurations()
	p.loadModels(ctx)

	fw := scene.NewFrameWriter(w)
	for i, sec := range p.Scenario.Sections {
		err := p.simulate(ctx, sec, p.models[sec.Model.Path], p.Config.SectionDurations[i], fw.Write)
		if err != nil {
			return fmt.Errorf("section %d (%s): %w", i, sec.ID, err)
		}
	}
	if err := fw.Close(); err != nil {
		return err
	}
	log.Printf("[+++] Frames written: %d", fw.Count())
	return nil
}

// simulate mounts sec on a fresh host and scrolls it from top to bottom
// over duration seconds along the configured scroll easing. emit receives
// every frame; the first error stops the run.
func (p *Project) simulate(ctx context.Context, sec director.Section, model *source.Model, duration float64, emit func(scene.Frame) error) error {
	cfg := p.Config
	vw, vh := float64(cfg.Width), float64(cfg.Height)

	ease, err := vmath.ParseEasing(cfg.ScrollEase)
	if err != nil {
		ease = vmath.EaseLinear
	}

	span, _ := scroll.ParseSpan(sec.Span)
	bounds := scroll.Bounds{Top: 0, Height: sec.Height * vh}
	end := bounds.Height
	if span == scroll.SpanPinned {
		end -= vh
	}
	end = math.Max(end, 0)

	d := host.NewDispatcher(vw, vh)
	s := NewSection(sec, cfg.FPS)
	s.SetModel(model)

	var emitErr error
	s.Mount(d, staticElement(bounds), func(f scene.Frame) {
		if emitErr == nil {
			emitErr = emit(f)
		}
	})
	defer s.Unmount()

	frames := scrollFrames(duration, cfg.FPS)
	for n := 0; n < frames; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		t := 1.0
		if frames > 1 {
			t = float64(n) / float64(frames-1)
		}
		d.Scroll(ease(t) * end)
		d.Frame(float64(n) / float64(cfg.FPS))
		if emitErr != nil {
			return emitErr
		}
	}
	return nil
}

func scrollFrames(duration float64, fps int) int {
	return max(1, int(math.Round(duration*float64(fps))))
}

type staticElement scroll.Bounds

func (e staticElement) Bounds() (scroll.Bounds, bool) {
	return scroll.Bounds(e), true
}

// calculateDurations splits the total duration across sections in
// proportion to their story count. Each transition overlaps two segments by
// FadeDuration, so the segments sum to TotalDuration plus the overlaps.
// Durations are aligned to whole frames for stable xfade offsets.
func (p *Project) calculateDurations() {
	sections := p.Scenario.Sections
	n := len(sections)
	A := p.Config.TotalDuration
	F := p.Config.FadeDuration
	numFades := float64(max(n-1, 0))
	totalClipsDuration := A + numFades*F

	weights := make([]float64, n)
	sum := 0.0
	for i, sec := range sections {
		weights[i] = float64(max(len(sec.Stories), 1))
		sum += weights[i]
	}

	fps := float64(max(p.Config.FPS, 1))
	durations := make([]float64, n)
	for i := range durations {
		d := totalClipsDuration * weights[i] / sum
		if n > 1 && d < F*1.1 {
			d = F * 1.1
		}
		durations[i] = math.Max(math.Round(d*fps), 1) / fps
	}
	p.Config.SectionDurations = durations
}

func (p *Project) report(total, load, render, concat time.Duration) {
	frames := 0
	for _, d := range p.Config.SectionDurations {
		frames += scrollFrames(d, p.Config.FPS)
	}
	fps := float64(frames) / total.Seconds()
	stats := system.CollectStats(200 * time.Millisecond)

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Model Loading: %.2fs\n"+
			"Rendering + Encoding: %.2fs\n"+
			"Concatenation: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"%s"+
			"----------------------------\n",
		p.Config.BuildVersion, total.Seconds(), load.Seconds(), render.Seconds(), concat.Seconds(), fps, stats.Report(),
	)
	fmt.Print(report)

	logEntry := fmt.Sprintf("[%s] Build: %s | Scenario: %s | Sections: %d | Frames: %d | Total: %.2fs | Render: %.2fs | FPS: %.2f | RSS: %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		p.Scenario.Title,
		len(p.Scenario.Sections),
		frames,
		total.Seconds(),
		render.Seconds(),
		fps,
		system.FormatBytes(stats.ProcessRSS),
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Could not write benchmark.log: %v\n", err)
	}
}

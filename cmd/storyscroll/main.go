package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mattn/go-shellwords"
	"github.com/mitchellh/go-homedir"

	"github.com/ivlev/storyscroll/internal/config"
	"github.com/ivlev/storyscroll/internal/director"
	"github.com/ivlev/storyscroll/internal/engine"
	"github.com/ivlev/storyscroll/internal/source"
	"github.com/ivlev/storyscroll/internal/system"
	"github.com/ivlev/storyscroll/internal/video"
)

var buildVersion = "dev"

func main() {
	system.InitResourceLimits()

	dirs := []string{"input/audio", "input/scenarios", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	defaults := config.Default()
	scenarioPtr := flag.String("scenario", "", "Scenario file, YAML or TOML (default: the newest file in input/scenarios/, else the preset lineup)")
	presetsPtr := flag.String("presets", strings.Join(director.DefaultLineup, ","), "Comma-separated section presets used when no scenario file is given")
	listPtr := flag.Bool("list-presets", false, "List the section presets and exit")
	initPtr := flag.Bool("init-scenario", false, "Write the preset lineup as a scenario file and exit")
	scenarioOutPtr := flag.String("scenario-output", "", "Where -init-scenario writes (default: input/scenarios/scenario_<time>.yaml)")
	dumpPtr := flag.String("dump", "", "Write frame descriptors as YAML to this file (- for stdout) instead of encoding video")
	outputPtr := flag.String("output", "", "Output video (default: output/<title>_<time>.mp4)")
	assetsPtr := flag.String("assets", defaults.AssetsDir, "Directory model paths are relative to")
	backdropsPtr := flag.String("backdrops", "", "Directory of environment images named after presets (sunset.png, city.jpg)")
	durationPtr := flag.Float64("duration", defaults.TotalDuration, "Total video duration in seconds")
	widthPtr := flag.Int("width", defaults.Width, "Width")
	heightPtr := flag.Int("height", defaults.Height, "Height")
	formatPtr := flag.String("format", "", "Frame format preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	fpsPtr := flag.Int("fps", defaults.FPS, "FPS")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Sections rendered in parallel")
	fadePtr := flag.Float64("fade", defaults.FadeDuration, "Transition duration (s)")
	transitionPtr := flag.String("transition", defaults.TransitionType, "xfade transition: fade, wipeleft, slideup, pixelize, circlecrop, dissolve, none")
	easePtr := flag.String("scroll-ease", defaults.ScrollEase, "Easing of the simulated scroll through each section")
	audioPtr := flag.String("audio", "", "Voice-over audio (default: the newest file in input/audio/)")
	audioSyncPtr := flag.Bool("audio-sync", true, "Match the video duration to the audio")
	bgAudioPtr := flag.String("bg-audio", "", "Background music, looped under the voice-over")
	bgVolumePtr := flag.Float64("bg-volume", defaults.BackgroundVolume, "Background music volume")
	qualityPtr := flag.Int("quality", 0, "Video quality (0 - auto, x264: CRF 1-51, VideoToolbox: bitrate = Q*100kbit/s)")
	ffmpegArgsPtr := flag.String("ffmpeg-args", "", "Extra ffmpeg arguments for every segment, shell quoted")
	glowPtr := flag.Float64("glow", defaults.Glow, "Light glow blur radius, 0 disables it")
	statsPtr := flag.Bool("stats", false, "Print a performance report and append it to benchmark.log")

	flag.Parse()

	dir := director.NewDirector()
	if *listPtr {
		for _, id := range dir.Presets() {
			fmt.Println(id)
		}
		return
	}

	if *initPtr {
		scenario, err := dir.GenerateScenario(splitList(*presetsPtr)...)
		if err != nil {
			log.Fatalf("[-] Error: %v", err)
		}
		out := expand(*scenarioOutPtr)
		if out == "" {
			out = director.GenerateScenarioPath("input/scenarios")
		}
		os.MkdirAll(filepath.Dir(out), 0755)
		if err := director.WriteScenario(scenario, out); err != nil {
			log.Fatalf("[-] Error writing scenario: %v", err)
		}
		fmt.Printf("[+++] Success! Scenario saved: %s\n", out)
		return
	}

	scenario, scenarioPath := loadScenario(dir, expand(*scenarioPtr), *presetsPtr)
	if scenarioPath != "" {
		fmt.Printf("[*] Using scenario: %s\n", scenarioPath)
	}

	width, height := *widthPtr, *heightPtr
	switch *formatPtr {
	case "16:9":
		width, height = 1280, 720
	case "9:16":
		width, height = 720, 1280
	case "4:5":
		width, height = 1080, 1350
	}

	extraArgs, err := shellwords.Parse(*ffmpegArgsPtr)
	if err != nil {
		log.Fatalf("[-] Invalid -ffmpeg-args: %v", err)
	}

	totalDuration := *durationPtr
	audioPath := expand(*audioPtr)
	if audioPath == "" && *dumpPtr == "" {
		if latest, err := system.FindLatestAudio("input/audio"); err == nil {
			audioPath = latest
			fmt.Printf("[*] Selected audio: %s\n", audioPath)
		}
	}
	if audioPath != "" && *audioSyncPtr {
		audioDur, err := system.GetAudioDuration(audioPath)
		if err == nil {
			totalDuration = audioDur
			fmt.Printf("[*] Video duration set from audio: %.2fs\n", totalDuration)
		} else {
			log.Printf("[!] Could not read the audio duration: %v", err)
		}
	}

	cfg := &config.Config{
		ScenarioInput:    scenarioPath,
		Presets:          splitList(*presetsPtr),
		AssetsDir:        expand(*assetsPtr),
		FrameDump:        *dumpPtr,
		TotalDuration:    totalDuration,
		Width:            width,
		Height:           height,
		FPS:              *fpsPtr,
		Workers:          *workersPtr,
		FadeDuration:     *fadePtr,
		TransitionType:   *transitionPtr,
		ScrollEase:       *easePtr,
		AudioPath:        audioPath,
		BackgroundAudio:  expand(*bgAudioPtr),
		BackgroundVolume: *bgVolumePtr,
		ExtraArgs:        extraArgs,
		ShowStats:        *statsPtr,
		Glow:             *glowPtr,
		BuildVersion:     buildVersion,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loader := source.NewGLBLoader(cfg.AssetsDir)

	if cfg.FrameDump != "" {
		project := engine.NewProject(cfg, scenario, nil, loader)
		if err := dumpFrames(ctx, project, cfg.FrameDump); err != nil {
			log.Fatalf("[-] Frame dump error: %v", err)
		}
		return
	}

	cfg.OutputVideo = expand(*outputPtr)
	if cfg.OutputVideo == "" {
		name := strings.ReplaceAll(strings.ToLower(scenario.Title), " ", "_")
		if name == "" {
			name = "story"
		}
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		cfg.OutputVideo = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", name, timestamp))
	}

	encoderName, _ := system.GetBestH264Encoder()
	if encoderName != "libx264" {
		fmt.Printf("[*] Hardware acceleration detected: %s\n", encoderName)
	}
	cfg.VideoEncoder = encoderName

	cfg.Quality = *qualityPtr
	if cfg.Quality == 0 {
		switch encoderName {
		case "h264_videotoolbox":
			cfg.Quality = 75
		case "h264_nvenc":
			cfg.Quality = 28
		default:
			cfg.Quality = 23
		}
	}

	project := engine.NewProject(cfg, scenario, &video.FFmpegEncoder{}, loader)
	if *backdropsPtr != "" {
		project.Backdrops = source.NewBackdrops(expand(*backdropsPtr))
	}
	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] Project error: %v", err)
	}

	fmt.Printf("[+++] Success! Result: %s\n", cfg.OutputVideo)
}

// loadScenario reads path, else the newest scenario in input/scenarios,
// else builds one from the preset list
func loadScenario(dir *director.Director, path, presets string) (*director.Scenario, string) {
	if path == "" {
		if latest, err := director.FindLatestScenario("input/scenarios"); err == nil {
			path = latest
		}
	}
	if path != "" {
		scenario, err := director.ReadScenario(path)
		if err != nil {
			log.Fatalf("[-] Error reading scenario: %v", err)
		}
		return scenario, path
	}

	scenario, err := dir.GenerateScenario(splitList(presets)...)
	if err != nil {
		log.Fatalf("[-] Error: %v", err)
	}
	fmt.Printf("[*] Using presets: %s\n", presets)
	return scenario, ""
}

func dumpFrames(ctx context.Context, project *engine.Project, path string) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(expand(path))
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return project.Dump(ctx, w)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// expand resolves a leading ~ in path
func expand(path string) string {
	if path == "" {
		return ""
	}
	p, err := homedir.Expand(path)
	if err != nil {
		log.Printf("[!] Could not expand %s: %v", path, err)
		return path
	}
	return p
}

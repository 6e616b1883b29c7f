// Package config holds the run settings the command-line harnesses fill from
// flags.
package config

// Config is one export or viewer run
type Config struct {
	ScenarioInput    string
	ScenarioOutput   string
	Presets          []string
	AssetsDir        string
	OutputVideo      string
	FrameDump        string
	TotalDuration    float64
	Width            int
	Height           int
	FPS              int
	Workers          int
	FadeDuration     float64
	TransitionType   string
	ScrollEase       string
	AudioPath        string
	BackgroundAudio  string
	BackgroundVolume float64
	SectionDurations []float64
	VideoEncoder     string
	Quality          int
	ExtraArgs        []string // Appended to every segment encode
	ShowStats        bool
	Glow             float64 // Blur radius of the preview glow pass, 0 disables it
	BuildVersion     string
}

// Default returns the settings used when a flag is not given
func Default() Config {
	return Config{
		AssetsDir:        ".",
		OutputVideo:      "output.mp4",
		TotalDuration:    30,
		Width:            1280,
		Height:           720,
		FPS:              30,
		Workers:          4,
		FadeDuration:     0.5,
		TransitionType:   "fade",
		ScrollEase:       "power2.inOut",
		BackgroundVolume: 0.3,
		VideoEncoder:     "libx264",
		Quality:          23,
		Glow:             6,
		BuildVersion:     "dev",
	}
}

// SegmentParams describes the encode of one section
type SegmentParams struct {
	Width, Height int
	FPS           int
	Duration      float64
	SectionIndex  int
	ExtraArgs     []string
}

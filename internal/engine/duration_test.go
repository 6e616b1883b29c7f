package engine

import (
	"math"
	"testing"

	"github.com/ivlev/storyscroll/internal/config"
	"github.com/ivlev/storyscroll/internal/director"
)

func sectionsWithStories(counts ...int) *director.Scenario {
	s := &director.Scenario{Version: "1.0"}
	for _, n := range counts {
		s.Sections = append(s.Sections, director.Section{Stories: make([]director.Story, n)})
	}
	return s
}

func TestCalculateDurations(t *testing.T) {
	cfg := &config.Config{
		TotalDuration: 100.0, // A
		FadeDuration:  0.5,   // F
		FPS:           30,
	}
	project := &Project{Config: cfg, Scenario: sectionsWithStories(3, 4, 4, 4, 2, 3)}
	project.calculateDurations()

	durations := cfg.SectionDurations
	if len(durations) != 6 {
		t.Fatalf("Expected 6 durations, got %d", len(durations))
	}

	// 1. Segments minus the transition overlaps equal the total, up to
	// frame alignment
	sum := 0.0
	for _, d := range durations {
		sum += d
	}
	expectedSum := cfg.TotalDuration + 5*cfg.FadeDuration
	if math.Abs(sum-expectedSum) > 6.0/30 {
		t.Errorf("Expected sum %f, got %f (diff %f)", expectedSum, sum, math.Abs(sum-expectedSum))
	}

	// 2. Every duration is a whole number of frames
	for i, d := range durations {
		frames := d * 30
		if math.Abs(frames-math.Round(frames)) > 1e-9 {
			t.Errorf("Section %d duration %f is not frame aligned", i, d)
		}
	}

	// 3. Durations follow the story counts
	if math.Abs(durations[1]-durations[2]) > 1e-9 {
		t.Errorf("Sections with equal story counts differ: %f vs %f", durations[1], durations[2])
	}
	if durations[4] >= durations[0] || durations[0] >= durations[1] {
		t.Errorf("Durations not proportional to story count: %v", durations)
	}
	t.Logf("durations: %v", durations)
}

func TestCalculateDurationsFloorsAtTransition(t *testing.T) {
	cfg := &config.Config{TotalDuration: 1, FadeDuration: 2, FPS: 10}
	project := &Project{Config: cfg, Scenario: sectionsWithStories(1, 20)}
	project.calculateDurations()

	if cfg.SectionDurations[0] < cfg.FadeDuration {
		t.Errorf("Section shorter than the transition: %f", cfg.SectionDurations[0])
	}
}

func TestCalculateDurationsSingleSection(t *testing.T) {
	cfg := &config.Config{TotalDuration: 7.25, FadeDuration: 0.5, FPS: 4}
	project := &Project{Config: cfg, Scenario: sectionsWithStories(4)}
	project.calculateDurations()

	if len(cfg.SectionDurations) != 1 || cfg.SectionDurations[0] != 7.25 {
		t.Errorf("Expected [7.25], got %v", cfg.SectionDurations)
	}
}

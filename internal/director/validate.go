package director

import (
	"errors"
	"fmt"
	"math"

	"github.com/Masterminds/semver/v3"

	"github.com/ivlev/storyscroll/internal/scroll"
	"github.com/ivlev/storyscroll/internal/vmath"
)

// ErrInvalidScenario wraps every structural problem found by Validate
var ErrInvalidScenario = errors.New("invalid scenario")

// Defaults used when a section leaves a field at zero
const (
	DefaultSmoothing     = 0.05
	DefaultLookSmoothing = 0.1
	DefaultFadeRange     = 0.1
	DefaultTweenDuration = 1.2
	DefaultEase          = "power2.inOut"
	DefaultScaleEase     = "elastic.out(1, 0.5)"
	DefaultRevealSpan    = 0.15
)

// SupportedVersions is the range of scenario format versions this build reads
const SupportedVersions = "^1.0"

var versionConstraint = func() *semver.Constraints {
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		panic(err)
	}
	return c
}()

// ApplyDefaults fills zero fields of every section
func (s *Scenario) ApplyDefaults() {
	if s.Version == "" {
		s.Version = "1.0"
	}
	for i := range s.Sections {
		s.Sections[i].ApplyDefaults()
	}
}

// ApplyDefaults fills zero fields
func (sec *Section) ApplyDefaults() {
	if sec.Height <= 0 {
		sec.Height = math.Max(1, float64(len(sec.Stories)))
	}
	if sec.Model.Scale == 0 {
		sec.Model.Scale = 1
	}
	if sec.Camera.Mode == "" {
		sec.Camera.Mode = CameraPhase
	}
	if sec.Camera.Smoothing == 0 {
		sec.Camera.Smoothing = DefaultSmoothing
	}
	if sec.Camera.LookSmoothing == 0 {
		sec.Camera.LookSmoothing = DefaultLookSmoothing
	}
	if sec.Object.Duration == 0 {
		sec.Object.Duration = DefaultTweenDuration
	}
	if sec.Object.Ease == "" {
		sec.Object.Ease = DefaultEase
	}
	if sec.Object.ScaleDuration == 0 {
		sec.Object.ScaleDuration = sec.Object.Duration
	}
	if sec.Object.ScaleEase == "" {
		sec.Object.ScaleEase = DefaultScaleEase
	}
	if sec.Fade.Mode == "" {
		sec.Fade.Mode = FadeWindow
	}
	if sec.Fade.Range == 0 {
		sec.Fade.Range = DefaultFadeRange
	}
	if sec.Fade.Mode == FadeReveal && sec.Fade.Span <= 0 {
		sec.Fade.Span = DefaultRevealSpan
	}
}

// Validate checks that every table is consistent with its story count so
// that a phase index is always valid
func (s *Scenario) Validate() error {
	v, err := semver.NewVersion(s.Version)
	if err != nil {
		return fmt.Errorf("%w: version %q: %v", ErrInvalidScenario, s.Version, err)
	}
	if !versionConstraint.Check(v) {
		return fmt.Errorf("%w: version %s, want %s", ErrInvalidScenario, v, SupportedVersions)
	}
	if len(s.Sections) == 0 {
		return fmt.Errorf("%w: no sections", ErrInvalidScenario)
	}
	seen := make(map[string]bool)
	for i := range s.Sections {
		sec := &s.Sections[i]
		if sec.ID == "" {
			return fmt.Errorf("%w: section %d has no id", ErrInvalidScenario, i)
		}
		if seen[sec.ID] {
			return fmt.Errorf("%w: duplicate section id %q", ErrInvalidScenario, sec.ID)
		}
		seen[sec.ID] = true
		if err := sec.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks one section
func (sec *Section) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: section %q: %s", ErrInvalidScenario, sec.ID, fmt.Sprintf(format, args...))
	}

	n := len(sec.Stories)
	if n == 0 {
		return fail("no stories")
	}
	if _, err := scroll.ParseSpan(sec.Span); err != nil {
		return fail("%v", err)
	}

	switch sec.Camera.Mode {
	case CameraPhase:
		if len(sec.Camera.Keyframes) != n {
			return fail("%d camera keyframes for %d stories", len(sec.Camera.Keyframes), n)
		}
	case CameraPiecewise:
		if len(sec.Camera.Segments) == 0 {
			return fail("piecewise camera without segments")
		}
		prev := 0.0
		for i, seg := range sec.Camera.Segments {
			if seg.Until <= prev || seg.Until > 1 {
				return fail("segment %d ends at %v, want ascending values in (0, 1]", i, seg.Until)
			}
			prev = seg.Until
		}
	case CameraOrbit:
		if sec.Camera.Orbit == nil {
			return fail("orbit camera without orbit")
		}
	default:
		return fail("unknown camera mode %q", sec.Camera.Mode)
	}

	if k := sec.Camera.Smoothing; k <= 0 || k >= 1 {
		return fail("camera smoothing %v, want a value in (0, 1)", k)
	}
	if k := sec.Camera.LookSmoothing; k <= 0 || k >= 1 {
		return fail("camera look smoothing %v, want a value in (0, 1)", k)
	}
	if k := sec.Object.Smoothing; k < 0 || k >= 1 {
		return fail("object smoothing %v, want a value in [0, 1)", k)
	}

	if len(sec.Object.Poses) != 0 && len(sec.Object.Poses) != n {
		return fail("%d object poses for %d stories", len(sec.Object.Poses), n)
	}
	for _, name := range []string{sec.Object.Ease, sec.Object.ScaleEase} {
		if _, err := vmath.ParseEasing(name); err != nil {
			return fail("%v", err)
		}
	}

	if sec.Fade.Mode != FadeWindow && sec.Fade.Mode != FadeReveal {
		return fail("unknown fade mode %q", sec.Fade.Mode)
	}

	waves := append(append([]Oscillator{}, sec.Ambient.Position...), sec.Ambient.Rotation...)
	waves = append(waves, sec.Camera.Wobble...)
	waves = append(waves, sec.Camera.LookWobble...)
	for _, w := range waves {
		if err := checkOscillator(w); err != nil {
			return fail("%v", err)
		}
	}

	for i, l := range sec.Lights {
		switch l.Kind {
		case LightAmbient, LightDirectional, LightPoint, LightSpot:
		default:
			return fail("light %d has unknown kind %q", i, l.Kind)
		}
	}
	if sec.Particles != nil && sec.Particles.Count < 0 {
		return fail("negative particle count")
	}
	return nil
}

func checkOscillator(o Oscillator) error {
	switch o.Axis {
	case "x", "y", "z":
	default:
		return fmt.Errorf("oscillator axis %q", o.Axis)
	}
	switch o.Wave {
	case "", "sin", "cos":
	default:
		return fmt.Errorf("oscillator wave %q", o.Wave)
	}
	return nil
}

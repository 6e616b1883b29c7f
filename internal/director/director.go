package director

import (
	"fmt"
	"math"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/ivlev/storyscroll/internal/vmath"
)

// Director assembles scenarios from the built-in section presets
type Director struct {
	presets map[string]func() Section
	order   []string
}

// NewDirector creates a Director with every built-in preset registered
func NewDirector() *Director {
	d := &Director{presets: make(map[string]func() Section)}
	d.Register("hero", heroSection)
	d.Register("story", storySection)
	d.Register("earthquake", earthquakeSection)
	d.Register("destiny", destinySection)
	d.Register("creator", creatorSection)
	d.Register("culture", cultureSection)
	return d
}

// Register adds or replaces a preset
func (d *Director) Register(id string, build func() Section) {
	if _, ok := d.presets[id]; !ok {
		d.order = append(d.order, id)
	}
	d.presets[id] = build
}

// Presets lists registered preset ids in registration order
func (d *Director) Presets() []string {
	return append([]string(nil), d.order...)
}

// DefaultLineup is the landing page order
var DefaultLineup = []string{"hero", "story", "earthquake", "destiny"}

// GenerateScenario builds a scenario from the named presets. With no ids it
// uses DefaultLineup.
func (d *Director) GenerateScenario(ids ...string) (*Scenario, error) {
	if len(ids) == 0 {
		ids = DefaultLineup
	}

	scenario := &Scenario{
		Version: "1.0",
		Title:   "The Coded Tomorrow",
		CallToAction: &CallToAction{
			Text: "Continue Your Journey...",
			URL:  "https://thecodedtomorrow.com",
		},
	}
	for _, id := range ids {
		build, ok := d.presets[id]
		if !ok {
			if guess := d.suggest(id); guess != "" {
				return nil, fmt.Errorf("unknown section preset: %s (did you mean %s?)", id, guess)
			}
			return nil, fmt.Errorf("unknown section preset: %s", id)
		}
		sec := build()
		sec.ID = id
		scenario.Sections = append(scenario.Sections, sec)
	}

	scenario.ApplyDefaults()
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return scenario, nil
}

// suggest returns the registered preset closest to id, if any is close
func (d *Director) suggest(id string) string {
	best, bestScore := "", 0.5
	metric := metrics.NewLevenshtein()
	for _, name := range d.order {
		if score := strutil.Similarity(id, name, metric); score > bestScore {
			best, bestScore = name, score
		}
	}
	return best
}

func osc(axis string, amplitude, frequency float64) Oscillator {
	return Oscillator{Axis: axis, Amplitude: amplitude, Frequency: frequency}
}

func cosc(axis string, amplitude, frequency float64) Oscillator {
	return Oscillator{Axis: axis, Amplitude: amplitude, Frequency: frequency, Wave: "cos"}
}

func atOrigin(camera vmath.Vec3, fov float64) Keyframe {
	return Keyframe{Camera: camera, FOV: fov}
}

func heroSection() Section {
	return Section{
		Height:      3,
		Span:        "full",
		Environment: "sunset",
		Model: Model{
			Path:     "3d-assets/3d_handdrawn_car.glb",
			Scale:    1.5,
			Position: vmath.V3(0, -0.5, 0),
		},
		Stories: []Story{
			{Title: "The Journey Begins", Text: "In a world where code shapes reality, every line written drives us forward."},
			{Title: "Innovation in Motion", Text: "Technology accelerates, transforming dreams into digital destinations."},
			{Title: "The Coded Tomorrow", Text: "Where imagination meets execution, the future is built one commit at a time."},
		},
		Camera: CameraTrack{
			Mode: CameraPiecewise,
			Segments: []Segment{
				{Until: 0.33, From: atOrigin(vmath.V3(0, 2, 7), 55), To: atOrigin(vmath.V3(0, 2, 5.5), 45)},
				{Until: 0.66, From: atOrigin(vmath.V3(0, 2, 5.5), 45), To: atOrigin(vmath.V3(5, 3, 5), 50)},
				{Until: 1, From: atOrigin(vmath.V3(5, 3, 5), 50), To: atOrigin(vmath.V3(3, 6, 7), 65)},
			},
			Smoothing:     0.08,
			LookSmoothing: 0.08,
		},
		Object: ObjectTrack{
			Scroll: &ScrollMotion{Yaw: math.Pi * 1.5},
		},
		Ambient: Ambient{
			Position: []Oscillator{osc("y", 0.05, 0.5)},
			Rotation: []Oscillator{osc("y", 0.1, 0.3)},
		},
		Fade: Fade{Mode: FadeWindow, Range: 0.1, HoldFirst: true},
		Lights: []Light{
			{Kind: LightAmbient, Intensity: 0.5},
			{Kind: LightDirectional, Position: vmath.V3(10, 10, 5), Intensity: 1},
			{Kind: LightSpot, Position: vmath.V3(-10, 10, -5), Angle: 0.3, Intensity: 0.5},
		},
	}
}

func storySection() Section {
	return Section{
		Height:      4,
		Span:        "pinned",
		Scrub:       1,
		Environment: "city",
		Model: Model{
			Path:     "3d-assets/robot_playground.glb",
			Scale:    2,
			Position: vmath.V3(0, -1, 0),
		},
		Stories: []Story{
			{Title: "Meet the Future", Text: "In the robot playground, innovation comes alive. Each circuit tells a story of progress."},
			{Title: "Building Tomorrow", Text: "Where mechanical precision meets creative vision, the impossible becomes reality."},
			{Title: "Code & Creation", Text: "Every line of code breathes life into metal, transforming ideas into intelligent beings."},
			{Title: "The Next Chapter", Text: "As we push boundaries, we discover that the future is not just built, it's imagined."},
		},
		Camera: CameraTrack{
			Mode: CameraPhase,
			Keyframes: []Keyframe{
				atOrigin(vmath.V3(0, 1, 5), 50),
				atOrigin(vmath.V3(4, 2.5, 3), 50),
				atOrigin(vmath.V3(-4, 1, 3.5), 50),
				atOrigin(vmath.V3(0, 4, 7), 50),
			},
			Smoothing:     0.05,
			LookSmoothing: 0.1,
			FOVSwing:      10,
			Wobble:        []Oscillator{osc("x", 0.3, 0.5), cosc("y", 0.2, 0.3), osc("z", 0.2, 0.4)},
			LookWobble:    []Oscillator{osc("x", 0.5, 0.2), cosc("y", 0.3, 0.3)},
		},
		Object: ObjectTrack{
			ScaleBase:     1.8,
			ScaleStep:     0.15,
			SpinPerPhase:  math.Pi * 0.5,
			Duration:      1.2,
			Ease:          "power2.inOut",
			ScaleDuration: 1,
			ScaleEase:     "elastic.out(1, 0.5)",
			SpinRate:      0.18,
		},
		Ambient: Ambient{
			Position: []Oscillator{osc("y", 0.15, 0.8)},
			Rotation: []Oscillator{osc("x", 0.05, 0.5), cosc("z", 0.03, 0.6)},
		},
		Fade: Fade{
			Mode: FadeReveal,
			Lead: 0.15,
			Span: 0.15,
			From: CardPose{OffsetY: 50, RotateX: -15},
		},
		Lights: []Light{
			{Kind: LightAmbient, Intensity: 0.6},
			{Kind: LightDirectional, Position: vmath.V3(5, 5, 5), Intensity: 1.2},
			{Kind: LightPoint, Position: vmath.V3(-5, 3, -5), Intensity: 0.8, Color: "#4f46e5"},
			{Kind: LightPoint, Position: vmath.V3(5, -2, -3), Intensity: 0.6, Color: "#ec4899"},
		},
	}
}

func earthquakeSection() Section {
	return Section{
		Height:      4,
		Span:        "pinned",
		Scrub:       1,
		Environment: "night",
		Model: Model{
			Path:  "3d-assets/earthquakes_-_2000_to_2019.glb",
			Scale: 1.5,
		},
		Stories: []Story{
			{Badge: "Just Starting", Title: "The Beginning of Something Big", Metric: "Day One",
				Text: "We're at the start of an ambitious journey to build a Nairobi simulation world. It's early days, but we're excited about what's ahead and ready to learn as we go."},
			{Badge: "Join Us", Title: "Looking for 3D Artists", Metric: "Open Roles",
				Text: "We need talented developers who can create 3D models and animations using modern tools like Blender, Spline, and AI-powered workflows. Your skills can help bring Nairobi to life."},
			{Badge: "AI-Powered", Title: "Modern Tools & Workflows", Metric: "AI-First",
				Text: "We're leveraging AI tools and cutting-edge tech to accelerate development. From procedural generation to AI-assisted modeling, we're exploring every possibility to build smarter."},
			{Badge: "Learn Together", Title: "Growing as We Build", Metric: "Community",
				Text: "This is a learning journey for all of us. We hope to go far, document everything, and grow our skills together. Join our community and let's build the future of Nairobi."},
		},
		Camera: CameraTrack{
			Mode: CameraPhase,
			Keyframes: []Keyframe{
				atOrigin(vmath.V3(0, 2, 8), 55),
				atOrigin(vmath.V3(5, 3, 6), 55),
				atOrigin(vmath.V3(-5, 2, 7), 55),
				atOrigin(vmath.V3(0, 5, 10), 55),
			},
			Smoothing:     0.04,
			LookSmoothing: 0.08,
			FOVSwing:      12,
			Wobble:        []Oscillator{osc("x", 0.4, 0.4), cosc("y", 0.25, 0.25), osc("z", 0.3, 0.35)},
			LookWobble:    []Oscillator{osc("x", 0.6, 0.15), cosc("y", 0.4, 0.2)},
		},
		Object: ObjectTrack{
			ScaleBase:     1.5,
			ScaleStep:     0.08,
			SpinPerPhase:  math.Pi * 0.3,
			Duration:      1.5,
			Ease:          "power3.inOut",
			ScaleDuration: 1.2,
			ScaleEase:     "back.out(1.2)",
			SpinRate:      0.06,
		},
		Ambient: Ambient{
			Position: []Oscillator{osc("y", 0.1, 0.4)},
			Rotation: []Oscillator{osc("x", 0.02, 0.3)},
		},
		Fade: Fade{
			Mode:      FadeReveal,
			Lead:      0.25,
			Span:      0.15,
			From:      CardPose{OffsetX: -60, RotateY: -10},
			Alternate: true,
		},
		Lights: []Light{
			{Kind: LightAmbient, Intensity: 0.5},
			{Kind: LightDirectional, Position: vmath.V3(8, 8, 5), Intensity: 1},
			{Kind: LightPoint, Position: vmath.V3(-6, 4, -4), Intensity: 0.9, Color: "#6366f1"},
			{Kind: LightPoint, Position: vmath.V3(6, -3, 4), Intensity: 0.7, Color: "#8b5cf6"},
			{Kind: LightPoint, Position: vmath.V3(0, -5, 0), Intensity: 0.5, Color: "#ec4899"},
		},
	}
}

func destinySection() Section {
	return Section{
		Height:      4,
		Span:        "pinned",
		Scrub:       1,
		Environment: "sunset",
		Model: Model{
			Path:     "3d-assets/destiny_2_character_bust.glb",
			Scale:    0.6,
			Position: vmath.V3(0, -1.5, 0),
		},
		Stories: []Story{
			{Title: "Legends Rise", Text: "In the realm of heroes, every guardian carries the weight of destiny and the spark of hope."},
			{Title: "Forged in Light", Text: "Through trials and triumphs, character is built one battle at a time, one choice at a time."},
			{Title: "Beyond the Stars", Text: "The journey transcends worlds, where courage meets technology in an eternal dance."},
			{Title: "Eternal Guardian", Text: "Standing at the edge of tomorrow, we become the heroes our future needs us to be."},
		},
		Camera: CameraTrack{
			Mode: CameraPhase,
			Keyframes: []Keyframe{
				atOrigin(vmath.V3(0, 0, 15), 50),
				atOrigin(vmath.V3(6, 1, 14), 50),
				atOrigin(vmath.V3(-6, 0.5, 14.5), 50),
				atOrigin(vmath.V3(0, 2, 16), 50),
			},
			Smoothing:     0.045,
			LookSmoothing: 0.09,
			FOVSwing:      15,
			Wobble:        []Oscillator{osc("x", 0.35, 0.45), cosc("y", 0.2, 0.3), osc("z", 0.25, 0.38)},
			LookWobble:    []Oscillator{osc("x", 0.5, 0.18), cosc("y", 0.35, 0.22)},
		},
		Object: ObjectTrack{
			ScaleBase:     2,
			ScaleStep:     0.12,
			SpinPerPhase:  math.Pi * 0.4,
			Duration:      1.3,
			Ease:          "power2.inOut",
			ScaleDuration: 1.1,
			ScaleEase:     "elastic.out(1, 0.6)",
			SpinRate:      0.12,
		},
		Ambient: Ambient{
			Position: []Oscillator{osc("y", 0.08, 0.6)},
			Rotation: []Oscillator{osc("z", 0.02, 0.4)},
		},
		Fade: Fade{
			Mode: FadeReveal,
			Lead: 0.2,
			Span: 0.15,
			From: CardPose{Scale: 0.8, RotateZ: -5},
		},
		Lights: []Light{
			{Kind: LightAmbient, Intensity: 0.4},
			{Kind: LightDirectional, Position: vmath.V3(6, 6, 4), Intensity: 1.3},
			{Kind: LightPoint, Position: vmath.V3(-5, 3, -3), Intensity: 1, Color: "#3b82f6"},
			{Kind: LightPoint, Position: vmath.V3(5, -2, 3), Intensity: 0.8, Color: "#8b5cf6"},
			{Kind: LightSpot, Position: vmath.V3(0, 5, 2), Angle: 0.4, Intensity: 1.2, Color: "#60a5fa"},
		},
	}
}

func creatorSection() Section {
	return Section{
		Height:      2,
		Span:        "pinned",
		Scrub:       1,
		Environment: "night",
		Background:  "#0a0e27",
		Model: Model{
			Path:  "3d-assets/The_Portrait_of_Stren_1021073426_texture.glb",
			Scale: 1.3,
		},
		Stories: []Story{
			{Title: "Meet Manlikemaingi", Subtitle: "Founder & Creative Developer",
				Text: "The visionary behind TheCodedTomorrow, a creative developer obsessed with building creative and immersive digital experiences. From concept to code, every pixel is crafted with purpose."},
			{Title: "TheCodedTomorrow", Subtitle: "Digital Creative Agency, Nairobi",
				Text: "Born in Kenya's tech capital, we're a digital creative agency on a mission: create an immersive Nairobi simulation world while documenting every step of the journey."},
		},
		Camera: CameraTrack{
			Mode: CameraPhase,
			Keyframes: []Keyframe{
				{Camera: vmath.V3(0, 0.6, 4), LookAt: vmath.V3(0, 0.3, 0), FOV: 50},
				{Camera: vmath.V3(2.5, 1, 3.5), LookAt: vmath.V3(0, 0.5, 0), FOV: 50},
			},
			Smoothing:     0.04,
			LookSmoothing: 0.1,
			Pointer:       vmath.Vec2{X: 0.3, Y: 0.3},
			Wobble:        []Oscillator{osc("x", 0.15, 0.2), cosc("y", 0.1, 0.3)},
		},
		Object: ObjectTrack{
			Poses: []Pose{
				{Scale: 1.3},
				{Scale: 1.6, Position: vmath.V3(0.5, 0.2, 0)},
			},
			Duration:      1.5,
			Ease:          "power2.inOut",
			ScaleDuration: 1.8,
			ScaleEase:     "power3.out",
			Pointer:       vmath.Vec2{X: 0.5, Y: 0.3},
			Smoothing:     0.05,
		},
		Ambient: Ambient{
			Position: []Oscillator{osc("y", 0.12, 0.6)},
			Rotation: []Oscillator{osc("y", 0.2, 0.3), cosc("x", 0.1, 0.4)},
		},
		Fade: Fade{
			Mode: FadeReveal,
			Lead: 0.2,
			Span: 0.2,
			From: CardPose{OffsetY: 100, RotateX: -15, Scale: 0.85},
		},
		Lights: []Light{
			{Kind: LightAmbient, Intensity: 0.5},
			{Kind: LightDirectional, Position: vmath.V3(5, 5, 5), Intensity: 1.8, Color: "#ffffff", CastShadow: true},
			{Kind: LightPoint, Position: vmath.V3(-4, 3, -3), Intensity: 1.5, Color: "#00d4ff"},
			{Kind: LightPoint, Position: vmath.V3(4, -2, -3), Intensity: 1.2, Color: "#ff6b35"},
			{Kind: LightSpot, Position: vmath.V3(0, 6, 3), Angle: 0.6, Intensity: 1.5, Color: "#ffd700", Penumbra: 0.5},
			{Kind: LightPoint, Position: vmath.V3(0, -3, 2), Intensity: 0.8, Color: "#8a2be2"},
		},
		Particles: &Particles{
			Count:         800,
			Spread:        15,
			Seed:          1021,
			Hue:           0.5,
			HueRange:      0.3,
			Saturation:    0.8,
			Lightness:     0.6,
			Size:          0.05,
			Opacity:       0.6,
			SpinRate:      0.05,
			Tilt:          0.1,
			TiltFrequency: 0.1,
		},
		Fog: &Fog{Color: "#0a0e27", Near: 5, Far: 15},
	}
}

func cultureSection() Section {
	return Section{
		Height:      3,
		Span:        "full",
		Environment: "sunset",
		Background:  "#1a1a2e",
		Model: Model{
			Path:  "3d-assets/graffiti+bus+3d+model.glb",
			Scale: 2,
		},
		Stories: []Story{
			{Title: "First Models", Text: "Matatus are our starting point, modeling the iconic buses that define Nairobi"},
			{Title: "Road Networks", Text: "Building the streets and routes that connect the city, one road at a time"},
			{Title: "Graffiti Details", Text: "Capturing the vibrant art and colors that make each matatu unique"},
			{Title: "Street Energy", Text: "Recreating the hustle and movement that brings Nairobi's roads to life"},
			{Title: "Sound Culture", Text: "Planning audio systems to bring gengetone and street vibes to the world"},
			{Title: "Authentic Feel", Text: "From LED lights to unique names, every detail matters in our build"},
		},
		Camera: CameraTrack{
			Mode: CameraOrbit,
			Orbit: &Orbit{
				Turns:     1.25,
				Radius:    6,
				Shrink:    3,
				MinRadius: 2.5,
				Height:    1.5,
				Rise:      2,
				FOV:       50,
				Narrow:    15,
				LookRise:  0.5,
			},
			Smoothing:     0.08,
			LookSmoothing: 0.08,
			Pointer:       vmath.Vec2{X: 0.5, Y: 0.8},
			Wobble:        []Oscillator{osc("y", 0.15, 0.4)},
			LookWobble:    []Oscillator{osc("y", 0.1, 0.3)},
		},
		Object: ObjectTrack{
			Scroll: &ScrollMotion{
				Yaw:   math.Pi * 3,
				Roll:  0.08,
				Rise:  0.5,
				SwayX: 1.5,
				SwayZ: 0.8,
				Scale: 0.8,
			},
			Pointer:   vmath.Vec2{X: 0.5, Y: 0.3},
			Smoothing: 0.05,
		},
		Ambient: Ambient{
			Position: []Oscillator{osc("y", 0.08, 3), cosc("y", 0.04, 2.3)},
			Rotation: []Oscillator{osc("z", 0.05, 1.8), cosc("x", 0.03, 1.3)},
		},
		Fade: Fade{
			Mode: FadeReveal,
			Lead: 0.1,
			Span: 0.1,
			From: CardPose{OffsetY: 60, Scale: 0.8, RotateY: -15},
		},
		Lights: []Light{
			{Kind: LightAmbient, Intensity: 0.6},
			{Kind: LightDirectional, Position: vmath.V3(10, 8, 5), Intensity: 1.2, CastShadow: true},
			{Kind: LightPoint, Position: vmath.V3(8, 4, 8), Intensity: 1.8, Color: "#fbbf24", Distance: 18, Decay: 2,
				Orbit: &LightOrbit{Radius: 8, Speed: 0.7},
				Pulse: &Oscillator{Amplitude: 0.5, Frequency: 1.2}},
			{Kind: LightPoint, Position: vmath.V3(-6, 3, -6), Intensity: 1.2, Color: "#ef4444", Distance: 15, Decay: 2,
				Orbit: &LightOrbit{Radius: 6, Speed: 0.5, Phase: math.Pi * 1.5, Reverse: true},
				Pulse: &Oscillator{Amplitude: 0.4, Frequency: 0.9, Wave: "cos"}},
			{Kind: LightPoint, Position: vmath.V3(0, 6, 0), Intensity: 1, Color: "#10b981", Distance: 12, Decay: 2,
				Pulse: &Oscillator{Amplitude: 0.3, Frequency: 1.5},
				Bob:   &Oscillator{Amplitude: 1, Frequency: 0.6}},
			{Kind: LightSpot, Position: vmath.V3(5, 10, 5), Angle: 0.5, Intensity: 1.5, Penumbra: 0.8, Color: "#a855f7", CastShadow: true},
			{Kind: LightSpot, Position: vmath.V3(-5, 10, -5), Angle: 0.5, Intensity: 1.2, Penumbra: 0.8, Color: "#06b6d4", CastShadow: true},
		},
		Fog: &Fog{Color: "#1a1a2e", Near: 5, Far: 20},
	}
}

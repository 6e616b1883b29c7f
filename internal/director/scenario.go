package director

import "github.com/ivlev/storyscroll/internal/vmath"

// Scenario is a complete scroll story: an ordered list of sections
type Scenario struct {
	Version      string        `yaml:"version"`
	Title        string        `yaml:"title,omitempty"`
	CallToAction *CallToAction `yaml:"call_to_action,omitempty"`
	Sections     []Section     `yaml:"sections"`
}

// CallToAction closes the page after the last section
type CallToAction struct {
	Text string `yaml:"text"`
	URL  string `yaml:"url,omitempty"`
}

// Section is one full-viewport scroll section: a model, its stories and the
// tables that animate camera, object, lights and overlay text
type Section struct {
	ID          string      `yaml:"id"`
	Height      float64     `yaml:"height"`          // In viewport heights
	Span        string      `yaml:"span,omitempty"`  // full | pinned
	Scrub       float64     `yaml:"scrub,omitempty"` // Seconds the camera progress lags the scrollbar
	Environment string      `yaml:"environment,omitempty"`
	Background  string      `yaml:"background,omitempty"`
	Model       Model       `yaml:"model"`
	Stories     []Story     `yaml:"stories"`
	Camera      CameraTrack `yaml:"camera"`
	Object      ObjectTrack `yaml:"object"`
	Ambient     Ambient     `yaml:"ambient"`
	Fade        Fade        `yaml:"fade"`
	Lights      []Light     `yaml:"lights"`
	Particles   *Particles  `yaml:"particles,omitempty"`
	Fog         *Fog        `yaml:"fog,omitempty"`
}

// Model references a 3D asset and its rest pose
type Model struct {
	Path     string     `yaml:"path"`
	Scale    float64    `yaml:"scale"`
	Position vmath.Vec3 `yaml:"position"`
	Rotation vmath.Vec3 `yaml:"rotation"`
}

// Story is the overlay text shown during one phase
type Story struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle,omitempty"`
	Text     string `yaml:"text"`
	Badge    string `yaml:"badge,omitempty"`
	Metric   string `yaml:"metric,omitempty"`
}

// Keyframe is a camera target
type Keyframe struct {
	Camera vmath.Vec3 `yaml:"camera"`
	LookAt vmath.Vec3 `yaml:"look_at"`
	FOV    float64    `yaml:"fov"`
}

// Segment interpolates linearly from From to To while progress runs from
// the previous segment's Until to this one's
type Segment struct {
	Until float64  `yaml:"until"`
	From  Keyframe `yaml:"from"`
	To    Keyframe `yaml:"to"`
}

// Orbit circles the camera around the origin as progress advances
type Orbit struct {
	Turns     float64 `yaml:"turns"`
	Radius    float64 `yaml:"radius"`
	Shrink    float64 `yaml:"shrink"` // Radius lost at progress 1
	MinRadius float64 `yaml:"min_radius"`
	Height    float64 `yaml:"height"`
	Rise      float64 `yaml:"rise"` // Height gained at progress 1
	FOV       float64 `yaml:"fov"`
	Narrow    float64 `yaml:"narrow"`    // FOV lost at progress 1
	LookRise  float64 `yaml:"look_rise"` // Look-at height gained at progress 1
}

// Camera track modes
const (
	CameraPhase     = "phase"
	CameraPiecewise = "piecewise"
	CameraOrbit     = "orbit"
)

// CameraTrack describes how the camera target follows progress
type CameraTrack struct {
	Mode          string       `yaml:"mode"`
	Keyframes     []Keyframe   `yaml:"keyframes,omitempty"`
	Segments      []Segment    `yaml:"segments,omitempty"`
	Orbit         *Orbit       `yaml:"orbit,omitempty"`
	Smoothing     float64      `yaml:"smoothing"`      // Fraction of the remaining distance covered per frame
	LookSmoothing float64      `yaml:"look_smoothing"` // Same, for the look-at point
	FOVSwing      float64      `yaml:"fov_swing,omitempty"`
	Pointer       vmath.Vec2   `yaml:"pointer,omitempty"`
	Wobble        []Oscillator `yaml:"wobble,omitempty"`
	LookWobble    []Oscillator `yaml:"look_wobble,omitempty"`
}

// Pose is an object target for one phase
type Pose struct {
	Scale    float64    `yaml:"scale"`
	Position vmath.Vec3 `yaml:"position"`
}

// ObjectTrack animates the model. Phase changes start eased tweens of scale,
// yaw and position; ScrollMotion adds transforms driven by continuous progress.
type ObjectTrack struct {
	Poses         []Pose        `yaml:"poses,omitempty"`
	ScaleBase     float64       `yaml:"scale_base,omitempty"`
	ScaleStep     float64       `yaml:"scale_step,omitempty"`
	SpinPerPhase  float64       `yaml:"spin_per_phase,omitempty"`
	Duration      float64       `yaml:"duration"`
	Ease          string        `yaml:"ease"`
	ScaleDuration float64       `yaml:"scale_duration"`
	ScaleEase     string        `yaml:"scale_ease"`
	SpinRate      float64       `yaml:"spin_rate,omitempty"` // Radians per second
	Pointer       vmath.Vec2    `yaml:"pointer,omitempty"`
	Smoothing     float64       `yaml:"smoothing,omitempty"` // Rotation smoothing; 0 applies targets directly
	Scroll        *ScrollMotion `yaml:"scroll,omitempty"`
}

// ScrollMotion maps continuous progress to object transforms
type ScrollMotion struct {
	Yaw   float64 `yaml:"yaw"`    // Rotation about Y at progress 1
	Roll  float64 `yaml:"roll"`   // Amplitude of sin(progress*2pi) about Z
	Rise  float64 `yaml:"rise"`   // Y offset at progress 1
	SwayX float64 `yaml:"sway_x"` // Amplitude of sin(progress*2pi) on X
	SwayZ float64 `yaml:"sway_z"` // Amplitude of cos(progress*pi) on Z
	Scale float64 `yaml:"scale"`  // Scale added at progress 1
}

// Oscillator is one ambient wave on one axis
type Oscillator struct {
	Axis      string  `yaml:"axis"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Phase     float64 `yaml:"phase,omitempty"`
	Wave      string  `yaml:"wave,omitempty"` // sin | cos
}

// Ambient is idle motion of the object independent of scrolling
type Ambient struct {
	Position []Oscillator `yaml:"position,omitempty"`
	Rotation []Oscillator `yaml:"rotation,omitempty"`
}

// Fade modes
const (
	FadeWindow = "window"
	FadeReveal = "reveal"
)

// Fade describes how story blocks enter and leave
type Fade struct {
	Mode      string   `yaml:"mode"`
	Range     float64  `yaml:"range"` // Window fade width in progress; negative for a hard cut
	HoldFirst bool     `yaml:"hold_first,omitempty"`
	HoldLast  bool     `yaml:"hold_last,omitempty"`
	Lead      float64  `yaml:"lead,omitempty"` // Reveal starts this far before the block window
	Span      float64  `yaml:"span,omitempty"` // Reveal length in progress
	From      CardPose `yaml:"from,omitempty"`
	Alternate bool     `yaml:"alternate,omitempty"` // Mirror X offset and Y rotation on odd blocks
}

// CardPose is the style a revealed card starts from
type CardPose struct {
	Opacity float64 `yaml:"opacity"`
	OffsetX float64 `yaml:"offset_x,omitempty"`
	OffsetY float64 `yaml:"offset_y,omitempty"`
	RotateX float64 `yaml:"rotate_x,omitempty"`
	RotateY float64 `yaml:"rotate_y,omitempty"`
	RotateZ float64 `yaml:"rotate_z,omitempty"`
	Scale   float64 `yaml:"scale,omitempty"`
}

// Light kinds
const (
	LightAmbient     = "ambient"
	LightDirectional = "directional"
	LightPoint       = "point"
	LightSpot        = "spot"
)

// Light is a scene light and its optional animation
type Light struct {
	Kind       string      `yaml:"kind"`
	Position   vmath.Vec3  `yaml:"position"`
	Color      string      `yaml:"color,omitempty"`
	Intensity  float64     `yaml:"intensity"`
	Angle      float64     `yaml:"angle,omitempty"`
	Penumbra   float64     `yaml:"penumbra,omitempty"`
	Distance   float64     `yaml:"distance,omitempty"`
	Decay      float64     `yaml:"decay,omitempty"`
	CastShadow bool        `yaml:"cast_shadow,omitempty"`
	Orbit      *LightOrbit `yaml:"orbit,omitempty"`
	Pulse      *Oscillator `yaml:"pulse,omitempty"`
	Bob        *Oscillator `yaml:"bob,omitempty"`
}

// LightOrbit moves a light on a horizontal circle:
// x = sin(t*speed+phase)*radius, z = cos(t*speed+phase)*radius (negated when Reverse)
type LightOrbit struct {
	Radius  float64 `yaml:"radius"`
	Speed   float64 `yaml:"speed"`
	Phase   float64 `yaml:"phase,omitempty"`
	Reverse bool    `yaml:"reverse,omitempty"`
}

// Particles is a decorative point cloud around the model
type Particles struct {
	Count         int     `yaml:"count"`
	Spread        float64 `yaml:"spread"`
	Seed          int64   `yaml:"seed"`
	Hue           float64 `yaml:"hue"`
	HueRange      float64 `yaml:"hue_range"`
	Saturation    float64 `yaml:"saturation"`
	Lightness     float64 `yaml:"lightness"`
	Size          float64 `yaml:"size"`
	Opacity       float64 `yaml:"opacity"`
	SpinRate      float64 `yaml:"spin_rate"`
	Tilt          float64 `yaml:"tilt"`
	TiltFrequency float64 `yaml:"tilt_frequency"`
}

// Fog fades geometry between Near and Far into Color
type Fog struct {
	Color string  `yaml:"color"`
	Near  float64 `yaml:"near"`
	Far   float64 `yaml:"far"`
}

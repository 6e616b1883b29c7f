// Package renderer computes camera and object transforms for a section from
// its progress, its phase and the elapsed time.
package renderer

import (
	"math"

	"github.com/ivlev/storyscroll/internal/director"
	"github.com/ivlev/storyscroll/internal/vmath"
)

// Input is everything one frame step depends on
type Input struct {
	Progress float64    // Section progress, possibly scrubbed
	Phase    int        // Current story phase
	Elapsed  float64    // Seconds since the section was mounted
	Pointer  vmath.Vec2 // Normalized pointer, both axes in [-1, 1]
}

// ObjectPose is the model transform handed to the scene
type ObjectPose struct {
	Position vmath.Vec3
	Rotation vmath.Vec3
	Scale    float64
}

// State is the smoothed transform of one section. It is a plain value:
// OnPhase and Step return a new State and never modify their argument.
type State struct {
	Progress float64
	Phase    int // -1 until the first phase is entered
	Elapsed  float64
	Frame    int

	Camera vmath.Vec3
	LookAt vmath.Vec3
	FOV    float64

	// Rotation is the smoothed object rotation before ambient motion
	Rotation vmath.Vec3
	Object   ObjectPose

	ScaleFrom, ScaleTo float64
	YawFrom, YawTo     float64
	PosFrom, PosTo     vmath.Vec3
	ScaleTween         Tween
	MoveTween          Tween
}

// Interpolator moves a State toward a section's keyframe targets
type Interpolator struct {
	sec   director.Section
	eases map[string]vmath.Easing
}

// NewInterpolator creates an interpolator for a validated section. Unknown
// easing names fall back to linear.
func NewInterpolator(sec director.Section) *Interpolator {
	ip := &Interpolator{sec: sec, eases: make(map[string]vmath.Easing)}
	for _, name := range []string{sec.Object.Ease, sec.Object.ScaleEase} {
		e, err := vmath.ParseEasing(name)
		if err != nil {
			e = vmath.EaseLinear
		}
		ip.eases[name] = e
	}
	return ip
}

// Section returns the section the interpolator was built for
func (ip *Interpolator) Section() director.Section {
	return ip.sec
}

// Initial is the state at mount: camera on the progress-0 target, object at
// the first phase pose, no phase entered yet.
func (ip *Interpolator) Initial() State {
	cam, look, fov := ip.CameraTarget(0, 0)
	scale := ip.phaseScale(0)
	pos := ip.phasePosition(0)
	s := State{
		Phase:     -1,
		Camera:    cam,
		LookAt:    look,
		FOV:       fov,
		Rotation:  ip.sec.Model.Rotation,
		ScaleFrom: scale,
		ScaleTo:   scale,
		PosFrom:   pos,
		PosTo:     pos,
	}
	s.Object = ObjectPose{Position: pos, Rotation: s.Rotation, Scale: scale}
	return s
}

// OnPhase starts eased tweens toward the pose of phase. It is edge
// triggered: entering the phase the state is already in changes nothing.
// Running tweens are retargeted from their current value.
func (ip *Interpolator) OnPhase(s State, phase int, elapsed float64) State {
	phase = ip.clampPhase(phase)
	if phase == s.Phase {
		return s
	}

	s.ScaleFrom = ip.scaleAt(s, elapsed)
	s.YawFrom = ip.yawAt(s, elapsed)
	s.PosFrom = ip.positionAt(s, elapsed)

	s.ScaleTo = ip.phaseScale(phase)
	s.YawTo = float64(phase) * ip.sec.Object.SpinPerPhase
	s.PosTo = ip.phasePosition(phase)

	s.ScaleTween = Tween{Start: elapsed, Duration: ip.sec.Object.ScaleDuration, Ease: ip.sec.Object.ScaleEase}
	s.MoveTween = Tween{Start: elapsed, Duration: ip.sec.Object.Duration, Ease: ip.sec.Object.Ease}
	s.Phase = phase
	return s
}

// Step advances the state by one frame. The camera and look-at point move a
// fixed fraction of the remaining distance toward their targets, so they
// converge without overshoot. Step is a pure function of its arguments.
func (ip *Interpolator) Step(s State, in Input) State {
	p := vmath.Clamp01(in.Progress)
	phase := ip.clampPhase(in.Phase)
	cam := ip.sec.Camera

	camTarget, lookTarget, fov := ip.CameraTarget(p, phase)
	camTarget = camTarget.Add(Ambient(cam.Wobble, in.Elapsed))
	camTarget.X += in.Pointer.X * cam.Pointer.X
	camTarget.Y += in.Pointer.Y * cam.Pointer.Y
	lookTarget = lookTarget.Add(Ambient(cam.LookWobble, in.Elapsed))

	s.Camera = s.Camera.Damp(camTarget, cam.Smoothing)
	s.LookAt = s.LookAt.Damp(lookTarget, cam.LookSmoothing)
	s.FOV = vmath.Damp(s.FOV, fov, cam.Smoothing)

	obj := ip.sec.Object
	scale := ip.scaleAt(s, in.Elapsed)
	pos := ip.positionAt(s, in.Elapsed)
	rot := ip.sec.Model.Rotation
	rot.Y += ip.yawAt(s, in.Elapsed) + obj.SpinRate*in.Elapsed
	rot.Y += in.Pointer.X * obj.Pointer.X
	rot.X += in.Pointer.Y * obj.Pointer.Y

	if m := obj.Scroll; m != nil {
		rot.Y += m.Yaw * p
		rot.Z += m.Roll * math.Sin(p*2*math.Pi)
		pos.X += m.SwayX * math.Sin(p*2*math.Pi)
		pos.Y += m.Rise * p
		pos.Z += m.SwayZ * math.Cos(p*math.Pi)
		scale += m.Scale * p
	}

	if obj.Smoothing > 0 {
		s.Rotation = s.Rotation.Damp(rot, obj.Smoothing)
	} else {
		s.Rotation = rot
	}

	s.Object = ObjectPose{
		Position: pos.Add(Ambient(ip.sec.Ambient.Position, in.Elapsed)),
		Rotation: s.Rotation.Add(Ambient(ip.sec.Ambient.Rotation, in.Elapsed)),
		Scale:    scale,
	}
	s.Progress = p
	s.Elapsed = in.Elapsed
	s.Frame++
	return s
}

// CameraTarget returns the undamped camera position, look-at point and field
// of view for progress p in phase
func (ip *Interpolator) CameraTarget(p float64, phase int) (camera, lookAt vmath.Vec3, fov float64) {
	p = vmath.Clamp01(p)
	cam := ip.sec.Camera

	switch cam.Mode {
	case director.CameraPiecewise:
		return piecewiseTarget(cam.Segments, p)
	case director.CameraOrbit:
		if cam.Orbit != nil {
			return orbitTarget(*cam.Orbit, p)
		}
	default:
		if len(cam.Keyframes) > 0 {
			if phase >= len(cam.Keyframes) {
				phase = len(cam.Keyframes) - 1
			}
			if phase < 0 {
				phase = 0
			}
			kf := cam.Keyframes[phase]
			return kf.Camera, kf.LookAt, kf.FOV + math.Sin(p*math.Pi)*cam.FOVSwing
		}
	}
	return vmath.Vec3{Z: 5}, vmath.Vec3{}, 50
}

func piecewiseTarget(segments []director.Segment, p float64) (vmath.Vec3, vmath.Vec3, float64) {
	if len(segments) == 0 {
		return vmath.Vec3{Z: 5}, vmath.Vec3{}, 50
	}
	start := 0.0
	for _, seg := range segments {
		if p <= seg.Until {
			t := vmath.Clamp01(vmath.InvLerp(start, seg.Until, p))
			return seg.From.Camera.Lerp(seg.To.Camera, t),
				seg.From.LookAt.Lerp(seg.To.LookAt, t),
				vmath.Lerp(seg.From.FOV, seg.To.FOV, t)
		}
		start = seg.Until
	}
	last := segments[len(segments)-1].To
	return last.Camera, last.LookAt, last.FOV
}

func orbitTarget(o director.Orbit, p float64) (vmath.Vec3, vmath.Vec3, float64) {
	angle := p * o.Turns * 2 * math.Pi
	radius := math.Max(o.Radius-p*o.Shrink, o.MinRadius)
	camera := vmath.V3(math.Sin(angle)*radius, o.Height+p*o.Rise, math.Cos(angle)*radius)
	lookAt := vmath.V3(0, p*o.LookRise, 0)
	return camera, lookAt, o.FOV - p*o.Narrow
}

func (ip *Interpolator) clampPhase(phase int) int {
	n := len(ip.sec.Stories)
	if phase >= n {
		phase = n - 1
	}
	if phase < 0 {
		phase = 0
	}
	return phase
}

func (ip *Interpolator) phaseScale(phase int) float64 {
	obj := ip.sec.Object
	switch {
	case len(obj.Poses) > phase:
		return obj.Poses[phase].Scale
	case obj.ScaleBase != 0:
		return obj.ScaleBase + float64(phase)*obj.ScaleStep
	}
	return ip.sec.Model.Scale
}

func (ip *Interpolator) phasePosition(phase int) vmath.Vec3 {
	pos := ip.sec.Model.Position
	if len(ip.sec.Object.Poses) > phase {
		pos = pos.Add(ip.sec.Object.Poses[phase].Position)
	}
	return pos
}

func (ip *Interpolator) scaleAt(s State, elapsed float64) float64 {
	t := s.ScaleTween.Fraction(elapsed, ip.eases[s.ScaleTween.Ease])
	return vmath.Lerp(s.ScaleFrom, s.ScaleTo, t)
}

func (ip *Interpolator) yawAt(s State, elapsed float64) float64 {
	t := s.MoveTween.Fraction(elapsed, ip.eases[s.MoveTween.Ease])
	return vmath.Lerp(s.YawFrom, s.YawTo, t)
}

func (ip *Interpolator) positionAt(s State, elapsed float64) vmath.Vec3 {
	t := s.MoveTween.Fraction(elapsed, ip.eases[s.MoveTween.Ease])
	return s.PosFrom.Lerp(s.PosTo, t)
}

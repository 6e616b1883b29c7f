package vmath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Easing maps a normalized time t in [0, 1] to an eased value.
// Every easing returns exactly 0 at t<=0 and 1 at t>=1.
type Easing func(t float64) float64

// ErrUnknownEasing is returned by ParseEasing for names it does not know
var ErrUnknownEasing = errors.New("unknown easing")

// EaseLinear is the identity
func EaseLinear(t float64) float64 {
	return Clamp01(t)
}

// EaseInOutCubic starts and ends slowly
func EaseInOutCubic(t float64) float64 {
	return Power(2, "inOut")(t)
}

// EaseOutCubic decelerates toward the end
func EaseOutCubic(t float64) float64 {
	return Power(2, "out")(t)
}

// Power builds the power family. n=1 is quadratic, n=2 cubic and so on.
// dir is "in", "out" or "inOut".
func Power(n int, dir string) Easing {
	exp := float64(n + 1)
	in := func(t float64) float64 { return math.Pow(t, exp) }
	return bounded(direct(in, dir))
}

// Sine is the sinusoidal family
func Sine(dir string) Easing {
	in := func(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) }
	return bounded(direct(in, dir))
}

// Expo is the exponential family
func Expo(dir string) Easing {
	in := func(t float64) float64 {
		if t == 0 {
			return 0
		}
		return math.Pow(2, 10*(t-1))
	}
	return bounded(direct(in, dir))
}

// BackOut overshoots the target by an amount controlled by overshoot and
// settles back. 1.70158 gives the classic 10% overshoot.
func BackOut(overshoot float64) Easing {
	return bounded(func(t float64) float64 {
		u := t - 1
		return 1 + (overshoot+1)*u*u*u + overshoot*u*u
	})
}

// ElasticOut oscillates around the target with decaying amplitude
func ElasticOut(amplitude, period float64) Easing {
	p1 := math.Max(amplitude, 1)
	if period <= 0 {
		period = 0.3
	}
	p2 := period / math.Min(amplitude, 1)
	if math.IsInf(p2, 0) || math.IsNaN(p2) {
		p2 = period
	}
	p3 := p2 / (2 * math.Pi) * math.Asin(1/p1)
	return bounded(func(t float64) float64 {
		return p1*math.Pow(2, -10*t)*math.Sin((t-p3)*2*math.Pi/p2) + 1
	})
}

func direct(in Easing, dir string) Easing {
	switch dir {
	case "in":
		return in
	case "inOut":
		return func(t float64) float64 {
			if t < 0.5 {
				return in(t*2) / 2
			}
			return 1 - in((1-t)*2)/2
		}
	default:
		return func(t float64) float64 { return 1 - in(1-t) }
	}
}

func bounded(e Easing) Easing {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return e(t)
	}
}

// ParseEasing resolves names like "power2.inOut", "back.out(1.2)" or
// "elastic.out(1, 0.5)". An empty name is linear.
func ParseEasing(name string) (Easing, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "linear" || name == "none" {
		return EaseLinear, nil
	}

	base, args, err := splitArgs(name)
	if err != nil {
		return nil, err
	}

	family, dir, _ := strings.Cut(base, ".")
	if dir == "" {
		dir = "out"
	}
	if dir != "in" && dir != "out" && dir != "inOut" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}

	switch family {
	case "power0":
		return EaseLinear, nil
	case "power1", "power2", "power3", "power4":
		return Power(int(family[5]-'0'), dir), nil
	case "quad":
		return Power(1, dir), nil
	case "cubic":
		return Power(2, dir), nil
	case "sine":
		return Sine(dir), nil
	case "expo":
		return Expo(dir), nil
	case "back":
		if dir != "out" {
			break
		}
		return BackOut(argOr(args, 0, 1.70158)), nil
	case "elastic":
		if dir != "out" {
			break
		}
		return ElasticOut(argOr(args, 0, 1), argOr(args, 1, 0.3)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
}

func splitArgs(name string) (string, []float64, error) {
	open := strings.IndexByte(name, '(')
	if open < 0 {
		return name, nil, nil
	}
	if !strings.HasSuffix(name, ")") {
		return "", nil, fmt.Errorf("%w: unbalanced parenthesis in %q", ErrUnknownEasing, name)
	}
	var args []float64
	for _, raw := range strings.Split(name[open+1:len(name)-1], ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", nil, fmt.Errorf("%w: bad argument %q in %q", ErrUnknownEasing, raw, name)
		}
		args = append(args, v)
	}
	return name[:open], args, nil
}

func argOr(args []float64, i int, def float64) float64 {
	if i < len(args) {
		return args[i]
	}
	return def
}

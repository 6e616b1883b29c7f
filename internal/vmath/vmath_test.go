package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDampConvergesWithoutOvershoot(t *testing.T) {
	x := 0.0
	for i := 0; i < 500; i++ {
		prev := x
		x = Damp(x, 10, 0.05)
		assert.Less(t, x, 10.0, "frame %d overshot", i)
		assert.Greater(t, x, prev)
	}
	assert.InDelta(t, 10, x, 1e-6)
}

func TestVec3Damp(t *testing.T) {
	v := V3(0, 0, 0).Damp(V3(10, -10, 4), 0.5)
	assert.Equal(t, V3(5, -5, 2), v)
}

func TestRotateYQuarterTurn(t *testing.T) {
	v := V3(1, 0, 0).RotateY(math.Pi / 2)
	assert.InDelta(t, 0, v.X, 1e-12)
	assert.InDelta(t, -1, v.Z, 1e-12)
}

func TestEasingEndpoints(t *testing.T) {
	names := []string{
		"", "linear", "power1.in", "power2.inOut", "power3.inOut", "power3.out",
		"sine.inOut", "expo.out", "back.out(1.2)", "elastic.out(1, 0.5)", "elastic.out(1,0.6)",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			e, err := ParseEasing(name)
			require.NoError(t, err)
			assert.Equal(t, 0.0, e(0))
			assert.Equal(t, 1.0, e(1))
			assert.Equal(t, 0.0, e(-3))
			assert.Equal(t, 1.0, e(7))
		})
	}
}

func TestEaseInOutCubicMatchesFormula(t *testing.T) {
	for _, x := range []float64{0.1, 0.25, 0.4} {
		assert.InDelta(t, 4*x*x*x, EaseInOutCubic(x), 1e-12)
	}
	assert.InDelta(t, 0.5, EaseInOutCubic(0.5), 1e-12)
	assert.InDelta(t, 1-math.Pow(-2*0.8+2, 3)/2, EaseInOutCubic(0.8), 1e-12)
}

func TestBackAndElasticOvershoot(t *testing.T) {
	back, err := ParseEasing("back.out(1.2)")
	require.NoError(t, err)
	elastic, err := ParseEasing("elastic.out(1, 0.5)")
	require.NoError(t, err)

	maxBack, maxElastic := 0.0, 0.0
	for i := 1; i < 100; i++ {
		x := float64(i) / 100
		maxBack = math.Max(maxBack, back(x))
		maxElastic = math.Max(maxElastic, elastic(x))
	}
	assert.Greater(t, maxBack, 1.0)
	assert.Greater(t, maxElastic, 1.0)
}

func TestParseEasingErrors(t *testing.T) {
	for _, name := range []string{"bounce.out", "power2.sideways", "back.in", "elastic.out(1", "back.out(x)"} {
		_, err := ParseEasing(name)
		assert.ErrorIs(t, err, ErrUnknownEasing, name)
	}
}

func TestVec3YAML(t *testing.T) {
	var doc struct {
		A Vec3 `yaml:"a"`
		B Vec3 `yaml:"b"`
	}
	err := yaml.Unmarshal([]byte("a: [1, 2.5, -3]\nb: {x: 4, z: 6}\n"), &doc)
	require.NoError(t, err)
	assert.Equal(t, V3(1, 2.5, -3), doc.A)
	assert.Equal(t, V3(4, 0, 6), doc.B)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "a: [1, 2.5, -3]")

	err = yaml.Unmarshal([]byte("a: [1, 2]\n"), &doc)
	assert.Error(t, err)
}

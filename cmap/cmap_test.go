package cmap

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

// colorEps allows for one step of 8-bit rounding.
const colorEps = 1.01 / 255

func assertColor(t *testing.T, want, got RGBA, msg string) {
	assert.InDelta(t, want.R, got.R, colorEps, msg+": R")
	assert.InDelta(t, want.G, got.G, colorEps, msg+": G")
	assert.InDelta(t, want.B, got.B, colorEps, msg+": B")
	assert.InDelta(t, want.A, got.A, colorEps, msg+": A")
}

func rgb255(r, g, b int) RGBA {
	return RGBA{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

func TestDiverging(t *testing.T) {
	spec := DivergingSpec()

	assertColor(t, spec.At(0), spec.Lookup(-1), "vmin")
	assertColor(t, spec.At(1), spec.Lookup(+1), "vmax")
	assertColor(t, spec.At(0.5), spec.Lookup(0), "midpoint")

	assertColor(t, rgb255(0x05, 0x30, 0x61), spec.Lookup(-1), "blue end")
	assertColor(t, rgb255(0x67, 0x00, 0x1f), spec.Lookup(+1), "red end")
	assertColor(t, rgb255(0xf7, 0xf7, 0xf7), spec.Lookup(0), "white middle")
}

func TestClamp(t *testing.T) {
	spec, err := NewSpec("RdBu_r", -1, 1)
	require.NoError(t, err)

	table := []struct {
		s, t float64
	}{
		{-1, 0}, {1, 1}, {0, 0.5}, {0.5, 0.75},
		{-7, 0}, {12, 1}, {math.Inf(-1), 0}, {math.Inf(1), 1}, {math.NaN(), 0},
	}
	for i, test := range table {
		assert.InDelta(t, test.t, spec.Normalize(test.s), eps, "%d) %g", i+1, test.s)
	}
	assertColor(t, spec.Lookup(-1), spec.Lookup(-3), "clamped low")
	assertColor(t, spec.Lookup(1), spec.Lookup(3), "clamped high")
}

func TestReversed(t *testing.T) {
	fwd, err := NewSpec("RdBu", 0, 1)
	require.NoError(t, err)
	rev, err := NewSpec("RdBu_r", 0, 1)
	require.NoError(t, err)

	for x := 0.0; x <= 1; x += 0.05 {
		assertColor(t, fwd.At(x), rev.At(1-x), "reversed")
	}
}

func TestHue(t *testing.T) {
	spec := HelicitySpec()
	red, green, blue := RGBA{1, 0, 0, 1}, RGBA{0, 1, 0, 1}, RGBA{0, 0, 1, 1}

	assertColor(t, red, spec.Lookup(-math.Pi), "start")
	assertColor(t, red, spec.Lookup(math.Pi), "cyclic end")
	assertColor(t, green, spec.At(1.0/3), "green")
	assertColor(t, blue, spec.At(2.0/3), "blue")
	assertColor(t, RGBA{0, 1, 1, 1}, spec.Lookup(0), "cyan")
}

func TestNewSpec(t *testing.T) {
	_, err := NewSpec("not_a_map", -1, 1)
	assert.Error(t, err)
	_, err = NewSpec("hsv", 1, 1)
	assert.Error(t, err)

	names := Names()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Subset(t, names, []string{"RdBu", "RdBu_r", "bwr", "hsv"})
	for _, name := range names {
		m, ok := Get(name)
		require.True(t, ok, name)
		assert.False(t, m.Indexed, name)
	}
	_, ok := Get("not_a_map")
	assert.False(t, ok)

	bwr, err := NewSpec("bwr", 0, 1)
	require.NoError(t, err)
	assertColor(t, RGBA{1, 1, 1, 1}, bwr.Lookup(0.5), "white")
	assertColor(t, RGBA{0, 0, 1, 1}, bwr.Lookup(0), "blue")
}

func TestWrapAngle(t *testing.T) {
	table := []struct {
		in, out float64
	}{
		{0, 0}, {math.Pi, -math.Pi}, {-math.Pi, -math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2}, {-5 * math.Pi / 2, -math.Pi / 2},
		{1, 1}, {7 * math.Pi, -math.Pi},
	}
	for i, test := range table {
		assert.InDelta(t, test.out, WrapAngle(test.in), eps, "%d) %g", i+1, test.in)
	}
}

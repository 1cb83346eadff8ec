package skyrmion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/spintex/field"
	"github.com/phil-mansfield/spintex/geom"
)

const unitEps = 1e-12

func assertUnit(t *testing.T, f *field.VectorField) {
	for idx, v := range f.Vecs {
		if math.Abs(v.Norm()-1) > unitEps {
			t.Fatalf("|m| = %.15g at %v", v.Norm(), f.Grid.Point(idx))
		}
	}
}

func TestSingleSkyrmionExample(t *testing.T) {
	s, err := New(Params{W: 5, R: 10, M: 1, Eta: math.Pi / 2})
	require.NoError(t, err)

	assert.InDelta(t, math.Pi, s.Theta(0, 0), unitEps)
	assert.True(t, s.At(0, 0).EpsEq(geom.Vec{0, 0, -1}, unitEps), "%v", s.At(0, 0))

	assert.InDelta(t, 0, s.Theta(1000, 0), unitEps)
	assert.True(t, s.At(1000, 0).EpsEq(geom.Vec{0, 0, 1}, unitEps), "%v", s.At(1000, 0))
}

func TestProfileDecay(t *testing.T) {
	r, w := 10.0, 5.0
	prev := Profile(0, r, w)
	assert.InDelta(t, math.Pi, prev, unitEps)
	for rho := 1.0; rho < 40*w; rho++ {
		theta := Profile(rho, r, w)
		assert.True(t, theta < prev, "profile not decreasing at rho = %g", rho)
		prev = theta
	}
	assert.InDelta(t, 0, prev, 1e-10)
	assert.InDelta(t, math.Pi/2, Profile(r, r, w), unitEps)
}

func TestValidate(t *testing.T) {
	table := []struct {
		p  Params
		ok bool
	}{
		{Params{W: 5, R: 10}, true},
		{Params{W: 0, R: 10}, false},
		{Params{W: 5, R: -1}, false},
		{Params{W: math.NaN(), R: 10}, false},
		{Params{W: 5, R: math.Inf(1)}, false},
	}
	for i, test := range table {
		_, err := New(test.p)
		assert.Equal(t, test.ok, err == nil, "%d) %v", i+1, test.p)
	}

	_, err := NewTube(TubeParams{Params: Params{W: 2, R: 5}, L: 0})
	assert.Error(t, err)
	_, err = NewLattice(nil)
	assert.Error(t, err)
	_, err = NewLattice([]Params{Default(0, 0), {W: -1, R: 1}})
	assert.Error(t, err)
}

func TestLatticeUnit(t *testing.T) {
	l, err := NewLattice([]Params{
		Default(-20, 0), {CenterX: 20, W: 5, R: 10, M: 1, Eta: -math.Pi / 2},
	})
	require.NoError(t, err)

	g, err := geom.NewGrid(
		geom.Linspace(-40, 40, geom.OddCount(40)),
		geom.Linspace(-20, 20, geom.OddCount(20)), nil,
	)
	require.NoError(t, err)

	f := field.Generate(g, 4, l.Eval)
	assert.Nil(t, f.Mask)
	assertUnit(t, f)

	idx, ok := g.IdxCheck(10, 10, 0)
	require.True(t, ok)
	assert.InDelta(t, -1, f.Vecs[idx][2], unitEps, "core of the first skyrmion")
}

func TestLatticeTieBreak(t *testing.T) {
	a := Params{CenterX: -20, W: 5, R: 10, M: 1, Eta: math.Pi / 2}
	b := Params{CenterX: 20, W: 5, R: 10, M: -1, Eta: 0}

	for _, order := range [][]Params{{a, b}, {b, a}} {
		l, err := NewLattice(order)
		require.NoError(t, err)

		for _, y := range []float64{-7, 0, 3} {
			assert.Equal(t, 0, l.Nearest(0, y))
			assert.Equal(t, l.Skyrmions[0].At(0, y), l.At(0, y))
		}
		assert.Equal(t, 1, l.Nearest(l.Skyrmions[1].CenterX, 0))

		g, err := geom.NewGrid([]float64{-1, 0, 1}, []float64{-2, 0, 2}, nil)
		require.NoError(t, err)
		f := field.Generate(g, 3, l.Eval)
		for j := 0; j < 3; j++ {
			y := g.Axes[1][j]
			assert.Equal(t, l.Skyrmions[0].At(0, y), f.At(1, j, 0))
		}
	}
}

func hopfionParams(h int) TubeParams {
	return TubeParams{
		Params: Params{W: 2, R: 5, M: 1, Eta: math.Pi / 2},
		L:      20, HopfIndex: h,
	}
}

func TestTubeFormulationsAgree(t *testing.T) {
	g, err := geom.NewGrid(
		geom.Linspace(-30, 30, 25), geom.Linspace(-30, 30, 25),
		geom.Linspace(-12, 12, 9),
	)
	require.NoError(t, err)

	for _, h := range []int{0, 1, -2} {
		tube, err := NewTube(hopfionParams(h))
		require.NoError(t, err)

		filled := tube.Fill(g, 3)
		pointwise := field.Generate(g, 2, tube.Eval)
		assertUnit(t, filled)
		assertUnit(t, pointwise)

		inside := 0
		for idx := range filled.Vecs {
			p := g.Point(idx)
			if !filled.Vecs[idx].EpsEq(pointwise.Vecs[idx], 1e-9) {
				t.Fatalf("H = %d: Fill gives %v at %v, At gives %v",
					h, filled.Vecs[idx], p, pointwise.Vecs[idx])
			}
			assert.Equal(t, tube.Inside(p[0], p[1], p[2]), filled.Valid(idx))
			if filled.Valid(idx) {
				inside++
			}
		}
		assert.True(t, inside > 0 && inside < g.Volume)
	}
}

func TestTubeCore(t *testing.T) {
	tube, err := NewTube(hopfionParams(0))
	require.NoError(t, err)

	// On the ring the cross-section core points against local y, i.e.
	// against the ring's tangent direction at psi.
	for _, psi := range []float64{0, 0.8, 2.5, -1.9} {
		x, y := tube.L*math.Cos(psi), tube.L*math.Sin(psi)
		m, ok := tube.At(x, y, 0)
		assert.True(t, ok)
		want := geom.Vec{math.Sin(psi), -math.Cos(psi), 0}
		assert.True(t, m.EpsEq(want, 1e-9), "psi = %g: %v vs %v", psi, m, want)
	}

	_, ok := tube.At(0, 0, 0)
	assert.False(t, ok, "ring centre is outside of the tube")
}

func TestPreimage(t *testing.T) {
	dirs := [][2]float64{{math.Pi / 3, 0.4}, {2.5, -2}, {math.Pi / 4, 0}}

	for _, h := range []int{0, 1} {
		tube, err := NewTube(hopfionParams(h))
		require.NoError(t, err)

		for _, psi := range []float64{0.3, 1.7, -2.2} {
			for _, d := range dirs {
				p, err := tube.Preimage(psi, d[0], d[1])
				require.NoError(t, err)
				assert.InDelta(t, psi, math.Atan2(p[1], p[0]), 1e-9)

				m, _ := tube.At(p[0], p[1], p[2])
				want := geom.Spherical(d[0], d[1])
				assert.True(t, m.EpsEq(want, 1e-9),
					"H = %d, psi = %g: %v vs %v", h, psi, m, want)
			}
		}

		curve, err := tube.PreimageCurve(math.Pi/4, 0, 20)
		require.NoError(t, err)
		assert.Len(t, curve, 20)
		assert.True(t, curve[0].EpsEq(curve[19], 1e-9), "closed curve")
	}

	tube, err := NewTube(TubeParams{Params: Params{W: 2, R: 5, M: 0}, L: 20})
	require.NoError(t, err)
	_, err = tube.Preimage(0, 1, 1)
	assert.Error(t, err)
}

func TestStereographic(t *testing.T) {
	s, err := NewStereographic(1, 0.5, 1, math.Pi/2)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, s.Theta(0, 0), unitEps)
	assert.InDelta(t, 0, s.Theta(1e9, 0), 1e-6)

	g, err := geom.NewGrid(geom.Linspace(-10, 10, 25), geom.Linspace(-10, 10, 25), nil)
	require.NoError(t, err)
	assertUnit(t, field.Generate(g, 2, s.Eval))

	_, err = NewStereographic(0, 1, 1, 0)
	assert.Error(t, err)
	_, err = NewStereographic(1, -1, 1, 0)
	assert.Error(t, err)
}

func TestSphereSamples(t *testing.T) {
	s, err := NewStereographic(3, 5, 1, math.Pi/2)
	require.NoError(t, err)

	for _, n := range []int{100, 750} {
		pts := s.SphereSamples(n)
		assert.InDelta(t, float64(n), float64(len(pts)), 0.05*float64(n))

		center := geom.Vec{0, 0, s.SphereRadius + s.Height}
		for _, pt := range pts {
			assert.InDelta(t, s.SphereRadius, pt.Position.Sub(center).Norm(), 1e-9)
			assert.InDelta(t, 1, pt.Spin.Norm(), unitEps)
		}
	}
	assert.Nil(t, s.SphereSamples(0))
}

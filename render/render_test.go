package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/spintex/cmap"
	"github.com/phil-mansfield/spintex/field"
	"github.com/phil-mansfield/spintex/geom"
	"github.com/phil-mansfield/spintex/skyrmion"
)

type collector struct {
	recs   []Record
	failAt int
}

func (c *collector) Render(rec *Record) error {
	if c.failAt > 0 && len(c.recs) == c.failAt {
		return fmt.Errorf("collector full")
	}
	c.recs = append(c.recs, *rec)
	return nil
}

func lineField(t *testing.T, vecs []geom.Vec) *field.VectorField {
	g, err := geom.NewGrid(geom.Linspace(0, float64(len(vecs)-1), len(vecs)), []float64{0}, nil)
	require.NoError(t, err)
	f, err := field.New(g, vecs)
	require.NoError(t, err)
	return f
}

func TestStream(t *testing.T) {
	f := lineField(t, []geom.Vec{{0, 0, 1}, {0, 0, -2}, {0, 0, 0}, {1, 0, 0}})

	c := &collector{}
	n, err := Stream(f, DefaultOptions(), c)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	spec := cmap.DivergingSpec()
	assert.Equal(t, []int{0, 1, 3}, []int{c.recs[0].Index, c.recs[1].Index, c.recs[2].Index})
	assert.Equal(t, spec.Lookup(1), c.recs[0].Color)
	assert.Equal(t, spec.Lookup(-1), c.recs[1].Color)
	assert.Equal(t, spec.Lookup(0), c.recs[2].Color)

	assert.InDelta(t, 0, c.recs[0].Orientation.Theta, 1e-12)
	assert.InDelta(t, math.Pi, c.recs[1].Orientation.Theta, 1e-12)
	assert.InDelta(t, math.Pi/2, c.recs[2].Orientation.Theta, 1e-12)
	assert.Equal(t, geom.Vec{3, 0, 0}, c.recs[2].Position)
	for _, rec := range c.recs {
		assert.Equal(t, -1, rec.Frame)
	}
}

func TestStreamOptions(t *testing.T) {
	f := lineField(t, []geom.Vec{{0, 0, 1}, {0, 0, 0}, {0, 1, 0}})
	f, err := f.WithMask([]bool{true, true, false})
	require.NoError(t, err)

	opt := DefaultOptions()
	opt.Degenerate = PointUp
	opt.Offset = geom.Vec{0, 0, 2}
	opt.Frame = 15
	opt.Color = Component(0)

	c := &collector{}
	n, err := Stream(f, opt, c)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	assert.Equal(t, 1, c.recs[1].Index)
	assert.Equal(t, 0.0, c.recs[1].Orientation.Theta)
	assert.Equal(t, geom.Vec{1, 0, 2}, c.recs[1].Position)
	assert.Equal(t, 15, c.recs[1].Frame)

	opt.Cut = func(p geom.Vec) bool { return p[0] < 0.5 }
	c = &collector{}
	n, err = Stream(f, opt, c)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStreamRendererError(t *testing.T) {
	f := lineField(t, []geom.Vec{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	c := &collector{failAt: 2}
	n, err := Stream(f, DefaultOptions(), c)
	assert.Error(t, err)
	assert.Equal(t, 2, n)
}

func TestQuadrantCut(t *testing.T) {
	table := []struct {
		p   geom.Vec
		cut bool
	}{
		{geom.Vec{2, 2, 0}, true},
		{geom.Vec{2, 0.5, 0}, false},
		{geom.Vec{-2, 2, 0}, false},
		{geom.Vec{1, 1, 5}, false},
	}
	for i, test := range table {
		assert.Equal(t, test.cut, QuadrantCut(test.p), "%d) %v", i+1, test.p)
	}
}

func TestParseComponent(t *testing.T) {
	for i, name := range []string{"Mx", "My", "Mz"} {
		c, err := ParseComponent(name)
		require.NoError(t, err)
		assert.Equal(t, i, c)
	}
	_, err := ParseComponent("Mw")
	assert.Error(t, err)
}

func TestHelicityScalar(t *testing.T) {
	s := Helicity(func(x, y float64) float64 { return x })
	assert.InDelta(t, -math.Pi/2, s(geom.Vec{3 * math.Pi / 2, 0, 0}, geom.Vec{}), 1e-12)
}

// frameLoader serves a uniform 4 x 3 field whose z-component is the frame
// number, and fails on the listed frames.
type frameLoader struct {
	fail map[int]bool
}

func (l *frameLoader) Load(frame int) (*field.VectorField, error) {
	if l.fail[frame] {
		return nil, fmt.Errorf("frame %d is missing", frame)
	}
	g, err := geom.IndexGrid([3]int{4, 3, 1}, 1)
	if err != nil {
		return nil, err
	}
	return field.Generate(g, 1, func(geom.Vec) (geom.Vec, bool) {
		return geom.Vec{1, 0, float64(frame)}, true
	}), nil
}

func TestAnimate(t *testing.T) {
	opt := DefaultAnimateOptions(0, 4, 2)
	opt.FrameDistance = 5
	opt.ScaleFactor = 3

	c := &collector{}
	done, err := Animate(&frameLoader{}, opt, c)
	require.NoError(t, err)
	assert.Equal(t, 3, done)
	require.Len(t, c.recs, 36)

	assert.Equal(t, 0, c.recs[0].Frame)
	assert.Equal(t, 10, c.recs[12].Frame)
	assert.Equal(t, 20, c.recs[24].Frame)
	assert.Equal(t, geom.Vec{-4.5, -3, 0}, c.recs[0].Position)
	assert.Equal(t, geom.Vec{4.5, 3, 0}, c.recs[11].Position)
}

func TestAnimateFrameErrors(t *testing.T) {
	opt := DefaultAnimateOptions(0, 3, 1)
	c := &collector{}
	done, err := Animate(&frameLoader{fail: map[int]bool{1: true, 2: true}}, opt, c)
	assert.Equal(t, 2, done)
	assert.Len(t, c.recs, 24)
	require.Error(t, err)

	var ferr *FrameError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, 1, ferr.Frame)
	assert.Contains(t, err.Error(), "Frame 2")
}

func TestPrepare(t *testing.T) {
	g, err := geom.IndexGrid([3]int{10, 8, 1}, 1)
	require.NoError(t, err)
	f := field.Generate(g, 0, func(p geom.Vec) (geom.Vec, bool) {
		return geom.Vec{p[0], p[1], 1}, true
	})

	opt := DefaultAnimateOptions(0, 0, 1)
	opt.Stride = [3]int{2, 2, 1}
	opt.CropLo = [3]int{1, 0, 0}
	opt.CropHi = [3]int{4, 0, 0}
	opt.ScaleFactor = 2

	out, err := Prepare(f, opt)
	require.NoError(t, err)
	assert.Equal(t, [3]int{3, 4, 1}, out.Grid.Shape())
	assert.Equal(t, []float64{-2, 0, 2}, out.Grid.Axes[0])
	assert.Equal(t, geom.Vec{-2.5, -3.5, 1}, out.At(0, 0, 0))

	opt.CropHi = [3]int{40, 0, 0}
	_, err = Prepare(f, opt)
	assert.Error(t, err)
}

func TestRaster(t *testing.T) {
	g, err := geom.NewGrid(geom.Linspace(-20, 20, 21), geom.Linspace(-20, 20, 11), nil)
	require.NoError(t, err)
	sk, err := skyrmion.New(skyrmion.Default(0, 0))
	require.NoError(t, err)
	f := field.Generate(g, 0, sk.Eval)

	r, err := NewRaster(g, 0)
	require.NoError(t, err)
	n, err := Stream(f, DefaultOptions(), r)
	require.NoError(t, err)
	assert.Equal(t, 21*11, n)

	spec := cmap.DivergingSpec()
	core := r.Image().RGBAAt(10, 5)
	want := spec.Lookup(-1)
	assert.Equal(t, to8(want.R), core.R)
	assert.Equal(t, to8(want.B), core.B)

	buf := &bytes.Buffer{}
	require.NoError(t, r.WritePNG(buf, 4))
	img, err := png.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, 84, img.Bounds().Dx())
	assert.Equal(t, 44, img.Bounds().Dy())

	_, err = NewRaster(g, 1)
	assert.Error(t, err)
}

func TestCurve(t *testing.T) {
	tube, err := skyrmion.NewTube(skyrmion.TubeParams{
		Params: skyrmion.Params{W: 2, R: 5, M: 1, Eta: math.Pi / 2},
		L:      20,
	})
	require.NoError(t, err)

	alpha, chi := math.Pi/4, 0.0
	pts, err := tube.PreimageCurve(alpha, chi, 20)
	require.NoError(t, err)

	opt := DefaultOptions()
	opt.Color = Component(0)
	c := &collector{}
	m := geom.Spherical(alpha, chi)
	n, err := Curve(pts, m, opt, c)
	require.NoError(t, err)
	require.Equal(t, 20, n)

	for i, rec := range c.recs {
		assert.Equal(t, i, rec.Index)
		assert.InDelta(t, alpha, rec.Orientation.Theta, 1e-12)
		assert.Equal(t, opt.Spec.Lookup(math.Sin(alpha)), rec.Color)
	}

	_, err = Curve(pts, geom.Vec{}, opt, c)
	assert.Error(t, err)
}

func TestPoints(t *testing.T) {
	st, err := skyrmion.NewStereographic(5, 0, 1, math.Pi/2)
	require.NoError(t, err)
	samples := st.SphereSamples(100)
	require.NotEmpty(t, samples)

	pos := make([]geom.Vec, len(samples)+1)
	spins := make([]geom.Vec, len(samples)+1)
	for i, s := range samples {
		pos[i], spins[i] = s.Position, s.Spin
	}
	pos[len(samples)] = geom.Vec{0, 0, 100}

	c := &collector{}
	opt := DefaultOptions()
	n, err := Points(pos, spins, opt, c)
	require.NoError(t, err)
	require.Equal(t, len(samples), n)
	for i, rec := range c.recs {
		assert.Equal(t, i, rec.Index)
		assert.Equal(t, samples[i].Position, rec.Position)
		assert.Equal(t, opt.Spec.Lookup(samples[i].Spin[2]), rec.Color)
	}

	opt.Degenerate = PointUp
	opt.Cut = func(p geom.Vec) bool { return p[2] > 50 }
	c = &collector{}
	n, err = Points(pos, spins, opt, c)
	require.NoError(t, err)
	assert.Equal(t, len(samples), n)

	_, err = Points(pos[:2], spins[:1], opt, c)
	assert.Error(t, err)
}

/*package render turns magnetization fields into a stream of oriented, colored
glyph records and hands them to a Renderer.

Building the scene in a 3D host is the Renderer's job. This package only
decides where each glyph goes, how it is rotated, and what color it has.
*/
package render

import (
	"fmt"

	"github.com/phil-mansfield/spintex/cmap"
	"github.com/phil-mansfield/spintex/field"
	"github.com/phil-mansfield/spintex/geom"
	"github.com/phil-mansfield/spintex/orient"
)

// Record describes a single glyph. Frame is -1 for static output.
type Record struct {
	Index       int
	Position    geom.Vec
	Orientation orient.Orientation
	Color       cmap.RGBA
	Frame       int
}

// Renderer consumes glyph records. The Record passed to Render is reused
// between calls, so implementations that keep it must copy it.
type Renderer interface {
	Render(rec *Record) error
}

// Scalar selects the value used to color a glyph at position p with
// magnetization m.
type Scalar func(p, m geom.Vec) float64

// Component colors glyphs by one component of the magnetization.
func Component(c int) Scalar {
	return func(_, m geom.Vec) float64 { return m[c] }
}

// Helicity colors glyphs by a position-dependent helicity, wrapped into
// [-pi, pi).
func Helicity(h func(x, y float64) float64) Scalar {
	return func(p, _ geom.Vec) float64 { return cmap.WrapAngle(h(p[0], p[1])) }
}

// ParseComponent converts a component name, "Mx", "My", or "Mz", into its
// index.
func ParseComponent(name string) (int, error) {
	switch name {
	case "Mx", "mx":
		return 0, nil
	case "My", "my":
		return 1, nil
	case "Mz", "mz":
		return 2, nil
	}
	return -1, fmt.Errorf(
		"Component '%s' is not recognized. Use one of [Mx | My | Mz].", name,
	)
}

// DegeneratePolicy describes what happens to glyphs whose vector has no
// direction.
type DegeneratePolicy int

const (
	// SkipDegenerate drops the glyph.
	SkipDegenerate DegeneratePolicy = iota
	// PointUp renders the glyph unrotated, pointing along +z.
	PointUp
)

// Options controls how a field is turned into records.
type Options struct {
	Color      Scalar
	Spec       *cmap.Spec
	Degenerate DegeneratePolicy
	// Cut removes the glyphs at every position where it returns true.
	Cut func(p geom.Vec) bool
	// Offset is added to every glyph position.
	Offset geom.Vec
	Frame  int
}

// DefaultOptions colors glyphs by mz on the diverging colormap and skips
// degenerate vectors.
func DefaultOptions() *Options {
	return &Options{
		Color: Component(2),
		Spec:  cmap.DivergingSpec(),
		Frame: -1,
	}
}

// QuadrantCut removes the quadrant x > 1, y > 1, which opens up a view
// into ring-shaped textures.
func QuadrantCut(p geom.Vec) bool {
	return p[0] > 1 && p[1] > 1
}

// Stream sends one record for every valid point of f to r, in grid order.
// Masked points, cut points, and (by default) degenerate vectors produce no
// record. It returns the number of records rendered and stops at the first
// Renderer error.
func Stream(f *field.VectorField, opt *Options, r Renderer) (int, error) {
	rec := &Record{Frame: opt.Frame}
	n := 0
	for idx, m := range f.Vecs {
		if !f.Valid(idx) {
			continue
		}
		p := f.Grid.Point(idx)
		if opt.Cut != nil && opt.Cut(p) {
			continue
		}

		o, err := orient.Decompose(m)
		if err != nil {
			if opt.Degenerate == SkipDegenerate {
				continue
			}
			o = orient.Up()
		}

		rec.Index = idx
		rec.Position = p.Add(opt.Offset)
		rec.Orientation = o
		rec.Color = opt.Spec.Lookup(opt.Color(p, m))

		if err := r.Render(rec); err != nil {
			return n, fmt.Errorf("Could not render point %d: %w", idx, err)
		}
		n++
	}
	return n, nil
}

// Curve sends one record for each point of a curve along which the
// magnetization is uniformly m, such as a preimage of a tube. Records are
// indexed by their position along the curve.
func Curve(points []geom.Vec, m geom.Vec, opt *Options, r Renderer) (int, error) {
	o, err := orient.Decompose(m)
	if err != nil {
		return 0, err
	}

	rec := &Record{Frame: opt.Frame, Orientation: o}
	for i, p := range points {
		rec.Index = i
		rec.Position = p.Add(opt.Offset)
		rec.Color = opt.Spec.Lookup(opt.Color(p, m))
		if err := r.Render(rec); err != nil {
			return i, fmt.Errorf("Could not render curve point %d: %w", i, err)
		}
	}
	return len(points), nil
}

// Points sends one record for each of a set of scattered glyphs, such as
// samples on a surface, where spins[i] is the magnetization at positions[i].
// Cut and the degenerate policy apply as in Stream, and records are indexed
// by their position in the slices.
func Points(positions, spins []geom.Vec, opt *Options, r Renderer) (int, error) {
	if len(positions) != len(spins) {
		return 0, fmt.Errorf(
			"%d positions were given for %d spins.", len(positions), len(spins),
		)
	}

	rec := &Record{Frame: opt.Frame}
	n := 0
	for i, p := range positions {
		if opt.Cut != nil && opt.Cut(p) {
			continue
		}
		m := spins[i]
		o, err := orient.Decompose(m)
		if err != nil {
			if opt.Degenerate == SkipDegenerate {
				continue
			}
			o = orient.Up()
		}

		rec.Index = i
		rec.Position = p.Add(opt.Offset)
		rec.Orientation = o
		rec.Color = opt.Spec.Lookup(opt.Color(p, m))
		if err := r.Render(rec); err != nil {
			return n, fmt.Errorf("Could not render point %d: %w", i, err)
		}
		n++
	}
	return n, nil
}

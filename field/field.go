/*package field contains VectorField, the dense grid of magnetization vectors
that every texture model produces and that the render stream and the
topological estimators consume.
*/
package field

import (
	"fmt"
	"runtime"

	"github.com/phil-mansfield/spintex/geom"
)

// ShapeMismatchError is returned when an array does not have the length or
// shape required by the grid it is paired with.
type ShapeMismatchError struct {
	Want, Got [3]int
	What      string
}

func (err *ShapeMismatchError) Error() string {
	return fmt.Sprintf(
		"%s has shape %v, but shape %v was expected.", err.What, err.Got, err.Want,
	)
}

// VectorField is a 3-vector at every point of a Grid. Mask marks the points
// where the texture is defined; a nil Mask means every point is valid.
//
// VectorFields are not modified after construction. Every transformation
// returns a new instance, so one field is created per animation frame.
type VectorField struct {
	Grid *geom.Grid
	Vecs []geom.Vec
	Mask []bool
}

// New pairs a grid with a slice of vectors, which must contain exactly one
// vector per grid point. The slice is not copied.
func New(g *geom.Grid, vecs []geom.Vec) (*VectorField, error) {
	if len(vecs) != g.Volume {
		return nil, &ShapeMismatchError{
			What: "Vector array", Want: g.Shape(), Got: [3]int{len(vecs), 1, 1},
		}
	}
	return &VectorField{Grid: g, Vecs: vecs}, nil
}

// FromComponents builds a field from three x-major component arrays.
func FromComponents(g *geom.Grid, mx, my, mz []float64) (*VectorField, error) {
	comps := [][]float64{mx, my, mz}
	for c := range comps {
		if len(comps[c]) != g.Volume {
			return nil, &ShapeMismatchError{
				What: fmt.Sprintf("Component %d", c),
				Want: g.Shape(), Got: [3]int{len(comps[c]), 1, 1},
			}
		}
	}

	vecs := make([]geom.Vec, g.Volume)
	for i := range vecs {
		vecs[i] = geom.Vec{mx[i], my[i], mz[i]}
	}
	return &VectorField{Grid: g, Vecs: vecs}, nil
}

// WithMask returns a copy of f which shares f's vectors but uses the given
// mask.
func (f *VectorField) WithMask(mask []bool) (*VectorField, error) {
	if mask != nil && len(mask) != len(f.Vecs) {
		return nil, &ShapeMismatchError{
			What: "Mask", Want: f.Grid.Shape(), Got: [3]int{len(mask), 1, 1},
		}
	}
	return &VectorField{Grid: f.Grid, Vecs: f.Vecs, Mask: mask}, nil
}

// Valid returns true if the point with the given index is part of the
// texture.
func (f *VectorField) Valid(idx int) bool {
	return f.Mask == nil || f.Mask[idx]
}

// At returns the vector at the given grid indices.
func (f *VectorField) At(i, j, k int) geom.Vec {
	return f.Vecs[f.Grid.Idx(i, j, k)]
}

// Component returns a copy of one vector component over the whole grid.
func (f *VectorField) Component(c int) []float64 {
	out := make([]float64, len(f.Vecs))
	for i := range f.Vecs {
		out[i] = f.Vecs[i][c]
	}
	return out
}

// Normalized returns a new field in which every vector has unit length.
// Zero vectors are left as zero vectors and marked invalid.
func (f *VectorField) Normalized() *VectorField {
	out := &VectorField{Grid: f.Grid, Vecs: make([]geom.Vec, len(f.Vecs))}
	var mask []bool
	for i, v := range f.Vecs {
		n, ok := v.Normalized()
		out.Vecs[i] = n
		if !ok {
			if mask == nil {
				mask = make([]bool, len(f.Vecs))
				for j := range mask {
					mask[j] = f.Valid(j)
				}
			}
			mask[i] = false
		}
	}

	if mask == nil && f.Mask != nil {
		mask = append([]bool(nil), f.Mask...)
	}
	out.Mask = mask
	return out
}

// Crop returns the sub-field spanning the index range [lo, hi) along each
// axis.
func (f *VectorField) Crop(lo, hi [3]int) (*VectorField, error) {
	g, err := f.Grid.Crop(lo, hi)
	if err != nil {
		return nil, err
	}
	return f.resample(g, lo, [3]int{1, 1, 1}), nil
}

// Stride returns the sub-field containing every step-th point along each
// axis.
func (f *VectorField) Stride(step [3]int) (*VectorField, error) {
	g, err := f.Grid.Stride(step)
	if err != nil {
		return nil, err
	}
	return f.resample(g, [3]int{}, step), nil
}

func (f *VectorField) resample(g *geom.Grid, origin, step [3]int) *VectorField {
	out := &VectorField{Grid: g, Vecs: make([]geom.Vec, g.Volume)}
	if f.Mask != nil {
		out.Mask = make([]bool, g.Volume)
	}

	for idx := range out.Vecs {
		i, j, k := g.Coords(idx)
		src := f.Grid.Idx(
			origin[0]+i*step[0], origin[1]+j*step[1], origin[2]+k*step[2],
		)
		out.Vecs[idx] = f.Vecs[src]
		if out.Mask != nil {
			out.Mask[idx] = f.Mask[src]
		}
	}
	return out
}

// PointFunc evaluates a texture at a position. It returns false if the
// texture is not defined at that position.
type PointFunc func(p geom.Vec) (geom.Vec, bool)

// Generate evaluates fn at every point of g using the given number of
// workers and returns the resulting field. If workers is non-positive, one
// worker is used per logical core. The mask is only allocated if fn rejects
// at least one point.
//
// fn must be safe to call concurrently.
func Generate(g *geom.Grid, workers int, fn PointFunc) *VectorField {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > g.Volume {
		workers = g.Volume
	}

	vecs := make([]geom.Vec, g.Volume)
	valid := make([]bool, g.Volume)
	out := make(chan int, workers)

	for id := 0; id < workers-1; id++ {
		go chanGenerate(id, workers, g, fn, vecs, valid, out)
	}
	chanGenerate(workers-1, workers, g, fn, vecs, valid, out)

	for i := 0; i < workers; i++ {
		<-out
	}

	f := &VectorField{Grid: g, Vecs: vecs}
	for _, ok := range valid {
		if !ok {
			f.Mask = valid
			break
		}
	}
	return f
}

// chanGenerate is a worker function which evaluates every workers-th point
// starting at its ID and then sends that ID to the out channel.
func chanGenerate(
	id, workers int, g *geom.Grid, fn PointFunc,
	vecs []geom.Vec, valid []bool, out chan<- int,
) {
	for idx := id; idx < g.Volume; idx += workers {
		vecs[idx], valid[idx] = fn(g.Point(idx))
	}
	out <- id
}

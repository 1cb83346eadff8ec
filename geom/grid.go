package geom

import (
	"fmt"
)

// Grid is a rectilinear lattice given by explicit coordinate arrays along
// each axis. Points are stored in a 1D slice with x-major ordering, i.e. x
// varies fastest. Spacing does not need to be uniform, which allows grids to
// be cropped and strided without losing their physical coordinates.
//
// A planar grid has a single z coordinate.
type Grid struct {
	Axes                 [3][]float64
	Length, Area, Volume int
	planar               bool
}

// NewGrid returns a new Grid with the given coordinate arrays. If zs is
// empty, the grid is planar and lies in the z = 0 plane.
func NewGrid(xs, ys, zs []float64) (*Grid, error) {
	g := &Grid{}
	return g, g.Init(xs, ys, zs)
}

// Init initializes a Grid instance. Coordinate slices are copied.
func (g *Grid) Init(xs, ys, zs []float64) error {
	if len(xs) == 0 {
		return fmt.Errorf("Grid requires at least one x coordinate.")
	} else if len(ys) == 0 {
		return fmt.Errorf("Grid requires at least one y coordinate.")
	}

	g.planar = len(zs) == 0
	if g.planar {
		zs = []float64{0}
	}

	g.Axes[0] = append([]float64(nil), xs...)
	g.Axes[1] = append([]float64(nil), ys...)
	g.Axes[2] = append([]float64(nil), zs...)

	g.Length = len(xs)
	g.Area = len(xs) * len(ys)
	g.Volume = g.Area * len(zs)
	return nil
}

// Linspace returns n evenly spaced values over [lo, hi], including both
// endpoints.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	} else if n == 1 {
		return []float64{lo}
	}

	xs := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range xs {
		xs[i] = lo + float64(i)*step
	}
	xs[n-1] = hi
	return xs
}

// OddCount returns n if it is odd and n+1 otherwise. An odd point count
// gives a grid centred on zero a central point.
func OddCount(n int) int {
	if n%2 == 0 {
		return n + 1
	}
	return n
}

// IndexGrid returns a grid whose coordinates are derived from array indices
// and centred on the origin: x = scale * (i - (n - 1)/2). A shape with a
// z-extent of 1 gives a planar grid.
func IndexGrid(shape [3]int, scale float64) (*Grid, error) {
	var axes [3][]float64
	for dim := 0; dim < 3; dim++ {
		n := shape[dim]
		if n <= 0 {
			return nil, fmt.Errorf(
				"IndexGrid given non-positive extent %d along axis %d.", n, dim,
			)
		}
		axes[dim] = make([]float64, n)
		for i := range axes[dim] {
			axes[dim][i] = scale * (float64(i) - float64(n-1)/2)
		}
	}

	if shape[2] == 1 {
		return NewGrid(axes[0], axes[1], nil)
	}
	return NewGrid(axes[0], axes[1], axes[2])
}

// Shape returns the number of points along each axis.
func (g *Grid) Shape() [3]int {
	return [3]int{len(g.Axes[0]), len(g.Axes[1]), len(g.Axes[2])}
}

// Dim returns 2 for planar grids and 3 otherwise.
func (g *Grid) Dim() int {
	if g.planar {
		return 2
	}
	return 3
}

// Idx returns the grid index corresponding to a set of coordinates.
func (g *Grid) Idx(i, j, k int) int {
	return i + j*g.Length + k*g.Area
}

// IdxCheck returns an index and true if the given coordinate are valid and
// false otherwise.
func (g *Grid) IdxCheck(i, j, k int) (idx int, ok bool) {
	if !g.BoundsCheck(i, j, k) {
		return -1, false
	}
	return g.Idx(i, j, k), true
}

// BoundsCheck returns true if the given indices are within the Grid and
// false otherwise.
func (g *Grid) BoundsCheck(i, j, k int) bool {
	shape := g.Shape()
	return (0 <= i && 0 <= j && 0 <= k) &&
		(i < shape[0] && j < shape[1] && k < shape[2])
}

// Coords returns the i, j, k indices of a point from its grid index.
func (g *Grid) Coords(idx int) (i, j, k int) {
	i = idx % g.Length
	j = (idx % g.Area) / g.Length
	k = idx / g.Area
	return i, j, k
}

// Point returns the physical position of the point with the given grid index.
func (g *Grid) Point(idx int) Vec {
	i, j, k := g.Coords(idx)
	return Vec{g.Axes[0][i], g.Axes[1][j], g.Axes[2][k]}
}

// Crop returns the sub-grid spanning the index range [lo, hi) along each
// axis.
func (g *Grid) Crop(lo, hi [3]int) (*Grid, error) {
	shape := g.Shape()
	var axes [3][]float64
	for dim := 0; dim < 3; dim++ {
		if lo[dim] < 0 || hi[dim] > shape[dim] || lo[dim] >= hi[dim] {
			return nil, fmt.Errorf(
				"Crop range [%d, %d) along axis %d is not within [0, %d).",
				lo[dim], hi[dim], dim, shape[dim],
			)
		}
		axes[dim] = g.Axes[dim][lo[dim]:hi[dim]]
	}
	return g.withAxes(axes)
}

// Stride returns the grid containing every step-th point along each axis,
// starting from the first.
func (g *Grid) Stride(step [3]int) (*Grid, error) {
	var axes [3][]float64
	for dim := 0; dim < 3; dim++ {
		if step[dim] <= 0 {
			return nil, fmt.Errorf(
				"Stride along axis %d must be positive, but is %d.",
				dim, step[dim],
			)
		}
		for i := 0; i < len(g.Axes[dim]); i += step[dim] {
			axes[dim] = append(axes[dim], g.Axes[dim][i])
		}
	}
	return g.withAxes(axes)
}

func (g *Grid) withAxes(axes [3][]float64) (*Grid, error) {
	if g.planar {
		return NewGrid(axes[0], axes[1], nil)
	}
	return NewGrid(axes[0], axes[1], axes[2])
}

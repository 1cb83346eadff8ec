/*package hopf estimates topological invariants of discretized magnetization
textures.

Both estimators use forward differences and are only meaningful for dense,
unmasked, normalized fields which vanish into a uniform background at the
edges of the grid. Masks are ignored.
*/
package hopf

import (
	"math"
	"runtime"

	"github.com/phil-mansfield/spintex/field"
)

// Index returns the Hopf index of a 3D field.
//
// The field is differenced along each axis and trimmed to the common
// (nx-1) x (ny-1) x (nz-1) interior. The emergent field components
// F_xy = m . (dx m x dy m) and F_yz = m . (dy m x dz m) are integrated along
// y to give a vector potential, and the Hopf index is the integral of
// m . (A_xy (dz m x dy m) + A_yz (dx m x dy m)), divided by (4 pi)^2.
//
// workers x-planes are processed concurrently. A non-positive value uses one
// worker per logical core. The result does not depend on workers.
func Index(f *field.VectorField, workers int) (float64, error) {
	shape := f.Grid.Shape()
	if f.Grid.Dim() != 3 || shape[0] < 2 || shape[1] < 2 || shape[2] < 2 {
		return 0, &field.ShapeMismatchError{
			What: "Hopf index field", Got: shape, Want: [3]int{2, 2, 2},
		}
	}

	planes := make([]float64, shape[0]-1)
	run(workers, len(planes), func(i int) { planes[i] = indexPlane(f, i) })
	return sum(planes) / (16 * math.Pi * math.Pi), nil
}

// indexPlane returns the contribution of the x-plane i to the Hopf integral.
func indexPlane(f *field.VectorField, i int) float64 {
	shape := f.Grid.Shape()
	total := 0.0
	for k := 0; k < shape[2]-1; k++ {
		axy, ayz := 0.0, 0.0
		for j := 0; j < shape[1]-1; j++ {
			m := f.At(i, j, k)
			dx := f.At(i+1, j, k).Sub(m)
			dy := f.At(i, j+1, k).Sub(m)
			dz := f.At(i, j, k+1).Sub(m)

			axy += m.Triple(dx, dy)
			ayz += m.Triple(dy, dz)

			a := dz.Cross(dy).Scale(axy).Add(dx.Cross(dy).Scale(ayz))
			total += m.Dot(a)
		}
	}
	return total
}

// SkyrmionNumber returns the skyrmion number of the z-slice k of a field,
// (1/4 pi) times the sum of m . (dx m x dy m) over the slice. A skyrmion
// with a core pointing down and vorticity m has a skyrmion number close to
// -m.
func SkyrmionNumber(f *field.VectorField, k, workers int) (float64, error) {
	shape := f.Grid.Shape()
	if shape[0] < 2 || shape[1] < 2 || k < 0 || k >= shape[2] {
		return 0, &field.ShapeMismatchError{
			What: "Skyrmion number slice", Got: shape,
			Want: [3]int{2, 2, k + 1},
		}
	}

	planes := make([]float64, shape[0]-1)
	run(workers, len(planes), func(i int) {
		for j := 0; j < shape[1]-1; j++ {
			m := f.At(i, j, k)
			dx := f.At(i+1, j, k).Sub(m)
			dy := f.At(i, j+1, k).Sub(m)
			planes[i] += m.Triple(dx, dy)
		}
	})
	return sum(planes) / (4 * math.Pi), nil
}

// run calls fn on every index in [0, n) using the given number of workers.
// It returns once every call has finished.
func run(workers, n int, fn func(i int)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	out := make(chan int, workers)
	for id := 0; id < workers; id++ {
		go chanRun(id, workers, n, fn, out)
	}
	for i := 0; i < workers; i++ {
		<-out
	}
}

func chanRun(id, workers, n int, fn func(i int), out chan<- int) {
	for i := id; i < n; i += workers {
		fn(i)
	}
	out <- id
}

// sum adds partial results in order so that the total does not depend on
// scheduling.
func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}

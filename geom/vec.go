/*package geom contains the vector and coordinate-grid types shared by the
texture models, the angle decomposition, and the topological estimators.
*/
package geom

import (
	"math"
)

// Vec is a three dimensional vector. (Duh!)
type Vec [3]float64

// Add returns v + u.
func (v Vec) Add(u Vec) Vec {
	return Vec{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// Sub returns v - u.
func (v Vec) Sub(u Vec) Vec {
	return Vec{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

// Scale returns k * v.
func (v Vec) Scale(k float64) Vec {
	return Vec{k * v[0], k * v[1], k * v[2]}
}

// Dot computes the inner product of v and u.
func (v Vec) Dot(u Vec) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Cross computes the cross product v x u.
func (v Vec) Cross(u Vec) Vec {
	return Vec{
		v[1]*u[2] - v[2]*u[1],
		v[2]*u[0] - v[0]*u[2],
		v[0]*u[1] - v[1]*u[0],
	}
}

// Triple computes the scalar triple product v . (a x b).
func (v Vec) Triple(a, b Vec) float64 {
	return v.Dot(a.Cross(b))
}

// Norm returns the Euclidean length of v.
func (v Vec) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalized returns v scaled to unit length along with true, or the zero
// vector and false if v has zero or non-finite length.
func (v Vec) Normalized() (Vec, bool) {
	n := v.Norm()
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Vec{}, false
	}
	return v.Scale(1 / n), true
}

// EpsEq returns true if every component of v and u differs by at most eps.
func (v Vec) EpsEq(u Vec, eps float64) bool {
	for i := 0; i < 3; i++ {
		diff := v[i] - u[i]
		if diff > eps || diff < -eps {
			return false
		}
	}
	return true
}

// Spherical returns the unit vector with polar angle theta (measured from +z)
// and azimuthal angle phi (measured from +x).
func Spherical(theta, phi float64) Vec {
	st, ct := math.Sincos(theta)
	sp, cp := math.Sincos(phi)
	return Vec{cp * st, sp * st, ct}
}

/*package orient converts magnetization vectors into the orientation of a
glyph that initially points along +z.
*/
package orient

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/spintex/geom"
)

// DegenerateVectorError is returned when a vector has no direction.
type DegenerateVectorError struct {
	Vec geom.Vec
}

func (err *DegenerateVectorError) Error() string {
	return fmt.Sprintf("Vector %v has no direction.", err.Vec)
}

// Orientation describes how a glyph pointing along +z is rotated onto a
// magnetization vector: by Theta radians around Axis, which lies in the
// xy-plane at angle Phi + pi/2.
type Orientation struct {
	Theta, Phi float64
	Axis       geom.Vec
}

// Decompose returns the orientation which rotates +z onto m. m is
// renormalized, so it does not need unit length, but a zero or non-finite m
// returns a *DegenerateVectorError.
func Decompose(m geom.Vec) (Orientation, error) {
	n := m.Norm()
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Orientation{}, &DegenerateVectorError{m}
	}

	o := Orientation{}
	o.Theta = math.Acos(math.Max(-1, math.Min(1, m[2]/n)))
	o.Phi = math.Atan2(m[1], m[0])

	axisAngle := o.Phi + math.Pi/2
	o.Axis = geom.Vec{math.Cos(axisAngle), math.Sin(axisAngle), 0}
	return o, nil
}

// Up is the orientation of a glyph which is not rotated.
func Up() Orientation {
	return Orientation{Theta: 0, Phi: 0, Axis: geom.Vec{0, 1, 0}}
}

// Direction returns the unit vector with the given polar and azimuthal angles.
// It is the inverse of Decompose.
func Direction(theta, phi float64) geom.Vec {
	return geom.Spherical(theta, phi)
}

// AxisAngle returns the orientation as a (angle, x, y, z) quadruple.
func (o *Orientation) AxisAngle() [4]float64 {
	return [4]float64{o.Theta, o.Axis[0], o.Axis[1], o.Axis[2]}
}

// Rotation returns the orientation as a geom.AxisAngle.
func (o *Orientation) Rotation() geom.AxisAngle {
	return geom.AxisAngle{Angle: o.Theta, Axis: o.Axis}
}

// EulerYZ returns the equivalent pair of rotations, first around the y-axis
// and then around the z-axis. Both map +z onto the same vector.
func (o *Orientation) EulerYZ() (y, z float64) {
	return o.Theta, o.Phi
}

package geom

import (
	"math"
)

// AxisAngle is a rotation by Angle radians around the unit vector Axis.
type AxisAngle struct {
	Angle float64
	Axis  Vec
}

// Rotate rotates v by the axis-angle rotation aa using Rodrigues' formula.
func (aa *AxisAngle) Rotate(v Vec) Vec {
	s, c := math.Sincos(aa.Angle)
	k := aa.Axis
	kv := k.Cross(v)
	kdv := k.Dot(v)

	out := v.Scale(c).Add(kv.Scale(s))
	return out.Add(k.Scale(kdv * (1 - c)))
}

// RotateZ rotates v by angle radians around the z-axis.
func RotateZ(v Vec, angle float64) Vec {
	s, c := math.Sincos(angle)
	return Vec{v[0]*c - v[1]*s, v[0]*s + v[1]*c, v[2]}
}

// RotateY rotates v by angle radians around the y-axis.
func RotateY(v Vec, angle float64) Vec {
	s, c := math.Sincos(angle)
	return Vec{v[0]*c + v[2]*s, v[1], -v[0]*s + v[2]*c}
}

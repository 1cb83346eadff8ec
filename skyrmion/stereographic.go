package skyrmion

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/spintex/geom"
)

// Stereographic is the skyrmion found by projecting a hedgehog-wound sphere
// of radius SphereRadius, floating Height above the plane, onto the plane
// from the sphere's north pole.
type Stereographic struct {
	SphereRadius, Height float64
	M                    int
	Eta                  float64
}

// NewStereographic returns a stereographic skyrmion.
func NewStereographic(r, h float64, m int, eta float64) (*Stereographic, error) {
	if !(r > 0) {
		return nil, fmt.Errorf("Sphere radius must be positive, but is %g.", r)
	} else if h < 0 {
		return nil, fmt.Errorf("Sphere height must be non-negative, but is %g.", h)
	}
	return &Stereographic{SphereRadius: r, Height: h, M: m, Eta: eta}, nil
}

// Theta returns the angle between the spin at (x, y) and the z-axis.
func (s *Stereographic) Theta(x, y float64) float64 {
	alpha := math.Atan(math.Hypot(x, y) / (s.Height + 2*s.SphereRadius))
	return math.Pi - 2*alpha
}

// Phi returns the in-plane angle of the spin at (x, y).
func (s *Stereographic) Phi(x, y float64) float64 {
	return float64(s.M)*math.Atan2(y, x) + s.Eta
}

// Eval returns the magnetization at p and is a field.PointFunc.
func (s *Stereographic) Eval(p geom.Vec) (geom.Vec, bool) {
	return geom.Spherical(s.Theta(p[0], p[1]), s.Phi(p[0], p[1])), true
}

// SpherePoint is a sample on the surface of the projected sphere.
type SpherePoint struct {
	Position, Spin geom.Vec
}

// SphereSamples returns approximately n points distributed with equal area
// over the sphere, each carrying the spin of the hedgehog texture at that
// point. It uses the regular placement of Deserno, "How to generate
// equidistributed points on the surface of a sphere".
func (s *Stereographic) SphereSamples(n int) []SpherePoint {
	if n <= 0 {
		return nil
	}

	// The placement is computed on the unit sphere and scaled afterwards.
	r := s.SphereRadius
	a := 4 * math.Pi / float64(n)
	d := math.Sqrt(a)
	mTheta := int(math.Round(math.Pi / d))
	if mTheta < 1 {
		mTheta = 1
	}
	dTheta := math.Pi / float64(mTheta)
	dPhi := a / dTheta

	pts := []SpherePoint{}
	for i := 0; i < mTheta; i++ {
		theta := math.Pi * (float64(i) + 0.5) / float64(mTheta)
		mPhi := int(math.Round(2 * math.Pi * math.Sin(theta) / dPhi))

		for j := 0; j < mPhi; j++ {
			phi := 2 * math.Pi * float64(j) / float64(mPhi)
			pos := geom.Vec{
				r * math.Cos(phi) * math.Sin(theta),
				r * math.Sin(phi) * math.Sin(theta),
				r + s.Height + r*math.Cos(theta),
			}
			spin := geom.Spherical(theta, float64(s.M)*phi+s.Eta)
			pts = append(pts, SpherePoint{pos, spin})
		}
	}
	return pts
}

/*package skyrmion contains closed-form magnetization textures: single
skyrmions, lattices of skyrmions, skyrmion tubes that carry a Hopf index, and
skyrmions obtained by stereographic projection of a hedgehog sphere.

Every model evaluates to unit vectors, and every model is a pure function of
position, so models can be evaluated concurrently.
*/
package skyrmion

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/spintex/geom"
)

// Params describes a single skyrmion.
type Params struct {
	CenterX, CenterY float64
	// W is the domain wall width and R is the skyrmion radius.
	W, R float64
	// M is the vorticity.
	M int
	// Eta is the helicity: pi/2 for Bloch-type, 0 for Neel-type and -pi/2
	// for Bloch-type skyrmions of reversed chirality.
	Eta float64
}

// Default returns the parameters used when a skyrmion is placed with no
// other parameters: a Bloch skyrmion with w = 5 and R = 10.
func Default(x, y float64) Params {
	return Params{CenterX: x, CenterY: y, W: 5, R: 10, M: 1, Eta: math.Pi / 2}
}

// Validate returns an error if the wall width or radius is not positive and
// finite.
func (p *Params) Validate() error {
	if !(p.W > 0) || math.IsInf(p.W, 0) {
		return fmt.Errorf("Domain wall width must be positive, but is %g.", p.W)
	} else if !(p.R > 0) || math.IsInf(p.R, 0) {
		return fmt.Errorf("Skyrmion radius must be positive, but is %g.", p.R)
	}
	return nil
}

// Profile returns the polar angle of the wall profile at distance rho from a
// skyrmion core. It is pi at the core and goes to zero far away.
func Profile(rho, r, w float64) float64 {
	return 2 * math.Atan2(math.Sinh(r/w), math.Sinh(rho/w))
}

// Skyrmion is a single skyrmion texture in the xy-plane.
type Skyrmion struct {
	Params
}

// New returns a skyrmion with the given parameters.
func New(p Params) (*Skyrmion, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Skyrmion{p}, nil
}

// Distance returns the distance between (x, y) and the skyrmion's center.
func (s *Skyrmion) Distance(x, y float64) float64 {
	return math.Hypot(x-s.CenterX, y-s.CenterY)
}

// Theta returns the angle between the spin at (x, y) and the z-axis.
func (s *Skyrmion) Theta(x, y float64) float64 {
	return Profile(s.Distance(x, y), s.R, s.W)
}

// Phi returns the in-plane angle of the spin at (x, y).
func (s *Skyrmion) Phi(x, y float64) float64 {
	phi := math.Atan2(y-s.CenterY, x-s.CenterX)
	return float64(s.M)*phi + s.Eta
}

// At returns the magnetization at (x, y).
func (s *Skyrmion) At(x, y float64) geom.Vec {
	return geom.Spherical(s.Theta(x, y), s.Phi(x, y))
}

// Eval returns the magnetization at p and is a field.PointFunc. The texture
// is defined everywhere and is independent of p's z-coordinate.
func (s *Skyrmion) Eval(p geom.Vec) (geom.Vec, bool) {
	return s.At(p[0], p[1]), true
}

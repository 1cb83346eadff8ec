package skyrmion

import (
	"fmt"
	"math"
	"runtime"

	"github.com/phil-mansfield/spintex/field"
	"github.com/phil-mansfield/spintex/geom"
)

// TubeParams describes a skyrmion tube bent into a ring of radius L around
// the z-axis. The cross-section of the ring is a skyrmion with the embedded
// parameters, whose helicity winds HopfIndex times around the ring. The
// embedded center is ignored.
type TubeParams struct {
	Params
	L         float64
	HopfIndex int
}

// Validate returns an error if the tube parameters are unphysical.
func (p *TubeParams) Validate() error {
	if err := p.Params.Validate(); err != nil {
		return err
	}
	if !(p.L > 0) || math.IsInf(p.L, 0) {
		return fmt.Errorf("Tube radius L must be positive, but is %g.", p.L)
	}
	return nil
}

// Tube is a skyrmion tube ("doughnut") texture. For non-zero Hopf index it is
// a hopfion.
type Tube struct {
	TubeParams
}

// NewTube returns a tube with the given parameters.
func NewTube(p TubeParams) (*Tube, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Tube{p}, nil
}

// LocalFrame translates the point (x, y) from the ring to the origin and
// rotates it into the xz-plane. It returns the in-plane radial coordinate
// xpp, the translated y-coordinate yp, and the ring angle psi. z is invariant
// under this transformation.
func (t *Tube) LocalFrame(x, y float64) (xpp, yp, psi float64) {
	psi = math.Atan2(y, x)
	sin, cos := math.Sincos(psi)

	xp := x - t.L*cos
	yp = y - t.L*sin
	xpp = xp*cos + yp*sin
	return xpp, yp, psi
}

// Helicity returns the helicity of the cross-section passing through (x, y).
func (t *Tube) Helicity(x, y float64) float64 {
	return t.Eta + float64(t.HopfIndex)*math.Atan2(y, x)
}

// Inside returns true if (x, y, z) lies inside the cutoff radius of 2R
// around the tube's core.
func (t *Tube) Inside(x, y, z float64) bool {
	xpp, _, _ := t.LocalFrame(x, y)
	return math.Hypot(xpp, z) < 2*t.R
}

// At returns the magnetization at (x, y, z) and true if the point lies
// inside the tube. The vector is computed even if the point lies outside.
func (t *Tube) At(x, y, z float64) (geom.Vec, bool) {
	xpp, _, psi := t.LocalFrame(x, y)
	rho := math.Hypot(xpp, z)
	phi := math.Atan2(z, xpp)
	return t.spin(rho, phi, psi, t.Helicity(x, y)), rho < 2*t.R
}

// Eval returns the magnetization at p and is a field.PointFunc.
func (t *Tube) Eval(p geom.Vec) (geom.Vec, bool) {
	return t.At(p[0], p[1], p[2])
}

// spin computes the global magnetization from the cross-section coordinates
// (rho, phi), the ring angle psi, and the local helicity.
func (t *Tube) spin(rho, phi, psi, helicity float64) geom.Vec {
	Phi := float64(t.M)*phi + helicity
	Theta := Profile(rho, t.R, t.W)

	sinPhi, cosPhi := math.Sincos(Phi)
	sinTheta, cosTheta := math.Sincos(Theta)

	// In the cross-section frame the roles of y and z are swapped: the
	// "out of plane" component is local y.
	local := geom.Vec{cosPhi * sinTheta, cosTheta, sinPhi * sinTheta}
	return geom.RotateZ(local, psi)
}

// column holds the quantities which only depend on a point's x and y
// coordinates.
type column struct {
	xpp, psi, helicity float64
}

// Fill evaluates the tube over an entire grid. Quantities which depend only
// on the xy-position are computed once per column, and the radial coordinate
// is found from the cylindrical radius directly rather than through
// LocalFrame. Points outside the tube are masked.
func (t *Tube) Fill(g *geom.Grid, workers int) *field.VectorField {
	shape := g.Shape()
	cols := make([]column, shape[0]*shape[1])
	for j := 0; j < shape[1]; j++ {
		for i := 0; i < shape[0]; i++ {
			x, y := g.Axes[0][i], g.Axes[1][j]
			c := &cols[i+j*shape[0]]
			c.psi = math.Atan2(y, x)
			c.xpp = math.Hypot(x, y) - t.L
			c.helicity = t.Eta + float64(t.HopfIndex)*c.psi
		}
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > shape[2] {
		workers = shape[2]
	}

	vecs := make([]geom.Vec, g.Volume)
	mask := make([]bool, g.Volume)
	out := make(chan int, workers)
	for id := 0; id < workers; id++ {
		go t.chanFill(id, workers, g, cols, vecs, mask, out)
	}
	for i := 0; i < workers; i++ {
		<-out
	}

	return &field.VectorField{Grid: g, Vecs: vecs, Mask: mask}
}

// chanFill fills every workers-th z-plane of the grid, starting at its ID.
func (t *Tube) chanFill(
	id, workers int, g *geom.Grid, cols []column,
	vecs []geom.Vec, mask []bool, out chan<- int,
) {
	for k := id; k < len(g.Axes[2]); k += workers {
		z := g.Axes[2][k]
		for ci, c := range cols {
			rho := math.Hypot(c.xpp, z)
			phi := math.Atan2(z, c.xpp)

			idx := ci + k*g.Area
			vecs[idx] = t.spin(rho, phi, c.psi, c.helicity)
			mask[idx] = rho < 2*t.R
		}
	}
	out <- id
}

package skyrmion

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/spintex/geom"
)

// Preimage returns the point at ring angle psi where the tube's
// magnetization points along the global direction with polar angle alpha and
// azimuthal angle chi.
//
// The inversion uses the principal branch of the cross-section angle, so for
// |M| > 1 only one of the |M| preimages in each cross-section is returned.
func (t *Tube) Preimage(psi, alpha, chi float64) (geom.Vec, error) {
	if t.M == 0 {
		return geom.Vec{}, fmt.Errorf("Preimages require non-zero vorticity.")
	}

	// Rotate the target direction into the cross-section frame at psi.
	target := geom.RotateZ(geom.Spherical(alpha, chi), -psi)
	Phi := math.Atan2(target[2], target[0])
	Theta := math.Acos(math.Max(-1, math.Min(1, target[1])))

	helicity := t.Eta + float64(t.HopfIndex)*psi
	phi := (Phi - helicity) / float64(t.M)
	rho := t.W * math.Asinh(math.Sinh(t.R/t.W)/math.Tan(Theta/2))

	if math.IsNaN(rho) || math.IsInf(rho, 0) {
		return geom.Vec{}, fmt.Errorf(
			"Direction (%.4g, %.4g) is not attained by this tube.", alpha, chi,
		)
	}

	sin, cos := math.Sincos(phi)
	xp, z := rho*cos, rho*sin
	if t.L+xp <= 0 {
		return geom.Vec{}, fmt.Errorf(
			"Preimage of (%.4g, %.4g) at psi = %.4g crosses the ring axis.",
			alpha, chi, psi,
		)
	}

	sinPsi, cosPsi := math.Sincos(psi)
	return geom.Vec{(t.L + xp) * cosPsi, (t.L + xp) * sinPsi, z}, nil
}

// PreimageCurve samples the preimage of the direction (alpha, chi) at n
// evenly spaced ring angles in [0, 2 pi]. For a hopfion the preimages of two
// different directions are linked HopfIndex times.
func (t *Tube) PreimageCurve(alpha, chi float64, n int) ([]geom.Vec, error) {
	psis := geom.Linspace(0, 2*math.Pi, n)
	pts := make([]geom.Vec, n)
	for i, psi := range psis {
		var err error
		pts[i], err = t.Preimage(psi, alpha, chi)
		if err != nil {
			return nil, err
		}
	}
	return pts, nil
}

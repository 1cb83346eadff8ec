package skyrmion

import (
	"fmt"

	"github.com/phil-mansfield/spintex/geom"
)

// Lattice is a collection of skyrmions where every point belongs entirely to
// its nearest skyrmion. There is no blending at the boundaries between
// skyrmions.
type Lattice struct {
	Skyrmions []Skyrmion
}

// NewLattice returns a lattice containing skyrmions with the given
// parameters, in the given order.
func NewLattice(ps []Params) (*Lattice, error) {
	if len(ps) == 0 {
		return nil, fmt.Errorf("A lattice requires at least one skyrmion.")
	}

	l := &Lattice{Skyrmions: make([]Skyrmion, len(ps))}
	for i := range ps {
		if err := ps[i].Validate(); err != nil {
			return nil, fmt.Errorf("Skyrmion %d: %w", i, err)
		}
		l.Skyrmions[i].Params = ps[i]
	}
	return l, nil
}

// Nearest returns the index of the skyrmion closest to (x, y). If several
// skyrmions are equally close, the one with the lowest index is returned.
func (l *Lattice) Nearest(x, y float64) int {
	best, bestDist := 0, l.Skyrmions[0].Distance(x, y)
	for i := 1; i < len(l.Skyrmions); i++ {
		if d := l.Skyrmions[i].Distance(x, y); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// At returns the magnetization at (x, y) using the nearest skyrmion.
func (l *Lattice) At(x, y float64) geom.Vec {
	return l.Skyrmions[l.Nearest(x, y)].At(x, y)
}

// Eval returns the magnetization at p and is a field.PointFunc.
func (l *Lattice) Eval(p geom.Vec) (geom.Vec, bool) {
	return l.At(p[0], p[1]), true
}

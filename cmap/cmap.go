/*package cmap maps scalar components of a magnetization texture to colors.

A Spec pairs a named colormap with a normalization range. Lookups clamp
out-of-range values and never fail. Colormaps come from the
cogentcore colormap registry, to which this package adds RdBu, RdBu_r, bwr,
and hsv.
*/
package cmap

import (
	"fmt"
	"math"
	"sort"

	"cogentcore.org/core/colors/colormap"
)

// RGBA is a color with components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Spec is a colormap together with the scalar range [VMin, VMax] that is
// mapped onto it.
type Spec struct {
	Map        *colormap.Map
	VMin, VMax float64
}

// NewSpec returns a Spec using the registered colormap with the given name.
func NewSpec(name string, vmin, vmax float64) (*Spec, error) {
	m, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf(
			"Colormap '%s' is not recognized. Known colormaps are %v.",
			name, Names(),
		)
	}
	if !(vmin < vmax) {
		return nil, fmt.Errorf(
			"VMin must be smaller than VMax, but they are %g and %g.", vmin, vmax,
		)
	}
	return &Spec{Map: m, VMin: vmin, VMax: vmax}, nil
}

// DivergingSpec returns the red-blue map over [-1, 1], used for coloring by
// a single magnetization component.
func DivergingSpec() *Spec {
	return &Spec{Map: colormap.AvailableMaps["RdBu_r"], VMin: -1, VMax: 1}
}

// HelicitySpec returns the cyclic hue map over [-pi, pi), used for coloring
// by helicity.
func HelicitySpec() *Spec {
	return &Spec{Map: colormap.AvailableMaps["hsv"], VMin: -math.Pi, VMax: math.Pi}
}

// Normalize maps s linearly from [VMin, VMax] onto [0, 1], clamping values
// outside the range. NaN maps to 0.
func (spec *Spec) Normalize(s float64) float64 {
	t := (s - spec.VMin) / (spec.VMax - spec.VMin)
	if !(t > 0) {
		return 0
	} else if t > 1 {
		return 1
	}
	return t
}

// At returns the color at the normalized position t in [0, 1].
func (spec *Spec) At(t float64) RGBA {
	c := spec.Map.Map(float32(t))
	return RGBA{
		float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255,
		float64(c.A) / 255,
	}
}

// Lookup returns the color of the scalar s.
func (spec *Spec) Lookup(s float64) RGBA {
	return spec.At(spec.Normalize(s))
}

// WrapAngle wraps an angle into [-pi, pi).
func WrapAngle(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	return x - math.Pi
}

// Names returns the names of all continuous colormaps in sorted order.
func Names() []string {
	names := []string{}
	for name, m := range colormap.AvailableMaps {
		if !m.Indexed {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Get returns the continuous colormap with the given name. Indexed maps are
// not returned.
func Get(name string) (*colormap.Map, bool) {
	m, ok := colormap.AvailableMaps[name]
	if !ok || m.Indexed {
		return nil, false
	}
	return m, true
}

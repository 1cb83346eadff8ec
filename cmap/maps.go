package cmap

import (
	"image/color"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/colors/colormap"
	"github.com/lucasb-eyer/go-colorful"
)

func init() {
	rdbu := mustStops(
		"#67001f", "#b2182b", "#d6604d", "#f4a582", "#fddbc7", "#f7f7f7",
		"#d1e5f0", "#92c5de", "#4393c3", "#2166ac", "#053061",
	)
	register("RdBu", rdbu)
	register("RdBu_r", reversed(rdbu))
	register("bwr", mustStops("#0000ff", "#ffffff", "#ff0000"))

	// Full-saturation HSV is piecewise linear in RGB between the six
	// primary and secondary hues.
	register("hsv", mustStops(
		"#ff0000", "#ffff00", "#00ff00", "#00ffff", "#0000ff", "#ff00ff",
		"#ff0000",
	))
}

// register adds an evenly spaced, RGB-interpolated map to
// colormap.AvailableMaps.
func register(name string, stops []color.RGBA) {
	colormap.AvailableMaps[name] = &colormap.Map{
		Name:    name,
		Colors:  stops,
		Blend:   colors.RGB,
		NoColor: stops[0],
	}
}

func mustStops(hexes ...string) []color.RGBA {
	cs := make([]color.RGBA, len(hexes))
	for i, hex := range hexes {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic(err.Error())
		}
		r, g, b := c.RGB255()
		cs[i] = color.RGBA{r, g, b, 0xff}
	}
	return cs
}

func reversed(cs []color.RGBA) []color.RGBA {
	out := make([]color.RGBA, len(cs))
	for i := range cs {
		out[len(cs)-1-i] = cs[i]
	}
	return out
}

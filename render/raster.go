package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"

	"github.com/phil-mansfield/spintex/geom"
)

// Raster is a Renderer which paints the glyph colors of one z-slice of a
// grid into an image, one pixel per grid point, viewed from above. It is
// meant for quick previews of a texture without a 3D host.
type Raster struct {
	Grid  *geom.Grid
	Slice int
	img   *image.RGBA
}

// Background is the color of pixels with no glyph.
var Background = color.RGBA{0x80, 0x80, 0x80, 0xff}

// NewRaster returns a raster over the z-slice k of g.
func NewRaster(g *geom.Grid, k int) (*Raster, error) {
	shape := g.Shape()
	if k < 0 || k >= shape[2] {
		return nil, fmt.Errorf(
			"Slice %d is not within the grid's z range [0, %d).", k, shape[2],
		)
	}

	img := image.NewRGBA(image.Rect(0, 0, shape[0], shape[1]))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	return &Raster{Grid: g, Slice: k, img: img}, nil
}

// Render paints a single record. Records outside the slice are ignored.
func (r *Raster) Render(rec *Record) error {
	if rec.Index < 0 || rec.Index >= r.Grid.Volume {
		return fmt.Errorf(
			"Record index %d is outside the raster's grid.", rec.Index,
		)
	}
	i, j, k := r.Grid.Coords(rec.Index)
	if k != r.Slice {
		return nil
	}

	ny := r.img.Bounds().Dy()
	r.img.SetRGBA(i, ny-1-j, toRGBA8(rec))
	return nil
}

// Image returns the raster image at its native resolution.
func (r *Raster) Image() *image.RGBA { return r.img }

// Scaled returns the raster enlarged by an integer factor with
// nearest-neighbor sampling, so every grid point becomes a square block.
func (r *Raster) Scaled(factor int) *image.RGBA {
	if factor <= 1 {
		return r.img
	}
	b := r.img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), r.img, b, draw.Src, nil)
	return dst
}

// WritePNG encodes the raster, scaled by factor, as a PNG.
func (r *Raster) WritePNG(w io.Writer, factor int) error {
	return png.Encode(w, r.Scaled(factor))
}

func toRGBA8(rec *Record) color.RGBA {
	c := rec.Color
	return color.RGBA{to8(c.R), to8(c.G), to8(c.B), to8(c.A)}
}

func to8(x float64) uint8 {
	return uint8(math.Round(255 * math.Max(0, math.Min(1, x))))
}

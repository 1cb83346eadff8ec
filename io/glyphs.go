package io

import (
	"bufio"
	"fmt"
	"io"

	"github.com/phil-mansfield/spintex/render"
)

// GlyphHeader is the comment line at the top of every glyph table.
const GlyphHeader = "# frame index x y z angle ax ay az r g b a"

// TableRenderer is a render.Renderer which writes one row per glyph:
//
//	frame index x y z angle ax ay az r g b a
//
// This is the hand-off format for a 3D host, which places a cone at (x, y, z)
// rotated by angle around (ax, ay, az) and colored (r, g, b, a).
type TableRenderer struct {
	w    *bufio.Writer
	rows int
}

// NewTableRenderer returns a TableRenderer which writes to w, starting with
// GlyphHeader. Flush must be called once all records are rendered.
func NewTableRenderer(w io.Writer) (*TableRenderer, error) {
	tr := &TableRenderer{w: bufio.NewWriter(w)}
	if _, err := fmt.Fprintln(tr.w, GlyphHeader); err != nil {
		return nil, err
	}
	return tr, nil
}

// Render writes a single row.
func (tr *TableRenderer) Render(rec *render.Record) error {
	aa := rec.Orientation.AxisAngle()
	p, c := rec.Position, rec.Color
	_, err := fmt.Fprintf(
		tr.w, "%d %d %.6g %.6g %.6g %.8g %.8g %.8g %.8g %.5g %.5g %.5g %.5g\n",
		rec.Frame, rec.Index, p[0], p[1], p[2],
		aa[0], aa[1], aa[2], aa[3], c.R, c.G, c.B, c.A,
	)
	if err != nil {
		return err
	}
	tr.rows++
	return nil
}

// Rows returns the number of rows written so far.
func (tr *TableRenderer) Rows() int { return tr.rows }

// Flush writes any buffered rows.
func (tr *TableRenderer) Flush() error { return tr.w.Flush() }

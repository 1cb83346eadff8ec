/*package io reads and writes the files used by the spintex command: gcfg
configuration files, column tables of magnetization fields, and glyph
tables.
*/
package io

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/spintex/field"
	"github.com/phil-mansfield/spintex/geom"
)

// FieldLoader supplies the magnetization field of an animation frame.
type FieldLoader interface {
	Load(frame int) (*field.VectorField, error)
}

// ColumnLoader reads frames from whitespace-separated column files with one
// "i j k mx my mz" row per grid point. The file of each frame is found by
// formatting IteratedInput with the frame number. i, j, and k are
// zero-based; the grid shape is the largest index plus one along each axis
// and every point must be present exactly once.
//
// Positions are derived from the indices, centred on the origin and Scale
// apart.
type ColumnLoader struct {
	IteratedInput string
	Scale         float64
}

// NewColumnLoader returns a loader for files matching the given printf
// pattern.
func NewColumnLoader(pattern string) *ColumnLoader {
	return &ColumnLoader{IteratedInput: pattern, Scale: 1}
}

// File returns the name of the file holding the given frame.
func (l *ColumnLoader) File(frame int) string {
	return fmt.Sprintf(l.IteratedInput, frame)
}

// Load reads a single frame.
func (l *ColumnLoader) Load(frame int) (*field.VectorField, error) {
	return ReadColumns(l.File(frame), l.Scale)
}

// ReadColumns reads a single column file.
func ReadColumns(fname string, scale float64) (*field.VectorField, error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3, 4, 5}, nil)
	if err != nil {
		return nil, err
	}
	is, js, ks := cols[0], cols[1], cols[2]
	if len(is) == 0 {
		return nil, fmt.Errorf("Column file '%s' contains no rows.", fname)
	}

	// Every point appears exactly once, so no index can reach the row count.
	rows := float64(len(is))
	shape := [3]int{}
	for row := range is {
		idx := [3]float64{is[row], js[row], ks[row]}
		for dim := 0; dim < 3; dim++ {
			if !(idx[dim] >= 0 && idx[dim] < rows) {
				return nil, fmt.Errorf(
					"Row %d of '%s' has the index %g, which is outside [0, %d).",
					row, fname, idx[dim], len(is),
				)
			}
			n := int(idx[dim])
			if float64(n) != idx[dim] {
				return nil, fmt.Errorf(
					"Row %d of '%s' has the non-integer index %g.",
					row, fname, idx[dim],
				)
			}
			if n+1 > shape[dim] {
				shape[dim] = n + 1
			}
		}
	}

	if volume(shape, len(is)) != len(is) {
		return nil, &field.ShapeMismatchError{
			What: fmt.Sprintf("Column file '%s'", fname),
			Want: shape, Got: [3]int{len(is), 1, 1},
		}
	}
	g, err := geom.IndexGrid(shape, scale)
	if err != nil {
		return nil, err
	}

	vecs := make([]geom.Vec, g.Volume)
	seen := make([]bool, g.Volume)
	for row := range is {
		idx := g.Idx(int(is[row]), int(js[row]), int(ks[row]))
		if seen[idx] {
			return nil, fmt.Errorf(
				"Row %d of '%s' repeats the grid point (%g, %g, %g).",
				row, fname, is[row], js[row], ks[row],
			)
		}
		seen[idx] = true
		vecs[idx] = geom.Vec{cols[3][row], cols[4][row], cols[5][row]}
	}
	return field.New(g, vecs)
}

// volume returns the number of points in shape, or max + 1 if it has more
// than max points.
func volume(shape [3]int, max int) int {
	n := 1
	for _, x := range shape {
		n *= x
		if n > max {
			return max + 1
		}
	}
	return n
}

// WriteColumns writes a field in the format read by ReadColumns. Masked
// points are written as zero vectors.
func WriteColumns(w io.Writer, f *field.VectorField) error {
	bw := bufio.NewWriter(w)
	for idx, m := range f.Vecs {
		i, j, k := f.Grid.Coords(idx)
		if !f.Valid(idx) {
			m = geom.Vec{}
		}
		if _, err := fmt.Fprintf(
			bw, "%d %d %d %.10g %.10g %.10g\n", i, j, k, m[0], m[1], m[2],
		); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteColumnsFile writes a field to the named file.
func WriteColumnsFile(fname string, f *field.VectorField) error {
	file, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := WriteColumns(file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// frameCount returns the number of consecutive frames starting at start for
// which a file exists.
func (l *ColumnLoader) frameCount(start int) int {
	n := 0
	for {
		if _, err := os.Stat(l.File(start + n)); err != nil {
			return n
		}
		n++
	}
}

// LastFrame returns the last frame of the unbroken sequence of files
// beginning at start, or start - 1 if there are none.
func (l *ColumnLoader) LastFrame(start int) int {
	return start + l.frameCount(start) - 1
}

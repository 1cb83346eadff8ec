package render

import (
	"errors"
	"fmt"
	"log"

	"github.com/phil-mansfield/spintex/field"
	"github.com/phil-mansfield/spintex/geom"
)

// Loader supplies the field for an animation frame.
type Loader interface {
	Load(frame int) (*field.VectorField, error)
}

// FrameError is returned when a single animation frame could not be loaded
// or rendered.
type FrameError struct {
	Frame int
	Err   error
}

func (err *FrameError) Error() string {
	return fmt.Sprintf("Frame %d failed: %s", err.Frame, err.Err.Error())
}

func (err *FrameError) Unwrap() error { return err.Err }

// AnimateOptions controls the per-frame pipeline. Every loaded field is
// strided, then cropped to [CropLo, CropHi), and then given coordinates
// derived from its indices and centred on the origin, ScaleFactor apart.
type AnimateOptions struct {
	Options

	Frames        []int
	FrameDistance int
	ScaleFactor   float64
	Stride        [3]int
	// A zero component of CropHi keeps the full extent along that axis.
	CropLo, CropHi [3]int

	// Log receives one line per skipped frame. It may be nil.
	Log *log.Logger
}

// DefaultAnimateOptions returns options which render every frame in
// [start, end] with unit array spacing.
func DefaultAnimateOptions(start, end, step int) *AnimateOptions {
	return &AnimateOptions{
		Options:       *DefaultOptions(),
		Frames:        Frames(start, end, step),
		FrameDistance: 1,
		ScaleFactor:   1,
		Stride:        [3]int{1, 1, 1},
	}
}

// Frames returns the frame indices start, start + step, ... up to and
// including end.
func Frames(start, end, step int) []int {
	if step <= 0 {
		step = 1
	}
	frames := []int{}
	for i := start; i <= end; i += step {
		frames = append(frames, i)
	}
	return frames
}

// Animate renders every frame in opt.Frames. Records of frame i carry the
// time FrameDistance * i. A frame which fails is reported as a *FrameError
// and the remaining frames are still rendered. All frame errors are joined
// in the returned error. The first return value is the number of frames
// which were fully rendered.
func Animate(loader Loader, opt *AnimateOptions, r Renderer) (int, error) {
	errs := []error{}
	done := 0
	for _, frame := range opt.Frames {
		if err := animateFrame(loader, frame, opt, r); err != nil {
			ferr := &FrameError{Frame: frame, Err: err}
			if opt.Log != nil {
				opt.Log.Printf("Skipping frame: %s", ferr.Error())
			}
			errs = append(errs, ferr)
			continue
		}
		done++
	}
	return done, errors.Join(errs...)
}

func animateFrame(loader Loader, frame int, opt *AnimateOptions, r Renderer) error {
	f, err := loader.Load(frame)
	if err != nil {
		return err
	}
	if f, err = Prepare(f, opt); err != nil {
		return err
	}

	frameOpt := opt.Options
	frameOpt.Frame = opt.FrameDistance * frame
	_, err = Stream(f, &frameOpt, r)
	return err
}

// Prepare applies the stride, crop, and index-derived placement of opt to a
// loaded field.
func Prepare(f *field.VectorField, opt *AnimateOptions) (*field.VectorField, error) {
	var err error
	if opt.Stride != [3]int{1, 1, 1} && opt.Stride != [3]int{} {
		if f, err = f.Stride(opt.Stride); err != nil {
			return nil, err
		}
	}
	if opt.CropLo != [3]int{} || opt.CropHi != [3]int{} {
		hi, shape := opt.CropHi, f.Grid.Shape()
		for dim := range hi {
			if hi[dim] == 0 {
				hi[dim] = shape[dim]
			}
		}
		if f, err = f.Crop(opt.CropLo, hi); err != nil {
			return nil, err
		}
	}

	scale := opt.ScaleFactor
	if scale == 0 {
		scale = 1
	}
	g, err := geom.IndexGrid(f.Grid.Shape(), scale)
	if err != nil {
		return nil, err
	}
	return &field.VectorField{Grid: g, Vecs: f.Vecs, Mask: f.Mask}, nil
}

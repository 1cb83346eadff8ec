package io

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/spintex/cmap"
	"github.com/phil-mansfield/spintex/geom"
	"github.com/phil-mansfield/spintex/render"
	"github.com/phil-mansfield/spintex/skyrmion"
)

const (
	ExampleLatticeFile = `[Lattice]

#######################
# Required Parameters #
#######################

# File which the glyph table will be written to.
Output = path/to/glyphs.txt

# Half-widths of the plane. Points are spaced so that there is always a spin
# at the origin.
Lx = 40
Ly = 20

#######################
# Optional Parameters #
#######################

# Height of the glyphs above the plane. Default is 2.
# Elevation = 2

# Color glyphs by one of [ Mx | My | Mz ]. Default is Mz. Any colormap in
# [ RdBu_r | RdBu | bwr | hsv ] can be used. Defaults are RdBu_r on [-1, 1].
# ColorBy = Mz
# ColorMap = RdBu_r
# VMin = -1
# VMax = 1

# Writes a top-down PNG preview of the texture, PreviewScale pixels per spin.
# PreviewFile = preview.png
# PreviewScale = 8

# Output files which are useful for profiling and debugging.
# ProfileFile = prof.out
# LogFile = log.out

# Every skyrmion in the lattice needs its own subsection. Each point of the
# plane belongs to the skyrmion with the nearest center. W, R, and M default
# to 5, 10, and 1. Helicity can be one of [ Bloch | Neel | ReverseBloch ] or
# an angle in radians and defaults to Bloch.

[Skyrmion "left"]
CenterX = -20
CenterY = 0

[Skyrmion "right"]
CenterX = 20
CenterY = 0
Helicity = ReverseBloch`

	ExampleTubeFile = `[Tube]

#######################
# Required Parameters #
#######################

# File which the glyph table will be written to.
Output = path/to/glyphs.txt

# Major radius of the ring, skyrmion radius, and domain wall width.
L = 20
R = 5
W = 2

# Number of times the helicity winds around the ring. Non-zero values give a
# hopfion.
HopfIndex = 1

#######################
# Optional Parameters #
#######################

# Vorticity and helicity of the cross-section. Defaults are 1 and Bloch.
# M = 1
# Helicity = Bloch

# Extent of the box, [-SideLength, SideLength] in x and y and
# [-Height, Height] in z, and the approximate distance between glyphs.
# Defaults are 50, 10, and 2.
# SideLength = 50
# Height = 10
# Spacing = 2

# Removes the quadrant x > 1, y > 1 so that the inside of the tube is
# visible. Default is true.
# CutQuadrant = true

# Estimates the Hopf index of the texture and logs it. The grid needs to be
# much finer than the glyph grid for this to be accurate, so it is evaluated
# separately with HopfPoints points along each side.
# ComputeHopf = false
# HopfPoints = 121

# Glyphs are colored by helicity with the cyclic hsv colormap by default.
# ColorBy = Helicity
# ColorMap = hsv

# ProfileFile = prof.out
# LogFile = log.out`

	ExampleAnimateFile = `[Animate]

#######################
# Required Parameters #
#######################

# printf pattern for the column files written by a micromagnetic simulation,
# one file per frame. Each row is "i j k mx my mz".
IteratedInput = path/to/frames/m%06d.txt

# (Inclusive) range of frames.
IterationStart = 0
IterationEnd = 100

# File which the glyph table will be written to.
Output = path/to/glyphs.txt

#######################
# Optional Parameters #
#######################

# Only every Step-th frame is rendered. Default is 1.
# Step = 1

# Distance between glyphs and number of time units between frames. Defaults
# are 3 and 5.
# ScaleFactor = 3
# FrameDistance = 5

# Only every Stride-th spin along x and y is rendered. Default is 1.
# Stride = 5

# Index range [CropOrigin, CropOrigin + CropSpan) which is rendered after the
# stride is applied. A span of 0 keeps the full extent.
# CropOriginX = 0
# CropOriginY = 50
# CropSpanX = 300
# CropSpanY = 150

# Elevation = 2
# ColorBy = Mz
# ColorMap = RdBu_r
# VMin = -1
# VMax = 1

# ProfileFile = prof.out
# LogFile = log.out`

	ExampleProfileFile = `[Profile]

# Plots the polar angle and z-magnetization of a skyrmion against the distance
# from its center.

#######################
# Required Parameters #
#######################

R = 10
W = 5

# File which the plot is saved to.
PlotFile = path/to/profile.png

#######################
# Optional Parameters #
#######################

# Largest radius plotted and number of points. Defaults are 4 R and 200.
# RMax = 40
# Points = 200`

	ExamplePreimageFile = `[Preimage]

# Draws the preimages of a tube: closed curves along which the magnetization
# points in a fixed direction. Glyphs are placed at evenly spaced ring angles
# along each curve.

#######################
# Required Parameters #
#######################

Output = path/to/glyphs.txt

L = 20
R = 5
W = 2
HopfIndex = 0

#######################
# Optional Parameters #
#######################

# M = 1
# Helicity = Bloch

# Glyphs are colored by Mx of the preimage direction by default.
# ColorBy = Mx
# ColorMap = RdBu_r

# ProfileFile = prof.out
# LogFile = log.out

# Each curve is given by the polar angle, Alpha, and azimuthal angle, Chi, of
# its direction, both in radians. Points defaults to 20.

[Curve "down"]
Alpha = 3.14159265358979
Chi = 1.5707963267949

[Curve "tilted"]
Alpha = 0.785398163397448
Chi = 0
Points = 20`

	ExampleStereographicFile = `[Stereographic]

# Renders the skyrmion found by stereographically projecting a hedgehog-wound
# sphere, floating above the plane, onto the plane.

#######################
# Required Parameters #
#######################

Output = path/to/glyphs.txt

# Radius of the sphere and the height of its lowest point above the plane.
Radius = 5
Height = 0

#######################
# Optional Parameters #
#######################

# Half-width of the plane and number of glyphs along each side. Defaults are
# 20 and 20.
# Lx = 20
# Points = 20

# Vorticity and helicity. Defaults are 1 and Bloch.
# M = 1
# Helicity = Bloch

# Also writes approximately SphereSamples equal-area glyphs on the sphere
# itself to a second glyph table.
# SphereOutput = path/to/sphere.txt
# SphereSamples = 400

# Glyphs are colored from blue to red by Mz by default.
# ColorBy = Mz
# ColorMap = bwr

# ProfileFile = prof.out
# LogFile = log.out`
)

// ExampleFile returns the example configuration file for the given mode.
func ExampleFile(mode string) (string, error) {
	switch mode {
	case "Lattice":
		return ExampleLatticeFile, nil
	case "Tube":
		return ExampleTubeFile, nil
	case "Animate":
		return ExampleAnimateFile, nil
	case "Profile":
		return ExampleProfileFile, nil
	case "Preimage":
		return ExamplePreimageFile, nil
	case "Stereographic":
		return ExampleStereographicFile, nil
	}
	return "", fmt.Errorf(
		"Unrecognized 'ExampleConfig' argument '%s'. Only recognized "+
			"arguments are 'Lattice', 'Tube', 'Animate', 'Profile', "+
			"'Preimage', and 'Stereographic'.", mode,
	)
}

type SharedConfig struct {
	// Required
	Output string
	// Optional
	LogFile, ProfileFile string
}

func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

// ColorConfig holds the glyph coloring options shared by all rendering
// modes.
type ColorConfig struct {
	ColorBy, ColorMap string
	VMin, VMax        float64
	Elevation         float64
}

func defaultColorConfig() ColorConfig {
	return ColorConfig{
		ColorBy: "Mz", ColorMap: "RdBu_r", VMin: -1, VMax: 1, Elevation: 2,
	}
}

// Spec returns the colormap described by the config.
func (con *ColorConfig) Spec() (*cmap.Spec, error) {
	return cmap.NewSpec(con.ColorMap, con.VMin, con.VMax)
}

// ValidColorBy returns true if ColorBy names a magnetization component.
// Modes which support other selectors check for them first.
func (con *ColorConfig) ValidColorBy() bool {
	_, err := render.ParseComponent(con.ColorBy)
	return err == nil
}

// Options converts the config into render options, coloring by a
// magnetization component.
func (con *ColorConfig) Options() (*render.Options, error) {
	spec, err := con.Spec()
	if err != nil {
		return nil, err
	}
	c, err := render.ParseComponent(con.ColorBy)
	if err != nil {
		return nil, err
	}

	opt := render.DefaultOptions()
	opt.Spec = spec
	opt.Color = render.Component(c)
	opt.Offset = geom.Vec{0, 0, con.Elevation}
	return opt, nil
}

// ParseHelicity converts a helicity name or an angle in radians into an
// angle. The empty string gives a Bloch helicity.
func ParseHelicity(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bloch":
		return math.Pi / 2, nil
	case "neel":
		return 0, nil
	case "reversebloch":
		return -math.Pi / 2, nil
	}

	eta, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf(
			"Helicity '%s' must be one of [Bloch | Neel | ReverseBloch] or "+
				"an angle in radians.", s,
		)
	}
	return eta, nil
}

type SkyrmionConfig struct {
	// Required
	CenterX, CenterY float64

	// Optional
	W, R     float64
	M        int
	Helicity string

	Name string
}

// CheckInit fills in the defaults of a [Skyrmion] subsection and returns an
// error if it does not describe a valid skyrmion.
func (sk *SkyrmionConfig) CheckInit(name string) error {
	sk.Name = name
	if sk.W == 0 {
		sk.W = 5
	}
	if sk.R == 0 {
		sk.R = 10
	}
	if sk.M == 0 {
		sk.M = 1
	}

	if sk.W < 0 {
		return fmt.Errorf(
			"Skyrmion '%s' given a negative wall width, %g.", name, sk.W,
		)
	} else if sk.R < 0 {
		return fmt.Errorf(
			"Skyrmion '%s' given a negative radius, %g.", name, sk.R,
		)
	}

	if _, err := ParseHelicity(sk.Helicity); err != nil {
		return fmt.Errorf("Skyrmion '%s': %w", name, err)
	}
	return nil
}

// Params converts an initialized subsection into skyrmion parameters.
func (sk *SkyrmionConfig) Params() skyrmion.Params {
	eta, _ := ParseHelicity(sk.Helicity)
	return skyrmion.Params{
		CenterX: sk.CenterX, CenterY: sk.CenterY,
		W: sk.W, R: sk.R, M: sk.M, Eta: eta,
	}
}

type LatticeConfig struct {
	SharedConfig
	ColorConfig

	// Required
	Lx, Ly int

	// Optional
	PreviewFile  string
	PreviewScale int
}

type LatticeWrapper struct {
	Lattice  LatticeConfig
	Skyrmion map[string]*SkyrmionConfig
}

func DefaultLatticeWrapper() *LatticeWrapper {
	con := LatticeConfig{ColorConfig: defaultColorConfig(), PreviewScale: 8}
	return &LatticeWrapper{Lattice: con}
}

func (con *LatticeConfig) ValidLx() bool {
	return con.Lx > 0
}
func (con *LatticeConfig) ValidLy() bool {
	return con.Ly > 0
}
func (con *LatticeConfig) ValidPreviewFile() bool {
	return con.PreviewFile != ""
}
func (con *LatticeConfig) ValidPreviewScale() bool {
	return con.PreviewScale > 0
}

// Grid returns the planar grid spanning [-Lx, Lx] x [-Ly, Ly] with a point
// at the origin.
func (con *LatticeConfig) Grid() (*geom.Grid, error) {
	return geom.NewGrid(
		geom.Linspace(-float64(con.Lx), float64(con.Lx), geom.OddCount(con.Lx)),
		geom.Linspace(-float64(con.Ly), float64(con.Ly), geom.OddCount(con.Ly)),
		nil,
	)
}

// Params checks every [Skyrmion] subsection and returns their parameters
// ordered by subsection name.
func (wrap *LatticeWrapper) Params() ([]skyrmion.Params, error) {
	if len(wrap.Skyrmion) == 0 {
		return nil, fmt.Errorf("At least one [Skyrmion] subsection is required.")
	}

	names := make([]string, 0, len(wrap.Skyrmion))
	for name := range wrap.Skyrmion {
		names = append(names, name)
	}
	sort.Strings(names)

	ps := make([]skyrmion.Params, len(names))
	for i, name := range names {
		sk := wrap.Skyrmion[name]
		if err := sk.CheckInit(name); err != nil {
			return nil, err
		}
		ps[i] = sk.Params()
	}
	return ps, nil
}

// ReadLatticeConfig reads a [Lattice] file along with its [Skyrmion]
// subsections.
func ReadLatticeConfig(fname string) (*LatticeWrapper, error) {
	wrap := DefaultLatticeWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	return wrap, nil
}

// TubeShape holds the parameters of a tube shared by the modes which draw
// one.
type TubeShape struct {
	// Required
	L, R, W   float64
	HopfIndex int

	// Optional
	M        int
	Helicity string
}

func (con *TubeShape) ValidL() bool {
	return con.L > 0
}
func (con *TubeShape) ValidR() bool {
	return con.R > 0
}
func (con *TubeShape) ValidW() bool {
	return con.W > 0
}
func (con *TubeShape) ValidM() bool {
	return con.M != 0
}
func (con *TubeShape) ValidHelicity() bool {
	_, err := ParseHelicity(con.Helicity)
	return err == nil
}

// Params returns the tube described by the config.
func (con *TubeShape) Params() skyrmion.TubeParams {
	eta, _ := ParseHelicity(con.Helicity)
	return skyrmion.TubeParams{
		Params: skyrmion.Params{W: con.W, R: con.R, M: con.M, Eta: eta},
		L:      con.L, HopfIndex: con.HopfIndex,
	}
}

type TubeConfig struct {
	SharedConfig
	ColorConfig
	TubeShape

	// Optional
	SideLength, Height, Spacing float64
	CutQuadrant                 bool
	ComputeHopf                 bool
	HopfPoints                  int
}

type TubeWrapper struct {
	Tube TubeConfig
}

func DefaultTubeWrapper() *TubeWrapper {
	con := TubeConfig{ColorConfig: defaultColorConfig()}
	con.ColorBy = "Helicity"
	con.ColorMap = "hsv"
	con.VMin, con.VMax = -math.Pi, math.Pi
	con.Elevation = 0
	con.M = 1
	con.SideLength, con.Height, con.Spacing = 50, 10, 2
	con.CutQuadrant = true
	con.HopfPoints = 121
	return &TubeWrapper{con}
}

func (con *TubeConfig) ValidSpacing() bool {
	return con.Spacing > 0 && con.SideLength >= con.Spacing &&
		con.Height >= con.Spacing
}
func (con *TubeConfig) ValidHopfPoints() bool {
	return con.HopfPoints >= 2
}

// ColorByHelicity returns true if glyphs are colored by helicity rather than
// by a magnetization component.
func (con *TubeConfig) ColorByHelicity() bool {
	return strings.ToLower(con.ColorBy) == "helicity"
}

// Grid returns the glyph grid. Each axis of length 2 s has s / Spacing
// points.
func (con *TubeConfig) Grid() (*geom.Grid, error) {
	n := int(con.SideLength / con.Spacing)
	nz := int(con.Height / con.Spacing)
	return geom.NewGrid(
		geom.Linspace(-con.SideLength, con.SideLength, n),
		geom.Linspace(-con.SideLength, con.SideLength, n),
		geom.Linspace(-con.Height, con.Height, nz),
	)
}

// HopfGrid returns the finer grid the Hopf index is estimated on. It spans
// the ring with a margin of 2 R in the plane and 3 R along z, with the same
// spacing along every axis.
func (con *TubeConfig) HopfGrid() (*geom.Grid, error) {
	side := con.L + 2*con.R
	height := 3 * con.R
	n := con.HopfPoints
	nz := int(math.Ceil(float64(n) * height / side))
	if nz < 2 {
		nz = 2
	}
	return geom.NewGrid(
		geom.Linspace(-side, side, n),
		geom.Linspace(-side, side, n),
		geom.Linspace(-height, height, nz),
	)
}

type AnimateConfig struct {
	SharedConfig
	ColorConfig

	// Required
	IteratedInput                string
	IterationStart, IterationEnd int

	// Optional
	Step, Stride             int
	ScaleFactor              float64
	FrameDistance            int
	CropOriginX, CropOriginY int
	CropSpanX, CropSpanY     int
}

type AnimateWrapper struct {
	Animate AnimateConfig
}

func DefaultAnimateWrapper() *AnimateWrapper {
	con := AnimateConfig{ColorConfig: defaultColorConfig()}
	con.IterationEnd = -1
	con.Step, con.Stride = 1, 1
	con.ScaleFactor = 3
	con.FrameDistance = 5
	return &AnimateWrapper{con}
}

func (con *AnimateConfig) ValidIteratedInput() bool {
	return strings.Contains(con.IteratedInput, "%")
}
func (con *AnimateConfig) ValidIterationStart() bool {
	return con.IterationStart >= 0
}
func (con *AnimateConfig) ValidIterationEnd() bool {
	return con.IterationEnd >= con.IterationStart
}
func (con *AnimateConfig) ValidStep() bool {
	return con.Step > 0
}
func (con *AnimateConfig) ValidStride() bool {
	return con.Stride > 0
}
func (con *AnimateConfig) ValidScaleFactor() bool {
	return con.ScaleFactor > 0
}
func (con *AnimateConfig) ValidCrop() bool {
	return con.CropOriginX >= 0 && con.CropOriginY >= 0 &&
		con.CropSpanX >= 0 && con.CropSpanY >= 0
}

// Options converts the config into options for render.Animate.
func (con *AnimateConfig) Options() (*render.AnimateOptions, error) {
	opt, err := con.ColorConfig.Options()
	if err != nil {
		return nil, err
	}

	aopt := render.DefaultAnimateOptions(
		con.IterationStart, con.IterationEnd, con.Step,
	)
	aopt.Options = *opt
	aopt.FrameDistance = con.FrameDistance
	aopt.ScaleFactor = con.ScaleFactor
	aopt.Stride = [3]int{con.Stride, con.Stride, 1}
	aopt.CropLo = [3]int{con.CropOriginX, con.CropOriginY, 0}
	if con.CropSpanX > 0 {
		aopt.CropHi[0] = con.CropOriginX + con.CropSpanX
	}
	if con.CropSpanY > 0 {
		aopt.CropHi[1] = con.CropOriginY + con.CropSpanY
	}
	return aopt, nil
}

type ProfileConfig struct {
	// Required
	R, W     float64
	PlotFile string

	// Optional
	RMax   float64
	Points int
}

type ProfileWrapper struct {
	Profile ProfileConfig
}

func DefaultProfileWrapper() *ProfileWrapper {
	return &ProfileWrapper{ProfileConfig{Points: 200}}
}

func (con *ProfileConfig) ValidR() bool {
	return con.R > 0
}
func (con *ProfileConfig) ValidW() bool {
	return con.W > 0
}
func (con *ProfileConfig) ValidPlotFile() bool {
	return con.PlotFile != ""
}
func (con *ProfileConfig) ValidPoints() bool {
	return con.Points >= 2
}

// Radii returns the radii the profile is evaluated at. A missing RMax
// defaults to 4 R.
func (con *ProfileConfig) Radii() []float64 {
	rMax := con.RMax
	if rMax <= 0 {
		rMax = 4 * con.R
	}
	return geom.Linspace(0, rMax, con.Points)
}

type PreimageConfig struct {
	SharedConfig
	ColorConfig
	TubeShape
}

type CurveConfig struct {
	// Required
	Alpha, Chi float64

	// Optional
	Points int

	Name string
}

// CheckInit fills in the defaults of a [Curve] subsection and returns an
// error if it does not describe a direction.
func (curve *CurveConfig) CheckInit(name string) error {
	curve.Name = name
	if curve.Points == 0 {
		curve.Points = 20
	}

	if curve.Points < 2 {
		return fmt.Errorf(
			"Curve '%s' needs at least two points, but has %d.",
			name, curve.Points,
		)
	} else if curve.Alpha < 0 || curve.Alpha > math.Pi {
		return fmt.Errorf(
			"Alpha of Curve '%s' must be in range [0, pi], but is %g.",
			name, curve.Alpha,
		)
	}
	return nil
}

type PreimageWrapper struct {
	Preimage PreimageConfig
	Curve    map[string]*CurveConfig
}

func DefaultPreimageWrapper() *PreimageWrapper {
	con := PreimageConfig{ColorConfig: defaultColorConfig()}
	con.ColorBy = "Mx"
	con.Elevation = 0
	con.M = 1
	return &PreimageWrapper{Preimage: con}
}

// Curves checks every [Curve] subsection and returns them ordered by name.
func (wrap *PreimageWrapper) Curves() ([]*CurveConfig, error) {
	if len(wrap.Curve) == 0 {
		return nil, fmt.Errorf("At least one [Curve] subsection is required.")
	}

	names := make([]string, 0, len(wrap.Curve))
	for name := range wrap.Curve {
		names = append(names, name)
	}
	sort.Strings(names)

	curves := make([]*CurveConfig, len(names))
	for i, name := range names {
		curves[i] = wrap.Curve[name]
		if err := curves[i].CheckInit(name); err != nil {
			return nil, err
		}
	}
	return curves, nil
}

type StereographicConfig struct {
	SharedConfig
	ColorConfig

	// Required
	Radius, Height float64

	// Optional
	Lx            float64
	Points        int
	M             int
	Helicity      string
	SphereOutput  string
	SphereSamples int
}

type StereographicWrapper struct {
	Stereographic StereographicConfig
}

func DefaultStereographicWrapper() *StereographicWrapper {
	con := StereographicConfig{ColorConfig: defaultColorConfig()}
	con.ColorMap = "bwr"
	con.Elevation = 0
	con.Lx = 20
	con.Points = 20
	con.M = 1
	con.SphereSamples = 400
	return &StereographicWrapper{Stereographic: con}
}

func (con *StereographicConfig) ValidRadius() bool {
	return con.Radius > 0
}
func (con *StereographicConfig) ValidHeight() bool {
	return con.Height >= 0
}
func (con *StereographicConfig) ValidLx() bool {
	return con.Lx > 0
}
func (con *StereographicConfig) ValidPoints() bool {
	return con.Points >= 2
}
func (con *StereographicConfig) ValidHelicity() bool {
	_, err := ParseHelicity(con.Helicity)
	return err == nil
}
func (con *StereographicConfig) ValidSphereOutput() bool {
	return con.SphereOutput != ""
}
func (con *StereographicConfig) ValidSphereSamples() bool {
	return con.SphereSamples > 0
}

// Texture returns the stereographic skyrmion described by the config.
func (con *StereographicConfig) Texture() (*skyrmion.Stereographic, error) {
	eta, err := ParseHelicity(con.Helicity)
	if err != nil {
		return nil, err
	}
	return skyrmion.NewStereographic(con.Radius, con.Height, con.M, eta)
}

// Grid returns the square planar grid of Points x Points glyphs covering
// [-Lx, Lx] along both axes.
func (con *StereographicConfig) Grid() (*geom.Grid, error) {
	xs := geom.Linspace(-con.Lx, con.Lx, con.Points)
	return geom.NewGrid(xs, xs, nil)
}

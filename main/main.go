package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	plt "github.com/phil-mansfield/pyplot"
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/spintex/field"
	"github.com/phil-mansfield/spintex/geom"
	"github.com/phil-mansfield/spintex/hopf"
	"github.com/phil-mansfield/spintex/io"
	"github.com/phil-mansfield/spintex/render"
	"github.com/phil-mansfield/spintex/skyrmion"
)

// threads is the number of workers used for every parallel step.
var threads int

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

// openFileGroup redirects logging and starts CPU profiling if the config asks
// for it.
func openFileGroup(con *io.SharedConfig) *FileGroup {
	fg := &FileGroup{}
	var err error

	if con.ValidLogFile() {
		if fg.log, err = os.Create(con.LogFile); err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}

	if con.ValidProfileFile() {
		if fg.prof, err = os.Create(con.ProfileFile); err != nil {
			log.Fatal(err.Error())
		}
		if err = pprof.StartCPUProfile(fg.prof); err != nil {
			log.Fatal(err.Error())
		}
	}
	return fg
}

func main() {
	var (
		latticeStr, tubeStr, animateStr string
		profileStr, preimageStr         string
		stereographicStr                string
		exampleConfig                   string
	)
	vars := map[string]*string{
		"Lattice":       &latticeStr,
		"Tube":          &tubeStr,
		"Animate":       &animateStr,
		"Profile":       &profileStr,
		"Preimage":      &preimageStr,
		"Stereographic": &stereographicStr,
		"ExampleConfig": &exampleConfig,
	}

	flag.IntVar(
		&threads, "Threads", runtime.NumCPU(),
		"Number of threads used. Default is the number of logical cores.",
	)
	flag.StringVar(
		&latticeStr, "Lattice", "",
		"Configuration file for [Lattice] mode, which renders a plane of "+
			"skyrmions.",
	)
	flag.StringVar(
		&tubeStr, "Tube", "",
		"Configuration file for [Tube] mode, which renders a skyrmion tube "+
			"or hopfion.",
	)
	flag.StringVar(
		&animateStr, "Animate", "",
		"Configuration file for [Animate] mode, which renders a sequence of "+
			"frames written by a simulation.",
	)
	flag.StringVar(
		&profileStr, "Profile", "",
		"Configuration file for [Profile] mode, which plots the radial "+
			"profile of a skyrmion.",
	)
	flag.StringVar(
		&preimageStr, "Preimage", "",
		"Configuration file for [Preimage] mode, which renders preimages of "+
			"a skyrmion tube.",
	)
	flag.StringVar(
		&stereographicStr, "Stereographic", "",
		"Configuration file for [Stereographic] mode, which renders the "+
			"stereographic projection of a hedgehog sphere.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. Accepted arguments are 'Lattice', "+
			"'Tube', 'Animate', 'Profile', 'Preimage', and 'Stereographic'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Lattice":
		wrap, err := io.ReadLatticeConfig(latticeStr)
		if err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Lattice

		if !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		} else if !con.ValidLx() || !con.ValidLy() {
			log.Fatal("'Lx' and 'Ly' must both be positive.")
		} else if !con.ValidColorBy() {
			log.Fatal("Invalid 'ColorBy' value.")
		} else if con.ValidPreviewFile() && !con.ValidPreviewScale() {
			log.Fatal("Invalid 'PreviewScale' value.")
		}
		latticeMain(wrap)

	case "Tube":
		wrap := io.DefaultTubeWrapper()
		if err := gcfg.ReadFileInto(wrap, tubeStr); err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Tube

		if !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		}
		checkTubeShape(&con.TubeShape)
		if !con.ValidSpacing() {
			log.Fatal(
				"'Spacing' must be positive and no larger than either " +
					"'SideLength' or 'Height'.",
			)
		} else if con.ComputeHopf && !con.ValidHopfPoints() {
			log.Fatal("Invalid 'HopfPoints' value.")
		} else if !con.ColorByHelicity() && !con.ValidColorBy() {
			log.Fatal("'ColorBy' must be one of [Mx | My | Mz | Helicity].")
		}
		tubeMain(con)

	case "Animate":
		wrap := io.DefaultAnimateWrapper()
		if err := gcfg.ReadFileInto(wrap, animateStr); err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Animate

		if !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		} else if !con.ValidIteratedInput() {
			log.Fatal("'IteratedInput' must be a printf format string.")
		} else if !con.ValidIterationStart() {
			log.Fatal("Invalid 'IterationStart' value.")
		} else if !con.ValidStep() || !con.ValidStride() {
			log.Fatal("'Step' and 'Stride' must both be positive.")
		} else if !con.ValidScaleFactor() {
			log.Fatal("Invalid 'ScaleFactor' value.")
		} else if !con.ValidCrop() {
			log.Fatal("Crop origins and spans cannot be negative.")
		} else if !con.ValidColorBy() {
			log.Fatal("Invalid 'ColorBy' value.")
		}
		animateMain(con)

	case "Profile":
		wrap := io.DefaultProfileWrapper()
		if err := gcfg.ReadFileInto(wrap, profileStr); err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Profile

		if !con.ValidR() || !con.ValidW() {
			log.Fatal("'R' and 'W' must both be positive.")
		} else if !con.ValidPlotFile() {
			log.Fatal("Invalid/non-existent 'PlotFile' value.")
		} else if !con.ValidPoints() {
			log.Fatal("Invalid 'Points' value.")
		}
		profileMain(con)

	case "Preimage":
		wrap := io.DefaultPreimageWrapper()
		if err := gcfg.ReadFileInto(wrap, preimageStr); err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Preimage

		if !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		}
		checkTubeShape(&con.TubeShape)
		if !con.ValidColorBy() {
			log.Fatal("Invalid 'ColorBy' value.")
		}
		preimageMain(wrap)

	case "Stereographic":
		wrap := io.DefaultStereographicWrapper()
		if err := gcfg.ReadFileInto(wrap, stereographicStr); err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Stereographic

		if !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		} else if !con.ValidRadius() {
			log.Fatal("Invalid/non-existent 'Radius' value.")
		} else if !con.ValidHeight() {
			log.Fatal("'Height' cannot be negative.")
		} else if !con.ValidLx() || !con.ValidPoints() {
			log.Fatal("'Lx' must be positive and 'Points' must be at least 2.")
		} else if !con.ValidHelicity() {
			log.Fatal("Invalid 'Helicity' value.")
		} else if con.ValidSphereOutput() && !con.ValidSphereSamples() {
			log.Fatal("Invalid 'SphereSamples' value.")
		} else if !con.ValidColorBy() {
			log.Fatal("Invalid 'ColorBy' value.")
		}
		stereographicMain(con)

	case "ExampleConfig":
		s, err := io.ExampleFile(exampleConfig)
		if err != nil {
			log.Fatal(err.Error())
		}
		fmt.Println(s)

	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but spintex "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

func checkTubeShape(con *io.TubeShape) {
	if !con.ValidL() {
		log.Fatal("Invalid/non-existent 'L' value.")
	} else if !con.ValidR() {
		log.Fatal("Invalid/non-existent 'R' value.")
	} else if !con.ValidW() {
		log.Fatal("Invalid/non-existent 'W' value.")
	} else if !con.ValidM() {
		log.Fatal("'M' cannot be zero.")
	} else if !con.ValidHelicity() {
		log.Fatal("Invalid 'Helicity' value.")
	}
}

// writeGlyphs creates a glyph table and lets emit fill it.
func writeGlyphs(fname string, emit func(tr *io.TableRenderer) (int, error)) {
	f, err := os.Create(fname)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer f.Close()

	tr, err := io.NewTableRenderer(f)
	if err != nil {
		log.Fatal(err.Error())
	}
	n, err := emit(tr)
	if err != nil {
		log.Fatal(err.Error())
	}
	if err = tr.Flush(); err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Wrote %d glyphs to %s", n, fname)
}

// latticeMain renders a plane of skyrmions.
func latticeMain(wrap *io.LatticeWrapper) {
	con := &wrap.Lattice
	fg := openFileGroup(&con.SharedConfig)
	defer fg.Close()

	ps, err := wrap.Params()
	if err != nil {
		log.Fatal(err.Error())
	}
	lat, err := skyrmion.NewLattice(ps)
	if err != nil {
		log.Fatal(err.Error())
	}
	g, err := con.Grid()
	if err != nil {
		log.Fatal(err.Error())
	}
	f := field.Generate(g, threads, lat.Eval)

	opt, err := con.Options()
	if err != nil {
		log.Fatal(err.Error())
	}
	writeGlyphs(con.Output, func(tr *io.TableRenderer) (int, error) {
		return render.Stream(f, opt, tr)
	})

	q, err := hopf.SkyrmionNumber(f, 0, threads)
	if err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Skyrmion number of the lattice is %.4g", q)

	if con.ValidPreviewFile() {
		writePreview(con.PreviewFile, f, opt, con.PreviewScale)
	}
}

// writePreview writes a top-down PNG of the lowest z-slice of a field.
func writePreview(
	fname string, f *field.VectorField, opt *render.Options, scale int,
) {
	r, err := render.NewRaster(f.Grid, 0)
	if err != nil {
		log.Fatal(err.Error())
	}
	if _, err = render.Stream(f, opt, r); err != nil {
		log.Fatal(err.Error())
	}

	file, err := os.Create(fname)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer file.Close()
	if err = r.WritePNG(file, scale); err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Wrote preview to %s", fname)
}

// tubeMain renders a skyrmion tube and optionally estimates its Hopf index.
func tubeMain(con *io.TubeConfig) {
	fg := openFileGroup(&con.SharedConfig)
	defer fg.Close()

	tube, err := skyrmion.NewTube(con.Params())
	if err != nil {
		log.Fatal(err.Error())
	}
	g, err := con.Grid()
	if err != nil {
		log.Fatal(err.Error())
	}
	f := tube.Fill(g, threads)

	opt := render.DefaultOptions()
	if con.ColorByHelicity() {
		if opt.Spec, err = con.Spec(); err != nil {
			log.Fatal(err.Error())
		}
		opt.Color = render.Helicity(tube.Helicity)
		opt.Offset = geom.Vec{0, 0, con.Elevation}
	} else if opt, err = con.Options(); err != nil {
		log.Fatal(err.Error())
	}
	if con.CutQuadrant {
		opt.Cut = render.QuadrantCut
	}

	writeGlyphs(con.Output, func(tr *io.TableRenderer) (int, error) {
		return render.Stream(f, opt, tr)
	})

	if con.ComputeHopf {
		hg, err := con.HopfGrid()
		if err != nil {
			log.Fatal(err.Error())
		}
		h, err := hopf.Index(tube.Fill(hg, threads), threads)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.Printf(
			"Hopf index is %.4g on a %v grid (HopfIndex = %d)",
			h, hg.Shape(), con.HopfIndex,
		)
	}
}

// animateMain renders every frame of a simulation. Frames which cannot be
// read are logged and skipped.
func animateMain(con *io.AnimateConfig) {
	fg := openFileGroup(&con.SharedConfig)
	defer fg.Close()

	loader := io.NewColumnLoader(con.IteratedInput)
	if !con.ValidIterationEnd() {
		con.IterationEnd = loader.LastFrame(con.IterationStart)
		if !con.ValidIterationEnd() {
			log.Fatalf("No file matches '%s'.", loader.File(con.IterationStart))
		}
	}

	opt, err := con.Options()
	if err != nil {
		log.Fatal(err.Error())
	}
	opt.Log = log.Default()

	var done int
	writeGlyphs(con.Output, func(tr *io.TableRenderer) (int, error) {
		var err error
		done, err = render.Animate(loader, opt, tr)
		if err != nil {
			log.Printf("%d/%d frames failed", len(opt.Frames)-done, len(opt.Frames))
		}
		return tr.Rows(), nil
	})
	log.Printf("Rendered %d/%d frames", done, len(opt.Frames))
}

// profileMain plots the polar angle and z-magnetization of a skyrmion
// against the distance from its center.
func profileMain(con *io.ProfileConfig) {
	rs := con.Radii()
	thetas := make([]float64, len(rs))
	mzs := make([]float64, len(rs))
	for i, r := range rs {
		theta := skyrmion.Profile(r, con.R, con.W)
		thetas[i] = theta / math.Pi
		mzs[i] = math.Cos(theta)
	}

	plt.Figure(plt.FigSize(8, 6))
	plt.Plot(rs, thetas, plt.LW(3), plt.C("b"))
	plt.Plot(rs, mzs, plt.LW(3), plt.C("r"))
	plt.Plot([]float64{con.R, con.R}, []float64{-1, 1}, "k", plt.LW(2))
	plt.Title(fmt.Sprintf(`$R$ = %.3g, $w$ = %.3g: $\Theta/\pi$ (blue), $m_z$ (red)`, con.R, con.W))
	plt.XLabel(`$\rho$`, plt.FontSize(16))
	plt.YLabel(`$\Theta/\pi$, $m_z$`, plt.FontSize(16))
	plt.XLim(0, rs[len(rs)-1])
	plt.YLim(-1, 1)
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(con.PlotFile)

	plt.Execute()
}

// preimageMain renders glyphs along preimage curves of a tube.
func preimageMain(wrap *io.PreimageWrapper) {
	con := &wrap.Preimage
	fg := openFileGroup(&con.SharedConfig)
	defer fg.Close()

	curves, err := wrap.Curves()
	if err != nil {
		log.Fatal(err.Error())
	}
	tube, err := skyrmion.NewTube(con.Params())
	if err != nil {
		log.Fatal(err.Error())
	}
	opt, err := con.Options()
	if err != nil {
		log.Fatal(err.Error())
	}

	writeGlyphs(con.Output, func(tr *io.TableRenderer) (int, error) {
		total := 0
		for _, curve := range curves {
			pts, err := tube.PreimageCurve(curve.Alpha, curve.Chi, curve.Points)
			if err != nil {
				return total, fmt.Errorf("Curve '%s': %w", curve.Name, err)
			}
			m := geom.Spherical(curve.Alpha, curve.Chi)
			n, err := render.Curve(pts, m, opt, tr)
			total += n
			if err != nil {
				return total, err
			}
		}
		return total, nil
	})
}

// stereographicMain renders a stereographic skyrmion in the plane and,
// optionally, the hedgehog sphere it is projected from.
func stereographicMain(con *io.StereographicConfig) {
	fg := openFileGroup(&con.SharedConfig)
	defer fg.Close()

	tex, err := con.Texture()
	if err != nil {
		log.Fatal(err.Error())
	}
	g, err := con.Grid()
	if err != nil {
		log.Fatal(err.Error())
	}
	opt, err := con.Options()
	if err != nil {
		log.Fatal(err.Error())
	}

	f := field.Generate(g, threads, tex.Eval)
	writeGlyphs(con.Output, func(tr *io.TableRenderer) (int, error) {
		return render.Stream(f, opt, tr)
	})

	if con.ValidSphereOutput() {
		samples := tex.SphereSamples(con.SphereSamples)
		pos := make([]geom.Vec, len(samples))
		spins := make([]geom.Vec, len(samples))
		for i := range samples {
			pos[i], spins[i] = samples[i].Position, samples[i].Spin
		}
		writeGlyphs(con.SphereOutput, func(tr *io.TableRenderer) (int, error) {
			return render.Points(pos, spins, opt, tr)
		})
	}
}

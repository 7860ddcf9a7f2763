// Command dxfpath converts the entities of a TOML scene into paths and
// exports them again as lines, polylines, hatches or splines.
//
// The exported entities are listed on standard output. The converted paths
// can be previewed as SVG or PNG.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cadkit/dxfpath"
	"github.com/cadkit/dxfpath/convert"
	"github.com/cadkit/dxfpath/entity"
	"github.com/go-logr/stdr"
	"github.com/pkg/errors"
)

var (
	flagMode    = flag.String("mode", "", "exporter: lines, lwpolylines, polylines2d, polylines3d, hatches or splines; overrides the scene")
	flagSVG     = flag.String("svg", "", "write an SVG preview of the paths to this file")
	flagPNG     = flag.String("png", "", "write a PNG mask of the paths to this file")
	flagText    = flag.String("text", "", "add this text to the scene, with a height of 10 units at the origin")
	flagTest    = flag.Bool("t", false, "test for a valid scene; exits with 0 on success, else 1")
	flagVerbose = flag.Int("v", 0, "log verbosity")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] scene.toml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	stdr.SetVerbosity(*flagVerbose)
	dxfpath.SetLogger(stdr.New(log.New(os.Stderr, "", log.LstdFlags)))

	c, err := LoadConfigFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	if *flagMode != "" {
		c.Settings.Mode = *flagMode
	}
	if *flagText != "" {
		c.Texts = append(c.Texts, TextConf{Text: *flagText, Size: 10})
	}
	s, err := buildScene(c)
	if err != nil {
		log.Fatal(err)
	}
	if *flagTest {
		os.Exit(0)
	}

	w := bufio.NewWriter(os.Stdout)
	if err := s.export(w, c.Settings); err != nil {
		log.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
	if *flagSVG != "" {
		err := writeFile(*flagSVG, func(w io.Writer) error {
			return writeSVG(w, s.paths, c.Settings.Width, c.Settings.Height, c.Settings.Mode == "hatches")
		})
		if err != nil {
			log.Fatal(err)
		}
	}
	if *flagPNG != "" {
		err := writeFile(*flagPNG, func(w io.Writer) error {
			return writePNG(w, s.paths, c.Settings.Width, c.Settings.Height)
		})
		if err != nil {
			log.Fatal(err)
		}
	}
}

func writeFile(name string, write func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", name)
	}
	return f.Close()
}

// scene holds the paths of all convertible entities and texts.
type scene struct {
	paths   []*dxfpath.Path
	skipped int
}

func buildScene(c *Config) (*scene, error) {
	_, ents, err := c.Document()
	if err != nil {
		return nil, err
	}
	s := &scene{}
	logger := dxfpath.Logger()
	for _, e := range ents {
		common := entity.CommonOf(e)
		if !convert.HasPathSupport(e) {
			logger.Info("skipping entity without path support", "type", e.DXFType(), "handle", common.Handle)
			s.skipped++
			continue
		}
		p, err := convert.MakePath(e, convert.Segments(c.Settings.Segments))
		if err != nil {
			return nil, err
		}
		if p.Len() == 0 {
			logger.V(1).Info("skipping empty path", "type", e.DXFType(), "handle", common.Handle)
			s.skipped++
			continue
		}
		s.paths = append(s.paths, p)
	}
	texts, err := c.TextPaths()
	if err != nil {
		return nil, err
	}
	s.paths = append(s.paths, texts...)
	logger.V(1).Info("built scene", "entities", len(ents), "paths", len(s.paths), "skipped", s.skipped)
	return s, nil
}

// export writes one line per exported entity to w.
func (s *scene) export(w io.Writer, settings Settings) error {
	opts, err := settings.ExportOptions()
	if err != nil {
		return err
	}
	emit := func(e entity.Entity) bool {
		_, err = fmt.Fprintln(w, describe(e))
		return err == nil
	}
	switch settings.Mode {
	case "lines":
		for e := range convert.ToLines(s.paths, opts) {
			if !emit(e) {
				break
			}
		}
	case "lwpolylines":
		for e := range convert.ToLWPolylines(s.paths, opts) {
			if !emit(e) {
				break
			}
		}
	case "polylines2d":
		for e := range convert.ToPolylines2D(s.paths, opts) {
			if !emit(e) {
				break
			}
		}
	case "polylines3d":
		for e := range convert.ToPolylines3D(s.paths, opts) {
			if !emit(e) {
				break
			}
		}
	case "hatches":
		for e := range convert.ToHatches(s.paths, opts) {
			if !emit(e) {
				break
			}
		}
	case "splines":
		for e := range convert.ToSplinesAndPolylines(s.paths, opts) {
			if !emit(e) {
				break
			}
		}
	default:
		return errors.Errorf("unknown mode %q", settings.Mode)
	}
	return err
}

func describe(e entity.Entity) string {
	common := entity.CommonOf(e)
	prefix := fmt.Sprintf("%s layer=%s color=%d", e.DXFType(), common.Layer, common.ColorIndex())
	switch e := e.(type) {
	case *entity.Line:
		return fmt.Sprintf("%s start=%s end=%s", prefix, point(e.Start), point(e.End))
	case *entity.LWPolyline:
		return fmt.Sprintf("%s points=%d closed=%t elevation=%g", prefix, len(e.Points), e.Closed, e.Elevation)
	case *entity.Polyline:
		s := fmt.Sprintf("%s vertices=%d closed=%t", prefix, len(e.Vertices), e.IsClosed())
		if e.Elevation != nil {
			s += fmt.Sprintf(" elevation=%g", *e.Elevation)
		}
		return s
	case *entity.Hatch:
		edges := 0
		for _, bp := range e.Paths {
			edges += len(bp.Edges)
		}
		return fmt.Sprintf("%s pattern=%s boundaries=%d edges=%d", prefix, e.PatternName, len(e.Paths), edges)
	case *entity.Spline:
		return fmt.Sprintf("%s degree=%d control_points=%d", prefix, e.Degree, len(e.ControlPoints))
	default:
		return prefix
	}
}

func point(v dxfpath.Vec3) string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}

package dxfpath

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// DefaultDistance is the default maximum deviation of a flattened
	// polyline from the curve it approximates, in drawing units.
	DefaultDistance = 0.01

	// DefaultSegments is the default minimum count of line segments per
	// Bézier curve when flattening.
	DefaultSegments = 4

	// DefaultG1Tol is the default tolerance of the G1 continuity test used by
	// [Segment].
	DefaultG1Tol = 1e-4

	// AbsTol is the absolute tolerance used for point coincidence, for
	// example when deciding whether a path is closed.
	AbsTol = 1e-9
)

var (
	// ErrUnsupportedType is returned when a drawing entity can't be converted
	// into a path.
	ErrUnsupportedType = errors.New("unsupported entity type")

	// ErrIndeterminateOrientation is returned when the winding of a path
	// can't be computed reliably, because it has too few distinct vertices
	// or no enclosed area.
	ErrIndeterminateOrientation = errors.New("indeterminate orientation")

	// ErrInvalidArgument is returned by operations that were given input
	// they can't work with, such as zero paths where at least one is
	// required.
	ErrInvalidArgument = errors.New("invalid argument")
)

func isClose(a, b, absTol float64) bool {
	return math.Abs(a-b) <= absTol
}

// SVGOptions specifies optional settings for [SVG] and [WriteSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int

	// FlipY negates y coordinates, mapping the y-up drawing coordinate system
	// onto SVG's y-down one.
	FlipY bool
}

// SVG converts paths to a string of SVG path commands. Only the x and y
// coordinates are used.
//
// See [WriteSVG] for a version that writes to an [io.Writer] instead of
// returning a string.
func SVG(paths []*Path, opts SVGOptions) string {
	sb := &strings.Builder{}
	WriteSVG(sb, paths, opts)
	return sb.String()
}

// WriteSVG converts paths to a string of SVG path commands and writes it to
// w. Each path starts with a move; closed paths end with Z.
//
// The current implementation doesn't take any special care to produce a
// short string (reducing precision, using relative movement).
func WriteSVG(w io.Writer, paths []*Path, opts SVGOptions) error {
	space := []byte(" ")
	z := []byte("Z")
	var err error
	write := func(s []byte) {
		if err != nil {
			return
		}
		_, err = w.Write(s)
	}
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		maxPrec := opts.MaxPrecision
		if maxPrec <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		} else {
			s := strconv.FormatFloat(n, 'f', maxPrec, 64)
			s = strings.TrimRight(s, "0")
			return strings.TrimSuffix(s, ".")
		}
	}
	pt := func(v Vec3) (string, string) {
		if opts.FlipY {
			// Adding zero turns -0 into 0.
			return format(v.X), format(-v.Y + 0)
		}
		return format(v.X), format(v.Y)
	}
	first := true
	for _, p := range paths {
		if err != nil {
			return err
		}
		if !first {
			write(space)
		}
		first = false
		x, y := pt(p.Start())
		writef("M%s,%s", x, y)
		for cmd := range p.Commands() {
			write(space)
			switch cmd.Kind {
			case LineToKind:
				x, y := pt(cmd.End)
				writef("L%s,%s", x, y)
			case Curve3ToKind:
				cx, cy := pt(cmd.Ctrl1)
				x, y := pt(cmd.End)
				writef("Q%s,%s %s,%s", cx, cy, x, y)
			case Curve4ToKind:
				c1x, c1y := pt(cmd.Ctrl1)
				c2x, c2y := pt(cmd.Ctrl2)
				x, y := pt(cmd.End)
				writef("C%s,%s %s,%s %s,%s", c1x, c1y, c2x, c2y, x, y)
			default:
				panic(fmt.Sprintf("invalid command kind %v", cmd.Kind))
			}
		}
		if p.Len() > 0 && p.IsClosed() {
			write(space)
			write(z)
		}
	}
	return err
}

package main

import (
	"image/png"
	"io"
	"math"

	"github.com/ajstarks/svgo"
	"github.com/cadkit/dxfpath"
	"github.com/cadkit/dxfpath/bridge"
	"github.com/pkg/errors"
)

const (
	strokeStyle = "fill:none;stroke:#000000;stroke-width:1;vector-effect:non-scaling-stroke"
	fillStyle   = "fill:#808080;fill-rule:evenodd;stroke:#000000;stroke-width:1;vector-effect:non-scaling-stroke"
)

// errWriter keeps the first write error, since svgo ignores them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

func bounds(paths []*dxfpath.Path) dxfpath.Box {
	box := dxfpath.NewBoxFromPoints()
	for _, p := range paths {
		box = box.Union(p.BoundingBox())
	}
	return box
}

// writeSVG draws paths into an SVG document of the given size. Filled paths
// are drawn with the even-odd rule, so holes of nested paths stay empty.
func writeSVG(w io.Writer, paths []*dxfpath.Path, width, height int, fill bool) error {
	box := bounds(paths)
	if box.IsEmpty() {
		return errors.Wrap(dxfpath.ErrInvalidArgument, "nothing to draw")
	}
	// The view box is in drawing units, with y flipped.
	minx := int(math.Floor(box.Min.X)) - 1
	miny := int(math.Floor(-box.Max.Y)) - 1
	vw := int(math.Ceil(box.Max.X)) + 1 - minx
	vh := int(math.Ceil(-box.Min.Y)) + 1 - miny

	style := strokeStyle
	if fill {
		style = fillStyle
	}
	ew := &errWriter{w: w}
	g := svg.New(ew)
	g.Startview(width, height, minx, miny, vw, vh)
	g.Path(dxfpath.SVG(paths, dxfpath.SVGOptions{MaxPrecision: 6, FlipY: true}), style)
	g.End()
	return errors.Wrap(ew.err, "writing SVG")
}

// writePNG fills paths into a grayscale mask of the given size.
func writePNG(w io.Writer, paths []*dxfpath.Path, width, height int) error {
	box := bounds(paths)
	if box.IsEmpty() {
		return errors.Wrap(dxfpath.ErrInvalidArgument, "nothing to draw")
	}
	aff := bridge.FitAffine(box, width, height, 4)
	mask, err := bridge.Mask(paths, width, height, aff)
	if err != nil {
		return err
	}
	return png.Encode(w, mask)
}

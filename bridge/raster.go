package bridge

import (
	"fmt"
	"image"

	"github.com/cadkit/dxfpath"
	"github.com/pkg/errors"
	"golang.org/x/image/vector"
)

// Rasterize adds paths to r as closed subpaths, after mapping all points
// with aff. Only x and y are used, so aff usually maps drawing coordinates
// to pixels. Rasterize returns an error matching
// [dxfpath.ErrInvalidArgument] if paths is empty.
func Rasterize(paths []*dxfpath.Path, r *vector.Rasterizer, aff dxfpath.Affine) error {
	if len(paths) == 0 {
		return errors.Wrap(dxfpath.ErrInvalidArgument, "one or more paths required")
	}
	pt := func(v dxfpath.Vec3) (float32, float32) {
		v = aff.Transform(v)
		return float32(v.X), float32(v.Y)
	}
	for _, p := range paths {
		if p.Len() == 0 {
			continue
		}
		r.MoveTo(pt(p.Start()))
		for cmd := range p.Commands() {
			switch cmd.Kind {
			case dxfpath.LineToKind:
				r.LineTo(pt(cmd.End))
			case dxfpath.Curve3ToKind:
				bx, by := pt(cmd.Ctrl1)
				cx, cy := pt(cmd.End)
				r.QuadTo(bx, by, cx, cy)
			case dxfpath.Curve4ToKind:
				bx, by := pt(cmd.Ctrl1)
				cx, cy := pt(cmd.Ctrl2)
				dx, dy := pt(cmd.End)
				r.CubeTo(bx, by, cx, cy, dx, dy)
			default:
				panic(fmt.Sprintf("invalid command kind %v", cmd.Kind))
			}
		}
		r.ClosePath()
	}
	return nil
}

// FitAffine returns the transform that maps box onto an image of the given
// size, keeping the aspect ratio and leaving margin pixels on every side.
// The y axis is flipped, since image rows count downwards.
func FitAffine(box dxfpath.Box, width, height int, margin float64) dxfpath.Affine {
	size := box.Size()
	availW := float64(width) - 2*margin
	availH := float64(height) - 2*margin
	scale := 1.0
	if size.X > 0 || size.Y > 0 {
		scale = min(availW/max(size.X, 1e-12), availH/max(size.Y, 1e-12))
	}
	return dxfpath.Translate(box.Center().Mul(-1)).
		ThenScale(scale, -scale, 1).
		ThenTranslate(dxfpath.Pt(float64(width)/2, float64(height)/2))
}

// Mask fills paths into a new alpha mask of the given size, using the
// nonzero winding rule of [vector.Rasterizer].
func Mask(paths []*dxfpath.Path, width, height int, aff dxfpath.Affine) (*image.Alpha, error) {
	r := vector.NewRasterizer(width, height)
	if err := Rasterize(paths, r, aff); err != nil {
		return nil, err
	}
	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst, nil
}

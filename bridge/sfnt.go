package bridge

import (
	"fmt"
	"iter"
	"math"
	"sync"

	"github.com/cadkit/dxfpath"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Font outlines use 26.6 fixed point coordinates with the y axis pointing
// down. The conversions flip y, so outlines appear upright in drawing
// coordinates.

func fromFixed(p fixed.Point26_6, scale float64) dxfpath.Vec3 {
	return dxfpath.Pt(float64(p.X)/64*scale, -float64(p.Y)/64*scale)
}

func toFixed(v dxfpath.Vec3) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(v.X * 64)),
		Y: fixed.Int26_6(math.Round(-v.Y * 64)),
	}
}

// FromSegments returns one closed path per contour of a font outline, as
// returned by [sfnt.Font.LoadGlyph]. Coordinates are multiplied by scale.
func FromSegments(segs sfnt.Segments, scale float64) iter.Seq[*dxfpath.Path] {
	return func(yield func(*dxfpath.Path) bool) {
		var p *dxfpath.Path
		for _, seg := range segs {
			if seg.Op != sfnt.SegmentOpMoveTo && p == nil {
				p = &dxfpath.Path{}
			}
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				if p != nil {
					p.Close()
					if !yield(p) {
						return
					}
				}
				p = dxfpath.NewPath(fromFixed(seg.Args[0], scale))
			case sfnt.SegmentOpLineTo:
				p.LineTo(fromFixed(seg.Args[0], scale))
			case sfnt.SegmentOpQuadTo:
				p.Curve3To(fromFixed(seg.Args[1], scale), fromFixed(seg.Args[0], scale))
			case sfnt.SegmentOpCubeTo:
				p.Curve4To(fromFixed(seg.Args[2], scale), fromFixed(seg.Args[0], scale), fromFixed(seg.Args[1], scale))
			default:
				panic(fmt.Sprintf("invalid segment op %d", seg.Op))
			}
		}
		if p != nil {
			p.Close()
			yield(p)
		}
	}
}

// ToSegments returns the font outline segments describing paths, rounded to
// 26.6 fixed point. If extrusion isn't the z axis, the paths are projected
// into its OCS first. ToSegments returns an error matching
// [dxfpath.ErrInvalidArgument] if paths is empty.
func ToSegments(paths []*dxfpath.Path, extrusion dxfpath.Vec3) (sfnt.Segments, error) {
	paths, err := projected(paths, extrusion)
	if err != nil {
		return nil, err
	}
	var out sfnt.Segments
	for _, p := range paths {
		out = append(out, sfnt.Segment{Op: sfnt.SegmentOpMoveTo, Args: [3]fixed.Point26_6{toFixed(p.Start())}})
		for cmd := range p.Commands() {
			var seg sfnt.Segment
			switch cmd.Kind {
			case dxfpath.LineToKind:
				seg = sfnt.Segment{Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{toFixed(cmd.End)}}
			case dxfpath.Curve3ToKind:
				seg = sfnt.Segment{Op: sfnt.SegmentOpQuadTo, Args: [3]fixed.Point26_6{toFixed(cmd.Ctrl1), toFixed(cmd.End)}}
			case dxfpath.Curve4ToKind:
				seg = sfnt.Segment{Op: sfnt.SegmentOpCubeTo, Args: [3]fixed.Point26_6{toFixed(cmd.Ctrl1), toFixed(cmd.Ctrl2), toFixed(cmd.End)}}
			default:
				panic(fmt.Sprintf("invalid command kind %v", cmd.Kind))
			}
			out = append(out, seg)
		}
	}
	return out, nil
}

var goRegular = sync.OnceValues(func() (*sfnt.Font, error) {
	return sfnt.Parse(goregular.TTF)
})

// TextPaths returns the glyph outlines of text set in the Go Regular font,
// with a font size of size drawing units. The baseline starts at the origin
// and runs along the x axis. Each contour is a separate closed path; use
// [dxfpath.Group] to find the holes of glyphs like "o".
func TextPaths(text string, size float64) ([]*dxfpath.Path, error) {
	f, err := goRegular()
	if err != nil {
		return nil, errors.Wrap(err, "parsing Go Regular")
	}
	// Glyphs are loaded at 64 ppem and scaled, so that small sizes keep
	// their precision.
	const ppem = 64
	scale := size / ppem
	var buf sfnt.Buffer
	var out []*dxfpath.Path
	var pen fixed.Int26_6
	var prev sfnt.GlyphIndex
	for i, r := range text {
		gid, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return nil, errors.Wrapf(err, "glyph for %q", r)
		}
		if i > 0 {
			if kern, err := f.Kern(&buf, prev, gid, fixed.I(ppem), font.HintingNone); err == nil {
				pen += kern
			}
		}
		segs, err := f.LoadGlyph(&buf, gid, fixed.I(ppem), nil)
		if err != nil {
			return nil, errors.Wrapf(err, "loading glyph for %q", r)
		}
		offset := dxfpath.Translate(dxfpath.Pt(float64(pen)/64*scale, 0))
		for p := range FromSegments(segs, scale) {
			out = append(out, p.Transform(offset))
		}
		advance, err := f.GlyphAdvance(&buf, gid, fixed.I(ppem), font.HintingNone)
		if err != nil {
			return nil, errors.Wrapf(err, "advance of %q", r)
		}
		pen += advance
		prev = gid
	}
	dxfpath.Logger().V(2).Info("text outlines", "runes", len([]rune(text)), "paths", len(out))
	return out, nil
}

package dxfpath

import (
	"fmt"
	"iter"
)

type FragmentKind int

const (
	// A run of G1 continuous Bézier curves, joined into a cubic B-spline.
	SplineFragment FragmentKind = iota + 1
	// A run of lines.
	PolylineFragment
)

func (k FragmentKind) String() string {
	switch k {
	case SplineFragment:
		return "SplineFragment"
	case PolylineFragment:
		return "PolylineFragment"
	default:
		return fmt.Sprintf("FragmentKind(%d)", int(k))
	}
}

// Fragment is a part of a path produced by [Segment]. Spline is set for
// SplineFragment, Vertices for PolylineFragment.
type Fragment struct {
	Kind     FragmentKind
	Spline   BSpline
	Vertices []Vec3
}

func (f Fragment) Start() Vec3 {
	switch f.Kind {
	case SplineFragment:
		return f.Spline.ControlPoints[0]
	case PolylineFragment:
		return f.Vertices[0]
	default:
		panic(fmt.Sprintf("invalid fragment kind %v", f.Kind))
	}
}

func (f Fragment) End() Vec3 {
	switch f.Kind {
	case SplineFragment:
		return f.Spline.ControlPoints[len(f.Spline.ControlPoints)-1]
	case PolylineFragment:
		return f.Vertices[len(f.Vertices)-1]
	default:
		panic(fmt.Sprintf("invalid fragment kind %v", f.Kind))
	}
}

// Segment splits p into fragments of uniform kind, in command order.
//
// Consecutive lines form a polyline fragment holding n+1 vertices for n
// lines. Consecutive Bézier curves (quadratics are raised to cubics) form a
// spline fragment for as long as each curve continues its predecessor with G1
// continuity within g1Tol, see [HaveG1Continuity]; a discontinuity starts a
// new spline fragment. Adjacent fragments share their boundary point, and a
// single curve still yields a spline fragment. A non-positive g1Tol is
// replaced by [DefaultG1Tol].
func Segment(p *Path, g1Tol float64) iter.Seq[Fragment] {
	if !(g1Tol > 0) {
		g1Tol = DefaultG1Tol
	}
	return func(yield func(Fragment) bool) {
		var curves []Bezier4P
		var vertices []Vec3

		flush := func() bool {
			switch {
			case len(curves) > 0:
				s, err := BezierToBSpline(curves)
				if err != nil {
					panic(fmt.Sprintf("joining path segments: %v", err))
				}
				curves = nil
				return yield(Fragment{Kind: SplineFragment, Spline: s})
			case len(vertices) > 0:
				f := Fragment{Kind: PolylineFragment, Vertices: vertices}
				vertices = nil
				return yield(f)
			}
			return true
		}

		for seg := range p.Segments() {
			switch seg.Kind {
			case LineKind:
				if len(curves) > 0 && !flush() {
					return
				}
				if len(vertices) == 0 {
					vertices = append(vertices, seg.P0)
				}
				vertices = append(vertices, seg.P1)
			case QuadKind, CubicKind:
				c := seg.Cubic()
				if len(vertices) > 0 && !flush() {
					return
				}
				if len(curves) > 0 && !HaveG1Continuity(curves[len(curves)-1], c, g1Tol) && !flush() {
					return
				}
				curves = append(curves, c)
			default:
				panic(fmt.Sprintf("invalid segment kind %v", seg.Kind))
			}
		}
		flush()
	}
}

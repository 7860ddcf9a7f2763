package dxfpath

import (
	"fmt"
	"iter"
)

// Flatten returns the vertices of a polyline approximating p.
//
// The first vertex is the start point of the path. Lines yield their end
// points. Bézier curves are split into segments pieces of equal parameter
// range, and each piece is bisected recursively until its control points are
// within distance of its chord; see [Bezier4P.Flatten]. The last vertex is the
// end point of the last command. Consecutive duplicate vertices are dropped.
//
// A non-positive distance is replaced by [DefaultDistance], a segments value
// below 1 by 1. The result is a pure function of its arguments and can be
// iterated any number of times, but p must not be modified while an iteration
// is in progress.
func Flatten(p *Path, distance float64, segments int) iter.Seq[Vec3] {
	return func(yield func(Vec3) bool) {
		last := p.Start()
		if !yield(last) {
			return
		}
		emit := func(v Vec3) bool {
			if v == last {
				return true
			}
			last = v
			return yield(v)
		}
		for seg := range p.Segments() {
			var ok bool
			switch seg.Kind {
			case LineKind:
				ok = emit(seg.P1)
			case QuadKind, CubicKind:
				ok = seg.Cubic().flattenTail(distance, segments, emit)
			default:
				panic(fmt.Sprintf("invalid segment kind %v", seg.Kind))
			}
			if !ok {
				return
			}
		}
	}
}

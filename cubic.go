package dxfpath

import (
	"iter"
)

// maxFlattenDepth bounds the recursion of curve flattening. 2^16 lines per
// subdivision piece is far beyond any sensible tolerance, but guarantees that
// degenerate input (NaN, huge coordinates) terminates.
const maxFlattenDepth = 16

// Bezier4P is a cubic Bézier curve in 3D space.
type Bezier4P struct {
	P0 Vec3
	P1 Vec3
	P2 Vec3
	P3 Vec3
}

func (c Bezier4P) IsInf() bool {
	return c.P0.IsInf() || c.P1.IsInf() || c.P2.IsInf() || c.P3.IsInf()
}

func (c Bezier4P) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

// ControlPoints returns the four control points.
func (c Bezier4P) ControlPoints() [4]Vec3 {
	return [4]Vec3{c.P0, c.P1, c.P2, c.P3}
}

func (c Bezier4P) Start() Vec3 { return c.P0 }
func (c Bezier4P) End() Vec3   { return c.P3 }

func (c Bezier4P) Eval(t float64) Vec3 {
	mt := 1.0 - t
	a := c.P0.Mul(mt * mt * mt)
	b := c.P1.Mul(mt * mt * 3.0)
	cc := c.P2.Mul(mt * 3.0)
	d := c.P3
	return a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
}

// Deriv evaluates the first derivative at t.
func (c Bezier4P) Deriv(t float64) Vec3 {
	mt := 1.0 - t
	d01 := c.P1.Sub(c.P0)
	d12 := c.P2.Sub(c.P1)
	d23 := c.P3.Sub(c.P2)
	return d01.Mul(3 * mt * mt).Add(d12.Mul(6 * mt * t)).Add(d23.Mul(3 * t * t))
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c Bezier4P) Subdivide() (Bezier4P, Bezier4P) {
	pm := c.Eval(0.5)
	return Bezier4P{
			c.P0,
			c.P0.Midpoint(c.P1),
			c.P0.Add(c.P1.Mul(2.0)).Add(c.P2).Mul(0.25),
			pm,
		},
		Bezier4P{
			pm,
			c.P1.Add(c.P2.Mul(2.0)).Add(c.P3).Mul(0.25),
			c.P2.Midpoint(c.P3),
			c.P3,
		}
}

// Subsegment returns the part of the curve between the parameters t0 and t1.
func (c Bezier4P) Subsegment(t0, t1 float64) Bezier4P {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Add(c.Deriv(t0).Mul(scale))
	p2 := p3.Sub(c.Deriv(t1).Mul(scale))
	return Bezier4P{p0, p1, p2, p3}
}

// Reverse returns the same curve traversed in the opposite direction.
func (c Bezier4P) Reverse() Bezier4P {
	return Bezier4P{c.P3, c.P2, c.P1, c.P0}
}

func (c Bezier4P) Transform(aff Affine) Bezier4P {
	return Bezier4P{
		aff.Transform(c.P0),
		aff.Transform(c.P1),
		aff.Transform(c.P2),
		aff.Transform(c.P3),
	}
}

// Tangents returns the directions of the curve at its start and end.
//
// This version is robust to the curve not being regular: when control points
// coincide with an end point, the next distinct control point is used. Both
// vectors are zero if all control points coincide.
func (c Bezier4P) Tangents() (Vec3, Vec3) {
	var start, end Vec3
	for _, p := range [3]Vec3{c.P1, c.P2, c.P3} {
		if d := p.Sub(c.P0); !d.IsNull() {
			start = d
			break
		}
	}
	for _, p := range [3]Vec3{c.P2, c.P1, c.P0} {
		if d := c.P3.Sub(p); !d.IsNull() {
			end = d
			break
		}
	}
	return start, end
}

// IsFlat reports whether both inner control points lie within distance of the
// chord from P0 to P3. Because the curve lies in the convex hull of its control
// points, no point of a flat curve is farther than distance from the chord.
func (c Bezier4P) IsFlat(distance float64) bool {
	chord := Line{c.P0, c.P3}
	return chord.SegmentDistanceToPoint(c.P1) <= distance &&
		chord.SegmentDistanceToPoint(c.P2) <= distance
}

// Flatten returns the vertices of a polyline approximating the curve. The
// curve is split into segments pieces of equal parameter range, each of which
// is bisected recursively until it is flat within distance. The first vertex
// is P0, the last is P3.
func (c Bezier4P) Flatten(distance float64, segments int) iter.Seq[Vec3] {
	return func(yield func(Vec3) bool) {
		if !yield(c.P0) {
			return
		}
		c.flattenTail(distance, segments, yield)
	}
}

// flattenTail yields all vertices of the flattened curve except P0. It returns
// false if yield asked to stop.
func (c Bezier4P) flattenTail(distance float64, segments int, yield func(Vec3) bool) bool {
	if !(distance > 0) {
		distance = DefaultDistance
	}
	segments = max(segments, 1)
	step := 1.0 / float64(segments)
	for i := range segments {
		piece := c
		if segments > 1 {
			piece = c.Subsegment(float64(i)*step, float64(i+1)*step)
			if i == segments-1 {
				piece.P3 = c.P3
			}
		}
		if !piece.bisect(distance, 0, yield) {
			return false
		}
	}
	return true
}

func (c Bezier4P) bisect(distance float64, depth int, yield func(Vec3) bool) bool {
	if depth >= maxFlattenDepth || c.IsFlat(distance) {
		return yield(c.P3)
	}
	c0, c1 := c.Subdivide()
	return c0.bisect(distance, depth+1, yield) && c1.bisect(distance, depth+1, yield)
}

// HaveG1Continuity reports whether b2 continues b1 with G1 continuity: the end
// point of b1 is the start point of b2, and the end tangent of b1 and the start
// tangent of b2 point in the same direction. The normalized tangents are
// compared per component with the absolute tolerance tol.
func HaveG1Continuity(b1, b2 Bezier4P, tol float64) bool {
	if !b1.P3.IsClose(b2.P0, AbsTol) {
		return false
	}
	_, te := b1.Tangents()
	ts, _ := b2.Tangents()
	if te.IsNull() || ts.IsNull() {
		return false
	}
	return te.Normalize().IsClose(ts.Normalize(), tol)
}

package dxfpath

import "iter"

// Bezier3P is a quadratic Bézier curve in 3D space.
type Bezier3P struct {
	P0 Vec3
	P1 Vec3
	P2 Vec3
}

func (q Bezier3P) Start() Vec3 { return q.P0 }
func (q Bezier3P) End() Vec3   { return q.P2 }

// Raise raises the order by 1.
//
// Returns a cubic Bézier segment that exactly represents this quadratic.
func (q Bezier3P) Raise() Bezier4P {
	return Bezier4P{
		q.P0,
		q.P0.Add(q.P1.Sub(q.P0).Mul(2.0 / 3.0)),
		q.P2.Add(q.P1.Sub(q.P2).Mul(2.0 / 3.0)),
		q.P2,
	}
}

func (q Bezier3P) IsInf() bool {
	return q.P0.IsInf() || q.P1.IsInf() || q.P2.IsInf()
}

func (q Bezier3P) IsNaN() bool {
	return q.P0.IsNaN() || q.P1.IsNaN() || q.P2.IsNaN()
}

func (q Bezier3P) Eval(t float64) Vec3 {
	mt := 1.0 - t
	return q.P0.Mul(mt * mt).Add(q.P1.Mul(mt * 2.0).Add(q.P2.Mul(t)).Mul(t))
}

// Subdivide subdivides the quadratic into halves, using de Casteljau.
func (q Bezier3P) Subdivide() (Bezier3P, Bezier3P) {
	pm := q.Eval(0.5)
	return Bezier3P{q.P0, q.P0.Midpoint(q.P1), pm},
		Bezier3P{pm, q.P1.Midpoint(q.P2), q.P2}
}

// Reverse returns the same curve traversed in the opposite direction.
func (q Bezier3P) Reverse() Bezier3P {
	return Bezier3P{q.P2, q.P1, q.P0}
}

func (q Bezier3P) Transform(aff Affine) Bezier3P {
	return Bezier3P{aff.Transform(q.P0), aff.Transform(q.P1), aff.Transform(q.P2)}
}

// Flatten returns the vertices of a polyline approximating the curve, see
// [Bezier4P.Flatten]. The raised cubic describes the same curve, so the
// deviation bound carries over.
func (q Bezier3P) Flatten(distance float64, segments int) iter.Seq[Vec3] {
	return q.Raise().Flatten(distance, segments)
}

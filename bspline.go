package dxfpath

import (
	"iter"
	"slices"

	"github.com/pkg/errors"
)

// BSpline is a (possibly rational) B-spline curve in 3D space.
//
// A valid spline has at least Degree+1 control points and exactly
// len(ControlPoints)+Degree+1 knots in non-decreasing order. Weights are
// either nil, for a non-rational spline, or one per control point.
type BSpline struct {
	ControlPoints []Vec3
	Degree        int
	Knots         []float64
	Weights       []float64
}

// NewBSpline returns a non-rational spline with a clamped uniform knot vector.
func NewBSpline(controlPoints []Vec3, degree int) BSpline {
	return BSpline{
		ControlPoints: controlPoints,
		Degree:        degree,
		Knots:         clampedUniformKnots(len(controlPoints), degree+1),
	}
}

// clampedUniformKnots returns the knot vector [0…0, 1, 2, …, 0…], with order
// repetitions at either end.
func clampedUniformKnots(count, order int) []float64 {
	knots := make([]float64, 0, count+order)
	for range order {
		knots = append(knots, 0)
	}
	inner := count - order
	for i := 1; i <= inner; i++ {
		knots = append(knots, float64(i))
	}
	for range order {
		knots = append(knots, float64(inner+1))
	}
	return knots
}

// Order returns Degree+1.
func (s BSpline) Order() int { return s.Degree + 1 }

// Count returns the number of control points.
func (s BSpline) Count() int { return len(s.ControlPoints) }

// Validate checks the structural invariants of the spline.
func (s BSpline) Validate() error {
	switch {
	case s.Degree < 1:
		return errors.Wrapf(ErrInvalidArgument, "spline degree %d", s.Degree)
	case s.Count() < s.Order():
		return errors.Wrapf(ErrInvalidArgument, "spline of degree %d needs %d control points, got %d",
			s.Degree, s.Order(), s.Count())
	case len(s.Knots) != s.Count()+s.Order():
		return errors.Wrapf(ErrInvalidArgument, "spline needs %d knots, got %d",
			s.Count()+s.Order(), len(s.Knots))
	case s.Weights != nil && len(s.Weights) != s.Count():
		return errors.Wrapf(ErrInvalidArgument, "spline has %d control points but %d weights",
			s.Count(), len(s.Weights))
	}
	for i := 1; i < len(s.Knots); i++ {
		if s.Knots[i] < s.Knots[i-1] {
			return errors.Wrapf(ErrInvalidArgument, "spline knots decrease at index %d", i)
		}
	}
	return nil
}

// Domain returns the parameter range of the curve.
func (s BSpline) Domain() (float64, float64) {
	return s.Knots[s.Degree], s.Knots[s.Count()]
}

// IsRational reports whether the spline has weights that aren't all equal.
func (s BSpline) IsRational() bool {
	if len(s.Weights) == 0 {
		return false
	}
	for _, w := range s.Weights[1:] {
		if w != s.Weights[0] {
			return true
		}
	}
	return false
}

// IsClamped reports whether the first and last Order knots are equal, which
// makes the curve start and end at its first and last control points.
func (s BSpline) IsClamped() bool {
	order := s.Order()
	if len(s.Knots) < 2*order {
		return false
	}
	first := s.Knots[:order]
	last := s.Knots[len(s.Knots)-order:]
	for i := 1; i < order; i++ {
		if first[i] != first[0] || last[i] != last[0] {
			return false
		}
	}
	return true
}

func (s BSpline) weight(i int) float64 {
	if s.Weights == nil {
		return 1
	}
	return s.Weights[i]
}

// findSpan returns the index k with Knots[k] ≤ t < Knots[k+1], clamped to the
// valid spans of the curve.
func (s BSpline) findSpan(t float64) int {
	n := s.Count()
	if t >= s.Knots[n] {
		// Last non-empty span.
		k := n - 1
		for k > s.Degree && s.Knots[k] == s.Knots[k+1] {
			k--
		}
		return k
	}
	if t <= s.Knots[s.Degree] {
		k := s.Degree
		for k < n-1 && s.Knots[k] == s.Knots[k+1] {
			k++
		}
		return k
	}
	// Knots[Degree] < t < Knots[n]; find the last knot ≤ t.
	k, _ := slices.BinarySearch(s.Knots[:n+1], t)
	for k < len(s.Knots) && s.Knots[k] <= t {
		k++
	}
	return k - 1
}

type homogeneous struct {
	p Vec3 // weighted point
	w float64
}

func (h homogeneous) lerp(o homogeneous, t float64) homogeneous {
	return homogeneous{h.p.Lerp(o.p, t), h.w + (o.w-h.w)*t}
}

// Eval evaluates the curve at t using de Boor's algorithm.
func (s BSpline) Eval(t float64) Vec3 {
	p := s.Degree
	k := s.findSpan(t)
	d := make([]homogeneous, p+1)
	for j := range d {
		i := j + k - p
		w := s.weight(i)
		d[j] = homogeneous{s.ControlPoints[i].Mul(w), w}
	}
	for r := 1; r <= p; r++ {
		for j := p; j >= r; j-- {
			lo := s.Knots[j+k-p]
			hi := s.Knots[j+1+k-r]
			var alpha float64
			if hi != lo {
				alpha = (t - lo) / (hi - lo)
			}
			d[j] = d[j-1].lerp(d[j], alpha)
		}
	}
	return d[p].p.Div(d[p].w)
}

// Approximate returns segments+1 points of the curve at evenly spaced
// parameters, including both end points.
func (s BSpline) Approximate(segments int) iter.Seq[Vec3] {
	return func(yield func(Vec3) bool) {
		segments := max(segments, 1)
		t0, t1 := s.Domain()
		step := (t1 - t0) / float64(segments)
		for i := range segments + 1 {
			t := t0 + float64(i)*step
			if i == segments {
				t = t1
			}
			if !yield(s.Eval(t)) {
				return
			}
		}
	}
}

// InsertKnot returns an equivalent spline with the knot t inserted once,
// using Boehm's algorithm. Rational splines are handled in homogeneous
// coordinates.
func (s BSpline) InsertKnot(t float64) BSpline {
	p := s.Degree
	k := s.findSpan(t)
	n := s.Count()
	hp := make([]homogeneous, n+1)
	for i := range hp {
		switch {
		case i <= k-p:
			w := s.weight(i)
			hp[i] = homogeneous{s.ControlPoints[i].Mul(w), w}
		case i >= k+1:
			w := s.weight(i - 1)
			hp[i] = homogeneous{s.ControlPoints[i-1].Mul(w), w}
		default:
			var a float64
			if den := s.Knots[i+p] - s.Knots[i]; den != 0 {
				a = (t - s.Knots[i]) / den
			}
			w0, w1 := s.weight(i-1), s.weight(i)
			prev := homogeneous{s.ControlPoints[i-1].Mul(w0), w0}
			cur := homogeneous{s.ControlPoints[i].Mul(w1), w1}
			hp[i] = prev.lerp(cur, a)
		}
	}
	out := BSpline{
		ControlPoints: make([]Vec3, n+1),
		Degree:        p,
		Knots:         slices.Insert(slices.Clone(s.Knots), k+1, t),
	}
	if s.Weights != nil {
		out.Weights = make([]float64, n+1)
	}
	for i, h := range hp {
		out.ControlPoints[i] = h.p.Div(h.w)
		if out.Weights != nil {
			out.Weights[i] = h.w
		}
	}
	return out
}

// BezierDecomposition splits a clamped, non-rational cubic spline into its
// cubic Bézier segments by raising the multiplicity of every interior knot to
// three. It returns false for any other kind of spline.
func (s BSpline) BezierDecomposition() ([]Bezier4P, bool) {
	if s.Degree != 3 || s.IsRational() || !s.IsClamped() || s.Validate() != nil {
		return nil, false
	}
	sp := s
	t0, t1 := sp.Domain()
	for i := sp.Order(); i < len(sp.Knots)-sp.Order(); {
		u := sp.Knots[i]
		mult := 1
		for i+mult < len(sp.Knots) && sp.Knots[i+mult] == u {
			mult++
		}
		if u <= t0 || u >= t1 {
			i += mult
			continue
		}
		for range sp.Degree - mult {
			sp = sp.InsertKnot(u)
		}
		i += max(mult, sp.Degree)
	}
	cps := sp.ControlPoints
	if (len(cps)-1)%3 != 0 {
		return nil, false
	}
	curves := make([]Bezier4P, 0, (len(cps)-1)/3)
	for i := 0; i+3 < len(cps); i += 3 {
		curves = append(curves, Bezier4P{cps[i], cps[i+1], cps[i+2], cps[i+3]})
	}
	return curves, true
}

// CubicBezierApproximation approximates the spline by cubic Béziers
// interpolating Count*level points of the curve.
func (s BSpline) CubicBezierApproximation(level int) []Bezier4P {
	level = max(level, 1)
	points := slices.Collect(s.Approximate(s.Count() * level))
	return CubicBezierInterpolation(points)
}

// Transform applies aff to all control points. Affine maps preserve
// B-splines, so the result describes the transformed curve.
func (s BSpline) Transform(aff Affine) BSpline {
	out := s
	out.ControlPoints = make([]Vec3, len(s.ControlPoints))
	for i, p := range s.ControlPoints {
		out.ControlPoints[i] = aff.Transform(p)
	}
	return out
}

// BezierToBSpline joins connected cubic Béziers into a single cubic B-spline.
// The end point of each curve must coincide with the start point of the next
// one. Interior knots have multiplicity three, so the spline passes through
// all joints.
func BezierToBSpline(curves []Bezier4P) (BSpline, error) {
	if len(curves) == 0 {
		return BSpline{}, errors.Wrap(ErrInvalidArgument, "no Bézier curves")
	}
	cps := make([]Vec3, 0, 3*len(curves)+1)
	cps = append(cps, curves[0].P0)
	prev := curves[0].P0
	for i, c := range curves {
		if !c.P0.IsClose(prev, AbsTol) {
			return BSpline{}, errors.Wrapf(ErrInvalidArgument, "Bézier curve %d is not connected to its predecessor", i)
		}
		cps = append(cps, c.P1, c.P2, c.P3)
		prev = c.P3
	}
	n := len(curves)
	knots := make([]float64, 0, 3*n+5)
	knots = append(knots, 0, 0, 0, 0)
	for i := 1; i < n; i++ {
		u := float64(i)
		knots = append(knots, u, u, u)
	}
	u := float64(n)
	knots = append(knots, u, u, u, u)
	return BSpline{ControlPoints: cps, Degree: 3, Knots: knots}, nil
}

// CubicBezierInterpolation returns a C2 continuous chain of cubic Béziers
// passing through all points, with natural end conditions. It returns nil for
// fewer than two points.
func CubicBezierInterpolation(points []Vec3) []Bezier4P {
	n := len(points) - 1
	if n < 1 {
		return nil
	}
	if n == 1 {
		p0, p1 := points[0], points[1]
		d := p1.Sub(p0)
		return []Bezier4P{{p0, p0.Add(d.Mul(1.0 / 3.0)), p0.Add(d.Mul(2.0 / 3.0)), p1}}
	}

	// Tridiagonal system for the first inner control point of each segment,
	// solved with the Thomas algorithm.
	a := make([]float64, n)
	b := make([]float64, n)
	c := make([]float64, n)
	r := make([]Vec3, n)
	b[0], c[0] = 2, 1
	r[0] = points[0].Add(points[1].Mul(2))
	for i := 1; i < n-1; i++ {
		a[i], b[i], c[i] = 1, 4, 1
		r[i] = points[i].Mul(4).Add(points[i+1].Mul(2))
	}
	a[n-1], b[n-1] = 2, 7
	r[n-1] = points[n-1].Mul(8).Add(points[n])
	for i := 1; i < n; i++ {
		m := a[i] / b[i-1]
		b[i] -= m * c[i-1]
		r[i] = r[i].Sub(r[i-1].Mul(m))
	}
	ctrl1 := make([]Vec3, n)
	ctrl1[n-1] = r[n-1].Div(b[n-1])
	for i := n - 2; i >= 0; i-- {
		ctrl1[i] = r[i].Sub(ctrl1[i+1].Mul(c[i])).Div(b[i])
	}

	curves := make([]Bezier4P, n)
	for i := range n {
		var ctrl2 Vec3
		if i < n-1 {
			ctrl2 = points[i+1].Mul(2).Sub(ctrl1[i+1])
		} else {
			ctrl2 = ctrl1[n-1].Add(points[n]).Mul(0.5)
		}
		curves[i] = Bezier4P{points[i], ctrl1[i], ctrl2, points[i+1]}
	}
	return curves
}

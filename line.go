package dxfpath

// Line represents a line segment in 3D space.
type Line struct {
	// The line's start point.
	P0 Vec3
	// The line's end point.
	P1 Vec3
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Magnitude()
}

func (l Line) Eval(t float64) Vec3 {
	return l.P0.Lerp(l.P1, t)
}

func (l Line) Start() Vec3 { return l.P0 }
func (l Line) End() Vec3   { return l.P1 }

// Reverse returns the line with its points swapped.
func (l Line) Reverse() Line {
	return Line{l.P1, l.P0}
}

// DistanceToPoint returns the distance between pt and the infinite line
// through l. For a degenerate line, it returns the distance between pt and
// the line's start point.
func (l Line) DistanceToPoint(pt Vec3) float64 {
	d := l.P1.Sub(l.P0)
	len2 := d.Magnitude2()
	if len2 == 0 {
		return pt.Distance(l.P0)
	}
	return d.Cross(pt.Sub(l.P0)).Magnitude() / d.Magnitude()
}

// SegmentDistanceToPoint returns the distance between pt and the nearest
// point of the segment.
func (l Line) SegmentDistanceToPoint(pt Vec3) float64 {
	d := l.P1.Sub(l.P0)
	len2 := d.Magnitude2()
	if len2 == 0 {
		return pt.Distance(l.P0)
	}
	t := min(max(pt.Sub(l.P0).Dot(d)/len2, 0), 1)
	return pt.Distance(l.Eval(t))
}

func (l Line) Transform(aff Affine) Line {
	return Line{aff.Transform(l.P0), aff.Transform(l.P1)}
}

func (l Line) IsInf() bool {
	return l.P0.IsInf() || l.P1.IsInf()
}

func (l Line) IsNaN() bool {
	return l.P0.IsNaN() || l.P1.IsNaN()
}

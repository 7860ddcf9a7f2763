package dxfpath

import (
	"iter"
	"math"
)

// ConstructionEllipse is an elliptic arc in 3D space.
//
// The ellipse lies in the plane perpendicular to Extrusion. Its minor axis is
// Extrusion × MajorAxis, scaled to Ratio times the length of the major axis.
// Parameters are in radians and run counter-clockwise around Extrusion from
// StartParam to EndParam.
type ConstructionEllipse struct {
	Center     Vec3
	MajorAxis  Vec3
	Extrusion  Vec3
	Ratio      float64
	StartParam float64
	EndParam   float64
}

// EllipseFromArc returns the ellipse describing a circular arc. The center is
// given in the OCS of extrusion, the angles in degrees, like DXF ARC and
// CIRCLE entities store them.
func EllipseFromArc(center Vec3, radius float64, extrusion Vec3, startDeg, endDeg float64) ConstructionEllipse {
	ocs := NewOCS(extrusion)
	return ConstructionEllipse{
		Center:     ocs.ToWCS(center),
		MajorAxis:  ocs.ToWCS(V(radius, 0, 0)),
		Extrusion:  ocs.Uz,
		Ratio:      1,
		StartParam: startDeg * (math.Pi / 180),
		EndParam:   endDeg * (math.Pi / 180),
	}
}

// MinorAxis returns the minor axis vector.
func (e ConstructionEllipse) MinorAxis() Vec3 {
	return e.extrusion().Cross(e.MajorAxis).Mul(e.Ratio)
}

func (e ConstructionEllipse) extrusion() Vec3 {
	if e.Extrusion.IsNull() {
		return ZAxis
	}
	return e.Extrusion.Normalize()
}

// ParamSpan returns the counter-clockwise parameter distance from StartParam to
// EndParam, in (0, 2π]. Equal parameters describe a full ellipse.
func (e ConstructionEllipse) ParamSpan() float64 {
	span := math.Mod(e.EndParam-e.StartParam, 2*math.Pi)
	if span < 0 {
		span += 2 * math.Pi
	}
	if isClose(span, 0, 1e-12) || isClose(span, 2*math.Pi, 1e-12) {
		return 2 * math.Pi
	}
	return span
}

// Vertex returns the point of the ellipse at param.
func (e ConstructionEllipse) Vertex(param float64) Vec3 {
	sin, cos := math.Sincos(param)
	return e.Center.Add(e.MajorAxis.Mul(cos)).Add(e.MinorAxis().Mul(sin))
}

// Tangent returns the derivative of Vertex at param.
func (e ConstructionEllipse) Tangent(param float64) Vec3 {
	sin, cos := math.Sincos(param)
	return e.MinorAxis().Mul(cos).Sub(e.MajorAxis.Mul(sin))
}

// StartPoint returns the point at StartParam.
func (e ConstructionEllipse) StartPoint() Vec3 { return e.Vertex(e.StartParam) }

// EndPoint returns the point at StartParam+ParamSpan.
func (e ConstructionEllipse) EndPoint() Vec3 { return e.Vertex(e.StartParam + e.ParamSpan()) }

// CubicBeziers approximates the arc by cubic Béziers. A full ellipse uses at
// least segments curves; no curve spans more than a quarter turn.
func (e ConstructionEllipse) CubicBeziers(segments int) iter.Seq[Bezier4P] {
	return func(yield func(Bezier4P) bool) {
		span := e.ParamSpan()
		// segments is specified per full ellipse.
		n := int(math.Ceil(float64(max(segments, 1)) * span / (2 * math.Pi)))
		n = max(n, int(math.Ceil(span/(math.Pi/2)-1e-9)), 1)
		step := span / float64(n)
		armLen := (4.0 / 3.0) * math.Tan(step/4)

		angle0 := e.StartParam
		p0 := e.Vertex(angle0)
		for i := range n {
			angle1 := e.StartParam + float64(i+1)*step
			p3 := e.Vertex(angle1)
			p1 := p0.Add(e.Tangent(angle0).Mul(armLen))
			p2 := p3.Sub(e.Tangent(angle1).Mul(armLen))
			if !yield(Bezier4P{p0, p1, p2, p3}) {
				return
			}
			angle0, p0 = angle1, p3
		}
	}
}

package entity

import (
	"slices"

	"github.com/cadkit/dxfpath"
)

type Point struct {
	Common
	Location dxfpath.Vec3
}

func (*Point) DXFType() string { return "POINT" }

type Line struct {
	Common
	Start, End dxfpath.Vec3
}

func (*Line) DXFType() string { return "LINE" }

func NewLine(attribs Attribs, start, end dxfpath.Vec3) *Line {
	return &Line{Common: Common{Attribs: attribs.withDefaults()}, Start: start, End: end}
}

// Arc is a circular arc. Center is given in the OCS of Extrusion, the angles
// in degrees, counter-clockwise around Extrusion.
type Arc struct {
	Common
	Center     dxfpath.Vec3
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Extrusion  dxfpath.Vec3
}

func (*Arc) DXFType() string { return "ARC" }

// Circle is a full circle. Center is given in the OCS of Extrusion.
type Circle struct {
	Common
	Center    dxfpath.Vec3
	Radius    float64
	Extrusion dxfpath.Vec3
}

func (*Circle) DXFType() string { return "CIRCLE" }

// Ellipse is an elliptic arc in world coordinates, see
// [dxfpath.ConstructionEllipse].
type Ellipse struct {
	Common
	Center     dxfpath.Vec3
	MajorAxis  dxfpath.Vec3
	Extrusion  dxfpath.Vec3
	Ratio      float64
	StartParam float64
	EndParam   float64
}

func (*Ellipse) DXFType() string { return "ELLIPSE" }

func (e *Ellipse) ConstructionTool() dxfpath.ConstructionEllipse {
	return dxfpath.ConstructionEllipse{
		Center:     e.Center,
		MajorAxis:  e.MajorAxis,
		Extrusion:  e.Extrusion,
		Ratio:      e.Ratio,
		StartParam: e.StartParam,
		EndParam:   e.EndParam,
	}
}

// Spline is a B-spline defined either by control points, or only by fit
// points the curve passes through.
type Spline struct {
	Common
	Degree        int
	ControlPoints []dxfpath.Vec3
	Knots         []float64
	Weights       []float64
	FitPoints     []dxfpath.Vec3
}

func (*Spline) DXFType() string { return "SPLINE" }

func NewSpline(attribs Attribs) *Spline {
	return &Spline{Common: Common{Attribs: attribs.withDefaults()}, Degree: 3}
}

// ConstructionTool returns the curve of the spline. Missing knots are
// replaced by a clamped uniform knot vector. A spline with only fit points
// becomes the cubic spline interpolating them.
func (s *Spline) ConstructionTool() (dxfpath.BSpline, error) {
	if len(s.ControlPoints) == 0 && len(s.FitPoints) > 1 {
		return dxfpath.BezierToBSpline(dxfpath.CubicBezierInterpolation(s.FitPoints))
	}
	var bs dxfpath.BSpline
	if len(s.Knots) == 0 {
		bs = dxfpath.NewBSpline(slices.Clone(s.ControlPoints), s.Degree)
	} else {
		bs = dxfpath.BSpline{
			ControlPoints: slices.Clone(s.ControlPoints),
			Degree:        s.Degree,
			Knots:         slices.Clone(s.Knots),
		}
	}
	if len(s.Weights) > 0 {
		bs.Weights = slices.Clone(s.Weights)
	}
	return bs, bs.Validate()
}

// ApplyConstructionTool replaces the curve of the spline by bs.
func (s *Spline) ApplyConstructionTool(bs dxfpath.BSpline) {
	s.Degree = bs.Degree
	s.ControlPoints = slices.Clone(bs.ControlPoints)
	s.Knots = slices.Clone(bs.Knots)
	s.Weights = slices.Clone(bs.Weights)
	s.FitPoints = nil
}

// Helix is a spiral stored as a spline approximation, with the helix
// parameters as additional data.
type Helix struct {
	Spline
	AxisBase   dxfpath.Vec3
	StartPoint dxfpath.Vec3
	AxisVector dxfpath.Vec3
	Radius     float64
	Turns      float64
	TurnHeight float64
	CCW        bool
}

func (*Helix) DXFType() string { return "HELIX" }

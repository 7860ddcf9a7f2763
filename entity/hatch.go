package entity

import (
	"fmt"

	"github.com/cadkit/dxfpath"
)

// Boundary path flags, as stored in DXF group code 92.
const (
	BoundaryDefault   = 0
	BoundaryExternal  = 1
	BoundaryPolyline  = 2
	BoundaryDerived   = 4
	BoundaryTextbox   = 8
	BoundaryOutermost = 16
)

type BoundaryPathKind int

const (
	// A closed polyline of OCS vertices.
	PolylinePathKind BoundaryPathKind = iota + 1
	// A closed loop of line and spline edges.
	EdgePathKind
)

type EdgeKind int

const (
	LineEdgeKind EdgeKind = iota + 1
	SplineEdgeKind
)

// Edge is a line or spline edge of an edge boundary path. Start and End are
// set for lines, the remaining fields for splines.
type Edge struct {
	Kind          EdgeKind
	Start, End    dxfpath.Vec2
	Degree        int
	ControlPoints []dxfpath.Vec2
	Knots         []float64
	Weights       []float64
}

// BoundaryPath is a single boundary loop of a hatch.
type BoundaryPath struct {
	Kind  BoundaryPathKind
	Flags int
	// Vertices of a polyline path.
	Vertices []dxfpath.Vec2
	Closed   bool
	// Edges of an edge path.
	Edges []Edge
}

// IsExternal reports whether the boundary is an outer boundary.
func (bp *BoundaryPath) IsExternal() bool { return bp.Flags&BoundaryExternal != 0 }

// AddLine appends a line edge to an edge path.
func (bp *BoundaryPath) AddLine(start, end dxfpath.Vec2) {
	bp.mustBeEdgePath()
	bp.Edges = append(bp.Edges, Edge{Kind: LineEdgeKind, Start: start, End: end})
}

// AddSpline appends a spline edge to an edge path.
func (bp *BoundaryPath) AddSpline(controlPoints []dxfpath.Vec2, degree int, knots, weights []float64) {
	bp.mustBeEdgePath()
	bp.Edges = append(bp.Edges, Edge{
		Kind:          SplineEdgeKind,
		Degree:        degree,
		ControlPoints: controlPoints,
		Knots:         knots,
		Weights:       weights,
	})
}

func (bp *BoundaryPath) mustBeEdgePath() {
	if bp.Kind != EdgePathKind {
		panic(fmt.Sprintf("can't add edges to boundary path of kind %d", bp.Kind))
	}
}

// Hatch is a filled area. Boundary vertices are OCS coordinates of
// Extrusion, placed at Elevation.
type Hatch struct {
	Common
	SolidFill   bool
	PatternName string
	Elevation   float64
	Extrusion   dxfpath.Vec3
	Paths       []*BoundaryPath
}

func (*Hatch) DXFType() string { return "HATCH" }

func NewHatch(attribs Attribs) *Hatch {
	return &Hatch{Common: Common{Attribs: attribs.withDefaults()}, Extrusion: dxfpath.ZAxis}
}

// AddPolylinePath appends a closed polyline boundary path.
func (h *Hatch) AddPolylinePath(vertices []dxfpath.Vec2, flags int) *BoundaryPath {
	bp := &BoundaryPath{Kind: PolylinePathKind, Flags: flags | BoundaryPolyline, Vertices: vertices, Closed: true}
	h.Paths = append(h.Paths, bp)
	return bp
}

// AddEdgePath appends an empty edge boundary path, to be filled with
// [BoundaryPath.AddLine] and [BoundaryPath.AddSpline].
func (h *Hatch) AddEdgePath(flags int) *BoundaryPath {
	bp := &BoundaryPath{Kind: EdgePathKind, Flags: flags}
	h.Paths = append(h.Paths, bp)
	return bp
}

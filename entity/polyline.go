package entity

import (
	"github.com/cadkit/dxfpath"
)

// LWPolyline is a lightweight 2D polyline. Points are OCS coordinates of
// Extrusion, placed at Elevation.
type LWPolyline struct {
	Common
	Points    []dxfpath.BulgeVertex
	Closed    bool
	Elevation float64
	Extrusion dxfpath.Vec3
}

func (*LWPolyline) DXFType() string { return "LWPOLYLINE" }

func NewLWPolyline(attribs Attribs) *LWPolyline {
	return &LWPolyline{Common: Common{Attribs: attribs.withDefaults()}, Extrusion: dxfpath.ZAxis}
}

// AppendPoints appends straight segments to the given points. The z
// coordinates are ignored.
func (p *LWPolyline) AppendPoints(points ...dxfpath.Vec3) {
	for _, pt := range points {
		p.Points = append(p.Points, dxfpath.BulgeVertex{X: pt.X, Y: pt.Y})
	}
}

// OCS returns the coordinate system of the polyline's points.
func (p *LWPolyline) OCS() dxfpath.OCS { return dxfpath.NewOCS(p.Extrusion) }

// Polyline flags, as stored in DXF group code 70.
const (
	PolylineClosed       = 1
	PolylineCurveFit     = 2
	PolylineSplineFit    = 4
	Polyline3D           = 8
	PolylinePolygonMesh  = 16
	PolylineMeshClosedN  = 32
	PolylinePolyfaceMesh = 64
)

type Vertex struct {
	Location dxfpath.Vec3
	Bulge    float64
}

// Polyline is a 2D or 3D polyline, or a mesh, depending on Flags. The
// vertices of 2D polylines are OCS coordinates of Extrusion, all others are
// world coordinates.
type Polyline struct {
	Common
	Flags    int
	Vertices []Vertex
	// Elevation of a 2D polyline. If nil, the z coordinate of the first
	// vertex is used.
	Elevation *float64
	Extrusion dxfpath.Vec3
}

func (*Polyline) DXFType() string { return "POLYLINE" }

func NewPolyline(attribs Attribs, flags int) *Polyline {
	return &Polyline{Common: Common{Attribs: attribs.withDefaults()}, Flags: flags, Extrusion: dxfpath.ZAxis}
}

func (p *Polyline) Is3D() bool           { return p.Flags&Polyline3D != 0 }
func (p *Polyline) IsPolygonMesh() bool  { return p.Flags&PolylinePolygonMesh != 0 }
func (p *Polyline) IsPolyfaceMesh() bool { return p.Flags&PolylinePolyfaceMesh != 0 }
func (p *Polyline) IsClosed() bool       { return p.Flags&PolylineClosed != 0 }

// Is2D reports whether p is a 2D polyline, possibly with bulges.
func (p *Polyline) Is2D() bool {
	return p.Flags&(Polyline3D|PolylinePolygonMesh|PolylinePolyfaceMesh) == 0
}

// OCS returns the coordinate system of the vertices of a 2D polyline.
func (p *Polyline) OCS() dxfpath.OCS {
	if !p.Is2D() {
		return dxfpath.OCS{}
	}
	return dxfpath.NewOCS(p.Extrusion)
}

// AppendVertices appends straight segments to the given points.
func (p *Polyline) AppendVertices(points ...dxfpath.Vec3) {
	for _, pt := range points {
		p.Vertices = append(p.Vertices, Vertex{Location: pt})
	}
}

// Points returns the locations of all vertices.
func (p *Polyline) Points() []dxfpath.Vec3 {
	out := make([]dxfpath.Vec3, len(p.Vertices))
	for i, v := range p.Vertices {
		out[i] = v.Location
	}
	return out
}

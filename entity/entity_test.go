package entity

import (
	"math"
	"testing"

	"github.com/cadkit/dxfpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentHandles(t *testing.T) {
	doc := NewDocument()
	l := NewLine(Attribs{}, dxfpath.Pt(0, 0), dxfpath.Pt(1, 0))
	c := &Circle{Radius: 1}

	assert.Equal(t, "1", doc.Add(l))
	assert.Equal(t, "2", doc.Add(c))
	assert.Equal(t, 2, doc.Len())
	assert.Same(t, doc, l.Doc)

	e, ok := doc.Get("2")
	require.True(t, ok)
	assert.Same(t, c, e)

	_, ok = doc.Get("3")
	assert.False(t, ok)

	var handles []string
	for h := range doc.Entities() {
		handles = append(handles, h)
	}
	assert.Equal(t, []string{"1", "2"}, handles)
}

func TestDocumentHexHandles(t *testing.T) {
	doc := NewDocument()
	var last string
	for range 10 {
		last = doc.Add(&Point{})
	}
	assert.Equal(t, "A", last)
	_, ok := doc.Get("a")
	assert.True(t, ok)
}

func TestNilDocument(t *testing.T) {
	var doc *Document
	_, ok := doc.Get("1")
	assert.False(t, ok)
}

func TestAttribDefaults(t *testing.T) {
	l := NewLine(Attribs{}, dxfpath.Vec3{}, dxfpath.Vec3{})
	assert.Equal(t, Attribs{Layer: "0", Color: ACI(ColorByLayer)}, l.Attribs)

	h := NewHatch(Attribs{Layer: "fill", Color: ACI(1)})
	assert.Equal(t, Attribs{Layer: "fill", Color: ACI(1)}, h.Attribs)
	assert.Equal(t, dxfpath.ZAxis, h.Extrusion)
}

func TestAttribColorOverride(t *testing.T) {
	color := ACI(ColorByBlock)
	l := NewLine(Attribs{Color: color}, dxfpath.Vec3{}, dxfpath.Vec3{})
	assert.Equal(t, ColorByBlock, l.ColorIndex())

	// Entities don't share the caller's color.
	*color = 3
	assert.Equal(t, ColorByBlock, l.ColorIndex())
	assert.Equal(t, ColorByLayer, Attribs{}.ColorIndex())
}

func TestDXFTypes(t *testing.T) {
	tests := []struct {
		e    Entity
		want string
	}{
		{&Point{}, "POINT"},
		{&Line{}, "LINE"},
		{&Arc{}, "ARC"},
		{&Circle{}, "CIRCLE"},
		{&Ellipse{}, "ELLIPSE"},
		{&Spline{}, "SPLINE"},
		{&Helix{}, "HELIX"},
		{&LWPolyline{}, "LWPOLYLINE"},
		{&Polyline{}, "POLYLINE"},
		{&Solid{}, "SOLID"},
		{&Trace{}, "TRACE"},
		{&Face3D{}, "3DFACE"},
		{&Viewport{}, "VIEWPORT"},
		{&Image{}, "IMAGE"},
		{&Wipeout{}, "WIPEOUT"},
		{&Hatch{}, "HATCH"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.e.DXFType())
		assert.NotNil(t, CommonOf(tt.e))
	}
}

func TestPolylineFlags(t *testing.T) {
	p := NewPolyline(Attribs{}, PolylineClosed)
	assert.True(t, p.Is2D())
	assert.True(t, p.IsClosed())
	assert.False(t, p.Is3D())

	p = NewPolyline(Attribs{}, Polyline3D)
	assert.False(t, p.Is2D())
	assert.True(t, p.Is3D())
	assert.True(t, p.OCS().IsDefault())

	p = NewPolyline(Attribs{}, PolylinePolyfaceMesh)
	assert.False(t, p.Is2D())
	assert.True(t, p.IsPolyfaceMesh())

	p = NewPolyline(Attribs{}, 0)
	p.AppendVertices(dxfpath.Pt(0, 0), dxfpath.Pt(1, 2))
	assert.Equal(t, []dxfpath.Vec3{dxfpath.Pt(0, 0), dxfpath.Pt(1, 2)}, p.Points())
}

func TestLWPolylineAppendPoints(t *testing.T) {
	p := NewLWPolyline(Attribs{})
	p.AppendPoints(dxfpath.V(1, 2, 3), dxfpath.V(4, 5, 6))
	assert.Equal(t, []dxfpath.BulgeVertex{{X: 1, Y: 2}, {X: 4, Y: 5}}, p.Points)
	assert.True(t, p.OCS().IsDefault())
}

func TestQuadrilateralOrder(t *testing.T) {
	s := &Solid{Quadrilateral: Quadrilateral{
		Vertices: [4]dxfpath.Vec3{
			dxfpath.Pt(0, 0), dxfpath.Pt(1, 0), dxfpath.Pt(0, 1), dxfpath.Pt(1, 1),
		},
	}}
	assert.Equal(t, []dxfpath.Vec3{
		dxfpath.Pt(0, 0), dxfpath.Pt(1, 0), dxfpath.Pt(1, 1), dxfpath.Pt(0, 1),
	}, s.WCSVertices())

	tri := &Trace{Quadrilateral: Quadrilateral{
		Vertices: [4]dxfpath.Vec3{
			dxfpath.Pt(0, 0), dxfpath.Pt(1, 0), dxfpath.Pt(0, 1), dxfpath.Pt(0, 1),
		},
	}}
	assert.Equal(t, []dxfpath.Vec3{
		dxfpath.Pt(0, 0), dxfpath.Pt(1, 0), dxfpath.Pt(0, 1),
	}, tri.WCSVertices())
}

func TestQuadrilateralOCS(t *testing.T) {
	s := &Solid{Quadrilateral: Quadrilateral{
		Vertices:  [4]dxfpath.Vec3{dxfpath.Pt(1, 0), dxfpath.Pt(2, 0), dxfpath.Pt(1, 1), dxfpath.Pt(2, 1)},
		Extrusion: dxfpath.V(0, 0, -1),
	}}
	// The OCS of -Z mirrors the x axis.
	for i, v := range s.WCSVertices() {
		assert.LessOrEqual(t, v.X, -1.0+1e-9, "vertex %d", i)
	}
}

func TestFace3D(t *testing.T) {
	f := &Face3D{Vertices: [4]dxfpath.Vec3{
		dxfpath.V(0, 0, 0), dxfpath.V(1, 0, 1), dxfpath.V(1, 1, 1), dxfpath.V(1, 1, 1),
	}}
	assert.Len(t, f.WCSVertices(), 3)
}

func TestViewport(t *testing.T) {
	vp := &Viewport{Center: dxfpath.Pt(5, 5), Width: 4, Height: 2}
	assert.False(t, vp.HasClippingPath())
	assert.Equal(t, []dxfpath.Vec3{
		dxfpath.Pt(3, 4), dxfpath.Pt(7, 4), dxfpath.Pt(7, 6), dxfpath.Pt(3, 6),
	}, vp.BoundaryPath())

	vp.NonRectangularClipping = true
	vp.ClippingBoundaryHandle = "0"
	assert.False(t, vp.HasClippingPath())
	vp.ClippingBoundaryHandle = "2A"
	assert.True(t, vp.HasClippingPath())
}

func TestRasterBoundaryDefault(t *testing.T) {
	img := &Image{RasterBoundary: RasterBoundary{
		U:         dxfpath.V(1, 0, 0),
		V:         dxfpath.V(0, 1, 0),
		ImageSize: dxfpath.V2(10, 10),
	}}
	got := img.BoundaryPathWCS()
	require.Len(t, got, 5)
	assert.Equal(t, got[0], got[4])
	box := dxfpath.NewBoxFromPoints(got...)
	assert.InDelta(t, 0, box.Min.X, 1e-12)
	assert.InDelta(t, 0, box.Min.Y, 1e-12)
	assert.InDelta(t, 10, box.Max.X, 1e-12)
	assert.InDelta(t, 10, box.Max.Y, 1e-12)
}

func TestRasterBoundaryRectangle(t *testing.T) {
	w := &Wipeout{RasterBoundary: RasterBoundary{
		Insert:    dxfpath.Pt(100, 0),
		U:         dxfpath.V(2, 0, 0),
		V:         dxfpath.V(0, 2, 0),
		ImageSize: dxfpath.V2(4, 4),
		Boundary:  []dxfpath.Vec2{dxfpath.V2(-0.5, -0.5), dxfpath.V2(1.5, 1.5)},
	}}
	got := w.BoundaryPathWCS()
	require.Len(t, got, 5)
	box := dxfpath.NewBoxFromPoints(got...)
	assert.InDelta(t, 100, box.Min.X, 1e-12)
	assert.InDelta(t, 104, box.Max.X, 1e-12)
	// The upper half of the image, since pixel rows count downwards.
	assert.InDelta(t, 4, box.Min.Y, 1e-12)
	assert.InDelta(t, 8, box.Max.Y, 1e-12)
}

func TestSplineConstructionTool(t *testing.T) {
	s := NewSpline(Attribs{})
	s.ControlPoints = []dxfpath.Vec3{dxfpath.Pt(0, 0), dxfpath.Pt(1, 1), dxfpath.Pt(2, -1), dxfpath.Pt(3, 0)}
	bs, err := s.ConstructionTool()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0, 1, 1, 1, 1}, bs.Knots)

	// The tool is a copy.
	bs.ControlPoints[0] = dxfpath.Pt(-1, -1)
	assert.Equal(t, dxfpath.Pt(0, 0), s.ControlPoints[0])

	bs.Degree = 2
	bs.Knots = []float64{0, 0, 0, 0.5, 1, 1, 1}
	s.FitPoints = []dxfpath.Vec3{dxfpath.Pt(5, 5)}
	s.ApplyConstructionTool(bs)
	assert.Equal(t, 2, s.Degree)
	assert.Nil(t, s.FitPoints)
	assert.Equal(t, dxfpath.Pt(-1, -1), s.ControlPoints[0])
}

func TestSplineConstructionToolInvalid(t *testing.T) {
	s := NewSpline(Attribs{})
	s.ControlPoints = []dxfpath.Vec3{dxfpath.Pt(0, 0), dxfpath.Pt(1, 1), dxfpath.Pt(2, -1), dxfpath.Pt(3, 0)}
	s.Knots = []float64{0, 1}
	_, err := s.ConstructionTool()
	assert.ErrorIs(t, err, dxfpath.ErrInvalidArgument)
}

func TestSplineFitPoints(t *testing.T) {
	s := NewSpline(Attribs{})
	s.FitPoints = []dxfpath.Vec3{dxfpath.Pt(0, 0), dxfpath.Pt(1, 1), dxfpath.Pt(2, 0)}
	bs, err := s.ConstructionTool()
	require.NoError(t, err)
	assert.Equal(t, 3, bs.Degree)
	lo, hi := bs.Domain()
	for _, fp := range s.FitPoints {
		found := false
		for i := 0; i <= 20; i++ {
			u := lo + (hi-lo)*float64(i)/20
			if bs.Eval(u).Distance(fp) < 1e-9 {
				found = true
			}
		}
		assert.True(t, found, "fit point %v not on curve", fp)
	}
}

func TestHatchPaths(t *testing.T) {
	h := NewHatch(Attribs{})
	outer := h.AddPolylinePath([]dxfpath.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, BoundaryExternal)
	assert.True(t, outer.IsExternal())
	assert.True(t, outer.Closed)
	assert.Equal(t, BoundaryExternal|BoundaryPolyline, outer.Flags)

	hole := h.AddEdgePath(BoundaryDefault)
	hole.AddLine(dxfpath.V2(0, 0), dxfpath.V2(1, 0))
	hole.AddSpline([]dxfpath.Vec2{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}}, 3, []float64{0, 0, 0, 0, 1, 1, 1, 1}, nil)
	assert.False(t, hole.IsExternal())
	require.Len(t, hole.Edges, 2)
	assert.Equal(t, LineEdgeKind, hole.Edges[0].Kind)
	assert.Equal(t, SplineEdgeKind, hole.Edges[1].Kind)

	assert.Len(t, h.Paths, 2)
	assert.Panics(t, func() { outer.AddLine(dxfpath.V2(0, 0), dxfpath.V2(1, 1)) })
}

func TestHelixIsSpline(t *testing.T) {
	h := &Helix{Spline: *NewSpline(Attribs{}), Radius: 1, Turns: 2}
	h.ControlPoints = []dxfpath.Vec3{dxfpath.V(1, 0, 0), dxfpath.V(1, 1, 0.25), dxfpath.V(-1, 1, 0.5), dxfpath.V(-1, 0, 0.75)}
	bs, err := h.ConstructionTool()
	require.NoError(t, err)
	assert.InDelta(t, 0.75, bs.Eval(1).Z, 1e-12)
	assert.False(t, math.IsNaN(bs.Eval(0.5).X))
}

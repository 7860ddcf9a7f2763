// Package convert turns drawing entities into paths, and paths back into
// drawing entities.
package convert

import (
	"fmt"
	"math"

	"github.com/cadkit/dxfpath"
	"github.com/cadkit/dxfpath/entity"
	"github.com/pkg/errors"
)

type makeConfig struct {
	segments int
	level    int
}

// MakeOption configures [MakePath].
type MakeOption func(*makeConfig)

// Segments sets the minimum count of Bézier curves used to approximate a
// full ellipse or circle. The default is 1; every curve spans at most a
// quarter turn regardless.
func Segments(n int) MakeOption {
	return func(c *makeConfig) { c.segments = max(n, 1) }
}

// Level sets the subdivision level for splines that can't be decomposed into
// Bézier curves exactly, see [dxfpath.BSpline.CubicBezierApproximation]. The
// default is 4.
func Level(n int) MakeOption {
	return func(c *makeConfig) { c.level = max(n, 1) }
}

type factory func(e entity.Entity, cfg makeConfig) (*dxfpath.Path, error)

var factories map[string]factory

func init() {
	factories = map[string]factory{
		"ARC":        fromArc,
		"CIRCLE":     fromCircle,
		"ELLIPSE":    fromEllipse,
		"LINE":       fromLine,
		"LWPOLYLINE": fromLWPolyline,
		"POLYLINE":   fromPolyline,
		"SPLINE":     fromSpline,
		"HELIX":      fromSpline,
		"SOLID":      fromQuadrilateral,
		"TRACE":      fromQuadrilateral,
		"3DFACE":     fromQuadrilateral,
		"VIEWPORT":   fromViewport,
		"IMAGE":      fromRaster,
		"WIPEOUT":    fromRaster,
	}
}

// HasPathSupport reports whether [MakePath] can convert e. Polygon and
// polyface meshes aren't supported.
func HasPathSupport(e entity.Entity) bool {
	if pl, ok := e.(*entity.Polyline); ok {
		return pl.Is2D() || pl.Is3D()
	}
	_, ok := factories[e.DXFType()]
	return ok
}

// MakePath returns the path describing the geometry of e. It returns an error
// matching [dxfpath.ErrUnsupportedType] for entity types without a
// conversion.
//
// Arcs and circles with a radius of zero produce an empty path, as do
// polylines without vertices.
func MakePath(e entity.Entity, opts ...MakeOption) (*dxfpath.Path, error) {
	cfg := makeConfig{segments: 1, level: 4}
	for _, opt := range opts {
		opt(&cfg)
	}
	return makePath(e, cfg)
}

func makePath(e entity.Entity, cfg makeConfig) (*dxfpath.Path, error) {
	fn, ok := factories[e.DXFType()]
	if !ok {
		return nil, errors.Wrapf(dxfpath.ErrUnsupportedType, "%s", e.DXFType())
	}
	return fn(e, cfg)
}

func fromLine(e entity.Entity, _ makeConfig) (*dxfpath.Path, error) {
	l := e.(*entity.Line)
	p := dxfpath.NewPath(l.Start)
	p.LineTo(l.End)
	return p, nil
}

func fromArc(e entity.Entity, cfg makeConfig) (*dxfpath.Path, error) {
	a := e.(*entity.Arc)
	return circularPath(a.Center, a.Radius, a.Extrusion, a.StartAngle, a.EndAngle, cfg), nil
}

func fromCircle(e entity.Entity, cfg makeConfig) (*dxfpath.Path, error) {
	c := e.(*entity.Circle)
	return circularPath(c.Center, c.Radius, c.Extrusion, 0, 360, cfg), nil
}

func circularPath(center dxfpath.Vec3, radius float64, extrusion dxfpath.Vec3, startDeg, endDeg float64, cfg makeConfig) *dxfpath.Path {
	p := &dxfpath.Path{}
	radius = math.Abs(radius)
	if radius <= dxfpath.AbsTol {
		return p
	}
	p.AddEllipse(dxfpath.EllipseFromArc(center, radius, extrusion, startDeg, endDeg), cfg.segments, true)
	return p
}

func fromEllipse(e entity.Entity, cfg makeConfig) (*dxfpath.Path, error) {
	el := e.(*entity.Ellipse)
	p := &dxfpath.Path{}
	p.AddEllipse(el.ConstructionTool(), cfg.segments, true)
	return p, nil
}

func fromSpline(e entity.Entity, cfg makeConfig) (*dxfpath.Path, error) {
	var s *entity.Spline
	switch e := e.(type) {
	case *entity.Spline:
		s = e
	case *entity.Helix:
		s = &e.Spline
	default:
		panic(fmt.Sprintf("unexpected spline entity %T", e))
	}
	bs, err := s.ConstructionTool()
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", e.DXFType(), s.Handle)
	}
	p := &dxfpath.Path{}
	p.AddSpline(bs, cfg.level, true)
	return p, nil
}

func fromLWPolyline(e entity.Entity, _ makeConfig) (*dxfpath.Path, error) {
	pl := e.(*entity.LWPolyline)
	p := &dxfpath.Path{}
	p.Add2DPolyline(pl.Points, pl.Closed, pl.OCS(), pl.Elevation)
	return p, nil
}

func fromPolyline(e entity.Entity, _ makeConfig) (*dxfpath.Path, error) {
	pl := e.(*entity.Polyline)
	if pl.IsPolygonMesh() || pl.IsPolyfaceMesh() || len(pl.Vertices) == 0 {
		return &dxfpath.Path{}, nil
	}
	if pl.Is3D() {
		return dxfpath.FromVertices(pl.Points(), pl.IsClosed()), nil
	}
	elevation := pl.Vertices[0].Location.Z
	if pl.Elevation != nil {
		elevation = *pl.Elevation
	}
	vertices := make([]dxfpath.BulgeVertex, len(pl.Vertices))
	for i, v := range pl.Vertices {
		vertices[i] = dxfpath.BulgeVertex{X: v.Location.X, Y: v.Location.Y, Bulge: v.Bulge}
	}
	p := &dxfpath.Path{}
	p.Add2DPolyline(vertices, pl.IsClosed(), pl.OCS(), elevation)
	return p, nil
}

func fromQuadrilateral(e entity.Entity, _ makeConfig) (*dxfpath.Path, error) {
	var vertices []dxfpath.Vec3
	switch e := e.(type) {
	case *entity.Solid:
		vertices = e.WCSVertices()
	case *entity.Trace:
		vertices = e.WCSVertices()
	case *entity.Face3D:
		vertices = e.WCSVertices()
	default:
		panic(fmt.Sprintf("unexpected quadrilateral entity %T", e))
	}
	return dxfpath.FromVertices(vertices, true), nil
}

func fromViewport(e entity.Entity, cfg makeConfig) (*dxfpath.Path, error) {
	vp := e.(*entity.Viewport)
	if vp.HasClippingPath() {
		clip, ok := vp.Doc.Get(vp.ClippingBoundaryHandle)
		if _, isViewport := clip.(*entity.Viewport); ok && !isViewport {
			return makePath(clip, cfg)
		}
		// Viewports can't clip viewports; following the reference could
		// cycle.
		if ok {
			dxfpath.Logger().V(1).Info("ignoring viewport clipping boundary",
				"handle", vp.Handle, "boundary", vp.ClippingBoundaryHandle)
		}
	}
	return dxfpath.FromVertices(vp.BoundaryPath(), true), nil
}

func fromRaster(e entity.Entity, _ makeConfig) (*dxfpath.Path, error) {
	var vertices []dxfpath.Vec3
	switch e := e.(type) {
	case *entity.Image:
		vertices = e.BoundaryPathWCS()
	case *entity.Wipeout:
		vertices = e.BoundaryPathWCS()
	default:
		panic(fmt.Sprintf("unexpected raster entity %T", e))
	}
	return dxfpath.FromVertices(vertices, true), nil
}

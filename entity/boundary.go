package entity

import (
	"github.com/cadkit/dxfpath"
)

// Quadrilateral is the geometry shared by SOLID and TRACE: four OCS
// vertices in the "zig-zag" order of the DXF format, so the outline runs
// 0, 1, 3, 2. A triangle repeats its third vertex.
type Quadrilateral struct {
	Vertices  [4]dxfpath.Vec3
	Extrusion dxfpath.Vec3
}

// WCSVertices returns the outline in world coordinates.
func (q *Quadrilateral) WCSVertices() []dxfpath.Vec3 {
	ocs := dxfpath.NewOCS(q.Extrusion)
	order := [4]int{0, 1, 3, 2}
	out := make([]dxfpath.Vec3, 0, 4)
	for _, i := range order {
		out = append(out, ocs.ToWCS(q.Vertices[i]))
	}
	return dropRepeatedLast(out)
}

func dropRepeatedLast(vs []dxfpath.Vec3) []dxfpath.Vec3 {
	if n := len(vs); n > 1 && vs[n-1].IsClose(vs[n-2], dxfpath.AbsTol) {
		return vs[:n-1]
	}
	return vs
}

type Solid struct {
	Common
	Quadrilateral
}

func (*Solid) DXFType() string { return "SOLID" }

type Trace struct {
	Common
	Quadrilateral
}

func (*Trace) DXFType() string { return "TRACE" }

// Face3D is a 3D face with world coordinate vertices in outline order.
type Face3D struct {
	Common
	Vertices [4]dxfpath.Vec3
}

func (*Face3D) DXFType() string { return "3DFACE" }

func (f *Face3D) WCSVertices() []dxfpath.Vec3 {
	return dropRepeatedLast([]dxfpath.Vec3{f.Vertices[0], f.Vertices[1], f.Vertices[2], f.Vertices[3]})
}

// Viewport is a paper space view of model space. Its clipping boundary is
// either the rectangle around Center, or a separate entity referenced by
// ClippingBoundaryHandle.
type Viewport struct {
	Common
	Center                 dxfpath.Vec3
	Width, Height          float64
	NonRectangularClipping bool
	ClippingBoundaryHandle string
}

func (*Viewport) DXFType() string { return "VIEWPORT" }

// HasClippingPath reports whether the viewport is clipped by another entity.
func (vp *Viewport) HasClippingPath() bool {
	return vp.NonRectangularClipping && vp.ClippingBoundaryHandle != "" && vp.ClippingBoundaryHandle != "0"
}

// BoundaryPath returns the corners of the rectangular viewport boundary in
// counter-clockwise order, starting at the lower left.
func (vp *Viewport) BoundaryPath() []dxfpath.Vec3 {
	box := dxfpath.NewBoxFromPoints(
		vp.Center.Sub(dxfpath.V(vp.Width/2, vp.Height/2, 0)),
		vp.Center.Add(dxfpath.V(vp.Width/2, vp.Height/2, 0)),
	)
	corners := box.Corners2D()
	return corners[:]
}

// RasterBoundary is the geometry shared by IMAGE and WIPEOUT: a raster of
// ImageSize pixels placed at Insert, with U and V the world vectors of one
// pixel along the image axes.
type RasterBoundary struct {
	Insert    dxfpath.Vec3
	U, V      dxfpath.Vec3
	ImageSize dxfpath.Vec2
	// Boundary is the clipping boundary in pixel coordinates, with the
	// origin at the upper left corner of the image. Two vertices describe a
	// rectangle by opposite corners; no vertices mean the whole image.
	Boundary []dxfpath.Vec2
}

func (r *RasterBoundary) pixelBoundary() []dxfpath.Vec2 {
	switch len(r.Boundary) {
	case 0:
		return rectangle(dxfpath.V2(-0.5, -0.5), dxfpath.V2(r.ImageSize.X-0.5, r.ImageSize.Y-0.5))
	case 2:
		return rectangle(r.Boundary[0], r.Boundary[1])
	default:
		return r.Boundary
	}
}

func rectangle(p0, p1 dxfpath.Vec2) []dxfpath.Vec2 {
	return []dxfpath.Vec2{p0, {X: p1.X, Y: p0.Y}, p1, {X: p0.X, Y: p1.Y}}
}

// BoundaryPathWCS returns the clipping boundary in world coordinates, as a
// closed list of vertices.
func (r *RasterBoundary) BoundaryPathWCS() []dxfpath.Vec3 {
	origin := r.Insert.Add(r.U.Mul(0.5)).Sub(r.V.Mul(0.5))
	height := r.ImageSize.Y
	pixels := r.pixelBoundary()
	out := make([]dxfpath.Vec3, 0, len(pixels)+1)
	for _, p := range pixels {
		out = append(out, origin.Add(r.U.Mul(p.X)).Add(r.V.Mul(height-p.Y)))
	}
	if len(out) > 0 && !out[0].IsClose(out[len(out)-1], dxfpath.AbsTol) {
		out = append(out, out[0])
	}
	return out
}

type Image struct {
	Common
	RasterBoundary
}

func (*Image) DXFType() string { return "IMAGE" }

type Wipeout struct {
	Common
	RasterBoundary
}

func (*Wipeout) DXFType() string { return "WIPEOUT" }

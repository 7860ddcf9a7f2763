package dxfpath_test

import (
	"fmt"

	"github.com/cadkit/dxfpath"
)

func ExampleGroup() {
	outer := dxfpath.FromVertices([]dxfpath.Vec3{
		dxfpath.Pt(0, 0), dxfpath.Pt(10, 0), dxfpath.Pt(10, 10), dxfpath.Pt(0, 10),
	}, true)
	// The hole has the same winding as its exterior; Group fixes that.
	hole := dxfpath.FromVertices([]dxfpath.Vec3{
		dxfpath.Pt(2, 2), dxfpath.Pt(8, 2), dxfpath.Pt(8, 8), dxfpath.Pt(2, 8),
	}, true)

	for _, group := range dxfpath.Group([]*dxfpath.Path{hole, outer}) {
		for _, p := range group {
			w, _ := dxfpath.Orientation(p)
			fmt.Println(w, dxfpath.SVG([]*dxfpath.Path{p}, dxfpath.SVGOptions{}))
		}
	}

	// Output:
	// CounterClockwise M0,0 L10,0 L10,10 L0,10 L0,0 Z
	// Clockwise M2,2 L2,8 L8,8 L8,2 L2,2 Z
}

func ExampleSegment() {
	p := dxfpath.NewPath(dxfpath.Pt(0, 0))
	p.LineTo(dxfpath.Pt(1, 0))
	p.LineTo(dxfpath.Pt(2, 0))
	p.Curve4To(dxfpath.Pt(4, 2), dxfpath.Pt(3, 0), dxfpath.Pt(4, 1))

	for f := range dxfpath.Segment(p, dxfpath.DefaultG1Tol) {
		switch f.Kind {
		case dxfpath.PolylineFragment:
			fmt.Println(f.Kind, f.Vertices)
		case dxfpath.SplineFragment:
			fmt.Println(f.Kind, f.Spline.ControlPoints, f.Spline.Knots)
		}
	}

	// Output:
	// PolylineFragment [(0, 0, 0) (1, 0, 0) (2, 0, 0)]
	// SplineFragment [(2, 0, 0) (3, 0, 0) (4, 1, 0) (4, 2, 0)] [0 0 0 0 1 1 1 1]
}

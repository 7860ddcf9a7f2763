package dxfpath

import (
	"cmp"
	"math"
	"slices"

	"github.com/pkg/errors"
)

// Winding is the traversal direction of a closed path, seen from +Z.
type Winding int

const (
	Clockwise Winding = iota + 1
	CounterClockwise
)

func (w Winding) String() string {
	switch w {
	case Clockwise:
		return "Clockwise"
	case CounterClockwise:
		return "CounterClockwise"
	default:
		return "InvalidWinding"
	}
}

// SignedArea2D returns the signed area of the polygon described by vertices,
// projected onto the xy plane. The polygon is implicitly closed. The area is
// positive for counter-clockwise polygons.
func SignedArea2D(vertices []Vec3) float64 {
	if len(vertices) < 3 {
		return 0
	}
	var sum float64
	prev := vertices[len(vertices)-1]
	for _, v := range vertices {
		sum += prev.X*v.Y - v.X*prev.Y
		prev = v
	}
	return sum / 2
}

// polygon is a flattened path, used for orientation and containment tests.
type polygon struct {
	vertices []Vec3
	box      Box
	area     float64
}

func newPolygon(p *Path) (polygon, error) {
	vertices := collectVertices(p)
	poly := polygon{
		vertices: vertices,
		box:      NewBoxFromPoints(vertices...),
		area:     SignedArea2D(vertices),
	}
	if n := countDistinct(vertices); n < 3 {
		return poly, errors.Wrapf(ErrIndeterminateOrientation, "path has %d distinct vertices", n)
	}
	diag := poly.box.Diagonal()
	if math.Abs(poly.area) < 1e-12*max(1, diag*diag) {
		return poly, errors.Wrapf(ErrIndeterminateOrientation, "path encloses no area (%g)", poly.area)
	}
	return poly, nil
}

func collectVertices(p *Path) []Vec3 {
	var vertices []Vec3
	for v := range Flatten(p, DefaultDistance, DefaultSegments) {
		vertices = append(vertices, v)
	}
	return vertices
}

func countDistinct(vertices []Vec3) int {
	var distinct []Vec3
	for _, v := range vertices {
		if !slices.ContainsFunc(distinct, func(o Vec3) bool { return o.IsClose(v, AbsTol) }) {
			distinct = append(distinct, v)
			if len(distinct) >= 3 {
				break
			}
		}
	}
	return len(distinct)
}

func (poly polygon) winding() Winding {
	if poly.area > 0 {
		return CounterClockwise
	}
	return Clockwise
}

// containsPoint reports whether pt lies inside the polygon or on its border,
// using the even-odd rule in the xy plane.
func (poly polygon) containsPoint(pt Vec3) bool {
	if !poly.box.ContainsPoint2D(pt) {
		return false
	}
	inside := false
	n := len(poly.vertices)
	for i := range n {
		a := poly.vertices[i]
		b := poly.vertices[(i+1)%n]
		if (Line{a.ReplaceZ(0), b.ReplaceZ(0)}).SegmentDistanceToPoint(pt.ReplaceZ(0)) <= AbsTol {
			return true
		}
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// strictlyContains reports whether o lies inside poly and encloses less area.
func (poly polygon) strictlyContains(o polygon) bool {
	if math.Abs(o.area) >= math.Abs(poly.area) || !poly.box.ContainsBox2D(o.box) {
		return false
	}
	for _, v := range o.vertices {
		if !poly.containsPoint(v) {
			return false
		}
	}
	return true
}

// Orientation returns the winding of the closed path p, as seen from +Z. The
// path is flattened with the default tolerances for this. It returns an error
// matching [ErrIndeterminateOrientation] if the flattened path has fewer than
// three distinct vertices or encloses no area, which includes
// self-intersecting paths whose parts cancel out.
func Orientation(p *Path) (Winding, error) {
	poly, err := newPolygon(p)
	if err != nil {
		return 0, err
	}
	return poly.winding(), nil
}

// Orient returns p if it already has winding w, and p reversed otherwise.
func Orient(p *Path, w Winding) (*Path, error) {
	got, err := Orientation(p)
	if err != nil {
		return nil, err
	}
	if got == w {
		return p, nil
	}
	return p.Reversed(), nil
}

type loop struct {
	path     *Path
	poly     polygon
	children []*loop
}

func (l *loop) place(o *loop) bool {
	if !l.poly.strictlyContains(o.poly) {
		return false
	}
	for _, child := range l.children {
		if child.place(o) {
			return true
		}
	}
	l.children = append(l.children, o)
	return true
}

// appendTo appends the oriented paths of l and its descendants in depth-first
// order. Loops at even depths are counter-clockwise, at odd depths clockwise.
func (l *loop) appendTo(dst []*Path, depth int) []*Path {
	want := CounterClockwise
	if depth%2 == 1 {
		want = Clockwise
	}
	p := l.path
	if l.poly.winding() != want {
		p = p.Reversed()
	}
	dst = append(dst, p)
	for _, child := range l.children {
		dst = child.appendTo(dst, depth+1)
	}
	return dst
}

// Group partitions closed paths into loop groups by nesting analysis.
//
// Each group starts with an exterior boundary oriented counter-clockwise,
// followed by all paths nested inside it in depth-first order. Holes (odd
// nesting depths) are oriented clockwise, islands inside holes (even depths)
// counter-clockwise again. A path is nested inside the deepest path that
// strictly contains all of its flattened vertices.
//
// Paths whose orientation can't be determined, see [Orientation], are
// dropped from the result; this is logged at verbosity 1. Every other path
// appears in exactly one group. The result only depends on the input order
// for paths with equal areas.
func Group(paths []*Path) [][]*Path {
	if len(paths) == 0 {
		return nil
	}
	loops := make([]*loop, 0, len(paths))
	for i, p := range paths {
		poly, err := newPolygon(p)
		if err != nil {
			Logger().V(1).Info("dropping path from nesting analysis", "index", i, "reason", err.Error())
			continue
		}
		loops = append(loops, &loop{path: p, poly: poly})
	}
	slices.SortStableFunc(loops, func(a, b *loop) int {
		return cmp.Compare(math.Abs(b.poly.area), math.Abs(a.poly.area))
	})

	var roots []*loop
outer:
	for _, l := range loops {
		for _, root := range roots {
			if root.place(l) {
				continue outer
			}
		}
		roots = append(roots, l)
	}

	groups := make([][]*Path, 0, len(roots))
	for _, root := range roots {
		groups = append(groups, root.appendTo(nil, 0))
	}
	return groups
}

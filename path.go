package dxfpath

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

type CommandKind int

const (
	// Draw a line from the current location to End.
	LineToKind CommandKind = iota + 1
	// Draw a quadratic Bézier from the current location to End, using Ctrl1
	// as the control point.
	Curve3ToKind
	// Draw a cubic Bézier from the current location to End, using Ctrl1 and
	// Ctrl2 as the control points.
	Curve4ToKind
)

func (k CommandKind) String() string {
	switch k {
	case LineToKind:
		return "LineTo"
	case Curve3ToKind:
		return "Curve3To"
	case Curve4ToKind:
		return "Curve4To"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// Command is a single drawing command of a [Path]. Its implicit start point is
// the end point of the previous command, or the path's start point for the
// first command. Fields not used by Kind are zero.
type Command struct {
	Kind  CommandKind
	End   Vec3
	Ctrl1 Vec3
	Ctrl2 Vec3
}

func LineTo(end Vec3) Command {
	return Command{Kind: LineToKind, End: end}
}

func Curve3To(end, ctrl Vec3) Command {
	return Command{Kind: Curve3ToKind, End: end, Ctrl1: ctrl}
}

func Curve4To(end, ctrl1, ctrl2 Vec3) Command {
	return Command{Kind: Curve4ToKind, End: end, Ctrl1: ctrl1, Ctrl2: ctrl2}
}

func (cmd Command) String() string {
	switch cmd.Kind {
	case LineToKind:
		return fmt.Sprintf("LineTo(%s)", cmd.End)
	case Curve3ToKind:
		return fmt.Sprintf("Curve3To(%s, %s)", cmd.End, cmd.Ctrl1)
	case Curve4ToKind:
		return fmt.Sprintf("Curve4To(%s, %s, %s)", cmd.End, cmd.Ctrl1, cmd.Ctrl2)
	default:
		return fmt.Sprintf("InvalidCommand(%s, %s, %s)", cmd.End, cmd.Ctrl1, cmd.Ctrl2)
	}
}

func (cmd Command) Transform(aff Affine) Command {
	switch cmd.Kind {
	case LineToKind:
		return LineTo(aff.Transform(cmd.End))
	case Curve3ToKind:
		return Curve3To(aff.Transform(cmd.End), aff.Transform(cmd.Ctrl1))
	case Curve4ToKind:
		return Curve4To(aff.Transform(cmd.End), aff.Transform(cmd.Ctrl1), aff.Transform(cmd.Ctrl2))
	default:
		panic(fmt.Sprintf("invalid command kind %v", cmd.Kind))
	}
}

func (cmd Command) mapPoints(fn func(Vec3) Vec3) Command {
	switch cmd.Kind {
	case LineToKind:
		return LineTo(fn(cmd.End))
	case Curve3ToKind:
		return Curve3To(fn(cmd.End), fn(cmd.Ctrl1))
	case Curve4ToKind:
		return Curve4To(fn(cmd.End), fn(cmd.Ctrl1), fn(cmd.Ctrl2))
	default:
		panic(fmt.Sprintf("invalid command kind %v", cmd.Kind))
	}
}

type PathSegmentKind int

const (
	// A line segment.
	LineKind PathSegmentKind = iota + 1
	// A quadratic Bézier segment.
	QuadKind
	// A cubic Bézier segment.
	CubicKind
)

// PathSegment is a command together with its explicit start point. It acts as
// a tagged union of [Line], [Bezier3P] and [Bezier4P].
type PathSegment struct {
	Kind PathSegmentKind
	P0   Vec3
	P1   Vec3
	P2   Vec3
	P3   Vec3
}

// Line returns the line represented by this segment. This is only valid when
// Kind == LineKind.
func (seg PathSegment) Line() Line { return Line{seg.P0, seg.P1} }

// Quad returns the quadratic Bézier represented by this segment. This is only
// valid when Kind == QuadKind.
func (seg PathSegment) Quad() Bezier3P { return Bezier3P{seg.P0, seg.P1, seg.P2} }

// Cubic converts seg to a cubic Bézier. This is valid for any Kind; a line
// becomes a cubic with its control points at the end points.
func (seg PathSegment) Cubic() Bezier4P {
	switch seg.Kind {
	case LineKind:
		return Bezier4P{seg.P0, seg.P0, seg.P1, seg.P1}
	case QuadKind:
		return seg.Quad().Raise()
	case CubicKind:
		return Bezier4P{seg.P0, seg.P1, seg.P2, seg.P3}
	default:
		panic(fmt.Sprintf("invalid segment kind %v", seg.Kind))
	}
}

func (seg PathSegment) Start() Vec3 { return seg.P0 }

func (seg PathSegment) End() Vec3 {
	switch seg.Kind {
	case LineKind:
		return seg.P1
	case QuadKind:
		return seg.P2
	case CubicKind:
		return seg.P3
	default:
		panic(fmt.Sprintf("invalid segment kind %v", seg.Kind))
	}
}

func segmentOf(start Vec3, cmd Command) PathSegment {
	switch cmd.Kind {
	case LineToKind:
		return PathSegment{Kind: LineKind, P0: start, P1: cmd.End}
	case Curve3ToKind:
		return PathSegment{Kind: QuadKind, P0: start, P1: cmd.Ctrl1, P2: cmd.End}
	case Curve4ToKind:
		return PathSegment{Kind: CubicKind, P0: start, P1: cmd.Ctrl1, P2: cmd.Ctrl2, P3: cmd.End}
	default:
		panic(fmt.Sprintf("invalid command kind %v", cmd.Kind))
	}
}

// Path is a single contiguous contour: a start point followed by line and
// Bézier commands. A path without commands is a single point.
//
// The zero value is an empty path starting at the origin. Paths are built with
// the mutating methods on *Path; operations that derive a new path, such as
// [Path.Reversed] and [Path.Transform], leave the receiver untouched.
type Path struct {
	start    Vec3
	commands []Command
}

// NewPath returns an empty path starting at start.
func NewPath(start Vec3) *Path {
	return &Path{start: start}
}

// FromVertices returns a path of straight lines connecting vertices. If close
// is true and the last vertex doesn't coincide with the first, a closing line
// is appended. Zero vertices produce an empty path at the origin.
func FromVertices(vertices []Vec3, close bool) *Path {
	if len(vertices) == 0 {
		return &Path{}
	}
	p := NewPath(vertices[0])
	for _, v := range vertices[1:] {
		if !v.IsClose(p.End(), AbsTol) {
			p.LineTo(v)
		}
	}
	if close {
		p.Close()
	}
	return p
}

// Start returns the start point.
func (p *Path) Start() Vec3 { return p.start }

// End returns the end point of the last command, or the start point of an
// empty path.
func (p *Path) End() Vec3 {
	if len(p.commands) == 0 {
		return p.start
	}
	return p.commands[len(p.commands)-1].End
}

// Len returns the number of commands.
func (p *Path) Len() int { return len(p.commands) }

// At returns the i'th command.
func (p *Path) At(i int) Command { return p.commands[i] }

// Commands returns an iterator over all commands.
func (p *Path) Commands() iter.Seq[Command] { return slices.Values(p.commands) }

// Segments returns an iterator over all commands, together with their start
// points.
func (p *Path) Segments() iter.Seq[PathSegment] {
	return func(yield func(PathSegment) bool) {
		start := p.start
		for _, cmd := range p.commands {
			if !yield(segmentOf(start, cmd)) {
				return
			}
			start = cmd.End
		}
	}
}

// IsClosed reports whether the path ends where it starts. An empty path is
// not closed.
func (p *Path) IsClosed() bool {
	return len(p.commands) > 0 && p.start.IsClose(p.End(), AbsTol)
}

// HasCurves reports whether the path contains any Bézier commands.
func (p *Path) HasCurves() bool {
	for _, cmd := range p.commands {
		switch cmd.Kind {
		case LineToKind:
		case Curve3ToKind, Curve4ToKind:
			return true
		default:
			panic(fmt.Sprintf("invalid command kind %v", cmd.Kind))
		}
	}
	return false
}

// Push appends cmd.
func (p *Path) Push(cmd Command) {
	p.commands = append(p.commands, cmd)
}

// LineTo appends a line to pt.
func (p *Path) LineTo(pt Vec3) { p.Push(LineTo(pt)) }

// Curve3To appends a quadratic Bézier to end.
func (p *Path) Curve3To(end, ctrl Vec3) { p.Push(Curve3To(end, ctrl)) }

// Curve4To appends a cubic Bézier to end.
func (p *Path) Curve4To(end, ctrl1, ctrl2 Vec3) { p.Push(Curve4To(end, ctrl1, ctrl2)) }

// Close appends a line to the start point, unless the path is already
// closed. Closing an empty path does nothing.
func (p *Path) Close() {
	if len(p.commands) > 0 && !p.IsClosed() {
		p.LineTo(p.start)
	}
}

// Reset removes all commands and moves the start point to start.
func (p *Path) Reset(start Vec3) {
	p.start = start
	p.commands = p.commands[:0]
}

// connectTo prepares appending a curve starting at pt: an empty path starts
// there, otherwise a line bridges any gap when reset is false. With reset,
// the path is emptied and restarted at pt.
func (p *Path) connectTo(pt Vec3, reset bool) {
	switch {
	case reset:
		p.Reset(pt)
	case len(p.commands) == 0:
		p.start = pt
	case !p.End().IsClose(pt, AbsTol):
		p.LineTo(pt)
	}
}

// AddBezier3P appends quadratic Béziers, connecting each one to the current
// end point with a line if necessary.
func (p *Path) AddBezier3P(curves ...Bezier3P) {
	for _, c := range curves {
		p.connectTo(c.P0, false)
		p.Curve3To(c.P2, c.P1)
	}
}

// AddBezier4P appends cubic Béziers, connecting each one to the current end
// point with a line if necessary.
func (p *Path) AddBezier4P(curves ...Bezier4P) {
	for _, c := range curves {
		p.connectTo(c.P0, false)
		p.Curve4To(c.P3, c.P1, c.P2)
	}
}

// AddCurves appends the cubic Béziers of seq, see [Path.AddBezier4P].
func (p *Path) AddCurves(seq iter.Seq[Bezier4P]) {
	for c := range seq {
		p.AddBezier4P(c)
	}
}

// AddEllipse appends the cubic Bézier approximation of e. The approximation
// of a full ellipse uses at least segments curves. If reset is true, the path
// is restarted at the start point of the ellipse.
func (p *Path) AddEllipse(e ConstructionEllipse, segments int, reset bool) {
	first := true
	full := isClose(e.ParamSpan(), 2*math.Pi, 1e-12)
	var start Vec3
	for c := range e.CubicBeziers(segments) {
		if first {
			p.connectTo(c.P0, reset)
			start = c.P0
			first = false
		}
		p.AddBezier4P(c)
	}
	if full && len(p.commands) > 0 && p.End().IsClose(start, 1e-6) {
		// A full ellipse ends exactly where it starts.
		p.commands[len(p.commands)-1].End = start
	}
}

// AddSpline appends the cubic Bézier representation of s. Clamped
// non-rational cubic splines are decomposed exactly; all other splines are
// approximated by interpolating Count*level points of the curve.
func (p *Path) AddSpline(s BSpline, level int, reset bool) {
	curves, ok := s.BezierDecomposition()
	if !ok {
		curves = s.CubicBezierApproximation(level)
	}
	if len(curves) == 0 {
		return
	}
	p.connectTo(curves[0].P0, reset)
	p.AddBezier4P(curves...)
}

// BulgeVertex is a vertex of a 2D polyline. Bulge is the tangent of a quarter
// of the included angle of the arc to the next vertex; it is negative for
// clockwise arcs and zero for a straight segment.
type BulgeVertex struct {
	X, Y  float64
	Bulge float64
}

// Add2DPolyline appends a 2D polyline with optional arc segments. Vertices
// are OCS coordinates of ocs, placed at elevation. If the path is empty, it
// is restarted at the first vertex, otherwise a line connects the current end
// point to it. If close is true, the segment from the last vertex back to the
// first one is added, using the bulge of the last vertex.
func (p *Path) Add2DPolyline(vertices []BulgeVertex, close bool, ocs OCS, elevation float64) {
	if len(vertices) == 0 {
		return
	}
	loc := func(v BulgeVertex) Vec3 { return ocs.ToWCS(V(v.X, v.Y, elevation)) }

	first := loc(vertices[0])
	p.connectTo(first, false)
	prev := vertices[0]
	for _, v := range vertices[1:] {
		p.bulgeTo(loc(prev), loc(v), prev.Bulge, ocs)
		prev = v
	}
	if close && !loc(prev).IsClose(first, AbsTol) {
		p.bulgeTo(loc(prev), first, prev.Bulge, ocs)
	}
}

// bulgeTo appends the segment from start to end, an arc if bulge isn't zero.
func (p *Path) bulgeTo(start, end Vec3, bulge float64, ocs OCS) {
	if start.IsClose(end, AbsTol) {
		return
	}
	if bulge == 0 {
		p.LineTo(end)
		return
	}
	// The arc is constructed in the OCS plane, then mapped back to WCS.
	s := ocs.FromWCS(start)
	e := ocs.FromWCS(end)
	chord := e.Sub(s).ReplaceZ(0)
	length := chord.Magnitude()
	sweep := 4 * math.Atan(bulge)
	left := V(-chord.Y, chord.X, 0).Div(length)
	center := s.Midpoint(e).Add(left.Mul(length / (2 * math.Tan(sweep/2))))
	radius := s.Sub(center).ReplaceZ(0).Magnitude()
	angle0 := math.Atan2(s.Y-center.Y, s.X-center.X)

	n := max(int(math.Ceil(math.Abs(sweep)/(math.Pi/2)-1e-9)), 1)
	step := sweep / float64(n)
	armLen := (4.0 / 3.0) * math.Tan(step/4)
	vertex := func(a float64) Vec3 {
		sin, cos := math.Sincos(a)
		return V(center.X+radius*cos, center.Y+radius*sin, s.Z)
	}
	tangent := func(a float64) Vec3 {
		sin, cos := math.Sincos(a)
		return V(-radius*sin, radius*cos, 0)
	}
	p0 := s
	for i := range n {
		angle1 := angle0 + step
		p3 := vertex(angle1)
		if i == n-1 {
			p3 = e
		}
		p1 := p0.Add(tangent(angle0).Mul(armLen))
		p2 := p3.Sub(tangent(angle1).Mul(armLen))
		if i == n-1 {
			p.Curve4To(end, ocs.ToWCS(p1), ocs.ToWCS(p2))
		} else {
			p.Curve4To(ocs.ToWCS(p3), ocs.ToWCS(p1), ocs.ToWCS(p2))
		}
		angle0, p0 = angle1, p3
	}
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	return &Path{start: p.start, commands: slices.Clone(p.commands)}
}

// Reversed returns the path traversed in the opposite direction.
func (p *Path) Reversed() *Path {
	out := NewPath(p.End())
	for i := len(p.commands) - 1; i >= 0; i-- {
		cmd := p.commands[i]
		end := p.start
		if i > 0 {
			end = p.commands[i-1].End
		}
		switch cmd.Kind {
		case LineToKind:
			out.LineTo(end)
		case Curve3ToKind:
			out.Curve3To(end, cmd.Ctrl1)
		case Curve4ToKind:
			out.Curve4To(end, cmd.Ctrl2, cmd.Ctrl1)
		default:
			panic(fmt.Sprintf("invalid command kind %v", cmd.Kind))
		}
	}
	return out
}

// Transform returns the path with aff applied to all points.
func (p *Path) Transform(aff Affine) *Path {
	out := &Path{start: aff.Transform(p.start), commands: make([]Command, len(p.commands))}
	for i, cmd := range p.commands {
		out.commands[i] = cmd.Transform(aff)
	}
	return out
}

// ToOCS returns the path with all points mapped from world coordinates into
// ocs.
func (p *Path) ToOCS(ocs OCS) *Path {
	out := &Path{start: ocs.FromWCS(p.start), commands: make([]Command, len(p.commands))}
	for i, cmd := range p.commands {
		out.commands[i] = cmd.mapPoints(ocs.FromWCS)
	}
	return out
}

// ControlVertices returns the start point followed by all control and end
// points, in command order.
func (p *Path) ControlVertices() []Vec3 {
	out := make([]Vec3, 0, 1+3*len(p.commands))
	out = append(out, p.start)
	for _, cmd := range p.commands {
		switch cmd.Kind {
		case LineToKind:
			out = append(out, cmd.End)
		case Curve3ToKind:
			out = append(out, cmd.Ctrl1, cmd.End)
		case Curve4ToKind:
			out = append(out, cmd.Ctrl1, cmd.Ctrl2, cmd.End)
		default:
			panic(fmt.Sprintf("invalid command kind %v", cmd.Kind))
		}
	}
	return out
}

// BoundingBox returns the box of all control vertices. Bézier curves lie in
// the convex hull of their control points, so the box contains the whole
// path, but it isn't necessarily tight.
func (p *Path) BoundingBox() Box {
	return NewBoxFromPoints(p.ControlVertices()...)
}

func (p *Path) IsInf() bool {
	return slices.ContainsFunc(p.ControlVertices(), Vec3.IsInf)
}

func (p *Path) IsNaN() bool {
	return slices.ContainsFunc(p.ControlVertices(), Vec3.IsNaN)
}

// Flatten is shorthand for [Flatten] of p.
func (p *Path) Flatten(distance float64, segments int) iter.Seq[Vec3] {
	return Flatten(p, distance, segments)
}

func (p *Path) String() string {
	return fmt.Sprintf("Path(%s, %v)", p.start, p.commands)
}

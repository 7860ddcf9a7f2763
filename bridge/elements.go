// Package bridge converts paths to and from the path representations of
// other libraries: generic opcode sequences, font outlines and rasterizers.
package bridge

import (
	"fmt"
	"iter"

	"github.com/cadkit/dxfpath"
	"github.com/pkg/errors"
)

// Op is the opcode of an [Element].
type Op int

const (
	// OpMoveTo starts a new path at the element's point.
	OpMoveTo Op = iota + 1
	// OpLineTo draws a line to the element's point.
	OpLineTo
	// OpCurve3 elements come in pairs: the control point of a quadratic
	// Bézier, then its end point.
	OpCurve3
	// OpCurve4 is the first control point of a cubic Bézier. It is followed
	// by the second control point and the end point, either as OpCurve4Data
	// or as further OpCurve4 elements.
	OpCurve4
	OpCurve4Data
	// OpClosePolygon closes the current path. Its point is ignored.
	OpClosePolygon
	// OpStop ends the sequence.
	OpStop
)

func (op Op) String() string {
	switch op {
	case OpMoveTo:
		return "MoveTo"
	case OpLineTo:
		return "LineTo"
	case OpCurve3:
		return "Curve3"
	case OpCurve4:
		return "Curve4"
	case OpCurve4Data:
		return "Curve4Data"
	case OpClosePolygon:
		return "ClosePolygon"
	case OpStop:
		return "Stop"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Element is a single opcode with its point.
type Element struct {
	Op   Op
	X, Y float64
}

// ElementSource is a sequence of elements, such as the vertex and code arrays
// of a plotting library or the element list of a GUI toolkit's painter path.
type ElementSource interface {
	Len() int
	At(i int) Element
}

// Elements is an ElementSource backed by a slice.
type Elements []Element

func (e Elements) Len() int         { return len(e) }
func (e Elements) At(i int) Element { return e[i] }

// FromElements returns the paths described by src, in order.
//
// Every OpMoveTo starts a new path. OpClosePolygon closes the current path,
// adding a line back to its start if necessary, and ends it. OpStop ends the
// sequence. Drawing elements before the first move start a path at the
// origin, and an incomplete curve at the end of a path is dropped.
func FromElements(src ElementSource) iter.Seq[*dxfpath.Path] {
	return func(yield func(*dxfpath.Path) bool) {
		var p *dxfpath.Path
		// Points of the curve being read.
		var pending []dxfpath.Vec3
		var pendingOp Op

		current := func() *dxfpath.Path {
			if p == nil {
				p = &dxfpath.Path{}
			}
			return p
		}

	loop:
		for i := range src.Len() {
			el := src.At(i)
			pt := dxfpath.Pt(el.X, el.Y)
			if el.Op == OpCurve4Data {
				el.Op = OpCurve4
			}
			if el.Op != pendingOp {
				pending = pending[:0]
			}
			pendingOp = 0
			switch el.Op {
			case OpMoveTo:
				if p != nil && !yield(p) {
					return
				}
				p = dxfpath.NewPath(pt)
			case OpLineTo:
				current().LineTo(pt)
			case OpCurve3:
				pending = append(pending, pt)
				if len(pending) == 2 {
					current().Curve3To(pending[1], pending[0])
					pending = pending[:0]
				} else {
					pendingOp = OpCurve3
				}
			case OpCurve4:
				pending = append(pending, pt)
				if len(pending) == 3 {
					current().Curve4To(pending[2], pending[0], pending[1])
					pending = pending[:0]
				} else {
					pendingOp = OpCurve4
				}
			case OpClosePolygon:
				if p != nil {
					p.Close()
					if !yield(p) {
						return
					}
					p = nil
				}
			case OpStop:
				break loop
			default:
				panic(fmt.Sprintf("invalid element opcode %v", el.Op))
			}
		}
		if p != nil {
			yield(p)
		}
	}
}

// ToElements returns the elements describing paths. Cubic Béziers are
// written as OpCurve4 followed by two OpCurve4Data elements.
//
// If extrusion isn't the z axis, the paths are projected into its OCS. The
// elements only hold x and y, so the elevation is lost. ToElements returns
// an error matching [dxfpath.ErrInvalidArgument] if paths is empty.
func ToElements(paths []*dxfpath.Path, extrusion dxfpath.Vec3) (Elements, error) {
	paths, err := projected(paths, extrusion)
	if err != nil {
		return nil, err
	}
	var out Elements
	add := func(op Op, pt dxfpath.Vec3) {
		out = append(out, Element{Op: op, X: pt.X, Y: pt.Y})
	}
	for _, p := range paths {
		add(OpMoveTo, p.Start())
		for cmd := range p.Commands() {
			switch cmd.Kind {
			case dxfpath.LineToKind:
				add(OpLineTo, cmd.End)
			case dxfpath.Curve3ToKind:
				add(OpCurve3, cmd.Ctrl1)
				add(OpCurve3, cmd.End)
			case dxfpath.Curve4ToKind:
				add(OpCurve4, cmd.Ctrl1)
				add(OpCurve4Data, cmd.Ctrl2)
				add(OpCurve4Data, cmd.End)
			default:
				panic(fmt.Sprintf("invalid command kind %v", cmd.Kind))
			}
		}
	}
	dxfpath.Logger().V(2).Info("exported path elements", "paths", len(paths), "elements", len(out))
	return out, nil
}

// projected maps paths into the OCS of extrusion.
func projected(paths []*dxfpath.Path, extrusion dxfpath.Vec3) ([]*dxfpath.Path, error) {
	if len(paths) == 0 {
		return nil, errors.Wrap(dxfpath.ErrInvalidArgument, "one or more paths required")
	}
	ocs := dxfpath.NewOCS(extrusion)
	if ocs.IsDefault() {
		return paths, nil
	}
	out := make([]*dxfpath.Path, len(paths))
	for i, p := range paths {
		out[i] = p.ToOCS(ocs)
	}
	return out, nil
}

// Package dxfpath provides the geometry core of a CAD document toolkit: a 3D
// vector path made of line, quadratic Bézier, and cubic Bézier commands,
// together with the algorithms needed to move geometry between that path
// representation and the polyline, spline, and hatch entities of a drawing.
//
// # Paths and commands
//
// A [Path] has a start point and a sequence of [Command] values. Commands are
// akin to the drawing commands of PostScript-like APIs, minus "move to": a
// path describes exactly one contiguous contour, and the start of each
// command is the end of the previous one. Three kinds exist, [LineToKind],
// [Curve3ToKind], and [Curve4ToKind], and every function in this package
// switches over them exhaustively.
//
// Paths are built either directly, with [Path.LineTo] and friends, or from
// construction tools: [ConstructionEllipse] (arcs, circles, and ellipses,
// approximated by cubic Béziers), [BSpline] (decomposed into cubic Béziers
// or approximated), and 2D polylines with bulges ([Path.Add2DPolyline]).
// The convert sub-package builds paths from drawing entities.
//
// # Flattening
//
// [Flatten] approximates a path by a polyline. Curves are subdivided with de
// Casteljau's algorithm until every control point lies within the requested
// distance of the chord; since a Bézier curve lies within the convex hull of
// its control points, this bounds the deviation of the polyline from the
// curve.
//
// # Orientation and nesting
//
// [Orientation] and [Orient] classify and fix the winding of closed paths.
// [Group] performs a nesting analysis on a flat list of closed paths and
// returns loop groups, each an exterior boundary followed by the paths nested
// inside it. Hatch filling relies on this structure.
//
// # Continuity segmentation
//
// [Segment] reverses the loss of structure caused by converting curves into
// sequences of Bézier segments: consecutive cubic Béziers with G1 continuity
// are joined into a single [BSpline], and runs of lines become vertex lists.
//
// # Iterators
//
// Functions that produce a sequence of values one at a time return iterators
// (iter.Seq), to avoid having to allocate slices. The sequences are
// restartable: ranging over them again recomputes the values. A path must not
// be modified while an iterator over it is being consumed.
//
// # Literature
//
//   - [A Primer on Bézier Curves]
//   - [The NURBS Book] by Piegl and Tiller (knot insertion, de Boor)
//   - [Approximate a circle with cubic Bézier curves] by Spencer Mortensen
//   - [Arbitrary axis algorithm] of the DXF reference
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [The NURBS Book]: https://doi.org/10.1007/978-3-642-59223-2
// [Approximate a circle with cubic Bézier curves]: https://spencermortensen.com/articles/bezier-circle/
// [Arbitrary axis algorithm]: https://help.autodesk.com/view/OARX/2018/ENU/?guid=GUID-E19E5B42-0CC7-4EBA-B29F-5E1D595149EE
package dxfpath

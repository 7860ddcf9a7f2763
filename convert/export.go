package convert

import (
	"fmt"
	"iter"

	"github.com/cadkit/dxfpath"
	"github.com/cadkit/dxfpath/entity"
)

// ExportOptions specifies optional settings for the exporters. Zero fields
// use the defaults of [DefaultExportOptions].
type ExportOptions struct {
	// Distance is the maximum deviation of flattened curves.
	Distance float64
	// Segments is the minimum count of lines per flattened Bézier curve.
	Segments int
	// G1Tol is the tolerance of the continuity test that joins Bézier curves
	// into splines.
	G1Tol float64
	// Extrusion is the normal of the plane 2D entities are placed in. Paths
	// are projected into its OCS.
	Extrusion dxfpath.Vec3
	// Attribs are copied onto every exported entity.
	Attribs entity.Attribs
	// Pattern is the hatch pattern. The default, "SOLID", is a solid fill.
	Pattern string
	// PolylineBoundaries makes ToHatches flatten all boundaries, instead of
	// describing curved boundaries by line and spline edges.
	PolylineBoundaries bool
}

// DefaultExportOptions returns the options used for zero fields of
// [ExportOptions].
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Distance:  dxfpath.DefaultDistance,
		Segments:  dxfpath.DefaultSegments,
		G1Tol:     dxfpath.DefaultG1Tol,
		Extrusion: dxfpath.ZAxis,
		Pattern:   "SOLID",
	}
}

func (opts ExportOptions) withDefaults() ExportOptions {
	def := DefaultExportOptions()
	if !(opts.Distance > 0) {
		opts.Distance = def.Distance
	}
	if opts.Segments < 1 {
		opts.Segments = def.Segments
	}
	if !(opts.G1Tol > 0) {
		opts.G1Tol = def.G1Tol
	}
	if opts.Extrusion.IsNull() {
		opts.Extrusion = def.Extrusion
	}
	if opts.Pattern == "" {
		opts.Pattern = def.Pattern
	}
	return opts
}

// Single returns a slice holding only p, for exporting a single path.
func Single(p *dxfpath.Path) []*dxfpath.Path {
	return []*dxfpath.Path{p}
}

// projection is a batch of paths mapped into the OCS of an extrusion.
type projection struct {
	paths     []*dxfpath.Path
	extrusion dxfpath.Vec3
	elevation float64
	// hasElevation is false if the plane is the xy plane of the WCS.
	hasElevation bool
}

// project maps paths into the OCS of extrusion. The plane of the OCS passes
// through the start of the first path, and its distance from the origin is
// stored once for the batch. Paths aren't modified if extrusion is the z
// axis; then the elevation is the z coordinate of the first start point.
func project(paths []*dxfpath.Path, extrusion dxfpath.Vec3) projection {
	ref := paths[0].Start()
	ocs := dxfpath.NewOCS(extrusion)
	if ocs.IsDefault() {
		return projection{
			paths:        paths,
			extrusion:    dxfpath.ZAxis,
			elevation:    ref.Z,
			hasElevation: ref.Z != 0,
		}
	}
	out := make([]*dxfpath.Path, len(paths))
	for i, p := range paths {
		out[i] = p.ToOCS(ocs)
	}
	return projection{
		paths:        out,
		extrusion:    extrusion,
		elevation:    ocs.FromWCS(ref).Z,
		hasElevation: true,
	}
}

func flattened(p *dxfpath.Path, opts ExportOptions) []dxfpath.Vec3 {
	var vs []dxfpath.Vec3
	for v := range dxfpath.Flatten(p, opts.Distance, opts.Segments) {
		vs = append(vs, v)
	}
	return vs
}

func flattened2D(p *dxfpath.Path, opts ExportOptions) []dxfpath.Vec2 {
	var vs []dxfpath.Vec2
	for v := range dxfpath.Flatten(p, opts.Distance, opts.Segments) {
		vs = append(vs, v.Vec2())
	}
	return vs
}

func logBatch(exporter string, paths []*dxfpath.Path, opts ExportOptions) {
	dxfpath.Logger().V(2).Info("exporting paths",
		"exporter", exporter,
		"paths", len(paths),
		"distance", opts.Distance,
		"segments", opts.Segments,
		"extrusion", opts.Extrusion.String())
}

// ToLWPolylines returns one LWPOLYLINE per path, holding the flattened path
// projected into the OCS of opts.Extrusion.
func ToLWPolylines(paths []*dxfpath.Path, opts ExportOptions) iter.Seq[*entity.LWPolyline] {
	opts = opts.withDefaults()
	return func(yield func(*entity.LWPolyline) bool) {
		if len(paths) == 0 {
			return
		}
		logBatch("lwpolylines", paths, opts)
		pr := project(paths, opts.Extrusion)
		for _, p := range pr.paths {
			pl := entity.NewLWPolyline(opts.Attribs)
			pl.Extrusion = pr.extrusion
			pl.Elevation = pr.elevation
			pl.AppendPoints(flattened(p, opts)...)
			if !yield(pl) {
				return
			}
		}
	}
}

// ToPolylines2D returns one 2D POLYLINE per path, holding the flattened path
// projected into the OCS of opts.Extrusion.
func ToPolylines2D(paths []*dxfpath.Path, opts ExportOptions) iter.Seq[*entity.Polyline] {
	opts = opts.withDefaults()
	return func(yield func(*entity.Polyline) bool) {
		if len(paths) == 0 {
			return
		}
		logBatch("polylines2d", paths, opts)
		pr := project(paths, opts.Extrusion)
		for _, p := range pr.paths {
			pl := entity.NewPolyline(opts.Attribs, 0)
			pl.Extrusion = pr.extrusion
			if pr.hasElevation {
				elevation := pr.elevation
				pl.Elevation = &elevation
			}
			pl.AppendVertices(flattened(p, opts)...)
			if !yield(pl) {
				return
			}
		}
	}
}

// ToPolylines3D returns one 3D POLYLINE per path, holding the flattened path
// in world coordinates.
func ToPolylines3D(paths []*dxfpath.Path, opts ExportOptions) iter.Seq[*entity.Polyline] {
	opts = opts.withDefaults()
	return func(yield func(*entity.Polyline) bool) {
		if len(paths) == 0 {
			return
		}
		logBatch("polylines3d", paths, opts)
		for _, p := range paths {
			pl := entity.NewPolyline(opts.Attribs, entity.Polyline3D)
			pl.AppendVertices(flattened(p, opts)...)
			if !yield(pl) {
				return
			}
		}
	}
}

// ToLines returns a LINE for every edge of the flattened paths, in world
// coordinates.
func ToLines(paths []*dxfpath.Path, opts ExportOptions) iter.Seq[*entity.Line] {
	opts = opts.withDefaults()
	return func(yield func(*entity.Line) bool) {
		if len(paths) == 0 {
			return
		}
		logBatch("lines", paths, opts)
		for _, p := range paths {
			first := true
			var prev dxfpath.Vec3
			for v := range dxfpath.Flatten(p, opts.Distance, opts.Segments) {
				if !first {
					if !yield(entity.NewLine(opts.Attribs, prev, v)) {
						return
					}
				}
				first = false
				prev = v
			}
		}
	}
}

// ToHatches returns filled areas bounded by paths, projected into the OCS of
// opts.Extrusion.
//
// The paths are grouped by nesting analysis, see [dxfpath.Group], and every
// group becomes one HATCH: the outermost path is its external boundary, all
// paths nested inside are further boundaries, which alternate between holes
// and islands. Boundaries are closed if necessary. Paths whose orientation is
// indeterminate are dropped.
//
// Boundaries with curves are described by line and spline edges, unless
// opts.PolylineBoundaries is set; all others by flattened polylines.
func ToHatches(paths []*dxfpath.Path, opts ExportOptions) iter.Seq[*entity.Hatch] {
	opts = opts.withDefaults()
	return func(yield func(*entity.Hatch) bool) {
		if len(paths) == 0 {
			return
		}
		logBatch("hatches", paths, opts)
		pr := project(paths, opts.Extrusion)
		for _, group := range dxfpath.Group(pr.paths) {
			h := entity.NewHatch(opts.Attribs)
			h.SolidFill = opts.Pattern == "SOLID"
			h.PatternName = opts.Pattern
			h.Extrusion = pr.extrusion
			h.Elevation = pr.elevation
			for i, p := range group {
				flags := entity.BoundaryDefault
				if i == 0 {
					flags = entity.BoundaryExternal
				}
				p = p.Clone()
				p.Close()
				addBoundary(h, p, flags, opts)
			}
			if !yield(h) {
				return
			}
		}
	}
}

func addBoundary(h *entity.Hatch, p *dxfpath.Path, flags int, opts ExportOptions) {
	if opts.PolylineBoundaries || !p.HasCurves() {
		h.AddPolylinePath(flattened2D(p, opts), flags)
		return
	}
	bp := h.AddEdgePath(flags)
	for frag := range dxfpath.Segment(p, opts.G1Tol) {
		switch frag.Kind {
		case dxfpath.SplineFragment:
			s := frag.Spline
			cps := make([]dxfpath.Vec2, len(s.ControlPoints))
			for i, cp := range s.ControlPoints {
				cps[i] = cp.Vec2()
			}
			bp.AddSpline(cps, s.Degree, s.Knots, s.Weights)
		case dxfpath.PolylineFragment:
			for i := 1; i < len(frag.Vertices); i++ {
				bp.AddLine(frag.Vertices[i-1].Vec2(), frag.Vertices[i].Vec2())
			}
		default:
			panic(fmt.Sprintf("invalid fragment kind %v", frag.Kind))
		}
	}
}

// ToSplinesAndPolylines returns the paths as SPLINE and 3D POLYLINE entities
// in world coordinates, without flattening curves. Each path is split by
// [dxfpath.Segment]: runs of G1 continuous curves become splines, runs of
// lines become polylines.
func ToSplinesAndPolylines(paths []*dxfpath.Path, opts ExportOptions) iter.Seq[entity.Entity] {
	opts = opts.withDefaults()
	return func(yield func(entity.Entity) bool) {
		if len(paths) == 0 {
			return
		}
		logBatch("splines", paths, opts)
		for _, p := range paths {
			for frag := range dxfpath.Segment(p, opts.G1Tol) {
				var e entity.Entity
				switch frag.Kind {
				case dxfpath.SplineFragment:
					s := entity.NewSpline(opts.Attribs)
					s.ApplyConstructionTool(frag.Spline)
					e = s
				case dxfpath.PolylineFragment:
					pl := entity.NewPolyline(opts.Attribs, entity.Polyline3D)
					pl.AppendVertices(frag.Vertices...)
					e = pl
				default:
					panic(fmt.Sprintf("invalid fragment kind %v", frag.Kind))
				}
				if !yield(e) {
					return
				}
			}
		}
	}
}

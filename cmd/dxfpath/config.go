package main

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cadkit/dxfpath"
	"github.com/cadkit/dxfpath/bridge"
	"github.com/cadkit/dxfpath/convert"
	"github.com/cadkit/dxfpath/entity"
	"github.com/pkg/errors"
)

// Config is a scene: export settings and the entities to convert.
type Config struct {
	Settings Settings
	Entities []EntityConf
	Texts    []TextConf
}

// TextConf is a line of text, converted to glyph outlines.
type TextConf struct {
	Text   string
	Size   float64
	Insert []float64
}

type Settings struct {
	// Mode selects the exporter: lines, lwpolylines, polylines2d,
	// polylines3d, hatches or splines.
	Mode      string
	Distance  float64
	Segments  int
	G1Tol     float64
	Extrusion []float64
	Layer     string
	// Color is an AutoCAD Color Index; 0 is BYBLOCK. Unset means BYLAYER.
	Color   *int
	Pattern string
	// PolylineBoundaries flattens curved hatch boundaries.
	PolylineBoundaries bool
	// Size of the PNG preview in pixels.
	Width, Height int
}

// EntityConf describes one entity. Which fields are used depends on Type.
type EntityConf struct {
	Type       string
	Layer      string
	Start      []float64
	End        []float64
	Center     []float64
	Radius     float64
	StartAngle float64
	EndAngle   float64
	MajorAxis  []float64
	Ratio      float64
	StartParam float64
	EndParam   float64
	// Points are x, y, bulge triples for LWPOLYLINE and 2D POLYLINE, and
	// points for everything else.
	Points    [][]float64
	Closed    bool
	Is3D      bool
	Degree    int
	Knots     []float64
	Weights   []float64
	FitPoints [][]float64
	Extrusion []float64
	Elevation float64
	Width     float64
	Height    float64
	// Clip is the index of the entity clipping a VIEWPORT, starting at 1.
	Clip int
}

func newConfig() *Config {
	return &Config{
		Settings: Settings{
			Mode:   "lwpolylines",
			Width:  512,
			Height: 512,
		},
	}
}

// LoadConfigFile reads a scene from a TOML file.
func LoadConfigFile(fileName string) (*Config, error) {
	return loadConfig(fileName, true)
}

// LoadConfig reads a scene from a TOML string.
func LoadConfig(conf string) (*Config, error) {
	return loadConfig(conf, false)
}

func loadConfig(conf string, isFileName bool) (*Config, error) {
	c := newConfig()
	var decodeMeta toml.MetaData
	var err error
	if isFileName {
		decodeMeta, err = toml.DecodeFile(conf, c)
	} else {
		decodeMeta, err = toml.Decode(conf, c)
	}
	if err != nil {
		return c, err
	}
	if len(decodeMeta.Undecoded()) > 0 {
		return c, errors.Errorf("undecoded fields in scene: %v", decodeMeta.Undecoded())
	}
	return c, nil
}

// ExportOptions returns the exporter settings.
func (s Settings) ExportOptions() (convert.ExportOptions, error) {
	opts := convert.ExportOptions{
		Distance:           s.Distance,
		Segments:           s.Segments,
		G1Tol:              s.G1Tol,
		Attribs:            entity.Attribs{Layer: s.Layer, Color: s.Color},
		Pattern:            s.Pattern,
		PolylineBoundaries: s.PolylineBoundaries,
	}
	if s.Extrusion != nil {
		ext, err := vec(s.Extrusion)
		if err != nil {
			return opts, errors.Wrap(err, "extrusion")
		}
		opts.Extrusion = ext
	}
	return opts, nil
}

func vec(v []float64) (dxfpath.Vec3, error) {
	switch len(v) {
	case 2:
		return dxfpath.Pt(v[0], v[1]), nil
	case 3:
		return dxfpath.V(v[0], v[1], v[2]), nil
	default:
		return dxfpath.Vec3{}, errors.Errorf("want 2 or 3 coordinates, got %d", len(v))
	}
}

func vecs(vs [][]float64) ([]dxfpath.Vec3, error) {
	out := make([]dxfpath.Vec3, len(vs))
	for i, v := range vs {
		var err error
		if out[i], err = vec(v); err != nil {
			return nil, errors.Wrapf(err, "point %d", i)
		}
	}
	return out, nil
}

// optVec is like vec, but returns def for a missing vector.
func optVec(v []float64, def dxfpath.Vec3) (dxfpath.Vec3, error) {
	if v == nil {
		return def, nil
	}
	return vec(v)
}

// Document builds the entities of the scene.
func (c *Config) Document() (*entity.Document, []entity.Entity, error) {
	doc := entity.NewDocument()
	ents := make([]entity.Entity, len(c.Entities))
	for i, ec := range c.Entities {
		e, err := ec.entity()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "entity %d (%s)", i+1, ec.Type)
		}
		doc.Add(e)
		ents[i] = e
	}
	// Clipping references need all handles assigned.
	for i, ec := range c.Entities {
		vp, ok := ents[i].(*entity.Viewport)
		if !ok || ec.Clip == 0 {
			continue
		}
		if ec.Clip < 1 || ec.Clip > len(ents) {
			return nil, nil, errors.Errorf("entity %d: clip index %d out of range", i+1, ec.Clip)
		}
		if _, ok := ents[ec.Clip-1].(*entity.Viewport); ok {
			return nil, nil, errors.Errorf("entity %d: clipped by viewport %d", i+1, ec.Clip)
		}
		vp.NonRectangularClipping = true
		vp.ClippingBoundaryHandle = entity.CommonOf(ents[ec.Clip-1]).Handle
	}
	return doc, ents, nil
}

func (ec EntityConf) entity() (entity.Entity, error) {
	attribs := entity.Attribs{Layer: ec.Layer, Color: entity.ACI(entity.ColorByLayer)}
	if attribs.Layer == "" {
		attribs.Layer = "0"
	}
	extrusion, err := optVec(ec.Extrusion, dxfpath.ZAxis)
	if err != nil {
		return nil, errors.Wrap(err, "extrusion")
	}
	center, err := optVec(ec.Center, dxfpath.Vec3{})
	if err != nil {
		return nil, errors.Wrap(err, "center")
	}
	points, err := ec.points()
	if err != nil {
		return nil, err
	}

	switch strings.ToUpper(ec.Type) {
	case "LINE":
		start, err := optVec(ec.Start, dxfpath.Vec3{})
		if err != nil {
			return nil, errors.Wrap(err, "start")
		}
		end, err := optVec(ec.End, dxfpath.Vec3{})
		if err != nil {
			return nil, errors.Wrap(err, "end")
		}
		return entity.NewLine(attribs, start, end), nil
	case "CIRCLE":
		e := &entity.Circle{Center: center, Radius: ec.Radius, Extrusion: extrusion}
		e.Attribs = attribs
		return e, nil
	case "ARC":
		e := &entity.Arc{Center: center, Radius: ec.Radius, StartAngle: ec.StartAngle, EndAngle: ec.EndAngle, Extrusion: extrusion}
		e.Attribs = attribs
		return e, nil
	case "ELLIPSE":
		major, err := optVec(ec.MajorAxis, dxfpath.Pt(1, 0))
		if err != nil {
			return nil, errors.Wrap(err, "major axis")
		}
		ratio := ec.Ratio
		if ratio == 0 {
			ratio = 1
		}
		e := &entity.Ellipse{Center: center, MajorAxis: major, Extrusion: extrusion, Ratio: ratio, StartParam: ec.StartParam, EndParam: ec.EndParam}
		e.Attribs = attribs
		return e, nil
	case "LWPOLYLINE":
		e := entity.NewLWPolyline(attribs)
		e.Points = bulgeVertices(ec.Points)
		e.Closed = ec.Closed
		e.Elevation = ec.Elevation
		e.Extrusion = extrusion
		return e, nil
	case "POLYLINE":
		flags := 0
		if ec.Closed {
			flags |= entity.PolylineClosed
		}
		if ec.Is3D {
			flags |= entity.Polyline3D
		}
		e := entity.NewPolyline(attribs, flags)
		e.Extrusion = extrusion
		if ec.Is3D {
			e.AppendVertices(points...)
		} else {
			elevation := ec.Elevation
			e.Elevation = &elevation
			for _, v := range bulgeVertices(ec.Points) {
				e.Vertices = append(e.Vertices, entity.Vertex{Location: dxfpath.Pt(v.X, v.Y), Bulge: v.Bulge})
			}
		}
		return e, nil
	case "SPLINE":
		e := entity.NewSpline(attribs)
		if ec.Degree != 0 {
			e.Degree = ec.Degree
		}
		e.ControlPoints = points
		e.Knots = ec.Knots
		e.Weights = ec.Weights
		if e.FitPoints, err = vecs(ec.FitPoints); err != nil {
			return nil, errors.Wrap(err, "fit points")
		}
		return e, nil
	case "SOLID":
		if len(points) < 3 || len(points) > 4 {
			return nil, errors.Errorf("SOLID needs 3 or 4 points, got %d", len(points))
		}
		e := &entity.Solid{}
		e.Attribs = attribs
		e.Extrusion = extrusion
		copy(e.Vertices[:], points)
		if len(points) == 3 {
			e.Vertices[3] = points[2]
		}
		return e, nil
	case "VIEWPORT":
		e := &entity.Viewport{Center: center, Width: ec.Width, Height: ec.Height}
		e.Attribs = attribs
		return e, nil
	case "POINT":
		e := &entity.Point{Location: center}
		e.Attribs = attribs
		return e, nil
	default:
		return nil, errors.Errorf("unknown entity type %q", ec.Type)
	}
}

// TextPaths returns the outlines of all texts.
func (c *Config) TextPaths() ([]*dxfpath.Path, error) {
	var out []*dxfpath.Path
	for i, tc := range c.Texts {
		insert, err := optVec(tc.Insert, dxfpath.Vec3{})
		if err != nil {
			return nil, errors.Wrapf(err, "text %d insert", i+1)
		}
		size := tc.Size
		if size == 0 {
			size = 1
		}
		paths, err := bridge.TextPaths(tc.Text, size)
		if err != nil {
			return nil, errors.Wrapf(err, "text %d", i+1)
		}
		aff := dxfpath.Translate(insert)
		for _, p := range paths {
			out = append(out, p.Transform(aff))
		}
	}
	return out, nil
}

// points returns Points as 3D points, unless they are bulge vertices.
func (ec EntityConf) points() ([]dxfpath.Vec3, error) {
	switch strings.ToUpper(ec.Type) {
	case "LWPOLYLINE":
		return nil, nil
	case "POLYLINE":
		if !ec.Is3D {
			return nil, nil
		}
	}
	pts, err := vecs(ec.Points)
	return pts, errors.Wrap(err, "points")
}

func bulgeVertices(pts [][]float64) []dxfpath.BulgeVertex {
	out := make([]dxfpath.BulgeVertex, 0, len(pts))
	for _, p := range pts {
		var v dxfpath.BulgeVertex
		if len(p) > 0 {
			v.X = p[0]
		}
		if len(p) > 1 {
			v.Y = p[1]
		}
		if len(p) > 2 {
			v.Bulge = p[2]
		}
		out = append(out, v)
	}
	return out
}

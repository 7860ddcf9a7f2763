package main

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/cadkit/dxfpath"
	"github.com/cadkit/dxfpath/entity"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	c, err := LoadConfigFile("testdata/scene.toml")
	require.NoError(t, err)
	assert.Equal(t, "hatches", c.Settings.Mode)
	assert.Equal(t, 256, c.Settings.Width)
	assert.Len(t, c.Entities, 4)
	assert.Len(t, c.Texts, 1)

	opts, err := c.Settings.ExportOptions()
	require.NoError(t, err)
	assert.Equal(t, 0.05, opts.Distance)
	assert.Equal(t, entity.Attribs{Layer: "OUTLINES", Color: entity.ACI(1)}, opts.Attribs)

	doc, ents, err := c.Document()
	require.NoError(t, err)
	assert.Equal(t, 4, doc.Len())
	vp, ok := ents[3].(*entity.Viewport)
	require.True(t, ok)
	assert.True(t, vp.HasClippingPath())
	assert.Equal(t, "2", vp.ClippingBoundaryHandle)

	s, err := buildScene(c)
	require.NoError(t, err)
	// The point is skipped, the text adds two contours.
	assert.Equal(t, 1, s.skipped)
	assert.Len(t, s.paths, 5)
	// The viewport is clipped by the circle.
	assert.Equal(t, s.paths[1].Len(), s.paths[2].Len())
	assert.True(t, s.paths[2].HasCurves())
}

func TestLoadConfigUndecoded(t *testing.T) {
	_, err := LoadConfig(`
[Settings]
Mode = "lines"
Colour = 3
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undecoded")
}

func TestLoadConfigDefaults(t *testing.T) {
	c, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "lwpolylines", c.Settings.Mode)
	assert.Equal(t, 512, c.Settings.Width)
	assert.Equal(t, 512, c.Settings.Height)
}

func TestDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		conf string
	}{
		{"unknown type", `
[[Entities]]
Type = "MTEXT"
`},
		{"bad point", `
[[Entities]]
Type = "LINE"
Start = [1]
`},
		{"solid points", `
[[Entities]]
Type = "SOLID"
Points = [[0, 0], [1, 0]]
`},
		{"clip range", `
[[Entities]]
Type = "VIEWPORT"
Clip = 3
`},
		{"clip self", `
[[Entities]]
Type = "VIEWPORT"
Clip = 1
`},
		{"clip viewport", `
[[Entities]]
Type = "VIEWPORT"
Clip = 2

[[Entities]]
Type = "VIEWPORT"
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadConfig(tt.conf)
			require.NoError(t, err)
			_, _, err = c.Document()
			assert.Error(t, err)
		})
	}
}

func TestEntityKinds(t *testing.T) {
	c, err := LoadConfig(`
[[Entities]]
Type = "line"
Start = [0, 0]
End = [1, 1, 1]

[[Entities]]
Type = "POLYLINE"
Points = [[0, 0, 1], [2, 0]]
Elevation = 4

[[Entities]]
Type = "POLYLINE"
Is3D = true
Points = [[0, 0, 1], [2, 0, 3]]

[[Entities]]
Type = "SPLINE"
Points = [[0, 0], [1, 1], [2, 0], [3, 1]]

[[Entities]]
Type = "SOLID"
Points = [[0, 0], [1, 0], [0, 1]]

[[Entities]]
Type = "ELLIPSE"
MajorAxis = [2, 0]
Ratio = 0.5
EndParam = 3.141592653589793
`)
	require.NoError(t, err)
	_, ents, err := c.Document()
	require.NoError(t, err)
	require.Len(t, ents, 6)

	line := ents[0].(*entity.Line)
	assert.Equal(t, dxfpath.V(1, 1, 1), line.End)
	assert.Equal(t, "0", line.Layer)

	pl2 := ents[1].(*entity.Polyline)
	assert.True(t, pl2.Is2D())
	require.NotNil(t, pl2.Elevation)
	assert.Equal(t, 4.0, *pl2.Elevation)
	assert.Equal(t, 1.0, pl2.Vertices[0].Bulge)

	pl3 := ents[2].(*entity.Polyline)
	assert.True(t, pl3.Is3D())
	assert.Equal(t, []dxfpath.Vec3{dxfpath.V(0, 0, 1), dxfpath.V(2, 0, 3)}, pl3.Points())

	sp := ents[3].(*entity.Spline)
	assert.Equal(t, 3, sp.Degree)
	assert.Len(t, sp.ControlPoints, 4)

	solid := ents[4].(*entity.Solid)
	assert.Equal(t, dxfpath.Pt(0, 1), solid.Vertices[3])
	assert.Equal(t, entity.ColorByLayer, solid.ColorIndex())

	s, err := buildScene(c)
	require.NoError(t, err)
	assert.Len(t, s.paths, 6)
	assert.Equal(t, 0, s.skipped)
}

func TestExportLines(t *testing.T) {
	c, err := LoadConfig(`
[Settings]
Mode = "lines"

[[Entities]]
Type = "LINE"
Start = [0, 0]
End = [1, 2]
`)
	require.NoError(t, err)
	s, err := buildScene(c)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, s.export(&buf, c.Settings))
	assert.Equal(t, "LINE layer=0 color=256 start=(0,0,0) end=(1,2,0)\n", buf.String())
}

func TestExportColorByBlock(t *testing.T) {
	c, err := LoadConfig(`
[Settings]
Mode = "lines"
Color = 0

[[Entities]]
Type = "LINE"
End = [1, 0]
`)
	require.NoError(t, err)
	opts, err := c.Settings.ExportOptions()
	require.NoError(t, err)
	assert.Equal(t, entity.ColorByBlock, opts.Attribs.ColorIndex())

	s, err := buildScene(c)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, s.export(&buf, c.Settings))
	assert.Equal(t, "LINE layer=0 color=0 start=(0,0,0) end=(1,0,0)\n", buf.String())
}

func TestExportHatches(t *testing.T) {
	c, err := LoadConfig(`
[Settings]
Mode = "hatches"

[[Entities]]
Type = "LWPOLYLINE"
Points = [[0, 0], [10, 0], [10, 10], [0, 10]]
Closed = true

[[Entities]]
Type = "CIRCLE"
Center = [5, 5]
Radius = 2

[[Entities]]
Type = "CIRCLE"
Center = [30, 5]
Radius = 2
`)
	require.NoError(t, err)
	s, err := buildScene(c)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, s.export(&buf, c.Settings))
	assert.Equal(t,
		"HATCH layer=0 color=256 pattern=SOLID boundaries=2 edges=1\n"+
			"HATCH layer=0 color=256 pattern=SOLID boundaries=1 edges=1\n",
		buf.String())
}

func TestExportModes(t *testing.T) {
	c, err := LoadConfig(`
[[Entities]]
Type = "ARC"
Radius = 1
EndAngle = 90

[[Entities]]
Type = "LINE"
Start = [5, 0]
End = [6, 0]
`)
	require.NoError(t, err)
	s, err := buildScene(c)
	require.NoError(t, err)

	for _, mode := range []string{"lines", "lwpolylines", "polylines2d", "polylines3d", "hatches", "splines"} {
		c.Settings.Mode = mode
		var buf bytes.Buffer
		assert.NoError(t, s.export(&buf, c.Settings), mode)
		assert.NotEmpty(t, buf.String(), mode)
	}

	var buf bytes.Buffer
	c.Settings.Mode = "dwg"
	assert.Error(t, s.export(&buf, c.Settings))
}

func TestPreview(t *testing.T) {
	sq := dxfpath.FromVertices([]dxfpath.Vec3{
		dxfpath.Pt(0, 0), dxfpath.Pt(10, 0), dxfpath.Pt(10, 10), dxfpath.Pt(0, 10),
	}, true)
	paths := []*dxfpath.Path{sq}

	var buf bytes.Buffer
	require.NoError(t, writeSVG(&buf, paths, 100, 100, true))
	assert.Contains(t, buf.String(), `viewBox="-1 -11 12 12"`)
	assert.Contains(t, buf.String(), "<path")
	assert.Contains(t, buf.String(), "fill-rule:evenodd")

	buf.Reset()
	require.NoError(t, writePNG(&buf, paths, 32, 16))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())

	assert.ErrorIs(t, writeSVG(&buf, nil, 10, 10, false), dxfpath.ErrInvalidArgument)
	assert.ErrorIs(t, writeSVG(failingWriter{}, paths, 10, 10, false), errDiskFull)
	assert.ErrorIs(t, writePNG(&buf, nil, 10, 10), dxfpath.ErrInvalidArgument)
}

var errDiskFull = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

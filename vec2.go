package dxfpath

import (
	"fmt"
	"math"
)

// Vec2 is a point in a plane. Planar output formats, such as hatch
// boundaries and raster pixel coordinates, use it instead of Vec3. All
// geometry is computed on Vec3; use [Vec3.Vec2] and [Vec2.Vec3] to convert.
type Vec2 struct {
	X float64
	Y float64
}

func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) String() string {
	return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y)
}

// Vec3 places v at height z.
func (v Vec2) Vec3(z float64) Vec3 {
	return Vec3{v.X, v.Y, z}
}

func (v Vec2) IsClose(o Vec2, absTol float64) bool {
	return math.Abs(v.X-o.X) <= absTol && math.Abs(v.Y-o.Y) <= absTol
}

func (v Vec2) IsInf() bool {
	return math.IsInf(v.X, 0) || math.IsInf(v.Y, 0)
}

func (v Vec2) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y)
}

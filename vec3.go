package dxfpath

import (
	"fmt"
	"math"
)

// Vec3 is a point or vector in 3D space. Paths are 3D; planar exporters
// project them onto an [OCS] first.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

var (
	XAxis = Vec3{1, 0, 0}
	YAxis = Vec3{0, 1, 0}
	ZAxis = Vec3{0, 0, 1}
)

// V returns the vector ⟨x, y, z⟩.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Pt returns the point (x, y, 0).
func Pt(x, y float64) Vec3 {
	return Vec3{X: x, Y: y}
}

func (v Vec3) Splat() (float64, float64, float64) {
	return v.X, v.Y, v.Z
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Vec2 drops the z coordinate.
func (v Vec3) Vec2() Vec2 {
	return Vec2{v.X, v.Y}
}

// ReplaceZ returns v with its z coordinate set to z.
func (v Vec3) ReplaceZ(z float64) Vec3 {
	v.Z = z
	return v
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub computes v−o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Mul(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

func (v Vec3) Div(f float64) Vec3 {
	return Vec3{v.X / f, v.Y / f, v.Z / f}
}

// Negate returns a new vector with all signs flipped.
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Magnitude returns the length of the vector.
func (v Vec3) Magnitude() float64 {
	return math.Sqrt(v.Dot(v))
}

// Magnitude2 returns the squared length of the vector.
func (v Vec3) Magnitude2() float64 {
	return v.Dot(v)
}

// Normalize returns a unit vector with the same direction as v.
// This produces a NaN vector if the magnitude is 0.
func (v Vec3) Normalize() Vec3 {
	return v.Mul(1.0 / v.Magnitude())
}

// Lerp linearly interpolates between two points.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Mul(t))
}

// Midpoint returns the midpoint of two points.
func (v Vec3) Midpoint(o Vec3) Vec3 {
	return Vec3{
		X: 0.5 * (v.X + o.X),
		Y: 0.5 * (v.Y + o.Y),
		Z: 0.5 * (v.Z + o.Z),
	}
}

// Distance returns the euclidean distance between two points.
func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Magnitude()
}

// IsClose reports whether v and o are equal within the absolute tolerance
// absTol, per component.
func (v Vec3) IsClose(o Vec3, absTol float64) bool {
	return math.Abs(v.X-o.X) <= absTol &&
		math.Abs(v.Y-o.Y) <= absTol &&
		math.Abs(v.Z-o.Z) <= absTol
}

// IsNull reports whether v is the zero vector within [AbsTol].
func (v Vec3) IsNull() bool {
	return v.IsClose(Vec3{}, AbsTol)
}

// IsInf reports whether at least one coordinate is infinite.
func (v Vec3) IsInf() bool {
	return math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) || math.IsInf(v.Z, 0)
}

// IsNaN reports whether at least one coordinate is NaN.
func (v Vec3) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

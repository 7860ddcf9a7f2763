package dxfpath

import (
	"math"
)

// Affine describes an affine transform of 3D space via coefficients.
//
// If the coefficients are (n0, …, n11), then the resulting transformation
// represents this augmented matrix:
//
//	| n0 n3 n6 n9  |
//	| n1 n4 n7 n10 |
//	| n2 n5 n8 n11 |
//	| 0  0  0  1   |
//
// The first three columns are the images of the x, y, and z unit vectors, the
// last column is the translation. The idea is that (A * B) * v == A * (B * v).
type Affine struct {
	N0, N1, N2, N3, N4, N5, N6, N7, N8, N9, N10, N11 float64
}

// Identity is the identity transform.
var Identity = Affine{N0: 1, N4: 1, N8: 1}

// Scale creates an affine transform representing non-uniform scaling.
func Scale(x, y, z float64) Affine {
	return Affine{N0: x, N4: y, N8: z}
}

// Translate creates an affine transform representing translation.
func Translate(v Vec3) Affine {
	return Affine{N0: 1, N4: 1, N8: 1, N9: v.X, N10: v.Y, N11: v.Z}
}

// RotateZ creates an affine transform representing a rotation of th radians
// about the z axis. A positive angle rotates the positive x direction into
// the positive y direction.
func RotateZ(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{N0: cos, N1: sin, N3: -sin, N4: cos, N8: 1}
}

// NewAffineFromAxes creates the transform that maps the unit vectors onto ux,
// uy, and uz and the origin onto origin.
func NewAffineFromAxes(ux, uy, uz, origin Vec3) Affine {
	return Affine{
		ux.X, ux.Y, ux.Z,
		uy.X, uy.Y, uy.Z,
		uz.X, uz.Y, uz.Z,
		origin.X, origin.Y, origin.Z,
	}
}

// Coefficients returns the coefficients of the transform.
func (aff Affine) Coefficients() [12]float64 {
	return [12]float64{
		aff.N0, aff.N1, aff.N2, aff.N3, aff.N4, aff.N5,
		aff.N6, aff.N7, aff.N8, aff.N9, aff.N10, aff.N11,
	}
}

func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N3*o.N1 + aff.N6*o.N2,
		aff.N1*o.N0 + aff.N4*o.N1 + aff.N7*o.N2,
		aff.N2*o.N0 + aff.N5*o.N1 + aff.N8*o.N2,

		aff.N0*o.N3 + aff.N3*o.N4 + aff.N6*o.N5,
		aff.N1*o.N3 + aff.N4*o.N4 + aff.N7*o.N5,
		aff.N2*o.N3 + aff.N5*o.N4 + aff.N8*o.N5,

		aff.N0*o.N6 + aff.N3*o.N7 + aff.N6*o.N8,
		aff.N1*o.N6 + aff.N4*o.N7 + aff.N7*o.N8,
		aff.N2*o.N6 + aff.N5*o.N7 + aff.N8*o.N8,

		aff.N0*o.N9 + aff.N3*o.N10 + aff.N6*o.N11 + aff.N9,
		aff.N1*o.N9 + aff.N4*o.N10 + aff.N7*o.N11 + aff.N10,
		aff.N2*o.N9 + aff.N5*o.N10 + aff.N8*o.N11 + aff.N11,
	}
}

// ThenScale creates aff followed by a scale of (x, y, z).
//
// Equivalent to "Scale(x, y, z) * aff"
func (aff Affine) ThenScale(x, y, z float64) Affine {
	return Scale(x, y, z).Mul(aff)
}

// ThenTranslate creates aff followed by a translation of v.
//
// Equivalent to "Translate(v) * aff"
func (aff Affine) ThenTranslate(v Vec3) Affine {
	aff.N9 += v.X
	aff.N10 += v.Y
	aff.N11 += v.Z
	return aff
}

// ThenRotateZ creates aff followed by a rotation of th about the z axis.
//
// Equivalent to "RotateZ(th) * aff"
func (aff Affine) ThenRotateZ(th float64) Affine {
	return RotateZ(th).Mul(aff)
}

// Transform applies the transformation to a point.
func (aff Affine) Transform(v Vec3) Vec3 {
	return Vec3{
		X: aff.N0*v.X + aff.N3*v.Y + aff.N6*v.Z + aff.N9,
		Y: aff.N1*v.X + aff.N4*v.Y + aff.N7*v.Z + aff.N10,
		Z: aff.N2*v.X + aff.N5*v.Y + aff.N8*v.Z + aff.N11,
	}
}

// TransformDirection applies the linear part of the transformation to a
// vector, ignoring the translation.
func (aff Affine) TransformDirection(v Vec3) Vec3 {
	return Vec3{
		X: aff.N0*v.X + aff.N3*v.Y + aff.N6*v.Z,
		Y: aff.N1*v.X + aff.N4*v.Y + aff.N7*v.Z,
		Z: aff.N2*v.X + aff.N5*v.Y + aff.N8*v.Z,
	}
}

// Determinant computes the determinant of the linear part.
func (aff Affine) Determinant() float64 {
	return aff.N0*(aff.N4*aff.N8-aff.N7*aff.N5) -
		aff.N3*(aff.N1*aff.N8-aff.N7*aff.N2) +
		aff.N6*(aff.N1*aff.N5-aff.N4*aff.N2)
}

// Invert computes the inverse transform.
//
// Produces NaN values when the determinant is zero.
func (aff Affine) Invert() Affine {
	invDet := 1 / aff.Determinant()
	inv := Affine{
		N0: (aff.N4*aff.N8 - aff.N7*aff.N5) * invDet,
		N1: (aff.N7*aff.N2 - aff.N1*aff.N8) * invDet,
		N2: (aff.N1*aff.N5 - aff.N4*aff.N2) * invDet,
		N3: (aff.N6*aff.N5 - aff.N3*aff.N8) * invDet,
		N4: (aff.N0*aff.N8 - aff.N6*aff.N2) * invDet,
		N5: (aff.N3*aff.N2 - aff.N0*aff.N5) * invDet,
		N6: (aff.N3*aff.N7 - aff.N6*aff.N4) * invDet,
		N7: (aff.N6*aff.N1 - aff.N0*aff.N7) * invDet,
		N8: (aff.N0*aff.N4 - aff.N3*aff.N1) * invDet,
	}
	t := inv.TransformDirection(aff.Translation())
	inv.N9, inv.N10, inv.N11 = -t.X, -t.Y, -t.Z
	return inv
}

// Translation returns the translation component of this affine transformation.
func (aff Affine) Translation() Vec3 {
	return Vec3{aff.N9, aff.N10, aff.N11}
}

func (aff Affine) IsInf() bool {
	for _, n := range aff.Coefficients() {
		if math.IsInf(n, 0) {
			return true
		}
	}
	return false
}

func (aff Affine) IsNaN() bool {
	for _, n := range aff.Coefficients() {
		if math.IsNaN(n) {
			return true
		}
	}
	return false
}

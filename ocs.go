package dxfpath

import "math"

// OCS is an object coordinate system: the plane with normal vector Uz,
// embedded in world space by the arbitrary axis algorithm of the DXF
// reference. Planar entities such as lightweight polylines and hatches store
// their coordinates in the OCS of their extrusion vector.
type OCS struct {
	Ux, Uy, Uz Vec3
	isDefault  bool
}

// arbitraryAxisLimit is the bound below which the x and y components of an
// extrusion count as "close to the z axis".
const arbitraryAxisLimit = 1.0 / 64.0

// NewOCS returns the object coordinate system of the given extrusion vector.
// The zero vector and vectors close to +Z produce the identity OCS.
func NewOCS(extrusion Vec3) OCS {
	if extrusion.IsNull() || extrusion.Normalize().IsClose(ZAxis, AbsTol) {
		return OCS{Ux: XAxis, Uy: YAxis, Uz: ZAxis, isDefault: true}
	}
	uz := extrusion.Normalize()
	var ux Vec3
	if math.Abs(uz.X) < arbitraryAxisLimit && math.Abs(uz.Y) < arbitraryAxisLimit {
		ux = YAxis.Cross(uz).Normalize()
	} else {
		ux = ZAxis.Cross(uz).Normalize()
	}
	uy := uz.Cross(ux).Normalize()
	return OCS{Ux: ux, Uy: uy, Uz: uz}
}

// IsDefault reports whether the OCS is the world coordinate system.
func (o OCS) IsDefault() bool {
	return o.isDefault || o.Ux == Vec3{} && o.Uy == Vec3{} && o.Uz == Vec3{}
}

// FromWCS maps a point from world coordinates into the OCS.
func (o OCS) FromWCS(p Vec3) Vec3 {
	if o.IsDefault() {
		return p
	}
	return Vec3{p.Dot(o.Ux), p.Dot(o.Uy), p.Dot(o.Uz)}
}

// ToWCS maps a point from the OCS into world coordinates.
func (o OCS) ToWCS(p Vec3) Vec3 {
	if o.IsDefault() {
		return p
	}
	return o.Ux.Mul(p.X).Add(o.Uy.Mul(p.Y)).Add(o.Uz.Mul(p.Z))
}

// Affine returns the transform from OCS into world coordinates.
func (o OCS) Affine() Affine {
	if o.IsDefault() {
		return Identity
	}
	return NewAffineFromAxes(o.Ux, o.Uy, o.Uz, Vec3{})
}

package dxfpath

// Box is an axis-aligned bounding box. The zero value is an empty box;
// extending an empty box by a point yields a box containing only that point.
type Box struct {
	Min, Max Vec3
	valid    bool
}

// NewBoxFromPoints returns the smallest box containing all points.
func NewBoxFromPoints(pts ...Vec3) Box {
	var b Box
	for _, p := range pts {
		b = b.Extend(p)
	}
	return b
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return !b.valid
}

// Extend returns the smallest box containing b and pt.
func (b Box) Extend(pt Vec3) Box {
	if !b.valid {
		return Box{Min: pt, Max: pt, valid: true}
	}
	return Box{
		Min:   Vec3{min(b.Min.X, pt.X), min(b.Min.Y, pt.Y), min(b.Min.Z, pt.Z)},
		Max:   Vec3{max(b.Max.X, pt.X), max(b.Max.Y, pt.Y), max(b.Max.Z, pt.Z)},
		valid: true,
	}
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	if !o.valid {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Size returns the extents of the box.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center of the box.
func (b Box) Center() Vec3 {
	return b.Min.Midpoint(b.Max)
}

// Area2D returns the area of the box projected onto the xy plane.
func (b Box) Area2D() float64 {
	s := b.Size()
	return s.X * s.Y
}

// Diagonal returns the length of the box's diagonal.
func (b Box) Diagonal() float64 {
	return b.Size().Magnitude()
}

// ContainsPoint2D reports whether pt lies inside the box or on its border,
// ignoring the z axis.
func (b Box) ContainsPoint2D(pt Vec3) bool {
	return b.valid &&
		pt.X >= b.Min.X && pt.X <= b.Max.X &&
		pt.Y >= b.Min.Y && pt.Y <= b.Max.Y
}

// ContainsBox2D reports whether o lies entirely inside b, ignoring the z
// axis. Shared borders count as inside.
func (b Box) ContainsBox2D(o Box) bool {
	return o.valid && b.ContainsPoint2D(o.Min) && b.ContainsPoint2D(o.Max)
}

// Corners2D returns the four corners of the box in the plane of its minimum
// z, in counter-clockwise order starting at the minimum.
func (b Box) Corners2D() [4]Vec3 {
	z := b.Min.Z
	return [4]Vec3{
		{b.Min.X, b.Min.Y, z},
		{b.Max.X, b.Min.Y, z},
		{b.Max.X, b.Max.Y, z},
		{b.Min.X, b.Max.Y, z},
	}
}

func (b Box) IsInf() bool {
	return b.Min.IsInf() || b.Max.IsInf()
}

func (b Box) IsNaN() bool {
	return b.Min.IsNaN() || b.Max.IsNaN()
}

package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns the empty box, the identity element for Union
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: NewVec3(inf, inf, inf),
		Max: NewVec3(-inf, -inf, -inf),
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return EmptyAABB()
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min = min.Min(point)
		max = max.Max(point)
	}

	return AABB{Min: min, Max: max}
}

// Union returns the smallest AABB containing both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: aabb.Min.Min(other.Min),
		Max: aabb.Max.Max(other.Max),
	}
}

// Intersect returns the intersection of this AABB with another.
// The result is empty if the boxes do not overlap.
func (aabb AABB) Intersect(other AABB) AABB {
	result := AABB{
		Min: aabb.Min.Max(other.Min),
		Max: aabb.Max.Min(other.Max),
	}
	if !result.IsValid() {
		return EmptyAABB()
	}
	return result
}

// Contains tests whether a point lies within the box, bounds included
func (aabb AABB) Contains(point Vec3) bool {
	return point.X >= aabb.Min.X && point.X <= aabb.Max.X &&
		point.Y >= aabb.Min.Y && point.Y <= aabb.Max.Y &&
		point.Z >= aabb.Min.Z && point.Z <= aabb.Max.Z
}

// ContainsBox tests whether another box lies entirely within this one.
// The empty box is contained in every box.
func (aabb AABB) ContainsBox(other AABB) bool {
	if other.IsEmpty() {
		return true
	}
	return aabb.Contains(other.Min) && aabb.Contains(other.Max)
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	if aabb.IsEmpty() {
		return 0
	}
	size := aabb.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// IsEmpty returns true if the box contains no points
func (aabb AABB) IsEmpty() bool {
	return !aabb.IsValid()
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	expansion := NewVec3(amount, amount, amount)
	return AABB{
		Min: aabb.Min.Subtract(expansion),
		Max: aabb.Max.Add(expansion),
	}
}

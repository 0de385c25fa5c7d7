package geom

import "github.com/Faultbox/midgard-collide/pkg/math"

// BoundingBox is an axis-aligned bounding box.
type BoundingBox struct {
	Min math.Vec3
	Max math.Vec3
}

// NewBoundingBox creates a box from two corners, handling swapped axes.
func NewBoundingBox(a, b math.Vec3) BoundingBox {
	return BoundingBox{Min: a.Min(b), Max: a.Max(b)}
}

// BoundingBoxFromPoints returns the smallest box containing all points.
func BoundingBoxFromPoints(points ...math.Vec3) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}
	box := BoundingBox{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box
}

// Center returns the box midpoint.
func (b BoundingBox) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the full edge lengths.
func (b BoundingBox) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Extents returns the half edge lengths.
func (b BoundingBox) Extents() math.Vec3 {
	return b.Size().Scale(0.5)
}

// Corners returns the 8 corners in the same order as OrientedBox.Corners.
func (b BoundingBox) Corners() [8]math.Vec3 {
	lo, hi := b.Min, b.Max
	return [8]math.Vec3{
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
	}
}

// ContainsPoint reports whether p lies inside or on the box.
func (b BoundingBox) ContainsPoint(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ContainsBox reports whether other lies fully inside b.
func (b BoundingBox) ContainsBox(other BoundingBox) bool {
	return b.ContainsPoint(other.Min) && b.ContainsPoint(other.Max)
}

// Merge returns the smallest box containing both boxes.
func (b BoundingBox) Merge(other BoundingBox) BoundingBox {
	return BoundingBox{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Intersects tests the ray against the box.
// Returns the hit distance, the outward face normal and whether it hit.
// If the ray starts inside the box, the exit distance is returned.
func (b BoundingBox) Intersects(r Ray) (float32, math.Vec3, bool) {
	return intersectSlabs(r.Origin, r.Direction, b.Min, b.Max)
}

package geom

import "github.com/Faultbox/midgard-collide/pkg/math"

// OrientedBox is a box with arbitrary orientation.
// Extents are half edge lengths along the box's local axes.
type OrientedBox struct {
	Extents        math.Vec3
	Transformation Transform
}

// NewCenteredOrientedBox creates an axis-aligned oriented box centered at
// center with full edge lengths size.
func NewCenteredOrientedBox(center, size math.Vec3) OrientedBox {
	return OrientedBox{
		Extents: size.Abs().Scale(0.5),
		Transformation: Transform{
			Translation: center,
			Orientation: math.QuatIdentity(),
		},
	}
}

// Center returns the box center in world space.
func (o OrientedBox) Center() math.Vec3 {
	return o.Transformation.Translation
}

// Transform returns the box moved by t (t is applied after the box's own
// transformation).
func (o OrientedBox) Transform(t Transform) OrientedBox {
	o.Transformation = t.Mul(o.Transformation)
	return o
}

// axes returns the box's local axes scaled by the extents, in world space.
func (o OrientedBox) axes() (x, y, z math.Vec3) {
	q := o.Transformation.Orientation
	x = q.Rotate(math.Vec3{X: o.Extents.X})
	y = q.Rotate(math.Vec3{Y: o.Extents.Y})
	z = q.Rotate(math.Vec3{Z: o.Extents.Z})
	return x, y, z
}

// Corners returns the 8 corners of the box in world space.
// Order: top face (+Y) 0..3, bottom face (-Y) 4..7, each starting at +X+Z
// and winding through +X-Z, -X-Z, -X+Z.
func (o OrientedBox) Corners() [8]math.Vec3 {
	xv, yv, zv := o.axes()
	c := o.Center()
	return [8]math.Vec3{
		c.Add(xv).Add(yv).Add(zv),
		c.Add(xv).Add(yv).Sub(zv),
		c.Sub(xv).Add(yv).Sub(zv),
		c.Sub(xv).Add(yv).Add(zv),
		c.Add(xv).Sub(yv).Add(zv),
		c.Add(xv).Sub(yv).Sub(zv),
		c.Sub(xv).Sub(yv).Sub(zv),
		c.Sub(xv).Sub(yv).Add(zv),
	}
}

// BoxEdges lists corner index pairs forming the 12 edges of a box, for the
// ordering returned by Corners.
var BoxEdges = [12][2]int{
	{0, 1}, {0, 3}, {0, 4},
	{1, 2}, {1, 5},
	{2, 3}, {2, 6},
	{3, 7},
	{4, 5}, {4, 7},
	{5, 6},
	{6, 7},
}

// BoundingBox returns the axis-aligned box enclosing the oriented box.
// Each world-axis half size is the support of the three scaled local axes.
func (o OrientedBox) BoundingBox() BoundingBox {
	xv, yv, zv := o.axes()
	half := xv.Abs().Add(yv.Abs()).Add(zv.Abs())
	c := o.Center()
	return BoundingBox{Min: c.Sub(half), Max: c.Add(half)}
}

// ContainsPoint reports whether p lies inside or on the box.
func (o OrientedBox) ContainsPoint(p math.Vec3) bool {
	local := o.Transformation.InverseTransformPoint(p)
	e := o.Extents.Scale(1 + containsSlack)
	return abs(local.X) <= e.X && abs(local.Y) <= e.Y && abs(local.Z) <= e.Z
}

// Intersects tests the ray against the box exactly.
// The ray is moved into box space, slab-tested against the extents, and the
// hit normal is rotated back to world space.
func (o OrientedBox) Intersects(r Ray) (float32, math.Vec3, bool) {
	origin := o.Transformation.InverseTransformPoint(r.Origin)
	dir := o.Transformation.InverseTransformDirection(r.Direction)

	t, n, ok := intersectSlabs(origin, dir, o.Extents.Negate(), o.Extents)
	if !ok {
		return 0, math.Vec3{}, false
	}
	return t, o.Transformation.TransformDirection(n), true
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

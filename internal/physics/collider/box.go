package collider

import (
	"github.com/Faultbox/midgard-collide/internal/physics"
	"github.com/Faultbox/midgard-collide/pkg/geom"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

// DefaultBoxSize is the edge length of a new box collider.
const DefaultBoxSize float32 = 100

// BoxCollider is a box-shaped collider.
type BoxCollider struct {
	base
	size math.Vec3

	bounds geom.OrientedBox
	box    geom.BoundingBox
	sphere geom.BoundingSphere
}

// NewBox creates a box collider with the default size, computes its bounds
// and registers its geometry with the backend.
func NewBox(opts Options) *BoxCollider {
	c := &BoxCollider{
		base: newBase(KindBox, opts),
		size: math.Splat(DefaultBoxSize),
	}
	c.pushGeometry(c.GetGeometry())
	c.UpdateBounds()
	return c
}

// Kind returns KindBox.
func (c *BoxCollider) Kind() Kind { return KindBox }

// Size returns the full edge lengths of the box in local space.
func (c *BoxCollider) Size() math.Vec3 { return c.size }

// SetSize changes the box size. Values within the tolerance of the current
// size are ignored: no geometry update and no bounds recompute happen.
func (c *BoxCollider) SetSize(size math.Vec3) {
	if !c.finite("size", size) || size.NearEqual(c.size, c.tolerance) {
		return
	}
	c.applySize(size)
}

// applySize stores size exactly and refreshes geometry and bounds.
func (c *BoxCollider) applySize(size math.Vec3) {
	c.size = size
	c.pushGeometry(c.GetGeometry())
	c.UpdateBounds()
}

// SetCenter moves the local pivot.
func (c *BoxCollider) SetCenter(center math.Vec3) {
	if !c.finite("center", center) || !c.setCenter(center) {
		return
	}
	c.UpdateBounds()
}

// SetTransform applies the owner's world transform and accumulated scale.
func (c *BoxCollider) SetTransform(t geom.Transform, scale math.Vec3) {
	if !c.finiteTransform(t, scale) {
		return
	}
	if c.setTransform(t, scale) {
		c.pushGeometry(c.GetGeometry())
	}
	c.UpdateBounds()
}

// UpdateBounds builds the oriented box from center and size, places it with
// the world transform, then derives the enclosing axis-aligned box and the
// sphere enclosing that box.
func (c *BoxCollider) UpdateBounds() {
	c.bounds = c.localBox(c.size)
	c.box = c.bounds.BoundingBox()
	c.sphere = geom.SphereFromBox(c.box)
	c.revision++
}

// GetGeometry returns box half extents |size * scale| / 2, each clamped to
// physics.MinExtent.
func (c *BoxCollider) GetGeometry() physics.CollisionShape {
	var shape physics.CollisionShape
	shape.SetBox(physics.ClampHalfExtents(c.size, c.cachedScale))
	return shape
}

// IntersectsItself tests the ray against the oriented box exactly.
func (c *BoxCollider) IntersectsItself(ray geom.Ray) (float32, math.Vec3, bool) {
	return c.bounds.Intersects(ray)
}

// OrientedBox returns the cached world-space oriented box.
func (c *BoxCollider) OrientedBox() geom.OrientedBox { return c.bounds }

// BoundingBox returns the cached world-space axis-aligned box.
func (c *BoxCollider) BoundingBox() geom.BoundingBox { return c.box }

// BoundingSphere returns the cached enclosing sphere.
func (c *BoxCollider) BoundingSphere() geom.BoundingSphere { return c.sphere }

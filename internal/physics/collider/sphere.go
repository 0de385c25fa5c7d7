package collider

import (
	"github.com/Faultbox/midgard-collide/internal/physics"
	"github.com/Faultbox/midgard-collide/pkg/geom"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

// DefaultSphereRadius is the radius of a new sphere collider.
const DefaultSphereRadius float32 = 50

// SphereCollider is a sphere-shaped collider.
// Its bounding sphere is exact; the boxes enclose the sphere.
type SphereCollider struct {
	base
	radius float32

	sphere geom.BoundingSphere
	bounds geom.OrientedBox
	box    geom.BoundingBox
}

// NewSphere creates a sphere collider with the default radius.
func NewSphere(opts Options) *SphereCollider {
	c := &SphereCollider{
		base:   newBase(KindSphere, opts),
		radius: DefaultSphereRadius,
	}
	c.pushGeometry(c.GetGeometry())
	c.UpdateBounds()
	return c
}

// Kind returns KindSphere.
func (c *SphereCollider) Kind() Kind { return KindSphere }

// Radius returns the local radius.
func (c *SphereCollider) Radius() float32 { return c.radius }

// SetRadius changes the radius; values within tolerance are ignored.
func (c *SphereCollider) SetRadius(radius float32) {
	if !c.finite("radius", math.Splat(radius)) || math.NearEqual(radius, c.radius, c.tolerance) {
		return
	}
	c.applyRadius(radius)
}

func (c *SphereCollider) applyRadius(radius float32) {
	c.radius = radius
	c.pushGeometry(c.GetGeometry())
	c.UpdateBounds()
}

// SetCenter moves the local pivot.
func (c *SphereCollider) SetCenter(center math.Vec3) {
	if !c.finite("center", center) || !c.setCenter(center) {
		return
	}
	c.UpdateBounds()
}

// SetTransform applies the owner's world transform and accumulated scale.
func (c *SphereCollider) SetTransform(t geom.Transform, scale math.Vec3) {
	if !c.finiteTransform(t, scale) {
		return
	}
	if c.setTransform(t, scale) {
		c.pushGeometry(c.GetGeometry())
	}
	c.UpdateBounds()
}

// scaledRadius uses the largest scale axis; a sphere cannot scale unevenly.
func (c *SphereCollider) scaledRadius() float32 {
	r := c.radius
	if r < 0 {
		r = -r
	}
	return r * c.cachedScale.Abs().MaxComponent()
}

// UpdateBounds recomputes the sphere and the boxes enclosing it.
func (c *SphereCollider) UpdateBounds() {
	r := c.scaledRadius()
	c.sphere = geom.BoundingSphere{
		Center: c.transform.TransformPoint(c.center.Mul(c.cachedScale)),
		Radius: r,
	}
	// Rotation does not change a sphere, keep the box axis aligned
	c.bounds = geom.NewCenteredOrientedBox(c.sphere.Center, math.Splat(2*r))
	c.box = c.bounds.BoundingBox()
	c.revision++
}

// GetGeometry returns the scaled radius clamped to physics.MinExtent.
func (c *SphereCollider) GetGeometry() physics.CollisionShape {
	var shape physics.CollisionShape
	shape.SetSphere(physics.SanitizeExtent(c.scaledRadius()))
	return shape
}

// IntersectsItself tests the ray against the sphere exactly.
func (c *SphereCollider) IntersectsItself(ray geom.Ray) (float32, math.Vec3, bool) {
	return c.sphere.Intersects(ray)
}

// OrientedBox returns the cube enclosing the sphere.
func (c *SphereCollider) OrientedBox() geom.OrientedBox { return c.bounds }

// BoundingBox returns the axis-aligned box enclosing the sphere.
func (c *SphereCollider) BoundingBox() geom.BoundingBox { return c.box }

// BoundingSphere returns the collider sphere in world space.
func (c *SphereCollider) BoundingSphere() geom.BoundingSphere { return c.sphere }

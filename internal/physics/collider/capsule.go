package collider

import (
	gomath "math"

	"github.com/Faultbox/midgard-collide/internal/physics"
	"github.com/Faultbox/midgard-collide/pkg/geom"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

// Capsule defaults.
const (
	DefaultCapsuleRadius float32 = 20
	DefaultCapsuleHeight float32 = 100
)

// CapsuleCollider is a capsule aligned with the local Y axis. Height is the
// length of the cylinder part, without the two hemispherical caps.
type CapsuleCollider struct {
	base
	radius float32
	height float32

	bounds geom.OrientedBox
	box    geom.BoundingBox
	sphere geom.BoundingSphere
}

// NewCapsule creates a capsule collider with default radius and height.
func NewCapsule(opts Options) *CapsuleCollider {
	c := &CapsuleCollider{
		base:   newBase(KindCapsule, opts),
		radius: DefaultCapsuleRadius,
		height: DefaultCapsuleHeight,
	}
	c.pushGeometry(c.GetGeometry())
	c.UpdateBounds()
	return c
}

// Kind returns KindCapsule.
func (c *CapsuleCollider) Kind() Kind { return KindCapsule }

// Radius returns the local cap radius.
func (c *CapsuleCollider) Radius() float32 { return c.radius }

// Height returns the local cylinder length.
func (c *CapsuleCollider) Height() float32 { return c.height }

// SetRadius changes the radius; values within tolerance are ignored.
func (c *CapsuleCollider) SetRadius(radius float32) {
	if !c.finite("radius", math.Splat(radius)) || math.NearEqual(radius, c.radius, c.tolerance) {
		return
	}
	c.radius = radius
	c.refresh()
}

// SetHeight changes the cylinder length; values within tolerance are ignored.
func (c *CapsuleCollider) SetHeight(height float32) {
	if !c.finite("height", math.Splat(height)) || math.NearEqual(height, c.height, c.tolerance) {
		return
	}
	c.height = height
	c.refresh()
}

func (c *CapsuleCollider) refresh() {
	c.pushGeometry(c.GetGeometry())
	c.UpdateBounds()
}

// SetCenter moves the local pivot.
func (c *CapsuleCollider) SetCenter(center math.Vec3) {
	if !c.finite("center", center) || !c.setCenter(center) {
		return
	}
	c.UpdateBounds()
}

// SetTransform applies the owner's world transform and accumulated scale.
func (c *CapsuleCollider) SetTransform(t geom.Transform, scale math.Vec3) {
	if !c.finiteTransform(t, scale) {
		return
	}
	if c.setTransform(t, scale) {
		c.pushGeometry(c.GetGeometry())
	}
	c.UpdateBounds()
}

// scaled returns the world radius and cylinder half height. The radius
// takes the larger of the two axes perpendicular to the capsule axis.
func (c *CapsuleCollider) scaled() (radius, halfHeight float32) {
	s := c.cachedScale.Abs()
	radius = abs32(c.radius) * max(s.X, s.Z)
	halfHeight = abs32(c.height) * s.Y * 0.5
	return radius, halfHeight
}

// UpdateBounds builds the oriented box around the capsule, then the
// enclosing axis-aligned box and sphere.
func (c *CapsuleCollider) UpdateBounds() {
	r, hh := c.scaled()
	size := math.Vec3{X: 2 * r, Y: 2 * (hh + r), Z: 2 * r}
	c.bounds = geom.NewCenteredOrientedBox(c.center.Mul(c.cachedScale), size).Transform(c.transform)
	c.box = c.bounds.BoundingBox()
	c.sphere = geom.SphereFromBox(c.box)
	c.revision++
}

// GetGeometry returns the scaled radius and half height, each clamped to
// physics.MinExtent.
func (c *CapsuleCollider) GetGeometry() physics.CollisionShape {
	r, hh := c.scaled()
	var shape physics.CollisionShape
	shape.SetCapsule(physics.SanitizeExtent(r), physics.SanitizeExtent(hh))
	return shape
}

// IntersectsItself tests the ray against the capsule exactly.
func (c *CapsuleCollider) IntersectsItself(ray geom.Ray) (float32, math.Vec3, bool) {
	r, hh := c.scaled()
	local := c.bounds.Transformation
	origin := local.InverseTransformPoint(ray.Origin)
	dir := local.InverseTransformDirection(ray.Direction)

	t, n, ok := intersectCapsule(origin, dir, r, hh)
	if !ok {
		return 0, math.Vec3{}, false
	}
	return t, local.TransformDirection(n), true
}

// OrientedBox returns the cached world-space oriented box.
func (c *CapsuleCollider) OrientedBox() geom.OrientedBox { return c.bounds }

// BoundingBox returns the cached world-space axis-aligned box.
func (c *CapsuleCollider) BoundingBox() geom.BoundingBox { return c.box }

// BoundingSphere returns the cached enclosing sphere.
func (c *CapsuleCollider) BoundingSphere() geom.BoundingSphere { return c.sphere }

// span is the parameter interval a ray spends inside a convex part.
type span struct {
	in, out float32
	ok      bool
}

// intersectCapsule intersects a ray with a Y-aligned capsule centered at the
// origin. The capsule is the convex union of a cylinder and two spheres, so
// the ray's inside interval is [min entry, max exit] over the parts.
func intersectCapsule(o, d math.Vec3, r, hh float32) (float32, math.Vec3, bool) {
	if d == (math.Vec3{}) || !o.IsFinite() || !d.IsFinite() || !math.IsFinite(r) || !math.IsFinite(hh) {
		return 0, math.Vec3{}, false
	}
	parts := [3]span{
		sphereSpan(o.Sub(math.Vec3{Y: hh}), d, r),
		sphereSpan(o.Sub(math.Vec3{Y: -hh}), d, r),
		cylinderSpan(o, d, r, hh),
	}

	in := float32(gomath.MaxFloat32)
	out := float32(-gomath.MaxFloat32)
	hit := false
	for _, p := range parts {
		if !p.ok {
			continue
		}
		hit = true
		in = min(in, p.in)
		out = max(out, p.out)
	}
	if !hit || out < 0 {
		return 0, math.Vec3{}, false
	}

	t := in
	if t < 0 {
		t = out
	}

	// Outward normal: from the closest point on the axis segment
	p := o.Add(d.Scale(t))
	axis := math.Vec3{Y: min(max(p.Y, -hh), hh)}
	return t, p.Sub(axis).Normalize(), true
}

// sphereSpan intersects a ray (origin relative to the sphere center) with a sphere.
func sphereSpan(m, d math.Vec3, r float32) span {
	a := d.LengthSquared()
	if a == 0 {
		return span{}
	}
	b := m.Dot(d)
	c := m.LengthSquared() - r*r
	disc := b*b - a*c
	if disc < 0 {
		return span{}
	}
	root := float32(gomath.Sqrt(float64(disc)))
	return span{in: (-b - root) / a, out: (-b + root) / a, ok: true}
}

// cylinderSpan intersects a ray with the Y-aligned cylinder |y| <= hh.
func cylinderSpan(o, d math.Vec3, r, hh float32) span {
	in := float32(-gomath.MaxFloat32)
	out := float32(gomath.MaxFloat32)

	a := d.X*d.X + d.Z*d.Z
	if a == 0 {
		if o.X*o.X+o.Z*o.Z > r*r {
			return span{}
		}
	} else {
		b := o.X*d.X + o.Z*d.Z
		c := o.X*o.X + o.Z*o.Z - r*r
		disc := b*b - a*c
		if disc < 0 {
			return span{}
		}
		root := float32(gomath.Sqrt(float64(disc)))
		in, out = (-b-root)/a, (-b+root)/a
	}

	if d.Y == 0 {
		if o.Y < -hh || o.Y > hh {
			return span{}
		}
	} else {
		t1 := (-hh - o.Y) / d.Y
		t2 := (hh - o.Y) / d.Y
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		in = max(in, t1)
		out = min(out, t2)
	}

	if in > out {
		return span{}
	}
	return span{in: in, out: out, ok: true}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

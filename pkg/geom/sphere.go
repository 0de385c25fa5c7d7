package geom

import (
	gomath "math"

	"github.com/Faultbox/midgard-collide/pkg/math"
)

// containsSlack absorbs float32 rounding in containment checks.
const containsSlack = 1e-4

// BoundingSphere is a sphere used for cheap culling tests.
type BoundingSphere struct {
	Center math.Vec3
	Radius float32
}

// SphereFromBox returns the sphere enclosing the box: its center is the box
// center and its radius is half the box diagonal.
func SphereFromBox(b BoundingBox) BoundingSphere {
	return BoundingSphere{
		Center: b.Center(),
		Radius: b.Size().Length() * 0.5,
	}
}

// ContainsPoint reports whether p lies inside or on the sphere.
func (s BoundingSphere) ContainsPoint(p math.Vec3) bool {
	return p.Distance(s.Center) <= s.Radius+s.slack()
}

// ContainsBox reports whether every corner of b lies inside the sphere.
func (s BoundingSphere) ContainsBox(b BoundingBox) bool {
	for _, c := range b.Corners() {
		if !s.ContainsPoint(c) {
			return false
		}
	}
	return true
}

// Intersects tests the ray against the sphere.
// If the ray starts inside the sphere, the exit distance is returned.
func (s BoundingSphere) Intersects(r Ray) (float32, math.Vec3, bool) {
	if !r.Origin.IsFinite() || !r.Direction.IsFinite() || !s.Center.IsFinite() || !math.IsFinite(s.Radius) {
		return 0, math.Vec3{}, false
	}
	m := r.Origin.Sub(s.Center)
	b := m.Dot(r.Direction)
	c := m.LengthSquared() - s.Radius*s.Radius
	if c > 0 && b > 0 {
		return 0, math.Vec3{}, false
	}

	disc := b*b - c
	if !(disc >= 0) {
		return 0, math.Vec3{}, false
	}

	root := float32(gomath.Sqrt(float64(disc)))
	t := -b - root
	if t < 0 {
		t = -b + root
	}
	if t < 0 || !math.IsFinite(t) {
		return 0, math.Vec3{}, false
	}
	return t, r.At(t).Sub(s.Center).Normalize(), true
}

func (s BoundingSphere) slack() float32 {
	return containsSlack * max(1, s.Radius)
}

// Package geom provides bounding volumes, rays and rigid transforms used for
// culling, selection and picking.
package geom

import "github.com/Faultbox/midgard-collide/pkg/math"

// Transform is a rigid transform: rotation followed by translation.
// Scale is deliberately not part of it; owners carry scale separately.
type Transform struct {
	Translation math.Vec3
	Orientation math.Quat
}

// IdentityTransform returns a transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{Orientation: math.QuatIdentity()}
}

// NewTransform creates a transform from a position and rotation.
func NewTransform(translation math.Vec3, orientation math.Quat) Transform {
	return Transform{Translation: translation, Orientation: orientation.Normalize()}
}

// TransformPoint maps a local-space point to world space.
func (t Transform) TransformPoint(p math.Vec3) math.Vec3 {
	return t.Orientation.Rotate(p).Add(t.Translation)
}

// TransformDirection rotates a local-space direction into world space.
func (t Transform) TransformDirection(d math.Vec3) math.Vec3 {
	return t.Orientation.Rotate(d)
}

// InverseTransformPoint maps a world-space point to local space.
func (t Transform) InverseTransformPoint(p math.Vec3) math.Vec3 {
	return t.Orientation.Conjugate().Rotate(p.Sub(t.Translation))
}

// InverseTransformDirection rotates a world-space direction into local space.
func (t Transform) InverseTransformDirection(d math.Vec3) math.Vec3 {
	return t.Orientation.Conjugate().Rotate(d)
}

// Mul returns t applied after child (parent * child).
func (t Transform) Mul(child Transform) Transform {
	return Transform{
		Translation: t.TransformPoint(child.Translation),
		Orientation: t.Orientation.Mul(child.Orientation).Normalize(),
	}
}

// Mat4 returns the transform as a column-major matrix.
func (t Transform) Mat4() math.Mat4 {
	return math.Translation(t.Translation).Mul(t.Orientation.ToMat4())
}

// NearEqual reports whether both transforms match within tolerance.
func (t Transform) NearEqual(other Transform, tolerance float32) bool {
	return t.Translation.NearEqual(other.Translation, tolerance) &&
		t.Orientation.NearEqual(other.Orientation, tolerance)
}

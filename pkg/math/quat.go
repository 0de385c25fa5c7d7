package math

import "math"

// Quat is a rotation quaternion with scalar part W.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the quaternion for no rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle returns a rotation of angle radians about a normalized axis.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	s, c := math.Sincos(float64(angle) / 2)
	v := axis.Scale(float32(s))
	return Quat{X: v.X, Y: v.Y, Z: v.Z, W: float32(c)}
}

// QuatFromTo returns the shortest rotation taking direction from onto to.
// Both vectors should be normalized.
func QuatFromTo(from, to Vec3) Quat {
	d := from.Dot(to)
	if d >= 1-ZeroTolerance {
		return QuatIdentity()
	}
	if d <= -1+ZeroTolerance {
		// Opposite: rotate 180 degrees around any perpendicular axis
		axis := Vec3{X: 1}.Cross(from)
		if axis.LengthSquared() < ZeroTolerance {
			axis = Vec3{Y: 1}.Cross(from)
		}
		return QuatFromAxisAngle(axis.Normalize(), math.Pi)
	}
	c := from.Cross(to)
	return Quat{X: c.X, Y: c.Y, Z: c.Z, W: 1 + d}.Normalize()
}

func (q Quat) vec() Vec3 { return Vec3{q.X, q.Y, q.Z} }

// Dot returns the 4D dot product.
func (q Quat) Dot(other Quat) float32 {
	return q.vec().Dot(other.vec()) + q.W*other.W
}

// Normalize returns q scaled to unit length. Degenerate quaternions
// normalize to the identity.
func (q Quat) Normalize() Quat {
	n := float32(math.Sqrt(float64(q.Dot(q))))
	if n < ZeroTolerance || !IsFinite(n) {
		return QuatIdentity()
	}
	return Quat{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

// Mul returns the rotation q applied after other.
func (q Quat) Mul(other Quat) Quat {
	a, b := q.vec(), other.vec()
	v := b.Scale(q.W).Add(a.Scale(other.W)).Add(a.Cross(b))
	return Quat{X: v.X, Y: v.Y, Z: v.Z, W: q.W*other.W - a.Dot(b)}
}

// Conjugate returns the inverse rotation of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Rotate applies the rotation to a vector.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := q.vec()
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// ToMat4 returns the rotation as a matrix. The columns are the rotated
// basis axes.
func (q Quat) ToMat4() Mat4 {
	q = q.Normalize()
	x := q.Rotate(Vec3{X: 1})
	y := q.Rotate(Vec3{Y: 1})
	z := q.Rotate(Vec3{Z: 1})
	return Mat4{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		0, 0, 0, 1,
	}
}

// IsFinite reports whether no component is NaN or infinite.
func (q Quat) IsFinite() bool {
	return q.vec().IsFinite() && IsFinite(q.W)
}

// NearEqual reports whether two quaternions match component-wise within tolerance.
func (q Quat) NearEqual(other Quat, tolerance float32) bool {
	return q.vec().NearEqual(other.vec(), tolerance) && NearEqual(q.W, other.W, tolerance)
}

package geom

import "github.com/Faultbox/midgard-collide/pkg/math"

// Plane is n·p + D = 0 with a unit normal pointing into the frustum.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// Distance returns the signed distance from p to the plane.
func (p Plane) Distance(point math.Vec3) float32 {
	return p.Normal.Dot(point) + p.D
}

func newPlane(a, b, c, d float32) Plane {
	n := math.Vec3{X: a, Y: b, Z: c}
	l := n.Length()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Scale(1 / l), D: d / l}
}

// Frustum is a view volume bounded by six planes (left, right, bottom, top,
// near, far).
type Frustum struct {
	Planes [6]Plane
}

// FrustumFromMatrix extracts the frustum planes from a view-projection matrix.
func FrustumFromMatrix(m math.Mat4) Frustum {
	// Rows of the column-major matrix
	r0 := [4]float32{m[0], m[4], m[8], m[12]}
	r1 := [4]float32{m[1], m[5], m[9], m[13]}
	r2 := [4]float32{m[2], m[6], m[10], m[14]}
	r3 := [4]float32{m[3], m[7], m[11], m[15]}

	plane := func(a [4]float32, b [4]float32, s float32) Plane {
		return newPlane(a[0]+s*b[0], a[1]+s*b[1], a[2]+s*b[2], a[3]+s*b[3])
	}

	return Frustum{Planes: [6]Plane{
		plane(r3, r0, 1),
		plane(r3, r0, -1),
		plane(r3, r1, 1),
		plane(r3, r1, -1),
		plane(r3, r2, 1),
		plane(r3, r2, -1),
	}}
}

// IntersectsSphere reports whether the sphere is at least partially inside.
func (f Frustum) IntersectsSphere(s BoundingSphere) bool {
	for _, p := range f.Planes {
		if p.Distance(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}

// Package picking provides ray casting and object picking utilities.
package picking

import (
	gomath "math"

	"github.com/Faultbox/midgard-collide/pkg/geom"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) geom.Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := (2.0*screenX/viewportW - 1.0)
	ndcY := (1.0 - 2.0*screenY/viewportH) // Flip Y

	near := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1.0, 1.0})
	far := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1.0, 1.0})

	return geom.NewRay(near, far.Sub(near))
}

// unproject transforms a clip-space point and applies the perspective divide.
func unproject(invViewProj math.Mat4, p math.Vec4) math.Vec3 {
	w := invViewProj.MulVec4(p)
	if w[3] != 0 {
		w[0] /= w[3]
		w[1] /= w[3]
		w[2] /= w[3]
	}
	return math.Vec3{X: w[0], Y: w[1], Z: w[2]}
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func IntersectPlaneY(r geom.Ray, planeY float32) (x, z float32, ok bool) {
	// Solve: Origin.Y + t * Direction.Y = planeY
	if gomath.Abs(float64(r.Direction.Y)) < 0.001 {
		return 0, 0, false // Ray parallel to plane
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false // Intersection behind ray origin
	}

	p := r.At(t)
	return p.X, p.Z, true
}

// Pickable is anything with a cheap enclosing sphere and an exact ray test.
type Pickable interface {
	BoundingSphere() geom.BoundingSphere
	IntersectsItself(ray geom.Ray) (float32, math.Vec3, bool)
}

// Hit describes the closest object hit by a ray.
type Hit struct {
	Index    int
	Distance float32
	Normal   math.Vec3
}

// Pick returns the nearest object hit by the ray. Objects whose bounding
// sphere the ray misses are rejected before the exact test.
func Pick[T Pickable](ray geom.Ray, objects []T) (Hit, bool) {
	best := Hit{Index: -1, Distance: float32(gomath.MaxFloat32)}
	for i, obj := range objects {
		if _, _, ok := obj.BoundingSphere().Intersects(ray); !ok {
			continue
		}
		dist, normal, ok := obj.IntersectsItself(ray)
		if !ok || dist >= best.Distance {
			continue
		}
		best = Hit{Index: i, Distance: dist, Normal: normal}
	}
	return best, best.Index >= 0
}

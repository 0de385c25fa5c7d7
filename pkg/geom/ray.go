package geom

import (
	gomath "math"

	"github.com/Faultbox/midgard-collide/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// NewRay creates a ray, normalizing the direction.
func NewRay(origin, direction math.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// intersectSlabs runs the slab test of a ray against the box [lo, hi].
// Returns the entry distance and the face normal it enters through. If the
// origin is inside the box, the exit distance and exit face normal are
// returned instead. Non-finite input never hits.
func intersectSlabs(origin, dir, lo, hi math.Vec3) (float32, math.Vec3, bool) {
	if dir == (math.Vec3{}) || !dir.IsFinite() || !origin.IsFinite() || !lo.IsFinite() || !hi.IsFinite() {
		return 0, math.Vec3{}, false
	}

	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)
	minAxis, maxAxis := -1, -1

	for i := 0; i < 3; i++ {
		o, d := origin.Component(i), dir.Component(i)
		l, h := lo.Component(i), hi.Component(i)
		if d == 0 {
			if o < l || o > h {
				return 0, math.Vec3{}, false
			}
			continue
		}

		t1 := (l - o) / d
		t2 := (h - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			minAxis = i
		}
		if t2 < tmax {
			tmax = t2
			maxAxis = i
		}
	}

	if minAxis < 0 || maxAxis < 0 || tmax < tmin || tmax < 0 {
		return 0, math.Vec3{}, false
	}

	if tmin >= 0 {
		return tmin, math.Vec3{}.WithComponent(minAxis, -sign(dir.Component(minAxis))), true
	}
	return tmax, math.Vec3{}.WithComponent(maxAxis, sign(dir.Component(maxAxis))), true
}

func sign(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}

package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/midgard-collide/pkg/geom"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

const epsilon = 1e-3

func approxEqual(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < epsilon
}

func TestPositionOnOrbit(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 10}
	c.Distance = 5
	c.RotationX = 0
	c.RotationY = 0

	pos := c.Position()
	if !approxEqual(pos.X, 10) || !approxEqual(pos.Y, 0) || !approxEqual(pos.Z, 5) {
		t.Errorf("Position = %v, want (10, 0, 5)", pos)
	}
	if d := pos.Distance(c.Center); !approxEqual(d, 5) {
		t.Errorf("distance to center = %v, want 5", d)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	if c.RotationX != c.MaxPitch {
		t.Errorf("RotationX = %v, want %v", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.RotationX != c.MinPitch {
		t.Errorf("RotationX = %v, want %v", c.RotationX, c.MinPitch)
	}
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleZoom(100)
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want %v", c.Distance, c.MinDistance)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	box := geom.NewBoundingBox(math.Vec3{X: 8, Y: -2, Z: -2}, math.Vec3{X: 12, Y: 2, Z: 2})
	c.FitToBounds(box)

	if c.Center != (math.Vec3{X: 10}) {
		t.Errorf("Center = %v, want (10, 0, 0)", c.Center)
	}

	// The enclosing sphere must be inside the frustum
	f := c.Frustum(1)
	if !f.IntersectsSphere(geom.SphereFromBox(box)) {
		t.Error("fitted bounds should be visible")
	}
	for _, p := range f.Planes {
		if p.Distance(c.Center) < 0 {
			t.Errorf("center outside plane %+v", p)
		}
	}
}

func TestFrustumCullsBehindCamera(t *testing.T) {
	c := NewOrbitCamera()
	c.Distance = 10
	c.RotationX = 0
	c.RotationY = 0

	f := c.Frustum(16.0 / 9.0)
	if !f.IntersectsSphere(geom.BoundingSphere{Radius: 1}) {
		t.Error("center should be visible")
	}
	if f.IntersectsSphere(geom.BoundingSphere{Center: math.Vec3{Z: 50}, Radius: 1}) {
		t.Error("sphere behind the camera should be culled")
	}
}

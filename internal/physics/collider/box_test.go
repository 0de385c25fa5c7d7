package collider

import (
	"errors"
	gomath "math"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-collide/internal/physics"
	"github.com/Faultbox/midgard-collide/pkg/geom"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

const eps = 1e-4

func vecNear(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps)
	assert.InDelta(t, want.Y, got.Y, eps)
	assert.InDelta(t, want.Z, got.Z, eps)
}

func newTestBox(t *testing.T, size math.Vec3) (*BoxCollider, *physics.Recorder) {
	t.Helper()
	rec := physics.NewRecorder()
	c := NewBox(Options{Backend: rec})
	c.SetSize(size)
	rec.Reset()
	return c, rec
}

func TestBoxDefaults(t *testing.T) {
	rec := physics.NewRecorder()
	c := NewBox(Options{Backend: rec})

	assert.Equal(t, math.Splat(100), c.Size())
	assert.Equal(t, math.Splat(1), c.Scale())
	assert.NotEqual(t, uuid.Nil, c.ID())

	calls := rec.Calls()
	require.Len(t, calls, 1, "construction registers the shape once")
	assert.Equal(t, physics.OpCreate, calls[0].Op)
	assert.Equal(t, math.Splat(50), calls[0].Shape.HalfExtents)
	vecNear(t, math.Splat(-50), c.BoundingBox().Min)
}

func TestSetSizeWithinToleranceIsNoOp(t *testing.T) {
	c, rec := newTestBox(t, math.Splat(2))
	rev := c.Revision()
	bounds, box, sphere := c.OrientedBox(), c.BoundingBox(), c.BoundingSphere()

	c.SetSize(math.Vec3{X: 2 + 5e-7, Y: 2, Z: 2 - 5e-7})
	c.SetSize(math.Splat(2))

	assert.Empty(t, rec.Calls(), "no backend update expected")
	assert.Equal(t, rev, c.Revision(), "bounds must not be recomputed")
	assert.Equal(t, math.Splat(2), c.Size())
	assert.Equal(t, bounds, c.OrientedBox())
	assert.Equal(t, box, c.BoundingBox())
	assert.Equal(t, sphere, c.BoundingSphere())
}

func TestSetSizeChangeUpdatesGeometryAndBounds(t *testing.T) {
	c, rec := newTestBox(t, math.Splat(2))
	rev := c.Revision()

	c.SetSize(math.Vec3{X: 4, Y: 2, Z: 2})

	calls := rec.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, physics.OpUpdate, calls[0].Op)
	assert.Equal(t, math.Vec3{X: 2, Y: 1, Z: 1}, calls[0].Shape.HalfExtents)
	assert.Greater(t, c.Revision(), rev)
	vecNear(t, math.Vec3{X: -2, Y: -1, Z: -1}, c.BoundingBox().Min)
}

func TestCustomTolerance(t *testing.T) {
	c := NewBox(Options{Tolerance: 0.5})
	c.SetSize(math.Splat(100.4))
	assert.Equal(t, math.Splat(100), c.Size())
	c.SetSize(math.Splat(101))
	assert.Equal(t, math.Splat(101), c.Size())
}

func TestBoundsCorrectness(t *testing.T) {
	c, _ := newTestBox(t, math.Splat(2))
	c.UpdateBounds()

	vecNear(t, math.Splat(-1), c.BoundingBox().Min)
	vecNear(t, math.Splat(1), c.BoundingBox().Max)
	assert.InDelta(t, gomath.Sqrt(3), c.BoundingSphere().Radius, eps)
	vecNear(t, math.Vec3{}, c.BoundingSphere().Center)
}

func TestBoundsFollowCenterAndTransform(t *testing.T) {
	c, _ := newTestBox(t, math.Splat(2))
	c.SetCenter(math.Vec3{X: 1})
	c.SetTransform(geom.NewTransform(math.Vec3{Y: 10}, math.QuatFromAxisAngle(math.Vec3{Y: 1}, gomath.Pi/2)), math.Splat(1))

	// Center offset (1,0,0) rotates to (0,0,-1)
	vecNear(t, math.Vec3{Y: 10, Z: -1}, c.OrientedBox().Center())
	vecNear(t, math.Vec3{X: -1, Y: 9, Z: -2}, c.BoundingBox().Min)
	vecNear(t, math.Vec3{X: 1, Y: 11, Z: 0}, c.BoundingBox().Max)
}

func TestGeometryClamping(t *testing.T) {
	c, _ := newTestBox(t, math.Vec3{X: 0, Y: 5, Z: 5})
	shape := c.GetGeometry()

	assert.Equal(t, physics.ShapeBox, shape.Type)
	assert.Equal(t, math.Vec3{X: 0.001, Y: 2.5, Z: 2.5}, shape.HalfExtents)
}

func TestGeometryScaleInteraction(t *testing.T) {
	c, rec := newTestBox(t, math.Splat(2))
	c.SetTransform(geom.IdentityTransform(), math.Vec3{X: 0.1, Y: 1, Z: 1})

	assert.Equal(t, math.Vec3{X: 0.1, Y: 1, Z: 1}, c.GetGeometry().HalfExtents)

	calls := rec.Calls()
	require.Len(t, calls, 1, "scale change pushes geometry")
	assert.Equal(t, c.GetGeometry(), calls[0].Shape)

	// Scaled bounds agree with the geometry
	vecNear(t, math.Vec3{X: -0.1, Y: -1, Z: -1}, c.BoundingBox().Min)
}

func TestTransformWithoutScaleChangeSkipsGeometry(t *testing.T) {
	c, rec := newTestBox(t, math.Splat(2))
	rev := c.Revision()

	c.SetTransform(geom.NewTransform(math.Vec3{X: 5}, math.QuatIdentity()), math.Splat(1))

	assert.Empty(t, rec.Calls())
	assert.Greater(t, c.Revision(), rev)
	vecNear(t, math.Vec3{X: 4, Y: -1, Z: -1}, c.BoundingBox().Min)
}

func TestIdenticalDescriptorNotResent(t *testing.T) {
	c, rec := newTestBox(t, math.Vec3{X: 0, Y: 5, Z: 5})

	// Scale only affects the clamped axis, so the descriptor is unchanged
	c.SetTransform(geom.IdentityTransform(), math.Vec3{X: 3, Y: 1, Z: 1})
	assert.Empty(t, rec.Calls())
}

func TestRayHitCenteredBox(t *testing.T) {
	c, _ := newTestBox(t, math.Splat(2))

	dist, normal, hit := c.IntersectsItself(geom.NewRay(math.Vec3{Z: -5}, math.Vec3{Z: 1}))
	require.True(t, hit)
	assert.InDelta(t, 4, dist, eps)
	vecNear(t, math.Vec3{Z: -1}, normal)
}

func TestRayMiss(t *testing.T) {
	c, _ := newTestBox(t, math.Splat(2))

	tests := []struct {
		name string
		ray  geom.Ray
	}{
		{"beside", geom.NewRay(math.Vec3{X: 3, Z: -5}, math.Vec3{Z: 1})},
		{"away", geom.NewRay(math.Vec3{Z: -5}, math.Vec3{Z: -1})},
		{"above", geom.NewRay(math.Vec3{Y: 2}, math.Vec3{X: 1})},
		{"nan direction", geom.Ray{Origin: math.Vec3{X: 1000}, Direction: math.Splat(float32(gomath.NaN()))}},
		{"nan origin", geom.Ray{Origin: math.Vec3{X: float32(gomath.NaN())}, Direction: math.Vec3{X: -1}}},
		{"one nan axis", geom.Ray{Origin: math.Vec3{Z: -5}, Direction: math.Vec3{Y: float32(gomath.NaN()), Z: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, hit := c.IntersectsItself(tt.ray)
			assert.False(t, hit)
		})
	}
}

func TestRayHitRotatedBoxIsExact(t *testing.T) {
	c, _ := newTestBox(t, math.Splat(2))
	c.SetTransform(geom.NewTransform(math.Vec3{}, math.QuatFromAxisAngle(math.Vec3{Y: 1}, gomath.Pi/4)), math.Splat(1))

	// Inside the AABB corner but outside the rotated box
	diagonal := geom.NewRay(math.Vec3{X: -5, Z: -3.4}, math.Vec3{X: 1, Z: 1})
	_, _, hit := c.IntersectsItself(diagonal)
	assert.False(t, hit)

	dist, normal, hit := c.IntersectsItself(geom.NewRay(math.Vec3{Y: 5}, math.Vec3{Y: -1}))
	require.True(t, hit)
	assert.InDelta(t, 4, dist, eps)
	vecNear(t, math.Vec3{Y: 1}, normal)
}

func TestNonFiniteSizeIgnored(t *testing.T) {
	c, rec := newTestBox(t, math.Splat(2))
	c.SetSize(math.Vec3{X: float32(gomath.NaN()), Y: 1, Z: 1})
	c.SetSize(math.Vec3{X: float32(gomath.Inf(1)), Y: 1, Z: 1})

	assert.Equal(t, math.Splat(2), c.Size())
	assert.Empty(t, rec.Calls())
}

func TestNonFiniteTransformIgnored(t *testing.T) {
	nan := float32(gomath.NaN())
	inf := float32(gomath.Inf(-1))
	placed := geom.NewTransform(math.Vec3{X: 5}, math.QuatIdentity())

	tests := []struct {
		name  string
		tr    geom.Transform
		scale math.Vec3
	}{
		{"nan scale", placed, math.Vec3{X: nan, Y: 1, Z: 1}},
		{"inf scale", placed, math.Vec3{X: 1, Y: inf, Z: 1}},
		{"nan translation", geom.Transform{Translation: math.Vec3{Y: nan}, Orientation: math.QuatIdentity()}, math.Splat(1)},
		{"nan orientation", geom.Transform{Translation: math.Vec3{X: 5}, Orientation: math.Quat{X: nan, W: 1}}, math.Splat(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestBox(t, math.Splat(2))
			c.SetTransform(placed, math.Splat(2))
			rec.Reset()
			rev := c.Revision()
			bounds, box, sphere := c.OrientedBox(), c.BoundingBox(), c.BoundingSphere()

			c.SetTransform(tt.tr, tt.scale)

			assert.Equal(t, math.Splat(2), c.Scale())
			assert.Equal(t, placed, c.Transform())
			assert.Equal(t, rev, c.Revision())
			assert.Equal(t, bounds, c.OrientedBox())
			assert.Equal(t, box, c.BoundingBox())
			assert.Equal(t, sphere, c.BoundingSphere())
			assert.Empty(t, rec.Calls())
			assert.Equal(t, math.Splat(2), c.GetGeometry().HalfExtents)

			_, _, hit := c.IntersectsItself(geom.NewRay(math.Vec3{X: 1000, Y: 1000}, math.Vec3{X: 1}))
			assert.False(t, hit)
		})
	}
}

func TestBackendFailureKeepsColliderUsable(t *testing.T) {
	rec := physics.NewRecorder()
	rec.CreateErr = errors.New("backend down")
	c := NewBox(Options{Backend: rec})
	assert.Zero(t, c.Handle())

	rec.CreateErr = nil
	c.SetSize(math.Splat(2))
	assert.NotZero(t, c.Handle(), "a later change retries shape creation")

	rec.UpdateErr = errors.New("rejected")
	c.SetSize(math.Splat(4))
	assert.Equal(t, math.Splat(4), c.Size())
	vecNear(t, math.Splat(2), c.BoundingBox().Max)
}

func TestRelease(t *testing.T) {
	rec := physics.NewRecorder()
	c := NewBox(Options{Backend: rec})
	c.Release()
	c.Release()

	assert.Equal(t, 0, rec.Live())
	assert.Len(t, rec.Calls(), 2)
	assert.Zero(t, c.Handle())
}

func TestNoBackend(t *testing.T) {
	c := NewBox(Options{})
	c.SetSize(math.Splat(3))
	c.Release()
	assert.Zero(t, c.Handle())
}

func TestVolumesStayConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	rnd := func(lo, hi float32) float32 { return lo + rng.Float32()*(hi-lo) }
	randVec := func(lo, hi float32) math.Vec3 { return math.Vec3{X: rnd(lo, hi), Y: rnd(lo, hi), Z: rnd(lo, hi)} }

	c := NewBox(Options{Backend: physics.NewRecorder()})
	for i := 0; i < 300; i++ {
		switch rng.Intn(3) {
		case 0:
			c.SetSize(randVec(-20, 20))
		case 1:
			c.SetCenter(randVec(-5, 5))
		default:
			axis := randVec(-1, 1).Normalize()
			if axis == (math.Vec3{}) {
				axis = math.Vec3{X: 1}
			}
			c.SetTransform(geom.NewTransform(randVec(-50, 50), math.QuatFromAxisAngle(axis, rnd(-3, 3))), randVec(-2, 2))
		}
		c.UpdateBounds()

		box := c.BoundingBox()
		grown := geom.BoundingBox{Min: box.Min.Sub(math.Splat(1e-3)), Max: box.Max.Add(math.Splat(1e-3))}
		for _, corner := range c.OrientedBox().Corners() {
			require.True(t, grown.ContainsPoint(corner), "step %d: aabb must contain obb", i)
		}
		require.True(t, c.BoundingSphere().ContainsBox(box), "step %d: sphere must contain aabb", i)
	}
}

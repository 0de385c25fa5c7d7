package physics

import "github.com/Faultbox/midgard-collide/pkg/math"

// MinExtent is the smallest half extent or radius handed to a backend.
// Backends reject or mishandle zero and negative sized shapes.
const MinExtent float32 = 0.001

// SanitizeExtent clamps a half extent to MinExtent. NaN and infinities are
// mapped to MinExtent so the backend never sees a non-finite shape.
func SanitizeExtent(e float32) float32 {
	if !math.IsFinite(e) || e < MinExtent {
		return MinExtent
	}
	return e
}

// ClampHalfExtents converts a full size and scale into box half extents:
// |size * scale| / 2, clamped per axis to MinExtent.
func ClampHalfExtents(size, scale math.Vec3) math.Vec3 {
	h := size.Mul(scale).Abs().Scale(0.5)
	return math.Vec3{
		X: SanitizeExtent(h.X),
		Y: SanitizeExtent(h.Y),
		Z: SanitizeExtent(h.Z),
	}
}

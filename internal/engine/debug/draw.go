// Package debug provides debug visualization of collision geometry.
package debug

import (
	"github.com/Faultbox/midgard-collide/pkg/geom"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

// ViewMode selects how colliders are visualized.
type ViewMode uint8

const (
	// ViewDefault draws colliders as wireframes.
	ViewDefault ViewMode = iota
	// ViewPhysicsColliders draws solid non-trigger colliders.
	ViewPhysicsColliders
)

// ParseViewMode converts a config string into a ViewMode.
func ParseViewMode(s string) ViewMode {
	if s == "colliders" {
		return ViewPhysicsColliders
	}
	return ViewDefault
}

// String returns the config name of the mode.
func (m ViewMode) String() string {
	if m == ViewPhysicsColliders {
		return "colliders"
	}
	return "default"
}

// View describes the camera a debug pass is drawn for.
// Origin is subtracted from world positions before culling (large worlds).
// A zero Frustum culls nothing.
type View struct {
	Frustum geom.Frustum
	Origin  math.Vec3
	Mode    ViewMode
}

// Drawer receives debug primitives. Colliders get one injected at
// construction; a nil Drawer disables debug drawing.
type Drawer interface {
	DrawLine(from, to math.Vec3, color Color, depthTest bool)
	DrawBox(box geom.OrientedBox, color Color, depthTest bool)
	DrawWireBox(box geom.OrientedBox, color Color, depthTest bool)
	DrawSphere(sphere geom.BoundingSphere, color Color, depthTest bool)
	DrawWireSphere(sphere geom.BoundingSphere, color Color, depthTest bool)
}

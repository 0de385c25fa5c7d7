package collider

import (
	"github.com/Faultbox/midgard-collide/internal/engine/debug"
	"github.com/Faultbox/midgard-collide/pkg/geom"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

// EdgeMargin is the half thickness of the edge boxes drawn for a selected box.
const EdgeMargin float32 = 1

// visible culls with the enclosing sphere, relative to the view origin.
func (b *base) visible(view debug.View, sphere geom.BoundingSphere) bool {
	if b.drawer == nil {
		return false
	}
	local := geom.BoundingSphere{Center: sphere.Center.Sub(view.Origin), Radius: sphere.Radius}
	return view.Frustum.IntersectsSphere(local)
}

// colliderColor picks the solid color for the colliders view mode.
func (b *base) colliderColor() debug.Color {
	if b.static {
		return debug.ColorCornflowerBlue
	}
	return debug.ColorOrchid
}

// drawBounds draws a box-like collider for a physics debug view.
func (b *base) drawBounds(view debug.View, bounds geom.OrientedBox, sphere geom.BoundingSphere) {
	if !b.visible(view, sphere) {
		return
	}
	if view.Mode == debug.ViewPhysicsColliders && !b.trigger {
		b.drawer.DrawBox(bounds, b.colliderColor(), true)
	} else {
		b.drawer.DrawWireBox(bounds, debug.ColorGreenYellow.Scale(0.8), true)
	}
}

// DrawPhysicsDebug draws the box for a physics debug view.
func (c *BoxCollider) DrawPhysicsDebug(view debug.View) {
	c.drawBounds(view, c.bounds, c.sphere)
}

// DrawDebug draws trigger boxes, which are otherwise invisible.
func (c *BoxCollider) DrawDebug() {
	if c.drawer == nil || !c.trigger {
		return
	}
	c.drawer.DrawWireBox(c.bounds, debug.ColorGreenYellow, true)
}

// DrawSelected draws the box outline plus a thin box along every edge.
func (c *BoxCollider) DrawSelected() {
	if c.drawer == nil {
		return
	}
	color := debug.ColorGreenYellow
	c.drawer.DrawWireBox(c.bounds, color.Scale(0.3), false)

	corners := c.bounds.Corners()
	edgeColor := color.AlphaMultiplied(0.6)
	for _, e := range geom.BoxEdges {
		c.drawer.DrawBox(edgeBox(corners[e[0]], corners[e[1]], EdgeMargin), edgeColor, true)
	}
}

// edgeBox returns a thin box from a to b with the given half thickness.
func edgeBox(a, b math.Vec3, margin float32) geom.OrientedBox {
	vec := b.Sub(a)
	return geom.OrientedBox{
		Extents: math.Vec3{X: margin, Y: margin, Z: vec.Length() * 0.5},
		Transformation: geom.Transform{
			Translation: a.Add(vec.Scale(0.5)),
			Orientation: math.QuatFromTo(math.Vec3{Z: 1}, vec.Normalize()),
		},
	}
}

// DrawPhysicsDebug draws the sphere for a physics debug view.
func (c *SphereCollider) DrawPhysicsDebug(view debug.View) {
	if !c.visible(view, c.sphere) {
		return
	}
	if view.Mode == debug.ViewPhysicsColliders && !c.trigger {
		c.drawer.DrawSphere(c.sphere, c.colliderColor(), true)
	} else {
		c.drawer.DrawWireSphere(c.sphere, debug.ColorGreenYellow.Scale(0.8), true)
	}
}

// DrawDebug draws trigger spheres.
func (c *SphereCollider) DrawDebug() {
	if c.drawer == nil || !c.trigger {
		return
	}
	c.drawer.DrawWireSphere(c.sphere, debug.ColorGreenYellow, true)
}

// DrawSelected draws the sphere outline.
func (c *SphereCollider) DrawSelected() {
	if c.drawer == nil {
		return
	}
	c.drawer.DrawWireSphere(c.sphere, debug.ColorGreenYellow.AlphaMultiplied(0.6), false)
}

// DrawPhysicsDebug draws the capsule bounds for a physics debug view.
func (c *CapsuleCollider) DrawPhysicsDebug(view debug.View) {
	c.drawBounds(view, c.bounds, c.sphere)
}

// DrawDebug draws trigger capsules.
func (c *CapsuleCollider) DrawDebug() {
	if c.drawer == nil || !c.trigger {
		return
	}
	c.drawer.DrawWireBox(c.bounds, debug.ColorGreenYellow, true)
}

// DrawSelected draws the capsule outline as its cylinder box and two caps.
func (c *CapsuleCollider) DrawSelected() {
	if c.drawer == nil {
		return
	}
	r, hh := c.scaled()
	color := debug.ColorGreenYellow.AlphaMultiplied(0.6)
	t := c.bounds.Transformation

	body := geom.OrientedBox{Extents: math.Vec3{X: r, Y: hh, Z: r}, Transformation: t}
	c.drawer.DrawWireBox(body, color, false)
	for _, y := range [2]float32{hh, -hh} {
		end := geom.BoundingSphere{Center: t.TransformPoint(math.Vec3{Y: y}), Radius: r}
		c.drawer.DrawWireSphere(end, color, false)
	}
}

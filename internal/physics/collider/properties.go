package collider

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Faultbox/midgard-collide/pkg/math"
)

// Properties is the serialized form of a collider. Nil fields were equal to
// the reference collider when serialized and are left untouched on apply.
// Values are stored exactly; float32 fields round-trip bit for bit.
type Properties struct {
	Type      Kind       `yaml:"type"`
	ID        uuid.UUID  `yaml:"id"`
	Center    *math.Vec3 `yaml:"center,omitempty"`
	IsTrigger *bool      `yaml:"is_trigger,omitempty"`
	IsStatic  *bool      `yaml:"is_static,omitempty"`
	Size      *math.Vec3 `yaml:"size,omitempty"`
	Radius    *float32   `yaml:"radius,omitempty"`
	Height    *float32   `yaml:"height,omitempty"`
}

// FromProperties creates a collider of p.Type and applies p to it.
func FromProperties(p Properties, opts Options) (Shape, error) {
	if p.ID != uuid.Nil {
		opts.ID = p.ID
	}
	s, err := New(p.Type, opts)
	if err != nil {
		return nil, fmt.Errorf("creating collider %s: %w", p.ID, err)
	}
	s.ApplyProperties(p)
	return s, nil
}

// diff returns &v unless the reference has the same value. Comparison is
// exact so that any difference survives serialization.
func diff[T comparable](v T, ref T, hasRef bool) *T {
	if hasRef && v == ref {
		return nil
	}
	return &v
}

// baseProperties fills the fields shared by every variant.
func (b *base) baseProperties(kind Kind, reference Shape) Properties {
	p := Properties{Type: kind, ID: b.id}
	hasRef := reference != nil
	var refCenter math.Vec3
	var refTrigger, refStatic bool
	if hasRef {
		refCenter, refTrigger, refStatic = reference.Center(), reference.IsTrigger(), reference.IsStatic()
	}
	p.Center = diff(b.center, refCenter, hasRef)
	p.IsTrigger = diff(b.trigger, refTrigger, hasRef)
	p.IsStatic = diff(b.static, refStatic, hasRef)
	return p
}

// applyBase applies shared fields and reports whether the center changed.
func (b *base) applyBase(p Properties) bool {
	if p.IsTrigger != nil {
		b.trigger = *p.IsTrigger
	}
	if p.IsStatic != nil {
		b.static = *p.IsStatic
	}
	if p.Center != nil && *p.Center != b.center {
		b.center = *p.Center
		return true
	}
	return false
}

// Properties serializes the box, omitting fields equal to reference.
// A nil reference serializes every field.
func (c *BoxCollider) Properties(reference Shape) Properties {
	p := c.baseProperties(KindBox, reference)
	ref, ok := reference.(*BoxCollider)
	var refSize math.Vec3
	if ok {
		refSize = ref.size
	}
	p.Size = diff(c.size, refSize, ok)
	return p
}

// ApplyProperties restores serialized fields. Size is assigned exactly,
// bypassing the change tolerance.
func (c *BoxCollider) ApplyProperties(p Properties) {
	moved := c.applyBase(p)
	if p.Size != nil && *p.Size != c.size && p.Size.IsFinite() {
		c.applySize(*p.Size)
		return
	}
	if moved {
		c.UpdateBounds()
	}
}

// Properties serializes the sphere, omitting fields equal to reference.
func (c *SphereCollider) Properties(reference Shape) Properties {
	p := c.baseProperties(KindSphere, reference)
	ref, ok := reference.(*SphereCollider)
	var refRadius float32
	if ok {
		refRadius = ref.radius
	}
	p.Radius = diff(c.radius, refRadius, ok)
	return p
}

// ApplyProperties restores serialized fields.
func (c *SphereCollider) ApplyProperties(p Properties) {
	moved := c.applyBase(p)
	if p.Radius != nil && *p.Radius != c.radius && math.IsFinite(*p.Radius) {
		c.applyRadius(*p.Radius)
		return
	}
	if moved {
		c.UpdateBounds()
	}
}

// Properties serializes the capsule, omitting fields equal to reference.
func (c *CapsuleCollider) Properties(reference Shape) Properties {
	p := c.baseProperties(KindCapsule, reference)
	ref, ok := reference.(*CapsuleCollider)
	var refRadius, refHeight float32
	if ok {
		refRadius, refHeight = ref.radius, ref.height
	}
	p.Radius = diff(c.radius, refRadius, ok)
	p.Height = diff(c.height, refHeight, ok)
	return p
}

// ApplyProperties restores serialized fields.
func (c *CapsuleCollider) ApplyProperties(p Properties) {
	moved := c.applyBase(p)
	changed := false
	if p.Radius != nil && *p.Radius != c.radius && math.IsFinite(*p.Radius) {
		c.radius = *p.Radius
		changed = true
	}
	if p.Height != nil && *p.Height != c.height && math.IsFinite(*p.Height) {
		c.height = *p.Height
		changed = true
	}
	switch {
	case changed:
		c.refresh()
	case moved:
		c.UpdateBounds()
	}
}

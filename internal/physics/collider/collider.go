// Package collider implements collision shape variants (box, sphere,
// capsule) attached to scene nodes.
//
// A collider turns its logical parameters, the owner's rigid world transform
// and the owner's accumulated scale into cached bounding volumes used for
// culling and picking, and into a backend-neutral shape descriptor for the
// physics backend.
//
// Colliders are not safe for concurrent use. Mutation and reads are expected
// on a single scene-update goroutine; readers on other goroutines (renderers,
// workers) must synchronize externally, for example with a scene-wide
// read/write phase or by copying the volumes out.
package collider

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-collide/internal/engine/debug"
	"github.com/Faultbox/midgard-collide/internal/logger"
	"github.com/Faultbox/midgard-collide/internal/physics"
	"github.com/Faultbox/midgard-collide/pkg/geom"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

// Kind names a shape variant. It is also the serialized type tag.
type Kind string

const (
	KindBox     Kind = "box"
	KindSphere  Kind = "sphere"
	KindCapsule Kind = "capsule"
)

// Shape is the interface shared by all collider variants.
type Shape interface {
	ID() uuid.UUID
	Kind() Kind

	Center() math.Vec3
	SetCenter(center math.Vec3)
	Transform() geom.Transform
	Scale() math.Vec3
	// SetTransform applies the owner's rigid world transform and accumulated
	// scale. Geometry is pushed to the backend only if the scale changed;
	// bounds are always recomputed.
	SetTransform(t geom.Transform, scale math.Vec3)

	IsTrigger() bool
	SetIsTrigger(trigger bool)
	IsStatic() bool
	SetIsStatic(static bool)

	// UpdateBounds recomputes the cached volumes from the current state.
	UpdateBounds()
	// GetGeometry returns a fresh, always valid backend shape descriptor.
	GetGeometry() physics.CollisionShape
	// IntersectsItself tests a world-space ray against the collider shape.
	// Returns the distance to the first hit, the outward world-space normal
	// and whether the ray hit. It never calls the backend.
	IntersectsItself(ray geom.Ray) (float32, math.Vec3, bool)

	OrientedBox() geom.OrientedBox
	BoundingBox() geom.BoundingBox
	BoundingSphere() geom.BoundingSphere
	// Revision increases every time the bounds are recomputed.
	Revision() uint64

	DrawPhysicsDebug(view debug.View)
	DrawDebug()
	DrawSelected()

	Properties(reference Shape) Properties
	ApplyProperties(p Properties)

	// Handle returns the backend shape handle, zero when none is bound.
	Handle() physics.ShapeHandle
	// Release frees the backend shape. The collider stays usable for queries.
	Release()
}

// Options configures a collider at construction.
type Options struct {
	// ID identifies the collider; a random one is generated when zero.
	ID uuid.UUID
	// Backend receives shape descriptors; nil disables backend updates.
	Backend physics.Backend
	// Tolerance is the approximate-equality epsilon for change detection.
	// Zero means math.ZeroTolerance.
	Tolerance float32
	// Drawer receives debug primitives; nil disables debug drawing.
	Drawer debug.Drawer
}

// New creates a collider of the given kind with default parameters.
func New(kind Kind, opts Options) (Shape, error) {
	switch kind {
	case KindBox:
		return NewBox(opts), nil
	case KindSphere:
		return NewSphere(opts), nil
	case KindCapsule:
		return NewCapsule(opts), nil
	default:
		return nil, fmt.Errorf("unknown collider type %q", kind)
	}
}

// base holds the state common to every variant: identity, the owner's
// transform and scale, flags and the backend binding.
type base struct {
	id          uuid.UUID
	center      math.Vec3
	transform   geom.Transform
	cachedScale math.Vec3
	trigger     bool
	static      bool
	tolerance   float32
	revision    uint64

	backend  physics.Backend
	handle   physics.ShapeHandle
	lastHash uint64
	drawer   debug.Drawer
	kind     Kind
}

func newBase(kind Kind, opts Options) base {
	id := opts.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	tol := opts.Tolerance
	if tol <= 0 {
		tol = math.ZeroTolerance
	}
	return base{
		id:          id,
		transform:   geom.IdentityTransform(),
		cachedScale: math.Splat(1),
		tolerance:   tol,
		backend:     opts.Backend,
		drawer:      opts.Drawer,
		kind:        kind,
	}
}

// ID returns the collider identifier.
func (b *base) ID() uuid.UUID { return b.id }

// Center returns the local pivot offset.
func (b *base) Center() math.Vec3 { return b.center }

// Transform returns the owner's rigid world transform.
func (b *base) Transform() geom.Transform { return b.transform }

// Scale returns the scale accumulated from the owner hierarchy.
func (b *base) Scale() math.Vec3 { return b.cachedScale }

// IsTrigger reports whether the collider only reports overlaps.
func (b *base) IsTrigger() bool { return b.trigger }

// SetIsTrigger sets the trigger flag.
func (b *base) SetIsTrigger(trigger bool) { b.trigger = trigger }

// IsStatic reports whether the owner is a static actor.
func (b *base) IsStatic() bool { return b.static }

// SetIsStatic sets the static flag.
func (b *base) SetIsStatic(static bool) { b.static = static }

// Revision increases every time the bounds are recomputed.
func (b *base) Revision() uint64 { return b.revision }

// setCenter stores center and reports whether it changed beyond tolerance.
func (b *base) setCenter(center math.Vec3) bool {
	if center.NearEqual(b.center, b.tolerance) {
		return false
	}
	b.center = center
	return true
}

// setTransform stores the owner transform and reports whether the scale
// changed beyond tolerance.
func (b *base) setTransform(t geom.Transform, scale math.Vec3) bool {
	b.transform = t
	if scale.NearEqual(b.cachedScale, b.tolerance) {
		return false
	}
	b.cachedScale = scale
	return true
}

// pushGeometry hands shape to the backend, creating the native shape on
// first use. Identical descriptors are not resent.
func (b *base) pushGeometry(shape physics.CollisionShape) {
	if b.backend == nil {
		return
	}

	hash := shape.Hash()
	if b.handle != 0 && hash == b.lastHash {
		return
	}

	if b.handle == 0 {
		h, err := b.backend.CreateShape(shape)
		if err != nil {
			b.log().Warn("creating backend shape failed", zap.Error(err), zap.Stringer("shape", shape))
			return
		}
		b.handle = h
	} else if err := b.backend.UpdateShape(b.handle, shape); err != nil {
		b.log().Warn("updating backend shape failed", zap.Error(err), zap.Stringer("shape", shape))
		return
	}

	b.lastHash = hash
	b.log().Debug("collider geometry updated", zap.Stringer("shape", shape), zap.Uint64("handle", uint64(b.handle)))
}

// Handle returns the backend shape handle, or zero if none was created.
func (b *base) Handle() physics.ShapeHandle { return b.handle }

// Release frees the backend shape.
func (b *base) Release() {
	if b.backend == nil || b.handle == 0 {
		return
	}
	b.backend.ReleaseShape(b.handle)
	b.handle = 0
	b.lastHash = 0
}

// localBox returns the collider's local box scaled by the owner scale,
// placed in world space by the rigid transform.
func (b *base) localBox(size math.Vec3) geom.OrientedBox {
	return geom.NewCenteredOrientedBox(b.center.Mul(b.cachedScale), size.Mul(b.cachedScale)).Transform(b.transform)
}

// finiteTransform drops owner transforms with a non-finite translation,
// orientation or scale.
func (b *base) finiteTransform(t geom.Transform, scale math.Vec3) bool {
	if !b.finite("translation", t.Translation) || !b.finite("scale", scale) {
		return false
	}
	if !t.Orientation.IsFinite() {
		b.log().Warn("ignoring non-finite parameter", zap.String("param", "orientation"),
			zap.Float32("x", t.Orientation.X), zap.Float32("y", t.Orientation.Y),
			zap.Float32("z", t.Orientation.Z), zap.Float32("w", t.Orientation.W))
		return false
	}
	return true
}

// finite drops non-finite parameter updates, which cannot describe a shape.
func (b *base) finite(name string, v math.Vec3) bool {
	if v.IsFinite() {
		return true
	}
	b.log().Warn("ignoring non-finite parameter", zap.String("param", name), zap.Float32("x", v.X), zap.Float32("y", v.Y), zap.Float32("z", v.Z))
	return false
}

func (b *base) log() *zap.Logger {
	return logger.Named("collider").With(zap.String("kind", string(b.kind)), zap.Stringer("id", b.id))
}

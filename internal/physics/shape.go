// Package physics defines the boundary between colliders and the physics
// backend: backend-neutral shape descriptors and the backend interface.
package physics

import (
	"encoding/binary"
	"fmt"
	gomath "math"

	"github.com/cespare/xxhash/v2"

	"github.com/Faultbox/midgard-collide/pkg/math"
)

// ShapeType identifies the primitive carried by a CollisionShape.
type ShapeType uint8

const (
	ShapeNone ShapeType = iota
	ShapeBox
	ShapeSphere
	ShapeCapsule
)

// String returns the shape type name.
func (t ShapeType) String() string {
	switch t {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapeCapsule:
		return "capsule"
	default:
		return "none"
	}
}

// CollisionShape is a backend-neutral description of a primitive shape.
// Only the fields matching Type are meaningful.
type CollisionShape struct {
	Type        ShapeType
	HalfExtents math.Vec3 // Box
	Radius      float32   // Sphere, Capsule
	HalfHeight  float32   // Capsule: half length of the cylinder part
}

// SetBox makes the shape a box with the given half extents.
func (s *CollisionShape) SetBox(halfExtents math.Vec3) {
	*s = CollisionShape{Type: ShapeBox, HalfExtents: halfExtents}
}

// SetSphere makes the shape a sphere.
func (s *CollisionShape) SetSphere(radius float32) {
	*s = CollisionShape{Type: ShapeSphere, Radius: radius}
}

// SetCapsule makes the shape a capsule aligned with its local Y axis.
func (s *CollisionShape) SetCapsule(radius, halfHeight float32) {
	*s = CollisionShape{Type: ShapeCapsule, Radius: radius, HalfHeight: halfHeight}
}

// Hash returns a content hash of the descriptor. Two descriptors with the
// same hash describe the same native shape.
func (s CollisionShape) Hash() uint64 {
	var buf [1 + 5*4]byte
	buf[0] = byte(s.Type)
	for i, f := range [5]float32{s.HalfExtents.X, s.HalfExtents.Y, s.HalfExtents.Z, s.Radius, s.HalfHeight} {
		binary.LittleEndian.PutUint32(buf[1+i*4:], gomath.Float32bits(f))
	}
	return xxhash.Sum64(buf[:])
}

// String formats the descriptor for logs and CLI output.
func (s CollisionShape) String() string {
	switch s.Type {
	case ShapeBox:
		return fmt.Sprintf("box{half=(%g, %g, %g)}", s.HalfExtents.X, s.HalfExtents.Y, s.HalfExtents.Z)
	case ShapeSphere:
		return fmt.Sprintf("sphere{r=%g}", s.Radius)
	case ShapeCapsule:
		return fmt.Sprintf("capsule{r=%g, halfHeight=%g}", s.Radius, s.HalfHeight)
	default:
		return "none"
	}
}

package scene

import (
	"github.com/google/uuid"

	"github.com/Faultbox/midgard-collide/internal/physics/collider"
	"github.com/Faultbox/midgard-collide/pkg/geom"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

// Node is a scene actor with a local transform, children and colliders.
// Edit Position, Rotation and Scale, then call Scene.UpdateTransforms.
type Node struct {
	ID       uuid.UUID
	Name     string
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3

	parent    *Node
	children  []*Node
	colliders []collider.Shape

	world      geom.Transform
	worldScale math.Vec3
}

func newNode(name string) *Node {
	return &Node{
		ID:         uuid.New(),
		Name:       name,
		Rotation:   math.QuatIdentity(),
		Scale:      math.Splat(1),
		world:      geom.IdentityTransform(),
		worldScale: math.Splat(1),
	}
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes in insertion order.
func (n *Node) Children() []*Node { return n.children }

// Colliders returns the colliders attached to the node.
func (n *Node) Colliders() []collider.Shape { return n.colliders }

// World returns the rigid world transform computed by the last update.
func (n *Node) World() geom.Transform { return n.world }

// WorldScale returns the scale accumulated from the root to this node.
func (n *Node) WorldScale() math.Vec3 { return n.worldScale }

// updateTransform composes the local transform with the parent's and pushes
// the result into the colliders. The parent scale stretches the local
// position; rotation and scale are combined separately, so shear from
// non-uniform scale under rotation is dropped.
func (n *Node) updateTransform(parentWorld geom.Transform, parentScale math.Vec3) {
	local := geom.NewTransform(n.Position.Mul(parentScale), n.Rotation)
	n.world = parentWorld.Mul(local)
	n.worldScale = parentScale.Mul(n.Scale)

	for _, c := range n.colliders {
		c.SetTransform(n.world, n.worldScale)
	}
	for _, child := range n.children {
		child.updateTransform(n.world, n.worldScale)
	}
}

// walk visits n and its descendants depth first until fn returns false.
func (n *Node) walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.children {
		if !child.walk(fn) {
			return false
		}
	}
	return true
}

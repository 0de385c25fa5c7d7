// Package scene owns collider-carrying nodes, propagates their transforms
// and answers picking and debug drawing queries over all colliders.
package scene

import (
	"fmt"

	"github.com/Faultbox/midgard-collide/internal/engine/debug"
	"github.com/Faultbox/midgard-collide/internal/engine/picking"
	"github.com/Faultbox/midgard-collide/internal/physics"
	"github.com/Faultbox/midgard-collide/internal/physics/collider"
	"github.com/Faultbox/midgard-collide/pkg/geom"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

// Options configures the colliders a scene creates.
type Options struct {
	Backend   physics.Backend
	Drawer    debug.Drawer
	Tolerance float32
}

func (o Options) colliderOptions() collider.Options {
	return collider.Options{Backend: o.Backend, Drawer: o.Drawer, Tolerance: o.Tolerance}
}

// Scene is a forest of nodes addressed by unique name.
// Like colliders, a scene is not safe for concurrent use.
type Scene struct {
	Name string

	opts   Options
	roots  []*Node
	byName map[string]*Node
}

// New creates an empty scene.
func New(name string, opts Options) *Scene {
	return &Scene{
		Name:   name,
		opts:   opts,
		byName: make(map[string]*Node),
	}
}

// AddNode creates a node under parent, or as a root when parent is empty.
func (s *Scene) AddNode(name, parent string) (*Node, error) {
	if name == "" {
		return nil, fmt.Errorf("node name is empty")
	}
	if _, exists := s.byName[name]; exists {
		return nil, fmt.Errorf("duplicate node %q", name)
	}

	n := newNode(name)
	if parent == "" {
		s.roots = append(s.roots, n)
	} else {
		p, ok := s.byName[parent]
		if !ok {
			return nil, fmt.Errorf("node %q: unknown parent %q", name, parent)
		}
		n.parent = p
		p.children = append(p.children, n)
	}
	s.byName[name] = n
	return n, nil
}

// Node looks a node up by name.
func (s *Scene) Node(name string) (*Node, bool) {
	n, ok := s.byName[name]
	return n, ok
}

// Roots returns the nodes without a parent.
func (s *Scene) Roots() []*Node { return s.roots }

// Len returns the number of nodes.
func (s *Scene) Len() int { return len(s.byName) }

// Walk visits every node depth first, parents before children.
func (s *Scene) Walk(fn func(*Node) bool) {
	for _, r := range s.roots {
		if !r.walk(fn) {
			return
		}
	}
}

// AddCollider creates a collider of the given kind on n.
func (s *Scene) AddCollider(n *Node, kind collider.Kind) (collider.Shape, error) {
	c, err := collider.New(kind, s.opts.colliderOptions())
	if err != nil {
		return nil, err
	}
	s.attach(n, c)
	return c, nil
}

// RemoveCollider detaches c from n and releases its backend shape.
// It reports whether n owned c.
func (s *Scene) RemoveCollider(n *Node, c collider.Shape) bool {
	for i, owned := range n.colliders {
		if owned == c {
			n.colliders = append(n.colliders[:i], n.colliders[i+1:]...)
			c.Release()
			return true
		}
	}
	return false
}

func (s *Scene) attach(n *Node, c collider.Shape) {
	n.colliders = append(n.colliders, c)
	c.SetTransform(n.world, n.worldScale)
}

// UpdateTransforms recomputes world transforms top down and pushes them
// into every collider.
func (s *Scene) UpdateTransforms() {
	for _, r := range s.roots {
		r.updateTransform(geom.IdentityTransform(), math.Splat(1))
	}
}

// Colliders returns every collider with the node that owns it, in walk order.
func (s *Scene) Colliders() ([]collider.Shape, []*Node) {
	var shapes []collider.Shape
	var owners []*Node
	s.Walk(func(n *Node) bool {
		for _, c := range n.colliders {
			shapes = append(shapes, c)
			owners = append(owners, n)
		}
		return true
	})
	return shapes, owners
}

// Bounds returns the box enclosing every collider. ok is false for a scene
// without colliders.
func (s *Scene) Bounds() (box geom.BoundingBox, ok bool) {
	shapes, _ := s.Colliders()
	for i, c := range shapes {
		if i == 0 {
			box = c.BoundingBox()
			continue
		}
		box = box.Merge(c.BoundingBox())
	}
	return box, len(shapes) > 0
}

// Hit is the result of a scene pick.
type Hit struct {
	Node     *Node
	Collider collider.Shape
	Distance float32
	Point    math.Vec3
	Normal   math.Vec3
}

// Pick returns the nearest collider hit by the ray.
func (s *Scene) Pick(ray geom.Ray) (Hit, bool) {
	shapes, owners := s.Colliders()
	h, ok := picking.Pick(ray, shapes)
	if !ok {
		return Hit{}, false
	}
	return Hit{
		Node:     owners[h.Index],
		Collider: shapes[h.Index],
		Distance: h.Distance,
		Point:    ray.At(h.Distance),
		Normal:   h.Normal,
	}, true
}

// DrawPhysicsDebug draws every collider for the given view.
func (s *Scene) DrawPhysicsDebug(view debug.View) {
	shapes, _ := s.Colliders()
	for _, c := range shapes {
		c.DrawPhysicsDebug(view)
	}
}

// DrawDebug draws the colliders that are otherwise invisible (triggers).
func (s *Scene) DrawDebug() {
	shapes, _ := s.Colliders()
	for _, c := range shapes {
		c.DrawDebug()
	}
}

// Release frees every backend shape owned by the scene.
func (s *Scene) Release() {
	shapes, _ := s.Colliders()
	for _, c := range shapes {
		c.Release()
	}
}

package debug

import (
	gomath "math"

	"github.com/Faultbox/midgard-collide/pkg/geom"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

// FloatsPerVertex is the vertex layout used by LineBuffer: x, y, z, r, g, b, a.
const FloatsPerVertex = 7

// BoxWireframeVertexCount is the number of vertices for a box wireframe (12 edges × 2).
const BoxWireframeVertexCount = 24

// SphereSegments is the number of line segments per great circle.
const SphereSegments = 24

// boxTriangles lists corner indices for the 12 triangles of a solid box,
// for the corner ordering of geom.OrientedBox.Corners.
var boxTriangles = [36]int{
	0, 1, 2, 0, 2, 3, // top
	4, 6, 5, 4, 7, 6, // bottom
	0, 4, 5, 0, 5, 1, // +X
	3, 2, 6, 3, 6, 7, // -X
	0, 3, 7, 0, 7, 4, // +Z
	1, 5, 6, 1, 6, 2, // -Z
}

// Batch holds vertices in the FloatsPerVertex layout.
type Batch struct {
	Lines     []float32
	Triangles []float32
}

// LineCount returns the number of line segments in the batch.
func (b *Batch) LineCount() int {
	return len(b.Lines) / (2 * FloatsPerVertex)
}

// TriangleCount returns the number of triangles in the batch.
func (b *Batch) TriangleCount() int {
	return len(b.Triangles) / (3 * FloatsPerVertex)
}

func (b *Batch) reset() {
	b.Lines = b.Lines[:0]
	b.Triangles = b.Triangles[:0]
}

// LineBuffer is a Drawer that accumulates primitives into vertex batches.
// Depth-tested and overlay primitives go to separate batches.
type LineBuffer struct {
	Depth   Batch
	Overlay Batch
}

// NewLineBuffer creates an empty buffer.
func NewLineBuffer() *LineBuffer {
	return &LineBuffer{}
}

// Reset clears all batches, keeping their capacity.
func (lb *LineBuffer) Reset() {
	lb.Depth.reset()
	lb.Overlay.reset()
}

func (lb *LineBuffer) batch(depthTest bool) *Batch {
	if depthTest {
		return &lb.Depth
	}
	return &lb.Overlay
}

// DrawLine adds a single segment.
func (lb *LineBuffer) DrawLine(from, to math.Vec3, color Color, depthTest bool) {
	b := lb.batch(depthTest)
	b.Lines = appendVertex(b.Lines, from, color)
	b.Lines = appendVertex(b.Lines, to, color)
}

// DrawWireBox adds the 12 edges of the box.
func (lb *LineBuffer) DrawWireBox(box geom.OrientedBox, color Color, depthTest bool) {
	b := lb.batch(depthTest)
	b.Lines = AppendWireBoxVertices(b.Lines, box.Corners(), color)
}

// DrawBox adds the 12 triangles of the box.
func (lb *LineBuffer) DrawBox(box geom.OrientedBox, color Color, depthTest bool) {
	b := lb.batch(depthTest)
	corners := box.Corners()
	for _, i := range boxTriangles {
		b.Triangles = appendVertex(b.Triangles, corners[i], color)
	}
}

// DrawWireSphere adds three great circles around the sphere.
func (lb *LineBuffer) DrawWireSphere(sphere geom.BoundingSphere, color Color, depthTest bool) {
	b := lb.batch(depthTest)
	for axis := 0; axis < 3; axis++ {
		b.Lines = appendCircle(b.Lines, sphere, axis, color)
	}
}

// DrawSphere falls back to the wire circles; the buffer has no sphere mesh.
func (lb *LineBuffer) DrawSphere(sphere geom.BoundingSphere, color Color, depthTest bool) {
	lb.DrawWireSphere(sphere, color, depthTest)
}

// AppendWireBoxVertices appends the 24 line vertices of a box wireframe.
func AppendWireBoxVertices(dst []float32, corners [8]math.Vec3, color Color) []float32 {
	for _, e := range geom.BoxEdges {
		dst = appendVertex(dst, corners[e[0]], color)
		dst = appendVertex(dst, corners[e[1]], color)
	}
	return dst
}

func appendCircle(dst []float32, s geom.BoundingSphere, axis int, color Color) []float32 {
	point := func(i int) math.Vec3 {
		a := 2 * gomath.Pi * float64(i) / SphereSegments
		u, v := float32(gomath.Cos(a))*s.Radius, float32(gomath.Sin(a))*s.Radius
		var p math.Vec3
		p = p.WithComponent((axis+1)%3, u).WithComponent((axis+2)%3, v)
		return s.Center.Add(p)
	}
	for i := 0; i < SphereSegments; i++ {
		dst = appendVertex(dst, point(i), color)
		dst = appendVertex(dst, point(i+1), color)
	}
	return dst
}

func appendVertex(dst []float32, p math.Vec3, c Color) []float32 {
	return append(dst, p.X, p.Y, p.Z, c.R, c.G, c.B, c.A)
}

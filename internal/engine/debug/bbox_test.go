package debug

import (
	"testing"

	"github.com/Faultbox/midgard-collide/pkg/geom"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

func TestWireBoxVertexCount(t *testing.T) {
	lb := NewLineBuffer()
	lb.DrawWireBox(geom.NewCenteredOrientedBox(math.Vec3{}, math.Splat(2)), ColorWhite, true)

	if got := len(lb.Depth.Lines) / FloatsPerVertex; got != BoxWireframeVertexCount {
		t.Errorf("wire box vertices = %d, want %d", got, BoxWireframeVertexCount)
	}
	if lb.Overlay.LineCount() != 0 {
		t.Error("depth-tested box should not reach the overlay batch")
	}
}

func TestSolidBoxTriangles(t *testing.T) {
	lb := NewLineBuffer()
	lb.DrawBox(geom.NewCenteredOrientedBox(math.Vec3{}, math.Splat(2)), ColorOrchid, false)

	if got := lb.Overlay.TriangleCount(); got != 12 {
		t.Errorf("solid box triangles = %d, want 12", got)
	}
	// Color is carried per vertex
	if lb.Overlay.Triangles[3] != ColorOrchid.R || lb.Overlay.Triangles[6] != ColorOrchid.A {
		t.Errorf("vertex color = %v, want %v", lb.Overlay.Triangles[3:7], ColorOrchid)
	}
}

func TestWireSphereStaysOnSurface(t *testing.T) {
	lb := NewLineBuffer()
	s := geom.BoundingSphere{Center: math.Vec3{X: 1, Y: 2, Z: 3}, Radius: 5}
	lb.DrawWireSphere(s, ColorWhite, true)

	if got := lb.Depth.LineCount(); got != 3*SphereSegments {
		t.Fatalf("sphere segments = %d, want %d", got, 3*SphereSegments)
	}
	for i := 0; i < len(lb.Depth.Lines); i += FloatsPerVertex {
		p := math.Vec3{X: lb.Depth.Lines[i], Y: lb.Depth.Lines[i+1], Z: lb.Depth.Lines[i+2]}
		d := p.Distance(s.Center)
		if d < 4.999 || d > 5.001 {
			t.Fatalf("vertex %v is %v from center, want 5", p, d)
		}
	}
}

func TestReset(t *testing.T) {
	lb := NewLineBuffer()
	lb.DrawLine(math.Vec3{}, math.Vec3{X: 1}, ColorRed, false)
	lb.Reset()
	if lb.Overlay.LineCount() != 0 {
		t.Error("Reset should clear batches")
	}
}

func TestColorHelpers(t *testing.T) {
	c := Color{1, 0.5, 0.25, 1}
	if got := c.Scale(0.5); got != (Color{0.5, 0.25, 0.125, 0.5}) {
		t.Errorf("Scale() = %v", got)
	}
	if got := c.AlphaMultiplied(0.6); got.R != 1 || got.A != 0.6 {
		t.Errorf("AlphaMultiplied() = %v", got)
	}
	if ParseViewMode("colliders") != ViewPhysicsColliders || ParseViewMode("") != ViewDefault {
		t.Error("ParseViewMode mismatch")
	}
	for _, m := range []ViewMode{ViewDefault, ViewPhysicsColliders} {
		if ParseViewMode(m.String()) != m {
			t.Errorf("ViewMode %d does not round trip through %q", m, m.String())
		}
	}
}

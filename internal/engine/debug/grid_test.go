package debug

import (
	"testing"

	"github.com/Faultbox/midgard-collide/pkg/math"
)

func TestDrawGridLineCount(t *testing.T) {
	lb := NewLineBuffer()
	DrawGrid(lb, math.Vec3{X: -1.5, Z: 0}, math.Vec3{X: 1.5, Z: 2}, 1, 0)

	// X cells -2..2 (5 lines), Z cells 0..2 (3 lines)
	if got := lb.Depth.LineCount(); got != 8 {
		t.Errorf("grid lines = %d, want 8", got)
	}
}

func TestDrawGridClampsExtent(t *testing.T) {
	lb := NewLineBuffer()
	DrawGrid(lb, math.Vec3{X: -1e6, Z: -1e6}, math.Vec3{X: 1e6, Z: 1e6}, 1, 0)

	want := 2 * (GridExtent + 1)
	if got := lb.Depth.LineCount(); got != want {
		t.Errorf("grid lines = %d, want %d", got, want)
	}
}

func TestDrawGridIgnoresBadInput(t *testing.T) {
	lb := NewLineBuffer()
	DrawGrid(lb, math.Vec3{}, math.Splat(10), 0, 0)
	DrawGrid(nil, math.Vec3{}, math.Splat(10), 1, 0)

	if lb.Depth.LineCount() != 0 {
		t.Error("zero cell size should draw nothing")
	}
}

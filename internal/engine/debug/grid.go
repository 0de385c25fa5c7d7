package debug

import (
	gomath "math"

	"github.com/Faultbox/midgard-collide/pkg/math"
)

// GridColor is the color of the ground reference grid.
var GridColor = Color{0.5, 0.5, 0.5, 1}

// GridExtent limits the number of cells per axis so a huge scene does not
// produce millions of lines.
const GridExtent = 256

// DrawGrid draws a horizontal reference grid at height y covering the XZ
// rectangle [lo, hi], snapped outward to whole cells.
func DrawGrid(d Drawer, lo, hi math.Vec3, cellSize, y float32) {
	if d == nil || cellSize <= 0 {
		return
	}

	minX, maxX := snapCells(lo.X, hi.X, cellSize)
	minZ, maxZ := snapCells(lo.Z, hi.Z, cellSize)

	// Lines along Z
	for x := minX; x <= maxX; x++ {
		worldX := float32(x) * cellSize
		d.DrawLine(
			math.Vec3{X: worldX, Y: y, Z: float32(minZ) * cellSize},
			math.Vec3{X: worldX, Y: y, Z: float32(maxZ) * cellSize},
			GridColor, true)
	}

	// Lines along X
	for z := minZ; z <= maxZ; z++ {
		worldZ := float32(z) * cellSize
		d.DrawLine(
			math.Vec3{X: float32(minX) * cellSize, Y: y, Z: worldZ},
			math.Vec3{X: float32(maxX) * cellSize, Y: y, Z: worldZ},
			GridColor, true)
	}
}

// snapCells returns the cell index range covering [lo, hi], clamped to
// GridExtent cells around the center.
func snapCells(lo, hi, cellSize float32) (int, int) {
	first := int(gomath.Floor(float64(lo / cellSize)))
	last := int(gomath.Ceil(float64(hi / cellSize)))
	if last-first > GridExtent {
		mid := (first + last) / 2
		first, last = mid-GridExtent/2, mid+GridExtent/2
	}
	return first, last
}

package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/midgard-collide/pkg/math"
)

// Image draws an OpenGL texture flipped vertically (framebuffer origin is
// bottom-left).
func Image(textureID uint32, width, height float32) {
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(width, height),
		imgui.NewVec2(0, 1), // UV flipped
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.15, 0.15, 0.15, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)
}

// SliderVec3 edits v with one slider per component on a single row.
// Returns true if any component changed.
func SliderVec3(label string, v *math.Vec3, lo, hi float32) bool {
	width := (imgui.ContentRegionAvail().X - 60) / 3
	if width < 30 {
		width = 30
	}

	changed := false
	imgui.PushItemWidth(width)
	if imgui.SliderFloatV("##"+label+"x", &v.X, lo, hi, "%.3f", imgui.SliderFlagsNone) {
		changed = true
	}
	imgui.SameLine()
	if imgui.SliderFloatV("##"+label+"y", &v.Y, lo, hi, "%.3f", imgui.SliderFlagsNone) {
		changed = true
	}
	imgui.SameLine()
	if imgui.SliderFloatV("##"+label+"z", &v.Z, lo, hi, "%.3f", imgui.SliderFlagsNone) {
		changed = true
	}
	imgui.PopItemWidth()
	imgui.SameLine()
	imgui.Text(label)
	return changed
}

// SliderFloat edits a single value and labels it.
func SliderFloat(label string, v *float32, lo, hi float32) bool {
	imgui.SetNextItemWidth(imgui.ContentRegionAvail().X - 60)
	changed := imgui.SliderFloatV("##"+label, v, lo, hi, "%.3f", imgui.SliderFlagsNone)
	imgui.SameLine()
	imgui.Text(label)
	return changed
}

// Vec3Text formats a vector for read-only display.
func Vec3Text(label string, v math.Vec3) {
	imgui.Text(fmt.Sprintf("%s: (%.3f, %.3f, %.3f)", label, v.X, v.Y, v.Z))
}

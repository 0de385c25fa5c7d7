package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/midgard-collide/internal/engine/camera"
	"github.com/Faultbox/midgard-collide/internal/engine/debug"
	"github.com/Faultbox/midgard-collide/internal/engine/picking"
	"github.com/Faultbox/midgard-collide/internal/engine/renderer"
	"github.com/Faultbox/midgard-collide/internal/engine/ui"
	"github.com/Faultbox/midgard-collide/pkg/geom"
)

// Viewport renders debug geometry into an offscreen framebuffer that is
// shown as an ImGui image.
type Viewport struct {
	target   *renderer.Target
	renderer *renderer.Renderer
	camera   *camera.OrbitCamera

	width  int32
	height int32

	lastMouse imgui.Vec2
}

// NewViewport creates the framebuffer and renderer.
// Must be called after the OpenGL context exists.
func NewViewport(width, height int32) (*Viewport, error) {
	target, err := renderer.NewTarget(width, height)
	if err != nil {
		return nil, err
	}
	r, err := renderer.New(renderer.Config{Width: int(width), Height: int(height)})
	if err != nil {
		target.Destroy()
		return nil, fmt.Errorf("creating viewport renderer: %w", err)
	}
	return &Viewport{
		target:   target,
		renderer: r,
		camera:   camera.NewOrbitCamera(),
		width:    width,
		height:   height,
	}, nil
}

// Resize changes the framebuffer size. Sizes below one pixel are ignored.
func (vp *Viewport) Resize(width, height int32) {
	if width < 1 || height < 1 || (width == vp.width && height == vp.height) {
		return
	}
	vp.width, vp.height = width, height
	vp.target.Resize(width, height)

	restore := vp.target.Bind()
	vp.renderer.Resize(int(width), int(height))
	restore()
}

func (vp *Viewport) aspect() float32 {
	return float32(vp.width) / float32(vp.height)
}

// View returns the culling view for the current camera.
func (vp *Viewport) View(mode debug.ViewMode) debug.View {
	return debug.View{Frustum: vp.camera.Frustum(vp.aspect()), Mode: mode}
}

// Render draws lines into the framebuffer and returns its color texture.
func (vp *Viewport) Render(lines *debug.LineBuffer) uint32 {
	restore := vp.target.Bind()
	defer restore()

	vp.renderer.Begin()
	vp.renderer.Draw(lines, vp.camera.ViewProjection(vp.aspect()))
	return vp.target.Texture()
}

// Show draws the rendered texture filling the available region and handles
// camera input. It returns the ray under the cursor when the image was
// clicked.
func (vp *Viewport) Show(texture uint32) (geom.Ray, bool) {
	avail := imgui.ContentRegionAvail()
	vp.Resize(int32(avail.X), int32(avail.Y))

	origin := imgui.CursorScreenPos()
	ui.Image(texture, float32(vp.width), float32(vp.height))

	if !imgui.IsItemHovered() {
		return geom.Ray{}, false
	}

	// Mouse drag for rotation
	mousePos := imgui.MousePos()
	if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
		vp.camera.HandleDrag(mousePos.X-vp.lastMouse.X, mousePos.Y-vp.lastMouse.Y)
	}
	vp.lastMouse = mousePos

	// Mouse wheel for zoom
	if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
		vp.camera.HandleZoom(wheel)
	}

	if !imgui.IsItemClicked() {
		return geom.Ray{}, false
	}
	inv := vp.camera.ViewProjection(vp.aspect()).Inverse()
	ray := picking.ScreenToRay(mousePos.X-origin.X, mousePos.Y-origin.Y,
		float32(vp.width), float32(vp.height), inv)
	return ray, true
}

// ReadPixels returns the last rendered frame, rows bottom-up.
func (vp *Viewport) ReadPixels() ([]byte, int, int) {
	w, h := vp.target.Size()
	return vp.target.ReadPixels(), int(w), int(h)
}

// Destroy releases GPU resources.
func (vp *Viewport) Destroy() {
	vp.renderer.Close()
	vp.target.Destroy()
}

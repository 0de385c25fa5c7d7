// Package viewer implements the interactive collider viewer: window, main
// loop, orbit camera, picking and debug drawing of loaded scenes.
package viewer

import (
	"context"
	"fmt"
	gomath "math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-collide/internal/config"
	"github.com/Faultbox/midgard-collide/internal/engine/camera"
	"github.com/Faultbox/midgard-collide/internal/engine/debug"
	"github.com/Faultbox/midgard-collide/internal/engine/input"
	"github.com/Faultbox/midgard-collide/internal/engine/picking"
	"github.com/Faultbox/midgard-collide/internal/engine/renderer"
	"github.com/Faultbox/midgard-collide/internal/engine/window"
	"github.com/Faultbox/midgard-collide/internal/logger"
	"github.com/Faultbox/midgard-collide/internal/physics"
	"github.com/Faultbox/midgard-collide/internal/scene"
	"github.com/Faultbox/midgard-collide/pkg/geom"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

// clickSlop is the cursor travel in pixels below which a press-release is a
// click rather than a drag.
const clickSlop = 4

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	lines      *debug.LineBuffer
	scenes     []*scene.Scene
	screenshot *debug.ScreenshotCapture

	viewMode     debug.ViewMode
	showTriggers bool
	selected     *scene.Hit

	// Mouse state
	dragging  bool
	dragMoved bool
	pressX    int
	pressY    int

	screenshotRequested bool // Deferred capture after the next render
}

// New creates the window and renderer and loads the configured scenes.
func New(ctx context.Context, cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Strings("scenes", cfg.Data.ScenePaths),
	)

	v := &Viewer{
		cfg:          cfg,
		lines:        debug.NewLineBuffer(),
		camera:       camera.NewOrbitCamera(),
		viewMode:     debug.ParseViewMode(cfg.Debug.ViewMode),
		showTriggers: cfg.Debug.Enabled,
		screenshot: debug.NewScreenshotCapture(
			cfg.Debug.ScreenshotDir, "colliderview", cfg.Debug.ScreenshotFormat),
	}
	v.camera.FOV = cfg.Graphics.FOV * gomath.Pi / 180

	backend, err := physics.NewBackend(cfg.Physics.Backend)
	if err != nil {
		return nil, err
	}
	v.scenes, err = scene.LoadAll(ctx, cfg.Data.ScenePaths, scene.Options{
		Backend:   backend,
		Drawer:    v.lines,
		Tolerance: cfg.Physics.SizeTolerance,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load scenes: %w", err)
	}

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      "Midgard Collide",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		v.releaseScenes()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	fbW, fbH := v.window.GetDrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: fbW, Height: fbH})
	if err != nil {
		v.window.Close()
		v.releaseScenes()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.renderer.Resize(fbW, fbH)

	v.input = input.New()
	v.fitCamera()

	logger.Info("viewer initialized successfully", zap.Int("scenes", len(v.scenes)))
	return v, nil
}

// Run starts the main loop. It returns when the window is closed.
func (v *Viewer) Run() error {
	v.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		v.update(dt)

		// 2. Render
		v.render()
		if v.screenshotRequested {
			v.screenshotRequested = false
			v.captureScreenshot()
		}

		// 3. Present (swap buffers)
		v.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("lines", v.lines.Depth.LineCount()+v.lines.Overlay.LineCount()),
			)
			v.window.SetTitle(fmt.Sprintf("Midgard Collide - %d fps", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases scenes, renderer and window.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	v.releaseScenes()
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) releaseScenes() {
	for _, s := range v.scenes {
		s.Release()
	}
	v.scenes = nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			fbW, fbH := v.window.GetDrawableSize()
			v.renderer.Resize(fbW, fbH)

		case input.EventKeyDown:
			v.handleKey(event.Key)

		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_LEFT {
				v.dragging = true
				v.dragMoved = false
				v.pressX, v.pressY = event.MouseX, event.MouseY
			}

		case input.EventMouseMove:
			if !v.dragging {
				continue
			}
			if abs(event.MouseX-v.pressX) > clickSlop || abs(event.MouseY-v.pressY) > clickSlop {
				v.dragMoved = true
			}
			if v.dragMoved {
				v.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}

		case input.EventMouseUp:
			if event.Button == sdl.BUTTON_LEFT && v.dragging {
				v.dragging = false
				if !v.dragMoved {
					v.pick(event.MouseX, event.MouseY)
				}
			}

		case input.EventMouseWheel:
			v.camera.HandleZoom(event.WheelY)
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		if v.selected != nil {
			v.selected = nil
			return
		}
		v.running = false
	case sdl.SCANCODE_F1:
		if v.viewMode == debug.ViewDefault {
			v.viewMode = debug.ViewPhysicsColliders
		} else {
			v.viewMode = debug.ViewDefault
		}
		logger.Debug("view mode changed", zap.Uint8("mode", uint8(v.viewMode)))
	case sdl.SCANCODE_F2:
		v.showTriggers = !v.showTriggers
	case sdl.SCANCODE_F:
		v.fitCamera()
	case sdl.SCANCODE_F12:
		v.screenshotRequested = true
	}
}

// update pans the camera with WASD/QE.
func (v *Viewer) update(dt float64) {
	var forward, right, up float32
	if v.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_E) {
		up++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_Q) {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		step := float32(dt * 60)
		v.camera.HandleMovement(forward*step, right*step, up*step)
	}
}

// render draws the grid, every scene's colliders and the selection.
func (v *Viewer) render() {
	v.renderer.Begin()
	v.lines.Reset()

	aspect := v.renderer.Aspect()
	box, ok := v.bounds()
	if !ok {
		box = geom.NewBoundingBox(math.Splat(-10), math.Splat(10))
	}
	debug.DrawGrid(v.lines, box.Min, box.Max, 1, 0)

	view := debug.View{Frustum: v.camera.Frustum(aspect), Mode: v.viewMode}
	for _, s := range v.scenes {
		s.DrawPhysicsDebug(view)
		if v.showTriggers {
			s.DrawDebug()
		}
	}
	if v.selected != nil {
		v.selected.Collider.DrawSelected()
	}

	v.renderer.Draw(v.lines, v.camera.ViewProjection(aspect))
}

// pick selects the nearest collider under the cursor across all scenes.
func (v *Viewer) pick(x, y int) {
	winW, winH := v.window.GetSize()
	aspect := float32(winW) / float32(max(winH, 1))
	inv := v.camera.ViewProjection(aspect).Inverse()
	ray := picking.ScreenToRay(float32(x), float32(y), float32(winW), float32(winH), inv)

	var best *scene.Hit
	for _, s := range v.scenes {
		if h, ok := s.Pick(ray); ok && (best == nil || h.Distance < best.Distance) {
			best = &h
		}
	}
	v.selected = best

	if best == nil {
		fields := []zap.Field{zap.Int("x", x), zap.Int("y", y)}
		if gx, gz, ok := picking.IntersectPlaneY(ray, 0); ok {
			fields = append(fields, zap.Float32("groundX", gx), zap.Float32("groundZ", gz))
		}
		logger.Debug("pick missed", fields...)
		return
	}
	logger.Info("picked collider",
		zap.String("node", best.Node.Name),
		zap.Stringer("id", best.Collider.ID()),
		zap.String("type", string(best.Collider.Kind())),
		zap.Float32("distance", best.Distance),
		zap.Float32s("point", []float32{best.Point.X, best.Point.Y, best.Point.Z}),
	)
}

// bounds merges the bounds of all scenes.
func (v *Viewer) bounds() (geom.BoundingBox, bool) {
	var box geom.BoundingBox
	found := false
	for _, s := range v.scenes {
		b, ok := s.Bounds()
		if !ok {
			continue
		}
		if !found {
			box, found = b, true
			continue
		}
		box = box.Merge(b)
	}
	return box, found
}

func (v *Viewer) fitCamera() {
	if box, ok := v.bounds(); ok {
		v.camera.FitToBounds(box)
	}
}

func (v *Viewer) captureScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.screenshot.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

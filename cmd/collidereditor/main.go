// Collider Editor - a graphical tool for editing collider scenes.
package main

import (
	"fmt"
	gomath "math"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-collide/internal/config"
	"github.com/Faultbox/midgard-collide/internal/engine/debug"
	"github.com/Faultbox/midgard-collide/internal/engine/ui"
	"github.com/Faultbox/midgard-collide/internal/logger"
	"github.com/Faultbox/midgard-collide/internal/physics"
	"github.com/Faultbox/midgard-collide/internal/physics/collider"
	"github.com/Faultbox/midgard-collide/internal/scene"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

func main() {
	runtime.LockOSThread()

	// Parse command line arguments
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Create and run application
	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("failed to create editor", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	// Open the first scene if specified
	if len(cfg.Data.ScenePaths) > 0 {
		if err := app.OpenScene(cfg.Data.ScenePaths[0]); err != nil {
			logger.Error("failed to open scene", zap.Error(err))
		}
	}

	app.Run()
}

// App represents the collider editor state.
type App struct {
	cfg *config.Config
	ui  *ui.Backend

	// Scene state
	scene     *scene.Scene
	scenePath string
	dirty     bool
	backend   physics.Backend
	lines     *debug.LineBuffer
	viewport  *Viewport

	// Selection
	selectedNode     *scene.Node
	selectedCollider collider.Shape
	eulerDegrees     map[*scene.Node]math.Vec3 // Rotation edited as yaw/pitch/roll

	// UI state
	viewMode     debug.ViewMode
	showTriggers bool
	showGrid     bool
	newNodeName  string

	// Screenshot state
	screenshot          *debug.ScreenshotCapture
	screenshotRequested bool // Deferred capture flag (capture next frame)

	// Status notification
	statusMsg  string
	statusTime time.Time

	// File dialog results (dialogs run off the main thread)
	pendingMu   sync.Mutex
	pendingOpen string
	pendingSave string
}

// NewApp creates the window, the viewport and an empty scene.
func NewApp(cfg *config.Config) (*App, error) {
	backend, err := physics.NewBackend(cfg.Physics.Backend)
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:          cfg,
		backend:      backend,
		lines:        debug.NewLineBuffer(),
		eulerDegrees: make(map[*scene.Node]math.Vec3),
		viewMode:     debug.ParseViewMode(cfg.Debug.ViewMode),
		showTriggers: cfg.Debug.Enabled,
		showGrid:     true,
		screenshot: debug.NewScreenshotCapture(
			cfg.Debug.ScreenshotDir, "collidereditor", cfg.Debug.ScreenshotFormat),
	}
	app.scene = scene.New("untitled", app.sceneOptions())

	app.ui, err = ui.NewBackend("Collider Editor", int32(cfg.Graphics.Width), int32(cfg.Graphics.Height))
	if err != nil {
		return nil, err
	}

	app.viewport, err = NewViewport(640, 480)
	if err != nil {
		return nil, err
	}
	app.viewport.camera.FOV = cfg.Graphics.FOV * gomath.Pi / 180

	return app, nil
}

func (app *App) sceneOptions() scene.Options {
	return scene.Options{
		Backend:   app.backend,
		Drawer:    app.lines,
		Tolerance: app.cfg.Physics.SizeTolerance,
	}
}

// Close cleans up resources and remembers the view settings.
func (app *App) Close() {
	app.cfg.Debug.ViewMode = app.viewMode.String()
	app.cfg.Debug.Enabled = app.showTriggers
	if err := app.cfg.Save(); err != nil {
		logger.Warn("failed to save config", zap.Error(err))
	}

	if app.scene != nil {
		app.scene.Release()
	}
	if app.viewport != nil {
		app.viewport.Destroy()
		app.viewport = nil
	}
}

// Run starts the main application loop.
func (app *App) Run() {
	app.ui.Run(app.render)
}

// OpenScene replaces the current scene with the one at path.
func (app *App) OpenScene(path string) error {
	s, err := scene.Load(path, app.sceneOptions())
	if err != nil {
		return err
	}

	app.scene.Release()
	app.scene = s
	app.scenePath = path
	app.dirty = false
	app.selectedNode = nil
	app.selectedCollider = nil
	app.eulerDegrees = make(map[*scene.Node]math.Vec3)

	if box, ok := s.Bounds(); ok {
		app.viewport.camera.FitToBounds(box)
	}
	app.updateTitle()
	app.showNotification("Opened " + filepath.Base(path))
	return nil
}

// SaveScene writes the current scene to path.
func (app *App) SaveScene(path string) error {
	if err := app.scene.Save(path); err != nil {
		return err
	}
	app.scenePath = path
	app.dirty = false
	app.updateTitle()
	app.showNotification("Saved " + filepath.Base(path))
	return nil
}

func (app *App) updateTitle() {
	title := "Collider Editor - " + app.scene.Name
	if app.dirty {
		title += " *"
	}
	app.ui.SetWindowTitle(title)
}

func (app *App) markDirty() {
	if !app.dirty {
		app.dirty = true
		app.updateTitle()
	}
}

func (app *App) showNotification(msg string) {
	app.statusMsg = msg
	app.statusTime = time.Now()
}

// render is called each frame to draw the UI.
func (app *App) render() {
	// Deferred screenshot capture: the viewport holds the previous frame
	if app.screenshotRequested {
		app.screenshotRequested = false
		app.captureScreenshot()
	}

	app.processPendingDialogs()
	app.handleShortcuts()
	app.renderMenuBar()

	// Get viewport work area (excludes menu bar)
	posX, posY, width, height := app.ui.GetViewport()

	// Layout dimensions
	leftPanelWidth := float32(260)
	rightPanelWidth := float32(320)
	statusBarHeight := float32(30)
	contentHeight := height - statusBarHeight
	centerWidth := width - leftPanelWidth - rightPanelWidth

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	// Left panel - Scene tree
	imgui.SetNextWindowPos(imgui.NewVec2(posX, posY))
	imgui.SetNextWindowSize(imgui.NewVec2(leftPanelWidth, contentHeight))
	if imgui.BeginV("Scene", nil, flags) {
		app.renderSceneTree()
	}
	imgui.End()

	// Center panel - 3D viewport
	imgui.SetNextWindowPos(imgui.NewVec2(posX+leftPanelWidth, posY))
	imgui.SetNextWindowSize(imgui.NewVec2(centerWidth, contentHeight))
	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("Viewport", nil, flags|imgui.WindowFlagsNoScrollbar|imgui.WindowFlagsNoScrollWithMouse) {
		app.renderViewport()
	}
	imgui.End()
	imgui.PopStyleVar()

	// Right panel - Inspector
	imgui.SetNextWindowPos(imgui.NewVec2(posX+leftPanelWidth+centerWidth, posY))
	imgui.SetNextWindowSize(imgui.NewVec2(rightPanelWidth, contentHeight))
	if imgui.BeginV("Inspector", nil, flags) {
		app.renderInspector()
	}
	imgui.End()

	// Status bar at bottom
	imgui.SetNextWindowPos(imgui.NewVec2(posX, posY+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(width, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		app.renderStatusBar()
	}
	imgui.End()
}

func (app *App) handleShortcuts() {
	// F12 = request screenshot (captured next frame to get rendered content)
	if ui.IsKeyPressed(imgui.KeyF12) {
		app.screenshotRequested = true
	}
	if ui.IsCtrlKeyPressed(imgui.KeyO) {
		app.openFileDialog()
	}
	if ui.IsCtrlKeyPressed(imgui.KeyS) {
		app.save()
	}
	if ui.IsKeyPressed(imgui.KeyF) && !imgui.IsAnyItemActive() {
		if box, ok := app.scene.Bounds(); ok {
			app.viewport.camera.FitToBounds(box)
		}
	}
	if ui.IsKeyPressed(imgui.KeyDelete) && !imgui.IsAnyItemActive() {
		app.removeSelectedCollider()
	}
}

func (app *App) renderMenuBar() {
	if !imgui.BeginMainMenuBar() {
		return
	}
	if imgui.BeginMenu("File") {
		if imgui.MenuItemBool("New") {
			app.newScene()
		}
		if imgui.MenuItemBool("Open...") {
			app.openFileDialog()
		}
		if imgui.MenuItemBool("Save") {
			app.save()
		}
		if imgui.MenuItemBool("Save As...") {
			app.saveFileDialog()
		}
		imgui.Separator()
		if imgui.MenuItemBool("Screenshot") {
			app.screenshotRequested = true
		}
		imgui.Separator()
		if imgui.MenuItemBool("Exit") {
			os.Exit(0)
		}
		imgui.EndMenu()
	}
	if imgui.BeginMenu("View") {
		colliders := app.viewMode == debug.ViewPhysicsColliders
		if imgui.Checkbox("Solid colliders", &colliders) {
			if colliders {
				app.viewMode = debug.ViewPhysicsColliders
			} else {
				app.viewMode = debug.ViewDefault
			}
		}
		imgui.Checkbox("Triggers", &app.showTriggers)
		imgui.Checkbox("Grid", &app.showGrid)
		imgui.EndMenu()
	}
	imgui.EndMainMenuBar()
}

func (app *App) renderViewport() {
	app.lines.Reset()

	if app.showGrid {
		lo, hi := math.Splat(-10), math.Splat(10)
		if box, ok := app.scene.Bounds(); ok {
			lo, hi = box.Min, box.Max
		}
		debug.DrawGrid(app.lines, lo, hi, 1, 0)
	}
	app.scene.DrawPhysicsDebug(app.viewport.View(app.viewMode))
	if app.showTriggers {
		app.scene.DrawDebug()
	}
	if app.selectedCollider != nil {
		app.selectedCollider.DrawSelected()
	}

	texture := app.viewport.Render(app.lines)
	if ray, clicked := app.viewport.Show(texture); clicked {
		if hit, ok := app.scene.Pick(ray); ok {
			app.selectedNode = hit.Node
			app.selectedCollider = hit.Collider
			logger.Debug("picked collider",
				zap.String("node", hit.Node.Name),
				zap.Stringer("id", hit.Collider.ID()),
				zap.Float32("distance", hit.Distance),
			)
		} else {
			app.selectedCollider = nil
		}
	}
}

func (app *App) renderStatusBar() {
	name := app.scenePath
	if name == "" {
		name = "(unsaved)"
	}
	shapes, _ := app.scene.Colliders()
	imgui.Text(fmt.Sprintf("%s | %d nodes | %d colliders | %d lines",
		name, app.scene.Len(), len(shapes),
		app.lines.Depth.LineCount()+app.lines.Overlay.LineCount()))

	if app.statusMsg != "" && time.Since(app.statusTime) < 3*time.Second {
		imgui.SameLine()
		imgui.TextColored(imgui.NewVec4(0.4, 0.8, 0.4, 1), "  "+app.statusMsg)
	}
}

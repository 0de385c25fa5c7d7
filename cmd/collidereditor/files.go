package main

import (
	"path/filepath"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-collide/internal/logger"
	"github.com/Faultbox/midgard-collide/internal/scene"
	"github.com/Faultbox/midgard-collide/pkg/math"
)

// openFileDialog shows a native file dialog to select a scene file.
func (app *App) openFileDialog() {
	// Run in goroutine to not block the UI.
	// SDL/Cocoa window operations must happen on main thread,
	// so the result is queued and processed in render().
	go func() {
		filename, err := dialog.File().
			Filter("Collider Scenes", "yaml", "yml").
			Filter("All Files", "*").
			Title("Open Scene").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Warn("file dialog error", zap.Error(err))
			}
			return
		}

		app.pendingMu.Lock()
		app.pendingOpen = filename
		app.pendingMu.Unlock()
	}()
}

// saveFileDialog asks for a destination and saves the scene there.
func (app *App) saveFileDialog() {
	startDir := "."
	if app.scenePath != "" {
		startDir = filepath.Dir(app.scenePath)
	}
	go func() {
		filename, err := dialog.File().
			Filter("Collider Scenes", "yaml", "yml").
			Title("Save Scene").
			SetStartDir(startDir).
			Save()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Warn("file dialog error", zap.Error(err))
			}
			return
		}

		app.pendingMu.Lock()
		app.pendingSave = filename
		app.pendingMu.Unlock()
	}()
}

// processPendingDialogs applies file dialog results on the main thread.
func (app *App) processPendingDialogs() {
	app.pendingMu.Lock()
	open, save := app.pendingOpen, app.pendingSave
	app.pendingOpen, app.pendingSave = "", ""
	app.pendingMu.Unlock()

	if open != "" {
		if err := app.OpenScene(open); err != nil {
			logger.Error("failed to open scene", zap.String("path", open), zap.Error(err))
			app.showNotification("Open failed: " + err.Error())
		}
	}
	if save != "" {
		if err := app.SaveScene(save); err != nil {
			logger.Error("failed to save scene", zap.String("path", save), zap.Error(err))
			app.showNotification("Save failed: " + err.Error())
		}
	}
}

// save writes to the current path, or asks for one.
func (app *App) save() {
	if app.scenePath == "" {
		app.saveFileDialog()
		return
	}
	if err := app.SaveScene(app.scenePath); err != nil {
		logger.Error("failed to save scene", zap.String("path", app.scenePath), zap.Error(err))
		app.showNotification("Save failed: " + err.Error())
	}
}

// newScene discards the current scene.
func (app *App) newScene() {
	app.scene.Release()
	app.scene = scene.New("untitled", app.sceneOptions())
	app.scenePath = ""
	app.dirty = false
	app.selectedNode = nil
	app.selectedCollider = nil
	app.eulerDegrees = make(map[*scene.Node]math.Vec3)
	app.updateTitle()
}

// captureScreenshot saves the last rendered viewport frame.
func (app *App) captureScreenshot() {
	pixels, w, h := app.viewport.ReadPixels()
	path, err := app.screenshot.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		app.showNotification("Screenshot failed: " + err.Error())
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
	app.showNotification("Screenshot saved: " + filepath.Base(path))
}

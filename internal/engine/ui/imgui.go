// Package ui provides ImGui-based user interface components.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-collide/internal/logger"
)

// latinGlyphRanges covers ASCII, Latin-1 and general punctuation.
// Format: pairs of [start, end] values terminated by 0.
var latinGlyphRanges = []imgui.Wchar{
	0x0020, 0x00FF, // Basic Latin + Latin Supplement
	0x2000, 0x206F, // General Punctuation
	0, // Terminator
}

// fontPaths lists candidate UI fonts (cross-platform support).
var fontPaths = []string{
	"/System/Library/Fonts/Supplemental/Arial.ttf",        // macOS
	"/Library/Fonts/Arial.ttf",                            // macOS (older)
	"C:\\Windows\\Fonts\\segoeui.ttf",                     // Windows
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",     // Linux (Debian/Ubuntu)
	"/usr/share/fonts/dejavu-sans-fonts/DejaVuSans.ttf",   // Linux (Fedora)
	"/usr/share/fonts/truetype/noto/NotoSans-Regular.ttf", // Linux alt
}

// Backend wraps the ImGui SDL backend for the collider editor.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	width   int32
	height  int32
}

// NewBackend creates a new ImGui backend.
func NewBackend(title string, width, height int32) (*Backend, error) {
	b := &Backend{
		width:  width,
		height: height,
	}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	// Set up font loading hook before creating window
	b.backend.SetAfterCreateContextHook(func() {
		b.loadFont()
	})

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(title, int(width), int(height))

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	logger.Info("imgui backend created",
		zap.String("title", title),
		zap.Int32("width", width),
		zap.Int32("height", height),
	)
	return b, nil
}

// loadFont loads the first available system font, falling back to the
// built-in ImGui font.
func (b *Backend) loadFont() {
	var fontPath string
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err == nil {
			fontPath = path
			break
		}
	}

	if fontPath == "" {
		logger.Debug("no system font found, using default font")
		return
	}

	fontCfg := imgui.NewFontConfig()
	defer fontCfg.Destroy()

	fonts := imgui.CurrentIO().Fonts()
	if font := fonts.AddFontFromFileTTFV(fontPath, 15.0, fontCfg, &latinGlyphRanges[0]); font == nil {
		logger.Warn("failed to load font", zap.String("path", fontPath))
		return
	}
	logger.Debug("loaded font", zap.String("path", fontPath))
}

// Run starts the main render loop.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// GetViewport returns the main viewport work area.
func (b *Backend) GetViewport() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// FramebufferSize returns the display size in physical pixels.
func FramebufferSize() (int, int) {
	io := imgui.CurrentIO()
	displaySize := io.DisplaySize()
	fbScale := io.DisplayFramebufferScale()
	return int(displaySize.X * fbScale.X), int(displaySize.Y * fbScale.Y)
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// IsCtrlKeyPressed checks if Ctrl+key was pressed this frame.
func IsCtrlKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(imgui.ModCtrl) | imgui.KeyChord(key))
}

// IsKeyDown checks if a key is currently held down.
func IsKeyDown(key imgui.Key) bool {
	return imgui.IsKeyDown(key)
}

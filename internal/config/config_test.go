package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test physics defaults
	if cfg.Physics.SizeTolerance != 0 {
		t.Errorf("expected size tolerance 0 (library default), got %f", cfg.Physics.SizeTolerance)
	}
	if cfg.Physics.Backend != "null" {
		t.Errorf("expected null backend, got %s", cfg.Physics.Backend)
	}

	// Test debug defaults
	if cfg.Debug.ViewMode != "default" {
		t.Errorf("expected view mode 'default', got %s", cfg.Debug.ViewMode)
	}
	if cfg.Debug.ScreenshotFormat != "png" {
		t.Errorf("expected screenshot format 'png', got %s", cfg.Debug.ScreenshotFormat)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fov: 75

physics:
  size_tolerance: 0.001
  backend: recorder

debug:
  enabled: false
  view_mode: colliders
  screenshot_format: bmp

data:
  scene_paths:
    - scenes/yard.yaml
    - scenes/dock.yaml

logging:
  level: "debug"
  log_file: "collide.log"
  json: true
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.FOV != 75 {
		t.Errorf("expected fov 75, got %f", cfg.Graphics.FOV)
	}

	if cfg.Physics.SizeTolerance != 0.001 {
		t.Errorf("expected size tolerance 0.001, got %f", cfg.Physics.SizeTolerance)
	}
	if cfg.Physics.Backend != "recorder" {
		t.Errorf("expected recorder backend, got %s", cfg.Physics.Backend)
	}

	if cfg.Debug.Enabled {
		t.Error("expected debug drawing to be disabled")
	}
	if cfg.Debug.ViewMode != "colliders" {
		t.Errorf("expected view mode 'colliders', got %s", cfg.Debug.ViewMode)
	}
	if cfg.Debug.ScreenshotDir != "screenshots" {
		t.Errorf("expected default screenshot dir to survive, got %s", cfg.Debug.ScreenshotDir)
	}

	if len(cfg.Data.ScenePaths) != 2 || cfg.Data.ScenePaths[1] != "scenes/dock.yaml" {
		t.Errorf("unexpected scene paths %v", cfg.Data.ScenePaths)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "collide.log" {
		t.Errorf("expected log file 'collide.log', got %s", cfg.Logging.LogFile)
	}
	if !cfg.Logging.JSON {
		t.Error("expected json logging")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"view mode", func(c *Config) { c.Debug.ViewMode = "solid" }},
		{"screenshot format", func(c *Config) { c.Debug.ScreenshotFormat = "gif" }},
		{"backend", func(c *Config) { c.Physics.Backend = "bullet" }},
		{"negative tolerance", func(c *Config) { c.Physics.SizeTolerance = -1 }},
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Debug.Enabled {
					t.Error("expected debug drawing to be enabled with debug flag")
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "scene flag",
			setup: func() {
				*flagScene = "yard.yaml"
			},
			verify: func(cfg *Config) {
				if len(cfg.Data.ScenePaths) != 1 || cfg.Data.ScenePaths[0] != "yard.yaml" {
					t.Errorf("expected scene paths [yard.yaml], got %v", cfg.Data.ScenePaths)
				}
			},
			teardown: func() {
				*flagScene = ""
			},
		},
		{
			name: "view flag",
			setup: func() {
				*flagView = "colliders"
			},
			verify: func(cfg *Config) {
				if cfg.Debug.ViewMode != "colliders" {
					t.Errorf("expected view mode 'colliders', got %s", cfg.Debug.ViewMode)
				}
			},
			teardown: func() {
				*flagView = ""
			},
		},
		{
			name: "backend flag",
			setup: func() {
				*flagBackend = "recorder"
			},
			verify: func(cfg *Config) {
				if cfg.Physics.Backend != "recorder" {
					t.Errorf("expected backend 'recorder', got %s", cfg.Physics.Backend)
				}
			},
			teardown: func() {
				*flagBackend = ""
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg, nil)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestApplyFlagsPositionalScenes(t *testing.T) {
	*flagScene = "dock.yaml"
	defer func() { *flagScene = "" }()

	cfg := Default()
	cfg.Data.ScenePaths = []string{"from-file.yaml"}
	applyFlags(cfg, []string{"yard.yaml", "pier.yaml"})

	want := []string{"dock.yaml", "yard.yaml", "pier.yaml"}
	if len(cfg.Data.ScenePaths) != len(want) {
		t.Fatalf("expected scene paths %v, got %v", want, cfg.Data.ScenePaths)
	}
	for i := range want {
		if cfg.Data.ScenePaths[i] != want[i] {
			t.Errorf("scene %d: expected %s, got %s", i, want[i], cfg.Data.ScenePaths[i])
		}
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
debug:
  view_mode: colliders
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}

	if cfg.Debug.ViewMode != "colliders" {
		t.Errorf("expected view mode 'colliders' from file, got %s", cfg.Debug.ViewMode)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("physics:\n  backend: bullet\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown backend, got nil")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Debug.ViewMode = "colliders"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Debug.ViewMode != "colliders" {
		t.Errorf("expected view mode 'colliders' after reload, got %s", loaded.Debug.ViewMode)
	}

	// Overwriting leaves no temp files behind
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("second SaveTo failed: %v", err)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only config.yaml in dir, got %d entries", len(entries))
	}
}

// Package config handles viewer and tool configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Debug    DebugConfig    `yaml:"debug"`
	Data     DataConfig     `yaml:"data"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DataConfig holds scene file paths.
type DataConfig struct {
	ScenePaths []string `yaml:"scene_paths"` // Scene files loaded at startup
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"` // Vertical field of view in degrees
}

// PhysicsConfig holds collider settings.
type PhysicsConfig struct {
	// SizeTolerance is the epsilon below which collider parameter changes
	// are ignored. Zero uses the library default.
	SizeTolerance float32 `yaml:"size_tolerance"`
	// Backend selects the shape backend: "null" or "recorder".
	Backend string `yaml:"backend"`
}

// DebugConfig holds debug drawing settings.
type DebugConfig struct {
	Enabled          bool   `yaml:"enabled"`
	ViewMode         string `yaml:"view_mode"` // "default" or "colliders"
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // "png" or "bmp"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        60,
		},
		Physics: PhysicsConfig{
			SizeTolerance: 0,
			Backend:       "null",
		},
		Debug: DebugConfig{
			Enabled:          true,
			ViewMode:         "default",
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

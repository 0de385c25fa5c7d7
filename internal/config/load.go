package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg, flag.Args())

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks enumerated settings and ranges.
func (c *Config) Validate() error {
	switch c.Debug.ViewMode {
	case "default", "colliders":
	default:
		return fmt.Errorf("debug.view_mode: unknown mode %q", c.Debug.ViewMode)
	}
	switch c.Debug.ScreenshotFormat {
	case "png", "bmp":
	default:
		return fmt.Errorf("debug.screenshot_format: unsupported format %q", c.Debug.ScreenshotFormat)
	}
	switch c.Physics.Backend {
	case "null", "recorder":
	default:
		return fmt.Errorf("physics.backend: unknown backend %q", c.Physics.Backend)
	}
	if c.Physics.SizeTolerance < 0 {
		return fmt.Errorf("physics.size_tolerance: must not be negative")
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "MidgardCollide")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "MidgardCollide")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "midgard-collide")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "midgard-collide")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

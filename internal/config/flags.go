package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagScene      = flag.String("scene", "", "Scene file to open")
	flagView       = flag.String("view", "", "Debug view mode (default, colliders)")
	flagBackend    = flag.String("backend", "", "Shape backend (null, recorder)")
	flagLogFile    = flag.String("log-file", "", "Also write logs to this file")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
// Positional arguments are treated as additional scene files.
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, args []string) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.Enabled = true
	}

	var scenes []string
	if *flagScene != "" {
		scenes = append(scenes, *flagScene)
	}
	scenes = append(scenes, args...)
	if len(scenes) > 0 {
		cfg.Data.ScenePaths = scenes
	}

	if *flagView != "" {
		cfg.Debug.ViewMode = *flagView
	}
	if *flagBackend != "" {
		cfg.Physics.Backend = *flagBackend
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}

	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}

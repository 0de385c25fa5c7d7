package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// fileOnly installs a logger writing only to a fresh file and returns its path.
func fileOnly(t *testing.T, level string, file FileConfig) string {
	t.Helper()
	if file.Path == "" {
		file.Path = filepath.Join(t.TempDir(), "collide.log")
	}
	if err := InitWithOptions(Options{Level: level, File: file}); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	t.Cleanup(func() {
		Sync()
		Log = zap.NewNop()
		Sugar = Log.Sugar()
	})
	return file.Path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	Sync()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(content)
}

func TestFileRotation(t *testing.T) {
	dir := t.TempDir()
	path := fileOnly(t, "debug", FileConfig{
		Path:       filepath.Join(dir, "collide.log"),
		MaxSizeMB:  1,
		MaxBackups: 2,
	})

	// About 4MB of entries forces at least one rollover at 1MB
	payload := strings.Repeat("b", 256)
	for i := 0; i < 12000; i++ {
		Sugar.Infow("geometry pushed", "seq", i, "shape", payload)
	}
	Sync()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("current log file missing: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var backups []string
	for _, e := range entries {
		name := e.Name()
		if name != "collide.log" && strings.HasPrefix(name, "collide-") {
			backups = append(backups, name)
		}
	}
	if len(backups) == 0 {
		t.Fatalf("expected rotated backups next to %s, dir has %d entries", path, len(entries))
	}
}

func TestLevelFiltering(t *testing.T) {
	all := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	tests := []struct {
		level  string
		lowest int // index into all of the first level written
	}{
		{"debug", 0},
		{"info", 1},
		{"warn", 2},
		{"error", 3},
		{"bogus", 1},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			path := fileOnly(t, tt.level, FileConfig{})

			Debug("d")
			Info("i")
			Warn("w")
			Error("e")

			out := readLog(t, path)
			for i, lvl := range all {
				got := strings.Contains(out, lvl)
				if want := i >= tt.lowest; got != want {
					t.Errorf("level %s present=%v, want %v\n%s", lvl, got, want, out)
				}
			}
		})
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("collide.log")

	want := FileConfig{Path: "collide.log", MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 7, Compress: true}
	if cfg != want {
		t.Errorf("DefaultFileConfig() = %+v, want %+v", cfg, want)
	}
}

func TestNamedLoggerInFile(t *testing.T) {
	path := fileOnly(t, "debug", FileConfig{})

	Named("collider").With(zap.String("kind", "box")).Debug("geometry updated", zap.Uint64("handle", 7))

	out := readLog(t, path)
	for _, want := range []string{"collider", "geometry updated", `"kind": "box"`, `"handle": 7`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in log output: %q", want, out)
		}
	}
}

func TestLoggingBeforeInit(t *testing.T) {
	// Package-level helpers must be safe before Init is called
	Log = zap.NewNop()
	Sugar = Log.Sugar()

	Debug("dropped")
	Warn("dropped")
	Named("collider").Info("dropped")
	Sync()
}

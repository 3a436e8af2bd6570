package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// setupFile logs to path only, at the given level.
func setupFile(t *testing.T, level, path string, maxSizeMB int) {
	t.Helper()
	err := Setup(Options{Level: level, File: FileConfig{Path: path, MaxSizeMB: maxSizeMB, MaxBackups: 2, MaxAgeDays: 1}})
	if err != nil {
		t.Fatalf("failed to set up logger: %v", err)
	}
	t.Cleanup(func() { Log = zap.NewNop() })
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

func TestLogRotation(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "render.log")

	// 1MB is the smallest size lumberjack rotates at.
	setupFile(t, "debug", logFile, 1)

	row := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		Log.Debug("row traced", zap.Int("row", i), zap.String("pixels", row))
	}
	Sync()

	files, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("failed to read temp dir: %v", err)
	}

	rotated := 0
	for _, f := range files {
		name := f.Name()
		if name == "render.log" || !strings.HasPrefix(name, "render") {
			continue
		}
		rotated++
		// render-YYYY-MM-DDTHH-MM-SS.SSS.log
		if !strings.Contains(name, "-20") {
			t.Errorf("rotated file %s doesn't have expected timestamp format", name)
		}
	}
	if rotated == 0 {
		t.Errorf("no rotated files found among %d entries", len(files))
	}
}

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"DEBUG", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, "level-"+tt.level+".log")
			setupFile(t, tt.level, logFile, 10)

			Log.Debug("debug message")
			Info("info message")
			Log.Warn("warn message")
			Error("error message")

			content := readLog(t, logFile)
			for _, exp := range tt.expected {
				if !strings.Contains(content, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(content, exc) {
					t.Errorf("unexpected %s in log output for level %q", exc, tt.level)
				}
			}
		})
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if err := Setup(Options{Level: "verbose"}); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestSetupWithoutSinks(t *testing.T) {
	if err := Setup(Options{Level: "debug"}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if Log.Core().Enabled(zap.ErrorLevel) {
		t.Error("a logger without sinks should discard everything")
	}
}

func TestConsoleOutput(t *testing.T) {
	var console bytes.Buffer
	if err := Setup(Options{Level: "info", Console: &console}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	t.Cleanup(func() { Log = zap.NewNop() })

	Named("raytracer").Info("scene built", zap.Int("segments", 42))
	Sync()

	out := console.String()
	for _, want := range []string{"raytracer", "scene built", "42"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q: %q", want, out)
		}
	}
}

func TestTimed(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "timed.log")
	setupFile(t, "info", logFile, 1)

	done := Timed("style voxelized", zap.String("method", "segments"))
	done(zap.Int("filled", 7))

	content := readLog(t, logFile)
	for _, want := range []string{"style voxelized", "segments", "filled", "elapsed"} {
		if !strings.Contains(content, want) {
			t.Errorf("expected %q in %q", want, content)
		}
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("hairtool.log")

	want := FileConfig{Path: "hairtool.log", MaxSizeMB: 20, MaxBackups: 3, MaxAgeDays: 14, Compress: true}
	if cfg != want {
		t.Errorf("DefaultFileConfig = %+v, want %+v", cfg, want)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/regionswap-mcp/internal/blend"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regionswap.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Levels != 4 || cfg.Mode() != blend.ModePyramid || cfg.Estimator != "three_point" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLevels, "")

	path := writeConfig(t, `
levels = 6
blend_mode = "seamless"
estimator = "similarity"
scale = 0.5
log_level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Levels != 6 {
		t.Errorf("Levels: got %d, want 6", cfg.Levels)
	}
	if cfg.Mode() != blend.ModeSeamless {
		t.Errorf("Mode: got %s, want seamless", cfg.Mode())
	}
	if cfg.Estimator != "similarity" || cfg.Scale != 0.5 {
		t.Errorf("got %+v", cfg)
	}
	if cfg.PoissonIterations != 200 {
		t.Errorf("unset keys should keep defaults, got poisson_iterations=%d", cfg.PoissonIterations)
	}
	if l, _ := cfg.Level(); l != log.DebugLevel {
		t.Errorf("Level: got %v, want debug", l)
	}
}

func TestLoad_MissingAndEmptyPath(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLevels, "")

	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.toml")} {
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", path, err)
		}
		if cfg != Default() {
			t.Errorf("Load(%q) = %+v, want defaults", path, cfg)
		}
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLevels, "2")

	cfg, err := Load(writeConfig(t, "levels = 5\nlog_level = \"debug\"\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Levels != 2 {
		t.Errorf("Levels: got %d, want 2 from the environment", cfg.Levels)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %s, want warn from the environment", cfg.LogLevel)
	}

	t.Setenv(EnvLevels, "many")
	if _, err := Load(""); err == nil {
		t.Error("non-numeric levels in the environment should fail")
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLevels, "")

	tests := []struct {
		name string
		body string
	}{
		{"malformed", "levels = ["},
		{"zero levels", "levels = 0"},
		{"unknown mode", `blend_mode = "feather"`},
		{"unknown estimator", `estimator = "ransac"`},
		{"negative scale", "scale = -1.0"},
		{"no iterations", "poisson_iterations = 0"},
		{"bad log level", `log_level = "chatty"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Errorf("expected an error for %q", tt.body)
			}
		})
	}
}

// Package config loads regionswap settings from a TOML file with
// environment overrides.
//
// Precedence, lowest first: Default, the config file, environment variables.
// Command-line flags are applied by the caller on top of the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/ironsheep/regionswap-mcp/internal/align"
	"github.com/ironsheep/regionswap-mcp/internal/blend"
)

// Environment variables that override file settings.
const (
	EnvLogLevel = "REGIONSWAP_LOG_LEVEL"
	EnvLevels   = "REGIONSWAP_LEVELS"
)

// Config holds the tunable parameters of a swap.
type Config struct {
	// Levels is the Laplacian pyramid depth.
	Levels int `toml:"levels"`
	// BlendMode is "pyramid", "hard" or "seamless".
	BlendMode string `toml:"blend_mode"`
	// Estimator is "three_point" or "similarity".
	Estimator string `toml:"estimator"`
	// Scale resizes input images (and their landmarks) before swapping.
	Scale float64 `toml:"scale"`
	// PoissonIterations bounds the seamless-clone solver.
	PoissonIterations int `toml:"poisson_iterations"`
	// LogLevel is a charmbracelet/log level name.
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Levels:            4,
		BlendMode:         string(blend.ModePyramid),
		Estimator:         "three_point",
		Scale:             1.0,
		PoissonIterations: 200,
		LogLevel:          "info",
	}
}

// Load returns Default overlaid with the file at path and then the
// environment. An empty path skips the file; a path that does not exist is
// not an error. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLevels); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLevels, err)
		}
		c.Levels = n
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Levels < 1 {
		return fmt.Errorf("levels must be >= 1, got %d", c.Levels)
	}
	if _, err := blend.ParseMode(c.BlendMode); err != nil {
		return err
	}
	if _, err := align.NewEstimator(c.Estimator, [3]int{}); err != nil {
		return err
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", c.Scale)
	}
	if c.PoissonIterations < 1 {
		return fmt.Errorf("poisson_iterations must be >= 1, got %d", c.PoissonIterations)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Mode returns the parsed blend mode.
func (c Config) Mode() blend.Mode {
	m, _ := blend.ParseMode(c.BlendMode)
	return m
}

// Level returns the parsed log level.
func (c Config) Level() (log.Level, error) {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

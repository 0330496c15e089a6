// SPDX-License-Identifier: MIT

// Package config loads driver settings for cmd/lvsolve.
//
// Priority is flags > environment > file > defaults. Load handles the last
// three; the command layer applies flags on top and validates the result.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Row distribution names.
const (
	MapUniform    = "uniform"
	MapRoundRobin = "roundrobin"
)

// Extraction formats.
const (
	FormatCRS = "crs"
	FormatCCS = "ccs"
)

// Config is the driver configuration.
type Config struct {
	// Matrix is a Matrix Market file path.
	Matrix string `yaml:"matrix"`
	// Ranks is the number of in-process ranks.
	Ranks int `yaml:"ranks"`
	// Map is MapUniform or MapRoundRobin.
	Map string `yaml:"map"`

	Extract ExtractConfig `yaml:"extract"`
	Precond PrecondConfig `yaml:"precond"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// ExtractConfig holds format adapter settings.
type ExtractConfig struct {
	Format     string `yaml:"format"`
	Root       int    `yaml:"root"`
	Replicated bool   `yaml:"replicated"`
}

// PrecondConfig holds Jacobi preconditioner settings.
type PrecondConfig struct {
	Damping float64 `yaml:"damping"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Ranks:    1,
		Map:      MapUniform,
		Extract:  ExtractConfig{Format: FormatCRS},
		Precond:  PrecondConfig{Damping: 2.0 / 3.0},
		LogLevel: "warn",
	}
}

// Load merges defaults, the YAML file at path (skipped when path is empty),
// and LVSOLVE_* environment variables. The result is not validated: callers
// apply their overrides first and then call Validate on the merged Config.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config.Load: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config.Load: parse %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("LVSOLVE_MATRIX"); v != "" {
		cfg.Matrix = v
	}
	if v := os.Getenv("LVSOLVE_RANKS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: LVSOLVE_RANKS=%q: %w", v, ErrInvalidConfig)
		}
		cfg.Ranks = n
	}
	if v := os.Getenv("LVSOLVE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Ranks < 1 {
		errs = append(errs, fmt.Errorf("ranks %d < 1", c.Ranks))
	}
	if c.Map != MapUniform && c.Map != MapRoundRobin {
		errs = append(errs, fmt.Errorf("map %q", c.Map))
	}
	if f := strings.ToLower(c.Extract.Format); f != FormatCRS && f != FormatCCS {
		errs = append(errs, fmt.Errorf("extract.format %q", c.Extract.Format))
	}
	if c.Extract.Root < 0 || c.Extract.Root >= c.Ranks {
		errs = append(errs, fmt.Errorf("extract.root %d outside [0,%d)", c.Extract.Root, c.Ranks))
	}
	if !(c.Precond.Damping > 0 && c.Precond.Damping < 2) {
		errs = append(errs, fmt.Errorf("precond.damping %g outside (0,2)", c.Precond.Damping))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// ParseLevel maps a level name onto slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level %q", s)
	}

	return l, nil
}

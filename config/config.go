// SPDX-License-Identifier: MIT

// Package config loads odesolve settings from a YAML file, applies LVODE_*
// environment overrides and turns the result into ode options.
//
// Precedence, lowest first: DefaultConfig, the YAML file, the environment.
// Command-line flags are applied on top by the CLI.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/katalvlaran/lvode/ode"
	"github.com/katalvlaran/lvode/poly"
	"github.com/katalvlaran/lvode/roots"
	"github.com/katalvlaran/lvode/synth"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvTolerance = "LVODE_TOLERANCE"
	EnvMethod    = "LVODE_METHOD"
	EnvPrecision = "LVODE_PRECISION"
	EnvLogLevel  = "LVODE_LOG_LEVEL"
)

// Config holds all odesolve configuration.
type Config struct {
	Classifier ClassifierConfig `yaml:"classifier"`
	Solver     SolverConfig     `yaml:"solver"`
	Output     OutputConfig     `yaml:"output"`
	Batch      BatchConfig      `yaml:"batch"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ClassifierConfig configures root grouping.
type ClassifierConfig struct {
	Tolerance      float64 `yaml:"tolerance"`
	NearMissFactor float64 `yaml:"near_miss_factor"` // 0 disables near-miss reporting
}

// SolverConfig configures the polynomial root finder.
type SolverConfig struct {
	Method    string  `yaml:"method"`    // companion, durand-kerner
	Tolerance float64 `yaml:"tolerance"` // durand-kerner only
	MaxIter   int     `yaml:"max_iter"`  // 0 keeps the method default
}

// OutputConfig configures rendering.
type OutputConfig struct {
	Precision    int     `yaml:"precision"`
	ExpTolerance float64 `yaml:"exp_tolerance"`
}

// BatchConfig configures SolveBatch.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency"` // 0 means GOMAXPROCS
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Classifier: ClassifierConfig{
			Tolerance:      roots.DefaultTolerance,
			NearMissFactor: roots.DefaultNearMissFactor,
		},
		Solver: SolverConfig{
			Method:    poly.DefaultMethod.String(),
			Tolerance: poly.DefaultTolerance,
		},
		Output: OutputConfig{
			Precision:    synth.DefaultPrecision,
			ExpTolerance: synth.DefaultExpTolerance,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over DefaultConfig and applies environment overrides.
// A missing file is not an error. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes c to path as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvTolerance); v != "" {
		tau, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvTolerance, v, err)
		}
		c.Classifier.Tolerance = tau
	}
	if v := os.Getenv(EnvMethod); v != "" {
		c.Solver.Method = v
	}
	if v := os.Getenv(EnvPrecision); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvPrecision, v, err)
		}
		c.Output.Precision = p
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}

	return nil
}

// Validate reports the first out-of-range setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if !positiveFinite(c.Classifier.Tolerance) {
		return invalid("classifier.tolerance", c.Classifier.Tolerance)
	}
	if c.Classifier.NearMissFactor < 0 || !isFinite(c.Classifier.NearMissFactor) {
		return invalid("classifier.near_miss_factor", c.Classifier.NearMissFactor)
	}
	if _, err := poly.ParseMethod(c.Solver.Method); err != nil {
		return fmt.Errorf("%w: solver.method: %w", ErrInvalidConfig, err)
	}
	if !positiveFinite(c.Solver.Tolerance) {
		return invalid("solver.tolerance", c.Solver.Tolerance)
	}
	if c.Solver.MaxIter < 0 {
		return invalid("solver.max_iter", c.Solver.MaxIter)
	}
	if c.Output.Precision < 0 || c.Output.Precision > synth.MaxPrecision {
		return invalid("output.precision", c.Output.Precision)
	}
	if c.Output.ExpTolerance < 0 || !isFinite(c.Output.ExpTolerance) {
		return invalid("output.exp_tolerance", c.Output.ExpTolerance)
	}
	if c.Batch.Concurrency < 0 {
		return invalid("batch.concurrency", c.Batch.Concurrency)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Options validates c and converts it into ode options.
func (c *Config) Options() ([]ode.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	method, _ := poly.ParseMethod(c.Solver.Method)

	opts := []ode.Option{
		ode.WithTolerance(c.Classifier.Tolerance),
		ode.WithNearMissFactor(c.Classifier.NearMissFactor),
		ode.WithMethod(method),
		ode.WithSolverTolerance(c.Solver.Tolerance),
		ode.WithPrecision(c.Output.Precision),
		ode.WithExpTolerance(c.Output.ExpTolerance),
	}
	if c.Solver.MaxIter > 0 {
		opts = append(opts, ode.WithMaxIter(c.Solver.MaxIter))
	}
	if c.Batch.Concurrency > 0 {
		opts = append(opts, ode.WithConcurrency(c.Batch.Concurrency))
	}

	return opts, nil
}

// LogLevel returns the parsed logging level, falling back to info.
func (c *Config) LogLevel() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel
	}

	return lvl
}

func invalid(field string, v any) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalidConfig, field, v)
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func positiveFinite(v float64) bool { return isFinite(v) && v > 0 }

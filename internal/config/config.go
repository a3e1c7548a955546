// Package config handles meshxform configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshxform/internal/logger"
	"github.com/Faultbox/meshxform/pkg/affine"
	"github.com/Faultbox/meshxform/pkg/mesh"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("invalid config")

// Progress modes.
const (
	ProgressAuto   = "auto"
	ProgressAlways = "always"
	ProgressNever  = "never"
)

// Config holds all meshxform settings.
type Config struct {
	Transform TransformConfig `koanf:"transform" yaml:"transform"`
	Output    OutputConfig    `koanf:"output" yaml:"output"`
	Logging   LoggingConfig   `koanf:"logging" yaml:"logging"`
}

// TransformConfig holds the raw transform parameters. Values keep the
// comma-separated form of the command line and are parsed by Params.
type TransformConfig struct {
	Pivot       string `koanf:"pivot" yaml:"pivot"`             // x,y,z
	Scale       string `koanf:"scale" yaml:"scale"`             // s
	Translation string `koanf:"translation" yaml:"translation"` // x,y,z
	Rotation    string `koanf:"rotation" yaml:"rotation"`       // angle,x,y,z
	Round       string `koanf:"round" yaml:"round"`             // decimals, empty disables
}

// OutputConfig holds batch output settings.
type OutputConfig struct {
	Progress string `koanf:"progress" yaml:"progress"` // auto|always|never
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `koanf:"level" yaml:"level"`
	LogFile string `koanf:"log_file" yaml:"log_file"`
}

// Default returns a Config with the no-op transform.
func Default() *Config {
	return &Config{
		Transform: TransformConfig{
			Pivot:       "0,0,0",
			Scale:       "1",
			Translation: "0,0,0",
			Rotation:    "0,1,0,0",
		},
		Output: OutputConfig{
			Progress: ProgressAuto,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the non-transform settings. Transform values are checked
// by Params and Rounding.
func (c *Config) Validate() error {
	if !logger.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("%w: logging.level %q (want debug, info, warn or error)", ErrInvalidConfig, c.Logging.Level)
	}
	switch c.Output.Progress {
	case ProgressAuto, ProgressAlways, ProgressNever:
	default:
		return fmt.Errorf("%w: output.progress %q (want auto, always or never)", ErrInvalidConfig, c.Output.Progress)
	}
	return nil
}

// Inputs returns the transform parameters for affine.ParseParams.
func (t TransformConfig) Inputs() affine.Inputs {
	return affine.Inputs{
		Pivot:       t.Pivot,
		Scale:       t.Scale,
		Translation: t.Translation,
		Rotation:    t.Rotation,
	}
}

// Params parses and validates the transform parameters.
func (c *Config) Params() (affine.Params, error) {
	return affine.ParseParams(c.Transform.Inputs())
}

// Rounding parses the round setting.
func (c *Config) Rounding() (mesh.Rounding, error) {
	return mesh.ParseRounding(c.Transform.Round)
}

// ProgressEnabled reports whether a progress bar should be drawn.
func (c *Config) ProgressEnabled(isTerminal bool) bool {
	switch c.Output.Progress {
	case ProgressAlways:
		return true
	case ProgressNever:
		return false
	default:
		return isTerminal
	}
}

// Package config loads and validates gitply settings from file,
// environment and defaults.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Sumatoshi-tech/gitply/internal/report"
)

// Config is the top-level configuration struct for gitply.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Format  string     `mapstructure:"format"`
	UserMap string     `mapstructure:"user_map"`
	Since   string     `mapstructure:"since"`
	NoColor bool       `mapstructure:"no_color"`
	Plot    PlotConfig `mapstructure:"plot"`
}

// PlotConfig holds chart output settings.
type PlotConfig struct {
	Output  string `mapstructure:"output"`
	NoPrint bool   `mapstructure:"no_print"`
}

// DefaultFormat is the report format applied before file and
// environment values.
const DefaultFormat = string(report.FormatText)

// sinceLayout matches the date accepted by git's --since flag here.
const sinceLayout = "2006-01-02"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidFormat indicates an unsupported report format name.
	ErrInvalidFormat = errors.New("config: invalid format")
	// ErrInvalidSince indicates a malformed since date.
	ErrInvalidSince = errors.New("config: invalid since date")
)

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Format != "" {
		if _, err := report.ParseFormat(c.Format); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
		}
	}

	if c.Since != "" {
		if _, err := time.Parse(sinceLayout, c.Since); err != nil {
			return fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidSince, c.Since)
		}
	}

	return nil
}

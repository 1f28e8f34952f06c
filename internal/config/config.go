// Package config loads graha settings from flags, environment and config
// files through viper, and validates them before any chart is cast.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Sentinel errors for configuration validation.
var (
	// ErrBadCoordinateSystem indicates an unknown coordinate_system value.
	ErrBadCoordinateSystem = errors.New("coordinate_system must be tropical or sidereal")
	// ErrBadFormat indicates an unknown output format.
	ErrBadFormat = errors.New("format must be text, json, toml or yaml")
	// ErrBadOrb indicates a non-positive conjunction orb.
	ErrBadOrb = errors.New("conjunction_orb must be positive")
	// ErrBadHouseSystem indicates a house system code that is not one character.
	ErrBadHouseSystem = errors.New("house_system must be a single character")
)

// Formats accepted for report output.
var Formats = []string{"text", "json", "toml", "yaml"}

// Config holds all runtime configuration for graha.
// Values are populated from .graha.yaml, GRAHA_* env vars, and CLI flags.
type Config struct {
	DataDir          string  `mapstructure:"data_dir"`
	CoordinateSystem string  `mapstructure:"coordinate_system"`
	Ayanamsa         float64 `mapstructure:"ayanamsa"`
	HouseSystem      string  `mapstructure:"house_system"`
	ConjunctionOrb   float64 `mapstructure:"conjunction_orb"`
	CachePath        string  `mapstructure:"cache_path"`
	TelemetryPath    string  `mapstructure:"telemetry_path"`
	MetricsAddr      string  `mapstructure:"metrics_addr"`
	Format           string  `mapstructure:"format"`
	Verbose          bool    `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("data_dir", ".")
	viper.SetDefault("coordinate_system", "sidereal")
	viper.SetDefault("ayanamsa", 23.856)
	viper.SetDefault("house_system", "P")
	viper.SetDefault("conjunction_orb", 10.0)
	viper.SetDefault("cache_path", "")
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("metrics_addr", "")
	viper.SetDefault("format", "text")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field, joined.
func (c Config) Validate() error {
	var errs []error
	if c.CoordinateSystem != "tropical" && c.CoordinateSystem != "sidereal" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrBadCoordinateSystem, c.CoordinateSystem))
	}
	if !validFormat(c.Format) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrBadFormat, c.Format))
	}
	if c.ConjunctionOrb <= 0 {
		errs = append(errs, fmt.Errorf("%w: %v", ErrBadOrb, c.ConjunctionOrb))
	}
	if len(c.HouseSystem) != 1 {
		errs = append(errs, fmt.Errorf("%w: %q", ErrBadHouseSystem, c.HouseSystem))
	}
	return errors.Join(errs...)
}

// HouseSystemCode returns the house system as the byte the oracle expects.
func (c Config) HouseSystemCode() byte {
	if c.HouseSystem == "" {
		return 'P'
	}
	return c.HouseSystem[0]
}

func validFormat(f string) bool {
	for _, v := range Formats {
		if f == v {
			return true
		}
	}
	return false
}

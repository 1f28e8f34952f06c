package config

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"DataDir", cfg.DataDir, "."},
		{"CoordinateSystem", cfg.CoordinateSystem, "sidereal"},
		{"Ayanamsa", cfg.Ayanamsa, 23.856},
		{"HouseSystem", cfg.HouseSystem, "P"},
		{"ConjunctionOrb", cfg.ConjunctionOrb, 10.0},
		{"CachePath", cfg.CachePath, ""},
		{"TelemetryPath", cfg.TelemetryPath, ""},
		{"MetricsAddr", cfg.MetricsAddr, ""},
		{"Format", cfg.Format, "text"},
		{"Verbose", cfg.Verbose, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "coordinate_system",
			envKey: "GRAHA_COORDINATE_SYSTEM",
			envVal: "tropical",
			field:  func(c Config) any { return c.CoordinateSystem },
			want:   "tropical",
		},
		{
			name:   "ayanamsa",
			envKey: "GRAHA_AYANAMSA",
			envVal: "24.1",
			field:  func(c Config) any { return c.Ayanamsa },
			want:   24.1,
		},
		{
			name:   "conjunction_orb",
			envKey: "GRAHA_CONJUNCTION_ORB",
			envVal: "8",
			field:  func(c Config) any { return c.ConjunctionOrb },
			want:   8.0,
		},
		{
			name:   "cache_path",
			envKey: "GRAHA_CACHE_PATH",
			envVal: "/tmp/graha.db",
			field:  func(c Config) any { return c.CachePath },
			want:   "/tmp/graha.db",
		},
		{
			name:   "format",
			envKey: "GRAHA_FORMAT",
			envVal: "json",
			field:  func(c Config) any { return c.Format },
			want:   "json",
		},
		{
			name:   "verbose",
			envKey: "GRAHA_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			// Set env prefix so GRAHA_* env vars map to config keys.
			viper.SetEnvPrefix("GRAHA")
			viper.AutomaticEnv()

			os.Setenv(tt.envKey, tt.envVal)
			defer os.Unsetenv(tt.envKey)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   any
		wantErr error
	}{
		{"coordinate system", "coordinate_system", "galactic", ErrBadCoordinateSystem},
		{"format", "format", "xml", ErrBadFormat},
		{"orb", "conjunction_orb", -1.0, ErrBadOrb},
		{"house system", "house_system", "PK", ErrBadHouseSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			viper.Set(tt.key, tt.value)

			_, err := Load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHouseSystemCode(t *testing.T) {
	t.Parallel()
	if got := (Config{HouseSystem: "W"}).HouseSystemCode(); got != 'W' {
		t.Errorf("HouseSystemCode = %q, want 'W'", got)
	}
	if got := (Config{}).HouseSystemCode(); got != 'P' {
		t.Errorf("empty HouseSystemCode = %q, want 'P'", got)
	}
}

package ephemeris

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/graha/internal/zodiac"
)

// Sentinel errors for observation files.
var (
	// ErrNoBirthTime indicates the [birth] table has no time.
	ErrNoBirthTime = errors.New("observation file has no birth time")
	// ErrMissingBody indicates an observed body has no entry.
	ErrMissingBody = errors.New("observation file is missing a body")
	// ErrBadLatitude indicates the observer latitude is outside [-90, 90].
	ErrBadLatitude = errors.New("observer latitude out of range")
	// ErrDuplicateBody indicates two [bodies] keys name the same body.
	ErrDuplicateBody = errors.New("observation file lists a body twice")
	// ErrNonFinite indicates a NaN or infinite number.
	ErrNonFinite = errors.New("observation value is not finite")
)

// Birth describes the instant and place a chart is cast for.
type Birth struct {
	Name             string           `toml:"name" json:"name"`
	Time             time.Time        `toml:"time" json:"time"`
	Latitude         float64          `toml:"latitude" json:"latitude"`
	Longitude        float64          `toml:"longitude" json:"longitude"`
	CoordinateSystem CoordinateSystem `toml:"coordinate_system" json:"coordinate_system"`
}

// Observations is the on-disk form of a single chart's raw oracle data.
type Observations struct {
	Birth  Birth                      `toml:"birth"`
	Houses Houses                     `toml:"houses"`
	Bodies map[string]zodiac.Position `toml:"bodies"`
}

// LoadObservations reads and validates an observation file.
func LoadObservations(path string) (*Observations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading observations %s: %w", path, err)
	}
	obs, err := ParseObservations(data)
	if err != nil {
		return nil, fmt.Errorf("parsing observations %s: %w", path, err)
	}
	return obs, nil
}

// ParseObservations decodes and validates observation TOML.
func ParseObservations(data []byte) (*Observations, error) {
	var obs Observations
	if err := toml.Unmarshal(data, &obs); err != nil {
		return nil, err
	}
	if obs.Birth.CoordinateSystem == "" {
		obs.Birth.CoordinateSystem = Tropical
	}
	if err := obs.Validate(); err != nil {
		return nil, err
	}
	return &obs, nil
}

// SaveObservations writes obs to path, creating parent directories.
func SaveObservations(path string, obs *Observations) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	data, err := toml.Marshal(obs)
	if err != nil {
		return fmt.Errorf("marshaling observations: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing observations %s: %w", path, err)
	}
	return nil
}

// Validate checks that the file carries everything the assembler will ask
// for. Every problem found is reported, joined.
func (o *Observations) Validate() error {
	var errs []error
	if o.Birth.Time.IsZero() {
		errs = append(errs, ErrNoBirthTime)
	}
	if o.Birth.Latitude < -90 || o.Birth.Latitude > 90 {
		errs = append(errs, fmt.Errorf("%w: %v", ErrBadLatitude, o.Birth.Latitude))
	}
	if !o.Birth.CoordinateSystem.Valid() {
		errs = append(errs, fmt.Errorf("unknown coordinate system %q", o.Birth.CoordinateSystem))
	}
	errs = append(errs, o.checkFinite()...)

	seen := make(map[zodiac.Body]string, len(o.Bodies))
	for _, key := range slices.Sorted(maps.Keys(o.Bodies)) {
		b, err := zodiac.ParseBody(key)
		if err != nil {
			continue
		}
		if prev, ok := seen[b]; ok {
			errs = append(errs, fmt.Errorf("%w: %q and %q", ErrDuplicateBody, prev, key))
			continue
		}
		seen[b] = key
	}
	for _, b := range zodiac.ObservedBodies {
		if _, ok := o.Position(b); !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingBody, b))
		}
	}
	return errors.Join(errs...)
}

func (o *Observations) checkFinite() []error {
	var errs []error
	check := func(field string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%w: %s = %v", ErrNonFinite, field, v))
		}
	}
	check("birth.latitude", o.Birth.Latitude)
	check("birth.longitude", o.Birth.Longitude)
	for i, c := range o.Houses.Cusps {
		check(fmt.Sprintf("houses.cusps[%d]", i), c)
	}
	check("houses.ascendant", o.Houses.Ascendant)
	check("houses.midheaven", o.Houses.Midheaven)
	for _, key := range slices.Sorted(maps.Keys(o.Bodies)) {
		p := o.Bodies[key]
		check("bodies."+key+".longitude", p.Longitude)
		check("bodies."+key+".latitude", p.Latitude)
		check("bodies."+key+".distance", p.Distance)
		check("bodies."+key+".speed_longitude", p.SpeedLongitude)
		check("bodies."+key+".speed_latitude", p.SpeedLatitude)
		check("bodies."+key+".speed_distance", p.SpeedDistance)
	}
	return errs
}

// Position returns the recorded position for b. Keys are matched by body
// name, case-insensitively.
func (o *Observations) Position(b zodiac.Body) (zodiac.Position, bool) {
	for key, pos := range o.Bodies {
		parsed, err := zodiac.ParseBody(key)
		if err == nil && parsed == b {
			return pos, true
		}
	}
	return zodiac.Position{}, false
}

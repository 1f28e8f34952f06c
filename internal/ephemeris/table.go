package ephemeris

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/papapumpkin/graha/internal/zodiac"
)

// DefaultAyanamsa is the tropical-to-sidereal offset used when none is
// configured, in degrees.
const DefaultAyanamsa = 23.856

// TableOracle serves positions from a recorded observation file. It answers
// only for the recorded instant. Sidereal longitudes are derived from the
// recorded frame by applying the ayanamsa as a constant offset.
type TableOracle struct {
	obs        *Observations
	ayanamsa   float64
	houseFrame CoordinateSystem
}

// NewTableOracle loads the named observation file through the session.
func NewTableOracle(sess *Session, name string, ayanamsa float64) (*TableOracle, error) {
	path, err := sess.Resolve(name)
	if err != nil {
		return nil, &OracleError{Code: CodeNotInitialized, Message: err.Error()}
	}
	obs, err := LoadObservations(path)
	if err != nil {
		return nil, err
	}
	return NewTableOracleFrom(obs, ayanamsa), nil
}

// NewTableOracleFrom wraps already-loaded observations.
func NewTableOracleFrom(obs *Observations, ayanamsa float64) *TableOracle {
	return &TableOracle{obs: obs, ayanamsa: ayanamsa, houseFrame: Sidereal}
}

// WithHouseFrame returns a copy of t that reports house cusps in system.
// The default is Sidereal.
func (t *TableOracle) WithHouseFrame(system CoordinateSystem) *TableOracle {
	c := *t
	c.houseFrame = system
	return &c
}

// Observations returns the underlying recorded data.
func (t *TableOracle) Observations() *Observations {
	return t.obs
}

// Ayanamsa returns the tropical-to-sidereal offset in degrees.
func (t *TableOracle) Ayanamsa() float64 {
	return t.ayanamsa
}

// Fingerprint identifies every input the oracle's answers depend on: the
// recorded observations, the ayanamsa and the house frame. Editing the file
// or changing either setting yields a different value.
func (t *TableOracle) Fingerprint() string {
	h := sha256.New()
	// fmt prints map keys sorted and floats in shortest exact form.
	fmt.Fprintf(h, "%v|%v|%v|%v|%s", t.obs.Birth, t.obs.Houses, t.obs.Bodies, t.ayanamsa, t.houseFrame)
	return "sha256:" + hex.EncodeToString(h.Sum(nil))
}

// Position implements Oracle.
func (t *TableOracle) Position(ctx context.Context, at time.Time, body zodiac.Body, system CoordinateSystem, flags Flags) (zodiac.Position, error) {
	if err := ctx.Err(); err != nil {
		return zodiac.Position{}, oracleErrorf(CodeCanceled, "%v", err)
	}
	if !body.Valid() || body == zodiac.Ketu {
		return zodiac.Position{}, oracleErrorf(CodeUnknownBody, "body %s is not observable", body)
	}
	if !system.Valid() {
		return zodiac.Position{}, oracleErrorf(CodeBadSystem, "unknown coordinate system %q", system)
	}
	if !at.Equal(t.obs.Birth.Time) {
		return zodiac.Position{}, oracleErrorf(CodeNoObservation, "no observation for %s", at.Format(time.RFC3339))
	}
	pos, ok := t.obs.Position(body)
	if !ok {
		return zodiac.Position{}, oracleErrorf(CodeNoObservation, "no observation for %s", body)
	}

	pos.Longitude = t.convert(pos.Longitude, system)
	if flags&FlagSpeed == 0 {
		pos.SpeedLongitude, pos.SpeedLatitude, pos.SpeedDistance = 0, 0, 0
	}
	return pos, nil
}

// Houses implements Oracle. Recorded cusps are in the file's coordinate
// system and are converted to the oracle's house frame.
func (t *TableOracle) Houses(ctx context.Context, at time.Time, lat, lon float64, houseSystem byte) (Houses, error) {
	if err := ctx.Err(); err != nil {
		return Houses{}, oracleErrorf(CodeCanceled, "%v", err)
	}
	if !at.Equal(t.obs.Birth.Time) {
		return Houses{}, oracleErrorf(CodeNoObservation, "no houses for %s", at.Format(time.RFC3339))
	}
	if houseSystem == 0 {
		return Houses{}, oracleErrorf(CodeBadSystem, "house system not set")
	}
	if lat < -90 || lat > 90 {
		return Houses{}, oracleErrorf(CodeNoObservation, "latitude %v out of range", lat)
	}

	h := t.obs.Houses
	for i := range h.Cusps {
		h.Cusps[i] = t.convert(h.Cusps[i], t.houseFrame)
	}
	h.Ascendant = t.convert(h.Ascendant, t.houseFrame)
	h.Midheaven = t.convert(h.Midheaven, t.houseFrame)
	return h, nil
}

func (t *TableOracle) convert(lon float64, want CoordinateSystem) float64 {
	have := t.obs.Birth.CoordinateSystem
	switch {
	case have == want:
		return zodiac.Normalize(lon)
	case have == Tropical && want == Sidereal:
		return zodiac.Normalize(lon - t.ayanamsa)
	default:
		return zodiac.Normalize(lon + t.ayanamsa)
	}
}

// String describes the oracle for logs.
func (t *TableOracle) String() string {
	return fmt.Sprintf("table(%s @ %s)", t.obs.Birth.Name, t.obs.Birth.Time.Format(time.RFC3339))
}

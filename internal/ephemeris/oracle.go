// Package ephemeris defines the boundary to the astronomical position oracle
// and provides the adapters graha ships with: a table oracle that serves
// recorded observations and a SQLite read-through cache.
package ephemeris

import (
	"context"
	"fmt"
	"time"

	"github.com/papapumpkin/graha/internal/zodiac"
)

// CoordinateSystem selects the zodiac frame in which longitudes are reported.
type CoordinateSystem string

const (
	// Tropical measures longitude from the vernal equinox.
	Tropical CoordinateSystem = "tropical"
	// Sidereal measures longitude from a fixed-star origin, offset from
	// tropical by the ayanamsa.
	Sidereal CoordinateSystem = "sidereal"
)

// Valid reports whether c is a known coordinate system.
func (c CoordinateSystem) Valid() bool {
	return c == Tropical || c == Sidereal
}

// Flags request optional outputs from the oracle.
type Flags uint8

const (
	// FlagSpeed requests daily motion alongside position.
	FlagSpeed Flags = 1 << iota
	// FlagTopocentric requests observer-centred rather than geocentric values.
	FlagTopocentric
)

// DefaultFlags are the flags used for chart assembly.
const DefaultFlags = FlagSpeed

// HouseCount is the number of house cusps returned by the oracle.
const HouseCount = 12

// Houses holds the cusps and angles returned by a house query. Cusps[0] is
// the first house.
type Houses struct {
	Cusps     [HouseCount]float64 `json:"cusps" toml:"cusps"`
	Ascendant float64             `json:"ascendant" toml:"ascendant"`
	Midheaven float64             `json:"midheaven" toml:"midheaven"`
}

// Oracle supplies raw body positions and house cusps. Implementations may
// perform I/O; callers treat every error as fatal for the current chart.
type Oracle interface {
	Position(ctx context.Context, at time.Time, body zodiac.Body, system CoordinateSystem, flags Flags) (zodiac.Position, error)
	Houses(ctx context.Context, at time.Time, lat, lon float64, houseSystem byte) (Houses, error)
}

// Oracle error codes. Codes are negative, matching the convention of the
// native ephemeris libraries graha can front.
const (
	CodeNotInitialized = -1
	CodeUnknownBody    = -2
	CodeNoObservation  = -3
	CodeBadSystem      = -4
	CodeCanceled       = -5
)

// OracleError is a failure reported by an oracle. It is surfaced to callers
// verbatim and never retried.
type OracleError struct {
	Code    int
	Message string
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("ephemeris: oracle error %d: %s", e.Code, e.Message)
}

func oracleErrorf(code int, format string, args ...any) *OracleError {
	return &OracleError{Code: code, Message: fmt.Sprintf(format, args...)}
}

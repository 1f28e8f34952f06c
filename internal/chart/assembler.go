package chart

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/papapumpkin/graha/internal/ephemeris"
	"github.com/papapumpkin/graha/internal/zodiac"
)

// Input is the instant and observer location a chart is cast for.
type Input struct {
	Time      time.Time
	Latitude  float64
	Longitude float64
}

// Assembler builds birth charts by querying an oracle for each observed
// body, deriving Ketu from Rahu, and resolving houses.
type Assembler struct {
	oracle      ephemeris.Oracle
	system      ephemeris.CoordinateSystem
	houseSystem byte
	flags       ephemeris.Flags
	logger      *zap.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithCoordinateSystem selects the frame body positions are requested in.
func WithCoordinateSystem(system ephemeris.CoordinateSystem) Option {
	return func(a *Assembler) { a.system = system }
}

// WithHouseSystem selects the house system code passed to the oracle.
func WithHouseSystem(code byte) Option {
	return func(a *Assembler) { a.houseSystem = code }
}

// WithFlags overrides the oracle flags.
func WithFlags(flags ephemeris.Flags) Option {
	return func(a *Assembler) { a.flags = flags }
}

// WithLogger sets the logger. A nil logger is replaced by a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAssembler returns an Assembler that queries oracle. Defaults are the
// sidereal frame, Placidus houses ('P'), and speed output.
func NewAssembler(oracle ephemeris.Oracle, opts ...Option) *Assembler {
	a := &Assembler{
		oracle:      oracle,
		system:      ephemeris.Sidereal,
		houseSystem: 'P',
		flags:       ephemeris.DefaultFlags,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble casts the birth chart for in. The first failure aborts assembly;
// there is no partial chart.
func (a *Assembler) Assemble(ctx context.Context, in Input) (*Chart, error) {
	log := a.logger.With(zap.Time("instant", in.Time), zap.String("system", string(a.system)))

	houses, err := a.oracle.Houses(ctx, in.Time, in.Latitude, in.Longitude, a.houseSystem)
	if err != nil {
		log.Warn("house query failed", zap.Error(err))
		return nil, err
	}

	positions := make(map[zodiac.Body]zodiac.Position, zodiac.BodyCount)
	for _, body := range zodiac.ObservedBodies {
		pos, err := a.oracle.Position(ctx, in.Time, body, a.system, a.flags)
		if err != nil {
			log.Warn("position query failed", zap.Stringer("body", body), zap.Error(err))
			if body == zodiac.Rahu {
				return nil, &DerivationError{Body: zodiac.Ketu, Source: zodiac.Rahu, Err: err}
			}
			return nil, err
		}
		log.Debug("position", zap.Stringer("body", body), zap.Float64("longitude", pos.Longitude))
		positions[body] = pos
	}
	positions[zodiac.Ketu] = zodiac.DescendingNode(positions[zodiac.Rahu])

	c, err := New(Rasi, houses, positions)
	if err != nil {
		return nil, err
	}
	log.Debug("chart assembled", zap.Stringer("ascendant", c.Ascendant().Sign))
	return c, nil
}

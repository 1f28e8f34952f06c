package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/papapumpkin/graha/internal/chart"
	"github.com/papapumpkin/graha/internal/dasha"
	"github.com/papapumpkin/graha/internal/dignity"
	"github.com/papapumpkin/graha/internal/ephemeris"
	"github.com/papapumpkin/graha/internal/kuta"
	"github.com/papapumpkin/graha/internal/metrics"
	"github.com/papapumpkin/graha/internal/strength"
	"github.com/papapumpkin/graha/internal/telemetry"
	"github.com/papapumpkin/graha/internal/yoga"
	"github.com/papapumpkin/graha/internal/zodiac"
)

// Request names a native and the oracle that answers for them.
type Request struct {
	Subject Subject
	Oracle  ephemeris.Oracle
}

// ObservationRequest builds a Request whose subject comes from the birth
// table of obs.
func ObservationRequest(obs *ephemeris.Observations, oracle ephemeris.Oracle) Request {
	return Request{
		Subject: Subject{
			Name:      obs.Birth.Name,
			Time:      obs.Birth.Time,
			Latitude:  obs.Birth.Latitude,
			Longitude: obs.Birth.Longitude,
		},
		Oracle: oracle,
	}
}

// Pair is the result of matching two natives.
type Pair struct {
	Native  *Report `json:"native" toml:"native" yaml:"native"`
	Partner *Report `json:"partner" toml:"partner" yaml:"partner"`
}

// Builder assembles charts and derives every analysis a report carries.
type Builder struct {
	system      ephemeris.CoordinateSystem
	houseSystem byte
	ayanamsa    float64
	orb         float64
	timeline    bool

	logger  *zap.Logger
	emitter *telemetry.Emitter
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string
}

// Option configures a Builder.
type Option func(*Builder)

// WithCoordinateSystem selects the frame charts are cast in.
func WithCoordinateSystem(system ephemeris.CoordinateSystem) Option {
	return func(b *Builder) { b.system = system }
}

// WithHouseSystem selects the house system code.
func WithHouseSystem(code byte) Option {
	return func(b *Builder) { b.houseSystem = code }
}

// WithAyanamsa records the ayanamsa the oracle applies. It is reported, not
// applied.
func WithAyanamsa(deg float64) Option {
	return func(b *Builder) { b.ayanamsa = deg }
}

// WithOrb sets the conjunction orb for yoga detection.
func WithOrb(orb float64) Option {
	return func(b *Builder) { b.orb = orb }
}

// WithTimeline includes the full maha/antar timeline in reports.
func WithTimeline(on bool) Option {
	return func(b *Builder) { b.timeline = on }
}

// WithLogger sets the logger. A nil logger is replaced by a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithTelemetry records events to em. A nil emitter records nothing.
func WithTelemetry(em *telemetry.Emitter) Option {
	return func(b *Builder) { b.emitter = em }
}

// WithMetrics instruments oracles and counts reports in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Builder) { b.metrics = m }
}

// WithClock overrides the wall clock used for GeneratedAt and the default
// evaluation instant.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithIDGenerator overrides report ID generation.
func WithIDGenerator(gen func() string) Option {
	return func(b *Builder) { b.newID = gen }
}

// NewBuilder returns a Builder with sidereal Placidus defaults.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		system:      ephemeris.Sidereal,
		houseSystem: 'P',
		ayanamsa:    ephemeris.DefaultAyanamsa,
		orb:         yoga.DefaultOrb,
		logger:      zap.NewNop(),
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build casts the chart for req and evaluates dasha periods at at. A zero at
// means now.
func (b *Builder) Build(ctx context.Context, req Request, at time.Time) (*Report, error) {
	id := b.newID()
	c, err := b.assemble(ctx, id, req)
	if err != nil {
		return nil, err
	}
	r, err := b.analyze(id, req.Subject, c, at)
	if err != nil {
		return nil, err
	}
	b.finish(r)
	return r, nil
}

// Match casts both charts concurrently, builds a report for each and scores
// each against the other.
func (b *Builder) Match(ctx context.Context, native, partner Request, at time.Time) (*Pair, error) {
	ids := [2]string{b.newID(), b.newID()}
	reqs := [2]Request{native, partner}
	var charts [2]*chart.Chart

	g, gctx := errgroup.WithContext(ctx)
	for i := range reqs {
		g.Go(func() error {
			c, err := b.assemble(gctx, ids[i], reqs[i])
			if err != nil {
				return err
			}
			charts[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var reports [2]*Report
	for i := range reqs {
		r, err := b.analyze(ids[i], reqs[i].Subject, charts[i], at)
		if err != nil {
			return nil, err
		}
		other := 1 - i
		res, err := kuta.Score(charts[i], charts[other])
		if err != nil {
			return nil, fmt.Errorf("scoring %q against %q: %w", reqs[i].Subject.Name, reqs[other].Subject.Name, err)
		}
		r.Compatibility = compatibility(reqs[other].Subject.Name, res)
		b.metrics.CompatibilityScored(float64(res.Total))
		b.record(telemetry.KindCompatibilityScored, r.ID, r.Subject.Name, map[string]any{
			"partner":    reqs[other].Subject.Name,
			"total":      res.Total,
			"percentage": res.Percentage,
		})
		b.logger.Info("compatibility scored",
			zap.String("native", reqs[i].Subject.Name),
			zap.String("partner", reqs[other].Subject.Name),
			zap.Int("total", res.Total))
		b.finish(r)
		reports[i] = r
	}
	return &Pair{Native: reports[0], Partner: reports[1]}, nil
}

func (b *Builder) assemble(ctx context.Context, id string, req Request) (*chart.Chart, error) {
	if req.Oracle == nil {
		return nil, fmt.Errorf("assembling chart for %q: no oracle", req.Subject.Name)
	}
	asm := chart.NewAssembler(
		b.metrics.InstrumentOracle(req.Oracle),
		chart.WithCoordinateSystem(b.system),
		chart.WithHouseSystem(b.houseSystem),
		chart.WithLogger(b.logger.With(zap.String("subject", req.Subject.Name))),
	)
	c, err := asm.Assemble(ctx, chart.Input{
		Time:      req.Subject.Time,
		Latitude:  req.Subject.Latitude,
		Longitude: req.Subject.Longitude,
	})
	if err != nil {
		data := map[string]any{"error": err.Error()}
		var oe *ephemeris.OracleError
		if errors.As(err, &oe) {
			data["code"] = oe.Code
		}
		b.record(telemetry.KindOracleFailure, id, req.Subject.Name, data)
		return nil, fmt.Errorf("assembling chart for %q: %w", req.Subject.Name, err)
	}
	b.metrics.ChartAssembled()
	b.record(telemetry.KindChartAssembled, id, req.Subject.Name, map[string]any{
		"ascendant": c.Ascendant().Sign.String(),
		"system":    string(b.system),
	})
	return c, nil
}

func (b *Builder) analyze(id string, subject Subject, rasi *chart.Chart, at time.Time) (*Report, error) {
	now := b.now().UTC()
	if at.IsZero() {
		at = now
	}

	navamsa, err := chart.NavamsaOf(rasi)
	if err != nil {
		return nil, fmt.Errorf("deriving navamsa: %w", err)
	}
	rasiDignity, err := dignity.AssessChart(rasi)
	if err != nil {
		return nil, fmt.Errorf("assessing dignity: %w", err)
	}
	navDignity, err := dignity.AssessChart(navamsa)
	if err != nil {
		return nil, fmt.Errorf("assessing navamsa dignity: %w", err)
	}

	sel, err := dasha.ForChart(rasi, subject.Time, at)
	if err != nil {
		return nil, fmt.Errorf("selecting dasha: %w", err)
	}
	var timeline []dasha.TimelineEntry
	if b.timeline {
		moon, err := rasi.Placement(zodiac.Moon)
		if err != nil {
			return nil, err
		}
		timeline = dasha.Timeline(subject.Time, moon.Longitude)
	}
	b.record(telemetry.KindDashaSelected, id, subject.Name, map[string]any{
		"maha":       sel.Maha.Lord.String(),
		"antar":      sel.Antar.Lord.String(),
		"pratyantar": sel.Pratyantar.Lord.String(),
	})

	matches, err := yoga.Detect(rasi, b.orb)
	if err != nil {
		return nil, fmt.Errorf("detecting yogas: %w", err)
	}
	aspects, err := yoga.Aspects(rasi)
	if err != nil {
		return nil, fmt.Errorf("finding aspects: %w", err)
	}
	lagnas, err := rasi.SpecialLagnas()
	if err != nil {
		return nil, fmt.Errorf("deriving special lagnas: %w", err)
	}
	balas, err := strength.Shadbala(rasi)
	if err != nil {
		return nil, fmt.Errorf("scoring strength: %w", err)
	}
	remedies, err := strength.Remedies(rasi)
	if err != nil {
		return nil, fmt.Errorf("suggesting remedies: %w", err)
	}
	r := &Report{
		ID:               id,
		GeneratedAt:      now,
		EvaluatedAt:      at.UTC(),
		Subject:          subject,
		CoordinateSystem: string(b.system),
		HouseSystem:      string(b.houseSystem),
		Rasi:             chartSection(rasi, rasiDignity),
		Navamsa:          chartSection(navamsa, navDignity),
		Dasha:            dashaSection(sel, timeline),
		Yogas:            yogaRows(matches),
		Aspects:          aspectRows(aspects),
		SpecialLagnas:    lagnaRows(lagnas),
		Strength:         strengthRows(balas),
		Remedies:         remedySection(remedies),
	}
	if b.system == ephemeris.Sidereal {
		r.Ayanamsa = b.ayanamsa
	}
	b.record(telemetry.KindYogasDetected, id, subject.Name, map[string]any{
		"yogas": r.YogaNames(),
	})
	return r, nil
}

func (b *Builder) finish(r *Report) {
	b.metrics.ReportBuilt(r.YogaNames())
	b.record(telemetry.KindReportBuilt, r.ID, r.Subject.Name, map[string]any{
		"yogas":   len(r.Yogas),
		"aspects": len(r.Aspects),
	})
	b.logger.Info("report built",
		zap.String("report", r.ID),
		zap.String("subject", r.Subject.Name),
		zap.String("maha", r.Dasha.Maha.Lord),
		zap.Int("yogas", len(r.Yogas)))
}

func (b *Builder) record(kind, id, subject string, data any) {
	if err := b.emitter.Record(kind, id, subject, data); err != nil {
		b.logger.Warn("telemetry write failed", zap.String("kind", kind), zap.Error(err))
	}
}

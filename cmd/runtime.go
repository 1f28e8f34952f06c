package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/graha/internal/config"
	"github.com/papapumpkin/graha/internal/ephemeris"
	"github.com/papapumpkin/graha/internal/metrics"
	"github.com/papapumpkin/graha/internal/report"
	"github.com/papapumpkin/graha/internal/telemetry"
	"github.com/papapumpkin/graha/internal/ui"
)

// runtime holds the resources one command invocation shares: the data
// session, the optional oracle cache, telemetry and metrics.
type runtime struct {
	cfg     config.Config
	logger  *zap.Logger
	session *ephemeris.Session
	emitter *telemetry.Emitter
	metrics *metrics.Metrics

	mu     sync.Mutex
	caches []*ephemeris.Cache
	closed ephemeris.CacheStats // totals from caches already released

	cacheRegistered bool
}

func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	rt := &runtime{
		cfg:     cfg,
		logger:  logger,
		session: ephemeris.NewSession(),
		metrics: metrics.New(),
	}
	if err := rt.session.Init(cfg.DataDir); err != nil {
		return nil, err
	}
	if cfg.TelemetryPath != "" {
		em, err := telemetry.NewEmitter(cfg.TelemetryPath)
		if err != nil {
			return nil, err
		}
		rt.emitter = em
	}
	rt.logger.Debug("runtime ready",
		zap.String("data_dir", cfg.DataDir),
		zap.String("system", cfg.CoordinateSystem),
		zap.Bool("cache", cfg.CachePath != ""),
		zap.Bool("telemetry", cfg.TelemetryPath != ""))
	return rt, nil
}

// Close releases caches and the telemetry file.
func (rt *runtime) Close() {
	rt.releaseCaches()
	if err := rt.emitter.Close(); err != nil {
		rt.logger.Warn("closing telemetry", zap.Error(err))
	}
}

func (rt *runtime) system() ephemeris.CoordinateSystem {
	return ephemeris.CoordinateSystem(rt.cfg.CoordinateSystem)
}

// request loads the named observation file and returns a report request
// whose oracle serves it, fronted by the cache when one is configured.
func (rt *runtime) request(ctx context.Context, name string) (report.Request, error) {
	path, err := rt.session.Resolve(name)
	if err != nil {
		return report.Request{}, err
	}
	obs, err := ephemeris.LoadObservations(path)
	if err != nil {
		return report.Request{}, err
	}
	if obs.Birth.Name == "" {
		obs.Birth.Name = trimExt(filepath.Base(path))
	}

	table := ephemeris.NewTableOracleFrom(obs, rt.cfg.Ayanamsa).WithHouseFrame(rt.system())
	var oracle ephemeris.Oracle = table
	if rt.cfg.CachePath != "" {
		cache, err := rt.openCache(ctx, table.Fingerprint(), table)
		if err != nil {
			return report.Request{}, err
		}
		oracle = cache
	}
	return report.ObservationRequest(obs, oracle), nil
}

func (rt *runtime) openCache(ctx context.Context, source string, next ephemeris.Oracle) (*ephemeris.Cache, error) {
	if dir := filepath.Dir(rt.cfg.CachePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}
	cache, err := ephemeris.OpenCache(ctx, rt.cfg.CachePath, source, next)
	if err != nil {
		return nil, err
	}
	rt.mu.Lock()
	rt.caches = append(rt.caches, cache)
	first := !rt.cacheRegistered
	rt.cacheRegistered = true
	rt.mu.Unlock()
	if first {
		if err := rt.metrics.RegisterCache(rt.cacheStats); err != nil {
			rt.logger.Warn("registering cache metrics", zap.Error(err))
		}
	}
	return cache, nil
}

// releaseCaches closes every open cache, folding its counts into the
// running totals.
func (rt *runtime) releaseCaches() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	for _, c := range rt.caches {
		s := c.Stats()
		rt.closed.Hits += s.Hits
		rt.closed.Misses += s.Misses
		if err := c.Close(); err != nil {
			rt.logger.Warn("closing cache", zap.Error(err))
		}
	}
	rt.caches = nil
}

// cacheStats sums hit and miss counts over every cache opened so far.
func (rt *runtime) cacheStats() ephemeris.CacheStats {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	total := rt.closed
	for _, c := range rt.caches {
		s := c.Stats()
		total.Hits += s.Hits
		total.Misses += s.Misses
	}
	return total
}

func (rt *runtime) builder(opts ...report.Option) *report.Builder {
	base := []report.Option{
		report.WithCoordinateSystem(rt.system()),
		report.WithHouseSystem(rt.cfg.HouseSystemCode()),
		report.WithAyanamsa(rt.cfg.Ayanamsa),
		report.WithOrb(rt.cfg.ConjunctionOrb),
		report.WithLogger(rt.logger),
		report.WithTelemetry(rt.emitter),
		report.WithMetrics(rt.metrics),
	}
	return report.NewBuilder(append(base, opts...)...)
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

// render writes v in the configured format. Text output goes through the
// terminal printer; every other format is encoded by the report package.
func (rt *runtime) render(cmd *cobra.Command, v any, text func(*ui.Printer)) error {
	if rt.cfg.Format == "text" {
		text(ui.NewWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr()))
		return nil
	}
	return report.Encode(cmd.OutOrStdout(), rt.cfg.Format, v)
}

// Package metrics exposes Prometheus instrumentation for chart computation.
// Collectors live on a private registry so tests and multiple CLI runs never
// collide on the global default registerer.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/papapumpkin/graha/internal/ephemeris"
	"github.com/papapumpkin/graha/internal/zodiac"
)

const namespace = "graha"

// Metrics owns a registry and the collectors graha records into. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	oracleCalls   *prometheus.CounterVec
	oracleLatency *prometheus.HistogramVec
	charts        prometheus.Counter
	reports       prometheus.Counter
	yogas         *prometheus.CounterVec
	kutaScore     prometheus.Histogram
}

// New builds a registry with the graha collectors and the standard Go
// runtime collector.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		oracleCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "calls_total",
			Help:      "Oracle queries by operation and outcome.",
		}, []string{"op", "result"}),
		oracleLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "duration_seconds",
			Help:      "Oracle query latency.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"op"}),
		charts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "charts_assembled_total",
			Help:      "Charts successfully assembled.",
		}),
		reports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_built_total",
			Help:      "Reports built.",
		}),
		yogas: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "yogas_detected_total",
			Help:      "Yoga matches by name.",
		}, []string{"yoga"}),
		kutaScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kuta_score_points",
			Help:      "Compatibility totals out of 36.",
			Buckets:   prometheus.LinearBuckets(6, 6, 6),
		}),
	}
	m.registry.MustRegister(
		m.oracleCalls,
		m.oracleLatency,
		m.charts,
		m.reports,
		m.yogas,
		m.kutaScore,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// CacheStatsFunc reports cumulative cache hits and misses.
type CacheStatsFunc func() ephemeris.CacheStats

// RegisterCache exposes cache hit and miss totals read from stats at scrape
// time.
func (m *Metrics) RegisterCache(stats CacheStatsFunc) error {
	if m == nil || stats == nil {
		return nil
	}
	hits := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Oracle cache hits.",
	}, func() float64 { return float64(stats().Hits) })
	misses := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Oracle cache misses.",
	}, func() float64 { return float64(stats().Misses) })
	for _, c := range []prometheus.Collector{hits, misses} {
		if err := m.registry.Register(c); err != nil {
			return fmt.Errorf("metrics: register cache collector: %w", err)
		}
	}
	return nil
}

// ChartAssembled counts one assembled chart.
func (m *Metrics) ChartAssembled() {
	if m == nil {
		return
	}
	m.charts.Inc()
}

// ReportBuilt counts one report and the yogas it contains.
func (m *Metrics) ReportBuilt(yogas []string) {
	if m == nil {
		return
	}
	m.reports.Inc()
	for _, name := range yogas {
		m.yogas.WithLabelValues(name).Inc()
	}
}

// CompatibilityScored records a kuta total.
func (m *Metrics) CompatibilityScored(total float64) {
	if m == nil {
		return
	}
	m.kutaScore.Observe(total)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve runs an HTTP server exposing /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics: listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("metrics server listening", zap.String("addr", ln.Addr().String()))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics: shutdown: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics: serve: %w", err)
	}
}

// InstrumentOracle wraps next so every query is counted and timed. With a
// nil receiver next is returned unchanged.
func (m *Metrics) InstrumentOracle(next ephemeris.Oracle) ephemeris.Oracle {
	if m == nil {
		return next
	}
	return &instrumentedOracle{next: next, m: m}
}

type instrumentedOracle struct {
	next ephemeris.Oracle
	m    *Metrics
}

func (o *instrumentedOracle) Position(ctx context.Context, at time.Time, body zodiac.Body, system ephemeris.CoordinateSystem, flags ephemeris.Flags) (zodiac.Position, error) {
	start := time.Now()
	pos, err := o.next.Position(ctx, at, body, system, flags)
	o.observe("position", start, err)
	return pos, err
}

func (o *instrumentedOracle) Houses(ctx context.Context, at time.Time, lat, lon float64, houseSystem byte) (ephemeris.Houses, error) {
	start := time.Now()
	h, err := o.next.Houses(ctx, at, lat, lon, houseSystem)
	o.observe("houses", start, err)
	return h, err
}

func (o *instrumentedOracle) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	o.m.oracleCalls.WithLabelValues(op, result).Inc()
	o.m.oracleLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

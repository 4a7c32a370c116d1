package main

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ascii-earth/globe"
)

// promMetrics exports rasterizer and renderer events to Prometheus.
type promMetrics struct {
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	rasterizeMs *prometheus.HistogramVec
	frames      prometheus.Counter
	rowsDrawn   prometheus.Counter
}

var _ globe.Metrics = (*promMetrics)(nil)

func newPromMetrics(reg prometheus.Registerer) *promMetrics {
	m := &promMetrics{
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ascii_earth_cache_hits_total",
			Help: "Land grids served from the cache",
		}, []string{"grid"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ascii_earth_cache_misses_total",
			Help: "Land grid requests that had to rasterise",
		}, []string{"grid"}),
		rasterizeMs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ascii_earth_rasterize_duration_ms",
			Help:    "Land grid rasterisation duration in milliseconds",
			Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
		}, []string{"grid"}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ascii_earth_frames_total",
			Help: "Frames rendered",
		}),
		rowsDrawn: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ascii_earth_rows_redrawn_total",
			Help: "Rows that changed between consecutive frames",
		}),
	}
	reg.MustRegister(m.cacheHits, m.cacheMisses, m.rasterizeMs, m.frames, m.rowsDrawn)
	return m
}

func (m *promMetrics) CacheHit(key globe.GridKey) {
	m.cacheHits.WithLabelValues(key.String()).Inc()
}

func (m *promMetrics) CacheMiss(key globe.GridKey) {
	m.cacheMisses.WithLabelValues(key.String()).Inc()
}

func (m *promMetrics) Rasterized(key globe.GridKey, elapsed time.Duration) {
	m.rasterizeMs.WithLabelValues(key.String()).Observe(float64(elapsed) / float64(time.Millisecond))
}

func (m *promMetrics) FrameRendered(changedRows int) {
	m.frames.Inc()
	m.rowsDrawn.Add(float64(changedRows))
}

func metricsHandler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}

// serveMetrics serves /metrics on addr in the background. Shut the returned
// server down to stop it.
func serveMetrics(addr string, g prometheus.Gatherer, logger *slog.Logger) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metricsHandler(g),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("metrics_listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics_server_failed", "err", err)
		}
	}()
	return srv
}

package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"ascii-earth/globe"
	"ascii-earth/shapes"
)

func TestPromMetricsFromRenderer(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newPromMetrics(reg)

	rasterizer := globe.NewRasterizer(globe.NewShapes(shapes.Builtin()...))
	rasterizer.Metrics = m
	ramp, err := globe.NewRamp(globe.RampASCII)
	if err != nil {
		t.Fatal(err)
	}
	renderer := globe.NewRenderer(rasterizer, globe.NewShader(ramp))
	renderer.Metrics = m

	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	renderer.Render(36, 18, 0, now)
	renderer.Render(36, 18, 0, now)
	renderer.Render(40, 20, 0, now)

	if got := testutil.ToFloat64(m.cacheMisses.WithLabelValues("36x18")); got != 1 {
		t.Errorf("36x18 misses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.cacheHits.WithLabelValues("36x18")); got != 1 {
		t.Errorf("36x18 hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.cacheMisses.WithLabelValues("40x20")); got != 1 {
		t.Errorf("40x20 misses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.frames); got != 3 {
		t.Errorf("frames = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.rowsDrawn); got != 18+20 {
		t.Errorf("rows redrawn = %v, want %d", got, 18+20)
	}
	if n := testutil.CollectAndCount(m.rasterizeMs); n != 2 {
		t.Errorf("rasterize histograms = %d, want 2", n)
	}
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newPromMetrics(reg)
	m.FrameRendered(5)

	srv := httptest.NewServer(metricsHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{"ascii_earth_frames_total 1", "ascii_earth_rows_redrawn_total 5"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}

	resp, err = http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("/ status = %d, want 404", resp.StatusCode)
	}
}

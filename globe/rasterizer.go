package globe

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Rasterizer turns a land region into land grids and caches the result per
// output resolution.
//
// Cached grids are stored in the unrotated geographic frame. Rotation is
// applied on every call by re-projecting each land cell, so the land/ocean
// classification of a resolution is computed once and only its columns move
// as the globe spins.
//
// The cache has no eviction: entries live as long as the Rasterizer and the
// key space is bounded by the handful of terminal sizes seen in a session.
//
// A Rasterizer is safe for concurrent use. Each resolution is rasterised at
// most once.
type Rasterizer struct {
	// Metrics receives cache events. NewRasterizer sets it to NoopMetrics.
	Metrics Metrics

	// Logger receives debug events. NewRasterizer sets it to a discarding
	// logger.
	Logger *slog.Logger

	shapes *Shapes

	mu    sync.RWMutex
	cache map[GridKey]LandGrid

	// sf collapses concurrent misses on the same key into one rasterisation.
	sf singleflight.Group
}

// NewRasterizer returns a Rasterizer for the given land region. A nil or
// empty region yields all-ocean grids.
func NewRasterizer(shapes *Shapes) *Rasterizer {
	return &Rasterizer{
		Metrics: NoopMetrics{},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		shapes:  shapes,
		cache:   make(map[GridKey]LandGrid),
	}
}

// Rasterize returns the land grid for a width×height output shifted by
// rotation degrees of longitude. The returned grid belongs to the caller.
func (r *Rasterizer) Rasterize(width, height int, rotation float64) LandGrid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("globe: invalid grid size %dx%d", width, height))
	}
	return r.base(GridKey{Width: width, Height: height}).rotate(rotation)
}

// Cached reports how many resolutions have been rasterised.
func (r *Rasterizer) Cached() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

// base returns the shared unrotated grid for key, populating it on a miss.
// Callers must not modify the result.
func (r *Rasterizer) base(key GridKey) LandGrid {
	r.mu.RLock()
	grid, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		r.Metrics.CacheHit(key)
		return grid
	}

	r.Metrics.CacheMiss(key)
	v, _, _ := r.sf.Do(key.String(), func() (any, error) {
		// A flight that finished between our lookup and Do already stored it.
		r.mu.RLock()
		grid, ok := r.cache[key]
		r.mu.RUnlock()
		if ok {
			return grid, nil
		}

		start := time.Now()
		grid = r.sample(key)
		elapsed := time.Since(start)

		r.mu.Lock()
		r.cache[key] = grid
		r.mu.Unlock()

		r.Metrics.Rasterized(key, elapsed)
		r.Logger.Debug("land_grid_rasterized",
			"key", key.String(),
			"land_cells", grid.Count(),
			"shapes", r.shapes.Len(),
			"elapsed", elapsed)
		return grid, nil
	})
	return v.(LandGrid)
}

// sample classifies a geographic lattice twice as dense as the output grid in
// each axis and marks every cell that receives at least one land sample.
func (r *Rasterizer) sample(key GridKey) LandGrid {
	grid := NewLandGrid(key.Width, key.Height)
	if r.shapes.Len() == 0 {
		return grid
	}

	lats := Linspace(-90, 90, 2*key.Height)
	lons := Linspace(-180, 180, 2*key.Width)
	for _, lat := range lats {
		for _, lon := range lons {
			if !r.shapes.Contains(lon, lat) {
				continue
			}
			col, row := Project(lat, lon, 0, key.Width, key.Height)
			grid[row][col] = true
		}
	}
	return grid
}

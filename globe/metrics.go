package globe

import "time"

// Metrics receives events from the rasterizer and renderer. Implementations
// must be safe for concurrent use.
type Metrics interface {
	// CacheHit is called when a land grid is served from the cache.
	CacheHit(key GridKey)

	// CacheMiss is called when a land grid has to be rasterised.
	CacheMiss(key GridKey)

	// Rasterized is called once per populated cache entry.
	Rasterized(key GridKey, elapsed time.Duration)

	// FrameRendered is called after every render with the number of rows
	// that changed since the previous frame.
	FrameRendered(changedRows int)
}

// NoopMetrics ignores every event.
type NoopMetrics struct{}

func (NoopMetrics) CacheHit(GridKey)                 {}
func (NoopMetrics) CacheMiss(GridKey)                {}
func (NoopMetrics) Rasterized(GridKey, time.Duration) {}
func (NoopMetrics) FrameRendered(int)                {}

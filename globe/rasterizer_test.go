package globe_test

import (
	"sync"
	"testing"
	"time"

	"github.com/paulmach/orb"

	"ascii-earth/globe"
)

//
// ================= HELPERS =================
//

// square returns a closed lon/lat box.
func square(lon0, lat0, lon1, lat1 float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{lon0, lat0}, {lon1, lat0}, {lon1, lat1}, {lon0, lat1}, {lon0, lat0},
	}}
}

type countingMetrics struct {
	mu         sync.Mutex
	hits       int
	misses     int
	rasterized int
	frames     int
	rows       int
}

func (m *countingMetrics) CacheHit(globe.GridKey) {
	m.mu.Lock()
	m.hits++
	m.mu.Unlock()
}

func (m *countingMetrics) CacheMiss(globe.GridKey) {
	m.mu.Lock()
	m.misses++
	m.mu.Unlock()
}

func (m *countingMetrics) Rasterized(globe.GridKey, time.Duration) {
	m.mu.Lock()
	m.rasterized++
	m.mu.Unlock()
}

func (m *countingMetrics) FrameRendered(rows int) {
	m.mu.Lock()
	m.frames++
	m.rows += rows
	m.mu.Unlock()
}

func landCells(g globe.LandGrid) [][2]int {
	var cells [][2]int
	for row := range g {
		for col, land := range g[row] {
			if land {
				cells = append(cells, [2]int{row, col})
			}
		}
	}
	return cells
}

//
// ================= SHAPES =================
//

func TestShapesContains(t *testing.T) {
	hole := orb.Polygon{
		square(0, 0, 10, 10)[0],
		square(4, 4, 6, 6)[0],
	}
	s := globe.NewShapes(hole, square(20, 20, 30, 30))

	tests := []struct {
		name     string
		lon, lat float64
		want     bool
	}{
		{"inside outer", 2, 2, true},
		{"inside hole", 5, 5, false},
		{"second polygon", 25, 25, true},
		{"outside", 15, 15, false},
		{"on edge", 5, 0, true},
		{"on vertex", 10, 10, true},
		{"far away", -170, -80, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Contains(tt.lon, tt.lat); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.lon, tt.lat, got, tt.want)
			}
		})
	}
}

func TestShapesDropsEmptyPolygons(t *testing.T) {
	s := globe.NewShapes(orb.Polygon{}, orb.Polygon{orb.Ring{}}, square(0, 0, 1, 1))
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	var nilShapes *globe.Shapes
	if nilShapes.Contains(0, 0) || nilShapes.Len() != 0 {
		t.Error("nil Shapes should be empty")
	}
}

//
// ================= RASTERIZER =================
//

func TestRasterizeSquareScenario(t *testing.T) {
	r := globe.NewRasterizer(globe.NewShapes(square(0, 0, 10, 10)))
	g := r.Rasterize(36, 18, 0)

	if g.Width() != 36 || g.Height() != 18 {
		t.Fatalf("grid is %dx%d, want 36x18", g.Width(), g.Height())
	}
	cells := landCells(g)
	if len(cells) != 1 || cells[0] != [2]int{8, 18} {
		t.Errorf("land cells = %v, want [[8 18]]", cells)
	}
}

func TestRasterizeEmptyShapesIsOcean(t *testing.T) {
	for _, s := range []*globe.Shapes{nil, globe.NewShapes()} {
		g := globe.NewRasterizer(s).Rasterize(20, 10, 45)
		if n := g.Count(); n != 0 {
			t.Errorf("empty region produced %d land cells", n)
		}
	}
}

func TestRasterizeDeterministic(t *testing.T) {
	shapes := globe.NewShapes(square(-60, -30, 40, 50), square(100, -40, 150, -10))
	a := globe.NewRasterizer(shapes).Rasterize(40, 20, 0)
	b := globe.NewRasterizer(shapes).Rasterize(40, 20, 0)
	if !a.Equal(b) {
		t.Error("two rasterizers disagree on the same shapes")
	}
	if a.Count() == 0 {
		t.Error("expected some land")
	}
}

func TestRasterizeUsesCache(t *testing.T) {
	m := &countingMetrics{}
	r := globe.NewRasterizer(globe.NewShapes(square(-60, -30, 40, 50)))
	r.Metrics = m

	first := r.Rasterize(40, 20, 0)
	second := r.Rasterize(40, 20, 0)
	if !first.Equal(second) {
		t.Error("cache hit returned a different grid")
	}
	r.Rasterize(30, 15, 0)

	if m.misses != 2 || m.hits != 1 || m.rasterized != 2 {
		t.Errorf("hits=%d misses=%d rasterized=%d, want 1/2/2", m.hits, m.misses, m.rasterized)
	}
	if r.Cached() != 2 {
		t.Errorf("Cached() = %d, want 2", r.Cached())
	}
}

func TestRasterizeReturnsCopies(t *testing.T) {
	r := globe.NewRasterizer(globe.NewShapes(square(0, 0, 10, 10)))
	g := r.Rasterize(36, 18, 0)
	g[0][0] = true
	g[8][18] = false

	again := r.Rasterize(36, 18, 0)
	if again[0][0] || !again[8][18] {
		t.Error("mutating a returned grid changed the cached grid")
	}
}

func TestRasterizeRotationShiftsColumns(t *testing.T) {
	r := globe.NewRasterizer(globe.NewShapes(square(-60, -30, 40, 50), square(100, -40, 150, -10)))
	base := r.Rasterize(36, 18, 0)

	// 36 columns over 360°: every 10° moves the land one column east.
	for _, k := range []int{1, 5, 18, -3} {
		rotated := r.Rasterize(36, 18, float64(k*10))
		if rotated.Count() != base.Count() {
			t.Fatalf("rotation %d° changed the land count", k*10)
		}
		for row := range base {
			for col := range base[row] {
				shifted := ((col+k)%36 + 36) % 36
				if base[row][col] != rotated[row][shifted] {
					t.Fatalf("rotation %d°: cell (%d, %d) did not move to column %d", k*10, row, col, shifted)
				}
			}
		}
	}

	if !r.Rasterize(36, 18, 360).Equal(base) {
		t.Error("a full turn should reproduce the unrotated grid")
	}
	if r.Cached() != 1 {
		t.Errorf("rotation populated %d cache entries, want 1", r.Cached())
	}
}

func TestRasterizeConcurrentPopulatesOnce(t *testing.T) {
	m := &countingMetrics{}
	r := globe.NewRasterizer(globe.NewShapes(square(-60, -30, 40, 50)))
	r.Metrics = m

	var wg sync.WaitGroup
	grids := make([]globe.LandGrid, 16)
	for i := range grids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			grids[i] = r.Rasterize(80, 40, 0)
		}(i)
	}
	wg.Wait()

	if m.rasterized != 1 {
		t.Errorf("rasterized %d times, want 1", m.rasterized)
	}
	for i := 1; i < len(grids); i++ {
		if !grids[i].Equal(grids[0]) {
			t.Fatalf("grid %d differs from grid 0", i)
		}
	}
}

func TestRasterizePanicsOnInvalidSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for negative height")
		}
	}()
	globe.NewRasterizer(nil).Rasterize(20, -1, 0)
}

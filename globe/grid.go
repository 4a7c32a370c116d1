package globe

import "fmt"

// GridKey identifies a cached rasterisation by output resolution.
type GridKey struct {
	Width  int
	Height int
}

func (k GridKey) String() string {
	return fmt.Sprintf("%dx%d", k.Width, k.Height)
}

// LandGrid holds one flag per output cell, indexed [row][col]; true is land.
type LandGrid [][]bool

// NewLandGrid returns an all-ocean grid of the given size.
func NewLandGrid(width, height int) LandGrid {
	cells := make([]bool, width*height)
	g := make(LandGrid, height)
	for y := range g {
		g[y] = cells[y*width : (y+1)*width : (y+1)*width]
	}
	return g
}

func (g LandGrid) Height() int { return len(g) }

func (g LandGrid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Clone returns a deep copy that shares no storage with g.
func (g LandGrid) Clone() LandGrid {
	c := NewLandGrid(g.Width(), g.Height())
	for y := range g {
		copy(c[y], g[y])
	}
	return c
}

// Equal reports whether both grids have the same size and classification.
func (g LandGrid) Equal(o LandGrid) bool {
	if len(g) != len(o) {
		return false
	}
	for y := range g {
		if len(g[y]) != len(o[y]) {
			return false
		}
		for x := range g[y] {
			if g[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// Count returns the number of land cells.
func (g LandGrid) Count() int {
	n := 0
	for _, row := range g {
		for _, land := range row {
			if land {
				n++
			}
		}
	}
	return n
}

// rotate re-derives every land cell from its unrotated cell-centre position
// through Project with the given rotation. Rows never move; columns shift.
func (g LandGrid) rotate(rotation float64) LandGrid {
	w, h := g.Width(), g.Height()
	out := NewLandGrid(w, h)
	for row := range g {
		for col, land := range g[row] {
			if !land {
				continue
			}
			lat, lon := cellCenter(col, row, w, h)
			x, y := Project(lat, lon, rotation, w, h)
			out[y][x] = true
		}
	}
	return out
}

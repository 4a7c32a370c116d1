// Package shapes supplies land outlines as closed lon/lat polygons, either
// from the built-in earth bitmap or from GeoJSON files.
package shapes

import (
	"github.com/paulmach/orb"
)

// Builtin returns the land outlines of the built-in 120×60 earth bitmap.
func Builtin() []orb.Polygon {
	return FromBitmap(earthBitmap, '#')
}

// Load returns the polygons of the GeoJSON file at path, or the built-in
// outlines when path is empty.
func Load(path string) ([]orb.Polygon, error) {
	if path == "" {
		return Builtin(), nil
	}
	return LoadGeoJSON(path)
}

// FromBitmap converts an equirectangular text mask into polygons. Every row
// must have the same width; cells equal to land are land.
func FromBitmap(rows []string, land byte) []orb.Polygon {
	if len(rows) == 0 {
		return nil
	}
	return FromMask(len(rows[0]), len(rows), func(x, y int) bool {
		return x < len(rows[y]) && rows[y][x] == land
	})
}

// cellRect is the cell range [x0, x1) × [y0, y1) of a mask.
type cellRect struct {
	x0, x1 int
	y0, y1 int
}

// FromMask converts a width×height equirectangular mask into axis-aligned
// lon/lat rectangles. Column 0 starts at longitude -180 and row 0 at latitude
// 90. Horizontal runs of land become rectangles, and identical runs on
// consecutive rows are merged into one.
func FromMask(width, height int, isLand func(x, y int) bool) []orb.Polygon {
	if width <= 0 || height <= 0 {
		return nil
	}

	var rects []*cellRect
	open := map[[2]int]*cellRect{}
	for y := 0; y < height; y++ {
		next := map[[2]int]*cellRect{}
		for x := 0; x < width; {
			if !isLand(x, y) {
				x++
				continue
			}
			x0 := x
			for x < width && isLand(x, y) {
				x++
			}
			key := [2]int{x0, x}
			if r, ok := open[key]; ok {
				r.y1 = y + 1
				next[key] = r
				continue
			}
			r := &cellRect{x0: x0, x1: x, y0: y, y1: y + 1}
			rects = append(rects, r)
			next[key] = r
		}
		open = next
	}

	polys := make([]orb.Polygon, 0, len(rects))
	for _, r := range rects {
		west := -180 + float64(r.x0)*360/float64(width)
		east := -180 + float64(r.x1)*360/float64(width)
		north := 90 - float64(r.y0)*180/float64(height)
		south := 90 - float64(r.y1)*180/float64(height)
		polys = append(polys, orb.Polygon{orb.Ring{
			{west, south}, {east, south}, {east, north}, {west, north}, {west, south},
		}})
	}
	return polys
}

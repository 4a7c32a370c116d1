// Package globe turns land outlines into a rotating, day/night shaded grid of
// glyphs under a simple equirectangular projection.
package globe

import (
	"fmt"
	"math"
)

// WrapLongitude normalises lon into the half-open range (-180, 180],
// whatever the sign or magnitude of the input.
func WrapLongitude(lon float64) float64 {
	l := math.Mod(lon+180, 360)
	if l < 0 {
		l += 360
	}
	l -= 180
	if l <= -180 {
		l += 360
	}
	return l
}

// Project maps a geographic position to a grid cell. The longitude is shifted
// by rotation degrees before projecting, and the column wraps around the
// ±180° seam. Rows are clamped so that lat = -90 still lands on the last row.
//
// lat must lie in [-90, 90]; width and height must be positive.
func Project(lat, lon, rotation float64, width, height int) (col, row int) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("globe: invalid grid size %dx%d", width, height))
	}

	shifted := WrapLongitude(lon + rotation)

	col = int(math.Floor((shifted+180)/360*float64(width))) % width
	if col < 0 {
		col += width
	}

	row = int(math.Floor((90 - lat) / 180 * float64(height)))
	if row < 0 {
		row = 0
	}
	if row > height-1 {
		row = height - 1
	}
	return col, row
}

// cellCenter returns the unrotated geographic position at the centre of a
// grid cell. Project(cellCenter(col, row)) with rotation 0 gives (col, row).
func cellCenter(col, row, width, height int) (lat, lon float64) {
	lon = (float64(col)+0.5)/float64(width)*360 - 180
	lat = 90 - (float64(row)+0.5)/float64(height)*180
	return lat, lon
}

// Linspace returns n evenly spaced values over the closed interval [start, end].
func Linspace(start, end float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}
	out := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = end
	return out
}

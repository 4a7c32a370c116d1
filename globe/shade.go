package globe

import (
	"math"
	"time"
)

// Blank is the glyph drawn on ocean cells.
const Blank = ' '

// Shader overlays a day/night brightness ramp onto land cells.
type Shader struct {
	Ramp  Ramp
	Blank rune
}

// NewShader returns a Shader drawing oceans with Blank.
func NewShader(ramp Ramp) Shader {
	return Shader{Ramp: ramp, Blank: Blank}
}

// Shade renders land into a frame of glyphs. Brightness depends only on the
// column: the terminator is drawn as vertical bands. Ocean cells are always
// blank.
func (s Shader) Shade(land LandGrid, rotation float64, now time.Time) Frame {
	w, h := land.Width(), land.Height()
	sun := SubSolarLongitude(now)

	glyphs := make([]rune, w)
	for x := range glyphs {
		glyphs[x] = s.Ramp.Glyph(Brightness(ColumnLongitude(x, w, rotation), sun))
	}

	frame := NewFrame(w, h, s.Blank)
	for y := range land {
		for x, isLand := range land[y] {
			if isLand {
				frame[y][x] = glyphs[x]
			}
		}
	}
	return frame
}

// SubSolarLongitude returns the longitude facing the sun, in [0, 360). The
// Earth turns 15° per hour; only the UTC hour is used.
func SubSolarLongitude(now time.Time) float64 {
	return math.Mod(float64(now.UTC().Hour())*15, 360)
}

// ColumnLongitude returns the geographic longitude, in [0, 360), shown at the
// left edge of column x when the globe is rotated by rotation degrees. It is
// the inverse of the shift Project applies.
func ColumnLongitude(x, width int, rotation float64) float64 {
	lon := float64(x)/float64(width)*360 - 180 - rotation
	return normalize360(lon)
}

// Brightness returns 1 at the sun's longitude falling linearly to 0 at its
// antipode, using the shortest angular distance between the two.
func Brightness(lon, sun float64) float64 {
	d := normalize360(math.Abs(lon - sun))
	if d > 180 {
		d = 360 - d
	}
	return 1 - d/180
}

func normalize360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d -= 360
	}
	return d
}

package globe

// Frame is a rendered grid of glyphs, indexed [row][col].
type Frame [][]rune

// NewFrame returns a width×height frame filled with fill.
func NewFrame(width, height int, fill rune) Frame {
	f := make(Frame, height)
	for y := range f {
		row := make([]rune, width)
		for x := range row {
			row[x] = fill
		}
		f[y] = row
	}
	return f
}

// Row returns row y as a string.
func (f Frame) Row(y int) string {
	return string(f[y])
}

// Lines returns every row as a string.
func (f Frame) Lines() []string {
	lines := make([]string, len(f))
	for y := range f {
		lines[y] = string(f[y])
	}
	return lines
}

// Marker is a point of interest drawn on top of the shaded globe.
type Marker struct {
	Lat   float64
	Lon   float64
	Glyph rune
}

// Mark draws m at the cell its position projects to under rotation.
func (f Frame) Mark(m Marker, rotation float64) {
	if len(f) == 0 || len(f[0]) == 0 {
		return
	}
	col, row := Project(m.Lat, m.Lon, rotation, len(f[0]), len(f))
	f[row][col] = m.Glyph
}

// Diff returns, in ascending order, the indices of the rows of cur that must
// be redrawn over prev. A nil prev means nothing is on screen yet, so every
// row is returned.
func Diff(prev, cur Frame) []int {
	rows := make([]int, 0, len(cur))
	for y := range cur {
		if prev == nil || y >= len(prev) || !sameRow(prev[y], cur[y]) {
			rows = append(rows, y)
		}
	}
	return rows
}

func sameRow(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

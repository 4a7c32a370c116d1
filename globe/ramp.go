package globe

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyRamp is returned by NewRamp when no glyphs are given.
var ErrEmptyRamp = errors.New("globe: glyph ramp is empty")

// Built-in ramps, darkest glyph first.
const (
	RampASCII   = ".:-=+*#%@"
	RampBlocks  = "▁▂▃▄░▒▓█"
	RampBraille = "⠁⠂⠄⡀⣀⣤⣦⣶⣾⣿"
)

// Charsets maps charset names to their ramps.
var Charsets = map[string]string{
	"ascii":   RampASCII,
	"blocks":  RampBlocks,
	"braille": RampBraille,
}

// Ramp is an ordered palette of distinct glyphs from darkest to brightest.
type Ramp []rune

// NewRamp builds a ramp from glyphs, darkest first. The glyphs must be
// non-empty and distinct.
func NewRamp(glyphs string) (Ramp, error) {
	r := Ramp(glyphs)
	if len(r) == 0 {
		return nil, ErrEmptyRamp
	}
	seen := make(map[rune]bool, len(r))
	for _, g := range r {
		if seen[g] {
			return nil, fmt.Errorf("globe: duplicate glyph %q in ramp %q", g, glyphs)
		}
		seen[g] = true
	}
	return r, nil
}

// Index quantises a brightness in [0, 1] linearly onto the ramp. Values
// outside the range are clamped.
func (r Ramp) Index(brightness float64) int {
	last := len(r) - 1
	i := int(math.Floor(brightness * float64(last)))
	if i > last {
		i = last
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Glyph returns the glyph for a brightness in [0, 1].
func (r Ramp) Glyph(brightness float64) rune {
	return r[r.Index(brightness)]
}

// Level returns the position of g on the ramp scaled to [0, 1], or -1 when g
// is not part of the ramp.
func (r Ramp) Level(g rune) float64 {
	for i, c := range r {
		if c != g {
			continue
		}
		if len(r) == 1 {
			return 1
		}
		return float64(i) / float64(len(r)-1)
	}
	return -1
}

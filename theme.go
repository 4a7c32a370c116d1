package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"ascii-earth/globe"
)

type Theme struct {
	Name       string
	Background tcell.Color
	Text       tcell.Color
	DayLand    tcell.Color
	NightLand  tcell.Color
	Marker     tcell.Color
	Status     tcell.Color
}

// themeNames is the order the t key cycles through.
var themeNames = []string{"default", "matrix", "amber", "solarized", "nord", "dracula", "mono"}

var themes = map[string]*Theme{
	"default": {
		Name:       "default",
		Background: tcell.ColorBlack,
		Text:       tcell.ColorWhite,
		DayLand:    tcell.ColorGreen,
		NightLand:  tcell.NewRGBColor(0, 60, 0),
		Marker:     tcell.ColorRed,
		Status:     tcell.ColorYellow,
	},
	"matrix": {
		Name:       "matrix",
		Background: tcell.ColorBlack,
		Text:       tcell.NewRGBColor(0, 255, 65),
		DayLand:    tcell.NewRGBColor(0, 255, 65),
		NightLand:  tcell.NewRGBColor(0, 90, 25),
		Marker:     tcell.NewRGBColor(200, 255, 200),
		Status:     tcell.NewRGBColor(0, 200, 50),
	},
	"amber": {
		Name:       "amber",
		Background: tcell.ColorBlack,
		Text:       tcell.NewRGBColor(255, 176, 0),
		DayLand:    tcell.NewRGBColor(255, 176, 0),
		NightLand:  tcell.NewRGBColor(110, 70, 0),
		Marker:     tcell.NewRGBColor(255, 230, 150),
		Status:     tcell.NewRGBColor(255, 160, 0),
	},
	"solarized": {
		Name:       "solarized",
		Background: tcell.NewRGBColor(0, 43, 54),
		Text:       tcell.NewRGBColor(131, 148, 150),
		DayLand:    tcell.NewRGBColor(181, 137, 0),
		NightLand:  tcell.NewRGBColor(38, 139, 210),
		Marker:     tcell.NewRGBColor(220, 50, 47),
		Status:     tcell.NewRGBColor(42, 161, 152),
	},
	"nord": {
		Name:       "nord",
		Background: tcell.NewRGBColor(46, 52, 64),
		Text:       tcell.NewRGBColor(216, 222, 233),
		DayLand:    tcell.NewRGBColor(235, 203, 139),
		NightLand:  tcell.NewRGBColor(94, 129, 172),
		Marker:     tcell.NewRGBColor(191, 97, 106),
		Status:     tcell.NewRGBColor(136, 192, 208),
	},
	"dracula": {
		Name:       "dracula",
		Background: tcell.NewRGBColor(40, 42, 54),
		Text:       tcell.NewRGBColor(248, 248, 242),
		DayLand:    tcell.NewRGBColor(80, 250, 123),
		NightLand:  tcell.NewRGBColor(98, 114, 164),
		Marker:     tcell.NewRGBColor(255, 85, 85),
		Status:     tcell.NewRGBColor(241, 250, 140),
	},
	"mono": {
		Name:       "mono",
		Background: tcell.ColorBlack,
		Text:       tcell.ColorWhite,
		DayLand:    tcell.ColorWhite,
		NightLand:  tcell.ColorWhite,
		Marker:     tcell.ColorWhite,
		Status:     tcell.ColorWhite,
	},
}

// themeIndex returns the position of name in themeNames, or 0.
func themeIndex(name string) int {
	for i, n := range themeNames {
		if n == name {
			return i
		}
	}
	return 0
}

func (t *Theme) base() tcell.Style {
	return tcell.StyleDefault.Background(t.Background).Foreground(t.Text)
}

// LandColor blends from the night colour at level 0 to the day colour at
// level 1 in CIE L*a*b* space.
func (t *Theme) LandColor(level float64) tcell.Color {
	if t.NightLand == t.DayLand {
		return t.DayLand
	}
	night, day := toColorful(t.NightLand), toColorful(t.DayLand)
	r, g, b := night.BlendLab(day, level).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// glyphStyles precomputes the style of every glyph of ramp.
func (t *Theme) glyphStyles(ramp globe.Ramp) map[rune]tcell.Style {
	styles := make(map[rune]tcell.Style, len(ramp))
	for _, g := range ramp {
		styles[g] = t.base().Foreground(t.LandColor(ramp.Level(g)))
	}
	return styles
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

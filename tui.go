package main

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"ascii-earth/globe"
)

const (
	minGridWidth  = 20
	maxGridWidth  = 80
	minGridHeight = 10
	maxGridHeight = 40

	// globeX is the screen column of the globe's first column.
	globeX = 1

	minSpeed = 0.1
	maxSpeed = 5.0
)

// Status is the state shown on the line below the globe.
type Status struct {
	Rotation float64
	Now      time.Time
}

// TUI draws frames on a tcell screen and handles keys.
type TUI struct {
	screen tcell.Screen
	ramp   globe.Ramp

	mu       sync.RWMutex
	theme    *Theme
	themeIdx int
	styles   map[rune]tcell.Style
	paused   bool
	speed    float64
	redraw   bool
}

// NewTUI wraps an initialised screen.
func NewTUI(screen tcell.Screen, theme *Theme, ramp globe.Ramp) *TUI {
	tui := &TUI{
		screen:   screen,
		ramp:     ramp,
		speed:    1,
		redraw:   true,
		themeIdx: themeIndex(theme.Name),
	}
	tui.setTheme(theme)
	return tui
}

// newScreen opens the terminal.
func newScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

func (tui *TUI) Close() {
	if tui.screen != nil {
		tui.screen.Fini()
	}
}

// GridSize returns the globe size for the current terminal: two columns and
// two rows smaller than the screen, clamped to 20..80 × 10..40.
func (tui *TUI) GridSize() (width, height int) {
	cols, rows := tui.screen.Size()
	return clamp(cols-2, minGridWidth, maxGridWidth), clamp(rows-2, minGridHeight, maxGridHeight)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// TakeRedraw reports whether the whole screen must be redrawn, and clears
// the request.
func (tui *TUI) TakeRedraw() bool {
	tui.mu.Lock()
	defer tui.mu.Unlock()
	r := tui.redraw
	tui.redraw = false
	return r
}

// Motion returns the pause state and the speed multiplier.
func (tui *TUI) Motion() (paused bool, speed float64) {
	tui.mu.RLock()
	defer tui.mu.RUnlock()
	return tui.paused, tui.speed
}

// Clear blanks the screen in the theme background.
func (tui *TUI) Clear() {
	tui.mu.RLock()
	style := tui.theme.base()
	tui.mu.RUnlock()
	tui.screen.SetStyle(style)
	tui.screen.Clear()
}

// Draw writes the given rows of frame and the status line, then shows the
// screen.
func (tui *TUI) Draw(frame globe.Frame, rows []int, st Status) {
	tui.mu.RLock()
	defer tui.mu.RUnlock()

	base := tui.theme.base()
	marker := base.Foreground(tui.theme.Marker)
	for _, y := range rows {
		for x, g := range frame[y] {
			style, ok := tui.styles[g]
			switch {
			case g == globe.Blank:
				style = base
			case !ok:
				style = marker
			}
			tui.screen.SetContent(globeX+x, y, g, nil, style)
		}
	}
	tui.drawStatus(len(frame), st)
	tui.screen.Show()
}

func (tui *TUI) drawStatus(y int, st Status) {
	state := "running"
	if tui.paused {
		state = "paused"
	}
	text := fmt.Sprintf(" rot %6.1f°  sun %5.1f°  %s UTC  %s x%.1f  %s  [space] pause  [ ] speed  [t] theme  [q] quit",
		st.Rotation, globe.SubSolarLongitude(st.Now), st.Now.UTC().Format("15:04:05"),
		state, tui.speed, tui.theme.Name)

	cols, _ := tui.screen.Size()
	style := tui.theme.base().Foreground(tui.theme.Status)
	x := 0
	for _, r := range text {
		if x >= cols {
			return
		}
		tui.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		tui.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (tui *TUI) setTheme(theme *Theme) {
	tui.theme = theme
	tui.styles = theme.glyphStyles(tui.ramp)
	tui.redraw = true
}

// handleKey applies a key press and reports whether it asks to quit.
func (tui *TUI) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	tui.mu.Lock()
	defer tui.mu.Unlock()
	switch ev.Rune() {
	case 'q', 'Q', 'x', 'X':
		return true
	case ' ':
		tui.paused = !tui.paused
	case '[':
		tui.speed = math.Max(minSpeed, math.Round((tui.speed-0.1)*10)/10)
	case ']':
		tui.speed = math.Min(maxSpeed, math.Round((tui.speed+0.1)*10)/10)
	case 't', 'T':
		tui.themeIdx = (tui.themeIdx + 1) % len(themeNames)
		tui.setTheme(themes[themeNames[tui.themeIdx]])
	}
	return false
}

// PollEvents handles terminal events on a new goroutine. The returned channel
// is closed when the user asks to quit.
func (tui *TUI) PollEvents() <-chan struct{} {
	quit := make(chan struct{})
	go func() {
		for {
			switch ev := tui.screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if tui.handleKey(ev) {
					close(quit)
					return
				}
			case *tcell.EventResize:
				tui.mu.Lock()
				tui.redraw = true
				tui.mu.Unlock()
			}
		}
	}()
	return quit
}

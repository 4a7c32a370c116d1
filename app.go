package main

import (
	"log/slog"
	"time"

	"ascii-earth/globe"
)

// App paces the render loop: every frame interval it renders the globe at
// the terminal's grid size, draws the changed rows and advances the rotation.
type App struct {
	Renderer *globe.Renderer
	TUI      *TUI
	Recorder *Recorder // optional
	Logger   *slog.Logger

	// Speed is the rotation step in degrees of longitude per frame.
	Speed    float64
	Interval time.Duration
	Now      func() time.Time

	rotation float64
}

// Run renders frames until quit is closed.
func (a *App) Run(quit <-chan struct{}) {
	ticker := time.NewTicker(a.Interval)
	defer ticker.Stop()

	for {
		a.step()
		select {
		case <-quit:
			a.Logger.Info("shutting_down", "rotation", a.rotation)
			return
		case <-ticker.C:
		}
	}
}

func (a *App) step() {
	if a.TUI.TakeRedraw() {
		a.TUI.Clear()
		a.Renderer.Reset()
	}

	width, height := a.TUI.GridSize()
	now := a.Now()
	frame, rows := a.Renderer.Render(width, height, a.rotation, now)
	a.TUI.Draw(frame, rows, Status{Rotation: a.rotation, Now: now})

	if a.Recorder != nil {
		if err := a.Recorder.Frame(frame, rows); err != nil {
			a.Logger.Warn("recording_stopped", "err", err)
			a.Recorder = nil
		}
	}

	if paused, speed := a.TUI.Motion(); !paused {
		a.rotation = globe.WrapLongitude(a.rotation + a.Speed*speed)
	}
}

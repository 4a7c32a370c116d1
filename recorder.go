package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"ascii-earth/globe"
)

// Recorder writes frames as an asciinema v2 cast: a JSON header line, then
// one [seconds, "o", data] event line per frame.
type Recorder struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	start  time.Time
	now    func() time.Time
}

// NewRecorder writes the cast header for a width×height terminal to w.
func NewRecorder(w io.Writer, width, height int, now func() time.Time) (*Recorder, error) {
	if now == nil {
		now = time.Now
	}
	start := now()
	header := map[string]interface{}{
		"version":   2,
		"width":     width,
		"height":    height,
		"timestamp": start.Unix(),
		"env": map[string]string{
			"TERM":  "xterm-256color",
			"SHELL": "/bin/sh",
		},
	}
	if err := writeJSONLine(w, header); err != nil {
		return nil, fmt.Errorf("write cast header: %w", err)
	}
	return &Recorder{w: w, start: start, now: now}, nil
}

// CreateRecorder creates the cast file at path.
func CreateRecorder(path string, width, height int) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}
	r, err := NewRecorder(f, width, height, nil)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Frame records the given rows of frame. Rows are positioned with cursor
// moves so the cast replays the same partial redraws as the screen.
func (r *Recorder) Frame(frame globe.Frame, rows []int) error {
	if len(rows) == 0 {
		return nil
	}
	var sb strings.Builder
	for _, y := range rows {
		fmt.Fprintf(&sb, "\x1b[%d;%dH", y+1, globeX+1)
		sb.WriteString(string(frame[y]))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	event := []interface{}{r.now().Sub(r.start).Seconds(), "o", sb.String()}
	if err := writeJSONLine(r.w, event); err != nil {
		return fmt.Errorf("write cast event: %w", err)
	}
	return nil
}

func (r *Recorder) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func writeJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

package globe

import "time"

// Renderer runs one render step: rasterise (cached), shade, draw markers and
// diff against the previous frame. It keeps exactly one frame of history.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	Rasterizer *Rasterizer
	Shader     Shader

	// Markers are drawn over the shaded frame, land or ocean alike.
	Markers []Marker

	// Metrics receives one FrameRendered event per Render call.
	Metrics Metrics

	prev Frame
}

// NewRenderer wires a rasterizer and shader together.
func NewRenderer(r *Rasterizer, s Shader) *Renderer {
	return &Renderer{
		Rasterizer: r,
		Shader:     s,
		Metrics:    NoopMetrics{},
	}
}

// Render produces the globe at the given resolution, rotation and time, and
// the rows that differ from the previous Render call.
func (r *Renderer) Render(width, height int, rotation float64, now time.Time) (Frame, []int) {
	land := r.Rasterizer.Rasterize(width, height, rotation)
	frame := r.Shader.Shade(land, rotation, now)
	for _, m := range r.Markers {
		frame.Mark(m, rotation)
	}

	prev := r.prev
	if prev != nil && (len(prev) != height || len(prev[0]) != width) {
		prev = nil
	}
	rows := Diff(prev, frame)
	r.prev = frame
	r.Metrics.FrameRendered(len(rows))
	return frame, rows
}

// Reset forgets the previous frame so the next Render redraws every row.
func (r *Renderer) Reset() {
	r.prev = nil
}

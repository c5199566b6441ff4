// Package hud draws frame statistics in the top-left corner.
package hud

import (
	"fmt"
	"time"

	"toon-outline/internal/profiling"
	"toon-outline/internal/ui/widget"

	"github.com/go-gl/mathgl/mgl32"
)

const historyLen = 60

var (
	background = mgl32.Vec3{0, 0, 0}
	textColor  = mgl32.Vec3{1, 1, 1}
)

// HUD keeps a rolling frame-time history and draws it when visible.
type HUD struct {
	Visible bool

	fps     *profiling.FPSCounter
	lastFPS float64

	history       []time.Duration
	min, max, avg time.Duration
	top           string
}

func New() *HUD {
	return &HUD{fps: profiling.NewFPSCounter()}
}

// Toggle flips visibility and returns the new state.
func (h *HUD) Toggle() bool {
	h.Visible = !h.Visible
	return h.Visible
}

// Update records one frame of dt seconds and snapshots the profiling buckets.
func (h *HUD) Update(dt float64) {
	if fps, ok := h.fps.Tick(dt); ok {
		h.lastFPS = fps
	}
	d := time.Duration(dt * float64(time.Second))
	if len(h.history) >= historyLen {
		h.history = h.history[1:]
	}
	h.history = append(h.history, d)

	var total time.Duration
	h.min, h.max = d, d
	for _, v := range h.history {
		total += v
		h.min = min(h.min, v)
		h.max = max(h.max, v)
	}
	h.avg = total / time.Duration(len(h.history))
	h.top = profiling.TopN(3)
}

// Lines returns the text rows drawn by Draw.
func (h *HUD) Lines() []string {
	lines := []string{
		fmt.Sprintf("FPS: %.0f", h.lastFPS),
		fmt.Sprintf("Frame: avg %s min %s max %s", ms(h.avg), ms(h.min), ms(h.max)),
	}
	if h.top != "" {
		lines = append(lines, h.top)
	}
	return lines
}

func (h *HUD) Draw(c widget.Canvas) {
	if !h.Visible {
		return
	}
	const scale, pad, lineH = 0.4, 8, 18
	lines := h.Lines()
	var w float32
	for _, l := range lines {
		tw, _ := c.MeasureText(l, scale)
		w = max(w, tw)
	}
	c.DrawFilledRect(0, 0, w+2*pad, float32(len(lines))*lineH+2*pad, background, 0.5)
	for i, l := range lines {
		c.DrawText(l, pad, pad+float32(i+1)*lineH-4, scale, textColor)
	}
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

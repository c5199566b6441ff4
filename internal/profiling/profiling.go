// Package profiling accumulates named CPU durations per frame and reports the
// frame rate.
package profiling

import (
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
)

// Track returns a stop function that adds the elapsed time to name.
// Usage: defer profiling.Track("outline.Render")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears the per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of the current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// TopN formats the n largest totals, e.g. "outline.Render:4.2ms, ui.Render:0.3ms".
// Ties are ordered by name.
func TopN(n int) string {
	type pair struct {
		name string
		dur  time.Duration
	}
	ss := Snapshot()
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{k, v})
	}
	slices.SortFunc(list, func(a, b pair) int {
		if a.dur != b.dur {
			if a.dur > b.dur {
				return -1
			}
			return 1
		}
		return strings.Compare(a.name, b.name)
	})
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		parts = append(parts, p.name+":"+formatMs(p.dur))
	}
	return strings.Join(parts, ", ")
}

// formatMs renders d in milliseconds with one decimal, dropping ".0".
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	s := strconv.FormatFloat(ms, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0") + "ms"
}

// FPSCounter averages the frame rate over a reporting interval.
type FPSCounter struct {
	Interval float64 // seconds

	frames  int
	elapsed float64
}

func NewFPSCounter() *FPSCounter {
	return &FPSCounter{Interval: 1}
}

// Tick records one frame of dt seconds. When an interval has elapsed it
// returns the average rate and true, and starts the next interval.
func (c *FPSCounter) Tick(dt float64) (float64, bool) {
	c.frames++
	c.elapsed += dt
	if c.elapsed < c.Interval || c.elapsed <= 0 {
		return 0, false
	}
	fps := float64(c.frames) / c.elapsed
	c.frames, c.elapsed = 0, 0
	return fps, true
}

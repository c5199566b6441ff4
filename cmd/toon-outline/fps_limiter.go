package main

import "time"

const spinWindow = 200 * time.Microsecond

// FPSLimiter paces frames to a fixed rate.
type FPSLimiter struct {
	next time.Time
	now  func() time.Time
}

func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{now: time.Now}
}

// Wait blocks until the next frame is due at limit frames per second.
// A limit of zero or less disables pacing. Most of the wait is a sleep; the
// last few microseconds spin for precision on high caps.
func (f *FPSLimiter) Wait(limit int) {
	if limit <= 0 {
		f.next = time.Time{}
		return
	}
	target := time.Second / time.Duration(limit)
	f.schedule(target)

	for {
		remaining := f.next.Sub(f.now())
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
		if !f.now().Before(f.next) {
			break
		}
	}

	// Resync after a hitch instead of racing to catch up.
	if late := f.now().Sub(f.next); late > target {
		f.next = f.now().Add(target)
	}
}

func (f *FPSLimiter) schedule(target time.Duration) {
	if f.next.IsZero() {
		f.next = f.now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}
}

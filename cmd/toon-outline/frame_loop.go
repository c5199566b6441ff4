package main

import (
	"time"

	"toon-outline/internal/config"
	"toon-outline/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// frameLoop drives the controller once per displayed frame.
type frameLoop struct {
	window  *glfw.Window
	demo    *demo
	limiter *FPSLimiter

	lastTime time.Time
}

func newFrameLoop(window *glfw.Window, d *demo) *frameLoop {
	return &frameLoop{
		window:   window,
		demo:     d,
		limiter:  NewFPSLimiter(),
		lastTime: time.Now(),
	}
}

func (l *frameLoop) Run() {
	for !l.window.ShouldClose() {
		l.tick()
	}
	l.demo.log.Info("window closed")
}

func (l *frameLoop) tick() {
	now := time.Now()
	dt := now.Sub(l.lastTime).Seconds()
	l.lastTime = now

	glfw.PollEvents()

	ctl := l.demo.controller
	ctl.Frame(dt)
	if ctl.ShouldQuit() {
		l.window.SetShouldClose(true)
	}

	func() { defer profiling.Track("glfw.SwapBuffers")(); l.window.SwapBuffers() }()

	limit := config.GetFPSLimit()
	if limit > 0 {
		if frame := time.Since(now); frame > time.Second/time.Duration(limit) {
			l.demo.log.Debug("frame over budget", "took", frame, "limit", limit)
		}
	}
	l.limiter.Wait(limit)
}

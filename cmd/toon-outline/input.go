package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

func setupInputHandlers(window *glfw.Window, d *demo) {
	ctl := d.controller

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		ctl.OnPointerMove(xpos, ypos)
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		ctl.OnMouseButton(button, action)
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		ctl.OnScroll(yoff)
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		ctl.OnKey(key, action)
	})

	// Both callbacks fire on HiDPI moves between monitors; either may change the ratio.
	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		ctl.OnResize(width, height, pixelRatio(w))
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		width, height := w.GetSize()
		ctl.OnResize(width, height, pixelRatio(w))
	})

	window.SetRefreshCallback(func(w *glfw.Window) {
		ctl.Redraw()
		w.SwapBuffers()
	})
}

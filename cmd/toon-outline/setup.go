package main

import (
	"fmt"
	"log/slog"

	"toon-outline/internal/app"
	"toon-outline/internal/asset"
	"toon-outline/internal/config"
	"toon-outline/internal/dialog"
	"toon-outline/internal/graphics"
	"toon-outline/internal/graphics/renderables/hud"
	"toon-outline/internal/graphics/renderables/ui"
	"toon-outline/internal/watch"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func setupWindow(w config.Window, vsync bool) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(w.Width, w.Height, w.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, err
	}

	// With vsync off the FPS limiter paces frames.
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return window, nil
}

// demo holds everything the window callbacks and the frame loop share.
type demo struct {
	log        *slog.Logger
	controller *app.Controller
	hud        *hud.HUD
}

func setupDemo(window *glfw.Window, cfg config.Config, log *slog.Logger) (*demo, error) {
	shaders := graphics.ShaderSource{Dir: cfg.Shaders.Dir, Vertex: cfg.Shaders.Vertex, Fragment: cfg.Shaders.Fragment}
	stats := hud.New()
	opts := app.Options{
		Shaders: shaders,
		Loader:  asset.NewLoader(log),
		Picker:  dialog.NewModelPicker(log),
		Stats:   stats,
	}
	if cfg.Shaders.Watch {
		vert, frag := shaders.Paths()
		w, err := watch.New([]string{vert, frag}, watch.DefaultDebounce, log)
		if err != nil {
			log.Warn("shader hot reload disabled", "error", err)
		} else {
			opts.Watcher = w
		}
	}

	ctl := app.New(cfg, graphics.NewGLDevice(), opts, log)

	overlay := ui.NewUI()
	if err := overlay.Init(); err != nil {
		ctl.Dispose()
		return nil, fmt.Errorf("init ui: %w", err)
	}
	overlay.AddLayer(ctl.Panel.View())
	overlay.AddLayer(stats)
	ctl.AddOverlay(overlay)

	width, height := window.GetSize()
	if err := ctl.Init(width, height, pixelRatio(window)); err != nil {
		ctl.Dispose()
		return nil, fmt.Errorf("init demo: %w", err)
	}
	log.Info("demo ready", "width", width, "height", height, "shaders", cfg.Shaders.Dir)
	return &demo{log: log, controller: ctl, hud: stats}, nil
}

// pixelRatio is the framebuffer to window size ratio, 2 on most HiDPI displays.
func pixelRatio(window *glfw.Window) float32 {
	winW, _ := window.GetSize()
	fbW, _ := window.GetFramebufferSize()
	if winW <= 0 || fbW <= 0 {
		return 1
	}
	return float32(fbW) / float32(winW)
}

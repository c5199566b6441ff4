// Command shadercheck compiles and links the configured outline shaders and
// the UI shaders in a hidden GL 4.1 context and reports the first failure.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"toon-outline/internal/config"
	"toon-outline/internal/graphics"
	"toon-outline/internal/graphics/renderables/ui"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("loading config", "error", err)
		os.Exit(1)
	}

	sources := []graphics.ShaderSource{
		{Dir: cfg.Shaders.Dir, Vertex: cfg.Shaders.Vertex, Fragment: cfg.Shaders.Fragment},
		{Dir: ui.ShadersDir, Vertex: "ui.vert", Fragment: "ui.frag"},
		{Dir: ui.ShadersDir, Vertex: "font.vert", Fragment: "font.frag"},
	}
	if err := check(sources, log); err != nil {
		log.Error("shader check failed", "error", err)
		os.Exit(1)
	}
}

func check(sources []graphics.ShaderSource, log *slog.Logger) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(64, 64, "shadercheck", nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return err
	}
	log.Info("context", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	dev := graphics.NewGLDevice()
	for _, src := range sources {
		vert, frag := src.Paths()
		vs, fs, err := src.Load()
		if err != nil {
			return err
		}
		prog, err := dev.NewProgram(vs, fs)
		if err != nil {
			return fmt.Errorf("%s + %s: %w", vert, frag, err)
		}
		prog.Delete()
		log.Info("ok", "vertex", vert, "fragment", frag)
	}
	return nil
}

package main

import (
	"flag"
	"log/slog"
	"os"
	"runtime"

	"toon-outline/internal/config"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	logLevel := flag.String("log-level", "", "override the configured log level (debug, info, warn, error)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		slog.Error("bad log level", "level", cfg.Log.Level, "error", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("toon-outline exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg.Window, cfg.Render.VSync)
	if err != nil {
		return err
	}
	defer window.Destroy()

	d, err := setupDemo(window, cfg, log)
	if err != nil {
		return err
	}
	defer d.controller.Dispose()

	setupInputHandlers(window, d)
	newFrameLoop(window, d).Run()
	return nil
}

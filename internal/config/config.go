package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full demo configuration as read from a TOML file.
type Config struct {
	Window   Window   `toml:"window"`
	Render   Render   `toml:"render"`
	Camera   Camera   `toml:"camera"`
	Torus    Torus    `toml:"torus"`
	Material Material `toml:"material"`
	Shaders  Shaders  `toml:"shaders"`
	Model    Model    `toml:"model"`
	Log      Log      `toml:"log"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Render holds frame buffer settings. ClearColor is a 0xRRGGBB value.
type Render struct {
	ClearColor    uint32  `toml:"clear_color"`
	MaxPixelRatio float32 `toml:"max_pixel_ratio"`
	FPSLimit      int     `toml:"fps_limit"`
	VSync         bool    `toml:"vsync"`
	ShowPanel     bool    `toml:"show_panel"`
}

type Camera struct {
	FOV             float32    `toml:"fov"`
	Near            float32    `toml:"near"`
	Far             float32    `toml:"far"`
	Position        [3]float32 `toml:"position"`
	LookAt          [3]float32 `toml:"look_at"`
	AutoRotate      bool       `toml:"auto_rotate"`
	AutoRotateSpeed float32    `toml:"auto_rotate_speed"`
}

type Torus struct {
	Radius          float32 `toml:"radius"`
	Tube            float32 `toml:"tube"`
	RadialSegments  int     `toml:"radial_segments"`
	TubularSegments int     `toml:"tubular_segments"`
}

type Material struct {
	Edge           bool       `toml:"edge"`
	Wireframe      bool       `toml:"wireframe"`
	Color          [3]float32 `toml:"color"`
	LightDirection [3]float32 `toml:"light_direction"`
	Gradient       float32    `toml:"gradient"`
	Inflate        float32    `toml:"inflate"`
}

// Shaders names the vertex/fragment pair read at material construction.
type Shaders struct {
	Dir      string `toml:"dir"`
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
	Watch    bool   `toml:"watch"`
}

// Model selects the OBJ variant. An empty OBJ path keeps the torus.
type Model struct {
	OBJ   string     `toml:"obj"`
	MTL   string     `toml:"mtl"`
	Scale float32    `toml:"scale"`
	Color [3]float32 `toml:"color"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the configuration the demo ships with.
func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "toon-outline"},
		Render: Render{
			ClearColor:    0xffffff,
			MaxPixelRatio: 2,
			VSync:         true,
			ShowPanel:     true,
		},
		Camera: Camera{
			FOV:             45,
			Near:            0.1,
			Far:             10000,
			Position:        [3]float32{0, 1000, 2000},
			AutoRotate:      true,
			AutoRotateSpeed: 2.0,
		},
		Torus: Torus{
			Radius:          400,
			Tube:            160,
			RadialSegments:  30,
			TubularSegments: 100,
		},
		Material: Material{
			Edge:           true,
			Color:          [3]float32{0.5, 1.0, 1.0},
			LightDirection: [3]float32{1, 1, 1},
			Gradient:       3.0,
			Inflate:        10.0,
		},
		Shaders: Shaders{
			Dir:      "assets/shaders/outline",
			Vertex:   "outline.vert",
			Fragment: "outline.frag",
			Watch:    true,
		},
		Model: Model{
			Scale: 1000,
			Color: [3]float32{0.9, 0.5, 0.0},
		},
		Log: Log{Level: "info"},
	}
}

// Load reads a TOML file over the defaults. A missing file yields the defaults.
// Unknown keys are rejected so typos do not silently fall back.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode strictly decodes TOML data into cfg, keeping fields the data does not set.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Validate checks ranges the renderer depends on.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Render.ClearColor > 0xffffff:
		return fmt.Errorf("%w: clear_color %#x exceeds 0xffffff", ErrInvalid, c.Render.ClearColor)
	case c.Render.MaxPixelRatio <= 0:
		return fmt.Errorf("%w: max_pixel_ratio must be positive", ErrInvalid)
	case c.Render.FPSLimit < 0:
		return fmt.Errorf("%w: fps_limit must not be negative", ErrInvalid)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: fov %v out of (0, 180)", ErrInvalid, c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Camera.Position == c.Camera.LookAt:
		return fmt.Errorf("%w: camera position equals look_at", ErrInvalid)
	case c.Torus.Radius <= 0 || c.Torus.Tube <= 0:
		return fmt.Errorf("%w: torus radius and tube must be positive", ErrInvalid)
	case c.Torus.RadialSegments < 2 || c.Torus.TubularSegments < 3:
		return fmt.Errorf("%w: torus segments %d/%d too small", ErrInvalid, c.Torus.RadialSegments, c.Torus.TubularSegments)
	case c.Material.Gradient <= 0:
		return fmt.Errorf("%w: gradient must be positive", ErrInvalid)
	case c.Material.Inflate < 0:
		return fmt.Errorf("%w: inflate must not be negative", ErrInvalid)
	case c.Shaders.Vertex == "" || c.Shaders.Fragment == "":
		return fmt.Errorf("%w: shader pair must name both stages", ErrInvalid)
	case c.Model.MTL != "" && c.Model.OBJ == "":
		return fmt.Errorf("%w: model.mtl set without model.obj", ErrInvalid)
	}
	for _, ch := range c.Material.Color {
		if ch < 0 || ch > 1 {
			return fmt.Errorf("%w: material color %v outside [0,1]", ErrInvalid, c.Material.Color)
		}
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ClearRGB returns the clear color as normalized RGB.
func (r Render) ClearRGB() mgl32.Vec3 {
	return mgl32.Vec3{
		float32((r.ClearColor>>16)&0xff) / 255,
		float32((r.ClearColor>>8)&0xff) / 255,
		float32(r.ClearColor&0xff) / 255,
	}
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalid, s)
}

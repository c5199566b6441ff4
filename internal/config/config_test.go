package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, float32(400), cfg.Torus.Radius)
	assert.Equal(t, float32(160), cfg.Torus.Tube)
	assert.Equal(t, 30, cfg.Torus.RadialSegments)
	assert.Equal(t, 100, cfg.Torus.TubularSegments)
	assert.Equal(t, [3]float32{0, 1000, 2000}, cfg.Camera.Position)
	assert.Equal(t, [3]float32{0.5, 1.0, 1.0}, cfg.Material.Color)
	assert.True(t, cfg.Material.Edge)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	data := `
[render]
clear_color = 0x102030
fps_limit = 60

[material]
edge = false
color = [0.2, 0.2, 0.2]

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint32(0x102030), cfg.Render.ClearColor)
	assert.Equal(t, 60, cfg.Render.FPSLimit)
	assert.False(t, cfg.Material.Edge)
	assert.Equal(t, [3]float32{0.2, 0.2, 0.2}, cfg.Material.Color)
	assert.Equal(t, "debug", cfg.Log.Level)

	// untouched sections keep their defaults
	assert.Equal(t, Default().Torus, cfg.Torus)
	assert.Equal(t, float32(10), cfg.Material.Inflate)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.toml")
	require.NoError(t, os.WriteFile(path, []byte("[torus]\nradious = 3\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }},
		{"fov too wide", func(c *Config) { c.Camera.FOV = 180 }},
		{"camera on target", func(c *Config) { c.Camera.Position = c.Camera.LookAt }},
		{"negative tube", func(c *Config) { c.Torus.Tube = -1 }},
		{"few segments", func(c *Config) { c.Torus.TubularSegments = 2 }},
		{"color channel", func(c *Config) { c.Material.Color[1] = 1.5 }},
		{"clear color", func(c *Config) { c.Render.ClearColor = 0x1000000 }},
		{"missing fragment", func(c *Config) { c.Shaders.Fragment = "" }},
		{"mtl without obj", func(c *Config) { c.Model.MTL = "blank.mtl" }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestClearRGB(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, Render{ClearColor: 0xffffff}.ClearRGB())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, Render{ClearColor: 0xff0000}.ClearRGB())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, Render{}.ClearRGB())
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)
}

func TestRuntimeSettings(t *testing.T) {
	SetFPSLimit(-5)
	assert.Equal(t, 0, GetFPSLimit())
	SetFPSLimit(5000)
	assert.Equal(t, 1000, GetFPSLimit())

	SetShowPanel(true)
	assert.False(t, ToggleShowPanel())
	assert.False(t, GetShowPanel())

	Apply(Default())
	assert.Equal(t, 0, GetFPSLimit())
	assert.True(t, GetShowPanel())
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

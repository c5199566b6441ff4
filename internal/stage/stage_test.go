package stage_test

import (
	"io"
	"log/slog"
	"testing"

	"toon-outline/internal/config"
	"toon-outline/internal/graphics/gfxtest"
	"toon-outline/internal/stage"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStage(t *testing.T) (*stage.Stage, *gfxtest.Recorder) {
	t.Helper()
	dev := gfxtest.New()
	s := stage.New(dev, config.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, s.Init(800, 600, 1))
	return s, dev
}

func TestInitConfiguresCameraAndRenderer(t *testing.T) {
	s, dev := newStage(t)

	cam := s.Camera()
	assert.Equal(t, float32(45), cam.FOV)
	assert.Equal(t, float32(0.1), cam.NearPlane)
	assert.Equal(t, float32(10000), cam.FarPlane)
	assert.Equal(t, mgl32.Vec3{0, 1000, 2000}, cam.Position)
	assert.Equal(t, mgl32.Vec3{}, cam.Target)
	assert.True(t, s.Controls().AutoRotate)

	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, dev.ClearColor)
	assert.False(t, s.Renderer().AutoClear)
	assert.Equal(t, 0, s.MainScene().Len())
	assert.Equal(t, 0, s.EdgeScene().Len())
	assert.NotSame(t, s.MainScene(), s.EdgeScene())
}

func TestInitTwice(t *testing.T) {
	s, _ := newStage(t)
	assert.ErrorIs(t, s.Init(800, 600, 1), stage.ErrAlreadyInitialized)
}

func TestOnResize(t *testing.T) {
	s, dev := newStage(t)

	sizes := [][2]int{{1024, 768}, {300, 900}, {1920, 1080}, {1920, 1080}}
	for _, sz := range sizes {
		s.OnResize(sz[0], sz[1])
		assert.InDelta(t, float32(sz[0])/float32(sz[1]), s.Camera().AspectRatio, 1e-6)
		w, h := s.Renderer().Size()
		assert.Equal(t, sz[0], w)
		assert.Equal(t, sz[1], h)
		assert.Equal(t, [4]int32{0, 0, int32(sz[0]), int32(sz[1])}, dev.Viewport)
	}

	s.OnResize(0, 0)
	w, h := s.Renderer().Size()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)
}

func TestPixelRatioIsClamped(t *testing.T) {
	dev := gfxtest.New()
	s := stage.New(dev, config.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, s.Init(400, 300, 3))

	assert.Equal(t, float32(2), s.Renderer().PixelRatio())
	assert.Equal(t, float32(2), s.PixelRatio())
	assert.Equal(t, [4]int32{0, 0, 800, 600}, dev.Viewport)

	s.SetPixelRatio(1)
	assert.Equal(t, [4]int32{0, 0, 400, 300}, dev.Viewport)
}

func TestOnFrameClearsAndRotates(t *testing.T) {
	s, dev := newStage(t)
	_, theta0, _ := s.Controls().Spherical()

	s.OnFrame(1)
	assert.Equal(t, 1, dev.Clears)

	_, theta1, _ := s.Controls().Spherical()
	assert.InDelta(t, float64(theta0-2*math32.Pi/60*2), float64(theta1), 1e-3)
}

func TestDisposeIsIdempotent(t *testing.T) {
	s, dev := newStage(t)
	s.Dispose()
	s.Dispose()
	s.OnFrame(0.016)
	assert.Equal(t, 0, dev.Clears)
}

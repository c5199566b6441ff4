package app_test

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"toon-outline/internal/app"
	"toon-outline/internal/asset"
	"toon-outline/internal/config"
	"toon-outline/internal/geometry"
	"toon-outline/internal/graphics"
	"toon-outline/internal/graphics/gfxtest"
	"toon-outline/internal/graphics/renderer"
	"toon-outline/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type shaders struct{ err error }

func (s *shaders) Load() (string, string, error) { return "v", "f", s.err }

type fakeWatcher struct {
	pending bool
	closed  int
}

func (w *fakeWatcher) Poll() bool {
	p := w.pending
	w.pending = false
	return p
}

func (w *fakeWatcher) Close() error {
	w.closed++
	return nil
}

type fakePicker struct {
	opened int
	paths  []string
}

func (p *fakePicker) Open() bool { p.opened++; return true }
func (p *fakePicker) Poll() (string, bool) {
	if len(p.paths) == 0 {
		return "", false
	}
	path := p.paths[0]
	p.paths = p.paths[1:]
	return path, true
}

type fakeLoader struct {
	jobs     []asset.LoadJob
	results  []asset.LoadResult
	shutdown int
}

func (l *fakeLoader) Submit(job asset.LoadJob) bool {
	l.jobs = append(l.jobs, job)
	return true
}

func (l *fakeLoader) Poll() (asset.LoadResult, bool) {
	if len(l.results) == 0 {
		return asset.LoadResult{}, false
	}
	r := l.results[0]
	l.results = l.results[1:]
	return r, true
}

func (l *fakeLoader) Shutdown() { l.shutdown++ }

type overlay struct {
	dev      *gfxtest.Recorder
	renders  int
	width    int
	disposed int
	// eventsSeen is the device event count at the last render.
	eventsSeen int
}

func (o *overlay) Render(ctx renderer.RenderContext) {
	o.renders++
	o.eventsSeen = len(o.dev.Events)
}
func (o *overlay) Dispose()                          { o.disposed++ }
func (o *overlay) SetViewport(width, height int)     { o.width = width }

type fakeStats struct {
	updates int
	visible bool
}

func (s *fakeStats) Update(dt float64) { s.updates++ }
func (s *fakeStats) Toggle() bool {
	s.visible = !s.visible
	return s.visible
}

type fixture struct {
	dev     *gfxtest.Recorder
	ctl     *app.Controller
	shaders *shaders
	watcher *fakeWatcher
	picker  *fakePicker
	loader  *fakeLoader
	overlay *overlay
	stats   *fakeStats
}

func newFixture(t *testing.T, mutate ...func(*config.Config)) *fixture {
	t.Helper()
	cfg := config.Default()
	for _, m := range mutate {
		m(&cfg)
	}
	dev := gfxtest.New()
	f := &fixture{
		dev:     dev,
		shaders: &shaders{},
		watcher: &fakeWatcher{},
		picker:  &fakePicker{},
		loader:  &fakeLoader{},
		overlay: &overlay{dev: dev},
		stats:   &fakeStats{},
	}
	f.ctl = app.New(cfg, f.dev, app.Options{
		Shaders: f.shaders,
		Loader:  f.loader,
		Watcher: f.watcher,
		Picker:  f.picker,
		Stats:   f.stats,
	}, discard)
	f.ctl.AddOverlay(f.overlay)
	require.NoError(t, f.ctl.Init(1280, 720, 1))
	return f
}

func (f *fixture) press(key glfw.Key) {
	f.ctl.OnKey(key, glfw.Press)
	f.ctl.Frame(0.016)
	f.ctl.OnKey(key, glfw.Release)
}

func TestInitBuildsMeshPair(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, 1, f.ctl.Stage.MainScene().Len())
	assert.Equal(t, 1, f.ctl.Stage.EdgeScene().Len())
	assert.Equal(t, 1280, f.overlay.width)
	assert.Equal(t, mgl32.Vec2{1280, 720}, f.ctl.Mesh.Uniforms.Resolution)
	assert.Equal(t, f.ctl.Mesh.Params().Edge, f.ctl.Panel.Params().Edge)
	assert.Empty(t, f.loader.jobs)
}

func TestInitQueuesConfiguredModel(t *testing.T) {
	f := newFixture(t, func(c *config.Config) {
		c.Model.OBJ = "assets/model/animal.obj"
		c.Model.MTL = "assets/model/blank.mtl"
	})
	require.Len(t, f.loader.jobs, 1)
	assert.Equal(t, asset.LoadJob{OBJ: "assets/model/animal.obj", MTL: "assets/model/blank.mtl", Scale: 1000}, f.loader.jobs[0])
}

func TestInitFailsOnShaderError(t *testing.T) {
	cfg := config.Default()
	ctl := app.New(cfg, gfxtest.New(), app.Options{Shaders: &shaders{err: errors.New("missing")}}, discard)
	assert.Error(t, ctl.Init(800, 600, 1))
}

func TestResizeDispatchesToAll(t *testing.T) {
	f := newFixture(t)
	f.ctl.OnResize(1000, 500, 2)

	assert.InDelta(t, 2.0, f.ctl.Stage.Camera().AspectRatio, 1e-6)
	assert.Equal(t, [4]int32{0, 0, 2000, 1000}, f.dev.Viewport)
	assert.Equal(t, mgl32.Vec2{1000, 500}, f.ctl.Mesh.Uniforms.Resolution)
	assert.Equal(t, 1000, f.overlay.width)

	f.ctl.OnResize(0, 0, 1)
	assert.Equal(t, mgl32.Vec2{1000, 500}, f.ctl.Mesh.Uniforms.Resolution)
}

func TestPixelRatioReachesShader(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, float32(1), f.ctl.Mesh.Uniforms.PixelRatio)

	f.ctl.OnResize(1000, 500, 3)
	f.ctl.OnPointerMove(120, 340)
	f.dev.Reset()
	f.ctl.Frame(0.016)

	require.NotEmpty(t, f.dev.Draws)
	d := f.dev.Draws[0]
	assert.Equal(t, float32(2), d.Uniforms["u_pixelRatio"], "clamped to max_pixel_ratio")
	assert.Equal(t, mgl32.Vec2{1000, 500}, d.Uniforms["u_resolution"], "resolution stays in window pixels")
	assert.Equal(t, mgl32.Vec2{120, 340}, d.Uniforms["u_mouse"])
}

func TestPointerMoveIsRaw(t *testing.T) {
	f := newFixture(t)
	f.ctl.OnPointerMove(120, 340)
	assert.Equal(t, mgl32.Vec2{120, 340}, f.ctl.Mesh.Uniforms.Mouse)
}

func TestFrameOrder(t *testing.T) {
	f := newFixture(t)
	f.dev.Reset()

	f.ctl.Frame(0.016)

	assert.Equal(t, []string{"clear", "draw:front", "draw:back"}, f.dev.Events)
	assert.Equal(t, 3, f.overlay.eventsSeen, "overlays draw after both passes")
	require.Len(t, f.dev.Draws, 2)
	assert.Equal(t, graphics.FrontSide, f.dev.Draws[0].Side)
	assert.False(t, f.dev.Draws[0].Bool("u_isEdge"))
	assert.Equal(t, graphics.BackSide, f.dev.Draws[1].Side)
	assert.True(t, f.dev.Draws[1].Bool("u_isEdge"))
	assert.Equal(t, 1, f.overlay.renders)

	f.dev.Reset()
	f.ctl.Frame(0.016)
	f.ctl.Frame(0.016)
	assert.Equal(t, []string{"clear", "draw:front", "draw:back", "clear", "draw:front", "draw:back"}, f.dev.Events)
}

func TestKeyActions(t *testing.T) {
	f := newFixture(t)
	before := f.ctl.Mesh.Rebuilds()

	f.press(glfw.KeyE)
	assert.False(t, f.ctl.Panel.Params().Edge)
	assert.Equal(t, 0, f.ctl.Stage.EdgeScene().Len())
	assert.Equal(t, before+1, f.ctl.Mesh.Rebuilds())

	f.press(glfw.KeyF)
	assert.True(t, f.ctl.Mesh.Params().Wireframe)
	assert.Equal(t, before+2, f.ctl.Mesh.Rebuilds())

	f.press(glfw.KeyR)
	assert.Equal(t, before+3, f.ctl.Mesh.Rebuilds())

	visible := f.ctl.Panel.View().Visible
	f.press(glfw.KeyH)
	assert.Equal(t, !visible, f.ctl.Panel.View().Visible)
	f.press(glfw.KeyH)
	assert.Equal(t, visible, f.ctl.Panel.View().Visible)

	f.press(glfw.KeyO)
	assert.Equal(t, 1, f.picker.opened)

	assert.False(t, f.ctl.ShouldQuit())
	f.press(glfw.KeyEscape)
	assert.True(t, f.ctl.ShouldQuit())
}

func TestShaderChangeRebuildsAndSurvivesErrors(t *testing.T) {
	f := newFixture(t)
	before := f.ctl.Mesh.Rebuilds()

	f.watcher.pending = true
	f.ctl.Frame(0.016)
	assert.Equal(t, before+1, f.ctl.Mesh.Rebuilds())

	f.dev.FailCompile = true
	f.watcher.pending = true
	f.dev.Reset()
	f.ctl.Frame(0.016)
	assert.Equal(t, before+1, f.ctl.Mesh.Rebuilds())
	assert.Len(t, f.dev.Draws, 2, "previous mesh keeps drawing")
}

func TestPickedModelIsLoadedAndApplied(t *testing.T) {
	f := newFixture(t)
	f.picker.paths = []string{"/models/cube.obj"}
	f.ctl.Frame(0.016)
	require.Len(t, f.loader.jobs, 1)
	assert.Equal(t, "/models/cube.obj", f.loader.jobs[0].OBJ)

	g, err := geometry.NewTorus(geometry.TorusParams{Radius: 2, Tube: 1, RadialSegments: 3, TubularSegments: 3})
	require.NoError(t, err)
	before := f.ctl.Mesh.Rebuilds()
	f.loader.results = []asset.LoadResult{{Job: f.loader.jobs[0], Geometry: g, Color: mgl32.Vec3{0.2, 0.4, 0.6}, HasColor: true}}
	f.ctl.Frame(0.016)

	assert.Equal(t, before+1, f.ctl.Mesh.Rebuilds())
	main, _ := f.ctl.Mesh.Meshes()
	assert.Equal(t, geometry.TorusIndexCount(3, 3), main.Geometry.IndexCount())
	assert.Equal(t, mgl32.Vec3{0.2, 0.4, 0.6}, f.ctl.Mesh.Uniforms.GlobalColor)
	assert.InDelta(t, 0.4, f.ctl.Panel.Params().G, 1e-6)
}

func TestModelWithoutColorUsesConfiguredColor(t *testing.T) {
	f := newFixture(t)
	g, err := geometry.NewTorus(geometry.TorusParams{Radius: 2, Tube: 1, RadialSegments: 3, TubularSegments: 3})
	require.NoError(t, err)
	f.loader.results = []asset.LoadResult{{Geometry: g}}
	f.ctl.Frame(0.016)
	assert.Equal(t, mgl32.Vec3{0.9, 0.5, 0}, f.ctl.Mesh.Uniforms.GlobalColor)
}

func TestFailedModelLoadKeepsTorus(t *testing.T) {
	f := newFixture(t)
	before := f.ctl.Mesh.Rebuilds()
	f.loader.results = []asset.LoadResult{{Err: errors.New("no such file")}}
	f.ctl.Frame(0.016)
	assert.Equal(t, before, f.ctl.Mesh.Rebuilds())
}

func TestMousePressOverPanelDoesNotOrbit(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.Render.ShowPanel = true })
	require.True(t, f.ctl.Panel.View().Visible)

	f.ctl.OnPointerMove(1200, 20)
	f.ctl.OnMouseButton(glfw.MouseButtonLeft, glfw.Press)
	assert.False(t, f.ctl.Stage.Controls().Dragging())
	f.ctl.OnMouseButton(glfw.MouseButtonLeft, glfw.Release)

	f.ctl.OnPointerMove(200, 300)
	f.ctl.OnMouseButton(glfw.MouseButtonLeft, glfw.Press)
	assert.True(t, f.ctl.Stage.Controls().Dragging())
	f.ctl.OnMouseButton(glfw.MouseButtonLeft, glfw.Release)
	assert.False(t, f.ctl.Stage.Controls().Dragging())
}

func TestDispose(t *testing.T) {
	f := newFixture(t)
	f.ctl.Dispose()
	f.ctl.Dispose()

	assert.Equal(t, 0, f.dev.LivePrograms())
	assert.Equal(t, 0, f.dev.LiveVertexArrays())
	assert.Equal(t, 1, f.overlay.disposed)
	assert.Equal(t, 1, f.loader.shutdown)
	assert.Equal(t, 1, f.watcher.closed)
	assert.False(t, f.ctl.Panel.View().Visible)

	f.dev.Reset()
	f.ctl.Frame(0.016)
	assert.Empty(t, f.dev.Draws)
}

// End to end through the real loader with an OBJ on disk.
func TestRealLoader(t *testing.T) {
	dir := t.TempDir()
	obj := filepath.Join(dir, "tri.obj")
	require.NoError(t, os.WriteFile(obj, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644))

	loader := asset.NewLoader(discard)
	ctl := app.New(config.Default(), gfxtest.New(), app.Options{Shaders: &shaders{}, Loader: loader}, discard)
	require.NoError(t, ctl.Init(800, 600, 1))
	defer ctl.Dispose()

	require.True(t, loader.Submit(asset.LoadJob{OBJ: obj, Scale: 1}))
	require.Eventually(t, func() bool {
		ctl.Frame(0.016)
		main, _ := ctl.Mesh.Meshes()
		return main.Geometry.IndexCount() == 3
	}, 5*time.Second, 10*time.Millisecond)
}

func TestStatsUpdatedEachFrameAndToggled(t *testing.T) {
	f := newFixture(t)
	f.ctl.Frame(0.016)
	f.ctl.Frame(0.016)
	assert.Equal(t, 2, f.stats.updates)

	f.press(glfw.KeyV)
	assert.True(t, f.stats.visible)
	f.press(glfw.KeyV)
	assert.False(t, f.stats.visible)
}

func TestRedrawOnlyDraws(t *testing.T) {
	f := newFixture(t)
	f.ctl.Frame(0.5)
	time0 := f.ctl.Mesh.Uniforms.Time
	updates := f.stats.updates

	f.watcher.pending = true
	f.ctl.OnKey(glfw.KeyE, glfw.Press)
	f.dev.Reset()
	f.ctl.Redraw()

	assert.Equal(t, []string{"clear", "draw:front", "draw:back"}, f.dev.Events)
	assert.Equal(t, 2, f.overlay.renders)
	assert.Equal(t, time0, f.ctl.Mesh.Uniforms.Time)
	assert.Equal(t, updates, f.stats.updates)
	assert.True(t, f.watcher.pending, "watcher signal left for the next frame")
	assert.True(t, f.ctl.Input.JustPressed(input.ActionToggleEdge), "key edge left for the next frame")
	assert.True(t, f.ctl.Mesh.Params().Edge)

	f.ctl.Frame(0.016)
	assert.False(t, f.ctl.Mesh.Params().Edge)
	assert.False(t, f.watcher.pending)
}

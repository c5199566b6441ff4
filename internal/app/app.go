// Package app wires the stage, the outline mesh and the parameter panel
// together and routes window events to them.
package app

import (
	"context"
	"log/slog"

	"toon-outline/internal/asset"
	"toon-outline/internal/config"
	"toon-outline/internal/geometry"
	"toon-outline/internal/graphics"
	"toon-outline/internal/graphics/renderables/outline"
	"toon-outline/internal/graphics/renderer"
	"toon-outline/internal/input"
	"toon-outline/internal/profiling"
	"toon-outline/internal/stage"
	"toon-outline/internal/ui/panel"
	"toon-outline/internal/ui/widget"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// ModelLoader decodes models in the background.
type ModelLoader interface {
	Submit(job asset.LoadJob) bool
	Poll() (asset.LoadResult, bool)
	Shutdown()
}

// ChangeSource signals that shader files changed.
type ChangeSource interface {
	Poll() bool
	Close() error
}

// FilePicker asks the user for a model path.
type FilePicker interface {
	Open() bool
	Poll() (string, bool)
}

// Stats receives per-frame timing and is toggled by the profiling key.
type Stats interface {
	Update(dt float64)
	Toggle() bool
}

// Options carries the optional collaborators. Nil members disable the
// matching feature.
type Options struct {
	Shaders outline.ShaderLoader
	Loader  ModelLoader
	Watcher ChangeSource
	Picker  FilePicker
	Stats   Stats
}

// Controller owns every long-lived demo object. All methods run on the
// render thread.
type Controller struct {
	cfg config.Config
	log *slog.Logger

	Stage *stage.Stage
	Mesh  *outline.OutlineMesh
	Panel *panel.Panel
	Input *input.InputManager

	loader  ModelLoader
	watcher ChangeSource
	picker  FilePicker
	stats   Stats

	overlays []renderer.Renderable

	fps         *profiling.FPSCounter
	profileLogs bool
	quit        bool
	disposed    bool
}

func New(cfg config.Config, device graphics.Device, opts Options, log *slog.Logger) *Controller {
	config.Apply(cfg)

	shaders := opts.Shaders
	if shaders == nil {
		shaders = graphics.ShaderSource{Dir: cfg.Shaders.Dir, Vertex: cfg.Shaders.Vertex, Fragment: cfg.Shaders.Fragment}
	}

	c := &Controller{
		cfg:     cfg,
		log:     log,
		Input:   input.NewInputManager(),
		loader:  opts.Loader,
		watcher: opts.Watcher,
		picker:  opts.Picker,
		stats:   opts.Stats,
		fps:     profiling.NewFPSCounter(),
	}
	c.Stage = stage.New(device, cfg, log)

	mat := cfg.Material
	params := outline.Params{Edge: mat.Edge, Wireframe: mat.Wireframe, Color: mgl32.Vec3(mat.Color)}
	c.Mesh = outline.New(device, c.Stage, shaders, outline.TorusSource(torusParams(cfg.Torus)), params, outline.UniformsFromConfig(mat), log)

	c.Panel = panel.New(c.Mesh, panel.Params{Edge: mat.Edge, R: mat.Color[0], G: mat.Color[1], B: mat.Color[2]}, log)
	c.Panel.View().Visible = config.GetShowPanel()
	if c.picker != nil {
		c.Panel.View().AddButton("Open model (O)", c.openModel)
	}
	return c
}

func torusParams(t config.Torus) geometry.TorusParams {
	return geometry.TorusParams{
		Radius:          t.Radius,
		Tube:            t.Tube,
		RadialSegments:  t.RadialSegments,
		TubularSegments: t.TubularSegments,
	}
}

// AddOverlay registers a renderable drawn after the outline passes.
func (c *Controller) AddOverlay(r renderer.Renderable) {
	c.overlays = append(c.overlays, r)
}

// Init sets up the stage and builds the first mesh pair. A configured model
// is queued for loading; the torus is shown until it arrives.
func (c *Controller) Init(width, height int, pixelRatio float32) error {
	if err := c.Stage.Init(width, height, pixelRatio); err != nil {
		return err
	}
	c.Mesh.SetPixelRatio(c.Stage.PixelRatio())
	if err := c.Mesh.Init(width, height); err != nil {
		return err
	}
	c.Panel.View().SetViewport(width, height)
	for _, o := range c.overlays {
		o.SetViewport(width, height)
	}
	if c.cfg.Model.OBJ != "" {
		c.loadModel(c.cfg.Model.OBJ, c.cfg.Model.MTL)
	}
	return nil
}

// OnResize dispatches a window resize to everything that tracks the size.
func (c *Controller) OnResize(width, height int, pixelRatio float32) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Stage.SetPixelRatio(pixelRatio)
	c.Stage.OnResize(width, height)
	c.Mesh.SetPixelRatio(c.Stage.PixelRatio())
	c.Mesh.OnResize(width, height)
	c.Panel.View().SetViewport(width, height)
	for _, o := range c.overlays {
		o.SetViewport(width, height)
	}
	c.log.Debug("resized", "width", width, "height", height, "pixelRatio", pixelRatio)
}

// OnPointerMove forwards the raw cursor position to the mesh uniforms and the
// orbit controls.
func (c *Controller) OnPointerMove(x, y float64) {
	c.Input.HandleCursorEvent(x, y)
	c.Mesh.OnMouseMove(x, y)
	if !c.Panel.View().Capturing() {
		c.Stage.Controls().HandleCursor(x, y)
	}
}

// OnMouseButton starts or ends an orbit drag unless the press lands on the
// panel, which picks it up on the next frame.
func (c *Controller) OnMouseButton(button glfw.MouseButton, action glfw.Action) {
	c.Input.HandleMouseButtonEvent(button, action)
	if button != glfw.MouseButtonLeft {
		return
	}
	x, y := c.Input.CursorPos()
	pressed := action == glfw.Press
	if pressed && c.Panel.View().Contains(float32(x), float32(y)) {
		return
	}
	c.Stage.Controls().HandleButton(pressed, x, y)
}

func (c *Controller) OnScroll(yoff float64) {
	x, y := c.Input.CursorPos()
	if c.Panel.View().Contains(float32(x), float32(y)) {
		return
	}
	c.Stage.Controls().HandleScroll(yoff)
}

func (c *Controller) OnKey(key glfw.Key, action glfw.Action) {
	c.Input.HandleKeyEvent(key, action)
}

// Frame runs one tick: background results and actions first, then the stage
// clear, the two outline passes and the overlays, in that order.
func (c *Controller) Frame(dt float64) {
	if c.disposed {
		return
	}
	profiling.ResetFrame()
	defer c.Input.PostUpdate()

	c.drain()
	c.handleActions()
	c.handlePanel()

	c.Stage.OnFrame(dt)
	c.Mesh.OnFrame(dt)

	if c.stats != nil {
		c.stats.Update(dt)
	}

	c.renderOverlays(dt)

	if fps, ok := c.fps.Tick(dt); ok {
		level := slog.LevelDebug
		if c.profileLogs {
			level = slog.LevelInfo
		}
		c.log.Log(context.Background(), level, "frame", "fps", int(fps+0.5), "top", profiling.TopN(3))
	}
}

// Redraw repeats the current frame without advancing time or consuming input,
// background results or key edges. Window refresh callbacks use it while
// events are being polled.
func (c *Controller) Redraw() {
	if c.disposed {
		return
	}
	c.Stage.OnFrame(0)
	c.Mesh.Render()
	c.renderOverlays(0)
}

func (c *Controller) renderOverlays(dt float64) {
	cam := c.Stage.Camera()
	ctx := renderer.RenderContext{
		Camera: cam,
		DT:     dt,
		View:   cam.GetViewMatrix(),
		Proj:   cam.GetProjectionMatrix(),
	}
	for _, o := range c.overlays {
		o.Render(ctx)
	}
}

// ShouldQuit reports whether the quit action fired.
func (c *Controller) ShouldQuit() bool {
	return c.quit
}

func (c *Controller) drain() {
	if c.watcher != nil && c.watcher.Poll() {
		c.log.Info("shader files changed, reloading")
		c.rebuild("shader change")
	}
	if c.picker != nil {
		if path, ok := c.picker.Poll(); ok {
			c.loadModel(path, "")
		}
	}
	if c.loader != nil {
		for {
			res, ok := c.loader.Poll()
			if !ok {
				break
			}
			c.applyModel(res)
		}
	}
}

func (c *Controller) handleActions() {
	im := c.Input
	if im.JustPressed(input.ActionToggleEdge) {
		c.Panel.SetEdge(!c.Panel.Params().Edge)
	}
	if im.JustPressed(input.ActionToggleWireframe) {
		c.Mesh.SetWireframe(!c.Mesh.Params().Wireframe)
		c.rebuild("wireframe")
	}
	if im.JustPressed(input.ActionTogglePanel) {
		c.Panel.View().Visible = config.ToggleShowPanel()
	}
	if im.JustPressed(input.ActionReloadShaders) {
		c.rebuild("reload")
	}
	if im.JustPressed(input.ActionOpenModel) {
		c.openModel()
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		c.profileLogs = !c.profileLogs
		if c.stats != nil {
			c.stats.Toggle()
		}
	}
	if im.JustPressed(input.ActionQuit) {
		c.quit = true
	}
}

func (c *Controller) handlePanel() {
	x, y := c.Input.CursorPos()
	c.Panel.View().HandleInput(widget.Pointer{
		X:           float32(x),
		Y:           float32(y),
		Down:        c.Input.IsActive(input.ActionMouseLeft),
		JustPressed: c.Input.JustPressed(input.ActionMouseLeft),
	})
}

// rebuild keeps the current pair on failure.
func (c *Controller) rebuild(reason string) {
	if err := c.Mesh.Rebuild(); err != nil {
		c.log.Error("rebuild failed, keeping previous mesh", "reason", reason, "error", err)
	}
}

func (c *Controller) openModel() {
	if c.picker == nil {
		return
	}
	c.picker.Open()
}

func (c *Controller) loadModel(obj, mtl string) {
	if c.loader == nil {
		c.log.Warn("model loading disabled", "obj", obj)
		return
	}
	job := asset.LoadJob{OBJ: obj, MTL: mtl, Scale: c.cfg.Model.Scale}
	if !c.loader.Submit(job) {
		c.log.Warn("model loader busy", "obj", obj)
	}
}

// applyModel swaps the geometry source for a loaded model. Its first diffuse
// color, or the configured model color, becomes the base color.
func (c *Controller) applyModel(res asset.LoadResult) {
	if res.Err != nil {
		c.log.Error("model load failed", "obj", res.Job.OBJ, "error", res.Err)
		return
	}
	color := mgl32.Vec3(c.cfg.Model.Color)
	if res.HasColor {
		color = res.Color
	}
	c.Mesh.SetGeometrySource(outline.StaticSource(res.Geometry))
	c.Mesh.SetColor(color.X(), color.Y(), color.Z())
	params := c.Panel.Params()
	params.R, params.G, params.B = color.X(), color.Y(), color.Z()
	c.Panel.Reset(params)
	c.rebuild("model " + res.Job.OBJ)
}

// Dispose releases GPU resources and stops background work. Safe to call twice.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true

	c.Mesh.Dispose()
	c.Panel.Dispose()
	for i := len(c.overlays) - 1; i >= 0; i-- {
		c.overlays[i].Dispose()
	}
	c.Stage.Dispose()

	if c.loader != nil {
		c.loader.Shutdown()
	}
	if c.watcher != nil {
		if err := c.watcher.Close(); err != nil {
			c.log.Warn("closing watcher", "error", err)
		}
	}
}

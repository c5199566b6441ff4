// Package stage owns the render target, the camera and the two scenes the
// outline technique draws into.
package stage

import (
	"errors"
	"log/slog"

	"toon-outline/internal/config"
	"toon-outline/internal/graphics"
	"toon-outline/internal/graphics/renderer"
	"toon-outline/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrAlreadyInitialized is returned by a second Init call.
var ErrAlreadyInitialized = errors.New("stage: already initialized")

// Stage holds a renderer, a perspective camera with orbit controls and the
// main and edge scenes.
type Stage struct {
	device graphics.Device
	cfg    config.Config
	log    *slog.Logger

	renderer *renderer.Renderer
	camera   *graphics.Camera
	controls *graphics.OrbitControls
	main     *renderer.Scene
	edge     *renderer.Scene

	initialized bool
	disposed    bool
}

func New(device graphics.Device, cfg config.Config, log *slog.Logger) *Stage {
	return &Stage{
		device: device,
		cfg:    cfg,
		log:    log.With("component", "stage"),
	}
}

// Init builds the scenes, renderer and camera for a window of the given size.
// pixelRatio is the framebuffer/window ratio reported by the platform.
func (s *Stage) Init(width, height int, pixelRatio float32) error {
	if s.initialized {
		return ErrAlreadyInitialized
	}

	s.main = renderer.NewScene()
	s.edge = renderer.NewScene()

	s.renderer = renderer.NewRenderer(s.device)
	s.renderer.AutoClear = false
	s.renderer.SetClearColor(s.cfg.Render.ClearRGB())
	s.renderer.SetPixelRatio(min(s.cfg.Render.MaxPixelRatio, pixelRatio))

	cc := s.cfg.Camera
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	s.camera = graphics.NewCamera(cc.FOV, aspect, cc.Near, cc.Far)
	s.camera.Position = mgl32.Vec3(cc.Position)
	s.camera.LookAt(mgl32.Vec3(cc.LookAt))

	s.controls = graphics.NewOrbitControls(s.camera)
	s.controls.AutoRotate = cc.AutoRotate
	s.controls.AutoRotateSpeed = cc.AutoRotateSpeed

	s.initialized = true
	s.OnResize(width, height)

	s.log.Debug("initialized",
		"width", width, "height", height,
		"pixelRatio", s.renderer.PixelRatio())
	return nil
}

// OnResize updates the camera aspect and the renderer viewport. Zero sizes,
// as reported for a minimized window, are ignored.
func (s *Stage) OnResize(width, height int) {
	if !s.initialized || width <= 0 || height <= 0 {
		return
	}
	s.camera.SetViewport(width, height)
	s.controls.SetViewport(width, height)
	s.renderer.SetSize(width, height)
}

// SetPixelRatio applies a new platform pixel ratio, e.g. after the window
// moved to another monitor.
func (s *Stage) SetPixelRatio(ratio float32) {
	if !s.initialized {
		return
	}
	s.renderer.SetPixelRatio(min(s.cfg.Render.MaxPixelRatio, ratio))
}

// PixelRatio returns the clamped ratio in effect, 1 before Init.
func (s *Stage) PixelRatio() float32 {
	if !s.initialized {
		return 1
	}
	return s.renderer.PixelRatio()
}

// OnFrame clears the frame buffer and steps the orbit controls.
func (s *Stage) OnFrame(dt float64) {
	if !s.initialized || s.disposed {
		return
	}
	defer profiling.Track("stage.OnFrame")()
	s.renderer.Clear()
	s.controls.Update(dt)
}

// Draw renders scene with the stage camera into the current frame.
func (s *Stage) Draw(scene *renderer.Scene) {
	if !s.initialized || s.disposed {
		return
	}
	s.renderer.Render(scene, s.camera)
}

func (s *Stage) MainScene() *renderer.Scene { return s.main }
func (s *Stage) EdgeScene() *renderer.Scene { return s.edge }

func (s *Stage) Camera() *graphics.Camera { return s.camera }
func (s *Stage) Controls() *graphics.OrbitControls { return s.controls }
func (s *Stage) Renderer() *renderer.Renderer { return s.renderer }
func (s *Stage) Initialized() bool { return s.initialized }

// Dispose drops the scenes. Meshes are owned by whoever added them and must
// be disposed first.
func (s *Stage) Dispose() {
	if !s.initialized || s.disposed {
		return
	}
	s.disposed = true
	if n := s.main.Len() + s.edge.Len(); n > 0 {
		s.log.Warn("disposing stage with meshes still attached", "meshes", n)
	}
	s.main = renderer.NewScene()
	s.edge = renderer.NewScene()
}

package renderer

import (
	"toon-outline/internal/graphics"
	"toon-outline/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names the renderer supplies to every program.
const (
	UniformProjection = "projectionMatrix"
	UniformView       = "viewMatrix"
	UniformModel      = "modelMatrix"
)

// Renderer draws scenes through a graphics.Device
type Renderer struct {
	device graphics.Device

	clearColor mgl32.Vec3
	pixelRatio float32
	width      int
	height     int

	// AutoClear clears before every Render call. The outline passes draw two
	// scenes into one frame, so the stage turns it off and clears once.
	AutoClear bool
}

// NewRenderer creates a renderer with a 1:1 pixel ratio and auto clear on
func NewRenderer(device graphics.Device) *Renderer {
	return &Renderer{
		device:     device,
		pixelRatio: 1,
		AutoClear:  true,
	}
}

// Device returns the device the renderer draws with
func (r *Renderer) Device() graphics.Device {
	return r.device
}

func (r *Renderer) SetClearColor(c mgl32.Vec3) {
	r.clearColor = c
	r.device.SetClearColor(c.Vec4(1))
}

func (r *Renderer) ClearColor() mgl32.Vec3 {
	return r.clearColor
}

// SetPixelRatio sets the framebuffer-to-window scale and reapplies the size
func (r *Renderer) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		ratio = 1
	}
	r.pixelRatio = ratio
	if r.width > 0 && r.height > 0 {
		r.SetSize(r.width, r.height)
	}
}

func (r *Renderer) PixelRatio() float32 {
	return r.pixelRatio
}

// SetSize sets the logical size and the device viewport in framebuffer pixels
func (r *Renderer) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	w, h := r.DrawingBufferSize()
	r.device.SetViewport(0, 0, int32(w), int32(h))
}

// Size returns the logical size last passed to SetSize
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// DrawingBufferSize returns the size in framebuffer pixels
func (r *Renderer) DrawingBufferSize() (int, int) {
	return int(float32(r.width)*r.pixelRatio + 0.5), int(float32(r.height)*r.pixelRatio + 0.5)
}

// Clear clears color and depth
func (r *Renderer) Clear() {
	r.device.Clear()
}

// Render draws every visible mesh of scene as seen by cam
func (r *Renderer) Render(scene *Scene, cam *graphics.Camera) {
	defer profiling.Track("renderer.Render")()

	if r.AutoClear {
		r.device.Clear()
	}
	view := cam.GetViewMatrix()
	proj := cam.GetProjectionMatrix()

	for _, m := range scene.Meshes() {
		if !m.Visible || m.Material == nil || m.Material.Disposed() || m.Geometry == nil {
			continue
		}
		mat := m.Material
		r.device.SetSide(mat.Side)
		r.device.SetWireframe(mat.Wireframe)
		r.device.SetBlending(mat.Transparent)

		prog := mat.Program
		prog.Use()
		prog.SetMatrix4(UniformProjection, &proj[0])
		prog.SetMatrix4(UniformView, &view[0])
		prog.SetMatrix4(UniformModel, &m.Model[0])
		if mat.Uniforms != nil {
			mat.Uniforms.Apply(prog)
		}
		m.Geometry.Draw()
	}
}

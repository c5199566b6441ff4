package ui

import (
	"fmt"

	"toon-outline/internal/graphics"
	"toon-outline/internal/graphics/renderer"
	"toon-outline/internal/profiling"
	"toon-outline/internal/ui/widget"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	ShadersDir = "assets/shaders/ui"
	fontPixels = 32
)

var rectShaders = graphics.ShaderSource{Dir: ShadersDir, Vertex: "ui.vert", Fragment: "ui.frag"}

// Layer is something drawn on top of the 3D scene each frame.
type Layer interface {
	Draw(c widget.Canvas)
}

// UI draws screen-space rectangles and text and implements widget.Canvas.
type UI struct {
	shader *graphics.Shader
	font   *graphics.FontRenderer
	vao    uint32
	vbo    uint32

	width, height float32
	layers        []Layer
}

// NewUI creates a new UI renderable
func NewUI() *UI {
	return &UI{width: 1, height: 1}
}

// Init compiles the UI shaders, bakes the font atlas and sets up the rect buffer
func (u *UI) Init() error {
	vert, frag, err := rectShaders.Load()
	if err != nil {
		return err
	}
	u.shader, err = graphics.NewShaderFromSource(vert, frag)
	if err != nil {
		return fmt.Errorf("ui shader: %w", err)
	}

	atlas, err := graphics.BuildDefaultFontAtlas(fontPixels)
	if err != nil {
		return err
	}
	fontShaders := graphics.ShaderSource{Dir: ShadersDir, Vertex: "font.vert", Fragment: "font.frag"}
	u.font, err = graphics.NewFontRenderer(atlas, fontShaders)
	if err != nil {
		return err
	}
	u.font.SetViewport(int(u.width), int(u.height))

	gl.GenVertexArrays(1, &u.vao)
	gl.GenBuffers(1, &u.vbo)
	gl.BindVertexArray(u.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, u.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 6*2*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return nil
}

// AddLayer registers l to be drawn on every Render
func (u *UI) AddLayer(l Layer) {
	u.layers = append(u.layers, l)
}

// SetViewport sets the window size in pixels used for the NDC conversion
func (u *UI) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	u.width, u.height = float32(width), float32(height)
	if u.font != nil {
		u.font.SetViewport(width, height)
	}
}

// Render draws every layer over the current frame
func (u *UI) Render(ctx renderer.RenderContext) {
	if u.shader == nil {
		return
	}
	defer profiling.Track("ui.Render")()
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	for _, l := range u.layers {
		l.Draw(u)
	}
}

// Dispose cleans up OpenGL resources
func (u *UI) Dispose() {
	if u.vao != 0 {
		gl.DeleteVertexArrays(1, &u.vao)
		u.vao = 0
	}
	if u.vbo != 0 {
		gl.DeleteBuffers(1, &u.vbo)
		u.vbo = 0
	}
	if u.font != nil {
		u.font.Dispose()
		u.font = nil
	}
	if u.shader != nil {
		u.shader.Delete()
		u.shader = nil
	}
}

// DrawFilledRect draws a screen-space rectangle (pixels, top-left origin) with RGBA color.
func (u *UI) DrawFilledRect(x, y, w, h float32, color mgl32.Vec3, alpha float32) {
	x0 := (x/u.width)*2 - 1
	y0 := 1 - (y/u.height)*2
	x1 := ((x+w)/u.width)*2 - 1
	y1 := 1 - ((y+h)/u.height)*2
	verts := []float32{
		x0, y0,
		x1, y0,
		x1, y1,
		x0, y0,
		x1, y1,
		x0, y1,
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	u.shader.Use()
	u.shader.SetVector4("uColor", color.X(), color.Y(), color.Z(), alpha)

	gl.BindVertexArray(u.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, u.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// DrawText draws text with its baseline at y.
func (u *UI) DrawText(text string, x, y, scale float32, color mgl32.Vec3) {
	if u.font == nil {
		return
	}
	u.font.Render(text, x, y, scale, color)
}

func (u *UI) MeasureText(text string, scale float32) (float32, float32) {
	if u.font == nil {
		return 0, 0
	}
	return u.font.Measure(text, scale)
}

package graphics

import (
	"fmt"

	"toon-outline/internal/geometry"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GLDevice issues calls against the current OpenGL 4.1 context. All methods
// must run on the thread that owns the context.
type GLDevice struct{}

// NewGLDevice configures fixed pipeline state and returns the device.
// gl.Init must have been called.
func NewGLDevice() *GLDevice {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.FrontFace(gl.CCW)
	return &GLDevice{}
}

func (d *GLDevice) NewProgram(vertexSrc, fragmentSrc string) (Program, error) {
	s, err := NewShaderFromSource(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (d *GLDevice) NewVertexArray(g *geometry.Geometry) (VertexArray, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("upload geometry: %w", err)
	}
	va := &glVertexArray{count: int32(g.IndexCount())}
	data := g.Interleaved()

	gl.GenVertexArrays(1, &va.vao)
	gl.BindVertexArray(va.vao)

	gl.GenBuffers(1, &va.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, va.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.GenBuffers(1, &va.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, va.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)

	// position, normal, uv
	const stride = 8 * 4
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return va, nil
}

func (d *GLDevice) SetViewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *GLDevice) SetClearColor(c mgl32.Vec4) {
	gl.ClearColor(c.X(), c.Y(), c.Z(), c.W())
}

func (d *GLDevice) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *GLDevice) SetSide(s Side) {
	switch s {
	case FrontSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	case BackSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	default:
		gl.Disable(gl.CULL_FACE)
	}
}

func (d *GLDevice) SetWireframe(enabled bool) {
	if enabled {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (d *GLDevice) SetBlending(enabled bool) {
	if enabled {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
}

type glVertexArray struct {
	vao, vbo, ebo uint32
	count         int32
}

func (va *glVertexArray) Draw() {
	gl.BindVertexArray(va.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, va.count, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

func (va *glVertexArray) Delete() {
	if va.ebo != 0 {
		gl.DeleteBuffers(1, &va.ebo)
		va.ebo = 0
	}
	if va.vbo != 0 {
		gl.DeleteBuffers(1, &va.vbo)
		va.vbo = 0
	}
	if va.vao != 0 {
		gl.DeleteVertexArrays(1, &va.vao)
		va.vao = 0
	}
}

func (va *glVertexArray) IndexCount() int {
	return int(va.count)
}

package graphics

import (
	"toon-outline/internal/geometry"

	"github.com/go-gl/mathgl/mgl32"
)

// Side selects which faces a material rasterizes.
type Side int

const (
	// FrontSide draws front faces and culls back faces.
	FrontSide Side = iota
	// BackSide draws back faces and culls front faces.
	BackSide
	// DoubleSide draws both.
	DoubleSide
)

func (s Side) String() string {
	switch s {
	case FrontSide:
		return "front"
	case BackSide:
		return "back"
	case DoubleSide:
		return "double"
	}
	return "unknown"
}

// UniformSetter writes named uniforms into the currently used program.
type UniformSetter interface {
	SetBool(name string, value bool)
	SetFloat(name string, value float32)
	SetVector2(name string, x, y float32)
	SetVector3(name string, x, y, z float32)
	SetMatrix4(name string, value *float32)
}

// Program is a linked shader program.
type Program interface {
	UniformSetter
	Use()
	Delete()
}

// VertexArray is uploaded geometry ready for an indexed draw.
type VertexArray interface {
	Draw()
	Delete()
	IndexCount() int
}

// Device is the slice of the GPU API the renderer needs. GLDevice implements it
// for a live context; gfxtest.Recorder records calls for tests.
type Device interface {
	NewProgram(vertexSrc, fragmentSrc string) (Program, error)
	NewVertexArray(g *geometry.Geometry) (VertexArray, error)

	SetViewport(x, y, width, height int32)
	SetClearColor(c mgl32.Vec4)
	Clear()

	SetSide(s Side)
	SetWireframe(enabled bool)
	SetBlending(enabled bool)
}

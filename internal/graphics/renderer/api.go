package renderer

import (
	"toon-outline/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext provides shared per-frame context for all renderables
type RenderContext struct {
	Camera *graphics.Camera
	DT     float64
	View   mgl32.Mat4
	Proj   mgl32.Mat4
}

// Renderable is a feature drawn once per frame that owns GPU resources
type Renderable interface {
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}

// UniformBlock writes a material's custom uniforms into its program.
type UniformBlock interface {
	Apply(u graphics.UniformSetter)
}

// Material pairs a program with the state it is drawn under. One material may
// be shared by several meshes; state changes are seen by all of them.
type Material struct {
	Program     graphics.Program
	Uniforms    UniformBlock
	Side        graphics.Side
	Wireframe   bool
	Transparent bool

	disposed bool
}

// Dispose deletes the program. Calling it again is a no-op.
func (m *Material) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	if m.Program != nil {
		m.Program.Delete()
	}
}

// Disposed reports whether Dispose has run.
func (m *Material) Disposed() bool {
	return m.disposed
}

// Mesh places geometry with a material in a scene.
type Mesh struct {
	Name     string
	Geometry graphics.VertexArray
	Material *Material
	Model    mgl32.Mat4
	Visible  bool
}

func NewMesh(name string, geom graphics.VertexArray, mat *Material) *Mesh {
	return &Mesh{
		Name:     name,
		Geometry: geom,
		Material: mat,
		Model:    mgl32.Ident4(),
		Visible:  true,
	}
}

// Scene is an ordered list of meshes drawn front to back in insertion order.
type Scene struct {
	meshes []*Mesh
}

func NewScene() *Scene {
	return &Scene{}
}

// Add appends m unless it is already present.
func (s *Scene) Add(m *Mesh) {
	if s.Contains(m) {
		return
	}
	s.meshes = append(s.meshes, m)
}

// Remove drops m and reports whether it was present.
func (s *Scene) Remove(m *Mesh) bool {
	for i, cur := range s.meshes {
		if cur == m {
			s.meshes = append(s.meshes[:i], s.meshes[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scene) Contains(m *Mesh) bool {
	for _, cur := range s.meshes {
		if cur == m {
			return true
		}
	}
	return false
}

// Meshes returns the scene contents; callers must not modify the slice.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

func (s *Scene) Len() int {
	return len(s.meshes)
}

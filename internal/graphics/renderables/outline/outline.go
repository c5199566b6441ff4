// Package outline draws a mesh with a cartoon edge using two passes over a
// shared material: the surface with back faces culled, then an inflated copy
// with front faces culled so only a rim shows around the silhouette.
package outline

import (
	"errors"
	"fmt"
	"log/slog"

	"toon-outline/internal/geometry"
	"toon-outline/internal/graphics"
	"toon-outline/internal/graphics/renderer"
	"toon-outline/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrAlreadyInitialized = errors.New("outline: already initialized")
	ErrNotInitialized     = errors.New("outline: not initialized")
)

// Pass is one phase of the outline render.
type Pass int

const (
	PassFront Pass = iota
	PassBack
)

// Passes lists the phases in the only order that produces an outline.
var Passes = [...]Pass{PassFront, PassBack}

func (p Pass) String() string {
	switch p {
	case PassFront:
		return "front"
	case PassBack:
		return "back"
	}
	return fmt.Sprintf("Pass(%d)", int(p))
}

// Stage is where the mesh pair lives and how it gets drawn.
type Stage interface {
	MainScene() *renderer.Scene
	EdgeScene() *renderer.Scene
	Draw(scene *renderer.Scene)
}

// ShaderLoader returns vertex and fragment source. graphics.ShaderSource
// reads them from disk.
type ShaderLoader interface {
	Load() (vertex, fragment string, err error)
}

// GeometrySource produces a fresh geometry on every rebuild.
type GeometrySource func() (*geometry.Geometry, error)

func TorusSource(p geometry.TorusParams) GeometrySource {
	return func() (*geometry.Geometry, error) {
		return geometry.NewTorus(p)
	}
}

// StaticSource always yields g. Each rebuild uploads it again.
func StaticSource(g *geometry.Geometry) GeometrySource {
	return func() (*geometry.Geometry, error) {
		return g, nil
	}
}

// Params are the rebuild inputs exposed to the panel and key bindings.
type Params struct {
	Edge      bool
	Wireframe bool
	Color     mgl32.Vec3
}

// OutlineMesh owns one geometry, one material and the main/edge mesh pair
// sharing them.
type OutlineMesh struct {
	device  graphics.Device
	stage   Stage
	shaders ShaderLoader
	source  GeometrySource
	log     *slog.Logger

	params   Params
	Uniforms Uniforms

	width, height         int
	halfWidth, halfHeight float32

	geometry graphics.VertexArray
	material *renderer.Material
	main     *renderer.Mesh
	edge     *renderer.Mesh

	initialized bool
	disposed    bool
	rebuilds    int
}

func New(device graphics.Device, stage Stage, shaders ShaderLoader, source GeometrySource, params Params, uniforms Uniforms, log *slog.Logger) *OutlineMesh {
	uniforms.GlobalColor = params.Color
	return &OutlineMesh{
		device:   device,
		stage:    stage,
		shaders:  shaders,
		source:   source,
		params:   params,
		Uniforms: uniforms,
		log:      log.With("component", "outline"),
	}
}

// Init records the viewport size and builds the first mesh pair.
func (m *OutlineMesh) Init(width, height int) error {
	if m.initialized {
		return ErrAlreadyInitialized
	}
	m.OnResize(width, height)
	m.initialized = true
	if err := m.Rebuild(); err != nil {
		m.initialized = false
		return err
	}
	return nil
}

// Rebuild replaces the geometry and material with fresh ones built from the
// current parameters. The new resources are created first; if that fails the
// current pair stays attached and the error is returned. Otherwise the old
// resources are released before the new meshes are attached.
func (m *OutlineMesh) Rebuild() error {
	if !m.initialized || m.disposed {
		return ErrNotInitialized
	}
	defer profiling.Track("outline.Rebuild")()

	g, err := m.source()
	if err != nil {
		return fmt.Errorf("build geometry: %w", err)
	}
	va, err := m.device.NewVertexArray(g)
	if err != nil {
		return fmt.Errorf("upload geometry: %w", err)
	}
	vertexSrc, fragmentSrc, err := m.shaders.Load()
	if err != nil {
		va.Delete()
		return fmt.Errorf("load shaders: %w", err)
	}
	prog, err := m.device.NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
		va.Delete()
		return fmt.Errorf("build material: %w", err)
	}
	mat := &renderer.Material{
		Program:     prog,
		Uniforms:    &m.Uniforms,
		Side:        graphics.DoubleSide,
		Wireframe:   m.params.Wireframe,
		Transparent: true,
	}

	m.release()

	m.geometry = va
	m.material = mat
	m.main = renderer.NewMesh("main", va, mat)
	m.stage.MainScene().Add(m.main)
	if m.params.Edge {
		m.edge = renderer.NewMesh("edge", va, mat)
		m.stage.EdgeScene().Add(m.edge)
	}
	m.rebuilds++

	m.log.Debug("rebuilt",
		"edge", m.params.Edge,
		"wireframe", m.params.Wireframe,
		"indices", va.IndexCount(),
		"rebuilds", m.rebuilds)
	return nil
}

// release detaches the meshes and deletes the material and geometry.
func (m *OutlineMesh) release() {
	if m.main != nil {
		m.stage.MainScene().Remove(m.main)
		m.main = nil
	}
	if m.edge != nil {
		m.stage.EdgeScene().Remove(m.edge)
		m.edge = nil
	}
	if m.material != nil {
		m.material.Dispose()
		m.material = nil
	}
	if m.geometry != nil {
		m.geometry.Delete()
		m.geometry = nil
	}
}

// OnResize stores the viewport size and updates u_resolution.
func (m *OutlineMesh) OnResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width, m.height = width, height
	m.halfWidth, m.halfHeight = float32(width)/2, float32(height)/2
	m.Uniforms.Resolution = mgl32.Vec2{float32(width), float32(height)}
}

// SetPixelRatio records the framebuffer to window scale so the shader can map
// gl_FragCoord back to the window pixels u_resolution and u_mouse use.
func (m *OutlineMesh) SetPixelRatio(pr float32) {
	if pr <= 0 {
		pr = 1
	}
	m.Uniforms.PixelRatio = pr
}

// OnMouseMove stores raw cursor coordinates in u_mouse.
func (m *OutlineMesh) OnMouseMove(x, y float64) {
	m.Uniforms.Mouse = mgl32.Vec2{float32(x), float32(y)}
}

// Render draws both passes in order. Side and the edge flag are state on the
// shared material, so each pass sets them just before its scene is drawn.
func (m *OutlineMesh) Render() {
	if m.material == nil {
		return
	}
	defer profiling.Track("outline.Render")()
	for _, p := range Passes {
		m.renderPass(p)
	}
}

func (m *OutlineMesh) renderPass(p Pass) {
	switch p {
	case PassFront:
		m.material.Side = graphics.FrontSide
		m.Uniforms.IsEdge = false
		m.stage.Draw(m.stage.MainScene())
	case PassBack:
		m.material.Side = graphics.BackSide
		m.Uniforms.IsEdge = true
		m.stage.Draw(m.stage.EdgeScene())
	}
}

// OnFrame advances u_time and renders.
func (m *OutlineMesh) OnFrame(dt float64) {
	m.Uniforms.Time += float32(dt)
	m.Render()
}

// Dispose detaches and deletes everything the mesh owns. Safe to call twice.
func (m *OutlineMesh) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.release()
}

func (m *OutlineMesh) Params() Params { return m.params }

func (m *OutlineMesh) SetEdge(enabled bool) { m.params.Edge = enabled }

func (m *OutlineMesh) SetWireframe(enabled bool) { m.params.Wireframe = enabled }

// SetColor sets the base color parameter and u_globalColor.
func (m *OutlineMesh) SetColor(r, g, b float32) {
	m.params.Color = mgl32.Vec3{r, g, b}
	m.Uniforms.GlobalColor = m.params.Color
}

// SetColorChannel sets one of r, g, b (0, 1, 2) and rebuilds u_globalColor
// from all three.
func (m *OutlineMesh) SetColorChannel(ch int, v float32) {
	if ch < 0 || ch > 2 {
		return
	}
	c := m.params.Color
	c[ch] = v
	m.SetColor(c[0], c[1], c[2])
}

// SetGeometrySource swaps what the next Rebuild builds.
func (m *OutlineMesh) SetGeometrySource(src GeometrySource) {
	if src != nil {
		m.source = src
	}
}

// Rebuilds counts successful rebuilds, including the one done by Init.
func (m *OutlineMesh) Rebuilds() int { return m.rebuilds }

func (m *OutlineMesh) Size() (width, height int) { return m.width, m.height }

func (m *OutlineMesh) HalfSize() (float32, float32) { return m.halfWidth, m.halfHeight }

// Meshes returns the current main and edge meshes; edge is nil when the edge
// was disabled at the last rebuild.
func (m *OutlineMesh) Meshes() (main, edge *renderer.Mesh) { return m.main, m.edge }

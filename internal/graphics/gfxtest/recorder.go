// Package gfxtest provides a graphics.Device that records calls instead of
// talking to a GPU.
package gfxtest

import (
	"errors"
	"unsafe"

	"toon-outline/internal/geometry"
	"toon-outline/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrCompile is returned by NewProgram while FailCompile is set.
var ErrCompile = errors.New("gfxtest: compile failed")

// Draw is one recorded indexed draw with the state it was issued under.
type Draw struct {
	Program     *Program
	VertexArray *VertexArray
	Side        graphics.Side
	Wireframe   bool
	Blending    bool
	// Uniforms is a copy of the program's uniforms at draw time.
	Uniforms map[string]any
}

// Bool returns a recorded bool uniform.
func (d Draw) Bool(name string) bool {
	v, _ := d.Uniforms[name].(bool)
	return v
}

// Recorder implements graphics.Device.
type Recorder struct {
	FailCompile bool

	Viewport   [4]int32
	ClearColor mgl32.Vec4
	Clears     int
	Draws      []Draw
	// Events is the ordered log of clears and draws: "clear" or "draw:<side>".
	Events []string

	Programs     []*Program
	VertexArrays []*VertexArray

	side      graphics.Side
	wireframe bool
	blending  bool
	current   *Program
}

func New() *Recorder {
	return &Recorder{side: graphics.DoubleSide}
}

func (r *Recorder) NewProgram(vertexSrc, fragmentSrc string) (graphics.Program, error) {
	if r.FailCompile {
		return nil, ErrCompile
	}
	p := &Program{rec: r, VertexSource: vertexSrc, FragmentSource: fragmentSrc, Uniforms: make(map[string]any)}
	r.Programs = append(r.Programs, p)
	return p, nil
}

func (r *Recorder) NewVertexArray(g *geometry.Geometry) (graphics.VertexArray, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	va := &VertexArray{rec: r, Vertices: g.VertexCount(), Indices: g.IndexCount()}
	r.VertexArrays = append(r.VertexArrays, va)
	return va, nil
}

func (r *Recorder) SetViewport(x, y, width, height int32) {
	r.Viewport = [4]int32{x, y, width, height}
}

func (r *Recorder) SetClearColor(c mgl32.Vec4) { r.ClearColor = c }
func (r *Recorder) SetSide(s graphics.Side)    { r.side = s }
func (r *Recorder) SetWireframe(enabled bool)  { r.wireframe = enabled }
func (r *Recorder) SetBlending(enabled bool)   { r.blending = enabled }

func (r *Recorder) Clear() {
	r.Clears++
	r.Events = append(r.Events, "clear")
}

// Reset drops recorded draws, clears and events, keeping resources.
func (r *Recorder) Reset() {
	r.Draws = nil
	r.Clears = 0
	r.Events = nil
}

// LivePrograms counts programs not yet deleted.
func (r *Recorder) LivePrograms() int {
	n := 0
	for _, p := range r.Programs {
		if !p.Deleted {
			n++
		}
	}
	return n
}

// LiveVertexArrays counts vertex arrays not yet deleted.
func (r *Recorder) LiveVertexArrays() int {
	n := 0
	for _, va := range r.VertexArrays {
		if !va.Deleted {
			n++
		}
	}
	return n
}

// Program records uniform writes.
type Program struct {
	rec            *Recorder
	VertexSource   string
	FragmentSource string
	Uniforms       map[string]any
	Deleted        bool
}

func (p *Program) Use() { p.rec.current = p }

func (p *Program) Delete() {
	if p.Deleted {
		panic("gfxtest: program deleted twice")
	}
	p.Deleted = true
}

func (p *Program) SetBool(name string, value bool)      { p.Uniforms[name] = value }
func (p *Program) SetFloat(name string, value float32)  { p.Uniforms[name] = value }
func (p *Program) SetVector2(name string, x, y float32) { p.Uniforms[name] = mgl32.Vec2{x, y} }
func (p *Program) SetVector3(name string, x, y, z float32) {
	p.Uniforms[name] = mgl32.Vec3{x, y, z}
}

func (p *Program) SetMatrix4(name string, value *float32) {
	var m mgl32.Mat4
	copy(m[:], (*[16]float32)(unsafe.Pointer(value))[:])
	p.Uniforms[name] = m
}

// VertexArray records draws against the recorder's current state.
type VertexArray struct {
	rec      *Recorder
	Vertices int
	Indices  int
	Deleted  bool
}

func (va *VertexArray) Draw() {
	if va.Deleted {
		panic("gfxtest: draw of deleted vertex array")
	}
	r := va.rec
	d := Draw{
		Program:     r.current,
		VertexArray: va,
		Side:        r.side,
		Wireframe:   r.wireframe,
		Blending:    r.blending,
		Uniforms:    make(map[string]any),
	}
	if r.current != nil {
		if r.current.Deleted {
			panic("gfxtest: draw with deleted program")
		}
		for k, v := range r.current.Uniforms {
			d.Uniforms[k] = v
		}
	}
	r.Draws = append(r.Draws, d)
	r.Events = append(r.Events, "draw:"+d.Side.String())
}

func (va *VertexArray) Delete() {
	if va.Deleted {
		panic("gfxtest: vertex array deleted twice")
	}
	va.Deleted = true
}

func (va *VertexArray) IndexCount() int { return va.Indices }

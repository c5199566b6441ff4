// Package geometry builds indexed triangle meshes on the CPU. Nothing here
// touches the GPU; upload happens in graphics.Device.
package geometry

import (
	"errors"

	"github.com/chewxy/math32"
)

// ErrEmpty is returned when a mesh has no drawable triangles.
var ErrEmpty = errors.New("geometry has no triangles")

// Geometry is an indexed triangle list. Positions and Normals hold three
// floats per vertex, UVs two.
type Geometry struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// IndexCount returns the number of indices (three per triangle).
func (g *Geometry) IndexCount() int {
	return len(g.Indices)
}

// Interleaved packs position, normal and uv into one buffer with a stride of
// 8 floats, the layout graphics.GLDevice uploads.
func (g *Geometry) Interleaved() []float32 {
	n := g.VertexCount()
	out := make([]float32, 0, n*8)
	for i := 0; i < n; i++ {
		out = append(out, g.Positions[i*3:i*3+3]...)
		if len(g.Normals) >= (i+1)*3 {
			out = append(out, g.Normals[i*3:i*3+3]...)
		} else {
			out = append(out, 0, 0, 0)
		}
		if len(g.UVs) >= (i+1)*2 {
			out = append(out, g.UVs[i*2:i*2+2]...)
		} else {
			out = append(out, 0, 0)
		}
	}
	return out
}

// Validate checks that the buffers agree with each other.
func (g *Geometry) Validate() error {
	if len(g.Positions) == 0 || len(g.Indices) < 3 {
		return ErrEmpty
	}
	if len(g.Positions)%3 != 0 || len(g.Indices)%3 != 0 {
		return errors.New("geometry buffers are not multiples of 3")
	}
	if len(g.Normals) != 0 && len(g.Normals) != len(g.Positions) {
		return errors.New("normal count does not match vertex count")
	}
	n := uint32(g.VertexCount())
	for _, idx := range g.Indices {
		if idx >= n {
			return errors.New("index out of range")
		}
	}
	return nil
}

// Scale multiplies every position by s.
func (g *Geometry) Scale(s float32) {
	for i := range g.Positions {
		g.Positions[i] *= s
	}
}

// ComputeNormals fills Normals with area-weighted vertex normals.
func (g *Geometry) ComputeNormals() {
	g.Normals = make([]float32, len(g.Positions))
	for t := 0; t+2 < len(g.Indices); t += 3 {
		a, b, c := g.Indices[t], g.Indices[t+1], g.Indices[t+2]
		ax, ay, az := g.vertex(a)
		bx, by, bz := g.vertex(b)
		cx, cy, cz := g.vertex(c)
		// (b-a) x (c-a)
		ux, uy, uz := bx-ax, by-ay, bz-az
		vx, vy, vz := cx-ax, cy-ay, cz-az
		nx := uy*vz - uz*vy
		ny := uz*vx - ux*vz
		nz := ux*vy - uy*vx
		for _, i := range [3]uint32{a, b, c} {
			g.Normals[i*3] += nx
			g.Normals[i*3+1] += ny
			g.Normals[i*3+2] += nz
		}
	}
	for i := 0; i+2 < len(g.Normals); i += 3 {
		l := math32.Sqrt(g.Normals[i]*g.Normals[i] + g.Normals[i+1]*g.Normals[i+1] + g.Normals[i+2]*g.Normals[i+2])
		if l > 0 {
			g.Normals[i] /= l
			g.Normals[i+1] /= l
			g.Normals[i+2] /= l
		}
	}
}

func (g *Geometry) vertex(i uint32) (float32, float32, float32) {
	return g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]
}

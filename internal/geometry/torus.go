package geometry

import (
	"fmt"

	"github.com/chewxy/math32"
)

// TorusParams describes a parametric torus lying in the XY plane.
type TorusParams struct {
	Radius          float32 // center of the torus to center of the tube
	Tube            float32 // tube radius
	RadialSegments  int
	TubularSegments int
	Arc             float32 // central angle, 0 means a full 2π
}

// TorusVertexCount is the number of vertices NewTorus emits for the given segments.
func TorusVertexCount(radialSegments, tubularSegments int) int {
	return (radialSegments + 1) * (tubularSegments + 1)
}

// TorusIndexCount is the number of indices NewTorus emits for the given segments.
func TorusIndexCount(radialSegments, tubularSegments int) int {
	return radialSegments * tubularSegments * 6
}

// NewTorus builds a torus with a seam column and row duplicated so that uvs wrap.
func NewTorus(p TorusParams) (*Geometry, error) {
	if p.Radius <= 0 || p.Tube <= 0 {
		return nil, fmt.Errorf("torus radius %v and tube %v must be positive", p.Radius, p.Tube)
	}
	if p.RadialSegments < 2 || p.TubularSegments < 3 {
		return nil, fmt.Errorf("torus segments %d/%d too small", p.RadialSegments, p.TubularSegments)
	}
	arc := p.Arc
	if arc <= 0 {
		arc = 2 * math32.Pi
	}

	nv := TorusVertexCount(p.RadialSegments, p.TubularSegments)
	g := &Geometry{
		Positions: make([]float32, 0, nv*3),
		Normals:   make([]float32, 0, nv*3),
		UVs:       make([]float32, 0, nv*2),
		Indices:   make([]uint32, 0, TorusIndexCount(p.RadialSegments, p.TubularSegments)),
	}

	for j := 0; j <= p.RadialSegments; j++ {
		v := float32(j) / float32(p.RadialSegments) * 2 * math32.Pi
		cosV, sinV := math32.Cos(v), math32.Sin(v)
		for i := 0; i <= p.TubularSegments; i++ {
			u := float32(i) / float32(p.TubularSegments) * arc
			cosU, sinU := math32.Cos(u), math32.Sin(u)

			x := (p.Radius + p.Tube*cosV) * cosU
			y := (p.Radius + p.Tube*cosV) * sinU
			z := p.Tube * sinV
			g.Positions = append(g.Positions, x, y, z)

			// normal points from the tube center ring to the vertex
			nx, ny, nz := x-p.Radius*cosU, y-p.Radius*sinU, z
			l := math32.Sqrt(nx*nx + ny*ny + nz*nz)
			g.Normals = append(g.Normals, nx/l, ny/l, nz/l)

			g.UVs = append(g.UVs, float32(i)/float32(p.TubularSegments), float32(j)/float32(p.RadialSegments))
		}
	}

	row := uint32(p.TubularSegments + 1)
	for j := uint32(1); j <= uint32(p.RadialSegments); j++ {
		for i := uint32(1); i <= uint32(p.TubularSegments); i++ {
			a := row*j + i - 1
			b := row*(j-1) + i - 1
			c := row*(j-1) + i
			d := row*j + i
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	return g, nil
}

// Package asset turns decoded model files into renderable geometry and loads
// them off the render thread.
package asset

import (
	"errors"
	"fmt"

	"toon-outline/internal/geometry"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/udhos/gwob"
)

// ErrNoGeometry is returned for models without a single triangle.
var ErrNoGeometry = errors.New("model has no triangles")

// ToGeometry unpacks gwob's interleaved vertex buffer into one indexed mesh.
// gwob has already shared identical position/uv/normal triples and split quads
// into triangles. Models without normals get computed smooth normals.
func ToGeometry(o *gwob.Obj) (*geometry.Geometry, error) {
	if len(o.Indices) < 3 || o.StrideSize == 0 {
		return nil, ErrNoGeometry
	}

	stride := o.StrideSize / 4
	n := len(o.Coord) / stride
	g := &geometry.Geometry{
		Positions: make([]float32, 3*n),
		Normals:   make([]float32, 3*n),
		UVs:       make([]float32, 2*n),
		Indices:   make([]uint32, 0, len(o.Indices)),
	}
	pos := o.StrideOffsetPosition / 4
	uv := o.StrideOffsetTexture / 4
	nrm := o.StrideOffsetNormal / 4
	for i := 0; i < n; i++ {
		v := o.Coord[i*stride : (i+1)*stride]
		copy(g.Positions[3*i:3*i+3], v[pos:pos+3])
		if o.TextCoordFound {
			copy(g.UVs[2*i:2*i+2], v[uv:uv+2])
		}
		if o.NormCoordFound {
			copy(g.Normals[3*i:3*i+3], v[nrm:nrm+3])
		}
	}

	for _, idx := range o.Indices[:len(o.Indices)/3*3] {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("index %d out of range for %d vertices", idx, n)
		}
		g.Indices = append(g.Indices, uint32(idx))
	}

	if !o.NormCoordFound {
		g.ComputeNormals()
	}
	return g, nil
}

// Diffuse returns the Kd of the first non-empty group whose material is in lib.
// gwob leaves Kd at zero when the MTL omits it, so a zero Kd counts as absent.
func Diffuse(o *gwob.Obj, lib gwob.MaterialLib) (mgl32.Vec3, bool) {
	for _, g := range o.Groups {
		if g.IndexCount <= 0 || g.Usemtl == "" {
			continue
		}
		mat, ok := lib.Lib[g.Usemtl]
		if !ok || mat.Kd == [3]float32{} {
			continue
		}
		return mgl32.Vec3(mat.Kd), true
	}
	return mgl32.Vec3{}, false
}

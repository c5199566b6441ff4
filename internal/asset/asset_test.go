package asset

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/udhos/gwob"
)

const cubeOBJ = `mtllib cube.mtl
v -1 -1 -1
v  1 -1 -1
v  1  1 -1
v -1  1 -1
v -1 -1  1
v  1 -1  1
v  1  1  1
v -1  1  1
usemtl orange
f 1 4 3 2
f 5 6 7 8
f 1 2 6 5
f 2 3 7 6
f 3 4 8 7
f 4 1 5 8
`

const cubeMTL = `newmtl orange
Kd 0.9 0.5 0.0
`

func writeCube(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cube.obj"), []byte(cubeOBJ), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cube.mtl"), []byte(cubeMTL), 0o644))
	return filepath.Join(dir, "cube.obj")
}

func TestToGeometryTriangulatesAndSharesVertices(t *testing.T) {
	o, err := gwob.NewObjFromBuf("cube", []byte(cubeOBJ), &gwob.ObjParserOptions{})
	require.NoError(t, err)

	g, err := ToGeometry(o)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	assert.Equal(t, 8, g.VertexCount())
	assert.Equal(t, 6*2*3, g.IndexCount())
	// computed normals point away from the center on a cube
	for i := 0; i < g.VertexCount(); i++ {
		p := mgl32.Vec3{g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]}
		n := mgl32.Vec3{g.Normals[i*3], g.Normals[i*3+1], g.Normals[i*3+2]}
		assert.Greater(t, p.Dot(n), float32(0))
		assert.InDelta(t, 1, n.Len(), 1e-5)
	}
}

func TestToGeometryEmpty(t *testing.T) {
	_, err := ToGeometry(&gwob.Obj{})
	assert.ErrorIs(t, err, ErrNoGeometry)

	o, err := gwob.NewObjFromBuf("empty", []byte("# nothing\nv 0 0 0\n"), &gwob.ObjParserOptions{})
	require.NoError(t, err)
	_, err = ToGeometry(o)
	assert.ErrorIs(t, err, ErrNoGeometry)
}

func TestToGeometryKeepsFileNormalsAndUVs(t *testing.T) {
	const tri = `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
`
	o, err := gwob.NewObjFromBuf("tri", []byte(tri), &gwob.ObjParserOptions{})
	require.NoError(t, err)

	g, err := ToGeometry(o)
	require.NoError(t, err)
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2}, g.Indices)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, g.Positions)
	assert.Equal(t, []float32{0, 0, 1, 0, 0, 1, 0, 0, 1}, g.Normals)
	assert.Equal(t, []float32{0, 0, 1, 0, 0, 1}, g.UVs)
}

func TestDiffuseSkipsUnknownAndMissingKd(t *testing.T) {
	const obj = `v 0 0 0
v 1 0 0
v 0 1 0
usemtl ghost
f 1 2 3
usemtl plain
f 1 3 2
usemtl orange
f 2 3 1
`
	o, err := gwob.NewObjFromBuf("groups", []byte(obj), &gwob.ObjParserOptions{})
	require.NoError(t, err)
	lib, err := gwob.ReadMaterialLibFromBuf([]byte("newmtl plain\nKa 0.1 0.1 0.1\nnewmtl orange\nKd 0.9 0.5 0.0\n"), &gwob.ObjParserOptions{})
	require.NoError(t, err)

	c, ok := Diffuse(o, lib)
	assert.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0.9, 0.5, 0.0}, c)

	_, ok = Diffuse(o, gwob.NewMaterialLib())
	assert.False(t, ok)
}

func TestLoadAppliesScaleAndColor(t *testing.T) {
	res := Load(LoadJob{OBJ: writeCube(t), Scale: 100})
	require.NoError(t, res.Err)

	assert.True(t, res.HasColor)
	assert.Equal(t, mgl32.Vec3{0.9, 0.5, 0.0}, res.Color)
	assert.Equal(t, float32(-100), res.Geometry.Positions[0])
}

func TestLoaderDeliversResults(t *testing.T) {
	l := NewLoader(slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer l.Shutdown()

	require.True(t, l.Submit(LoadJob{OBJ: writeCube(t)}))
	require.True(t, l.Submit(LoadJob{OBJ: filepath.Join(t.TempDir(), "missing.obj")}))

	var got []LoadResult
	require.Eventually(t, func() bool {
		if r, ok := l.Poll(); ok {
			got = append(got, r)
		}
		return len(got) == 2
	}, 5*time.Second, time.Millisecond)
	assert.NoError(t, got[0].Err)
	assert.NotNil(t, got[0].Geometry)
	assert.Error(t, got[1].Err)

	_, ok := l.Poll()
	assert.False(t, ok)
}

func TestSubmitAfterShutdown(t *testing.T) {
	l := NewLoader(slog.New(slog.NewTextHandler(io.Discard, nil)))
	l.Shutdown()
	assert.False(t, l.Submit(LoadJob{OBJ: "x.obj"}))
}

func TestLoadWithExplicitMTLPath(t *testing.T) {
	obj := writeCube(t)
	other := filepath.Join(t.TempDir(), "blank.mtl")
	require.NoError(t, os.WriteFile(other, []byte("newmtl orange\nKd 0.1 0.2 0.3\n"), 0o644))

	res := Load(LoadJob{OBJ: obj, MTL: other, Scale: 1})
	require.NoError(t, res.Err)
	assert.Equal(t, mgl32.Vec3{0.1, 0.2, 0.3}, res.Color)

	res = Load(LoadJob{OBJ: obj, MTL: "cube.mtl", Scale: 1})
	require.NoError(t, res.Err)
	assert.Equal(t, mgl32.Vec3{0.9, 0.5, 0.0}, res.Color)

	res = Load(LoadJob{OBJ: obj, MTL: "missing.mtl", Scale: 1})
	assert.Error(t, res.Err)
}

func TestLoadWithoutKdUsesNoColor(t *testing.T) {
	obj := writeCube(t)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(obj), "cube.mtl"), []byte("newmtl orange\nKa 0.2 0.2 0.2\n"), 0o644))

	res := Load(LoadJob{OBJ: obj, Scale: 1})
	require.NoError(t, res.Err)
	assert.False(t, res.HasColor)
}

func TestLoadToleratesMissingMtllib(t *testing.T) {
	obj := writeCube(t)
	require.NoError(t, os.Remove(filepath.Join(filepath.Dir(obj), "cube.mtl")))

	res := Load(LoadJob{OBJ: obj, Scale: 1})
	require.NoError(t, res.Err)
	assert.False(t, res.HasColor)
	assert.NotNil(t, res.Geometry)
}

func TestMaterialPath(t *testing.T) {
	cases := []struct {
		explicit, mtllib string
		want             string
		required         bool
	}{
		{"blank.mtl", "cube.mtl", filepath.Join("assets", "model", "blank.mtl"), true},
		{filepath.Join("assets", "materials", "blank.mtl"), "", filepath.Join("assets", "materials", "blank.mtl"), true},
		{"", "cube.mtl", filepath.Join("assets", "model", "cube.mtl"), false},
		{"", "", "", false},
	}
	for _, c := range cases {
		got, required := materialPath(filepath.Join("assets", "model"), c.explicit, c.mtllib)
		assert.Equal(t, c.want, got)
		assert.Equal(t, c.required, required)
	}
}

func TestLoadShippedCrate(t *testing.T) {
	res := Load(LoadJob{OBJ: filepath.Join("..", "..", "assets", "model", "crate.obj"), Scale: 2})
	require.NoError(t, res.Err)
	require.True(t, res.HasColor)
	assert.Equal(t, mgl32.Vec3{0.9, 0.5, 0.0}, res.Color)
	assert.Equal(t, 36, len(res.Geometry.Indices))
}

package meshing

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelstream/internal/config"
	"voxelstream/internal/registry"
	"voxelstream/internal/world"
)

// tinyBounds is a 2x1x2 chunk world of 4^3 chunks, storage 8x4x8
func tinyBounds() world.Bounds {
	return world.Bounds{ChunkSize: 4, SizeInChunks: 2, HeightInChunks: 1}
}

func TestIsolatedVoxelEmitsSixFaces(t *testing.T) {
	v := world.NewVolume(tinyBounds())
	c := world.ChunkCoord{X: 0, Y: 0, Z: 0}
	ox, oy, oz := v.Bounds().Origin(c)
	v.SetBlock(ox+1, oy+1, oz+1, registry.BlockStone)

	m := CreateMesh(c, v, 4)
	assert.Equal(t, 6, m.Faces())
	assert.Len(t, m.Positions, 24)
	assert.Len(t, m.Normals, 24)
	assert.Len(t, m.UVs, 24)
	assert.Len(t, m.Indices, 36)
	assert.Equal(t, 12, m.Triangles())

	for _, p := range m.Positions {
		for i := range 3 {
			if p[i] < 1 || p[i] > 2 {
				t.Fatalf("vertex %v outside voxel [1,2]", p)
			}
		}
	}
}

func TestIndicesFollowQuadPattern(t *testing.T) {
	v := world.NewVolume(tinyBounds())
	c := world.ChunkCoord{}
	ox, oy, oz := v.Bounds().Origin(c)
	v.SetBlock(ox, oy, oz, registry.BlockDirt)

	m := CreateMesh(c, v, 4)
	require.Equal(t, 6, m.Faces())
	for f := range m.Faces() {
		base := uint32(f * 4)
		want := []uint32{base, base + 2, base + 1, base, base + 3, base + 2}
		assert.Equal(t, want, m.Indices[f*6:f*6+6], "face %d", f)
	}
}

func TestEnclosedVoxelIsCulled(t *testing.T) {
	v := world.NewVolume(tinyBounds())
	c := world.ChunkCoord{}
	ox, oy, oz := v.Bounds().Origin(c)
	for x := range 3 {
		for y := range 3 {
			for z := range 3 {
				v.SetBlock(ox+x, oy+y, oz+z, registry.BlockStone)
			}
		}
	}
	m := CreateMesh(c, v, 4)
	// 3x3 quads on each of the six sides, nothing from the centre voxel
	assert.Equal(t, 54, m.Faces())
}

func TestEmptyChunkHasNoGeometry(t *testing.T) {
	v := world.NewVolume(tinyBounds())
	m := CreateMesh(world.ChunkCoord{X: -1}, v, 4)
	assert.True(t, m.Empty())
	assert.Zero(t, m.Faces())
}

func TestWaterIsNotMeshed(t *testing.T) {
	v := world.NewVolume(tinyBounds())
	c := world.ChunkCoord{}
	ox, oy, oz := v.Bounds().Origin(c)
	v.SetBlock(ox+1, oy+1, oz+1, registry.BlockWater)
	v.SetBlock(ox+2, oy+1, oz+1, registry.BlockStone)

	m := CreateMesh(c, v, 4)
	// water neighbor does not hide the stone face
	assert.Equal(t, 6, m.Faces())
}

func TestWorldEdgeIsCapped(t *testing.T) {
	b := tinyBounds()
	v := world.NewVolume(b)
	for x := range b.Size() {
		for y := range b.Height() {
			for z := range b.Size() {
				v.SetBlock(x, y, z, registry.BlockStone)
			}
		}
	}

	// chunk (-1,0,-1) sits in the storage corner: -x, -z, -y and the world top are open
	m := CreateMesh(world.ChunkCoord{X: -1, Z: -1}, v, 4)
	assert.Equal(t, 4*16, m.Faces())

	counts := map[mgl32.Vec3]int{}
	for i := 0; i < len(m.Normals); i += 4 {
		counts[m.Normals[i]]++
	}
	assert.Equal(t, 16, counts[mgl32.Vec3{-1, 0, 0}])
	assert.Equal(t, 16, counts[mgl32.Vec3{0, 0, -1}])
	assert.Equal(t, 16, counts[mgl32.Vec3{0, -1, 0}])
	assert.Equal(t, 16, counts[mgl32.Vec3{0, 1, 0}])
	assert.Zero(t, counts[mgl32.Vec3{1, 0, 0}])
	assert.Zero(t, counts[mgl32.Vec3{0, 0, 1}])

	// chunk (0,0,0) sits in the opposite corner: +x and +z are the world maximum
	m = CreateMesh(world.ChunkCoord{}, v, 4)
	assert.Equal(t, 4*16, m.Faces())

	counts = map[mgl32.Vec3]int{}
	for i := 0; i < len(m.Normals); i += 4 {
		counts[m.Normals[i]]++
	}
	assert.Equal(t, 16, counts[mgl32.Vec3{1, 0, 0}])
	assert.Equal(t, 16, counts[mgl32.Vec3{0, 0, 1}])
	assert.Equal(t, 16, counts[mgl32.Vec3{0, -1, 0}])
	assert.Equal(t, 16, counts[mgl32.Vec3{0, 1, 0}])
	assert.Zero(t, counts[mgl32.Vec3{-1, 0, 0}])
	assert.Zero(t, counts[mgl32.Vec3{0, 0, -1}])
}

func TestCrossChunkNeighborCulls(t *testing.T) {
	b := tinyBounds()
	v := world.NewVolume(b)
	left := world.ChunkCoord{X: -1}
	right := world.ChunkCoord{X: 0}
	lx, ly, lz := b.Origin(left)
	v.SetBlock(lx+3, ly+1, lz+1, registry.BlockStone)
	rx, ry, rz := b.Origin(right)
	v.SetBlock(rx, ry+1, rz+1, registry.BlockStone)

	ml := CreateMesh(left, v, 4)
	mr := CreateMesh(right, v, 4)
	assert.Equal(t, 5, ml.Faces(), "+x face should be hidden by the voxel in the next chunk")
	assert.Equal(t, 5, mr.Faces(), "-x face should be hidden by the voxel in the previous chunk")
	for i := 0; i < len(ml.Normals); i += 4 {
		assert.NotEqual(t, mgl32.Vec3{1, 0, 0}, ml.Normals[i])
	}
}

func TestFacesWindOutward(t *testing.T) {
	for _, f := range registry.Faces {
		vs := faceVertices[f]
		for tri := 0; tri < 2; tri++ {
			a := vs[quadIndices[tri*3]]
			b := vs[quadIndices[tri*3+1]]
			c := vs[quadIndices[tri*3+2]]
			n := b.Sub(a).Cross(c.Sub(a)).Normalize()
			if !n.ApproxEqual(faceNormals[f]) {
				t.Errorf("face %s triangle %d winds towards %v, normal is %v", f, tri, n, faceNormals[f])
			}
		}
	}
}

func TestNormalsMatchFaces(t *testing.T) {
	v := world.NewVolume(tinyBounds())
	c := world.ChunkCoord{}
	ox, oy, oz := v.Bounds().Origin(c)
	v.SetBlock(ox, oy, oz, registry.BlockStone)

	m := CreateMesh(c, v, 4)
	for i, f := range registry.Faces {
		for k := range 4 {
			assert.Equal(t, faceNormals[f], m.Normals[i*4+k])
		}
	}
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, m.Normals[int(registry.FacePosZ)*4])
}

func TestTileUVs(t *testing.T) {
	uv := TileUVs(5, 4)
	want := [4]mgl32.Vec2{{0.25, 0.5}, {0.25, 0.25}, {0.5, 0.25}, {0.5, 0.5}}
	for i := range uv {
		assert.InDelta(t, want[i].X(), uv[i].X(), 1e-6)
		assert.InDelta(t, want[i].Y(), uv[i].Y(), 1e-6)
	}

	first := TileUVs(0, 4)
	assert.Equal(t, mgl32.Vec2{0, 0.25}, first[0])
}

func TestGrassUsesPerFaceTiles(t *testing.T) {
	v := world.NewVolume(tinyBounds())
	c := world.ChunkCoord{}
	ox, oy, oz := v.Bounds().Origin(c)
	v.SetBlock(ox, oy, oz, registry.BlockGrass)

	m := CreateMesh(c, v, 4)
	top := TileUVs(registry.TileGrassTop, 4)
	side := TileUVs(registry.TileGrassSide, 4)
	bottom := TileUVs(registry.TileDirt, 4)
	assert.Equal(t, top[0], m.UVs[int(registry.FacePosY)*4])
	assert.Equal(t, side[0], m.UVs[int(registry.FacePosX)*4])
	assert.Equal(t, bottom[0], m.UVs[int(registry.FaceNegY)*4])
}

func TestCreateMeshDeterministic(t *testing.T) {
	s := config.Default()
	s.World = config.WorldSettings{ChunkSize: 16, SizeInChunks: 4, HeightInChunks: 9, StreamMode: config.StreamColumn}
	g, err := world.NewGenerator(s.Terrain)
	require.NoError(t, err)
	b := world.NewBounds(s.World)

	build := func() *Buffer {
		v := world.NewVolume(b)
		for y := range b.HeightInChunks {
			g.Populate(v, world.ChunkCoord{Y: y})
		}
		return CreateMesh(world.ChunkCoord{Y: 2}, v, 4)
	}
	a, c := build(), build()
	if !reflect.DeepEqual(a, c) {
		t.Fatalf("mesh differs between identical builds")
	}
}

func TestInterleavedLayout(t *testing.T) {
	v := world.NewVolume(tinyBounds())
	c := world.ChunkCoord{}
	ox, oy, oz := v.Bounds().Origin(c)
	v.SetBlock(ox, oy, oz, registry.BlockStone)
	m := CreateMesh(c, v, 4)

	data := m.Interleaved()
	require.Len(t, data, len(m.Positions)*VertexStride)
	p, n, uv := m.Positions[5], m.Normals[5], m.UVs[5]
	got := data[5*VertexStride : 6*VertexStride]
	assert.Equal(t, []float32{p.X(), p.Y(), p.Z(), n.X(), n.Y(), n.Z(), uv.X(), uv.Y()}, got)
}

func TestShellMesh(t *testing.T) {
	b := tinyBounds()
	v := world.NewVolume(b)
	c := world.ChunkCoord{}
	ox, oy, oz := b.Origin(c)
	for x := range 4 {
		for y := range 4 {
			for z := range 4 {
				v.SetBlock(ox+x, oy+y, oz+z, registry.BlockStone)
			}
		}
	}
	m := CreateShellMesh(c, v, 4)
	assert.Equal(t, 6, m.Faces())
	for _, p := range m.Positions {
		for i := range 3 {
			if p[i] != 0 && p[i] != 4 {
				t.Fatalf("shell vertex %v not on the chunk corners", p)
			}
		}
	}
	stone := TileUVs(registry.TileStone, 4)
	assert.Equal(t, stone[1], m.UVs[1])
}

func BenchmarkCreateMesh(b *testing.B) {
	s := config.Default()
	s.World = config.WorldSettings{ChunkSize: 32, SizeInChunks: 4, HeightInChunks: 5, StreamMode: config.StreamColumn}
	g, err := world.NewGenerator(s.Terrain)
	if err != nil {
		b.Fatal(err)
	}
	bounds := world.NewBounds(s.World)
	v := world.NewVolume(bounds)
	for y := range bounds.HeightInChunks {
		g.Populate(v, world.ChunkCoord{Y: y})
	}
	c := world.ChunkCoord{Y: 1}

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		CreateMesh(c, v, 4)
	}
}

package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestFloorDiv(t *testing.T) {
	cases := [][3]int{{0, 16, 0}, {15, 16, 0}, {16, 16, 1}, {-1, 16, -1}, {-16, 16, -1}, {-17, 16, -2}}
	for _, c := range cases {
		assert.Equal(t, c[2], floorDiv(c[0], c[1]), "floorDiv(%d,%d)", c[0], c[1])
	}
}

func TestBoundsValidity(t *testing.T) {
	b := Bounds{ChunkSize: 16, SizeInChunks: 8, HeightInChunks: 3}
	assert.True(t, b.Valid(ChunkCoord{0, 0, 0}))
	assert.True(t, b.Valid(ChunkCoord{-4, 2, 3}))
	assert.False(t, b.Valid(ChunkCoord{4, 0, 0}))
	assert.False(t, b.Valid(ChunkCoord{-5, 0, 0}))
	assert.False(t, b.Valid(ChunkCoord{0, 3, 0}))
	assert.False(t, b.Valid(ChunkCoord{0, -1, 0}))
}

func TestChunkIndexIsDense(t *testing.T) {
	b := Bounds{ChunkSize: 4, SizeInChunks: 4, HeightInChunks: 2}
	seen := make(map[int]bool)
	for x := -2; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := -2; z < 2; z++ {
				i := b.ChunkIndex(ChunkCoord{x, y, z})
				assert.GreaterOrEqual(t, i, 0)
				assert.Less(t, i, b.NumChunks())
				assert.False(t, seen[i], "index %d reused", i)
				seen[i] = true
			}
		}
	}
	assert.Equal(t, -1, b.ChunkIndex(ChunkCoord{2, 0, 0}))
}

func TestChunkAt(t *testing.T) {
	b := Bounds{ChunkSize: 16, SizeInChunks: 8, HeightInChunks: 3}
	assert.Equal(t, ChunkCoord{0, 0, 0}, b.ChunkAt(mgl32.Vec3{0, 0, 0}))
	assert.Equal(t, ChunkCoord{0, 1, 0}, b.ChunkAt(mgl32.Vec3{15.9, 20, 0.5}))
	assert.Equal(t, ChunkCoord{-1, 0, -1}, b.ChunkAt(mgl32.Vec3{-0.1, 0, -16}))
	assert.Equal(t, ChunkCoord{1, 0, -2}, b.ChunkAt(mgl32.Vec3{16, 0, -16.5}))
}

func TestOriginAndTransform(t *testing.T) {
	b := Bounds{ChunkSize: 16, SizeInChunks: 8, HeightInChunks: 3}
	x, y, z := b.Origin(ChunkCoord{-1, 2, 0})
	assert.Equal(t, [3]int{48, 32, 64}, [3]int{x, y, z})

	sx, sy, sz := b.ToStorage(-16, 32, 0)
	assert.Equal(t, [3]int{x, y, z}, [3]int{sx, sy, sz})

	m := b.Transform(ChunkCoord{-1, 2, 0})
	assert.Equal(t, mgl32.Vec3{-16, 32, 0}, m.Col(3).Vec3())
}

func TestVolumeBounds(t *testing.T) {
	v := NewVolume(Bounds{ChunkSize: 4, SizeInChunks: 2, HeightInChunks: 1})
	assert.Equal(t, 8*4*8, v.Bytes())
	v.SetBlock(7, 3, 7, 1)
	assert.True(t, v.IsSolid(7, 3, 7))
	v.SetBlock(8, 0, 0, 1) // dropped
	assert.False(t, v.IsSolid(8, 0, 0))
	assert.False(t, v.IsSolid(-1, 0, 0))
	assert.False(t, v.InBounds(0, 4, 0))
}

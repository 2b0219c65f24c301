package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelstream/internal/config"
	"voxelstream/internal/registry"
)

func TestPopulateDeterministic(t *testing.T) {
	s := testSettings()
	coords := []ChunkCoord{{0, 0, 0}, {1, 2, 0}, {-1, 3, -1}, {-4, 0, 3}}

	for _, c := range coords {
		v1, g1 := newTestWorld(t, s)
		full1 := g1.Populate(v1, c)

		v2, g2 := newTestWorld(t, s)
		full2 := g2.Populate(v2, c)

		if hashVolume(v1) != hashVolume(v2) {
			t.Errorf("chunk %v not deterministic", c)
		}
		assert.Equal(t, full1, full2, "fullness of %v", c)
	}
}

func TestPopulateDeterministicValueNoise(t *testing.T) {
	s := testSettings()
	s.Terrain.Noise = config.NoiseValue
	v1, g1 := newTestWorld(t, s)
	v2, g2 := newTestWorld(t, s)
	g1.Populate(v1, ChunkCoord{1, 0, 1})
	g2.Populate(v2, ChunkCoord{1, 0, 1})
	assert.Equal(t, hashVolume(v1), hashVolume(v2))
}

func TestPopulateIdempotent(t *testing.T) {
	s := testSettings()
	c := ChunkCoord{0, 1, -1}

	once, g := newTestWorld(t, s)
	fullOnce := g.Populate(once, c)

	twice, g2 := newTestWorld(t, s)
	g2.Populate(twice, c)
	fullTwice := g2.Populate(twice, c)

	assert.Equal(t, hashVolume(once), hashVolume(twice))
	assert.Equal(t, fullOnce, fullTwice)
}

func TestOverlappingHalosAgree(t *testing.T) {
	s := testSettings()
	v, g := newTestWorld(t, s)
	g.Populate(v, ChunkCoord{0, 2, 0})
	before := blockBytes(v)

	// the neighbor's halo covers the shared border; rewriting it must change nothing
	// inside the first chunk
	g.Populate(v, ChunkCoord{1, 2, 0})
	after := blockBytes(v)

	b := v.Bounds()
	ox, oy, oz := b.Origin(ChunkCoord{0, 2, 0})
	for x := ox; x < ox+b.ChunkSize; x++ {
		for y := oy; y < oy+b.ChunkSize; y++ {
			for z := oz; z < oz+b.ChunkSize; z++ {
				i := v.index(x, y, z)
				if before[i] != after[i] {
					t.Fatalf("neighbor population changed (%d,%d,%d)", x, y, z)
				}
			}
		}
	}
}

func TestColumnProfile(t *testing.T) {
	s := testSettings()
	v, g := newTestWorld(t, s)
	b := v.Bounds()

	// populate a whole column of chunks so every y is written
	for cy := range b.HeightInChunks {
		g.Populate(v, ChunkCoord{0, cy, 0})
	}

	ox, _, oz := b.Origin(ChunkCoord{0, 0, 0})
	half := b.Size() / 2
	for x := ox; x < ox+b.ChunkSize; x++ {
		for z := oz; z < oz+b.ChunkSize; z++ {
			threshold := g.Threshold(x-half, z-half)
			require.Less(t, threshold, b.Height(), "curve must fit the test world")
			for y := range b.Height() {
				id := v.Block(x, y, z)
				switch {
				case y == 0 && y < threshold:
					assert.Equal(t, registry.BlockBedrock, id)
				case y < threshold && threshold-y == 1:
					assert.Equal(t, registry.BlockDirt, id)
				case y < threshold:
					assert.Equal(t, registry.BlockStone, id)
				case y == threshold:
					assert.Equal(t, registry.BlockGrass, id)
				default:
					if id != registry.BlockAir {
						t.Fatalf("column (%d,%d) has %s above its surface at y=%d", x, z, registry.Name(id), y)
					}
				}
			}
		}
	}
}

func TestSolidSpanIsContiguous(t *testing.T) {
	s := testSettings()
	v, g := newTestWorld(t, s)
	b := v.Bounds()
	for cy := range b.HeightInChunks {
		g.Populate(v, ChunkCoord{-2, cy, 1})
	}
	ox, _, oz := b.Origin(ChunkCoord{-2, 0, 1})
	for x := ox; x < ox+b.ChunkSize; x++ {
		for z := oz; z < oz+b.ChunkSize; z++ {
			seenAir := false
			for y := range b.Height() {
				solid := v.IsSolid(x, y, z)
				if !solid {
					seenAir = true
				} else if seenAir {
					t.Fatalf("column (%d,%d) has a solid block at y=%d above air", x, z, y)
				}
			}
		}
	}
}

func TestPopulateWritesHalo(t *testing.T) {
	s := testSettings()
	v, g := newTestWorld(t, s)
	c := ChunkCoord{0, 0, 0}
	g.Populate(v, c)

	b := v.Bounds()
	ox, oy, oz := b.Origin(c)
	// y=0 is bedrock wherever the surface is above it, including the halo columns
	for _, p := range [][2]int{{ox - 1, oz}, {ox + b.ChunkSize, oz}, {ox, oz - 1}, {ox, oz + b.ChunkSize}} {
		assert.Equal(t, registry.BlockBedrock, v.Block(p[0], oy, p[1]), "halo column %v", p)
	}
	// layer above the chunk is part of the halo
	assert.NotEqual(t, registry.BlockAir, v.Block(ox, oy+b.ChunkSize, oz))
	// two layers above is not
	assert.Equal(t, registry.BlockAir, v.Block(ox, oy+b.ChunkSize+1, oz))
}

func TestPopulateAtWorldEdgeSkipsOutside(t *testing.T) {
	s := testSettings()
	v, g := newTestWorld(t, s)
	half := s.World.SizeInChunks / 2
	assert.NotPanics(t, func() {
		g.Populate(v, ChunkCoord{-half, 0, -half})
		g.Populate(v, ChunkCoord{half - 1, s.World.HeightInChunks - 1, half - 1})
	})
	assert.Equal(t, registry.BlockBedrock, v.Block(0, 0, 0))
}

func TestFullness(t *testing.T) {
	s := testSettings()
	// flat terrain at height 100: chunks below y=96 are buried
	s.Terrain.HeightCurve = []config.CurvePoint{{Noise: -1, Height: 100}, {Noise: 1, Height: 100.5}}
	v, g := newTestWorld(t, s)

	assert.True(t, g.Populate(v, ChunkCoord{0, 2, 0}), "y 32..47 is solid")
	assert.True(t, g.Populate(v, ChunkCoord{0, 5, 0}), "y 80..95 is solid")
	assert.False(t, g.Populate(v, ChunkCoord{0, 6, 0}), "y 96..111 crosses the surface")
	assert.False(t, g.Populate(v, ChunkCoord{0, 8, 0}), "y 128..143 is air")
}

func TestSeaLevel(t *testing.T) {
	s := testSettings()
	s.Terrain.HeightCurve = []config.CurvePoint{{Noise: -1, Height: 10}, {Noise: 1, Height: 10.5}}
	s.Terrain.SeaLevel = 14
	v, g := newTestWorld(t, s)
	g.Populate(v, ChunkCoord{0, 0, 0})

	x, _, z := v.Bounds().Origin(ChunkCoord{0, 0, 0})
	assert.Equal(t, registry.BlockGrass, v.Block(x, 10, z))
	for y := 11; y < 14; y++ {
		assert.Equal(t, registry.BlockWater, v.Block(x, y, z))
		assert.False(t, v.IsSolid(x, y, z))
	}
	assert.Equal(t, registry.BlockAir, v.Block(x, 14, z))
}

func TestThresholdFollowsCurve(t *testing.T) {
	s := testSettings()
	_, g := newTestWorld(t, s)
	for _, p := range [][2]int{{0, 0}, {37, -12}, {-64, 63}} {
		h := g.Threshold(p[0], p[1])
		assert.GreaterOrEqual(t, h, 5)
		assert.LessOrEqual(t, h, 127)
	}
}

// BenchmarkPopulate measures chunk generation performance
func BenchmarkPopulate(b *testing.B) {
	s := testSettings()
	v, g := newTestWorld(b, s)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Populate(v, ChunkCoord{0, i % s.World.HeightInChunks, 0})
	}
}

func BenchmarkThreshold(b *testing.B) {
	_, g := newTestWorld(b, testSettings())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Threshold(i%1024, (i*31)%1024)
	}
}

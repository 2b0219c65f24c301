package world

import (
	"math"

	"voxelstream/internal/config"
	"voxelstream/internal/registry"
)

// Generator fills volume columns from layered noise remapped through a height curve.
// Output depends only on world (x, z) and the terrain settings.
type Generator struct {
	noise     NoiseSource
	curve     *HeightCurve
	scale     float64
	frequency float64
	seaLevel  int
}

// NewGenerator creates a generator from terrain settings
func NewGenerator(t config.TerrainSettings) (*Generator, error) {
	noise, err := NewNoiseSource(t)
	if err != nil {
		return nil, err
	}
	curve, err := NewHeightCurve(t.HeightCurve)
	if err != nil {
		return nil, err
	}
	return &Generator{
		noise:     noise,
		curve:     curve,
		scale:     t.Scale,
		frequency: t.Frequency,
		seaLevel:  t.SeaLevel,
	}, nil
}

// NoiseAt samples the raw layered noise at a world-space column
func (g *Generator) NoiseAt(worldX, worldZ int) float64 {
	x := float64(worldX) / g.scale * g.frequency
	z := float64(worldZ) / g.scale * g.frequency
	return g.noise.Noise2D(x, z)
}

// Threshold returns the surface height (grass layer) of a world-space column
func (g *Generator) Threshold(worldX, worldZ int) int {
	return int(math.Floor(g.curve.Sample(g.NoiseAt(worldX, worldZ))))
}

// ColumnBlock returns the block a column with the given surface threshold holds at y.
// ok is false where the column leaves the cell untouched.
func (g *Generator) ColumnBlock(y, threshold int) (id registry.BlockID, ok bool) {
	switch {
	case y < threshold:
		switch {
		case y == 0:
			return registry.BlockBedrock, true
		case threshold-y == 1:
			return registry.BlockDirt, true
		default:
			return registry.BlockStone, true
		}
	case y == threshold:
		return registry.BlockGrass, true
	case y < g.seaLevel:
		return registry.BlockWater, true
	}
	return registry.BlockAir, false
}

// Populate generates the terrain of chunk c into v, together with a one voxel halo
// on every side so faces on the chunk border can be culled against their neighbors.
// Cells outside the world are skipped. Calling it again rewrites identical values.
//
// It reports whether every cell inside the chunk itself ended up solid.
func (g *Generator) Populate(v *Volume, c ChunkCoord) bool {
	b := v.Bounds()
	size := b.ChunkSize
	ox, oy, oz := b.Origin(c)
	half := b.Size() / 2
	full := true

	for lx := -1; lx <= size; lx++ {
		gx := ox + lx
		if gx < 0 || gx >= b.Size() {
			continue
		}
		for lz := -1; lz <= size; lz++ {
			gz := oz + lz
			if gz < 0 || gz >= b.Size() {
				continue
			}
			threshold := g.Threshold(gx-half, gz-half)
			interiorColumn := lx >= 0 && lx < size && lz >= 0 && lz < size

			for ly := -1; ly <= size; ly++ {
				gy := oy + ly
				if gy < 0 || gy >= b.Height() {
					continue
				}
				id, ok := g.ColumnBlock(gy, threshold)
				if ok {
					v.SetBlock(gx, gy, gz, id)
				}
				if interiorColumn && ly >= 0 && ly < size && !v.IsSolid(gx, gy, gz) {
					full = false
				}
			}
		}
	}
	return full
}

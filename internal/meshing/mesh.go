package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelstream/internal/profiling"
	"voxelstream/internal/registry"
	"voxelstream/internal/world"
)

// CreateMesh builds the visible faces of chunk c. A face of a solid voxel is emitted
// when the neighbor across it is not solid; neighbors outside the world count as air,
// so the world edge is capped. The volume is only read.
//
// Voxels are visited x, then y, then z, and faces in registry.Faces order, so equal
// inputs give identical buffers.
func CreateMesh(c world.ChunkCoord, v *world.Volume, atlasSize int) *Buffer {
	defer profiling.Track("meshing.CreateMesh")()

	b := v.Bounds()
	size := b.ChunkSize
	ox, oy, oz := b.Origin(c)
	buf := &Buffer{}

	for x := range size {
		for y := range size {
			for z := range size {
				gx, gy, gz := ox+x, oy+y, oz+z
				id := v.Block(gx, gy, gz)
				if !registry.IsSolid(id) {
					continue
				}
				local := mgl32.Vec3{float32(x), float32(y), float32(z)}
				for _, f := range registry.Faces {
					dx, dy, dz := f.Offset()
					if v.IsSolid(gx+dx, gy+dy, gz+dz) {
						continue
					}
					tex, _ := registry.TextureID(id, f)
					buf.addFace(local, f, 1, TileUVs(tex, atlasSize))
				}
			}
		}
	}
	return buf
}

// CreateShellMesh emits the six outer faces of chunk c as one chunk-sized cuboid.
// It stands in for a fully solid chunk, textured with the block at the centre of each side.
func CreateShellMesh(c world.ChunkCoord, v *world.Volume, atlasSize int) *Buffer {
	defer profiling.Track("meshing.CreateShellMesh")()

	b := v.Bounds()
	size := b.ChunkSize
	ox, oy, oz := b.Origin(c)
	mid := size / 2
	buf := &Buffer{}

	for _, f := range registry.Faces {
		dx, dy, dz := f.Offset()
		// centre cell of this side: step from the middle towards the face
		lx, ly, lz := edge(mid, dx, size), edge(mid, dy, size), edge(mid, dz, size)
		id := v.Block(ox+lx, oy+ly, oz+lz)
		tex, ok := registry.TextureID(id, f)
		if !ok {
			tex, _ = registry.TextureID(registry.BlockStone, f)
		}
		buf.addFace(mgl32.Vec3{}, f, float32(size), TileUVs(tex, atlasSize))
	}
	return buf
}

func edge(mid, d, size int) int {
	switch {
	case d > 0:
		return size - 1
	case d < 0:
		return 0
	}
	return mid
}

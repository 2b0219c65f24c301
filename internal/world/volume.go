package world

import (
	"voxelstream/internal/registry"
)

// Volume is the dense block grid backing the whole addressable world.
// It is addressed in storage space and stored as a flat arena, x-major then y then z.
type Volume struct {
	bounds     Bounds
	sx, sy, sz int
	blocks     []registry.BlockID
}

// NewVolume allocates an all-air volume covering b
func NewVolume(b Bounds) *Volume {
	sx, sy, sz := b.Size(), b.Height(), b.Size()
	return &Volume{
		bounds: b,
		sx:     sx,
		sy:     sy,
		sz:     sz,
		blocks: make([]registry.BlockID, sx*sy*sz),
	}
}

// Bounds returns the bounds the volume was allocated for
func (v *Volume) Bounds() Bounds { return v.bounds }

// Bytes returns the size of the block storage
func (v *Volume) Bytes() int { return len(v.blocks) }

// InBounds reports whether the storage-space position exists
func (v *Volume) InBounds(x, y, z int) bool {
	return x >= 0 && x < v.sx && y >= 0 && y < v.sy && z >= 0 && z < v.sz
}

func (v *Volume) index(x, y, z int) int {
	return (x*v.sy+y)*v.sz + z
}

// Block returns the block at a storage-space position. Outside the world is air.
func (v *Volume) Block(x, y, z int) registry.BlockID {
	if !v.InBounds(x, y, z) {
		return registry.BlockAir
	}
	return v.blocks[v.index(x, y, z)]
}

// SetBlock writes a block. Writes outside the world are dropped.
func (v *Volume) SetBlock(x, y, z int, id registry.BlockID) {
	if !v.InBounds(x, y, z) {
		return
	}
	v.blocks[v.index(x, y, z)] = id
}

// IsSolid reports whether the block at a storage-space position is solid.
// Positions outside the world are never solid.
func (v *Volume) IsSolid(x, y, z int) bool {
	return registry.IsSolid(v.Block(x, y, z))
}

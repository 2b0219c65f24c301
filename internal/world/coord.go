package world

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxelstream/internal/config"
)

// ChunkCoord addresses a chunk in chunk units. (0,0,0) is the centre column at the bottom of the world.
type ChunkCoord struct {
	X, Y, Z int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// Bounds describes the addressable world and converts between coordinate spaces.
//
// World space is signed and measured in blocks. Storage space is the unsigned index
// space of the Volume: x and z are shifted by half the world size, y is unchanged.
type Bounds struct {
	ChunkSize      int
	SizeInChunks   int
	HeightInChunks int
}

// NewBounds derives bounds from world settings
func NewBounds(w config.WorldSettings) Bounds {
	return Bounds{
		ChunkSize:      w.ChunkSize,
		SizeInChunks:   w.SizeInChunks,
		HeightInChunks: w.HeightInChunks,
	}
}

// Size returns the world width on x and z in blocks
func (b Bounds) Size() int { return b.ChunkSize * b.SizeInChunks }

// Height returns the world height in blocks
func (b Bounds) Height() int { return b.ChunkSize * b.HeightInChunks }

// NumChunks returns how many chunk coordinates are valid
func (b Bounds) NumChunks() int { return b.SizeInChunks * b.HeightInChunks * b.SizeInChunks }

// Valid reports whether c lies inside the world
func (b Bounds) Valid(c ChunkCoord) bool {
	half := b.SizeInChunks / 2
	ix, iz := c.X+half, c.Z+half
	return ix >= 0 && ix < b.SizeInChunks &&
		iz >= 0 && iz < b.SizeInChunks &&
		c.Y >= 0 && c.Y < b.HeightInChunks
}

// ChunkIndex returns the dense slot index of c, or -1 if c is outside the world
func (b Bounds) ChunkIndex(c ChunkCoord) int {
	if !b.Valid(c) {
		return -1
	}
	half := b.SizeInChunks / 2
	return ((c.X+half)*b.HeightInChunks+c.Y)*b.SizeInChunks + c.Z + half
}

// Origin returns the storage-space position of the chunk's minimum corner
func (b Bounds) Origin(c ChunkCoord) (x, y, z int) {
	half := b.Size() / 2
	return c.X*b.ChunkSize + half, c.Y * b.ChunkSize, c.Z*b.ChunkSize + half
}

// WorldOrigin returns the world-space position of the chunk's minimum corner
func (b Bounds) WorldOrigin(c ChunkCoord) mgl32.Vec3 {
	s := float32(b.ChunkSize)
	return mgl32.Vec3{float32(c.X) * s, float32(c.Y) * s, float32(c.Z) * s}
}

// Transform returns the model matrix that places a chunk's local mesh in the world
func (b Bounds) Transform(c ChunkCoord) mgl32.Mat4 {
	o := b.WorldOrigin(c)
	return mgl32.Translate3D(o.X(), o.Y(), o.Z())
}

// ChunkAt returns the chunk containing a world-space position
func (b Bounds) ChunkAt(pos mgl32.Vec3) ChunkCoord {
	return ChunkCoord{
		X: floorDiv(int(math.Floor(float64(pos.X()))), b.ChunkSize),
		Y: floorDiv(int(math.Floor(float64(pos.Y()))), b.ChunkSize),
		Z: floorDiv(int(math.Floor(float64(pos.Z()))), b.ChunkSize),
	}
}

// ToStorage converts world-space block coordinates to storage space
func (b Bounds) ToStorage(x, y, z int) (int, int, int) {
	half := b.Size() / 2
	return x + half, y, z + half
}

// floorDiv divides rounding towards negative infinity
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

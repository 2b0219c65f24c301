package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelstream/internal/registry"
)

// VertexStride is number of float32 per interleaved vertex (pos.xyz + normal.xyz + uv)
const VertexStride = 8

// Buffer is an indexed triangle soup in chunk-local coordinates.
// Every face contributes 4 vertices and 6 indices.
type Buffer struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// Faces returns the number of quads in the buffer
func (b *Buffer) Faces() int {
	if b == nil {
		return 0
	}
	return len(b.Positions) / 4
}

// Empty reports whether the buffer holds no geometry
func (b *Buffer) Empty() bool {
	return b == nil || len(b.Indices) == 0
}

// Triangles returns the number of triangles in the buffer
func (b *Buffer) Triangles() int {
	if b == nil {
		return 0
	}
	return len(b.Indices) / 3
}

// addFace appends one quad for face f of the voxel whose minimum corner is at origin.
// scale stretches the unit quad, used by the chunk shell.
func (b *Buffer) addFace(origin mgl32.Vec3, f registry.Face, scale float32, uvs [4]mgl32.Vec2) {
	base := uint32(len(b.Positions))
	for i, corner := range faceVertices[f] {
		b.Positions = append(b.Positions, origin.Add(corner.Mul(scale)))
		b.Normals = append(b.Normals, faceNormals[f])
		b.UVs = append(b.UVs, uvs[i])
	}
	for _, idx := range quadIndices {
		b.Indices = append(b.Indices, base+idx)
	}
}

// Interleaved packs the vertices as pos.xyz, normal.xyz, uv for GPU upload.
func (b *Buffer) Interleaved() []float32 {
	out := make([]float32, 0, len(b.Positions)*VertexStride)
	for i, p := range b.Positions {
		n := b.Normals[i]
		uv := b.UVs[i]
		out = append(out, p.X(), p.Y(), p.Z(), n.X(), n.Y(), n.Z(), uv.X(), uv.Y())
	}
	return out
}

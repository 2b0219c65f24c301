package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelstream/internal/registry"
)

// faceVertices holds the unit-cube corners of each face, indexed by registry.Face.
// Together with quadIndices every face winds counter-clockwise seen from outside.
var faceVertices = [registry.NumFaces][4]mgl32.Vec3{
	registry.FacePosX: {{1, 0, 1}, {1, 1, 1}, {1, 1, 0}, {1, 0, 0}},
	registry.FaceNegX: {{0, 0, 0}, {0, 1, 0}, {0, 1, 1}, {0, 0, 1}},
	registry.FacePosY: {{0, 1, 0}, {1, 1, 0}, {1, 1, 1}, {0, 1, 1}},
	registry.FaceNegY: {{1, 0, 0}, {0, 0, 0}, {0, 0, 1}, {1, 0, 1}},
	registry.FacePosZ: {{0, 0, 1}, {0, 1, 1}, {1, 1, 1}, {1, 0, 1}},
	registry.FaceNegZ: {{1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {0, 0, 0}},
}

var faceNormals = [registry.NumFaces]mgl32.Vec3{
	registry.FacePosX: {1, 0, 0},
	registry.FaceNegX: {-1, 0, 0},
	registry.FacePosY: {0, 1, 0},
	registry.FaceNegY: {0, -1, 0},
	registry.FacePosZ: {0, 0, 1},
	registry.FaceNegZ: {0, 0, -1},
}

// quadIndices splits a face into two triangles
var quadIndices = [6]uint32{0, 2, 1, 0, 3, 2}

// TileUVs returns the texture coordinates of an atlas tile, in the same corner order as faceVertices.
// Tile t sits at column t mod atlasSize, row t div atlasSize.
func TileUVs(textureID uint32, atlasSize int) [4]mgl32.Vec2 {
	size := uint32(atlasSize)
	tile := 1 / float32(atlasSize)
	x := float32(textureID%size) * tile
	y := float32(textureID/size) * tile
	return [4]mgl32.Vec2{
		{x, y + tile},
		{x, y},
		{x + tile, y},
		{x + tile, y + tile},
	}
}

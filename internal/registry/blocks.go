package registry

import "fmt"

// BlockID indexes the block table. 0 is always air.
type BlockID uint8

const (
	BlockAir BlockID = iota
	BlockStone
	BlockBedrock
	BlockGrass
	BlockDirt
	BlockWater
)

// Face identifies one side of a voxel. The order matches TextureIDs.
type Face int

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// NumFaces is the number of faces on a cube
const NumFaces = 6

// Faces lists every face in table order
var Faces = [NumFaces]Face{FacePosX, FaceNegX, FacePosY, FaceNegY, FacePosZ, FaceNegZ}

var faceOffsets = [NumFaces][3]int{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

var faceNames = [NumFaces]string{"+x", "-x", "+y", "-y", "+z", "-z"}

// Offset returns the unit step towards the neighbor on this face
func (f Face) Offset() (dx, dy, dz int) {
	o := faceOffsets[f]
	return o[0], o[1], o[2]
}

func (f Face) String() string {
	if f < 0 || int(f) >= NumFaces {
		return fmt.Sprintf("Face(%d)", int(f))
	}
	return faceNames[f]
}

// BlockType defines the properties of a block id
type BlockType struct {
	Name    string
	IsSolid bool
	// TextureIDs holds one atlas tile per face; nil for non-solid types.
	TextureIDs *[NumFaces]uint32
}

func uniform(t uint32) *[NumFaces]uint32 {
	return &[NumFaces]uint32{t, t, t, t, t, t}
}

// Atlas tiles, laid out row-major in an AtlasSize x AtlasSize grid
const (
	TileStone     uint32 = 0
	TileBedrock   uint32 = 1
	TileGrassSide uint32 = 2
	TileGrassTop  uint32 = 3
	TileDirt      uint32 = 4
	TileWater     uint32 = 5
)

// NumTiles is the number of tiles the block table references
const NumTiles = 6

var blockTypes = [...]BlockType{
	BlockAir:     {Name: "air"},
	BlockStone:   {Name: "stone", IsSolid: true, TextureIDs: uniform(TileStone)},
	BlockBedrock: {Name: "bedrock", IsSolid: true, TextureIDs: uniform(TileBedrock)},
	BlockGrass: {Name: "grass", IsSolid: true, TextureIDs: &[NumFaces]uint32{
		TileGrassSide, TileGrassSide, TileGrassTop, TileDirt, TileGrassSide, TileGrassSide,
	}},
	BlockDirt:  {Name: "dirt", IsSolid: true, TextureIDs: uniform(TileDirt)},
	BlockWater: {Name: "water"},
}

// Count returns the number of registered block types
func Count() int {
	return len(blockTypes)
}

// Lookup returns the block type for id. Unknown ids resolve to air.
func Lookup(id BlockID) BlockType {
	if int(id) >= len(blockTypes) {
		return blockTypes[BlockAir]
	}
	return blockTypes[id]
}

// IsSolid reports whether id blocks visibility
func IsSolid(id BlockID) bool {
	return Lookup(id).IsSolid
}

// TextureID returns the atlas tile for a face of id. ok is false for non-solid types.
func TextureID(id BlockID, face Face) (uint32, bool) {
	bt := Lookup(id)
	if bt.TextureIDs == nil {
		return 0, false
	}
	return bt.TextureIDs[face], true
}

// Name returns the diagnostic name of id
func Name(id BlockID) string {
	if int(id) >= len(blockTypes) {
		return fmt.Sprintf("unknown(%d)", id)
	}
	return blockTypes[id].Name
}

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAirIsNotSolid(t *testing.T) {
	assert.False(t, IsSolid(BlockAir))
	assert.Equal(t, "air", Name(BlockAir))
	_, ok := TextureID(BlockAir, FacePosY)
	assert.False(t, ok)
}

func TestSolidTypesHaveTextures(t *testing.T) {
	for id := 0; id < Count(); id++ {
		bt := Lookup(BlockID(id))
		if bt.IsSolid {
			if bt.TextureIDs == nil {
				t.Errorf("solid block %s has no textures", bt.Name)
				continue
			}
			for _, f := range Faces {
				if tex := bt.TextureIDs[f]; tex >= NumTiles {
					t.Errorf("block %s face %s references tile %d outside the table", bt.Name, f, tex)
				}
			}
		} else if bt.TextureIDs != nil {
			t.Errorf("non-solid block %s carries textures", bt.Name)
		}
	}
}

func TestGrassFaces(t *testing.T) {
	top, _ := TextureID(BlockGrass, FacePosY)
	bottom, _ := TextureID(BlockGrass, FaceNegY)
	side, _ := TextureID(BlockGrass, FacePosX)
	assert.Equal(t, TileGrassTop, top)
	assert.Equal(t, TileDirt, bottom)
	assert.Equal(t, TileGrassSide, side)
}

func TestUnknownIDResolvesToAir(t *testing.T) {
	assert.False(t, IsSolid(BlockID(200)))
	assert.Equal(t, "unknown(200)", Name(BlockID(200)))
}

func TestFaceOffsets(t *testing.T) {
	// opposite faces come in pairs
	for i := 0; i < NumFaces; i += 2 {
		ax, ay, az := Faces[i].Offset()
		bx, by, bz := Faces[i+1].Offset()
		assert.Equal(t, [3]int{-ax, -ay, -az}, [3]int{bx, by, bz}, "faces %s/%s", Faces[i], Faces[i+1])
	}
	assert.Equal(t, "-z", FaceNegZ.String())
}

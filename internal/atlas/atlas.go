// Package atlas paints the block texture atlas. Tiles are drawn as small pixel-art
// patterns and upscaled with nearest-neighbor sampling.
package atlas

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"voxelstream/internal/registry"
)

// patternSize is the edge length of the painted source tile in pixels
const patternSize = 8

type style struct {
	base, accent color.RGBA
	// capRows paints the top rows in capColor (grass side)
	capRows  int
	capColor color.RGBA
}

var styles = map[uint32]style{
	registry.TileStone:     {base: rgb(125, 125, 125), accent: rgb(105, 105, 108)},
	registry.TileBedrock:   {base: rgb(60, 60, 60), accent: rgb(25, 25, 25)},
	registry.TileGrassSide: {base: rgb(134, 96, 67), accent: rgb(110, 78, 54), capRows: 2, capColor: rgb(95, 159, 53)},
	registry.TileGrassTop:  {base: rgb(95, 159, 53), accent: rgb(80, 138, 44)},
	registry.TileDirt:      {base: rgb(134, 96, 67), accent: rgb(110, 78, 54)},
	registry.TileWater:     {base: rgb(47, 67, 244), accent: rgb(60, 85, 250)},
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{r, g, b, 255} }

// Build paints an atlas of atlasSize x atlasSize tiles, each tilePixels wide.
// Tile t sits at column t mod atlasSize, row t div atlasSize, counted from the top-left.
func Build(atlasSize, tilePixels int) (*image.RGBA, error) {
	if atlasSize <= 0 || tilePixels <= 0 {
		return nil, fmt.Errorf("atlas: invalid size %dx%d tiles of %dpx", atlasSize, atlasSize, tilePixels)
	}
	if atlasSize*atlasSize < registry.NumTiles {
		return nil, fmt.Errorf("atlas: %d tiles do not fit a %dx%d atlas", registry.NumTiles, atlasSize, atlasSize)
	}

	dst := image.NewRGBA(image.Rect(0, 0, atlasSize*tilePixels, atlasSize*tilePixels))
	for t := uint32(0); t < registry.NumTiles; t++ {
		src := pattern(t, styles[t])
		col, row := int(t)%atlasSize, int(t)/atlasSize
		r := image.Rect(col*tilePixels, row*tilePixels, (col+1)*tilePixels, (row+1)*tilePixels)
		xdraw.NearestNeighbor.Scale(dst, r, src, src.Bounds(), xdraw.Src, nil)
	}
	return dst, nil
}

// pattern paints one source tile. The speckle is a hash of the pixel and tile id, so
// every build is identical.
func pattern(tile uint32, s style) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, patternSize, patternSize))
	for y := range patternSize {
		for x := range patternSize {
			c := s.base
			if speckle(tile, x, y) {
				c = s.accent
			}
			if y < s.capRows {
				c = s.capColor
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func speckle(tile uint32, x, y int) bool {
	h := uint32(x)*374761393 + uint32(y)*668265263 + tile*2246822519
	h = (h ^ (h >> 13)) * 1274126177
	return (h^(h>>16))&3 == 0
}

package world

import (
	"fmt"
	"sort"

	"voxelstream/internal/config"
)

// HeightCurve is a piecewise-linear remapping from noise value to terrain height.
type HeightCurve struct {
	keys []config.CurvePoint
}

// NewHeightCurve sorts the control points by noise value.
func NewHeightCurve(points []config.CurvePoint) (*HeightCurve, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("height curve needs at least 2 points, got %d", len(points))
	}
	keys := append([]config.CurvePoint(nil), points...)
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].Noise < keys[j].Noise })
	for i := 1; i < len(keys); i++ {
		if keys[i].Noise == keys[i-1].Noise {
			return nil, fmt.Errorf("height curve has two points at noise %g", keys[i].Noise)
		}
	}
	return &HeightCurve{keys: keys}, nil
}

// Sample returns the height for noise value n, clamped to the end points.
func (c *HeightCurve) Sample(n float64) float64 {
	first, last := c.keys[0], c.keys[len(c.keys)-1]
	if n <= first.Noise {
		return first.Height
	}
	if n >= last.Noise {
		return last.Height
	}
	// first key strictly above n
	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].Noise > n })
	a, b := c.keys[i-1], c.keys[i]
	t := (n - a.Noise) / (b.Noise - a.Noise)
	return a.Height + t*(b.Height-a.Height)
}

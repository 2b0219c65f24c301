package world

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"

	"voxelstream/internal/config"
)

// NoiseSource is a deterministic layered 2D noise function returning values in about [-1, 1].
type NoiseSource interface {
	Noise2D(x, z float64) float64
}

// NewNoiseSource builds the noise named in the terrain settings.
// Each octave halves amplitude (persistence 0.5) and doubles frequency (lacunarity 2) by default.
func NewNoiseSource(t config.TerrainSettings) (NoiseSource, error) {
	switch t.Noise {
	case config.NoisePerlin, "":
		return perlin.NewPerlin(1/t.Persistence, t.Lacunarity, int32(t.Octaves), t.Seed), nil
	case config.NoiseValue:
		return &valueNoise{
			seed:        t.Seed,
			octaves:     t.Octaves,
			persistence: t.Persistence,
			lacunarity:  t.Lacunarity,
		}, nil
	}
	return nil, fmt.Errorf("unknown noise source %q", t.Noise)
}

// valueNoise is lattice value noise over an integer hash, summed over octaves.
type valueNoise struct {
	seed        int64
	octaves     int
	persistence float64
	lacunarity  float64
}

func (n *valueNoise) Noise2D(x, z float64) float64 {
	return octaveNoise2D(x, z, n.seed, n.octaves, n.persistence, n.lacunarity)*2 - 1
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func hash2(x int64, z int64, seed int64) uint64 {
	// SplitMix64 style integer hash, stable across runs for same inputs
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(z)*0x517CC1B727220A95 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

func latticeValue(x int64, z int64, seed int64) float64 {
	h := hash2(x, z, seed)
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

func valueNoise2D(x float64, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)

	fx := fade(x - x0)
	fz := fade(z - z0)

	ix, iz := int64(x0), int64(z0)
	v00 := latticeValue(ix, iz, seed)
	v10 := latticeValue(ix+1, iz, seed)
	v01 := latticeValue(ix, iz+1, seed)
	v11 := latticeValue(ix+1, iz+1, seed)

	return lerp(lerp(v00, v10, fx), lerp(v01, v11, fx), fz) // [0,1]
}

func octaveNoise2D(x float64, z float64, seed int64, octaves int, persistence, lacunarity float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := range octaves {
		v := valueNoise2D(x*frequency, z*frequency, seed+int64(i*131))
		sum += v * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0.5
	}
	return sum / norm // [0,1]
}

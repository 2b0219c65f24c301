package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when no path is given.
const EnvConfigPath = "VOXEL_CONFIG"

// ErrInvalidSettings wraps every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Stream modes
const (
	StreamColumn = "column" // every chunk layer of an in-range column
	StreamFlat   = "flat"   // chunk layer y=0 only
)

// Noise sources
const (
	NoisePerlin = "perlin"
	NoiseValue  = "value"
)

// Policies for chunks whose every cell is solid
const (
	FullChunkSkip  = "skip"
	FullChunkMesh  = "mesh"
	FullChunkShell = "shell"
)

// Settings is the root configuration. Sizes are fixed for the lifetime of a world.
type Settings struct {
	World    WorldSettings   `yaml:"world"`
	Render   RenderSettings  `yaml:"render"`
	Terrain  TerrainSettings `yaml:"terrain"`
	LogLevel string          `yaml:"log_level"`
}

// WorldSettings holds the world dimensions
type WorldSettings struct {
	ChunkSize      int    `yaml:"chunk_size"`
	SizeInChunks   int    `yaml:"size_in_chunks"`
	HeightInChunks int    `yaml:"height_in_chunks"`
	StreamMode     string `yaml:"stream_mode"`
}

// Size returns the world width on x and z in blocks
func (w WorldSettings) Size() int { return w.ChunkSize * w.SizeInChunks }

// Height returns the world height in blocks
func (w WorldSettings) Height() int { return w.ChunkSize * w.HeightInChunks }

// TerrainSettings holds noise and height remapping parameters
type TerrainSettings struct {
	Noise       string       `yaml:"noise"`
	Seed        int64        `yaml:"seed"`
	Scale       float64      `yaml:"scale"`
	Frequency   float64      `yaml:"frequency"`
	Octaves     int          `yaml:"octaves"`
	Persistence float64      `yaml:"persistence"`
	Lacunarity  float64      `yaml:"lacunarity"`
	SeaLevel    int          `yaml:"sea_level"`
	HeightCurve []CurvePoint `yaml:"height_curve"`
}

// CurvePoint maps a noise value to a terrain height in blocks
type CurvePoint struct {
	Noise  float64 `yaml:"noise"`
	Height float64 `yaml:"height"`
}

// DefaultHeightCurve is the stock noise to height remapping
func DefaultHeightCurve() []CurvePoint {
	return []CurvePoint{
		{Noise: -1.0, Height: 5},
		{Noise: -0.8, Height: 10},
		{Noise: -0.4, Height: 40},
		{Noise: -0.3, Height: 40},
		{Noise: -0.1, Height: 80},
		{Noise: 0.0, Height: 80},
		{Noise: 1.0, Height: 127},
	}
}

// Default returns the stock settings
func Default() Settings {
	return Settings{
		World: WorldSettings{
			ChunkSize:      32,
			SizeInChunks:   32,
			HeightInChunks: 5,
			StreamMode:     StreamColumn,
		},
		Render: RenderSettings{
			Distance:          4,
			AtlasSizeInBlocks: 4,
			FullChunkPolicy:   FullChunkSkip,
			FPSLimit:          120,
		},
		Terrain: TerrainSettings{
			Noise:       NoisePerlin,
			Seed:        0,
			Scale:       500,
			Frequency:   2,
			Octaves:     4,
			Persistence: 0.5,
			Lacunarity:  2,
			HeightCurve: DefaultHeightCurve(),
		},
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults.
// If path is empty, VOXEL_CONFIG is consulted; with neither set the defaults are returned.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := Parse(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Parse decodes YAML into s, keeping any field the document leaves out.
// Sequences such as terrain.height_curve are replaced, not merged.
func Parse(data []byte, s *Settings) error {
	return yaml.Unmarshal(data, s)
}

// Validate refuses configurations that would make streaming inconsistent.
func (s Settings) Validate() error {
	w := s.World
	switch {
	case w.ChunkSize <= 0:
		return invalid("world.chunk_size must be positive, got %d", w.ChunkSize)
	case w.SizeInChunks <= 0 || w.SizeInChunks%2 != 0:
		return invalid("world.size_in_chunks must be a positive even number, got %d", w.SizeInChunks)
	case w.HeightInChunks <= 0:
		return invalid("world.height_in_chunks must be positive, got %d", w.HeightInChunks)
	case w.StreamMode != StreamColumn && w.StreamMode != StreamFlat:
		return invalid("world.stream_mode %q is not %q or %q", w.StreamMode, StreamColumn, StreamFlat)
	}

	r := s.Render
	switch {
	case r.Distance < MinRenderDistance:
		return invalid("render.distance must be at least %d, got %d", MinRenderDistance, r.Distance)
	case 2*r.Distance+1 > w.SizeInChunks:
		return invalid("render.distance %d needs %d chunks across but the world has %d",
			r.Distance, 2*r.Distance+1, w.SizeInChunks)
	case r.AtlasSizeInBlocks <= 0:
		return invalid("render.atlas_size_in_blocks must be positive, got %d", r.AtlasSizeInBlocks)
	case r.MaxGeneratePerTick < 0 || r.MaxSpawnPerTick < 0:
		return invalid("render per-tick limits must not be negative")
	case r.FullChunkPolicy != FullChunkSkip && r.FullChunkPolicy != FullChunkMesh && r.FullChunkPolicy != FullChunkShell:
		return invalid("render.full_chunk_policy %q is unknown", r.FullChunkPolicy)
	}

	t := s.Terrain
	switch {
	case t.Noise != NoisePerlin && t.Noise != NoiseValue:
		return invalid("terrain.noise %q is not %q or %q", t.Noise, NoisePerlin, NoiseValue)
	case t.Scale <= 0:
		return invalid("terrain.scale must be positive, got %g", t.Scale)
	case t.Frequency <= 0:
		return invalid("terrain.frequency must be positive, got %g", t.Frequency)
	case t.Octaves <= 0:
		return invalid("terrain.octaves must be positive, got %d", t.Octaves)
	case t.Persistence <= 0 || t.Persistence >= 1:
		return invalid("terrain.persistence must be in (0,1), got %g", t.Persistence)
	case t.Lacunarity <= 1:
		return invalid("terrain.lacunarity must be above 1, got %g", t.Lacunarity)
	case len(t.HeightCurve) < 2:
		return invalid("terrain.height_curve needs at least 2 points, got %d", len(t.HeightCurve))
	case t.SeaLevel < 0:
		return invalid("terrain.sea_level must not be negative, got %d", t.SeaLevel)
	}
	pts := append([]CurvePoint(nil), t.HeightCurve...)
	sort.Slice(pts, func(i, j int) bool { return pts[i].Noise < pts[j].Noise })
	for i := 1; i < len(pts); i++ {
		if pts[i].Noise == pts[i-1].Noise {
			return invalid("terrain.height_curve has two points at noise %g", pts[i].Noise)
		}
	}

	if _, err := ParseLevel(s.LogLevel); err != nil {
		return invalid("%v", err)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSettings, fmt.Sprintf(format, args...))
}

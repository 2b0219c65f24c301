package config

// RenderSettings holds streaming and display configuration
type RenderSettings struct {
	Distance          int `yaml:"distance"` // in chunks
	AtlasSizeInBlocks int `yaml:"atlas_size_in_blocks"`
	// Per-tick work bounds; 0 drains the queue fully.
	MaxGeneratePerTick int    `yaml:"max_generate_per_tick"`
	MaxSpawnPerTick    int    `yaml:"max_spawn_per_tick"`
	FullChunkPolicy    string `yaml:"full_chunk_policy"`
	FPSLimit           int    `yaml:"fps_limit"`
}

// MinRenderDistance is the smallest render distance Validate accepts
const MinRenderDistance = 1

// MaxRenderDistance returns the largest distance the world can hold
func (s Settings) MaxRenderDistance() int {
	return (s.World.SizeInChunks - 1) / 2
}

// SetRenderDistance sets the render distance in chunks, clamped to what the world can hold
func (s *Settings) SetRenderDistance(distance int) {
	if distance < MinRenderDistance {
		distance = MinRenderDistance
	}
	if m := s.MaxRenderDistance(); distance > m {
		distance = m
	}
	s.Render.Distance = distance
}

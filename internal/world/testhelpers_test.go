package world

import (
	"crypto/sha256"
	"testing"

	"voxelstream/internal/config"
)

// testSettings is a small world that still fits the stock height curve (max 127).
func testSettings() config.Settings {
	s := config.Default()
	s.World.ChunkSize = 16
	s.World.SizeInChunks = 8
	s.World.HeightInChunks = 9
	s.Render.Distance = 2
	return s
}

func newTestWorld(t testing.TB, s config.Settings) (*Volume, *Generator) {
	t.Helper()
	g, err := NewGenerator(s.Terrain)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return NewVolume(NewBounds(s.World)), g
}

// hashVolume computes a SHA-256 hash of every block in the volume
func hashVolume(v *Volume) [32]byte {
	return sha256.Sum256(blockBytes(v))
}

func blockBytes(v *Volume) []byte {
	out := make([]byte, len(v.blocks))
	for i, b := range v.blocks {
		out[i] = byte(b)
	}
	return out
}

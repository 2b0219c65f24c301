package streaming

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"voxelstream/internal/config"
	"voxelstream/internal/display"
	"voxelstream/internal/metrics"
	"voxelstream/internal/world"
)

// testSettings is an 8x9x8 chunk world of 16^3 chunks
func testSettings(distance int) config.Settings {
	s := config.Default()
	s.World.ChunkSize = 16
	s.World.SizeInChunks = 8
	s.World.HeightInChunks = 9
	s.Render.Distance = distance
	return s
}

func newTestController(t *testing.T, s config.Settings) (*Controller, *display.Recorder, *metrics.Streaming) {
	t.Helper()
	rec := display.NewRecorder()
	m := metrics.NewStreaming(nil)
	c, err := NewController(s, rec, m)
	require.NoError(t, err)
	return c, rec, m
}

// at returns a world position inside chunk column (cx, cz)
func at(cx, cz int) mgl32.Vec3 {
	return mgl32.Vec3{float32(cx*16 + 8), 60, float32(cz*16 + 8)}
}

// neighborhood lists the valid coordinates within distance of the last observer chunk
func neighborhood(c *Controller) map[world.ChunkCoord]bool {
	last, _ := c.LastChunk()
	d := c.Distance()
	out := make(map[world.ChunkCoord]bool)
	for x := last.X - d; x <= last.X+d; x++ {
		for z := last.Z - d; z <= last.Z+d; z++ {
			for y := 0; y <= c.topLayer(); y++ {
				coord := world.ChunkCoord{X: x, Y: y, Z: z}
				if c.bounds.Valid(coord) {
					out[coord] = true
				}
			}
		}
	}
	return out
}

// assertSettled checks the state a controller must be in once both queues are empty
func assertSettled(t *testing.T, c *Controller, rec *display.Recorder) {
	t.Helper()
	g, s := c.Pending()
	require.Zero(t, g, "generate queue not empty")
	require.Zero(t, s, "spawn queue not empty")

	want := neighborhood(c)
	active := c.Active()
	require.Len(t, active, len(want))
	for _, coord := range active {
		require.True(t, want[coord], "chunk %s active but out of range", coord)
	}

	c.chunks.Each(func(ch *Chunk, h display.Handle) {
		if !want[ch.Coord] {
			require.Zero(t, h, "chunk %s out of range holds a handle", ch.Coord)
			return
		}
		require.Equal(t, StatusDisplayed, ch.Status, "chunk %s", ch.Coord)
		visible := !ch.Mesh.Empty()
		require.Equal(t, visible, h != 0, "chunk %s full=%v faces=%d handle=%d", ch.Coord, ch.Full, ch.Mesh.Faces(), h)
	})
	require.Equal(t, c.Handles(), rec.Live())
}

// Package streaming owns the voxel volume and moves chunks through their lifecycle:
// queued for generation, generated and meshed, queued for display, displayed, evicted.
// Everything runs on the caller's goroutine.
package streaming

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"voxelstream/internal/config"
	"voxelstream/internal/display"
	"voxelstream/internal/logging"
	"voxelstream/internal/meshing"
	"voxelstream/internal/metrics"
	"voxelstream/internal/profiling"
	"voxelstream/internal/world"
)

// spawnItem is a chunk whose geometry is ready for the display
type spawnItem struct {
	coord world.ChunkCoord
	full  bool
}

// Stats counts lifecycle transitions since the controller was created
type Stats struct {
	Generated int
	Meshed    int
	Spawned   int
	Respawned int
	Evicted   int
	Discarded int
}

// Controller is the chunk lifecycle state machine. It is not safe for concurrent use.
type Controller struct {
	settings config.Settings
	bounds   world.Bounds
	volume   *world.Volume
	gen      *world.Generator
	display  display.Display
	metrics  *metrics.Streaming
	tracer   trace.Tracer
	log      *logging.Logger

	chunks    *ChunkMap
	active    *ActiveChunks
	generateQ stack[world.ChunkCoord]
	spawnQ    stack[spawnItem]

	last    world.ChunkCoord
	hasLast bool
	stats   Stats
}

// NewController validates s and allocates the world volume.
// m may be nil, in which case counters are kept but not registered anywhere.
func NewController(s config.Settings, d display.Display, m *metrics.Streaming) (*Controller, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("streaming: nil display")
	}
	gen, err := world.NewGenerator(s.Terrain)
	if err != nil {
		return nil, fmt.Errorf("streaming: %w", err)
	}
	if m == nil {
		m = metrics.NewStreaming(nil)
	}
	b := world.NewBounds(s.World)
	return &Controller{
		settings: s,
		bounds:   b,
		volume:   world.NewVolume(b),
		gen:      gen,
		display:  d,
		metrics:  m,
		tracer:   otel.Tracer("voxelstream/streaming"),
		log:      logging.Default(),
		chunks:   NewChunkMap(b),
		active:   NewActiveChunks(b),
	}, nil
}

// Bounds returns the world bounds
func (c *Controller) Bounds() world.Bounds { return c.bounds }

// Volume returns the voxel volume. Callers must treat it as read-only.
func (c *Controller) Volume() *world.Volume { return c.volume }

// Chunk returns the lifecycle record at coord, or nil
func (c *Controller) Chunk(coord world.ChunkCoord) *Chunk { return c.chunks.Get(coord) }

// Handle returns the display handle at coord, or 0
func (c *Controller) Handle(coord world.ChunkCoord) display.Handle { return c.chunks.Handle(coord) }

// Stats returns the transition counters
func (c *Controller) Stats() Stats { return c.stats }

// Handles returns the number of live display handles
func (c *Controller) Handles() int { return c.chunks.Handles() }

// Active returns the coordinates currently in range
func (c *Controller) Active() []world.ChunkCoord { return c.active.Coords() }

// IsActive reports whether coord is in the active set
func (c *Controller) IsActive(coord world.ChunkCoord) bool { return c.active.Contains(coord) }

// LastChunk returns the observer chunk the neighborhood was last computed for
func (c *Controller) LastChunk() (world.ChunkCoord, bool) { return c.last, c.hasLast }

// Pending returns how many entries wait in the generate and spawn queues
func (c *Controller) Pending() (generate, spawn int) {
	return c.generateQ.size(), c.spawnQ.size()
}

// SurfaceHeight returns the terrain height of world column (x, z) without writing the volume
func (c *Controller) SurfaceHeight(x, z int) int { return c.gen.Threshold(x, z) }

// Distance returns the render distance in chunks
func (c *Controller) Distance() int { return c.settings.Render.Distance }

// SpawnWorld seeds the generate queue with the neighborhood of the observer's starting chunk.
// Columns are pushed outermost first so the innermost are popped first.
func (c *Controller) SpawnWorld(pos mgl32.Vec3) {
	defer profiling.Track("streaming.SpawnWorld")()
	center := c.bounds.ChunkAt(pos)
	c.last = center
	c.hasLast = true
	n := c.enqueueNeighborhood(center)
	c.log.Infof("spawn world around chunk %s: %d chunks queued (distance %d)", center, n, c.Distance())
	c.updateGauges()
}

// EnqueueGenerate queues coord for terrain generation. It is a no-op for coordinates
// outside the world and for coordinates that already have a record.
func (c *Controller) EnqueueGenerate(coord world.ChunkCoord) bool {
	if !c.bounds.Valid(coord) || c.chunks.Get(coord) != nil {
		return false
	}
	c.chunks.put(&Chunk{Coord: coord, Status: StatusQueuedGenerate})
	c.generateQ.push(coord)
	return true
}

// requeue brings an evicted chunk back without regenerating its terrain
func (c *Controller) requeue(ch *Chunk) {
	ch.Status = StatusQueuedSpawn
	c.active.Add(ch.Coord)
	c.spawnQ.push(spawnItem{coord: ch.Coord, full: ch.Full})
	c.stats.Respawned++
	c.metrics.Respawned.Inc()
}

// enqueueNeighborhood queues every chunk in range of center that is unknown or evicted
func (c *Controller) enqueueNeighborhood(center world.ChunkCoord) int {
	n := 0
	for _, col := range reversed(spiral(center.X, center.Z, c.Distance())) {
		// highest layer first so y=0 of each column leaves the stack first
		for y := c.topLayer(); y >= 0; y-- {
			coord := world.ChunkCoord{X: col.X, Y: y, Z: col.Z}
			ch := c.chunks.Get(coord)
			switch {
			case ch == nil:
				if c.EnqueueGenerate(coord) {
					n++
				}
			case ch.Status == StatusEvicted:
				c.requeue(ch)
				n++
			}
		}
	}
	return n
}

func (c *Controller) topLayer() int {
	if c.settings.World.StreamMode == config.StreamFlat {
		return 0
	}
	return c.bounds.HeightInChunks - 1
}

// inRange reports whether coord belongs to the neighborhood of the last observer chunk
func (c *Controller) inRange(coord world.ChunkCoord) bool {
	if !c.hasLast || !c.bounds.Valid(coord) || coord.Y > c.topLayer() {
		return false
	}
	d := c.Distance()
	return abs(coord.X-c.last.X) <= d && abs(coord.Z-c.last.Z) <= d
}

// DrainGenerate pops up to limit coordinates (all when limit <= 0), generates terrain
// and mesh for each, and queues them for display. Entries that left the neighborhood
// while queued are dropped and may be queued again later.
func (c *Controller) DrainGenerate(ctx context.Context, limit int) (int, error) {
	defer profiling.Track("streaming.DrainGenerate")()
	ctx, span := c.tracer.Start(ctx, "streaming.DrainGenerate")
	defer span.End()

	generated, discarded := 0, 0
	for limit <= 0 || generated < limit {
		if err := ctx.Err(); err != nil {
			return generated, err
		}
		coord, ok := c.generateQ.pop()
		if !ok {
			break
		}
		ch := c.chunks.Get(coord)
		if ch == nil || ch.Status != StatusQueuedGenerate {
			continue
		}
		if !c.inRange(coord) {
			c.chunks.remove(coord)
			c.stats.Discarded++
			c.metrics.Discarded.Inc()
			discarded++
			continue
		}
		c.generate(ch)
		generated++
	}

	span.SetAttributes(
		attribute.Int("chunks.generated", generated),
		attribute.Int("chunks.discarded", discarded),
	)
	if generated > 0 {
		c.log.Debugf("generated %d chunks, %d discarded, %d queued", generated, discarded, c.generateQ.size())
	}
	c.updateGauges()
	return generated, nil
}

func (c *Controller) generate(ch *Chunk) {
	defer profiling.Track("streaming.generate")()
	ch.Full = c.gen.Populate(c.volume, ch.Coord)
	ch.Status = StatusGenerated
	c.stats.Generated++
	c.metrics.Generated.Inc()
	ch.Mesh = c.buildMesh(ch)

	ch.Status = StatusQueuedSpawn
	c.spawnQ.push(spawnItem{coord: ch.Coord, full: ch.Full})
	c.active.Add(ch.Coord)
}

// buildMesh extracts geometry for a generated chunk according to the full chunk policy.
// A full chunk under the skip policy gets no mesh.
func (c *Controller) buildMesh(ch *Chunk) *meshing.Buffer {
	atlas := c.settings.Render.AtlasSizeInBlocks
	if ch.Full {
		switch c.settings.Render.FullChunkPolicy {
		case config.FullChunkSkip:
			return nil
		case config.FullChunkShell:
			c.stats.Meshed++
			c.metrics.Meshed.Inc()
			return meshing.CreateShellMesh(ch.Coord, c.volume, atlas)
		}
	}
	c.stats.Meshed++
	c.metrics.Meshed.Inc()
	return meshing.CreateMesh(ch.Coord, c.volume, atlas)
}

// DrainSpawn pops up to limit queued chunks (all when limit <= 0) and hands their
// geometry to the display. Chunks without visible geometry become displayed without a handle.
func (c *Controller) DrainSpawn(ctx context.Context, limit int) (int, error) {
	defer profiling.Track("streaming.DrainSpawn")()
	_, span := c.tracer.Start(ctx, "streaming.DrainSpawn")
	defer span.End()

	spawned, created := 0, 0
	for limit <= 0 || spawned < limit {
		if err := ctx.Err(); err != nil {
			return spawned, err
		}
		item, ok := c.spawnQ.pop()
		if !ok {
			break
		}
		ch := c.chunks.Get(item.coord)
		if ch == nil || ch.Status != StatusQueuedSpawn {
			continue
		}
		if c.spawn(ch, item.full) {
			created++
		}
		spawned++
	}

	span.SetAttributes(
		attribute.Int("chunks.spawned", spawned),
		attribute.Int("display.created", created),
	)
	c.updateGauges()
	return spawned, nil
}

func (c *Controller) spawn(ch *Chunk, full bool) bool {
	if ch.Mesh == nil && !(full && c.settings.Render.FullChunkPolicy == config.FullChunkSkip) {
		// evicted chunks come back without a mesh
		ch.Mesh = c.buildMesh(ch)
	}
	ch.Status = StatusDisplayed
	c.stats.Spawned++
	c.metrics.Spawned.Inc()
	if ch.Mesh.Empty() {
		return false
	}
	h := c.display.Create(ch.Mesh, c.bounds.Transform(ch.Coord))
	c.chunks.setHandle(ch.Coord, h)
	return h != 0
}

// Evict releases the display handle at coord, if any, and removes coord from the
// active set. Terrain stays in the volume. Evicting a chunk that is neither active
// nor displayed does nothing.
func (c *Controller) Evict(coord world.ChunkCoord) {
	h := c.chunks.Handle(coord)
	wasActive := c.active.Remove(coord)
	if h == 0 && !wasActive {
		return
	}
	if h != 0 {
		c.display.Destroy(h)
		c.chunks.setHandle(coord, 0)
	}
	if ch := c.chunks.Get(coord); ch != nil && ch.Generated() {
		ch.Status = StatusEvicted
		ch.Mesh = nil
	}
	c.stats.Evicted++
	c.metrics.Evicted.Inc()
}

// CheckRenderDistance recomputes the neighborhood when the observer enters a new column.
// Vertical movement alone never triggers it. It reports whether anything changed.
func (c *Controller) CheckRenderDistance(pos mgl32.Vec3) bool {
	defer profiling.Track("streaming.CheckRenderDistance")()
	current := c.bounds.ChunkAt(pos)
	if c.hasLast && current.X == c.last.X && current.Z == c.last.Z {
		return false
	}
	prev := c.last
	c.last = current
	c.hasLast = true

	queued := c.enqueueNeighborhood(current)

	evicted := 0
	for _, coord := range c.active.Coords() {
		if !c.inRange(coord) {
			c.Evict(coord)
			evicted++
		}
	}
	c.log.Debugf("observer moved %s -> %s: %d queued, %d evicted", prev, current, queued, evicted)
	c.updateGauges()
	return true
}

// Settle drains both queues until they are empty or ctx is done
func (c *Controller) Settle(ctx context.Context) error {
	for {
		g, s := c.Pending()
		if g == 0 && s == 0 {
			return nil
		}
		if _, err := c.DrainGenerate(ctx, 0); err != nil {
			return err
		}
		if _, err := c.DrainSpawn(ctx, 0); err != nil {
			return err
		}
	}
}

func (c *Controller) updateGauges() {
	c.metrics.Active.Set(float64(c.active.Len()))
	c.metrics.GenerateQLen.Set(float64(c.generateQ.size()))
	c.metrics.SpawnQLen.Set(float64(c.spawnQ.size()))
	c.metrics.Handles.Set(float64(c.chunks.Handles()))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

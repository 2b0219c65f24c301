package streaming

import (
	"voxelstream/internal/display"
	"voxelstream/internal/meshing"
	"voxelstream/internal/world"
)

// Status is the lifecycle stage of a chunk
type Status uint8

const (
	StatusUnknown Status = iota
	StatusQueuedGenerate
	StatusGenerated
	StatusQueuedSpawn
	StatusDisplayed
	StatusEvicted
)

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusQueuedGenerate:
		return "queued-generate"
	case StatusGenerated:
		return "generated"
	case StatusQueuedSpawn:
		return "queued-spawn"
	case StatusDisplayed:
		return "displayed"
	case StatusEvicted:
		return "evicted"
	}
	return "invalid"
}

// Chunk is the lifecycle record of one chunk coordinate.
// Terrain lives in the shared volume, so the record only carries what meshing produced.
type Chunk struct {
	Coord  world.ChunkCoord
	Status Status
	// Full is set when every cell inside the chunk is solid
	Full bool
	// Mesh is nil before generation and after eviction
	Mesh *meshing.Buffer
}

// Generated reports whether terrain has been written for this chunk
func (c *Chunk) Generated() bool {
	return c.Status >= StatusGenerated
}

type slot struct {
	chunk  *Chunk
	handle display.Handle
}

// ChunkMap is a dense slot array with one entry per valid chunk coordinate.
type ChunkMap struct {
	bounds  world.Bounds
	slots   []slot
	records int
	handles int
}

// NewChunkMap allocates a slot for every chunk in the world
func NewChunkMap(b world.Bounds) *ChunkMap {
	return &ChunkMap{bounds: b, slots: make([]slot, b.NumChunks())}
}

func (m *ChunkMap) slot(c world.ChunkCoord) *slot {
	i := m.bounds.ChunkIndex(c)
	if i < 0 {
		return nil
	}
	return &m.slots[i]
}

// Get returns the record at c, or nil when there is none or c is outside the world
func (m *ChunkMap) Get(c world.ChunkCoord) *Chunk {
	if s := m.slot(c); s != nil {
		return s.chunk
	}
	return nil
}

// Status returns the lifecycle stage at c; coordinates without a record are unknown
func (m *ChunkMap) Status(c world.ChunkCoord) Status {
	if ch := m.Get(c); ch != nil {
		return ch.Status
	}
	return StatusUnknown
}

func (m *ChunkMap) put(ch *Chunk) {
	s := m.slot(ch.Coord)
	if s == nil {
		return
	}
	if s.chunk == nil {
		m.records++
	}
	s.chunk = ch
}

func (m *ChunkMap) remove(c world.ChunkCoord) {
	s := m.slot(c)
	if s == nil || s.chunk == nil {
		return
	}
	s.chunk = nil
	m.records--
}

// Handle returns the display handle at c, or 0
func (m *ChunkMap) Handle(c world.ChunkCoord) display.Handle {
	if s := m.slot(c); s != nil {
		return s.handle
	}
	return 0
}

func (m *ChunkMap) setHandle(c world.ChunkCoord, h display.Handle) {
	s := m.slot(c)
	if s == nil {
		return
	}
	switch {
	case s.handle == 0 && h != 0:
		m.handles++
	case s.handle != 0 && h == 0:
		m.handles--
	}
	s.handle = h
}

// Len returns the number of coordinates with a record
func (m *ChunkMap) Len() int { return m.records }

// Handles returns the number of coordinates holding a display handle
func (m *ChunkMap) Handles() int { return m.handles }

// Each calls fn for every record in slot order
func (m *ChunkMap) Each(fn func(ch *Chunk, h display.Handle)) {
	for i := range m.slots {
		if s := &m.slots[i]; s.chunk != nil {
			fn(s.chunk, s.handle)
		}
	}
}

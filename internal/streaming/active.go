package streaming

import "voxelstream/internal/world"

// ActiveChunks is the set of coordinates in range, kept as a list with swap-remove.
// pos maps a dense chunk index to its list position plus one; 0 means absent.
type ActiveChunks struct {
	bounds world.Bounds
	list   []world.ChunkCoord
	pos    []int
}

// NewActiveChunks returns an empty set for the world
func NewActiveChunks(b world.Bounds) *ActiveChunks {
	return &ActiveChunks{bounds: b, pos: make([]int, b.NumChunks())}
}

// Add inserts c and reports whether it was missing
func (a *ActiveChunks) Add(c world.ChunkCoord) bool {
	i := a.bounds.ChunkIndex(c)
	if i < 0 || a.pos[i] != 0 {
		return false
	}
	a.list = append(a.list, c)
	a.pos[i] = len(a.list)
	return true
}

// Remove deletes c by moving the last element into its place. Order is not kept.
func (a *ActiveChunks) Remove(c world.ChunkCoord) bool {
	i := a.bounds.ChunkIndex(c)
	if i < 0 || a.pos[i] == 0 {
		return false
	}
	at := a.pos[i] - 1
	last := len(a.list) - 1
	if at != last {
		moved := a.list[last]
		a.list[at] = moved
		a.pos[a.bounds.ChunkIndex(moved)] = at + 1
	}
	a.list = a.list[:last]
	a.pos[i] = 0
	return true
}

// Contains reports whether c is active
func (a *ActiveChunks) Contains(c world.ChunkCoord) bool {
	i := a.bounds.ChunkIndex(c)
	return i >= 0 && a.pos[i] != 0
}

func (a *ActiveChunks) Len() int { return len(a.list) }

// Coords returns a copy of the active coordinates in list order
func (a *ActiveChunks) Coords() []world.ChunkCoord {
	return append([]world.ChunkCoord(nil), a.list...)
}

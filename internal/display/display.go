// Package display is the boundary between chunk streaming and whatever draws the meshes.
package display

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"voxelstream/internal/meshing"
)

// Handle identifies a renderable owned by a Display. The zero Handle means none.
type Handle uint64

// Display creates and destroys renderable objects from mesh buffers.
// Create is never called with an empty buffer.
type Display interface {
	Create(mesh *meshing.Buffer, transform mgl32.Mat4) Handle
	Destroy(h Handle)
}

// Object is what a Recorder keeps for each live handle
type Object struct {
	Faces     int
	Transform mgl32.Mat4
}

// Recorder is an in-memory Display. It keeps counts and the live set, which makes
// it usable headless and in tests.
type Recorder struct {
	mu        sync.Mutex
	next      Handle
	live      map[Handle]Object
	created   int
	destroyed int
}

// NewRecorder returns an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{live: make(map[Handle]Object)}
}

func (r *Recorder) Create(mesh *meshing.Buffer, transform mgl32.Mat4) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.live[r.next] = Object{Faces: mesh.Faces(), Transform: transform}
	r.created++
	return r.next
}

// Destroy panics on a handle that is not live, since that is a bookkeeping bug in the caller.
func (r *Recorder) Destroy(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.live[h]; !ok {
		panic(fmt.Sprintf("display: destroy of unknown handle %d", h))
	}
	delete(r.live, h)
	r.destroyed++
}

// Live returns the number of handles currently alive
func (r *Recorder) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Lookup returns the object behind a live handle
func (r *Recorder) Lookup(h Handle) (Object, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.live[h]
	return o, ok
}

// Counts returns the total number of creations and destructions
func (r *Recorder) Counts() (created, destroyed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created, r.destroyed
}

// Faces sums the faces of every live object
func (r *Recorder) Faces() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, o := range r.live {
		n += o.Faces
	}
	return n
}

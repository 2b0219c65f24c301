package streaming

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Observer reports the world position streaming follows. It is polled once per tick.
type Observer interface {
	Position() mgl32.Vec3
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func() mgl32.Vec3

func (f ObserverFunc) Position() mgl32.Vec3 { return f() }

// FixedObserver is an Observer moved explicitly by its owner
type FixedObserver struct {
	mu  sync.Mutex
	pos mgl32.Vec3
}

// NewFixedObserver returns an observer standing at pos
func NewFixedObserver(pos mgl32.Vec3) *FixedObserver {
	return &FixedObserver{pos: pos}
}

func (o *FixedObserver) Position() mgl32.Vec3 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pos
}

// MoveTo places the observer at pos
func (o *FixedObserver) MoveTo(pos mgl32.Vec3) {
	o.mu.Lock()
	o.pos = pos
	o.mu.Unlock()
}

// Move offsets the observer by delta
func (o *FixedObserver) Move(delta mgl32.Vec3) {
	o.mu.Lock()
	o.pos = o.pos.Add(delta)
	o.mu.Unlock()
}

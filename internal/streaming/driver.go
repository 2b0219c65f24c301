package streaming

import (
	"context"

	"voxelstream/internal/profiling"
)

// TickStats summarizes one driver tick
type TickStats struct {
	Moved     bool
	Generated int
	Spawned   int
}

// Driver runs the streaming steps once per tick: follow the observer, then generate,
// then spawn. Generation always precedes the spawn it feeds.
type Driver struct {
	ctl         *Controller
	obs         Observer
	maxGenerate int
	maxSpawn    int
	started     bool
}

// NewDriver binds a controller to an observer. Per-tick bounds come from the
// controller's render settings; 0 drains a queue fully.
func NewDriver(ctl *Controller, obs Observer) *Driver {
	r := ctl.settings.Render
	return &Driver{
		ctl:         ctl,
		obs:         obs,
		maxGenerate: r.MaxGeneratePerTick,
		maxSpawn:    r.MaxSpawnPerTick,
	}
}

// Controller returns the driven controller
func (d *Driver) Controller() *Controller { return d.ctl }

// Tick advances streaming by one step. The first tick seeds the world around the observer.
func (d *Driver) Tick(ctx context.Context) (TickStats, error) {
	defer profiling.Track("streaming.Tick")()
	var st TickStats

	pos := d.obs.Position()
	if !d.started {
		d.ctl.SpawnWorld(pos)
		d.started = true
		st.Moved = true
	} else {
		st.Moved = d.ctl.CheckRenderDistance(pos)
	}

	var err error
	if st.Generated, err = d.ctl.DrainGenerate(ctx, d.maxGenerate); err != nil {
		return st, err
	}
	if st.Spawned, err = d.ctl.DrainSpawn(ctx, d.maxSpawn); err != nil {
		return st, err
	}
	return st, nil
}

// Idle reports whether both queues are empty
func (d *Driver) Idle() bool {
	g, s := d.ctl.Pending()
	return g == 0 && s == 0
}

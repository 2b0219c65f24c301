package metrics

import "github.com/prometheus/client_golang/prometheus"

// Streaming holds the chunk lifecycle counters and gauges.
type Streaming struct {
	Generated    prometheus.Counter
	Meshed       prometheus.Counter
	Spawned      prometheus.Counter
	Respawned    prometheus.Counter
	Evicted      prometheus.Counter
	Discarded    prometheus.Counter
	Active       prometheus.Gauge
	GenerateQLen prometheus.Gauge
	SpawnQLen    prometheus.Gauge
	Handles      prometheus.Gauge
}

// NewStreaming creates the collectors and registers them on reg.
// A nil reg leaves them unregistered, which is what tests usually want.
func NewStreaming(reg prometheus.Registerer) *Streaming {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxelstream", Subsystem: "chunks", Name: name, Help: help,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxelstream", Subsystem: "chunks", Name: name, Help: help,
		})
	}
	m := &Streaming{
		Generated:    counter("generated_total", "Chunks whose terrain was generated."),
		Meshed:       counter("meshed_total", "Mesh extractions, including re-extraction on respawn."),
		Spawned:      counter("spawned_total", "Chunks handed to the display."),
		Respawned:    counter("respawned_total", "Evicted chunks queued for display again without regeneration."),
		Evicted:      counter("evicted_total", "Chunks removed from the active set."),
		Discarded:    counter("discarded_total", "Queue entries dropped because they left render distance first."),
		Active:       gauge("active", "Chunks currently within render distance."),
		GenerateQLen: gauge("generate_queue_length", "Coordinates waiting for terrain and mesh."),
		SpawnQLen:    gauge("spawn_queue_length", "Chunks waiting for display hand-off."),
		Handles:      gauge("display_handles", "Live display handles."),
	}
	if reg != nil {
		reg.MustRegister(m.Generated, m.Meshed, m.Spawned, m.Respawned, m.Evicted, m.Discarded,
			m.Active, m.GenerateQLen, m.SpawnQLen, m.Handles)
	}
	return m
}

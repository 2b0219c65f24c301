package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lightweight per-tick CPU profiler. Every sample is also observed into a
// Prometheus histogram labelled by stage name.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)

	stageSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "voxelstream",
		Name:      "stage_duration_seconds",
		Help:      "Time spent in a tracked stage per call.",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
	}, []string{"stage"})
)

// Register exposes the stage histogram on reg.
func Register(reg prometheus.Registerer) error {
	return reg.Register(stageSeconds)
}

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("streaming.DrainGenerate")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
		stageSeconds.WithLabelValues(name).Observe(d.Seconds())
	}
}

// ResetFrame clears current per-tick totals. Call at the start of each tick.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of current per-tick totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// SumWithPrefix adds up every total whose name starts with prefix.
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var sum time.Duration
	for k, v := range frameTotals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// TopN formats the n largest totals of the current tick.
// Example: "streaming.DrainGenerate:4.2ms, meshing.CreateMesh:2.1ms"
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		parts = append(parts, fmt.Sprintf("%s:%.1fms", p.name, float64(p.dur.Microseconds())/1000.0))
	}
	return strings.Join(parts, ", ")
}

// Command voxstream-headless drives chunk streaming without a window. A scripted observer
// walks a straight line while the driver ticks against an in-memory display.
package main

import (
	"context"
	"flag"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"voxelstream/internal/config"
	"voxelstream/internal/display"
	"voxelstream/internal/logging"
	"voxelstream/internal/metrics"
	"voxelstream/internal/observability"
	"voxelstream/internal/profiling"
	"voxelstream/internal/streaming"
)

type options struct {
	configPath     string
	metricsAddr    string
	otlp           string
	otlpInsecure   bool
	ticks          int
	speed          float64
	heading        float64
	renderDistance int
	linger         bool
}

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the command and returns its exit code. Deferred cleanup, including the
// trace flush, has finished by the time it returns.
func execute(args []string) int {
	var o options
	fs := flag.NewFlagSet("voxstream-headless", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "path to a YAML config (default: $"+config.EnvConfigPath+")")
	fs.StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (empty to disable)")
	fs.StringVar(&o.otlp, "otlp", "", "export traces to this OTLP/HTTP endpoint, host:port (empty to disable)")
	fs.BoolVar(&o.otlpInsecure, "otlp-insecure", true, "use plain HTTP for the OTLP exporter")
	fs.IntVar(&o.ticks, "ticks", 600, "number of ticks to run")
	fs.Float64Var(&o.speed, "speed", 2, "observer speed in blocks per tick")
	fs.Float64Var(&o.heading, "heading", 0, "observer heading in degrees, 0 is +x")
	fs.IntVar(&o.renderDistance, "render-distance", 0, "override render.distance, clamped to what the world holds")
	fs.BoolVar(&o.linger, "linger", false, "keep serving metrics after the run until interrupted")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	settings, err := config.Load(o.configPath)
	if err != nil {
		log.Printf("config: %v", err)
		return 1
	}
	if o.renderDistance > 0 {
		settings.SetRenderDistance(o.renderDistance)
	}
	if err := logging.Configure(settings.LogLevel); err != nil {
		log.Printf("config: %v", err)
		return 1
	}
	if err := settings.CheckMemory(); err != nil {
		logging.Errorf("%v", err)
		return 1
	}
	logging.Infof("voxel volume: %s", humanize.IBytes(settings.VolumeBytes()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if o.otlp != "" {
		shutdown, err := observability.InitTelemetry(ctx, "voxstream-headless", o.otlp, o.otlpInsecure)
		if err != nil {
			logging.Errorf("telemetry: %v", err)
			return 1
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logging.Warnf("telemetry shutdown: %v", err)
			}
		}()
	}

	if err := run(ctx, settings, o); err != nil {
		logging.Errorf("%v", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, settings config.Settings, o options) error {
	reg := prometheus.NewRegistry()
	m := metrics.NewStreaming(reg)
	if err := profiling.Register(reg); err != nil {
		return err
	}

	rec := display.NewRecorder()
	ctl, err := streaming.NewController(settings, rec, m)
	if err != nil {
		return err
	}
	obs := streaming.NewFixedObserver(mgl32.Vec3{0.5, float32(ctl.SurfaceHeight(0, 0) + 2), 0.5})
	driver := streaming.NewDriver(ctl, obs)

	g, gctx := errgroup.WithContext(ctx)
	streamCtx, cancelServe := context.WithCancel(gctx)
	if o.metricsAddr != "" {
		g.Go(func() error { return metrics.Serve(streamCtx, o.metricsAddr, reg) })
	}
	g.Go(func() error {
		defer func() {
			if !o.linger {
				cancelServe()
			}
		}()
		return stream(gctx, driver, obs, o, rec)
	})
	err = g.Wait()
	cancelServe()
	return err
}

func stream(ctx context.Context, d *streaming.Driver, obs *streaming.FixedObserver, o options, rec *display.Recorder) error {
	rad := float64(mgl32.DegToRad(float32(o.heading)))
	step := mgl32.Vec3{float32(o.speed * math.Cos(rad)), 0, float32(o.speed * math.Sin(rad))}

	start := time.Now()
	moves := 0
	for i := 0; i < o.ticks; i++ {
		profiling.ResetFrame()
		st, err := d.Tick(ctx)
		if err != nil {
			return err
		}
		if st.Moved {
			moves++
		}
		obs.Move(step)
	}
	if err := d.Controller().Settle(ctx); err != nil {
		return err
	}

	ctl := d.Controller()
	last, _ := ctl.LastChunk()
	created, destroyed := rec.Counts()
	logging.Infof("settled after %d ticks in %v: observer chunk %s, %d column changes",
		o.ticks, time.Since(start).Round(time.Millisecond), last, moves)
	logging.Infof("active %d, handles %d (%d faces), created %d, destroyed %d",
		len(ctl.Active()), rec.Live(), rec.Faces(), created, destroyed)
	s := ctl.Stats()
	logging.Infof("generated %d, meshed %d, spawned %d, respawned %d, evicted %d, discarded %d",
		s.Generated, s.Meshed, s.Spawned, s.Respawned, s.Evicted, s.Discarded)
	if o.linger && o.metricsAddr != "" {
		logging.Infof("serving metrics until interrupted")
		<-ctx.Done()
	}
	return nil
}

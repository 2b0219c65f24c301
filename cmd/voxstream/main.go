package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/prometheus/client_golang/prometheus"

	"voxelstream/internal/config"
	"voxelstream/internal/game"
	"voxelstream/internal/logging"
	"voxelstream/internal/metrics"
	"voxelstream/internal/profiling"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var (
		configPath     = flag.String("config", "", "path to a YAML config (default: $"+config.EnvConfigPath+")")
		renderDistance = flag.Int("render-distance", 0, "override render.distance, clamped to what the world holds")
		metricsAddr    = flag.String("metrics-addr", "", "serve Prometheus metrics on this address (empty to disable)")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *renderDistance > 0 {
		settings.SetRenderDistance(*renderDistance)
	}
	if err := logging.Configure(settings.LogLevel); err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := settings.CheckMemory(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var streamMetrics *metrics.Streaming
	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		streamMetrics = metrics.NewStreaming(reg)
		if err := profiling.Register(reg); err != nil {
			logging.Warnf("stage histogram not registered: %v", err)
		}
		go func() {
			if err := metrics.Serve(ctx, *metricsAddr, reg); err != nil {
				logging.Errorf("metrics server: %v", err)
			}
		}()
	}

	if err := run(ctx, settings, streamMetrics); err != nil {
		logging.Errorf("%v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, settings config.Settings, m *metrics.Streaming) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		return err
	}
	defer window.Destroy()

	app, err := game.NewApp(window, settings, m)
	if err != nil {
		return err
	}
	defer app.Close()

	logging.Infof("world %dx%dx%d chunks of %d, render distance %d",
		settings.World.SizeInChunks, settings.World.HeightInChunks, settings.World.SizeInChunks,
		settings.World.ChunkSize, settings.Render.Distance)
	return app.Run(ctx)
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(1280, 720, "voxstream", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, err
	}

	// the FPS limiter paces frames instead of v-sync
	glfw.SwapInterval(0)
	return window, nil
}

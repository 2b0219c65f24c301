// Package game runs the interactive viewer: a GLFW window, a fly camera and the
// streaming driver stepping once per frame.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"voxelstream/internal/camera"
	"voxelstream/internal/config"
	"voxelstream/internal/graphics"
	"voxelstream/internal/input"
	"voxelstream/internal/logging"
	"voxelstream/internal/metrics"
	"voxelstream/internal/profiling"
	"voxelstream/internal/streaming"
)

const tilePixels = 16

// App owns the window and everything drawn into it
type App struct {
	window   *glfw.Window
	input    *input.Manager
	camera   *camera.FlyCamera
	display  *graphics.GLDisplay
	ctl      *streaming.Controller
	driver   *streaming.Driver
	limiter  *FPSLimiter
	settings config.Settings

	captured    bool
	showProfile bool

	lastTime     time.Time
	frames       int
	lastFPSCheck time.Time
}

// NewApp builds the viewer on a window whose GL context is current.
// m may be nil.
func NewApp(window *glfw.Window, s config.Settings, m *metrics.Streaming) (*App, error) {
	disp, err := graphics.NewGLDisplay(s.Render.AtlasSizeInBlocks, tilePixels)
	if err != nil {
		return nil, err
	}
	ctl, err := streaming.NewController(s, disp, m)
	if err != nil {
		disp.Close()
		return nil, err
	}

	width, height := window.GetFramebufferSize()
	spawnY := float32(ctl.SurfaceHeight(0, 0) + 3)
	cam := camera.New(mgl32.Vec3{0.5, spawnY, 0.5}, width, height)
	cam.FarPlane = float32((s.Render.Distance + 2) * s.World.ChunkSize * 2)
	disp.FogEnd = float32(s.Render.Distance * s.World.ChunkSize)

	a := &App{
		window:   window,
		input:    input.NewManager(),
		camera:   cam,
		display:  disp,
		ctl:      ctl,
		driver:   streaming.NewDriver(ctl, cam),
		limiter:  NewFPSLimiter(s.Render.FPSLimit),
		settings: s,
	}
	a.attach()
	return a, nil
}

func (a *App) attach() {
	a.input.Attach(a.window)
	a.window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if a.captured {
			a.camera.HandleMouse(x, y)
		}
	})
	a.window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft && action == glfw.Press && !a.captured {
			a.capture(true)
		}
	})
	a.window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gl.Viewport(0, 0, int32(w), int32(h))
		a.camera.SetViewport(w, h)
	})
	a.capture(true)
}

func (a *App) capture(on bool) {
	a.captured = on
	if on {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		a.camera.ResetMouse()
		return
	}
	a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}

// Run loops until the window closes or ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	a.lastTime = time.Now()
	a.lastFPSCheck = a.lastTime
	for !a.window.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if err := a.tick(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) tick(ctx context.Context) error {
	profiling.ResetFrame()
	start := time.Now()
	dt := start.Sub(a.lastTime).Seconds()
	a.lastTime = start

	glfw.PollEvents()
	a.handleInput(dt)

	if _, err := a.driver.Tick(ctx); err != nil {
		return fmt.Errorf("stream tick: %w", err)
	}

	fog := a.display.FogColor
	gl.ClearColor(fog.X(), fog.Y(), fog.Z(), 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	a.display.Draw(a.camera)
	a.window.SwapBuffers()

	if d := time.Since(start); d > 16*time.Millisecond {
		logging.Debugf("slow frame: %v. top stages: %s", d, profiling.TopN(5))
	}
	a.updateTitle()

	a.input.PostUpdate()
	a.limiter.Wait()
	return nil
}

func (a *App) handleInput(dt float64) {
	in := a.input
	if in.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}
	if in.JustPressed(input.ActionReleaseCursor) {
		a.capture(false)
	}
	if in.JustPressed(input.ActionToggleWireframe) {
		a.display.Wireframe = !a.display.Wireframe
	}
	if in.JustPressed(input.ActionToggleProfiling) {
		a.showProfile = !a.showProfile
	}
	if !a.captured {
		return
	}
	a.camera.Move(
		in.Axis(input.ActionMoveForward, input.ActionMoveBackward),
		in.Axis(input.ActionMoveRight, input.ActionMoveLeft),
		in.Axis(input.ActionMoveUp, input.ActionMoveDown),
		in.IsActive(input.ActionFast),
		dt,
	)
}

func (a *App) updateTitle() {
	a.frames++
	elapsed := time.Since(a.lastFPSCheck)
	if elapsed < time.Second {
		return
	}
	fps := float64(a.frames) / elapsed.Seconds()
	a.frames = 0
	a.lastFPSCheck = time.Now()

	live, drawn := a.display.Stats()
	gen, spawn := a.ctl.Pending()
	p := a.camera.Position()
	title := fmt.Sprintf("voxstream | %.0f fps | chunks %d drawn / %d live | queued %d+%d | %.0f %.0f %.0f",
		fps, drawn, live, gen, spawn, p.X(), p.Y(), p.Z())
	a.window.SetTitle(title)
	if a.showProfile {
		logging.Infof("frame: %s", profiling.TopN(6))
	}
}

// Close releases GPU resources
func (a *App) Close() {
	a.display.Close()
}

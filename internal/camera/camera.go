// Package camera holds the free-flying viewer camera and its view frustum.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// FlyCamera is a free camera driven by mouse look and six-axis movement.
// Yaw and Pitch are in degrees; yaw -90 looks down -z.
type FlyCamera struct {
	Pos         mgl32.Vec3
	Yaw         float64
	Pitch       float64
	Speed       float32 // blocks per second
	Sensitivity float64

	FOV         float32
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32

	lastX, lastY float64
	firstMouse   bool
}

// New places a camera at pos for a viewport of the given size
func New(pos mgl32.Vec3, width, height int) *FlyCamera {
	c := &FlyCamera{
		Pos:         pos,
		Yaw:         -90,
		Speed:       20,
		Sensitivity: 0.1,
		FOV:         60,
		NearPlane:   0.1,
		FarPlane:    1000,
		firstMouse:  true,
	}
	c.SetViewport(width, height)
	return c
}

// Position implements the streaming observer
func (c *FlyCamera) Position() mgl32.Vec3 { return c.Pos }

// SetViewport updates the aspect ratio; a zero height is ignored (minimized window)
func (c *FlyCamera) SetViewport(width, height int) {
	if height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

// HandleMouse turns the camera by the cursor movement since the last call.
func (c *FlyCamera) HandleMouse(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX, c.lastY = xpos, ypos
		c.firstMouse = false
		return
	}
	xoffset := (xpos - c.lastX) * c.Sensitivity
	yoffset := (c.lastY - ypos) * c.Sensitivity
	c.lastX, c.lastY = xpos, ypos

	c.Yaw += xoffset
	c.Pitch += yoffset
	if c.Pitch > 89.0 {
		c.Pitch = 89.0
	}
	if c.Pitch < -89.0 {
		c.Pitch = -89.0
	}
}

// ResetMouse makes the next HandleMouse call only record the cursor position
func (c *FlyCamera) ResetMouse() { c.firstMouse = true }

// Front returns the unit view direction
func (c *FlyCamera) Front() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(c.Yaw))
	p := mgl32.DegToRad(float32(c.Pitch))
	fx := float32(math.Cos(float64(y)) * math.Cos(float64(p)))
	fy := float32(math.Sin(float64(p)))
	fz := float32(math.Sin(float64(y)) * math.Cos(float64(p)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

// Right returns the unit vector to the camera's right, parallel to the ground
func (c *FlyCamera) Right() mgl32.Vec3 {
	return c.Front().Cross(worldUp).Normalize()
}

// Move flies the camera. forward, right and up are axis inputs in [-1,1]; fast multiplies speed by 4.
func (c *FlyCamera) Move(forward, right, up float32, fast bool, dt float64) {
	dir := c.Front().Mul(forward).Add(c.Right().Mul(right)).Add(worldUp.Mul(up))
	if dir.Len() == 0 {
		return
	}
	speed := c.Speed
	if fast {
		speed *= 4
	}
	c.Pos = c.Pos.Add(dir.Normalize().Mul(speed * float32(dt)))
}

// View returns the world-to-camera matrix
func (c *FlyCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Pos, c.Pos.Add(c.Front()), worldUp)
}

// Projection returns the perspective matrix
func (c *FlyCamera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

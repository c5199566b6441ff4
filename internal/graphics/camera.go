package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	AspectRatio float32
	FOV         float32 // vertical, degrees
	NearPlane   float32
	FarPlane    float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
}

func NewCamera(fov, aspect, near, far float32) *Camera {
	return &Camera{
		AspectRatio: aspect,
		FOV:         fov,
		NearPlane:   near,
		FarPlane:    far,
		Up:          mgl32.Vec3{0, 1, 0},
	}
}

// SetViewport recomputes the aspect ratio. Degenerate sizes are ignored so a
// minimized window keeps the last usable projection.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

// LookAt points the camera at target without moving it.
func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

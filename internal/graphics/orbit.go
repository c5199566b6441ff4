package graphics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const polarEpsilon = 1e-4

// OrbitControls rotates a camera around its target on a sphere. Dragging with
// the left button orbits, scrolling dollies, and when idle the camera can spin
// around the Y axis on its own.
type OrbitControls struct {
	camera *Camera

	Enabled         bool
	AutoRotate      bool
	AutoRotateSpeed float32 // 2.0 is one revolution per 30 seconds
	RotateSpeed     float32
	ZoomSpeed       float32
	MinDistance     float32
	MaxDistance     float32

	viewportHeight float32
	dragging       bool
	lastX, lastY   float64

	thetaDelta float32
	phiDelta   float32
	scale      float32
}

// NewOrbitControls orbits cam around its current target.
func NewOrbitControls(cam *Camera) *OrbitControls {
	return &OrbitControls{
		camera:          cam,
		Enabled:         true,
		AutoRotateSpeed: 2.0,
		RotateSpeed:     1.0,
		ZoomSpeed:       1.0,
		MinDistance:     0,
		MaxDistance:     math32.Inf(1),
		viewportHeight:  1,
		scale:           1,
	}
}

// SetViewport sets the height used to convert drag pixels into angles.
func (o *OrbitControls) SetViewport(width, height int) {
	if height > 0 {
		o.viewportHeight = float32(height)
	}
}

// Spherical returns the camera offset from the target as radius, azimuth
// theta (around +Y, measured from +Z) and polar angle phi (from +Y).
func (o *OrbitControls) Spherical() (radius, theta, phi float32) {
	offset := o.camera.Position.Sub(o.camera.Target)
	radius = offset.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	theta = math32.Atan2(offset.X(), offset.Z())
	phi = math32.Acos(mgl32.Clamp(offset.Y()/radius, -1, 1))
	return radius, theta, phi
}

// Dragging reports whether a rotate drag is in progress.
func (o *OrbitControls) Dragging() bool {
	return o.dragging
}

// HandleButton starts or ends a rotate drag at the given cursor position.
func (o *OrbitControls) HandleButton(pressed bool, x, y float64) {
	if !o.Enabled {
		o.dragging = false
		return
	}
	o.dragging = pressed
	o.lastX, o.lastY = x, y
}

// HandleCursor accumulates rotation while dragging.
func (o *OrbitControls) HandleCursor(x, y float64) {
	if !o.Enabled || !o.dragging {
		return
	}
	dx := float32(x - o.lastX)
	dy := float32(y - o.lastY)
	o.lastX, o.lastY = x, y

	o.thetaDelta -= 2 * math32.Pi * dx / o.viewportHeight * o.RotateSpeed
	o.phiDelta -= 2 * math32.Pi * dy / o.viewportHeight * o.RotateSpeed
}

// HandleScroll dollies in for positive offsets and out for negative ones.
func (o *OrbitControls) HandleScroll(yoff float64) {
	if !o.Enabled || yoff == 0 {
		return
	}
	step := math32.Pow(0.95, o.ZoomSpeed)
	if yoff > 0 {
		o.scale *= step
	} else {
		o.scale /= step
	}
}

// Update applies pending input and auto rotation, then moves the camera.
func (o *OrbitControls) Update(dt float64) {
	radius, theta, phi := o.Spherical()
	if radius == 0 {
		return
	}

	if o.AutoRotate && !o.dragging {
		theta -= o.autoRotationAngle(dt)
	}
	theta += o.thetaDelta
	phi = mgl32.Clamp(phi+o.phiDelta, polarEpsilon, math32.Pi-polarEpsilon)
	radius = mgl32.Clamp(radius*o.scale, o.MinDistance, o.MaxDistance)

	sinPhi := math32.Sin(phi)
	offset := mgl32.Vec3{
		radius * sinPhi * math32.Sin(theta),
		radius * math32.Cos(phi),
		radius * sinPhi * math32.Cos(theta),
	}
	o.camera.Position = o.camera.Target.Add(offset)

	o.thetaDelta, o.phiDelta, o.scale = 0, 0, 1
}

func (o *OrbitControls) autoRotationAngle(dt float64) float32 {
	return 2 * math32.Pi / 60 * o.AutoRotateSpeed * float32(dt)
}

package outline

import (
	"toon-outline/internal/config"
	"toon-outline/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms mirrors the custom uniforms declared by the outline shaders.
type Uniforms struct {
	Time           float32
	Resolution     mgl32.Vec2
	PixelRatio     float32
	Mouse          mgl32.Vec2
	LightDirection mgl32.Vec3
	GlobalColor    mgl32.Vec3
	Gradient       float32
	Inflate        float32
	IsEdge         bool
}

func DefaultUniforms() Uniforms {
	return Uniforms{
		PixelRatio:     1,
		LightDirection: mgl32.Vec3{1, 1, 1},
		GlobalColor:    mgl32.Vec3{0.5, 1, 1},
		Gradient:       3,
		Inflate:        10,
	}
}

// UniformsFromConfig seeds the uniforms from the material section.
func UniformsFromConfig(m config.Material) Uniforms {
	u := DefaultUniforms()
	u.LightDirection = mgl32.Vec3(m.LightDirection)
	u.GlobalColor = mgl32.Vec3(m.Color)
	u.Gradient = m.Gradient
	u.Inflate = m.Inflate
	return u
}

// Apply writes every uniform by name.
func (u *Uniforms) Apply(s graphics.UniformSetter) {
	s.SetFloat("u_time", u.Time)
	s.SetVector2("u_resolution", u.Resolution.X(), u.Resolution.Y())
	s.SetFloat("u_pixelRatio", u.PixelRatio)
	s.SetVector2("u_mouse", u.Mouse.X(), u.Mouse.Y())
	s.SetVector3("u_lightDirection", u.LightDirection.X(), u.LightDirection.Y(), u.LightDirection.Z())
	s.SetVector3("u_globalColor", u.GlobalColor.X(), u.GlobalColor.Y(), u.GlobalColor.Z())
	s.SetFloat("u_gradient", u.Gradient)
	s.SetFloat("u_inflate", u.Inflate)
	s.SetBool("u_isEdge", u.IsEdge)
}

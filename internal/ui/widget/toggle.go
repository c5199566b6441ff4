package widget

import "github.com/go-gl/mathgl/mgl32"

const knobInset = 2

var (
	toggleOffColor = mgl32.Vec3{0.5, 0.2, 0.2}
	toggleOnColor  = mgl32.Vec3{0.2, 0.5, 0.2}
	knobColor      = mgl32.Vec3{0.9, 0.9, 0.9}
)

// Toggle is an on/off switch. It draws only the switch; callers place the label.
type Toggle struct {
	BaseComponent
	Label     string
	IsOn      bool
	OnToggle  func(isOn bool)
	IsHovered bool
}

func NewToggle(label string, x, y, w, h float32, initial bool, onToggle func(isOn bool)) *Toggle {
	return &Toggle{
		BaseComponent: BaseComponent{X: x, Y: y, W: w, H: h},
		Label:         label,
		IsOn:          initial,
		OnToggle:      onToggle,
	}
}

func (t *Toggle) Render(c Canvas, p Pointer) {
	t.IsHovered = t.Contains(p.X, p.Y)

	track := toggleOffColor
	if t.IsOn {
		track = toggleOnColor
	}
	if t.IsHovered {
		track = track.Mul(1.2)
	}
	c.DrawFilledRect(t.X, t.Y, t.W, t.H, track, 0.85)

	size := t.H - 2*knobInset
	x := t.X + knobInset
	if t.IsOn {
		x = t.X + t.W - size - knobInset
	}
	c.DrawFilledRect(x, t.Y+knobInset, size, size, knobColor, 0.95)
}

// HandleInput flips the switch on a press inside it.
func (t *Toggle) HandleInput(p Pointer) bool {
	if !p.JustPressed || !t.Contains(p.X, p.Y) {
		return false
	}
	t.IsOn = !t.IsOn
	if t.OnToggle != nil {
		t.OnToggle(t.IsOn)
	}
	return true
}

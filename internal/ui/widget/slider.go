package widget

import "github.com/go-gl/mathgl/mgl32"

type Slider struct {
	BaseComponent
	Value    float32 // 0.0 to 1.0
	Steps    int
	ID       string
	Label    string
	OnChange func(val float32)

	dragging bool
}

func NewSlider(x, y, w, h float32, initialVal float32, steps int, id string, onChange func(val float32)) *Slider {
	return &Slider{
		BaseComponent: BaseComponent{X: x, Y: y, W: w, H: h},
		Value:         initialVal,
		Steps:         steps,
		ID:            id,
		OnChange:      onChange,
	}
}

// SnapToStep clamps v to [0,1] and, for steps > 1, rounds it to the nearest
// of steps evenly spaced values.
func SnapToStep(v float32, steps int) float32 {
	v = mgl32.Clamp(v, 0, 1)
	if steps > 1 {
		denom := float32(steps - 1)
		stepIndex := int(v*denom + 0.5)
		v = float32(stepIndex) / denom
	}
	return v
}

// Dragging reports whether this slider holds the pointer.
func (s *Slider) Dragging() bool {
	return s.dragging
}

// HandleInput starts a drag on press inside the track, follows the pointer
// while the button is held and releases on button up. OnChange fires only when
// the snapped value differs.
func (s *Slider) HandleInput(p Pointer) bool {
	switch {
	case s.dragging && !p.Down:
		s.dragging = false
		return false
	case !s.dragging && p.JustPressed && s.Contains(p.X, p.Y):
		s.dragging = true
	case !s.dragging:
		return false
	}

	v := SnapToStep((p.X-s.X)/s.W, s.Steps)
	if v != s.Value {
		s.Value = v
		if s.OnChange != nil {
			s.OnChange(s.Value)
		}
	}
	return true
}

// Render draws the track, step ticks (downsampled to about 10) and thumb.
func (s *Slider) Render(c Canvas, p Pointer) {
	x, y, w, h := s.X, s.Y, s.W, s.H
	c.DrawFilledRect(x, y, w, h, mgl32.Vec3{0.3, 0.3, 0.3}, 0.8)

	if s.Steps > 1 {
		tickHeight := h * 0.6
		tickY := y + (h-tickHeight)*0.5
		tickWidth := float32(2)
		tickColor := mgl32.Vec3{0.9, 0.9, 0.9}
		stepSpacing := max(s.Steps/10, 1)
		for i := 0; i < s.Steps; i++ {
			if i != 0 && i != s.Steps-1 && i%stepSpacing != 0 {
				continue
			}
			ratio := float32(i) / float32(s.Steps-1)
			c.DrawFilledRect(x+ratio*w-tickWidth*0.5, tickY, tickWidth, tickHeight, tickColor, 0.18)
		}
	}

	thumbWidth := float32(20)
	thumbColor := mgl32.Vec3{0.6, 0.6, 0.6}
	if s.dragging || s.Contains(p.X, p.Y) {
		thumbColor = mgl32.Vec3{0.75, 0.75, 0.75}
	}
	c.DrawFilledRect(x+(w-thumbWidth)*s.Value, y, thumbWidth, h, thumbColor, 0.9)
}

package widget

import "github.com/go-gl/mathgl/mgl32"

const (
	buttonTextScale = 0.4
	buttonPadding   = 8
	ellipsis        = "..."
)

var (
	buttonColor      = mgl32.Vec3{0.3, 0.3, 0.3}
	buttonHoverColor = mgl32.Vec3{0.4, 0.4, 0.4}
	buttonTextColor  = mgl32.Vec3{1, 1, 1}
)

// Button fires OnClick when pressed inside its bounds.
type Button struct {
	BaseComponent
	Text      string
	OnClick   func()
	IsHovered bool
}

func NewButton(text string, x, y, w, h float32, onClick func()) *Button {
	return &Button{
		BaseComponent: BaseComponent{X: x, Y: y, W: w, H: h},
		Text:          text,
		OnClick:       onClick,
	}
}

// Render draws the button with its label centered, cut with an ellipsis when
// it does not fit.
func (b *Button) Render(c Canvas, p Pointer) {
	b.IsHovered = b.Contains(p.X, p.Y)
	color := buttonColor
	if b.IsHovered {
		color = buttonHoverColor
	}
	c.DrawFilledRect(b.X, b.Y, b.W, b.H, color, 1.0)

	label := FitText(c, b.Text, buttonTextScale, b.W-2*buttonPadding)
	tw, th := c.MeasureText(label, buttonTextScale)
	c.DrawText(label, b.X+(b.W-tw)/2, b.Y+(b.H+th)/2-2, buttonTextScale, buttonTextColor)
}

func (b *Button) HandleInput(p Pointer) bool {
	if !p.JustPressed || !b.Contains(p.X, p.Y) {
		return false
	}
	if b.OnClick != nil {
		b.OnClick()
	}
	return true
}

// FitText returns text unchanged if it fits in maxW at scale, otherwise the
// longest prefix that fits with an ellipsis appended.
func FitText(c Canvas, text string, scale, maxW float32) string {
	if w, _ := c.MeasureText(text, scale); w <= maxW {
		return text
	}
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		s := string(runes[:n]) + ellipsis
		if w, _ := c.MeasureText(s, scale); w <= maxW {
			return s
		}
	}
	return ellipsis
}

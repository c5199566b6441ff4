package panel

import (
	"fmt"

	"toon-outline/internal/ui/widget"

	"github.com/go-gl/mathgl/mgl32"
)

// Layout in window pixels. The panel hugs the top-right corner.
const (
	Width      = 300
	margin     = 12
	rowHeight  = 44
	headerH    = 34
	sliderH    = 16
	toggleW    = 40
	toggleH    = 20
	labelScale = 0.4
	valueScale = 0.35
)

var (
	background = mgl32.Vec3{0.1, 0.1, 0.12}
	labelColor = mgl32.Vec3{1, 1, 1}
	valueColor = mgl32.Vec3{0.8, 0.8, 0.8}
)

// View lays out and draws the panel widgets and routes pointer input to them.
type View struct {
	panel   *Panel
	Visible bool

	x, y, h float32

	edge    *widget.Toggle
	sliders [3]*widget.Slider
	buttons []*widget.Button

	pointer widget.Pointer
}

func newView(p *Panel) *View {
	v := &View{panel: p, Visible: true}
	v.edge = widget.NewToggle("Edge", 0, 0, toggleW, toggleH, p.params.Edge, func(on bool) {
		p.SetEdge(on)
	})
	labels := [3]string{"R", "G", "B"}
	values := [3]float32{p.params.R, p.params.G, p.params.B}
	for i := range v.sliders {
		ch := i
		v.sliders[i] = widget.NewSlider(0, 0, 0, sliderH, values[i], Steps, labels[i], func(val float32) {
			p.SetChannel(ch, val)
		})
		v.sliders[i].Label = labels[i]
	}
	v.SetViewport(0, 0)
	return v
}

// AddButton appends an action button below the controls.
func (v *View) AddButton(text string, onClick func()) *widget.Button {
	b := widget.NewButton(text, 0, 0, Width-2*margin, 32, onClick)
	b.NormalColor = mgl32.Vec3{0.2, 0.2, 0.2}
	b.HoverColor = mgl32.Vec3{0.3, 0.3, 0.3}
	v.buttons = append(v.buttons, b)
	v.layout()
	return b
}

// SetViewport positions the panel for a window of the given width.
func (v *View) SetViewport(width, height int) {
	v.x = float32(width) - Width
	if v.x < 0 {
		v.x = 0
	}
	v.y = 0
	v.layout()
}

func (v *View) layout() {
	y := v.y + headerH
	v.edge.SetPosition(v.x+Width-margin-toggleW, y+(rowHeight-toggleH)/2)
	y += rowHeight
	for _, s := range v.sliders {
		s.SetPosition(v.x+margin+24, y+(rowHeight-sliderH)/2)
		s.SetSize(Width-2*margin-24-44, sliderH)
		y += rowHeight
	}
	for _, b := range v.buttons {
		b.SetPosition(v.x+margin, y+6)
		_, bh := b.GetSize()
		y += bh + 12
	}
	v.h = y - v.y + margin
}

// sync copies model values into the widgets after a change from elsewhere.
func (v *View) sync() {
	params := v.panel.params
	v.edge.IsOn = params.Edge
	v.sliders[Red].Value = params.R
	v.sliders[Green].Value = params.G
	v.sliders[Blue].Value = params.B
}

// Contains reports whether a window point is over the visible panel.
func (v *View) Contains(x, y float32) bool {
	if !v.Visible {
		return false
	}
	return x >= v.x && x <= v.x+Width && y >= v.y && y <= v.y+v.h
}

// Capturing reports whether a slider drag started on the panel is in progress.
func (v *View) Capturing() bool {
	for _, s := range v.sliders {
		if s.Dragging() {
			return true
		}
	}
	return false
}

// HandleInput routes pointer state to the widgets and reports whether the
// panel consumed it.
func (v *View) HandleInput(p widget.Pointer) bool {
	v.pointer = p
	if !v.Visible {
		return false
	}
	consumed := false
	for _, s := range v.sliders {
		if s.HandleInput(p) {
			consumed = true
		}
	}
	if v.edge.HandleInput(p) {
		consumed = true
	}
	for _, b := range v.buttons {
		if b.HandleInput(p) {
			consumed = true
		}
	}
	return consumed || (p.JustPressed && v.Contains(p.X, p.Y))
}

// Draw renders the panel with the pointer state from the last HandleInput.
func (v *View) Draw(c widget.Canvas) {
	if !v.Visible {
		return
	}
	p := v.pointer
	params := v.panel.params

	c.DrawFilledRect(v.x, v.y, Width, v.h, background, 0.75)
	c.DrawText("Controls", v.x+margin, v.y+24, 0.45, labelColor)

	y := v.y + headerH
	c.DrawText("Edge", v.x+margin, y+rowHeight/2+6, labelScale, labelColor)
	v.edge.Render(c, p)
	state := "off"
	if params.Edge {
		state = "on"
	}
	sw, _ := c.MeasureText(state, valueScale)
	c.DrawText(state, v.edge.X-sw-8, y+rowHeight/2+5, valueScale, valueColor)
	y += rowHeight

	for _, s := range v.sliders {
		c.DrawText(s.Label, v.x+margin, y+rowHeight/2+6, labelScale, labelColor)
		s.Render(c, p)
		c.DrawText(fmt.Sprintf("%.1f", s.Value), s.X+s.W+10, y+rowHeight/2+5, valueScale, valueColor)
		y += rowHeight
	}

	for _, b := range v.buttons {
		b.Render(c, p)
	}
}

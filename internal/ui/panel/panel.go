// Package panel is the live parameter panel: an edge toggle and R/G/B sliders
// bound to the outline mesh. Every effective change triggers one rebuild.
package panel

import (
	"log/slog"

	"toon-outline/internal/ui/widget"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Step is the slider increment.
	Step = 0.1
	// Steps is the number of slider positions in [0,1].
	Steps = 11
)

// Channel indices for SetChannel.
const (
	Red = iota
	Green
	Blue
)

// Params are the values shown by the panel.
type Params struct {
	Edge    bool
	R, G, B float32
}

func (p Params) Color() mgl32.Vec3 {
	return mgl32.Vec3{p.R, p.G, p.B}
}

// Target receives panel changes.
type Target interface {
	SetEdge(enabled bool)
	SetColorChannel(ch int, v float32)
	Rebuild() error
}

// Panel holds the bound values and forwards changes to the target.
type Panel struct {
	params Params
	target Target
	log    *slog.Logger

	view     *View
	disposed bool
}

func New(target Target, initial Params, log *slog.Logger) *Panel {
	initial.R = Snap(initial.R)
	initial.G = Snap(initial.G)
	initial.B = Snap(initial.B)
	p := &Panel{
		params: initial,
		target: target,
		log:    log.With("component", "panel"),
	}
	p.view = newView(p)
	return p
}

// Snap clamps v to [0,1] and rounds it to the slider step.
func Snap(v float32) float32 {
	return widget.SnapToStep(v, Steps)
}

func (p *Panel) Params() Params {
	return p.params
}

// View returns the on-screen representation.
func (p *Panel) View() *View {
	return p.view
}

// SetEdge updates the edge flag and rebuilds when it changed.
func (p *Panel) SetEdge(enabled bool) bool {
	if p.disposed || p.params.Edge == enabled {
		return false
	}
	p.params.Edge = enabled
	p.target.SetEdge(enabled)
	p.rebuild("edge")
	p.view.sync()
	return true
}

// SetChannel snaps v, updates one color channel and rebuilds when the snapped
// value changed.
func (p *Panel) SetChannel(ch int, v float32) bool {
	if p.disposed {
		return false
	}
	v = Snap(v)
	var field *float32
	switch ch {
	case Red:
		field = &p.params.R
	case Green:
		field = &p.params.G
	case Blue:
		field = &p.params.B
	default:
		return false
	}
	if *field == v {
		return false
	}
	*field = v
	p.target.SetColorChannel(ch, v)
	p.rebuild(channelNames[ch])
	p.view.sync()
	return true
}

var channelNames = [...]string{"r", "g", "b"}

func (p *Panel) rebuild(field string) {
	if err := p.target.Rebuild(); err != nil {
		p.log.Error("rebuild failed", "field", field, "error", err)
		return
	}
	p.log.Debug("changed", "field", field, "params", p.params)
}

// Reset replaces the shown values without notifying the target, for changes
// that were applied to it directly.
func (p *Panel) Reset(params Params) {
	params.R = Snap(params.R)
	params.G = Snap(params.G)
	params.B = Snap(params.B)
	p.params = params
	p.view.sync()
}

// Dispose unbinds the panel from its target and hides it. Later changes are
// ignored. Safe to call twice.
func (p *Panel) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	p.view.Visible = false
	p.target = nil
}

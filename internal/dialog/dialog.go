// Package dialog opens native file dialogs without blocking the render loop.
package dialog

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/ncruces/zenity"
)

// SelectFunc shows a dialog and returns the chosen path. It returns
// zenity.ErrCanceled when the user dismisses it.
type SelectFunc func() (string, error)

// SelectOBJ asks for a Wavefront OBJ file.
func SelectOBJ() (string, error) {
	return zenity.SelectFile(
		zenity.Title("Open Model"),
		zenity.FileFilters{{
			Name:     "Wavefront OBJ",
			Patterns: []string{"*.obj", "*.OBJ"},
		}},
	)
}

// ModelPicker runs one dialog at a time on its own goroutine and hands the
// chosen path back through Poll.
type ModelPicker struct {
	Select SelectFunc

	busy    atomic.Bool
	results chan string
	log     *slog.Logger
}

func NewModelPicker(log *slog.Logger) *ModelPicker {
	return &ModelPicker{
		Select:  SelectOBJ,
		results: make(chan string, 1),
		log:     log.With("component", "dialog"),
	}
}

// Open shows the dialog unless one is already showing. It reports whether a
// dialog was started.
func (p *ModelPicker) Open() bool {
	if !p.busy.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer p.busy.Store(false)
		path, err := p.Select()
		if err != nil {
			if !errors.Is(err, zenity.ErrCanceled) {
				p.log.Error("file dialog failed", "error", err)
			}
			return
		}
		p.log.Info("model selected", "path", path)
		p.results <- path
	}()
	return true
}

// Busy reports whether a dialog is showing.
func (p *ModelPicker) Busy() bool {
	return p.busy.Load()
}

// Poll returns a chosen path without blocking.
func (p *ModelPicker) Poll() (string, bool) {
	select {
	case path := <-p.results:
		return path, true
	default:
		return "", false
	}
}

// Package widgettest provides a widget.Canvas that records what was drawn.
package widgettest

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

type Rect struct {
	X, Y, W, H float32
	Color      mgl32.Vec3
	Alpha      float32
}

type Text struct {
	Text  string
	X, Y  float32
	Scale float32
}

// Canvas measures every glyph as GlyphWidth x GlyphHeight pixels at scale 1.
type Canvas struct {
	GlyphWidth  float32
	GlyphHeight float32

	Rects []Rect
	Texts []Text
}

func New() *Canvas {
	return &Canvas{GlyphWidth: 10, GlyphHeight: 20}
}

func (c *Canvas) DrawFilledRect(x, y, w, h float32, color mgl32.Vec3, alpha float32) {
	c.Rects = append(c.Rects, Rect{X: x, Y: y, W: w, H: h, Color: color, Alpha: alpha})
}

func (c *Canvas) DrawText(text string, x, y, scale float32, color mgl32.Vec3) {
	c.Texts = append(c.Texts, Text{Text: text, X: x, Y: y, Scale: scale})
}

func (c *Canvas) MeasureText(text string, scale float32) (float32, float32) {
	n := float32(len([]rune(text)))
	return n * c.GlyphWidth * scale, c.GlyphHeight * scale
}

// HasText reports whether any drawn string contains s.
func (c *Canvas) HasText(s string) bool {
	for _, t := range c.Texts {
		if strings.Contains(t.Text, s) {
			return true
		}
	}
	return false
}

func (c *Canvas) Reset() {
	c.Rects = nil
	c.Texts = nil
}

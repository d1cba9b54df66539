// Package ui provides game user interface components.
package ui

import (
	"strings"

	"github.com/Faultbox/sushi-raft/internal/engine/input"
	"github.com/Faultbox/sushi-raft/internal/engine/ui2d"
	"github.com/Faultbox/sushi-raft/internal/game/states"
)

// PointerSource is the pointer state the UI reads each frame.
type PointerSource interface {
	PointerPosition() (x, y int)
	Pointer(i int) input.Button
}

// Pages draws every game page with ui2d and reports choices back to the
// states.
type Pages struct {
	ctx *ui2d.Context

	// Paging of long texts on the About and License pages.
	textPage   int
	lastPage   states.OptionsPage
	lastInMenu bool

	joystick states.Joystick
}

var _ states.UI = (*Pages)(nil)

// New creates pages drawing through ctx.
func New(ctx *ui2d.Context) *Pages {
	return &Pages{ctx: ctx}
}

// Begin starts a UI frame with the pointer state from src. scale converts
// window coordinates to framebuffer pixels on high-DPI displays.
func (p *Pages) Begin(src PointerSource, scale float32) {
	x, y := src.PointerPosition()
	b := src.Pointer(input.PointerLeft)
	p.ctx.Input().SetMouse(float32(x)*scale, float32(y)*scale, b.IsDown(), b.WentDown(), b.WentUp())
	p.ctx.Begin()
}

// End finishes the UI frame.
func (p *Pages) End() {
	p.ctx.End()
}

// window opens a centered window of the given size.
func (p *Pages) window(id string, w, h float32, title string) {
	sw, sh := p.ctx.GetScreenSize()
	p.ctx.BeginWindow(id, (sw-w)/2, (sh-h)/2, w, h, title)
}

// button is a full-width button on its own row.
func (p *Pages) button(id, label string) bool {
	p.ctx.Row(32)
	return p.ctx.Button(id, 0, label)
}

func (p *Pages) label(text string) {
	p.ctx.Row(20)
	p.ctx.Label(text)
}

// wrap breaks text into lines of at most width characters, keeping
// existing line breaks.
func wrap(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > width {
				out = append(out, line)
				line = w
				continue
			}
			line += " " + w
		}
		out = append(out, line)
	}
	return out
}

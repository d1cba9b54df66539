// Package fader implements the full-screen fade overlay.
package fader

// Type selects the fade curve.
type Type int

const (
	// FadeOut goes from clear to opaque.
	FadeOut Type = iota
	// FadeIn goes from opaque to clear.
	FadeIn
	// FadeOutThenIn goes opaque at the midpoint, then clears.
	FadeOutThenIn
)

// Color is an RGB color with components in [0,1].
type Color struct {
	R, G, B float32
}

// Black is the default fade color.
var Black = Color{}

// QuadDrawer draws a full-screen rectangle.
type QuadDrawer interface {
	DrawFullscreenQuad(r, g, b, a float32)
}

// Fader steps a linear opacity curve over a fixed duration.
type Fader struct {
	typ      Type
	color    Color
	duration float64
	elapsed  float64
	started  bool
	running  bool
	opaque   bool
}

// New returns an idle fader.
func New() *Fader {
	return &Fader{}
}

// Start begins a fade lasting durationMs.
func (f *Fader) Start(durationMs float64, color Color, typ Type) {
	f.typ = typ
	f.color = color
	f.duration = durationMs
	f.elapsed = 0
	f.started = true
	f.running = true
	f.opaque = false
}

// AdvanceFrame steps the fade by deltaMs. It returns true on the frame the
// overlay first becomes fully opaque.
func (f *Fader) AdvanceFrame(deltaMs float64) bool {
	if !f.running {
		return false
	}
	f.elapsed += deltaMs
	if f.elapsed >= f.duration {
		f.elapsed = f.duration
		f.running = false
	}

	if !f.opaque && f.Offset() >= 1 {
		f.opaque = true
		return true
	}
	return false
}

// progress returns elapsed time as a fraction of the duration.
func (f *Fader) progress() float64 {
	if f.duration <= 0 {
		return 1
	}
	return f.elapsed / f.duration
}

// Offset returns the current opacity in [0,1]. An idle fader that has never
// been started is clear.
func (f *Fader) Offset() float64 {
	if !f.started {
		return 0
	}
	p := f.progress()
	switch f.typ {
	case FadeIn:
		return 1 - p
	case FadeOutThenIn:
		if p < 0.5 {
			return p * 2
		}
		return (1 - p) * 2
	default:
		return p
	}
}

// Finished reports whether the fade has run its full duration.
func (f *Fader) Finished() bool {
	return !f.running
}

// Running reports whether a fade is in progress.
func (f *Fader) Running() bool {
	return f.running
}

// Render draws the overlay when it is not fully transparent.
func (f *Fader) Render(d QuadDrawer) {
	a := float32(f.Offset())
	if a <= 0 || d == nil {
		return
	}
	d.DrawFullscreenQuad(f.color.R, f.color.G, f.color.B, a)
}

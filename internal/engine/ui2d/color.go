package ui2d

// Color is RGBA with components in [0,1].
type Color struct {
	R, G, B, A float32
}

// Palette: dark lacquer panels with salmon highlights.
var (
	ColorTransparent = Color{}
	ColorWhite       = Color{1, 1, 1, 1}

	ColorPanelBg      = Color{0.11, 0.07, 0.06, 0.92}
	ColorPanelBorder  = Color{0.55, 0.36, 0.22, 1}
	ColorButtonNormal = Color{0.24, 0.14, 0.11, 1}
	ColorButtonHover  = Color{0.36, 0.21, 0.16, 1}
	ColorButtonActive = Color{0.62, 0.27, 0.2, 1}
	ColorInputBg      = Color{0.07, 0.05, 0.04, 1}
	ColorText         = Color{0.96, 0.93, 0.86, 1}
	ColorTextDim      = Color{0.62, 0.56, 0.5, 1}
	ColorHighlight    = Color{0.98, 0.5, 0.38, 1}
)

// WithAlpha returns c with alpha a.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Darken scales the color channels toward black by factor.
func (c Color) Darken(factor float32) Color {
	k := 1 - factor
	return Color{c.R * k, c.G * k, c.B * k, c.A}
}

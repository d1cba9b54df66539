package ui2d

import (
	"testing"
)

// recorder is a Painter that keeps the drawn text.
type recorder struct {
	font  *Font
	texts []string
	rects int
}

func newRecorder() *recorder { return &recorder{font: NewFont()} }

func (r *recorder) DrawRect(_, _, _, _ float32, _ Color)           { r.rects++ }
func (r *recorder) DrawRectOutline(_, _, _, _, _ float32, _ Color) {}
func (r *recorder) DrawPanel(_, _, _, _ float32, _, _ Color)       { r.rects++ }
func (r *recorder) DrawText(_, _ float32, text string, _ float32, _ Color) {
	r.texts = append(r.texts, text)
}
func (r *recorder) MeasureText(text string, scale float32) (float32, float32) {
	return r.font.MeasureText(text, scale)
}
func (r *recorder) GetScreenSize() (int, int) { return 800, 600 }

// frame runs one UI frame with the pointer at (x, y).
func frame(c *Context, x, y float32, down, wentDown, wentUp bool, draw func()) {
	c.Input().SetMouse(x, y, down, wentDown, wentUp)
	c.Begin()
	draw()
	c.End()
}

func TestButtonClickOnPress(t *testing.T) {
	c := NewContext(newRecorder())

	var clicked bool
	draw := func() {
		c.BeginWindow("w", 0, 0, 200, 200, "")
		c.Row(30)
		clicked = c.Button("ok", 100, "OK")
		c.EndWindow()
	}

	frame(c, 50, 20, false, false, false, draw)
	if clicked {
		t.Error("expected no click while hovering")
	}

	frame(c, 50, 20, false, true, true, draw)
	if !clicked {
		t.Error("expected click from a press inside one frame")
	}

	frame(c, 150, 20, false, true, true, draw)
	if clicked {
		t.Error("expected no click outside the button")
	}
}

func TestPressGoesToOneButton(t *testing.T) {
	c := NewContext(newRecorder())

	var a, b bool
	frame(c, 50, 20, true, true, false, func() {
		c.BeginWindow("w", 0, 0, 200, 200, "")
		c.Row(30)
		a = c.Button("a", 100, "A")
		c.cursorX = 8
		b = c.Button("b", 100, "B")
		c.EndWindow()
	})
	if !a || b {
		t.Errorf("expected only the first button clicked, got a=%v b=%v", a, b)
	}
}

func TestSliderFollowsPointer(t *testing.T) {
	c := NewContext(newRecorder())

	value := float32(0.2)
	var changed bool
	draw := func() {
		c.BeginWindow("w", 0, 0, 216, 200, "")
		c.Row(24)
		value, changed = c.Slider("s", 200, value, "")
		c.EndWindow()
	}

	// Content starts at x=8; 158 is three quarters along a 200px slider.
	frame(c, 158, 16, true, true, false, draw)
	if !changed {
		t.Error("expected slider to change on press")
	}
	if value != 0.75 {
		t.Errorf("expected 0.75, got %v", value)
	}

	frame(c, 500, 16, true, false, false, draw)
	if value != 1 {
		t.Errorf("expected drag past the end to clamp to 1, got %v", value)
	}

	frame(c, 8, 16, false, false, true, draw)
	if value != 0 {
		t.Errorf("expected release at the start to give 0, got %v", value)
	}

	frame(c, 108, 16, false, false, false, draw)
	if changed {
		t.Error("expected released slider to ignore hover")
	}
}

func TestCheckboxToggles(t *testing.T) {
	c := NewContext(newRecorder())

	checked := false
	draw := func() {
		c.BeginWindow("w", 0, 0, 200, 200, "")
		c.Row(20)
		checked = c.Checkbox("c", "Shadows", checked)
		c.EndWindow()
	}

	frame(c, 12, 16, false, true, true, draw)
	if !checked {
		t.Error("expected checkbox checked after click")
	}
	frame(c, 12, 16, false, true, true, draw)
	if checked {
		t.Error("expected checkbox cleared after second click")
	}
}

func TestListBoxHidesOverflow(t *testing.T) {
	r := newRecorder()
	c := NewContext(r)

	frame(c, 0, 0, false, false, false, func() {
		c.BeginWindow("w", 0, 0, 200, 400, "")
		c.BeginListBox("list", 0, 60)
		for _, s := range []string{"one", "two", "three", "four"} {
			c.Selectable(s, s, false)
		}
		c.EndListBox()
		c.EndWindow()
	})

	if len(r.texts) != 2 {
		t.Errorf("expected 2 visible items, got %v", r.texts)
	}
}

func TestFontMeasure(t *testing.T) {
	f := NewFont()
	w, h := f.GlyphSize()

	tests := []struct {
		text  string
		wantW float32
		wantH float32
	}{
		{"", 0, 0},
		{"abc", float32(3 * w), float32(h)},
		{"ab\nabcd", float32(4 * w), float32(2 * h)},
	}
	for _, tt := range tests {
		gotW, gotH := f.MeasureText(tt.text, 1)
		if gotW != tt.wantW || gotH != tt.wantH {
			t.Errorf("%q: expected %vx%v, got %vx%v", tt.text, tt.wantW, tt.wantH, gotW, gotH)
		}
	}
}

func TestFontUnknownGlyphFallsBack(t *testing.T) {
	f := NewFont()
	u0, v0, _, _ := f.GetGlyphUV('é')
	q0, r0, _, _ := f.GetGlyphUV('?')
	if u0 != q0 || v0 != r0 {
		t.Errorf("expected fallback to '?', got (%v,%v) vs (%v,%v)", u0, v0, q0, r0)
	}
}

func TestFontAtlasHasInk(t *testing.T) {
	f := NewFont()
	atlas := f.Atlas()
	b := atlas.Bounds()
	gw, gh := f.GlyphSize()

	u0, v0, _, _ := f.GetGlyphUV('A')
	x0, y0 := int(u0*float32(b.Dx())+0.5), int(v0*float32(b.Dy())+0.5)
	ink := 0
	for y := y0; y < y0+gh; y++ {
		for x := x0; x < x0+gw; x++ {
			if atlas.AlphaAt(x, y).A != 0 {
				ink++
			}
		}
	}
	if ink == 0 || ink == gw*gh {
		t.Errorf("expected a partly inked glyph cell, got %d of %d pixels", ink, gw*gh)
	}
}

func TestFontSolidCell(t *testing.T) {
	f := NewFont()
	atlas := f.Atlas()
	b := atlas.Bounds()
	u, v := f.SolidUV()
	x, y := int(u*float32(b.Dx())), int(v*float32(b.Dy()))
	if a := atlas.AlphaAt(x, y).A; a != 0xff {
		t.Errorf("expected opaque texel under SolidUV, got %d", a)
	}
}

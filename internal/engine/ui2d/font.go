package ui2d

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph   = ' '
	lastGlyph    = '~'
	atlasColumns = 16
)

// Font is a fixed-width bitmap font rasterized into a single alpha atlas.
// Printable ASCII is covered; anything else renders as '?'. The cell after
// the last glyph is fully inked so solid quads can share the atlas.
type Font struct {
	atlas *image.Alpha
	cellW int
	cellH int
}

// solidCell is the atlas index of the inked cell.
const solidCell = int(lastGlyph-firstGlyph) + 1

// NewFont rasterizes the 7x13 basic font into an atlas.
func NewFont() *Font {
	face := basicfont.Face7x13
	f := &Font{cellW: face.Advance, cellH: face.Height}

	rows := (solidCell + atlasColumns) / atlasColumns
	f.atlas = image.NewAlpha(image.Rect(0, 0, atlasColumns*f.cellW, rows*f.cellH))

	d := font.Drawer{Dst: f.atlas, Src: image.Opaque, Face: face}
	for r := firstGlyph; r <= lastGlyph; r++ {
		col, row := f.cell(r)
		d.Dot = fixed.P(col*f.cellW, row*f.cellH+face.Ascent)
		d.DrawString(string(r))
	}

	col, row := solidCell%atlasColumns, solidCell/atlasColumns
	solid := image.Rect(col*f.cellW, row*f.cellH, (col+1)*f.cellW, (row+1)*f.cellH)
	for y := solid.Min.Y; y < solid.Max.Y; y++ {
		for x := solid.Min.X; x < solid.Max.X; x++ {
			f.atlas.Pix[f.atlas.PixOffset(x, y)] = 0xff
		}
	}
	return f
}

func (f *Font) cell(r rune) (col, row int) {
	if r < firstGlyph || r > lastGlyph {
		r = '?'
	}
	i := int(r - firstGlyph)
	return i % atlasColumns, i / atlasColumns
}

// Atlas returns the glyph atlas. Glyph coverage is stored in the alpha
// channel.
func (f *Font) Atlas() *image.Alpha {
	return f.atlas
}

// GlyphSize returns the cell size in pixels.
func (f *Font) GlyphSize() (int, int) {
	return f.cellW, f.cellH
}

// GetGlyphUV returns the atlas texture coordinates of r.
func (f *Font) GetGlyphUV(r rune) (u0, v0, u1, v1 float32) {
	col, row := f.cell(r)
	b := f.atlas.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	u0 = float32(col*f.cellW) / w
	v0 = float32(row*f.cellH) / h
	u1 = float32((col+1)*f.cellW) / w
	v1 = float32((row+1)*f.cellH) / h
	return u0, v0, u1, v1
}

// SolidUV returns the center of the inked cell.
func (f *Font) SolidUV() (u, v float32) {
	col, row := solidCell%atlasColumns, solidCell/atlasColumns
	b := f.atlas.Bounds()
	u = (float32(col*f.cellW) + float32(f.cellW)/2) / float32(b.Dx())
	v = (float32(row*f.cellH) + float32(f.cellH)/2) / float32(b.Dy())
	return u, v
}

// MeasureText returns the size of text drawn at scale. Newlines start a
// new line.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	if text == "" {
		return 0, 0
	}
	lines, widest, cur := 1, 0, 0
	for _, r := range text {
		if r == '\n' {
			lines++
			cur = 0
			continue
		}
		cur++
		if cur > widest {
			widest = cur
		}
	}
	return float32(widest*f.cellW) * scale, float32(lines*f.cellH) * scale
}

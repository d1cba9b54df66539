// Package ui2d is a small immediate-mode UI for the menus and HUD. Layout
// and hit-testing live in Context; Renderer paints its output with OpenGL.
package ui2d

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/sushi-raft/internal/engine/shader"
	"github.com/Faultbox/sushi-raft/internal/logger"
	"github.com/Faultbox/sushi-raft/pkg/math"
)

// Vertex format: x, y, u, v, r, g, b, a.
const floatsPerVertex = 8

// Renderer queues quads during a frame and draws them in submission order
// with one program. Solid quads sample the font atlas's inked cell, so
// panels, widgets and text interleave correctly.
type Renderer struct {
	width, height int

	program  uint32
	vao, vbo uint32
	uProj    int32
	uAtlas   int32

	font     *Font
	fontTex  uint32
	solidU   float32
	solidV   float32
	vertices []float32
}

var _ Painter = (*Renderer)(nil)

// New creates a UI renderer for a framebuffer of the given size. The GL
// context must be current.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{
		width:    width,
		height:   height,
		font:     NewFont(),
		vertices: make([]float32, 0, 8192),
	}

	var err error
	r.program, err = shader.CompileProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("ui program: %w", err)
	}
	r.uProj = shader.Uniform(r.program, "uProjection")
	r.uAtlas = shader.Uniform(r.program, "uAtlas")

	r.createBuffers()
	r.fontTex = uploadAtlas(r.font)
	r.solidU, r.solidV = r.font.SolidUV()

	logger.Debug("ui renderer created",
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return r, nil
}

// Resize updates the screen dimensions.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
}

// GetScreenSize returns the current screen dimensions.
func (r *Renderer) GetScreenSize() (int, int) {
	return r.width, r.height
}

// Begin starts a new UI frame.
func (r *Renderer) Begin() {
	r.vertices = r.vertices[:0]
}

// End draws everything queued since Begin over the current framebuffer.
func (r *Renderer) End() {
	if len(r.vertices) == 0 {
		return
	}

	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	proj := math.Ortho(0, float32(r.width), float32(r.height), 0, -1, 1)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uProj, 1, false, proj.Ptr())
	gl.Uniform1i(r.uAtlas, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.vertices)*4, unsafe.Pointer(&r.vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.vertices)/floatsPerVertex))

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// DrawRect draws a filled rectangle.
func (r *Renderer) DrawRect(x, y, width, height float32, color Color) {
	r.quad(x, y, width, height, r.solidU, r.solidV, r.solidU, r.solidV, color)
}

// DrawRectOutline draws a rectangle outline.
func (r *Renderer) DrawRectOutline(x, y, width, height, thickness float32, color Color) {
	r.DrawRect(x, y, width, thickness, color)
	r.DrawRect(x, y+height-thickness, width, thickness, color)
	r.DrawRect(x, y+thickness, thickness, height-thickness*2, color)
	r.DrawRect(x+width-thickness, y+thickness, thickness, height-thickness*2, color)
}

// DrawPanel draws a panel with border.
func (r *Renderer) DrawPanel(x, y, width, height float32, bg, border Color) {
	r.DrawRect(x, y, width, height, bg)
	r.DrawRectOutline(x, y, width, height, 1, border)
}

// DrawText draws text with its top-left corner at x, y.
func (r *Renderer) DrawText(x, y float32, text string, scale float32, color Color) {
	gw, gh := r.font.GlyphSize()
	charW := float32(gw) * scale
	charH := float32(gh) * scale

	curX := x
	for _, ch := range text {
		switch ch {
		case '\n':
			curX = x
			y += charH
			continue
		case ' ':
			curX += charW
			continue
		}
		u0, v0, u1, v1 := r.font.GetGlyphUV(ch)
		r.quad(curX, y, charW, charH, u0, v0, u1, v1, color)
		curX += charW
	}
}

// MeasureText returns the width and height of rendered text.
func (r *Renderer) MeasureText(text string, scale float32) (float32, float32) {
	return r.font.MeasureText(text, scale)
}

// quad queues two triangles covering x, y, w, h.
func (r *Renderer) quad(x, y, w, h, u0, v0, u1, v1 float32, c Color) {
	r.vertices = append(r.vertices,
		x, y, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y, u1, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, u1, v1, c.R, c.G, c.B, c.A,

		x, y, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, u1, v1, c.R, c.G, c.B, c.A,
		x, y+h, u0, v1, c.R, c.G, c.B, c.A,
	)
}

const vertexShader = `
	#version 410 core

	layout (location = 0) in vec2 aPos;
	layout (location = 1) in vec2 aTexCoord;
	layout (location = 2) in vec4 aColor;

	uniform mat4 uProjection;

	out vec2 vTexCoord;
	out vec4 vColor;

	void main() {
		gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
		vTexCoord = aTexCoord;
		vColor = aColor;
	}
`

const fragmentShader = `
	#version 410 core

	uniform sampler2D uAtlas;

	in vec2 vTexCoord;
	in vec4 vColor;
	out vec4 FragColor;

	void main() {
		float coverage = texture(uAtlas, vTexCoord).r;
		FragColor = vec4(vColor.rgb, vColor.a * coverage);
	}
`

func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 4*4)
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// uploadAtlas copies the font atlas into a single-channel texture.
func uploadAtlas(f *Font) uint32 {
	atlas := f.Atlas()
	b := atlas.Bounds()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

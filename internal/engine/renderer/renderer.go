// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/sushi-raft/internal/engine/shader"
	"github.com/Faultbox/sushi-raft/internal/logger"
	"github.com/Faultbox/sushi-raft/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Primitive selects how a vertex run is assembled.
type Primitive int

const (
	LineStrip Primitive = iota
	Lines
	Points
)

// Color is RGBA in [0,1].
type Color struct {
	R, G, B, A float32
}

// Viewport is a pixel rectangle of the window.
type Viewport struct {
	X, Y, W, H int
}

// Aspect returns width over height.
func (v Viewport) Aspect() float32 {
	if v.H == 0 {
		return 1
	}
	return float32(v.W) / float32(v.H)
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	// Flat-colored world geometry
	worldProgram uint32
	worldVAO     uint32
	worldVBO     uint32
	uViewProj    int32
	uColor       int32
	uPointSize   int32

	// Full-screen overlay quad
	quadProgram uint32
	quadVAO     uint32
	uQuadColor  int32

	scratch []float32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:  cfg,
		scratch: make([]float32, 0, 1024),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.55, 0.75, 0.9, 1.0) // Sky

	var err error
	r.worldProgram, err = shader.CompileProgram(worldVertexShader, worldFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("world program: %w", err)
	}
	r.uViewProj = shader.Uniform(r.worldProgram, "uViewProj")
	r.uColor = shader.Uniform(r.worldProgram, "uColor")
	r.uPointSize = shader.Uniform(r.worldProgram, "uPointSize")

	r.quadProgram, err = shader.CompileProgram(quadVertexShader, quadFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("quad program: %w", err)
	}
	r.uQuadColor = shader.Uniform(r.quadProgram, "uColor")

	r.createBuffers()
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.worldVAO != 0 {
		gl.DeleteVertexArrays(1, &r.worldVAO)
	}
	if r.worldVBO != 0 {
		gl.DeleteBuffers(1, &r.worldVBO)
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	if r.worldProgram != 0 {
		gl.DeleteProgram(r.worldProgram)
	}
	if r.quadProgram != 0 {
		gl.DeleteProgram(r.quadProgram)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the framebuffer size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End restores the full-window viewport for overlays.
func (r *Renderer) End() {
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
}

// Viewports returns the full window, or its left and right halves in
// stereo.
func (r *Renderer) Viewports(stereo bool) []Viewport {
	w, h := r.config.Width, r.config.Height
	if !stereo {
		return []Viewport{{0, 0, w, h}}
	}
	half := w / 2
	return []Viewport{{0, 0, half, h}, {half, 0, w - half, h}}
}

// SetViewport restricts drawing to v and clears its depth.
func (r *Renderer) SetViewport(v Viewport) {
	gl.Viewport(int32(v.X), int32(v.Y), int32(v.W), int32(v.H))
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(v.X), int32(v.Y), int32(v.W), int32(v.H))
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.Disable(gl.SCISSOR_TEST)
}

// Draw renders pts as prim with a flat color.
func (r *Renderer) Draw(viewProj math.Mat4, prim Primitive, pts []math.Vec3, c Color, pointSize float32) {
	if len(pts) == 0 {
		return
	}
	r.scratch = r.scratch[:0]
	for _, p := range pts {
		r.scratch = append(r.scratch, p.X, p.Y, p.Z)
	}

	gl.UseProgram(r.worldProgram)
	gl.UniformMatrix4fv(r.uViewProj, 1, false, viewProj.Ptr())
	gl.Uniform4f(r.uColor, c.R, c.G, c.B, c.A)
	gl.Uniform1f(r.uPointSize, pointSize)

	gl.BindVertexArray(r.worldVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.worldVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.scratch)*4, unsafe.Pointer(&r.scratch[0]), gl.STREAM_DRAW)

	mode := uint32(gl.LINE_STRIP)
	switch prim {
	case Lines:
		mode = gl.LINES
	case Points:
		mode = gl.POINTS
	}
	gl.DrawArrays(mode, 0, int32(len(pts)))

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// DrawFullscreenQuad blends a solid color over the whole window.
func (r *Renderer) DrawFullscreenQuad(red, green, blue, alpha float32) {
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(r.quadProgram)
	gl.Uniform4f(r.uQuadColor, red, green, blue, alpha)
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
	gl.UseProgram(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

const worldVertexShader = `
	#version 410 core

	layout (location = 0) in vec3 aPos;

	uniform mat4 uViewProj;
	uniform float uPointSize;

	void main() {
		gl_Position = uViewProj * vec4(aPos, 1.0);
		gl_PointSize = uPointSize;
	}
`

const worldFragmentShader = `
	#version 410 core

	uniform vec4 uColor;
	out vec4 FragColor;

	void main() {
		FragColor = uColor;
	}
`

// The quad is generated from gl_VertexID so it needs no vertex buffer.
const quadVertexShader = `
	#version 410 core

	void main() {
		vec2 pos = vec2(float(gl_VertexID & 1), float((gl_VertexID >> 1) & 1));
		gl_Position = vec4(pos * 2.0 - 1.0, 0.0, 1.0);
	}
`

const quadFragmentShader = `
	#version 410 core

	uniform vec4 uColor;
	out vec4 FragColor;

	void main() {
		FragColor = uColor;
	}
`

func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.worldVAO)
	gl.BindVertexArray(r.worldVAO)
	gl.GenBuffers(1, &r.worldVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.worldVBO)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	// Core profile refuses draws without a bound VAO.
	gl.GenVertexArrays(1, &r.quadVAO)

	logger.Debug("render buffers created",
		zap.Uint32("world_vao", r.worldVAO),
		zap.Uint32("quad_vao", r.quadVAO),
	)
}

package game

import (
	"go.uber.org/zap"

	"github.com/Faultbox/sushi-raft/internal/engine/camera"
	"github.com/Faultbox/sushi-raft/internal/engine/renderer"
	"github.com/Faultbox/sushi-raft/internal/game/scene"
	"github.com/Faultbox/sushi-raft/internal/game/states"
	"github.com/Faultbox/sushi-raft/internal/game/world"
	"github.com/Faultbox/sushi-raft/internal/logger"
)

// sceneRenderer draws worlds with the GL renderer, once per eye in stereo.
type sceneRenderer struct {
	gl *renderer.Renderer
}

var _ states.Renderer = (*sceneRenderer)(nil)

// RenderWorld implements states.Renderer.
func (s *sceneRenderer) RenderWorld(w *world.World, cam *camera.Camera) {
	if w.RenderingOptionsDirty() {
		logger.Debug("rendering options changed",
			zap.Stringer("mode", w.RenderingMode()),
			zap.Any("options", scene.Options(w)))
		w.ResetRenderingDirty()
	}
	batches := scene.Build(w)
	if len(batches) == 0 {
		return
	}

	eyes := []camera.Eye{camera.EyeCenter}
	if cam.Stereo {
		eyes = []camera.Eye{camera.EyeLeft, camera.EyeRight}
	}
	for i, vp := range s.gl.Viewports(cam.Stereo) {
		s.gl.SetViewport(vp)
		viewProj := cam.ViewProjection(vp.Aspect(), eyes[i])
		for _, b := range batches {
			s.gl.Draw(viewProj, primitive(b.Kind), b.Points, color(b.Color), b.Size)
		}
	}
	s.gl.End()
}

// DrawFullscreenQuad implements fader.QuadDrawer.
func (s *sceneRenderer) DrawFullscreenQuad(r, g, b, a float32) {
	s.gl.DrawFullscreenQuad(r, g, b, a)
}

func primitive(k scene.Kind) renderer.Primitive {
	switch k {
	case scene.Lines:
		return renderer.Lines
	case scene.Points:
		return renderer.Points
	default:
		return renderer.LineStrip
	}
}

func color(c scene.Color) renderer.Color {
	return renderer.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}

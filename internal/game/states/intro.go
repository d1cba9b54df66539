package states

import (
	"github.com/Faultbox/sushi-raft/internal/engine/camera"
	"github.com/Faultbox/sushi-raft/internal/engine/fader"
	"github.com/Faultbox/sushi-raft/internal/engine/input"
	"github.com/Faultbox/sushi-raft/internal/game/world"
)

const (
	introFadeMs     = 1000
	introDurationMs = 3000
)

// Intro fades in the headset view and gives the player a moment to settle
// before the run starts.
type Intro struct {
	svc    *Services
	camera *camera.Camera

	elapsedMs float64
}

// NewIntro creates the intro state.
func NewIntro(svc *Services) *Intro {
	return &Intro{svc: svc, camera: camera.New()}
}

// AdvanceFrame implements State.
func (s *Intro) AdvanceFrame(deltaMs float64) GameState {
	w := s.svc.World
	in := s.svc.Input
	w.Update(deltaMs)
	updateMainCamera(s.camera, w)
	s.svc.Fader.AdvanceFrame(deltaMs)
	s.elapsedMs += deltaMs

	if in.BackPressed() {
		// Leave the headset so the menu does not send us straight back.
		playSound(s.svc.Audio, soundClick)
		w.SetHMDControllerEnabled(false)
		w.SetRenderingMode(world.RenderingMonoscopic)
		return StateGameMenu
	}
	if s.elapsedMs >= introDurationMs ||
		in.Pointer(input.PointerLeft).WentDown() ||
		w.Player().FireProjectile().Pressed() {
		return StateGameplay
	}
	return StateIntro
}

// RenderPrep implements State.
func (s *Intro) RenderPrep() {}

// Render implements State.
func (s *Intro) Render(r Renderer) {
	renderWorld(r, s.svc.World, s.camera, s.svc.VR)
	renderFader(r, s.svc)
}

// HandleUI implements State.
func (s *Intro) HandleUI(Renderer) {
	s.svc.UI.Intro(IntroView{RemainingMs: max(introDurationMs-s.elapsedMs, 0)})
}

// OnEnter implements State.
func (s *Intro) OnEnter(GameState) {
	s.elapsedMs = 0
	s.svc.World.Player().State = world.PlayerNoProjectiles
	s.svc.Fader.Start(introFadeMs, fader.Black, fader.FadeIn)
	if s.svc.hasVR() {
		s.svc.VR.ResetHeadTracker()
	}
	updateMainCamera(s.camera, s.svc.World)
}

// OnExit implements State.
func (s *Intro) OnExit(GameState) {}

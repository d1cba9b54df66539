package states

import (
	"github.com/Faultbox/sushi-raft/internal/engine/input"
)

// SceneLabState flies the debug camera over the frozen world.
type SceneLabState struct {
	svc *Services
}

// NewSceneLab creates the scene lab state. It requires svc.SceneLab.
func NewSceneLab(svc *Services) *SceneLabState {
	return &SceneLabState{svc: svc}
}

// AdvanceFrame implements State.
func (s *SceneLabState) AdvanceFrame(deltaMs float64) GameState {
	in := s.svc.Input
	if in.Key(input.KeyF10).WentDown() || in.BackPressed() {
		return StateGameplay
	}
	s.svc.SceneLab.AdvanceFrame(deltaMs, in)
	return StateSceneLab
}

// RenderPrep implements State.
func (s *SceneLabState) RenderPrep() {}

// Render implements State.
func (s *SceneLabState) Render(r Renderer) {
	renderWorld(r, s.svc.World, s.svc.SceneLab.Camera(), nil)
}

// HandleUI implements State.
func (s *SceneLabState) HandleUI(Renderer) {
	s.svc.UI.SceneLab(SceneLabView{Pose: s.svc.SceneLab.Camera().Pose()})
}

// OnEnter implements State.
func (s *SceneLabState) OnEnter(GameState) {
	s.svc.Input.SetRelativeMouseMode(false)
}

// OnExit implements State.
func (s *SceneLabState) OnExit(GameState) {}

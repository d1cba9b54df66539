package states

import (
	"github.com/Faultbox/sushi-raft/internal/engine/camera"
)

// Pause freezes the run until the player resumes or quits to the menu.
type Pause struct {
	svc    *Services
	music  *lapMusic
	camera *camera.Camera

	choice PauseChoice
}

// NewPause creates the pause state over the gameplay music.
func NewPause(svc *Services, music *lapMusic) *Pause {
	return &Pause{svc: svc, music: music, camera: camera.New()}
}

// AdvanceFrame implements State. The world does not advance while paused.
func (p *Pause) AdvanceFrame(float64) GameState {
	if p.svc.Input.BackPressed() {
		p.choice = PauseResume
	}
	switch p.choice {
	case PauseResume:
		playSound(p.svc.Audio, soundClick)
		return StateGameplay
	case PauseQuit:
		playSound(p.svc.Audio, soundExit)
		return StateGameMenu
	}
	return StatePause
}

// RenderPrep implements State.
func (p *Pause) RenderPrep() {}

// Render implements State.
func (p *Pause) Render(r Renderer) {
	renderWorld(r, p.svc.World, p.camera, p.svc.VR)
}

// HandleUI implements State.
func (p *Pause) HandleUI(Renderer) {
	w := p.svc.World
	lap, _ := w.Lap()
	if c := p.svc.UI.PauseMenu(PauseView{
		PatronsFed: w.Player().Attributes.PatronsFed,
		Lap:        lap,
	}); c != PauseNone {
		p.choice = c
	}
}

// OnEnter implements State.
func (p *Pause) OnEnter(GameState) {
	p.choice = PauseNone
	p.svc.Input.SetRelativeMouseMode(false)
	updateMainCamera(p.camera, p.svc.World)
}

// OnExit implements State. Leaving for anything but the run abandons it.
func (p *Pause) OnExit(next GameState) {
	if next != StateGameplay {
		p.music.stop()
	}
}

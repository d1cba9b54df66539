package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/sushi-raft/internal/engine/camera"
	"github.com/Faultbox/sushi-raft/internal/engine/input"
	"github.com/Faultbox/sushi-raft/internal/game/world"
	"github.com/Faultbox/sushi-raft/internal/logger"
)

// Gameplay runs the on-rails simulation.
type Gameplay struct {
	svc    *Services
	music  *lapMusic
	camera *camera.Camera

	requested GameState
}

// NewGameplay creates the gameplay state. music is shared with Pause, which
// may stop it when the run is abandoned.
func NewGameplay(svc *Services, music *lapMusic) *Gameplay {
	return &Gameplay{
		svc:       svc,
		music:     music,
		camera:    camera.New(),
		requested: StateGameplay,
	}
}

// Camera returns the main camera.
func (g *Gameplay) Camera() *camera.Camera { return g.camera }

// AdvanceFrame implements State.
func (g *Gameplay) AdvanceFrame(deltaMs float64) GameState {
	w := g.svc.World
	in := g.svc.Input

	w.Update(deltaMs)
	updateMainCamera(g.camera, w)
	g.updateMusic(deltaMs)

	if in.Key(input.KeyF9).WentDown() {
		w.Debug.DrawPhysics = !w.Debug.DrawPhysics
	}
	if in.Key(input.KeyF8).WentDown() {
		w.Debug.SkipMeshRendering = !w.Debug.SkipMeshRendering
	}

	next := g.requested
	if w.RunOver() {
		next = StateGameOver
	}

	if g.svc.SceneLab != nil && (in.Key(input.KeyF10).WentDown() ||
		in.Key(input.Key1).WentDown() || w.Debug.SingleStepping) {
		if !w.Debug.SingleStepping {
			g.svc.SceneLab.SetInitialCamera(g.camera.Pose())
		}
		next = StateSceneLab
		w.Debug.SingleStepping = false
	}

	if in.BackPressed() {
		playSound(g.svc.Audio, soundPause)
		next = StatePause
	}

	g.svc.Fader.AdvanceFrame(deltaMs)
	return next
}

// updateMusic follows the raft's lap. A world without a raft has no lap to
// follow.
func (g *Gameplay) updateMusic(deltaMs float64) {
	lap, err := g.svc.World.Lap()
	if err != nil {
		return
	}
	if lap < 0 {
		logger.Warn("negative lap number", zap.Int("lap", lap))
		return
	}
	g.music.update(deltaMs, lap)
}

// RenderPrep implements State.
func (g *Gameplay) RenderPrep() {}

// Render implements State.
func (g *Gameplay) Render(r Renderer) {
	renderWorld(r, g.svc.World, g.camera, g.svc.VR)
	if !g.svc.Fader.Finished() {
		renderFader(r, g.svc)
	}
}

// HandleUI implements State.
func (g *Gameplay) HandleUI(Renderer) {
	w := g.svc.World
	lap, _ := w.Lap()
	g.svc.UI.HUD(HUDView{
		PatronsFed:  w.Player().Attributes.PatronsFed,
		SushiThrown: w.Player().Attributes.ProjectilesFired,
		Lap:         lap,
		RemainingMs: w.RemainingMs(),
		Sushi:       w.SelectedSushi(),
		Stereo:      g.camera.Stereo,
	})
}

// OnEnter implements State.
func (g *Gameplay) OnEnter(prev GameState) {
	w := g.svc.World
	g.requested = StateGameplay
	w.Player().State = world.PlayerActive
	g.svc.Input.SetRelativeMouseMode(true)
	g.svc.UI.BindJoystick(Joystick{Base: joystickBase, Tip: joystickTip})
	updateMainCamera(g.camera, w)

	if prev == StatePause {
		g.music.resume()
	} else {
		g.music.start()
	}

	g.camera.Stereo = w.RenderingMode() == world.RenderingStereoscopic && g.svc.hasVR()
	if g.svc.hasVR() {
		g.svc.VR.ResetHeadTracker()
	}

	if prev != StatePause {
		w.SetGameplayStartTime(g.svc.Input.Time())
	}
	if prev != StatePause && prev != StateSceneLab {
		w.BeginRun()
	}
}

// OnExit implements State.
func (g *Gameplay) OnExit(next GameState) {
	if next == StatePause {
		g.music.pause()
	} else {
		g.music.stop()
	}
}

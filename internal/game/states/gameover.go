package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/sushi-raft/internal/engine/audio"
	"github.com/Faultbox/sushi-raft/internal/engine/camera"
	"github.com/Faultbox/sushi-raft/internal/engine/input"
	"github.com/Faultbox/sushi-raft/internal/game/world"
	"github.com/Faultbox/sushi-raft/internal/logger"
)

const (
	// timeToStopRaftMs is how long the raft takes to coast to a halt.
	timeToStopRaftMs = 500
	// minTimeInEndStateMs is the patron event time before a dismissal is
	// accepted.
	minTimeInEndStateMs = 8000
)

// GameOver stops the raft, plays the end event and waits to be dismissed.
type GameOver struct {
	svc    *Services
	camera *camera.Camera

	channel    audio.Channel
	patronsFed int
	highScore  bool
}

// NewGameOver creates the game over state.
func NewGameOver(svc *Services) *GameOver {
	return &GameOver{
		svc:     svc,
		camera:  camera.New(),
		channel: audio.NullChannel{},
	}
}

// HighScore reports whether the finished run beat the player's best.
func (g *GameOver) HighScore() bool { return g.highScore }

func (g *GameOver) eventOver() bool {
	return g.svc.World.PatronEventTime() > minTimeInEndStateMs
}

// AdvanceFrame implements State.
func (g *GameOver) AdvanceFrame(deltaMs float64) GameState {
	w := g.svc.World
	in := g.svc.Input
	w.Update(deltaMs)
	updateMainCamera(g.camera, w)

	pointer := in.Pointer(input.PointerLeft).WentDown()
	back := in.BackPressed()
	fire := w.Player().FireProjectile().Pressed()

	if !g.eventOver() || !(pointer || back || fire) {
		return StateGameOver
	}

	playSound(g.svc.Audio, soundClick)
	// Stay in the headset unless the player backs out.
	if w.RenderingMode() == world.RenderingStereoscopic && !back {
		return StateGameplay
	}
	return StateGameMenu
}

// RenderPrep implements State.
func (g *GameOver) RenderPrep() {}

// Render implements State.
func (g *GameOver) Render(r Renderer) {
	renderWorld(r, g.svc.World, g.camera, g.svc.VR)
}

// HandleUI implements State.
func (g *GameOver) HandleUI(Renderer) {
	g.svc.UI.GameOver(GameOverView{
		PatronsFed: g.patronsFed,
		HighScore:  g.highScore,
		CanDismiss: g.eventOver(),
	})
}

// OnEnter implements State.
func (g *GameOver) OnEnter(GameState) {
	w := g.svc.World
	w.Player().State = world.PlayerNoProjectiles
	updateMainCamera(g.camera, w)

	if raft := w.Raft(); raft != nil {
		raft.SetPlaybackRate(0, timeToStopRaftMs)
	}
	w.StartPatronEvent(0)

	g.patronsFed = w.Player().Attributes.PatronsFed
	g.highScore = false
	lb := g.svc.Leaderboard
	if lb.LoggedIn() {
		id := g.svc.Settings.LeaderboardID
		if best, ok := lb.CurrentPlayerHighScore(id); ok {
			g.highScore = g.patronsFed > best
		}
		lb.SubmitScore(id, g.patronsFed)
	}
	logger.Info("game over",
		zap.Int("patrons_fed", g.patronsFed),
		zap.Bool("high_score", g.highScore))

	sound := soundGameOver
	if g.highScore {
		sound = soundHighScore
	}
	g.channel = g.svc.Audio.PlaySound(g.svc.Audio.SoundHandle(sound), 1)
}

// OnExit implements State.
func (g *GameOver) OnExit(next GameState) {
	w := g.svc.World
	w.StopPatronEvent()
	if g.channel.Valid() && g.channel.Playing() {
		g.channel.Stop()
	}
	g.channel = audio.NullChannel{}
	if next == StateGameplay {
		loadWorldDef(w, g.svc.Settings.WorldDef)
	}
}

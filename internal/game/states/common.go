package states

import (
	"github.com/Faultbox/sushi-raft/internal/engine/camera"
	"github.com/Faultbox/sushi-raft/internal/game/save"
	"github.com/Faultbox/sushi-raft/internal/game/world"
)

// Sound bank names used by the states.
const (
	soundStart        = "start"
	soundClick        = "click"
	soundSelect       = "select"
	soundExit         = "exit"
	soundPause        = "pause"
	soundGameOver     = "game_over"
	soundHighScore    = "high_score"
	musicMenu         = "music_menu"
	musicGameplayLap1 = "music_gameplay_lap_1"
	musicGameplayLap2 = "music_gameplay_lap_2"
	musicGameplayLap3 = "music_gameplay_lap_3"
)

const (
	joystickBase = "joystick_base"
	joystickTip  = "joystick_tip"
)

// DefaultLeaderboardID is the board runs are submitted to when none is
// configured.
const DefaultLeaderboardID = "total_score"

const (
	defaultEffectVolume = 1.0
	defaultMusicVolume  = 1.0
)

// DefaultPreferences returns the volumes used before anything is saved.
// Rendering options and controls keep whatever the world holds.
func DefaultPreferences() save.Preferences {
	return save.Preferences{
		EffectVolume: defaultEffectVolume,
		MusicVolume:  defaultMusicVolume,
	}
}

// updateMainCamera places cam at the player's eye.
func updateMainCamera(cam *camera.Camera, w *world.World) {
	cam.SetPose(w.CameraPose())
}

// loadWorldDef repopulates w from def.
func loadWorldDef(w *world.World, def *world.Def) {
	w.LoadDef(def)
}

// renderWorld draws w from cam, in stereo when the world is in stereoscopic
// mode and a head-mounted display is present.
func renderWorld(r Renderer, w *world.World, cam *camera.Camera, vr VR) {
	if r == nil {
		return
	}
	cam.Stereo = w.RenderingMode() == world.RenderingStereoscopic &&
		vr != nil && vr.SupportsHeadMountedDisplay()
	r.RenderWorld(w, cam)
}

// renderFader draws the fader overlay unless it is idle and clear.
func renderFader(r Renderer, svc *Services) {
	if r == nil || svc.Fader == nil {
		return
	}
	svc.Fader.Render(r)
}

// playSound plays a one-shot effect at full gain.
func playSound(a Audio, name string) {
	a.PlaySound(a.SoundHandle(name), 1)
}

package states

import (
	"github.com/Faultbox/sushi-raft/internal/engine/audio"
	"github.com/Faultbox/sushi-raft/internal/engine/camera"
	"github.com/Faultbox/sushi-raft/internal/engine/fader"
	"github.com/Faultbox/sushi-raft/internal/engine/input"
	"github.com/Faultbox/sushi-raft/internal/game/progress"
	"github.com/Faultbox/sushi-raft/internal/game/save"
	"github.com/Faultbox/sushi-raft/internal/game/scenelab"
	"github.com/Faultbox/sushi-raft/internal/game/world"
)

// Audio plays sounds and exposes the mixer buses.
type Audio interface {
	SoundHandle(name string) audio.SoundHandle
	PlaySound(h audio.SoundHandle, gain float64) audio.Channel
	FindBus(name string) audio.Bus
}

// Input is the per-frame input the states read.
type Input interface {
	Key(k input.Key) input.Button
	BackPressed() bool
	Pointer(i int) input.Button
	PointerDelta() (dx, dy int)
	Time() float64
	SetRelativeMouseMode(relative bool)
}

// Assets finalizes background loading.
type Assets interface {
	// TryFinalize reports whether every asset is ready. It never blocks.
	TryFinalize() bool
}

// VR is the head-mounted display capability. A nil VR means none.
type VR interface {
	SupportsHeadMountedDisplay() bool
	ResetHeadTracker()
}

// Leaderboard records finished runs.
type Leaderboard interface {
	LoggedIn() bool
	CurrentPlayerHighScore(id string) (int, bool)
	SubmitScore(id string, score int)
}

// Unlockables tracks earned sushi.
type Unlockables interface {
	UnlockRandom() (string, bool)
	IsUnlocked(id string) bool
	RemainingLocked() int
	LockAll() error
}

// XP converts scores into progress toward unlockables.
type XP interface {
	ApplyBonuses(score int, bonus bool) int
	GrantXP(xp int) bool
	XPUntilReward() int
	TotalXP() int
}

// SceneLab is the debug free camera.
type SceneLab interface {
	SetInitialCamera(p camera.Pose)
	AdvanceFrame(deltaMs float64, c scenelab.Controls)
	Camera() *camera.Camera
}

// PreferenceStore persists user preferences.
type PreferenceStore interface {
	Load(defaults save.Preferences) (save.Preferences, error)
	Save(p save.Preferences) error
}

// Renderer draws the world and full-screen overlays.
type Renderer interface {
	fader.QuadDrawer
	RenderWorld(w *world.World, cam *camera.Camera)
}

// Settings are the fixed game parameters the states need.
type Settings struct {
	// WorldDef is loaded on menu entry and after a stereo retry.
	WorldDef *world.Def
	// LeaderboardID names the board runs are submitted to.
	LeaderboardID string
	// Defaults are the preferences used when nothing is saved. Nil means
	// DefaultPreferences.
	Defaults *save.Preferences
	About    string
	License  string
}

// Services are the collaborators handed to every state. Optional services
// may be nil and are replaced by inert implementations in Normalize.
type Services struct {
	Audio       Audio
	Input       Input
	World       *world.World
	Assets      Assets
	Fader       *fader.Fader
	UI          UI
	SceneLab    SceneLab
	VR          VR
	Leaderboard Leaderboard
	Unlockables Unlockables
	XP          XP
	Preferences PreferenceStore
	Settings    Settings
}

// Normalize fills absent optional services with null implementations.
func (s *Services) Normalize() {
	if s.Fader == nil {
		s.Fader = fader.New()
	}
	if s.Leaderboard == nil {
		s.Leaderboard = progress.NullLeaderboard{}
	}
	if s.Unlockables == nil {
		s.Unlockables = progress.NullUnlockables{}
	}
	if s.XP == nil {
		s.XP = progress.NullXP{}
	}
	if s.UI == nil {
		s.UI = NullUI{}
	}
	if s.Settings.Defaults == nil {
		defaults := DefaultPreferences()
		s.Settings.Defaults = &defaults
	}
	if s.Settings.LeaderboardID == "" {
		s.Settings.LeaderboardID = DefaultLeaderboardID
	}
}

// hasVR reports whether a head-mounted display is usable.
func (s *Services) hasVR() bool {
	return s.VR != nil && s.VR.SupportsHeadMountedDisplay()
}

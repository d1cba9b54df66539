package states

import (
	"github.com/Faultbox/sushi-raft/internal/engine/camera"
	"github.com/Faultbox/sushi-raft/internal/game/save"
	"github.com/Faultbox/sushi-raft/internal/game/world"
)

// UI draws the 2D interface of every state and reports the user's choices.
// Each method is called once per frame while its page is visible.
type UI interface {
	// StartMenu returns the requested sub-state, and the options page to
	// open when it is MenuOptions.
	StartMenu(v StartMenuView) (MenuSubState, OptionsPage)

	// OptionsMenu returns the page to show next frame. back is true when
	// the page's back button was pressed.
	OptionsMenu(v OptionsView) (page OptionsPage, back bool)

	// ScoreReview returns the requested sub-state.
	ScoreReview(v ScoreReviewView) MenuSubState

	// BindJoystick sets the images of the on-screen controller.
	BindJoystick(j Joystick)
	HUD(v HUDView)
	PauseMenu(v PauseView) PauseChoice
	GameOver(v GameOverView)
	Intro(v IntroView)
	SceneLab(v SceneLabView)
}

// StartMenuView is the data shown on the title page.
type StartMenuView struct {
	SupportsHMD bool
	Sushi       string
	Level       string
}

// SushiItem is one entry of the sushi page.
type SushiItem struct {
	Name     string
	Unlocked bool
}

// OptionsView is the data and callbacks of the options pages.
type OptionsView struct {
	Page OptionsPage

	EffectVolume float64
	MusicVolume  float64
	Rendering    [2]save.RenderingFlags

	SupportsHMD        bool
	GyroscopicControls bool

	Sushi         []SushiItem
	SelectedSushi int
	Levels        []string
	SelectedLevel int

	About   string
	License string

	TotalXP         int
	XPUntilReward   int
	RemainingLocked int

	OnVolumes      func(effect, music float64)
	OnRendering    func(mode world.RenderingMode, flags save.RenderingFlags)
	OnGyroscopic   func(enabled bool)
	OnSelectSushi  func(index int)
	OnSelectLevel  func(index int)
	OnUnlockRandom func()
	OnLockAll      func()
}

// ScoreReviewView is the summary of the last run.
type ScoreReviewView struct {
	Summary         ScoreSummary
	XPUntilReward   int
	RemainingLocked int
}

// Joystick names the base and tip images of the on-screen controller.
type Joystick struct {
	Base string
	Tip  string
}

// HUDView is the in-game overlay.
type HUDView struct {
	PatronsFed  int
	SushiThrown int
	Lap         int
	RemainingMs float64
	Sushi       string
	Stereo      bool
}

// PauseChoice is a button of the pause menu.
type PauseChoice int

const (
	PauseNone PauseChoice = iota
	PauseResume
	PauseQuit
)

// PauseView is the pause page.
type PauseView struct {
	PatronsFed int
	Lap        int
}

// GameOverView is the end-of-run overlay.
type GameOverView struct {
	PatronsFed int
	HighScore  bool
	CanDismiss bool
}

// IntroView is shown while the stereo intro plays.
type IntroView struct {
	RemainingMs float64
}

// SceneLabView describes the free camera.
type SceneLabView struct {
	Pose camera.Pose
}

// NullUI draws nothing and never requests a change.
type NullUI struct{}

func (NullUI) StartMenu(StartMenuView) (MenuSubState, OptionsPage) {
	return MenuStart, OptionsMain
}

func (NullUI) OptionsMenu(v OptionsView) (OptionsPage, bool) { return v.Page, false }

func (NullUI) ScoreReview(ScoreReviewView) MenuSubState { return MenuScoreReview }

func (NullUI) BindJoystick(Joystick)           {}
func (NullUI) HUD(HUDView)                     {}
func (NullUI) PauseMenu(PauseView) PauseChoice { return PauseNone }
func (NullUI) GameOver(GameOverView)           {}
func (NullUI) Intro(IntroView)                 {}
func (NullUI) SceneLab(SceneLabView)           {}

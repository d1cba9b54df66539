package states

import (
	"testing"
	"time"

	"github.com/Faultbox/sushi-raft/internal/engine/audio"
	"github.com/Faultbox/sushi-raft/internal/engine/camera"
	"github.com/Faultbox/sushi-raft/internal/engine/input"
	"github.com/Faultbox/sushi-raft/internal/game/save"
	"github.com/Faultbox/sushi-raft/internal/game/scenelab"
	"github.com/Faultbox/sushi-raft/internal/game/world"
)

type fakeChannel struct {
	name    string
	gain    float64
	paused  bool
	stopped bool
}

func (c *fakeChannel) SetGain(g float64) { c.gain = g }
func (c *fakeChannel) Gain() float64     { return c.gain }
func (c *fakeChannel) Stop()             { c.stopped = true }
func (c *fakeChannel) Pause()            { c.paused = true }
func (c *fakeChannel) Resume()           { c.paused = false }
func (c *fakeChannel) Valid() bool       { return true }
func (c *fakeChannel) Playing() bool     { return !c.stopped }

type fakeBus struct {
	name string
	gain float64
}

func (b *fakeBus) Name() string      { return b.name }
func (b *fakeBus) SetGain(g float64) { b.gain = g }
func (b *fakeBus) Gain() float64     { return b.gain }

// fakeAudio records every playback. Handles come from a real engine since
// they only carry the sound name.
type fakeAudio struct {
	handles *audio.Engine
	played  []*fakeChannel
	buses   map[string]*fakeBus
}

func newFakeAudio() *fakeAudio {
	return &fakeAudio{
		handles: audio.NewEngine(0),
		buses:   make(map[string]*fakeBus),
	}
}

func (a *fakeAudio) SoundHandle(name string) audio.SoundHandle {
	return a.handles.SoundHandle(name)
}

func (a *fakeAudio) PlaySound(h audio.SoundHandle, gain float64) audio.Channel {
	c := &fakeChannel{name: h.Name(), gain: gain}
	a.played = append(a.played, c)
	return c
}

func (a *fakeAudio) FindBus(name string) audio.Bus {
	return a.bus(name)
}

func (a *fakeAudio) bus(name string) *fakeBus {
	b, ok := a.buses[name]
	if !ok {
		b = &fakeBus{name: name, gain: 1}
		a.buses[name] = b
	}
	return b
}

// last returns the most recent playback of name.
func (a *fakeAudio) last(name string) *fakeChannel {
	for i := len(a.played) - 1; i >= 0; i-- {
		if a.played[i].name == name {
			return a.played[i]
		}
	}
	return nil
}

func (a *fakeAudio) count(name string) int {
	n := 0
	for _, c := range a.played {
		if c.name == name {
			n++
		}
	}
	return n
}

type startChoice struct {
	sub  MenuSubState
	page OptionsPage
}

// fakeUI answers each page from a script. Unscripted pages stay put.
type fakeUI struct {
	NullUI

	start     []startChoice
	options   func(v OptionsView) (OptionsPage, bool)
	review    []MenuSubState
	pause     PauseChoice
	startSeen int

	lastOptions  OptionsView
	lastReview   ScoreReviewView
	lastGameOver GameOverView
	lastHUD      HUDView
	joystick     Joystick
}

func (u *fakeUI) StartMenu(StartMenuView) (MenuSubState, OptionsPage) {
	u.startSeen++
	if len(u.start) == 0 {
		return MenuStart, OptionsMain
	}
	c := u.start[0]
	u.start = u.start[1:]
	return c.sub, c.page
}

func (u *fakeUI) OptionsMenu(v OptionsView) (OptionsPage, bool) {
	u.lastOptions = v
	if u.options == nil {
		return v.Page, false
	}
	return u.options(v)
}

func (u *fakeUI) ScoreReview(v ScoreReviewView) MenuSubState {
	u.lastReview = v
	if len(u.review) == 0 {
		return MenuScoreReview
	}
	s := u.review[0]
	u.review = u.review[1:]
	return s
}

func (u *fakeUI) PauseMenu(PauseView) PauseChoice {
	c := u.pause
	u.pause = PauseNone
	return c
}

func (u *fakeUI) GameOver(v GameOverView) { u.lastGameOver = v }
func (u *fakeUI) HUD(v HUDView)           { u.lastHUD = v }
func (u *fakeUI) BindJoystick(j Joystick) { u.joystick = j }

type fakePrefs struct {
	stored  *save.Preferences
	loadErr error
	saves   int
}

func (p *fakePrefs) Load(defaults save.Preferences) (save.Preferences, error) {
	if p.loadErr != nil {
		return defaults, p.loadErr
	}
	if p.stored == nil {
		return defaults, save.ErrNoData
	}
	return *p.stored, nil
}

func (p *fakePrefs) Save(prefs save.Preferences) error {
	p.stored = &prefs
	p.saves++
	return nil
}

type fakeRenderer struct {
	worlds int
	quads  []float32
	stereo bool
}

func (r *fakeRenderer) DrawFullscreenQuad(_, _, _, a float32) { r.quads = append(r.quads, a) }

func (r *fakeRenderer) RenderWorld(_ *world.World, cam *camera.Camera) {
	r.worlds++
	r.stereo = cam.Stereo
}

type fakeAssets struct {
	ready bool
	polls int
}

func (a *fakeAssets) TryFinalize() bool {
	a.polls++
	return a.ready
}

type fakeVR struct {
	resets int
}

func (v *fakeVR) SupportsHeadMountedDisplay() bool  { return true }
func (v *fakeVR) ResetHeadTracker()                 { v.resets++ }
func (v *fakeVR) Orientation() (yaw, pitch float32) { return 0, 0 }

type fakeLeaderboard struct {
	loggedIn  bool
	best      int
	hasBest   bool
	submitted []int
}

func (l *fakeLeaderboard) LoggedIn() bool { return l.loggedIn }

func (l *fakeLeaderboard) CurrentPlayerHighScore(string) (int, bool) {
	return l.best, l.hasBest
}

func (l *fakeLeaderboard) SubmitScore(_ string, score int) {
	l.submitted = append(l.submitted, score)
}

type fakeXP struct {
	levelUp bool
	granted []int
}

func (x *fakeXP) ApplyBonuses(score int, bonus bool) int {
	if bonus {
		return score * 2
	}
	return score
}

func (x *fakeXP) GrantXP(xp int) bool {
	x.granted = append(x.granted, xp)
	return x.levelUp
}

func (x *fakeXP) XPUntilReward() int { return 100 }
func (x *fakeXP) TotalXP() int       { return 0 }

type fakeUnlockables struct {
	next   string
	locked map[string]bool
}

func (u *fakeUnlockables) UnlockRandom() (string, bool) {
	if u.next == "" {
		return "", false
	}
	delete(u.locked, u.next)
	return u.next, true
}

func (u *fakeUnlockables) IsUnlocked(id string) bool { return !u.locked[id] }
func (u *fakeUnlockables) RemainingLocked() int      { return len(u.locked) }
func (u *fakeUnlockables) LockAll() error            { return nil }

// testDef is a straight rail the raft never moves along, so laps only
// change when a test sets them.
func testDef() *world.Def {
	return &world.Def{
		Name: "test",
		Levels: []world.LevelDef{
			{
				Name:         "Still",
				RaftSpeed:    0,
				CameraHeight: 1.6,
				Rail:         []world.Point{{0, 0, 0}, {0, 0, -100}},
			},
			{
				Name:         "Other",
				RaftSpeed:    0,
				CameraHeight: 1.6,
				Rail:         []world.Point{{0, 0, 0}, {100, 0, 0}},
			},
		},
	}
}

type testEnv struct {
	t        *testing.T
	now      time.Time
	in       *input.System
	world    *world.World
	audio    *fakeAudio
	ui       *fakeUI
	prefs    *fakePrefs
	renderer *fakeRenderer
	assets   *fakeAssets
	svc      *Services
	manager  *Manager
}

type envOption func(*Services)

func withVR(vr *fakeVR) envOption {
	return func(s *Services) {
		s.VR = vr
		s.World.SetHeadTracker(vr)
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	e := &testEnv{
		t:        t,
		now:      time.Unix(1000, 0),
		audio:    newFakeAudio(),
		ui:       &fakeUI{},
		prefs:    &fakePrefs{},
		renderer: &fakeRenderer{},
		assets:   &fakeAssets{ready: true},
	}
	e.in = input.NewWithClock(func() time.Time { return e.now })
	e.world = world.New(e.in, []string{"salmon", "tuna", "eel"})
	e.world.LoadDef(testDef())
	e.svc = &Services{
		Audio:       e.audio,
		Input:       e.in,
		World:       e.world,
		Assets:      e.assets,
		UI:          e.ui,
		SceneLab:    scenelab.New(),
		Preferences: e.prefs,
		Settings:    Settings{WorldDef: testDef()},
	}
	for _, o := range opts {
		o(e.svc)
	}
	e.manager = NewManager(e.svc)
	return e
}

// frame runs one full frame after applying events.
func (e *testEnv) frame(deltaMs float64, events ...input.Event) {
	e.now = e.now.Add(time.Duration(deltaMs * float64(time.Millisecond)))
	e.in.BeginFrame()
	for _, ev := range events {
		e.in.Apply(ev)
	}
	e.manager.AdvanceFrame(deltaMs)
	e.manager.RenderPrep()
	e.manager.Render(e.renderer)
	e.manager.HandleUI(e.renderer)
}

func (e *testEnv) frames(n int, deltaMs float64) {
	for i := 0; i < n; i++ {
		e.frame(deltaMs)
	}
}

func (e *testEnv) menu() *Menu         { return e.manager.State(StateGameMenu).(*Menu) }
func (e *testEnv) gameplay() *Gameplay { return e.manager.State(StateGameplay).(*Gameplay) }
func (e *testEnv) gameOver() *GameOver { return e.manager.State(StateGameOver).(*GameOver) }

func (e *testEnv) expectState(want GameState) {
	e.t.Helper()
	if got := e.manager.Current(); got != want {
		e.t.Fatalf("expected state %s, got %s", want, got)
	}
}

// tap presses and releases k within one frame.
func tap(k input.Key) []input.Event {
	return []input.Event{
		{Type: input.EventKeyDown, Key: k},
		{Type: input.EventKeyUp, Key: k},
	}
}

func click() []input.Event {
	return []input.Event{
		{Type: input.EventMouseDown, Button: input.PointerLeft},
		{Type: input.EventMouseUp, Button: input.PointerLeft},
	}
}

// startGameplay enters the menu and presses Play.
func (e *testEnv) startGameplay() {
	e.t.Helper()
	e.manager.Start(StateGameMenu)
	e.ui.start = append(e.ui.start, startChoice{sub: MenuFinished})
	e.frame(16)
	e.frame(16)
	e.expectState(StateGameplay)
}

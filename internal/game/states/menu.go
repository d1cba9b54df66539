package states

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/sushi-raft/internal/engine/audio"
	"github.com/Faultbox/sushi-raft/internal/engine/camera"
	"github.com/Faultbox/sushi-raft/internal/engine/fader"
	"github.com/Faultbox/sushi-raft/internal/game/save"
	"github.com/Faultbox/sushi-raft/internal/game/world"
	"github.com/Faultbox/sushi-raft/internal/logger"
)

// MenuSubState is the page of the title menu.
type MenuSubState int

const (
	MenuStart MenuSubState = iota
	MenuOptions
	MenuScoreReview
	// MenuQuit fades out and exits.
	MenuQuit
	// MenuFinished starts a monoscopic run.
	MenuFinished
	// MenuCardboard starts a stereoscopic run through the intro.
	MenuCardboard
	// MenuGamepad starts a monoscopic run with the gamepad controller.
	MenuGamepad
	// MenuReceivedInvite is reserved for multiplayer invites and is never
	// entered.
	MenuReceivedInvite
)

func (s MenuSubState) String() string {
	switch s {
	case MenuStart:
		return "Start"
	case MenuOptions:
		return "Options"
	case MenuScoreReview:
		return "ScoreReview"
	case MenuQuit:
		return "Quit"
	case MenuFinished:
		return "Finished"
	case MenuCardboard:
		return "Cardboard"
	case MenuGamepad:
		return "Gamepad"
	case MenuReceivedInvite:
		return "ReceivedInvite"
	}
	return "Unknown"
}

// OptionsPage is a page of the options menu.
type OptionsPage int

const (
	OptionsMain OptionsPage = iota
	OptionsAudio
	OptionsVideo
	OptionsRendering
	OptionsControls
	OptionsSushi
	OptionsLevel
	OptionsAbout
	OptionsLicense
	OptionsAccomplishments
)

func (p OptionsPage) String() string {
	switch p {
	case OptionsMain:
		return "Main"
	case OptionsAudio:
		return "Audio"
	case OptionsVideo:
		return "Video"
	case OptionsRendering:
		return "Rendering"
	case OptionsControls:
		return "Controls"
	case OptionsSushi:
		return "Sushi"
	case OptionsLevel:
		return "Level"
	case OptionsAbout:
		return "About"
	case OptionsLicense:
		return "License"
	case OptionsAccomplishments:
		return "Accomplishments"
	}
	return "Unknown"
}

// topLevel reports whether p is reached directly from the title page.
func (p OptionsPage) topLevel() bool {
	return p == OptionsMain || p == OptionsSushi || p == OptionsLevel
}

// quitFadeMs is the length of the fade to black before exiting. The exit
// sound is slightly longer, but the audio fades with the screen.
const quitFadeMs = 1000

// Menu hosts the title page, the options pages, the score review and the
// quit fade.
type Menu struct {
	svc    *Services
	camera *camera.Camera

	sub             MenuSubState
	page            OptionsPage
	summary         ScoreSummary
	loadingComplete bool

	effectVolume float64
	musicVolume  float64

	music audio.Channel

	master  audio.Bus
	musicB  audio.Bus
	effects audio.Bus
	voices  audio.Bus
}

// NewMenu creates the menu state. It plays nothing and leaves the world
// untouched until entered.
func NewMenu(svc *Services) *Menu {
	m := &Menu{
		svc:          svc,
		camera:       camera.New(),
		effectVolume: svc.Settings.Defaults.EffectVolume,
		musicVolume:  svc.Settings.Defaults.MusicVolume,
		music:        audio.NullChannel{},
		master:       svc.Audio.FindBus(audio.BusMaster),
		musicB:       svc.Audio.FindBus(audio.BusMusic),
		effects:      svc.Audio.FindBus(audio.BusSoundEffects),
		voices:       svc.Audio.FindBus(audio.BusVoices),
	}
	return m
}

// SubState returns the current menu page.
func (m *Menu) SubState() MenuSubState { return m.sub }

// Page returns the current options page.
func (m *Menu) Page() OptionsPage { return m.page }

// Summary returns the score of the last run, zero once reviewed.
func (m *Menu) Summary() ScoreSummary { return m.summary }

// Volumes returns the effect and music slider values.
func (m *Menu) Volumes() (effect, music float64) { return m.effectVolume, m.musicVolume }

// LoadingComplete reports whether the menu UI is being drawn.
func (m *Menu) LoadingComplete() bool { return m.loadingComplete }

// AdvanceFrame implements State.
func (m *Menu) AdvanceFrame(deltaMs float64) GameState {
	w := m.svc.World
	w.Update(deltaMs)
	updateMainCamera(m.camera, w)

	if m.svc.Input.BackPressed() {
		m.back()
	}

	switch m.sub {
	case MenuStart:
		w.SetRenderingMode(world.RenderingMonoscopic)
	case MenuFinished:
		w.SetRenderingMode(world.RenderingMonoscopic)
		w.SetActiveController(world.ControllerDefault)
		return StateGameplay
	case MenuCardboard:
		w.SetHMDControllerEnabled(true)
		w.SetRenderingMode(world.RenderingStereoscopic)
		w.SetActiveController(world.ControllerDefault)
		return StateIntro
	case MenuGamepad:
		w.SetRenderingMode(world.RenderingMonoscopic)
		w.SetActiveController(world.ControllerGamepad)
		return StateGameplay
	case MenuQuit:
		f := m.svc.Fader
		f.AdvanceFrame(deltaMs)
		m.master.SetGain(quitGain(f.Offset()))
		if f.Finished() {
			return StateExit
		}
	}
	return StateGameMenu
}

// quitGain maps the fader's opacity to the master bus gain.
func quitGain(offset float64) float64 {
	if offset >= 1 {
		return 0
	}
	return math.Cos(offset * 0.5 * math.Pi)
}

// back applies the back button to the current page.
func (m *Menu) back() {
	switch m.sub {
	case MenuStart:
		m.setSubState(MenuQuit)
	case MenuOptions:
		if m.page == OptionsAudio {
			m.saveData()
		}
		if m.page == OptionsAudio || m.page.topLevel() {
			m.setSubState(MenuStart)
		} else {
			m.page = OptionsMain
		}
	case MenuScoreReview:
		m.setSubState(MenuStart)
	}
}

// setSubState switches page, running the leave and enter actions of the
// pages involved.
func (m *Menu) setSubState(next MenuSubState) {
	if next == m.sub {
		return
	}
	logger.Debug("menu page", zap.Stringer("from", m.sub), zap.Stringer("to", next))

	if m.sub == MenuScoreReview {
		m.summary = ScoreSummary{}
	}
	switch next {
	case MenuQuit:
		playSound(m.svc.Audio, soundExit)
		m.svc.Fader.Start(quitFadeMs, fader.Black, fader.FadeOut)
	case MenuFinished, MenuCardboard, MenuGamepad:
		playSound(m.svc.Audio, soundStart)
	case MenuOptions, MenuStart:
		playSound(m.svc.Audio, soundClick)
	}
	m.sub = next
}

// RenderPrep implements State.
func (m *Menu) RenderPrep() {}

// Render implements State.
func (m *Menu) Render(r Renderer) {
	renderWorld(r, m.svc.World, m.camera, m.svc.VR)
}

// HandleUI implements State.
func (m *Menu) HandleUI(r Renderer) {
	if !m.loadingComplete {
		m.loadingComplete = m.svc.Assets == nil || m.svc.Assets.TryFinalize()
	}
	if !m.loadingComplete {
		return
	}
	ui := m.svc.UI
	switch m.sub {
	case MenuStart:
		next, page := ui.StartMenu(m.startMenuView())
		if next == MenuOptions {
			m.page = page
		}
		m.setSubState(next)
	case MenuOptions:
		page, back := ui.OptionsMenu(m.optionsView())
		if back {
			m.optionsBack()
			return
		}
		if page != m.page {
			playSound(m.svc.Audio, soundClick)
			m.page = page
		}
	case MenuScoreReview:
		m.setSubState(ui.ScoreReview(ScoreReviewView{
			Summary:         m.summary,
			XPUntilReward:   m.svc.XP.XPUntilReward(),
			RemainingLocked: m.svc.Unlockables.RemainingLocked(),
		}))
	case MenuQuit:
		renderFader(r, m.svc)
	}
}

// optionsBack handles the back button drawn on the options pages. Leaving
// the audio or rendering page saves.
func (m *Menu) optionsBack() {
	if m.page == OptionsAudio || m.page == OptionsRendering {
		m.saveData()
	}
	if m.page.topLevel() {
		m.setSubState(MenuStart)
		return
	}
	playSound(m.svc.Audio, soundExit)
	m.page = OptionsMain
}

func (m *Menu) startMenuView() StartMenuView {
	return StartMenuView{
		SupportsHMD: m.svc.hasVR(),
		Sushi:       m.svc.World.SelectedSushi(),
		Level:       m.svc.World.CurrentLevelName(),
	}
}

func (m *Menu) optionsView() OptionsView {
	w := m.svc.World
	names := w.SushiNames()
	sushi := make([]SushiItem, len(names))
	for i, n := range names {
		sushi[i] = SushiItem{Name: n, Unlocked: m.svc.Unlockables.IsUnlocked(n)}
	}
	return OptionsView{
		Page:               m.page,
		EffectVolume:       m.effectVolume,
		MusicVolume:        m.musicVolume,
		Rendering:          renderingFlags(w),
		SupportsHMD:        m.svc.hasVR(),
		GyroscopicControls: w.HMDControllerEnabled(),
		Sushi:              sushi,
		SelectedSushi:      w.SushiIndex(),
		Levels:             w.LevelNames(),
		SelectedLevel:      w.LevelIndex(),
		About:              m.svc.Settings.About,
		License:            m.svc.Settings.License,
		TotalXP:            m.svc.XP.TotalXP(),
		XPUntilReward:      m.svc.XP.XPUntilReward(),
		RemainingLocked:    m.svc.Unlockables.RemainingLocked(),

		OnVolumes:      m.SetVolumes,
		OnRendering:    m.setRendering,
		OnGyroscopic:   m.setGyroscopic,
		OnSelectSushi:  m.selectSushi,
		OnSelectLevel:  m.selectLevel,
		OnUnlockRandom: m.unlockRandom,
		OnLockAll:      m.lockAll,
	}
}

// SetVolumes moves the volume sliders and applies them to the buses.
func (m *Menu) SetVolumes(effect, music float64) {
	effect, music = clamp01(effect), clamp01(music)
	if effect == m.effectVolume && music == m.musicVolume {
		return
	}
	if effect != m.effectVolume {
		playSound(m.svc.Audio, soundSelect)
	}
	m.effectVolume, m.musicVolume = effect, music
	m.updateVolumes()
}

func (m *Menu) setRendering(mode world.RenderingMode, flags save.RenderingFlags) {
	applyRenderingFlags(m.svc.World, mode, flags)
	m.saveData()
}

func (m *Menu) setGyroscopic(enabled bool) {
	if !m.svc.hasVR() {
		return
	}
	m.svc.World.SetHMDControllerEnabled(enabled)
	m.saveData()
}

func (m *Menu) selectSushi(i int) {
	w := m.svc.World
	names := w.SushiNames()
	if i < 0 || i >= len(names) || !m.svc.Unlockables.IsUnlocked(names[i]) {
		return
	}
	playSound(m.svc.Audio, soundSelect)
	w.SetSushiIndex(i)
}

func (m *Menu) selectLevel(i int) {
	w := m.svc.World
	if i < 0 || i >= len(w.LevelNames()) || i == w.LevelIndex() {
		return
	}
	playSound(m.svc.Audio, soundSelect)
	w.SetLevelIndex(i)
	loadWorldDef(w, m.svc.Settings.WorldDef)
	updateMainCamera(m.camera, w)
}

func (m *Menu) unlockRandom() {
	if id, ok := m.svc.Unlockables.UnlockRandom(); ok {
		logger.Info("unlocked", zap.String("sushi", id))
	}
}

func (m *Menu) lockAll() {
	if err := m.svc.Unlockables.LockAll(); err != nil {
		logger.Warn("failed to lock unlockables", zap.Error(err))
	}
	// A locked sushi cannot stay selected.
	m.svc.World.SetSushiIndex(0)
}

// OnEnter implements State.
func (m *Menu) OnEnter(prev GameState) {
	w := m.svc.World
	if prev == StateGameOver {
		m.reviewRun()
		m.sub = MenuScoreReview
	} else {
		m.sub = MenuStart
		if w.RenderingMode() == world.RenderingStereoscopic && m.svc.hasVR() {
			m.sub = MenuCardboard
		}
	}

	m.loadingComplete = false
	loadWorldDef(w, m.svc.Settings.WorldDef)
	updateMainCamera(m.camera, w)
	m.music = m.svc.Audio.PlaySound(m.svc.Audio.SoundHandle(musicMenu), 1)
	w.Player().State = world.PlayerDisabled
	m.svc.Input.SetRelativeMouseMode(false)
	w.ResetControllerFacing()
	m.loadData()
}

// reviewRun scores the run that just ended and grants its XP. It reads the
// world before the menu reloads it.
func (m *Menu) reviewRun() {
	w := m.svc.World
	attrs := w.Player().Attributes
	laps, err := w.Lap()
	if err != nil {
		logger.Warn("scoring run without raft", zap.Error(err))
	}
	m.summary = NewScoreSummary(attrs.PatronsFed, attrs.ProjectilesFired, laps)
	m.summary.EarnedXP = m.svc.XP.ApplyBonuses(m.summary.TotalScore, true)
	if m.svc.XP.GrantXP(m.summary.EarnedXP) {
		m.summary.EarnedUnlockable, m.summary.DidEarnUnlock = m.svc.Unlockables.UnlockRandom()
	}
	logger.Info("run finished",
		zap.Int("patrons_fed", m.summary.PatronsFed),
		zap.Int("sushi_thrown", m.summary.SushiThrown),
		zap.Int("laps", m.summary.LapsFinished),
		zap.Int("score", m.summary.TotalScore),
		zap.Int("xp", m.summary.EarnedXP))
}

// OnExit implements State.
func (m *Menu) OnExit(GameState) {
	m.music.Stop()
	m.music = audio.NullChannel{}
}

// loadData restores saved preferences. Volumes fall back to the defaults
// when nothing usable is saved; rendering and controls are only touched by
// a valid record.
func (m *Menu) loadData() {
	defaults := m.svc.Settings.Defaults
	m.effectVolume = defaults.EffectVolume
	m.musicVolume = defaults.MusicVolume
	defer m.updateVolumes()

	if m.svc.Preferences == nil {
		return
	}
	base := m.preferences()
	base.EffectVolume, base.MusicVolume = defaults.EffectVolume, defaults.MusicVolume
	p, err := m.svc.Preferences.Load(base)
	if err != nil {
		if !errors.Is(err, save.ErrNoData) {
			logger.Warn("ignoring saved preferences", zap.Error(err))
		}
		return
	}

	m.effectVolume = clamp01(p.EffectVolume)
	m.musicVolume = clamp01(p.MusicVolume)
	w := m.svc.World
	applyRenderingFlags(w, world.RenderingMonoscopic, p.Rendering[save.Mono])
	applyRenderingFlags(w, world.RenderingStereoscopic, p.Rendering[save.Stereo])
	if m.svc.hasVR() {
		w.SetHMDControllerEnabled(p.GyroscopicControls)
	}
}

// saveData writes the sliders and rendering options. Missing storage is
// not an error.
func (m *Menu) saveData() {
	if m.svc.Preferences == nil {
		return
	}
	if err := m.svc.Preferences.Save(m.preferences()); err != nil {
		logger.Warn("failed to save preferences", zap.Error(err))
	}
}

func (m *Menu) preferences() save.Preferences {
	w := m.svc.World
	return save.Preferences{
		EffectVolume:       m.effectVolume,
		MusicVolume:        m.musicVolume,
		Rendering:          renderingFlags(w),
		GyroscopicControls: w.HMDControllerEnabled(),
	}
}

// updateVolumes applies the sliders. The master bus belongs to the quit
// fade.
func (m *Menu) updateVolumes() {
	m.effects.SetGain(m.effectVolume)
	m.voices.SetGain(m.effectVolume)
	m.musicB.SetGain(m.musicVolume)
}

func renderingFlags(w *world.World) [2]save.RenderingFlags {
	get := func(mode world.RenderingMode) save.RenderingFlags {
		return save.RenderingFlags{
			Shadows:  w.RenderingOptionEnabled(mode, world.OptionShadows),
			Phong:    w.RenderingOptionEnabled(mode, world.OptionPhong),
			Specular: w.RenderingOptionEnabled(mode, world.OptionSpecular),
		}
	}
	return [2]save.RenderingFlags{
		save.Mono:   get(world.RenderingMonoscopic),
		save.Stereo: get(world.RenderingStereoscopic),
	}
}

func applyRenderingFlags(w *world.World, mode world.RenderingMode, f save.RenderingFlags) {
	w.SetRenderingOption(mode, world.OptionShadows, f.Shadows)
	w.SetRenderingOption(mode, world.OptionPhong, f.Phong)
	w.SetRenderingOption(mode, world.OptionSpecular, f.Specular)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

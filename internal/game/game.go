// Package game implements the main game loop and wires the engine to the
// state machine.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/sushi-raft/internal/assets"
	"github.com/Faultbox/sushi-raft/internal/config"
	"github.com/Faultbox/sushi-raft/internal/engine/audio"
	"github.com/Faultbox/sushi-raft/internal/engine/audio/device"
	"github.com/Faultbox/sushi-raft/internal/engine/fader"
	"github.com/Faultbox/sushi-raft/internal/engine/input"
	"github.com/Faultbox/sushi-raft/internal/engine/input/sdlinput"
	"github.com/Faultbox/sushi-raft/internal/engine/renderer"
	"github.com/Faultbox/sushi-raft/internal/engine/ui2d"
	"github.com/Faultbox/sushi-raft/internal/engine/vr"
	"github.com/Faultbox/sushi-raft/internal/engine/window"
	"github.com/Faultbox/sushi-raft/internal/game/progress"
	"github.com/Faultbox/sushi-raft/internal/game/save"
	"github.com/Faultbox/sushi-raft/internal/game/scenelab"
	"github.com/Faultbox/sushi-raft/internal/game/states"
	"github.com/Faultbox/sushi-raft/internal/game/ui"
	"github.com/Faultbox/sushi-raft/internal/game/world"
	"github.com/Faultbox/sushi-raft/internal/logger"
)

// Frame deltas are clamped so a stall never teleports the raft and a fast
// display never slows the simulation below its design rate.
const (
	minFrameMs = 1000.0 / 60
	maxFrameMs = 1000.0 / 30
)

// Game is the main game instance.
type Game struct {
	config *config.Config

	window   *window.Window
	renderer *renderer.Renderer
	scene    *sceneRenderer
	uiR      *ui2d.Renderer
	pages    *ui.Pages
	debug    *ui.DebugOverlay

	input *input.System
	pump  *sdlinput.Pump
	hmd   *vr.HeadMountedDisplay

	audio  *audio.Engine
	output *device.Output
	assets *assets.Manager
	cancel context.CancelFunc

	progress *progress.Store
	world    *world.World
	manager  *states.Manager

	width, height int
}

// New creates the window and every subsystem described by cfg.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen),
		zap.Bool("vr", cfg.Game.VREnabled),
	)

	g := &Game{config: cfg}

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      "Sushi Raft",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	g.width, g.height = g.window.GetSize()
	fbW, fbH := g.window.DrawableSize()

	// Renderers need the GL context the window just made current.
	g.renderer, err = renderer.New(renderer.Config{Width: fbW, Height: fbH})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	g.scene = &sceneRenderer{gl: g.renderer}

	g.uiR, err = ui2d.New(fbW, fbH)
	if err != nil {
		g.renderer.Close()
		g.window.Close()
		return nil, fmt.Errorf("failed to create UI renderer: %w", err)
	}
	g.pages = ui.New(ui2d.NewContext(g.uiR))
	g.debug = ui.NewDebugOverlay(cfg.Game.ShowFPS)

	g.input = input.New()
	g.input.Apply(input.Event{Type: input.EventWindowResize, Width: g.width, Height: g.height})
	g.pump = sdlinput.New(g.input)
	if cfg.Game.VREnabled {
		g.hmd = vr.New(g.input)
	}

	g.initAudio()
	g.initAssets()

	svc := g.services()
	g.manager = states.NewManager(svc)

	logger.Info("game initialized successfully")
	return g, nil
}

// initAudio creates the mixer and, unless muted, opens the output device.
// A missing device leaves the game silent rather than failing.
func (g *Game) initAudio() {
	cfg := g.config.Audio
	g.audio = audio.NewEngine(beep.SampleRate(cfg.SampleRate))
	if cfg.DisableOutput {
		logger.Info("audio output disabled")
		return
	}
	out, err := device.Open(g.audio, time.Duration(cfg.BufferMs)*time.Millisecond)
	if err != nil {
		logger.Warn("audio output unavailable", zap.Error(err))
		return
	}
	g.output = out
}

// initAssets reads the sound bank and starts decoding in the background.
func (g *Game) initAssets() {
	g.assets = assets.NewManager(g.config.Data.AssetsDir, g.audio)
	if err := g.assets.LoadSoundBank(g.config.Data.SoundBank); err != nil {
		logger.Warn("sound bank not loaded", zap.Error(err))
	}
	var ctx context.Context
	ctx, g.cancel = context.WithCancel(context.Background())
	g.assets.StartLoading(ctx)
}

// services builds the collaborators handed to the states. Optional
// services that cannot be created are left nil and replaced by null
// implementations.
func (g *Game) services() *states.Services {
	cfg := g.config

	g.world = world.New(g.input, cfg.Game.Sushi)
	g.world.SetLevelIndex(cfg.Game.LevelIndex)
	g.world.SetLimits(world.Limits{
		TimeMs: cfg.Game.TimeLimitSeconds * 1000,
		Laps:   cfg.Game.LapLimit,
	})

	svc := &states.Services{
		Audio:       g.audio,
		Input:       g.input,
		World:       g.world,
		Assets:      g.assets,
		Fader:       fader.New(),
		UI:          g.pages,
		SceneLab:    scenelab.New(),
		Preferences: save.Open(cfg.Save.AppName, cfg.Save.FileName),
		Settings: states.Settings{
			WorldDef:      g.loadWorldDef(),
			LeaderboardID: cfg.Leaderboard.LeaderboardID,
			Defaults: &save.Preferences{
				EffectVolume: cfg.Audio.EffectVolume,
				MusicVolume:  cfg.Audio.MusicVolume,
			},
			About:   g.assets.Text(cfg.Data.AboutFile),
			License: g.assets.Text(cfg.Data.LicenseFile),
		},
	}
	if g.hmd != nil {
		g.world.SetHeadTracker(g.hmd)
		svc.VR = g.hmd
	}
	g.initProgress(svc)
	return svc
}

// loadWorldDef reads the configured world definition, falling back to the
// builtin river.
func (g *Game) loadWorldDef() *world.Def {
	name := g.config.Game.WorldDef
	data, err := g.assets.Load(name)
	if err == nil {
		var def *world.Def
		if def, err = world.ParseDef(data); err == nil {
			logger.Info("world def loaded", zap.String("file", name), zap.String("world", def.Name))
			return def
		}
	}
	logger.Warn("using builtin world def", zap.String("file", name), zap.Error(err))
	return world.DefaultDef()
}

// initProgress opens the local leaderboard database. Any failure leaves
// the progress services unset.
func (g *Game) initProgress(svc *states.Services) {
	cfg := g.config.Leaderboard
	if !cfg.Enabled {
		logger.Info("leaderboard disabled")
		return
	}
	store, err := progress.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("leaderboard unavailable", zap.Error(err))
		return
	}
	unlockables, err := progress.NewUnlockables(store, g.config.Game.Sushi, 1)
	if err != nil {
		logger.Warn("unlockables unavailable", zap.Error(err))
		if cerr := store.Close(); cerr != nil {
			logger.Warn("closing progress store", zap.Error(cerr))
		}
		return
	}
	g.progress = store
	svc.Leaderboard = progress.NewLeaderboard(store)
	svc.Unlockables = unlockables
	svc.XP = progress.NewXP(store, unlockables, cfg.XPPerReward, int(cfg.BonusPercent))
}

// Run shows the loading screen until every asset is ready, then runs the
// state machine until it exits or the window closes.
func (g *Game) Run() error {
	if !g.loading() {
		return nil
	}

	g.manager.Start(states.StateGameMenu)
	logger.Info("starting game loop")

	last := time.Now()
	for !g.manager.Done() {
		frameStart := time.Now()
		if g.pump.Update() {
			logger.Info("window closed")
			break
		}
		g.handleResize()

		deltaMs := clampDelta(frameStart.Sub(last))
		last = frameStart

		if g.hmd != nil {
			g.hmd.Update()
		}
		g.debug.Update(deltaMs)

		g.manager.AdvanceFrame(deltaMs)
		if g.manager.Done() {
			break
		}
		g.manager.RenderPrep()

		g.renderer.Begin()
		g.manager.Render(g.scene)
		g.renderer.End()

		g.uiR.Begin()
		g.pages.Begin(g.input, g.pointerScale())
		g.manager.HandleUI(g.scene)
		g.debug.Render(g.pages)
		g.pages.End()
		g.uiR.End()

		g.window.SwapBuffers()
		g.limitFrameRate(frameStart)
	}

	logger.Info("game loop finished", zap.Stringer("state", g.manager.Current()))
	return nil
}

// loading draws the loading screen until the assets finalize. It returns
// false if the window was closed first.
func (g *Game) loading() bool {
	start := time.Now()
	for !g.assets.TryFinalize() {
		if g.pump.Update() {
			return false
		}
		g.handleResize()

		g.renderer.Begin()
		g.uiR.Begin()
		w, h := g.uiR.GetScreenSize()
		text := "Loading"
		for range int(time.Since(start)/(300*time.Millisecond)) % 4 {
			text += "."
		}
		tw, th := g.uiR.MeasureText("Loading...", 2)
		g.uiR.DrawText((float32(w)-tw)/2, (float32(h)-th)/2, text, 2, ui2d.ColorText)
		g.uiR.End()
		g.window.SwapBuffers()

		time.Sleep(10 * time.Millisecond)
	}
	for _, err := range g.assets.LoadErrors() {
		logger.Debug("asset load error", zap.Error(err))
	}
	logger.Info("loading complete", zap.Duration("took", time.Since(start)))
	return true
}

// handleResize resizes both renderers when the window size changed.
func (g *Game) handleResize() {
	w, h := g.input.WindowSize()
	if w == g.width && h == g.height {
		return
	}
	g.width, g.height = w, h
	fbW, fbH := g.window.DrawableSize()
	g.renderer.Resize(fbW, fbH)
	g.uiR.Resize(fbW, fbH)
}

// pointerScale converts window coordinates to framebuffer pixels.
func (g *Game) pointerScale() float32 {
	if g.width == 0 {
		return 1
	}
	fbW, _ := g.window.DrawableSize()
	return float32(fbW) / float32(g.width)
}

// limitFrameRate sleeps out the rest of the frame when an FPS limit is set.
func (g *Game) limitFrameRate(frameStart time.Time) {
	limit := g.config.Graphics.FPSLimit
	if limit <= 0 {
		return
	}
	if wait := time.Second/time.Duration(limit) - time.Since(frameStart); wait > 0 {
		time.Sleep(wait)
	}
}

func clampDelta(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	return max(min(ms, maxFrameMs), minFrameMs)
}

// Close releases every subsystem in reverse order of creation.
func (g *Game) Close() error {
	logger.Info("closing game")

	var err error
	if g.cancel != nil {
		g.cancel()
	}
	if g.progress != nil {
		err = multierr.Append(err, g.progress.Close())
	}
	if g.output != nil {
		g.output.Close()
	}
	if g.assets != nil {
		g.assets.Close()
	}
	if g.pump != nil {
		g.pump.Close()
	}
	if g.uiR != nil {
		g.uiR.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
	return err
}

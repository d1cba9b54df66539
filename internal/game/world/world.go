// Package world simulates the river: the raft on its rail, the player
// throwing sushi, and the patrons catching it.
package world

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/sushi-raft/internal/engine/camera"
	"github.com/Faultbox/sushi-raft/internal/logger"
	"github.com/Faultbox/sushi-raft/pkg/math"
)

var (
	// ErrNoLevels is returned for definitions without levels.
	ErrNoLevels = errors.New("no levels")
	// ErrShortRail is returned for rails with fewer than two points.
	ErrShortRail = errors.New("rail needs at least two points")
	// ErrNoRaft is returned by queries that need a loaded level.
	ErrNoRaft = errors.New("no raft loaded")
)

// RenderingMode selects mono or stereo output.
type RenderingMode int

const (
	RenderingMonoscopic RenderingMode = iota
	RenderingStereoscopic
	renderingModeCount
)

func (m RenderingMode) String() string {
	if m == RenderingStereoscopic {
		return "Stereoscopic"
	}
	return "Monoscopic"
}

// RenderingOption is a per-mode shader feature toggle.
type RenderingOption int

const (
	OptionShadows RenderingOption = iota
	OptionPhong
	OptionSpecular
	renderingOptionCount
)

// DebugFlags are developer toggles driven by hotkeys.
type DebugFlags struct {
	DrawPhysics       bool
	SkipMeshRendering bool
	SingleStepping    bool
}

// Limits end a run.
type Limits struct {
	TimeMs float64
	Laps   int
}

// World holds every simulated entity.
type World struct {
	controls Controls
	def      *Def
	level    int
	limits   Limits

	rail    *Rail
	raft    *RailDenizen
	player  Player
	patrons []*Patron
	flying  []projectile
	event   patronEvent
	lastLap int

	elapsedMs float64

	controllers      map[ControllerType]controller
	activeController ControllerType
	head             headController
	hmdEnabled       bool

	mode          RenderingMode
	options       [renderingModeCount][renderingOptionCount]bool
	renderDirty   bool
	cameraHeight  float32
	sushi         []string
	sushiIndex    int
	gameplayStart float64

	Debug DebugFlags
}

// New creates an empty world reading input from controls.
func New(controls Controls, sushi []string) *World {
	if len(sushi) == 0 {
		sushi = []string{"salmon"}
	}
	w := &World{
		controls: controls,
		sushi:    sushi,
		controllers: map[ControllerType]controller{
			ControllerDefault: mouseController{sensitivity: 0.003},
			ControllerGamepad: gamepadController{radiansPerSecond: 2},
		},
		event:       patronEvent{time: -1},
		renderDirty: true,
	}
	w.options[RenderingMonoscopic][OptionPhong] = true
	w.options[RenderingMonoscopic][OptionSpecular] = true
	w.options[RenderingStereoscopic][OptionPhong] = true
	return w
}

// SetLimits sets the run limits. Zero disables a limit.
func (w *World) SetLimits(l Limits) {
	w.limits = l
}

// SetHeadTracker installs the orientation source for the head-mounted
// controller.
func (w *World) SetHeadTracker(h HeadTracker) {
	w.head = headController{head: h}
}

// LoadDef removes every entity and repopulates the world from the selected
// level of def.
func (w *World) LoadDef(def *Def) {
	if def == nil || def.Validate() != nil {
		logger.Warn("invalid world def, using builtin")
		def = DefaultDef()
	}
	w.def = def
	lvl := def.Level(w.level)

	pts := make([]math.Vec3, len(lvl.Rail))
	for i, p := range lvl.Rail {
		pts[i] = p.Vec()
	}
	w.rail = NewRail(pts)
	w.raft = NewRailDenizen(w.rail, lvl.RaftSpeed)
	w.cameraHeight = lvl.CameraHeight

	w.patrons = w.patrons[:0]
	for _, pd := range lvl.Patrons {
		w.patrons = append(w.patrons, &Patron{Def: pd})
	}

	w.player = Player{State: w.player.State}
	w.flying = w.flying[:0]
	w.event.stop()
	w.lastLap = 0
	w.elapsedMs = 0

	logger.Debug("world loaded",
		zap.String("world", def.Name),
		zap.String("level", lvl.Name),
		zap.Int("patrons", len(w.patrons)),
		zap.Float32("rail_length", w.rail.Length()))
}

// Def returns the loaded definition.
func (w *World) Def() *Def { return w.def }

// Update advances every component by deltaMs.
func (w *World) Update(deltaMs float64) {
	if w.raft == nil {
		return
	}
	w.elapsedMs += deltaMs
	w.raft.Update(deltaMs)

	if w.raft.LapNumber != w.lastLap {
		w.lastLap = w.raft.LapNumber
		for _, p := range w.patrons {
			p.Fed = false
		}
	}

	if w.controls != nil {
		w.activeControllerImpl().update(w.controls, &w.player, deltaMs)
	}
	if w.player.State == PlayerActive && w.player.fire.Pressed() {
		w.throw()
	}

	w.updateProjectiles(deltaMs)
	w.event.update(deltaMs)
}

func (w *World) activeControllerImpl() controller {
	if w.hmdEnabled {
		return w.head
	}
	return w.controllers[w.activeController]
}

func (w *World) throw() {
	origin := w.eyePosition()
	dir := w.player.Facing(w.raft.Direction())
	w.flying = append(w.flying, projectile{
		pos:   origin,
		vel:   dir.Scale(projectileSpeed),
		sushi: w.SelectedSushi(),
	})
	w.player.Attributes.ProjectilesFired++
}

func (w *World) updateProjectiles(deltaMs float64) {
	dt := float32(deltaMs / 1000)
	live := w.flying[:0]
	for _, p := range w.flying {
		p.vel.Y += projectileGravity * dt
		p.pos = p.pos.Add(p.vel.Scale(dt))
		p.ageMs += deltaMs
		if w.catch(p) || p.ageMs >= projectileLifeMs {
			continue
		}
		live = append(live, p)
	}
	w.flying = live
}

func (w *World) catch(p projectile) bool {
	for _, patron := range w.patrons {
		if !patron.Hungry(w.raft.LapNumber) {
			continue
		}
		if p.pos.Distance(patron.CatchPoint()) <= patron.Def.CatchRadius {
			patron.Fed = true
			w.player.Attributes.PatronsFed++
			logger.Debug("patron fed",
				zap.String("patron", patron.Def.Name),
				zap.String("sushi", p.sushi))
			return true
		}
	}
	return false
}

func (w *World) eyePosition() math.Vec3 {
	return w.raft.Position().Add(math.Vec3{Y: w.cameraHeight})
}

// Raft returns the raft's rail denizen, or nil before a def is loaded.
func (w *World) Raft() *RailDenizen { return w.raft }

// Player returns the player.
func (w *World) Player() *Player { return &w.player }

// Patrons returns the patrons of the current level.
func (w *World) Patrons() []*Patron { return w.patrons }

// Projectiles returns the positions of sushi in flight.
func (w *World) Projectiles() []math.Vec3 {
	out := make([]math.Vec3, len(w.flying))
	for i, p := range w.flying {
		out[i] = p.pos
	}
	return out
}

// Rail returns the current rail, or nil before a def is loaded.
func (w *World) Rail() *Rail { return w.rail }

// StartPatronEvent starts the end-of-game patron event at time atMs.
func (w *World) StartPatronEvent(atMs float64) {
	w.event.start(atMs)
	for _, p := range w.patrons {
		p.Fed = false
	}
}

// StopPatronEvent stops the patron event.
func (w *World) StopPatronEvent() { w.event.stop() }

// PatronEventTime returns milliseconds since the event started, or -1.
func (w *World) PatronEventTime() float64 { return w.event.time }

// Lap returns the raft's current lap.
func (w *World) Lap() (int, error) {
	if w.raft == nil {
		return 0, ErrNoRaft
	}
	return w.raft.LapNumber, nil
}

// BeginRun restarts the run clock and statistics without moving the raft.
// The menu lets the raft drift along its rail as a backdrop, so a run
// counts from when play begins.
func (w *World) BeginRun() {
	w.elapsedMs = 0
	w.player.Attributes = Attributes{}
	w.flying = w.flying[:0]
	for _, p := range w.patrons {
		p.Fed = false
	}
	if w.raft != nil {
		w.raft.LapNumber = 0
	}
	w.lastLap = 0
}

// ElapsedMs returns simulated time since the last load or run start.
func (w *World) ElapsedMs() float64 { return w.elapsedMs }

// RemainingMs returns time left before the time limit, or -1 when unlimited.
func (w *World) RemainingMs() float64 {
	if w.limits.TimeMs <= 0 {
		return -1
	}
	return max(w.limits.TimeMs-w.elapsedMs, 0)
}

// RunOver reports whether a run limit has been reached.
func (w *World) RunOver() bool {
	if w.raft == nil {
		return false
	}
	if w.limits.TimeMs > 0 && w.elapsedMs >= w.limits.TimeMs {
		return true
	}
	return w.limits.Laps > 0 && w.raft.LapNumber >= w.limits.Laps
}

// CameraPose returns the first-person camera placement.
func (w *World) CameraPose() camera.Pose {
	if w.raft == nil {
		return camera.Pose{Facing: math.Vec3{Z: -1}, Up: math.Up}
	}
	return camera.Pose{
		Position: w.eyePosition(),
		Facing:   w.player.Facing(w.raft.Direction()),
		Up:       math.Up,
	}
}

// SetActiveController selects the input device.
func (w *World) SetActiveController(c ControllerType) {
	w.activeController = c
}

// ActiveController returns the selected input device.
func (w *World) ActiveController() ControllerType { return w.activeController }

// SetHMDControllerEnabled routes aiming through the head tracker. It is
// inert until a head tracker is installed.
func (w *World) SetHMDControllerEnabled(enabled bool) {
	if w.head.head == nil {
		return
	}
	w.hmdEnabled = enabled
	w.activeController = ControllerDefault
}

// HMDControllerEnabled reports whether aiming follows the head tracker.
func (w *World) HMDControllerEnabled() bool { return w.hmdEnabled }

// ResetControllerFacing points the player back along the raft heading.
func (w *World) ResetControllerFacing() {
	w.player.SetAim(0, 0)
}

// RenderingMode returns the current output mode.
func (w *World) RenderingMode() RenderingMode { return w.mode }

// SetRenderingMode switches output mode.
func (w *World) SetRenderingMode(m RenderingMode) {
	if m != w.mode {
		w.mode = m
		w.renderDirty = true
	}
}

// SetRenderingOption toggles a shader feature for one mode.
func (w *World) SetRenderingOption(m RenderingMode, o RenderingOption, enabled bool) {
	if m < 0 || m >= renderingModeCount || o < 0 || o >= renderingOptionCount {
		return
	}
	if w.options[m][o] != enabled {
		w.options[m][o] = enabled
		w.renderDirty = true
	}
}

// RenderingOptionEnabled reports a shader feature for one mode.
func (w *World) RenderingOptionEnabled(m RenderingMode, o RenderingOption) bool {
	if m < 0 || m >= renderingModeCount || o < 0 || o >= renderingOptionCount {
		return false
	}
	return w.options[m][o]
}

// RenderingOptionsDirty reports whether options changed since the last reset.
func (w *World) RenderingOptionsDirty() bool { return w.renderDirty }

// ResetRenderingDirty clears the dirty flag after the renderer consumed it.
func (w *World) ResetRenderingDirty() { w.renderDirty = false }

// SushiNames returns the configured sushi types.
func (w *World) SushiNames() []string { return w.sushi }

// SelectedSushi returns the sushi thrown during gameplay.
func (w *World) SelectedSushi() string {
	if w.sushiIndex < 0 || w.sushiIndex >= len(w.sushi) {
		return w.sushi[0]
	}
	return w.sushi[w.sushiIndex]
}

// SushiIndex returns the selected sushi index.
func (w *World) SushiIndex() int { return w.sushiIndex }

// SetSushiIndex selects a sushi type.
func (w *World) SetSushiIndex(i int) { w.sushiIndex = i }

// LevelIndex returns the selected level index.
func (w *World) LevelIndex() int { return w.level }

// SetLevelIndex selects the level used by the next LoadDef.
func (w *World) SetLevelIndex(i int) { w.level = i }

// CurrentLevelName returns the name of the selected level.
func (w *World) CurrentLevelName() string {
	if w.def == nil {
		return ""
	}
	return w.def.Level(w.level).Name
}

// LevelNames returns the name of every level of the loaded def.
func (w *World) LevelNames() []string {
	if w.def == nil {
		return nil
	}
	names := make([]string, len(w.def.Levels))
	for i, l := range w.def.Levels {
		names[i] = l.Name
	}
	return names
}

// GameplayStartTime returns the input clock time gameplay began at.
func (w *World) GameplayStartTime() float64 { return w.gameplayStart }

// SetGameplayStartTime records when gameplay began.
func (w *World) SetGameplayStartTime(t float64) { w.gameplayStart = t }

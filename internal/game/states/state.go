// Package states implements the game's top-level state machine: the title
// menu, gameplay, pause, game over and the debug scene lab.
package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/sushi-raft/internal/logger"
)

// GameState identifies a state of the machine.
type GameState int

const (
	// StateNone is the previous state of the first state entered.
	StateNone GameState = iota - 1
	StateGameMenu
	StateGameplay
	StateGameOver
	StatePause
	StateIntro
	StateSceneLab
	// StateExit is terminal.
	StateExit
	stateCount
)

func (s GameState) String() string {
	switch s {
	case StateNone:
		return "None"
	case StateGameMenu:
		return "GameMenu"
	case StateGameplay:
		return "Gameplay"
	case StateGameOver:
		return "GameOver"
	case StatePause:
		return "Pause"
	case StateIntro:
		return "Intro"
	case StateSceneLab:
		return "SceneLab"
	case StateExit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// State is one node of the machine. Each frame the driver calls
// AdvanceFrame, RenderPrep, Render and HandleUI in that order.
type State interface {
	// AdvanceFrame steps the state and returns the state to run next.
	AdvanceFrame(deltaMs float64) GameState

	// RenderPrep prepares render data after the frame's update.
	RenderPrep()

	// Render draws the world.
	Render(r Renderer)

	// HandleUI draws and processes the 2D interface.
	HandleUI(r Renderer)

	// OnEnter is called when the state becomes current.
	OnEnter(prev GameState)

	// OnExit is called when the state stops being current.
	OnExit(next GameState)
}

// Manager owns every state and dispatches to the current one.
type Manager struct {
	states  [stateCount]State
	current GameState
}

// NewManager creates a manager with every game state built over svc.
func NewManager(svc *Services) *Manager {
	svc.Normalize()
	m := &Manager{current: StateNone}
	music := newLapMusic(svc.Audio)
	m.Assign(StateGameMenu, NewMenu(svc))
	m.Assign(StateGameplay, NewGameplay(svc, music))
	m.Assign(StateGameOver, NewGameOver(svc))
	m.Assign(StatePause, NewPause(svc, music))
	m.Assign(StateIntro, NewIntro(svc))
	if svc.SceneLab != nil {
		m.Assign(StateSceneLab, NewSceneLab(svc))
	}
	return m
}

// Assign installs s as the implementation of id.
func (m *Manager) Assign(id GameState, s State) {
	if id < 0 || id >= StateExit {
		return
	}
	m.states[id] = s
}

// State returns the implementation of id.
func (m *Manager) State(id GameState) State {
	if id < 0 || id >= StateExit {
		return nil
	}
	return m.states[id]
}

// Start enters the first state.
func (m *Manager) Start(id GameState) {
	m.transition(id)
}

// Current returns the current state id.
func (m *Manager) Current() GameState {
	return m.current
}

// Done reports whether the machine reached Exit.
func (m *Manager) Done() bool {
	return m.current == StateExit
}

// AdvanceFrame steps the current state and performs any transition it
// requests before returning.
func (m *Manager) AdvanceFrame(deltaMs float64) {
	s := m.State(m.current)
	if s == nil {
		return
	}
	if next := s.AdvanceFrame(deltaMs); next != m.current {
		m.transition(next)
	}
}

func (m *Manager) transition(next GameState) {
	prev := m.current
	if next != StateExit && m.State(next) == nil {
		logger.Error("transition to unassigned state",
			zap.Stringer("from", prev), zap.Stringer("to", next))
		return
	}
	logger.Info("state transition", zap.Stringer("from", prev), zap.Stringer("to", next))

	if s := m.State(prev); s != nil {
		s.OnExit(next)
	}
	m.current = next
	if s := m.State(next); s != nil {
		s.OnEnter(prev)
	}
}

// RenderPrep forwards to the current state.
func (m *Manager) RenderPrep() {
	if s := m.State(m.current); s != nil {
		s.RenderPrep()
	}
}

// Render forwards to the current state.
func (m *Manager) Render(r Renderer) {
	if s := m.State(m.current); s != nil {
		s.Render(r)
	}
}

// HandleUI forwards to the current state.
func (m *Manager) HandleUI(r Renderer) {
	if s := m.State(m.current); s != nil {
		s.HandleUI(r)
	}
}

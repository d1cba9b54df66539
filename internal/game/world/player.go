package world

import (
	gomath "math"

	"github.com/Faultbox/sushi-raft/internal/engine/input"
	"github.com/Faultbox/sushi-raft/pkg/math"
)

// PlayerState gates what the player may do.
type PlayerState int

const (
	PlayerActive PlayerState = iota
	PlayerNoProjectiles
	PlayerDisabled
)

func (s PlayerState) String() string {
	switch s {
	case PlayerActive:
		return "Active"
	case PlayerNoProjectiles:
		return "NoProjectiles"
	case PlayerDisabled:
		return "Disabled"
	}
	return "Unknown"
}

// ControllerType selects the player's input device.
type ControllerType int

const (
	ControllerDefault ControllerType = iota
	ControllerGamepad
)

func (c ControllerType) String() string {
	if c == ControllerGamepad {
		return "Gamepad"
	}
	return "Default"
}

// Attributes are the run statistics kept on the player.
type Attributes struct {
	PatronsFed       int
	ProjectilesFired int
}

// LogicalButton is a game-level button fed from a physical one.
type LogicalButton struct {
	value   bool
	changed bool
}

// Value reports whether the button is held.
func (b LogicalButton) Value() bool { return b.value }

// HasChanged reports whether the value flipped this frame.
func (b LogicalButton) HasChanged() bool { return b.changed }

// Pressed reports a transition to held this frame.
func (b LogicalButton) Pressed() bool { return b.value && b.changed }

func (b *LogicalButton) set(v bool) {
	b.changed = v != b.value
	b.value = v
}

// Controls is the input surface controllers read from.
type Controls interface {
	Key(k input.Key) input.Button
	Pointer(i int) input.Button
	PointerDelta() (dx, dy int)
	Axis(a int) float32
}

// Player is the raft passenger aiming and throwing sushi.
type Player struct {
	State      PlayerState
	Attributes Attributes

	fire LogicalButton
	// Aim offsets from the raft heading, in radians.
	yaw, pitch float32
}

// FireProjectile returns the fire button.
func (p *Player) FireProjectile() LogicalButton { return p.fire }

// Aim returns yaw and pitch relative to the raft heading.
func (p *Player) Aim() (yaw, pitch float32) { return p.yaw, p.pitch }

// SetAim sets the aim offsets, clamping pitch to just under vertical.
func (p *Player) SetAim(yaw, pitch float32) {
	const limit = gomath.Pi/2 - 0.05
	if pitch > limit {
		pitch = limit
	}
	if pitch < -limit {
		pitch = -limit
	}
	p.yaw, p.pitch = yaw, pitch
}

// Facing returns the aim direction given the raft heading.
func (p *Player) Facing(heading math.Vec3) math.Vec3 {
	base := float64(gomath.Atan2(float64(heading.X), float64(-heading.Z)))
	yaw := base + float64(p.yaw)
	cp := gomath.Cos(float64(p.pitch))
	return math.Vec3{
		X: float32(gomath.Sin(yaw) * cp),
		Y: float32(gomath.Sin(float64(p.pitch))),
		Z: float32(-gomath.Cos(yaw) * cp),
	}
}

// controller turns device input into aim and fire.
type controller interface {
	update(c Controls, p *Player, deltaMs float64)
}

// mouseController aims with pointer motion and fires with the left button
// or space.
type mouseController struct {
	sensitivity float32
}

func (m mouseController) update(c Controls, p *Player, deltaMs float64) {
	dx, dy := c.PointerDelta()
	yaw, pitch := p.Aim()
	p.SetAim(yaw+float32(dx)*m.sensitivity, pitch-float32(dy)*m.sensitivity)
	p.fire.set(c.Pointer(input.PointerLeft).IsDown() || c.Key(input.KeySpace).IsDown())
}

// gamepadController aims with the left stick and fires with A.
type gamepadController struct {
	radiansPerSecond float32
}

func (g gamepadController) update(c Controls, p *Player, deltaMs float64) {
	step := g.radiansPerSecond * float32(deltaMs/1000)
	yaw, pitch := p.Aim()
	p.SetAim(yaw+c.Axis(input.AxisLeftX)*step, pitch-c.Axis(input.AxisLeftY)*step)
	p.fire.set(c.Key(input.KeyGamepadA).IsDown())
}

// headController follows head orientation and fires on any tap.
type headController struct {
	head HeadTracker
}

func (h headController) update(c Controls, p *Player, deltaMs float64) {
	if h.head != nil {
		yaw, pitch := h.head.Orientation()
		p.SetAim(yaw, pitch)
	}
	p.fire.set(c.Pointer(input.PointerLeft).IsDown() || c.Key(input.KeySpace).IsDown())
}

// HeadTracker reports head orientation for the head-mounted controller.
type HeadTracker interface {
	Orientation() (yaw, pitch float32)
}

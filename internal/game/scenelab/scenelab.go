// Package scenelab is a debug viewer that detaches the camera from the raft
// so the scene can be inspected from any angle while the world is frozen.
package scenelab

import (
	"github.com/Faultbox/sushi-raft/internal/engine/camera"
	"github.com/Faultbox/sushi-raft/internal/engine/input"
)

// Controls is the input the scene lab reads.
type Controls interface {
	Key(k input.Key) input.Button
	Pointer(i int) input.Button
	PointerDelta() (dx, dy int)
}

// SceneLab flies a free camera.
type SceneLab struct {
	camera  *camera.Camera
	initial camera.Pose

	// Speed is the flight speed in world units per second.
	Speed float32
	// LookSensitivity converts pointer pixels to radians.
	LookSensitivity float32
}

// New creates a scene lab with its own camera.
func New() *SceneLab {
	return &SceneLab{
		camera:          camera.New(),
		Speed:           8,
		LookSensitivity: 0.004,
	}
}

// SetInitialCamera places the free camera where the gameplay camera was.
func (s *SceneLab) SetInitialCamera(p camera.Pose) {
	s.initial = p
	s.camera.SetPose(p)
}

// InitialCamera returns the pose the lab was entered with.
func (s *SceneLab) InitialCamera() camera.Pose { return s.initial }

// Camera returns the free camera.
func (s *SceneLab) Camera() *camera.Camera { return s.camera }

// AdvanceFrame moves the camera from WASD and arrow keys and turns it while
// the left pointer button is held.
func (s *SceneLab) AdvanceFrame(deltaMs float64, c Controls) {
	if c == nil {
		return
	}
	step := s.Speed * float32(deltaMs) / 1000

	var forward, right float32
	if c.Key(input.KeyW).IsDown() || c.Key(input.KeyUp).IsDown() {
		forward += step
	}
	if c.Key(input.KeyS).IsDown() || c.Key(input.KeyDown).IsDown() {
		forward -= step
	}
	if c.Key(input.KeyD).IsDown() || c.Key(input.KeyRight).IsDown() {
		right += step
	}
	if c.Key(input.KeyA).IsDown() || c.Key(input.KeyLeft).IsDown() {
		right -= step
	}
	s.camera.Move(forward, right, 0)

	if c.Pointer(input.PointerLeft).IsDown() {
		dx, dy := c.PointerDelta()
		s.camera.Rotate(-float32(dx)*s.LookSensitivity, -float32(dy)*s.LookSensitivity)
	}
}

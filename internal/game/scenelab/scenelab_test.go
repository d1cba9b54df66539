package scenelab

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/sushi-raft/internal/engine/camera"
	"github.com/Faultbox/sushi-raft/internal/engine/input"
	"github.com/Faultbox/sushi-raft/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func TestSetInitialCamera(t *testing.T) {
	lab := New()
	pose := camera.Pose{
		Position: math.Vec3{X: 1, Y: 2, Z: 3},
		Facing:   math.Vec3{X: 1},
		Up:       math.Up,
	}
	lab.SetInitialCamera(pose)

	got := lab.Camera().Pose()
	if got.Position != pose.Position {
		t.Errorf("expected position %v, got %v", pose.Position, got.Position)
	}
	if !near(got.Facing.X, 1) {
		t.Errorf("expected facing +X, got %v", got.Facing)
	}
	if lab.InitialCamera() != pose {
		t.Error("expected initial pose remembered")
	}
}

func TestAdvanceFrameMoves(t *testing.T) {
	lab := New()
	lab.SetInitialCamera(camera.Pose{Facing: math.Vec3{Z: -1}, Up: math.Up})

	in := input.New()
	in.Apply(input.Event{Type: input.EventKeyDown, Key: input.KeyW})
	lab.AdvanceFrame(1000, in)

	pos := lab.Camera().Position
	if !near(pos.Z, -lab.Speed) {
		t.Errorf("expected z=%f, got %f", -lab.Speed, pos.Z)
	}

	in.BeginFrame()
	in.Apply(input.Event{Type: input.EventKeyUp, Key: input.KeyW})
	in.Apply(input.Event{Type: input.EventKeyDown, Key: input.KeyD})
	lab.AdvanceFrame(500, in)
	pos = lab.Camera().Position
	if !near(pos.X, lab.Speed/2) {
		t.Errorf("expected x=%f, got %f", lab.Speed/2, pos.X)
	}
}

func TestLookNeedsButton(t *testing.T) {
	lab := New()
	lab.SetInitialCamera(camera.Pose{Facing: math.Vec3{Z: -1}, Up: math.Up})

	in := input.New()
	in.Apply(input.Event{Type: input.EventMouseMove, DeltaX: 200})
	lab.AdvanceFrame(16, in)
	if !near(lab.Camera().Facing.Z, -1) {
		t.Errorf("expected facing unchanged, got %v", lab.Camera().Facing)
	}

	in.BeginFrame()
	in.Apply(input.Event{Type: input.EventMouseDown, Button: input.PointerLeft})
	in.Apply(input.Event{Type: input.EventMouseMove, DeltaX: 200})
	lab.AdvanceFrame(16, in)
	if near(lab.Camera().Facing.Z, -1) {
		t.Error("expected facing to turn while dragging")
	}
}

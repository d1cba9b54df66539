package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/sushi-raft/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func TestSetPoseNormalizes(t *testing.T) {
	c := New()
	c.SetPose(Pose{Position: math.Vec3{X: 1}, Facing: math.Vec3{X: 2}, Up: math.Vec3{Y: 3}})

	if c.Facing != (math.Vec3{X: 1}) {
		t.Errorf("expected unit facing, got %v", c.Facing)
	}
	if c.Up != (math.Vec3{Y: 1}) {
		t.Errorf("expected unit up, got %v", c.Up)
	}
	if c.Pose().Position != (math.Vec3{X: 1}) {
		t.Errorf("expected position (1,0,0), got %v", c.Pose().Position)
	}
}

func TestSetPoseKeepsAxesOnZero(t *testing.T) {
	c := New()
	c.SetPose(Pose{Position: math.Vec3{Y: 2}})
	if c.Facing != (math.Vec3{Z: -1}) {
		t.Errorf("expected facing kept, got %v", c.Facing)
	}
}

func TestEyePositions(t *testing.T) {
	c := New()
	c.EyeSeparation = 2

	left := c.EyePosition(EyeLeft)
	right := c.EyePosition(EyeRight)

	if !near(left.X, -1) || !near(right.X, 1) {
		t.Errorf("expected eyes at x=-1 and x=1, got %v and %v", left, right)
	}
	if c.EyePosition(EyeCenter) != c.Position {
		t.Error("expected center eye at camera position")
	}
}

func TestRotateYaw(t *testing.T) {
	c := New()
	c.Rotate(gomath.Pi/2, 0)
	// Facing -Z turned a quarter turn about +Y faces -X.
	if !near(c.Facing.X, -1) || !near(c.Facing.Z, 0) {
		t.Errorf("expected facing (-1,0,0), got %v", c.Facing)
	}
}

func TestRotatePitchStopsAtPole(t *testing.T) {
	c := New()
	c.Rotate(0, gomath.Pi/2)
	if gomath.Abs(float64(c.Facing.Dot(c.Up))) >= 0.99 {
		t.Errorf("expected pitch to stop short of the pole, got %v", c.Facing)
	}
}

func TestMove(t *testing.T) {
	c := New()
	c.Move(2, 1, 0)
	if !near(c.Position.Z, -2) || !near(c.Position.X, 1) {
		t.Errorf("expected (1,0,-2), got %v", c.Position)
	}
}

func TestViewProjectionCentersTarget(t *testing.T) {
	c := New()
	c.Position = math.Vec3{Z: 5}
	p := c.ViewProjection(16.0/9.0, EyeCenter).TransformPoint(math.Vec3{})
	if !near(p.X, 0) || !near(p.Y, 0) {
		t.Errorf("expected target at screen center, got %v", p)
	}
}

// Package camera provides the first-person camera used for mono and stereo
// rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/sushi-raft/pkg/math"
)

// Pose is a camera placement in world space.
type Pose struct {
	Position math.Vec3
	Facing   math.Vec3
	Up       math.Vec3
}

// Eye selects the view rendered for a stereo pair.
type Eye int

const (
	EyeCenter Eye = iota
	EyeLeft
	EyeRight
)

// Camera is a perspective camera looking along Facing.
type Camera struct {
	Position math.Vec3
	Facing   math.Vec3
	Up       math.Vec3

	// ViewportAngle is the vertical field of view in radians.
	ViewportAngle float32
	Near, Far     float32

	// EyeSeparation is the interpupillary distance used in stereo.
	EyeSeparation float32
	Stereo        bool
}

// New creates a camera at the origin looking down -Z.
func New() *Camera {
	return &Camera{
		Facing:        math.Vec3{Z: -1},
		Up:            math.Up,
		ViewportAngle: gomath.Pi / 4,
		Near:          0.1,
		Far:           500,
		EyeSeparation: 0.064,
	}
}

// Pose returns the current placement.
func (c *Camera) Pose() Pose {
	return Pose{Position: c.Position, Facing: c.Facing, Up: c.Up}
}

// SetPose moves the camera. A zero facing or up keeps the previous axis.
func (c *Camera) SetPose(p Pose) {
	c.Position = p.Position
	if f := p.Facing.Normalize(); f != (math.Vec3{}) {
		c.Facing = f
	}
	if u := p.Up.Normalize(); u != (math.Vec3{}) {
		c.Up = u
	}
}

// Right returns the unit vector to the camera's right.
func (c *Camera) Right() math.Vec3 {
	return c.Facing.Cross(c.Up).Normalize()
}

// Rotate turns the camera by yaw around Up and pitch around Right, in radians.
// Pitch stops short of the poles.
func (c *Camera) Rotate(yaw, pitch float32) {
	f := rotate(c.Facing, c.Up, yaw)
	p := rotate(f, f.Cross(c.Up).Normalize(), pitch)
	if gomath.Abs(float64(p.Dot(c.Up))) < 0.99 {
		f = p
	}
	c.Facing = f.Normalize()
}

// Move translates the camera along its facing, right and up axes.
func (c *Camera) Move(forward, right, up float32) {
	c.Position = c.Position.
		Add(c.Facing.Scale(forward)).
		Add(c.Right().Scale(right)).
		Add(c.Up.Scale(up))
}

// EyePosition returns the position of one eye.
func (c *Camera) EyePosition(eye Eye) math.Vec3 {
	half := c.EyeSeparation / 2
	switch eye {
	case EyeLeft:
		return c.Position.Sub(c.Right().Scale(half))
	case EyeRight:
		return c.Position.Add(c.Right().Scale(half))
	default:
		return c.Position
	}
}

// View returns the view matrix for eye.
func (c *Camera) View(eye Eye) math.Mat4 {
	pos := c.EyePosition(eye)
	return math.LookAt(pos, pos.Add(c.Facing), c.Up)
}

// Projection returns the perspective projection for an aspect ratio.
func (c *Camera) Projection(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.ViewportAngle, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view for eye.
func (c *Camera) ViewProjection(aspect float32, eye Eye) math.Mat4 {
	return c.Projection(aspect).Mul(c.View(eye))
}

// rotate turns v around a unit axis by angle (Rodrigues).
func rotate(v, axis math.Vec3, angle float32) math.Vec3 {
	if angle == 0 {
		return v
	}
	s := float32(gomath.Sin(float64(angle)))
	co := float32(gomath.Cos(float64(angle)))
	return v.Scale(co).
		Add(axis.Cross(v).Scale(s)).
		Add(axis.Scale(axis.Dot(v) * (1 - co)))
}

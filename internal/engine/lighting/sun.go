// Package lighting shades the flat-colored world with a single sun.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/sushi-raft/pkg/math"
)

// Options are the shading toggles of one rendering mode.
type Options struct {
	Shadows  bool
	Phong    bool
	Specular bool
}

// Sun is a directional light.
type Sun struct {
	// Direction points from the scene toward the sun.
	Direction math.Vec3
	Ambient   float32
	Diffuse   float32
	Specular  float32
	Shininess float32
}

// DefaultSun is a late-morning sun in the south-east.
func DefaultSun() Sun {
	return Sun{
		Direction: SunDirection(135, 55),
		Ambient:   0.35,
		Diffuse:   0.65,
		Specular:  0.4,
		Shininess: 16,
	}
}

// SunDirection converts longitude/latitude angles to a light direction vector.
// Longitude is rotation around Y axis (0-360), latitude is elevation from horizon (0-90).
// Returns a normalized direction vector pointing towards the sun.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lonRad := float64(longitude) * gomath.Pi / 180.0
	latRad := float64(latitude) * gomath.Pi / 180.0

	return math.Vec3{
		X: float32(gomath.Cos(latRad) * gomath.Sin(lonRad)),
		Y: float32(gomath.Sin(latRad)),
		Z: float32(gomath.Cos(latRad) * gomath.Cos(lonRad)),
	}
}

// Shade lights c on a surface with unit normal n seen along unit toEye.
// Without Phong the color is returned unchanged; Specular only applies on
// top of Phong.
func (s Sun) Shade(c [4]float32, n, toEye math.Vec3, opts Options) [4]float32 {
	if !opts.Phong {
		return c
	}
	l := s.Direction
	lambert := max(n.Dot(l), 0)
	k := s.Ambient + s.Diffuse*lambert

	var spec float32
	if opts.Specular && lambert > 0 {
		r := n.Scale(2 * n.Dot(l)).Sub(l)
		if rv := r.Dot(toEye); rv > 0 {
			spec = s.Specular * float32(gomath.Pow(float64(rv), float64(s.Shininess)))
		}
	}

	out := c
	for i := 0; i < 3; i++ {
		out[i] = min(c[i]*k+spec, 1)
	}
	return out
}

// ProjectShadow drops p along the light onto the plane y = ground. It
// reports false when the sun is at or below the horizon.
func (s Sun) ProjectShadow(p math.Vec3, ground float32) (math.Vec3, bool) {
	if s.Direction.Y <= 0 {
		return math.Vec3{}, false
	}
	t := (p.Y - ground) / s.Direction.Y
	return math.Vec3{
		X: p.X - s.Direction.X*t,
		Y: ground,
		Z: p.Z - s.Direction.Z*t,
	}, true
}

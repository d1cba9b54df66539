// Package scene turns the world into flat draw batches for the renderer.
package scene

import (
	gomath "math"

	"github.com/Faultbox/sushi-raft/internal/engine/lighting"
	"github.com/Faultbox/sushi-raft/internal/game/world"
	"github.com/Faultbox/sushi-raft/pkg/math"
)

// Kind is the primitive a batch is drawn with.
type Kind int

const (
	LineStrip Kind = iota
	Lines
	Points
)

// Color is RGBA in [0,1].
type Color [4]float32

// Batch is a run of vertices sharing a primitive and color.
type Batch struct {
	Kind   Kind
	Points []math.Vec3
	Color  Color
	// Size is the point size in pixels for Points batches.
	Size float32
}

var (
	colorRiver      = Color{0.2, 0.5, 0.9, 1}
	colorScenery    = Color{0.2, 0.7, 0.3, 1}
	colorHungry     = Color{0.95, 0.6, 0.2, 1}
	colorFed        = Color{0.5, 0.5, 0.5, 1}
	colorSushi      = Color{1, 0.4, 0.4, 1}
	colorRaft       = Color{0.6, 0.4, 0.2, 1}
	colorCatchDebug = Color{1, 1, 0, 0.6}
	colorShadow     = Color{0, 0, 0, 0.35}
)

var sun = lighting.DefaultSun()

const catchSegments = 16

// Build collects the batches for w. Mesh batches are left out when the
// world's SkipMeshRendering debug flag is set, and catch radii are added
// when DrawPhysics is. Patrons and the raft are shaded with the options of
// the world's rendering mode.
func Build(w *world.World) []Batch {
	var out []Batch
	if w.Rail() == nil {
		return out
	}
	lap, _ := w.Lap()
	opts := Options(w)
	eye := w.CameraPose().Position

	if !w.Debug.SkipMeshRendering {
		river := append([]math.Vec3(nil), w.Rail().Points()...)
		if len(river) > 0 {
			river = append(river, river[0])
		}
		out = append(out, Batch{Kind: LineStrip, Points: river, Color: colorRiver})

		var scenery []math.Vec3
		if def := w.Def(); def != nil {
			for _, p := range def.Level(w.LevelIndex()).Scenery {
				scenery = append(scenery, p.Vec(), p.Vec().Add(math.Vec3{Y: 3}))
			}
		}
		if len(scenery) > 0 {
			out = append(out, Batch{Kind: Lines, Points: scenery, Color: colorScenery})
		}

		var hungry, fed []math.Vec3
		for _, p := range w.Patrons() {
			if p.Hungry(lap) {
				hungry = append(hungry, p.CatchPoint())
			} else {
				fed = append(fed, p.CatchPoint())
			}
		}
		var raft []math.Vec3
		if w.Raft() != nil {
			raft = []math.Vec3{w.Raft().Position()}
		}

		if opts.Shadows {
			var shadows []math.Vec3
			for _, set := range [][]math.Vec3{hungry, fed, raft} {
				for _, p := range set {
					if s, ok := sun.ProjectShadow(p, 0); ok {
						shadows = append(shadows, s)
					}
				}
			}
			if len(shadows) > 0 {
				out = append(out, Batch{Kind: Points, Points: shadows, Color: colorShadow, Size: 12})
			}
		}

		if len(hungry) > 0 {
			out = append(out, Batch{Kind: Points, Points: hungry, Color: shade(colorHungry, hungry[0], eye, opts), Size: 14})
		}
		if len(fed) > 0 {
			out = append(out, Batch{Kind: Points, Points: fed, Color: shade(colorFed, fed[0], eye, opts), Size: 10})
		}
		if len(raft) > 0 {
			out = append(out, Batch{Kind: Points, Points: raft, Color: shade(colorRaft, raft[0], eye, opts), Size: 20})
		}
	}

	if sushi := w.Projectiles(); len(sushi) > 0 {
		out = append(out, Batch{Kind: Points, Points: sushi, Color: colorSushi, Size: 8})
	}

	if w.Debug.DrawPhysics {
		for _, p := range w.Patrons() {
			out = append(out, Batch{
				Kind:   LineStrip,
				Points: circle(p.CatchPoint(), p.Def.CatchRadius),
				Color:  colorCatchDebug,
			})
		}
	}
	return out
}

// Options returns the shading toggles of the world's rendering mode.
func Options(w *world.World) lighting.Options {
	m := w.RenderingMode()
	return lighting.Options{
		Shadows:  w.RenderingOptionEnabled(m, world.OptionShadows),
		Phong:    w.RenderingOptionEnabled(m, world.OptionPhong),
		Specular: w.RenderingOptionEnabled(m, world.OptionSpecular),
	}
}

// shade lights an upward-facing sprite at p seen from eye.
func shade(c Color, p, eye math.Vec3, opts lighting.Options) Color {
	return Color(sun.Shade(c, math.Up, eye.Sub(p).Normalize(), opts))
}

// circle approximates a horizontal ring around c.
func circle(c math.Vec3, radius float32) []math.Vec3 {
	pts := make([]math.Vec3, 0, catchSegments+1)
	for i := 0; i <= catchSegments; i++ {
		a := float64(i) / catchSegments * 2 * gomath.Pi
		pts = append(pts, c.Add(math.Vec3{
			X: radius * float32(gomath.Cos(a)),
			Z: radius * float32(gomath.Sin(a)),
		}))
	}
	return pts
}

package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/sushi-raft/pkg/math"
)

// Point is a YAML friendly [x, y, z] triple.
type Point [3]float32

// Vec returns the point as a vector.
func (p Point) Vec() math.Vec3 {
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// Def describes every level of a world.
type Def struct {
	Name   string     `yaml:"name"`
	Levels []LevelDef `yaml:"levels"`
}

// LevelDef describes one river layout.
type LevelDef struct {
	Name         string      `yaml:"name"`
	RaftSpeed    float32     `yaml:"raft_speed"`
	CameraHeight float32     `yaml:"camera_height"`
	Rail         []Point     `yaml:"rail"`
	Patrons      []PatronDef `yaml:"patrons"`
	Scenery      []Point     `yaml:"scenery"`
}

// PatronDef places a patron along the river.
type PatronDef struct {
	Name        string  `yaml:"name"`
	Position    Point   `yaml:"position"`
	CatchRadius float32 `yaml:"catch_radius"`
	// MinLap and MaxLap bound the laps the patron is hungry on.
	// A negative MaxLap means no upper bound.
	MinLap int `yaml:"min_lap"`
	MaxLap int `yaml:"max_lap"`
}

// ParseDef decodes a YAML world definition.
func ParseDef(data []byte) (*Def, error) {
	var def Def
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse world def: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadDef reads a world definition file.
func LoadDef(path string) (*Def, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world def: %w", err)
	}
	return ParseDef(data)
}

// Validate checks the definition can be simulated.
func (d *Def) Validate() error {
	if len(d.Levels) == 0 {
		return fmt.Errorf("world def %q: %w", d.Name, ErrNoLevels)
	}
	for i, l := range d.Levels {
		if len(l.Rail) < 2 {
			return fmt.Errorf("world def %q level %d: %w", d.Name, i, ErrShortRail)
		}
	}
	return nil
}

// Level returns level i, falling back to the first level when i is out of
// range.
func (d *Def) Level(i int) LevelDef {
	if i < 0 || i >= len(d.Levels) {
		return d.Levels[0]
	}
	return d.Levels[i]
}

// DefaultDef returns the built-in world used when no definition file can be
// read.
func DefaultDef() *Def {
	loop := []Point{
		{0, 0, 0}, {30, 0, -5}, {50, 0, -30}, {40, 0, -60},
		{10, 0, -70}, {-20, 0, -55}, {-30, 0, -25},
	}
	return &Def{
		Name: "builtin",
		Levels: []LevelDef{
			{
				Name:         "Practice",
				RaftSpeed:    4,
				CameraHeight: 1.6,
				Rail:         loop,
				Patrons: []PatronDef{
					{Name: "hippo", Position: Point{18, 0, 4}, CatchRadius: 2.5, MaxLap: -1},
					{Name: "giraffe", Position: Point{52, 0, -44}, CatchRadius: 2.5, MaxLap: -1},
				},
			},
			{
				Name:         "Easy",
				RaftSpeed:    6,
				CameraHeight: 1.6,
				Rail:         loop,
				Patrons: []PatronDef{
					{Name: "hippo", Position: Point{18, 0, 4}, CatchRadius: 2, MaxLap: -1},
					{Name: "giraffe", Position: Point{52, 0, -44}, CatchRadius: 2, MaxLap: -1},
					{Name: "elephant", Position: Point{0, 0, -74}, CatchRadius: 2, MinLap: 1, MaxLap: -1},
					{Name: "tiger", Position: Point{-34, 0, -40}, CatchRadius: 1.5, MaxLap: -1},
				},
				Scenery: []Point{{10, 0, -30}, {-10, 0, -30}},
			},
		},
	}
}

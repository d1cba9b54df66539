package world

import "github.com/Faultbox/sushi-raft/pkg/math"

// patronHeight lifts the catch point above the patron's feet.
const patronHeight = 1.0

// Patron is a target fed by thrown sushi.
type Patron struct {
	Def PatronDef
	// Fed is true once the patron caught sushi on the current lap.
	Fed bool
}

// Hungry reports whether the patron accepts sushi on lap.
func (p *Patron) Hungry(lap int) bool {
	if p.Fed || lap < p.Def.MinLap {
		return false
	}
	return p.Def.MaxLap < 0 || lap <= p.Def.MaxLap
}

// CatchPoint is where thrown sushi must land.
func (p *Patron) CatchPoint() math.Vec3 {
	return p.Def.Position.Vec().Add(math.Vec3{Y: patronHeight})
}

// patronEvent is the end-of-game celebration timeline.
type patronEvent struct {
	// time is -1 while no event is running.
	time float64
}

func (e *patronEvent) start(at float64) { e.time = at }
func (e *patronEvent) stop()            { e.time = -1 }
func (e *patronEvent) running() bool    { return e.time >= 0 }

func (e *patronEvent) update(deltaMs float64) {
	if e.time >= 0 {
		e.time += deltaMs
	}
}

// projectile is a thrown piece of sushi in flight.
type projectile struct {
	pos, vel math.Vec3
	ageMs    float64
	sushi    string
}

const (
	projectileSpeed   = 20
	projectileGravity = -9.8
	projectileLifeMs  = 3000
)

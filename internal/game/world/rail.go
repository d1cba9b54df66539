package world

import "github.com/Faultbox/sushi-raft/pkg/math"

// Rail is a closed polyline the raft follows.
type Rail struct {
	points []math.Vec3
	// starts[i] is the distance along the rail where segment i begins.
	starts []float32
	length float32
}

// NewRail builds a closed rail through points.
func NewRail(points []math.Vec3) *Rail {
	r := &Rail{points: points, starts: make([]float32, len(points))}
	for i := range points {
		r.starts[i] = r.length
		r.length += points[i].Distance(points[(i+1)%len(points)])
	}
	return r
}

// Length returns the loop length.
func (r *Rail) Length() float32 { return r.length }

// Points returns the control points.
func (r *Rail) Points() []math.Vec3 { return r.points }

func (r *Rail) segment(dist float32) (int, float32) {
	if r.length <= 0 {
		return 0, 0
	}
	for dist < 0 {
		dist += r.length
	}
	for dist >= r.length {
		dist -= r.length
	}
	i := len(r.starts) - 1
	for j := 1; j < len(r.starts); j++ {
		if dist < r.starts[j] {
			i = j - 1
			break
		}
	}
	segLen := r.points[i].Distance(r.points[(i+1)%len(r.points)])
	if segLen == 0 {
		return i, 0
	}
	return i, (dist - r.starts[i]) / segLen
}

// PositionAt returns the point dist units along the rail.
func (r *Rail) PositionAt(dist float32) math.Vec3 {
	if len(r.points) == 0 {
		return math.Vec3{}
	}
	i, t := r.segment(dist)
	return r.points[i].Lerp(r.points[(i+1)%len(r.points)], t)
}

// DirectionAt returns the unit travel direction dist units along the rail.
func (r *Rail) DirectionAt(dist float32) math.Vec3 {
	if len(r.points) < 2 {
		return math.Vec3{Z: -1}
	}
	i, _ := r.segment(dist)
	return r.points[(i+1)%len(r.points)].Sub(r.points[i]).Normalize()
}

// RailDenizen moves an entity around a rail and counts completed laps.
type RailDenizen struct {
	rail *Rail

	// Distance is the position along the current lap.
	Distance float32
	// Speed is the travel speed in units per second at playback rate 1.
	Speed float32
	// LapNumber counts completed laps.
	LapNumber int

	rate      float32
	rampFrom  float32
	rampTo    float32
	rampMs    float64
	rampSoFar float64
}

// NewRailDenizen places a denizen at the start of rail.
func NewRailDenizen(rail *Rail, speed float32) *RailDenizen {
	return &RailDenizen{rail: rail, Speed: speed, rate: 1, rampFrom: 1, rampTo: 1}
}

// PlaybackRate returns the current speed multiplier.
func (d *RailDenizen) PlaybackRate() float32 { return d.rate }

// SetPlaybackRate ramps the speed multiplier to rate over rampMs.
func (d *RailDenizen) SetPlaybackRate(rate float32, rampMs float64) {
	d.rampFrom = d.rate
	d.rampTo = rate
	d.rampMs = rampMs
	d.rampSoFar = 0
	if rampMs <= 0 {
		d.rate = rate
	}
}

// Update advances the denizen by deltaMs.
func (d *RailDenizen) Update(deltaMs float64) {
	if d.rate != d.rampTo {
		d.rampSoFar += deltaMs
		if d.rampSoFar >= d.rampMs {
			d.rate = d.rampTo
		} else {
			t := float32(d.rampSoFar / d.rampMs)
			d.rate = d.rampFrom + (d.rampTo-d.rampFrom)*t
		}
	}

	length := d.rail.Length()
	if length <= 0 {
		return
	}
	d.Distance += d.Speed * d.rate * float32(deltaMs/1000)
	for d.Distance >= length {
		d.Distance -= length
		d.LapNumber++
	}
}

// TotalLapProgress returns laps completed plus the fraction of the current one.
func (d *RailDenizen) TotalLapProgress() float32 {
	if d.rail.Length() <= 0 {
		return float32(d.LapNumber)
	}
	return float32(d.LapNumber) + d.Distance/d.rail.Length()
}

// Position returns the current world position.
func (d *RailDenizen) Position() math.Vec3 {
	return d.rail.PositionAt(d.Distance)
}

// Direction returns the current travel direction.
func (d *RailDenizen) Direction() math.Vec3 {
	return d.rail.DirectionAt(d.Distance)
}

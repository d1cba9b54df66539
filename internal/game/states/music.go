package states

import (
	"math"

	"github.com/Faultbox/sushi-raft/internal/engine/audio"
)

// crossfadeSeconds is how long the music takes to move to the next lap's
// track.
const crossfadeSeconds = 5.0

var lapTracks = [3]string{musicGameplayLap1, musicGameplayLap2, musicGameplayLap3}

// crossfadeGains returns the equal-power gains of the outgoing and incoming
// tracks at percent through a fade. The squares always sum to one.
func crossfadeGains(percent float64) (previous, current float64) {
	return math.Cos(percent * 0.5 * math.Pi), math.Cos((1 - percent) * 0.5 * math.Pi)
}

// lapMusic plays three same-length loops in lockstep and fades between them
// as the raft completes laps. Gameplay starts and stops it; Pause may stop
// it when the run is abandoned.
type lapMusic struct {
	audio    Audio
	channels [3]audio.Channel

	previousLap int
	targetLap   int
	percent     float64
	fading      bool
}

func newLapMusic(a Audio) *lapMusic {
	m := &lapMusic{audio: a}
	for i := range m.channels {
		m.channels[i] = audio.NullChannel{}
	}
	return m
}

// start plays all three tracks, only the first audible.
func (m *lapMusic) start() {
	for i, name := range lapTracks {
		gain := 0.0
		if i == 0 {
			gain = 1
		}
		m.channels[i] = m.audio.PlaySound(m.audio.SoundHandle(name), gain)
	}
	m.previousLap, m.targetLap = 0, 0
	m.percent = 0
	m.fading = false
}

func (m *lapMusic) pause() {
	for _, c := range m.channels {
		c.Pause()
	}
}

func (m *lapMusic) resume() {
	for _, c := range m.channels {
		c.Resume()
	}
}

func (m *lapMusic) stop() {
	for _, c := range m.channels {
		c.Stop()
	}
}

// update advances the fade toward lap. A lap change during a fade waits for
// the current fade to finish.
func (m *lapMusic) update(deltaMs float64, lap int) {
	if !m.fading {
		if lap == m.previousLap {
			return
		}
		m.targetLap = lap
		m.fading = true
	}

	m.percent += deltaMs / 1000 / crossfadeSeconds
	done := false
	if m.percent >= 1 {
		m.percent = 1
		done = true
	}

	gainPrevious, gainCurrent := crossfadeGains(m.percent)
	m.channels[m.previousLap%3].SetGain(gainPrevious)
	m.channels[m.targetLap%3].SetGain(gainCurrent)

	if done {
		m.previousLap = m.targetLap
		m.percent = 0
		m.fading = false
	}
}

// Package audio mixes decoded sounds into a single beep stream routed through
// named gain buses.
//
// The engine itself never touches an output device; internal/engine/audio/device
// feeds Streamer into the speaker and installs the speaker lock with SetLocker.
package audio

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/sushi-raft/internal/logger"
)

// DefaultSampleRate is the mixing rate used when none is configured.
const DefaultSampleRate = beep.SampleRate(44100)

// Bus names.
const (
	BusMaster       = "master"
	BusMusic        = "music"
	BusSoundEffects = "sound_effects"
	BusVoices       = "voices"
)

// Bus is a named mixer node whose gain scales every channel routed through it.
type Bus interface {
	Name() string
	SetGain(gain float64)
	Gain() float64
}

// Channel is one active playback of a sound.
type Channel interface {
	SetGain(gain float64)
	Gain() float64
	Stop()
	Pause()
	Resume()
	// Valid reports whether the channel still refers to a live playback.
	Valid() bool
	// Playing reports whether the channel is live and not paused.
	Playing() bool
}

// SoundHandle names a sound in the bank. Handles are resolved at play time,
// so a handle can be taken before the sound finishes loading.
type SoundHandle struct {
	name string
}

// Name returns the sound name.
func (h SoundHandle) Name() string { return h.name }

// Valid reports whether the handle names anything.
func (h SoundHandle) Valid() bool { return h.name != "" }

type sound struct {
	buf  *beep.Buffer
	bus  *bus
	loop bool
}

// Engine owns the buses, the sound bank and the output mixer.
type Engine struct {
	mu     sync.Locker
	rate   beep.SampleRate
	mixer  *beep.Mixer
	buses  map[string]*bus
	sounds map[string]*sound
	voices []*voice
}

// NewEngine creates an engine mixing at rate with the standard bus layout.
func NewEngine(rate beep.SampleRate) *Engine {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	e := &Engine{
		mu:     &sync.Mutex{},
		rate:   rate,
		mixer:  &beep.Mixer{},
		buses:  make(map[string]*bus),
		sounds: make(map[string]*sound),
	}
	master := e.addBus(BusMaster, nil)
	e.addBus(BusMusic, master)
	e.addBus(BusSoundEffects, master)
	e.addBus(BusVoices, master)
	return e
}

func (e *Engine) addBus(name string, parent *bus) *bus {
	b := &bus{engine: e, name: name, gain: 1, parent: parent}
	e.buses[name] = b
	return b
}

// SetLocker replaces the lock guarding mixer state. The output device
// installs its own lock so gain changes never race the audio callback.
func (e *Engine) SetLocker(l sync.Locker) {
	e.mu = l
}

// SampleRate returns the mixing rate.
func (e *Engine) SampleRate() beep.SampleRate {
	return e.rate
}

// Streamer returns the final mix. It never ends.
func (e *Engine) Streamer() beep.Streamer {
	return e.mixer
}

// RegisterSound adds a decoded sound to the bank, routed to busName.
// Unknown bus names fall back to sound_effects.
func (e *Engine) RegisterSound(name, busName string, loop bool, buf *beep.Buffer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.buses[busName]
	if !ok {
		logger.Warn("unknown audio bus, using sound_effects",
			zap.String("sound", name), zap.String("bus", busName))
		b = e.buses[BusSoundEffects]
	}
	e.sounds[name] = &sound{buf: buf, bus: b, loop: loop}
}

// HasSound reports whether name has been registered.
func (e *Engine) HasSound(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.sounds[name]
	return ok
}

// SoundHandle returns a handle for name.
func (e *Engine) SoundHandle(name string) SoundHandle {
	return SoundHandle{name: name}
}

// PlaySound starts a new playback of h at gain. Unknown or unloaded sounds
// return a channel that is never valid.
func (e *Engine) PlaySound(h SoundHandle, gain float64) Channel {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sounds[h.name]
	if !ok {
		logger.Debug("play of unloaded sound", zap.String("sound", h.name))
		return NullChannel{}
	}

	var src beep.Streamer = s.buf.Streamer(0, s.buf.Len())
	if s.loop {
		src = &loopStreamer{streamer: s.buf.Streamer(0, s.buf.Len())}
	}

	v := &voice{engine: e, bus: s.bus, gain: clamp(gain)}
	v.ctrl = &beep.Ctrl{Streamer: src}
	v.vol = &effects.Volume{Streamer: v.ctrl, Base: 2}
	v.applyGain()

	e.pruneVoices()
	e.voices = append(e.voices, v)
	e.mixer.Add(v)
	return v
}

// FindBus returns the named bus, or a detached bus for unknown names.
func (e *Engine) FindBus(name string) Bus {
	e.mu.Lock()
	defer e.mu.Unlock()
	if b, ok := e.buses[name]; ok {
		return b
	}
	logger.Warn("unknown audio bus", zap.String("bus", name))
	return &bus{engine: e, name: name, gain: 1}
}

// ActiveChannels returns the number of live playbacks.
func (e *Engine) ActiveChannels() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pruneVoices()
	return len(e.voices)
}

// StopAll stops every playback.
func (e *Engine) StopAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, v := range e.voices {
		v.stopped = true
	}
	e.voices = nil
	e.mixer.Clear()
}

func (e *Engine) pruneVoices() {
	live := e.voices[:0]
	for _, v := range e.voices {
		if !v.stopped {
			live = append(live, v)
		}
	}
	for i := len(live); i < len(e.voices); i++ {
		e.voices[i] = nil
	}
	e.voices = live
}

// Decode reads a WAV stream fully into a buffer at the given rate.
func Decode(r io.Reader, rate beep.SampleRate) (*beep.Buffer, error) {
	streamer, format, err := wav.Decode(io.NopCloser(r))
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != rate {
		src = beep.Resample(4, format.SampleRate, rate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	return buf, nil
}

type bus struct {
	engine *Engine
	name   string
	gain   float64
	parent *bus
}

func (b *bus) Name() string { return b.name }

func (b *bus) SetGain(gain float64) {
	b.engine.mu.Lock()
	defer b.engine.mu.Unlock()
	b.gain = clamp(gain)
	for _, v := range b.engine.voices {
		v.applyGain()
	}
}

func (b *bus) Gain() float64 {
	b.engine.mu.Lock()
	defer b.engine.mu.Unlock()
	return b.gain
}

// effective multiplies gains up to the root. Caller holds the lock.
func (b *bus) effective() float64 {
	g := 1.0
	for n := b; n != nil; n = n.parent {
		g *= n.gain
	}
	return g
}

// voice is the Channel implementation and the streamer handed to the mixer.
type voice struct {
	engine  *Engine
	bus     *bus
	ctrl    *beep.Ctrl
	vol     *effects.Volume
	gain    float64
	stopped bool
}

// applyGain pushes channel and bus gain into the volume effect. Caller holds
// the lock.
func (v *voice) applyGain() {
	g := v.gain * v.bus.effective()
	if g <= 0 {
		v.vol.Silent = true
		return
	}
	v.vol.Silent = false
	v.vol.Volume = math.Log2(g)
}

// Stream implements beep.Streamer for the mixer.
func (v *voice) Stream(samples [][2]float64) (int, bool) {
	if v.stopped {
		return 0, false
	}
	n, ok := v.vol.Stream(samples)
	// The mixer drops a streamer after a short read, so that is the end too.
	if !ok || (n < len(samples) && !v.ctrl.Paused) {
		v.stopped = true
	}
	return n, ok
}

func (v *voice) Err() error {
	return v.vol.Err()
}

func (v *voice) SetGain(gain float64) {
	v.engine.mu.Lock()
	defer v.engine.mu.Unlock()
	v.gain = clamp(gain)
	v.applyGain()
}

func (v *voice) Gain() float64 {
	v.engine.mu.Lock()
	defer v.engine.mu.Unlock()
	return v.gain
}

func (v *voice) Stop() {
	v.engine.mu.Lock()
	defer v.engine.mu.Unlock()
	v.stopped = true
}

func (v *voice) Pause() {
	v.engine.mu.Lock()
	defer v.engine.mu.Unlock()
	v.ctrl.Paused = true
}

func (v *voice) Resume() {
	v.engine.mu.Lock()
	defer v.engine.mu.Unlock()
	v.ctrl.Paused = false
}

func (v *voice) Valid() bool {
	v.engine.mu.Lock()
	defer v.engine.mu.Unlock()
	return !v.stopped
}

func (v *voice) Playing() bool {
	v.engine.mu.Lock()
	defer v.engine.mu.Unlock()
	return !v.stopped && !v.ctrl.Paused
}

// NullChannel is a channel that never plays. It stands in for sounds that
// are not loaded.
type NullChannel struct{}

func (NullChannel) SetGain(float64) {}
func (NullChannel) Gain() float64   { return 0 }
func (NullChannel) Stop()           {}
func (NullChannel) Pause()          {}
func (NullChannel) Resume()         {}
func (NullChannel) Valid() bool     { return false }
func (NullChannel) Playing() bool   { return false }

// loopStreamer restarts its source whenever it runs dry.
type loopStreamer struct {
	streamer beep.StreamSeeker
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.streamer.Stream(samples[filled:])
		filled += n
		if !ok || n == 0 {
			if l.streamer.Len() == 0 {
				return filled, filled > 0
			}
			if err := l.streamer.Seek(0); err != nil {
				return filled, false
			}
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.streamer.Err()
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

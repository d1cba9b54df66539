package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep/v2"
)

const tolerance = 1e-3

// constantBuffer returns n frames of the value v on both channels.
func constantBuffer(n int, v float64) *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: DefaultSampleRate, NumChannels: 2, Precision: 2})
	remaining := n
	buf.Append(beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if remaining == 0 {
			return 0, false
		}
		k := min(len(samples), remaining)
		for i := range samples[:k] {
			samples[i] = [2]float64{v, v}
		}
		remaining -= k
		return k, true
	}))
	return buf
}

func mix(e *Engine, n int) [][2]float64 {
	out := make([][2]float64, n)
	e.Streamer().Stream(out)
	return out
}

func newTestEngine() *Engine {
	e := NewEngine(DefaultSampleRate)
	e.RegisterSound("tone", BusMusic, false, constantBuffer(4096, 0.5))
	e.RegisterSound("loop", BusMusic, true, constantBuffer(100, 0.5))
	e.RegisterSound("click", BusSoundEffects, false, constantBuffer(16, 0.5))
	return e
}

func TestNewEngineBuses(t *testing.T) {
	e := NewEngine(0)
	if e.SampleRate() != DefaultSampleRate {
		t.Errorf("expected default sample rate, got %d", e.SampleRate())
	}
	for _, name := range []string{BusMaster, BusMusic, BusSoundEffects, BusVoices} {
		b := e.FindBus(name)
		if b.Name() != name {
			t.Errorf("expected bus %s, got %s", name, b.Name())
		}
		if b.Gain() != 1 {
			t.Errorf("expected bus %s gain 1, got %f", name, b.Gain())
		}
	}
}

func TestPlaySoundAppliesChannelAndBusGain(t *testing.T) {
	tests := []struct {
		name   string
		gain   float64
		music  float64
		master float64
		want   float64
	}{
		{"unity", 1, 1, 1, 0.5},
		{"channel half", 0.5, 1, 1, 0.25},
		{"bus and master", 1, 0.5, 0.5, 0.125},
		{"silent", 0, 1, 1, 0},
		{"master muted", 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			e.FindBus(BusMusic).SetGain(tt.music)
			e.FindBus(BusMaster).SetGain(tt.master)
			e.PlaySound(e.SoundHandle("tone"), tt.gain)

			out := mix(e, 64)
			if math.Abs(out[10][0]-tt.want) > tolerance {
				t.Errorf("expected sample %f, got %f", tt.want, out[10][0])
			}
		})
	}
}

func TestBusGainChangeAffectsPlayingChannels(t *testing.T) {
	e := newTestEngine()
	e.PlaySound(e.SoundHandle("tone"), 1)
	mix(e, 32)

	e.FindBus(BusMaster).SetGain(0.5)
	out := mix(e, 32)
	if math.Abs(out[0][0]-0.25) > tolerance {
		t.Errorf("expected 0.25 after master change, got %f", out[0][0])
	}
}

func TestChannelGainClamped(t *testing.T) {
	e := newTestEngine()
	ch := e.PlaySound(e.SoundHandle("tone"), 2)
	if ch.Gain() != 1 {
		t.Errorf("expected gain clamped to 1, got %f", ch.Gain())
	}
	ch.SetGain(-1)
	if ch.Gain() != 0 {
		t.Errorf("expected gain clamped to 0, got %f", ch.Gain())
	}
}

func TestChannelPauseResumeStop(t *testing.T) {
	e := newTestEngine()
	ch := e.PlaySound(e.SoundHandle("loop"), 1)

	if !ch.Valid() || !ch.Playing() {
		t.Fatal("expected fresh channel to be valid and playing")
	}

	ch.Pause()
	if !ch.Valid() {
		t.Error("expected paused channel to stay valid")
	}
	if ch.Playing() {
		t.Error("expected paused channel not to be playing")
	}
	out := mix(e, 16)
	if out[0][0] != 0 {
		t.Errorf("expected silence while paused, got %f", out[0][0])
	}

	ch.Resume()
	if !ch.Playing() {
		t.Error("expected resumed channel to be playing")
	}
	out = mix(e, 16)
	if math.Abs(out[0][0]-0.5) > tolerance {
		t.Errorf("expected 0.5 after resume, got %f", out[0][0])
	}

	ch.Stop()
	if ch.Valid() || ch.Playing() {
		t.Error("expected stopped channel to be invalid")
	}
	out = mix(e, 16)
	if out[0][0] != 0 {
		t.Errorf("expected silence after stop, got %f", out[0][0])
	}
	if e.ActiveChannels() != 0 {
		t.Errorf("expected 0 active channels, got %d", e.ActiveChannels())
	}
}

func TestOneShotEndsAndLoopContinues(t *testing.T) {
	e := newTestEngine()
	click := e.PlaySound(e.SoundHandle("click"), 1)
	loop := e.PlaySound(e.SoundHandle("loop"), 1)

	out := mix(e, 1024)
	if click.Valid() {
		t.Error("expected one-shot to end after its samples")
	}
	if !loop.Valid() {
		t.Error("expected loop to keep playing")
	}
	if math.Abs(out[1000][0]-0.5) > tolerance {
		t.Errorf("expected loop output past its length, got %f", out[1000][0])
	}
}

func TestFinishedOneShotsAreReleased(t *testing.T) {
	e := newTestEngine()
	var last Channel
	for i := 0; i < 50; i++ {
		last = e.PlaySound(e.SoundHandle("click"), 1)
		mix(e, 64)
	}
	if last.Valid() || last.Playing() {
		t.Error("expected finished one-shot to be invalid")
	}
	if e.ActiveChannels() != 0 {
		t.Errorf("expected 0 active channels, got %d", e.ActiveChannels())
	}
}

func TestUnknownSoundReturnsNullChannel(t *testing.T) {
	e := newTestEngine()
	ch := e.PlaySound(e.SoundHandle("missing"), 1)
	if ch.Valid() || ch.Playing() {
		t.Error("expected null channel")
	}
	ch.SetGain(1)
	ch.Stop()
	if e.ActiveChannels() != 0 {
		t.Errorf("expected no active channels, got %d", e.ActiveChannels())
	}
}

func TestUnknownBusDetached(t *testing.T) {
	e := newTestEngine()
	b := e.FindBus("ambience")
	b.SetGain(0.2)
	if e.FindBus("ambience").Gain() != 1 {
		t.Error("expected unknown bus lookups to be independent")
	}
}

func TestStopAll(t *testing.T) {
	e := newTestEngine()
	a := e.PlaySound(e.SoundHandle("loop"), 1)
	b := e.PlaySound(e.SoundHandle("tone"), 1)
	e.StopAll()
	if a.Valid() || b.Valid() {
		t.Error("expected all channels stopped")
	}
}

func TestSoundHandle(t *testing.T) {
	e := newTestEngine()
	h := e.SoundHandle("click")
	if !h.Valid() || h.Name() != "click" {
		t.Errorf("expected valid handle named click, got %q", h.Name())
	}
	if (SoundHandle{}).Valid() {
		t.Error("expected zero handle to be invalid")
	}
	if !e.HasSound("click") || e.HasSound("missing") {
		t.Error("HasSound mismatch")
	}
}

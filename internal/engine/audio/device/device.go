// Package device connects an audio.Engine to the system speaker.
package device

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"

	"github.com/Faultbox/sushi-raft/internal/engine/audio"
	"github.com/Faultbox/sushi-raft/internal/logger"
)

// speakerLock adapts the speaker's global lock to sync.Locker.
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// Output is an open speaker fed by an engine.
type Output struct {
	engine *audio.Engine
}

// Open initializes the speaker and starts streaming the engine's mix.
func Open(engine *audio.Engine, buffer time.Duration) (*Output, error) {
	if buffer <= 0 {
		buffer = time.Second / 30
	}
	rate := engine.SampleRate()
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	engine.SetLocker(speakerLock{})
	speaker.Play(engine.Streamer())

	logger.Info("audio output opened",
		zap.Int("sample_rate", int(rate)),
		zap.Duration("buffer", buffer))
	return &Output{engine: engine}, nil
}

// Close stops playback and releases the device.
func (o *Output) Close() {
	o.engine.StopAll()
	speaker.Clear()
	speaker.Close()
}

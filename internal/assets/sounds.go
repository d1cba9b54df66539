package assets

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gopxl/beep/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/sushi-raft/internal/engine/audio"
	"github.com/Faultbox/sushi-raft/internal/logger"
)

// maxDecoders bounds concurrent sound decoding.
const maxDecoders = 4

// SoundDef is one entry of the sound bank.
type SoundDef struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
	Bus  string `yaml:"bus"`
	Loop bool   `yaml:"loop"`
}

type soundBank struct {
	Sounds []SoundDef `yaml:"sounds"`
}

type decodedSound struct {
	def SoundDef
	buf *beep.Buffer
}

// SoundRegistrar receives decoded sounds.
type SoundRegistrar interface {
	SampleRate() beep.SampleRate
	RegisterSound(name, busName string, loop bool, buf *beep.Buffer)
}

// ParseSoundBank decodes a sound bank document.
func ParseSoundBank(data []byte) ([]SoundDef, error) {
	var bank soundBank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("parsing sound bank: %w", err)
	}
	for i, s := range bank.Sounds {
		if s.Name == "" || s.File == "" {
			return nil, fmt.Errorf("sound bank entry %d: name and file are required", i)
		}
	}
	return bank.Sounds, nil
}

// LoadSoundBank reads the sound bank at name. Decoding starts with
// StartLoading.
func (m *Manager) LoadSoundBank(name string) error {
	data, err := m.Load(name)
	if err != nil {
		return err
	}
	sounds, err := ParseSoundBank(data)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.sounds = append(m.sounds, sounds...)
	m.mu.Unlock()
	return nil
}

// StartLoading decodes every sound in the background at the registrar's
// sample rate. Sounds that fail to load are logged and skipped.
func (m *Manager) StartLoading(ctx context.Context) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.done = make(chan struct{})
	sounds := append([]SoundDef(nil), m.sounds...)
	m.mu.Unlock()

	if m.reg == nil {
		close(m.done)
		return
	}
	rate := m.reg.SampleRate()
	go func() {
		defer close(m.done)

		results := make([]*beep.Buffer, len(sounds))
		errs := make([]error, len(sounds))

		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(maxDecoders)
		for i, s := range sounds {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				buf, err := m.decode(s, rate)
				if err != nil {
					errs[i] = fmt.Errorf("sound %s: %w", s.Name, err)
					return nil
				}
				results[i] = buf
				return nil
			})
		}
		waitErr := g.Wait()

		m.mu.Lock()
		defer m.mu.Unlock()
		m.loadErr = multierr.Combine(append(errs, waitErr)...)
		for i, buf := range results {
			if buf != nil {
				m.decoded = append(m.decoded, decodedSound{def: sounds[i], buf: buf})
			}
		}
	}()
}

func (m *Manager) decode(s SoundDef, rate beep.SampleRate) (*beep.Buffer, error) {
	data, err := m.Load(s.File)
	if err != nil {
		return nil, err
	}
	return audio.Decode(bytes.NewReader(data), rate)
}

// TryFinalize hands decoded sounds to the registrar on the calling
// goroutine and reports whether loading is complete. It starts loading if
// nothing did yet, and never blocks.
func (m *Manager) TryFinalize() bool {
	m.mu.Lock()
	if m.finished {
		m.mu.Unlock()
		return true
	}
	if !m.started {
		m.mu.Unlock()
		m.StartLoading(context.Background())
		m.mu.Lock()
	}
	done := m.done
	m.mu.Unlock()

	select {
	case <-done:
	default:
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.decoded {
		m.reg.RegisterSound(d.def.Name, d.def.Bus, d.def.Loop, d.buf)
	}
	for _, err := range multierr.Errors(m.loadErr) {
		logger.Warn("sound not loaded", zap.Error(err))
	}
	logger.Info("sounds loaded",
		zap.Int("loaded", len(m.decoded)),
		zap.Int("failed", len(multierr.Errors(m.loadErr))))
	m.decoded = nil
	m.finished = true
	return true
}

// LoadErrors returns every sound that failed to load.
func (m *Manager) LoadErrors() []error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return multierr.Errors(m.loadErr)
}

package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

type registeredSound struct {
	bus  string
	loop bool
	len  int
}

type fakeRegistrar struct {
	sounds map[string]registeredSound
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{sounds: make(map[string]registeredSound)}
}

func (f *fakeRegistrar) SampleRate() beep.SampleRate { return 44100 }

func (f *fakeRegistrar) RegisterSound(name, busName string, loop bool, buf *beep.Buffer) {
	f.sounds[name] = registeredSound{bus: busName, loop: loop, len: buf.Len()}
}

func writeWav(t *testing.T, path string, samples int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	silence := beep.StreamerFunc(func(s [][2]float64) (int, bool) {
		for i := range s {
			s[i] = [2]float64{}
		}
		return len(s), true
	})
	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Take(samples, silence), format); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func finalize(t *testing.T, m *Manager) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !m.TryFinalize() {
		if time.Now().After(deadline) {
			t.Fatal("loading did not finish")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestParseSoundBank(t *testing.T) {
	sounds, err := ParseSoundBank([]byte(`
sounds:
  - {name: click, file: click.wav, bus: sound_effects}
  - {name: menu_music, file: menu.wav, bus: music, loop: true}
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sounds) != 2 {
		t.Fatalf("expected 2 sounds, got %d", len(sounds))
	}
	if !sounds[1].Loop || sounds[1].Bus != "music" {
		t.Errorf("expected looping music entry, got %+v", sounds[1])
	}

	if _, err := ParseSoundBank([]byte("sounds:\n  - {name: nofile}\n")); err == nil {
		t.Error("expected error for entry without file")
	}
	if _, err := ParseSoundBank([]byte("sounds: [")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestLoadingRegistersSounds(t *testing.T) {
	dir := t.TempDir()
	writeWav(t, filepath.Join(dir, "click.wav"), 441)
	writeWav(t, filepath.Join(dir, "menu.wav"), 882)
	writeFile(t, filepath.Join(dir, "sounds.yaml"), `
sounds:
  - {name: click, file: click.wav, bus: sound_effects}
  - {name: menu_music, file: menu.wav, bus: music, loop: true}
  - {name: missing, file: nope.wav, bus: voices}
`)

	reg := newFakeRegistrar()
	m := NewManager(dir, reg)
	if err := m.LoadSoundBank("sounds.yaml"); err != nil {
		t.Fatalf("LoadSoundBank: %v", err)
	}
	m.StartLoading(context.Background())
	finalize(t, m)

	if len(reg.sounds) != 2 {
		t.Fatalf("expected 2 registered sounds, got %d", len(reg.sounds))
	}
	click := reg.sounds["click"]
	if click.len != 441 || click.bus != "sound_effects" {
		t.Errorf("unexpected click registration %+v", click)
	}
	if !reg.sounds["menu_music"].loop {
		t.Error("expected menu music to loop")
	}
	if errs := m.LoadErrors(); len(errs) != 1 {
		t.Errorf("expected 1 load error, got %d", len(errs))
	}

	if !m.TryFinalize() {
		t.Error("expected finalize to stay complete")
	}
}

func TestTryFinalizeWithoutBank(t *testing.T) {
	reg := newFakeRegistrar()
	m := NewManager(t.TempDir(), reg)
	finalize(t, m)
	if len(reg.sounds) != 0 {
		t.Errorf("expected no sounds, got %d", len(reg.sounds))
	}
}

func TestTryFinalizeWithoutRegistrar(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sounds.yaml"), "sounds:\n  - {name: click, file: click.wav}\n")
	m := NewManager(dir, nil)
	if err := m.LoadSoundBank("sounds.yaml"); err != nil {
		t.Fatalf("LoadSoundBank: %v", err)
	}
	if !m.TryFinalize() {
		t.Error("expected loading to finish at once without a registrar")
	}
}

func TestLoadUsesCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "about.txt"), "Sushi\r\nRaft")
	m := NewManager(dir, nil)

	if got := m.Text("about.txt"); got != "Sushi\nRaft" {
		t.Errorf("expected normalised text, got %q", got)
	}
	m.Text("about.txt")
	hits, misses := m.cache.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d and %d", hits, misses)
	}

	if got := m.Text("license.txt"); got != "" {
		t.Errorf("expected empty text for missing file, got %q", got)
	}
	if _, err := m.Load("license.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

package input

import (
	"testing"
	"time"
)

func TestButtonEdges(t *testing.T) {
	var b Button

	b.Update(true)
	if !b.IsDown() || !b.WentDown() || b.WentUp() {
		t.Errorf("expected down edge, got %+v", b)
	}

	b.advance()
	b.Update(true)
	if !b.IsDown() || b.WentDown() {
		t.Errorf("expected held without edge, got %+v", b)
	}

	b.advance()
	b.Update(false)
	if b.IsDown() || !b.WentUp() {
		t.Errorf("expected up edge, got %+v", b)
	}
}

func TestKeyEdgesLastOneFrame(t *testing.T) {
	s := New()

	s.BeginFrame()
	s.Apply(Event{Type: EventKeyDown, Key: KeyF9})
	if !s.IsKeyPressed(KeyF9) {
		t.Error("expected F9 pressed this frame")
	}

	s.BeginFrame()
	if s.IsKeyPressed(KeyF9) {
		t.Error("expected F9 edge cleared next frame")
	}
	if !s.Key(KeyF9).IsDown() {
		t.Error("expected F9 still held")
	}
}

func TestBackPressed(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want bool
	}{
		{"escape", KeyEscape, true},
		{"android back", KeyACBack, true},
		{"space", KeySpace, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.BeginFrame()
			s.Apply(Event{Type: EventKeyDown, Key: tt.key})
			if got := s.BackPressed(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPointer(t *testing.T) {
	s := New()
	s.BeginFrame()
	s.Apply(Event{Type: EventMouseDown, Button: PointerLeft, MouseX: 10, MouseY: 20})
	if !s.Pointer(PointerLeft).WentDown() {
		t.Error("expected pointer down edge")
	}
	if x, y := s.PointerPosition(); x != 10 || y != 20 {
		t.Errorf("expected (10, 20), got (%d, %d)", x, y)
	}

	s.Apply(Event{Type: EventMouseMove, MouseX: 15, MouseY: 18, DeltaX: 5, DeltaY: -2})
	s.Apply(Event{Type: EventMouseMove, MouseX: 16, MouseY: 18, DeltaX: 1})
	if dx, dy := s.PointerDelta(); dx != 6 || dy != -2 {
		t.Errorf("expected delta (6, -2), got (%d, %d)", dx, dy)
	}

	s.BeginFrame()
	if dx, dy := s.PointerDelta(); dx != 0 || dy != 0 {
		t.Errorf("expected delta reset, got (%d, %d)", dx, dy)
	}
	if s.Pointer(7).IsDown() {
		t.Error("expected out of range pointer to be up")
	}
}

func TestOutOfRangeKeysIgnored(t *testing.T) {
	s := New()
	s.Apply(Event{Type: EventKeyDown, Key: Key(999)})
	s.Apply(Event{Type: EventKeyDown, Key: KeyUnknown})
	if s.Key(Key(999)).IsDown() || s.Key(KeyUnknown).IsDown() {
		t.Error("expected unknown keys to be ignored")
	}
}

func TestTimeUsesClock(t *testing.T) {
	now := time.Unix(100, 0)
	s := NewWithClock(func() time.Time { return now })
	now = now.Add(1500 * time.Millisecond)
	if got := s.Time(); got != 1.5 {
		t.Errorf("expected 1.5s, got %f", got)
	}
}

func TestRelativeMouseModeHook(t *testing.T) {
	s := New()
	var calls []bool
	s.SetModeHook(func(rel bool) { calls = append(calls, rel) })

	s.SetRelativeMouseMode(true)
	s.SetRelativeMouseMode(true)
	s.SetRelativeMouseMode(false)

	if len(calls) != 2 || !calls[0] || calls[1] {
		t.Errorf("expected hook calls [true false], got %v", calls)
	}
	if s.RelativeMouseMode() {
		t.Error("expected pointer released")
	}
}

func TestQuitAndResize(t *testing.T) {
	s := New()
	s.Apply(Event{Type: EventWindowResize, Width: 640, Height: 480})
	s.Apply(Event{Type: EventQuit})
	if !s.QuitRequested() {
		t.Error("expected quit requested")
	}
	if w, h := s.WindowSize(); w != 640 || h != 480 {
		t.Errorf("expected 640x480, got %dx%d", w, h)
	}
	if len(s.Events()) != 2 {
		t.Errorf("expected 2 events, got %d", len(s.Events()))
	}
}

func TestAxis(t *testing.T) {
	s := New()
	s.Apply(Event{Type: EventAxis, Axis: AxisLeftX, Value: -0.5})
	if s.Axis(AxisLeftX) != -0.5 {
		t.Errorf("expected -0.5, got %f", s.Axis(AxisLeftX))
	}
	if s.Axis(42) != 0 {
		t.Error("expected unknown axis to read 0")
	}
}

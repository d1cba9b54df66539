// Package input tracks per-frame keyboard, pointer and gamepad state.
//
// The package is backend neutral: a platform pump (see sdlinput) translates
// native events into Event values and feeds them to System.Apply between
// BeginFrame calls.
package input

import "time"

// EventType identifies a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventAxis
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	MouseX int
	MouseY int
	DeltaX int
	DeltaY int
	Button int
	Axis   int
	Value  float32
}

// Key is a backend-neutral key or gamepad button.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyACBack
	KeyF8
	KeyF9
	KeyF10
	Key1
	KeySpace
	KeyReturn
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyGamepadA
	KeyGamepadB
	KeyGamepadStart
	keyCount
)

// Pointer buttons.
const (
	PointerLeft = iota
	PointerMiddle
	PointerRight
	pointerCount
)

// Gamepad axes.
const (
	AxisLeftX = iota
	AxisLeftY
	axisCount
)

// Button tracks a held state and the edges of the current frame.
type Button struct {
	down     bool
	wentDown bool
	wentUp   bool
}

// Update records the button's new physical state.
func (b *Button) Update(down bool) {
	if down && !b.down {
		b.wentDown = true
	}
	if !down && b.down {
		b.wentUp = true
	}
	b.down = down
}

// IsDown reports whether the button is held.
func (b Button) IsDown() bool { return b.down }

// WentDown reports whether the button was pressed this frame.
func (b Button) WentDown() bool { return b.wentDown }

// WentUp reports whether the button was released this frame.
func (b Button) WentUp() bool { return b.wentUp }

func (b *Button) advance() {
	b.wentDown = false
	b.wentUp = false
}

// System holds the input state of the current frame.
type System struct {
	events   []Event
	keys     [keyCount]Button
	pointers [pointerCount]Button
	axes     [axisCount]float32

	pointerX, pointerY int
	deltaX, deltaY     int
	width, height      int
	quit               bool

	now      func() time.Time
	start    time.Time
	relative bool
	onMode   func(relative bool)
}

// New creates an input system whose clock starts now.
func New() *System {
	return NewWithClock(time.Now)
}

// NewWithClock creates an input system reading time from now.
func NewWithClock(now func() time.Time) *System {
	return &System{
		events: make([]Event, 0, 16),
		now:    now,
		start:  now(),
	}
}

// BeginFrame clears the edges and events of the previous frame.
func (s *System) BeginFrame() {
	s.events = s.events[:0]
	for i := range s.keys {
		s.keys[i].advance()
	}
	for i := range s.pointers {
		s.pointers[i].advance()
	}
	s.deltaX, s.deltaY = 0, 0
}

// Apply folds one event into the frame state.
func (s *System) Apply(e Event) {
	s.events = append(s.events, e)

	switch e.Type {
	case EventQuit:
		s.quit = true
	case EventWindowResize:
		s.width, s.height = e.Width, e.Height
	case EventKeyDown, EventKeyUp:
		if e.Key > KeyUnknown && e.Key < keyCount {
			s.keys[e.Key].Update(e.Type == EventKeyDown)
		}
	case EventMouseMove:
		s.pointerX, s.pointerY = e.MouseX, e.MouseY
		s.deltaX += e.DeltaX
		s.deltaY += e.DeltaY
	case EventMouseDown, EventMouseUp:
		s.pointerX, s.pointerY = e.MouseX, e.MouseY
		if e.Button >= 0 && e.Button < pointerCount {
			s.pointers[e.Button].Update(e.Type == EventMouseDown)
		}
	case EventAxis:
		if e.Axis >= 0 && e.Axis < axisCount {
			s.axes[e.Axis] = e.Value
		}
	}
}

// Events returns the events of the current frame.
func (s *System) Events() []Event {
	return s.events
}

// Key returns the state of k.
func (s *System) Key(k Key) Button {
	if k <= KeyUnknown || k >= keyCount {
		return Button{}
	}
	return s.keys[k]
}

// IsKeyPressed reports whether k went down this frame.
func (s *System) IsKeyPressed(k Key) bool {
	return s.Key(k).WentDown()
}

// BackPressed reports the "back" edge: Escape or the Android back key.
func (s *System) BackPressed() bool {
	return s.IsKeyPressed(KeyEscape) || s.IsKeyPressed(KeyACBack)
}

// Pointer returns the state of pointer button i.
func (s *System) Pointer(i int) Button {
	if i < 0 || i >= pointerCount {
		return Button{}
	}
	return s.pointers[i]
}

// PointerPosition returns the last pointer position in window pixels.
func (s *System) PointerPosition() (x, y int) {
	return s.pointerX, s.pointerY
}

// PointerDelta returns the pointer motion accumulated this frame.
func (s *System) PointerDelta() (dx, dy int) {
	return s.deltaX, s.deltaY
}

// Axis returns the last value of a gamepad axis in [-1, 1].
func (s *System) Axis(a int) float32 {
	if a < 0 || a >= axisCount {
		return 0
	}
	return s.axes[a]
}

// WindowSize returns the last reported window size.
func (s *System) WindowSize() (w, h int) {
	return s.width, s.height
}

// QuitRequested reports whether the platform asked to close.
func (s *System) QuitRequested() bool {
	return s.quit
}

// Time returns seconds since the system was created.
func (s *System) Time() float64 {
	return s.now().Sub(s.start).Seconds()
}

// SetModeHook installs the backend callback used to capture the pointer.
func (s *System) SetModeHook(fn func(relative bool)) {
	s.onMode = fn
}

// SetRelativeMouseMode captures or releases the pointer.
func (s *System) SetRelativeMouseMode(relative bool) {
	if s.relative == relative {
		return
	}
	s.relative = relative
	if s.onMode != nil {
		s.onMode(relative)
	}
}

// RelativeMouseMode reports whether the pointer is captured.
func (s *System) RelativeMouseMode() bool {
	return s.relative
}

package ui2d

// InputState holds the current input state for the UI.
type InputState struct {
	// Mouse state
	MouseX      float32
	MouseY      float32
	MouseDeltaX float32
	MouseDeltaY float32

	// Mouse buttons (current frame)
	MouseLeftDown bool

	// Mouse buttons (edges this frame)
	MouseLeftPressed  bool
	MouseLeftReleased bool

	// Scroll
	ScrollY float32

	// Previous frame state for edge detection
	prevMouseLeft bool
	prevMouseX    float32
	prevMouseY    float32

	// Edges reported by the event source, which catch a press and release
	// that both land inside one frame.
	sawPress   bool
	sawRelease bool
}

// SetMouse records the raw pointer state for this frame. wentDown and
// wentUp report edges seen between frames.
func (i *InputState) SetMouse(x, y float32, down, wentDown, wentUp bool) {
	i.MouseX = x
	i.MouseY = y
	i.MouseLeftDown = down
	i.sawPress = wentDown
	i.sawRelease = wentUp
}

// Update prepares input state for a new frame.
// Call this at the start of each frame after updating raw input values.
func (i *InputState) Update() {
	i.MouseDeltaX = i.MouseX - i.prevMouseX
	i.MouseDeltaY = i.MouseY - i.prevMouseY

	i.MouseLeftPressed = i.sawPress || (i.MouseLeftDown && !i.prevMouseLeft)
	i.MouseLeftReleased = i.sawRelease || (!i.MouseLeftDown && i.prevMouseLeft)
	i.sawPress = false
	i.sawRelease = false

	i.prevMouseLeft = i.MouseLeftDown
	i.prevMouseX = i.MouseX
	i.prevMouseY = i.MouseY
}

// EndFrame clears per-frame input state.
// Call this at the end of each frame.
func (i *InputState) EndFrame() {
	i.ScrollY = 0
}

// IsMouseInRect checks if the mouse is within a rectangle.
func (i *InputState) IsMouseInRect(x, y, w, h float32) bool {
	return i.MouseX >= x && i.MouseX < x+w &&
		i.MouseY >= y && i.MouseY < y+h
}

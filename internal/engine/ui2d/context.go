package ui2d

// textScale draws the 7x13 glyphs at roughly 20px.
const textScale = float32(1.5)

const titleBarH = float32(25)

// Context is an immediate-mode UI: widgets are laid out and hit-tested as
// they are declared, and primitives go to the Painter.
type Context struct {
	painter Painter
	input   *InputState

	// Active/hot widget tracking for interaction
	hotWidget    string
	activeWidget string

	// Current window being drawn
	currentWindow *WindowState

	// Current listbox being drawn (nil if not in a listbox)
	currentListBox *ListBoxState

	// Layout state
	cursorX float32
	cursorY float32
	rowH    float32
}

// WindowState holds state for a UI window.
type WindowState struct {
	ID   string
	X, Y float32
	W, H float32
}

// NewContext creates a UI context drawing to p.
func NewContext(p Painter) *Context {
	return &Context{
		painter: p,
		input:   &InputState{},
	}
}

// Painter returns the underlying painter.
func (c *Context) Painter() Painter {
	return c.painter
}

// Input returns the input state for modification.
func (c *Context) Input() *InputState {
	return c.input
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.input.Update()
	c.hotWidget = ""
}

// End finishes the UI frame.
func (c *Context) End() {
	c.input.EndFrame()
}

// BeginWindow starts a fixed window. An empty title draws no title bar.
func (c *Context) BeginWindow(id string, x, y, w, h float32, title string) bool {
	ws := &WindowState{ID: id, X: x, Y: y, W: w, H: h}
	c.currentWindow = ws

	c.painter.DrawPanel(ws.X, ws.Y, ws.W, ws.H, ColorPanelBg, ColorPanelBorder)

	top := ws.Y + 8
	if title != "" {
		c.painter.DrawRect(ws.X+1, ws.Y+1, ws.W-2, titleBarH-1, ColorButtonNormal)
		_, textH := c.painter.MeasureText(title, textScale)
		c.painter.DrawText(ws.X+8, ws.Y+(titleBarH-textH)/2, title, textScale, ColorText)
		top = ws.Y + titleBarH + 8
	}

	c.cursorX = ws.X + 8
	c.cursorY = top
	c.rowH = 0
	return true
}

// EndWindow ends the current window.
func (c *Context) EndWindow() {
	c.currentWindow = nil
}

// Row starts a new row with the given height.
func (c *Context) Row(height float32) {
	if c.currentWindow == nil {
		return
	}
	c.cursorX = c.currentWindow.X + 8
	c.cursorY += c.rowH + 4
	c.rowH = height
}

// contentWidth is the usable width of the current window.
func (c *Context) contentWidth() float32 {
	return c.currentWindow.W - 16
}

// Button draws a button and returns true if clicked.
func (c *Context) Button(id string, width float32, label string) bool {
	if c.currentWindow == nil {
		return false
	}

	x := c.cursorX
	y := c.cursorY
	h := c.rowH
	if h == 0 {
		h = 28
	}
	if width == 0 {
		width = c.contentWidth()
	}

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{x, y, width, h}

	// Click on press; the press is consumed so only one button gets it.
	hovered := rect.Contains(c.input.MouseX, c.input.MouseY)
	clicked := false

	if hovered {
		c.hotWidget = fullID
		if c.input.MouseLeftPressed {
			c.activeWidget = fullID
			clicked = true
			c.input.MouseLeftPressed = false
		}
	}

	if c.activeWidget == fullID && c.input.MouseLeftReleased {
		c.activeWidget = ""
	}

	color := ColorButtonNormal
	if c.activeWidget == fullID {
		color = ColorButtonActive
	} else if hovered {
		color = ColorButtonHover
	}

	c.painter.DrawRect(x, y, width, h, color)
	c.painter.DrawRectOutline(x, y, width, h, 1, ColorPanelBorder)

	textW, textH := c.painter.MeasureText(label, textScale)
	c.painter.DrawText(x+(width-textW)/2, y+(h-textH)/2, label, textScale, ColorText)

	c.cursorX += width + 4

	return clicked
}

// Label draws a text label.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws a text label with a specific color.
func (c *Context) LabelColored(text string, color Color) {
	if c.currentWindow == nil {
		return
	}
	c.painter.DrawText(c.cursorX, c.cursorY, text, textScale, color)

	w, h := c.painter.MeasureText(text, textScale)
	c.cursorX += w + 4
	if h > c.rowH {
		c.rowH = h
	}
}

// Text draws text at an absolute position, outside any window.
func (c *Context) Text(x, y float32, text string, color Color) {
	c.painter.DrawText(x, y, text, textScale, color)
}

// MeasureText returns the size of text at the UI scale.
func (c *Context) MeasureText(text string) (float32, float32) {
	return c.painter.MeasureText(text, textScale)
}

// Spacer adds vertical space.
func (c *Context) Spacer(height float32) {
	c.cursorY += height
}

// Separator draws a horizontal separator line.
func (c *Context) Separator() {
	if c.currentWindow == nil {
		return
	}
	c.cursorY += c.rowH + 4
	c.rowH = 0
	x := c.currentWindow.X + 8
	c.painter.DrawRect(x, c.cursorY, c.contentWidth(), 1, ColorPanelBorder)
	c.cursorY += 8
	c.cursorX = x
}

// ProgressBar draws a progress bar.
func (c *Context) ProgressBar(fraction float32, width, height float32, label string) {
	if c.currentWindow == nil {
		return
	}

	x := c.cursorX
	y := c.cursorY
	if height == 0 {
		height = 20
	}
	if width == 0 {
		width = c.contentWidth()
	}
	fraction = clampUnit(fraction)

	c.painter.DrawRect(x, y, width, height, ColorInputBg)
	c.painter.DrawRectOutline(x, y, width, height, 1, ColorPanelBorder)

	if fillWidth := (width - 2) * fraction; fillWidth > 0 {
		c.painter.DrawRect(x+1, y+1, fillWidth, height-2, ColorHighlight)
	}

	if label != "" {
		textW, textH := c.painter.MeasureText(label, textScale)
		c.painter.DrawText(x+(width-textW)/2, y+(height-textH)/2, label, textScale, ColorText)
	}

	c.cursorX = c.currentWindow.X + 8
	c.cursorY += height + 4
}

// Slider draws a horizontal slider over [0,1]. It returns the new value and
// whether it changed this frame.
func (c *Context) Slider(id string, width float32, value float32, label string) (float32, bool) {
	if c.currentWindow == nil {
		return value, false
	}

	x := c.cursorX
	y := c.cursorY
	h := c.rowH
	if h == 0 {
		h = 24
	}
	if width == 0 {
		width = c.contentWidth()
	}

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{x, y, width, h}
	hovered := rect.Contains(c.input.MouseX, c.input.MouseY)

	if hovered && c.input.MouseLeftPressed {
		c.activeWidget = fullID
		c.input.MouseLeftPressed = false
	}

	changed := false
	if c.activeWidget == fullID {
		v := clampUnit((c.input.MouseX - x) / width)
		if v != value {
			value = v
			changed = true
		}
		if c.input.MouseLeftReleased || !c.input.MouseLeftDown {
			c.activeWidget = ""
		}
	}

	c.painter.DrawRect(x, y, width, h, ColorInputBg)
	c.painter.DrawRectOutline(x, y, width, h, 1, ColorPanelBorder)
	if fill := (width - 2) * value; fill > 0 {
		c.painter.DrawRect(x+1, y+1, fill, h-2, ColorHighlight.WithAlpha(0.6))
	}
	knob := x + (width-8)*value
	c.painter.DrawRect(knob, y, 8, h, ColorText)

	if label != "" {
		textW, textH := c.painter.MeasureText(label, textScale)
		c.painter.DrawText(x+(width-textW)/2, y+(h-textH)/2, label, textScale, ColorText)
	}

	c.cursorX += width + 4
	return value, changed
}

// Selectable draws a selectable item and returns true if clicked.
func (c *Context) Selectable(id string, label string, selected bool) bool {
	if c.currentWindow == nil {
		return false
	}

	x := c.cursorX
	y := c.cursorY
	h := c.rowH
	if h == 0 {
		h = 24
	}

	var width float32
	if c.currentListBox != nil {
		width = c.currentListBox.W - 8
	} else {
		width = c.contentWidth()
	}

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{x, y, width, h}

	// Items scrolled out of the list box are skipped but keep their slot.
	visible := c.currentListBox == nil || c.currentListBox.contains(rect)
	hovered := visible && rect.Contains(c.input.MouseX, c.input.MouseY)
	clicked := false

	if hovered {
		c.hotWidget = fullID
		if c.input.MouseLeftPressed {
			c.activeWidget = fullID
			clicked = true
			c.input.MouseLeftPressed = false
		}
	}

	if c.activeWidget == fullID && c.input.MouseLeftReleased {
		c.activeWidget = ""
	}

	if visible {
		var bgColor Color
		switch {
		case selected:
			bgColor = ColorHighlight.WithAlpha(0.5)
		case c.activeWidget == fullID:
			bgColor = ColorButtonActive
		case hovered:
			bgColor = ColorButtonHover
		default:
			bgColor = ColorTransparent
		}
		if bgColor.A > 0 {
			c.painter.DrawRect(x, y, width, h, bgColor)
		}

		_, textH := c.painter.MeasureText(label, textScale)
		c.painter.DrawText(x+4, y+(h-textH)/2, label, textScale, ColorText)
	}

	if c.currentListBox != nil {
		c.cursorX = c.currentListBox.X + 4
	} else {
		c.cursorX = c.currentWindow.X + 8
	}
	c.cursorY += h

	return clicked
}

// ListBoxState holds state for a list box widget.
type ListBoxState struct {
	X, Y float32
	W, H float32
}

func (l *ListBoxState) contains(r Rect) bool {
	return r.Y >= l.Y && r.Y+r.H <= l.Y+l.H
}

// BeginListBox starts a list box region.
func (c *Context) BeginListBox(id string, width, height float32) {
	if c.currentWindow == nil {
		return
	}

	x := c.currentWindow.X + 8
	y := c.cursorY + c.rowH + 4

	if width == 0 {
		width = c.contentWidth()
	}
	if height == 0 {
		height = 200
	}

	c.painter.DrawRect(x, y, width, height, ColorInputBg)
	c.painter.DrawRectOutline(x, y, width, height, 1, ColorPanelBorder)

	c.currentListBox = &ListBoxState{X: x, Y: y, W: width, H: height}

	c.cursorX = x + 4
	c.cursorY = y + 4
	c.rowH = 24
}

// EndListBox ends a list box region.
func (c *Context) EndListBox() {
	if c.currentWindow == nil || c.currentListBox == nil {
		return
	}
	c.cursorX = c.currentWindow.X + 8
	c.cursorY = c.currentListBox.Y + c.currentListBox.H + 4
	c.rowH = 0
	c.currentListBox = nil
}

// ButtonDisabled draws a disabled button (no interaction).
func (c *Context) ButtonDisabled(id string, width float32, label string) {
	if c.currentWindow == nil {
		return
	}

	x := c.cursorX
	y := c.cursorY
	h := c.rowH
	if h == 0 {
		h = 28
	}
	if width == 0 {
		width = c.contentWidth()
	}

	c.painter.DrawRect(x, y, width, h, ColorButtonNormal.Darken(0.3))
	c.painter.DrawRectOutline(x, y, width, h, 1, ColorPanelBorder.Darken(0.3))

	textW, textH := c.painter.MeasureText(label, textScale)
	c.painter.DrawText(x+(width-textW)/2, y+(h-textH)/2, label, textScale, ColorTextDim)

	c.cursorX += width + 4
}

// Checkbox draws a checkbox and returns its new value.
func (c *Context) Checkbox(id string, label string, checked bool) bool {
	if c.currentWindow == nil {
		return checked
	}

	x := c.cursorX
	y := c.cursorY
	boxSize := float32(18)

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{x, y, boxSize, boxSize}
	hovered := rect.Contains(c.input.MouseX, c.input.MouseY)

	if hovered && c.input.MouseLeftPressed {
		c.activeWidget = fullID
		c.input.MouseLeftPressed = false
	}

	if c.activeWidget == fullID && c.input.MouseLeftReleased {
		if hovered {
			checked = !checked
		}
		c.activeWidget = ""
	}

	bgColor := ColorInputBg
	if hovered {
		bgColor = ColorButtonHover
	}
	c.painter.DrawRect(x, y, boxSize, boxSize, bgColor)
	c.painter.DrawRectOutline(x, y, boxSize, boxSize, 1, ColorPanelBorder)

	if checked {
		inner := float32(4)
		c.painter.DrawRect(x+inner, y+inner, boxSize-inner*2, boxSize-inner*2, ColorHighlight)
	}

	labelW, textH := c.painter.MeasureText(label, textScale)
	c.painter.DrawText(x+boxSize+8, y+(boxSize-textH)/2, label, textScale, ColorText)

	c.cursorX += boxSize + 8 + labelW + 8

	return checked
}

// LabelCentered draws centered text.
func (c *Context) LabelCentered(text string) {
	if c.currentWindow == nil {
		return
	}

	textW, textH := c.painter.MeasureText(text, textScale)
	x := c.currentWindow.X + 8 + (c.contentWidth()-textW)/2
	if x < c.currentWindow.X+8 {
		x = c.currentWindow.X + 8
	}

	c.painter.DrawText(x, c.cursorY, text, textScale, ColorText)
	if textH > c.rowH {
		c.rowH = textH
	}
}

// FillScreen covers the whole screen with color.
func (c *Context) FillScreen(color Color) {
	w, h := c.GetScreenSize()
	c.painter.DrawRect(0, 0, w, h, color)
}

// GetScreenSize returns the current screen dimensions.
func (c *Context) GetScreenSize() (float32, float32) {
	w, h := c.painter.GetScreenSize()
	return float32(w), float32(h)
}

// Rect is a simple rectangle struct.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

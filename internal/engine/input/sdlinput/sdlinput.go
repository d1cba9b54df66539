// Package sdlinput pumps SDL2 events into an input.System.
package sdlinput

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/sushi-raft/internal/engine/input"
	"github.com/Faultbox/sushi-raft/internal/logger"
)

var scancodes = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_ESCAPE:  input.KeyEscape,
	sdl.SCANCODE_AC_BACK: input.KeyACBack,
	sdl.SCANCODE_F8:      input.KeyF8,
	sdl.SCANCODE_F9:      input.KeyF9,
	sdl.SCANCODE_F10:     input.KeyF10,
	sdl.SCANCODE_1:       input.Key1,
	sdl.SCANCODE_SPACE:   input.KeySpace,
	sdl.SCANCODE_RETURN:  input.KeyReturn,
	sdl.SCANCODE_UP:      input.KeyUp,
	sdl.SCANCODE_DOWN:    input.KeyDown,
	sdl.SCANCODE_LEFT:    input.KeyLeft,
	sdl.SCANCODE_RIGHT:   input.KeyRight,
	sdl.SCANCODE_W:       input.KeyW,
	sdl.SCANCODE_A:       input.KeyA,
	sdl.SCANCODE_S:       input.KeyS,
	sdl.SCANCODE_D:       input.KeyD,
}

var controllerButtons = map[int]input.Key{
	int(sdl.CONTROLLER_BUTTON_A):     input.KeyGamepadA,
	int(sdl.CONTROLLER_BUTTON_B):     input.KeyGamepadB,
	int(sdl.CONTROLLER_BUTTON_START): input.KeyGamepadStart,
}

// Pump feeds SDL events to an input system.
type Pump struct {
	system      *input.System
	controllers map[int]*sdl.GameController
}

// New creates a pump for system and installs the pointer capture hook.
func New(system *input.System) *Pump {
	system.SetModeHook(func(relative bool) {
		sdl.SetRelativeMouseMode(relative)
	})
	return &Pump{
		system:      system,
		controllers: make(map[int]*sdl.GameController),
	}
}

// Update starts a new input frame and drains the SDL queue.
// Returns true if the window was asked to close.
func (p *Pump) Update() bool {
	p.system.BeginFrame()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if ev, ok := p.translate(event); ok {
			p.system.Apply(ev)
		}
	}

	return p.system.QuitRequested()
}

func (p *Pump) translate(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			return input.Event{
				Type:   input.EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return input.Event{}, false
		}
		key, ok := scancodes[e.Keysym.Scancode]
		if !ok {
			return input.Event{}, false
		}
		typ := input.EventKeyUp
		if e.Type == sdl.KEYDOWN {
			typ = input.EventKeyDown
		}
		return input.Event{Type: typ, Key: key}, true

	case *sdl.MouseMotionEvent:
		return input.Event{
			Type:   input.EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			DeltaX: int(e.XRel),
			DeltaY: int(e.YRel),
		}, true

	case *sdl.MouseButtonEvent:
		typ := input.EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			typ = input.EventMouseDown
		}
		return input.Event{
			Type:   typ,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			Button: int(e.Button) - 1,
		}, true

	case *sdl.ControllerDeviceEvent:
		p.handleDevice(e)

	case *sdl.ControllerButtonEvent:
		key, ok := controllerButtons[int(e.Button)]
		if !ok {
			return input.Event{}, false
		}
		typ := input.EventKeyUp
		if e.Type == sdl.CONTROLLERBUTTONDOWN {
			typ = input.EventKeyDown
		}
		return input.Event{Type: typ, Key: key}, true

	case *sdl.ControllerAxisEvent:
		axis := -1
		switch int(e.Axis) {
		case int(sdl.CONTROLLER_AXIS_LEFTX):
			axis = input.AxisLeftX
		case int(sdl.CONTROLLER_AXIS_LEFTY):
			axis = input.AxisLeftY
		}
		if axis < 0 {
			return input.Event{}, false
		}
		return input.Event{Type: input.EventAxis, Axis: axis, Value: float32(e.Value) / 32767}, true
	}

	return input.Event{}, false
}

func (p *Pump) handleDevice(e *sdl.ControllerDeviceEvent) {
	switch e.Type {
	case sdl.CONTROLLERDEVICEADDED:
		index := int(e.Which)
		c := sdl.GameControllerOpen(index)
		if c == nil {
			logger.Warn("failed to open game controller", zap.Int("index", index))
			return
		}
		p.controllers[index] = c
		logger.Info("game controller connected", zap.String("name", c.Name()))
	case sdl.CONTROLLERDEVICEREMOVED:
		for id, c := range p.controllers {
			if c.Joystick().InstanceID() == sdl.JoystickID(e.Which) {
				c.Close()
				delete(p.controllers, id)
			}
		}
	}
}

// Close releases open controllers.
func (p *Pump) Close() {
	for id, c := range p.controllers {
		c.Close()
		delete(p.controllers, id)
	}
}

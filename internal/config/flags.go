package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides registered on a FlagSet.
type Flags struct {
	Config     string
	Debug      bool
	Windowed   bool
	Fullscreen bool
	Width      int
	Height     int
	World      string
	Level      int
	VR         bool
	Mute       bool
}

// RegisterFlags binds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.Windowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.StringVar(&f.World, "world", "", "World definition to load")
	fs.IntVarP(&f.Level, "level", "l", -1, "Level index within the world definition")
	fs.BoolVar(&f.VR, "vr", false, "Enable the stereoscopic head-mounted display mode")
	fs.BoolVar(&f.Mute, "mute", false, "Disable audio output")
	return f
}

// apply copies set flags onto cfg.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
		cfg.Game.ShowFPS = true
	}
	if f.Windowed {
		cfg.Graphics.Fullscreen = false
	}
	if f.Fullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if f.Width > 0 {
		cfg.Graphics.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Graphics.Height = f.Height
	}
	if f.World != "" {
		cfg.Game.WorldDef = f.World
	}
	if f.Level >= 0 {
		cfg.Game.LevelIndex = f.Level
	}
	if f.VR {
		cfg.Game.VREnabled = true
	}
	if f.Mute {
		cfg.Audio.DisableOutput = true
	}
}

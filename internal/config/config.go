// Package config handles game configuration loading and management.
package config

// Config holds all game settings.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Audio       AudioConfig       `yaml:"audio"`
	Game        GameConfig        `yaml:"game"`
	Data        DataConfig        `yaml:"data"`
	Save        SaveConfig        `yaml:"save"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width" env:"WIDTH"`
	Height     int  `yaml:"height" env:"HEIGHT"`
	Fullscreen bool `yaml:"fullscreen" env:"FULLSCREEN"`
	VSync      bool `yaml:"vsync" env:"VSYNC"`
	FPSLimit   int  `yaml:"fps_limit" env:"FPS_LIMIT"`
}

// AudioConfig holds output device settings and the volumes used when no
// preferences have been saved yet.
type AudioConfig struct {
	SampleRate    int     `yaml:"sample_rate" env:"SAMPLE_RATE"`
	BufferMs      int     `yaml:"buffer_ms" env:"BUFFER_MS"`
	EffectVolume  float64 `yaml:"effect_volume" env:"EFFECT_VOLUME"`
	MusicVolume   float64 `yaml:"music_volume" env:"MUSIC_VOLUME"`
	DisableOutput bool    `yaml:"disable_output" env:"DISABLE_OUTPUT"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	WorldDef         string   `yaml:"world_def" env:"WORLD_DEF"`
	LevelIndex       int      `yaml:"level_index" env:"LEVEL_INDEX"`
	TimeLimitSeconds float64  `yaml:"time_limit_seconds" env:"TIME_LIMIT_SECONDS"`
	LapLimit         int      `yaml:"lap_limit" env:"LAP_LIMIT"`
	VREnabled        bool     `yaml:"vr_enabled" env:"VR_ENABLED"`
	Sushi            []string `yaml:"sushi"`
	ShowFPS          bool     `yaml:"show_fps" env:"SHOW_FPS"`
}

// DataConfig holds asset paths, relative to AssetsDir unless absolute.
type DataConfig struct {
	AssetsDir   string `yaml:"assets_dir" env:"ASSETS_DIR"`
	SoundBank   string `yaml:"sound_bank" env:"SOUND_BANK"`
	AboutFile   string `yaml:"about_file"`
	LicenseFile string `yaml:"license_file"`
}

// SaveConfig names the preferences record in app storage.
type SaveConfig struct {
	AppName  string `yaml:"app_name" env:"SAVE_APP_NAME"`
	FileName string `yaml:"file_name" env:"SAVE_FILE_NAME"`
}

// LeaderboardConfig holds local leaderboard and progression settings.
type LeaderboardConfig struct {
	Enabled       bool    `yaml:"enabled" env:"LEADERBOARD_ENABLED"`
	DBPath        string  `yaml:"db_path" env:"LEADERBOARD_DB"`
	LeaderboardID string  `yaml:"leaderboard_id"`
	XPPerReward   int     `yaml:"xp_per_reward"`
	BonusPercent  float64 `yaml:"bonus_percent"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" env:"LOG_LEVEL"`
	LogFile string `yaml:"log_file" env:"LOG_FILE"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Audio: AudioConfig{
			SampleRate:   44100,
			BufferMs:     50,
			EffectVolume: 1.0,
			MusicVolume:  1.0,
		},
		Game: GameConfig{
			WorldDef:         "worlds/river.yaml",
			TimeLimitSeconds: 180,
			LapLimit:         3,
			Sushi:            []string{"salmon", "tuna", "tamago", "unagi", "ebi"},
		},
		Data: DataConfig{
			AssetsDir:   "assets",
			SoundBank:   "sounds/bank.yaml",
			AboutFile:   "text/about.txt",
			LicenseFile: "text/licenses.txt",
		},
		Save: SaveConfig{
			AppName:  "sushi-raft",
			FileName: "save_data.sushisave",
		},
		Leaderboard: LeaderboardConfig{
			Enabled:       true,
			DBPath:        "~/.sushi-raft/progress.db",
			LeaderboardID: "total_score",
			XPPerReward:   100,
			BonusPercent:  10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/sushi-raft/internal/game/save"
	"github.com/Faultbox/sushi-raft/internal/game/states"
)

var flagReset bool

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or reset saved preferences",
	Long: `Print the preferences saved by the options menu: volumes, rendering
options and controls. --reset overwrites them with the defaults.

Examples:
  sushi-raft prefs
  sushi-raft prefs --reset`,
	Args: cobra.NoArgs,
	RunE: runPrefs,
}

func init() {
	prefsCmd.Flags().BoolVar(&flagReset, "reset", false, "Overwrite saved preferences with the defaults")
}

func runPrefs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := save.Open(cfg.Save.AppName, cfg.Save.FileName)
	if !store.Available() {
		return errors.New("preferences storage is unavailable on this system")
	}

	defaults := states.DefaultPreferences()
	defaults.EffectVolume = cfg.Audio.EffectVolume
	defaults.MusicVolume = cfg.Audio.MusicVolume

	out := cmd.OutOrStdout()
	if flagReset {
		if err := store.Save(defaults); err != nil {
			return fmt.Errorf("resetting preferences: %w", err)
		}
		fmt.Fprintln(out, "Preferences reset.")
		return nil
	}

	p, err := store.Load(defaults)
	switch {
	case errors.Is(err, save.ErrNoData):
		fmt.Fprintln(out, "No saved preferences; showing defaults.")
	case err != nil:
		fmt.Fprintf(out, "Saved preferences unreadable (%v); showing defaults.\n", err)
	}

	fmt.Fprintf(out, "Effect volume: %.2f\n", p.EffectVolume)
	fmt.Fprintf(out, "Music volume:  %.2f\n", p.MusicVolume)
	for i, name := range []string{"Monoscopic", "Stereoscopic"} {
		f := p.Rendering[i]
		fmt.Fprintf(out, "%s: shadows=%v phong=%v specular=%v\n", name, f.Shadows, f.Phong, f.Specular)
	}
	fmt.Fprintf(out, "Gyroscopic controls: %v\n", p.GyroscopicControls)
	return nil
}

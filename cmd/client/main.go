// Package main is the entry point for the Sushi Raft client.
//
// Usage:
//
//	sushi-raft                 - Play the game
//	sushi-raft scores          - Show the local leaderboard
//	sushi-raft prefs [--reset] - Show or reset saved preferences
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/sushi-raft/internal/config"
	"github.com/Faultbox/sushi-raft/internal/game"
	"github.com/Faultbox/sushi-raft/internal/logger"
)

var flags *config.Flags

func init() {
	flags = config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(prefsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sushi-raft",
	Short: "Sushi Raft - throw sushi to hungry patrons from a river raft",
	Long: `Sushi Raft drifts a raft along a river while you feed the patrons on
the banks. Runs end when time or laps run out.

Examples:
  sushi-raft
  sushi-raft --windowed --width 1280 --height 720
  sushi-raft --vr
  sushi-raft scores`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGame,
}

// loadConfig loads the configuration and initializes logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("logger error: %w", err)
	}
	return cfg, nil
}

func runGame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("=== Sushi Raft ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		return err
	}
	defer func() {
		if err := g.Close(); err != nil {
			logger.Warn("shutdown errors", zap.Error(err))
		}
	}()

	if err := g.Run(); err != nil {
		logger.Error("game error", zap.Error(err))
		return err
	}

	logger.Info("game closed normally")
	return nil
}

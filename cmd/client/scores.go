package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/sushi-raft/internal/game/progress"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the local leaderboard",
	Long: `Display the best finished runs recorded on this machine, along with
total XP and the sushi unlocked so far.

Examples:
  sushi-raft scores
  sushi-raft scores --limit 20`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of entries to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := progress.Open(cfg.Leaderboard.DBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	board := progress.NewLeaderboard(store)
	scores, err := board.TopScores(cfg.Leaderboard.LeaderboardID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "High Scores - %s\n\n", cfg.Leaderboard.LeaderboardID)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
	} else {
		fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	unlockables, err := progress.NewUnlockables(store, cfg.Game.Sushi, 1)
	if err != nil {
		return err
	}
	xp := progress.NewXP(store, unlockables, cfg.Leaderboard.XPPerReward, int(cfg.Leaderboard.BonusPercent))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total XP: %d\n", xp.TotalXP())
	for _, id := range unlockables.IDs() {
		mark := "locked"
		if unlockables.IsUnlocked(id) {
			mark = "unlocked"
		}
		fmt.Fprintf(out, "  %-10s %s\n", id, mark)
	}
	return nil
}

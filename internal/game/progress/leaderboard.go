package progress

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sushi-raft/internal/logger"
)

// ScoreEntry is a single leaderboard record.
type ScoreEntry struct {
	ID            int64
	LeaderboardID string
	Score         int
	CreatedAt     time.Time
}

// Leaderboard records scores in the local database. It is always logged in.
type Leaderboard struct {
	store *Store
}

// NewLeaderboard returns a leaderboard over store.
func NewLeaderboard(store *Store) *Leaderboard {
	return &Leaderboard{store: store}
}

// LoggedIn reports whether scores can be submitted.
func (l *Leaderboard) LoggedIn() bool { return l.store != nil }

// CurrentPlayerHighScore returns the best score on the board, 0 when it is
// empty. ok is false when the board cannot be read.
func (l *Leaderboard) CurrentPlayerHighScore(id string) (score int, ok bool) {
	var best sql.NullInt64
	err := l.store.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE leaderboard_id = ?", id,
	).Scan(&best)
	if err != nil {
		logger.Warn("leaderboard query failed", zap.String("id", id), zap.Error(err))
		return 0, false
	}
	return int(best.Int64), true
}

// SubmitScore records score on the board. Failures are logged.
func (l *Leaderboard) SubmitScore(id string, score int) {
	if _, err := l.store.db.Exec(
		"INSERT INTO scores (leaderboard_id, score) VALUES (?, ?)", id, score,
	); err != nil {
		logger.Warn("leaderboard submit failed",
			zap.String("id", id), zap.Int("score", score), zap.Error(err))
	}
}

// TopScores returns up to limit best scores, highest first.
func (l *Leaderboard) TopScores(id string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := l.store.db.Query(
		`SELECT id, leaderboard_id, score, created_at
		 FROM scores
		 WHERE leaderboard_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		id, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("progress: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.LeaderboardID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("progress: cannot scan row: %w", err)
		}
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("progress: row iteration error: %w", err)
	}
	return entries, nil
}

// ClearScores removes every score on the board.
func (l *Leaderboard) ClearScores(id string) error {
	if _, err := l.store.db.Exec("DELETE FROM scores WHERE leaderboard_id = ?", id); err != nil {
		return fmt.Errorf("progress: cannot clear scores: %w", err)
	}
	return nil
}

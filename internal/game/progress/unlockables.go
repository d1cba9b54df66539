package progress

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/sushi-raft/internal/logger"
)

// Unlockables tracks which of a fixed list of ids the player has earned.
// The first free ids are always available.
type Unlockables struct {
	store    *Store
	ids      []string
	free     int
	unlocked map[string]bool
	rng      *rand.Rand
}

// NewUnlockables loads the unlocked set for ids.
func NewUnlockables(store *Store, ids []string, free int) (*Unlockables, error) {
	u := &Unlockables{
		store:    store,
		ids:      slices.Clone(ids),
		free:     min(max(free, 0), len(ids)),
		unlocked: make(map[string]bool),
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	rows, err := store.db.Query("SELECT id FROM unlocked")
	if err != nil {
		return nil, fmt.Errorf("progress: cannot query unlocked: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("progress: cannot scan row: %w", err)
		}
		u.unlocked[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("progress: row iteration error: %w", err)
	}
	return u, nil
}

// SetRand replaces the random source used by UnlockRandom.
func (u *Unlockables) SetRand(r *rand.Rand) { u.rng = r }

// IDs returns every known id in order.
func (u *Unlockables) IDs() []string { return u.ids }

// IsUnlocked reports whether id may be used.
func (u *Unlockables) IsUnlocked(id string) bool {
	if i := slices.Index(u.ids, id); i >= 0 && i < u.free {
		return true
	}
	return u.unlocked[id]
}

// RemainingLocked returns how many ids are still locked.
func (u *Unlockables) RemainingLocked() int {
	n := 0
	for _, id := range u.ids {
		if !u.IsUnlocked(id) {
			n++
		}
	}
	return n
}

// UnlockRandom unlocks one locked id chosen at random.
func (u *Unlockables) UnlockRandom() (string, bool) {
	var locked []string
	for _, id := range u.ids {
		if !u.IsUnlocked(id) {
			locked = append(locked, id)
		}
	}
	if len(locked) == 0 {
		return "", false
	}
	id := locked[u.rng.IntN(len(locked))]
	if err := u.Unlock(id); err != nil {
		logger.Warn("unlock failed", zap.String("id", id), zap.Error(err))
		return "", false
	}
	return id, true
}

// Unlock marks id as earned.
func (u *Unlockables) Unlock(id string) error {
	if _, err := u.store.db.Exec(
		"INSERT OR IGNORE INTO unlocked (id) VALUES (?)", id,
	); err != nil {
		return fmt.Errorf("progress: cannot unlock %s: %w", id, err)
	}
	u.unlocked[id] = true
	logger.Info("unlocked", zap.String("id", id))
	return nil
}

// LockAll forgets every earned id.
func (u *Unlockables) LockAll() error {
	if _, err := u.store.db.Exec("DELETE FROM unlocked"); err != nil {
		return fmt.Errorf("progress: cannot reset unlocks: %w", err)
	}
	clear(u.unlocked)
	return nil
}

// NextLocked returns the first locked id, or ErrNoLocked.
func (u *Unlockables) NextLocked() (string, error) {
	for _, id := range u.ids {
		if !u.IsUnlocked(id) {
			return id, nil
		}
	}
	return "", ErrNoLocked
}

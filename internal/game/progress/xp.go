package progress

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/sushi-raft/internal/logger"
)

const totalXPCounter = "total_xp"

// XP accumulates experience and hands out a reward every PerReward points.
type XP struct {
	store        *Store
	unlockables  *Unlockables
	perReward    int
	bonusPercent int
	total        int
}

// NewXP loads the stored total. Rewards are only granted while unlockables
// still has locked entries.
func NewXP(store *Store, unlockables *Unlockables, perReward, bonusPercent int) *XP {
	if perReward <= 0 {
		perReward = 100
	}
	x := &XP{
		store:        store,
		unlockables:  unlockables,
		perReward:    perReward,
		bonusPercent: bonusPercent,
	}
	total, err := store.counter(totalXPCounter)
	if err != nil {
		logger.Warn("xp load failed", zap.Error(err))
	}
	x.total = total
	return x
}

// ApplyBonuses converts a score to XP, adding the bonus percentage when
// bonus is set.
func (x *XP) ApplyBonuses(score int, bonus bool) int {
	if !bonus || x.bonusPercent == 0 {
		return score
	}
	return int(math.Round(float64(score) * (1 + float64(x.bonusPercent)/100)))
}

// GrantXP adds xp to the total and reports whether a reward threshold was
// crossed while locked unlockables remain.
func (x *XP) GrantXP(xp int) bool {
	if xp <= 0 {
		return false
	}
	before := x.total
	x.total += xp
	if err := x.store.setCounter(totalXPCounter, x.total); err != nil {
		logger.Warn("xp save failed", zap.Error(err))
	}
	if x.unlockables != nil && x.unlockables.RemainingLocked() == 0 {
		return false
	}
	return x.total/x.perReward > before/x.perReward
}

// XPUntilReward returns the points still needed for the next reward.
func (x *XP) XPUntilReward() int {
	return x.perReward - x.total%x.perReward
}

// TotalXP returns every point ever earned.
func (x *XP) TotalXP() int { return x.total }

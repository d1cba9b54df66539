package progress

// NullLeaderboard is never logged in.
type NullLeaderboard struct{}

func (NullLeaderboard) LoggedIn() bool                            { return false }
func (NullLeaderboard) CurrentPlayerHighScore(string) (int, bool) { return 0, false }
func (NullLeaderboard) SubmitScore(string, int)                   {}

// NullUnlockables treats everything as unlocked.
type NullUnlockables struct{}

func (NullUnlockables) UnlockRandom() (string, bool) { return "", false }
func (NullUnlockables) IsUnlocked(string) bool       { return true }
func (NullUnlockables) RemainingLocked() int         { return 0 }
func (NullUnlockables) LockAll() error               { return nil }

// NullXP grants nothing.
type NullXP struct{}

func (NullXP) ApplyBonuses(score int, _ bool) int { return score }
func (NullXP) GrantXP(int) bool                   { return false }
func (NullXP) XPUntilReward() int                 { return 0 }
func (NullXP) TotalXP() int                       { return 0 }

package progress

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "progress.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "progress.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	s, err := Open("~/.sushi-raft/progress.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()
	if _, err := os.Stat(filepath.Join(home, ".sushi-raft", "progress.db")); err != nil {
		t.Errorf("expected database under home, got %v", err)
	}
}

func TestLeaderboard(t *testing.T) {
	lb := NewLeaderboard(openTestStore(t))
	if !lb.LoggedIn() {
		t.Fatal("expected local leaderboard to be logged in")
	}
	if best, ok := lb.CurrentPlayerHighScore("total_score"); !ok || best != 0 {
		t.Errorf("expected 0 on empty board, got %d (ok=%v)", best, ok)
	}

	for _, score := range []int{40, 120, 75} {
		lb.SubmitScore("total_score", score)
	}
	lb.SubmitScore("other", 999)

	best, ok := lb.CurrentPlayerHighScore("total_score")
	if !ok || best != 120 {
		t.Errorf("expected high score 120, got %d (ok=%v)", best, ok)
	}

	top, err := lb.TopScores("total_score", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].Score != 120 || top[1].Score != 75 {
		t.Errorf("expected [120 75], got [%d %d]", top[0].Score, top[1].Score)
	}

	if err := lb.ClearScores("total_score"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if best, _ := lb.CurrentPlayerHighScore("total_score"); best != 0 {
		t.Errorf("expected board cleared, got %d", best)
	}
	if best, _ := lb.CurrentPlayerHighScore("other"); best != 999 {
		t.Errorf("expected other board untouched, got %d", best)
	}
}

func TestUnlockables(t *testing.T) {
	s := openTestStore(t)
	u, err := NewUnlockables(s, []string{"salmon", "tuna", "eel"}, 1)
	if err != nil {
		t.Fatalf("NewUnlockables() failed: %v", err)
	}
	u.SetRand(rand.New(rand.NewPCG(1, 2)))

	if !u.IsUnlocked("salmon") {
		t.Error("expected free sushi unlocked")
	}
	if u.RemainingLocked() != 2 {
		t.Errorf("expected 2 locked, got %d", u.RemainingLocked())
	}

	first, ok := u.UnlockRandom()
	if !ok || first == "salmon" {
		t.Errorf("expected a locked sushi, got %q (ok=%v)", first, ok)
	}
	second, ok := u.UnlockRandom()
	if !ok || second == first {
		t.Errorf("expected a different sushi, got %q", second)
	}
	if _, ok := u.UnlockRandom(); ok {
		t.Error("expected nothing left to unlock")
	}
	if _, err := u.NextLocked(); !errors.Is(err, ErrNoLocked) {
		t.Errorf("expected ErrNoLocked, got %v", err)
	}

	reloaded, err := NewUnlockables(s, []string{"salmon", "tuna", "eel"}, 1)
	if err != nil {
		t.Fatalf("NewUnlockables() failed: %v", err)
	}
	if reloaded.RemainingLocked() != 0 {
		t.Errorf("expected unlocks persisted, got %d locked", reloaded.RemainingLocked())
	}

	if err := reloaded.LockAll(); err != nil {
		t.Fatalf("LockAll() failed: %v", err)
	}
	if reloaded.RemainingLocked() != 2 {
		t.Errorf("expected 2 locked after reset, got %d", reloaded.RemainingLocked())
	}
	next, err := reloaded.NextLocked()
	if err != nil || next != "tuna" {
		t.Errorf("expected tuna, got %q (%v)", next, err)
	}
}

func TestApplyBonuses(t *testing.T) {
	s := openTestStore(t)
	x := NewXP(s, nil, 100, 10)

	tests := []struct {
		score int
		bonus bool
		want  int
	}{
		{100, true, 110},
		{100, false, 100},
		{5, true, 6},
		{0, true, 0},
	}
	for _, tt := range tests {
		if got := x.ApplyBonuses(tt.score, tt.bonus); got != tt.want {
			t.Errorf("ApplyBonuses(%d, %v): expected %d, got %d", tt.score, tt.bonus, tt.want, got)
		}
	}
}

func TestGrantXP(t *testing.T) {
	s := openTestStore(t)
	u, err := NewUnlockables(s, []string{"salmon", "tuna"}, 1)
	if err != nil {
		t.Fatalf("NewUnlockables() failed: %v", err)
	}
	x := NewXP(s, u, 100, 0)

	if x.GrantXP(60) {
		t.Error("expected no reward at 60")
	}
	if x.XPUntilReward() != 40 {
		t.Errorf("expected 40 until reward, got %d", x.XPUntilReward())
	}
	if !x.GrantXP(50) {
		t.Error("expected reward crossing 100")
	}
	if x.GrantXP(0) {
		t.Error("expected no reward for zero xp")
	}

	if _, ok := u.UnlockRandom(); !ok {
		t.Fatal("expected unlock")
	}
	if x.GrantXP(200) {
		t.Error("expected no reward with nothing left to unlock")
	}

	reloaded := NewXP(s, u, 100, 0)
	if reloaded.TotalXP() != 310 {
		t.Errorf("expected total 310 persisted, got %d", reloaded.TotalXP())
	}
}

func TestNullServices(t *testing.T) {
	var lb NullLeaderboard
	if lb.LoggedIn() {
		t.Error("expected null leaderboard logged out")
	}
	var u NullUnlockables
	if _, ok := u.UnlockRandom(); ok {
		t.Error("expected null unlockables to unlock nothing")
	}
	if !u.IsUnlocked("anything") {
		t.Error("expected null unlockables to allow everything")
	}
	var x NullXP
	if x.ApplyBonuses(42, true) != 42 || x.GrantXP(1000) {
		t.Error("expected null xp to be inert")
	}
}

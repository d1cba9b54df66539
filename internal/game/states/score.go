package states

import "math"

// Score weights.
const (
	scorePatronsFedFactor   = 1
	scoreLapsFinishedFactor = 15
	scoreAccuracyFactor     = 50
)

// ScoreSummary is the result of the last run, shown on the score review
// page.
type ScoreSummary struct {
	PatronsFed   int
	SushiThrown  int
	LapsFinished int
	Accuracy     float64
	TotalScore   int

	EarnedXP         int
	EarnedUnlockable string
	DidEarnUnlock    bool
}

// NewScoreSummary scores a run.
func NewScoreSummary(patronsFed, sushiThrown, lapsFinished int) ScoreSummary {
	s := ScoreSummary{
		PatronsFed:   patronsFed,
		SushiThrown:  sushiThrown,
		LapsFinished: lapsFinished,
	}
	if sushiThrown > 0 {
		s.Accuracy = float64(patronsFed) / float64(sushiThrown)
	}
	s.TotalScore = int(math.Round(scorePatronsFedFactor*float64(patronsFed))) +
		int(math.Round(scoreLapsFinishedFactor*float64(lapsFinished))) +
		int(math.Round(scoreAccuracyFactor*s.Accuracy))
	return s
}

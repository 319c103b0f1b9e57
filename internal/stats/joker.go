package stats

import (
	"math"

	"crosswords-analytics/internal/table"
)

// JokerUsage summarizes how the joker assist was used on a grid and how it
// correlates with scores. The per-subset averages and summaries are nil when
// the matching subset is empty.
type JokerUsage struct {
	TotalUsed                int      `json:"totalUsed"`
	UsageRate                float64  `json:"usageRate"`
	AverageScoreWithJoker    *float64 `json:"averageScoreWithJoker"`
	AverageScoreWithoutJoker *float64 `json:"averageScoreWithoutJoker"`
	ScoresWithJoker          *Summary `json:"scoresWithJoker"`
	ScoresWithoutJoker       *Summary `json:"scoresWithoutJoker"`
}

// SplitByJoker partitions t into the joker-assisted and unassisted subsets.
// The predicates are each other's negation, so the subsets are disjoint and
// together cover the whole table.
func SplitByJoker(t *table.SubmissionTable) (with, without *table.SubmissionTable) {
	with = t.Filter(func(r table.Row) bool { return r.JokerUsed })
	without = t.Filter(func(r table.Row) bool { return !r.JokerUsed })
	return with, without
}

// AnalyzeJoker computes joker usage over t. A zero-row table yields zero
// counts and nil averages.
func AnalyzeJoker(t *table.SubmissionTable) JokerUsage {
	with, without := SplitByJoker(t)

	u := JokerUsage{TotalUsed: with.Len()}
	if t.Len() > 0 {
		u.UsageRate = float64(with.Len()) / float64(t.Len()) * 100
	}
	u.AverageScoreWithJoker = Mean(with.Scores())
	u.AverageScoreWithoutJoker = Mean(without.Scores())
	u.ScoresWithJoker = Describe(with.Scores(), ScorePercentiles)
	u.ScoresWithoutJoker = Describe(without.Scores(), ScorePercentiles)
	return u
}

// CompletionRate returns the percentage of submissions that completed the
// grid. A table with no rows has a completion rate of 0, not an undefined
// rate.
func CompletionRate(t *table.SubmissionTable) float64 {
	if t.Len() == 0 {
		return 0
	}
	completed := 0
	for _, r := range t.Rows() {
		if r.Completed() {
			completed++
		}
	}
	rate := float64(completed) / float64(t.Len()) * 100
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0
	}
	return rate
}

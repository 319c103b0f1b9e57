package stats

import (
	"sort"
	"time"

	"crosswords-analytics/internal/table"
)

const (
	DefaultLeaderboardLimit = 100
	MaxLeaderboardLimit     = 1000
)

// PseudoPlaceholder annotates leaderboard entries whose user display name
// could not be resolved; an unresolved name never drops the entry.
const PseudoPlaceholder = "anonymous"

// LeaderboardEntry is one ranked row of a grid leaderboard. Rank starts at 1.
type LeaderboardEntry struct {
	Rank           int       `json:"rank"`
	Pseudo         string    `json:"pseudo"`
	FinalScore     float64   `json:"finalScore"`
	CompletionTime int       `json:"completionTime"`
	WordsFound     int       `json:"wordsFound"`
	TotalWords     int       `json:"totalWords"`
	IsCompleted    bool      `json:"isCompleted"`
	JokerUsed      bool      `json:"jokerUsed"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

// RankLeaderboard orders the table's submissions by score descending, then
// completion time ascending (faster wins among equal scores), then submission
// id for a deterministic order under identical score and time, and returns the
// first limit entries with 1-based ranks. Rows without a recorded score cannot
// be ranked and are skipped. limit outside (0, MaxLeaderboardLimit] falls back
// to the default/cap.
func RankLeaderboard(t *table.SubmissionTable, limit int) []LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	ranked := make([]table.Row, 0, t.Len())
	for _, r := range t.Rows() {
		if r.Score != nil {
			ranked = append(ranked, r)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if *a.Score != *b.Score {
			return *a.Score > *b.Score
		}
		at, bt := rankTime(a), rankTime(b)
		if at != bt {
			return at < bt
		}
		return a.ID < b.ID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	entries := make([]LeaderboardEntry, len(ranked))
	for i, r := range ranked {
		pseudo := r.Pseudo
		if pseudo == "" {
			pseudo = PseudoPlaceholder
		}
		completionTime := 0
		if r.CompletionTime != nil {
			completionTime = *r.CompletionTime
		}
		entries[i] = LeaderboardEntry{
			Rank:           i + 1,
			Pseudo:         pseudo,
			FinalScore:     *r.Score,
			CompletionTime: completionTime,
			WordsFound:     r.WordsFound,
			TotalWords:     r.TotalWords,
			IsCompleted:    r.Completed(),
			JokerUsed:      r.JokerUsed,
			SubmittedAt:    r.SubmittedAt,
		}
	}
	return entries
}

// rankTime treats a missing completion time as slower than any recorded one.
func rankTime(r table.Row) int {
	if r.CompletionTime == nil {
		return int(^uint(0) >> 1)
	}
	return *r.CompletionTime
}

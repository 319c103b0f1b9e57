package domain

import (
	"regexp"
	"strconv"
	"time"
)

// Submission is one completed attempt at a grid by one user, as read from the
// platform database. The platform enforces at most one submission per
// (user, grid) pair. Numeric fields that can be absent in older rows are
// pointers; nil means "not recorded" and is excluded from statistics.
type Submission struct {
	ID                    string
	UserID                string
	GridID                int
	Pseudo                string
	FinalScore            *float64
	CompletionTimeSeconds *int
	WordsFound            int
	TotalWords            int
	JokerUsed             bool
	SubmittedAt           time.Time
}

type User struct {
	ID        string
	Pseudo    string
	CreatedAt time.Time
}

type Grid struct {
	ID          int
	Version     string
	Rows        int
	Cols        int
	PublishedAt *time.Time
	CreatedAt   time.Time
}

// Published reports whether the grid has been released to players.
func (g *Grid) Published() bool {
	return g.PublishedAt != nil
}

var gridNumberRe = regexp.MustCompile(`-grid-(\d+)`)

// GridNumber extracts the grid number from a version string like
// "1-grid-13.0". Returns nil when the version does not carry one.
func GridNumber(version string) *int {
	m := gridNumberRe.FindStringSubmatch(version)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

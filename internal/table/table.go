// Package table holds the in-memory working set every calculator operates on.
// A SubmissionTable is built once per computation from raw repository rows and
// discarded afterwards; it is never persisted.
package table

import (
	"time"

	"crosswords-analytics/internal/domain"
)

// Row is one normalized submission. Score and CompletionTime stay nullable:
// nil values are excluded from numeric statistics rather than coerced to zero.
type Row struct {
	ID             string
	Pseudo         string
	Score          *float64
	CompletionTime *int
	WordsFound     int
	TotalWords     int
	JokerUsed      bool
	SubmittedAt    time.Time
}

// Completed reports whether the player found every word of the grid.
func (r Row) Completed() bool {
	return r.TotalWords > 0 && r.WordsFound == r.TotalWords
}

// SubmissionTable is an ordered, immutable collection of rows scoped to one
// grid (or to the whole platform). A zero-row table is valid input for every
// calculator.
type SubmissionTable struct {
	rows []Row
}

// New normalizes raw submissions into a table. Never fails: an empty or nil
// input yields an empty table.
func New(subs []domain.Submission) *SubmissionTable {
	rows := make([]Row, 0, len(subs))
	for _, s := range subs {
		rows = append(rows, Row{
			ID:             s.ID,
			Pseudo:         s.Pseudo,
			Score:          s.FinalScore,
			CompletionTime: s.CompletionTimeSeconds,
			WordsFound:     s.WordsFound,
			TotalWords:     s.TotalWords,
			JokerUsed:      s.JokerUsed,
			SubmittedAt:    s.SubmittedAt,
		})
	}
	return &SubmissionTable{rows: rows}
}

// FromRows builds a table directly from normalized rows.
func FromRows(rows []Row) *SubmissionTable {
	return &SubmissionTable{rows: rows}
}

func (t *SubmissionTable) Len() int {
	return len(t.rows)
}

// Rows returns the underlying rows in submission order. Callers must not
// mutate the returned slice.
func (t *SubmissionTable) Rows() []Row {
	return t.rows
}

// Scores returns the defined score values in row order.
func (t *SubmissionTable) Scores() []float64 {
	out := make([]float64, 0, len(t.rows))
	for _, r := range t.rows {
		if r.Score != nil {
			out = append(out, *r.Score)
		}
	}
	return out
}

// CompletionTimes returns the defined completion times, in seconds, in row
// order.
func (t *SubmissionTable) CompletionTimes() []float64 {
	out := make([]float64, 0, len(t.rows))
	for _, r := range t.rows {
		if r.CompletionTime != nil {
			out = append(out, float64(*r.CompletionTime))
		}
	}
	return out
}

// SubmittedAt returns every submission timestamp in row order.
func (t *SubmissionTable) SubmittedAt() []time.Time {
	out := make([]time.Time, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, r.SubmittedAt)
	}
	return out
}

// Filter returns a new table holding the rows matching pred, preserving order.
func (t *SubmissionTable) Filter(pred func(Row) bool) *SubmissionTable {
	var rows []Row
	for _, r := range t.rows {
		if pred(r) {
			rows = append(rows, r)
		}
	}
	return &SubmissionTable{rows: rows}
}

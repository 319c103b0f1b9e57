package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswords-analytics/internal/domain"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestNewEmptyInput(t *testing.T) {
	assert.Equal(t, 0, New(nil).Len())
	assert.Equal(t, 0, New([]domain.Submission{}).Len())
}

func TestNewPreservesOrderAndNulls(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	subs := []domain.Submission{
		{ID: "a", Pseudo: "alice", FinalScore: fptr(120), CompletionTimeSeconds: iptr(300), WordsFound: 9, TotalWords: 10, SubmittedAt: base},
		{ID: "b", Pseudo: "bob", FinalScore: nil, CompletionTimeSeconds: nil, WordsFound: 10, TotalWords: 10, JokerUsed: true, SubmittedAt: base.Add(time.Hour)},
	}

	tbl := New(subs)
	require.Equal(t, 2, tbl.Len())

	rows := tbl.Rows()
	assert.Equal(t, "a", rows[0].ID)
	assert.Equal(t, "b", rows[1].ID)
	assert.Nil(t, rows[1].Score)
	assert.Nil(t, rows[1].CompletionTime)
	assert.True(t, rows[1].JokerUsed)
}

func TestScoresExcludeMissingValues(t *testing.T) {
	tbl := New([]domain.Submission{
		{ID: "a", FinalScore: fptr(10)},
		{ID: "b"},
		{ID: "c", FinalScore: fptr(30)},
	})

	assert.Equal(t, []float64{10, 30}, tbl.Scores())
}

func TestCompletionTimesExcludeMissingValues(t *testing.T) {
	tbl := New([]domain.Submission{
		{ID: "a", CompletionTimeSeconds: iptr(60)},
		{ID: "b"},
	})

	assert.Equal(t, []float64{60}, tbl.CompletionTimes())
}

func TestCompleted(t *testing.T) {
	assert.True(t, Row{WordsFound: 10, TotalWords: 10}.Completed())
	assert.False(t, Row{WordsFound: 9, TotalWords: 10}.Completed())
	// A grid reporting zero words can never count as completed.
	assert.False(t, Row{WordsFound: 0, TotalWords: 0}.Completed())
}

func TestFilter(t *testing.T) {
	tbl := New([]domain.Submission{
		{ID: "a", JokerUsed: true},
		{ID: "b"},
		{ID: "c", JokerUsed: true},
	})

	jokers := tbl.Filter(func(r Row) bool { return r.JokerUsed })
	require.Equal(t, 2, jokers.Len())
	assert.Equal(t, "a", jokers.Rows()[0].ID)
	assert.Equal(t, "c", jokers.Rows()[1].ID)

	// The source table is untouched.
	assert.Equal(t, 3, tbl.Len())
}

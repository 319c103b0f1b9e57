package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswords-analytics/internal/table"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func jokerTable() *table.SubmissionTable {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return table.FromRows([]table.Row{
		{ID: "a", Score: fptr(100), JokerUsed: false, WordsFound: 10, TotalWords: 10, SubmittedAt: base},
		{ID: "b", Score: fptr(200), JokerUsed: true, WordsFound: 8, TotalWords: 10, SubmittedAt: base},
		{ID: "c", Score: fptr(100), JokerUsed: true, WordsFound: 10, TotalWords: 10, SubmittedAt: base},
	})
}

func TestSplitByJokerIsAPartition(t *testing.T) {
	tbl := jokerTable()
	with, without := SplitByJoker(tbl)

	assert.Equal(t, tbl.Len(), with.Len()+without.Len())
	for _, r := range with.Rows() {
		assert.True(t, r.JokerUsed)
	}
	for _, r := range without.Rows() {
		assert.False(t, r.JokerUsed)
	}
}

func TestAnalyzeJokerMeans(t *testing.T) {
	u := AnalyzeJoker(jokerTable())

	assert.Equal(t, 2, u.TotalUsed)
	assert.InDelta(t, 66.67, u.UsageRate, 0.01)
	require.NotNil(t, u.AverageScoreWithJoker)
	require.NotNil(t, u.AverageScoreWithoutJoker)
	assert.Equal(t, 150.0, *u.AverageScoreWithJoker)
	assert.Equal(t, 100.0, *u.AverageScoreWithoutJoker)

	require.NotNil(t, u.ScoresWithJoker)
	assert.Equal(t, 100.0, u.ScoresWithJoker.Min)
	assert.Equal(t, 200.0, u.ScoresWithJoker.Max)
	require.NotNil(t, u.ScoresWithoutJoker)
	assert.Equal(t, 100.0, u.ScoresWithoutJoker.Mean)
}

func TestAnalyzeJokerEmptyTable(t *testing.T) {
	u := AnalyzeJoker(table.FromRows(nil))

	assert.Equal(t, 0, u.TotalUsed)
	assert.Equal(t, 0.0, u.UsageRate)
	assert.Nil(t, u.AverageScoreWithJoker)
	assert.Nil(t, u.AverageScoreWithoutJoker)
	assert.Nil(t, u.ScoresWithJoker)
	assert.Nil(t, u.ScoresWithoutJoker)
}

func TestAnalyzeJokerEmptySubset(t *testing.T) {
	tbl := table.FromRows([]table.Row{
		{ID: "a", Score: fptr(80), JokerUsed: true},
	})
	u := AnalyzeJoker(tbl)

	require.NotNil(t, u.AverageScoreWithJoker)
	assert.Equal(t, 80.0, *u.AverageScoreWithJoker)
	assert.Nil(t, u.AverageScoreWithoutJoker)
	assert.Nil(t, u.ScoresWithoutJoker)
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0.0, CompletionRate(table.FromRows(nil)))

	tbl := jokerTable() // two of three completed
	assert.InDelta(t, 66.67, CompletionRate(tbl), 0.01)
}

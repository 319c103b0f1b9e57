package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogramFiveEqualBins(t *testing.T) {
	d := Histogram([]float64{10, 20, 30, 40, 50}, 5)

	require.Len(t, d.Bins, 5)
	for i, b := range d.Bins {
		assert.InDelta(t, 10.0+8.0*float64(i), b.Start, 1e-9)
		assert.InDelta(t, 18.0+8.0*float64(i), b.End, 1e-9)
		assert.Equal(t, 1, b.Count, "bin %d", i)
	}
	// The last bin is right-closed: the maximum lands in it.
	assert.Equal(t, 50.0, d.Bins[4].End)
	require.NotNil(t, d.Mean)
	assert.Equal(t, 30.0, *d.Mean)
}

func TestHistogramEmpty(t *testing.T) {
	d := Histogram(nil, 10)

	assert.NotNil(t, d.Bins)
	assert.Empty(t, d.Bins)
	assert.Nil(t, d.Min)
	assert.Nil(t, d.Max)
	assert.Nil(t, d.Mean)
}

func TestHistogramAllValuesIdentical(t *testing.T) {
	d := Histogram([]float64{7, 7, 7, 7}, 10)

	require.Len(t, d.Bins, 1)
	assert.Equal(t, 7.0, d.Bins[0].Start)
	assert.Equal(t, 7.0, d.Bins[0].End)
	assert.Equal(t, 4, d.Bins[0].Count)
}

func TestHistogramCountsSumToN(t *testing.T) {
	values := []float64{1, 2.5, 3.7, 4, 8, 8, 9.9, 15, 15, 15, 22.1}
	d := Histogram(values, 7)

	sum := 0
	for _, b := range d.Bins {
		sum += b.Count
	}
	assert.Equal(t, len(values), sum)
}

func TestHistogramBinsContiguousAndAscending(t *testing.T) {
	d := Histogram([]float64{3, 9, 12, 27, 31}, 4)

	require.Len(t, d.Bins, 4)
	for i := 1; i < len(d.Bins); i++ {
		assert.Equal(t, d.Bins[i-1].End, d.Bins[i].Start)
		assert.Less(t, d.Bins[i].Start, d.Bins[i].End)
	}
}

func TestHistogramInvalidBinCountFallsBack(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

	assert.Len(t, Histogram(values, 0).Bins, DefaultBins)
	assert.Len(t, Histogram(values, -3).Bins, DefaultBins)
	assert.Len(t, Histogram(values, MaxBins+1).Bins, DefaultBins)
}

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeEmpty(t *testing.T) {
	assert.Nil(t, Describe(nil, ScorePercentiles))
	assert.Nil(t, Describe([]float64{}, ScorePercentiles))
}

func TestDescribeSingleValue(t *testing.T) {
	s := Describe([]float64{42}, TimePercentiles)
	require.NotNil(t, s)

	assert.Equal(t, 42.0, s.Min)
	assert.Equal(t, 42.0, s.Max)
	assert.Equal(t, 42.0, s.Mean)
	assert.Equal(t, 42.0, s.Median)
	assert.Equal(t, 0.0, s.Std)
	assert.Equal(t, 42.0, s.Percentiles["p50"])
}

func TestDescribeBasic(t *testing.T) {
	s := Describe([]float64{10, 20, 30, 40, 50}, []float64{25, 50, 75})
	require.NotNil(t, s)

	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 50.0, s.Max)
	assert.Equal(t, 30.0, s.Mean)
	assert.Equal(t, 30.0, s.Median)
	assert.Equal(t, 20.0, s.Percentiles["p25"])
	assert.Equal(t, 40.0, s.Percentiles["p75"])
}

func TestDescribeMedianInterpolatesEvenN(t *testing.T) {
	s := Describe([]float64{1, 2, 3, 4}, []float64{25})
	require.NotNil(t, s)

	assert.Equal(t, 2.5, s.Median)
	// rank 0.75 between the first two values
	assert.InDelta(t, 1.75, s.Percentiles["p25"], 1e-9)
}

func TestDescribeUnsortedInput(t *testing.T) {
	s := Describe([]float64{50, 10, 40, 20, 30}, nil)
	require.NotNil(t, s)

	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 50.0, s.Max)
	assert.Equal(t, 30.0, s.Median)
}

func TestDescribeOrderingProperty(t *testing.T) {
	values := []float64{3, 141, 59, 26, 53, 58, 97, 9, 32, 38}
	s := Describe(values, []float64{25, 75})
	require.NotNil(t, s)

	assert.LessOrEqual(t, s.Min, s.Percentiles["p25"])
	assert.LessOrEqual(t, s.Percentiles["p25"], s.Median)
	assert.LessOrEqual(t, s.Median, s.Percentiles["p75"])
	assert.LessOrEqual(t, s.Percentiles["p75"], s.Max)
}

func TestQuantileBounds(t *testing.T) {
	values := []float64{5, 10, 15}

	lo := Quantile(values, 0)
	hi := Quantile(values, 100)
	require.NotNil(t, lo)
	require.NotNil(t, hi)
	assert.Equal(t, 5.0, *lo)
	assert.Equal(t, 15.0, *hi)

	assert.Nil(t, Quantile(nil, 50))
}

func TestMean(t *testing.T) {
	assert.Nil(t, Mean(nil))

	m := Mean([]float64{2, 4, 6})
	require.NotNil(t, m)
	assert.Equal(t, 4.0, *m)
}

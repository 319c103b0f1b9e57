// Package stats implements the aggregation calculators: descriptive summaries,
// joker analysis, histogram binning, leaderboard ranking and temporal
// bucketing. Every calculator is a pure function over an in-memory table and
// accepts degenerate input (zero rows, all-equal values) without failing.
package stats

import (
	"fmt"
	"math"
	"sort"
)

// Percentile sets used by the grid statistics endpoint. They match what the
// platform has always reported, so cached results stay comparable across
// deployments.
var (
	ScorePercentiles = []float64{1, 5, 10, 25, 50, 75, 90, 95, 99}
	TimePercentiles  = []float64{25, 50, 75}
)

// Summary describes one numeric column. A nil *Summary means the column had no
// defined values; callers serialize that as null, never as zeros or NaN.
type Summary struct {
	Min         float64            `json:"min"`
	Max         float64            `json:"max"`
	Mean        float64            `json:"mean"`
	Median      float64            `json:"median"`
	Std         float64            `json:"std"`
	Percentiles map[string]float64 `json:"percentiles,omitempty"`
}

// Describe computes min/max/mean/median/std and the requested percentiles over
// values. Returns nil when values is empty or any result would be non-finite.
func Describe(values []float64, percentiles []float64) *Summary {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	// Sample standard deviation; 0 for a single value rather than undefined.
	var std float64
	if len(sorted) > 1 {
		var sq float64
		for _, v := range sorted {
			d := v - mean
			sq += d * d
		}
		std = math.Sqrt(sq / float64(len(sorted)-1))
	}

	s := &Summary{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   mean,
		Median: quantileSorted(sorted, 50),
		Std:    std,
	}
	if len(percentiles) > 0 {
		s.Percentiles = make(map[string]float64, len(percentiles))
		for _, p := range percentiles {
			s.Percentiles[percentileKey(p)] = quantileSorted(sorted, p)
		}
	}

	if !s.finite() {
		return nil
	}
	return s
}

func (s *Summary) finite() bool {
	for _, v := range []float64{s.Min, s.Max, s.Mean, s.Median, s.Std} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	for _, v := range s.Percentiles {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Mean returns the arithmetic mean of values, or nil for empty input.
func Mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return nil
	}
	return &m
}

// Quantile returns the p-th percentile (0-100) of values using linear
// interpolation between adjacent ranks, the rule conventional statistical
// packages use. Returns nil for empty input.
func Quantile(values []float64, p float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	q := quantileSorted(sorted, p)
	return &q
}

// quantileSorted assumes sorted is non-empty and ascending.
func quantileSorted(sorted []float64, p float64) float64 {
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func percentileKey(p float64) string {
	if p == math.Trunc(p) {
		return fmt.Sprintf("p%d", int(p))
	}
	return fmt.Sprintf("p%g", p)
}

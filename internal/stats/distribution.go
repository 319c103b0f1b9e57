package stats

const (
	DefaultBins = 10
	MaxBins     = 100
)

// Bin is one histogram bucket. The interval is half-open [Start, End) except
// for the last bin of a distribution, which is closed so the global maximum
// lands in it.
type Bin struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Count int     `json:"count"`
}

// Distribution is an ordered histogram over one numeric column. Bins is empty
// (not nil) for an empty column, which callers must treat differently from the
// single-bin degenerate case where every value is identical.
type Distribution struct {
	Bins []Bin    `json:"bins"`
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Mean *float64 `json:"mean,omitempty"`
}

// Histogram partitions values into numBins equal-width bins over the observed
// [min, max] range. numBins outside [1, MaxBins] falls back to DefaultBins.
// Bin counts always sum to len(values).
func Histogram(values []float64, numBins int) Distribution {
	if numBins < 1 || numBins > MaxBins {
		numBins = DefaultBins
	}

	if len(values) == 0 {
		return Distribution{Bins: []Bin{}}
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := Mean(values)

	// All values identical: a single bin spanning the (zero-width) observed
	// range holds everything.
	if min == max {
		return Distribution{
			Bins: []Bin{{Start: min, End: max, Count: len(values)}},
			Min:  &min, Max: &max, Mean: mean,
		}
	}

	width := (max - min) / float64(numBins)
	bins := make([]Bin, numBins)
	for i := range bins {
		bins[i].Start = min + float64(i)*width
		bins[i].End = min + float64(i+1)*width
	}
	bins[numBins-1].End = max

	for _, v := range values {
		idx := int((v - min) / width)
		// Values equal to the maximum belong to the last (right-closed) bin;
		// float rounding can also push an index one past the end.
		if idx >= numBins {
			idx = numBins - 1
		}
		bins[idx].Count++
	}

	return Distribution{Bins: bins, Min: &min, Max: &max, Mean: mean}
}

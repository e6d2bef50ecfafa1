package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram is a set of bin edges with the count of values falling in each
// bin. Edges has one more entry than Counts.
type Histogram struct {
	Edges  []float64
	Counts []int
}

// NewHistogram bins values into n uniform bins between lo and hi. Values
// outside the range clamp into the end bins.
func NewHistogram(values []float64, n int, lo, hi float64) Histogram {
	if n < 1 {
		n = 1
	}
	h := Histogram{
		Edges:  floats.Span(make([]float64, n+1), lo, hi),
		Counts: make([]int, n),
	}
	if hi <= lo {
		h.Counts[0] = len(values)
		return h
	}
	width := (hi - lo) / float64(n)
	for _, v := range values {
		b := int((v - lo) / width)
		if b < 0 {
			b = 0
		}
		if b >= n {
			b = n - 1
		}
		h.Counts[b]++
	}
	return h
}

// FreedmanDiaconisBins returns the bin count suggested by the
// Freedman-Diaconis rule, 2*IQR*n^(-1/3) bin width. Degenerate inputs fall
// back to a single bin.
func FreedmanDiaconisBins(values []float64) int {
	n := len(values)
	if n < 2 {
		return 1
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[n-1]
	iqr := stat.Quantile(0.75, stat.Empirical, sorted, nil) -
		stat.Quantile(0.25, stat.Empirical, sorted, nil)
	width := 2 * iqr * math.Pow(float64(n), -1.0/3.0)
	if width <= 0 || hi <= lo {
		return 1
	}
	bins := int(math.Ceil((hi - lo) / width))
	if bins < 1 {
		bins = 1
	}
	return bins
}

// ArgsortDesc returns the indices that order values from largest to
// smallest. Used for feature-importance ranking.
func ArgsortDesc(values []float64) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] > values[idx[b]]
	})
	return idx
}

// Standardize rescales values to zero mean and unit variance. A
// zero-variance slice is only centered.
func Standardize(values []float64) []float64 {
	mean, std := stat.MeanStdDev(values, nil)
	out := make([]float64, len(values))
	for i, v := range values {
		if std > 0 {
			out[i] = (v - mean) / std
		} else {
			out[i] = v - mean
		}
	}
	return out
}

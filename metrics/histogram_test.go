package metrics

import (
	"reflect"
	"testing"
)

// TestNewHistogram verifies uniform binning and out-of-range clamping.
func TestNewHistogram(t *testing.T) {
	h := NewHistogram([]float64{0.1, 0.4, 0.6, 0.9, -1, 2}, 2, 0, 1)
	if len(h.Edges) != 3 {
		t.Fatalf("want 3 edges, got %d", len(h.Edges))
	}
	if !reflect.DeepEqual(h.Counts, []int{3, 3}) {
		t.Errorf("Counts = %v, want [3 3]", h.Counts)
	}
}

// TestNewHistogramDegenerateRange verifies a collapsed range keeps every
// value in one bin.
func TestNewHistogramDegenerateRange(t *testing.T) {
	h := NewHistogram([]float64{5, 5, 5}, 4, 5, 5)
	if h.Counts[0] != 3 {
		t.Errorf("Counts[0] = %d, want 3", h.Counts[0])
	}
}

// TestFreedmanDiaconisBins verifies the rule on spread data and the
// degenerate fallbacks.
func TestFreedmanDiaconisBins(t *testing.T) {
	if got := FreedmanDiaconisBins([]float64{1}); got != 1 {
		t.Errorf("single value should give 1 bin, got %d", got)
	}
	if got := FreedmanDiaconisBins([]float64{2, 2, 2, 2}); got != 1 {
		t.Errorf("constant values should give 1 bin, got %d", got)
	}

	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}
	bins := FreedmanDiaconisBins(values)
	if bins < 2 {
		t.Errorf("spread data should give multiple bins, got %d", bins)
	}
}

// TestArgsortDesc verifies descending index ordering with stability.
func TestArgsortDesc(t *testing.T) {
	got := ArgsortDesc([]float64{0.2, 0.9, 0.5})
	if !reflect.DeepEqual(got, []int{1, 2, 0}) {
		t.Errorf("ArgsortDesc = %v, want [1 2 0]", got)
	}

	// Ties keep original order.
	got = ArgsortDesc([]float64{0.5, 0.5, 0.1})
	if !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("ArgsortDesc with ties = %v, want [0 1 2]", got)
	}
}

// TestStandardize verifies zero mean, unit variance and the zero-variance
// fallback.
func TestStandardize(t *testing.T) {
	got := Standardize([]float64{1, 2, 3})
	if !almostEqual(got[1], 0, 1e-12) {
		t.Errorf("center value should standardize to 0, got %g", got[1])
	}
	if !almostEqual(got[0], -got[2], 1e-12) {
		t.Errorf("standardized values should be symmetric, got %v", got)
	}

	got = Standardize([]float64{4, 4})
	if got[0] != 0 || got[1] != 0 {
		t.Errorf("zero-variance input should center to zeros, got %v", got)
	}
}

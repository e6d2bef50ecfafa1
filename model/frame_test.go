package model

import (
	"reflect"
	"testing"
	"time"
)

// sampleBars builds n consecutive daily bars with distinct prices.
func sampleBars(n int) Bars {
	b := Bars{
		Time:   make([]time.Time, n),
		Open:   make([]float64, n),
		High:   make([]float64, n),
		Low:    make([]float64, n),
		Close:  make([]float64, n),
		Volume: make([]float64, n),
	}
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		base := 100 + float64(i)
		b.Time[i] = day.AddDate(0, 0, i)
		b.Open[i] = base
		b.High[i] = base + 2
		b.Low[i] = base - 2
		b.Close[i] = base + 1
		b.Volume[i] = 1000 + float64(i)*10
	}
	return b
}

// TestFrameColumns verifies typed access and insertion-order reporting.
func TestFrameColumns(t *testing.T) {
	f := NewFrame(3)
	if err := f.AddNumeric("age", []float64{21, 34, 55}); err != nil {
		t.Fatalf("AddNumeric failed: %v", err)
	}
	if err := f.AddLabels("sex", []string{"male", "female", "male"}); err != nil {
		t.Fatalf("AddLabels failed: %v", err)
	}

	if got := f.Columns(); !reflect.DeepEqual(got, []string{"age", "sex"}) {
		t.Errorf("Columns() = %v, want [age sex]", got)
	}

	col, err := f.Numeric("age")
	if err != nil {
		t.Fatalf("Numeric(age) failed: %v", err)
	}
	if col[1] != 34 {
		t.Errorf("age[1] = %g, want 34", col[1])
	}

	if _, err := f.Numeric("sex"); err == nil {
		t.Error("Numeric on a categorical column should fail")
	}
	if _, err := f.Labels("age"); err == nil {
		t.Error("Labels on a numeric column should fail")
	}
}

// TestFrameAddErrors covers length mismatches and duplicate names.
func TestFrameAddErrors(t *testing.T) {
	f := NewFrame(2)
	if err := f.AddNumeric("x", []float64{1}); err == nil {
		t.Error("short column should be rejected")
	}
	if err := f.AddNumeric("x", []float64{1, 2}); err != nil {
		t.Fatalf("AddNumeric failed: %v", err)
	}
	if err := f.AddLabels("x", []string{"a", "b"}); err == nil {
		t.Error("duplicate column name should be rejected")
	}
}

// TestFrameLevels verifies first-seen level ordering.
func TestFrameLevels(t *testing.T) {
	f := NewFrame(5)
	if err := f.AddLabels("deck", []string{"c", "a", "c", "b", "a"}); err != nil {
		t.Fatalf("AddLabels failed: %v", err)
	}
	levels, err := f.Levels("deck")
	if err != nil {
		t.Fatalf("Levels failed: %v", err)
	}
	if !reflect.DeepEqual(levels, []string{"c", "a", "b"}) {
		t.Errorf("Levels = %v, want [c a b]", levels)
	}
}

// TestBarsValidate covers OHLCV length checks and slicing.
func TestBarsValidate(t *testing.T) {
	b := sampleBars(4)
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate failed on consistent bars: %v", err)
	}

	short := b
	short.Low = short.Low[:2]
	if err := short.Validate(); err == nil {
		t.Error("mismatched OHLC lengths should be rejected")
	}

	window := b.Slice(1, 3)
	if window.Len() != 2 {
		t.Errorf("Slice(1, 3).Len() = %d, want 2", window.Len())
	}
	if window.Open[0] != b.Open[1] {
		t.Errorf("window starts at open %g, want %g", window.Open[0], b.Open[1])
	}
	if b.Slice(3, 1).Len() != 0 {
		t.Error("inverted slice should be empty")
	}
}

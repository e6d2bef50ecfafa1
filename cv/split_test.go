package cv

import (
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// checkFold verifies one fold partitions [0, n) with no overlap.
func checkFold(t *testing.T, f Fold, n int) {
	t.Helper()
	seen := make(map[int]bool, n)
	for _, idx := range f.Train {
		seen[idx] = true
	}
	for _, idx := range f.Test {
		if seen[idx] {
			t.Errorf("index %d appears in both train and test", idx)
		}
		seen[idx] = true
	}
	if len(seen) != n {
		t.Errorf("fold covers %d of %d indices", len(seen), n)
	}
}

// TestKFoldSizes verifies fold sizes with an uneven division.
func TestKFoldSizes(t *testing.T) {
	y := make([]float64, 10)
	folds, err := KFold{Folds: 3}.Split(y)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(folds) != 3 {
		t.Fatalf("want 3 folds, got %d", len(folds))
	}
	// 10 = 4 + 3 + 3, remainder goes to the first folds.
	wantTest := []int{4, 3, 3}
	for i, f := range folds {
		if len(f.Test) != wantTest[i] {
			t.Errorf("fold %d test size = %d, want %d", i, len(f.Test), wantTest[i])
		}
		checkFold(t, f, 10)
	}
}

// TestKFoldContiguous verifies the unshuffled split keeps index order.
func TestKFoldContiguous(t *testing.T) {
	y := make([]float64, 6)
	folds, err := KFold{Folds: 2}.Split(y)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if !reflect.DeepEqual(folds[0].Test, []int{0, 1, 2}) {
		t.Errorf("fold 0 test = %v, want [0 1 2]", folds[0].Test)
	}
	if !reflect.DeepEqual(folds[1].Test, []int{3, 4, 5}) {
		t.Errorf("fold 1 test = %v, want [3 4 5]", folds[1].Test)
	}
}

// TestKFoldErrors covers fold-count validation.
func TestKFoldErrors(t *testing.T) {
	if _, err := (KFold{Folds: 1}).Split(make([]float64, 10)); err == nil {
		t.Error("1 fold should be rejected")
	}
	if _, err := (KFold{Folds: 5}).Split(make([]float64, 3)); err == nil {
		t.Error("more folds than samples should be rejected")
	}
}

// TestStratifiedKFoldProportions verifies every fold holds both classes in
// proportion.
func TestStratifiedKFoldProportions(t *testing.T) {
	// 8 negatives then 4 positives.
	y := []float64{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1}
	folds, err := StratifiedKFold{Folds: 2}.Split(y)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	for i, f := range folds {
		checkFold(t, f, len(y))
		pos, neg := 0, 0
		for _, idx := range f.Test {
			if y[idx] == 1 {
				pos++
			} else {
				neg++
			}
		}
		if pos != 2 || neg != 4 {
			t.Errorf("fold %d test has %d positives and %d negatives, want 2 and 4", i, pos, neg)
		}
	}
}

// TestStratifiedKFoldSmallClass verifies a class smaller than the fold
// count is rejected.
func TestStratifiedKFoldSmallClass(t *testing.T) {
	y := []float64{0, 0, 0, 0, 1}
	if _, err := (StratifiedKFold{Folds: 2}).Split(y); err == nil {
		t.Error("class with fewer members than folds should be rejected")
	}
}

// TestStratifiedShuffleSplit verifies per-class holdout sizes and coverage.
func TestStratifiedShuffleSplit(t *testing.T) {
	y := []float64{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	s := StratifiedShuffleSplit{Splits: 3, TestSize: 0.4, Seed: 42}
	folds, err := s.Split(y)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(folds) != 3 {
		t.Fatalf("want 3 splits, got %d", len(folds))
	}
	for i, f := range folds {
		checkFold(t, f, len(y))
		if len(f.Test) != 4 || len(f.Train) != 6 {
			t.Errorf("split %d sizes = (%d train, %d test), want (6, 4)", i, len(f.Train), len(f.Test))
		}
	}
}

// TestStratifiedShuffleSplitDeterminism verifies identical seeds reproduce
// identical splits.
func TestStratifiedShuffleSplitDeterminism(t *testing.T) {
	y := []float64{1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0}
	s := StratifiedShuffleSplit{Splits: 2, TestSize: 0.25, Seed: 7}

	a, err := s.Split(y)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	b, err := s.Split(y)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should reproduce the same splits")
	}

	s.Seed = 8
	c, err := s.Split(y)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds should shuffle differently")
	}
}

// TestStratifiedShuffleSplitErrors covers the parameter checks.
func TestStratifiedShuffleSplitErrors(t *testing.T) {
	y := []float64{0, 0, 1, 1}
	if _, err := (StratifiedShuffleSplit{Splits: 0, TestSize: 0.5}).Split(y); err == nil {
		t.Error("zero splits should be rejected")
	}
	if _, err := (StratifiedShuffleSplit{Splits: 1, TestSize: 1.5}).Split(y); err == nil {
		t.Error("test size outside (0, 1) should be rejected")
	}
	if _, err := (StratifiedShuffleSplit{Splits: 1, TestSize: 0.9}).Split([]float64{0, 1}); err == nil {
		t.Error("class left with no training samples should be rejected")
	}
}

// TestSubsetRows verifies row selection and label subsetting agree.
func TestSubsetRows(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{
		1, 2,
		3, 4,
		5, 6,
		7, 8,
	})
	y := []float64{10, 20, 30, 40}
	idx := []int{3, 1}

	xs := SubsetRows(x, idx)
	ys := Subset(y, idx)

	if r, c := xs.Dims(); r != 2 || c != 2 {
		t.Fatalf("subset is %dx%d, want 2x2", r, c)
	}
	if xs.At(0, 0) != 7 || xs.At(1, 1) != 4 {
		t.Errorf("subset rows out of order: %v", mat.Formatted(xs))
	}
	if ys[0] != 40 || ys[1] != 20 {
		t.Errorf("Subset = %v, want [40 20]", ys)
	}
}

// Package cv provides the cross-validation splitters and scoring loops
// behind the learning-curve, validation-curve and ROC plots. All fold
// iteration is strictly sequential.
package cv

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Fold is one train/test index split.
type Fold struct {
	Train []int
	Test  []int
}

// Splitter produces train/test folds over a label vector.
type Splitter interface {
	Split(y []float64) ([]Fold, error)
	NSplits() int
}

// KFold splits indices into Folds contiguous (or shuffled) folds, each fold
// serving once as the test set.
type KFold struct {
	Folds   int
	Shuffle bool
	Seed    int64
}

// NSplits returns the fold count.
func (k KFold) NSplits() int { return k.Folds }

// Split produces the folds.
func (k KFold) Split(y []float64) ([]Fold, error) {
	n := len(y)
	if k.Folds < 2 {
		return nil, fmt.Errorf("kfold: need at least 2 folds, got %d", k.Folds)
	}
	if n < k.Folds {
		return nil, fmt.Errorf("kfold: %d samples for %d folds", n, k.Folds)
	}

	idx := indices(n)
	if k.Shuffle {
		rand.New(rand.NewSource(k.Seed)).Shuffle(n, func(i, j int) {
			idx[i], idx[j] = idx[j], idx[i]
		})
	}

	folds := make([]Fold, k.Folds)
	start := 0
	for f := 0; f < k.Folds; f++ {
		size := n / k.Folds
		if f < n%k.Folds {
			size++
		}
		test := idx[start : start+size]
		train := make([]int, 0, n-size)
		train = append(train, idx[:start]...)
		train = append(train, idx[start+size:]...)
		folds[f] = Fold{Train: train, Test: test}
		start += size
	}
	return folds, nil
}

// StratifiedKFold is a k-fold split that preserves per-class proportions in
// every fold.
type StratifiedKFold struct {
	Folds   int
	Shuffle bool
	Seed    int64
}

// NSplits returns the fold count.
func (s StratifiedKFold) NSplits() int { return s.Folds }

// Split produces the folds. Every class must have at least Folds members.
func (s StratifiedKFold) Split(y []float64) ([]Fold, error) {
	if s.Folds < 2 {
		return nil, fmt.Errorf("stratified kfold: need at least 2 folds, got %d", s.Folds)
	}

	classes, groups := byClass(y)
	rng := rand.New(rand.NewSource(s.Seed))

	folds := make([]Fold, s.Folds)
	for _, class := range classes {
		members := groups[class]
		if len(members) < s.Folds {
			return nil, fmt.Errorf("stratified kfold: class %g has %d members for %d folds", class, len(members), s.Folds)
		}
		if s.Shuffle {
			rng.Shuffle(len(members), func(i, j int) {
				members[i], members[j] = members[j], members[i]
			})
		}
		// Deal this class's members across the folds round-robin.
		for i, idx := range members {
			f := i % s.Folds
			folds[f].Test = append(folds[f].Test, idx)
		}
	}

	n := len(y)
	for f := range folds {
		inTest := make(map[int]bool, len(folds[f].Test))
		for _, idx := range folds[f].Test {
			inTest[idx] = true
		}
		for i := 0; i < n; i++ {
			if !inTest[i] {
				folds[f].Train = append(folds[f].Train, i)
			}
		}
	}
	return folds, nil
}

// StratifiedShuffleSplit draws Splits independent random train/test splits
// holding out TestSize of each class.
type StratifiedShuffleSplit struct {
	Splits   int
	TestSize float64
	Seed     int64
}

// NSplits returns the split count.
func (s StratifiedShuffleSplit) NSplits() int { return s.Splits }

// Split produces the splits. Every class must contribute at least one sample
// to each side.
func (s StratifiedShuffleSplit) Split(y []float64) ([]Fold, error) {
	if s.Splits < 1 {
		return nil, fmt.Errorf("stratified shuffle split: need at least 1 split, got %d", s.Splits)
	}
	if s.TestSize <= 0 || s.TestSize >= 1 {
		return nil, fmt.Errorf("stratified shuffle split: test size must be in (0, 1), got %g", s.TestSize)
	}

	classes, groups := byClass(y)
	rng := rand.New(rand.NewSource(s.Seed))

	folds := make([]Fold, s.Splits)
	for f := 0; f < s.Splits; f++ {
		for _, class := range classes {
			members := groups[class]
			nTest := int(float64(len(members)) * s.TestSize)
			if nTest < 1 {
				nTest = 1
			}
			if nTest >= len(members) {
				return nil, fmt.Errorf("stratified shuffle split: class %g has only %d members", class, len(members))
			}
			perm := make([]int, len(members))
			copy(perm, members)
			rng.Shuffle(len(perm), func(i, j int) {
				perm[i], perm[j] = perm[j], perm[i]
			})
			folds[f].Test = append(folds[f].Test, perm[:nTest]...)
			folds[f].Train = append(folds[f].Train, perm[nTest:]...)
		}
	}
	return folds, nil
}

func indices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// byClass groups sample indices by label value, preserving index order
// within each class. Classes come back sorted so seeded splits are
// deterministic.
func byClass(y []float64) ([]float64, map[float64][]int) {
	groups := make(map[float64][]int)
	var classes []float64
	for i, v := range y {
		if _, ok := groups[v]; !ok {
			classes = append(classes, v)
		}
		groups[v] = append(groups[v], i)
	}
	sort.Float64s(classes)
	return classes, groups
}

// SubsetRows returns the rows of x selected by idx as a new matrix.
func SubsetRows(x *mat.Dense, idx []int) *mat.Dense {
	_, cols := x.Dims()
	out := mat.NewDense(len(idx), cols, nil)
	for i, r := range idx {
		out.SetRow(i, x.RawRowView(r))
	}
	return out
}

// Subset returns the elements of y selected by idx.
func Subset(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, r := range idx {
		out[i] = y[r]
	}
	return out
}

// Package metrics computes the curve and matrix data behind the diagnostic
// plots: ROC curves with cross-fold averaging, calibration binning,
// confusion matrices, histogram binning, partial dependence, and the named
// scorers the cross-validation loops use.
package metrics

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ROCPoint is one point on a ROC curve.
type ROCPoint struct {
	Threshold float64
	TPR       float64 // true positive rate
	FPR       float64 // false positive rate
}

// meanROCGridSize is the fixed FPR grid the fold accumulator interpolates
// onto.
const meanROCGridSize = 100

// ROCCurve computes the ROC curve for binary labels (0 or 1) from raw
// prediction scores. Points are ordered by increasing FPR, starting at
// (0, 0). Both classes must be present.
func ROCCurve(scores, labels []float64) ([]ROCPoint, error) {
	if len(scores) != len(labels) {
		return nil, fmt.Errorf("roc: %d scores for %d labels", len(scores), len(labels))
	}

	type pair struct {
		score float64
		label float64
	}
	pairs := make([]pair, len(scores))
	for i := range scores {
		pairs[i] = pair{score: scores[i], label: labels[i]}
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].score > pairs[j].score
	})

	totalPos, totalNeg := 0, 0
	for _, p := range pairs {
		if p.label == 1 {
			totalPos++
		} else {
			totalNeg++
		}
	}
	if totalPos == 0 || totalNeg == 0 {
		return nil, fmt.Errorf("roc: both classes required, got %d positives and %d negatives", totalPos, totalNeg)
	}

	points := []ROCPoint{{Threshold: pairs[0].score + 1, TPR: 0, FPR: 0}}
	tp, fp := 0, 0
	for i, p := range pairs {
		if p.label == 1 {
			tp++
		} else {
			fp++
		}
		// Emit a point only at threshold boundaries so tied scores
		// collapse into a single step.
		if i+1 < len(pairs) && pairs[i+1].score == p.score {
			continue
		}
		points = append(points, ROCPoint{
			Threshold: p.score,
			TPR:       float64(tp) / float64(totalPos),
			FPR:       float64(fp) / float64(totalNeg),
		})
	}
	return points, nil
}

// AUC computes the area under a ROC curve by the trapezoidal rule.
func AUC(points []ROCPoint) float64 {
	auc := 0.0
	for i := 1; i < len(points); i++ {
		auc += (points[i].FPR - points[i-1].FPR) * (points[i].TPR + points[i-1].TPR) / 2.0
	}
	return auc
}

// AUCXY computes the trapezoidal area under an (x, y) curve with x
// nondecreasing.
func AUCXY(x, y []float64) float64 {
	auc := 0.0
	for i := 1; i < len(x); i++ {
		auc += (x[i] - x[i-1]) * (y[i] + y[i-1]) / 2.0
	}
	return auc
}

// ROCAccumulator averages per-fold ROC curves onto a fixed 100-point FPR
// grid: each fold's TPR is linearly interpolated onto the grid with its
// first point forced to zero, summed, then divided by the fold count with
// the last point forced to one.
type ROCAccumulator struct {
	fpr   []float64
	sum   []float64
	folds int
}

// NewROCAccumulator creates an empty accumulator.
func NewROCAccumulator() *ROCAccumulator {
	return &ROCAccumulator{
		fpr: floats.Span(make([]float64, meanROCGridSize), 0, 1),
		sum: make([]float64, meanROCGridSize),
	}
}

// Add folds one ROC curve into the running sum.
func (a *ROCAccumulator) Add(points []ROCPoint) {
	x := make([]float64, len(points))
	y := make([]float64, len(points))
	for i, p := range points {
		x[i] = p.FPR
		y[i] = p.TPR
	}
	tpr := Interp(a.fpr, x, y)
	tpr[0] = 0.0
	floats.Add(a.sum, tpr)
	a.folds++
}

// Folds returns how many curves have been accumulated.
func (a *ROCAccumulator) Folds() int { return a.folds }

// Mean returns the averaged curve and its AUC.
func (a *ROCAccumulator) Mean() (fpr, tpr []float64, auc float64, err error) {
	if a.folds == 0 {
		return nil, nil, 0, fmt.Errorf("roc: no folds accumulated")
	}
	fpr = make([]float64, len(a.fpr))
	copy(fpr, a.fpr)
	tpr = make([]float64, len(a.sum))
	for i, s := range a.sum {
		tpr[i] = s / float64(a.folds)
	}
	tpr[len(tpr)-1] = 1.0
	return fpr, tpr, AUCXY(fpr, tpr), nil
}

// Interp evaluates the piecewise-linear function through (x, y) at each
// point of xNew. x must be nondecreasing; values outside its range clamp to
// the end values.
func Interp(xNew, x, y []float64) []float64 {
	out := make([]float64, len(xNew))
	for i, xi := range xNew {
		out[i] = interpOne(xi, x, y)
	}
	return out
}

func interpOne(xi float64, x, y []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	if xi <= x[0] {
		return y[0]
	}
	if xi >= x[n-1] {
		return y[n-1]
	}
	j := sort.SearchFloat64s(x, xi)
	if x[j] == xi {
		return y[j]
	}
	x0, x1 := x[j-1], x[j]
	y0, y1 := y[j-1], y[j]
	if x1 == x0 {
		return y1
	}
	return y0 + (y1-y0)*(xi-x0)/(x1-x0)
}

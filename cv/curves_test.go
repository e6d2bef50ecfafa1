package cv

import (
	"fmt"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/modelviz/modelviz/metrics"
)

// midpointClassifier learns a cut on feature 0 halfway between the class
// means and predicts 1 above it.
type midpointClassifier struct {
	cut float64
}

func (c *midpointClassifier) Fit(x *mat.Dense, y []float64) error {
	sumPos, nPos, sumNeg, nNeg := 0.0, 0, 0.0, 0
	for i, v := range y {
		if v == 1 {
			sumPos += x.At(i, 0)
			nPos++
		} else {
			sumNeg += x.At(i, 0)
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		return fmt.Errorf("training set needs both classes")
	}
	c.cut = (sumPos/float64(nPos) + sumNeg/float64(nNeg)) / 2
	return nil
}

func (c *midpointClassifier) Predict(x *mat.Dense) ([]float64, error) {
	rows, _ := x.Dims()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		if x.At(i, 0) > c.cut {
			out[i] = 1
		}
	}
	return out, nil
}

// fixedCutClassifier exposes its cut as a sweepable parameter and ignores
// training.
type fixedCutClassifier struct {
	cut float64
}

func (c *fixedCutClassifier) Fit(x *mat.Dense, y []float64) error { return nil }

func (c *fixedCutClassifier) Predict(x *mat.Dense) ([]float64, error) {
	rows, _ := x.Dims()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		if x.At(i, 0) > c.cut {
			out[i] = 1
		}
	}
	return out, nil
}

func (c *fixedCutClassifier) SetParam(name string, value float64) error {
	if name != "cut" {
		return fmt.Errorf("unknown parameter %q", name)
	}
	c.cut = value
	return nil
}

// separableData builds n/2 negatives below zero and n/2 positives above,
// interleaved so contiguous folds stay balanced.
func separableData(n int) (*mat.Dense, []float64) {
	x := mat.NewDense(n, 1, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			x.Set(i, 0, -1-float64(i))
		} else {
			x.Set(i, 0, 1+float64(i))
			y[i] = 1
		}
	}
	return x, y
}

// TestLearningCurve verifies sizes scale with the fractions and a separable
// problem scores perfectly at every size.
func TestLearningCurve(t *testing.T) {
	x, y := separableData(20)
	score, err := metrics.ScorerByName("accuracy")
	if err != nil {
		t.Fatalf("ScorerByName failed: %v", err)
	}

	splitter := StratifiedKFold{Folds: 2}
	fractions := []float64{0.5, 1.0}
	sizes, trainScores, testScores, err := LearningCurve(&midpointClassifier{}, x, y, fractions, splitter, score)
	if err != nil {
		t.Fatalf("LearningCurve failed: %v", err)
	}

	if len(sizes) != 2 {
		t.Fatalf("want 2 sizes, got %d", len(sizes))
	}
	if sizes[0] != 5 || sizes[1] != 10 {
		t.Errorf("sizes = %v, want [5 10]", sizes)
	}
	for si := range sizes {
		if len(trainScores[si]) != 2 || len(testScores[si]) != 2 {
			t.Fatalf("size %d has %d train and %d test scores, want 2 folds", si, len(trainScores[si]), len(testScores[si]))
		}
		for fi := range trainScores[si] {
			if trainScores[si][fi] != 1 {
				t.Errorf("train score [%d][%d] = %g, want 1", si, fi, trainScores[si][fi])
			}
			if testScores[si][fi] != 1 {
				t.Errorf("test score [%d][%d] = %g, want 1", si, fi, testScores[si][fi])
			}
		}
	}
}

// TestLearningCurveBadFraction verifies out-of-range fractions are
// rejected.
func TestLearningCurveBadFraction(t *testing.T) {
	x, y := separableData(10)
	score, _ := metrics.ScorerByName("accuracy")
	if _, _, _, err := LearningCurve(&midpointClassifier{}, x, y, []float64{0, 0.5}, StratifiedKFold{Folds: 2}, score); err == nil {
		t.Error("zero fraction should be rejected")
	}
}

// TestValidationCurve verifies the sweep scores each parameter value over
// every fold.
func TestValidationCurve(t *testing.T) {
	x, y := separableData(12)
	score, err := metrics.ScorerByName("accuracy")
	if err != nil {
		t.Fatalf("ScorerByName failed: %v", err)
	}

	prange := []float64{0, 100}
	trainScores, testScores, err := ValidationCurve(&fixedCutClassifier{}, x, y, "cut", prange, StratifiedKFold{Folds: 2}, score)
	if err != nil {
		t.Fatalf("ValidationCurve failed: %v", err)
	}
	if len(trainScores) != 2 || len(testScores) != 2 {
		t.Fatalf("want scores for 2 parameter values, got %d and %d", len(trainScores), len(testScores))
	}

	// cut 0 separates the data; cut 100 predicts everything negative.
	for fi := range trainScores[0] {
		if trainScores[0][fi] != 1 || testScores[0][fi] != 1 {
			t.Errorf("cut 0 fold %d scored (%g, %g), want (1, 1)", fi, trainScores[0][fi], testScores[0][fi])
		}
		if trainScores[1][fi] != 0.5 || testScores[1][fi] != 0.5 {
			t.Errorf("cut 100 fold %d scored (%g, %g), want (0.5, 0.5)", fi, trainScores[1][fi], testScores[1][fi])
		}
	}
}

// TestValidationCurveRequiresParams verifies plain estimators are rejected.
func TestValidationCurveRequiresParams(t *testing.T) {
	x, y := separableData(8)
	score, _ := metrics.ScorerByName("accuracy")
	if _, _, err := ValidationCurve(&midpointClassifier{}, x, y, "cut", []float64{1}, StratifiedKFold{Folds: 2}, score); err == nil {
		t.Error("estimator without settable parameters should be rejected")
	}
}

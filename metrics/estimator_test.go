package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// thresholdClassifier labels a row positive when its first feature exceeds
// the cut. It exposes probabilities derived from the margin.
type thresholdClassifier struct {
	cut float64
}

func (c *thresholdClassifier) Fit(x *mat.Dense, y []float64) error {
	return nil
}

func (c *thresholdClassifier) Predict(x *mat.Dense) ([]float64, error) {
	rows, _ := x.Dims()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		if x.At(i, 0) > c.cut {
			out[i] = 1
		}
	}
	return out, nil
}

func (c *thresholdClassifier) PredictProba(x *mat.Dense) (*mat.Dense, error) {
	rows, _ := x.Dims()
	probas := mat.NewDense(rows, 2, nil)
	for i := 0; i < rows; i++ {
		p := sigmoid(x.At(i, 0) - c.cut)
		probas.Set(i, 0, 1-p)
		probas.Set(i, 1, p)
	}
	return probas, nil
}

func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}

// marginClassifier exposes a raw decision function only.
type marginClassifier struct {
	cut float64
}

func (c *marginClassifier) Fit(x *mat.Dense, y []float64) error { return nil }

func (c *marginClassifier) Predict(x *mat.Dense) ([]float64, error) {
	rows, _ := x.Dims()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		if x.At(i, 0) > c.cut {
			out[i] = 1
		}
	}
	return out, nil
}

func (c *marginClassifier) DecisionFunction(x *mat.Dense) ([]float64, error) {
	rows, _ := x.Dims()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = x.At(i, 0) - c.cut
	}
	return out, nil
}

// linearRegressor predicts a fixed linear combination of the first two
// features.
type linearRegressor struct {
	w0, w1 float64
}

func (r *linearRegressor) Fit(x *mat.Dense, y []float64) error { return nil }

func (r *linearRegressor) Predict(x *mat.Dense) ([]float64, error) {
	rows, _ := x.Dims()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = r.w0*x.At(i, 0) + r.w1*x.At(i, 1)
	}
	return out, nil
}

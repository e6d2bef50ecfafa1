package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/modelviz/modelviz/model"
)

// ScoreFunc evaluates a fitted estimator on (x, y). Higher is better; error
// scorers are negated so every scorer can be maximized.
type ScoreFunc func(est model.Estimator, x *mat.Dense, y []float64) (float64, error)

// ScorerByName resolves a scorer from its configuration name.
func ScorerByName(name string) (ScoreFunc, error) {
	switch name {
	case "accuracy", "":
		return accuracyScorer, nil
	case "f1":
		return f1Scorer, nil
	case "roc_auc":
		return rocAUCScorer, nil
	case "r2":
		return r2Scorer, nil
	case "neg_mean_squared_error":
		return negMSEScorer, nil
	default:
		return nil, fmt.Errorf("unknown scorer %q", name)
	}
}

func accuracyScorer(est model.Estimator, x *mat.Dense, y []float64) (float64, error) {
	preds, err := est.Predict(x)
	if err != nil {
		return 0, err
	}
	cm, err := NewConfusionMatrix(y, preds)
	if err != nil {
		return 0, err
	}
	return cm.Accuracy(), nil
}

// f1Scorer computes the binary F1 with class 1 as the positive class.
func f1Scorer(est model.Estimator, x *mat.Dense, y []float64) (float64, error) {
	preds, err := est.Predict(x)
	if err != nil {
		return 0, err
	}
	if len(preds) != len(y) {
		return 0, fmt.Errorf("f1: %d predictions for %d labels", len(preds), len(y))
	}
	tp, fp, fn := 0, 0, 0
	for i := range y {
		switch {
		case preds[i] == 1 && y[i] == 1:
			tp++
		case preds[i] == 1 && y[i] != 1:
			fp++
		case preds[i] != 1 && y[i] == 1:
			fn++
		}
	}
	if tp == 0 {
		return 0, nil
	}
	precision := float64(tp) / float64(tp+fp)
	recall := float64(tp) / float64(tp+fn)
	return 2 * precision * recall / (precision + recall), nil
}

func rocAUCScorer(est model.Estimator, x *mat.Dense, y []float64) (float64, error) {
	scores, err := PositiveScores(est, x)
	if err != nil {
		return 0, err
	}
	points, err := ROCCurve(scores, y)
	if err != nil {
		return 0, err
	}
	return AUC(points), nil
}

func r2Scorer(est model.Estimator, x *mat.Dense, y []float64) (float64, error) {
	preds, err := est.Predict(x)
	if err != nil {
		return 0, err
	}
	if len(preds) != len(y) {
		return 0, fmt.Errorf("r2: %d predictions for %d labels", len(preds), len(y))
	}
	meanTrue := 0.0
	for _, v := range y {
		meanTrue += v
	}
	meanTrue /= float64(len(y))

	ssRes, ssTot := 0.0, 0.0
	for i := range y {
		ssRes += (preds[i] - y[i]) * (preds[i] - y[i])
		ssTot += (y[i] - meanTrue) * (y[i] - meanTrue)
	}
	if ssTot == 0 {
		return 0, nil
	}
	return 1 - ssRes/ssTot, nil
}

func negMSEScorer(est model.Estimator, x *mat.Dense, y []float64) (float64, error) {
	preds, err := est.Predict(x)
	if err != nil {
		return 0, err
	}
	if len(preds) != len(y) {
		return 0, fmt.Errorf("mse: %d predictions for %d labels", len(preds), len(y))
	}
	sum := 0.0
	for i := range y {
		sum += (preds[i] - y[i]) * (preds[i] - y[i])
	}
	return -sum / float64(len(y)), nil
}

// PositiveScores extracts positive-class scores from an estimator,
// preferring probabilities over the raw decision function.
func PositiveScores(est model.Estimator, x *mat.Dense) ([]float64, error) {
	if pe, ok := est.(model.ProbabilityEstimator); ok {
		probas, err := pe.PredictProba(x)
		if err != nil {
			return nil, err
		}
		_, cols := probas.Dims()
		if cols < 2 {
			return nil, fmt.Errorf("probability matrix has %d columns, need at least 2", cols)
		}
		return mat.Col(nil, 1, probas), nil
	}
	if ds, ok := est.(model.DecisionScorer); ok {
		return ds.DecisionFunction(x)
	}
	return nil, fmt.Errorf("estimator exposes neither probabilities nor a decision function")
}

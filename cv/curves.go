package cv

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/modelviz/modelviz/metrics"
	"github.com/modelviz/modelviz/model"
)

// LearningCurve fits the estimator on growing fractions of each fold's
// training set and scores it on both the training subset and the held-out
// fold. Scores come back indexed [size][fold].
func LearningCurve(est model.Estimator, x *mat.Dense, y []float64, fractions []float64, s Splitter, score metrics.ScoreFunc) (sizes []int, trainScores, testScores [][]float64, err error) {
	folds, err := s.Split(y)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("learning curve: %w", err)
	}
	if len(folds) == 0 {
		return nil, nil, nil, fmt.Errorf("learning curve: splitter produced no folds")
	}

	minTrain := len(folds[0].Train)
	for _, f := range folds[1:] {
		if len(f.Train) < minTrain {
			minTrain = len(f.Train)
		}
	}

	sizes = make([]int, len(fractions))
	for i, frac := range fractions {
		if frac <= 0 || frac > 1 {
			return nil, nil, nil, fmt.Errorf("learning curve: train fraction %g outside (0, 1]", frac)
		}
		sz := int(frac * float64(minTrain))
		if sz < 1 {
			sz = 1
		}
		sizes[i] = sz
	}

	trainScores = make([][]float64, len(sizes))
	testScores = make([][]float64, len(sizes))
	for i := range sizes {
		trainScores[i] = make([]float64, len(folds))
		testScores[i] = make([]float64, len(folds))
	}

	for fi, fold := range folds {
		xTest := SubsetRows(x, fold.Test)
		yTest := Subset(y, fold.Test)
		for si, sz := range sizes {
			idx := fold.Train[:sz]
			xSub := SubsetRows(x, idx)
			ySub := Subset(y, idx)
			if err := est.Fit(xSub, ySub); err != nil {
				return nil, nil, nil, fmt.Errorf("learning curve: fit fold %d size %d: %w", fi+1, sz, err)
			}
			if trainScores[si][fi], err = score(est, xSub, ySub); err != nil {
				return nil, nil, nil, fmt.Errorf("learning curve: score fold %d size %d: %w", fi+1, sz, err)
			}
			if testScores[si][fi], err = score(est, xTest, yTest); err != nil {
				return nil, nil, nil, fmt.Errorf("learning curve: score fold %d size %d: %w", fi+1, sz, err)
			}
		}
	}
	return sizes, trainScores, testScores, nil
}

// ValidationCurve sweeps one hyperparameter across prange, cross-validating
// the estimator at each value. The estimator must implement
// model.Parameterized. Scores come back indexed [param][fold].
func ValidationCurve(est model.Estimator, x *mat.Dense, y []float64, param string, prange []float64, s Splitter, score metrics.ScoreFunc) (trainScores, testScores [][]float64, err error) {
	setter, ok := est.(model.Parameterized)
	if !ok {
		return nil, nil, fmt.Errorf("validation curve: estimator does not expose settable parameters")
	}
	if len(prange) == 0 {
		return nil, nil, fmt.Errorf("validation curve: empty parameter range")
	}

	folds, err := s.Split(y)
	if err != nil {
		return nil, nil, fmt.Errorf("validation curve: %w", err)
	}

	trainScores = make([][]float64, len(prange))
	testScores = make([][]float64, len(prange))
	for pi, value := range prange {
		if err := setter.SetParam(param, value); err != nil {
			return nil, nil, fmt.Errorf("validation curve: set %s=%g: %w", param, value, err)
		}
		trainScores[pi] = make([]float64, len(folds))
		testScores[pi] = make([]float64, len(folds))
		for fi, fold := range folds {
			xTrain := SubsetRows(x, fold.Train)
			yTrain := Subset(y, fold.Train)
			if err := est.Fit(xTrain, yTrain); err != nil {
				return nil, nil, fmt.Errorf("validation curve: fit %s=%g fold %d: %w", param, value, fi+1, err)
			}
			if trainScores[pi][fi], err = score(est, xTrain, yTrain); err != nil {
				return nil, nil, fmt.Errorf("validation curve: score %s=%g fold %d: %w", param, value, fi+1, err)
			}
			xTest := SubsetRows(x, fold.Test)
			yTest := Subset(y, fold.Test)
			if testScores[pi][fi], err = score(est, xTest, yTest); err != nil {
				return nil, nil, fmt.Errorf("validation curve: score %s=%g fold %d: %w", param, value, fi+1, err)
			}
		}
	}
	return trainScores, testScores, nil
}

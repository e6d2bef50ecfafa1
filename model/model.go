// Package model defines the trained-model container the plot routines read:
// a typed configuration, per-algorithm fitted estimators, cached predictions
// and probabilities keyed by (algorithm, partition), feature importances, and
// the train/test feature-label pairs.
package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Estimator is the minimal fitted-model contract. Fit retrains from scratch,
// discarding any previous fit, so a single estimator can be refit across
// cross-validation folds sequentially.
type Estimator interface {
	Fit(x *mat.Dense, y []float64) error
	Predict(x *mat.Dense) ([]float64, error)
}

// ProbabilityEstimator is implemented by classifiers that expose per-class
// probabilities. The returned matrix is n samples by k classes, columns in
// ascending class order.
type ProbabilityEstimator interface {
	PredictProba(x *mat.Dense) (*mat.Dense, error)
}

// DecisionScorer is implemented by classifiers that expose a raw decision
// function instead of probabilities.
type DecisionScorer interface {
	DecisionFunction(x *mat.Dense) ([]float64, error)
}

// Parameterized is implemented by estimators whose hyperparameters can be
// swept, as validation curves require.
type Parameterized interface {
	SetParam(name string, value float64) error
}

// PredictionKey identifies one entry in the prediction and probability
// caches.
type PredictionKey struct {
	Algo      string
	Partition Partition
}

// Model is the container every plot routine reads. It is owned by the caller
// and never mutated here.
type Model struct {
	Config   Config
	AlgoList []string

	Estimators  map[string]Estimator
	Preds       map[PredictionKey][]float64
	Probas      map[PredictionKey][]float64
	Importances map[string][]float64

	XTrain *mat.Dense
	YTrain []float64
	XTest  *mat.Dense
	YTest  []float64
}

// New creates an empty model container for the given configuration.
func New(cfg Config) *Model {
	return &Model{
		Config:      cfg,
		Estimators:  make(map[string]Estimator),
		Preds:       make(map[PredictionKey][]float64),
		Probas:      make(map[PredictionKey][]float64),
		Importances: make(map[string][]float64),
	}
}

// PartitionData returns the stored (X, y) pair for the requested partition.
func (m *Model) PartitionData(p Partition) (*mat.Dense, []float64, error) {
	switch p {
	case Train:
		return m.XTrain, m.YTrain, nil
	case Test:
		return m.XTest, m.YTest, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidPartition, p)
	}
}

// Estimator returns the fitted estimator for an algorithm, failing loudly
// when the algorithm was never fitted.
func (m *Model) Estimator(algo string) (Estimator, error) {
	est, ok := m.Estimators[algo]
	if !ok {
		return nil, fmt.Errorf("no estimator for algorithm %q", algo)
	}
	return est, nil
}

// Predictions returns the cached class predictions for (algo, partition).
// A missing entry is an error, never a silent zero value.
func (m *Model) Predictions(algo string, p Partition) ([]float64, error) {
	preds, ok := m.Preds[PredictionKey{Algo: algo, Partition: p}]
	if !ok {
		return nil, fmt.Errorf("no cached predictions for algorithm %q, partition %s", algo, p)
	}
	return preds, nil
}

// Probabilities returns the cached positive-class probabilities for
// (algo, partition). A missing entry is an error.
func (m *Model) Probabilities(algo string, p Partition) ([]float64, error) {
	probas, ok := m.Probas[PredictionKey{Algo: algo, Partition: p}]
	if !ok {
		return nil, fmt.Errorf("no cached probabilities for algorithm %q, partition %s", algo, p)
	}
	return probas, nil
}

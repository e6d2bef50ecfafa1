// Package plots produces the diagnostic and exploratory visualizations for
// a trained-model container: calibration, feature importance, learning and
// validation curves, ROC curves, confusion matrices, EDA plots, partial
// dependence, decision boundaries, and financial series charts. Every
// routine resolves its data from the model, computes curve data, renders a
// figure on one of the supported backends and hands it to the output
// writer.
package plots

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/modelviz/modelviz/cv"
	"github.com/modelviz/modelviz/model"
)

var logger = zap.NewNop()

// SetLogger installs the logger for plot progress notices.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// Generate produces the configured diagnostic plots for one partition.
// Calibration, confusion-matrix and ROC plots run whenever gated on;
// feature importances and learning curves additionally require the train
// partition.
func Generate(m *model.Model, p model.Partition) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %s", model.ErrInvalidPartition, p)
	}
	logger.Info("generating plots", zap.String("partition", p.String()))

	cfg := m.Config
	if cfg.CalibrationPlot {
		if err := Calibration(m, p); err != nil {
			return err
		}
	}
	if cfg.ConfusionMatrix {
		if err := ConfusionMatrix(m, p); err != nil {
			return err
		}
	}
	if cfg.ROCCurve {
		if err := ROCCurve(m, p); err != nil {
			return err
		}
	}
	if p == model.Train {
		if cfg.Importances {
			if err := Importance(m, p); err != nil {
				return err
			}
		}
		if cfg.LearningCurve {
			if err := LearningCurve(m, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// tagFor builds the conventional partition_algorithm filename tag.
func tagFor(p model.Partition, algo string) string {
	return p.String() + "_" + algo
}

// titleFor composes a plot title from algorithm, plot kind and partition.
func titleFor(algo, kind string, p model.Partition) string {
	return fmt.Sprintf("%s %s [%s]", algo, kind, p)
}

// rocSplitter selects the cross-validation strategy for ROC curves from the
// model configuration.
func rocSplitter(cfg model.Config) cv.Splitter {
	if cfg.Shuffle {
		return cv.StratifiedShuffleSplit{
			Splits:   cfg.CVFolds,
			TestSize: cfg.Split,
			Seed:     cfg.Seed,
		}
	}
	return cv.StratifiedKFold{Folds: cfg.CVFolds, Seed: cfg.Seed}
}

// foldSplitter selects the plain k-fold strategy used by validation curves,
// stratified for classifiers.
func foldSplitter(cfg model.Config) cv.Splitter {
	if cfg.ModelType == model.Classification {
		return cv.StratifiedKFold{Folds: cfg.CVFolds, Seed: cfg.Seed}
	}
	return cv.KFold{Folds: cfg.CVFolds, Seed: cfg.Seed}
}

// gridXYZ adapts a dense surface to gonum/plot's heat-map interface. The z
// values are indexed [x][y].
type gridXYZ struct {
	x, y []float64
	z    [][]float64
}

func (g gridXYZ) Dims() (c, r int)   { return len(g.x), len(g.y) }
func (g gridXYZ) X(c int) float64    { return g.x[c] }
func (g gridXYZ) Y(r int) float64    { return g.y[r] }
func (g gridXYZ) Z(c, r int) float64 { return g.z[c][r] }

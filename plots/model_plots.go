package plots

import (
	"fmt"
	"image/color"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/modelviz/modelviz/cv"
	"github.com/modelviz/modelviz/metrics"
	"github.com/modelviz/modelviz/model"
	"github.com/modelviz/modelviz/render"
)

const (
	calibrationBins = 10
	importanceTop   = 10
	pdResolution    = 50
)

// Calibration renders per-algorithm reliability curves with a
// predicted-probability histogram panel. Classification only; other model
// types are a logged no-op.
func Calibration(m *model.Model, p model.Partition) error {
	logger.Info("generating calibration plot")
	if m.Config.ModelType != model.Classification {
		logger.Info("calibration plot is for classification only")
		return nil
	}

	_, y, err := m.PartitionData(p)
	if err != nil {
		return err
	}

	rel := plot.New()
	rel.Title.Text = "Calibration Plots [Reliability Curve]"
	rel.Y.Label.Text = "Fraction of Positives"
	rel.Y.Min, rel.Y.Max = -0.05, 1.05

	diag, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return fmt.Errorf("calibration: %w", err)
	}
	diag.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	rel.Add(diag)
	rel.Legend.Add("Perfectly Calibrated", diag)

	hist := plot.New()
	hist.X.Label.Text = "Mean Predicted Value"
	hist.Y.Label.Text = "Count"

	for i, algo := range m.AlgoList {
		logger.Info("calibration for algorithm", zap.String("algorithm", algo))
		est, err := m.Estimator(algo)
		if err != nil {
			return err
		}

		probs, err := positiveProbabilities(m, est, algo, p)
		if err != nil {
			return err
		}

		fracPos, meanPred, err := metrics.CalibrationCurve(y, probs, calibrationBins)
		if err != nil {
			return fmt.Errorf("calibration for %s: %w", algo, err)
		}

		xys := make(plotter.XYs, len(fracPos))
		for j := range fracPos {
			xys[j] = plotter.XY{X: meanPred[j], Y: fracPos[j]}
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("calibration for %s: %w", algo, err)
		}
		clr := plotutil.Color(i)
		line.Color = clr
		points.Color = clr
		rel.Add(line, points)
		rel.Legend.Add(algo, line, points)

		// NewHistogram bins XYer points weighted by Y
		weighted := make(plotter.XYs, len(probs))
		for j, v := range probs {
			weighted[j] = plotter.XY{X: v, Y: 1}
		}
		h, err := plotter.NewHistogram(weighted, calibrationBins)
		if err != nil {
			return fmt.Errorf("calibration for %s: %w", algo, err)
		}
		h.FillColor = color.NRGBA{}
		h.LineStyle.Color = clr
		h.LineStyle.Width = vg.Points(1.5)
		hist.Add(h)
	}

	fig := render.NewGeneralGrid([][]*plot.Plot{{rel}, {hist}}, 8*vg.Inch, 10*vg.Inch)
	return render.Write(&m.Config, fig, "calibration", p.String())
}

// positiveProbabilities resolves positive-class probabilities for an
// algorithm, from the probability cache when the estimator supports
// probabilities, otherwise by min-max scaling its decision function.
func positiveProbabilities(m *model.Model, est model.Estimator, algo string, p model.Partition) ([]float64, error) {
	if _, ok := est.(model.ProbabilityEstimator); ok {
		return m.Probabilities(algo, p)
	}
	if ds, ok := est.(model.DecisionScorer); ok {
		x, _, err := m.PartitionData(p)
		if err != nil {
			return nil, err
		}
		raw, err := ds.DecisionFunction(x)
		if err != nil {
			return nil, fmt.Errorf("decision function for %s: %w", algo, err)
		}
		return metrics.MinMaxScale(raw), nil
	}
	return nil, fmt.Errorf("algorithm %q exposes neither probabilities nor a decision function", algo)
}

// Importance renders the top-ranked feature importances per algorithm. An
// algorithm without an importance vector is logged and skipped; everything
// else proceeds.
func Importance(m *model.Model, p model.Partition) error {
	logger.Info("generating feature importance plots")

	if _, _, err := m.PartitionData(p); err != nil {
		return err
	}

	for _, algo := range m.AlgoList {
		logger.Info("feature importances for algorithm", zap.String("algorithm", algo))
		imp, ok := m.Importances[algo]
		if !ok || len(imp) == 0 {
			logger.Info("algorithm has no feature importances", zap.String("algorithm", algo))
			continue
		}

		idx := metrics.ArgsortDesc(imp)
		nTop := importanceTop
		if len(idx) < nTop {
			nTop = len(idx)
		}

		logger.Info("feature ranking")
		values := make(plotter.Values, nTop)
		labels := make([]string, nTop)
		for f := 0; f < nTop; f++ {
			logger.Info("ranked feature",
				zap.Int("rank", f+1),
				zap.Int("feature", idx[f]),
				zap.Float64("importance", imp[idx[f]]))
			values[f] = imp[idx[f]]
			labels[f] = fmt.Sprint(idx[f])
		}

		pl := plot.New()
		pl.Title.Text = titleFor(algo, "Feature Importances", p)
		pl.Y.Label.Text = "Importance"
		bars, err := plotter.NewBarChart(values, vg.Points(20))
		if err != nil {
			return fmt.Errorf("importance for %s: %w", algo, err)
		}
		bars.Color = plotutil.Color(0)
		pl.Add(bars)
		pl.NominalX(labels...)

		fig := render.NewGeneralFigure(pl)
		if err := render.Write(&m.Config, fig, "feature_importance", tagFor(p, algo)); err != nil {
			return err
		}
	}
	return nil
}

// LearningCurve renders mean train and cross-validation scores over growing
// training-set sizes, with one-sigma bands, per algorithm.
func LearningCurve(m *model.Model, p model.Partition) error {
	logger.Info("generating learning curves")

	cfg := m.Config
	x, y, err := m.PartitionData(p)
	if err != nil {
		return err
	}
	score, err := metrics.ScorerByName(cfg.Scorer)
	if err != nil {
		return err
	}
	splitter := cv.StratifiedShuffleSplit{
		Splits:   cfg.CVFolds,
		TestSize: cfg.Split,
		Seed:     cfg.Seed,
	}
	fractions := floats.Span(make([]float64, 5), 0.1, 1.0)

	for _, algo := range m.AlgoList {
		logger.Info("learning curve for algorithm", zap.String("algorithm", algo))
		est, err := m.Estimator(algo)
		if err != nil {
			return err
		}

		sizes, trainScores, testScores, err := cv.LearningCurve(est, x, y, fractions, splitter, score)
		if err != nil {
			return fmt.Errorf("learning curve for %s: %w", algo, err)
		}

		pl := plot.New()
		pl.Title.Text = titleFor(algo, "Learning Curve", p)
		pl.X.Label.Text = "Training Examples"
		pl.Y.Label.Text = "Score"
		pl.Y.Min, pl.Y.Max = 0.0, 1.01

		xs := make([]float64, len(sizes))
		for i, sz := range sizes {
			xs[i] = float64(sz)
		}
		if err := addScoreBand(pl, xs, trainScores, "Training Score", color.NRGBA{R: 0xcc, A: 0xff}); err != nil {
			return fmt.Errorf("learning curve for %s: %w", algo, err)
		}
		if err := addScoreBand(pl, xs, testScores, "Cross-Validation Score", color.NRGBA{G: 0x99, A: 0xff}); err != nil {
			return fmt.Errorf("learning curve for %s: %w", algo, err)
		}

		fig := render.NewGeneralFigure(pl)
		if err := render.Write(&m.Config, fig, "learning_curve", tagFor(p, algo)); err != nil {
			return err
		}
	}
	return nil
}

// addScoreBand plots the per-point mean of scores[i] as a line plus a
// translucent one-sigma band.
func addScoreBand(pl *plot.Plot, xs []float64, scores [][]float64, name string, clr color.NRGBA) error {
	if len(scores) != len(xs) {
		return fmt.Errorf("score band: %d score rows for %d points", len(scores), len(xs))
	}

	mean := make(plotter.XYs, len(xs))
	band := make(plotter.XYs, 0, 2*len(xs))
	lower := make(plotter.XYs, len(xs))
	for i, x := range xs {
		mu, sigma := stat.MeanStdDev(scores[i], nil)
		mean[i] = plotter.XY{X: x, Y: mu}
		band = append(band, plotter.XY{X: x, Y: mu + sigma})
		lower[i] = plotter.XY{X: x, Y: mu - sigma}
	}
	for i := len(lower) - 1; i >= 0; i-- {
		band = append(band, lower[i])
	}

	poly, err := plotter.NewPolygon(band)
	if err != nil {
		return err
	}
	fill := clr
	fill.A = 0x30
	poly.Color = fill
	poly.LineStyle.Color = color.NRGBA{}
	pl.Add(poly)

	line, points, err := plotter.NewLinePoints(mean)
	if err != nil {
		return err
	}
	line.Color = clr
	points.Color = clr
	pl.Add(line, points)
	pl.Legend.Add(name, line, points)
	return nil
}

// ROCCurve renders cross-validated ROC curves per algorithm: one line per
// fold, the luck diagonal and the interpolated mean curve. Classification
// only; other model types are a logged no-op.
func ROCCurve(m *model.Model, p model.Partition) error {
	logger.Info("generating roc curves")
	if m.Config.ModelType != model.Classification {
		logger.Info("roc curves are for classification only")
		return nil
	}

	cfg := m.Config
	x, y, err := m.PartitionData(p)
	if err != nil {
		return err
	}
	splitter := rocSplitter(cfg)

	for _, algo := range m.AlgoList {
		logger.Info("roc curve for algorithm", zap.String("algorithm", algo))
		est, err := m.Estimator(algo)
		if err != nil {
			return err
		}
		folds, err := splitter.Split(y)
		if err != nil {
			return fmt.Errorf("roc curve for %s: %w", algo, err)
		}

		pl := plot.New()
		pl.Title.Text = titleFor(algo, "ROC Curve", p)
		pl.X.Label.Text = "False Positive Rate"
		pl.Y.Label.Text = "True Positive Rate"
		pl.X.Min, pl.X.Max = -0.05, 1.05
		pl.Y.Min, pl.Y.Max = -0.05, 1.05

		acc := metrics.NewROCAccumulator()
		for fi, fold := range folds {
			logger.Info("cross-validation fold",
				zap.Int("fold", fi+1),
				zap.Int("folds", len(folds)))

			if err := est.Fit(cv.SubsetRows(x, fold.Train), cv.Subset(y, fold.Train)); err != nil {
				return fmt.Errorf("roc curve for %s fold %d: %w", algo, fi+1, err)
			}
			scores, err := metrics.PositiveScores(est, cv.SubsetRows(x, fold.Test))
			if err != nil {
				return fmt.Errorf("roc curve for %s fold %d: %w", algo, fi+1, err)
			}
			points, err := metrics.ROCCurve(scores, cv.Subset(y, fold.Test))
			if err != nil {
				return fmt.Errorf("roc curve for %s fold %d: %w", algo, fi+1, err)
			}
			acc.Add(points)

			xys := make(plotter.XYs, len(points))
			for j, pt := range points {
				xys[j] = plotter.XY{X: pt.FPR, Y: pt.TPR}
			}
			line, err := plotter.NewLine(xys)
			if err != nil {
				return fmt.Errorf("roc curve for %s fold %d: %w", algo, fi+1, err)
			}
			line.Color = plotutil.Color(fi)
			pl.Add(line)
			pl.Legend.Add(fmt.Sprintf("ROC Fold %d (area = %.2f)", fi+1, metrics.AUC(points)), line)
		}

		luck, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
		if err != nil {
			return fmt.Errorf("roc curve for %s: %w", algo, err)
		}
		luck.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		pl.Add(luck)
		pl.Legend.Add("Luck", luck)

		fpr, tpr, meanAUC, err := acc.Mean()
		if err != nil {
			return fmt.Errorf("roc curve for %s: %w", algo, err)
		}
		meanXYs := make(plotter.XYs, len(fpr))
		for j := range fpr {
			meanXYs[j] = plotter.XY{X: fpr[j], Y: tpr[j]}
		}
		meanLine, err := plotter.NewLine(meanXYs)
		if err != nil {
			return fmt.Errorf("roc curve for %s: %w", algo, err)
		}
		meanLine.Color = color.NRGBA{G: 0x99, A: 0xff}
		meanLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		pl.Add(meanLine)
		pl.Legend.Add(fmt.Sprintf("Mean ROC (area = %.2f)", meanAUC), meanLine)

		fig := render.NewGeneralFigure(pl)
		if err := render.Write(&m.Config, fig, "roc_curve", tagFor(p, algo)); err != nil {
			return err
		}
	}
	return nil
}

// ConfusionMatrix renders the confusion matrix heat map per algorithm from
// the cached predictions.
func ConfusionMatrix(m *model.Model, p model.Partition) error {
	logger.Info("generating confusion matrices")

	_, y, err := m.PartitionData(p)
	if err != nil {
		return err
	}

	for _, algo := range m.AlgoList {
		logger.Info("confusion matrix for algorithm", zap.String("algorithm", algo))
		preds, err := m.Predictions(algo, p)
		if err != nil {
			return err
		}
		cm, err := metrics.NewConfusionMatrix(y, preds)
		if err != nil {
			return fmt.Errorf("confusion matrix for %s: %w", algo, err)
		}
		logger.Info("confusion matrix", zap.String("matrix", cm.String()))

		n := len(cm.Classes)
		axis := make([]float64, n)
		for i := range axis {
			axis[i] = float64(i)
		}
		grid := gridXYZ{
			x: axis,
			y: axis,
			z: make([][]float64, n),
		}
		for c := 0; c < n; c++ {
			grid.z[c] = make([]float64, n)
			for r := 0; r < n; r++ {
				// columns are predicted class, rows true class
				grid.z[c][r] = float64(cm.Counts[r][c])
			}
		}

		pl := plot.New()
		pl.Title.Text = titleFor(algo, "Confusion Matrix", p)
		pl.X.Label.Text = "Predicted Label"
		pl.Y.Label.Text = "True Label"
		pl.Add(plotter.NewHeatMap(grid, palette.Heat(12, 1)))

		ticks := make([]plot.Tick, n)
		for i, class := range cm.Classes {
			ticks[i] = plot.Tick{Value: float64(i), Label: fmt.Sprint(class)}
		}
		pl.X.Tick.Marker = plot.ConstantTicks(ticks)
		pl.Y.Tick.Marker = plot.ConstantTicks(ticks)

		fig := render.NewGeneralFigure(pl)
		if err := render.Write(&m.Config, fig, "confusion", tagFor(p, algo)); err != nil {
			return err
		}
	}
	return nil
}

// ValidationCurve sweeps one hyperparameter over prange for every
// algorithm, rendering mean train and cross-validation scores with
// one-sigma bands. Estimators must expose settable parameters.
func ValidationCurve(m *model.Model, p model.Partition, param string, prange []float64) error {
	logger.Info("generating validation curves")

	cfg := m.Config
	x, y, err := m.PartitionData(p)
	if err != nil {
		return err
	}
	score, err := metrics.ScorerByName(cfg.Scorer)
	if err != nil {
		return err
	}
	splitter := foldSplitter(cfg)

	for _, algo := range m.AlgoList {
		logger.Info("validation curve for algorithm", zap.String("algorithm", algo))
		est, err := m.Estimator(algo)
		if err != nil {
			return err
		}

		trainScores, testScores, err := cv.ValidationCurve(est, x, y, param, prange, splitter, score)
		if err != nil {
			return fmt.Errorf("validation curve for %s: %w", algo, err)
		}

		pl := plot.New()
		pl.Title.Text = titleFor(algo, "Validation Curve", p)
		pl.X.Label.Text = param
		pl.Y.Label.Text = "Score"
		pl.X.Min, pl.X.Max = floats.Min(prange)-0.5, floats.Max(prange)+0.5
		pl.Y.Min, pl.Y.Max = 0.0, 1.1

		if err := addScoreBand(pl, prange, trainScores, "Training Score", color.NRGBA{R: 0xcc, A: 0xff}); err != nil {
			return fmt.Errorf("validation curve for %s: %w", algo, err)
		}
		if err := addScoreBand(pl, prange, testScores, "Cross-Validation Score", color.NRGBA{G: 0x99, A: 0xff}); err != nil {
			return fmt.Errorf("validation curve for %s: %w", algo, err)
		}

		fig := render.NewGeneralFigure(pl)
		if err := render.Write(&m.Config, fig, "validation_curve", tagFor(p, algo)); err != nil {
			return err
		}
	}
	return nil
}

package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/modelviz/modelviz/model"
)

// PartialDependence computes the marginal effect of one feature on an
// estimator's prediction: the feature column is swept over a uniform grid of
// resolution points between its observed min and max, and at each grid value
// the predictions over all rows are averaged.
func PartialDependence(est model.Estimator, x *mat.Dense, feature, resolution int) (grid, pd []float64, err error) {
	grid, err = featureGrid(x, feature, resolution)
	if err != nil {
		return nil, nil, err
	}

	rows, _ := x.Dims()
	work := mat.DenseCopyOf(x)
	pd = make([]float64, len(grid))
	for gi, v := range grid {
		for r := 0; r < rows; r++ {
			work.Set(r, feature, v)
		}
		preds, err := est.Predict(work)
		if err != nil {
			return nil, nil, fmt.Errorf("partial dependence at grid point %d: %w", gi, err)
		}
		pd[gi] = floats.Sum(preds) / float64(len(preds))
	}
	return grid, pd, nil
}

// PartialDependence2D computes the joint marginal effect of two features on
// a resolution-by-resolution grid. The returned surface is indexed
// [g1 index][g2 index].
func PartialDependence2D(est model.Estimator, x *mat.Dense, f1, f2, resolution int) (g1, g2 []float64, pd [][]float64, err error) {
	g1, err = featureGrid(x, f1, resolution)
	if err != nil {
		return nil, nil, nil, err
	}
	g2, err = featureGrid(x, f2, resolution)
	if err != nil {
		return nil, nil, nil, err
	}

	rows, _ := x.Dims()
	work := mat.DenseCopyOf(x)
	pd = make([][]float64, len(g1))
	for i, v1 := range g1 {
		pd[i] = make([]float64, len(g2))
		for r := 0; r < rows; r++ {
			work.Set(r, f1, v1)
		}
		for j, v2 := range g2 {
			for r := 0; r < rows; r++ {
				work.Set(r, f2, v2)
			}
			preds, err := est.Predict(work)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("partial dependence at grid point (%d, %d): %w", i, j, err)
			}
			pd[i][j] = floats.Sum(preds) / float64(len(preds))
		}
	}
	return g1, g2, pd, nil
}

func featureGrid(x *mat.Dense, feature, resolution int) ([]float64, error) {
	rows, cols := x.Dims()
	if feature < 0 || feature >= cols {
		return nil, fmt.Errorf("partial dependence: feature %d out of range [0, %d)", feature, cols)
	}
	if rows == 0 {
		return nil, fmt.Errorf("partial dependence: empty feature matrix")
	}
	if resolution < 2 {
		return nil, fmt.Errorf("partial dependence: resolution must be at least 2, got %d", resolution)
	}
	col := mat.Col(nil, feature, x)
	lo, hi := floats.Min(col), floats.Max(col)
	return floats.Span(make([]float64, resolution), lo, hi), nil
}

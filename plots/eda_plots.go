package plots

import (
	"fmt"
	"math/rand"

	chart "github.com/wcharczuk/go-chart/v2"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
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
	cellSize           = 280
	boundaryResolution = 100
	boundaryTestSize   = 0.4
)

// Scatter renders a pairwise scatter matrix of the requested features plus
// the target, points colored by target class, histograms on the diagonal.
func Scatter(m *model.Model, f *model.Frame, features []string, target, tag string) error {
	logger.Info("generating scatter plot")

	cols := make([]string, 0, len(features)+1)
	cols = append(cols, features...)
	cols = append(cols, target)

	values := make([][]float64, len(cols))
	for i, name := range cols {
		col, err := f.Numeric(name)
		if err != nil {
			return fmt.Errorf("scatter plot: %w", err)
		}
		values[i] = col
	}
	targetCol := values[len(values)-1]
	classes := metrics.Classes(targetCol)

	n := len(cols)
	cells := make([][]render.StatChart, n)
	for i := 0; i < n; i++ {
		cells[i] = make([]render.StatChart, n)
		for j := 0; j < n; j++ {
			if i == j {
				cells[i][j] = histChart(values[i], cols[i])
				continue
			}
			sc := scatterChart(values[j], values[i], targetCol, classes, cols[j], cols[i])
			if len(sc.Series) > 0 {
				cells[i][j] = sc
			}
		}
	}

	fig := render.NewStatGrid(cells)
	return render.Write(&m.Config, fig, "scatter_plot", tag)
}

// scatterChart builds one scatter cell, one dot-only series per target
// class.
func scatterChart(xv, yv, target []float64, classes []float64, xName, yName string) chart.Chart {
	var series []chart.Series
	for k, class := range classes {
		var xs, ys []float64
		for i := range target {
			if target[i] == class {
				xs = append(xs, xv[i])
				ys = append(ys, yv[i])
			}
		}
		// go-chart needs two points to draw a series
		if len(xs) < 2 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprint(class),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: 0,
				DotWidth:    3,
				DotColor:    chart.GetDefaultColor(k),
			},
		})
	}
	return chart.Chart{
		Width:  cellSize,
		Height: cellSize,
		XAxis:  chart.XAxis{Name: xName},
		YAxis:  chart.YAxis{Name: yName},
		Series: series,
	}
}

// histChart builds a histogram cell with Freedman-Diaconis binning.
func histChart(values []float64, name string) chart.BarChart {
	bins := metrics.FreedmanDiaconisBins(values)
	lo, hi := floats.Min(values), floats.Max(values)
	return barChartFromHistogram(metrics.NewHistogram(values, bins, lo, hi), name)
}

// barChartFromHistogram turns binned counts into a bar chart labeled by bin
// centers. The value range is anchored at [0, max count] explicitly: with
// equal counts in every bin go-chart cannot infer a range on its own.
func barChartFromHistogram(h metrics.Histogram, title string) chart.BarChart {
	bars := make([]chart.Value, len(h.Counts))
	maxCount := 1
	for i, count := range h.Counts {
		if count > maxCount {
			maxCount = count
		}
		center := (h.Edges[i] + h.Edges[i+1]) / 2
		bars[i] = chart.Value{Value: float64(count), Label: fmt.Sprintf("%.3g", center)}
	}
	return chart.BarChart{
		Title:    title,
		Width:    cellSize,
		Height:   cellSize,
		BarWidth: barWidth(len(bars)),
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
		},
		Bars: bars,
	}
}

func barWidth(n int) int {
	if n == 0 {
		return 10
	}
	w := (cellSize - 60) / n
	if w < 2 {
		w = 2
	}
	if w > 40 {
		w = 40
	}
	return w
}

// FacetGrid renders a grid of histograms of target faceted by two
// categorical variables, bins shared across facets via the
// Freedman-Diaconis rule on the full column.
func FacetGrid(m *model.Model, f *model.Frame, target, rowVar, colVar, tag string) error {
	logger.Info("generating facet grid")

	targetCol, err := f.Numeric(target)
	if err != nil {
		return fmt.Errorf("facet grid: %w", err)
	}
	rowLabels, err := f.Labels(rowVar)
	if err != nil {
		return fmt.Errorf("facet grid: %w", err)
	}
	colLabels, err := f.Labels(colVar)
	if err != nil {
		return fmt.Errorf("facet grid: %w", err)
	}
	rowLevels, err := f.Levels(rowVar)
	if err != nil {
		return fmt.Errorf("facet grid: %w", err)
	}
	colLevels, err := f.Levels(colVar)
	if err != nil {
		return fmt.Errorf("facet grid: %w", err)
	}

	bins := metrics.FreedmanDiaconisBins(targetCol)
	lo, hi := floats.Min(targetCol), floats.Max(targetCol)

	cells := make([][]render.StatChart, len(rowLevels))
	for i, rl := range rowLevels {
		cells[i] = make([]render.StatChart, len(colLevels))
		for j, cl := range colLevels {
			var subset []float64
			for k, v := range targetCol {
				if rowLabels[k] == rl && colLabels[k] == cl {
					subset = append(subset, v)
				}
			}
			if len(subset) == 0 {
				continue
			}
			bc := barChartFromHistogram(metrics.NewHistogram(subset, bins, lo, hi),
				fmt.Sprintf("%s | %s", rl, cl))
			cells[i][j] = bc
		}
	}

	fig := render.NewStatGrid(cells)
	return render.Write(&m.Config, fig, "facet_grid", tag)
}

// Distribution renders a histogram of one numeric column.
func Distribution(m *model.Model, f *model.Frame, target, tag string) error {
	logger.Info("generating distribution plot")

	col, err := f.Numeric(target)
	if err != nil {
		return fmt.Errorf("distribution plot: %w", err)
	}

	bc := histChart(col, target)
	fig := render.NewStatFigure(bc)
	return render.Write(&m.Config, fig, "distribution_plot", tag)
}

// Box renders grouped box-and-whisker plots of y per level of x, split by
// an optional hue variable.
func Box(m *model.Model, f *model.Frame, x, y, hue, tag string) error {
	logger.Info("generating box plot")

	yCol, err := f.Numeric(y)
	if err != nil {
		return fmt.Errorf("box plot: %w", err)
	}
	xLabels, err := f.Labels(x)
	if err != nil {
		return fmt.Errorf("box plot: %w", err)
	}
	xLevels, err := f.Levels(x)
	if err != nil {
		return fmt.Errorf("box plot: %w", err)
	}
	hueLabels, hueLevels, err := hueColumn(f, hue)
	if err != nil {
		return fmt.Errorf("box plot: %w", err)
	}

	pl := plot.New()
	pl.Y.Label.Text = y
	pl.X.Label.Text = x

	pos := 0.0
	var ticks []plot.Tick
	for _, xl := range xLevels {
		start := pos
		for hi, hl := range hueLevels {
			var vals plotter.Values
			for k, v := range yCol {
				if xLabels[k] != xl {
					continue
				}
				if hueLabels != nil && hueLabels[k] != hl {
					continue
				}
				vals = append(vals, v)
			}
			if len(vals) == 0 {
				continue
			}
			box, err := plotter.NewBoxPlot(vg.Points(20), pos, vals)
			if err != nil {
				return fmt.Errorf("box plot: %w", err)
			}
			box.FillColor = plotutil.Color(hi)
			pl.Add(box)
			pos++
		}
		ticks = append(ticks, plot.Tick{Value: (start + pos - 1) / 2, Label: xl})
	}
	pl.X.Tick.Marker = plot.ConstantTicks(ticks)

	fig := render.NewGeneralFigure(pl)
	return render.Write(&m.Config, fig, "box_plot", tag)
}

// Swarm renders a jittered strip plot of y per level of x, series split by
// an optional hue variable. Jitter is seeded from the model configuration.
func Swarm(m *model.Model, f *model.Frame, x, y, hue, tag string) error {
	logger.Info("generating swarm plot")

	yCol, err := f.Numeric(y)
	if err != nil {
		return fmt.Errorf("swarm plot: %w", err)
	}
	xLabels, err := f.Labels(x)
	if err != nil {
		return fmt.Errorf("swarm plot: %w", err)
	}
	xLevels, err := f.Levels(x)
	if err != nil {
		return fmt.Errorf("swarm plot: %w", err)
	}
	hueLabels, hueLevels, err := hueColumn(f, hue)
	if err != nil {
		return fmt.Errorf("swarm plot: %w", err)
	}

	xIndex := make(map[string]int, len(xLevels))
	for i, lvl := range xLevels {
		xIndex[lvl] = i
	}

	rng := rand.New(rand.NewSource(m.Config.Seed))
	var series []chart.Series
	for hi, hl := range hueLevels {
		var xs, ys []float64
		for k, v := range yCol {
			if hueLabels != nil && hueLabels[k] != hl {
				continue
			}
			jitter := (rng.Float64() - 0.5) * 0.3
			xs = append(xs, float64(xIndex[xLabels[k]])+jitter)
			ys = append(ys, v)
		}
		if len(xs) < 2 {
			continue
		}
		name := hl
		if name == "" {
			name = y
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: 0,
				DotWidth:    4,
				DotColor:    chart.GetDefaultColor(hi),
			},
		})
	}

	if len(series) == 0 {
		return fmt.Errorf("swarm plot: not enough observations to draw")
	}

	ticks := make([]chart.Tick, len(xLevels))
	for i, lvl := range xLevels {
		ticks[i] = chart.Tick{Value: float64(i), Label: lvl}
	}

	ch := chart.Chart{
		Width:  2 * cellSize,
		Height: 2 * cellSize,
		XAxis: chart.XAxis{
			Name:  x,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(xLevels)) - 0.5},
			Ticks: ticks,
		},
		YAxis:  chart.YAxis{Name: y},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	fig := render.NewStatFigure(ch)
	return render.Write(&m.Config, fig, "swarm_plot", tag)
}

// hueColumn resolves an optional hue variable: an empty name yields one
// unnamed level covering every row.
func hueColumn(f *model.Frame, hue string) (labels []string, levels []string, err error) {
	if hue == "" {
		return nil, []string{""}, nil
	}
	labels, err = f.Labels(hue)
	if err != nil {
		return nil, nil, err
	}
	levels, err = f.Levels(hue)
	if err != nil {
		return nil, nil, err
	}
	return labels, levels, nil
}

// PartialDependence renders the marginal response of each configured
// estimator over the requested feature targets: a curve tile per
// single-feature target, a surface heat map per feature pair.
func PartialDependence(m *model.Model, p model.Partition, targets [][]int) error {
	logger.Info("generating partial dependence plots")

	if len(targets) == 0 {
		return fmt.Errorf("partial dependence: no feature targets")
	}
	x, _, err := m.PartitionData(p)
	if err != nil {
		return err
	}

	for _, algo := range m.AlgoList {
		logger.Info("partial dependence for algorithm", zap.String("algorithm", algo))
		est, err := m.Estimator(algo)
		if err != nil {
			return err
		}

		tiles := make([]*plot.Plot, len(targets))
		for ti, target := range targets {
			switch len(target) {
			case 1:
				grid, pd, err := metrics.PartialDependence(est, x, target[0], pdResolution)
				if err != nil {
					return fmt.Errorf("partial dependence for %s: %w", algo, err)
				}
				pl := plot.New()
				pl.Title.Text = titleFor(algo, "Partial Dependence", p)
				pl.X.Label.Text = fmt.Sprintf("feature %d", target[0])
				pl.Y.Label.Text = "Partial Dependence"
				xys := make(plotter.XYs, len(grid))
				for j := range grid {
					xys[j] = plotter.XY{X: grid[j], Y: pd[j]}
				}
				line, err := plotter.NewLine(xys)
				if err != nil {
					return fmt.Errorf("partial dependence for %s: %w", algo, err)
				}
				line.Color = plotutil.Color(0)
				pl.Add(line)
				tiles[ti] = pl
			case 2:
				g1, g2, pd, err := metrics.PartialDependence2D(est, x, target[0], target[1], pdResolution)
				if err != nil {
					return fmt.Errorf("partial dependence for %s: %w", algo, err)
				}
				pl := plot.New()
				pl.Title.Text = titleFor(algo, "Partial Dependence", p)
				pl.X.Label.Text = fmt.Sprintf("feature %d", target[0])
				pl.Y.Label.Text = fmt.Sprintf("feature %d", target[1])
				pl.Add(plotter.NewHeatMap(gridXYZ{x: g1, y: g2, z: pd}, palette.Heat(12, 1)))
				tiles[ti] = pl
			default:
				return fmt.Errorf("partial dependence: target %v must have one or two features", target)
			}
		}

		fig := render.NewGeneralGrid([][]*plot.Plot{tiles},
			vg.Length(len(tiles))*4*vg.Inch, 4*vg.Inch)
		if err := render.Write(&m.Config, fig, "partial_dependence", tagFor(p, algo)); err != nil {
			return err
		}
	}
	return nil
}

// Boundary renders a decision-surface comparison over two standardized
// features: a raw-data tile followed by one tile per configured estimator,
// refit on a train split, surface from its positive-class score, test
// accuracy in the title. Classification only; other model types are a
// logged no-op.
func Boundary(m *model.Model, p model.Partition, f1, f2 int) error {
	logger.Info("generating boundary plots")
	if m.Config.ModelType != model.Classification {
		logger.Info("boundary plots are for classification only")
		return nil
	}

	x, y, err := m.PartitionData(p)
	if err != nil {
		return err
	}
	rows, cols := x.Dims()
	if f1 < 0 || f1 >= cols || f2 < 0 || f2 >= cols {
		return fmt.Errorf("boundary: features (%d, %d) out of range [0, %d)", f1, f2, cols)
	}

	a := metrics.Standardize(mat.Col(nil, f1, x))
	b := metrics.Standardize(mat.Col(nil, f2, x))
	x2 := mat.NewDense(rows, 2, nil)
	for r := 0; r < rows; r++ {
		x2.Set(r, 0, a[r])
		x2.Set(r, 1, b[r])
	}

	splitter := cv.StratifiedShuffleSplit{
		Splits:   1,
		TestSize: boundaryTestSize,
		Seed:     m.Config.Seed,
	}
	folds, err := splitter.Split(y)
	if err != nil {
		return fmt.Errorf("boundary: %w", err)
	}
	fold := folds[0]

	xTrain, yTrain := cv.SubsetRows(x2, fold.Train), cv.Subset(y, fold.Train)
	xTest, yTest := cv.SubsetRows(x2, fold.Test), cv.Subset(y, fold.Test)

	const spacing = 0.5
	gx := floats.Span(make([]float64, boundaryResolution),
		floats.Min(a)-spacing, floats.Max(a)+spacing)
	gy := floats.Span(make([]float64, boundaryResolution),
		floats.Min(b)-spacing, floats.Max(b)+spacing)
	mesh := mat.NewDense(boundaryResolution*boundaryResolution, 2, nil)
	for i, xv := range gx {
		for j, yv := range gy {
			mesh.Set(i*boundaryResolution+j, 0, xv)
			mesh.Set(i*boundaryResolution+j, 1, yv)
		}
	}

	accuracy, err := metrics.ScorerByName("accuracy")
	if err != nil {
		return err
	}

	classes := metrics.Classes(y)
	dataTile := plot.New()
	dataTile.Title.Text = "Input Data"
	if err := addClassScatter(dataTile, xTrain, yTrain, classes, vg.Points(2.5)); err != nil {
		return fmt.Errorf("boundary: %w", err)
	}
	if err := addClassScatter(dataTile, xTest, yTest, classes, vg.Points(1.5)); err != nil {
		return fmt.Errorf("boundary: %w", err)
	}

	tiles := []*plot.Plot{dataTile}
	for _, algo := range m.AlgoList {
		logger.Info("boundary for algorithm", zap.String("algorithm", algo))
		est, err := m.Estimator(algo)
		if err != nil {
			return err
		}
		if err := est.Fit(xTrain, yTrain); err != nil {
			return fmt.Errorf("boundary for %s: %w", algo, err)
		}
		score, err := accuracy(est, xTest, yTest)
		if err != nil {
			return fmt.Errorf("boundary for %s: %w", algo, err)
		}
		scores, err := metrics.PositiveScores(est, mesh)
		if err != nil {
			return fmt.Errorf("boundary for %s: %w", algo, err)
		}

		z := make([][]float64, boundaryResolution)
		for i := range gx {
			z[i] = make([]float64, boundaryResolution)
			for j := range gy {
				z[i][j] = scores[i*boundaryResolution+j]
			}
		}

		pl := plot.New()
		pl.Title.Text = fmt.Sprintf("%s (%.2f)", algo, score)
		pl.Add(plotter.NewHeatMap(gridXYZ{x: gx, y: gy, z: z}, palette.Heat(12, 1)))
		if err := addClassScatter(pl, xTrain, yTrain, classes, vg.Points(2)); err != nil {
			return fmt.Errorf("boundary for %s: %w", algo, err)
		}
		if err := addClassScatter(pl, xTest, yTest, classes, vg.Points(1.2)); err != nil {
			return fmt.Errorf("boundary for %s: %w", algo, err)
		}
		tiles = append(tiles, pl)
	}

	fig := render.NewGeneralGrid([][]*plot.Plot{tiles},
		vg.Length(len(tiles))*3*vg.Inch, 3*vg.Inch)
	return render.Write(&m.Config, fig, "boundary", p.String())
}

// addClassScatter adds one scatter per class over two-column features.
func addClassScatter(pl *plot.Plot, x *mat.Dense, y []float64, classes []float64, radius vg.Length) error {
	for k, class := range classes {
		var xys plotter.XYs
		for i, v := range y {
			if v == class {
				xys = append(xys, plotter.XY{X: x.At(i, 0), Y: x.At(i, 1)})
			}
		}
		if len(xys) == 0 {
			continue
		}
		points, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		points.Color = plotutil.Color(k)
		points.Radius = radius
		pl.Add(points)
	}
	return nil
}

package plots

import (
	"fmt"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/modelviz/modelviz/model"
	"github.com/modelviz/modelviz/render"
)

// TimeSeries renders one numeric column as a line over its row index.
func TimeSeries(m *model.Model, f *model.Frame, target, tag string) error {
	logger.Info("generating time series plot")

	col, err := f.Numeric(target)
	if err != nil {
		return fmt.Errorf("time series plot: %w", err)
	}
	if len(col) < 2 {
		return fmt.Errorf("time series plot: need at least 2 observations, got %d", len(col))
	}

	xs := make([]float64, len(col))
	for i := range xs {
		xs[i] = float64(i)
	}

	ch := chart.Chart{
		Title:  target,
		Width:  3 * cellSize,
		Height: 2 * cellSize,
		YAxis:  chart.YAxis{Name: target},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    target,
				XValues: xs,
				YValues: col,
			},
		},
	}

	fig := render.NewStatFigure(ch)
	return render.Write(&m.Config, fig, "time_series_plot", tag)
}

// Candlestick renders an OHLC price chart for one symbol.
func Candlestick(m *model.Model, bars model.Bars, symbol string) error {
	logger.Info("generating candlestick chart")

	if err := bars.Validate(); err != nil {
		return fmt.Errorf("candlestick chart: %w", err)
	}
	if bars.Len() == 0 {
		return fmt.Errorf("candlestick chart: no bars for %s", symbol)
	}

	dates := make([]string, bars.Len())
	data := make([]opts.KlineData, bars.Len())
	for i := 0; i < bars.Len(); i++ {
		dates[i] = bars.Time[i].Format("2006-01-02")
		data[i] = opts.KlineData{
			Value: [4]float64{bars.Open[i], bars.Close[i], bars.Low[i], bars.High[i]},
		}
	}

	kline := charts.NewKLine()
	kline.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: strings.ToUpper(symbol) + " Candlestick",
	}))
	kline.SetXAxis(dates).AddSeries("price", data)

	fig := render.NewInteractiveFigure(kline)
	return render.Write(&m.Config, fig, "candlestick_chart", strings.ToLower(symbol))
}

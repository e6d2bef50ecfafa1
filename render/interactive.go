package render

import (
	"fmt"
	"io"
	"os"
)

// InteractiveChart is the rendering surface every go-echarts chart exposes.
type InteractiveChart interface {
	Render(w io.Writer) error
}

// InteractiveFigure wraps a go-echarts chart. Its save writes the chart's
// native rendering to the conventional path; the path convention, not the
// byte format, is the writer's contract.
type InteractiveFigure struct {
	chart InteractiveChart
}

// NewInteractiveFigure wraps an interactive chart.
func NewInteractiveFigure(c InteractiveChart) *InteractiveFigure {
	return &InteractiveFigure{chart: c}
}

// Backend reports the interactive backend.
func (f *InteractiveFigure) Backend() Backend { return Interactive }

// Save renders the chart to path, overwriting silently.
func (f *InteractiveFigure) Save(path string) error {
	if f.chart == nil {
		return fmt.Errorf("interactive figure: no chart")
	}
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("interactive figure: %w", err)
	}
	if err := f.chart.Render(w); err != nil {
		w.Close()
		return fmt.Errorf("interactive figure: %w", err)
	}
	return w.Close()
}

package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
)

// StatChart is the rendering surface go-chart exposes; both chart.Chart and
// chart.BarChart satisfy it.
type StatChart interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// StatFigure is a go-chart figure: a single chart or a grid of charts
// composited into one PNG. Nil cells are left blank.
type StatFigure struct {
	cells [][]StatChart
}

// NewStatFigure wraps a single chart.
func NewStatFigure(c StatChart) *StatFigure {
	return &StatFigure{cells: [][]StatChart{{c}}}
}

// NewStatGrid wraps a row-major grid of charts.
func NewStatGrid(cells [][]StatChart) *StatFigure {
	return &StatFigure{cells: cells}
}

// Backend reports the statistical-visualization backend.
func (f *StatFigure) Backend() Backend { return Stat }

// Save renders the chart grid to a PNG at path, overwriting silently. Each
// cell is rendered separately and pasted into a shared canvas.
func (f *StatFigure) Save(path string) error {
	if len(f.cells) == 0 {
		return fmt.Errorf("stat figure: no charts")
	}

	if len(f.cells) == 1 && len(f.cells[0]) == 1 && f.cells[0][0] != nil {
		w, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("stat figure: %w", err)
		}
		if err := f.cells[0][0].Render(chart.PNG, w); err != nil {
			w.Close()
			return fmt.Errorf("stat figure: %w", err)
		}
		return w.Close()
	}

	images := make([][]image.Image, len(f.cells))
	rowHeights := make([]int, len(f.cells))
	var colWidths []int
	for i, row := range f.cells {
		images[i] = make([]image.Image, len(row))
		for j, cell := range row {
			if cell == nil {
				continue
			}
			var buf bytes.Buffer
			if err := cell.Render(chart.PNG, &buf); err != nil {
				return fmt.Errorf("stat figure: render cell (%d, %d): %w", i, j, err)
			}
			img, err := png.Decode(&buf)
			if err != nil {
				return fmt.Errorf("stat figure: decode cell (%d, %d): %w", i, j, err)
			}
			images[i][j] = img
			if h := img.Bounds().Dy(); h > rowHeights[i] {
				rowHeights[i] = h
			}
			for len(colWidths) <= j {
				colWidths = append(colWidths, 0)
			}
			if w := img.Bounds().Dx(); w > colWidths[j] {
				colWidths[j] = w
			}
		}
	}

	totalW, totalH := 0, 0
	for _, w := range colWidths {
		totalW += w
	}
	for _, h := range rowHeights {
		totalH += h
	}
	if totalW == 0 || totalH == 0 {
		return fmt.Errorf("stat figure: all cells empty")
	}

	canvas := image.NewRGBA(image.Rect(0, 0, totalW, totalH))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	y := 0
	for i, row := range images {
		x := 0
		for j, img := range row {
			if img != nil {
				r := image.Rect(x, y, x+img.Bounds().Dx(), y+img.Bounds().Dy())
				draw.Draw(canvas, r, img, img.Bounds().Min, draw.Over)
			}
			if j < len(colWidths) {
				x += colWidths[j]
			}
		}
		y += rowHeights[i]
	}

	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("stat figure: %w", err)
	}
	if err := png.Encode(w, canvas); err != nil {
		w.Close()
		return fmt.Errorf("stat figure: %w", err)
	}
	return w.Close()
}

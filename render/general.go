package render

import (
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// GeneralFigure is a gonum/plot figure: a single plot or a grid of tiled
// panels rendered into one PNG. Saving aligns the tiles, the equivalent of
// a tight-layout pass.
type GeneralFigure struct {
	tiles  [][]*plot.Plot
	width  vg.Length
	height vg.Length
}

// NewGeneralFigure wraps a single plot at a default 6x6 inch canvas.
func NewGeneralFigure(p *plot.Plot) *GeneralFigure {
	return NewGeneralGrid([][]*plot.Plot{{p}}, 6*vg.Inch, 6*vg.Inch)
}

// NewGeneralGrid wraps a row-major grid of panels. Nil entries leave a tile
// blank. All rows must have equal length.
func NewGeneralGrid(tiles [][]*plot.Plot, width, height vg.Length) *GeneralFigure {
	return &GeneralFigure{tiles: tiles, width: width, height: height}
}

// Backend reports the general plotting backend.
func (f *GeneralFigure) Backend() Backend { return General }

// Save renders the aligned tiles to a PNG at path, overwriting silently.
func (f *GeneralFigure) Save(path string) error {
	rows := len(f.tiles)
	if rows == 0 {
		return fmt.Errorf("general figure: no panels")
	}
	cols := len(f.tiles[0])
	for i, row := range f.tiles {
		if len(row) != cols {
			return fmt.Errorf("general figure: row %d has %d panels, row 0 has %d", i, len(row), cols)
		}
	}

	img := vgimg.New(f.width, f.height)
	dc := draw.New(img)
	t := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}
	canvases := plot.Align(f.tiles, t, dc)
	for i := range f.tiles {
		for j, p := range f.tiles[i] {
			if p != nil {
				p.Draw(canvases[i][j])
			}
		}
	}

	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("general figure: %w", err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("general figure: %w", err)
	}
	return w.Close()
}

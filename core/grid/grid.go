// core/grid/grid.go
package grid

import "fmt"

// Grid is a row-major raster of float32 samples (a DEM slab).
// Row 0 is the minimum-y edge once FlipRows has been applied.
type Grid struct {
	Rows, Cols int
	vals       []float32
}

// New wraps vals as a rows×cols raster. The slice is retained, not copied.
func New(vals []float32, rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("grid: non-positive shape %dx%d", rows, cols)
	}
	if len(vals) != rows*cols {
		return nil, fmt.Errorf("grid: %d values for %dx%d shape", len(vals), rows, cols)
	}
	return &Grid{Rows: rows, Cols: cols, vals: vals}, nil
}

// At returns the sample at (row, col). Callers are expected to stay in range.
func (g *Grid) At(row, col int) float64 {
	return float64(g.vals[row*g.Cols+col])
}

// Stride subsamples every rowStep-th row and colStep-th column, starting at
// (0,0). A step below 1 is treated as 1.
func (g *Grid) Stride(rowStep, colStep int) *Grid {
	if rowStep < 1 {
		rowStep = 1
	}
	if colStep < 1 {
		colStep = 1
	}
	rows := (g.Rows + rowStep - 1) / rowStep
	cols := (g.Cols + colStep - 1) / colStep
	out := make([]float32, 0, rows*cols)
	for r := 0; r < g.Rows; r += rowStep {
		for c := 0; c < g.Cols; c += colStep {
			out = append(out, g.vals[r*g.Cols+c])
		}
	}
	return &Grid{Rows: rows, Cols: cols, vals: out}
}

// FlipRows returns a copy with row order reversed (max-y first becomes last).
func (g *Grid) FlipRows() *Grid {
	out := make([]float32, len(g.vals))
	for r := 0; r < g.Rows; r++ {
		copy(out[(g.Rows-1-r)*g.Cols:(g.Rows-r)*g.Cols], g.vals[r*g.Cols:(r+1)*g.Cols])
	}
	return &Grid{Rows: g.Rows, Cols: g.Cols, vals: out}
}

// Bilinear interpolates the sample at fractional indices (row, col).
// Both must lie in [0, dim-1); outside that the point has no enclosing cell.
func (g *Grid) Bilinear(row, col float64) (float64, error) {
	if col < 0 || col >= float64(g.Cols-1) || row < 0 || row >= float64(g.Rows-1) {
		return 0, fmt.Errorf("grid: point (row=%g, col=%g) outside %dx%d raster", row, col, g.Rows, g.Cols)
	}
	r0, c0 := int(row), int(col)
	dr, dc := row-float64(r0), col-float64(c0)
	z00 := g.At(r0, c0)
	z01 := g.At(r0, c0+1)
	z10 := g.At(r0+1, c0)
	z11 := g.At(r0+1, c0+1)
	top := z00*(1-dc) + z01*dc
	bot := z10*(1-dc) + z11*dc
	return top*(1-dr) + bot*dr, nil
}

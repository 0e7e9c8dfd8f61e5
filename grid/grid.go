package grid

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidDimensions = errors.New("grid: dimensions must be positive")
	ErrRaggedRows        = errors.New("grid: rows must all have the same length")
	ErrNoFiniteSamples   = errors.New("grid: no finite samples")
	ErrBoundsOutOfRange  = errors.New("grid: bounds out of range")
)

// Grid is a dense 2D array of float64 samples in row-major order.
//
// Non-finite entries (NaN, +/-Inf) mark invalid samples and are expected
// input; every consumer in this module tolerates them.
type Grid struct {
	vals []float64
	w, h int
}

// New creates a zero-filled grid with the given width (columns) and
// height (rows).
func New(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	return &Grid{vals: make([]float64, w*h), w: w, h: h}, nil
}

// NewFilled creates a grid with every sample set to v.
func NewFilled(w, h int, v float64) (*Grid, error) {
	g, err := New(w, h)
	if err != nil {
		return nil, err
	}
	for i := range g.vals {
		g.vals[i] = v
	}
	return g, nil
}

// FromRows creates a grid from a slice of equal-length rows. The data is
// copied.
func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidDimensions)
	}

	w := len(rows[0])
	g, err := New(w, len(rows))
	if err != nil {
		return nil, err
	}

	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d", ErrRaggedRows, y, len(row), w)
		}
		copy(g.Row(y), row)
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Size returns the total number of samples.
func (g *Grid) Size() int { return len(g.vals) }

// At returns the sample at column x, row y.
func (g *Grid) At(x, y int) float64 { return g.vals[y*g.w+x] }

// Set stores v at column x, row y.
func (g *Grid) Set(x, y int, v float64) { g.vals[y*g.w+x] = v }

// Row returns row y as a mutable slice view into the grid.
func (g *Grid) Row(y int) []float64 { return g.vals[y*g.w : (y+1)*g.w] }

// Values returns the backing row-major slice. Mutations are visible to the
// grid.
func (g *Grid) Values() []float64 { return g.vals }

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	vals := make([]float64, len(g.vals))
	copy(vals, g.vals)
	return &Grid{vals: vals, w: g.w, h: g.h}
}

// SameShape reports whether o has the same dimensions as g.
func (g *Grid) SameShape(o *Grid) bool {
	return o != nil && g.w == o.w && g.h == o.h
}

// FiniteMask returns a row-major boolean mask: true where the sample is
// finite.
func (g *Grid) FiniteMask() []bool {
	mask := make([]bool, len(g.vals))
	for i, v := range g.vals {
		mask[i] = IsFinite(v)
	}
	return mask
}

// CountFinite returns the number of finite samples.
func (g *Grid) CountFinite() int {
	n := 0
	for _, v := range g.vals {
		if IsFinite(v) {
			n++
		}
	}
	return n
}

// Bounds is an inclusive rectangular region of a grid.
type Bounds struct {
	X0, Y0 int // top-left sample
	X1, Y1 int // bottom-right sample, inclusive
}

// Width returns the number of columns covered.
func (b Bounds) Width() int { return b.X1 - b.X0 + 1 }

// Height returns the number of rows covered.
func (b Bounds) Height() int { return b.Y1 - b.Y0 + 1 }

// FiniteBounds returns the tightest bounds containing every finite sample.
// A grid with no finite samples has no meaningful bounds and yields
// [ErrNoFiniteSamples].
func (g *Grid) FiniteBounds() (Bounds, error) {
	x0, y0 := g.w, g.h
	x1, y1 := -1, -1

	for y := 0; y < g.h; y++ {
		row := g.Row(y)
		for x, v := range row {
			if !IsFinite(v) {
				continue
			}
			if x < x0 {
				x0 = x
			}
			if x > x1 {
				x1 = x
			}
			if y < y0 {
				y0 = y
			}
			if y > y1 {
				y1 = y
			}
		}
	}

	if x1 < 0 {
		return Bounds{}, ErrNoFiniteSamples
	}
	return Bounds{X0: x0, Y0: y0, X1: x1, Y1: y1}, nil
}

// SubGrid returns a copy of the region described by b.
func (g *Grid) SubGrid(b Bounds) (*Grid, error) {
	if b.X0 < 0 || b.Y0 < 0 || b.X1 >= g.w || b.Y1 >= g.h || b.X0 > b.X1 || b.Y0 > b.Y1 {
		return nil, fmt.Errorf("%w: [%d:%d]x[%d:%d] in %dx%d", ErrBoundsOutOfRange, b.X0, b.X1, b.Y0, b.Y1, g.w, g.h)
	}

	out, err := New(b.Width(), b.Height())
	if err != nil {
		return nil, err
	}
	for y := b.Y0; y <= b.Y1; y++ {
		copy(out.Row(y-b.Y0), g.Row(y)[b.X0:b.X1+1])
	}
	return out, nil
}

// Meshgrid expands the 1D axes x (length w) and y (length h) into two
// row-major grids xx and yy of shape w x h: xx varies along columns, yy
// along rows.
func Meshgrid(x, y []float64) (xx, yy *Grid, err error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, nil, fmt.Errorf("%w: empty axes", ErrInvalidDimensions)
	}

	xx, err = New(len(x), len(y))
	if err != nil {
		return nil, nil, err
	}
	yy, err = New(len(x), len(y))
	if err != nil {
		return nil, nil, err
	}

	for yi := range y {
		copy(xx.Row(yi), x)
		row := yy.Row(yi)
		for xi := range row {
			row[xi] = y[yi]
		}
	}
	return xx, yy, nil
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

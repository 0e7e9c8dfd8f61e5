package surface

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samkberry/prysm/grid"
	"github.com/samkberry/prysm/internal/lstsq"
)

// FitPlane least-squares fits z = a*x + b*y + c to the finite samples of z
// and evaluates the fitted plane over the full grid, including positions
// that were invalid in z. x supplies one coordinate per column and y one
// per row.
//
// Fewer than 3 finite samples, or finite samples that are collinear, cannot
// determine a plane; those cases return a degeneracy error instead of
// meaningless coefficients.
func FitPlane(x, y []float64, z *grid.Grid) (*grid.Grid, error) {
	if len(x) != z.Width() || len(y) != z.Height() {
		return nil, fmt.Errorf("%w: x %d, y %d for %dx%d grid",
			ErrAxisLength, len(x), len(y), z.Width(), z.Height())
	}

	xx, yy, err := grid.Meshgrid(x, y)
	if err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}

	finite := z.CountFinite()
	if finite < 3 {
		return nil, fmt.Errorf("surface: plane fit needs at least 3 finite samples, have %d: %w",
			finite, lstsq.ErrDegenerate)
	}

	design := mat.NewDense(finite, 3, nil)
	rhs := make([]float64, finite)
	row := 0
	for i, v := range z.Values() {
		if !grid.IsFinite(v) {
			continue
		}
		design.SetRow(row, []float64{xx.Values()[i], yy.Values()[i], 1})
		rhs[row] = v
		row++
	}

	coefs, err := lstsq.Solve(design, rhs)
	if err != nil {
		return nil, fmt.Errorf("surface: plane fit: %w", err)
	}

	plane, err := grid.New(z.Width(), z.Height())
	if err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}
	vals := plane.Values()
	for i := range vals {
		vals[i] = coefs[0]*xx.Values()[i] + coefs[1]*yy.Values()[i] + coefs[2]
	}
	return plane, nil
}

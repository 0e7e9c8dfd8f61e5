// Package lstsq solves small dense least-squares systems with an explicit
// degeneracy error instead of silently returning meaningless coefficients.
package lstsq

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrDegenerate reports a least-squares system without enough independent
// equations to determine its coefficients.
var ErrDegenerate = errors.New("lstsq: degenerate least-squares system")

// Solve finds the coefficient vector c minimizing ||A*c - b|| for a dense
// design matrix A with at least as many rows as columns. Rank-deficient and
// ill-conditioned systems yield [ErrDegenerate] rather than garbage
// coefficients.
func Solve(a *mat.Dense, b []float64) ([]float64, error) {
	rows, cols := a.Dims()
	if rows < cols {
		return nil, fmt.Errorf("%w: %d equations for %d unknowns", ErrDegenerate, rows, cols)
	}
	if len(b) != rows {
		return nil, fmt.Errorf("lstsq: rhs length %d does not match %d rows", len(b), rows)
	}

	var c mat.VecDense
	if err := c.SolveVec(a, mat.NewVecDense(rows, b)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}

	out := make([]float64, cols)
	for i := range out {
		out[i] = c.AtVec(i)
	}
	return out, nil
}

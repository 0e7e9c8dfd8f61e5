// Package coordinates converts between Cartesian and polar representations
// and builds the normalized polar grids the Zernike and geometry packages
// evaluate over.
package coordinates

import (
	"math"

	"github.com/samkberry/prysm/grid"
)

// CartToPolar converts Cartesian (x, y) to polar (rho, phi) with phi in
// (-pi, pi].
func CartToPolar(x, y float64) (rho, phi float64) {
	return math.Hypot(x, y), math.Atan2(y, x)
}

// PolarToCart converts polar (rho, phi) to Cartesian (x, y).
func PolarToCart(rho, phi float64) (x, y float64) {
	return rho * math.Cos(phi), rho * math.Sin(phi)
}

// RhoPhiGrid builds polar coordinate grids of shape w x h over the square
// spanning [-1, 1] on both axes, so rho is 1 at the midpoints of the grid
// edges and sqrt(2) in the corners.
func RhoPhiGrid(w, h int) (rho, phi *grid.Grid, err error) {
	x := UnitAxis(w)
	y := UnitAxis(h)

	rho, err = grid.New(w, h)
	if err != nil {
		return nil, nil, err
	}
	phi, err = grid.New(w, h)
	if err != nil {
		return nil, nil, err
	}

	for yi, yv := range y {
		rhoRow := rho.Row(yi)
		phiRow := phi.Row(yi)
		for xi, xv := range x {
			rhoRow[xi], phiRow[xi] = CartToPolar(xv, yv)
		}
	}
	return rho, phi, nil
}

// UnitAxis returns n uniformly spaced samples covering [-1, 1] inclusive.
// A single-sample axis sits at 0.
func UnitAxis(n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		return out
	}
	for i := range out {
		out[i] = -1 + 2*float64(i)/float64(n-1)
	}
	return out
}

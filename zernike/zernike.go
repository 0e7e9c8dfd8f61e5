// Package zernike evaluates, fits, and synthesizes Zernike polynomial
// wavefront descriptions over the unit disk.
//
// Terms follow the Wyant/Fringe convention interferometer software reports
// in, with a Noll reindexing available. Fitting ignores invalid (NaN or
// Inf) samples, so a cropped map with dropouts can be fit directly.
package zernike

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/samkberry/prysm/coordinates"
	"github.com/samkberry/prysm/grid"
	"github.com/samkberry/prysm/internal/lstsq"
)

var (
	ErrUnknownOrdering = errors.New("zernike: unknown ordering")
	ErrTooManyTerms    = errors.New("zernike: too many terms for ordering")
	ErrCoefficients    = errors.New("zernike: coefficient count mismatch")
)

// Ordering selects how linear term indices map onto polynomials.
type Ordering string

const (
	// Fringe is the Wyant/Fringe ordering, index 0 = piston.
	Fringe Ordering = "fringe"
	// Noll is the Noll ordering used in the atmospheric-optics literature,
	// shifted so index 0 = piston.
	Noll Ordering = "noll"
)

// nollIndex maps linear Noll indices onto the Fringe-ordered term table.
var nollIndex = []int{
	0, 1, 2, 3, 4, 5, 6, 7, 9, 10,
	8, 11, 12, 16, 17, 13, 14, 18, 19, 25,
	26, 15, 20, 21, 27, 28, 36, 37, 22, 23,
	29, 30, 38, 39, 49, 50, 24,
}

// MaxTerms returns the number of terms the ordering can address.
func (o Ordering) MaxTerms() (int, error) {
	switch o {
	case Fringe:
		return 49, nil
	case Noll:
		return len(nollIndex), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOrdering, string(o))
	}
}

func (o Ordering) termIndex(i int) (int, error) {
	max, err := o.MaxTerms()
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= max {
		return 0, fmt.Errorf("%w: index %d, ordering %q holds %d", ErrTooManyTerms, i, string(o), max)
	}
	if o == Noll {
		return nollIndex[i], nil
	}
	return i, nil
}

// TermAt returns the polynomial at linear index i under the ordering.
func (o Ordering) TermAt(i int) (Term, error) {
	idx, err := o.termIndex(i)
	if err != nil {
		return Term{}, err
	}
	return terms[idx], nil
}

// Names returns the names of the first n terms under the ordering.
func (o Ordering) Names(n int) ([]string, error) {
	out := make([]string, n)
	for i := range out {
		t, err := o.TermAt(i)
		if err != nil {
			return nil, err
		}
		out[i] = t.Name
	}
	return out, nil
}

// Config controls fitting and synthesis.
type Config struct {
	// Ordering of the coefficient vector. Zero value means Fringe.
	Ordering Ordering
	// Normalize scales each term by its unit-RMS norm.
	Normalize bool
}

func (c Config) ordering() Ordering {
	if c.Ordering == "" {
		return Fringe
	}
	return c.Ordering
}

// Result holds fitted coefficients and the RMS misfit over the finite
// samples.
type Result struct {
	Coefficients []float64
	Residual     float64
}

// Fit least-squares fits nterms Zernike coefficients to the finite samples
// of z, evaluated over the unit disk inscribed in the grid. The residual is
// the RMS error between the data and the reconstruction at the finite
// samples.
func Fit(z *grid.Grid, nterms int, cfg Config) (Result, error) {
	ord := cfg.ordering()
	max, err := ord.MaxTerms()
	if err != nil {
		return Result{}, err
	}
	if nterms < 1 || nterms > max {
		return Result{}, fmt.Errorf("%w: %d terms, ordering %q holds %d", ErrTooManyTerms, nterms, string(ord), max)
	}

	rho, phi, err := coordinates.RhoPhiGrid(z.Width(), z.Height())
	if err != nil {
		return Result{}, fmt.Errorf("zernike: %w", err)
	}

	finite := z.CountFinite()
	if finite < nterms {
		return Result{}, fmt.Errorf("zernike: fit of %d terms needs at least %d finite samples, have %d: %w",
			nterms, nterms, finite, lstsq.ErrDegenerate)
	}

	fitTerms := make([]Term, nterms)
	for j := range fitTerms {
		t, err := ord.TermAt(j)
		if err != nil {
			return Result{}, err
		}
		fitTerms[j] = t
	}

	design := mat.NewDense(finite, nterms, nil)
	rhs := make([]float64, finite)
	row := 0
	for i, v := range z.Values() {
		if !grid.IsFinite(v) {
			continue
		}
		r, p := rho.Values()[i], phi.Values()[i]
		for j, t := range fitTerms {
			e := t.Eval(r, p)
			if cfg.Normalize {
				e *= t.Norm
			}
			design.Set(row, j, e)
		}
		rhs[row] = v
		row++
	}

	coefs, err := lstsq.Solve(design, rhs)
	if err != nil {
		return Result{}, fmt.Errorf("zernike: fit: %w", err)
	}

	var sumsq float64
	for i := 0; i < finite; i++ {
		fit := 0.0
		for j, c := range coefs {
			fit += c * design.At(i, j)
		}
		d := rhs[i] - fit
		sumsq += d * d
	}
	return Result{
		Coefficients: coefs,
		Residual:     math.Sqrt(sumsq / float64(finite)),
	}, nil
}

// Synthesize evaluates a coefficient vector over a w by h unit-disk grid,
// producing the modeled phase. Coefficients index terms under the config's
// ordering; a zero coefficient skips its term.
func Synthesize(coefs []float64, w, h int, cfg Config) (*grid.Grid, error) {
	ord := cfg.ordering()
	max, err := ord.MaxTerms()
	if err != nil {
		return nil, err
	}
	if len(coefs) > max {
		return nil, fmt.Errorf("%w: %d coefficients, ordering %q holds %d", ErrCoefficients, len(coefs), string(ord), max)
	}

	rho, phi, err := coordinates.RhoPhiGrid(w, h)
	if err != nil {
		return nil, fmt.Errorf("zernike: %w", err)
	}
	out, err := grid.New(w, h)
	if err != nil {
		return nil, fmt.Errorf("zernike: %w", err)
	}

	vals := out.Values()
	for j, c := range coefs {
		if c == 0 {
			continue
		}
		t, err := ord.TermAt(j)
		if err != nil {
			return nil, err
		}
		scale := c
		if cfg.Normalize {
			scale *= t.Norm
		}
		for i := range vals {
			vals[i] += scale * t.Eval(rho.Values()[i], phi.Values()[i])
		}
	}
	return out, nil
}

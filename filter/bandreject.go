// Package filter provides frequency-domain spatial filters for surface
// grids.
package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/samkberry/prysm/ft"
	"github.com/samkberry/prysm/grid"
)

var ErrInvalidWavelength = errors.New("filter: invalid wavelength cutoffs")

// Bandreject removes spatial-frequency content outside the band between the
// two wavelength cutoffs. Content with wavelengths shorter than wlLow or
// longer than wlHigh is rejected; the retained pass-band is the region
// between 1/wlHigh and 1/wlLow, evaluated per axis (a rectangular region in
// frequency space, not a radial annulus).
//
// Invalid (non-finite) input samples contribute zero to the transform. This
// zero-filling biases the filtered result in proportion to the dropout
// fraction; the bias is accepted behavior, and callers are expected to
// restore invalid positions afterwards. Bandreject itself never introduces
// invalid samples.
//
// wlLow may be 0 and wlHigh may be +Inf; together those cutoffs make the
// pass-band cover the whole representable frequency range, and the input is
// returned unchanged up to transform round-off.
func Bandreject(g *grid.Grid, sampleSpacing, wlLow, wlHigh float64) (*grid.Grid, error) {
	if math.IsNaN(wlLow) || math.IsNaN(wlHigh) || wlLow < 0 || wlHigh <= 0 || wlLow >= wlHigh {
		return nil, fmt.Errorf("%w: low %g, high %g", ErrInvalidWavelength, wlLow, wlHigh)
	}

	w, h := g.Width(), g.Height()
	ux, err := ft.Frequencies(sampleSpacing, w)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	uy, err := ft.Frequencies(sampleSpacing, h)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	// Shorter wavelength means higher frequency, so the cutoffs invert.
	fhigh := 1 / wlLow
	flow := 1 / wlHigh
	mask := rejectMask(ux, uy, flow, fhigh)

	work := make([]complex128, w*h)
	for i, v := range g.Values() {
		if grid.IsFinite(v) {
			work[i] = complex(v, 0)
		}
	}

	tr, err := ft.NewTransform2D(w, h)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	scratch := make([]complex128, w*h)
	if err := ft.InverseShift2D(scratch, work, w, h); err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	if err := tr.Forward(scratch, scratch); err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	if err := ft.Shift2D(work, scratch, w, h); err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	for i, reject := range mask {
		if reject {
			work[i] = 0
		}
	}

	if err := ft.InverseShift2D(scratch, work, w, h); err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	if err := tr.Inverse(scratch, scratch); err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	if err := ft.Shift2D(work, scratch, w, h); err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	out, err := grid.New(w, h)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	vals := out.Values()
	for i, c := range work {
		vals[i] = real(c)
	}
	return out, nil
}

// rejectMask marks the frequency bins a band-reject filter zeroes: anything
// beyond +/-fhigh on either axis, plus the interior block within +/-flow on
// both axes. The mask is row-major over the centered (ux, uy) mesh.
func rejectMask(ux, uy []float64, flow, fhigh float64) []bool {
	w, h := len(ux), len(uy)
	mask := make([]bool, w*h)
	for y, fy := range uy {
		highY := fy < -fhigh || fy > fhigh
		lowY := fy > -flow && fy < flow
		for x, fx := range ux {
			highpass := highY || fx < -fhigh || fx > fhigh
			lowpass := lowY && fx > -flow && fx < flow
			mask[y*w+x] = highpass || lowpass
		}
	}
	return mask
}

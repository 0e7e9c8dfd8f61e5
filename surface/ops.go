package surface

import (
	"fmt"
	"math"

	"github.com/samkberry/prysm/filter"
	"github.com/samkberry/prysm/ft"
	"github.com/samkberry/prysm/grid"
	"github.com/samkberry/prysm/internal/lstsq"
	"github.com/samkberry/prysm/stats/height"
)

// Crop truncates the phase grid to the tightest bounding box containing all
// finite samples and narrows the coordinate axes with it. A grid with no
// finite samples has no meaningful bounding box and fails without modifying
// the map. The intensity grid is not narrowed; it stays aligned with the
// raw frame.
func (m *Map) Crop() (*Map, error) {
	bounds, err := m.phase.FiniteBounds()
	if err != nil {
		return nil, fmt.Errorf("surface: crop: %w", err)
	}

	cropped, err := m.phase.SubGrid(bounds)
	if err != nil {
		return nil, fmt.Errorf("surface: crop: %w", err)
	}

	m.phase = cropped
	m.x = append([]float64(nil), m.x[bounds.X0:bounds.X1+1]...)
	m.y = append([]float64(nil), m.y[bounds.Y0:bounds.Y1+1]...)
	return m, nil
}

// RemovePiston subtracts the mean of the finite phase samples from every
// sample. Invalid samples stay invalid. A map with no finite samples fails
// unchanged.
func (m *Map) RemovePiston() (*Map, error) {
	mean := height.Mean(m.phase)
	if math.IsNaN(mean) {
		return nil, fmt.Errorf("surface: piston removal needs finite samples: %w", lstsq.ErrDegenerate)
	}

	vals := m.phase.Values()
	for i := range vals {
		vals[i] -= mean
	}
	return m, nil
}

// RemoveTipTilt subtracts the least-squares best-fit plane from the phase
// grid, removing the first-order (tip/tilt) component. The fit ignores
// invalid samples but the subtraction covers the full grid.
func (m *Map) RemoveTipTilt() (*Map, error) {
	plane, err := FitPlane(m.x, m.y, m.phase)
	if err != nil {
		return nil, err
	}

	vals := m.phase.Values()
	for i, p := range plane.Values() {
		vals[i] -= p
	}
	return m, nil
}

// RemovePistonTipTilt removes tilt first, then piston, so the residual mean
// of the finite samples approaches zero.
func (m *Map) RemovePistonTipTilt() (*Map, error) {
	if _, err := m.RemoveTipTilt(); err != nil {
		return nil, err
	}
	return m.RemovePiston()
}

// Bandreject removes spatial wavelengths outside [wlLow, wlHigh] from the
// phase grid using the map's sample spacing, then restores the invalid
// markers at their original positions. Requires physical coordinates.
//
// The filter zero-fills dropouts before transforming; the resulting bias
// grows with the dropout fraction and is accepted behavior rather than
// something a different imputation should hide.
func (m *Map) Bandreject(wlLow, wlHigh float64) (*Map, error) {
	spacing, err := m.SampleSpacing()
	if err != nil {
		return nil, err
	}

	filtered, err := filter.Bandreject(m.phase, spacing, wlLow, wlHigh)
	if err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}

	vals := filtered.Values()
	for i, finite := range m.phase.FiniteMask() {
		if !finite {
			vals[i] = math.NaN()
		}
	}

	m.phase = filtered
	return m, nil
}

// Spectrum is the centered 2D power spectral density of a phase grid with
// its physical spatial-frequency axes.
type Spectrum struct {
	Power  *grid.Grid
	FX, FY []float64
}

// PSD computes the centered power spectral density of the phase grid.
// Invalid samples contribute zero, with the same dropout bias caveat as
// [Map.Bandreject]. Requires physical coordinates.
func (m *Map) PSD() (*Spectrum, error) {
	spacing, err := m.SampleSpacing()
	if err != nil {
		return nil, err
	}

	w, h := m.phase.Width(), m.phase.Height()
	work := make([]complex128, w*h)
	for i, v := range m.phase.Values() {
		if grid.IsFinite(v) {
			work[i] = complex(v, 0)
		}
	}

	tr, err := ft.NewTransform2D(w, h)
	if err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}
	scratch := make([]complex128, w*h)
	if err := ft.InverseShift2D(scratch, work, w, h); err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}
	if err := tr.Forward(scratch, scratch); err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}
	if err := ft.Shift2D(work, scratch, w, h); err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}

	power, err := grid.New(w, h)
	if err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}
	if err := ft.Power(power.Values(), work); err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}

	fx, err := ft.Frequencies(spacing, w)
	if err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}
	fy, err := ft.Frequencies(spacing, h)
	if err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}
	return &Spectrum{Power: power, FX: fx, FY: fy}, nil
}

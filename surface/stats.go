package surface

import (
	"github.com/samkberry/prysm/stats/height"
)

// Stats computes the full height-statistics summary of the phase grid.
// All statistics ignore invalid samples.
func (m *Map) Stats() height.Stats {
	return height.Calculate(m.phase)
}

// PV returns the peak-to-valley height of the finite phase samples.
func (m *Map) PV() float64 { return height.PV(m.phase) }

// RMS returns the root-mean-square height of the finite phase samples.
func (m *Map) RMS() float64 { return height.RMS(m.phase) }

// Ra returns the mean absolute deviation from the mean height.
func (m *Map) Ra() float64 { return height.Ra(m.phase) }

// DropoutPercent returns the percentage of samples that are invalid. It is
// recomputed from the current grid, so it reflects any cropping that has
// happened since construction.
func (m *Map) DropoutPercent() float64 { return height.DropoutPercent(m.phase) }

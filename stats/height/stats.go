// Package height computes surface-height statistics over a 2D grid,
// skipping invalid (non-finite) samples throughout.
package height

import (
	"math"

	"github.com/samkberry/prysm/grid"
)

// Stats holds height-domain statistics of a surface grid.
//
// All reductions run over finite samples only; dropout figures quantify the
// invalid remainder. For a grid with no finite samples every reduction is
// NaN.
type Stats struct {
	Samples        int     // total sample count
	Finite         int     // finite sample count
	Dropouts       int     // non-finite sample count
	DropoutPercent float64 // 100 * Dropouts / Samples
	Mean           float64
	Min            float64
	Max            float64
	PV             float64 // peak-to-valley: Max - Min
	RMS            float64 // root mean square
	Ra             float64 // mean absolute deviation from Mean
	StdDev         float64 // population standard deviation
}

// Calculate computes all height statistics over g.
//
// Two passes are used: Ra needs the mean before deviations can be summed.
func Calculate(g *grid.Grid) Stats {
	vals := g.Values()
	s := Stats{
		Samples: len(vals),
		Mean:    math.NaN(),
		Min:     math.NaN(),
		Max:     math.NaN(),
		PV:      math.NaN(),
		RMS:     math.NaN(),
		Ra:      math.NaN(),
		StdDev:  math.NaN(),
	}

	var (
		sum   float64
		sumSq float64
		minV  = math.Inf(1)
		maxV  = math.Inf(-1)
	)
	for _, v := range vals {
		if !grid.IsFinite(v) {
			continue
		}
		s.Finite++
		sum += v
		sumSq += v * v
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	s.Dropouts = s.Samples - s.Finite
	s.DropoutPercent = 100 * float64(s.Dropouts) / float64(s.Samples)
	if s.Finite == 0 {
		return s
	}

	nf := float64(s.Finite)
	s.Mean = sum / nf
	s.Min = minV
	s.Max = maxV
	s.PV = maxV - minV
	s.RMS = math.Sqrt(sumSq / nf)

	var absDev, sqDev float64
	for _, v := range vals {
		if !grid.IsFinite(v) {
			continue
		}
		d := v - s.Mean
		absDev += math.Abs(d)
		sqDev += d * d
	}
	s.Ra = absDev / nf
	s.StdDev = math.Sqrt(sqDev / nf)

	return s
}

// PV returns max - min of the finite samples, or NaN if none are finite.
func PV(g *grid.Grid) float64 {
	minV, maxV := math.Inf(1), math.Inf(-1)
	found := false
	for _, v := range g.Values() {
		if !grid.IsFinite(v) {
			continue
		}
		found = true
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if !found {
		return math.NaN()
	}
	return maxV - minV
}

// RMS returns the root mean square of the finite samples, or NaN if none are
// finite.
func RMS(g *grid.Grid) float64 {
	var sumSq float64
	n := 0
	for _, v := range g.Values() {
		if !grid.IsFinite(v) {
			continue
		}
		sumSq += v * v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return math.Sqrt(sumSq / float64(n))
}

// Mean returns the mean of the finite samples, or NaN if none are finite.
func Mean(g *grid.Grid) float64 {
	var sum float64
	n := 0
	for _, v := range g.Values() {
		if !grid.IsFinite(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Ra returns the mean absolute deviation of the finite samples from their
// mean, or NaN if none are finite.
func Ra(g *grid.Grid) float64 {
	mean := Mean(g)
	if math.IsNaN(mean) {
		return math.NaN()
	}
	var absDev float64
	n := 0
	for _, v := range g.Values() {
		if !grid.IsFinite(v) {
			continue
		}
		absDev += math.Abs(v - mean)
		n++
	}
	return absDev / float64(n)
}

// DropoutPercent returns the percentage of non-finite samples relative to
// the total sample count. It is recomputed on every call, never cached.
func DropoutPercent(g *grid.Grid) float64 {
	return 100 * float64(g.Size()-g.CountFinite()) / float64(g.Size())
}

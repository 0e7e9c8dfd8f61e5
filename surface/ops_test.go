package surface

import (
	"errors"
	"math"
	"testing"

	"github.com/samkberry/prysm/grid"
	"github.com/samkberry/prysm/internal/lstsq"
)

func nanBorderGrid(t *testing.T) *grid.Grid {
	t.Helper()
	nan := math.NaN()
	return mustGrid(t, [][]float64{
		{nan, nan, nan, nan, nan},
		{nan, 1, 2, 3, nan},
		{nan, 4, 5, 6, nan},
		{nan, 7, 8, 9, nan},
		{nan, nan, nan, nan, nan},
	})
}

func TestCrop(t *testing.T) {
	m, err := New(nanBorderGrid(t), WithAxes(
		[]float64{0, 1, 2, 3, 4},
		[]float64{10, 11, 12, 13, 14},
	))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := m.Crop(); err != nil {
		t.Fatalf("Crop: %v", err)
	}

	if m.Phase().Width() != 3 || m.Phase().Height() != 3 {
		t.Fatalf("cropped shape: got %dx%d, want 3x3", m.Phase().Width(), m.Phase().Height())
	}
	if got := m.Phase().At(0, 0); got != 1 {
		t.Errorf("cropped (0,0): got %g, want 1", got)
	}
	if got := m.Phase().At(2, 2); got != 9 {
		t.Errorf("cropped (2,2): got %g, want 9", got)
	}

	// Axes narrow with the grid.
	if len(m.X()) != 3 || m.X()[0] != 1 || m.X()[2] != 3 {
		t.Errorf("cropped x axis: got %v, want [1 2 3]", m.X())
	}
	if len(m.Y()) != 3 || m.Y()[0] != 11 || m.Y()[2] != 13 {
		t.Errorf("cropped y axis: got %v, want [11 12 13]", m.Y())
	}
}

func TestCrop_AllInvalid(t *testing.T) {
	nan := math.NaN()
	g := mustGrid(t, [][]float64{{nan, nan}, {nan, nan}})
	m, err := New(g)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := m.Crop(); !errors.Is(err, grid.ErrNoFiniteSamples) {
		t.Fatalf("Crop on all-invalid grid: got %v, want ErrNoFiniteSamples", err)
	}
	// Failed crop leaves the map untouched.
	if m.Phase().Width() != 2 || len(m.X()) != 2 {
		t.Error("failed crop modified the map")
	}
}

func TestCrop_NoFiniteBorder(t *testing.T) {
	g := mustGrid(t, [][]float64{{1, 2}, {3, 4}})
	m, err := New(g)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := m.Crop(); err != nil {
		t.Fatalf("Crop: %v", err)
	}
	if m.Phase().Width() != 2 || m.Phase().Height() != 2 {
		t.Errorf("crop without dropouts changed shape to %dx%d", m.Phase().Width(), m.Phase().Height())
	}
}

func TestRemovePiston(t *testing.T) {
	nan := math.NaN()
	g := mustGrid(t, [][]float64{
		{2, 4, nan},
		{6, 8, nan},
	})
	m, err := New(g)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := m.RemovePiston(); err != nil {
		t.Fatalf("RemovePiston: %v", err)
	}

	// Mean of finite samples was 5; residual mean is zero.
	if got := m.Phase().At(0, 0); !almostEqual(got, -3, tolerance) {
		t.Errorf("(0,0): got %g, want -3", got)
	}
	if got := m.Stats().Mean; !almostEqual(got, 0, tolerance) {
		t.Errorf("residual mean: got %g, want 0", got)
	}
	// Dropouts stay dropouts.
	if !math.IsNaN(m.Phase().At(2, 0)) {
		t.Error("piston removal filled an invalid sample")
	}
}

func TestRemovePiston_AllInvalid(t *testing.T) {
	nan := math.NaN()
	g := mustGrid(t, [][]float64{{nan, nan}})
	m, err := New(g)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := m.RemovePiston(); !errors.Is(err, lstsq.ErrDegenerate) {
		t.Errorf("RemovePiston on all-invalid grid: got %v, want ErrDegenerate", err)
	}
}

func TestRemoveTipTilt_ExactPlane(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 2}
	g, err := grid.New(4, 3)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	for iy, yv := range y {
		for ix, xv := range x {
			g.Set(ix, iy, 2*xv+3*yv+1)
		}
	}

	m, err := New(g, WithAxes(x, y))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := m.RemoveTipTilt(); err != nil {
		t.Fatalf("RemoveTipTilt: %v", err)
	}

	for _, v := range m.Phase().Values() {
		if !almostEqual(v, 0, 1e-9) {
			t.Fatalf("residual after removing exact plane: got %g, want 0", v)
		}
	}
}

func TestRemoveTipTilt_IgnoresInvalid(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 2, 3}
	g, err := grid.New(4, 4)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	for iy, yv := range y {
		for ix, xv := range x {
			g.Set(ix, iy, -xv+0.5*yv+2)
		}
	}
	g.Set(1, 1, math.NaN())
	g.Set(3, 0, math.Inf(1))

	m, err := New(g, WithAxes(x, y))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := m.RemoveTipTilt(); err != nil {
		t.Fatalf("RemoveTipTilt: %v", err)
	}

	for i, v := range m.Phase().Values() {
		if !grid.IsFinite(v) {
			continue
		}
		if !almostEqual(v, 0, 1e-9) {
			t.Fatalf("residual at %d: got %g, want 0", i, v)
		}
	}
	// Plane subtraction from an invalid sample leaves it invalid.
	if grid.IsFinite(m.Phase().At(1, 1)) {
		t.Error("tilt removal produced a finite value at an invalid position")
	}
}

func TestRemovePistonTipTilt(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{0, 1, 2}
	g, err := grid.New(3, 3)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	for iy, yv := range y {
		for ix, xv := range x {
			g.Set(ix, iy, 7*xv-2*yv+100)
		}
	}

	m, err := New(g, WithAxes(x, y))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := m.RemovePistonTipTilt(); err != nil {
		t.Fatalf("RemovePistonTipTilt: %v", err)
	}
	if got := m.Stats().Mean; !almostEqual(got, 0, 1e-9) {
		t.Errorf("residual mean: got %g, want 0", got)
	}
}

func TestBandreject_RestoresInvalidPositions(t *testing.T) {
	g, err := grid.New(8, 8)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	for i := range g.Values() {
		g.Values()[i] = float64(i % 5)
	}
	g.Set(2, 3, math.NaN())
	g.Set(6, 6, math.Inf(-1))

	x := make([]float64, 8)
	y := make([]float64, 8)
	for i := range x {
		x[i] = float64(i)
		y[i] = float64(i)
	}
	m, err := New(g, WithAxes(x, y))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := m.Bandreject(0, math.Inf(1)); err != nil {
		t.Fatalf("Bandreject: %v", err)
	}

	if !math.IsNaN(m.Phase().At(2, 3)) || !math.IsNaN(m.Phase().At(6, 6)) {
		t.Error("filter did not restore invalid markers at dropout positions")
	}
	for i, v := range m.Phase().Values() {
		iy, ix := i/8, i%8
		if (ix == 2 && iy == 3) || (ix == 6 && iy == 6) {
			continue
		}
		if !grid.IsFinite(v) {
			t.Fatalf("filter invalidated a finite sample at (%d,%d)", ix, iy)
		}
	}
}

func TestBandreject_RequiresPhysicalCoords(t *testing.T) {
	g := mustGrid(t, [][]float64{{1, 2}, {3, 4}})
	m, err := New(g)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := m.Bandreject(1, 10); !errors.Is(err, ErrNoPhysicalCoords) {
		t.Errorf("Bandreject on synthetic map: got %v, want ErrNoPhysicalCoords", err)
	}
}

func TestPSD(t *testing.T) {
	const n = 8
	g, err := grid.New(n, n)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	// Pure horizontal sine at frequency 0.25 cycles per unit.
	for iy := 0; iy < n; iy++ {
		for ix := 0; ix < n; ix++ {
			g.Set(ix, iy, math.Sin(2*math.Pi*0.25*float64(ix)))
		}
	}

	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
		y[i] = float64(i)
	}
	m, err := New(g, WithAxes(x, y))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	spec, err := m.PSD()
	if err != nil {
		t.Fatalf("PSD: %v", err)
	}
	if spec.Power.Width() != n || spec.Power.Height() != n {
		t.Fatalf("power shape: got %dx%d", spec.Power.Width(), spec.Power.Height())
	}
	if len(spec.FX) != n || len(spec.FY) != n {
		t.Fatalf("axis lengths: got %d, %d", len(spec.FX), len(spec.FY))
	}

	// All power sits in the +-0.25 horizontal frequency bins on the zero
	// vertical frequency row.
	peak := 0.0
	px, py := 0, 0
	for iy := 0; iy < n; iy++ {
		for ix := 0; ix < n; ix++ {
			if p := spec.Power.At(ix, iy); p > peak {
				peak, px, py = p, ix, iy
			}
		}
	}
	if math.Abs(math.Abs(spec.FX[px])-0.25) > tolerance {
		t.Errorf("peak fx: got %g, want +-0.25", spec.FX[px])
	}
	if math.Abs(spec.FY[py]) > tolerance {
		t.Errorf("peak fy: got %g, want 0", spec.FY[py])
	}
}

func TestPSD_RequiresPhysicalCoords(t *testing.T) {
	g := mustGrid(t, [][]float64{{1, 2}, {3, 4}})
	m, err := New(g)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := m.PSD(); !errors.Is(err, ErrNoPhysicalCoords) {
		t.Errorf("PSD on synthetic map: got %v, want ErrNoPhysicalCoords", err)
	}
}

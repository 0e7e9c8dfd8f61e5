package surface

import (
	"errors"
	"fmt"

	"github.com/samkberry/prysm/grid"
)

var (
	ErrNilPhase          = errors.New("surface: phase grid is required")
	ErrAxisLength        = errors.New("surface: axis length does not match grid shape")
	ErrShapeMismatch     = errors.New("surface: intensity shape does not match phase shape")
	ErrNoPhysicalCoords  = errors.New("surface: operation requires physical coordinates")
	ErrInvalidResolution = errors.New("surface: lateral resolution must be positive")
)

// Map is a measured surface or wavefront-error map: a phase grid with
// coordinate axes, optional intensity data, and scale metadata.
//
// Mutating operations (Crop, RemovePiston, RemoveTipTilt, Bandreject, ...)
// modify the map in place and return it for chaining; on error the map is
// left unchanged. A Map is exclusively owned by its caller and is not safe
// for concurrent mutation, but independent maps share no state.
type Map struct {
	phase     *grid.Grid
	intensity *grid.Grid
	x, y      []float64
	physical  bool
	spacing   float64
	scale     Scale
	meta      map[string]any
}

// Option configures a Map under construction.
type Option func(*Map) error

// WithAxes supplies physical coordinate axes. x must have one sample per
// column and y one per row, uniformly spaced; the sample spacing is derived
// from the first two x samples and uniformity is the caller's guarantee.
func WithAxes(x, y []float64) Option {
	return func(m *Map) error {
		if len(x) != m.phase.Width() || len(y) != m.phase.Height() {
			return fmt.Errorf("%w: x %d, y %d for %dx%d grid",
				ErrAxisLength, len(x), len(y), m.phase.Width(), m.phase.Height())
		}
		if len(x) < 2 {
			return fmt.Errorf("%w: physical axes need at least 2 samples", ErrAxisLength)
		}
		m.x = append([]float64(nil), x...)
		m.y = append([]float64(nil), y...)
		m.physical = true
		m.spacing = x[1] - x[0]
		return nil
	}
}

// WithIntensity attaches an intensity grid recorded alongside the phase
// data. It must match the phase grid's shape at construction time. The
// intensity grid is informational: the processing operations leave it
// untouched, and Crop does not narrow it (it stays aligned with the raw
// frame, not the cropped phase).
func WithIntensity(g *grid.Grid) Option {
	return func(m *Map) error {
		if g != nil && !m.phase.SameShape(g) {
			return fmt.Errorf("%w: %dx%d vs %dx%d",
				ErrShapeMismatch, g.Width(), g.Height(), m.phase.Width(), m.phase.Height())
		}
		m.intensity = g
		return nil
	}
}

// WithScale sets the lateral unit for the axes.
func WithScale(s Scale) Option {
	return func(m *Map) error {
		if _, err := s.Factor(); err != nil {
			return err
		}
		m.scale = s
		return nil
	}
}

// WithMeta attaches an opaque metadata bag. It is carried through unchanged
// and never interpreted.
func WithMeta(meta map[string]any) Option {
	return func(m *Map) error {
		m.meta = meta
		return nil
	}
}

// New creates a map around a phase grid. Without [WithAxes] the coordinates
// are synthetic pixel indices 0..N-1 with no defined sample spacing.
func New(phase *grid.Grid, opts ...Option) (*Map, error) {
	if phase == nil {
		return nil, ErrNilPhase
	}

	m := &Map{
		phase: phase,
		scale: ScaleMicrometers,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	if m.x == nil {
		m.x = indexAxis(phase.Width())
		m.y = indexAxis(phase.Height())
	}
	return m, nil
}

// Measurement is the pre-parsed output of an instrument-file reader: the
// raw grids plus the lateral resolution in meters per sample. Parsing the
// instrument format itself is an external concern.
type Measurement struct {
	Phase             *grid.Grid
	Intensity         *grid.Grid
	LateralResolution float64
	Meta              map[string]any
}

// FromMeasurement builds a map from ingested instrument data, deriving
// physical axes as pixel index times lateral resolution expressed in the
// requested scale. The scale name is matched case-insensitively.
func FromMeasurement(meas Measurement, scaleName string) (*Map, error) {
	if meas.Phase == nil {
		return nil, ErrNilPhase
	}

	scale, err := ParseScale(scaleName)
	if err != nil {
		return nil, err
	}
	factor, err := scale.Factor()
	if err != nil {
		return nil, err
	}
	if meas.LateralResolution <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidResolution, meas.LateralResolution)
	}

	res := meas.LateralResolution * factor
	x := make([]float64, meas.Phase.Width())
	for i := range x {
		x[i] = float64(i) * res
	}
	y := make([]float64, meas.Phase.Height())
	for i := range y {
		y[i] = float64(i) * res
	}

	return New(meas.Phase,
		WithAxes(x, y),
		WithIntensity(meas.Intensity),
		WithScale(scale),
		WithMeta(meas.Meta),
	)
}

// Phase returns the phase grid. Mutations are visible to the map.
func (m *Map) Phase() *grid.Grid { return m.phase }

// Intensity returns the intensity grid, or nil if none was recorded.
func (m *Map) Intensity() *grid.Grid { return m.intensity }

// X returns the x coordinate axis, one sample per column.
func (m *Map) X() []float64 { return m.x }

// Y returns the y coordinate axis, one sample per row.
func (m *Map) Y() []float64 { return m.y }

// Scale returns the lateral unit of the axes.
func (m *Map) Scale() Scale { return m.scale }

// Meta returns the opaque metadata bag, or nil.
func (m *Map) Meta() map[string]any { return m.meta }

// PhysicalCoordinates reports whether the axes carry physical units rather
// than synthetic pixel indices.
func (m *Map) PhysicalCoordinates() bool { return m.physical }

// SampleSpacing returns the physical distance between adjacent samples.
// Synthetic coordinates have no defined spacing.
func (m *Map) SampleSpacing() (float64, error) {
	if !m.physical {
		return 0, ErrNoPhysicalCoords
	}
	return m.spacing, nil
}

// Extent returns the coordinate range covered by the grid as
// [x0, x1, y0, y1], the extent a renderer should map the image onto.
func (m *Map) Extent() [4]float64 {
	return [4]float64{m.x[0], m.x[len(m.x)-1], m.y[0], m.y[len(m.y)-1]}
}

// AxisLabels returns the axis-label pair for rendering: physical maps are
// labeled in their scale unit, synthetic maps in pixels.
func (m *Map) AxisLabels() (xlabel, ylabel string) {
	return axisLabels(m.physical, m.scale)
}

func indexAxis(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

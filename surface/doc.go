// Package surface processes measured surface and wavefront-error maps.
//
// A [Map] couples a phase grid with coordinate axes, optional intensity
// data, and scale metadata. Processing operations mutate the map in place
// and return it so pipelines read as a chain:
//
//	m, err := surface.FromMeasurement(meas, "mm")
//	if err != nil { ... }
//	if _, err := m.Crop(); err != nil { ... }
//	if _, err := m.RemovePistonTipTilt(); err != nil { ... }
//	if _, err := m.Bandreject(0.1, 10); err != nil { ... }
//	fmt.Println(m.RMS())
//
// Invalid samples (NaN or Inf in the phase grid) mark dropouts where the
// instrument could not measure. Every operation either ignores them or
// preserves them; none invents data at invalid positions.
package surface

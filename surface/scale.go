package surface

import (
	"errors"
	"fmt"
	"strings"
)

// Scale selects the lateral unit a map's physical axes are expressed in.
type Scale string

const (
	// ScaleMicrometers labels axes in micrometers.
	ScaleMicrometers Scale = "um"
	// ScaleMillimeters labels axes in millimeters.
	ScaleMillimeters Scale = "mm"
)

// ErrUnknownScale reports a scale outside the recognized set.
var ErrUnknownScale = errors.New("surface: unknown scale")

// ParseScale resolves a case-insensitive scale name. Unrecognized names fail
// immediately rather than being deferred to a later lookup.
func ParseScale(name string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(ScaleMicrometers):
		return ScaleMicrometers, nil
	case string(ScaleMillimeters):
		return ScaleMillimeters, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScale, name)
	}
}

// Factor returns the unit-to-meter scale factor: the number of scale units
// per meter.
func (s Scale) Factor() (float64, error) {
	switch s {
	case ScaleMicrometers:
		return 1e6, nil
	case ScaleMillimeters:
		return 1e3, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownScale, string(s))
	}
}

// String returns the scale name.
func (s Scale) String() string { return string(s) }

// axisLabels resolves the axis-label pair for a map. Synthetic coordinates
// are labeled in pixels regardless of scale.
func axisLabels(physical bool, s Scale) (xlabel, ylabel string) {
	if !physical {
		return "x [px]", "y [px]"
	}
	switch s {
	case ScaleMillimeters:
		return "x [mm]", "y [mm]"
	default:
		return "x [µm]", "y [µm]"
	}
}

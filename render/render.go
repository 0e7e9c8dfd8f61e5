// Package render draws surface maps as false-color heat maps.
package render

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/samkberry/prysm/grid"
	"github.com/samkberry/prysm/surface"
)

// ErrNoFiniteSamples reports a map with nothing renderable.
var ErrNoFiniteSamples = errors.New("render: no finite samples to render")

// Config holds rendering parameters. The zero value is completed by
// defaults at render time.
type Config struct {
	Title      string
	Palette    palette.Palette
	Min, Max   float64
	haveLimits bool
	Width      vg.Length
	Height     vg.Length
}

// Option adjusts the rendering configuration.
type Option func(*Config)

// WithTitle sets the plot title.
func WithTitle(title string) Option {
	return func(c *Config) { c.Title = title }
}

// WithPalette overrides the default heat palette.
func WithPalette(p palette.Palette) Option {
	return func(c *Config) { c.Palette = p }
}

// WithLimits fixes the color range instead of deriving it from the data,
// so several maps can share a common color scale.
func WithLimits(min, max float64) Option {
	return func(c *Config) {
		c.Min, c.Max = min, max
		c.haveLimits = true
	}
}

// WithSize sets the output dimensions.
func WithSize(w, h vg.Length) Option {
	return func(c *Config) { c.Width, c.Height = w, h }
}

// phaseGrid adapts a phase grid and its axes to the plotter's grid
// interface. Invalid samples render at the floor of the color range so
// dropouts read as dark regions rather than breaking the rasterizer.
type phaseGrid struct {
	g    *grid.Grid
	x, y []float64
	fill float64
}

func (p phaseGrid) Dims() (c, r int) { return p.g.Width(), p.g.Height() }
func (p phaseGrid) X(c int) float64  { return p.x[c] }
func (p phaseGrid) Y(r int) float64  { return p.y[r] }

func (p phaseGrid) Z(c, r int) float64 {
	v := p.g.At(c, r)
	if !grid.IsFinite(v) {
		return p.fill
	}
	return v
}

// Heatmap builds a heat-map plot of the map's phase grid with axis labels
// derived from its scale.
func Heatmap(m *surface.Map, opts ...Option) (*plot.Plot, error) {
	cfg := Config{
		Width:  6 * vg.Inch,
		Height: 5 * vg.Inch,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Palette == nil {
		cfg.Palette = palette.Heat(64, 1)
	}

	min, max, ok := finiteRange(m.Phase())
	if !ok {
		return nil, ErrNoFiniteSamples
	}
	if cfg.haveLimits {
		min, max = cfg.Min, cfg.Max
	}

	hm := plotter.NewHeatMap(phaseGrid{
		g:    m.Phase(),
		x:    m.X(),
		y:    m.Y(),
		fill: min,
	}, cfg.Palette)
	hm.Min, hm.Max = min, max

	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text, p.Y.Label.Text = m.AxisLabels()
	p.Add(hm)
	return p, nil
}

// SavePNG renders the map and writes it to path. The output format
// follows the file extension, so a .pdf or .svg path works too.
func SavePNG(m *surface.Map, path string, opts ...Option) error {
	cfg := Config{
		Width:  6 * vg.Inch,
		Height: 5 * vg.Inch,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	p, err := Heatmap(m, opts...)
	if err != nil {
		return err
	}
	if err := p.Save(cfg.Width, cfg.Height, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

// finiteRange returns the min and max of the finite samples.
func finiteRange(g *grid.Grid) (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range g.Values() {
		if !grid.IsFinite(v) {
			continue
		}
		ok = true
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, ok
}

// Command surfinfo synthesizes a surface map, runs it through the
// processing pipeline, and prints its height statistics.
//
// Usage:
//
//	surfinfo [flags]
//
// The surface is built from Fringe-ordered Zernike coefficients over an
// aperture mask, with optional measurement noise, then processed with the
// requested pipeline steps.
//
// Examples:
//
//	surfinfo -zernike 0,0.2,0.1,0.5
//	surfinfo -size 256 -aperture annulus -obscuration 0.3 -piston -tiptilt
//	surfinfo -zernike 0,1,0,0.5 -noise 0.01 -fit 8
//	surfinfo -zernike 0,0,0,1 -png surface.png
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/samkberry/prysm/geometry"
	"github.com/samkberry/prysm/render"
	"github.com/samkberry/prysm/surface"
	"github.com/samkberry/prysm/zernike"
)

func main() {
	size := flag.Int("size", 128, "samples per side of the synthesized grid")
	res := flag.Float64("res", 1e-6, "lateral resolution in meters per sample")
	scale := flag.String("scale", "um", "lateral unit for the axes (um, mm)")
	coefStr := flag.String("zernike", "0,0.5,0.25,1", "comma-separated Fringe Zernike coefficients")
	aperture := flag.String("aperture", "circle", "aperture mask: circle, annulus, hexagon, none")
	obscuration := flag.Float64("obscuration", 0.25, "inner radius for the annulus aperture")
	noise := flag.Float64("noise", 0, "amplitude of additive uniform noise")
	seed := flag.Int64("seed", 1, "noise generator seed")
	crop := flag.Bool("crop", true, "crop to the finite bounding box")
	piston := flag.Bool("piston", false, "remove piston")
	tiptilt := flag.Bool("tiptilt", false, "remove tip/tilt and piston")
	band := flag.String("bandreject", "", "wavelength band to reject, as low,high in axis units")
	fit := flag.Int("fit", 0, "fit this many Zernike terms and print the coefficients")
	pngPath := flag.String("png", "", "save a heat-map rendering to this path")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: surfinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Synthesizes a surface map, processes it, and prints height statistics.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  surfinfo -zernike 0,0.2,0.1,0.5\n")
		fmt.Fprintf(os.Stderr, "  surfinfo -size 256 -aperture annulus -piston -tiptilt\n")
		fmt.Fprintf(os.Stderr, "  surfinfo -zernike 0,0,0,1 -png surface.png\n")
	}
	flag.Parse()

	coefs, err := parseCoefs(*coefStr)
	if err != nil {
		fatalf("invalid -zernike: %v", err)
	}

	m, err := buildSurface(*size, *res, *scale, coefs, *aperture, *obscuration, *noise, *seed)
	if err != nil {
		fatalf("%v", err)
	}

	if *crop {
		if _, err := m.Crop(); err != nil {
			fatalf("crop: %v", err)
		}
	}
	if *tiptilt {
		if _, err := m.RemovePistonTipTilt(); err != nil {
			fatalf("tip/tilt removal: %v", err)
		}
	} else if *piston {
		if _, err := m.RemovePiston(); err != nil {
			fatalf("piston removal: %v", err)
		}
	}
	if *band != "" {
		low, high, err := parseBand(*band)
		if err != nil {
			fatalf("invalid -bandreject: %v", err)
		}
		if _, err := m.Bandreject(low, high); err != nil {
			fatalf("bandreject: %v", err)
		}
	}

	printStats(m)

	if *fit > 0 {
		if err := printFit(m, *fit); err != nil {
			fatalf("fit: %v", err)
		}
	}

	if *pngPath != "" {
		if err := render.SavePNG(m, *pngPath, render.WithTitle("surfinfo")); err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("\nwrote %s\n", *pngPath)
	}
}

func buildSurface(size int, res float64, scaleName string, coefs []float64, aperture string, obscuration, noise float64, seed int64) (*surface.Map, error) {
	phase, err := zernike.Synthesize(coefs, size, size, zernike.Config{})
	if err != nil {
		return nil, err
	}

	if noise > 0 {
		rng := rand.New(rand.NewSource(seed))
		vals := phase.Values()
		for i := range vals {
			vals[i] += noise * (2*rng.Float64() - 1)
		}
	}

	switch strings.ToLower(aperture) {
	case "none":
	case "circle":
		mask, err := geometry.Circle(size, 1)
		if err != nil {
			return nil, err
		}
		if _, err := geometry.Apply(phase, mask); err != nil {
			return nil, err
		}
	case "annulus":
		mask, err := geometry.Annulus(size, obscuration, 1)
		if err != nil {
			return nil, err
		}
		if _, err := geometry.Apply(phase, mask); err != nil {
			return nil, err
		}
	case "hexagon":
		mask, err := geometry.RegularPolygon(size, 6, 1)
		if err != nil {
			return nil, err
		}
		if _, err := geometry.Apply(phase, mask); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown aperture %q", aperture)
	}

	return surface.FromMeasurement(surface.Measurement{
		Phase:             phase,
		LateralResolution: res,
	}, scaleName)
}

func printStats(m *surface.Map) {
	s := m.Stats()
	xlabel, _ := m.AxisLabels()
	unit := strings.Trim(strings.TrimPrefix(xlabel, "x "), "[]")

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Samples\t%d\n", s.Samples)
	fmt.Fprintf(tw, "Finite\t%d\n", s.Finite)
	fmt.Fprintf(tw, "Dropouts\t%d (%.2f%%)\n", s.Dropouts, s.DropoutPercent)
	fmt.Fprintf(tw, "Extent\t%.4g x %.4g %s\n",
		m.Extent()[1]-m.Extent()[0], m.Extent()[3]-m.Extent()[2], unit)
	fmt.Fprintf(tw, "Mean\t%.6g\n", s.Mean)
	fmt.Fprintf(tw, "PV\t%.6g\n", s.PV)
	fmt.Fprintf(tw, "RMS\t%.6g\n", s.RMS)
	fmt.Fprintf(tw, "Ra\t%.6g\n", s.Ra)
	fmt.Fprintf(tw, "StdDev\t%.6g\n", s.StdDev)
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printFit(m *surface.Map, nterms int) error {
	res, err := zernike.Fit(m.Phase(), nterms, zernike.Config{})
	if err != nil {
		return err
	}
	names, err := zernike.Fringe.Names(nterms)
	if err != nil {
		return err
	}

	fmt.Println()
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Term\tName\tCoefficient\n")
	fmt.Fprintf(tw, "----\t----\t-----------\n")
	for i, c := range res.Coefficients {
		fmt.Fprintf(tw, "Z%d\t%s\t%+.6f\n", i, names[i], c)
	}
	fmt.Fprintf(tw, "\tResidual RMS\t%.6g\n", res.Residual)
	return tw.Flush()
}

func parseCoefs(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("coefficient %q: %w", p, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no coefficients in %q", s)
	}
	return out, nil
}

func parseBand(s string) (low, high float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want low,high, got %q", s)
	}
	low, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	if strings.TrimSpace(parts[1]) == "inf" {
		return low, math.Inf(1), nil
	}
	high, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	return low, high, err
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

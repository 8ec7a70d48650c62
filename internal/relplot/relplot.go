// Package relplot renders comparison plots of stellar-to-halo mass
// relations for visual inspection of curated datasets.
package relplot

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/galacticus-data/shmr-datasets/relation"
)

// DefaultTolerance is the maximum distance between a target redshift and
// an interval's center for the interval to be plotted.
const DefaultTolerance = 0.15

// ErrNoSeries is returned when no dataset has an interval near the
// target redshift.
var ErrNoSeries = errors.New("no dataset covers the target redshift")

// Series is one dataset's relation extracted at a chosen redshift.
type Series struct {
	Label            string
	Redshift         float64
	MassHalo         []float64
	MassStellar      []float64
	MassStellarError []float64
}

// SelectInterval returns the index of the interval whose center is
// nearest to target, or false when none lies within tolerance.
func SelectInterval(data *relation.SHMR, target, tolerance float64) (int, bool) {
	best := -1
	bestDiff := math.Inf(1)
	for i, iv := range data.Intervals {
		center := (iv.RedshiftMinimum + iv.RedshiftMaximum) / 2
		diff := math.Abs(center - target)
		if diff < tolerance && diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best, best >= 0
}

// FromSHMR extracts a plottable series from the interval best matching
// the target redshift.
func FromSHMR(data *relation.SHMR, target, tolerance float64) (Series, bool) {
	i, ok := SelectInterval(data, target, tolerance)
	if !ok {
		return Series{}, false
	}
	iv := data.Intervals[i]
	return Series{
		Label:            data.Label,
		Redshift:         (iv.RedshiftMinimum + iv.RedshiftMaximum) / 2,
		MassHalo:         iv.MassHalo,
		MassStellar:      iv.MassStellar,
		MassStellarError: iv.MassStellarError,
	}, true
}

// Comparison renders the series on log-log axes and writes the plot to
// path; the image format follows the file extension.
func Comparison(series []Series, targetRedshift float64, path string) error {
	if len(series) == 0 {
		return ErrNoSeries
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("SHMR comparison at z = %.2f", targetRedshift)
	p.X.Label.Text = "Halo mass [Msun]"
	p.Y.Label.Text = "Stellar mass [Msun]"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.X.Min, p.X.Max = 1e10, 1e15
	p.Y.Min, p.Y.Max = 1e6, 1e12
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	for i, s := range series {
		pts, errBars := seriesData(s)

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return err
		}
		color := plotutil.Color(i)
		line.Color = color
		points.Color = color
		points.Radius = vg.Points(1.5)

		bars, err := plotter.NewYErrorBars(errBars)
		if err != nil {
			return err
		}
		bars.Color = color

		p.Add(line, points, bars)
		p.Legend.Add(fmt.Sprintf("%s (z=%.2f)", s.Label, s.Redshift), line, points)
	}

	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}

// errorData carries points together with asymmetric error bars for
// plotter.NewYErrorBars.
type errorData struct {
	plotter.XYs
	plotter.YErrors
}

// seriesData converts a series to plotter inputs. The lower error bar is
// clamped so it never drops to zero or below, which a log axis cannot
// render.
func seriesData(s Series) (plotter.XYs, errorData) {
	n := len(s.MassHalo)
	pts := make(plotter.XYs, n)
	bars := errorData{
		XYs:     make(plotter.XYs, n),
		YErrors: make(plotter.YErrors, n),
	}
	for i := 0; i < n; i++ {
		pts[i].X = s.MassHalo[i]
		pts[i].Y = s.MassStellar[i]
		bars.XYs[i] = pts[i]

		errLow := s.MassStellarError[i]
		if errLow >= s.MassStellar[i] {
			errLow = 0.99 * s.MassStellar[i]
		}
		bars.YErrors[i].Low = errLow
		bars.YErrors[i].High = s.MassStellarError[i]
	}
	return pts, bars
}

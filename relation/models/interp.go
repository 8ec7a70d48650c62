package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/galacticus-data/shmr-datasets/relation"
)

// Method selects the interpolation space used by Interpolate.
type Method string

const (
	// Linear interpolates stellar mass linearly in halo mass.
	Linear Method = "linear"
	// LogLinear interpolates log stellar mass linearly in log halo
	// mass, which is the natural space for power-law relations.
	LogLinear Method = "log-linear"
	// Cubic fits a natural cubic spline to stellar mass in halo mass.
	// Only the stellar mass column uses the spline; out-of-range points
	// continue the end segments linearly.
	Cubic Method = "cubic"
)

// Interpolate resamples one redshift interval of data onto newHaloMasses.
// Points outside the tabulated range are linearly extrapolated when
// extrapolate is true and NaN otherwise. Errors and scatter columns are
// always resampled linearly.
func Interpolate(data *relation.SHMR, newHaloMasses []float64, intervalIndex int, method Method, extrapolate bool) (*relation.SHMR, error) {
	if intervalIndex < 0 || intervalIndex >= len(data.Intervals) {
		return nil, fmt.Errorf("%w: %d", ErrIntervalIndex, intervalIndex)
	}
	iv := data.Intervals[intervalIndex]

	var stellar []float64
	switch method {
	case LogLinear:
		logHalo := logSlice(iv.MassHalo)
		logStellar := logSlice(iv.MassStellar)
		logNew := logSlice(newHaloMasses)
		logOut, err := resample(logHalo, logStellar, logNew, extrapolate)
		if err != nil {
			return nil, err
		}
		stellar = make([]float64, len(logOut))
		for i, v := range logOut {
			stellar[i] = math.Pow(10, v)
		}
	case Cubic:
		var err error
		stellar, err = resampleWith(&interp.NaturalCubic{}, iv.MassHalo, iv.MassStellar, newHaloMasses, extrapolate)
		if err != nil {
			return nil, err
		}
	case Linear, "":
		var err error
		stellar, err = resample(iv.MassHalo, iv.MassStellar, newHaloMasses, extrapolate)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown interpolation method %q", method)
	}

	stellarError, err := resample(iv.MassHalo, iv.MassStellarError, newHaloMasses, extrapolate)
	if err != nil {
		return nil, err
	}
	scatter, err := resample(iv.MassHalo, iv.MassStellarScatter, newHaloMasses, extrapolate)
	if err != nil {
		return nil, err
	}
	scatterError, err := resample(iv.MassHalo, iv.MassStellarScatterError, newHaloMasses, extrapolate)
	if err != nil {
		return nil, err
	}

	newIv, err := relation.NewInterval(
		iv.RedshiftMinimum, iv.RedshiftMaximum,
		newHaloMasses, stellar, stellarError, scatter, scatterError,
	)
	if err != nil {
		return nil, err
	}

	return &relation.SHMR{
		Intervals:          []relation.Interval{newIv},
		Cosmology:          data.Cosmology,
		HaloMassDefinition: data.HaloMassDefinition,
		Label:              data.Label + "_interpolated",
		Reference:          fmt.Sprintf("%s (interpolated using %s method)", data.Reference, methodName(method)),
	}, nil
}

func methodName(method Method) Method {
	if method == "" {
		return Linear
	}
	return method
}

// resample evaluates the piecewise-linear interpolant through (xs, ys)
// at each point of targets. Out-of-range points continue the first or
// last segment when extrapolate is set and become NaN otherwise.
func resample(xs, ys, targets []float64, extrapolate bool) ([]float64, error) {
	return resampleWith(&interp.PiecewiseLinear{}, xs, ys, targets, extrapolate)
}

// resampleWith is resample with a caller-chosen interpolant. Extrapolation
// is always linear from the end segments, regardless of the interpolant.
func resampleWith(p interp.FittablePredictor, xs, ys, targets []float64, extrapolate bool) ([]float64, error) {
	if err := p.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("interpolation grid: %w", err)
	}

	n := len(xs)
	out := make([]float64, len(targets))
	for i, x := range targets {
		switch {
		case x >= xs[0] && x <= xs[n-1]:
			out[i] = p.Predict(x)
		case !extrapolate:
			out[i] = math.NaN()
		case x < xs[0]:
			slope := (ys[1] - ys[0]) / (xs[1] - xs[0])
			out[i] = ys[0] + slope*(x-xs[0])
		default:
			slope := (ys[n-1] - ys[n-2]) / (xs[n-1] - xs[n-2])
			out[i] = ys[n-1] + slope*(x-xs[n-1])
		}
	}
	return out, nil
}

func logSlice(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Log10(v)
	}
	return out
}

package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/galacticus-data/shmr-datasets/relation"
)

// Resolution of the halo mass grid scanned when mapping stellar mass
// bins back to halo masses.
const (
	smfGridPoints = 1000
	smfLogMhMin   = 10.0
	smfLogMhMax   = 16.0
)

// HaloMassFunction returns the comoving number density dn/dlog10(Mh) at
// a halo mass in solar masses.
type HaloMassFunction func(haloMass float64) float64

// StellarMassFunction derives the stellar mass function implied by one
// redshift interval of data combined with a halo mass function. Bins are
// given as log10 stellar mass edges; the returned centers are linear
// stellar masses at the bin midpoints with the number density per bin.
func StellarMassFunction(data *relation.SHMR, hmf HaloMassFunction, logMassBins []float64, intervalIndex int) (centers, density []float64, err error) {
	if intervalIndex < 0 || intervalIndex >= len(data.Intervals) {
		return nil, nil, fmt.Errorf("%w: %d", ErrIntervalIndex, intervalIndex)
	}
	if len(logMassBins) < 2 {
		return nil, nil, fmt.Errorf("at least two stellar mass bin edges are required")
	}
	iv := data.Intervals[intervalIndex]

	// Predicted log stellar mass on a fixed halo mass grid, NaN outside
	// the tabulated range.
	logMhGrid := make([]float64, smfGridPoints)
	floats.Span(logMhGrid, smfLogMhMin, smfLogMhMax)
	logMsPred, err := resample(logSlice(iv.MassHalo), logSlice(iv.MassStellar), logMhGrid, false)
	if err != nil {
		return nil, nil, err
	}

	// Jacobian dlog(Ms)/dlog(Mh) by central differences.
	jacobian := gradient(logMsPred, logMhGrid[1]-logMhGrid[0])

	nBins := len(logMassBins) - 1
	centers = make([]float64, nBins)
	density = make([]float64, nBins)
	for i := 0; i < nBins; i++ {
		centers[i] = math.Pow(10, (logMassBins[i]+logMassBins[i+1])/2)

		var xs, ys []float64
		for j, logMs := range logMsPred {
			if math.IsNaN(logMs) || logMs < logMassBins[i] || logMs >= logMassBins[i+1] {
				continue
			}
			if math.IsNaN(jacobian[j]) || jacobian[j] <= 0 {
				continue
			}
			xs = append(xs, logMhGrid[j])
			ys = append(ys, hmf(math.Pow(10, logMhGrid[j]))/jacobian[j])
		}
		if len(xs) >= 2 {
			density[i] = integrate.Trapezoidal(xs, ys)
		}
	}
	return centers, density, nil
}

// gradient returns the numerical derivative of values on a uniform grid
// with the given spacing, one-sided at the ends. NaN inputs propagate.
func gradient(values []float64, spacing float64) []float64 {
	n := len(values)
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	out[0] = (values[1] - values[0]) / spacing
	out[n-1] = (values[n-1] - values[n-2]) / spacing
	for i := 1; i < n-1; i++ {
		out[i] = (values[i+1] - values[i-1]) / (2 * spacing)
	}
	return out
}

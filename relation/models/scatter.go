package models

import (
	"fmt"
	"math"
	"math/rand"
)

// ScatterModel selects the distribution used by AddScatter.
type ScatterModel string

const (
	// Lognormal perturbs log10 of each mass by a normal deviate, so
	// sigma is in dex.
	Lognormal ScatterModel = "lognormal"
	// Gaussian perturbs each mass directly, so sigma shares the mass
	// units.
	Gaussian ScatterModel = "gaussian"
)

// AddScatter returns a copy of masses with random scatter applied. A nil
// rng falls back to the shared global source; pass rand.New with a fixed
// seed for reproducible draws.
func AddScatter(masses []float64, model ScatterModel, sigma float64, rng *rand.Rand) ([]float64, error) {
	normal := rand.NormFloat64
	if rng != nil {
		normal = rng.NormFloat64
	}

	out := make([]float64, len(masses))
	switch model {
	case Lognormal:
		for i, m := range masses {
			out[i] = math.Pow(10, math.Log10(m)+normal()*sigma)
		}
	case Gaussian:
		for i, m := range masses {
			out[i] = m + normal()*sigma
		}
	default:
		return nil, fmt.Errorf("unknown scatter model %q", model)
	}
	return out, nil
}

// Package models provides parametric stellar-to-halo mass relations and
// utilities for tabulating, interpolating and transforming them.
package models

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

var (
	// ErrUnknownForm is returned when a form name does not match any
	// known parametrization.
	ErrUnknownForm = errors.New("unknown relation form")
	// ErrIntervalIndex is returned when a redshift interval index is out
	// of range for the dataset.
	ErrIntervalIndex = errors.New("redshift interval index out of range")
)

// Form is a parametric stellar-to-halo mass relation. StellarMasses
// evaluates the relation at each halo mass, both in solar masses.
type Form interface {
	Name() string
	StellarMasses(haloMasses []float64) []float64
}

// New returns the form registered under name with its published default
// parameters. The redshift is used by forms with redshift-dependent
// parameters and ignored by the others.
func New(name string, redshift float64) (Form, error) {
	switch name {
	case "behroozi2010":
		return NewBehroozi2010(redshift), nil
	case "behroozi2013":
		return Behroozi2013{LogM1: 12.35, LogMstar0: 10.72, Beta: 0.44, Delta: 0.57, Gamma: 1.56}, nil
	case "moster2013":
		return Moster2013{M1: 1.87e12, N10: 0.0351, Beta: 1.376, Gamma: 0.608}, nil
	case "rodriguez_puebla2017":
		return RodriguezPuebla2017{LogM1: 12.52, LogEpsilon: -1.777, Alpha: 2.133, Beta: 0.484, Gamma: 1.077}, nil
	case "double_powerlaw":
		return DoublePowerLaw{StellarNorm: 1e10, HaloNorm: 1e12, AlphaLow: 1.0, AlphaHigh: -0.5}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownForm, name)
}

// Behroozi2010 is the relation of Behroozi et al. (2010), arXiv:1001.0015.
// The paper parametrizes Mh(Mstar) (their eq. 21), so evaluation inverts
// the relation numerically on a tabulated grid. Parameters evolve with
// the scale factor a = 1/(1+z).
type Behroozi2010 struct {
	Redshift   float64
	LogMstar00 float64
	LogMstar0a float64
	LogM10     float64
	LogM1a     float64
	Beta0      float64
	BetaA      float64
	Delta0     float64
	DeltaA     float64
	Gamma0     float64
	GammaA     float64
}

// NewBehroozi2010 returns the relation at the given redshift with the
// best-fit parameters from Behroozi et al. (2010).
func NewBehroozi2010(redshift float64) Behroozi2010 {
	return Behroozi2010{
		Redshift:   redshift,
		LogMstar00: 10.72,
		LogMstar0a: 0.59,
		LogM10:     12.35,
		LogM1a:     0.30,
		Beta0:      0.43,
		BetaA:      0.18,
		Delta0:     0.56,
		DeltaA:     0.18,
		Gamma0:     1.54,
		GammaA:     2.52,
	}
}

func (b Behroozi2010) Name() string { return "behroozi2010" }

// inversionTablePoints sets the resolution of the logMstar grid used to
// invert eq. 21.
const inversionTablePoints = 5001

func (b Behroozi2010) StellarMasses(haloMasses []float64) []float64 {
	a := 1.0 / (1.0 + b.Redshift)
	logM0 := b.LogMstar00 + b.LogMstar0a*(a-1.0)
	logM1 := b.LogM10 + b.LogM1a*(a-1.0)
	beta := b.Beta0 + b.BetaA*(a-1.0)
	delta := b.Delta0 + b.DeltaA*(a-1.0)
	gamma := b.Gamma0 + b.GammaA*(a-1.0)

	logMstarTable := make([]float64, inversionTablePoints)
	floats.Span(logMstarTable, 4.0, 14.0)
	logMhTable := make([]float64, inversionTablePoints)
	for i, logMstar := range logMstarTable {
		ratio := math.Pow(10, logMstar-logM0)
		term := math.Pow(ratio, delta) / (1.0 + math.Pow(ratio, -gamma))
		logMhTable[i] = logM1 + beta*(logMstar-logM0) + term - 0.5
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(logMhTable, logMstarTable); err != nil {
		// The table is strictly increasing for any physical parameter
		// set, so Fit cannot fail here.
		panic(err)
	}

	out := make([]float64, len(haloMasses))
	for i, mh := range haloMasses {
		logMh := math.Log10(mh)
		switch {
		case logMh <= logMhTable[0]:
			out[i] = math.Pow(10, logMstarTable[0])
		case logMh >= logMhTable[len(logMhTable)-1]:
			out[i] = math.Pow(10, logMstarTable[len(logMstarTable)-1])
		default:
			out[i] = math.Pow(10, pl.Predict(logMh))
		}
	}
	return out
}

// Behroozi2013 is the double power law with exponential turnover from
// Behroozi et al. (2013).
type Behroozi2013 struct {
	LogM1     float64
	LogMstar0 float64
	Beta      float64
	Delta     float64
	Gamma     float64
}

func (b Behroozi2013) Name() string { return "behroozi2013" }

func (b Behroozi2013) StellarMasses(haloMasses []float64) []float64 {
	out := make([]float64, len(haloMasses))
	for i, mh := range haloMasses {
		x := math.Log10(mh) - b.LogM1
		f := -math.Log10(math.Pow(10, b.Beta*x)+1) +
			b.Delta*math.Pow(math.Log10(1+math.Exp(x)), b.Gamma)/(1+math.Exp(math.Pow(10, -x)))
		out[i] = math.Pow(10, b.LogMstar0+f)
	}
	return out
}

// Moster2013 is the double power law efficiency parametrization of
// Moster, Naab & White (2013).
type Moster2013 struct {
	M1    float64
	N10   float64
	Beta  float64
	Gamma float64
}

func (m Moster2013) Name() string { return "moster2013" }

func (m Moster2013) StellarMasses(haloMasses []float64) []float64 {
	out := make([]float64, len(haloMasses))
	for i, mh := range haloMasses {
		x := mh / m.M1
		efficiency := 2 * m.N10 / (math.Pow(x, -m.Beta) + math.Pow(x, m.Gamma))
		out[i] = efficiency * mh
	}
	return out
}

// RodriguezPuebla2017 is the parametrization of Rodriguez-Puebla et
// al. (2017).
type RodriguezPuebla2017 struct {
	LogM1      float64
	LogEpsilon float64
	Alpha      float64
	Beta       float64
	Gamma      float64
}

func (r RodriguezPuebla2017) Name() string { return "rodriguez_puebla2017" }

func (r RodriguezPuebla2017) StellarMasses(haloMasses []float64) []float64 {
	out := make([]float64, len(haloMasses))
	for i, mh := range haloMasses {
		logMh := math.Log10(mh)
		x := logMh - r.LogM1
		xg := x / r.Gamma
		logEpsEff := r.LogEpsilon - 0.5*(xg*xg)/(1+xg*xg)
		f := math.Pow(x, r.Alpha) / (1 + math.Pow(x, r.Beta))
		out[i] = math.Pow(10, logMh+logEpsEff+f)
	}
	return out
}

// DoublePowerLaw is a broken power law pivoting at HaloNorm.
type DoublePowerLaw struct {
	StellarNorm float64
	HaloNorm    float64
	AlphaLow    float64
	AlphaHigh   float64
}

func (d DoublePowerLaw) Name() string { return "double_powerlaw" }

func (d DoublePowerLaw) StellarMasses(haloMasses []float64) []float64 {
	out := make([]float64, len(haloMasses))
	for i, mh := range haloMasses {
		x := mh / d.HaloNorm
		if mh < d.HaloNorm {
			out[i] = d.StellarNorm * math.Pow(x, d.AlphaLow)
		} else {
			out[i] = d.StellarNorm * math.Pow(x, d.AlphaHigh)
		}
	}
	return out
}

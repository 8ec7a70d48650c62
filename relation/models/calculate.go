package models

import (
	"errors"

	"github.com/galacticus-data/shmr-datasets/relation"
)

// Default values applied by Calculate when the corresponding Config
// fields are left empty.
const (
	DefaultScatter        = 0.16 // dex
	DefaultScatterError   = 0.04 // dex
	DefaultRelativeError  = 0.1  // fraction of the stellar mass
	DefaultRedshiftWidth  = 0.1
	DefaultMassDefinition = "virial"
)

// ErrNoHaloMasses is returned by Calculate when no evaluation points are
// given.
var ErrNoHaloMasses = errors.New("at least one halo mass is required")

// Config describes a single-interval tabulation of a parametric
// relation. Zero-valued optional fields fall back to defaults.
type Config struct {
	Form       Form
	HaloMasses []float64

	Redshift      float64
	RedshiftWidth float64

	Cosmology          *relation.Cosmology
	HaloMassDefinition string
	Label              string
	Reference          string

	// Scatter and StellarMassError override the defaults. A slice of
	// length one is broadcast to all points.
	Scatter          []float64
	StellarMassError []float64
}

// Calculate evaluates the configured form on the halo mass grid and
// packages the result as a single-interval dataset centered on
// cfg.Redshift.
func Calculate(cfg Config) (*relation.SHMR, error) {
	if cfg.Form == nil {
		return nil, ErrUnknownForm
	}
	if len(cfg.HaloMasses) == 0 {
		return nil, ErrNoHaloMasses
	}

	n := len(cfg.HaloMasses)
	stellar := cfg.Form.StellarMasses(cfg.HaloMasses)

	scatter, err := broadcast(cfg.Scatter, n, DefaultScatter)
	if err != nil {
		return nil, err
	}

	var stellarError []float64
	if cfg.StellarMassError == nil {
		stellarError = make([]float64, n)
		for i, ms := range stellar {
			stellarError[i] = DefaultRelativeError * ms
		}
	} else {
		stellarError, err = broadcast(cfg.StellarMassError, n, 0)
		if err != nil {
			return nil, err
		}
	}

	scatterError := make([]float64, n)
	for i := range scatterError {
		scatterError[i] = DefaultScatterError
	}

	width := cfg.RedshiftWidth
	if width == 0 {
		width = DefaultRedshiftWidth
	}

	iv, err := relation.NewInterval(
		cfg.Redshift-width/2, cfg.Redshift+width/2,
		cfg.HaloMasses, stellar, stellarError, scatter, scatterError,
	)
	if err != nil {
		return nil, err
	}

	cosmology := relation.Planck2018()
	if cfg.Cosmology != nil {
		cosmology = *cfg.Cosmology
	}
	definition := cfg.HaloMassDefinition
	if definition == "" {
		definition = DefaultMassDefinition
	}
	label := cfg.Label
	if label == "" {
		label = "SHMR"
	}
	reference := cfg.Reference
	if reference == "" {
		reference = "Generated SHMR"
	}

	data := &relation.SHMR{
		Intervals:          []relation.Interval{iv},
		Cosmology:          cosmology,
		HaloMassDefinition: definition,
		Label:              label,
		Reference:          reference,
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return data, nil
}

// broadcast expands values to length n. A nil slice yields n copies of
// fallback, a single element is repeated, and any other length must
// match n exactly.
func broadcast(values []float64, n int, fallback float64) ([]float64, error) {
	out := make([]float64, n)
	switch len(values) {
	case 0:
		for i := range out {
			out[i] = fallback
		}
	case 1:
		for i := range out {
			out[i] = values[0]
		}
	case n:
		copy(out, values)
	default:
		return nil, relation.ErrArrayLength
	}
	return out, nil
}

// Package relation defines the data model for stellar mass - halo mass
// relation (SHMR) and black hole mass - halo mass relation (BHMR) datasets
// in the structure the Galacticus analysis classes consume: one or more
// redshift intervals of tabulated masses, a cosmology, and identifying
// metadata.
//
// Records are built once per run and treated as immutable after
// construction; Validate methods re-check the structural invariants for
// records assembled field by field.
package relation

import (
	"errors"
	"fmt"
)

// Common validation errors.
var (
	ErrNoIntervals   = errors.New("at least one redshift interval is required")
	ErrArrayLength   = errors.New("all data arrays must have the same length")
	ErrLabelNotClean = errors.New("label must be space-free (alphanumeric, underscore, hyphen)")
	ErrBadDefinition = errors.New("halo mass definition is not recognized by Galacticus")
)

// Cosmology holds the cosmological parameters stored with every dataset.
// HubbleConstant is in km/s/Mpc; the density parameters are dimensionless.
type Cosmology struct {
	OmegaMatter     float64
	OmegaDarkEnergy float64
	OmegaBaryon     float64
	HubbleConstant  float64
}

// Planck2018 returns the Planck 2018 cosmological parameters.
func Planck2018() Cosmology {
	return Cosmology{
		OmegaMatter:     0.3111,
		OmegaDarkEnergy: 0.6889,
		OmegaBaryon:     0.04897,
		HubbleConstant:  67.66,
	}
}

// WMAP7 returns the WMAP 7-year cosmological parameters, used by the
// Behroozi et al. (2010) relation.
func WMAP7() Cosmology {
	return Cosmology{
		OmegaMatter:     0.279,
		OmegaDarkEnergy: 0.721,
		OmegaBaryon:     0.0469,
		HubbleConstant:  70.0,
	}
}

// Interval holds one redshift bin of an SHMR. The five arrays are parallel:
// index i of each refers to the same tabulation point. Masses are in solar
// masses; scatter and its error are in dex.
type Interval struct {
	RedshiftMinimum float64
	RedshiftMaximum float64

	MassHalo                []float64
	MassStellar             []float64
	MassStellarError        []float64
	MassStellarScatter      []float64
	MassStellarScatterError []float64
}

// NewInterval builds an Interval and checks the parallel-array invariant.
func NewInterval(zMin, zMax float64, massHalo, massStellar, massStellarError, scatter, scatterError []float64) (Interval, error) {
	iv := Interval{
		RedshiftMinimum:         zMin,
		RedshiftMaximum:         zMax,
		MassHalo:                massHalo,
		MassStellar:             massStellar,
		MassStellarError:        massStellarError,
		MassStellarScatter:      scatter,
		MassStellarScatterError: scatterError,
	}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// NumPoints returns the number of tabulation points in the interval.
func (iv Interval) NumPoints() int {
	return len(iv.MassHalo)
}

// Validate checks that all five arrays share one length.
func (iv Interval) Validate() error {
	n := len(iv.MassHalo)
	if len(iv.MassStellar) != n || len(iv.MassStellarError) != n ||
		len(iv.MassStellarScatter) != n || len(iv.MassStellarScatterError) != n {
		return ErrArrayLength
	}
	return nil
}

// BlackHoleInterval holds one redshift bin of a BHMR, shaped like Interval
// but tabulating central black hole masses.
type BlackHoleInterval struct {
	RedshiftMinimum float64
	RedshiftMaximum float64

	MassHalo                  []float64
	MassBlackHole             []float64
	MassBlackHoleError        []float64
	MassBlackHoleScatter      []float64
	MassBlackHoleScatterError []float64
}

// NewBlackHoleInterval builds a BlackHoleInterval and checks the
// parallel-array invariant.
func NewBlackHoleInterval(zMin, zMax float64, massHalo, massBH, massBHError, scatter, scatterError []float64) (BlackHoleInterval, error) {
	iv := BlackHoleInterval{
		RedshiftMinimum:           zMin,
		RedshiftMaximum:           zMax,
		MassHalo:                  massHalo,
		MassBlackHole:             massBH,
		MassBlackHoleError:        massBHError,
		MassBlackHoleScatter:      scatter,
		MassBlackHoleScatterError: scatterError,
	}
	if err := iv.Validate(); err != nil {
		return BlackHoleInterval{}, err
	}
	return iv, nil
}

// NumPoints returns the number of tabulation points in the interval.
func (iv BlackHoleInterval) NumPoints() int {
	return len(iv.MassHalo)
}

// Validate checks that all five arrays share one length.
func (iv BlackHoleInterval) Validate() error {
	n := len(iv.MassHalo)
	if len(iv.MassBlackHole) != n || len(iv.MassBlackHoleError) != n ||
		len(iv.MassBlackHoleScatter) != n || len(iv.MassBlackHoleScatterError) != n {
		return ErrArrayLength
	}
	return nil
}

// SHMR is a complete stellar mass - halo mass relation dataset. Intervals
// are ordered by redshift and non-overlapping by convention.
type SHMR struct {
	Intervals          []Interval
	Cosmology          Cosmology
	HaloMassDefinition string
	Label              string
	Reference          string
}

// Validate checks the dataset-level invariants: at least one interval, a
// space-free label, and consistent arrays in every interval.
func (d *SHMR) Validate() error {
	if len(d.Intervals) == 0 {
		return ErrNoIntervals
	}
	if !cleanLabel(d.Label) {
		return ErrLabelNotClean
	}
	for i, iv := range d.Intervals {
		if err := iv.Validate(); err != nil {
			return fmt.Errorf("interval %d: %w", i, err)
		}
	}
	return nil
}

// NumIntervals returns the number of redshift intervals.
func (d *SHMR) NumIntervals() int { return len(d.Intervals) }

// TotalPoints returns the number of tabulation points across all intervals.
func (d *SHMR) TotalPoints() int {
	total := 0
	for _, iv := range d.Intervals {
		total += iv.NumPoints()
	}
	return total
}

// RedshiftRange returns the full redshift range covered by the dataset.
func (d *SHMR) RedshiftRange() (zMin, zMax float64) {
	if len(d.Intervals) == 0 {
		return 0, 0
	}
	zMin, zMax = d.Intervals[0].RedshiftMinimum, d.Intervals[0].RedshiftMaximum
	for _, iv := range d.Intervals[1:] {
		if iv.RedshiftMinimum < zMin {
			zMin = iv.RedshiftMinimum
		}
		if iv.RedshiftMaximum > zMax {
			zMax = iv.RedshiftMaximum
		}
	}
	return zMin, zMax
}

// BHMR is a complete black hole mass - halo mass relation dataset.
type BHMR struct {
	Intervals          []BlackHoleInterval
	Cosmology          Cosmology
	HaloMassDefinition string
	Label              string
	Reference          string
}

// Validate checks the dataset-level invariants.
func (d *BHMR) Validate() error {
	if len(d.Intervals) == 0 {
		return ErrNoIntervals
	}
	if !cleanLabel(d.Label) {
		return ErrLabelNotClean
	}
	for i, iv := range d.Intervals {
		if err := iv.Validate(); err != nil {
			return fmt.Errorf("interval %d: %w", i, err)
		}
	}
	return nil
}

// NumIntervals returns the number of redshift intervals.
func (d *BHMR) NumIntervals() int { return len(d.Intervals) }

// TotalPoints returns the number of tabulation points across all intervals.
func (d *BHMR) TotalPoints() int {
	total := 0
	for _, iv := range d.Intervals {
		total += iv.NumPoints()
	}
	return total
}

// RedshiftRange returns the full redshift range covered by the dataset.
func (d *BHMR) RedshiftRange() (zMin, zMax float64) {
	if len(d.Intervals) == 0 {
		return 0, 0
	}
	zMin, zMax = d.Intervals[0].RedshiftMinimum, d.Intervals[0].RedshiftMaximum
	for _, iv := range d.Intervals[1:] {
		if iv.RedshiftMinimum < zMin {
			zMin = iv.RedshiftMinimum
		}
		if iv.RedshiftMaximum > zMax {
			zMax = iv.RedshiftMaximum
		}
	}
	return zMin, zMax
}

// cleanLabel reports whether a label is space-free: alphanumeric plus
// underscore and hyphen, and non-empty.
func cleanLabel(label string) bool {
	if label == "" {
		return false
	}
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

package models

import (
	"fmt"

	"github.com/galacticus-data/shmr-datasets/relation"
)

// MassUnit identifies a mass unit convention.
type MassUnit string

const (
	Msun     MassUnit = "Msun"
	MsunPerH MassUnit = "Msun/h"
	Kilogram MassUnit = "kg"
)

// ConvertMass converts masses between unit conventions. The reduced
// Hubble parameter h is only consulted for Msun/h conversions.
func ConvertMass(masses []float64, from, to MassUnit, h float64) ([]float64, error) {
	toMsun, err := factorToMsun(from, h)
	if err != nil {
		return nil, err
	}
	fromMsun, err := factorToMsun(to, h)
	if err != nil {
		return nil, err
	}

	scale := toMsun / fromMsun
	out := make([]float64, len(masses))
	for i, m := range masses {
		out[i] = m * scale
	}
	return out, nil
}

func factorToMsun(unit MassUnit, h float64) (float64, error) {
	switch unit {
	case Msun:
		return 1, nil
	case MsunPerH:
		return 1 / h, nil
	case Kilogram:
		return 1 / relation.MsunInKilograms, nil
	}
	return 0, fmt.Errorf("unknown mass unit %q", unit)
}

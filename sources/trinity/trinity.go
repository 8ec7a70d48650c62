// Package trinity builds black hole mass - halo mass relation datasets
// from the published TRINITY model tables.
//
// TRINITY is the semi-empirical galaxy-halo-black hole model of Zhang et
// al. (2022), MNRAS, 518, 2123 (arXiv:2208.00719),
// https://github.com/HaowenZhang/TRINITY. The input is the median
// Mbh(Mpeak) fit tabulated over redshift intervals from z=0 to z=10.
package trinity

import (
	"fmt"
	"math"
	"sort"

	"github.com/galacticus-data/shmr-datasets/internal/asciitable"
	"github.com/galacticus-data/shmr-datasets/relation"
)

const (
	// Label and Reference identify the dataset in the container
	// metadata.
	Label     = "TRINITY"
	Reference = "Zhang et al. (2022)"

	// Assumed uncertainties: 0.3 dex on the median black hole mass and
	// 0.1 dex on the tabulated scatter, neither of which the table
	// records.
	massErrorDex    = 0.3
	scatterErrorDex = 0.1
)

// Table columns of the fig14 median fit file: z_min, z_max,
// log10(Mpeak), log10(Mbh), log10(Mbh/Mpeak), sigma_log10(Mbh).
const (
	colZMin = iota
	colZMax
	colLogHaloMass
	colLogBHMass
	colLogRatio
	colSigma
)

// Load reads a TRINITY median fit table and assembles it into a dataset,
// grouping rows by their (z_min, z_max) interval and ordering intervals
// by increasing redshift.
func Load(path string) (*relation.BHMR, error) {
	cols, err := asciitable.ReadFile(path, colZMin, colZMax, colLogHaloMass, colLogBHMass, colSigma)
	if err != nil {
		return nil, fmt.Errorf("trinity table: %w", err)
	}
	zMin, zMax, logHalo, logBH, sigma := cols[0], cols[1], cols[2], cols[3], cols[4]

	type bounds struct{ zMin, zMax float64 }
	grouped := make(map[bounds]*relation.BlackHoleInterval)
	var order []bounds

	for i := range zMin {
		key := bounds{zMin[i], zMax[i]}
		iv, ok := grouped[key]
		if !ok {
			iv = &relation.BlackHoleInterval{
				RedshiftMinimum: key.zMin,
				RedshiftMaximum: key.zMax,
			}
			grouped[key] = iv
			order = append(order, key)
		}

		haloMass := math.Pow(10, logHalo[i])
		bhMass := math.Pow(10, logBH[i])
		iv.MassHalo = append(iv.MassHalo, haloMass)
		iv.MassBlackHole = append(iv.MassBlackHole, bhMass)
		iv.MassBlackHoleError = append(iv.MassBlackHoleError, massErrorDex*math.Ln10*bhMass)
		iv.MassBlackHoleScatter = append(iv.MassBlackHoleScatter, sigma[i])
		iv.MassBlackHoleScatterError = append(iv.MassBlackHoleScatterError, scatterErrorDex)
	}

	sort.Slice(order, func(i, j int) bool { return order[i].zMin < order[j].zMin })

	intervals := make([]relation.BlackHoleInterval, len(order))
	for i, key := range order {
		intervals[i] = *grouped[key]
	}

	data := &relation.BHMR{
		Intervals:          intervals,
		Cosmology:          relation.Planck2018(),
		HaloMassDefinition: "virial",
		Label:              Label,
		Reference:          Reference,
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("trinity dataset: %w", err)
	}
	return data, nil
}

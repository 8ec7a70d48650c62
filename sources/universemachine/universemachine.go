// Package universemachine builds stellar-to-halo mass relation datasets
// from the UniverseMachine DR1 release of Behroozi et al. (2019), MNRAS,
// 488, 3143 (arXiv:1806.07893),
// https://bitbucket.org/pbehroozi/universemachine/.
//
// The release tabulates the median Mstar/Mh ratio per simulation
// snapshot, one file pair (ratio and scatter) per scale factor. Each
// snapshot becomes one redshift interval whose bounds are the midpoints
// to the neighboring snapshots.
package universemachine

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/galacticus-data/shmr-datasets/internal/asciitable"
	"github.com/galacticus-data/shmr-datasets/relation"
)

const (
	Label     = "UniverseMachine"
	Reference = "Behroozi et al. (2019)"

	// Measurement subdirectory carrying the raw median relations. The
	// median_fits variant records no scatter and is not supported.
	Measurement = "median_raw"

	// First of the three consecutive columns (value, error plus, error
	// minus) for the true centrals sample. Column 0 is log10 halo mass.
	trueCentralsColumn = 25
)

// ErrTooFewSnapshots is returned when fewer than two snapshot files are
// found: interval bounds are derived from neighboring snapshots.
var ErrTooFewSnapshots = errors.New("at least two snapshot files are required")

// Cosmology returns the Planck parameters adopted by the UniverseMachine
// simulations.
func Cosmology() relation.Cosmology {
	return relation.Cosmology{
		OmegaMatter:     0.3089,
		OmegaDarkEnergy: 0.6911,
		OmegaBaryon:     0.0486,
		HubbleConstant:  67.74,
	}
}

// snapshot pairs a snapshot's redshift with the scale factor string used
// in its file names. The string is kept verbatim so file lookups never
// depend on float formatting.
type snapshot struct {
	redshift float64
	scale    string
}

// Build assembles a dataset from an extracted smhm directory, as
// returned by Download.
func Build(smhmDir string) (*relation.SHMR, error) {
	dir := filepath.Join(smhmDir, Measurement)
	snapshots, err := discoverSnapshots(dir)
	if err != nil {
		return nil, err
	}
	if len(snapshots) < 2 {
		return nil, fmt.Errorf("%w in %s", ErrTooFewSnapshots, dir)
	}

	intervals := make([]relation.Interval, len(snapshots))
	for i, snap := range snapshots {
		iv, err := readSnapshot(dir, snap)
		if err != nil {
			return nil, err
		}
		iv.RedshiftMinimum, iv.RedshiftMaximum = intervalBounds(snapshots, i)
		intervals[i] = iv
	}

	data := &relation.SHMR{
		Intervals:          intervals,
		Cosmology:          Cosmology(),
		HaloMassDefinition: "virial",
		Label:              Label,
		Reference:          Reference,
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("universemachine dataset: %w", err)
	}
	return data, nil
}

// discoverSnapshots lists the smhm_a<scale>.dat files in dir and returns
// the snapshots sorted from low to high redshift.
func discoverSnapshots(dir string) ([]snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var snapshots []snapshot
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "smhm_a") || !strings.HasSuffix(name, ".dat") {
			continue
		}
		scale := strings.TrimSuffix(strings.TrimPrefix(name, "smhm_a"), ".dat")
		a, err := strconv.ParseFloat(scale, 64)
		if err != nil || a <= 0 {
			continue
		}
		snapshots = append(snapshots, snapshot{redshift: 1/a - 1, scale: scale})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].redshift < snapshots[j].redshift
	})
	return snapshots, nil
}

// intervalBounds places interval edges at the midpoints between
// neighboring snapshot redshifts. The first and last intervals extend by
// half the spacing to their single neighbor, floored at z=0.
func intervalBounds(snapshots []snapshot, i int) (zMin, zMax float64) {
	z := snapshots[i].redshift
	if i > 0 {
		zMin = (snapshots[i-1].redshift + z) / 2
	} else {
		zMin = math.Max(0, z-0.5*(snapshots[i+1].redshift-z))
	}
	if i < len(snapshots)-1 {
		zMax = (snapshots[i+1].redshift + z) / 2
	} else {
		zMax = z + 0.5*(z-snapshots[i-1].redshift)
	}
	return zMin, zMax
}

// readSnapshot parses one snapshot's ratio and scatter tables into an
// interval with zero redshift bounds.
func readSnapshot(dir string, snap snapshot) (relation.Interval, error) {
	var iv relation.Interval

	cols, err := asciitable.ReadFile(
		filepath.Join(dir, "smhm_a"+snap.scale+".dat"),
		0, trueCentralsColumn, trueCentralsColumn+1, trueCentralsColumn+2,
	)
	if err != nil {
		return iv, fmt.Errorf("smhm table: %w", err)
	}
	logHalo, logRatio, errPlus, errMinus := cols[0], cols[1], cols[2], cols[3]

	n := len(logHalo)
	iv.MassHalo = make([]float64, n)
	iv.MassStellar = make([]float64, n)
	iv.MassStellarError = make([]float64, n)
	for i := 0; i < n; i++ {
		iv.MassHalo[i] = math.Pow(10, logHalo[i])
		iv.MassStellar[i] = math.Pow(10, logHalo[i]+logRatio[i])
		errDex := (errPlus[i] + errMinus[i]) / 2
		iv.MassStellarError[i] = iv.MassStellar[i] * math.Ln10 * errDex
	}

	cols, err = asciitable.ReadFile(
		filepath.Join(dir, "smhm_scatter_a"+snap.scale+".dat"),
		0, trueCentralsColumn, trueCentralsColumn+1, trueCentralsColumn+2,
	)
	if err != nil {
		return iv, fmt.Errorf("smhm scatter table: %w", err)
	}
	scatter, scatterPlus, scatterMinus := cols[1], cols[2], cols[3]

	iv.MassStellarScatter = make([]float64, len(scatter))
	copy(iv.MassStellarScatter, scatter)
	iv.MassStellarScatterError = make([]float64, len(scatter))
	for i := range scatter {
		iv.MassStellarScatterError[i] = (scatterPlus[i] + scatterMinus[i]) / 2
	}

	return iv, nil
}

// Package galacticus reads, writes, and validates SHMR and BHMR dataset
// files in the HDF5 container format consumed by Galacticus's
// stellarHaloMassRelation and blackHoleVsHaloMassRelation analysis classes.
//
// The container layout is fixed: haloMassDefinition, label, and reference
// attributes on the root group; a cosmology group with four scalar float64
// attributes; and one redshiftInterval<N> group per redshift bin, each
// carrying redshiftMinimum/redshiftMaximum attributes and five parallel
// one-dimensional float64 datasets with description and unitsInSI
// attributes.
//
// Files are written with the specialized one-pass writer in internal/h5w
// and read back with github.com/robert-malhotra/go-hdf5.
package galacticus

import "errors"

// Common errors.
var (
	ErrNotHDF5Extension = errors.New("galacticus format requires .hdf5 extension")
	ErrNotFound         = errors.New("file not found")
	ErrWrongKind        = errors.New("file holds a different relation kind")
)

// Kind identifies which mass relation a file tabulates.
type Kind string

const (
	// KindSHMR marks stellar mass - halo mass relation files.
	KindSHMR Kind = "shmr"
	// KindBHMR marks black hole mass - halo mass relation files.
	KindBHMR Kind = "bhmr"
	// KindUnknown marks files whose interval groups carry neither
	// massStellar nor massBlackHole datasets.
	KindUnknown Kind = "unknown"
)

// intervalPrefix is the name prefix of per-redshift-bin groups.
const intervalPrefix = "redshiftInterval"

// shmrDatasets are the datasets required in every SHMR interval group.
var shmrDatasets = []string{
	"massHalo",
	"massStellar",
	"massStellarError",
	"massStellarScatter",
	"massStellarScatterError",
}

// bhmrDatasets are the datasets required in every BHMR interval group.
var bhmrDatasets = []string{
	"massHalo",
	"massBlackHole",
	"massBlackHoleError",
	"massBlackHoleScatter",
	"massBlackHoleScatterError",
}

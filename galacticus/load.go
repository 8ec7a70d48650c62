package galacticus

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-hdf5/hdf5"

	"github.com/galacticus-data/shmr-datasets/relation"
)

// LoadSHMR reads a Galacticus-format SHMR file back into the data model.
func LoadSHMR(path string) (*relation.SHMR, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data := &relation.SHMR{}
	data.HaloMassDefinition, data.Label, data.Reference, err = readRootMetadata(f)
	if err != nil {
		return nil, err
	}
	data.Cosmology, err = readCosmology(f)
	if err != nil {
		return nil, err
	}

	names, err := intervalGroups(f)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		g, err := f.OpenGroup(name)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}

		var iv relation.Interval
		if iv.RedshiftMinimum, err = groupFloatAttr(g, "redshiftMinimum"); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if iv.RedshiftMaximum, err = groupFloatAttr(g, "redshiftMaximum"); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		columns := map[string]*[]float64{
			"massHalo":                &iv.MassHalo,
			"massStellar":             &iv.MassStellar,
			"massStellarError":        &iv.MassStellarError,
			"massStellarScatter":      &iv.MassStellarScatter,
			"massStellarScatterError": &iv.MassStellarScatterError,
		}
		if err := readColumns(g, name, columns); err != nil {
			return nil, err
		}

		data.Intervals = append(data.Intervals, iv)
	}

	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// LoadBHMR reads a Galacticus-format BHMR file back into the data model.
func LoadBHMR(path string) (*relation.BHMR, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data := &relation.BHMR{}
	data.HaloMassDefinition, data.Label, data.Reference, err = readRootMetadata(f)
	if err != nil {
		return nil, err
	}
	data.Cosmology, err = readCosmology(f)
	if err != nil {
		return nil, err
	}

	names, err := intervalGroups(f)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		g, err := f.OpenGroup(name)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}

		var iv relation.BlackHoleInterval
		if iv.RedshiftMinimum, err = groupFloatAttr(g, "redshiftMinimum"); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if iv.RedshiftMaximum, err = groupFloatAttr(g, "redshiftMaximum"); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		columns := map[string]*[]float64{
			"massHalo":                  &iv.MassHalo,
			"massBlackHole":             &iv.MassBlackHole,
			"massBlackHoleError":        &iv.MassBlackHoleError,
			"massBlackHoleScatter":      &iv.MassBlackHoleScatter,
			"massBlackHoleScatterError": &iv.MassBlackHoleScatterError,
		}
		if err := readColumns(g, name, columns); err != nil {
			return nil, err
		}

		data.Intervals = append(data.Intervals, iv)
	}

	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// DetectKind reports whether a file tabulates stellar or black hole masses,
// based on the datasets in its first redshift interval group.
func DetectKind(path string) (Kind, error) {
	f, err := openFile(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	names, err := intervalGroups(f)
	if err != nil || len(names) == 0 {
		return KindUnknown, err
	}

	g, err := f.OpenGroup(names[0])
	if err != nil {
		return KindUnknown, nil
	}
	if _, err := g.OpenDataset("massStellar"); err == nil {
		return KindSHMR, nil
	}
	if _, err := g.OpenDataset("massBlackHole"); err == nil {
		return KindBHMR, nil
	}
	return KindUnknown, nil
}

// openFile opens an HDF5 file for reading, mapping a missing file to
// ErrNotFound.
func openFile(path string) (*hdf5.File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	f, err := hdf5.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return f, nil
}

// readRootMetadata reads the three required root attributes.
func readRootMetadata(f *hdf5.File) (definition, label, reference string, err error) {
	if definition, err = groupStringAttr(f.Root(), "haloMassDefinition"); err != nil {
		return
	}
	if label, err = groupStringAttr(f.Root(), "label"); err != nil {
		return
	}
	reference, err = groupStringAttr(f.Root(), "reference")
	return
}

// readCosmology reads the cosmology group attributes.
func readCosmology(f *hdf5.File) (relation.Cosmology, error) {
	g, err := f.OpenGroup("cosmology")
	if err != nil {
		return relation.Cosmology{}, fmt.Errorf("opening cosmology group: %w", err)
	}

	var cosmo relation.Cosmology
	fields := []struct {
		name string
		dst  *float64
	}{
		{"OmegaMatter", &cosmo.OmegaMatter},
		{"OmegaDarkEnergy", &cosmo.OmegaDarkEnergy},
		{"OmegaBaryon", &cosmo.OmegaBaryon},
		{"HubbleConstant", &cosmo.HubbleConstant},
	}
	for _, fl := range fields {
		v, err := groupFloatAttr(g, fl.name)
		if err != nil {
			return relation.Cosmology{}, fmt.Errorf("cosmology: %w", err)
		}
		*fl.dst = v
	}
	return cosmo, nil
}

// intervalGroups returns the redshiftInterval group names sorted by index.
func intervalGroups(f *hdf5.File) ([]string, error) {
	members, err := f.Root().Members()
	if err != nil {
		return nil, fmt.Errorf("listing root group: %w", err)
	}

	var names []string
	for _, m := range members {
		if strings.HasPrefix(m, intervalPrefix) {
			names = append(names, m)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return intervalIndex(names[i]) < intervalIndex(names[j])
	})
	return names, nil
}

// intervalIndex extracts N from redshiftIntervalN; malformed names sort last.
func intervalIndex(name string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(name, intervalPrefix))
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}

// readColumns reads the named datasets of an interval group into the given
// destinations.
func readColumns(g *hdf5.Group, groupName string, columns map[string]*[]float64) error {
	for name, dst := range columns {
		ds, err := g.OpenDataset(name)
		if err != nil {
			return fmt.Errorf("%s: opening %s: %w", groupName, name, err)
		}
		values, err := ds.ReadFloat64()
		if err != nil {
			return fmt.Errorf("%s: reading %s: %w", groupName, name, err)
		}
		*dst = values
	}
	return nil
}

// groupStringAttr reads a scalar string attribute from a group.
func groupStringAttr(g *hdf5.Group, name string) (string, error) {
	attr := g.Attr(name)
	if attr == nil {
		return "", fmt.Errorf("missing attribute %s", name)
	}
	return attr.ReadScalarString()
}

// groupFloatAttr reads a scalar float64 attribute from a group.
func groupFloatAttr(g *hdf5.Group, name string) (float64, error) {
	attr := g.Attr(name)
	if attr == nil {
		return 0, fmt.Errorf("missing attribute %s", name)
	}
	return attr.ReadScalarFloat64()
}

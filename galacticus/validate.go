package galacticus

import (
	"fmt"
	"os"

	"github.com/robert-malhotra/go-hdf5/hdf5"

	"github.com/galacticus-data/shmr-datasets/relation"
)

// Report holds the result of validating a file against the Galacticus
// container format. A file is valid when it produced no errors; warnings
// flag recommended metadata that is missing or non-standard.
type Report struct {
	Path     string
	Kind     Kind
	Errors   []string
	Warnings []string
}

// Valid reports whether validation found no errors.
func (r *Report) Valid() bool {
	return len(r.Errors) == 0
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks that the file at path conforms to the Galacticus SHMR or
// BHMR container format. The relation kind is detected from the file; files
// whose kind cannot be detected are checked against the SHMR layout.
func Validate(path string) *Report {
	r := &Report{Path: path, Kind: KindUnknown}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		r.errorf("file not found: %s", path)
		return r
	}

	f, err := hdf5.Open(path)
	if err != nil {
		r.errorf("error reading file: %v", err)
		return r
	}
	defer f.Close()

	if kind, err := DetectKind(path); err == nil {
		r.Kind = kind
	}
	required := shmrDatasets
	if r.Kind == KindBHMR {
		required = bhmrDatasets
	}

	checkRootAttributes(f, r)
	checkCosmology(f, r)
	checkIntervals(f, r, required)
	return r
}

// checkRootAttributes verifies the required top-level attributes and warns
// about non-standard halo mass definitions.
func checkRootAttributes(f *hdf5.File, r *Report) {
	root := f.Root()
	for _, name := range []string{"haloMassDefinition", "label", "reference"} {
		if !root.HasAttr(name) {
			r.errorf("missing required attribute: %s", name)
		}
	}

	if root.HasAttr("haloMassDefinition") {
		def, err := root.Attr("haloMassDefinition").ReadScalarString()
		if err != nil {
			r.errorf("unreadable haloMassDefinition attribute: %v", err)
		} else if !relation.ValidHaloMassDefinition(def) {
			r.warnf("non-standard halo mass definition: %s", def)
		}
	}
}

// checkCosmology verifies the cosmology group and its four parameters.
func checkCosmology(f *hdf5.File, r *Report) {
	g, err := f.OpenGroup("cosmology")
	if err != nil {
		r.errorf("missing required cosmology group")
		return
	}
	for _, name := range []string{"OmegaMatter", "OmegaDarkEnergy", "OmegaBaryon", "HubbleConstant"} {
		if !g.HasAttr(name) {
			r.errorf("missing cosmology attribute: %s", name)
		}
	}
}

// checkIntervals verifies every redshiftInterval group: bounds attributes,
// required datasets, equal dataset lengths, and recommended dataset
// attributes.
func checkIntervals(f *hdf5.File, r *Report, required []string) {
	names, err := intervalGroups(f)
	if err != nil {
		r.errorf("listing root group: %v", err)
		return
	}
	if len(names) == 0 {
		r.errorf("no redshift intervals found")
		return
	}

	for _, name := range names {
		g, err := f.OpenGroup(name)
		if err != nil {
			r.errorf("cannot open group %s: %v", name, err)
			continue
		}

		for _, attr := range []string{"redshiftMinimum", "redshiftMaximum"} {
			if !g.HasAttr(attr) {
				r.errorf("missing attribute %s in %s", attr, name)
			}
		}

		expected := uint64(0)
		for i, dsName := range required {
			ds, err := g.OpenDataset(dsName)
			if err != nil {
				r.errorf("missing dataset %s in %s", dsName, name)
				continue
			}

			if i == 0 {
				expected = ds.NumElements()
			} else if ds.NumElements() != expected {
				r.errorf("dataset %s has wrong length in %s", dsName, name)
			}

			if !ds.HasAttr("description") {
				r.warnf("missing description for %s in %s", dsName, name)
			}
			if !ds.HasAttr("unitsInSI") {
				r.warnf("missing unitsInSI for %s in %s", dsName, name)
			}
		}
	}
}

package galacticus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/galacticus-data/shmr-datasets/internal/h5w"
	"github.com/galacticus-data/shmr-datasets/relation"
)

// SaveSHMR validates data and writes it to path in the Galacticus container
// format. The path must end in .hdf5; parent directories are created.
func SaveSHMR(data *relation.SHMR, path string) error {
	if err := data.Validate(); err != nil {
		return fmt.Errorf("invalid dataset: %w", err)
	}
	if !relation.ValidHaloMassDefinition(data.HaloMassDefinition) {
		return fmt.Errorf("%w: %q", relation.ErrBadDefinition, data.HaloMassDefinition)
	}

	f := h5w.New()
	writeMetadata(f.Root(), data.Cosmology, data.HaloMassDefinition, data.Label, data.Reference)

	for i, iv := range data.Intervals {
		g := f.Root().Group(fmt.Sprintf("%s%d", intervalPrefix, i))
		g.SetAttr("redshiftMinimum", iv.RedshiftMinimum)
		g.SetAttr("redshiftMaximum", iv.RedshiftMaximum)

		writeColumn(g, "massHalo", iv.MassHalo)
		writeColumn(g, "massStellar", iv.MassStellar)
		writeColumn(g, "massStellarError", iv.MassStellarError)
		writeColumn(g, "massStellarScatter", iv.MassStellarScatter)
		writeColumn(g, "massStellarScatterError", iv.MassStellarScatterError)
	}

	return saveFile(f, path)
}

// SaveBHMR validates data and writes it to path in the Galacticus container
// format for black hole mass relations.
func SaveBHMR(data *relation.BHMR, path string) error {
	if err := data.Validate(); err != nil {
		return fmt.Errorf("invalid dataset: %w", err)
	}
	if !relation.ValidHaloMassDefinition(data.HaloMassDefinition) {
		return fmt.Errorf("%w: %q", relation.ErrBadDefinition, data.HaloMassDefinition)
	}

	f := h5w.New()
	writeMetadata(f.Root(), data.Cosmology, data.HaloMassDefinition, data.Label, data.Reference)

	for i, iv := range data.Intervals {
		g := f.Root().Group(fmt.Sprintf("%s%d", intervalPrefix, i))
		g.SetAttr("redshiftMinimum", iv.RedshiftMinimum)
		g.SetAttr("redshiftMaximum", iv.RedshiftMaximum)

		writeColumn(g, "massHalo", iv.MassHalo)
		writeColumn(g, "massBlackHole", iv.MassBlackHole)
		writeColumn(g, "massBlackHoleError", iv.MassBlackHoleError)
		writeColumn(g, "massBlackHoleScatter", iv.MassBlackHoleScatter)
		writeColumn(g, "massBlackHoleScatterError", iv.MassBlackHoleScatterError)
	}

	return saveFile(f, path)
}

// writeMetadata sets the root attributes and cosmology group required by
// Galacticus.
func writeMetadata(root *h5w.Group, cosmo relation.Cosmology, definition, label, reference string) {
	root.SetAttr("haloMassDefinition", definition)
	root.SetAttr("label", label)
	root.SetAttr("reference", reference)

	g := root.Group("cosmology")
	g.SetAttr("OmegaMatter", cosmo.OmegaMatter)
	g.SetAttr("OmegaDarkEnergy", cosmo.OmegaDarkEnergy)
	g.SetAttr("OmegaBaryon", cosmo.OmegaBaryon)
	g.SetAttr("HubbleConstant", cosmo.HubbleConstant)
}

// writeColumn writes one tabulated column with its description and unitsInSI
// attributes.
func writeColumn(g *h5w.Group, name string, data []float64) {
	g.Dataset(name, data).
		SetAttr("description", relation.Descriptions[name]).
		SetAttr("unitsInSI", relation.UnitsInSI(name))
}

// saveFile checks the extension, creates parent directories, and writes the
// encoded file.
func saveFile(f *h5w.File, path string) error {
	if !strings.HasSuffix(path, ".hdf5") {
		return ErrNotHDF5Extension
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := f.Save(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

package galacticus

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galacticus-data/shmr-datasets/internal/h5w"
	"github.com/galacticus-data/shmr-datasets/relation"
)

func sampleSHMR(t *testing.T) *relation.SHMR {
	t.Helper()
	iv, err := relation.NewInterval(0.0, 0.1,
		[]float64{1e12, 1e13, 1e14},
		[]float64{1e10, 5e10, 1e11},
		[]float64{1e9, 5e9, 1e10},
		[]float64{0.16, 0.16, 0.16},
		[]float64{0.04, 0.04, 0.04},
	)
	require.NoError(t, err)

	iv2 := iv
	iv2.RedshiftMinimum = 0.1
	iv2.RedshiftMaximum = 0.5

	return &relation.SHMR{
		Intervals:          []relation.Interval{iv, iv2},
		Cosmology:          relation.Planck2018(),
		HaloMassDefinition: "virial",
		Label:              "TestSHMR",
		Reference:          "Test et al. (2024)",
	}
}

func sampleBHMR(t *testing.T) *relation.BHMR {
	t.Helper()
	iv, err := relation.NewBlackHoleInterval(0.0, 1.0,
		[]float64{1e12, 1e13},
		[]float64{1e7, 1e8},
		[]float64{1e6, 1e7},
		[]float64{0.3, 0.3},
		[]float64{0.1, 0.1},
	)
	require.NoError(t, err)

	return &relation.BHMR{
		Intervals:          []relation.BlackHoleInterval{iv},
		Cosmology:          relation.Planck2018(),
		HaloMassDefinition: "virial",
		Label:              "TRINITY",
		Reference:          "Zhang et al. (2022)",
	}
}

func TestSaveLoadSHMR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shmr.hdf5")
	want := sampleSHMR(t)

	require.NoError(t, SaveSHMR(want, path))

	got, err := LoadSHMR(path)
	require.NoError(t, err)

	assert.Equal(t, want.Label, got.Label)
	assert.Equal(t, want.Reference, got.Reference)
	assert.Equal(t, want.HaloMassDefinition, got.HaloMassDefinition)
	assert.Equal(t, want.Cosmology, got.Cosmology)
	require.Len(t, got.Intervals, 2)
	assert.Equal(t, want.Intervals[0].MassHalo, got.Intervals[0].MassHalo)
	assert.Equal(t, want.Intervals[0].MassStellar, got.Intervals[0].MassStellar)
	assert.Equal(t, want.Intervals[1].RedshiftMinimum, got.Intervals[1].RedshiftMinimum)
	assert.Equal(t, want.Intervals[1].RedshiftMaximum, got.Intervals[1].RedshiftMaximum)
}

func TestSaveLoadBHMR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bhmr.hdf5")
	want := sampleBHMR(t)

	require.NoError(t, SaveBHMR(want, path))

	got, err := LoadBHMR(path)
	require.NoError(t, err)

	assert.Equal(t, want.Label, got.Label)
	require.Len(t, got.Intervals, 1)
	assert.Equal(t, want.Intervals[0].MassBlackHole, got.Intervals[0].MassBlackHole)
	assert.Equal(t, want.Intervals[0].MassBlackHoleScatter, got.Intervals[0].MassBlackHoleScatter)
}

func TestSaveRequiresExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shmr.h5")
	err := SaveSHMR(sampleSHMR(t), path)
	assert.ErrorIs(t, err, ErrNotHDF5Extension)
}

func TestSaveRejectsBadDefinition(t *testing.T) {
	data := sampleSHMR(t)
	data.HaloMassDefinition = "M200c"
	err := SaveSHMR(data, filepath.Join(t.TempDir(), "bad.hdf5"))
	assert.ErrorIs(t, err, relation.ErrBadDefinition)
}

func TestSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "shmr.hdf5")
	require.NoError(t, SaveSHMR(sampleSHMR(t), path))

	report := Validate(path)
	assert.True(t, report.Valid(), "errors: %v", report.Errors)
}

func TestDetectKind(t *testing.T) {
	dir := t.TempDir()

	shmrPath := filepath.Join(dir, "shmr.hdf5")
	require.NoError(t, SaveSHMR(sampleSHMR(t), shmrPath))
	kind, err := DetectKind(shmrPath)
	require.NoError(t, err)
	assert.Equal(t, KindSHMR, kind)

	bhmrPath := filepath.Join(dir, "bhmr.hdf5")
	require.NoError(t, SaveBHMR(sampleBHMR(t), bhmrPath))
	kind, err = DetectKind(bhmrPath)
	require.NoError(t, err)
	assert.Equal(t, KindBHMR, kind)
}

func TestValidateGoodFiles(t *testing.T) {
	dir := t.TempDir()

	shmrPath := filepath.Join(dir, "shmr.hdf5")
	require.NoError(t, SaveSHMR(sampleSHMR(t), shmrPath))
	report := Validate(shmrPath)
	assert.True(t, report.Valid(), "errors: %v", report.Errors)
	assert.Equal(t, KindSHMR, report.Kind)
	assert.Empty(t, report.Warnings)

	bhmrPath := filepath.Join(dir, "bhmr.hdf5")
	require.NoError(t, SaveBHMR(sampleBHMR(t), bhmrPath))
	report = Validate(bhmrPath)
	assert.True(t, report.Valid(), "errors: %v", report.Errors)
	assert.Equal(t, KindBHMR, report.Kind)
}

func TestValidateWarnings(t *testing.T) {
	// Save refuses non-standard definitions and always writes dataset
	// attributes, so build the file directly to reach the warning paths.
	path := filepath.Join(t.TempDir(), "warn.hdf5")

	f := h5w.New()
	root := f.Root()
	root.SetAttr("haloMassDefinition", "M200c")
	root.SetAttr("label", "WarnSHMR")
	root.SetAttr("reference", "Test et al. (2024)")

	cosmo := root.Group("cosmology")
	cosmo.SetAttr("OmegaMatter", 0.3111)
	cosmo.SetAttr("OmegaDarkEnergy", 0.6889)
	cosmo.SetAttr("OmegaBaryon", 0.04897)
	cosmo.SetAttr("HubbleConstant", 67.66)

	g := root.Group("redshiftInterval0")
	g.SetAttr("redshiftMinimum", 0.0)
	g.SetAttr("redshiftMaximum", 0.1)
	data := []float64{1e12, 1e13}
	for _, name := range []string{
		"massHalo", "massStellar", "massStellarError",
		"massStellarScatter", "massStellarScatterError",
	} {
		g.Dataset(name, data)
	}
	require.NoError(t, f.Save(path))

	report := Validate(path)
	assert.True(t, report.Valid(), "errors: %v", report.Errors)
	assert.Equal(t, KindSHMR, report.Kind)
	assert.Contains(t, report.Warnings, "non-standard halo mass definition: M200c")
	assert.Contains(t, report.Warnings, "missing description for massHalo in redshiftInterval0")
	assert.Contains(t, report.Warnings, "missing unitsInSI for massStellarScatter in redshiftInterval0")
	// One definition warning plus description and unitsInSI for each of
	// the five datasets.
	assert.Len(t, report.Warnings, 11)
}

func TestValidateMissingFile(t *testing.T) {
	report := Validate(filepath.Join(t.TempDir(), "absent.hdf5"))
	assert.False(t, report.Valid())
}

func TestInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shmr.hdf5")
	require.NoError(t, SaveSHMR(sampleSHMR(t), path))

	info, err := Info(path)
	require.NoError(t, err)

	assert.Equal(t, "TestSHMR", info.Label)
	assert.Equal(t, KindSHMR, info.Kind)
	assert.Equal(t, 6, info.TotalPoints())
	zMin, zMax := info.RedshiftRange()
	assert.Equal(t, 0.0, zMin)
	assert.Equal(t, 0.5, zMax)
	assert.Contains(t, info.String(), "TestSHMR")
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galacticus-data/shmr-datasets/galacticus"
	"github.com/galacticus-data/shmr-datasets/relation/models"
)

const parametricYAML = `model: moster2013
label: Moster2013
reference: Moster, Naab & White (2013)
halo_mass_definition: virial
halo_masses:
  log_min: 10.0
  log_max: 15.0
  count: 50
redshifts:
  - center: 0.0
    width: 0.1
  - center: 1.0
    width: 0.2
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGenerateParametricAndValidate(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "moster2013.hdf5")

	_, err := execute(t, "generate", "parametric", "--config", writeConfig(t, parametricYAML), "-o", out)
	require.NoError(t, err)

	data, err := galacticus.LoadSHMR(out)
	require.NoError(t, err)
	assert.Equal(t, "Moster2013", data.Label)
	require.Len(t, data.Intervals, 2)
	assert.Equal(t, 50, data.Intervals[0].NumPoints())

	output, err := execute(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, output, "OK: "+out)
	assert.Contains(t, output, "1 file(s) checked, 0 invalid")
}

func TestValidateRejectsNonDataset(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.hdf5")
	require.NoError(t, os.WriteFile(bad, []byte("not an hdf5 file"), 0o644))

	output, err := execute(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, output, "INVALID: "+bad)
}

func TestValidateEmptyDirectory(t *testing.T) {
	_, err := execute(t, "validate", t.TempDir())
	assert.Error(t, err)
}

func TestInfoCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "moster2013.hdf5")
	_, err := execute(t, "generate", "parametric", "--config", writeConfig(t, parametricYAML), "-o", out)
	require.NoError(t, err)

	output, err := execute(t, "info", out)
	require.NoError(t, err)
	assert.Contains(t, output, "Moster2013")
}

func TestPlotCommand(t *testing.T) {
	dir := t.TempDir()
	dataset := filepath.Join(dir, "moster2013.hdf5")
	_, err := execute(t, "generate", "parametric", "--config", writeConfig(t, parametricYAML), "-o", dataset)
	require.NoError(t, err)

	image := filepath.Join(dir, "comparison.png")
	_, err = execute(t, "plot", "--redshift", "0.1", "-o", image, dataset)
	require.NoError(t, err)

	info, err := os.Stat(image)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestMakeFormOverrides(t *testing.T) {
	form, err := makeForm("moster2013", 0, map[string]float64{"n10": 0.05})
	require.NoError(t, err)
	assert.Equal(t, 0.05, form.(models.Moster2013).N10)

	_, err = makeForm("moster2013", 0, map[string]float64{"bogus": 1})
	assert.Error(t, err)

	_, err = makeForm("not_a_model", 0, nil)
	assert.Error(t, err)
}

func TestCollectDatasetFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	keep := filepath.Join(dir, "nested", "a.hdf5")
	require.NoError(t, os.WriteFile(keep, nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), nil, 0o644))

	files, err := collectDatasetFiles([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{keep}, files)

	_, err = collectDatasetFiles([]string{filepath.Join(dir, "absent")})
	assert.Error(t, err)
}

package relplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galacticus-data/shmr-datasets/relation"
)

func fixture(t *testing.T) *relation.SHMR {
	t.Helper()
	low, err := relation.NewInterval(0.0, 0.2,
		[]float64{1e11, 1e12, 1e13},
		[]float64{1e9, 1e10, 3e10},
		[]float64{1e8, 1e9, 3e9},
		[]float64{0.16, 0.16, 0.16},
		[]float64{0.04, 0.04, 0.04},
	)
	require.NoError(t, err)
	high := low
	high.RedshiftMinimum = 0.9
	high.RedshiftMaximum = 1.1

	return &relation.SHMR{
		Intervals:          []relation.Interval{low, high},
		Cosmology:          relation.Planck2018(),
		HaloMassDefinition: "virial",
		Label:              "fixture",
		Reference:          "test",
	}
}

func TestSelectInterval(t *testing.T) {
	data := fixture(t)

	i, ok := SelectInterval(data, 0.1, DefaultTolerance)
	require.True(t, ok)
	assert.Equal(t, 0, i)

	i, ok = SelectInterval(data, 1.0, DefaultTolerance)
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = SelectInterval(data, 3.0, DefaultTolerance)
	assert.False(t, ok)
}

func TestFromSHMR(t *testing.T) {
	s, ok := FromSHMR(fixture(t), 1.0, DefaultTolerance)
	require.True(t, ok)
	assert.Equal(t, "fixture", s.Label)
	assert.InDelta(t, 1.0, s.Redshift, 1e-12)
	assert.Len(t, s.MassHalo, 3)
}

func TestComparisonWritesPNG(t *testing.T) {
	s, ok := FromSHMR(fixture(t), 0.1, DefaultTolerance)
	require.True(t, ok)

	path := filepath.Join(t.TempDir(), "comparison.png")
	require.NoError(t, Comparison([]Series{s}, 0.1, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestComparisonNoSeries(t *testing.T) {
	err := Comparison(nil, 0.1, filepath.Join(t.TempDir(), "empty.png"))
	assert.ErrorIs(t, err, ErrNoSeries)
}

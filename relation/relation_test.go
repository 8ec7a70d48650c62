package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func TestNewInterval(t *testing.T) {
	iv, err := NewInterval(0.0, 0.1, sample(3), sample(3), sample(3), sample(3), sample(3))
	require.NoError(t, err)
	assert.Equal(t, 3, iv.NumPoints())
}

func TestNewIntervalLengthMismatch(t *testing.T) {
	_, err := NewInterval(0.0, 0.1, sample(3), sample(2), sample(3), sample(3), sample(3))
	assert.ErrorIs(t, err, ErrArrayLength)
}

func TestSHMRValidate(t *testing.T) {
	iv, err := NewInterval(0.0, 0.1, sample(3), sample(3), sample(3), sample(3), sample(3))
	require.NoError(t, err)

	d := &SHMR{
		Intervals:          []Interval{iv},
		Cosmology:          Planck2018(),
		HaloMassDefinition: "virial",
		Label:              "Test_SHMR-1",
		Reference:          "Test et al. (2024)",
	}
	assert.NoError(t, d.Validate())

	d.Label = "has spaces"
	assert.ErrorIs(t, d.Validate(), ErrLabelNotClean)

	d.Label = "ok"
	d.Intervals = nil
	assert.ErrorIs(t, d.Validate(), ErrNoIntervals)
}

func TestRedshiftRange(t *testing.T) {
	a, err := NewInterval(0.0, 0.5, sample(2), sample(2), sample(2), sample(2), sample(2))
	require.NoError(t, err)
	b, err := NewInterval(0.5, 2.0, sample(2), sample(2), sample(2), sample(2), sample(2))
	require.NoError(t, err)

	d := &SHMR{Intervals: []Interval{a, b}, Label: "x"}
	zMin, zMax := d.RedshiftRange()
	assert.Equal(t, 0.0, zMin)
	assert.Equal(t, 2.0, zMax)
	assert.Equal(t, 4, d.TotalPoints())
	assert.Equal(t, 2, d.NumIntervals())
}

func TestBHMRValidate(t *testing.T) {
	iv, err := NewBlackHoleInterval(0.0, 1.0, sample(4), sample(4), sample(4), sample(4), sample(4))
	require.NoError(t, err)

	d := &BHMR{
		Intervals:          []BlackHoleInterval{iv},
		Cosmology:          Planck2018(),
		HaloMassDefinition: "virial",
		Label:              "TRINITY",
		Reference:          "Zhang et al. (2022)",
	}
	assert.NoError(t, d.Validate())
	assert.Equal(t, 4, d.TotalPoints())
}

func TestValidHaloMassDefinition(t *testing.T) {
	assert.True(t, ValidHaloMassDefinition("virial"))
	assert.True(t, ValidHaloMassDefinition("Bryan & Norman (1998)"))
	assert.True(t, ValidHaloMassDefinition("200 * critical density"))
	assert.False(t, ValidHaloMassDefinition("M200c"))
	assert.False(t, ValidHaloMassDefinition(""))
}

func TestUnitsInSI(t *testing.T) {
	assert.Equal(t, MsunInKilograms, UnitsInSI("massHalo"))
	assert.Equal(t, MsunInKilograms, UnitsInSI("massBlackHoleError"))
	assert.Equal(t, DexInSI, UnitsInSI("massStellarScatter"))
	assert.Equal(t, DexInSI, UnitsInSI("massBlackHoleScatterError"))
}

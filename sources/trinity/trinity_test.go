package trinity

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `# z_min z_max log10(Mpeak) log10(Mbh) log10(Mbh/Mpeak) sigma
1.0 2.0 12.0 7.2 -4.8 0.42
1.0 2.0 13.0 8.1 -4.9 0.40
0.0 1.0 12.0 7.0 -5.0 0.47
0.0 1.0 13.0 7.9 -5.1 0.45
0.0 1.0 14.0 8.8 -5.2 0.44
`

func writeTable(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fig14_median_BHHM_fit_z0-10.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleTable), 0o644))
	return path
}

func TestLoadGroupsAndSorts(t *testing.T) {
	data, err := Load(writeTable(t))
	require.NoError(t, err)

	require.Len(t, data.Intervals, 2)

	// Intervals come out ordered by redshift even though the file lists
	// the high-z block first.
	assert.Equal(t, 0.0, data.Intervals[0].RedshiftMinimum)
	assert.Equal(t, 1.0, data.Intervals[0].RedshiftMaximum)
	assert.Equal(t, 1.0, data.Intervals[1].RedshiftMinimum)

	assert.Equal(t, 3, data.Intervals[0].NumPoints())
	assert.Equal(t, 2, data.Intervals[1].NumPoints())

	assert.Equal(t, Label, data.Label)
	assert.Equal(t, Reference, data.Reference)
	assert.Equal(t, "virial", data.HaloMassDefinition)
}

func TestLoadValues(t *testing.T) {
	data, err := Load(writeTable(t))
	require.NoError(t, err)

	iv := data.Intervals[0]
	assert.InEpsilon(t, 1e12, iv.MassHalo[0], 1e-12)
	assert.InEpsilon(t, 1e7, iv.MassBlackHole[0], 1e-12)
	assert.Equal(t, 0.47, iv.MassBlackHoleScatter[0])
	assert.Equal(t, 0.1, iv.MassBlackHoleScatterError[0])
	// 0.3 dex converted to a linear mass error.
	assert.InEpsilon(t, 0.3*math.Ln10*1e7, iv.MassBlackHoleError[0], 1e-12)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molscreen/vinauto/internal/domain/geometry"
)

const boxTestStructure = `ATOM      1  N   ALA A   1       0.000   0.000   0.000  0.00  0.00    -0.350 N
ATOM      2  CA  ALA A   1      10.000  10.000  10.000  0.00  0.00    +0.120 C
END
`

func writeStructure(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "receptor.pdbqt")
	require.NoError(t, os.WriteFile(path, []byte(boxTestStructure), 0o644))
	return path
}

func TestBoxCmd(t *testing.T) {
	out, err := execute(t, "box", writeStructure(t), "-p", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "center: 5.000 5.000 5.000")
	assert.Contains(t, out, "size:   20.000 20.000 20.000")
}

func TestBoxCmd_JSON(t *testing.T) {
	out, err := execute(t, "box", writeStructure(t), "-p", "0", "--json")
	require.NoError(t, err)

	var box geometry.Box
	require.NoError(t, json.Unmarshal([]byte(out), &box))
	assert.Equal(t, [3]float64{5, 5, 5}, box.Center)
	assert.Equal(t, [3]float64{10, 10, 10}, box.Size)
}

func TestBoxCmd_MissingFile(t *testing.T) {
	_, err := execute(t, "box", filepath.Join(t.TempDir(), "nope.pdbqt"))
	assert.Error(t, err)
}

func TestBoxCmd_RequiresArgument(t *testing.T) {
	_, err := execute(t, "box")
	assert.Error(t, err)
}

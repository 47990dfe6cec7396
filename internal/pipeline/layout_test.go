package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutPaths(t *testing.T) {
	l := Layout{Root: "results"}

	assert.Equal(t, filepath.Join("results", "mol2_files", "m1.mol2"), l.Mol2Path("m1"))
	assert.Equal(t, filepath.Join("results", "ligands_pdbqt", "m1.pdbqt"), l.LigandPath("m1"))
	assert.Equal(t, filepath.Join("results", "docking_results", "docking_m1.pdbqt"), l.DockingOutPath("m1"))
	assert.Equal(t, filepath.Join("results", "docking_results", "m1.log"), l.DockingLogPath("m1"))
	assert.Equal(t, filepath.Join("results", "manifest.json"), l.ManifestPath())
	assert.Equal(t, filepath.Join("results", "docking_summary.tsv"), l.SummaryPath())
}

func TestLayoutCreate(t *testing.T) {
	l := Layout{Root: filepath.Join(t.TempDir(), "out")}
	require.NoError(t, l.Create())

	assert.DirExists(t, l.Mol2Dir())
	assert.DirExists(t, l.LigandsDir())
	assert.DirExists(t, l.ReceptorDir())
	assert.DirExists(t, l.DockingDir())

	// Idempotent.
	assert.NoError(t, l.Create())
}

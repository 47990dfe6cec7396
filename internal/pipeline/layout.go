// Package pipeline contains the orchestrator that drives molecules through
// conversion and docking, the per-molecule state machine, the run manifest,
// and the output directory layout.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout maps molecules to their artifact paths under the output root.
// Every molecule writes only inside paths derived from its own unique name,
// which is what makes concurrent processing safe without file locking.
type Layout struct {
	Root string
}

// Subdirectory names, mirrored in the user documentation.
const (
	mol2DirName    = "mol2_files"
	ligandsDirName = "ligands_pdbqt"
	receptorDir    = "receptor"
	dockingDirName = "docking_results"

	manifestName = "manifest.json"
	summaryName  = "docking_summary.tsv"
)

// Mol2Dir holds per-molecule intermediate 3D structures.
func (l Layout) Mol2Dir() string { return filepath.Join(l.Root, mol2DirName) }

// LigandsDir holds per-molecule docking-format ligands.
func (l Layout) LigandsDir() string { return filepath.Join(l.Root, ligandsDirName) }

// ReceptorDir holds the prepared receptor and its intermediates.
func (l Layout) ReceptorDir() string { return filepath.Join(l.Root, receptorDir) }

// DockingDir holds per-molecule result structures and engine logs.
func (l Layout) DockingDir() string { return filepath.Join(l.Root, dockingDirName) }

// ManifestPath is the authoritative JSON record of the run.
func (l Layout) ManifestPath() string { return filepath.Join(l.Root, manifestName) }

// SummaryPath is the flat per-ligand score table.
func (l Layout) SummaryPath() string { return filepath.Join(l.Root, summaryName) }

// Mol2Path is the intermediate 3D structure for the named molecule.
func (l Layout) Mol2Path(name string) string {
	return filepath.Join(l.Mol2Dir(), name+".mol2")
}

// LigandPath is the docking-format ligand for the named molecule.
func (l Layout) LigandPath(name string) string {
	return filepath.Join(l.LigandsDir(), name+".pdbqt")
}

// DockingOutPath is the multi-pose result structure for the named molecule.
func (l Layout) DockingOutPath(name string) string {
	return filepath.Join(l.DockingDir(), fmt.Sprintf("docking_%s.pdbqt", name))
}

// DockingLogPath is the engine log for the named molecule.
func (l Layout) DockingLogPath(name string) string {
	return filepath.Join(l.DockingDir(), name+".log")
}

// Create makes the whole directory tree.  It is idempotent.
func (l Layout) Create() error {
	for _, dir := range []string{
		l.Root, l.Mol2Dir(), l.LigandsDir(), l.ReceptorDir(), l.DockingDir(),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %q: %w", dir, err)
		}
	}
	return nil
}

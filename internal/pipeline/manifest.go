package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/molscreen/vinauto/internal/domain/geometry"
)

// Status is the state of a molecule in the per-molecule state machine.
// Terminal states are StatusDocked, StatusConversionFailed, and
// StatusDockingFailed.
type Status string

const (
	StatusPending          Status = "pending"
	StatusConverting       Status = "converting"
	StatusConverted        Status = "converted"
	StatusConversionFailed Status = "conversion_failed"
	StatusDocking          Status = "docking"
	StatusDocked           Status = "docked"
	StatusDockingFailed    Status = "docking_failed"
)

// Stage identifies one externally-driven step of a molecule's processing.
type Stage string

const (
	StageConvert3D         Stage = "convert_3d"
	StageConvertDockFormat Stage = "convert_dock_format"
	StageDock              Stage = "dock"
)

// StageResult records the outcome of a single stage invocation for one
// molecule.
type StageResult struct {
	Stage      Stage  `json:"stage"`
	OK         bool   `json:"ok"`
	OutputPath string `json:"output_path,omitempty"`
	Error      string `json:"error,omitempty"`
}

// MoleculeResult aggregates everything recorded for one molecule.  Index is
// the position in the input table; results are slotted by it so manifest
// ordering matches input ordering regardless of completion order.
type MoleculeResult struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	SMILES string `json:"smiles"`
	Status Status `json:"status"`

	Stages []StageResult `json:"stages"`

	// BestAffinity is the most favourable binding energy in kcal/mol,
	// present only for docked molecules.
	BestAffinity *float64 `json:"best_affinity,omitempty"`
	PoseCount    int      `json:"pose_count,omitempty"`

	ResultPath string `json:"result_path,omitempty"`
	LogPath    string `json:"log_path,omitempty"`
}

// Parameters are the run-global knobs recorded for reproducibility.
type Parameters struct {
	NumPoses       int     `json:"num_poses"`
	Exhaustiveness int     `json:"exhaustiveness"`
	Padding        float64 `json:"padding"`
	Spacing        float64 `json:"spacing"`
	ChargeMethod   string  `json:"charge_method"`
	Workers        int     `json:"workers"`
	OutputRoot     string  `json:"output_root"`
}

// Manifest is the authoritative record of a run: global parameters, the
// computed docking box, and one entry per input molecule in input order.
type Manifest struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Parameters Parameters   `json:"parameters"`
	Box        geometry.Box `json:"box"`

	// ReceptorPath is the prepared docking-format receptor.
	ReceptorPath string `json:"receptor_path"`

	Molecules []MoleculeResult `json:"molecules"`
}

// NewManifest starts a manifest with a fresh run ID.
func NewManifest(params Parameters) *Manifest {
	return &Manifest{
		RunID:      uuid.NewString(),
		StartedAt:  time.Now().UTC(),
		Parameters: params,
	}
}

// FailedMolecule names one molecule that did not reach StatusDocked, and the
// stage it failed at, so a user can re-run only the failures.
type FailedMolecule struct {
	Name  string
	Stage Stage
	Error string
}

// Summary is the end-of-run report returned to the caller.
type Summary struct {
	Docked           int
	ConversionFailed int
	DockingFailed    int
	Failed           []FailedMolecule
}

// Summarize derives the end-of-run Summary from the manifest entries.
func (m *Manifest) Summarize() Summary {
	var s Summary
	for _, mol := range m.Molecules {
		switch mol.Status {
		case StatusDocked:
			s.Docked++
		case StatusConversionFailed:
			s.ConversionFailed++
		case StatusDockingFailed:
			s.DockingFailed++
		}
		if mol.Status == StatusConversionFailed || mol.Status == StatusDockingFailed {
			stage, errMsg := mol.failedStage()
			s.Failed = append(s.Failed, FailedMolecule{Name: mol.Name, Stage: stage, Error: errMsg})
		}
	}
	return s
}

// failedStage returns the first stage recorded as failed.
func (r MoleculeResult) failedStage() (Stage, string) {
	for _, st := range r.Stages {
		if !st.OK {
			return st.Stage, st.Error
		}
	}
	return "", ""
}

// Write persists the manifest as indented JSON at path.
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest %q: %w", path, err)
	}
	return nil
}

// WriteSummaryTSV writes the flat per-ligand score table: a header row, then
// one "name<TAB>energy" row per docked molecule, in input order.
func (m *Manifest) WriteSummaryTSV(path string) error {
	var sb strings.Builder
	sb.WriteString("Ligand\tBinding Energy (kcal/mol)\n")
	for _, mol := range m.Molecules {
		if mol.Status != StatusDocked || mol.BestAffinity == nil {
			continue
		}
		fmt.Fprintf(&sb, "%s\t%.3f\n", mol.Name, *mol.BestAffinity)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write summary %q: %w", path, err)
	}
	return nil
}

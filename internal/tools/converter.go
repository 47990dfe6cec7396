package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/molscreen/vinauto/internal/logging"
	"github.com/molscreen/vinauto/pkg/errors"
)

// Converter drives the external format converter.  Each method performs one
// conversion step of the pipeline; success always means a zero tool exit AND
// a non-empty output file.
type Converter interface {
	// SMILESTo3D generates a single low-energy 3D conformer for smiles and
	// writes it in MOL2 format to outPath.
	SMILESTo3D(ctx context.Context, smiles, outPath string) error

	// LigandToDockingFormat converts the MOL2 file at mol2Path to PDBQT with
	// partial charges assigned, writing to outPath.
	LigandToDockingFormat(ctx context.Context, mol2Path, outPath string) error

	// PrepareReceptor converts a receptor PDB file to docking-ready PDBQT in
	// workDir and returns the path of the produced file.  The conversion is
	// two-step: protonate at the configured pH into an intermediate charged
	// PDB, then emit rigid-receptor PDBQT.
	PrepareReceptor(ctx context.Context, pdbPath, workDir string) (string, error)
}

// ObabelConfig carries the converter invocation parameters.
type ObabelConfig struct {
	// Path is the resolved obabel binary.
	Path string

	// ChargeMethod is the partial-charge assignment method for ligands.
	ChargeMethod string

	// ReceptorPH is the protonation pH for receptor preparation.
	ReceptorPH float64

	// Timeout bounds each obabel invocation.
	Timeout time.Duration
}

// Obabel is the Open Babel-backed Converter.
type Obabel struct {
	cfg    ObabelConfig
	runner Runner
	log    logging.Logger
}

// NewObabel constructs the production Converter.
func NewObabel(cfg ObabelConfig, runner Runner, log logging.Logger) *Obabel {
	return &Obabel{cfg: cfg, runner: runner, log: log.Named("obabel")}
}

func (o *Obabel) SMILESTo3D(ctx context.Context, smiles, outPath string) error {
	inv := Invocation{
		Path:    o.cfg.Path,
		Args:    []string{"-:" + smiles, "--gen3D", "-O", outPath},
		Timeout: o.cfg.Timeout,
	}
	return o.convert(ctx, inv, outPath, "3D structure generation")
}

func (o *Obabel) LigandToDockingFormat(ctx context.Context, mol2Path, outPath string) error {
	inv := Invocation{
		Path: o.cfg.Path,
		Args: []string{
			mol2Path, "-opdbqt", "-O", outPath,
			"--partialcharge", o.cfg.ChargeMethod,
			"-h",
		},
		Timeout: o.cfg.Timeout,
	}
	return o.convert(ctx, inv, outPath, "docking format conversion")
}

func (o *Obabel) PrepareReceptor(ctx context.Context, pdbPath, workDir string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(pdbPath), filepath.Ext(pdbPath))
	chargedPath := filepath.Join(workDir, stem+"_charged.pdb")
	outPath := filepath.Join(workDir, stem+".pdbqt")

	// Step 1: protonate the receptor at the configured pH.
	protonate := Invocation{
		Path: o.cfg.Path,
		Args: []string{
			pdbPath, "-O", chargedPath,
			"-xr", "-p", fmt.Sprintf("%g", o.cfg.ReceptorPH),
		},
		Timeout: o.cfg.Timeout,
	}
	if err := o.convert(ctx, protonate, chargedPath, "receptor protonation"); err != nil {
		return "", errors.Wrap(err, errors.CodeReceptorPreparation, "receptor preparation failed")
	}

	// Step 2: emit rigid-receptor PDBQT from the charged intermediate.
	toPDBQT := Invocation{
		Path:    o.cfg.Path,
		Args:    []string{chargedPath, "-opdbqt", "-O", outPath, "-xr"},
		Timeout: o.cfg.Timeout,
	}
	if err := o.convert(ctx, toPDBQT, outPath, "receptor conversion"); err != nil {
		return "", errors.Wrap(err, errors.CodeReceptorPreparation, "receptor preparation failed")
	}

	return outPath, nil
}

// convert runs one obabel invocation and applies the shared success policy:
// zero exit and a non-empty output file.
func (o *Obabel) convert(ctx context.Context, inv Invocation, outPath, step string) error {
	res, err := o.runner.Run(ctx, inv)
	if err != nil {
		return errors.Wrap(err, errors.CodeConversionFailure, step+" failed").
			WithDetail(res.Combined())
	}
	if err := requireNonEmptyFile(outPath); err != nil {
		return errors.Wrap(err, errors.CodeConversionFailure,
			step+" produced no output").WithDetail(res.Combined())
	}
	return nil
}

// requireNonEmptyFile verifies that path exists and has non-zero size.
// Open Babel exits zero in some failure modes while writing nothing, so exit
// code alone is not trusted.
func requireNonEmptyFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("expected output file %q: %w", path, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("output file %q is empty", path)
	}
	return nil
}

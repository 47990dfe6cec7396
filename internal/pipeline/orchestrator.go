package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/molscreen/vinauto/internal/domain/geometry"
	"github.com/molscreen/vinauto/internal/domain/molecule"
	"github.com/molscreen/vinauto/internal/logging"
	"github.com/molscreen/vinauto/internal/tools"
	"github.com/molscreen/vinauto/pkg/errors"
)

// Orchestrator drives the whole run: receptor preparation, box calculation,
// and the per-molecule state machine across a bounded worker pool.
//
// Per molecule the machine is
//
//	Pending -> Converting -> Converted|ConversionFailed -> Docking -> Docked|DockingFailed
//
// and molecules are fully independent: each owns its artifact paths, the box
// is read-only after creation, and results land in a pre-allocated slot per
// input index, so no synchronization beyond the pool join is needed.
type Orchestrator struct {
	converter tools.Converter
	engine    tools.DockingEngine
	layout    Layout
	params    Parameters
	log       logging.Logger
}

// New wires an Orchestrator from its collaborators.  Tool binaries must be
// resolved and validated by the caller before this point.
func New(converter tools.Converter, engine tools.DockingEngine, layout Layout,
	params Parameters, log logging.Logger) *Orchestrator {
	return &Orchestrator{
		converter: converter,
		engine:    engine,
		layout:    layout,
		params:    params,
		log:       log.Named("pipeline"),
	}
}

// Run executes the screening batch and returns the persisted manifest and
// its summary.  Fatal conditions (output tree creation, receptor
// preparation, box calculation) abort before any ligand work; per-molecule
// failures are recorded and never stop the batch.  On cancellation the
// manifest is still written with the results gathered so far before the
// context error is returned.
func (o *Orchestrator) Run(ctx context.Context, receptorPDB string,
	records []molecule.Record) (*Manifest, Summary, error) {

	if err := o.layout.Create(); err != nil {
		return nil, Summary{}, errors.Wrap(err, errors.CodeInternal,
			"could not create output directory tree")
	}

	manifest := NewManifest(o.params)

	o.log.Info("preparing receptor", logging.String("receptor", receptorPDB))
	receptorPath, err := o.converter.PrepareReceptor(ctx, receptorPDB, o.layout.ReceptorDir())
	if err != nil {
		return nil, Summary{}, err
	}
	manifest.ReceptorPath = receptorPath

	box, err := geometry.BoxFromStructureFile(receptorPath, o.params.Padding)
	if err != nil {
		return nil, Summary{}, err
	}
	manifest.Box = box
	o.log.Info("docking box computed",
		logging.Float64("center_x", box.Center[0]),
		logging.Float64("center_y", box.Center[1]),
		logging.Float64("center_z", box.Center[2]),
		logging.Float64("size_x", box.Size[0]),
		logging.Float64("size_y", box.Size[1]),
		logging.Float64("size_z", box.Size[2]))

	// Index-slotted results keep manifest ordering equal to input ordering
	// no matter the completion order under concurrency.
	results := make([]MoleculeResult, len(records))

	g, runCtx := errgroup.WithContext(ctx)
	g.SetLimit(o.params.Workers)
	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			if runCtx.Err() != nil {
				results[i] = MoleculeResult{Index: i, Name: rec.Name, SMILES: rec.SMILES, Status: StatusPending}
				return runCtx.Err()
			}
			results[i] = o.processMolecule(runCtx, i, rec, receptorPath, box)
			return nil
		})
	}
	waitErr := g.Wait()

	manifest.Molecules = results
	manifest.FinishedAt = time.Now().UTC()

	if err := manifest.Write(o.layout.ManifestPath()); err != nil {
		return manifest, manifest.Summarize(), err
	}
	if err := manifest.WriteSummaryTSV(o.layout.SummaryPath()); err != nil {
		return manifest, manifest.Summarize(), err
	}

	summary := manifest.Summarize()
	o.log.Info("run finished",
		logging.String("run_id", manifest.RunID),
		logging.Int("docked", summary.Docked),
		logging.Int("conversion_failed", summary.ConversionFailed),
		logging.Int("docking_failed", summary.DockingFailed))

	return manifest, summary, waitErr
}

// processMolecule drives one molecule through its state machine and returns
// the terminal result.  It never returns an error: failures are captured in
// the result so the batch continues.
func (o *Orchestrator) processMolecule(ctx context.Context, index int,
	rec molecule.Record, receptorPath string, box geometry.Box) MoleculeResult {

	log := o.log.With(logging.String("molecule", rec.Name))
	res := MoleculeResult{
		Index:  index,
		Name:   rec.Name,
		SMILES: rec.SMILES,
		Status: StatusConverting,
	}

	mol2Path := o.layout.Mol2Path(rec.Name)
	if err := o.converter.SMILESTo3D(ctx, rec.SMILES, mol2Path); err != nil {
		log.Warn("3D structure generation failed", logging.Err(err))
		res.Stages = append(res.Stages, StageResult{
			Stage: StageConvert3D, Error: err.Error(),
		})
		res.Status = StatusConversionFailed
		return res
	}
	res.Stages = append(res.Stages, StageResult{
		Stage: StageConvert3D, OK: true, OutputPath: mol2Path,
	})

	ligandPath := o.layout.LigandPath(rec.Name)
	err := o.converter.LigandToDockingFormat(ctx, mol2Path, ligandPath)
	if err == nil {
		err = renameLigandResidue(ligandPath)
	}
	if err != nil {
		log.Warn("docking format conversion failed", logging.Err(err))
		res.Stages = append(res.Stages, StageResult{
			Stage: StageConvertDockFormat, Error: err.Error(),
		})
		res.Status = StatusConversionFailed
		return res
	}
	res.Stages = append(res.Stages, StageResult{
		Stage: StageConvertDockFormat, OK: true, OutputPath: ligandPath,
	})

	res.Status = StatusDocking
	out, err := o.engine.Dock(ctx, tools.DockInput{
		ReceptorPath:   receptorPath,
		LigandPath:     ligandPath,
		Box:            box,
		NumPoses:       o.params.NumPoses,
		Exhaustiveness: o.params.Exhaustiveness,
		Spacing:        o.params.Spacing,
		OutPath:        o.layout.DockingOutPath(rec.Name),
		LogPath:        o.layout.DockingLogPath(rec.Name),
	})
	if err != nil {
		log.Warn("docking failed", logging.Err(err))
		res.Stages = append(res.Stages, StageResult{
			Stage: StageDock, Error: err.Error(),
		})
		res.Status = StatusDockingFailed
		return res
	}

	if err := normalizeResultFile(out.OutPath); err != nil {
		// The docking result itself is valid; normalization is cosmetic.
		log.Warn("result normalization failed", logging.Err(err))
	}

	res.Stages = append(res.Stages, StageResult{
		Stage: StageDock, OK: true, OutputPath: out.OutPath,
	})
	res.Status = StatusDocked
	affinity := out.BestAffinity
	res.BestAffinity = &affinity
	res.PoseCount = out.PoseCount
	res.ResultPath = out.OutPath
	res.LogPath = out.LogPath

	log.Info("molecule docked",
		logging.Float64("best_affinity", out.BestAffinity),
		logging.Int("poses", out.PoseCount))
	return res
}

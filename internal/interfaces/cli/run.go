package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/molscreen/vinauto/internal/config"
	"github.com/molscreen/vinauto/internal/domain/molecule"
	"github.com/molscreen/vinauto/internal/logging"
	"github.com/molscreen/vinauto/internal/pipeline"
	"github.com/molscreen/vinauto/internal/tools"
)

// runFlags mirrors the docking knobs so that flags the user set override the
// config file; untouched flags leave the configured values alone.
type runFlags struct {
	Input          string
	Receptor       string
	Output         string
	NumPoses       int
	Exhaustiveness int
	Padding        float64
	Spacing        float64
	ChargeMethod   string
	Workers        int
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a full screening batch",
		Long:  "Load a CSV table of molecules, prepare the receptor, compute the docking\nbox, and convert and dock every molecule.  Results, logs, the run manifest,\nand a score summary land under the output directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			applyRunFlags(cmd, &f, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runBatch(cmd, cfg, log, f.Input, f.Receptor)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.Input, "input", "i", "", "CSV table of molecules (name,smiles) [required]")
	fl.StringVarP(&f.Receptor, "receptor", "r", "", "receptor structure in PDB format [required]")
	fl.StringVarP(&f.Output, "output", "o", config.DefaultOutputDir, "output directory root")
	fl.IntVarP(&f.NumPoses, "num-poses", "n", config.DefaultNumPoses, "maximum binding poses per ligand")
	fl.IntVarP(&f.Exhaustiveness, "exhaustiveness", "e", config.DefaultExhaustiveness, "search exhaustiveness")
	fl.Float64VarP(&f.Padding, "padding", "p", config.DefaultPadding, "box padding per side in Angstrom (0 for a tight box)")
	fl.Float64Var(&f.Spacing, "spacing", config.DefaultSpacing, "grid spacing in Angstrom")
	fl.StringVar(&f.ChargeMethod, "charge-method", config.DefaultChargeMethod, "partial-charge method for ligand preparation")
	fl.IntVar(&f.Workers, "workers", config.DefaultWorkers, "molecules processed concurrently")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("receptor")

	return cmd
}

// applyRunFlags copies explicitly-set flags into cfg.  Checking Changed
// rather than comparing against defaults keeps zero values usable, e.g.
// `--padding 0` for a tight box.
func applyRunFlags(cmd *cobra.Command, f *runFlags, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("output") {
		cfg.Run.OutputDir = f.Output
	}
	if fl.Changed("num-poses") {
		cfg.Docking.NumPoses = f.NumPoses
	}
	if fl.Changed("exhaustiveness") {
		cfg.Docking.Exhaustiveness = f.Exhaustiveness
	}
	if fl.Changed("padding") {
		cfg.Docking.Padding = f.Padding
	}
	if fl.Changed("spacing") {
		cfg.Docking.Spacing = f.Spacing
	}
	if fl.Changed("charge-method") {
		cfg.Docking.ChargeMethod = f.ChargeMethod
	}
	if fl.Changed("workers") {
		cfg.Run.Workers = f.Workers
	}
}

func runBatch(cmd *cobra.Command, cfg *config.Config, log logging.Logger,
	inputPath, receptorPath string) error {

	// Fail before any work if either tool is missing.
	obabelPath, err := tools.Resolve(cfg.Tools.ObabelPath)
	if err != nil {
		return err
	}
	vinaPath, err := tools.Resolve(cfg.Tools.VinaPath)
	if err != nil {
		return err
	}

	records, err := molecule.NewLoader(log).LoadFile(inputPath)
	if err != nil {
		return err
	}
	log.Info("molecule table loaded",
		logging.String("input", inputPath),
		logging.Int("molecules", len(records)))

	runner := tools.NewRunner(log, cfg.Tools.RetryAttempts, cfg.Tools.RetryBackoff)
	converter := tools.NewObabel(tools.ObabelConfig{
		Path:         obabelPath,
		ChargeMethod: cfg.Docking.ChargeMethod,
		ReceptorPH:   cfg.Docking.ReceptorPH,
		Timeout:      cfg.Tools.ConvertTimeout,
	}, runner, log)
	engine := tools.NewVina(tools.VinaConfig{
		Path:    vinaPath,
		Timeout: cfg.Tools.DockTimeout,
	}, runner, log)

	layout := pipeline.Layout{Root: cfg.Run.OutputDir}
	orch := pipeline.New(converter, engine, layout, pipeline.Parameters{
		NumPoses:       cfg.Docking.NumPoses,
		Exhaustiveness: cfg.Docking.Exhaustiveness,
		Padding:        cfg.Docking.Padding,
		Spacing:        cfg.Docking.Spacing,
		ChargeMethod:   cfg.Docking.ChargeMethod,
		Workers:        cfg.Run.Workers,
		OutputRoot:     cfg.Run.OutputDir,
	}, log)

	manifest, summary, runErr := orch.Run(cmd.Context(), receptorPath, records)
	if manifest != nil {
		printSummary(cmd, manifest, summary)
	}
	return runErr
}

func printSummary(cmd *cobra.Command, manifest *pipeline.Manifest, summary pipeline.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s finished: %d docked, %d conversion failures, %d docking failures\n",
		manifest.RunID, summary.Docked, summary.ConversionFailed, summary.DockingFailed)
	for _, f := range summary.Failed {
		fmt.Fprintf(out, "  FAILED %s at %s: %s\n", f.Name, f.Stage, f.Error)
	}
	fmt.Fprintf(out, "Manifest: %s\n", pipeline.Layout{Root: manifest.Parameters.OutputRoot}.ManifestPath())
	fmt.Fprintf(out, "Summary:  %s\n", pipeline.Layout{Root: manifest.Parameters.OutputRoot}.SummaryPath())
}

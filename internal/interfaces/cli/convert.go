package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/molscreen/vinauto/internal/config"
	"github.com/molscreen/vinauto/internal/domain/molecule"
	"github.com/molscreen/vinauto/internal/tools"
)

func newConvertCmd(opts *rootOptions) *cobra.Command {
	var (
		smiles       string
		name         string
		outDir       string
		chargeMethod string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert one SMILES into a docking-ready ligand",
		Long:  "Generate a 3D structure from a SMILES string and convert it into docking\nformat with partial charges, without running a full batch.  Useful for\ninspecting how a single molecule is prepared.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("charge-method") {
				cfg.Docking.ChargeMethod = chargeMethod
			}

			obabelPath, err := tools.Resolve(cfg.Tools.ObabelPath)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory %q: %w", outDir, err)
			}

			runner := tools.NewRunner(log, cfg.Tools.RetryAttempts, cfg.Tools.RetryBackoff)
			converter := tools.NewObabel(tools.ObabelConfig{
				Path:         obabelPath,
				ChargeMethod: cfg.Docking.ChargeMethod,
				ReceptorPH:   cfg.Docking.ReceptorPH,
				Timeout:      cfg.Tools.ConvertTimeout,
			}, runner, log)

			cleanName := molecule.SanitizeName(name)
			clean := molecule.SanitizeSMILES(smiles)
			mol2Path := filepath.Join(outDir, cleanName+".mol2")
			ligandPath := filepath.Join(outDir, cleanName+".pdbqt")

			ctx := cmd.Context()
			if err := converter.SMILESTo3D(ctx, clean, mol2Path); err != nil {
				return err
			}
			if err := converter.LigandToDockingFormat(ctx, mol2Path, ligandPath); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ligandPath)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&smiles, "smiles", "s", "", "SMILES string [required]")
	fl.StringVarP(&name, "name", "n", "ligand", "molecule name, used for output file names")
	fl.StringVarP(&outDir, "output", "o", ".", "output directory")
	fl.StringVar(&chargeMethod, "charge-method", config.DefaultChargeMethod, "partial-charge method")
	_ = cmd.MarkFlagRequired("smiles")

	return cmd
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/molscreen/vinauto/internal/config"
	"github.com/molscreen/vinauto/internal/domain/geometry"
)

func newBoxCmd() *cobra.Command {
	var (
		padding    float64
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "box STRUCTURE",
		Short: "Compute the docking search box for a structure",
		Long:  "Read ATOM and HETATM records from a PDB or PDBQT file and print the\naxis-aligned search box: center at the midpoint of the atomic extents, size\nequal to the extents plus twice the padding.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := geometry.BoxFromStructureFile(args[0], padding)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(box)
			}
			fmt.Fprintf(out, "center: %.3f %.3f %.3f\n", box.Center[0], box.Center[1], box.Center[2])
			fmt.Fprintf(out, "size:   %.3f %.3f %.3f\n", box.Size[0], box.Size[1], box.Size[2])
			return nil
		},
	}

	cmd.Flags().Float64VarP(&padding, "padding", "p", config.DefaultPadding, "box padding per side in Angstrom")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the box as JSON")

	return cmd
}

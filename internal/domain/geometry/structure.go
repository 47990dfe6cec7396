package geometry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/molscreen/vinauto/pkg/errors"
)

// ReadStructureCoords extracts atom coordinates from a PDB or PDBQT file.
// Coordinates are taken from ATOM and HETATM records by whitespace-splitting
// the line and parsing fields 6, 7, and 8 (0-indexed):
//
//	ATOM      1  C   LIG A   1      14.982   8.851  32.647  0.00  0.00    +0.034 C
//
// Lines whose coordinate fields are missing or unparseable are skipped, not
// fatal; only a file with zero parseable atoms is rejected.
func ReadStructureCoords(r io.Reader) ([]Coord, error) {
	var coords []Coord
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "ATOM") && !strings.HasPrefix(line, "HETATM") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 9 {
			continue
		}
		x, errX := strconv.ParseFloat(fields[6], 64)
		y, errY := strconv.ParseFloat(fields[7], 64)
		z, errZ := strconv.ParseFloat(fields[8], 64)
		if errX != nil || errY != nil || errZ != nil {
			continue
		}
		coords = append(coords, Coord{X: x, Y: y, Z: z})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInputFormat, "failed to read receptor structure")
	}
	if len(coords) == 0 {
		return nil, errors.New(errors.CodeEmptyStructure,
			"no ATOM or HETATM records with valid coordinates found")
	}
	return coords, nil
}

// ReadStructureFile opens path and delegates to ReadStructureCoords.
func ReadStructureFile(path string) ([]Coord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInputFormat,
			fmt.Sprintf("cannot open receptor structure %q", path))
	}
	defer f.Close()
	return ReadStructureCoords(f)
}

// BoxFromStructureFile computes the docking box directly from a structure
// file.  It is the composition used both by the pipeline (after receptor
// preparation) and by the standalone box subcommand.
func BoxFromStructureFile(path string, padding float64) (Box, error) {
	coords, err := ReadStructureFile(path)
	if err != nil {
		return Box{}, err
	}
	return ComputeBox(coords, padding)
}

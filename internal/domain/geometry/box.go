// Package geometry computes the docking search volume from receptor atomic
// coordinates.  The calculation is pure: the same coordinates and padding
// always yield the same box, independent of ligands or run order.
package geometry

import (
	"github.com/molscreen/vinauto/pkg/errors"
)

// Coord is one atom position in Angstrom.
type Coord struct {
	X, Y, Z float64
}

// Box is the rectangular search volume passed to the docking engine.  It is
// computed once per run from the receptor and shared read-only by every
// docking invocation.
type Box struct {
	// Center is the midpoint of the receptor bounding range per axis.
	Center [3]float64 `json:"center"`

	// Size is the bounding extent per axis plus padding on both sides:
	// (max - min) + 2*padding.
	Size [3]float64 `json:"size"`
}

// ComputeBox derives the docking box enclosing all coords with the given
// padding on every side.  With at least one atom all size components are
// strictly positive for padding > 0, and padding 0 yields the tight bounding
// box.  Returns CodeEmptyStructure when coords is empty.
func ComputeBox(coords []Coord, padding float64) (Box, error) {
	if len(coords) == 0 {
		return Box{}, errors.New(errors.CodeEmptyStructure,
			"receptor structure contains no atom coordinates")
	}

	min := [3]float64{coords[0].X, coords[0].Y, coords[0].Z}
	max := min
	for _, c := range coords[1:] {
		axes := [3]float64{c.X, c.Y, c.Z}
		for i, v := range axes {
			if v < min[i] {
				min[i] = v
			}
			if v > max[i] {
				max[i] = v
			}
		}
	}

	var box Box
	for i := 0; i < 3; i++ {
		box.Center[i] = (min[i] + max[i]) / 2
		box.Size[i] = (max[i] - min[i]) + 2*padding
	}
	return box, nil
}

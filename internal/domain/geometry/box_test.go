package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molscreen/vinauto/pkg/errors"
)

func TestComputeBox_EmptyStructure(t *testing.T) {
	_, err := ComputeBox(nil, 10)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeEmptyStructure))
}

func TestComputeBox_SingleAtom(t *testing.T) {
	box, err := ComputeBox([]Coord{{X: 1, Y: 2, Z: 3}}, 5)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{1, 2, 3}, box.Center)
	assert.Equal(t, [3]float64{10, 10, 10}, box.Size)
}

func TestComputeBox_SpanningAtoms(t *testing.T) {
	coords := []Coord{
		{X: 0, Y: 0, Z: 0},
		{X: 10, Y: 10, Z: 10},
		{X: 5, Y: 3, Z: 7},
	}
	box, err := ComputeBox(coords, 5)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{5, 5, 5}, box.Center)
	assert.Equal(t, [3]float64{20, 20, 20}, box.Size)
}

func TestComputeBox_ZeroPaddingIsTightBound(t *testing.T) {
	coords := []Coord{
		{X: -2, Y: 1, Z: 0},
		{X: 4, Y: 9, Z: 3},
	}
	box, err := ComputeBox(coords, 0)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{1, 5, 1.5}, box.Center)
	assert.Equal(t, [3]float64{6, 8, 3}, box.Size)
}

func TestComputeBox_SizeMonotonicInPadding(t *testing.T) {
	coords := []Coord{
		{X: 0, Y: 0, Z: 0},
		{X: 3, Y: 1, Z: 2},
	}
	prev := [3]float64{-1, -1, -1}
	for _, padding := range []float64{0, 0.5, 1, 2.5, 10, 100} {
		box, err := ComputeBox(coords, padding)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			assert.GreaterOrEqual(t, box.Size[i], prev[i],
				"axis %d must not shrink at padding %g", i, padding)
		}
		prev = box.Size
	}
}

func TestComputeBox_CenterIndependentOfPadding(t *testing.T) {
	coords := []Coord{{X: 1, Y: 2, Z: 3}, {X: 7, Y: 4, Z: 11}}
	a, err := ComputeBox(coords, 0)
	require.NoError(t, err)
	b, err := ComputeBox(coords, 25)
	require.NoError(t, err)
	assert.Equal(t, a.Center, b.Center)
}
